package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ueagentforge/forge/sdk/go/forge"
)

var (
	spawnX     float64
	spawnY     float64
	spawnZ     float64
	spawnPitch float64
	spawnYaw   float64
	spawnRoll  float64
)

func init() {
	rootCmd.AddCommand(spawnCmd)
	spawnCmd.Flags().Float64Var(&spawnX, "x", 0, "World X position")
	spawnCmd.Flags().Float64Var(&spawnY, "y", 0, "World Y position")
	spawnCmd.Flags().Float64Var(&spawnZ, "z", 0, "World Z position")
	spawnCmd.Flags().Float64Var(&spawnPitch, "pitch", 0, "Rotation pitch in degrees")
	spawnCmd.Flags().Float64Var(&spawnYaw, "yaw", 0, "Rotation yaw in degrees")
	spawnCmd.Flags().Float64Var(&spawnRoll, "roll", 0, "Rotation roll in degrees")
}

var spawnCmd = &cobra.Command{
	Use:   "spawn <class-path>",
	Short: "Spawn an actor in the level",
	Long: "Spawns an actor of the given class, e.g. /Script/Engine.StaticMeshActor\n" +
		"or /Game/Blueprints/BP_Crate.BP_Crate_C for Blueprint classes.\n" +
		"The editor's constitution is consulted first; exit code 77 means blocked.",
	Args: cobra.ExactArgs(1),
	RunE: runSpawn,
}

func runSpawn(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), flagTimeout)
	defer cancel()

	res, err := client.SpawnActor(ctx, args[0],
		forge.Vector{X: spawnX, Y: spawnY, Z: spawnZ},
		forge.Rotator{Pitch: spawnPitch, Yaw: spawnYaw, Roll: spawnRoll},
	)
	if err != nil {
		exitOnBlocked(err)
		return err
	}
	if !res.OK {
		return fmt.Errorf("spawn failed: %s", res.Err)
	}

	name, _ := res.Str("spawned_name")
	fmt.Printf("spawned %s\n", name)
	return nil
}
