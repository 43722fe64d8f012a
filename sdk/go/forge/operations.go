package forge

import (
	"context"
	"fmt"

	"github.com/ueagentforge/forge/internal/model"
)

// Each operation below is a thin, named projection of the command
// envelope over a fixed argument shape. Mutating operations route through
// the constitution gate when verify is enabled; read-only queries never
// do.

// --- Forge meta ---

// Ping checks the plugin is alive and reports its version and
// constitution state.
func (c *Client) Ping(ctx context.Context) (Result, error) {
	return c.Execute(ctx, "ping", nil)
}

// Status reports the plugin's full status, including the loaded
// constitution path and rule count.
func (c *Client) Status(ctx context.Context) (Result, error) {
	return c.Execute(ctx, "get_forge_status", nil)
}

// --- Observation ---

// ListActors returns every actor in the current level.
func (c *Client) ListActors(ctx context.Context) ([]Actor, error) {
	payload, err := c.send(ctx, "get_all_level_actors", nil)
	if err != nil {
		return nil, err
	}
	return model.ActorsFrom(payload), nil
}

// ActorComponents lists the components of the labeled actor.
func (c *Client) ActorComponents(ctx context.Context, label string) (Result, error) {
	return c.Execute(ctx, "get_actor_components", map[string]any{"label": label})
}

// CurrentLevel reports the open level's package and world paths.
func (c *Client) CurrentLevel(ctx context.Context) (Result, error) {
	return c.Execute(ctx, "get_current_level", nil)
}

// AssertCurrentLevel fails (ok: false) when the open level does not match
// the expected package path.
func (c *Client) AssertCurrentLevel(ctx context.Context, expectedLevel string) (Result, error) {
	return c.Execute(ctx, "assert_current_level", map[string]any{"expected_level": expectedLevel})
}

// ActorBounds returns the world-space bounding box of the labeled actor.
func (c *Client) ActorBounds(ctx context.Context, label string) (Result, error) {
	return c.Execute(ctx, "get_actor_bounds", map[string]any{"label": label})
}

// PerfStats samples the editor's frame and memory counters.
func (c *Client) PerfStats(ctx context.Context) (PerfStats, error) {
	payload, err := c.send(ctx, "get_perf_stats", nil)
	if err != nil {
		return PerfStats{}, err
	}
	return model.PerfStatsFrom(payload), nil
}

// --- Spatial queries ---

// CastRay traces a line through the level and reports the first hit.
func (c *Client) CastRay(ctx context.Context, start, end Vector, traceComplex bool) (Result, error) {
	return c.Execute(ctx, "cast_ray", map[string]any{
		"start":         map[string]any{"x": start.X, "y": start.Y, "z": start.Z},
		"end":           map[string]any{"x": end.X, "y": end.Y, "z": end.Z},
		"trace_complex": traceComplex,
	})
}

// QueryNavmesh projects a point onto the navigation mesh within the given
// search extent.
func (c *Client) QueryNavmesh(ctx context.Context, point, extent Vector) (Result, error) {
	return c.Execute(ctx, "query_navmesh", map[string]any{
		"x": point.X, "y": point.Y, "z": point.Z,
		"extent_x": extent.X, "extent_y": extent.Y, "extent_z": extent.Z,
	})
}

// --- Actor control (mutating) ---

// SpawnActor places a new actor of the given class at a position and
// orientation.
func (c *Client) SpawnActor(ctx context.Context, classPath string, at Vector, rot Rotator) (Result, error) {
	return c.gated(ctx, fmt.Sprintf("spawn_actor %s", classPath), "spawn_actor", map[string]any{
		"class_path": classPath,
		"x":          at.X, "y": at.Y, "z": at.Z,
		"pitch": rot.Pitch, "yaw": rot.Yaw, "roll": rot.Roll,
	})
}

// SetActorTransform moves and reorients the actor at objectPath.
func (c *Client) SetActorTransform(ctx context.Context, objectPath string, at Vector, rot Rotator) (Result, error) {
	return c.gated(ctx, fmt.Sprintf("set_actor_transform %s", objectPath), "set_actor_transform", map[string]any{
		"object_path": objectPath,
		"x":           at.X, "y": at.Y, "z": at.Z,
		"pitch": rot.Pitch, "yaw": rot.Yaw, "roll": rot.Roll,
	})
}

// DeleteActor removes the labeled actor from the level.
func (c *Client) DeleteActor(ctx context.Context, label string) (Result, error) {
	return c.gated(ctx, fmt.Sprintf("delete_actor %s", label), "delete_actor", map[string]any{
		"label": label,
	})
}

// SaveCurrentLevel writes the open level to disk. Irreversible; callers
// running verified workflows should gate this on Report.AllPassed.
func (c *Client) SaveCurrentLevel(ctx context.Context) (Result, error) {
	return c.gated(ctx, "save_current_level", "save_current_level", nil)
}

// TakeScreenshot captures the active viewport to a file on the editor
// host.
func (c *Client) TakeScreenshot(ctx context.Context, filename string) (Result, error) {
	return c.Execute(ctx, "take_screenshot", map[string]any{"filename": filename})
}

// SetupTestLevel builds a flat floor level for automation runs.
func (c *Client) SetupTestLevel(ctx context.Context, floorSize float64) (Result, error) {
	return c.gated(ctx, "setup_test_level", "setup_test_level", map[string]any{
		"floor_size": floorSize,
	})
}

// --- Blueprint manipulation (mutating) ---

// BlueprintClassPath derives the spawnable class path of a Blueprint
// created at outputPath with the given name. The _C suffix follows the
// editor's generated-class naming; the host does not guarantee it, so
// prefer the object path echoed on the create reply when available.
func BlueprintClassPath(outputPath, name string) string {
	return fmt.Sprintf("%s/%s.%s_C", outputPath, name, name)
}

// CreateBlueprint creates a new Blueprint asset under outputPath.
func (c *Client) CreateBlueprint(ctx context.Context, name, parentClass, outputPath string) (Result, error) {
	return c.gated(ctx, fmt.Sprintf("create_blueprint %s/%s", outputPath, name), "create_blueprint", map[string]any{
		"name":         name,
		"parent_class": parentClass,
		"output_path":  outputPath,
	})
}

// CompileBlueprint compiles the Blueprint and reports compile errors via
// the result's ok flag.
func (c *Client) CompileBlueprint(ctx context.Context, blueprintPath string) (Result, error) {
	return c.gated(ctx, fmt.Sprintf("compile_blueprint %s", blueprintPath), "compile_blueprint", map[string]any{
		"blueprint_path": blueprintPath,
	})
}

// SetBlueprintCDOProperty sets a property on the Blueprint's class
// default object. The value is sent as its string form; the plugin
// coerces by the declared type.
func (c *Client) SetBlueprintCDOProperty(ctx context.Context, blueprintPath, property, propType string, value any) (Result, error) {
	return c.gated(ctx, fmt.Sprintf("set_bp_cdo_property %s.%s", blueprintPath, property), "set_bp_cdo_property", map[string]any{
		"blueprint_path": blueprintPath,
		"property_name":  property,
		"type":           propType,
		"value":          fmt.Sprintf("%v", value),
	})
}

// EditBlueprintNode updates pin defaults on a node in the Blueprint's
// event graph.
func (c *Client) EditBlueprintNode(ctx context.Context, blueprintPath string, spec NodeSpec) (Result, error) {
	pins := make([]map[string]any, 0, len(spec.Pins))
	for _, p := range spec.Pins {
		pins = append(pins, map[string]any{"name": p.Name, "value": p.Value})
	}
	return c.gated(ctx, fmt.Sprintf("edit_blueprint_node %s", blueprintPath), "edit_blueprint_node", map[string]any{
		"blueprint_path": blueprintPath,
		"node_spec": map[string]any{
			"type":  spec.Type,
			"title": spec.Title,
			"pins":  pins,
		},
	})
}

// --- Material instancing (mutating) ---

// CreateMaterialInstance creates a material instance of parentMaterial
// under outputPath.
func (c *Client) CreateMaterialInstance(ctx context.Context, parentMaterial, instanceName, outputPath string) (Result, error) {
	return c.gated(ctx, fmt.Sprintf("create_material_instance %s/%s", outputPath, instanceName), "create_material_instance", map[string]any{
		"parent_material": parentMaterial,
		"instance_name":   instanceName,
		"output_path":     outputPath,
	})
}

// SetMaterialParams sets scalar and vector parameters on a material
// instance. Nil maps are omitted from the request.
func (c *Client) SetMaterialParams(ctx context.Context, instancePath string, scalars map[string]float64, vectors map[string]map[string]float64) (Result, error) {
	args := map[string]any{"instance_path": instancePath}
	if len(scalars) > 0 {
		args["scalar_params"] = scalars
	}
	if len(vectors) > 0 {
		args["vector_params"] = vectors
	}
	return c.gated(ctx, fmt.Sprintf("set_material_params %s", instancePath), "set_material_params", args)
}

// --- Content management (mutating) ---

// RenameAsset renames the asset in place.
func (c *Client) RenameAsset(ctx context.Context, assetPath, newName string) (Result, error) {
	return c.gated(ctx, fmt.Sprintf("rename_asset %s -> %s", assetPath, newName), "rename_asset", map[string]any{
		"asset_path": assetPath,
		"new_name":   newName,
	})
}

// MoveAsset moves the asset to another content directory.
func (c *Client) MoveAsset(ctx context.Context, assetPath, destinationPath string) (Result, error) {
	return c.gated(ctx, fmt.Sprintf("move_asset %s -> %s", assetPath, destinationPath), "move_asset", map[string]any{
		"asset_path":       assetPath,
		"destination_path": destinationPath,
	})
}

// DeleteAsset deletes the asset from the content directory.
func (c *Client) DeleteAsset(ctx context.Context, assetPath string) (Result, error) {
	return c.gated(ctx, fmt.Sprintf("delete_asset %s", assetPath), "delete_asset", map[string]any{
		"asset_path": assetPath,
	})
}

// --- Snapshot (mutating: writes a snapshot asset host-side) ---

// CreateSnapshot captures the current level state under a name.
func (c *Client) CreateSnapshot(ctx context.Context, snapshotName string) (Result, error) {
	return c.gated(ctx, fmt.Sprintf("create_snapshot %s", snapshotName), "create_snapshot", map[string]any{
		"snapshot_name": snapshotName,
	})
}

// --- Scripting (mutating: arbitrary editor-side effects) ---

// ExecutePython runs a Python script inside the editor process.
func (c *Client) ExecutePython(ctx context.Context, script string) (Result, error) {
	return c.gated(ctx, "execute_python", "execute_python", map[string]any{
		"script": script,
	})
}
