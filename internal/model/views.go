package model

// Vector is a world-space position in editor units.
type Vector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Rotator is an orientation in degrees.
type Rotator struct {
	Pitch float64 `json:"pitch"`
	Yaw   float64 `json:"yaw"`
	Roll  float64 `json:"roll"`
}

// Actor is one level actor as reported by get_all_level_actors.
type Actor struct {
	Name       string  `json:"name"`
	Label      string  `json:"label"`
	Class      string  `json:"class"`
	ObjectPath string  `json:"object_path"`
	Location   Vector  `json:"location"`
	Rotation   Rotator `json:"rotation"`
}

// ActorsFrom extracts the actor list from a decoded reply. Entries the
// host reports in an unexpected shape are skipped, not fatal.
func ActorsFrom(payload map[string]any) []Actor {
	raw, _ := payload["actors"].([]any)
	actors := make([]Actor, 0, len(raw))
	for _, entry := range raw {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		a := Actor{}
		a.Name, _ = m["name"].(string)
		a.Label, _ = m["label"].(string)
		a.Class, _ = m["class"].(string)
		a.ObjectPath, _ = m["object_path"].(string)
		a.Location = vectorFrom(m["location"])
		a.Rotation = rotatorFrom(m["rotation"])
		actors = append(actors, a)
	}
	return actors
}

// PerfStats is the snapshot reported by get_perf_stats.
type PerfStats struct {
	ActorCount     int     `json:"actor_count"`
	ComponentCount int     `json:"component_count"`
	DrawCalls      int     `json:"draw_calls"`
	Primitives     int     `json:"primitives"`
	MemoryUsedMB   float64 `json:"memory_used_mb"`
	MemoryTotalMB  float64 `json:"memory_total_mb"`
	GPUMs          float64 `json:"gpu_ms"`
}

// PerfStatsFrom extracts performance counters from a decoded reply.
func PerfStatsFrom(payload map[string]any) PerfStats {
	num := func(key string) float64 {
		f, _ := payload[key].(float64)
		return f
	}
	return PerfStats{
		ActorCount:     int(num("actor_count")),
		ComponentCount: int(num("component_count")),
		DrawCalls:      int(num("draw_calls")),
		Primitives:     int(num("primitives")),
		MemoryUsedMB:   num("memory_used_mb"),
		MemoryTotalMB:  num("memory_total_mb"),
		GPUMs:          num("gpu_ms"),
	}
}

func vectorFrom(v any) Vector {
	m, ok := v.(map[string]any)
	if !ok {
		return Vector{}
	}
	x, _ := m["x"].(float64)
	y, _ := m["y"].(float64)
	z, _ := m["z"].(float64)
	return Vector{X: x, Y: y, Z: z}
}

func rotatorFrom(v any) Rotator {
	m, ok := v.(map[string]any)
	if !ok {
		return Rotator{}
	}
	pitch, _ := m["pitch"].(float64)
	yaw, _ := m["yaw"].(float64)
	roll, _ := m["roll"].(float64)
	return Rotator{Pitch: pitch, Yaw: yaw, Roll: roll}
}
