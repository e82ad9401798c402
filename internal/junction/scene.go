package junction

import (
	"encoding/json"
	"fmt"
	"os"
)

// Scene is an offline evaluation snapshot: a set of obstacles with
// their junction and route state, plus an optional ego pose. Scenes are
// the input format of the predict CLI and the debugging tools.
type Scene struct {
	SceneID   string      `json:"scene_id"`
	Ego       *EgoPose    `json:"ego,omitempty"`
	Obstacles []*Obstacle `json:"obstacles"`
}

// EgoProvider returns the scene's ego pose as a provider, or NoEgoPose
// when the scene has none.
func (s *Scene) EgoProvider() EgoPoseProvider {
	if s.Ego == nil {
		return NoEgoPose{}
	}
	return StaticEgoPose{Pose: *s.Ego}
}

// Store loads the scene's obstacles into a fresh ObstacleStore.
func (s *Scene) Store() *ObstacleStore {
	store := NewObstacleStore()
	for _, obs := range s.Obstacles {
		store.Put(obs)
	}
	return store
}

// LoadScene reads a scene from a JSON file.
func LoadScene(path string) (*Scene, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("junction: read scene %s: %w", path, err)
	}
	scene := &Scene{}
	if err := json.Unmarshal(raw, scene); err != nil {
		return nil, fmt.Errorf("junction: parse scene %s: %w", path, err)
	}
	if len(scene.Obstacles) == 0 {
		return nil, fmt.Errorf("junction: scene %s has no obstacles", path)
	}
	return scene, nil
}
