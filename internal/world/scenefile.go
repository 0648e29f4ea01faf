package world

import (
	"errors"
	"fmt"
	"os"

	"arbowling/internal/components"
	"arbowling/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gopkg.in/yaml.v3"
)

var (
	// ErrNoLane is returned when a lane asset has no lane container.
	ErrNoLane = errors.New("scene has no lane container")
	// ErrUnknownComponent is returned for a component type nobody registered.
	ErrUnknownComponent = errors.New("unknown component type")
)

const (
	LaneName = "lane"
	PinTag   = "pin"
)

// --- YAML types ---

type SceneFile struct {
	Name    string      `yaml:"name"`
	Objects []ObjectDef `yaml:"objects"`
}

type ObjectDef struct {
	Name       string      `yaml:"name"`
	Tags       []string    `yaml:"tags,omitempty"`
	Active     *bool       `yaml:"active,omitempty"`
	Position   [3]float32  `yaml:"position"`
	Rotation   [3]float32  `yaml:"rotation"`
	Scale      [3]float32  `yaml:"scale"`
	Components []yaml.Node `yaml:"components"`
	Children   []ObjectDef `yaml:"children,omitempty"`
}

type componentHeader struct {
	Type string `yaml:"type"`
}

// --- Loading ---

// ReadSceneFile reads and parses a YAML scene asset.
func ReadSceneFile(path string) (*SceneFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	sf, err := ParseScene(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sf, nil
}

func ParseScene(data []byte) (*SceneFile, error) {
	var sf SceneFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}
	return &sf, nil
}

// Instantiate builds fresh GameObjects for every root object in the file.
// Each call returns new objects, so a scene can be reloaded any number of times.
func (sf *SceneFile) Instantiate() ([]*engine.GameObject, error) {
	roots := make([]*engine.GameObject, 0, len(sf.Objects))
	for i := range sf.Objects {
		g, err := buildObject(&sf.Objects[i])
		if err != nil {
			return nil, err
		}
		roots = append(roots, g)
	}
	return roots, nil
}

func buildObject(def *ObjectDef) (*engine.GameObject, error) {
	g := engine.NewGameObject(def.Name)
	g.Tags = append([]string(nil), def.Tags...)
	if def.Active != nil {
		g.Active = *def.Active
	}
	g.Transform.Position = rl.Vector3{X: def.Position[0], Y: def.Position[1], Z: def.Position[2]}
	g.Transform.Rotation = rl.Vector3{X: def.Rotation[0], Y: def.Rotation[1], Z: def.Rotation[2]}

	// Default scale to 1 if zero
	if def.Scale != [3]float32{} {
		g.Transform.Scale = rl.Vector3{X: def.Scale[0], Y: def.Scale[1], Z: def.Scale[2]}
	}

	for i := range def.Components {
		node := &def.Components[i]
		var header componentHeader
		if err := node.Decode(&header); err != nil {
			return nil, fmt.Errorf("object %q: component %d: %w", def.Name, i, err)
		}

		c, found, err := engine.CreateComponent(header.Type, node.Decode)
		if !found {
			return nil, fmt.Errorf("object %q: %w: %q", def.Name, ErrUnknownComponent, header.Type)
		}
		if err != nil {
			return nil, fmt.Errorf("object %q: %w", def.Name, err)
		}
		g.AddComponent(c)
	}

	for i := range def.Children {
		child, err := buildObject(&def.Children[i])
		if err != nil {
			return nil, err
		}
		g.AddChild(child)
	}
	return g, nil
}

// --- Lane handles ---

// Lane holds typed handles into a loaded lane asset.
type Lane struct {
	Container        *engine.GameObject
	AmbientLight     *components.Light
	DirectionalLight *components.Light
	// Total is the authored pin count.
	Total int
}

// FindLane locates the lane container among roots (searching their
// subtrees) and resolves its light handles.
func FindLane(roots []*engine.GameObject) (*Lane, error) {
	container := findNamed(roots, LaneName)
	if container == nil {
		return nil, ErrNoLane
	}

	lane := &Lane{Container: container}
	walk(container, func(g *engine.GameObject) {
		for _, c := range g.Components() {
			light, ok := c.(*components.Light)
			if !ok {
				continue
			}
			switch {
			case light.Kind == components.LightAmbient && lane.AmbientLight == nil:
				lane.AmbientLight = light
			case light.Kind == components.LightDirectional && lane.DirectionalLight == nil:
				lane.DirectionalLight = light
			}
		}
	})
	lane.Total = lane.RemainingPins()
	return lane, nil
}

// IsPin reports whether g is a standing pin of this lane.
func (l *Lane) IsPin(g *engine.GameObject) bool {
	return g != nil && !g.Destroyed() && g.Parent == l.Container && g.HasTag(PinTag)
}

// RemainingPins counts the pin-tagged children of the container.
func (l *Lane) RemainingPins() int {
	return len(l.Container.ChildrenWithTag(PinTag))
}

func findNamed(roots []*engine.GameObject, name string) *engine.GameObject {
	var found *engine.GameObject
	for _, root := range roots {
		walk(root, func(g *engine.GameObject) {
			if found == nil && g.Name == name {
				found = g
			}
		})
	}
	return found
}

func walk(g *engine.GameObject, visit func(*engine.GameObject)) {
	visit(g)
	for _, child := range g.Children {
		walk(child, visit)
	}
}
