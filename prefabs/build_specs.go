package prefabs

import "gopkg.in/yaml.v3"

// NodeSpec describes one scene node and its subtree. Components are decoded
// lazily by the scene builder through DecodeComponentSpec.
type NodeSpec struct {
	Name       string         `yaml:"name" json:"name"`
	Active     *bool          `yaml:"active,omitempty" json:"active,omitempty"`
	Components map[string]any `yaml:"components,omitempty" json:"components,omitempty"`
	Children   []NodeSpec     `yaml:"children,omitempty" json:"children,omitempty"`
}

// IsActive reports the node's initial active flag (default true).
func (n NodeSpec) IsActive() bool {
	return n.Active == nil || *n.Active
}

// Child returns the direct child named name.
func (n NodeSpec) Child(name string) (NodeSpec, bool) {
	for _, c := range n.Children {
		if c.Name == name {
			return c, true
		}
	}
	return NodeSpec{}, false
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

// TransformComponentSpec is a local transform; rotation is Euler degrees
// applied Z, then X, then Y. Zero scale components default to 1.
type TransformComponentSpec struct {
	X         float64 `yaml:"x"`
	Y         float64 `yaml:"y"`
	Z         float64 `yaml:"z"`
	ScaleX    float64 `yaml:"scale_x"`
	ScaleY    float64 `yaml:"scale_y"`
	ScaleZ    float64 `yaml:"scale_z"`
	RotationX float64 `yaml:"rotation_x"`
	RotationY float64 `yaml:"rotation_y"`
	RotationZ float64 `yaml:"rotation_z"`
}

type LayerComponentSpec struct {
	Index int `yaml:"index"`
}

type RenderLayerComponentSpec struct {
	Index int `yaml:"index"`
}

type MeshRendererComponentSpec struct {
	Shape     string     `yaml:"shape"`
	Image     string     `yaml:"image"`
	Color     *YAMLColor `yaml:"color"`
	Width     float64    `yaml:"width"`
	Height    float64    `yaml:"height"`
	Thickness float64    `yaml:"thickness"`
	Enabled   *bool      `yaml:"enabled"`
}

// CullerComponentSpec lists renderer nodes by path relative to the culler's
// node. Every listed renderer also joins the master list.
type CullerComponentSpec struct {
	Visible  bool     `yaml:"visible"`
	Enabled  []string `yaml:"enabled"`
	Disabled []string `yaml:"disabled"`
}

type CameraComponentSpec struct {
	Layers []int `yaml:"layers"`
}

type LookComponentSpec struct {
	Yaw         float64 `yaml:"yaw"`
	Pitch       float64 `yaml:"pitch"`
	Sensitivity float64 `yaml:"sensitivity"`
	TurnSpeed   float64 `yaml:"turn_speed"`
	PitchTarget string  `yaml:"pitch_target"`
}

type IntroSequenceComponentSpec struct {
	Script string `yaml:"script"`
}
