package prefabs

import "gopkg.in/yaml.v3"

type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
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

type NameComponentSpec struct {
	Value string `yaml:"value"`
}

type PlayerComponentSpec struct {
	MoveSpeed float64 `yaml:"move_speed"`
	// JumpSpeed of zero derives the impulse from MoveSpeed and the tick rate.
	JumpSpeed float64 `yaml:"jump_speed"`
}

type TransformComponentSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	ScaleX   float64 `yaml:"scale_x"`
	ScaleY   float64 `yaml:"scale_y"`
	Rotation float64 `yaml:"rotation"`
}

type VelocityComponentSpec struct {
	X       float64 `yaml:"x"`
	Y       float64 `yaml:"y"`
	Angular float64 `yaml:"angular"`
}

type ShapeComponentSpec struct {
	Width  float64    `yaml:"width"`
	Height float64    `yaml:"height"`
	Color  *YAMLColor `yaml:"color"`
}

type PhysicsBodyComponentSpec struct {
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	Radius        float64 `yaml:"radius"`
	Mass          float64 `yaml:"mass"`
	Friction      float64 `yaml:"friction"`
	Elasticity    float64 `yaml:"elasticity"`
	Static        bool    `yaml:"static"`
	FixedRotation bool    `yaml:"fixed_rotation"`
	// ScaleWithTransform multiplies width/height by the transform scale.
	ScaleWithTransform bool `yaml:"scale_with_transform"`
}

type GravityScaleComponentSpec struct {
	Scale *float64 `yaml:"scale"`
}

type HistoryComponentSpec struct {
	// Period is the sampling interval in seconds; zero uses the configured
	// cadence.
	Period float64 `yaml:"period"`
}
