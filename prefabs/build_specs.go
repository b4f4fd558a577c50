package prefabs

import "gopkg.in/yaml.v3"

type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

// DecodeComponentSpec re-decodes one loosely typed component block into T.
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

type BodyComponentSpec struct {
	Width  float64  `yaml:"width"`
	Height float64  `yaml:"height"`
	Layers []string `yaml:"layers"`
	Mask   []string `yaml:"mask"`
	Solid  *bool    `yaml:"solid"`
	OneWay bool     `yaml:"one_way"`
}

type MoverComponentSpec struct {
	VelocityX        float64 `yaml:"velocity_x"`
	VelocityY        float64 `yaml:"velocity_y"`
	ExternalFriction float64 `yaml:"external_friction"`
	Pushable         bool    `yaml:"pushable"`
	Slide            *bool   `yaml:"slide"`
}

type SensorComponentSpec struct {
	Mask   []string `yaml:"mask"`
	Active *bool    `yaml:"active"`
}

type SpriteComponentSpec struct {
	Color      YAMLColor `yaml:"color"`
	Width      float64   `yaml:"width"`
	Height     float64   `yaml:"height"`
	Layer      int       `yaml:"layer"`
	FacingLeft bool      `yaml:"facing_left"`
}

type PlayerComponentSpec struct {
	MoveSpeed    float64 `yaml:"move_speed"`
	JumpSpeed    float64 `yaml:"jump_speed"`
	Gravity      float64 `yaml:"gravity"`
	MaxFall      float64 `yaml:"max_fall"`
	CoyoteFrames int     `yaml:"coyote_frames"`
}

type ControllerComponentSpec struct {
	Script    string  `yaml:"script"`
	Speed     float64 `yaml:"speed"`
	Gravity   float64 `yaml:"gravity"`
	Direction float64 `yaml:"direction"`
}

type CameraComponentSpec struct {
	Zoom       float64 `yaml:"zoom"`
	Smoothness float64 `yaml:"smoothness"`
}
