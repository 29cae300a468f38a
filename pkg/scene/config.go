package scene

import (
	"fmt"
	"io"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"

	"github.com/chazu/cvoxel/pkg/meshgen"
	"github.com/chazu/cvoxel/pkg/voxel"
)

// Shape kinds accepted by ShapeSpec.
const (
	ShapeBox      = "box"
	ShapeSphere   = "sphere"
	ShapeCapsule  = "capsule"
	ShapeTorus    = "torus"
	ShapeCylinder = "cylinder"

	// Composite kinds combine the A and B operand shapes.
	ShapeUnion        = "union"
	ShapeDifference   = "difference"
	ShapeIntersection = "intersection"
)

// ShapeSpec describes a solid, either a primitive or a boolean
// composite. Which dimension fields apply depends on Kind: box uses
// Size; sphere uses Radius; capsule and cylinder use Height and Radius;
// torus uses Major and Minor; union, difference and intersection use the
// A and B operand specs.
type ShapeSpec struct {
	Kind   string     `yaml:"kind"`
	Size   [3]float64 `yaml:"size,omitempty"`
	Radius float64    `yaml:"radius,omitempty"`
	Height float64    `yaml:"height,omitempty"`
	Major  float64    `yaml:"major,omitempty"`
	Minor  float64    `yaml:"minor,omitempty"`

	// Operands of a composite kind.
	A *ShapeSpec `yaml:"a,omitempty"`
	B *ShapeSpec `yaml:"b,omitempty"`

	// Rotate spins the solid by X-Y-Z Euler angles in degrees, then
	// Offset translates it. Mostly useful on composite operands, to
	// position parts relative to each other.
	Rotate [3]float64 `yaml:"rotate,omitempty"`
	Offset [3]float64 `yaml:"offset,omitempty"`

	// Cells overrides the tessellation resolution; 0 means the
	// generator default.
	Cells int `yaml:"cells,omitempty"`
}

// ObjectSpec describes one posed object in a scene file.
type ObjectSpec struct {
	Name        string     `yaml:"name"`
	Shape       ShapeSpec  `yaml:"shape"`
	DX          float32    `yaml:"dx"`
	Translation [3]float32 `yaml:"translation,omitempty"`
	// Euler is intrinsic X-Y-Z (roll, pitch, yaw) in radians.
	Euler [3]float32 `yaml:"euler,omitempty"`
}

// Config is the root of a scene file.
type Config struct {
	Objects []ObjectSpec `yaml:"objects"`
}

// Load parses a YAML scene description.
func Load(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("scene: read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("scene: parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFile parses a YAML scene description from a file.
func LoadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("scene: open config: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Validate checks the config for structural problems: missing or
// duplicate names, unknown shape kinds, non-positive dimensions.
// The first problem found is returned.
func (c *Config) Validate() error {
	seen := make(map[string]bool)
	for i, obj := range c.Objects {
		where := fmt.Sprintf("scene: object %d (%q)", i, obj.Name)
		if obj.Name == "" {
			return fmt.Errorf("scene: object %d: name is required", i)
		}
		if seen[obj.Name] {
			return fmt.Errorf("%s: duplicate name", where)
		}
		seen[obj.Name] = true
		if obj.DX <= 0 {
			return fmt.Errorf("%s: dx must be positive, got %v", where, obj.DX)
		}
		if err := obj.Shape.validate(); err != nil {
			return fmt.Errorf("%s: %w", where, err)
		}
	}
	return nil
}

func (s ShapeSpec) validate() error {
	switch s.Kind {
	case ShapeBox:
		for _, d := range s.Size {
			if d <= 0 {
				return fmt.Errorf("box size must be positive, got %v", s.Size)
			}
		}
	case ShapeSphere:
		if s.Radius <= 0 {
			return fmt.Errorf("sphere radius must be positive, got %v", s.Radius)
		}
	case ShapeCapsule, ShapeCylinder:
		if s.Height <= 0 || s.Radius <= 0 {
			return fmt.Errorf("%s height and radius must be positive, got %v/%v", s.Kind, s.Height, s.Radius)
		}
	case ShapeTorus:
		if s.Major <= 0 || s.Minor <= 0 || s.Minor >= s.Major {
			return fmt.Errorf("torus needs 0 < minor < major, got %v/%v", s.Minor, s.Major)
		}
	case ShapeUnion, ShapeDifference, ShapeIntersection:
		if s.A == nil || s.B == nil {
			return fmt.Errorf("%s needs both a and b operand shapes", s.Kind)
		}
		if err := s.A.validate(); err != nil {
			return fmt.Errorf("%s operand a: %w", s.Kind, err)
		}
		if err := s.B.validate(); err != nil {
			return fmt.Errorf("%s operand b: %w", s.Kind, err)
		}
	case "":
		return fmt.Errorf("shape kind is required")
	default:
		return fmt.Errorf("unknown shape kind %q", s.Kind)
	}
	return nil
}

// solid builds the shape through a generator, recursing into composite
// operands and applying the per-shape rotation and offset.
func (s ShapeSpec) solid(gen meshgen.Generator) (meshgen.Solid, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}
	sol, err := s.base(gen)
	if err != nil {
		return nil, err
	}
	if s.Rotate != ([3]float64{}) {
		sol = gen.Rotate(sol, s.Rotate[0], s.Rotate[1], s.Rotate[2])
	}
	if s.Offset != ([3]float64{}) {
		sol = gen.Translate(sol, s.Offset[0], s.Offset[1], s.Offset[2])
	}
	return sol, nil
}

func (s ShapeSpec) base(gen meshgen.Generator) (meshgen.Solid, error) {
	switch s.Kind {
	case ShapeBox:
		return gen.Box(s.Size[0], s.Size[1], s.Size[2]), nil
	case ShapeSphere:
		return gen.Sphere(s.Radius), nil
	case ShapeCapsule:
		return gen.Capsule(s.Height, s.Radius), nil
	case ShapeTorus:
		return gen.Torus(s.Major, s.Minor), nil
	case ShapeCylinder:
		return gen.Cylinder(s.Height, s.Radius), nil
	case ShapeUnion, ShapeDifference, ShapeIntersection:
		a, err := s.A.solid(gen)
		if err != nil {
			return nil, err
		}
		b, err := s.B.solid(gen)
		if err != nil {
			return nil, err
		}
		switch s.Kind {
		case ShapeUnion:
			return gen.Union(a, b), nil
		case ShapeDifference:
			return gen.Difference(a, b), nil
		default:
			return gen.Intersection(a, b), nil
		}
	}
	return nil, fmt.Errorf("unknown shape kind %q", s.Kind)
}

// Build voxelizes every object in the config and assembles the scene.
func (c *Config) Build(gen meshgen.Generator) (*Scene, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	s := New()
	for _, spec := range c.Objects {
		pose := voxel.IdentityTransform()
		pose.SetEuler(spec.Euler[0], spec.Euler[1], spec.Euler[2])
		pose.Translation = mgl32.Vec3(spec.Translation)
		if _, err := s.BuildObject(gen, spec.Name, spec.Shape, spec.DX, pose); err != nil {
			return nil, err
		}
	}
	return s, nil
}
