package engine

import (
	"fmt"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/cvoxel/pkg/meshgen"
	"github.com/chazu/cvoxel/pkg/scene"
	"github.com/chazu/cvoxel/pkg/voxel"
)

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpVec3 wraps a 3-component vector literal.
type sexpVec3 struct {
	v [3]float64
}

func (v *sexpVec3) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %.3f %.3f %.3f)", v.v[0], v.v[1], v.v[2])
}
func (v *sexpVec3) Type() *zygo.RegisteredType { return nil }

// sexpShape wraps a scene.ShapeSpec so shape expressions can be passed
// to `object`.
type sexpShape struct {
	spec scene.ShapeSpec
}

func (s *sexpShape) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(shape %s)", s.spec.Kind)
}
func (s *sexpShape) Type() *zygo.RegisteredType { return nil }

// sexpObject wraps a built scene object so pose builtins can target it.
type sexpObject struct {
	obj *scene.Object
}

func (o *sexpObject) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(object %q)", o.obj.Name)
}
func (o *sexpObject) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
// Keywords are identified by the __kw_ prefix added during preprocessing.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toVec3 extracts a [3]float64 from a sexpVec3.
func toVec3(s zygo.Sexp) ([3]float64, error) {
	if v, ok := s.(*sexpVec3); ok {
		return v.v, nil
	}
	return [3]float64{}, fmt.Errorf("expected vec3, got %T (%s)", s, s.SexpString(nil))
}

// toShape extracts a ShapeSpec from a sexpShape.
func toShape(s zygo.Sexp) (scene.ShapeSpec, error) {
	if sh, ok := s.(*sexpShape); ok {
		return sh.spec, nil
	}
	return scene.ShapeSpec{}, fmt.Errorf("expected shape expression, got %T (%s)", s, s.SexpString(nil))
}

// toObject resolves an object argument: either an object reference or a
// scene object name.
func toObject(s zygo.Sexp, sc *scene.Scene) (*scene.Object, error) {
	switch v := s.(type) {
	case *sexpObject:
		return v.obj, nil
	case *zygo.SexpStr:
		if obj := sc.Get(v.S); obj != nil {
			return obj, nil
		}
		return nil, fmt.Errorf("no object named %q", v.S)
	}
	return nil, fmt.Errorf("expected object or object name, got %T (%s)", s, s.SexpString(nil))
}

// kwFloat reads an optional numeric keyword argument into dst.
func kwFloat(pa kwArgs, name string, dst *float64) error {
	v, ok := pa.kw[name]
	if !ok {
		return nil
	}
	f, err := toFloat64(v)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	*dst = f
	return nil
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the scene DSL builtins into a zygomys
// environment. The builtins voxelize and pose objects in the provided
// scene during evaluation.
//
// Source code must be preprocessed with preprocessSource() before
// evaluation so that :keyword tokens become recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, gen meshgen.Generator, sc *scene.Scene) {

	// -----------------------------------------------------------------------
	// (vec3 x y z)
	// -----------------------------------------------------------------------
	env.AddFunction("vec3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("vec3 requires exactly 3 numbers")
		}
		var out [3]float64
		for i, a := range args {
			f, err := toFloat64(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("vec3: component %d: %w", i, err)
			}
			out[i] = f
		}
		return &sexpVec3{v: out}, nil
	})

	// -----------------------------------------------------------------------
	// Shape expressions:
	//   (box :size (vec3 1 0.5 0.25))
	//   (sphere :radius 0.3)
	//   (capsule :height 0.7 :radius 0.3)
	//   (torus :major 0.5 :minor 0.2)
	//   (cylinder :height 0.5 :radius 0.2)
	//   (union shA shB), (difference shA shB), (intersection shA shB)
	// All accept :cells N to override tessellation resolution,
	// :rotate (vec3 x y z) in degrees, and :offset (vec3 x y z) to pose a
	// part within a composite.
	// -----------------------------------------------------------------------
	shapeBuiltin := func(kind string, fill func(pa kwArgs, spec *scene.ShapeSpec) error) {
		env.AddFunction(kind, func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			pa := parseArgs(args)
			spec := scene.ShapeSpec{Kind: kind}
			if err := fill(pa, &spec); err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", kind, err)
			}
			if err := fillCommonShapeArgs(pa, &spec); err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", kind, err)
			}
			return &sexpShape{spec: spec}, nil
		})
	}

	shapeBuiltin(scene.ShapeBox, func(pa kwArgs, spec *scene.ShapeSpec) error {
		v, ok := pa.kw["size"]
		if !ok {
			return fmt.Errorf("size is required")
		}
		size, err := toVec3(v)
		if err != nil {
			return fmt.Errorf("size: %w", err)
		}
		spec.Size = size
		return nil
	})

	shapeBuiltin(scene.ShapeSphere, func(pa kwArgs, spec *scene.ShapeSpec) error {
		return kwFloat(pa, "radius", &spec.Radius)
	})

	shapeBuiltin(scene.ShapeCapsule, func(pa kwArgs, spec *scene.ShapeSpec) error {
		if err := kwFloat(pa, "height", &spec.Height); err != nil {
			return err
		}
		return kwFloat(pa, "radius", &spec.Radius)
	})

	shapeBuiltin(scene.ShapeTorus, func(pa kwArgs, spec *scene.ShapeSpec) error {
		if err := kwFloat(pa, "major", &spec.Major); err != nil {
			return err
		}
		return kwFloat(pa, "minor", &spec.Minor)
	})

	shapeBuiltin(scene.ShapeCylinder, func(pa kwArgs, spec *scene.ShapeSpec) error {
		if err := kwFloat(pa, "height", &spec.Height); err != nil {
			return err
		}
		return kwFloat(pa, "radius", &spec.Radius)
	})

	shapeBuiltin(scene.ShapeUnion, csgOperands)
	shapeBuiltin(scene.ShapeDifference, csgOperands)
	shapeBuiltin(scene.ShapeIntersection, csgOperands)

	// -----------------------------------------------------------------------
	// (object "name" (sphere :radius 0.3) :dx 0.05 :at (vec3 0.5 0 0)
	//         :euler (vec3 0 0 1.57))
	// Voxelizes the shape and adds it to the scene.
	// -----------------------------------------------------------------------
	env.AddFunction("object", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) < 2 {
			return zygo.SexpNull, fmt.Errorf("object requires a name and a shape expression")
		}

		objName, err := toString(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("object: name: %w", err)
		}
		shape, err := toShape(pa.positional[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("object: %w", err)
		}

		dx := 0.05
		if err := kwFloat(pa, "dx", &dx); err != nil {
			return zygo.SexpNull, fmt.Errorf("object: %w", err)
		}

		pose := voxel.IdentityTransform()
		if v, ok := pa.kw["euler"]; ok {
			e, err := toVec3(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("object: euler: %w", err)
			}
			pose.SetEuler(float32(e[0]), float32(e[1]), float32(e[2]))
		}
		if v, ok := pa.kw["at"]; ok {
			at, err := toVec3(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("object: at: %w", err)
			}
			pose.Translation = vec32(at)
		}

		obj, err := sc.BuildObject(gen, objName, shape, float32(dx), pose)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("object: %w", err)
		}
		return &sexpObject{obj: obj}, nil
	})

	// -----------------------------------------------------------------------
	// (move obj x y z) - replace the object's translation
	// -----------------------------------------------------------------------
	env.AddFunction("move", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		obj, v, err := objectAndVec(args, sc, "move")
		if err != nil {
			return zygo.SexpNull, err
		}
		obj.Grid.SetTranslation(vec32(v))
		return &sexpObject{obj: obj}, nil
	})

	// -----------------------------------------------------------------------
	// (rotate obj roll pitch yaw) - replace the object's rotation
	// (intrinsic X-Y-Z Euler angles, radians)
	// -----------------------------------------------------------------------
	env.AddFunction("rotate", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		obj, v, err := objectAndVec(args, sc, "rotate")
		if err != nil {
			return zygo.SexpNull, err
		}
		obj.Grid.SetEuler(float32(v[0]), float32(v[1]), float32(v[2]))
		return &sexpObject{obj: obj}, nil
	})

	// -----------------------------------------------------------------------
	// (scan) - run the all-pairs intersection scan now; returns the number
	// of pairs with touching voxels. Scripts can branch on mid-build
	// contact counts; the final report always re-scans.
	// -----------------------------------------------------------------------
	env.AddFunction("scan", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 0 {
			return zygo.SexpNull, fmt.Errorf("scan takes no arguments")
		}
		touching := int64(0)
		for _, c := range sc.Scan() {
			if c.Touching {
				touching++
			}
		}
		return &zygo.SexpInt{Val: touching}, nil
	})
}

// fillCommonShapeArgs reads the keyword arguments every shape
// expression accepts: :cells, :rotate (degrees), :offset.
func fillCommonShapeArgs(pa kwArgs, spec *scene.ShapeSpec) error {
	var cells float64
	if err := kwFloat(pa, "cells", &cells); err != nil {
		return err
	}
	spec.Cells = int(cells)
	if v, ok := pa.kw["rotate"]; ok {
		r, err := toVec3(v)
		if err != nil {
			return fmt.Errorf("rotate: %w", err)
		}
		spec.Rotate = r
	}
	if v, ok := pa.kw["offset"]; ok {
		o, err := toVec3(v)
		if err != nil {
			return fmt.Errorf("offset: %w", err)
		}
		spec.Offset = o
	}
	return nil
}

// csgOperands fills a composite shape's A and B operands from the two
// positional shape expressions.
func csgOperands(pa kwArgs, spec *scene.ShapeSpec) error {
	if len(pa.positional) != 2 {
		return fmt.Errorf("requires exactly 2 shape operands")
	}
	a, err := toShape(pa.positional[0])
	if err != nil {
		return fmt.Errorf("operand a: %w", err)
	}
	b, err := toShape(pa.positional[1])
	if err != nil {
		return fmt.Errorf("operand b: %w", err)
	}
	spec.A = &a
	spec.B = &b
	return nil
}

// objectAndVec parses the common (builtin obj x y z) argument shape.
func objectAndVec(args []zygo.Sexp, sc *scene.Scene, builtin string) (*scene.Object, [3]float64, error) {
	if len(args) != 4 {
		return nil, [3]float64{}, fmt.Errorf("%s requires an object and 3 numbers", builtin)
	}
	obj, err := toObject(args[0], sc)
	if err != nil {
		return nil, [3]float64{}, fmt.Errorf("%s: %w", builtin, err)
	}
	var v [3]float64
	for i := 0; i < 3; i++ {
		f, err := toFloat64(args[i+1])
		if err != nil {
			return nil, [3]float64{}, fmt.Errorf("%s: component %d: %w", builtin, i, err)
		}
		v[i] = f
	}
	return obj, v, nil
}

func vec32(v [3]float64) [3]float32 {
	return [3]float32{float32(v[0]), float32(v[1]), float32(v[2])}
}
