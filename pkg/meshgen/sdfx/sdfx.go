// Package sdfx implements the meshgen.Generator interface using the
// github.com/deadsy/sdfx SDF-based CAD library. Solids are signed
// distance fields; Mesh tessellates them with marching cubes.
package sdfx

import (
	"fmt"
	"math"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/chazu/cvoxel/pkg/mesh"
	"github.com/chazu/cvoxel/pkg/meshgen"
)

// Compile-time interface check.
var _ meshgen.Generator = (*Generator)(nil)

// defaultMeshCells controls marching cubes tessellation resolution when
// the caller does not specify one.
const defaultMeshCells = 64

// sdfxSolid wraps an sdf.SDF3 to implement meshgen.Solid.
type sdfxSolid struct {
	s sdf.SDF3
}

// BoundingBox returns the axis-aligned bounding box.
func (s *sdfxSolid) BoundingBox() (min, max [3]float64) {
	bb := s.s.BoundingBox()
	min = [3]float64{bb.Min.X, bb.Min.Y, bb.Min.Z}
	max = [3]float64{bb.Max.X, bb.Max.Y, bb.Max.Z}
	return min, max
}

// Generator implements meshgen.Generator using sdfx.
type Generator struct{}

// New returns a new sdfx-backed Generator.
func New() *Generator {
	return &Generator{}
}

// unwrap extracts the underlying sdf.SDF3 from a meshgen.Solid.
func unwrap(s meshgen.Solid) sdf.SDF3 {
	return s.(*sdfxSolid).s
}

// wrap creates a meshgen.Solid from an sdf.SDF3.
func wrap(s sdf.SDF3) meshgen.Solid {
	return &sdfxSolid{s: s}
}

// Box creates a box with the given dimensions, centered at the origin.
// The voxelizer centers its grid on the mesh bounding box, so primitives
// stay center-origin here.
func (g *Generator) Box(x, y, z float64) meshgen.Solid {
	s, err := sdf.Box3D(v3.Vec{X: x, Y: y, Z: z}, 0)
	if err != nil {
		panic(fmt.Sprintf("sdfx.Box3D: %v", err))
	}
	return wrap(s)
}

// Sphere creates a sphere of the given radius centered at the origin.
func (g *Generator) Sphere(radius float64) meshgen.Solid {
	s, err := sdf.Sphere3D(radius)
	if err != nil {
		panic(fmt.Sprintf("sdfx.Sphere3D: %v", err))
	}
	return wrap(s)
}

// Capsule creates a Z-aligned capsule: a cylinder of the given height
// between the centers of two hemispherical caps of the given radius.
// Modeled as a fully rounded cylinder.
func (g *Generator) Capsule(height, radius float64) meshgen.Solid {
	s, err := sdf.Cylinder3D(height+2*radius, radius, radius)
	if err != nil {
		panic(fmt.Sprintf("sdfx.Cylinder3D: %v", err))
	}
	return wrap(s)
}

// Torus creates a torus around the Z axis: a tube of the given minor
// radius revolved at the given major radius. Built by revolving an
// offset 2D circle.
func (g *Generator) Torus(major, minor float64) meshgen.Solid {
	circle, err := sdf.Circle2D(minor)
	if err != nil {
		panic(fmt.Sprintf("sdfx.Circle2D: %v", err))
	}
	profile := sdf.Transform2D(circle, sdf.Translate2d(v2.Vec{X: major, Y: 0}))
	s, err := sdf.Revolve3D(profile)
	if err != nil {
		panic(fmt.Sprintf("sdfx.Revolve3D: %v", err))
	}
	return wrap(s)
}

// Cylinder creates a Z-aligned cylinder with the given height and radius.
func (g *Generator) Cylinder(height, radius float64) meshgen.Solid {
	s, err := sdf.Cylinder3D(height, radius, 0)
	if err != nil {
		panic(fmt.Sprintf("sdfx.Cylinder3D: %v", err))
	}
	return wrap(s)
}

// Union returns the union of two solids.
func (g *Generator) Union(a, b meshgen.Solid) meshgen.Solid {
	return wrap(sdf.Union3D(unwrap(a), unwrap(b)))
}

// Difference returns the difference a - b.
func (g *Generator) Difference(a, b meshgen.Solid) meshgen.Solid {
	return wrap(sdf.Difference3D(unwrap(a), unwrap(b)))
}

// Intersection returns the intersection of two solids.
func (g *Generator) Intersection(a, b meshgen.Solid) meshgen.Solid {
	return wrap(sdf.Intersect3D(unwrap(a), unwrap(b)))
}

// Translate moves a solid by (x, y, z).
func (g *Generator) Translate(s meshgen.Solid, x, y, z float64) meshgen.Solid {
	m := sdf.Translate3d(v3.Vec{X: x, Y: y, Z: z})
	return wrap(sdf.Transform3D(unwrap(s), m))
}

// Rotate rotates a solid by Euler angles (degrees) around X, Y, Z axes.
func (g *Generator) Rotate(s meshgen.Solid, x, y, z float64) meshgen.Solid {
	xRad := x * math.Pi / 180.0
	yRad := y * math.Pi / 180.0
	zRad := z * math.Pi / 180.0

	m := sdf.RotateZ(zRad).Mul(sdf.RotateY(yRad)).Mul(sdf.RotateX(xRad))
	return wrap(sdf.Transform3D(unwrap(s), m))
}

// Mesh tessellates a solid into a triangle soup using marching cubes.
// The output has no index buffer; vertices appear 3 per triangle, which
// is what the voxelizer's non-indexed path consumes.
func (g *Generator) Mesh(s meshgen.Solid, cells int) (*mesh.TriMesh, error) {
	if cells <= 0 {
		cells = defaultMeshCells
	}
	sdf3 := unwrap(s)

	renderer := render.NewMarchingCubesUniform(cells)
	triangles := render.ToTriangles(sdf3, renderer)
	if len(triangles) == 0 {
		return nil, fmt.Errorf("marching cubes produced no triangles")
	}

	out := &mesh.TriMesh{
		Positions: make([]mgl32.Vec3, 0, len(triangles)*3),
	}
	for _, tri := range triangles {
		for j := 0; j < 3; j++ {
			v := tri[j]
			out.Positions = append(out.Positions, mgl32.Vec3{
				float32(v.X), float32(v.Y), float32(v.Z),
			})
		}
	}
	return out, nil
}
