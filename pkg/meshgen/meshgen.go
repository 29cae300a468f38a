// Package meshgen defines the abstract primitive-mesh generator
// interface. Implementations (sdfx) produce the triangle meshes that
// feed the voxelizer. The abstraction allows swapping mesh sources
// without changing scene setup code.
package meshgen

import (
	"github.com/chazu/cvoxel/pkg/mesh"
)

// Solid is an opaque handle to a generator solid.
// Implementations wrap their internal representation.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Generator is the abstract mesh source interface.
type Generator interface {
	// Primitives
	Box(x, y, z float64) Solid
	Sphere(radius float64) Solid
	Capsule(height, radius float64) Solid
	Torus(major, minor float64) Solid
	Cylinder(height, radius float64) Solid

	// Boolean operations
	Union(a, b Solid) Solid
	Difference(a, b Solid) Solid
	Intersection(a, b Solid) Solid

	// Transforms
	Translate(s Solid, x, y, z float64) Solid
	Rotate(s Solid, x, y, z float64) Solid // Euler angles in degrees

	// Mesh output. cells controls tessellation resolution along the
	// longest axis; cells <= 0 selects an implementation default.
	Mesh(s Solid, cells int) (*mesh.TriMesh, error)
}
