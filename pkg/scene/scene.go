// Package scene holds a collection of posed voxel objects and the
// all-pairs intersection scan over them. Scenes are described
// declaratively (YAML or script builtins), validated, then built into
// voxel grids through a meshgen.Generator.
package scene

import (
	"fmt"
	"sort"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/chazu/cvoxel/pkg/meshgen"
	"github.com/chazu/cvoxel/pkg/voxel"
)

// Object is a named voxel grid in a scene. The grid owns its occupancy;
// the scene only repositions it through the grid's pose.
type Object struct {
	Name string
	Grid *voxel.Grid
}

// Scene is an ordered set of voxel objects. Order is insertion order and
// determines scan pair enumeration.
type Scene struct {
	objects []*Object
	byName  map[string]*Object
}

// New returns an empty scene.
func New() *Scene {
	return &Scene{byName: make(map[string]*Object)}
}

// Add inserts a named object. Names must be unique within the scene.
func (s *Scene) Add(name string, g *voxel.Grid) (*Object, error) {
	if name == "" {
		return nil, fmt.Errorf("scene: object name must not be empty")
	}
	if _, dup := s.byName[name]; dup {
		return nil, fmt.Errorf("scene: duplicate object name %q", name)
	}
	obj := &Object{Name: name, Grid: g}
	s.objects = append(s.objects, obj)
	s.byName[name] = obj
	return obj, nil
}

// Get returns the object with the given name, or nil.
func (s *Scene) Get(name string) *Object {
	return s.byName[name]
}

// Objects returns the objects in insertion order. The slice is shared;
// callers must not modify it.
func (s *Scene) Objects() []*Object {
	return s.objects
}

// Len returns the number of objects.
func (s *Scene) Len() int {
	return len(s.objects)
}

// Names returns the object names in sorted order, for stable reporting.
func (s *Scene) Names() []string {
	names := make([]string, 0, len(s.byName))
	for n := range s.byName {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Contact reports the outcome of one pair test from a Scan.
type Contact struct {
	A, B string // object names, A before B in scene order

	// Broad phase: the world-frame overlap box of the two grids.
	Overlap voxel.AABB

	// Narrow phase. When Touching, VoxelA/VoxelB are the flat occupancy
	// indices of the first intersecting cell pair and WorldA/WorldB
	// their world-space cell centers.
	Touching       bool
	VoxelA, VoxelB int
	WorldA, WorldB mgl32.Vec3
}

// Scan runs the two-phase intersection test over every unordered object
// pair, in scene order, and returns one Contact per pair whose broad
// phase overlaps. Pairs with disjoint world bounds produce no Contact.
// The scan reads grid poses; the caller must not mutate poses
// concurrently.
func (s *Scene) Scan() []Contact {
	var contacts []Contact
	for i := 0; i < len(s.objects); i++ {
		for j := i + 1; j < len(s.objects); j++ {
			a, b := s.objects[i], s.objects[j]
			overlap, ok := a.Grid.IntersectionAABB(b.Grid)
			if !ok {
				continue
			}
			c := Contact{A: a.Name, B: b.Name, Overlap: overlap}
			if ia, ib, hit := a.Grid.Intersected(b.Grid); hit {
				c.Touching = true
				c.VoxelA, c.VoxelB = ia, ib
				c.WorldA = a.Grid.Pose().Apply(a.Grid.CellCenter(ia))
				c.WorldB = b.Grid.Pose().Apply(b.Grid.CellCenter(ib))
			}
			contacts = append(contacts, c)
		}
	}
	return contacts
}

// BuildObject voxelizes a shape through the generator and adds it to the
// scene under the given name with the given pose.
func (s *Scene) BuildObject(gen meshgen.Generator, name string, shape ShapeSpec, dx float32, pose voxel.Transform) (*Object, error) {
	solid, err := shape.solid(gen)
	if err != nil {
		return nil, fmt.Errorf("scene: object %q: %w", name, err)
	}
	m, err := gen.Mesh(solid, shape.Cells)
	if err != nil {
		return nil, fmt.Errorf("scene: object %q: mesh: %w", name, err)
	}
	grid, err := voxel.FromMesh(m, dx)
	if err != nil {
		return nil, fmt.Errorf("scene: object %q: voxelize: %w", name, err)
	}
	grid.SetPose(pose)
	return s.Add(name, grid)
}
