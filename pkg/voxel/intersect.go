package voxel

// IntersectionAABB is the broad phase of the grid-grid intersection test.
// It bounds each grid in world space under its own pose and intersects
// the two boxes axis-wise. ok is false when the grids' world bounds do
// not overlap; a true result may still be a false positive that the
// narrow phase rejects. The returned box is in the world frame, so its
// Center and Size place a visualization box directly.
func (g *Grid) IntersectionAABB(o *Grid) (AABB, bool) {
	return g.WorldAABB().Intersection(o.WorldAABB())
}

// Intersected is the narrow phase: it reports the first pair of occupied
// cells, one from each grid, whose world-space cell bounds overlap. The
// returned values are flat occupancy indices into g and o respectively.
// ok is false when no occupied pair overlaps or either grid has no
// occupied cells.
//
// Occupied cells are scanned in ascending flat-index order on both sides,
// so repeated calls on unchanged grids return the identical pair. The
// candidate sets are pruned to the broad-phase overlap region first; a
// cell pair can only overlap inside that region, so pruning never changes
// which pair is found first.
func (g *Grid) Intersected(o *Grid) (int, int, bool) {
	overlap, ok := g.IntersectionAABB(o)
	if !ok {
		return 0, 0, false
	}

	mine := g.occupiedIn(overlap)
	if len(mine) == 0 {
		return 0, 0, false
	}
	theirs := o.occupiedIn(overlap)
	if len(theirs) == 0 {
		return 0, 0, false
	}

	// World cell bounds of the smaller candidate side are cached; the
	// scan is O(len(mine) * len(theirs)) box-box tests either way.
	theirBoxes := make([]AABB, len(theirs))
	for j, idx := range theirs {
		theirBoxes[j] = o.CellWorldAABB(idx)
	}

	for _, i := range mine {
		boxA := g.CellWorldAABB(i)
		for j, boxB := range theirBoxes {
			if boxA.Overlaps(boxB) {
				return i, theirs[j], true
			}
		}
	}
	return 0, 0, false
}

// occupiedIn returns the flat indices of occupied cells whose world
// bounds touch region, in ascending index order.
func (g *Grid) occupiedIn(region AABB) []int {
	var out []int
	for i, solid := range g.occupancy {
		if !solid {
			continue
		}
		if g.CellWorldAABB(i).Overlaps(region) {
			out = append(out, i)
		}
	}
	return out
}
