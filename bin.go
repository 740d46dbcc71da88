package bp3d

import (
	"fmt"
	"sort"
)

// PutType selects the post-pack item ordering strategy (put_order) for
// a bin. PutUnspecified is treated as PutGeneral for placement
// purposes but is skipped entirely by put_order.
type PutType int

const (
	PutUnspecified PutType = 0
	PutGeneral     PutType = 1
	PutOpenTop     PutType = 2
)

// Bin is a rectangular container items are packed into.
type Bin struct {
	Name      string
	Width     float64
	Height    float64
	Depth     float64
	MaxWeight float64
	Corner    float64
	PutType   PutType

	Items         []*Item
	UnfittedItems []*Item

	fitItems []OccupancyBox

	FixPoint            bool
	CheckStable         bool
	SupportSurfaceRatio float64

	Gravity [4]float64
}

// NewBin constructs a Bin with the sentinel floor row already present
// in its occupancy registry.
func NewBin(name string, whd Vector3, maxWeight float64, corner float64, putType PutType) *Bin {
	return &Bin{
		Name:      name,
		Width:     whd[0],
		Height:    whd[1],
		Depth:     whd[2],
		MaxWeight: maxWeight,
		Corner:    corner,
		PutType:   putType,
		fitItems:  []OccupancyBox{{0, whd[0], 0, whd[1], 0, 0}},
	}
}

// Volume returns width*height*depth.
func (b *Bin) Volume() float64 {
	return b.Width * b.Height * b.Depth
}

// TotalWeight sums the weight of every committed item.
func (b *Bin) TotalWeight() float64 {
	var total float64
	for _, it := range b.Items {
		total += it.Weight
	}
	return total
}

// PutItem tries every rotation in item.Rotations, in order, at pivot.
// It commits and returns true on the first rotation whose full
// pipeline passes. A boundary or 3D-intersection failure tries the
// next rotation; a weight, non-stackable-adjacency, or stability
// failure returns false immediately without trying further rotations.
// This asymmetry is intentional and observable in committed output.
func (b *Bin) PutItem(item *Item, pivot Vector3) bool {
	validPosition := item.Position
	item.Position = pivot

	for _, rotation := range item.Rotations {
		item.Rotation = rotation
		dim := item.GetDimension(rotation)

		if b.exceedsBoundaries(dim, pivot) {
			continue
		}

		fits := true
		for _, placed := range b.Items {
			if intersect3D(placed.Position, placed.GetDimension(placed.Rotation), pivot, dim) {
				fits = false
				break
			}
		}

		if !fits {
			item.Position = validPosition
			continue
		}

		if b.exceedsWeightLimit(item) {
			item.Position = validPosition
			return false
		}

		adjustedDim, adjustedPivot := dim, pivot
		if b.FixPoint {
			adjustedDim, adjustedPivot = b.adjustPivot(dim, pivot)

			if b.checkOverlap(adjustedDim, adjustedPivot, item.Stackable) {
				item.Position = validPosition
				return false
			}

			if b.CheckStable && !b.checkStability(adjustedDim, adjustedPivot) {
				item.Position = validPosition
				return false
			}
		}

		b.fitItems = append(b.fitItems, OccupancyBox{
			adjustedPivot[0], adjustedPivot[0] + adjustedDim[0],
			adjustedPivot[1], adjustedPivot[1] + adjustedDim[1],
			adjustedPivot[2], adjustedPivot[2] + adjustedDim[2],
		})
		item.Position = adjustedPivot
		b.Items = append(b.Items, item.clone())
		return true
	}

	item.Position = validPosition
	return false
}

func (b *Bin) exceedsBoundaries(dim, pivot Vector3) bool {
	return pivot[0]+dim[0] > b.Width ||
		pivot[1]+dim[1] > b.Height ||
		pivot[2]+dim[2] > b.Depth
}

func (b *Bin) exceedsWeightLimit(item *Item) bool {
	return b.TotalWeight()+item.Weight > b.MaxWeight
}

// adjustPivot is the gravity-assisted fix-point relaxation: three
// passes of snapping Y (down), then X (toward zero), then Z (toward
// zero), each recomputed against the latest pivot. The pass order is
// load-bearing: it biases items to rest on supports first, then
// against the left wall, then against the back wall.
func (b *Bin) adjustPivot(dim, pivot Vector3) (Vector3, Vector3) {
	for pass := 0; pass < 3; pass++ {
		box := boxAt(pivot, dim)
		pivot[1] = b.checkHeight(box)

		box = boxAt(pivot, dim)
		pivot[0] = b.checkWidth(box)

		box = boxAt(pivot, dim)
		pivot[2] = b.checkDepth(box)
	}
	return dim, pivot
}

func boxAt(pivot, dim Vector3) OccupancyBox {
	return OccupancyBox{
		pivot[0], pivot[0] + dim[0],
		pivot[1], pivot[1] + dim[1],
		pivot[2], pivot[2] + dim[2],
	}
}

// checkHeight snaps a tentative box along Y to the lowest top face
// (the floor at 0, or an existing box whose X and Z projections overlap
// the box's) that has a gap above it at least the box's Y extent tall.
func (b *Bin) checkHeight(box OccupancyBox) float64 {
	intervals := [][2]float64{{0, 0}, {b.Height, b.Height}}
	for _, fi := range b.fitItems {
		if intRangesOverlap(box.X0, box.X1, fi.X0, fi.X1) && intRangesOverlap(box.Z0, box.Z1, fi.Z0, fi.Z1) {
			intervals = append(intervals, [2]float64{fi.Y0, fi.Y1})
		}
	}
	return relax(intervals, box.Y1-box.Y0, box.Y0)
}

// checkWidth snaps a tentative box toward zero along X.
func (b *Bin) checkWidth(box OccupancyBox) float64 {
	intervals := [][2]float64{{0, 0}, {b.Width, b.Width}}
	for _, fi := range b.fitItems {
		if intRangesOverlap(box.Z0, box.Z1, fi.Z0, fi.Z1) && intRangesOverlap(box.Y0, box.Y1, fi.Y0, fi.Y1) {
			intervals = append(intervals, [2]float64{fi.X0, fi.X1})
		}
	}
	return relax(intervals, box.X1-box.X0, box.X0)
}

// checkDepth snaps a tentative box toward zero along Z.
func (b *Bin) checkDepth(box OccupancyBox) float64 {
	intervals := [][2]float64{{0, 0}, {b.Depth, b.Depth}}
	for _, fi := range b.fitItems {
		if intRangesOverlap(box.X0, box.X1, fi.X0, fi.X1) && intRangesOverlap(box.Y0, box.Y1, fi.Y0, fi.Y1) {
			intervals = append(intervals, [2]float64{fi.Z0, fi.Z1})
		}
	}
	return relax(intervals, box.Z1-box.Z0, box.Z0)
}

// relax sorts intervals by upper endpoint and returns the first gap
// wide enough to hold topExtent, or fallback if none qualifies.
func relax(intervals [][2]float64, topExtent, fallback float64) float64 {
	sort.SliceStable(intervals, func(i, j int) bool {
		return intervals[i][1] < intervals[j][1]
	})
	for j := 0; j < len(intervals)-1; j++ {
		if intervals[j+1][0]-intervals[j][1] >= topExtent {
			return intervals[j][1]
		}
	}
	return fallback
}

// checkStability applies the support-ratio rule, falling back to the
// four-vertex rule when the support ratio is insufficient.
func (b *Bin) checkStability(dim, pivot Vector3) bool {
	baseArea := dim[0] * dim[1]
	var supportArea float64
	for _, fi := range b.fitItems {
		if pivot[2] == fi.Z1 {
			supportArea += intRangeOverlapCount(pivot[0], pivot[0]+dim[0], fi.X0, fi.X1) *
				intRangeOverlapCount(pivot[1], pivot[1]+dim[1], fi.Y0, fi.Y1)
		}
	}
	if supportArea/baseArea < b.SupportSurfaceRatio {
		return b.checkVerticesSupport(dim, pivot)
	}
	return true
}

func (b *Bin) checkVerticesSupport(dim, pivot Vector3) bool {
	vertices := [4][2]float64{
		{pivot[0], pivot[1]},
		{pivot[0] + dim[0], pivot[1]},
		{pivot[0], pivot[1] + dim[1]},
		{pivot[0] + dim[0], pivot[1] + dim[1]},
	}
	var supported [4]bool
	for _, fi := range b.fitItems {
		if pivot[2] != fi.Z1 {
			continue
		}
		for idx, v := range vertices {
			if fi.X0 <= v[0] && v[0] <= fi.X1 && fi.Y0 <= v[1] && v[1] <= fi.Y1 {
				supported[idx] = true
			}
		}
	}
	return supported[0] && supported[1] && supported[2] && supported[3]
}

// checkOverlap is the non-stackable adjacency rule: rejects a
// placement that rests a new item directly on a non-stackable placed
// item, or that would place something directly above or below a
// non-stackable new item, whenever the X-Z footprints overlap.
func (b *Bin) checkOverlap(dim, pivot Vector3, stackable bool) bool {
	x1, y1, z1 := pivot[0], pivot[1], pivot[2]
	w1, h1, d1 := dim[0], dim[1], dim[2]

	for _, placed := range b.Items {
		x2, y2, z2 := placed.Position[0], placed.Position[1], placed.Position[2]
		placedDim := placed.GetDimension(placed.Rotation)
		w2, h2, d2 := placedDim[0], placedDim[1], placedDim[2]

		if !placed.Stackable {
			if y1 == y2+h2 && rectOverlap(x1, z1, w1, d1, x2, z2, w2, d2) {
				return true
			}
		}

		if !stackable {
			if (y1+h1 == y2 || y1 == y2+h2) && rectOverlap(x1, z1, w1, d1, x2, z2, w2, d2) {
				return true
			}
		}
	}
	return false
}

// AddCorners returns the eight cubic corner-reinforcement items for
// this bin's Corner edge length, or nil if Corner is zero.
func (b *Bin) AddCorners() []*Item {
	if b.Corner == 0 {
		return nil
	}
	corners := make([]*Item, 8)
	for i := 0; i < 8; i++ {
		corners[i] = NewItem(
			fmt.Sprintf("corner%d", i), "corner", ShapeCube,
			Vector3{b.Corner, b.Corner, b.Corner}, 0, 0, 0, true, "gray",
		)
	}
	return corners
}

// PutCorner places corner item index at one of the bin's eight fixed
// corner positions and records its occupancy.
func (b *Bin) PutCorner(index int, item *Item) {
	c := b.Corner
	x, y, z := b.Width-c, b.Height-c, b.Depth-c
	positions := [8]Vector3{
		{0, 0, 0}, {0, 0, z}, {0, y, z}, {0, y, 0},
		{x, y, 0}, {x, 0, 0}, {x, 0, z}, {x, y, z},
	}
	item.Position = positions[index]
	b.Items = append(b.Items, item)
	b.fitItems = append(b.fitItems, OccupancyBox{
		item.Position[0], item.Position[0] + c,
		item.Position[1], item.Position[1] + c,
		item.Position[2], item.Position[2] + c,
	})
}

// ClearBin resets committed items and the occupancy registry back to
// the empty sentinel-floor state, leaving UnfittedItems untouched.
func (b *Bin) ClearBin() {
	b.Items = nil
	b.fitItems = []OccupancyBox{{0, b.Width, 0, b.Height, 0, 0}}
}

func (b *Bin) String() string {
	return fmt.Sprintf("%s(%gx%gx%g, max_weight:%g)", b.Name, b.Width, b.Height, b.Depth, b.MaxWeight)
}
