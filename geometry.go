package bp3d

import "math"

// Axis indexes the three spatial dimensions consistently across the
// package: 0 is width, 1 is height, 2 is depth.
type Axis int

const (
	AxisWidth Axis = iota
	AxisHeight
	AxisDepth
)

// Vector3 is a width/height/depth or x/y/z triple, depending on context.
type Vector3 [3]float64

// OccupancyBox is a committed axis-aligned box in a bin's occupancy
// registry: [x0,x1] x [y0,y1] x [z0,z1].
type OccupancyBox struct {
	X0, X1, Y0, Y1, Z0, Z1 float64
}

// rectIntersect tests whether the 2D projections of two positioned
// boxes onto axes x and y overlap. Centers closer than the sum of
// half-extents on both axes intersect; touching edges (equal
// distance) do not.
func rectIntersect(pos1, dim1, pos2, dim2 Vector3, x, y Axis) bool {
	cx1 := pos1[x] + dim1[x]/2
	cy1 := pos1[y] + dim1[y]/2
	cx2 := pos2[x] + dim2[x]/2
	cy2 := pos2[y] + dim2[y]/2

	ix := math.Max(cx1, cx2) - math.Min(cx1, cx2)
	iy := math.Max(cy1, cy2) - math.Min(cy1, cy2)

	return ix < (dim1[x]+dim2[x])/2 && iy < (dim1[y]+dim2[y])/2
}

// intersect3D reports whether two positioned boxes overlap in all
// three axis-aligned projections, i.e. they occupy overlapping 3D
// volume.
func intersect3D(pos1, dim1, pos2, dim2 Vector3) bool {
	return rectIntersect(pos1, dim1, pos2, dim2, AxisWidth, AxisHeight) &&
		rectIntersect(pos1, dim1, pos2, dim2, AxisHeight, AxisDepth) &&
		rectIntersect(pos1, dim1, pos2, dim2, AxisWidth, AxisDepth)
}

// rectOverlap is the strict open-interval 2D overlap test used by the
// non-stackable adjacency rule.
func rectOverlap(x1, y1, w1, d1, x2, y2, w2, d2 float64) bool {
	return x1 < x2+w2 && x1+w1 > x2 && y1 < y2+d2 && y1+d1 > y2
}

// intRangesOverlap reports whether the half-open integer ranges
// [floor(a0),floor(a1)) and [floor(b0),floor(b1)) share at least one
// integer. Coordinates are truncated toward zero before comparing,
// reproducing the grid-snap discretization the fix-point relaxation
// and the stability test both rely on.
func intRangesOverlap(a0, a1, b0, b1 float64) bool {
	fa0, fa1 := math.Floor(a0), math.Floor(a1)
	fb0, fb1 := math.Floor(b0), math.Floor(b1)
	return math.Max(fa0, fb0) < math.Min(fa1, fb1)
}

// intRangeOverlapCount returns the number of integers shared by the
// half-open ranges [floor(a0),floor(a1)) and [floor(b0),floor(b1)),
// used as an area proxy by the support-ratio stability test.
func intRangeOverlapCount(a0, a1, b0, b1 float64) float64 {
	fa0, fa1 := math.Floor(a0), math.Floor(a1)
	fb0, fb1 := math.Floor(b0), math.Floor(b1)
	c := math.Min(fa1, fb1) - math.Max(fa0, fb0)
	if c < 0 {
		return 0
	}
	return c
}
