package bp3d

import (
	"fmt"

	"github.com/google/uuid"
)

// Shape is the physical form of an item, which constrains its default
// rotation set and its projected footprint for certain checks.
type Shape string

const (
	ShapeCube     Shape = "cube"
	ShapeCylinder Shape = "cylinder"
)

// Item is an immutable-by-convention descriptor of a piece of cargo.
// Position and Rotation are the only fields the packer mutates, and
// only speculatively during Bin.PutItem; the bin commits a detached
// clone on success, so mutating the original after a pack has no
// effect on the placed record.
type Item struct {
	id uuid.UUID

	PartNo     string
	Group      string
	Shape      Shape
	Width      float64
	Height     float64
	Depth      float64
	Weight     float64
	Priority   int
	LoadBear   int
	Upsidedown bool
	Color      string
	Stackable  bool
	Rotations  []Rotation

	Position Vector3
	Rotation Rotation
}

// ItemOption configures optional Item fields at construction.
type ItemOption func(*Item)

// WithStackable overrides the default Stackable=true.
func WithStackable(stackable bool) ItemOption {
	return func(i *Item) { i.Stackable = stackable }
}

// WithRotations overrides the shape/upsidedown-derived default rotation
// set. The slice must be non-empty; a caller supplying an empty set is
// a programming error per spec.
func WithRotations(rotations ...Rotation) ItemOption {
	return func(i *Item) { i.Rotations = rotations }
}

// NewItem constructs an Item. shape=cylinder forces upsidedown=false.
// When no rotations are supplied via WithRotations, the default set is
// the two upright rotations for cylinders and non-upsidedown cubes, or
// all six rotations otherwise.
func NewItem(partno, group string, shape Shape, whd Vector3, weight float64, priority, loadbear int, upsidedown bool, color string, opts ...ItemOption) *Item {
	if shape == ShapeCylinder {
		upsidedown = false
	}

	it := &Item{
		id:         uuid.New(),
		PartNo:     partno,
		Group:      group,
		Shape:      shape,
		Width:      whd[0],
		Height:     whd[1],
		Depth:      whd[2],
		Weight:     weight,
		Priority:   priority,
		LoadBear:   loadbear,
		Upsidedown: upsidedown,
		Color:      color,
		Stackable:  true,
		Rotation:   WHD,
	}

	for _, opt := range opts {
		opt(it)
	}

	if it.Rotations == nil {
		it.Rotations = defaultRotations(shape, upsidedown)
	}

	return it
}

// ID returns the item's unique identifier, generated at construction.
func (i *Item) ID() uuid.UUID {
	return i.id
}

func defaultRotations(shape Shape, upsidedown bool) []Rotation {
	if shape == ShapeCylinder || !upsidedown {
		return append([]Rotation{}, uprightRotations...)
	}
	return append([]Rotation{}, AllRotations...)
}

// whd returns the item's base (unrotated) dimensions.
func (i *Item) whd() Vector3 {
	return Vector3{i.Width, i.Height, i.Depth}
}

// GetDimension projects the item's base dimensions under rotation r.
func (i *Item) GetDimension(r Rotation) Vector3 {
	return permute(i.whd(), r)
}

// Volume returns width*height*depth.
func (i *Item) Volume() float64 {
	return i.Width * i.Height * i.Depth
}

// GetMaxArea returns the product of the item's two largest base
// dimensions if it may rest upside down, or of width and height
// otherwise.
func (i *Item) GetMaxArea() float64 {
	if !i.Upsidedown {
		return i.Width * i.Height
	}
	dims := []float64{i.Width, i.Height, i.Depth}
	// sort descending, three elements
	if dims[0] < dims[1] {
		dims[0], dims[1] = dims[1], dims[0]
	}
	if dims[1] < dims[2] {
		dims[1], dims[2] = dims[2], dims[1]
	}
	if dims[0] < dims[1] {
		dims[0], dims[1] = dims[1], dims[0]
	}
	return dims[0] * dims[1]
}

// GetHorizontalDimensions returns the allowed rotations under which the
// item's largest base dimension is NOT the vertical (height) axis.
func (i *Item) GetHorizontalDimensions() []Rotation {
	maxDim := maxOf(i.Width, i.Height, i.Depth)
	var out []Rotation
	for _, r := range i.Rotations {
		dim := i.GetDimension(r)
		if dim[1] != maxDim {
			out = append(out, r)
		}
	}
	return out
}

// GetVerticalDimensions returns the allowed rotations under which the
// item's largest base dimension IS the vertical (height) axis.
func (i *Item) GetVerticalDimensions() []Rotation {
	maxDim := maxOf(i.Width, i.Height, i.Depth)
	var out []Rotation
	for _, r := range i.Rotations {
		dim := i.GetDimension(r)
		if dim[1] == maxDim {
			out = append(out, r)
		}
	}
	return out
}

func maxOf(a, b, c float64) float64 {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}

// clone returns a detached copy of the item, used by Bin.PutItem to
// divorce a committed placement from later mutation of the original.
func (i *Item) clone() *Item {
	c := *i
	c.Rotations = append([]Rotation{}, i.Rotations...)
	return &c
}

func (i *Item) String() string {
	return fmt.Sprintf("%s(%gx%gx%g, weight: %g) pos(%v) rotation(%s)", i.PartNo, i.Width, i.Height, i.Depth, i.Weight, i.Position, i.Rotation)
}
