package bp3d

// Rotation is one of the six axis-aligned permutations of an item's
// base (width, height, depth) triple.
type Rotation int

const (
	WHD Rotation = iota
	HWD
	HDW
	DHW
	DWH
	WDH
)

var rotationNames = [...]string{
	"WHD",
	"HWD",
	"HDW",
	"DHW",
	"DWH",
	"WDH",
}

func (r Rotation) String() string {
	if int(r) < 0 || int(r) >= len(rotationNames) {
		return "Rotation(invalid)"
	}
	return rotationNames[r]
}

// AllRotations lists every rotation in canonical order.
var AllRotations = []Rotation{WHD, HWD, HDW, DHW, DWH, WDH}

// uprightRotations lists the two rotations that keep the item's
// original height axis vertical.
var uprightRotations = []Rotation{WHD, HWD}

// permute returns whd permuted according to rotation r.
func permute(whd Vector3, r Rotation) Vector3 {
	w, h, d := whd[0], whd[1], whd[2]
	switch r {
	case WHD:
		return Vector3{w, h, d}
	case HWD:
		return Vector3{h, w, d}
	case HDW:
		return Vector3{h, d, w}
	case DHW:
		return Vector3{d, h, w}
	case DWH:
		return Vector3{d, w, h}
	case WDH:
		return Vector3{w, d, h}
	default:
		return Vector3{}
	}
}
