package verdure

// Vec2 is a 2D vector used for positions, offsets, and deltas throughout
// the API. Canvas-space values are pixels; garden-space values are percent.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Category distinguishes the kinds of placeable garden items.
type Category uint8

const (
	CategoryTree     Category = iota // carries horticultural metadata
	CategoryBuilding                 // structures; stored in the items table
	CategoryOther                    // everything else; stored in the items table
)

// String returns the lowercase name used in records and logs.
func (c Category) String() string {
	switch c {
	case CategoryTree:
		return "tree"
	case CategoryBuilding:
		return "building"
	default:
		return "other"
	}
}

// Status is the availability state of a tree.
type Status string

const (
	StatusAvailable   Status = "Available"
	StatusUnavailable Status = "Unavailable"
	StatusReserved    Status = "Reserved"
)

// DeriveStatus returns the status implied by an owner value: a non-blank
// owner makes the tree unavailable, a blank owner makes it available.
// An explicitly set status stays untouched until the owner changes again.
func DeriveStatus(owner string) Status {
	if isBlank(owner) {
		return StatusAvailable
	}
	return StatusUnavailable
}

// Item is a display-ready placed element of a garden. Position is expressed
// as percentages of the canvas in [0, 100] with the origin at the top-left.
type Item struct {
	ID       string
	Type     string
	Name     string
	Category Category
	X, Y     float64

	// ImageURL is the resolved icon: custom avatar if set, otherwise the
	// template icon, otherwise the category fallback.
	ImageURL     string
	CustomAvatar string
	CustomType   bool

	// Tree-only fields. YearPlanted is zero when unset.
	Sort        string
	YearPlanted int
	Owner       string
	Status      Status
	PhotoURL    string

	// Building/other only.
	Description string
}

// IsTree reports whether the item carries tree metadata.
func (it Item) IsTree() bool { return it.Category == CategoryTree }

// Position returns the item's garden-space position.
func (it Item) Position() Vec2 { return Vec2{X: it.X, Y: it.Y} }

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func isBlank(s string) bool {
	for _, r := range s {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return false
		}
	}
	return true
}
