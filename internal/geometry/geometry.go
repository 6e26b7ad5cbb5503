// Package geometry provides the value types shared by the panel layout code:
// logical/physical sizes, rectangles, screen-edge anchors, and region
// alignments.
package geometry

import (
	"fmt"
	"math"
)

// Size is a width/height pair. Whether the values are logical or physical
// pixels depends on context; conversions go through ToPhysical/ToLogical.
type Size struct {
	W int `json:"w"`
	H int `json:"h"`
}

// Point is a position in the panel's coordinate space.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	Loc  Point `json:"loc"`
	Size Size  `json:"size"`
}

// NewRect returns a rectangle from its components.
func NewRect(x, y, w, h int) Rect {
	return Rect{Loc: Point{X: x, Y: y}, Size: Size{W: w, H: h}}
}

// ToPhysical scales a logical size by the output scale factor, rounding to
// the nearest pixel.
func (s Size) ToPhysical(scale float64) Size {
	return Size{
		W: int(math.Round(float64(s.W) * scale)),
		H: int(math.Round(float64(s.H) * scale)),
	}
}

// ToLogical converts a physical size back to logical coordinates.
func (s Size) ToLogical(scale float64) Size {
	return Size{
		W: int(math.Round(float64(s.W) / scale)),
		H: int(math.Round(float64(s.H) / scale)),
	}
}

// IsEmpty reports whether either dimension is zero or negative.
func (s Size) IsEmpty() bool {
	return s.W <= 0 || s.H <= 0
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.W, s.H)
}

// Anchor is the screen edge a panel is pinned to.
type Anchor int

const (
	AnchorTop Anchor = iota
	AnchorBottom
	AnchorLeft
	AnchorRight
)

// Horizontal reports whether the anchored edge runs horizontally, i.e. the
// panel's length axis is the X axis.
func (a Anchor) Horizontal() bool {
	return a == AnchorTop || a == AnchorBottom
}

// Opposite returns the facing edge. Flipping to the opposite edge forces a
// panel recreation because margins and exclusive zones swap sides.
func (a Anchor) Opposite() Anchor {
	switch a {
	case AnchorTop:
		return AnchorBottom
	case AnchorBottom:
		return AnchorTop
	case AnchorLeft:
		return AnchorRight
	default:
		return AnchorLeft
	}
}

func (a Anchor) String() string {
	switch a {
	case AnchorTop:
		return "Top"
	case AnchorBottom:
		return "Bottom"
	case AnchorLeft:
		return "Left"
	case AnchorRight:
		return "Right"
	default:
		return fmt.Sprintf("Anchor(%d)", int(a))
	}
}

// ParseAnchor parses the config-file spelling of an anchor.
func ParseAnchor(s string) (Anchor, error) {
	switch s {
	case "Top", "top":
		return AnchorTop, nil
	case "Bottom", "bottom":
		return AnchorBottom, nil
	case "Left", "left":
		return AnchorLeft, nil
	case "Right", "right":
		return AnchorRight, nil
	default:
		return AnchorTop, fmt.Errorf("not a valid anchor: %q", s)
	}
}

// Alignment places an applet list within the panel's length axis.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

func (a Alignment) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return fmt.Sprintf("Alignment(%d)", int(a))
	}
}
