package geometry

import "fmt"

const (
	// ResizeMargin keeps corner targets inside the window's resize handles.
	ResizeMargin = 5.0
	// TitleBarHeight is the standard macOS title bar height in points.
	TitleBarHeight = 28.0
	// MinWindowSide filters out decorations and popovers.
	MinWindowSide = 50.0
)

// Point is a screen position in global display coordinates.
type Point struct {
	X float64
	Y float64
}

func (p Point) String() string {
	return fmt.Sprintf("(%.1f, %.1f)", p.X, p.Y)
}

// Rect is a window bounding rectangle, origin at top-left.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Qualifies reports whether the rectangle is large enough to be a real window.
func (r Rect) Qualifies() bool {
	return r.Width > MinWindowSide && r.Height > MinWindowSide
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.Width && p.Y >= r.Y && p.Y <= r.Y+r.Height
}

func (r Rect) String() string {
	return fmt.Sprintf("{x:%.0f y:%.0f w:%.0f h:%.0f}", r.X, r.Y, r.Width, r.Height)
}

// Landmark identifies a target spot on a window.
type Landmark int

const (
	TopLeft Landmark = iota
	TopRight
	TopCenter
	BottomLeft
	Center
	BottomRight
)

// DefaultLandmark is used when the modifier is tapped alone.
const DefaultLandmark = Center

func (l Landmark) String() string {
	switch l {
	case TopLeft:
		return "top-left"
	case TopRight:
		return "top-right"
	case TopCenter:
		return "top-center"
	case BottomLeft:
		return "bottom-left"
	case Center:
		return "center"
	case BottomRight:
		return "bottom-right"
	default:
		return fmt.Sprintf("landmark(%d)", int(l))
	}
}

// Target returns the cursor destination for landmark l on window r.
func Target(l Landmark, r Rect) Point {
	switch l {
	case TopLeft:
		return Point{X: r.X + ResizeMargin, Y: r.Y + ResizeMargin}
	case TopRight:
		return Point{X: r.X + r.Width - ResizeMargin, Y: r.Y + ResizeMargin}
	case TopCenter:
		return Point{X: r.X + r.Width/2, Y: r.Y + TitleBarHeight/2}
	case BottomLeft:
		return Point{X: r.X + ResizeMargin, Y: r.Y + r.Height - ResizeMargin}
	case BottomRight:
		return Point{X: r.X + r.Width - ResizeMargin, Y: r.Y + r.Height - ResizeMargin}
	default:
		return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
	}
}
