// Package window finds the bounding rectangle of the frontmost application's
// main window.
package window

import "github.com/fruitjuice088/mousejump/internal/geometry"

// Locator returns the frontmost window, or false when there is none.
type Locator interface {
	FrontmostWindowRect() (geometry.Rect, bool)
}

// LocatorFunc adapts a function literal to the Locator interface.
type LocatorFunc func() (geometry.Rect, bool)

// FrontmostWindowRect calls the underlying function.
func (f LocatorFunc) FrontmostWindowRect() (geometry.Rect, bool) {
	return f()
}

// firstQualifying picks the first window, in front-to-back order, that is
// large enough to be a document window.
func firstQualifying(candidates []geometry.Rect) (geometry.Rect, bool) {
	for _, r := range candidates {
		if r.Qualifies() {
			return r, true
		}
	}
	return geometry.Rect{}, false
}
