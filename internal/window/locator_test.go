package window

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fruitjuice088/mousejump/internal/geometry"
)

func TestFirstQualifyingSkipsDecorations(t *testing.T) {
	candidates := []geometry.Rect{
		{X: 0, Y: 0, Width: 20, Height: 20},
		{X: 5, Y: 5, Width: 300, Height: 50},
		{X: 100, Y: 100, Width: 400, Height: 300},
		{X: 0, Y: 0, Width: 1000, Height: 800},
	}

	r, ok := firstQualifying(candidates)
	assert.True(t, ok)
	assert.Equal(t, geometry.Rect{X: 100, Y: 100, Width: 400, Height: 300}, r)
}

func TestFirstQualifyingNone(t *testing.T) {
	_, ok := firstQualifying(nil)
	assert.False(t, ok)

	_, ok = firstQualifying([]geometry.Rect{{Width: 50, Height: 50}})
	assert.False(t, ok)
}

func TestLocatorFunc(t *testing.T) {
	want := geometry.Rect{X: 1, Y: 2, Width: 300, Height: 400}
	var l Locator = LocatorFunc(func() (geometry.Rect, bool) { return want, true })

	got, ok := l.FrontmostWindowRect()
	assert.True(t, ok)
	assert.Equal(t, want, got)
}

func TestNewSystemIsUsable(t *testing.T) {
	l := NewSystem()
	assert.NotPanics(t, func() { l.FrontmostWindowRect() })
}
