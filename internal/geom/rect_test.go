package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRect_Overlaps(t *testing.T) {
	base := Rect{X: 0, Y: 0, Width: 2, Height: 2}

	tests := []struct {
		name  string
		other Rect
		want  bool
	}{
		{"identical", Rect{X: 0, Y: 0, Width: 2, Height: 2}, true},
		{"partial", Rect{X: 1, Y: 1, Width: 3, Height: 3}, true},
		{"inside", Rect{X: 0, Y: 0, Width: 1, Height: 1}, true},
		{"shared vertical edge", Rect{X: 2, Y: 0, Width: 3, Height: 3}, false},
		{"shared horizontal edge", Rect{X: 0, Y: 2, Width: 3, Height: 3}, false},
		{"corner touch", Rect{X: 2, Y: 2, Width: 1, Height: 1}, false},
		{"disjoint", Rect{X: 5, Y: 5, Width: 1, Height: 1}, false},
		{"strip across", Rect{X: -1, Y: 1, Width: 5, Height: 0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Overlaps(tt.other))
			assert.Equal(t, tt.want, tt.other.Overlaps(base), "overlap must be symmetric")
		})
	}
}

func TestRect_ContainedIn(t *testing.T) {
	outer := Rect{X: 0, Y: 0, Width: 10, Height: 10}

	assert.True(t, outer.ContainedIn(outer), "equal rects count as contained")
	assert.True(t, Rect{X: 2, Y: 3, Width: 8, Height: 7}.ContainedIn(outer))
	assert.False(t, Rect{X: 2, Y: 3, Width: 9, Height: 7}.ContainedIn(outer))
	assert.False(t, outer.ContainedIn(Rect{X: 2, Y: 0, Width: 8, Height: 10}))
}

func TestRect_TouchingLength(t *testing.T) {
	placed := Rect{X: 0, Y: 0, Width: 2, Height: 3}

	assert.Equal(t, 2, Rect{X: 2, Y: 0, Width: 3, Height: 2}.TouchingLength(placed))
	assert.Equal(t, 2, Rect{X: 0, Y: 3, Width: 3, Height: 2}.TouchingLength(placed))
	assert.Equal(t, 3, Rect{X: 2, Y: 0, Width: 2, Height: 3}.TouchingLength(placed))
	assert.Equal(t, 0, Rect{X: 2, Y: 3, Width: 2, Height: 2}.TouchingLength(placed), "corner contact has no length")
	assert.Equal(t, 0, Rect{X: 5, Y: 0, Width: 2, Height: 2}.TouchingLength(placed))
}

func TestSize_Rotated(t *testing.T) {
	s := Size{Width: 3, Height: 2}
	assert.Equal(t, Size{Width: 2, Height: 3}, s.Rotated())
	assert.Equal(t, s, s.Rotated().Rotated())
	assert.Equal(t, s.Area(), s.Rotated().Area())
}

func TestCommonLength(t *testing.T) {
	assert.Equal(t, 2, CommonLength(0, 2, 0, 3))
	assert.Equal(t, 1, CommonLength(0, 5, 4, 9))
	assert.Equal(t, 0, CommonLength(0, 2, 2, 4))
	assert.Equal(t, 0, CommonLength(3, 4, 0, 1))
}

func TestRect_Within(t *testing.T) {
	assert.True(t, Rect{X: 0, Y: 0, Width: 10, Height: 10}.Within(10, 10))
	assert.False(t, Rect{X: 0, Y: 0, Width: 11, Height: 1}.Within(10, 10))
	assert.False(t, Rect{X: -1, Y: 0, Width: 1, Height: 1}.Within(10, 10))
	assert.False(t, Rect{X: 0, Y: 9, Width: 1, Height: 2}.Within(10, 10))
}
