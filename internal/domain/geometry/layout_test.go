package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLayout_WithoutPanel(t *testing.T) {
	frame := Layout(Bounds{Width: 1820, Height: 980}, DefaultChrome(), 0)

	assert.Equal(t, Rect{X: 0, Y: 118, Width: 1804, Height: 846}, frame.Main)
	assert.False(t, frame.HasPanel)
}

func TestLayout_WithPanel(t *testing.T) {
	frame := Layout(Bounds{Width: 1820, Height: 980}, DefaultChrome(), 800)

	assert.True(t, frame.HasPanel)
	assert.Equal(t, Rect{X: 0, Y: 118, Width: 1004, Height: 846}, frame.Main)
	assert.Equal(t, Rect{X: 1004, Y: 118, Width: 800, Height: 846}, frame.Panel)
	assert.Equal(t, Rect{X: 1002, Y: 118, Width: 2, Height: 846}, frame.Separator)
}

func TestLayout_IsPure(t *testing.T) {
	bounds := Bounds{Width: 1280, Height: 720}
	first := Layout(bounds, DefaultChrome(), 300)
	second := Layout(bounds, DefaultChrome(), 300)
	assert.Equal(t, first, second)
}

func TestLayout_TinyWindowNeverGoesNegative(t *testing.T) {
	frame := Layout(Bounds{Width: 10, Height: 50}, DefaultChrome(), 0)
	assert.Equal(t, 0, frame.Main.Width)
	assert.Equal(t, 0, frame.Main.Height)
}

func TestClampPanelWidth(t *testing.T) {
	tests := []struct {
		name   string
		width  int
		window int
		want   int
	}{
		{"below minimum", 40, 1820, 100},
		{"negative", -500, 1820, 100},
		{"in range", 640, 1820, 640},
		{"above window", 5000, 1820, 1804},
		{"exactly limit", 1804, 1820, 1804},
		{"window narrower than minimum", 300, 90, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClampPanelWidth(tt.width, tt.window, MinPanelWidth, DefaultSideInset))
		})
	}
}
