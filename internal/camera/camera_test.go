package camera

import (
	"testing"

	"github.com/Garsondee/Isle-Sim/internal/game"
	"github.com/stretchr/testify/assert"
)

func TestNew_CentredOnMap(t *testing.T) {
	c := New(50, 50, 400, 300)
	assert.Equal(t, 400.0, c.X)
	assert.Equal(t, 400.0, c.Y)
	assert.Equal(t, 1.0, c.Zoom)
}

func TestScreenToTile_RoundTrip(t *testing.T) {
	c := New(50, 50, 400, 300)
	c.ZoomBy(10, 200, 150) // zoom 2
	for _, p := range []game.Pos{{X: 20, Y: 20}, {X: 25, Y: 24}, {X: 29, Y: 28}} {
		sx, sy := c.TileToScreen(p)
		got, ok := c.ScreenToTile(sx+1, sy+1)
		assert.True(t, ok)
		assert.Equal(t, p, got)
	}
}

func TestScreenToTile_OutsideMap(t *testing.T) {
	c := New(10, 10, 400, 400) // map 160px, smaller than the view
	_, ok := c.ScreenToTile(5, 5)
	assert.False(t, ok)
	p, ok := c.ScreenToTile(200, 200)
	assert.True(t, ok)
	assert.Equal(t, game.Pt(5, 5), p)
}

func TestZoomBy_Clamped(t *testing.T) {
	c := New(50, 50, 400, 300)
	c.ZoomBy(-100, 200, 150)
	assert.Equal(t, ZoomMin, c.Zoom)
	c.ZoomBy(100, 200, 150)
	assert.Equal(t, ZoomMax, c.Zoom)
}

func TestZoomBy_KeepsCursorAnchor(t *testing.T) {
	c := New(50, 50, 400, 300)
	wx, wy := c.ScreenToWorld(250, 180)
	c.ZoomBy(5, 250, 180)
	nx, ny := c.ScreenToWorld(250, 180)
	assert.InDelta(t, wx, nx, 1e-9)
	assert.InDelta(t, wy, ny, 1e-9)
}

func TestPan_ClampedToMap(t *testing.T) {
	c := New(50, 50, 400, 300)
	c.Pan(-10000, -10000)
	assert.Equal(t, 200.0, c.X)
	assert.Equal(t, 150.0, c.Y)
	c.Pan(10000, 10000)
	assert.Equal(t, 800.0-200.0, c.X)
	assert.Equal(t, 800.0-150.0, c.Y)
}
