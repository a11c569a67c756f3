// Package camera maps between screen pixels, world pixels and tiles for a
// pannable, zoomable view of the map.
package camera

import (
	"math"

	"github.com/Garsondee/Isle-Sim/internal/game"
)

const (
	ZoomMin  = 0.5
	ZoomMax  = 4.0
	ZoomStep = 0.1
)

// Camera is centred on a world-space point. Zoom 1 draws one world pixel
// per screen pixel; larger values zoom in.
type Camera struct {
	X, Y float64 // world-space centre
	Zoom float64

	viewW, viewH   float64 // viewport in screen pixels
	worldW, worldH float64 // map extent in world pixels
}

// New returns a camera centred on a map of cols x rows tiles, viewed
// through a viewport of viewW x viewH screen pixels.
func New(cols, rows, viewW, viewH int) *Camera {
	c := &Camera{
		worldW: float64(cols * game.TileSize),
		worldH: float64(rows * game.TileSize),
		Zoom:   1,
	}
	c.X, c.Y = c.worldW/2, c.worldH/2
	c.Resize(viewW, viewH)
	return c
}

// Resize updates the viewport size and re-clamps.
func (c *Camera) Resize(viewW, viewH int) {
	c.viewW, c.viewH = float64(viewW), float64(viewH)
	c.clamp()
}

// Viewport returns the viewport size in screen pixels.
func (c *Camera) Viewport() (int, int) { return int(c.viewW), int(c.viewH) }

// Pan moves the view by (dx, dy) screen pixels.
func (c *Camera) Pan(dx, dy float64) {
	c.X += dx / c.Zoom
	c.Y += dy / c.Zoom
	c.clamp()
}

// ZoomBy changes the zoom by steps*ZoomStep, keeping the world point under
// screen pixel (px, py) fixed.
func (c *Camera) ZoomBy(steps float64, px, py float64) {
	wx, wy := c.ScreenToWorld(px, py)
	z := c.Zoom + steps*ZoomStep
	c.Zoom = math.Max(ZoomMin, math.Min(ZoomMax, z))
	// Re-anchor so (wx, wy) stays under the cursor.
	c.X = wx - (px-c.viewW/2)/c.Zoom
	c.Y = wy - (py-c.viewH/2)/c.Zoom
	c.clamp()
}

// ScreenToWorld converts a screen pixel to world pixels.
func (c *Camera) ScreenToWorld(px, py float64) (float64, float64) {
	return (px-c.viewW/2)/c.Zoom + c.X, (py-c.viewH/2)/c.Zoom + c.Y
}

// WorldToScreen converts world pixels to a screen pixel.
func (c *Camera) WorldToScreen(wx, wy float64) (float64, float64) {
	return (wx-c.X)*c.Zoom + c.viewW/2, (wy-c.Y)*c.Zoom + c.viewH/2
}

// ScreenToTile returns the tile under screen pixel (px, py). ok is false
// when the pixel lies outside the map.
func (c *Camera) ScreenToTile(px, py float64) (game.Pos, bool) {
	wx, wy := c.ScreenToWorld(px, py)
	p := game.WorldToCell(wx, wy)
	cols := int(c.worldW) / game.TileSize
	rows := int(c.worldH) / game.TileSize
	return p, p.X >= 0 && p.Y >= 0 && p.X < cols && p.Y < rows
}

// TileToScreen returns the screen position of a tile's top-left corner.
func (c *Camera) TileToScreen(p game.Pos) (float64, float64) {
	ax, ay := game.CellAnchor(p)
	return c.WorldToScreen(ax, ay)
}

// Transform returns the translate-scale-translate parameters a renderer
// applies to world-space drawing: translate by (-X, -Y), scale by Zoom,
// then translate by the returned offset.
func (c *Camera) Transform() (offX, offY, scale float64) {
	return c.viewW / 2, c.viewH / 2, c.Zoom
}

// clamp keeps the view inside the map. A map smaller than the view is
// centred on that axis.
func (c *Camera) clamp() {
	c.X = clampAxis(c.X, c.worldW, c.viewW/2/c.Zoom)
	c.Y = clampAxis(c.Y, c.worldH, c.viewH/2/c.Zoom)
}

func clampAxis(centre, extent, halfView float64) float64 {
	if extent <= 2*halfView {
		return extent / 2
	}
	if centre < halfView {
		return halfView
	}
	if centre > extent-halfView {
		return extent - halfView
	}
	return centre
}
