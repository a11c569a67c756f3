package view

import (
	"image/color"
	"strings"

	"github.com/Garsondee/Isle-Sim/internal/game"
)

// assetColour returns the fill colour for a terrain or building asset name.
func assetColour(name string) color.RGBA {
	switch name {
	case "deepwater0":
		return color.RGBA{R: 18, G: 30, B: 62, A: 255}
	case "deepwater1":
		return color.RGBA{R: 22, G: 36, B: 72, A: 255}
	case "water0":
		return color.RGBA{R: 34, G: 62, B: 104, A: 255}
	case "water1":
		return color.RGBA{R: 40, G: 74, B: 116, A: 255}
	case "drysand":
		return color.RGBA{R: 176, G: 160, B: 112, A: 255}
	case "dirt":
		return color.RGBA{R: 118, G: 96, B: 66, A: 255}
	case "wall":
		return color.RGBA{R: 92, G: 88, B: 84, A: 255}
	case "gate":
		return color.RGBA{R: 120, G: 84, B: 46, A: 255}
	case "road":
		return color.RGBA{R: 150, G: 140, B: 124, A: 255}
	case "farm":
		return color.RGBA{R: 140, G: 118, B: 52, A: 255}
	}
	if v, ok := strings.CutPrefix(name, "grass"); ok && len(v) == 1 {
		// Drier grass is lighter; lush grass darker and greener.
		shade := uint8(v[0] - '0')
		return color.RGBA{R: 96 - shade*10, G: 140 - shade*8, B: 64 - shade*6, A: 255}
	}
	return color.RGBA{R: 255, G: 0, B: 255, A: 255}
}

// edgeColour darkens c for the transition strip drawn along category edges.
func edgeColour(c color.RGBA) color.RGBA {
	return color.RGBA{R: c.R / 2, G: c.G / 2, B: c.B / 2, A: 200}
}

// actorColour distinguishes the selected actor.
func actorColour(selected bool, s game.ActorState) color.RGBA {
	switch {
	case selected:
		return color.RGBA{R: 250, G: 220, B: 60, A: 255}
	case s == game.ActorMoving:
		return color.RGBA{R: 230, G: 80, B: 60, A: 255}
	default:
		return color.RGBA{R: 200, G: 200, B: 210, A: 255}
	}
}
