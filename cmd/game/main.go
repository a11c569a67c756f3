package main

import (
	"flag"

	"github.com/Garsondee/Isle-Sim/internal/game"
	"github.com/Garsondee/Isle-Sim/internal/logger"
	"github.com/Garsondee/Isle-Sim/internal/view"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"
)

func init() {
	logger.Init()
}

func main() {
	var actors int
	var winW, winH int
	cf := game.BindConfigFlags(flag.CommandLine)
	flag.IntVar(&actors, "actors", 3, "actors spawned at start")
	flag.IntVar(&winW, "win-width", 1280, "window width")
	flag.IntVar(&winH, "win-height", 800, "window height")
	flag.Parse()

	cfg, err := cf.Config()
	if err != nil {
		logger.Log.WithError(err).Fatal("invalid flags")
	}

	assets := game.NewNameIndex(game.AllAssetNames()...)
	world, err := game.NewWorld(cfg, assets)
	if err != nil {
		logger.Log.WithError(err).Fatal("failed to build world")
	}
	spawnActors(world, actors)

	logger.Log.WithFields(logrus.Fields{
		"seed":   cfg.Seed,
		"width":  cfg.Map.Width,
		"height": cfg.Map.Height,
		"noise":  cfg.Map.Noise.Kind.String(),
	}).Info("Starting Isle-Sim")

	ebiten.SetWindowTitle("Isle-Sim")
	ebiten.SetWindowSize(winW, winH)
	ebiten.SetTPS(game.TicksPerSecond)
	if err := ebiten.RunGame(view.New(world, assets, winW, winH)); err != nil {
		logger.Log.WithError(err).Fatal("game loop stopped")
	}
}

// spawnActors spreads n actors over the passable tiles, closest to the map
// centre first.
func spawnActors(w *game.World, n int) {
	tiles := w.PassableTiles()
	if len(tiles) == 0 {
		logger.Log.Warn("map has no passable tile; no actors spawned")
		return
	}
	m := w.Map()
	centre := game.Pt(m.Width/2, m.Height/2)
	best := tiles[0]
	for _, p := range tiles {
		if chebyshev(p, centre) < chebyshev(best, centre) {
			best = p
		}
	}
	for i := 0; i < n; i++ {
		p := best
		if i > 0 {
			p = tiles[(i*len(tiles))/n]
		}
		if _, err := w.SpawnActor(p.X, p.Y); err != nil {
			logger.Log.WithError(err).Warn("spawn failed")
		}
	}
}

func chebyshev(a, b game.Pos) int {
	return max(abs(a.X-b.X), abs(a.Y-b.Y))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
