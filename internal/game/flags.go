package game

import (
	"flag"
	"fmt"
)

// ConfigFlags holds the command-line switches shared by every entry point.
type ConfigFlags struct {
	seed     int64
	width    int
	height   int
	noise    string
	interval int
	speed    float64
}

// BindConfigFlags registers -seed, -width, -height, -noise, -interval and
// -speed on fs.
func BindConfigFlags(fs *flag.FlagSet) *ConfigFlags {
	cf := &ConfigFlags{}
	fs.Int64Var(&cf.seed, "seed", 0, "map seed (0 for random)")
	fs.IntVar(&cf.width, "width", defaultMapConfig.Width, "map width in tiles")
	fs.IntVar(&cf.height, "height", defaultMapConfig.Height, "map height in tiles")
	fs.StringVar(&cf.noise, "noise", defaultNoiseConfig.Kind.String(), "noise backend: simplex or perlin")
	fs.IntVar(&cf.interval, "interval", DefaultSimplifyInterval, "forced waypoint every N path steps (0 disables)")
	fs.Float64Var(&cf.speed, "speed", DefaultActorSpeed, "actor speed in pixels per second")
	return cf
}

// Config builds a Config from the parsed flags. A zero seed keeps the clock
// seed from DefaultConfig.
func (cf *ConfigFlags) Config() (Config, error) {
	cfg := DefaultConfig()
	if cf.seed != 0 {
		cfg.Seed = cf.seed
	}
	if cf.width <= 0 || cf.height <= 0 {
		return Config{}, fmt.Errorf("-width %d -height %d: %w", cf.width, cf.height, ErrInvalidDimensions)
	}
	cfg.Map.Width, cfg.Map.Height = cf.width, cf.height
	kind, err := ParseNoiseKind(cf.noise)
	if err != nil {
		return Config{}, err
	}
	cfg.Map.Noise.Kind = kind
	cfg.SimplifyInterval = cf.interval
	if cf.speed <= 0 {
		return Config{}, fmt.Errorf("-speed must be > 0, got %g", cf.speed)
	}
	cfg.ActorSpeed = cf.speed
	return cfg, nil
}
