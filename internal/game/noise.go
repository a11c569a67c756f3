package game

import (
	"fmt"
	"math"
	"strings"

	perlin "github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"
)

// NoiseKind selects the coherent noise backend.
type NoiseKind uint8

const (
	NoiseOpenSimplex NoiseKind = iota // default
	NoisePerlin
)

func (k NoiseKind) String() string {
	switch k {
	case NoiseOpenSimplex:
		return "simplex"
	case NoisePerlin:
		return "perlin"
	default:
		return "unknown"
	}
}

// ParseNoiseKind maps a flag value ("simplex", "perlin") to a NoiseKind.
func ParseNoiseKind(s string) (NoiseKind, error) {
	switch strings.ToLower(s) {
	case "simplex", "opensimplex", "":
		return NoiseOpenSimplex, nil
	case "perlin":
		return NoisePerlin, nil
	default:
		return 0, fmt.Errorf("unknown noise kind %q (want simplex or perlin)", s)
	}
}

// NoiseConfig holds tuneable noise parameters.
type NoiseConfig struct {
	Kind NoiseKind

	// Base frequency of the first octave; octaves two and three use 2x and 4x.
	Scale float64

	// Moisture is reshaped with pow(m, MoistureExponent).
	MoistureExponent float64

	// IslandMask pulls elevation down towards the map border.
	IslandMask bool
}

var defaultNoiseConfig = NoiseConfig{
	Kind:             NoiseOpenSimplex,
	Scale:            0.05,
	MoistureExponent: 1.3,
	IslandMask:       true,
}

// octaves are (frequency multiplier, weight) pairs.
var octaves = [3][2]float64{
	{1, 1},
	{2, 0.5},
	{4, 0.25},
}

const octaveWeightSum = 1 + 0.5 + 0.25

// NoiseSource is a 2D coherent noise function with output in [-1, 1].
type NoiseSource interface {
	Noise2D(x, y float64) float64
}

type simplexSource struct {
	n opensimplex.Noise
}

func (s simplexSource) Noise2D(x, y float64) float64 { return s.n.Eval2(x, y) }

type perlinSource struct {
	p *perlin.Perlin
}

func (s perlinSource) Noise2D(x, y float64) float64 { return s.p.Noise2D(x, y) }

// NewNoiseSource builds a seeded backend of the given kind.
func NewNoiseSource(kind NoiseKind, seed int64) NoiseSource {
	switch kind {
	case NoisePerlin:
		// alpha=2, beta=2, n=3: smooth terrain-like output.
		return perlinSource{p: perlin.NewPerlin(2, 2, 3, seed)}
	default:
		return simplexSource{n: opensimplex.New(seed)}
	}
}

// Sample is the noise output for one cell.
type Sample struct {
	Elevation float64 // [0,1]
	Moisture  float64 // [0,1]
}

// NoiseField produces elevation and moisture for every cell of a grid.
// Elevation uses the map seed, moisture uses seed+1.
type NoiseField struct {
	dims      Dims
	cfg       NoiseConfig
	elevation NoiseSource
	moisture  NoiseSource
}

// NewNoiseField creates a field for a width x height grid.
func NewNoiseField(seed int64, dims Dims, cfg NoiseConfig) *NoiseField {
	return &NoiseField{
		dims:      dims,
		cfg:       cfg,
		elevation: NewNoiseSource(cfg.Kind, seed),
		moisture:  NewNoiseSource(cfg.Kind, seed+1),
	}
}

// Sample returns the elevation and moisture at (x, y). It is a pure function
// of the seed, grid size, config and coordinates.
func (nf *NoiseField) Sample(x, y int) Sample {
	e := nf.octaveNoise(nf.elevation, x, y)
	m := nf.octaveNoise(nf.moisture, x, y)
	m = math.Pow(m, nf.cfg.MoistureExponent)
	if nf.cfg.IslandMask {
		e *= nf.islandMask(x, y)
	}
	return Sample{Elevation: clamp01(e), Moisture: clamp01(m)}
}

// octaveNoise sums three octaves and maps the result into [0,1].
func (nf *NoiseField) octaveNoise(src NoiseSource, x, y int) float64 {
	fx := float64(x) * nf.cfg.Scale
	fy := float64(y) * nf.cfg.Scale
	v := 0.0
	for _, o := range octaves {
		v += o[1] * src.Noise2D(fx*o[0], fy*o[0])
	}
	v /= octaveWeightSum
	return clamp01((v + 1) * 0.5)
}

// islandMask is 1 at the grid centre and falls to 0 at the border
// (Chebyshev distance normalised by the half extents).
func (nf *NoiseField) islandMask(x, y int) float64 {
	halfW := float64(nf.dims.Width) * 0.5
	halfH := float64(nf.dims.Height) * 0.5
	dx := math.Abs(float64(x)-halfW) / halfW
	dy := math.Abs(float64(y)-halfH) / halfH
	return 1 - math.Max(dx, dy)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
