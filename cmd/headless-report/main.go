package main

import (
	"flag"
	"fmt"

	"github.com/Garsondee/Isle-Sim/internal/game"
	"github.com/Garsondee/Isle-Sim/internal/logger"
)

func init() {
	logger.Init()
}

type runStats struct {
	runIndex int
	seed     int64

	terrain     map[game.Category]int
	passablePct float64
	spawned     int
	setupErrors int

	firstTargetTick  int
	firstArrivalTick int

	targets     int
	arrivals    int
	rejections  int
	halted      int
	waypointSum float64 // sum of queued waypoints over all targets
}

func main() {
	var runs int
	var ticks int
	var actors int
	var seedStep int64

	cf := game.BindConfigFlags(flag.CommandLine)
	flag.IntVar(&runs, "runs", 5, "number of headless simulation runs")
	flag.IntVar(&ticks, "ticks", 3600, "ticks per run")
	flag.IntVar(&actors, "actors", 8, "wandering actors per run")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if ticks <= 0 {
		fmt.Println("error: -ticks must be > 0")
		return
	}
	cfg, err := cf.Config()
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}

	fmt.Printf("=== Headless Island Report ===\n")
	fmt.Printf("size=%dx%d noise=%s runs=%d ticks=%d actors=%d seed_base=%d seed_step=%d\n\n",
		cfg.Map.Width, cfg.Map.Height, cfg.Map.Noise.Kind, runs, ticks, actors, cfg.Seed, seedStep)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := cfg.Seed + int64(i)*seedStep
		stats, err := runWander(i+1, seed, cfg, ticks, actors)
		if err != nil {
			logger.Log.WithError(err).WithField("seed", seed).Error("run failed")
			continue
		}
		all = append(all, stats)
		printRun(stats)
	}

	printAggregate(all)
}

func runWander(runIndex int, seed int64, cfg game.Config, ticks, actors int) (runStats, error) {
	ts, err := game.NewTestSim(
		game.WithGeneratedMap(),
		game.WithMapSize(cfg.Map.Width, cfg.Map.Height),
		game.WithNoise(cfg.Map.Noise.Kind),
		game.WithSeed(seed),
		game.WithSimplifyInterval(cfg.SimplifyInterval),
		game.WithActorSpeed(cfg.ActorSpeed),
		game.WithRandomActors(actors, true),
	)
	if err != nil {
		return runStats{}, err
	}
	ts.RunTicks(ticks)
	rs := collectStats(ts.SimLog.Entries())
	report := game.BuildReport(ts.World)

	rs.runIndex = runIndex
	rs.seed = seed
	rs.terrain = report.Terrain
	rs.passablePct = report.PassablePct
	rs.spawned = len(report.Actors)
	rs.setupErrors = len(ts.SetupErrors)
	return rs, nil
}

// collectStats tallies movement events from a run's log.
func collectStats(entries []game.SimLogEntry) runStats {
	rs := runStats{
		firstTargetTick:  firstTick(entries, "move", "target"),
		firstArrivalTick: firstTick(entries, "move", "arrived"),
	}
	for _, e := range entries {
		if e.Category != "move" {
			continue
		}
		switch e.Key {
		case "target":
			rs.targets++
			rs.waypointSum += e.NumVal
		case "arrived":
			rs.arrivals++
		case "rejected":
			rs.rejections++
		case "halted":
			rs.halted++
		}
	}
	return rs
}

// firstTick returns the tick of the first category/key entry, or -1.
func firstTick(entries []game.SimLogEntry, category, key string) int {
	for _, e := range entries {
		if e.Category == category && e.Key == key {
			return e.Tick
		}
	}
	return -1
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Printf("terrain: deepwater=%d water=%d sand=%d grass=%d passable=%.1f%%\n",
		rs.terrain[game.CategoryDeepWater], rs.terrain[game.CategoryWater],
		rs.terrain[game.CategorySand], rs.terrain[game.CategoryGrass], rs.passablePct)
	fmt.Printf("actors: spawned=%d setup_errors=%d\n", rs.spawned, rs.setupErrors)
	fmt.Printf("phase_markers: first_target=%d first_arrival=%d\n", rs.firstTargetTick, rs.firstArrivalTick)
	fmt.Printf("event_totals: target=%d arrived=%d rejected=%d halted=%d avg_waypoints=%.2f\n",
		rs.targets, rs.arrivals, rs.rejections, rs.halted, avgf(rs.waypointSum, rs.targets))
	fmt.Println()
}

func printAggregate(all []runStats) {
	totalTargets := 0
	totalArrivals := 0
	totalRejected := 0
	totalHalted := 0
	waypointSum := 0.0
	passableSum := 0.0
	arrivalTicks := make([]int, 0, len(all))

	for _, rs := range all {
		totalTargets += rs.targets
		totalArrivals += rs.arrivals
		totalRejected += rs.rejections
		totalHalted += rs.halted
		waypointSum += rs.waypointSum
		passableSum += rs.passablePct
		if rs.firstArrivalTick >= 0 {
			arrivalTicks = append(arrivalTicks, rs.firstArrivalTick)
		}
	}

	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d\n", len(all))
	fmt.Printf("avg_events_per_run: target=%.1f arrived=%.1f rejected=%.1f halted=%.1f\n",
		avg(totalTargets, len(all)), avg(totalArrivals, len(all)), avg(totalRejected, len(all)), avg(totalHalted, len(all)))
	fmt.Printf("avg_passable=%.1f%% avg_waypoints_per_target=%.2f arrival_rate=%.1f%%\n",
		avgf(passableSum, len(all)), avgf(waypointSum, totalTargets), pct(totalArrivals, totalTargets))
	fmt.Printf("phase_marker_avg_ticks: first_arrival=%s\n", avgTickString(arrivalTicks))
}

func avg(sum int, n int) float64 {
	return avgf(float64(sum), n)
}

func avgf(sum float64, n int) float64 {
	if n <= 0 {
		return 0
	}
	return sum / float64(n)
}

func pct(part, whole int) float64 {
	return avg(part, whole) * 100
}

func avgTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}
