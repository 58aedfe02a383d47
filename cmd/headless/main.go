// Command headless runs the game without a window. It plays several
// identical worlds side by side with a scripted pilot and checks that they
// end in the same state.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"galactic/game"
	"galactic/logger"
)

// result summarises one run.
type result struct {
	digest   uint64
	score    int
	waves    int
	overAt   uint64
	hits     int
	maxNodes int
	elapsed  time.Duration
}

func main() {
	configPath := flag.String("config", "", "YAML file overriding the default game config")
	ticks := flag.Uint64("ticks", 3600, "number of ticks per run")
	runs := flag.Int("runs", 4, "number of identical runs to compare")
	hold := flag.Uint64("hold", 90, "ticks the scripted pilot holds each direction")
	seed := flag.Int64("seed", 0, "override the config seed when non-zero")
	logLevel := flag.String("log-level", "info", "log level (or set LOG_LEVEL)")
	logFormat := flag.String("log-format", "console", "log format, console or json (or set LOG_FORMAT)")
	flag.Parse()

	log, err := logger.New(logger.Config{Level: *logLevel, Format: *logFormat})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer log.Sync()

	config := game.DefaultConfig()
	if *configPath != "" {
		config, err = game.LoadConfig(*configPath)
		if err != nil {
			log.Fatal("failed to load config", zap.String("path", *configPath), zap.Error(err))
		}
	}
	if *seed != 0 {
		config.Seed = *seed
	}
	if *runs < 1 {
		log.Fatal("runs must be positive", zap.Int("runs", *runs))
	}

	results := make([]result, *runs)
	g, ctx := errgroup.WithContext(context.Background())
	for i := range results {
		i := i
		g.Go(func() error {
			r, err := play(ctx, config, game.Sweep{Hold: *hold}, *ticks, log.With(zap.Int("run", i)))
			if err != nil {
				return fmt.Errorf("run %d: %w", i, err)
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatal("simulation failed", zap.Error(err))
	}

	first := results[0]
	log.Info("simulation complete",
		zap.Uint64("ticks", *ticks),
		zap.Int("runs", *runs),
		zap.String("digest", fmt.Sprintf("%016x", first.digest)),
		zap.Int("score", first.score),
		zap.Int("waves", first.waves),
		zap.Uint64("game_over_tick", first.overAt),
		zap.Int("hits", first.hits),
		zap.Int("max_nodes", first.maxNodes),
		zap.Duration("elapsed", first.elapsed))

	for i, r := range results[1:] {
		if r.digest != first.digest {
			log.Error("runs diverged",
				zap.Int("run", i+1),
				zap.String("want", fmt.Sprintf("%016x", first.digest)),
				zap.String("got", fmt.Sprintf("%016x", r.digest)))
			os.Exit(1)
		}
	}
}

// play runs one world for the given number of ticks.
func play(ctx context.Context, config game.Config, pilot game.InputProvider, ticks uint64, log *zap.Logger) (result, error) {
	world, err := game.NewWorld(config, log)
	if err != nil {
		return result{}, err
	}

	var r result
	start := time.Now()
	for tick := uint64(0); tick < ticks; tick++ {
		if tick%256 == 0 {
			if err := ctx.Err(); err != nil {
				return result{}, err
			}
		}

		stats := world.Tick(pilot.Next(tick))
		r.hits += stats.Collision.Hits
		r.maxNodes = max(r.maxNodes, stats.Collision.Nodes)
		if stats.GameOver && r.overAt == 0 {
			r.overAt = stats.Tick
		}
	}

	r.elapsed = time.Since(start)
	r.digest = world.Digest()
	r.score = world.Score()
	r.waves = world.Wave()
	log.Debug("run finished", zap.Duration("elapsed", r.elapsed), zap.Int("score", r.score))
	return r, nil
}
