// Package screen runs a game.World inside an ebiten window: it captures the
// keyboard, draws the world and watches the frame rate.
package screen

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"galactic/game"
	"galactic/profiler"
)

// maxFrameTime bounds the measured frame time after a stall.
const maxFrameTime = 100 * time.Millisecond

// Options tune the window adapter.
type Options struct {
	// ProfileDir enables profile capture on frame rate drops when set
	ProfileDir string
}

// Game adapts a world to ebiten.Game.
type Game struct {
	world      *game.World
	log        *zap.Logger
	renderer   *Renderer
	background *Background
	sparks     *Sparks
	keys       keyboard
	debug      DebugState

	fps        *profiler.FPSMeter
	profiler   *profiler.Profiler
	lastUpdate time.Time
}

// New creates the window adapter for world.
func New(world *game.World, log *zap.Logger, opts Options) *Game {
	if log == nil {
		log = zap.NewNop()
	}
	cfg := world.Config()

	g := &Game{
		world:      world,
		log:        log,
		renderer:   NewRenderer(),
		background: NewBackground(cfg.Width, cfg.Height, cfg.Seed),
		sparks:     NewSparks(400, cfg.Seed),
		fps:        profiler.NewFPSMeter(float64(cfg.TPS)),
		lastUpdate: time.Now(),
	}
	if opts.ProfileDir != "" {
		g.profiler = profiler.New(opts.ProfileDir, log)
	}
	return g
}

// Update advances the world by one tick.
func (g *Game) Update() error {
	now := time.Now()
	dt := min(now.Sub(g.lastUpdate), maxFrameTime)
	g.lastUpdate = now

	g.keys.fullscreen()
	if g.keys.debug() {
		g.debug.ShowTree = !g.debug.ShowTree
	}
	if restart := g.keys.restart(); restart && g.world.GameOver() {
		g.log.Info("restart", zap.Int("score", g.world.Score()), zap.Int("wave", g.world.Wave()))
		g.world.Reset()
		g.sparks.Reset()
	}

	g.background.Update()
	g.world.Tick(g.keys.controls())
	g.sparks.Update(g.world)

	if g.fps.Tick(dt) {
		g.fpsDropped()
	}
	return nil
}

func (g *Game) fpsDropped() {
	fps := g.fps.FPS()
	g.log.Warn("fps drop",
		zap.Float64("fps", fps),
		zap.Int("shots", g.world.Shots().Len()),
		zap.Int("enemies", g.world.Enemies().Len()),
		zap.Int("enemy_shots", g.world.EnemyShots().Len()))

	if g.profiler == nil {
		return
	}
	reason := fmt.Sprintf("fps%.0f-objects%d", fps,
		g.world.Shots().Len()+g.world.Enemies().Len()+g.world.EnemyShots().Len())
	if err := g.profiler.CaptureProfile(reason); err != nil {
		g.log.Debug("profile not captured", zap.Error(err))
	}
}

// Draw renders the game
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)
	g.background.Draw(screen)
	g.renderer.Render(screen, g.world)
	g.sparks.Draw(screen)
	if g.debug.ShowTree {
		g.renderer.RenderDebug(screen, g.world)
	}
	g.renderer.RenderHUD(screen, g.world, g.fps.FPS())
}

// Layout returns the playfield size; ebiten scales it to the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	cfg := g.world.Config()
	return int(cfg.Width), int(cfg.Height)
}

// Close waits for any running profile capture to finish.
func (g *Game) Close() {
	if g.profiler != nil {
		g.profiler.Wait()
	}
}
