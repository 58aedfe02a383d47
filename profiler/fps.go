package profiler

import "time"

// FPSMeter averages the update rate over fixed windows and flags drops.
type FPSMeter struct {
	// Window is how often the rate is recomputed
	Window time.Duration

	// Threshold is the rate below which a window counts as a drop
	Threshold float64

	// Warmup ignores drops this long after the first sample
	Warmup time.Duration

	fps     float64
	frames  int
	elapsed time.Duration
	uptime  time.Duration
}

// NewFPSMeter creates a meter that starts at target.
func NewFPSMeter(target float64) *FPSMeter {
	return &FPSMeter{
		Window:    500 * time.Millisecond,
		Threshold: target * 0.9,
		Warmup:    3 * time.Second,
		fps:       target,
	}
}

// Tick records one frame that took dt. It reports true when a window has
// just closed below the threshold.
func (m *FPSMeter) Tick(dt time.Duration) bool {
	m.frames++
	m.elapsed += dt
	m.uptime += dt
	if m.elapsed < m.Window {
		return false
	}

	m.fps = float64(m.frames) / m.elapsed.Seconds()
	m.frames = 0
	m.elapsed = 0
	return m.fps < m.Threshold && m.uptime >= m.Warmup
}

// FPS returns the rate of the last closed window.
func (m *FPSMeter) FPS() float64 { return m.fps }

// Reset restarts the meter, including the warmup.
func (m *FPSMeter) Reset() {
	m.frames = 0
	m.elapsed = 0
	m.uptime = 0
}
