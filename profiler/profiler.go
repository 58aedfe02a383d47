// Package profiler captures CPU profiles and execution traces when the
// frame rate drops.
package profiler

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
	"sync"
	"time"

	"go.uber.org/zap"
)

var (
	// ErrBusy is returned when a capture is already running.
	ErrBusy = errors.New("already profiling")

	// ErrCooldown is returned when the last capture is too recent.
	ErrCooldown = errors.New("capture on cooldown")
)

// Profiler handles automatic performance profiling
type Profiler struct {
	mu          sync.Mutex
	wg          sync.WaitGroup
	log         *zap.Logger
	isProfiling bool
	lastCapture time.Time

	// Dir is where profiles are written
	Dir string

	// Cooldown is the minimum time between two captures
	Cooldown time.Duration

	// Duration is how long each capture records
	Duration time.Duration
}

// New creates a profiler writing into dir.
func New(dir string, log *zap.Logger) *Profiler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Profiler{
		log:      log,
		Dir:      dir,
		Cooldown: 10 * time.Second,
		Duration: 5 * time.Second,
	}
}

// CaptureProfile starts a CPU profile and a trace in the background.
// Files are named after reason and the current time.
func (p *Profiler) CaptureProfile(reason string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.isProfiling {
		return ErrBusy
	}
	if since := time.Since(p.lastCapture); since < p.Cooldown {
		return fmt.Errorf("%w: last capture was %v ago", ErrCooldown, since.Round(time.Millisecond))
	}
	if err := os.MkdirAll(p.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create profile dir: %w", err)
	}

	p.isProfiling = true
	p.lastCapture = time.Now()
	baseName := fmt.Sprintf("fps-drop-%s-%s", p.lastCapture.Format("20060102-150405"), reason)

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer func() {
			p.mu.Lock()
			p.isProfiling = false
			p.mu.Unlock()
		}()

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			if err := p.captureCPUProfile(baseName); err != nil {
				p.log.Warn("cpu profile failed", zap.Error(err))
			}
		}()
		go func() {
			defer wg.Done()
			if err := p.captureTrace(baseName); err != nil {
				p.log.Warn("trace failed", zap.Error(err))
			}
		}()
		wg.Wait()

		p.analyzeProfile(baseName)
	}()

	return nil
}

// Wait blocks until any running capture has been written.
func (p *Profiler) Wait() {
	p.wg.Wait()
}

// IsProfiling returns whether a profile capture is currently in progress
func (p *Profiler) IsProfiling() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.isProfiling
}

func (p *Profiler) captureCPUProfile(baseName string) error {
	path := filepath.Join(p.Dir, baseName+".cpu.prof")

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create profile file: %w", err)
	}
	defer file.Close()

	if err := pprof.StartCPUProfile(file); err != nil {
		return fmt.Errorf("failed to start CPU profile: %w", err)
	}
	time.Sleep(p.Duration)
	pprof.StopCPUProfile()

	p.log.Info("cpu profile saved", zap.String("path", path))
	return nil
}

func (p *Profiler) captureTrace(baseName string) error {
	path := filepath.Join(p.Dir, baseName+".trace")

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create trace file: %w", err)
	}
	defer file.Close()

	if err := trace.Start(file); err != nil {
		return fmt.Errorf("failed to start trace: %w", err)
	}
	time.Sleep(p.Duration)
	trace.Stop()

	p.log.Info("trace saved", zap.String("path", path))
	return nil
}

// analyzeProfile logs where the profile went and the heap at capture time.
func (p *Profiler) analyzeProfile(baseName string) {
	path := filepath.Join(p.Dir, baseName+".cpu.prof")

	info, err := os.Stat(path)
	if err != nil {
		p.log.Warn("could not analyze profile", zap.Error(err))
		return
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	p.log.Info("performance capture complete",
		zap.String("profile", path),
		zap.Int64("size_bytes", info.Size()),
		zap.String("view", "go tool pprof -http=:8080 "+path),
		zap.Uint64("alloc_kb", m.Alloc/1024),
		zap.Uint64("total_alloc_kb", m.TotalAlloc/1024),
		zap.Uint64("sys_kb", m.Sys/1024),
		zap.Uint32("num_gc", m.NumGC),
		zap.Uint64("heap_objects", m.HeapObjects))
}
