package goku

import (
	"log/slog"
	"runtime/metrics"
)

const (
	metricCPUSeconds  = "/cpu/classes/total:cpu-seconds"
	metricMemoryBytes = "/memory/classes/total:bytes"
)

// ProfilerConfig sets the report intervals in milliseconds. Zero fields take
// the defaults of 1s, 5s and 10s.
type ProfilerConfig struct {
	FPSInterval    int64 `yaml:"fps_interval"`
	MemoryInterval int64 `yaml:"memory_interval"`
	CPUInterval    int64 `yaml:"cpu_interval"`
}

func (c ProfilerConfig) withDefaults() ProfilerConfig {
	if c.FPSInterval <= 0 {
		c.FPSInterval = 1000
	}
	if c.MemoryInterval <= 0 {
		c.MemoryInterval = 5000
	}
	if c.CPUInterval <= 0 {
		c.CPUInterval = 10000
	}
	return c
}

// ProfileSample holds whatever the profiler reported on one Update. Each
// value is only meaningful when its Has flag is set.
type ProfileSample struct {
	FPS        int
	HasFPS     bool
	MemoryMB   uint64
	HasMemory  bool
	CPUPercent float64
	HasCPU     bool
}

// Profiler counts frames and periodically reports FPS, memory and CPU use.
// All state lives in the struct; create one per loop.
type Profiler struct {
	cfg ProfilerConfig

	frames      int
	lastFPS     int64
	lastMemory  int64
	lastCPU     int64
	prevCPUSecs float64

	// MemorySampler returns the process memory in bytes. Defaults to the
	// runtime's total mapped memory.
	MemorySampler func() uint64
	// CPUSampler returns cumulative CPU seconds used by the process.
	CPUSampler func() float64

	logger *slog.Logger
}

// NewProfiler creates a profiler whose intervals start at now (ms).
func NewProfiler(now int64, cfg ProfilerConfig) *Profiler {
	p := &Profiler{
		cfg:           cfg.withDefaults(),
		lastFPS:       now,
		lastMemory:    now,
		lastCPU:       now,
		MemorySampler: readMemoryBytes,
		CPUSampler:    readCPUSeconds,
		logger:        slog.Default(),
	}
	p.prevCPUSecs = p.CPUSampler()
	return p
}

// SetLogger routes reports to l. A nil logger silences them.
func (p *Profiler) SetLogger(l *slog.Logger) { p.logger = l }

// Update counts one frame at time now (ms) and returns any reports that
// fell due.
func (p *Profiler) Update(now int64) ProfileSample {
	var s ProfileSample
	p.frames++

	if now-p.lastFPS >= p.cfg.FPSInterval {
		s.FPS, s.HasFPS = p.frames, true
		p.frames = 0
		p.lastFPS = now
		p.log("profiler fps", "fps", s.FPS)
	}

	if now-p.lastMemory >= p.cfg.MemoryInterval {
		s.MemoryMB, s.HasMemory = p.MemorySampler()/1024/1024, true
		p.lastMemory = now
		p.log("profiler memory", "mb", s.MemoryMB)
	}

	if wall := now - p.lastCPU; wall >= p.cfg.CPUInterval {
		cpu := p.CPUSampler()
		s.CPUPercent = (cpu - p.prevCPUSecs) / (float64(wall) / 1000) * 100
		s.HasCPU = true
		p.prevCPUSecs = cpu
		p.lastCPU = now
		p.log("profiler cpu", "percent", s.CPUPercent)
	}
	return s
}

func (p *Profiler) log(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Info(msg, args...)
	}
}

func readMetric(name string) metrics.Value {
	s := []metrics.Sample{{Name: name}}
	metrics.Read(s)
	return s[0].Value
}

func readCPUSeconds() float64 {
	v := readMetric(metricCPUSeconds)
	if v.Kind() != metrics.KindFloat64 {
		return 0
	}
	return v.Float64()
}

func readMemoryBytes() uint64 {
	v := readMetric(metricMemoryBytes)
	if v.Kind() != metrics.KindUint64 {
		return 0
	}
	return v.Uint64()
}
