package telemetry

import (
	"log/slog"
	"time"
)

// Phase names for one generation cycle.
const (
	PhaseRewrite   = "rewrite"
	PhaseInterpret = "interpret"
	PhaseResources = "resources"
	PhasePrune     = "prune"
)

// Phases lists the phases in execution order.
var Phases = []string{PhaseRewrite, PhaseInterpret, PhaseResources, PhasePrune}

// PerfSample holds timing data for a single cycle.
type PerfSample struct {
	CycleDuration time.Duration
	Phases        map[string]time.Duration
}

// PerfCollector tracks performance metrics over a rolling window.
type PerfCollector struct {
	windowSize    int
	samples       []PerfSample
	writeIndex    int
	sampleCount   int
	currentPhases map[string]time.Duration
	cycleStart    time.Time
	phaseStart    time.Time
	lastPhase     string

	// Frame timing (viewer)
	lastFrameTime time.Time
	frameDuration time.Duration
}

// NewPerfCollector creates a new performance collector.
// windowSize: number of cycles to average over.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 16
	}
	return &PerfCollector{
		windowSize:    windowSize,
		samples:       make([]PerfSample, windowSize),
		currentPhases: make(map[string]time.Duration),
	}
}

// StartCycle begins timing a new cycle.
func (p *PerfCollector) StartCycle() {
	p.cycleStart = time.Now()
	p.currentPhases = make(map[string]time.Duration)
	p.lastPhase = ""
}

// StartPhase begins timing a specific phase.
func (p *PerfCollector) StartPhase(phase string) {
	now := time.Now()
	// End previous phase if any
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}
	p.phaseStart = now
	p.lastPhase = phase
}

// EndCycle finishes timing the current cycle and records the sample.
func (p *PerfCollector) EndCycle() {
	now := time.Now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}

	p.samples[p.writeIndex] = PerfSample{
		CycleDuration: now.Sub(p.cycleStart),
		Phases:        p.currentPhases,
	}
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
}

// RecordFrame records frame timing for the viewer.
func (p *PerfCollector) RecordFrame() {
	now := time.Now()
	if !p.lastFrameTime.IsZero() {
		p.frameDuration = now.Sub(p.lastFrameTime)
	}
	p.lastFrameTime = now
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	AvgCycleDuration time.Duration
	MinCycleDuration time.Duration
	MaxCycleDuration time.Duration

	// Phase breakdown (average durations)
	PhaseAvg map[string]time.Duration

	// Phase percentages of total cycle time
	PhasePct map[string]float64

	// Frame timing (viewer)
	FrameDuration time.Duration
	FPS           float64
}

// Stats computes aggregated statistics over the current window.
func (p *PerfCollector) Stats() PerfStats {
	var fps float64
	if p.frameDuration > 0 {
		fps = float64(time.Second) / float64(p.frameDuration)
	}

	if p.sampleCount == 0 {
		return PerfStats{
			PhaseAvg:      make(map[string]time.Duration),
			PhasePct:      make(map[string]float64),
			FrameDuration: p.frameDuration,
			FPS:           fps,
		}
	}

	var total, minCycle, maxCycle time.Duration
	phaseSum := make(map[string]time.Duration)
	for i := 0; i < p.sampleCount; i++ {
		s := p.samples[i]
		total += s.CycleDuration
		if i == 0 || s.CycleDuration < minCycle {
			minCycle = s.CycleDuration
		}
		if s.CycleDuration > maxCycle {
			maxCycle = s.CycleDuration
		}
		for phase, dur := range s.Phases {
			phaseSum[phase] += dur
		}
	}

	avg := total / time.Duration(p.sampleCount)
	phaseAvg := make(map[string]time.Duration)
	phasePct := make(map[string]float64)
	for phase, sum := range phaseSum {
		phaseAvg[phase] = sum / time.Duration(p.sampleCount)
		if avg > 0 {
			phasePct[phase] = float64(phaseAvg[phase]) / float64(avg) * 100
		}
	}

	return PerfStats{
		AvgCycleDuration: avg,
		MinCycleDuration: minCycle,
		MaxCycleDuration: maxCycle,
		PhaseAvg:         phaseAvg,
		PhasePct:         phasePct,
		FrameDuration:    p.frameDuration,
		FPS:              fps,
	}
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_cycle_us", s.AvgCycleDuration.Microseconds()),
		slog.Int64("min_cycle_us", s.MinCycleDuration.Microseconds()),
		slog.Int64("max_cycle_us", s.MaxCycleDuration.Microseconds()),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}
	for _, phase := range Phases {
		if pct, ok := s.PhasePct[phase]; ok && pct > 0.1 {
			attrs = append(attrs, slog.Float64(phase+"_pct", float64(int(pct*10))/10))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	Cycle        int     `csv:"cycle"`
	AvgCycleUS   int64   `csv:"avg_cycle_us"`
	MinCycleUS   int64   `csv:"min_cycle_us"`
	MaxCycleUS   int64   `csv:"max_cycle_us"`
	RewritePct   float64 `csv:"rewrite_pct"`
	InterpretPct float64 `csv:"interpret_pct"`
	ResourcesPct float64 `csv:"resources_pct"`
	PrunePct     float64 `csv:"prune_pct"`
}

// ToCSV converts PerfStats to a flat CSV-friendly struct.
func (s PerfStats) ToCSV(cycle int) PerfStatsCSV {
	return PerfStatsCSV{
		Cycle:        cycle,
		AvgCycleUS:   s.AvgCycleDuration.Microseconds(),
		MinCycleUS:   s.MinCycleDuration.Microseconds(),
		MaxCycleUS:   s.MaxCycleDuration.Microseconds(),
		RewritePct:   s.PhasePct[PhaseRewrite],
		InterpretPct: s.PhasePct[PhaseInterpret],
		ResourcesPct: s.PhasePct[PhaseResources],
		PrunePct:     s.PhasePct[PhasePrune],
	}
}
