package telemetry

import (
	"testing"
	"time"
)

func TestPerfCollector_BasicTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartCycle()
		pc.StartPhase(PhaseResources)
		time.Sleep(100 * time.Microsecond)
		pc.StartPhase(PhasePrune)
		time.Sleep(200 * time.Microsecond)
		pc.EndCycle()
	}

	stats := pc.Stats()

	if stats.AvgCycleDuration <= 0 {
		t.Error("expected positive average cycle duration")
	}
	if _, ok := stats.PhaseAvg[PhaseResources]; !ok {
		t.Error("expected resources phase to be tracked")
	}
	if _, ok := stats.PhaseAvg[PhasePrune]; !ok {
		t.Error("expected prune phase to be tracked")
	}
	if stats.MinCycleDuration > stats.MaxCycleDuration {
		t.Error("min cycle longer than max cycle")
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc := NewPerfCollector(5)

	for i := 0; i < 10; i++ {
		pc.StartCycle()
		pc.StartPhase(PhaseRewrite)
		pc.EndCycle()
	}

	if pc.sampleCount != 5 {
		t.Errorf("expected window capped at 5 samples, got %d", pc.sampleCount)
	}
	if pc.Stats().AvgCycleDuration <= 0 {
		t.Error("expected positive average cycle duration after window filled")
	}
}

func TestPerfCollector_PhasePercentages(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartCycle()
		pc.StartPhase("fast")
		time.Sleep(10 * time.Microsecond)
		pc.StartPhase("slow")
		time.Sleep(500 * time.Microsecond)
		pc.EndCycle()
	}

	stats := pc.Stats()
	if stats.PhasePct["slow"] <= stats.PhasePct["fast"] {
		t.Errorf("expected slow phase (%v%%) > fast phase (%v%%)", stats.PhasePct["slow"], stats.PhasePct["fast"])
	}
}

func TestPerfCollector_EmptyStats(t *testing.T) {
	stats := NewPerfCollector(10).Stats()

	if stats.AvgCycleDuration != 0 {
		t.Error("expected zero avg cycle duration for empty collector")
	}
	if stats.PhaseAvg == nil || stats.PhasePct == nil {
		t.Error("expected non-nil phase maps")
	}
}

func TestPerfCollector_FrameTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	pc.RecordFrame()
	time.Sleep(16 * time.Millisecond)
	pc.RecordFrame()

	stats := pc.Stats()
	if stats.FrameDuration < 15*time.Millisecond {
		t.Errorf("expected frame duration >= 15ms, got %v", stats.FrameDuration)
	}
	if stats.FPS <= 0 || stats.FPS > 70 {
		t.Errorf("expected FPS in (0, 70], got %v", stats.FPS)
	}
}

func TestPerfStatsToCSV(t *testing.T) {
	s := PerfStats{
		AvgCycleDuration: 3 * time.Millisecond,
		PhasePct:         map[string]float64{PhaseResources: 80, PhasePrune: 20},
	}
	rec := s.ToCSV(4)
	if rec.Cycle != 4 || rec.AvgCycleUS != 3000 || rec.ResourcesPct != 80 || rec.PrunePct != 20 {
		t.Errorf("unexpected record %+v", rec)
	}
}
