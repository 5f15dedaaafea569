package telemetry

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/plantgrow/config"
)

func TestNilOutputManager(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil || om != nil {
		t.Fatalf("expected nil manager for empty dir, got %v, %v", om, err)
	}
	if err := om.WriteCycle(CycleStats{}); err != nil {
		t.Error(err)
	}
	if err := om.Close(); err != nil {
		t.Error(err)
	}
	if om.Dir() != "" {
		t.Error("expected empty dir")
	}
}

func TestOutputManagerWritesCSV(t *testing.T) {
	om, err := NewOutputManager(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i <= 3; i++ {
		if err := om.WriteCycle(CycleStats{Cycle: i, Branches: 100 - i, Strategy: "exact"}); err != nil {
			t.Fatal(err)
		}
	}
	if err := om.WritePerf(PerfStats{AvgCycleDuration: time.Millisecond}, 3); err != nil {
		t.Fatal(err)
	}
	if err := om.WriteConfig(config.Default()); err != nil {
		t.Fatal(err)
	}
	if err := om.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(om.Path("cycles.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(string(data), "cycle,branches"); n != 1 {
		t.Errorf("expected one header row, got %d", n)
	}
	var rows []*CycleStats
	if err := gocsv.UnmarshalBytes(data, &rows); err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 || rows[2].Cycle != 3 || rows[2].Branches != 97 {
		t.Errorf("unexpected rows %+v", rows)
	}

	if _, err := config.Load(om.Path("config.yaml")); err != nil {
		t.Errorf("written config does not load: %v", err)
	}
	if info, err := os.Stat(om.Path("perf.csv")); err != nil || info.Size() == 0 {
		t.Error("perf.csv not written")
	}
}
