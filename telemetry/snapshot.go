package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/plantgrow/tree"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// Snapshot holds a complete tree for later inspection or replay.
type Snapshot struct {
	Version int    `json:"version"`
	Species string `json:"species,omitempty"`
	RNGSeed int64  `json:"rng_seed"`
	Cycle   int    `json:"cycle"`

	Branches []BranchState `json:"branches"`
}

// BranchState holds one branch in arena order.
type BranchState struct {
	Parent    int          `json:"parent"`
	Start     [3]float64   `json:"start"`
	Direction [3]float64   `json:"direction"`
	Length    float64      `json:"length"`
	Radius    float64      `json:"radius"`
	Depth     int          `json:"depth"`
	Age       int          `json:"age"`
	Light     float64      `json:"light"`
	Curve     [][3]float64 `json:"curve,omitempty"`
}

func toArray(v r3.Vec) [3]float64 { return [3]float64{v.X, v.Y, v.Z} }

func fromArray(a [3]float64) r3.Vec { return r3.Vec{X: a[0], Y: a[1], Z: a[2]} }

// NewSnapshot captures the tree.
func NewSnapshot(t *tree.Tree, species string, seed int64) *Snapshot {
	s := &Snapshot{
		Version:  SnapshotVersion,
		Species:  species,
		RNGSeed:  seed,
		Cycle:    t.Age,
		Branches: make([]BranchState, 0, t.Len()),
	}
	for _, b := range t.Branches() {
		bs := BranchState{
			Parent:    b.Parent,
			Start:     toArray(b.Start),
			Direction: toArray(b.Direction),
			Length:    b.Length,
			Radius:    b.Radius,
			Depth:     b.Depth,
			Age:       b.Age,
			Light:     b.LightExposure,
		}
		for _, p := range b.Curve {
			bs.Curve = append(bs.Curve, toArray(p))
		}
		s.Branches = append(s.Branches, bs)
	}
	return s
}

// Tree rebuilds the branch arena. Parents must precede their children.
func (s *Snapshot) Tree() (*tree.Tree, error) {
	t := tree.New()
	t.Age = s.Cycle
	for i, bs := range s.Branches {
		b := tree.Branch{
			Start:         fromArray(bs.Start),
			Direction:     fromArray(bs.Direction),
			Length:        bs.Length,
			Radius:        bs.Radius,
			Age:           bs.Age,
			LightExposure: bs.Light,
		}
		for _, p := range bs.Curve {
			b.Curve = append(b.Curve, fromArray(p))
		}

		if i == 0 {
			t.SetRoot(b)
			continue
		}
		if bs.Parent < 0 || bs.Parent >= i {
			return nil, fmt.Errorf("branch %d: parent %d out of order", i, bs.Parent)
		}
		t.Attach(bs.Parent, b)
	}
	return t, nil
}

// SaveSnapshot writes a snapshot to disk.
// Returns the filepath where it was saved.
func SaveSnapshot(snapshot *Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("snapshot_%d.json", snapshot.Cycle))

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}

	return path, nil
}

// LoadSnapshot reads a snapshot from disk.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	if snapshot.Version != SnapshotVersion {
		return nil, fmt.Errorf("snapshot version %d, want %d", snapshot.Version, SnapshotVersion)
	}

	return &snapshot, nil
}
