package export

import (
	"io"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/plantgrow/tree"
)

// BranchRecord is one row of the branch CSV.
type BranchRecord struct {
	Index       int     `csv:"index"`
	Parent      int     `csv:"parent"`
	Depth       int     `csv:"depth"`
	Age         int     `csv:"age"`
	StartX      float64 `csv:"start_x"`
	StartY      float64 `csv:"start_y"`
	StartZ      float64 `csv:"start_z"`
	EndX        float64 `csv:"end_x"`
	EndY        float64 `csv:"end_y"`
	EndZ        float64 `csv:"end_z"`
	Length      float64 `csv:"length"`
	Radius      float64 `csv:"radius"`
	Light       float64 `csv:"light"`
	CurvePoints int     `csv:"curve_points"`
}

// Records converts the tree into CSV rows in arena order.
func Records(t *tree.Tree) []*BranchRecord {
	out := make([]*BranchRecord, 0, t.Len())
	for i, b := range t.Branches() {
		end := b.End()
		out = append(out, &BranchRecord{
			Index:       i,
			Parent:      b.Parent,
			Depth:       b.Depth,
			Age:         b.Age,
			StartX:      b.Start.X,
			StartY:      b.Start.Y,
			StartZ:      b.Start.Z,
			EndX:        end.X,
			EndY:        end.Y,
			EndZ:        end.Z,
			Length:      b.Length,
			Radius:      b.Radius,
			Light:       b.LightExposure,
			CurvePoints: len(b.Curve),
		})
	}
	return out
}

// WriteCSV writes the branch table with a header row.
func WriteCSV(w io.Writer, t *tree.Tree) error {
	return gocsv.Marshal(Records(t), w)
}

// ExportCSV writes the branch table to a file.
func ExportCSV(path string, t *tree.Tree) error {
	return writeFile(path, t, WriteCSV)
}
