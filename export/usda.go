// Package export writes finished trees to USDA, CSV and plain text files.
package export

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/plantgrow/tree"
)

// DepthColor is the grey-brown display colour for a branch at depth.
func DepthColor(depth int) (r, g, b float64) {
	d := math.Max(0.2, 1-float64(depth)*0.1)
	return d, d * 0.8, d * 0.6
}

// WriteUSDA writes the tree as an ASCII USD stage with one linear
// BasisCurves prim per branch reachable from the root, in depth-first order.
func WriteUSDA(w io.Writer, t *tree.Tree) error {
	bw := bufio.NewWriter(w)

	fmt.Fprint(bw, "#usda 1.0\n(\n")
	fmt.Fprint(bw, "    defaultPrim = \"Tree\"\n")
	fmt.Fprint(bw, "    metersPerUnit = 1\n")
	fmt.Fprint(bw, "    upAxis = \"Y\"\n)\n\n")
	fmt.Fprint(bw, "def Xform \"Tree\" (\n    kind = \"component\"\n)\n{\n")

	t.Walk(func(idx int, b *tree.Branch) bool {
		pts := b.PathPoints(1)

		fmt.Fprintf(bw, "    def BasisCurves \"Branch_%d\"\n    {\n", idx)
		fmt.Fprint(bw, "        uniform token type = \"linear\"\n")
		fmt.Fprintf(bw, "        int[] curveVertexCounts = [%d]\n", len(pts))

		fmt.Fprint(bw, "        point3f[] points = [")
		for i, p := range pts {
			if i > 0 {
				fmt.Fprint(bw, ", ")
			}
			writePoint(bw, p)
		}
		fmt.Fprint(bw, "]\n")

		// Widths taper linearly from radius to 0.8 * radius.
		fmt.Fprint(bw, "        float[] widths = [")
		for i := range pts {
			if i > 0 {
				fmt.Fprint(bw, ", ")
			}
			f := float64(i) / float64(len(pts)-1)
			fmt.Fprintf(bw, "%g", b.Radius*(1-0.2*f))
		}
		fmt.Fprint(bw, "]\n")

		r, g, bl := DepthColor(b.Depth)
		fmt.Fprintf(bw, "        color3f[] primvars:displayColor = [(%g, %g, %g)]\n", r, g, bl)
		fmt.Fprint(bw, "    }\n\n")
		return true
	})

	fmt.Fprint(bw, "}\n")
	return bw.Flush()
}

func writePoint(w io.Writer, p r3.Vec) {
	fmt.Fprintf(w, "(%g, %g, %g)", p.X, p.Y, p.Z)
}

// ExportUSDA writes the tree to a .usda file.
func ExportUSDA(path string, t *tree.Tree) error {
	return writeFile(path, t, WriteUSDA)
}

func writeFile(path string, t *tree.Tree, write func(io.Writer, *tree.Tree) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := write(f, t); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}
