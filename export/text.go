package export

import (
	"bufio"
	"fmt"
	"io"

	"github.com/pthm-cable/plantgrow/tree"
)

// WriteText writes one space-separated line per branch in arena order.
func WriteText(w io.Writer, t *tree.Tree) error {
	bw := bufio.NewWriter(w)
	fmt.Fprint(bw, "# plantgrow tree export\n")
	fmt.Fprint(bw, "# index parent start_x start_y start_z end_x end_y end_z radius depth\n")
	for i, b := range t.Branches() {
		end := b.End()
		fmt.Fprintf(bw, "%d %d %g %g %g %g %g %g %g %d\n",
			i, b.Parent,
			b.Start.X, b.Start.Y, b.Start.Z,
			end.X, end.Y, end.Z,
			b.Radius, b.Depth)
	}
	return bw.Flush()
}

// ExportText writes the tree to a text file.
func ExportText(path string, t *tree.Tree) error {
	return writeFile(path, t, WriteText)
}
