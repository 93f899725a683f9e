// ABOUTME: Plain-text exporter for heap snapshots
// ABOUTME: Renders a per-generation table with humanized sizes

package dump

import (
	"fmt"
	"io"
	"sort"

	"github.com/inhies/go-bytesize"

	"github.com/prateek/tinygc/graph"
)

// TextExporter writes a compact table of the snapshot: one line per
// allocation grouped by generation, followed by totals.
type TextExporter struct{}

// Name returns the registry name of this exporter
func (e *TextExporter) Name() string { return "text" }

// Export writes the graph as a text table
func (e *TextExporter) Export(w io.Writer, g graph.Graph) error {
	byGen := map[string][]*graph.Object{}
	var total uint64
	g.ForEachObject(func(obj *graph.Object) {
		byGen[obj.Gen] = append(byGen[obj.Gen], obj)
		total += obj.Size
	})

	rootSet := make(map[graph.ObjID]bool)
	for _, id := range g.GetRoots().IDs {
		rootSet[id] = true
	}

	for _, gen := range []string{"young", "old"} {
		objs := byGen[gen]
		if len(objs) == 0 {
			continue
		}
		sort.Slice(objs, func(i, j int) bool { return objs[i].Addr < objs[j].Addr })
		if _, err := fmt.Fprintf(w, "== %s generation (%d objects) ==\n", gen, len(objs)); err != nil {
			return err
		}
		for _, obj := range objs {
			mark := " "
			if rootSet[obj.Addr] {
				mark = "*"
			}
			if _, err := fmt.Fprintf(w, "%s %#x  %-24s len=%-4d %8s  refs=%d\n",
				mark, uintptr(obj.Addr), obj.Type, obj.Len,
				bytesize.New(float64(obj.Size)), len(obj.Refs)); err != nil {
				return err
			}
		}
	}

	_, err := fmt.Fprintf(w, "total: %d objects, %s (* = rooted)\n",
		g.NumObjects(), bytesize.New(float64(total)))
	return err
}

// init registers the text exporter
func init() {
	Register(&TextExporter{})
}
