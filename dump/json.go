// ABOUTME: JSON exporter for heap snapshots
// ABOUTME: Writes objects and roots in a stable, sorted layout

package dump

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/prateek/tinygc/graph"
)

// JSONExporter writes snapshots as a single JSON document with objects
// sorted by address, so identical heaps produce identical output.
type JSONExporter struct{}

// jsonDump is the exported document layout
type jsonDump struct {
	Objects []jsonObject  `json:"objects"`
	Roots   []graph.ObjID `json:"roots"`
}

// jsonObject is one allocation in the exported layout
type jsonObject struct {
	Addr graph.ObjID   `json:"addr"`
	Type string        `json:"type"`
	Gen  string        `json:"gen"`
	Len  int           `json:"len"`
	Size uint64        `json:"size"`
	Refs []graph.ObjID `json:"refs,omitempty"`
}

// Name returns the registry name of this exporter
func (e *JSONExporter) Name() string { return "json" }

// Export writes the graph as JSON
func (e *JSONExporter) Export(w io.Writer, g graph.Graph) error {
	doc := jsonDump{
		Objects: make([]jsonObject, 0, g.NumObjects()),
	}
	g.ForEachObject(func(obj *graph.Object) {
		doc.Objects = append(doc.Objects, jsonObject{
			Addr: obj.Addr,
			Type: obj.Type,
			Gen:  obj.Gen,
			Len:  obj.Len,
			Size: obj.Size,
			Refs: obj.Refs,
		})
	})
	sort.Slice(doc.Objects, func(i, j int) bool {
		return doc.Objects[i].Addr < doc.Objects[j].Addr
	})

	doc.Roots = append(doc.Roots, g.GetRoots().IDs...)
	sort.Slice(doc.Roots, func(i, j int) bool { return doc.Roots[i] < doc.Roots[j] })

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(&doc); err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	return nil
}

// init registers the JSON exporter
func init() {
	Register(&JSONExporter{})
}
