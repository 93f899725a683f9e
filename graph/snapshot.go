// ABOUTME: Builds an object graph from a live collector at a safepoint
// ABOUTME: Objects keep type, generation, size, and outgoing handle edges; roots come from the root set

package graph

import "github.com/prateek/tinygc/gc"

// Snapshot captures the collector's live heap as an object graph. It must be
// called at a safepoint under the collector's single-threaded contract; the
// resulting graph is a plain value, safe to analyze or export afterwards.
func Snapshot(c *gc.Collector) *MemGraph {
	g := NewMemGraph()

	c.VisitObjects(func(info gc.ObjInfo) {
		obj := &Object{
			Addr: ObjID(info.Addr),
			Type: info.Type,
			Gen:  info.Gen,
			Len:  info.Len,
			Size: info.Bytes,
			Refs: make([]ObjID, 0, len(info.Ptrs)),
		}
		for _, p := range info.Ptrs {
			obj.Refs = append(obj.Refs, ObjID(p))
		}
		g.AddObject(obj)
	})

	addrs := c.RootAddrs()
	roots := Roots{IDs: make([]ObjID, 0, len(addrs))}
	seen := make(map[ObjID]bool, len(addrs))
	for _, a := range addrs {
		id := ObjID(a)
		if !seen[id] {
			seen[id] = true
			roots.IDs = append(roots.IDs, id)
		}
	}
	g.SetRoots(roots)

	return g
}
