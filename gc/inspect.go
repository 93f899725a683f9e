// ABOUTME: Read-only live-heap visitor feeding diagnostics and graph snapshots
// ABOUTME: Exposes per-allocation info and the live root set at a safepoint

package gc

// ObjInfo describes one live allocation for diagnostics. Addr is the header
// address and is stable for the allocation's lifetime.
type ObjInfo struct {
	Addr  uintptr
	Type  string
	Len   int
	Bytes uint64
	Gen   string    // "young" or "old"
	Ptrs  []uintptr // header addresses of non-nil embedded handle targets
}

// VisitObjects walks every live allocation in both generations. The caller
// must hold the single-threaded contract; fn must not allocate managed
// objects or mutate handles.
func (c *Collector) VisitObjects(fn func(ObjInfo)) {
	for _, l := range [2]*genList{&c.young, &c.old} {
		gen := "young"
		if l == &c.old {
			gen = "old"
		}
		for h := l.first; h != nil; h = h.next {
			if h.length == 0 {
				continue
			}
			info := ObjInfo{
				Addr:  headerAddr(h),
				Type:  h.typ.name,
				Len:   h.length,
				Bytes: h.bytes(),
				Gen:   gen,
			}
			e := newEnumerator(h)
			for r, ok := e.Next(); ok; r, ok = e.Next() {
				if r.target != nil && r.target.length != 0 {
					info.Ptrs = append(info.Ptrs, headerAddr(r.target))
				}
			}
			e.Close()
			fn(info)
		}
	}
}

// RootAddrs returns the header addresses targeted by live root handles. The
// pending queues are absorbed first so the answer reflects every assignment
// made so far.
func (c *Collector) RootAddrs() []uintptr {
	c.absorbPending()
	var out []uintptr
	for r := range c.roots {
		if r.flags&refReleased != 0 || r.flags&refRoot == 0 {
			continue
		}
		if r.target != nil && r.target.length != 0 {
			out = append(out, headerAddr(r.target))
		}
	}
	return out
}
