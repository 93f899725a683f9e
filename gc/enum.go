// ABOUTME: Uniform traversal of embedded handles inside one allocation
// ABOUTME: Offset-table walk for fixed layouts, custom dispatch for containers, pooled pull enumerator

package gc

import "unsafe"

// forEachHandle visits every embedded handle of the allocation once,
// trusting the cached hasSubHandles hint. Only valid between a pre-mark that
// refreshed the hint and the end of that same collection cycle; everything
// running outside a cycle uses enumerateHandles instead, because container
// types can go from empty to populated between collections.
func (h *objHeader) forEachHandle(visit func(*Ref)) {
	if !h.hasSubHandles {
		return
	}
	h.enumerateHandles(visit)
}

// enumerateHandles visits every embedded handle of the allocation once,
// bypassing the cached hint. Fixed layout types walk the descriptor's offset
// table per element; container types dispatch to their own enumerator.
// Destroyed slots are skipped.
func (h *objHeader) enumerateHandles(visit func(*Ref)) {
	if h.length == 0 {
		return
	}
	d := h.typ
	if d.iterate != nil {
		for i := 0; i < h.length; i++ {
			d.iterate(h.elemAt(i), visit)
		}
		return
	}
	if len(d.offsets) == 0 {
		return
	}
	for i := 0; i < h.length; i++ {
		base := h.elemAt(i)
		for _, off := range d.offsets {
			visit((*Ref)(unsafe.Add(base, off)))
		}
	}
}

// Enumerator is a one-shot sequence of the embedded handles of one
// allocation. It is not lazy: every handle is collected when the enumerator
// is created, and Next then yields them one at a time. Enumerators are
// pooled to avoid per-enumeration churn; Close returns one to the pool.
type Enumerator struct {
	refs []*Ref
	pos  int
}

// enumPool is a plain free list; single-threaded access per the collector's
// scheduling model.
var enumPool []*Enumerator

func newEnumerator(h *objHeader) *Enumerator {
	var e *Enumerator
	if n := len(enumPool); n > 0 {
		e = enumPool[n-1]
		enumPool = enumPool[:n-1]
	} else {
		e = &Enumerator{}
	}
	// Enumerators serve diagnostics outside collection cycles, where the
	// cached hint may be stale.
	h.enumerateHandles(func(r *Ref) {
		e.refs = append(e.refs, r)
	})
	return e
}

// Next yields the next embedded handle, or false when the sequence is spent.
func (e *Enumerator) Next() (*Ref, bool) {
	if e.pos >= len(e.refs) {
		return nil, false
	}
	r := e.refs[e.pos]
	e.pos++
	return r, true
}

// Close recycles the enumerator. The Enumerator must not be used afterwards.
func (e *Enumerator) Close() {
	for i := range e.refs {
		e.refs[i] = nil
	}
	e.refs = e.refs[:0]
	e.pos = 0
	enumPool = append(enumPool, e)
}
