// ABOUTME: Managed handles: registration, write barrier, and raw-pointer adoption
// ABOUTME: Handles are the only traced references; roots are handles outside managed payloads

package gc

import "unsafe"

// Ref is the untyped core of every managed handle. Its address is its
// identity: the collector's root, remembered, and pending sets are keyed by
// *Ref. Container adapters yield *Ref values from ForEachHandle.
type Ref struct {
	target *objHeader
	owner  *objHeader
	flags  uint8
}

const (
	refRegistered uint8 = 1 << iota
	refRoot
	refOld
	refReleased
)

// IsNil reports whether the handle currently points at nothing.
func (r *Ref) IsNil() bool { return r.target == nil }

// register runs the embedded-handle discovery protocol on first use. When a
// constructor is running, the creating stack is walked top to bottom for the
// allocation whose payload contains this handle; that allocation becomes the
// owner and, if the owner's type is still unregistered, the handle's offset
// is published to it. A handle outside every managed payload is a root.
func (r *Ref) register(c *Collector) {
	if r.flags&refRegistered != 0 {
		return
	}
	r.flags |= refRegistered
	if c.constructingDepth > 0 {
		if owner := c.findCreating(uintptr(unsafe.Pointer(r))); owner != nil {
			r.owner = owner
			r.flags &^= refRoot
			owner.typ.noteSubHandle(owner, r)
			return
		}
	}
	r.flags |= refRoot
}

// assign is the write barrier. It updates the target and records the handle
// in the pending-barrier set; reconciliation with the root and remembered
// sets is deferred to the next collection.
func (r *Ref) assign(c *Collector, t *objHeader) {
	r.register(c)
	r.flags &^= refReleased
	r.target = t
	// A constructor self-reference (the owner is still on the creating
	// stack) pins its owner like a root until the handle is re-assigned
	// (the gc_from / shared_from_this contract).
	if t != nil && t == r.owner && c.findCreating(uintptr(unsafe.Pointer(r))) == t {
		r.flags |= refRoot
	}
	c.pendingBarrier[r] = struct{}{}
}

// release queues the handle for removal from the collector's sets at the
// next safepoint. Destruction never edits the sets directly.
func (r *Ref) release(c *Collector) {
	if r.flags&refReleased != 0 {
		return
	}
	r.flags |= refReleased
	r.target = nil
	c.pendingUnrefs = append(c.pendingUnrefs, r)
}

// Handle is a typed managed pointer to one or more elements of type T. The
// zero value is a nil handle. Handles embedded in managed objects are traced
// through their owner; handles living anywhere else are roots and must be
// released with Release when no longer needed (Go runs no destructors for
// us, so root lifetime is explicit).
type Handle[T any] struct {
	ref Ref
}

func (Handle[T]) managedHandle() {}

// Ref exposes the untyped core, primarily for ForEachHandle implementations.
func (h *Handle[T]) Ref() *Ref { return &h.ref }

// IsNil reports whether the handle points at nothing.
func (h *Handle[T]) IsNil() bool { return h.ref.target == nil }

// Get returns the payload, or nil for a nil handle.
func (h *Handle[T]) Get() *T {
	t := h.ref.target
	if t == nil {
		return nil
	}
	return (*T)(t.payload)
}

// At returns element i of an array allocation.
func (h *Handle[T]) At(i int) *T {
	t := h.ref.target
	if t == nil || i < 0 || i >= t.length {
		panic("gc: handle element index out of range")
	}
	return (*T)(t.elemAt(i))
}

// Len returns the element count of the target allocation (0 for nil handles
// and destroyed targets).
func (h *Handle[T]) Len() int {
	if h.ref.target == nil {
		return 0
	}
	return h.ref.target.length
}

// Set points this handle at src's target and fires the write barrier.
func (h *Handle[T]) Set(src *Handle[T]) {
	var t *objHeader
	if src != nil {
		t = src.ref.target
	}
	h.ref.assign(current(), t)
}

// SetNil nulls the handle and fires the write barrier.
func (h *Handle[T]) SetNil() {
	h.ref.assign(current(), nil)
}

// Adopt points this handle at the managed allocation that owns raw. Intended
// for constructor self-references (h.Adopt(self)). A pointer that does not
// belong to any managed allocation yields a nil handle.
func (h *Handle[T]) Adopt(raw *T) {
	h.ref.assign(current(), resolveRaw[T](current(), raw))
}

// Release ends this handle's participation in tracing. For root handles this
// is how the root set learns the handle is gone; removal is deferred to the
// next collection safepoint. The handle may be revived by a later Set.
func (h *Handle[T]) Release() {
	h.ref.release(current())
}

// FromRaw returns a fresh root handle to the managed allocation owning raw,
// or a nil root handle if raw is not managed. The header is recovered by
// stepping back from the payload and validating the magic byte; array
// interiors resolve through the creating stack or a generation scan.
func FromRaw[T any](raw *T) *Handle[T] {
	c := current()
	h := &Handle[T]{}
	h.ref.assign(c, resolveRaw[T](c, raw))
	return h
}

func resolveRaw[T any](c *Collector, raw *T) *objHeader {
	if raw == nil {
		return nil
	}
	p := uintptr(unsafe.Pointer(raw))
	// Constructor self-reference: the allocation is still on the creating
	// stack and findable by payload range.
	if h := c.findCreating(p); h != nil {
		return h
	}
	d := descFor[T]()
	// Scalar cell: the header sits immediately before the payload.
	cand := (*objHeader)(unsafe.Add(unsafe.Pointer(raw), -int(d.cellOffset)))
	if cand.magic == objMagic && cand.typ == d && cand.payload == unsafe.Pointer(raw) {
		return cand
	}
	// Array interior: scan the generations for a payload range containing p.
	for _, l := range [2]*genList{&c.young, &c.old} {
		for h := l.first; h != nil; h = h.next {
			if h.typ == d && h.containsPtr(p) {
				return h
			}
		}
	}
	return nil
}
