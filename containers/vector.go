// ABOUTME: Managed growable vector of handles with a custom enumerator
// ABOUTME: Relocation-safe: moved slots are retired and re-barriered, owners re-discovered each cycle

package containers

import "github.com/prateek/tinygc/gc"

// Vector is a managed, growable sequence of handles to T. It lives behind a
// managed allocation itself; elements are traced through ForEachHandle, so
// the backing storage may relocate freely between collections.
type Vector[T any] struct {
	slots []gc.Handle[T]
}

// NewVector allocates an empty managed vector. The element descriptor is
// registered eagerly so compound elements enumerate correctly from the
// first cycle.
func NewVector[T any]() *gc.Handle[Vector[T]] {
	gc.EnsureRegistered[T]()
	return gc.New[Vector[T]](nil)
}

// ForEachHandle yields every live slot once.
func (v *Vector[T]) ForEachHandle(visit func(*gc.Ref)) {
	for i := range v.slots {
		visit(v.slots[i].Ref())
	}
}

// Len returns the element count.
func (v *Vector[T]) Len() int { return len(v.slots) }

// At returns the handle in slot i.
func (v *Vector[T]) At(i int) *gc.Handle[T] { return &v.slots[i] }

// Push appends a handle pointing at src's target.
func (v *Vector[T]) Push(src *gc.Handle[T]) {
	if len(v.slots) == cap(v.slots) {
		v.grow()
	}
	v.slots = v.slots[:len(v.slots)+1]
	v.slots[len(v.slots)-1].Set(src)
}

// Set points slot i at src's target.
func (v *Vector[T]) Set(i int, src *gc.Handle[T]) {
	v.slots[i].Set(src)
}

// Pop releases and removes the last slot.
func (v *Vector[T]) Pop() {
	last := len(v.slots) - 1
	v.slots[last].Release()
	v.slots = v.slots[:last]
}

// Clear releases every slot. The elements become unreachable through this
// vector; they are reclaimed once no other path roots them.
func (v *Vector[T]) Clear() {
	for i := range v.slots {
		v.slots[i].Release()
	}
	v.slots = v.slots[:0]
}

// grow relocates the backing storage. The moved-from handles are retired
// through the deferred-unref path and the copies re-registered by the write
// barrier, mirroring what element destructors do when a native vector
// reallocates.
func (v *Vector[T]) grow() {
	newCap := 4
	if cap(v.slots) > 0 {
		newCap = cap(v.slots) * 2
	}
	ns := make([]gc.Handle[T], len(v.slots), newCap)
	for i := range v.slots {
		ns[i].Set(&v.slots[i])
		v.slots[i].Release()
	}
	v.slots = ns
}
