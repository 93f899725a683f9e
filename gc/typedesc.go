// ABOUTME: Per-type descriptors with embedded-handle offset tables
// ABOUTME: Discovers handle offsets once per type and dispatches destruction and enumeration

package gc

import (
	"reflect"
	"unsafe"
)

// Finalizer is implemented by element types that want a destructor. The
// collector runs Finalize on each element exactly once, when the element is
// destroyed (by sweep, Destroy, constructor unwind, or collector Close).
type Finalizer interface {
	Finalize()
}

// HandleIterable is the container enumerator contract. Types with handles in
// variable internal layout (slices, maps) implement it to expose each live
// embedded handle exactly once per enumeration. The visit callback must be
// invoked with addresses that are valid at the time of the call; storage may
// relocate between collections, owners are re-discovered every cycle.
type HandleIterable interface {
	ForEachHandle(visit func(*Ref))
}

// typeDesc is the process-global descriptor for one concrete element type.
// Built lazily on first use; the offset table is frozen once registered.
type typeDesc struct {
	name       string
	elemSize   uintptr
	cellOffset uintptr // payload offset inside a cell allocation
	// offsets holds the byte offsets, ascending, of every embedded handle
	// within a single element. nil for types with a custom enumerator.
	offsets    []uintptr
	registered bool

	finalize func(unsafe.Pointer)              // nil when T has no Finalize
	iterate  func(unsafe.Pointer, func(*Ref)) // nil unless *T is HandleIterable
}

// descs maps reflect types to their descriptors. Single-threaded access per
// the collector's scheduling model, so no lock.
var descs = make(map[reflect.Type]*typeDesc)

var (
	handleMarkerType = reflect.TypeOf((*interface{ managedHandle() })(nil)).Elem()
	iterableType     = reflect.TypeOf((*HandleIterable)(nil)).Elem()
	finalizerType    = reflect.TypeOf((*Finalizer)(nil)).Elem()
)

// descFor returns the descriptor for T, building it on first use. The offset
// table is computed here, before the first construction of T, by walking T's
// type; it never changes afterwards.
func descFor[T any]() *typeDesc {
	rt := reflect.TypeOf((*T)(nil)).Elem()
	if d, ok := descs[rt]; ok {
		return d
	}
	d := &typeDesc{
		name:       rt.String(),
		elemSize:   unsafe.Sizeof(*new(T)),
		cellOffset: unsafe.Offsetof(cell[T]{}.elem),
	}
	pt := reflect.PointerTo(rt)
	if pt.Implements(iterableType) {
		d.iterate = func(p unsafe.Pointer, visit func(*Ref)) {
			any((*T)(p)).(HandleIterable).ForEachHandle(visit)
		}
	} else {
		d.offsets = handleOffsets(rt)
	}
	if pt.Implements(finalizerType) || rt.Implements(finalizerType) {
		d.finalize = func(p unsafe.Pointer) {
			any((*T)(p)).(Finalizer).Finalize()
		}
	}
	descs[rt] = d
	return d
}

// handleOffsets walks a type and collects the byte offsets of every embedded
// handle field, in ascending order, recursing through nested structs and
// arrays. Handles inside maps, slices, or interfaces are not reachable this
// way; such types implement HandleIterable instead.
func handleOffsets(rt reflect.Type) []uintptr {
	var out []uintptr
	collectOffsets(rt, 0, &out)
	return out
}

func collectOffsets(rt reflect.Type, base uintptr, out *[]uintptr) {
	switch rt.Kind() {
	case reflect.Struct:
		if rt.Implements(handleMarkerType) {
			*out = append(*out, base)
			return
		}
		for i := 0; i < rt.NumField(); i++ {
			f := rt.Field(i)
			collectOffsets(f.Type, base+f.Offset, out)
		}
	case reflect.Array:
		et := rt.Elem()
		for i := 0; i < rt.Len(); i++ {
			collectOffsets(et, base+uintptr(i)*et.Size(), out)
		}
	}
}

// noteSubHandle records the offset of a handle constructed inside owner while
// the owner's type is not yet registered. Recursion into sub-objects already
// recorded is filtered by requiring strictly ascending offsets; offsets are
// element-relative, so anything past the first element is rejected too.
func (d *typeDesc) noteSubHandle(owner *objHeader, r *Ref) {
	if d.registered {
		return
	}
	off := uintptr(unsafe.Pointer(r)) - uintptr(owner.payload)
	if off >= d.elemSize {
		return
	}
	if n := len(d.offsets); n > 0 && off <= d.offsets[n-1] {
		return
	}
	d.offsets = append(d.offsets, off)
}

// destructRange runs finalizers over elements [0, n) in order.
func (d *typeDesc) destructRange(payload unsafe.Pointer, n int) {
	if d.finalize == nil {
		return
	}
	for i := 0; i < n; i++ {
		d.finalize(unsafe.Add(payload, uintptr(i)*d.elemSize))
	}
}

// destructPrefixReverse unwinds a partially-constructed allocation, running
// finalizers over elements [0, n) innermost first.
func (d *typeDesc) destructPrefixReverse(payload unsafe.Pointer, n int) {
	if d.finalize == nil {
		return
	}
	for i := n - 1; i >= 0; i-- {
		d.finalize(unsafe.Add(payload, uintptr(i)*d.elemSize))
	}
}

// EnsureRegistered builds and freezes the type descriptor for T without
// constructing an instance. Container adapters call this for compound element
// types before enumeration.
func EnsureRegistered[T any]() {
	descFor[T]().registered = true
}

// cell is the layout of a scalar managed allocation: the header immediately
// followed by the payload, so the header can be recovered from a raw payload
// pointer by subtracting the payload offset.
type cell[T any] struct {
	hdr  objHeader
	elem T
}

func allocCell[T any]() *objHeader {
	c := new(cell[T])
	c.hdr.payload = unsafe.Pointer(&c.elem)
	return &c.hdr
}

// allocSlice backs an n-element array allocation with a []T the header
// retains. The header is not contiguous with the payload in this shape;
// FromRaw and Adopt fall back to the creating stack or a generation scan.
func allocSlice[T any](n int) *objHeader {
	s := make([]T, n)
	h := new(objHeader)
	h.payload = unsafe.Pointer(&s[0])
	h.keep = s
	return h
}
