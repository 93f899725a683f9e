// ABOUTME: Per-allocation object header and the intrusive generation list
// ABOUTME: Headers carry type, length, color, and promotion bookkeeping

package gc

import "unsafe"

// color is the tri-less two-color mark state. Between collections every
// live header is white; black means "reached this cycle".
type color uint8

const (
	colorWhite color = iota
	colorBlack
)

// objMagic is the sentinel byte checked when adopting a raw payload pointer.
const objMagic = 0xDD

type generation uint8

const (
	genYoung generation = iota
	genOld
)

// objHeader precedes (scalar allocations) or owns (array allocations) every
// managed payload. length == 0 means the slot has been destroyed and is
// pending deallocation.
type objHeader struct {
	typ     *typeDesc
	payload unsafe.Pointer
	keep    any // retains the []T backing store of array allocations
	prev    *objHeader
	next    *objHeader
	length  int
	color   color
	gen     generation
	scanAge uint8
	magic   uint8
	// hasSubHandles caches whether the last enumeration produced any
	// embedded handles, so empty objects skip enumeration entirely.
	hasSubHandles bool
}

// containsPtr reports whether p falls inside this allocation's payload range.
func (h *objHeader) containsPtr(p uintptr) bool {
	if h.length == 0 || h.payload == nil {
		return false
	}
	base := uintptr(h.payload)
	return base <= p && p < base+uintptr(h.length)*h.typ.elemSize
}

// elemAt returns the address of element i. No bounds check; callers hold the
// single-threaded invariant and a valid index.
func (h *objHeader) elemAt(i int) unsafe.Pointer {
	return unsafe.Add(h.payload, uintptr(i)*h.typ.elemSize)
}

func (h *objHeader) bytes() uint64 {
	return uint64(h.length) * uint64(h.typ.elemSize)
}

// genList is an intrusive doubly-linked list of headers. Insert and remove
// are O(1) and allocation-free; the prev/next slots live in the header.
type genList struct {
	first *objHeader
	last  *objHeader
	size  int
}

func (l *genList) pushBack(h *objHeader) {
	if l.last != nil {
		l.last.next = h
	} else {
		l.first = h
	}
	h.prev = l.last
	h.next = nil
	l.last = h
	l.size++
}

func (l *genList) remove(h *objHeader) {
	if h == l.first {
		l.first = h.next
	} else if h.prev != nil {
		h.prev.next = h.next
	}
	if h == l.last {
		l.last = h.prev
	} else if h.next != nil {
		h.next.prev = h.prev
	}
	h.prev = nil
	h.next = nil
	l.size--
}
