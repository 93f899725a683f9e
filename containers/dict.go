// ABOUTME: Managed keyed dictionary of handles with a custom enumerator
// ABOUTME: Entries are heap-allocated handles so addresses stay stable across map growth

package containers

import "github.com/prateek/tinygc/gc"

// Dict is a managed map from comparable keys to handles. Entry handles are
// individually allocated so their addresses survive map rehashing; removal
// goes through the deferred-unref path.
type Dict[K comparable, T any] struct {
	entries map[K]*gc.Handle[T]
}

// NewDict allocates an empty managed dictionary.
func NewDict[K comparable, T any]() *gc.Handle[Dict[K, T]] {
	gc.EnsureRegistered[T]()
	return gc.New[Dict[K, T]](func(d *Dict[K, T]) {
		d.entries = make(map[K]*gc.Handle[T])
	})
}

// ForEachHandle yields every entry once, in map order.
func (d *Dict[K, T]) ForEachHandle(visit func(*gc.Ref)) {
	for _, h := range d.entries {
		visit(h.Ref())
	}
}

// Len returns the entry count.
func (d *Dict[K, T]) Len() int { return len(d.entries) }

// Get returns the handle stored under k, or nil when absent.
func (d *Dict[K, T]) Get(k K) *gc.Handle[T] {
	return d.entries[k]
}

// Set stores a handle to src's target under k, reusing the entry handle if
// the key exists.
func (d *Dict[K, T]) Set(k K, src *gc.Handle[T]) {
	h, ok := d.entries[k]
	if !ok {
		h = &gc.Handle[T]{}
		d.entries[k] = h
	}
	h.Set(src)
}

// Delete removes the entry under k, releasing its handle.
func (d *Dict[K, T]) Delete(k K) {
	if h, ok := d.entries[k]; ok {
		h.Release()
		delete(d.entries, k)
	}
}

// Clear releases every entry.
func (d *Dict[K, T]) Clear() {
	for k, h := range d.entries {
		h.Release()
		delete(d.entries, k)
	}
}
