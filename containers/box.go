// ABOUTME: Boxing of plain values into managed allocations
// ABOUTME: The managed analogue of auto-boxed primitives

package containers

import "github.com/prateek/tinygc/gc"

// NewBox allocates a managed copy of v and returns a root handle to it.
// Useful for storing plain values in managed containers.
func NewBox[T any](v T) *gc.Handle[T] {
	return gc.New[T](func(p *T) { *p = v })
}
