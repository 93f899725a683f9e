// ABOUTME: Package documentation for the collector core
// ABOUTME: States the threading contract and the tracing discipline

// Package gc implements a tiny, in-process, generational, tracing
// mark-and-sweep collector. Objects are allocated through New and NewArray
// and referenced through Handle values; handles embedded inside managed
// objects are discovered per type and traced, handles living anywhere else
// are roots.
//
// The design is single-threaded cooperative: all code that allocates,
// assigns, or reads handles must run on one goroutine. The only suspension
// point is allocation, which may trigger a collection first. Handle
// construction, assignment, and release never collect; they enqueue into
// deferred sets reconciled at the next collection.
//
// Go runs no destructors for locals, so root handle lifetime is explicit:
// call Release on a root handle when done with it. Cycles through handles
// are collected; references that escape the handle discipline (raw pointers
// stored in unmanaged memory, closure captures) are invisible to tracing
// and will leak or dangle.
package gc
