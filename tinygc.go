// ABOUTME: Main tinygc package providing version information and package documentation
// ABOUTME: This is the root package for the in-process generational garbage collector

// Package tinygc provides a tiny, in-process, generational mark-and-sweep
// garbage collector with smart-pointer-style managed handles. The core lives
// in the gc subpackage; containers holds traced container adapters, graph
// turns live heaps into analyzable object graphs, and dump exports those
// graphs for offline inspection.
package tinygc

// Version is the semantic version of the tinygc library
const Version = "0.1.0-dev"
