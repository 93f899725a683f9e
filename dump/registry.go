// ABOUTME: Registry for snapshot exporters
// ABOUTME: Manages exporter plugins and dispatches exports by format name

package dump

import (
	"errors"
	"io"
	"sync"

	"github.com/prateek/tinygc/graph"
)

var (
	// ErrNoExporter is returned when no exporter is registered under the
	// requested name.
	ErrNoExporter = errors.New("no exporter registered for format")
)

// Exporter writes an object graph in one output format.
type Exporter interface {
	// Name is the format name used to look the exporter up.
	Name() string

	// Export writes the graph to w.
	Export(w io.Writer, g graph.Graph) error
}

// exporterRegistry holds registered exporters
type exporterRegistry struct {
	mu        sync.RWMutex
	exporters map[string]Exporter
}

// Global registry instance
var registry = &exporterRegistry{
	exporters: make(map[string]Exporter),
}

// Register adds an exporter to the registry, replacing any previous exporter
// with the same name.
func Register(e Exporter) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.exporters[e.Name()] = e
}

// Lookup returns the exporter registered under name, or nil.
func Lookup(name string) Exporter {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	return registry.exporters[name]
}

// Export writes g to w in the named format.
func Export(name string, w io.Writer, g graph.Graph) error {
	e := Lookup(name)
	if e == nil {
		return ErrNoExporter
	}
	return e.Export(w, g)
}
