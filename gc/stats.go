// ABOUTME: Collector statistics and the human-readable stats dump
// ABOUTME: Sizes are humanized with go-bytesize

package gc

import (
	"fmt"
	"io"

	"github.com/inhies/go-bytesize"
)

// Stats is a point-in-time snapshot of collector counters.
type Stats struct {
	YoungObjects     int    // allocations in the young generation (destroyed slots included)
	OldObjects       int    // allocations in the old generation
	LiveObjects      int    // allocations not yet destroyed, both generations
	LiveBytes        uint64 // payload bytes of live allocations
	TotalAllocs      uint64 // managed allocations over the collector's lifetime
	FreedLastCycle   int    // objects reclaimed by the most recent collection
	YoungCollections uint64
	FullCollections  uint64
}

// ReadStats snapshots the collector's statistics.
func (c *Collector) ReadStats() Stats {
	s := Stats{
		YoungObjects:     c.young.size,
		OldObjects:       c.old.size,
		TotalAllocs:      c.totalAllocs,
		FreedLastCycle:   c.freedLastCycle,
		YoungCollections: c.youngGCs,
		FullCollections:  c.fullGCs,
	}
	for _, l := range [2]*genList{&c.young, &c.old} {
		for h := l.first; h != nil; h = h.next {
			if h.length != 0 {
				s.LiveObjects++
				s.LiveBytes += h.bytes()
			}
		}
	}
	return s
}

// String renders the stats block.
func (s Stats) String() string {
	return fmt.Sprintf(
		"========= [gc] =========\n"+
			"[young meta     ] %3d\n"+
			"[old meta       ] %3d\n"+
			"[live objects   ] %3d\n"+
			"[live bytes     ] %s\n"+
			"[total allocs   ] %3d\n"+
			"[last freed objs] %3d\n"+
			"[young cycles   ] %3d\n"+
			"[full cycles    ] %3d\n"+
			"========================\n",
		s.YoungObjects, s.OldObjects, s.LiveObjects,
		bytesize.New(float64(s.LiveBytes)),
		s.TotalAllocs, s.FreedLastCycle, s.YoungCollections, s.FullCollections)
}

// DumpStats writes the stats block to w.
func (c *Collector) DumpStats(w io.Writer) error {
	_, err := io.WriteString(w, c.ReadStats().String())
	return err
}
