// ABOUTME: Property-based tests over randomized object graphs
// ABOUTME: Checks conservation, no live reclamation, full reclamation, and cycle collection

package gc

import (
	"math/rand"
	"testing"
)

type pnode struct {
	out [3]Handle[pnode]
	idx int
}

var pLive map[int]bool

func (p *pnode) Finalize() { delete(pLive, p.idx) }

// buildRandomGraph allocates n objects with random edges (cycles included)
// and returns the root handles plus the adjacency model.
func buildRandomGraph(rng *rand.Rand, n int) ([]*Handle[pnode], [][]int) {
	handles := make([]*Handle[pnode], n)
	for i := 0; i < n; i++ {
		i := i
		handles[i] = New[pnode](func(p *pnode) { p.idx = i })
		pLive[i] = true
	}
	edges := make([][]int, n)
	for i := 0; i < n; i++ {
		for slot := 0; slot < 3; slot++ {
			if rng.Intn(2) == 0 {
				continue
			}
			j := rng.Intn(n)
			handles[i].Get().out[slot].Set(handles[j])
			edges[i] = append(edges[i], j)
		}
	}
	return handles, edges
}

func reachableFrom(kept []int, edges [][]int) map[int]bool {
	seen := make(map[int]bool)
	stack := append([]int(nil), kept...)
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[v] {
			continue
		}
		seen[v] = true
		for _, w := range edges[v] {
			if !seen[w] {
				stack = append(stack, w)
			}
		}
	}
	return seen
}

func TestPropertyReachabilityDecidesLiveness(t *testing.T) {
	const objects = 60

	for seed := 0; seed < 20; seed++ {
		c := NewCollector()
		prev := Install(c)
		pLive = make(map[int]bool)
		rng := rand.New(rand.NewSource(int64(seed)))

		handles, edges := buildRandomGraph(rng, objects)

		// Drop a random subset of roots.
		var kept []int
		for i, h := range handles {
			if rng.Intn(2) == 0 {
				h.Release()
			} else {
				kept = append(kept, i)
			}
		}
		want := reachableFrom(kept, edges)

		// Two full collections reclaim everything unreachable, including
		// objects already promoted and cyclic clusters.
		c.FullCollect()
		c.FullCollect()

		for i := range want {
			if !pLive[i] {
				t.Fatalf("seed %d: reachable object %d was reclaimed", seed, i)
			}
		}
		for i := range pLive {
			if !want[i] {
				t.Fatalf("seed %d: unreachable object %d survived two full collections", seed, i)
			}
		}

		// Conservation: further collections with no mutation change nothing.
		before := len(pLive)
		c.Collect()
		c.Collect()
		if len(pLive) != before {
			t.Fatalf("seed %d: live count drifted from %d to %d without mutation", seed, before, len(pLive))
		}

		Install(prev)
		c.Close()
	}
}

func TestPropertyPromotionPreservesLiveness(t *testing.T) {
	const objects = 30

	for seed := 0; seed < 10; seed++ {
		c := NewCollector()
		prev := Install(c)
		pLive = make(map[int]bool)
		rng := rand.New(rand.NewSource(int64(1000 + seed)))

		handles, edges := buildRandomGraph(rng, objects)

		// Age everything into the old generation, then hang fresh young
		// objects off distinct random old ones, so no young object loses its
		// only referrer to a later one.
		for i := 0; i < DefaultScanAgeToPromote+1; i++ {
			c.Collect()
		}

		owners := rng.Perm(objects)
		youngIdx := make([]int, 0, 10)
		for i := 0; i < 10; i++ {
			idx := objects + i
			h := New[pnode](func(p *pnode) { p.idx = idx })
			pLive[idx] = true
			owner := owners[i]
			handles[owner].Get().out[0].Set(h)
			edges[owner] = append(edges[owner][:0], idx)
			h.Release()
			youngIdx = append(youngIdx, idx)
		}

		// Young collections alone must not reclaim young objects referenced
		// from the old generation.
		c.Collect()
		c.Collect()
		for _, idx := range youngIdx {
			if !pLive[idx] {
				t.Fatalf("seed %d: young object %d referenced from old gen reclaimed by young GC", seed, idx)
			}
		}

		Install(prev)
		c.Close()
	}
}
