// ABOUTME: Enumerates root-ward reference chains for one allocation
// ABOUTME: Depth-first walk over reverse edges; chains never revisit an object

package graph

// Path is one reference chain: the first entry is the object under
// investigation, the last is an object targeted by a root handle.
type Path struct {
	IDs []ObjID
}

// PathsToRoots reports up to maxPaths distinct reference chains leading from
// an object back to the root set, walking referrers depth-first. A chain
// never revisits an object, so heap cycles cannot diverge the search, and a
// chain ends at the first rooted object it reaches. An object that is itself
// rooted yields the single-element chain.
func PathsToRoots(g Graph, from ObjID, maxPaths int) []Path {
	if maxPaths <= 0 || g.GetObject(from) == nil {
		return nil
	}

	rooted := make(map[ObjID]bool)
	for _, id := range g.GetRoots().IDs {
		rooted[id] = true
	}
	if rooted[from] {
		return []Path{{IDs: []ObjID{from}}}
	}

	referrers := BuildReverseEdges(g)

	var (
		found   []Path
		chain   []ObjID
		onChain = make(map[ObjID]bool)
	)

	// walk extends the current chain by id and reports whether the path
	// budget is exhausted.
	var walk func(id ObjID) bool
	walk = func(id ObjID) bool {
		chain = append(chain, id)
		onChain[id] = true
		defer func() {
			chain = chain[:len(chain)-1]
			delete(onChain, id)
		}()

		if rooted[id] {
			found = append(found, Path{IDs: append([]ObjID(nil), chain...)})
			return len(found) >= maxPaths
		}
		for _, ref := range referrers[id] {
			if onChain[ref] {
				continue
			}
			if walk(ref) {
				return true
			}
		}
		return false
	}
	walk(from)

	return found
}
