// ABOUTME: Implements Lengauer-Tarjan algorithm for computing dominators in directed graphs
// ABOUTME: Iterative DFS and link-eval over DFS-numbered slices; no recursion on user graphs

package graph

const noVertex = -1

// Dominators computes the immediate dominator for each reachable object in
// the graph. A synthetic super-root (ID 0) points at every GC root, so
// objects kept alive through multiple roots are dominated by the super-root
// rather than any single root. Unreachable objects are absent from the
// result, and the super-root itself has no dominator.
func Dominators(g Graph) map[ObjID]ObjID {
	// Forward adjacency: super-root -> roots, object -> refs present in the
	// graph. Dangling references are ignored.
	adj := make(map[ObjID][]ObjID, g.NumObjects()+1)
	g.ForEachObject(func(obj *Object) {
		refs := make([]ObjID, 0, len(obj.Refs))
		for _, r := range obj.Refs {
			if g.GetObject(r) != nil {
				refs = append(refs, r)
			}
		}
		adj[obj.Addr] = refs
	})
	rootIDs := g.GetRoots().IDs
	super := make([]ObjID, 0, len(rootIDs))
	seenRoot := make(map[ObjID]bool, len(rootIDs))
	for _, r := range rootIDs {
		if !seenRoot[r] && g.GetObject(r) != nil {
			seenRoot[r] = true
			super = append(super, r)
		}
	}
	adj[0] = super

	// Iterative DFS from the super-root assigns numbers and spanning-tree
	// parents; everything below is indexed by DFS number.
	dfnum := make(map[ObjID]int, len(adj))
	var vertex []ObjID
	var parent []int

	type frame struct {
		id ObjID
		p  int
	}
	stack := []frame{{0, noVertex}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, ok := dfnum[f.id]; ok {
			continue
		}
		n := len(vertex)
		dfnum[f.id] = n
		vertex = append(vertex, f.id)
		parent = append(parent, f.p)
		succ := adj[f.id]
		for i := len(succ) - 1; i >= 0; i-- {
			stack = append(stack, frame{succ[i], n})
		}
	}
	n := len(vertex)
	if n <= 1 {
		return map[ObjID]ObjID{}
	}

	// Predecessor lists restricted to reachable vertices.
	preds := make([][]int, n)
	for id, succ := range adj {
		from, ok := dfnum[id]
		if !ok {
			continue
		}
		for _, s := range succ {
			if to, ok := dfnum[s]; ok {
				preds[to] = append(preds[to], from)
			}
		}
	}

	semi := make([]int, n)
	idom := make([]int, n)
	ancestor := make([]int, n)
	label := make([]int, n)
	bucket := make([][]int, n)
	for i := 0; i < n; i++ {
		semi[i] = i
		label[i] = i
		ancestor[i] = noVertex
		idom[i] = noVertex
	}

	// eval with iterative path compression over the link-eval forest.
	var compressPath []int
	eval := func(v int) int {
		if ancestor[v] == noVertex {
			return label[v]
		}
		compressPath = compressPath[:0]
		for ancestor[ancestor[v]] != noVertex {
			compressPath = append(compressPath, v)
			v = ancestor[v]
		}
		for i := len(compressPath) - 1; i >= 0; i-- {
			w := compressPath[i]
			a := ancestor[w]
			if semi[label[a]] < semi[label[w]] {
				label[w] = label[a]
			}
			ancestor[w] = ancestor[a]
		}
		if len(compressPath) > 0 {
			v = compressPath[0]
		}
		return label[v]
	}

	for w := n - 1; w >= 1; w-- {
		// Semidominator of w is the minimum over its predecessors.
		for _, u := range preds[w] {
			var cand int
			if u < w {
				cand = u
			} else {
				cand = semi[eval(u)]
			}
			if cand < semi[w] {
				semi[w] = cand
			}
		}
		bucket[semi[w]] = append(bucket[semi[w]], w)
		ancestor[w] = parent[w]

		// Implicitly compute dominators for the parent's bucket.
		p := parent[w]
		for _, v := range bucket[p] {
			u := eval(v)
			if semi[u] < semi[v] {
				idom[v] = u
			} else {
				idom[v] = p
			}
		}
		bucket[p] = bucket[p][:0]
	}

	// Final pass fixes deferred dominators in DFS order.
	for w := 1; w < n; w++ {
		if idom[w] != semi[w] {
			idom[w] = idom[idom[w]]
		}
	}

	result := make(map[ObjID]ObjID, n-1)
	for w := 1; w < n; w++ {
		result[vertex[w]] = vertex[idom[w]]
	}
	return result
}

// DominatorTree builds a tree structure from immediate dominators.
// Returns a map from each node to its list of immediately dominated nodes.
func DominatorTree(idom map[ObjID]ObjID) map[ObjID][]ObjID {
	tree := make(map[ObjID][]ObjID, len(idom)+1)
	for node := range idom {
		if _, ok := tree[node]; !ok {
			tree[node] = []ObjID{}
		}
	}
	tree[0] = []ObjID{}
	for node, dom := range idom {
		tree[dom] = append(tree[dom], node)
	}
	return tree
}
