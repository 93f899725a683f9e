// ABOUTME: Calculates retained memory sizes using dominator tree analysis
// ABOUTME: Provides efficient computation of memory retained by each object

package graph

// RetainedSize computes the retained size for each reachable object in the
// graph. The retained size of an object is the total payload that would be
// reclaimed if that object were destroyed: the object itself plus everything
// it dominates. Returns a map from object ID to retained bytes.
func RetainedSize(g Graph) map[ObjID]uint64 {
	idom := Dominators(g)
	tree := DominatorTree(idom)
	sizes := objectSizes(g)

	retained := make(map[ObjID]uint64, len(tree))
	var compute func(ObjID) uint64
	compute = func(id ObjID) uint64 {
		if size, done := retained[id]; done {
			return size
		}
		size := sizes[id]
		for _, child := range tree[id] {
			size += compute(child)
		}
		retained[id] = size
		return size
	}
	for id := range tree {
		compute(id)
	}

	delete(retained, 0)
	return retained
}

// RetainedSizeSubset computes retained sizes only for the requested objects,
// sharing one dominator tree across them.
func RetainedSizeSubset(g Graph, targets []ObjID) map[ObjID]uint64 {
	result := make(map[ObjID]uint64, len(targets))
	if len(targets) == 0 {
		return result
	}

	idom := Dominators(g)
	tree := DominatorTree(idom)
	sizes := objectSizes(g)

	memo := make(map[ObjID]uint64, len(tree))
	var compute func(ObjID) uint64
	compute = func(id ObjID) uint64 {
		if size, done := memo[id]; done {
			return size
		}
		size := sizes[id]
		for _, child := range tree[id] {
			size += compute(child)
		}
		memo[id] = size
		return size
	}

	for _, id := range targets {
		if id == 0 {
			continue
		}
		if _, reachable := idom[id]; !reachable {
			continue
		}
		result[id] = compute(id)
	}
	return result
}

func objectSizes(g Graph) map[ObjID]uint64 {
	sizes := make(map[ObjID]uint64, g.NumObjects()+1)
	g.ForEachObject(func(obj *Object) {
		sizes[obj.Addr] = obj.Size
	})
	sizes[0] = 0
	return sizes
}
