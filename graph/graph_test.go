// ABOUTME: Tests for the in-memory object graph
// ABOUTME: Verifies storage, iteration, and root handling

package graph

import "testing"

func TestMemGraphStoresObjects(t *testing.T) {
	g := NewMemGraph()
	g.AddObject(&Object{Addr: 1, Type: "node", Gen: "young", Size: 32, Refs: []ObjID{2}})
	g.AddObject(&Object{Addr: 2, Type: "node", Gen: "old", Size: 32})

	if g.NumObjects() != 2 {
		t.Fatalf("NumObjects = %d, want 2", g.NumObjects())
	}
	obj := g.GetObject(1)
	if obj == nil || obj.Type != "node" || obj.Gen != "young" {
		t.Fatalf("GetObject(1) = %+v", obj)
	}
	if g.GetObject(99) != nil {
		t.Fatal("GetObject returned an object for an unknown ID")
	}

	var seen int
	g.ForEachObject(func(*Object) { seen++ })
	if seen != 2 {
		t.Fatalf("ForEachObject visited %d objects, want 2", seen)
	}
}

func TestMemGraphRoots(t *testing.T) {
	g := NewMemGraph()
	g.AddObject(&Object{Addr: 1, Size: 8})
	g.SetRoots(Roots{IDs: []ObjID{1}})

	roots := g.GetRoots()
	if len(roots.IDs) != 1 || roots.IDs[0] != 1 {
		t.Fatalf("GetRoots = %+v", roots)
	}
}

func TestBuildReverseEdges(t *testing.T) {
	g := NewMemGraph()
	g.AddObject(&Object{Addr: 1, Refs: []ObjID{2, 3}})
	g.AddObject(&Object{Addr: 2, Refs: []ObjID{3}})
	g.AddObject(&Object{Addr: 3})

	reverse := BuildReverseEdges(g)
	if len(reverse[3]) != 2 {
		t.Fatalf("object 3 has %d referrers, want 2", len(reverse[3]))
	}
	if len(reverse[2]) != 1 || reverse[2][0] != 1 {
		t.Fatalf("object 2 referrers = %v, want [1]", reverse[2])
	}
	if len(reverse[1]) != 0 {
		t.Fatalf("object 1 should have no referrers, got %v", reverse[1])
	}
}
