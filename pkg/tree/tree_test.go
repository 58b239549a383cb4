package tree

import "testing"

func TestBuildNestsChildrenUnderParents(t *testing.T) {
	entries := []Entry{
		{ID: 1, Name: "system", ParentID: 0},
		{ID: 2, Name: "employees", ParentID: 1},
		{ID: 3, Name: "roles", ParentID: 1},
		{ID: 4, Name: "role assignment", ParentID: 3},
		{ID: 5, Name: "reports", ParentID: 0},
	}

	roots := Build(entries)
	if len(roots) != 2 {
		t.Fatalf("roots: got %d want 2", len(roots))
	}
	if roots[0].ID != 1 || len(roots[0].Children) != 2 {
		t.Fatalf("unexpected first root: %+v", roots[0])
	}
	rolesNode := roots[0].Children[1]
	if rolesNode.ID != 3 || len(rolesNode.Children) != 1 || rolesNode.Children[0].ID != 4 {
		t.Fatalf("unexpected roles subtree: %+v", rolesNode)
	}
	if roots[1].ID != 5 || len(roots[1].Children) != 0 {
		t.Fatalf("unexpected second root: %+v", roots[1])
	}
}

func TestBuildEmptyInput(t *testing.T) {
	if got := Build(nil); got != nil {
		t.Fatalf("expected nil forest, got %+v", got)
	}
}

func TestBuildDropsOrphanedEntries(t *testing.T) {
	entries := []Entry{
		{ID: 1, Name: "root", ParentID: 0},
		{ID: 9, Name: "orphan", ParentID: 42},
	}
	roots := Build(entries)
	if len(roots) != 1 || roots[0].ID != 1 {
		t.Fatalf("expected only the root entry, got %+v", roots)
	}
}
