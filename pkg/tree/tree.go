package tree

// Node is a generic parent/child hierarchy node used for menu and
// department tree views.
type Node struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Children []*Node `json:"children"`
}

// Entry is a flat row waiting to be placed in the hierarchy. A ParentID of
// zero marks a root entry.
type Entry struct {
	ID       int64
	Name     string
	ParentID int64
}

// Build assembles flat entries into a forest rooted at parent id 0. Entries
// whose parent never appears (and is not 0) are dropped, matching how the
// admin UI treats orphaned rows.
func Build(entries []Entry) []*Node {
	if len(entries) == 0 {
		return nil
	}

	byParent := make(map[int64][]*Node, len(entries))
	for _, e := range entries {
		byParent[e.ParentID] = append(byParent[e.ParentID], &Node{ID: e.ID, Name: e.Name})
	}

	var attach func(parentID int64) []*Node
	attach = func(parentID int64) []*Node {
		children := byParent[parentID]
		for _, child := range children {
			child.Children = attach(child.ID)
		}
		return children
	}

	return attach(0)
}
