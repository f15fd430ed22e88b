package doctree

// DocTree is the root of a parsed document.
type DocTree struct {
	Title    string     // Document title (from metadata or filename)
	Children []*DocNode // Top-level sections
}

// DocNode is a recursive section in the document tree.
type DocNode struct {
	Title    string     // Section heading, sample id for CSV rows (empty for leaf text)
	Text     string     // Text content of this node (may be empty for container nodes)
	Page     int        // Source page/row (0 if N/A)
	Children []*DocNode // Subsections
}

// Empty reports whether no node of the tree carries text.
func (t *DocTree) Empty() bool {
	var walk func([]*DocNode) bool
	walk = func(nodes []*DocNode) bool {
		for _, n := range nodes {
			if n.Text != "" || !walk(n.Children) {
				return false
			}
		}
		return true
	}
	return walk(t.Children)
}
