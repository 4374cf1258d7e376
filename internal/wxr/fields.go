package wxr

import "strings"

// Find returns the first element at a relative, possibly alias-qualified
// path like "wp:post_id" or "channel/title". A leading "./" is accepted.
// The result is nil when any segment does not resolve.
func (ns Namespaces) Find(node *Node, path string) *Node {

	cur := node
	for seg := range strings.SplitSeq(strings.TrimPrefix(path, "./"), "/") {
		if seg == "" || seg == "." {
			continue
		}

		space, local := "", seg
		if alias, rest, found := strings.Cut(seg, ":"); found {
			uri, known := ns[alias]
			if !known {
				return nil
			}
			space, local = uri, rest
		}

		var next *Node
		for i := range cur.Children {
			c := &cur.Children[i]
			if c.XMLName.Local == local && c.XMLName.Space == space {
				next = c
				break
			}
		}
		if next == nil {
			return nil
		}
		cur = next
	}

	return cur
}

// FindAll returns every child at path, in document order. All but the last
// path segment resolve like Find; the last one matches repeatedly.
func (ns Namespaces) FindAll(node *Node, path string) []*Node {

	path = strings.TrimPrefix(path, "./")
	parent := node
	last := path
	if idx := strings.LastIndex(path, "/"); idx >= 0 {
		parent = ns.Find(node, path[:idx])
		last = path[idx+1:]
	}
	if parent == nil {
		return nil
	}

	space, local := "", last
	if alias, rest, found := strings.Cut(last, ":"); found {
		uri, known := ns[alias]
		if !known {
			return nil
		}
		space, local = uri, rest
	}

	var nodes []*Node
	for i := range parent.Children {
		c := &parent.Children[i]
		if c.XMLName.Local == local && c.XMLName.Space == space {
			nodes = append(nodes, c)
		}
	}
	return nodes
}

// Text returns the text of the element at path, or "" when it is missing.
// Absent and present-but-empty are deliberately the same thing; every
// lookup in the converter goes through here to get that semantics.
func (ns Namespaces) Text(node *Node, path string) string {
	child := ns.Find(node, path)
	if child == nil {
		return ""
	}
	return child.Text
}

// QuotedText is Text wrapped in double quotes when non-empty.
func (ns Namespaces) QuotedText(node *Node, path string) string {
	if v := ns.Text(node, path); v != "" {
		return `"` + v + `"`
	}
	return ""
}
