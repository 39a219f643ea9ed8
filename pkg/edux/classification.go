package edux

import (
	"context"
	"io"
	"regexp"
	"sort"
	"strings"
)

// Node is one level of a course's classification hierarchy.
// A node without children is a leaf, i.e. a gradable item.
type Node struct {
	children map[string]*Node
}

// NewNode returns an empty root node.
func NewNode() *Node {
	return &Node{}
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool {
	return len(n.children) == 0
}

// Len returns the number of direct children.
func (n *Node) Len() int {
	return len(n.children)
}

// Child returns the child with the given segment name.
func (n *Node) Child(name string) (*Node, bool) {
	child, ok := n.children[name]
	return child, ok
}

// Names returns the child segment names in sorted order.
func (n *Node) Names() []string {
	names := make([]string, 0, len(n.children))
	for name := range n.children {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Insert adds a path below the node, creating missing levels.
func (n *Node) Insert(path []string) {
	walk := n
	for _, part := range path {
		if part == "" {
			continue
		}
		if walk.children == nil {
			walk.children = make(map[string]*Node)
		}
		child, ok := walk.children[part]
		if !ok {
			child = &Node{}
			walk.children[part] = child
		}
		walk = child
	}
}

// Depth is the length of the longest path below the node.
func (n *Node) Depth() int {
	depth := 0
	for _, child := range n.children {
		if d := child.Depth() + 1; d > depth {
			depth = d
		}
	}
	return depth
}

// Leaves returns every root-to-leaf path in sorted order.
func (n *Node) Leaves() [][]string {
	var out [][]string
	var walk func(node *Node, prefix []string)
	walk = func(node *Node, prefix []string) {
		if node.IsLeaf() {
			if len(prefix) > 0 {
				out = append(out, append([]string(nil), prefix...))
			}
			return
		}
		for _, name := range node.Names() {
			walk(node.children[name], append(prefix, name))
		}
	}
	walk(n, nil)
	return out
}

func classificationRegex(course string) *regexp.Regexp {
	return regexp.MustCompile(`courses/` + regexp.QuoteMeta(course) + regexp.QuoteMeta(classification) + `([^\s<"'?#]*)`)
}

// ParseClassificationTree builds the classification hierarchy of a course from
// the links on its classification start page.
func ParseClassificationTree(r io.Reader, course string) (*Node, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	root := NewNode()
	for _, m := range classificationRegex(course).FindAllStringSubmatch(string(data), -1) {
		parts := strings.Split(strings.Trim(m[1], "/"), "/")
		// start pages are the listings themselves, not classification items
		if parts[0] == "" || parts[0] == startPage || parts[len(parts)-1] == startPage {
			continue
		}
		root.Insert(parts)
	}

	if root.IsLeaf() {
		return nil, ErrEmptyTree
	}
	return root, nil
}

// FetchClassificationTree downloads and parses the classification tree of a course
func (c *Client) FetchClassificationTree(ctx context.Context, course string) (*Node, error) {
	body, err := c.Get(ctx, classificationPath(course, []string{startPage}), nil)
	if err != nil {
		return nil, err
	}
	return ParseClassificationTree(strings.NewReader(body), course)
}
