// Package parse implements the stack-driven LL(1) predictive parser and the
// ParseTree it produces.
package parse

import "strings"

// ParseTree is a rooted derivation tree. The root and any internal node is
// a non-terminal labeled by its symbol, carrying the ordered subtrees
// produced by the table cell used to expand it. A leaf is either a
// terminal (Terminal true, Value the matched symbol) or the lone child
// attached when a non-terminal was expanded via its lambda production
// (Terminal true, Value "").
type ParseTree struct {
	Value    string
	Terminal bool
	Children []*ParseTree
}

// IsLambda reports whether t is a lambda leaf.
func (t *ParseTree) IsLambda() bool {
	return t.Terminal && t.Value == ""
}

// Equal reports whether t and o have the same shape: equal Value and
// Terminal at every node, with equal-length, pairwise-equal children.
func (t *ParseTree) Equal(o any) bool {
	other, ok := o.(*ParseTree)
	if !ok {
		return false
	}
	if t == nil || other == nil {
		return t == other
	}
	if t.Value != other.Value || t.Terminal != other.Terminal {
		return false
	}
	if len(t.Children) != len(other.Children) {
		return false
	}
	for i := range t.Children {
		if !t.Children[i].Equal(other.Children[i]) {
			return false
		}
	}
	return true
}

// String renders the tree using box-drawing characters, one node per line.
func (t *ParseTree) String() string {
	var sb strings.Builder
	t.render(&sb, "", true, true)
	return sb.String()
}

func (t *ParseTree) render(sb *strings.Builder, prefix string, last, isRoot bool) {
	label := t.Value
	if t.IsLambda() {
		label = "λ"
	}

	if !isRoot {
		branch := "├── "
		if last {
			branch = "└── "
		}
		sb.WriteString(prefix)
		sb.WriteString(branch)
	}
	sb.WriteString(label)
	sb.WriteRune('\n')

	childPrefix := prefix
	if !isRoot {
		if last {
			childPrefix += "    "
		} else {
			childPrefix += "│   "
		}
	}
	for i, c := range t.Children {
		c.render(sb, childPrefix, i == len(t.Children)-1, false)
	}
}
