package markup

import (
	"strings"

	"github.com/spf13/cast"
)

// Attribute is a single name/value pair on a node. Value is one of string,
// bool, int, int64 or float64; bool true renders as a valueless attribute.
type Attribute struct {
	Name  string
	Value any
}

// Node is an ordered markup tree element. A node without a tag is a fragment:
// only its children are written out.
type Node struct {
	tag      string
	attrs    []Attribute
	children []child
}

type childKind uint8

const (
	childText childKind = iota
	childHTML
	childNode
)

type child struct {
	kind childKind
	text string
	node *Node
}

// New returns an empty fragment.
func New() *Node {
	return &Node{}
}

// Tag returns an element with the supplied tag name.
func Tag(name string) *Node {
	return &Node{tag: strings.TrimSpace(name)}
}

// Text returns a fragment holding a single escaped text child.
func Text(s string) *Node {
	n := New()
	n.Append(s)
	return n
}

// Tag returns the element name; empty for fragments.
func (n *Node) Tag() string {
	if n == nil {
		return ""
	}
	return n.tag
}

// SetTag replaces the element name. An empty name turns the node into a fragment.
func (n *Node) SetTag(name string) *Node {
	n.tag = strings.TrimSpace(name)
	return n
}

// IsFragment reports whether the node renders only its children.
func (n *Node) IsFragment() bool {
	return n == nil || n.tag == ""
}

// Attr returns the raw attribute value.
func (n *Node) Attr(name string) (any, bool) {
	if n == nil {
		return nil, false
	}
	if idx := n.indexOf(name); idx >= 0 {
		return n.attrs[idx].Value, true
	}
	return nil, false
}

// AttrString returns the attribute value as a string. Boolean attributes that
// are present return their own name, matching how browsers reflect them.
func (n *Node) AttrString(name string) string {
	value, ok := n.Attr(name)
	if !ok {
		return ""
	}
	if b, isBool := value.(bool); isBool {
		if b {
			return name
		}
		return ""
	}
	return cast.ToString(value)
}

// Bool reports whether the attribute is present and not false.
func (n *Node) Bool(name string) bool {
	value, ok := n.Attr(name)
	if !ok {
		return false
	}
	if b, isBool := value.(bool); isBool {
		return b
	}
	return true
}

// SetAttr stores an attribute, replacing an existing value in place. nil and
// false remove the attribute.
func (n *Node) SetAttr(name string, value any) *Node {
	name = strings.TrimSpace(name)
	if name == "" {
		return n
	}
	normalized, keep := normalizeValue(value)
	if !keep {
		return n.RemoveAttr(name)
	}
	if idx := n.indexOf(name); idx >= 0 {
		n.attrs[idx].Value = normalized
		return n
	}
	n.attrs = append(n.attrs, Attribute{Name: name, Value: normalized})
	return n
}

// SetAttrs applies attributes in order.
func (n *Node) SetAttrs(attrs ...Attribute) *Node {
	for _, attr := range attrs {
		n.SetAttr(attr.Name, attr.Value)
	}
	return n
}

// RemoveAttr deletes an attribute if present.
func (n *Node) RemoveAttr(name string) *Node {
	if idx := n.indexOf(name); idx >= 0 {
		n.attrs = append(n.attrs[:idx], n.attrs[idx+1:]...)
	}
	return n
}

// Attrs returns a copy of the attributes in insertion order.
func (n *Node) Attrs() []Attribute {
	if n == nil || len(n.attrs) == 0 {
		return nil
	}
	out := make([]Attribute, len(n.attrs))
	copy(out, n.attrs)
	return out
}

// AddClass merges class tokens into the class attribute, skipping blanks and
// tokens that are already present.
func (n *Node) AddClass(classes ...string) *Node {
	existing := strings.Fields(n.AttrString("class"))
	seen := make(map[string]struct{}, len(existing)+len(classes))
	for _, token := range existing {
		seen[token] = struct{}{}
	}
	changed := false
	for _, class := range classes {
		for _, token := range strings.Fields(class) {
			if _, ok := seen[token]; ok {
				continue
			}
			seen[token] = struct{}{}
			existing = append(existing, token)
			changed = true
		}
	}
	if changed {
		n.SetAttr("class", strings.Join(existing, " "))
	}
	return n
}

// HasClass reports whether the class attribute contains the token.
func (n *Node) HasClass(class string) bool {
	for _, token := range strings.Fields(n.AttrString("class")) {
		if token == class {
			return true
		}
	}
	return false
}

// Append adds children. Strings become escaped text, *Node values are nested
// and nil nodes are skipped. Other values are coerced to text.
func (n *Node) Append(children ...any) *Node {
	for _, c := range children {
		switch v := c.(type) {
		case nil:
		case *Node:
			if v != nil {
				n.children = append(n.children, child{kind: childNode, node: v})
			}
		case []*Node:
			for _, node := range v {
				n.Append(node)
			}
		case string:
			n.children = append(n.children, child{kind: childText, text: v})
		default:
			n.children = append(n.children, child{kind: childText, text: cast.ToString(v)})
		}
	}
	return n
}

// AppendHTML adds trusted markup after passing it through the sanitiser.
func (n *Node) AppendHTML(raw string) *Node {
	if cleaned := Sanitize(raw); cleaned != "" {
		n.children = append(n.children, child{kind: childHTML, text: cleaned})
	}
	return n
}

// SetChildren replaces all children.
func (n *Node) SetChildren(children ...any) *Node {
	n.children = nil
	return n.Append(children...)
}

// Children returns the nested nodes in order. Text children are wrapped in
// text fragments so callers see the full sequence.
func (n *Node) Children() []*Node {
	if n == nil || len(n.children) == 0 {
		return nil
	}
	out := make([]*Node, 0, len(n.children))
	for _, c := range n.children {
		switch c.kind {
		case childNode:
			out = append(out, c.node)
		default:
			out = append(out, &Node{children: []child{c}})
		}
	}
	return out
}

// TextContent returns the concatenated unescaped text of the subtree.
func (n *Node) TextContent() string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	n.collectText(&b)
	return b.String()
}

func (n *Node) collectText(b *strings.Builder) {
	for _, c := range n.children {
		switch c.kind {
		case childNode:
			c.node.collectText(b)
		default:
			b.WriteString(c.text)
		}
	}
}

// Empty reports whether the node would render nothing.
func (n *Node) Empty() bool {
	if n == nil {
		return true
	}
	if n.tag != "" {
		return false
	}
	for _, c := range n.children {
		if c.kind != childNode || !c.node.Empty() {
			return false
		}
	}
	return true
}

func (n *Node) indexOf(name string) int {
	if n == nil {
		return -1
	}
	for i, attr := range n.attrs {
		if attr.Name == name {
			return i
		}
	}
	return -1
}

func normalizeValue(value any) (any, bool) {
	switch v := value.(type) {
	case nil:
		return nil, false
	case bool:
		return v, v
	case string, int, int64, float64:
		return v, true
	case int8, int16, int32, uint, uint8, uint16, uint32, uint64:
		return cast.ToInt64(v), true
	case float32:
		return float64(v), true
	default:
		return cast.ToString(v), true
	}
}
