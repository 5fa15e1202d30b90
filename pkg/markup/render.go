package markup

import (
	"html"
	"io"
	"strings"

	"github.com/spf13/cast"
)

var voidElements = map[string]struct{}{
	"area": {}, "base": {}, "br": {}, "col": {}, "embed": {}, "hr": {},
	"img": {}, "input": {}, "link": {}, "meta": {}, "source": {},
	"track": {}, "wbr": {},
}

// IsVoid reports whether the tag never carries a closing tag.
func IsVoid(tag string) bool {
	_, ok := voidElements[strings.ToLower(tag)]
	return ok
}

// String serialises the node to HTML.
func (n *Node) String() string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	n.write(&b)
	return b.String()
}

// WriteTo writes the serialised node to w.
func (n *Node) WriteTo(w io.Writer) (int64, error) {
	written, err := io.WriteString(w, n.String())
	return int64(written), err
}

func (n *Node) write(b *strings.Builder) {
	if n.tag == "" {
		n.writeChildren(b)
		return
	}

	b.WriteByte('<')
	b.WriteString(n.tag)
	for _, attr := range n.attrs {
		writeAttr(b, attr)
	}
	b.WriteByte('>')

	if IsVoid(n.tag) {
		return
	}

	n.writeChildren(b)
	b.WriteString("</")
	b.WriteString(n.tag)
	b.WriteByte('>')
}

func (n *Node) writeChildren(b *strings.Builder) {
	for _, c := range n.children {
		switch c.kind {
		case childNode:
			c.node.write(b)
		case childHTML:
			b.WriteString(c.text)
		default:
			b.WriteString(html.EscapeString(c.text))
		}
	}
}

func writeAttr(b *strings.Builder, attr Attribute) {
	b.WriteByte(' ')
	b.WriteString(html.EscapeString(attr.Name))
	if flag, ok := attr.Value.(bool); ok && flag {
		return
	}
	b.WriteString(`="`)
	b.WriteString(html.EscapeString(cast.ToString(attr.Value)))
	b.WriteByte('"')
}

// Join renders each node and concatenates the output.
func Join(nodes []*Node) string {
	var b strings.Builder
	for _, node := range nodes {
		if node != nil {
			node.write(&b)
		}
	}
	return b.String()
}
