package render

import (
	"bufio"
	"html"
	"io"

	"github.com/rileyhilliard/corewatch/internal/errors"
)

// voidElements never carry children or a closing tag.
var voidElements = map[string]bool{
	"meta": true,
	"link": true,
	"br":   true,
}

// WriteHTML serialises a node tree as markup. Attribute values and text are
// escaped; attribute order follows the node. A tree that can't be expressed
// as markup is a RENDER error and nothing is written.
func WriteHTML(w io.Writer, n *Node) error {
	if err := checkNode(n); err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	writeNode(bw, n)
	return bw.Flush()
}

func checkNode(n *Node) error {
	if n == nil {
		return nil
	}
	if n.Tag == "" {
		return errors.New(errors.ErrRender, "Cannot serialise an element without a tag", "")
	}
	if voidElements[n.Tag] && (n.Text != "" || len(n.Children) > 0) {
		return errors.New(errors.ErrRender, "<"+n.Tag+"> cannot have content", "")
	}
	for _, c := range n.Children {
		if err := checkNode(c); err != nil {
			return err
		}
	}
	return nil
}

func writeNode(w *bufio.Writer, n *Node) {
	if n == nil {
		return
	}
	w.WriteByte('<')
	w.WriteString(n.Tag)
	for _, a := range n.Attrs {
		w.WriteByte(' ')
		w.WriteString(a.Name)
		w.WriteString(`="`)
		w.WriteString(html.EscapeString(a.Value))
		w.WriteByte('"')
	}
	w.WriteByte('>')
	if voidElements[n.Tag] {
		return
	}
	if n.Text != "" {
		w.WriteString(html.EscapeString(n.Text))
	}
	for _, c := range n.Children {
		writeNode(w, c)
	}
	w.WriteString("</")
	w.WriteString(n.Tag)
	w.WriteByte('>')
}
