package render

// Attr is a single element attribute. Attributes are kept as an ordered list
// so serialised output is stable.
type Attr struct {
	Name  string
	Value string
}

// Node is a plain visual tree element. Key identifies a node among its
// siblings across updates (core blocks are keyed by core_id).
type Node struct {
	Tag      string
	Key      string
	Attrs    []Attr
	Text     string
	Children []*Node
}

// El builds a node with the given tag, attributes and children.
func El(tag string, attrs []Attr, children ...*Node) *Node {
	return &Node{Tag: tag, Attrs: attrs, Children: children}
}

// TextEl builds a node whose only content is text.
func TextEl(tag string, attrs []Attr, text string) *Node {
	return &Node{Tag: tag, Attrs: attrs, Text: text}
}

// A is shorthand for an Attr literal.
func A(name, value string) Attr {
	return Attr{Name: name, Value: value}
}

// Attr returns the value of the named attribute and whether it was set.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Find returns the first node in a depth-first walk for which match is true.
func (n *Node) Find(match func(*Node) bool) *Node {
	if n == nil {
		return nil
	}
	if match(n) {
		return n
	}
	for _, c := range n.Children {
		if found := c.Find(match); found != nil {
			return found
		}
	}
	return nil
}

// FindClass returns the first node whose class attribute equals class.
func (n *Node) FindClass(class string) *Node {
	return n.Find(func(x *Node) bool {
		v, ok := x.Attr("class")
		return ok && v == class
	})
}

// FindAll returns every node in the tree, depth-first, for which match is true.
func (n *Node) FindAll(match func(*Node) bool) []*Node {
	var out []*Node
	var walk func(*Node)
	walk = func(x *Node) {
		if x == nil {
			return
		}
		if match(x) {
			out = append(out, x)
		}
		for _, c := range x.Children {
			walk(c)
		}
	}
	walk(n)
	return out
}
