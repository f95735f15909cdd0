// Package xmltree reads and writes the XML structure of VTK files.
//
// Elements are written with two-space indentation. Attribute values can be
// reserved with a fixed width and patched once the value is known, which is
// how appended data offsets are filled in. The parser records the byte offset
// at which each element's content starts and stops at the AppendedData
// element, whose content is binary.
package xmltree

import "io"

// Attr is a single attribute. A Slot reserves Width characters for a value
// that is patched after the element has been written.
type Attr struct {
	Name  string
	Value string
	Slot  *Slot
}

// Slot is the location of a reserved attribute value in the output.
type Slot struct {
	Width int
	Pos   int64
}

// ContentFunc writes an element's content. Lines should start with indent.
type ContentFunc func(w io.Writer, indent string) error

// Element is a node of a VTK XML document.
type Element struct {
	Name     string
	Attrs    []Attr
	Children []*Element

	// Content is used when writing.
	Content ContentFunc

	// ContentOffset is the position right after the start tag, set by Parse.
	ContentOffset int64
}

// New creates an element with the given name.
func New(name string) *Element {
	return &Element{Name: name}
}

// Set sets or replaces an attribute.
func (e *Element) Set(name, value string) *Element {
	for i := range e.Attrs {
		if e.Attrs[i].Name == name {
			e.Attrs[i].Value = value
			return e
		}
	}
	e.Attrs = append(e.Attrs, Attr{Name: name, Value: value})
	return e
}

// Reserve adds an attribute whose value is patched later.
func (e *Element) Reserve(name string, width int) *Slot {
	slot := &Slot{Width: width, Pos: -1}
	e.Attrs = append(e.Attrs, Attr{Name: name, Slot: slot})
	return slot
}

// Attr returns the value of an attribute.
func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Add appends a new child element and returns it.
func (e *Element) Add(name string) *Element {
	child := New(name)
	e.Children = append(e.Children, child)
	return child
}

// Child returns the first child with the given name, or nil.
func (e *Element) Child(name string) *Element {
	for _, c := range e.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// ChildrenNamed returns all children with the given name.
func (e *Element) ChildrenNamed(name string) []*Element {
	var out []*Element
	for _, c := range e.Children {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// Find follows a path of child names and returns the element, or nil.
func (e *Element) Find(path ...string) *Element {
	cur := e
	for _, name := range path {
		if cur = cur.Child(name); cur == nil {
			return nil
		}
	}
	return cur
}
