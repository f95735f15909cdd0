package xmltree

import (
	"bufio"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
)

// AppendedData is the name of the element holding the binary appendix.
const AppendedData = "AppendedData"

// Parse reads the element tree from r. Parsing stops after the start tag of
// an AppendedData element; its ContentOffset marks where the appendix begins.
func Parse(r io.Reader) (*Element, error) {
	d := xml.NewDecoder(bufio.NewReader(r))
	var (
		root  *Element
		stack []*Element
	)
	for {
		tok, err := d.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parsing XML: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			e := &Element{Name: t.Name.Local, ContentOffset: d.InputOffset()}
			for _, a := range t.Attr {
				e.Attrs = append(e.Attrs, Attr{Name: a.Name.Local, Value: a.Value})
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("parsing XML: second root element <%s>", e.Name)
				}
				root = e
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, e)
			}
			if e.Name == AppendedData {
				return root, nil
			}
			stack = append(stack, e)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		}
	}
	if root == nil {
		return nil, fmt.Errorf("parsing XML: no root element")
	}
	return root, nil
}
