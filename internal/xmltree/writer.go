package xmltree

import (
	"fmt"
	"strings"

	"github.com/robert-malhotra/go-gridformat/internal/binary"
)

// Header is the XML declaration written at the top of documents.
const Header = `<?xml version="1.0"?>` + "\n"

// Writer writes elements to a positioned binary writer.
type Writer struct {
	w *binary.Writer
}

// NewWriter creates a writer appending at w's position.
func NewWriter(w *binary.Writer) *Writer {
	return &Writer{w: w}
}

// Pos returns the current output position.
func (x *Writer) Pos() int64 {
	return x.w.Pos()
}

// WriteHeader writes the XML declaration.
func (x *Writer) WriteHeader() error {
	_, err := x.w.WriteString(Header)
	return err
}

// WriteElement writes e and its children at the given depth.
func (x *Writer) WriteElement(e *Element, depth int) error {
	indent := strings.Repeat("  ", depth)
	if err := x.writeStart(e, indent); err != nil {
		return err
	}
	if len(e.Children) == 0 && e.Content == nil {
		_, err := x.w.WriteString("/>\n")
		return err
	}
	if _, err := x.w.WriteString(">\n"); err != nil {
		return err
	}
	for _, c := range e.Children {
		if err := x.WriteElement(c, depth+1); err != nil {
			return err
		}
	}
	if e.Content != nil {
		if err := e.Content(x.w, indent+"  "); err != nil {
			return fmt.Errorf("writing content of <%s>: %w", e.Name, err)
		}
	}
	_, err := fmt.Fprintf(x.w, "%s</%s>\n", indent, e.Name)
	return err
}

// Open writes the start tag of e without closing it, for elements whose
// children are streamed by the caller.
func (x *Writer) Open(e *Element, depth int) error {
	if err := x.writeStart(e, strings.Repeat("  ", depth)); err != nil {
		return err
	}
	_, err := x.w.WriteString(">\n")
	return err
}

// Close writes the end tag of an element opened with Open.
func (x *Writer) Close(e *Element, depth int) error {
	_, err := fmt.Fprintf(x.w, "%s</%s>\n", strings.Repeat("  ", depth), e.Name)
	return err
}

func (x *Writer) writeStart(e *Element, indent string) error {
	if _, err := fmt.Fprintf(x.w, "%s<%s", indent, e.Name); err != nil {
		return err
	}
	for _, a := range e.Attrs {
		if _, err := fmt.Fprintf(x.w, " %s=\"", a.Name); err != nil {
			return err
		}
		value := escape(a.Value)
		if a.Slot != nil {
			a.Slot.Pos = x.w.Pos()
			value = strings.Repeat(" ", a.Slot.Width)
		}
		if _, err := x.w.WriteString(value + "\""); err != nil {
			return err
		}
	}
	return nil
}

// Patch writes value into a reserved slot.
func (x *Writer) Patch(slot *Slot, value string) error {
	if slot.Pos < 0 {
		return fmt.Errorf("patching %q: slot was never written", value)
	}
	if len(value) > slot.Width {
		return fmt.Errorf("patching %q: value exceeds reserved width %d", value, slot.Width)
	}
	_, err := x.w.At(slot.Pos).WriteString(value)
	return err
}

var escaper = strings.NewReplacer(`&`, "&amp;", `<`, "&lt;", `>`, "&gt;", `"`, "&quot;")

func escape(s string) string {
	return escaper.Replace(s)
}
