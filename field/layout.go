package field

import (
	"fmt"
	"strings"
)

// Layout describes the shape of a field's data.
type Layout struct {
	extents []int
}

// NewLayout creates a layout from the given extents. Negative extents panic.
func NewLayout(extents ...int) Layout {
	for _, e := range extents {
		if e < 0 {
			panic(fmt.Sprintf("field: negative extent %d", e))
		}
	}
	return Layout{extents: append([]int(nil), extents...)}
}

// Dimension returns the number of extents.
func (l Layout) Dimension() int {
	return len(l.extents)
}

// Extent returns the extent of dimension i.
func (l Layout) Extent(i int) int {
	return l.extents[i]
}

// Extents returns a copy of all extents.
func (l Layout) Extents() []int {
	return append([]int(nil), l.extents...)
}

// NumberOfEntries returns the product of all extents. A layout without
// dimensions has no entries.
func (l Layout) NumberOfEntries() int {
	if len(l.extents) == 0 {
		return 0
	}
	return l.NumberOfEntriesFrom(0)
}

// NumberOfEntriesFrom returns the product of the extents from dimension start
// onward. It is 1 when start equals the dimension.
func (l Layout) NumberOfEntriesFrom(start int) int {
	if start < 0 || start > len(l.extents) {
		panic(fmt.Sprintf("field: dimension %d out of range for layout %v", start, l))
	}
	n := 1
	for _, e := range l.extents[start:] {
		n *= e
	}
	return n
}

// SubLayout drops the leading codim dimensions.
func (l Layout) SubLayout(codim int) (Layout, error) {
	if codim < 0 || codim >= len(l.extents) {
		return Layout{}, Errorf(ErrValue, "codimension %d invalid for layout %v", codim, l)
	}
	return NewLayout(l.extents[codim:]...), nil
}

// Equal reports whether both layouts have identical extents.
func (l Layout) Equal(other Layout) bool {
	if len(l.extents) != len(other.extents) {
		return false
	}
	for i, e := range l.extents {
		if other.extents[i] != e {
			return false
		}
	}
	return true
}

func (l Layout) String() string {
	parts := make([]string, len(l.extents))
	for i, e := range l.extents {
		parts[i] = fmt.Sprint(e)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// strides returns the flat distance between consecutive indices of each
// dimension.
func (l Layout) strides() []int {
	s := make([]int, len(l.extents))
	acc := 1
	for i := len(l.extents) - 1; i >= 0; i-- {
		s[i] = acc
		acc *= l.extents[i]
	}
	return s
}
