package field

// walkBackward visits every multi-index of small from the last flat index to
// the first. For each it calls fn with the flat index in small and the flat
// index of the same multi-index in big plus origin. Both layouts must have the
// same dimension and small must fit into big.
func walkBackward(small, big Layout, origin int, fn func(smallFlat, bigFlat int)) {
	n := small.NumberOfEntries()
	if n == 0 {
		return
	}
	dim := small.Dimension()
	stride := big.strides()
	index := make([]int, dim)
	bigFlat := origin
	for i := 0; i < dim; i++ {
		index[i] = small.extents[i] - 1
		bigFlat += index[i] * stride[i]
	}
	for flat := n - 1; flat >= 0; flat-- {
		fn(flat, bigFlat)
		for i := dim - 1; i >= 0; i-- {
			if index[i] > 0 {
				index[i]--
				bigFlat -= stride[i]
				break
			}
			// wrap around and carry into the next slower dimension
			index[i] = small.extents[i] - 1
			bigFlat += index[i] * stride[i]
		}
	}
}
