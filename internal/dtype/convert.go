package dtype

import "unsafe"

// BytesView allocates a slice of n elements of T and returns it alongside a
// []byte view over the same backing array, following the direct-copy
// fast-path pattern used elsewhere in the corpus for byte-order-matched
// reinterpretation: the patch reader writes raw file bytes straight into
// view, and the caller receives out with no further copy.
func BytesView[T Element](n int) (out []T, view []byte) {
	out = make([]T, n)
	if n == 0 {
		return out, nil
	}
	itemSize := int(unsafe.Sizeof(out[0]))
	view = unsafe.Slice((*byte)(unsafe.Pointer(&out[0])), n*itemSize)
	return out, view
}
