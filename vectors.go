package npypatch

// reverseInts returns a new slice with a's elements in reverse order. It
// never mutates a, since a is often a caller-owned slice.
func reverseInts(a []int) []int {
	out := make([]int, len(a))
	for i, v := range a {
		out[len(a)-1-i] = v
	}
	return out
}

// reversePairs reverses the order of adjacent (left,right) pairs in a
// without swapping left and right within a pair, so a per-axis padding
// vector stays (left,right) per axis after the axis order is reversed.
func reversePairs(a []int) []int {
	n := len(a) / 2
	out := make([]int, len(a))
	for i := 0; i < n; i++ {
		src := i * 2
		dst := (n - 1 - i) * 2
		out[dst] = a[src]
		out[dst+1] = a[src+1]
	}
	return out
}
