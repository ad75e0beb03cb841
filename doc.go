// Package npypatch reads rectangular patches out of a NumPy .npy array file
// without loading the whole array into memory: it parses the on-disk header,
// plans the byte-level arithmetic of a requested patch (padding, strides,
// patch coordinate, start offset), and streams the patch bytes straight into
// a freshly allocated buffer that is returned to the caller.
//
// An Engine is not safe for concurrent use; construct one per goroutine.
package npypatch
