// Package patchio executes a planner.Plan against a seekable byte stream,
// copying real file bytes into a destination buffer and leaving virtual
// padding at its zero initializer.
package patchio

import (
	"github.com/robert-malhotra/npypatch/internal/binary"
	"github.com/robert-malhotra/npypatch/internal/errs"
	"github.com/robert-malhotra/npypatch/internal/planner"
)

// Fill executes plan against r, filling dst (already zero-initialized) with
// the patch contents for every q-index in qspace, in order. rank1 is the
// number of patched axes.
//
// Algorithm overview: dst is walked with a byte cursor buf that only ever
// advances; the stream is walked with an absolute byte position pos that
// this function tracks independently of r's own internal cursor, since
// padding slabs move buf without moving pos, and re-seeking is cheap and
// unambiguous. For each q-index, an N-D slice of rank1 axes is read
// starting at (buf, pos): axis 0 is the innermost (fastest-varying) patched
// axis and is the recursion's base case; axis rank1-1 is the outermost
// patched axis and is where the recursion is rooted. Between q-indices, pos
// is advanced by the q-axis stride minus the shift already consumed by the
// outermost axis's traversal, then the stream is reseeked, since the
// q-space list may have gaps and two q-slices need not be contiguous.
func Fill(r *binary.Reader, plan planner.Plan, qspace []int, dst []byte, rank1 int) error {
	if rank1 == 0 {
		return errs.New(errs.InvalidShape, "no patched axes")
	}

	patchBytesPerQ := plan.PatchByteStrides[rank1-1] * plan.PatchShape[rank1-1]
	qAxisStride := plan.DataStrides[rank1]
	pos := plan.StartOffset
	buf := 0

	for qi, q := range qspace {
		if err := r.SeekTo(pos); err != nil {
			return errs.Wrap(errs.IoError, err)
		}

		// sliceRead's returned buf is not needed: every full slice at the
		// outermost patched axis advances buf by exactly patchBytesPerQ
		// regardless of how much of it was padding, so the next q-index's
		// destination offset is simpler to compute directly.
		_, newPos, err := sliceRead(r, plan, rank1-1, buf, pos, dst)
		if err != nil {
			return err
		}
		pos = newPos
		buf = (qi + 1) * patchBytesPerQ

		if qi+1 < len(qspace) {
			nextQ := qspace[qi+1]
			pos += int64(nextQ-q)*int64(qAxisStride) - int64(plan.ShiftLengths[rank1-1])
		}
	}
	return nil
}

// sliceRead implements the recursive N-D slice read of §4.5, at patched
// axis d (innermost-first). buf and pos are the destination and source
// cursors on entry; it returns their values after the slice at axis d
// completes. The stream (r) must already be positioned at pos on entry.
func sliceRead(r *binary.Reader, plan planner.Plan, d int, buf int, pos int64, dst []byte) (int, int64, error) {
	if d == 0 {
		if plan.Coord[0] == 0 && plan.Padding[0] > 0 {
			buf += plan.PatchByteStrides[0] * plan.Padding[0]
		}
		if plan.ShiftLengths[0] > 0 {
			n := plan.ShiftLengths[0]
			if buf+n > len(dst) {
				return buf, pos, errs.New(errs.IoError, "destination buffer too small for slice")
			}
			if err := r.ReadInto(dst[buf : buf+n]); err != nil {
				return buf, pos, errs.Wrap(errs.IoError, err)
			}
			buf += n
			pos += int64(n)
		}
		if plan.Coord[0]+1 == plan.NumPatchesPerAxis[0] && plan.Padding[1] > 0 {
			buf += plan.PatchByteStrides[0] * plan.Padding[1]
		}
		return buf, pos, nil
	}

	patchDim := plan.PatchShape[d]
	leftPad := plan.Padding[2*d]
	rightPad := plan.Padding[2*d+1]
	isFirst := plan.Coord[d] == 0
	isLast := plan.Coord[d]+1 == plan.NumPatchesPerAxis[d]

	for i := 0; i < patchDim; i++ {
		switch {
		case isFirst && i < leftPad:
			buf += plan.PatchByteStrides[d]
		case isLast && i >= patchDim-rightPad:
			buf += plan.PatchByteStrides[d]
		default:
			newBuf, newPos, err := sliceRead(r, plan, d-1, buf, pos, dst)
			if err != nil {
				return buf, pos, err
			}
			buf = newBuf
			pos = newPos - int64(plan.ShiftLengths[d-1]) + int64(plan.DataStrides[d])
			if err := r.SeekTo(pos); err != nil {
				return buf, pos, errs.Wrap(errs.IoError, err)
			}
		}
	}
	return buf, pos, nil
}
