// Package planner computes the byte-level arithmetic of a patch request:
// padding, strides, patch counts, the decomposed patch coordinate, and the
// start offset the reader begins copying from. All vectors here are
// innermost-first; the public boundary in the root package reverses to and
// from the caller-facing outermost-first convention.
package planner

import (
	"github.com/robert-malhotra/npypatch/internal/errs"
)

// Request is a patch request already reversed to innermost-first order for
// the patched axes (rank-1 entries; the q-axis is not included).
type Request struct {
	DataShape         []int // innermost-first, length rank-1
	PatchShape        []int
	PatchStride       []int
	ExtraPadding      []int // innermost-first (left,right) pairs, length 2*(rank-1)
	PatchIndexOffset  []int // innermost-first, length rank-1
	PatchIndex        int
	ItemSize          int
	QSpaceIndices     []int // outermost order preserved, values into the q-axis
	QAxisDataShape    int
}

// Plan is the full derived state of §3/§4.4, innermost-first.
type Plan struct {
	PatchShape        []int // length rank-1, carried through from the request
	Padding           []int // (left,right) pairs, length 2*(rank-1)
	DataStrides       []int // length rank (includes the q-axis stride at the last slot)
	PatchByteStrides  []int // length rank-1
	NumPatchesPerAxis []int
	Coord             []int
	ShiftLengths      []int
	StartOffset       int64
}

// Build runs the full planner pipeline of §4.4 against a Request whose
// vectors are already innermost-first, and body-start-relative.
func Build(req Request, bodyStartByte int64) (Plan, error) {
	rank1 := len(req.DataShape)
	if rank1 != len(req.PatchShape) || rank1 != len(req.PatchStride) {
		return Plan{}, errs.New(errs.InvalidShape, "patch_shape/patch_stride/data_shape length mismatch")
	}
	if req.QAxisDataShape <= 0 {
		return Plan{}, errs.New(errs.InvalidShape, "q-axis dimension is zero")
	}

	if err := validateQSpace(req.QSpaceIndices, req.QAxisDataShape); err != nil {
		return Plan{}, err
	}

	padding, err := computePadding(req)
	if err != nil {
		return Plan{}, err
	}

	dataStrides := computeDataStrides(req.DataShape, req.QAxisDataShape, req.ItemSize)
	patchByteStrides := computePatchByteStrides(req.PatchShape, req.ItemSize)
	numPatches := computeNumPatchesPerAxis(req.DataShape, req.PatchShape, req.PatchStride, padding)

	coord, err := decomposePatchIndex(req.PatchIndex, req.PatchIndexOffset, numPatches)
	if err != nil {
		return Plan{}, err
	}

	shifts := computeShiftLengths(dataStrides, req.PatchShape, padding, coord, numPatches)

	start := computeStartOffset(dataStrides, req.PatchStride, padding, coord, req.QSpaceIndices, bodyStartByte, rank1)

	return Plan{
		PatchShape:        req.PatchShape,
		Padding:           padding,
		DataStrides:       dataStrides,
		PatchByteStrides:  patchByteStrides,
		NumPatchesPerAxis: numPatches,
		Coord:             coord,
		ShiftLengths:      shifts,
		StartOffset:       start,
	}, nil
}

func validateQSpace(qspace []int, qAxisShape int) error {
	if len(qspace) == 0 {
		return errs.New(errs.QIndexOutOfRange, "qspace_indices is empty")
	}
	prev := -1
	for _, q := range qspace {
		if q <= prev {
			return errs.New(errs.QIndexOutOfRange, "qspace_indices %v not strictly increasing", qspace)
		}
		if q >= qAxisShape {
			return errs.New(errs.QIndexOutOfRange, "q-index %d >= q-axis dimension %d", q, qAxisShape)
		}
		prev = q
	}
	return nil
}

// computePadding implements §4.4 step 2.
func computePadding(req Request) ([]int, error) {
	rank1 := len(req.DataShape)
	padding := make([]int, 2*rank1)
	for i := 0; i < rank1; i++ {
		dataDim := req.DataShape[i]
		patchDim := req.PatchShape[i]
		stride := req.PatchStride[i]

		var required int
		if dataDim <= patchDim {
			required = patchDim - dataDim
		} else {
			diff := dataDim - patchDim
			k := (diff + stride - 1) / stride
			required = k*stride + patchDim - dataDim
		}

		left := required/2 + required%2
		right := required / 2

		if req.ExtraPadding != nil {
			left += req.ExtraPadding[2*i]
			right += req.ExtraPadding[2*i+1]
		}

		if left > patchDim || right > patchDim {
			return nil, errs.New(errs.InvalidPadding,
				"padding (%d,%d) exceeds patch_shape[%d]=%d", left, right, i, patchDim)
		}
		excess := dataDim + left + right - patchDim
		if excess < 0 || excess%stride != 0 {
			return nil, errs.New(errs.InvalidPadding,
				"axis %d: excess %d is not a non-negative multiple of patch_stride %d", i, excess, stride)
		}

		padding[2*i] = left
		padding[2*i+1] = right
	}
	return padding, nil
}

// computeDataStrides implements §3/§4.4 step 3. The returned slice has
// length rank: indices 0..rank-2 are the patched axes innermost-first, and
// the final entry is the q-axis stride (used to step between q-indices).
func computeDataStrides(dataShape []int, qAxisShape, itemSize int) []int {
	rank1 := len(dataShape)
	strides := make([]int, rank1+1)
	strides[0] = itemSize
	for i := 1; i < rank1; i++ {
		strides[i] = strides[i-1] * dataShape[i-1]
	}
	if rank1 == 0 {
		strides[rank1] = itemSize
	} else {
		strides[rank1] = strides[rank1-1] * dataShape[rank1-1]
	}
	return strides
}

func computePatchByteStrides(patchShape []int, itemSize int) []int {
	rank1 := len(patchShape)
	strides := make([]int, rank1)
	if rank1 == 0 {
		return strides
	}
	strides[0] = itemSize
	for i := 1; i < rank1; i++ {
		strides[i] = strides[i-1] * patchShape[i-1]
	}
	return strides
}

// computeNumPatchesPerAxis implements the stride-aware formula from §3,
// explicitly NOT the variant that omits patch_shape[i] from the numerator
// (see SPEC_FULL.md open-question resolution).
func computeNumPatchesPerAxis(dataShape, patchShape, patchStride, padding []int) []int {
	rank1 := len(dataShape)
	out := make([]int, rank1)
	for i := 0; i < rank1; i++ {
		if dataShape[i] <= patchShape[i] {
			out[i] = 1
			continue
		}
		paddingSum := padding[2*i] + padding[2*i+1]
		out[i] = 1 + (dataShape[i]+paddingSum-patchShape[i])/patchStride[i]
	}
	return out
}

// decomposePatchIndex implements §4.4 step 5, including the offset
// application. The loop counts down with a signed index and terminates at
// i == 0 after processing, per the open-question resolution: it does not
// rely on an unsigned wraparound check.
func decomposePatchIndex(patchIndex int, offset []int, numPatches []int) ([]int, error) {
	rank1 := len(numPatches)
	s := make([]int, rank1)
	m := 1
	for i := 0; i < rank1; i++ {
		if i == 0 {
			s[0] = 1
		} else {
			s[i] = s[i-1] * numPatches[i-1]
		}
		m *= numPatches[i]
	}

	if patchIndex < 0 || patchIndex >= m {
		return nil, errs.New(errs.PatchIndexOutOfRange, "patch_index %d out of range [0,%d)", patchIndex, m)
	}

	adjusted := patchIndex
	if offset != nil {
		for i := 0; i < rank1; i++ {
			if offset[i] != 0 && offset[i] >= numPatches[i] {
				return nil, errs.New(errs.PatchIndexOutOfRange,
					"patch_index_offset[%d]=%d >= num_patches_per_axis[%d]=%d", i, offset[i], i, numPatches[i])
			}
			adjusted += offset[i] * s[i]
		}
	}
	if adjusted >= m {
		return nil, errs.New(errs.PatchIndexOutOfRange, "offset-adjusted patch_index %d out of range [0,%d)", adjusted, m)
	}

	coord := make([]int, rank1)
	for i := rank1 - 1; i >= 0; i-- {
		coord[i] = adjusted / s[i]
		adjusted -= coord[i] * s[i]
	}
	return coord, nil
}

// computeShiftLengths implements §4.4 step 6.
func computeShiftLengths(dataStrides, patchShape, padding, coord, numPatches []int) []int {
	rank1 := len(patchShape)
	shifts := make([]int, rank1)
	for i := 0; i < rank1; i++ {
		shift := dataStrides[i] * patchShape[i]
		if coord[i] == 0 {
			shift -= dataStrides[i] * padding[2*i]
		}
		if coord[i] == numPatches[i]-1 {
			shift -= dataStrides[i] * padding[2*i+1]
		}
		shifts[i] = shift
	}
	return shifts
}

// computeStartOffset implements §4.4 step 7.
func computeStartOffset(dataStrides, patchStride, padding, coord, qspace []int, bodyStartByte int64, rank1 int) int64 {
	var offset int64
	for i := 0; i < rank1; i++ {
		if coord[i] != 0 {
			offset += int64(dataStrides[i]*coord[i]*patchStride[i] - dataStrides[i]*padding[2*i])
		}
	}
	qAxisStride := dataStrides[rank1]
	offset += int64(qspace[0]) * int64(qAxisStride)
	offset += bodyStartByte
	return offset
}
