package npypatch

import "github.com/robert-malhotra/npypatch/internal/errs"

// PatchRequest describes one patch to extract. All vectors are supplied
// outermost-first, matching the on-disk shape's own ordering. ExtraPadding
// and PatchIndexOffset default to all-zero when nil.
type PatchRequest struct {
	QSpaceIndices    []int
	PatchShape       []int
	PatchStride      []int
	PatchIndex       int
	ExtraPadding     []int
	PatchIndexOffset []int
}

// normalize validates the request against a patched-axis count of rank1 and
// fills in zero defaults, returning innermost-first vectors ready for the
// planner.
func (req PatchRequest) normalize(rank1 int) (patchShape, patchStride, extraPadding, patchIndexOffset []int, err error) {
	if len(req.PatchShape) != rank1 {
		return nil, nil, nil, nil, errs.New(errs.InvalidShape,
			"patch_shape has %d entries, want %d", len(req.PatchShape), rank1)
	}
	if len(req.PatchStride) != rank1 {
		return nil, nil, nil, nil, errs.New(errs.InvalidShape,
			"patch_stride has %d entries, want %d", len(req.PatchStride), rank1)
	}
	for i := 0; i < rank1; i++ {
		if req.PatchShape[i] < 1 {
			return nil, nil, nil, nil, errs.New(errs.InvalidShape, "patch_shape[%d]=%d < 1", i, req.PatchShape[i])
		}
		if req.PatchStride[i] < 1 {
			return nil, nil, nil, nil, errs.New(errs.InvalidShape, "patch_stride[%d]=%d < 1", i, req.PatchStride[i])
		}
	}

	extra := req.ExtraPadding
	if extra == nil {
		extra = make([]int, 2*rank1)
	}
	if len(extra) != 2*rank1 {
		return nil, nil, nil, nil, errs.New(errs.InvalidPadding,
			"extra_padding has %d entries, want %d", len(extra), 2*rank1)
	}

	offset := req.PatchIndexOffset
	if offset == nil {
		offset = make([]int, rank1)
	}
	if len(offset) != rank1 {
		return nil, nil, nil, nil, errs.New(errs.InvalidShape,
			"patch_index_offset has %d entries, want %d", len(offset), rank1)
	}

	return reverseInts(req.PatchShape), reverseInts(req.PatchStride), reversePairs(extra), reverseInts(offset), nil
}
