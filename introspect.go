package npypatch

import (
	"context"

	"github.com/robert-malhotra/npypatch/internal/dtype"
	"github.com/robert-malhotra/npypatch/internal/errs"
)

// DebugVars is the plan the engine would use for req against filepath,
// computed and returned without reading any patch data. It is intended for
// testing a plan in isolation. It also updates the introspection state, as
// if a call to GetPatch had succeeded.
type DebugVars struct {
	DataShape    []int
	Padding      []int
	DataStrides  []int
	PatchStrides []int
	ShiftLengths []int
	StreamStart  int64
	NumPatches   []int
	PatchNumbers []int
	PatchSize    int
}

// DebugPlan runs the header read and planner against filepath without
// reading the array body.
func (e *Engine) DebugPlan(filepath string, want dtype.Descriptor, req PatchRequest) (DebugVars, error) {
	ctx := context.Background()
	log := e.logger.WithRequestID(e.requestIDFunc())
	pc, err := e.buildPlan(ctx, log, filepath, want, req)
	if err != nil {
		return DebugVars{}, err
	}
	defer pc.file.Close()

	patchLen := patchElementCount(req.PatchShape, req.QSpaceIndices)
	e.recordPlan(pc, patchLen)

	return DebugVars{
		DataShape:    append([]int(nil), pc.header.Shape...),
		Padding:      reversePairs(pc.plan.Padding),
		DataStrides:  reverseInts(pc.plan.DataStrides),
		PatchStrides: reverseInts(pc.plan.PatchByteStrides),
		ShiftLengths: reverseInts(pc.plan.ShiftLengths),
		StreamStart:  pc.plan.StartOffset,
		NumPatches:   reverseInts(pc.plan.NumPatchesPerAxis),
		PatchNumbers: reverseInts(pc.plan.Coord),
		PatchSize:    patchLen,
	}, nil
}

func (e *Engine) requirePlan() error {
	if !e.hasPlan {
		return errs.New(errs.IoError, "no prior get_patch or debug_vars call on this engine")
	}
	return nil
}

// GetDataShape returns the on-disk shape verbatim, outermost-first,
// including the q-axis. Valid only after a prior GetPatch/GetPatchRaw/
// DebugPlan call.
func (e *Engine) GetDataShape() ([]int, error) {
	if err := e.requirePlan(); err != nil {
		return nil, err
	}
	return append([]int(nil), e.lastShape...), nil
}

// GetPadding returns the (left,right) padding pairs per patched axis,
// outermost-first.
func (e *Engine) GetPadding() ([]int, error) {
	if err := e.requirePlan(); err != nil {
		return nil, err
	}
	return reversePairs(e.lastPlan.Padding), nil
}

// GetDataStrides returns the byte stride of every axis, outermost-first,
// including the q-axis.
func (e *Engine) GetDataStrides() ([]int, error) {
	if err := e.requirePlan(); err != nil {
		return nil, err
	}
	return reverseInts(e.lastPlan.DataStrides), nil
}

// GetPatchStrides returns the destination byte stride per patched axis,
// outermost-first.
func (e *Engine) GetPatchStrides() ([]int, error) {
	if err := e.requirePlan(); err != nil {
		return nil, err
	}
	return reverseInts(e.lastPlan.PatchByteStrides), nil
}

// GetShiftLengths returns the number of real bytes contributed per patched
// axis, outermost-first.
func (e *Engine) GetShiftLengths() ([]int, error) {
	if err := e.requirePlan(); err != nil {
		return nil, err
	}
	return reverseInts(e.lastPlan.ShiftLengths), nil
}

// GetStreamStart returns the absolute byte offset the last patch began
// reading from.
func (e *Engine) GetStreamStart() (int64, error) {
	if err := e.requirePlan(); err != nil {
		return 0, err
	}
	return e.lastPlan.StartOffset, nil
}

// GetNumPatches returns the number of patches per patched axis,
// outermost-first.
func (e *Engine) GetNumPatches() ([]int, error) {
	if err := e.requirePlan(); err != nil {
		return nil, err
	}
	return reverseInts(e.lastPlan.NumPatchesPerAxis), nil
}

// GetPatchNumbers returns the decomposed patch coordinate, outermost-first.
func (e *Engine) GetPatchNumbers() ([]int, error) {
	if err := e.requirePlan(); err != nil {
		return nil, err
	}
	return reverseInts(e.lastPlan.Coord), nil
}

// GetPatchSize returns the total element count of the last patch buffer
// (Π patch_shape · |qspace_indices|).
func (e *Engine) GetPatchSize() (int, error) {
	if err := e.requirePlan(); err != nil {
		return 0, err
	}
	return e.lastPatchLen, nil
}
