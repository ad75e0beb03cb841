package npypatch

import (
	"context"
	"os"
	"time"

	"github.com/robert-malhotra/npypatch/internal/binary"
	"github.com/robert-malhotra/npypatch/internal/dtype"
	"github.com/robert-malhotra/npypatch/internal/errs"
	"github.com/robert-malhotra/npypatch/internal/npyheader"
	"github.com/robert-malhotra/npypatch/internal/patchio"
	"github.com/robert-malhotra/npypatch/internal/planner"
	"github.com/robert-malhotra/npypatch/internal/telemetry"

	"github.com/dustin/go-humanize"
)

// Element is the set of Go types the generic GetPatch entry point accepts.
// It is a re-export of the internal registry's type set so callers never
// need to import an internal package.
type Element = dtype.Element

// Engine extracts patches from .npy files. It holds no file handle between
// calls; state carried between calls is limited to the last successful
// plan, used by the introspection getters. An Engine is not safe for
// concurrent use.
type Engine struct {
	logger        *telemetry.Logger
	metrics       telemetry.MetricsObserver
	requestIDFunc func() string
	maxRank       int

	hasPlan      bool
	lastShape    []int // outermost-first, full rank including the q-axis
	lastPlan     planner.Plan
	lastRank1    int
	lastPatchLen int // total element count of the last patch buffer
}

// NewEngine constructs an Engine with the given options applied over the
// defaults (no logging, no metrics, random request ids, max rank 8).
func NewEngine(opts ...Option) *Engine {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return &Engine{
		logger:        o.logger,
		metrics:       o.metrics,
		requestIDFunc: o.requestIDFunc,
		maxRank:       o.maxRank,
	}
}

// planContext bundles everything derived from opening a file and running
// the planner, shared by GetPatch, GetPatchRaw, and DebugPlan.
type planContext struct {
	file   *os.File
	reader *binary.Reader
	header npyheader.Header
	plan   planner.Plan
	rank1  int
}

func (e *Engine) buildPlan(ctx context.Context, log *telemetry.Logger, filepath string, want dtype.Descriptor, req PatchRequest) (planContext, error) {
	rank := len(req.PatchShape) + 1
	if rank > e.maxRank {
		return planContext{}, errs.New(errs.InvalidShape, "rank %d exceeds max rank %d", rank, e.maxRank)
	}

	f, err := os.Open(filepath)
	if err != nil {
		return planContext{}, errs.Wrap(errs.IoError, err)
	}

	r := binary.NewReader(f)
	hdr, err := npyheader.Read(r)
	log.LogHeaderRead(ctx, filepath, hdr.Shape, err)
	if err != nil {
		f.Close()
		return planContext{}, err
	}

	rank1 := len(hdr.Shape) - 1
	if !want.Matches(hdr.Dtype) {
		f.Close()
		return planContext{}, errs.New(errs.BadDtype, "file dtype %s does not match requested dtype %s", hdr.Dtype, want)
	}

	patchShape, patchStride, extraPadding, patchIndexOffset, err := req.normalize(rank1)
	if err != nil {
		f.Close()
		return planContext{}, err
	}

	dataShapeInner := reverseInts(hdr.Shape[1:])

	plan, err := planner.Build(planner.Request{
		DataShape:        dataShapeInner,
		PatchShape:       patchShape,
		PatchStride:      patchStride,
		ExtraPadding:     extraPadding,
		PatchIndexOffset: patchIndexOffset,
		PatchIndex:       req.PatchIndex,
		ItemSize:         want.ItemSize,
		QSpaceIndices:    req.QSpaceIndices,
		QAxisDataShape:   hdr.Shape[0],
	}, hdr.BodyStartByte)
	if err != nil {
		f.Close()
		return planContext{}, err
	}

	return planContext{file: f, reader: r, header: hdr, plan: plan, rank1: rank1}, nil
}

func (e *Engine) recordPlan(pc planContext, patchLen int) {
	e.hasPlan = true
	e.lastShape = append([]int(nil), pc.header.Shape...)
	e.lastPlan = pc.plan
	e.lastRank1 = pc.rank1
	e.lastPatchLen = patchLen
}

// GetPatchRaw extracts a patch as raw bytes against an explicit dtype
// descriptor, for element kinds with no native Go type (f80, c160). Most
// callers should use the generic GetPatch instead.
func (e *Engine) GetPatchRaw(ctx context.Context, filepath string, want dtype.Descriptor, req PatchRequest) ([]byte, error) {
	requestID := e.requestIDFunc()
	log := e.logger.WithRequestID(requestID)
	start := time.Now()

	pc, err := e.buildPlan(ctx, log, filepath, want, req)
	if err != nil {
		e.metrics.IncPatchRequests("error")
		log.LogGetPatch(ctx, req.PatchIndex, 0, time.Since(start), err)
		return nil, err
	}
	defer pc.file.Close()

	patchLen := patchElementCount(req.PatchShape, req.QSpaceIndices)
	buf := make([]byte, patchLen*want.ItemSize)

	if err := patchio.Fill(pc.reader, pc.plan, req.QSpaceIndices, buf, pc.rank1); err != nil {
		e.metrics.IncPatchRequests("error")
		log.LogGetPatch(ctx, req.PatchIndex, 0, time.Since(start), err)
		return nil, err
	}

	e.recordPlan(pc, patchLen)
	elapsed := time.Since(start)
	e.metrics.IncPatchRequests("ok")
	e.metrics.ObserveGetPatchLatency(elapsed.Seconds(), "ok")
	e.metrics.ObserveBytesRead(len(buf))
	log.LogGetPatch(ctx, req.PatchIndex, len(buf), elapsed, nil)
	log.Debug("get_patch bytes", "bytes", humanize.Bytes(uint64(len(buf))))
	return buf, nil
}

// GetPatch extracts a patch and returns it as a slice of T, the caller's
// chosen element type. The file's on-disk dtype must exactly match T's
// registered descriptor (using '|' as a wildcard for single-byte kinds).
func GetPatch[T Element](e *Engine, ctx context.Context, filepath string, req PatchRequest) ([]T, error) {
	want := dtype.DescriptorFor[T]()
	requestID := e.requestIDFunc()
	log := e.logger.WithRequestID(requestID)
	start := time.Now()

	pc, err := e.buildPlan(ctx, log, filepath, want, req)
	if err != nil {
		e.metrics.IncPatchRequests("error")
		log.LogGetPatch(ctx, req.PatchIndex, 0, time.Since(start), err)
		return nil, err
	}
	defer pc.file.Close()

	patchLen := patchElementCount(req.PatchShape, req.QSpaceIndices)
	out, view := dtype.BytesView[T](patchLen)

	if err := patchio.Fill(pc.reader, pc.plan, req.QSpaceIndices, view, pc.rank1); err != nil {
		e.metrics.IncPatchRequests("error")
		log.LogGetPatch(ctx, req.PatchIndex, 0, time.Since(start), err)
		return nil, err
	}

	e.recordPlan(pc, patchLen)
	elapsed := time.Since(start)
	e.metrics.IncPatchRequests("ok")
	e.metrics.ObserveGetPatchLatency(elapsed.Seconds(), "ok")
	e.metrics.ObserveBytesRead(len(view))
	log.LogGetPatch(ctx, req.PatchIndex, len(view), elapsed, nil)
	return out, nil
}

func patchElementCount(patchShape []int, qspace []int) int {
	n := 1
	for _, d := range patchShape {
		n *= d
	}
	return n * len(qspace)
}
