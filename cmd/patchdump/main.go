// Command patchdump is a diagnostic tool for inspecting .npy files and
// dry-running a patch plan without reading any array data.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/robert-malhotra/npypatch"
	"github.com/robert-malhotra/npypatch/internal/binary"
	"github.com/robert-malhotra/npypatch/internal/dtype"
	"github.com/robert-malhotra/npypatch/internal/npyheader"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "plan":
		if len(os.Args) != 4 {
			usage()
			os.Exit(1)
		}
		err = runPlan(os.Args[2], os.Args[3])
	default:
		if len(os.Args) != 2 {
			usage()
			os.Exit(1)
		}
		err = runHeader(os.Args[1])
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("Usage:")
	fmt.Println("  patchdump <file.npy>                       — print header fields")
	fmt.Println("  patchdump plan <file.npy> <request.json>   — run debug_vars, print the plan")
}

func runHeader(filepath string) error {
	f, err := os.Open(filepath)
	if err != nil {
		return err
	}
	defer f.Close()

	hdr, err := npyheader.Read(binary.NewReader(f))
	if err != nil {
		return err
	}

	fmt.Printf("=== %s ===\n\n", filepath)
	fmt.Printf("dtype:          %s\n", hdr.Dtype)
	fmt.Printf("fortran_order:  %v\n", hdr.FortranOrder)
	fmt.Printf("shape:          %v\n", hdr.Shape)
	fmt.Printf("body_start:     %d\n", hdr.BodyStartByte)
	return nil
}

// planRequestJSON is the JSON shape read by the `plan` subcommand.
type planRequestJSON struct {
	Dtype            string `json:"dtype"`
	QSpaceIndices    []int  `json:"qspace_indices"`
	PatchShape       []int  `json:"patch_shape"`
	PatchStride      []int  `json:"patch_stride"`
	PatchIndex       int    `json:"patch_index"`
	ExtraPadding     []int  `json:"extra_padding,omitempty"`
	PatchIndexOffset []int  `json:"patch_index_offset,omitempty"`
}

func runPlan(filepath, requestPath string) error {
	raw, err := os.ReadFile(requestPath)
	if err != nil {
		return err
	}
	var pr planRequestJSON
	if err := json.Unmarshal(raw, &pr); err != nil {
		return fmt.Errorf("parsing %s: %w", requestPath, err)
	}

	want, err := dtype.ByName(pr.Dtype)
	if err != nil {
		return err
	}

	e := npypatch.NewEngine()
	vars, err := e.DebugPlan(filepath, want, npypatch.PatchRequest{
		QSpaceIndices:    pr.QSpaceIndices,
		PatchShape:       pr.PatchShape,
		PatchStride:      pr.PatchStride,
		PatchIndex:       pr.PatchIndex,
		ExtraPadding:     pr.ExtraPadding,
		PatchIndexOffset: pr.PatchIndexOffset,
	})
	if err != nil {
		return err
	}

	fmt.Printf("=== plan for %s ===\n\n", filepath)
	fmt.Printf("data_shape:     %v\n", vars.DataShape)
	fmt.Printf("padding:        %v\n", vars.Padding)
	fmt.Printf("data_strides:   %v\n", vars.DataStrides)
	fmt.Printf("patch_strides:  %v\n", vars.PatchStrides)
	fmt.Printf("shift_lengths:  %v\n", vars.ShiftLengths)
	fmt.Printf("stream_start:   %d\n", vars.StreamStart)
	fmt.Printf("num_patches:    %v\n", vars.NumPatches)
	fmt.Printf("patch_numbers:  %v\n", vars.PatchNumbers)
	fmt.Printf("patch_size:     %d\n", vars.PatchSize)
	return nil
}
