package npyheader

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/robert-malhotra/npypatch/internal/binary"
	"github.com/robert-malhotra/npypatch/internal/dtype"
	"github.com/robert-malhotra/npypatch/internal/errs"
)

// buildV10 assembles a well-formed v1.0 .npy header (magic, version,
// header-length, dict literal) padded to a 64-byte boundary.
func buildV10(t *testing.T, dict string) []byte {
	t.Helper()
	prefixLen := 6 + 2 + 2
	// Reserve the trailing newline, then pad with spaces so that
	// prefix + header (including the newline) lands on a 64-byte boundary.
	rem := (prefixLen + len(dict) + 1) % 64
	pad := 0
	if rem != 0 {
		pad = 64 - rem
	}
	dict += strings.Repeat(" ", pad)
	dict += "\n"

	var buf bytes.Buffer
	buf.Write(magic)
	buf.Write([]byte{1, 0})
	hl := uint16(len(dict))
	buf.Write([]byte{byte(hl), byte(hl >> 8)})
	buf.WriteString(dict)
	return buf.Bytes()
}

func kindOf(t *testing.T, err error) errs.Kind {
	t.Helper()
	var e *errs.Error
	if !errors.As(err, &e) {
		t.Fatalf("expected *errs.Error, got %T (%v)", err, err)
	}
	return e.Kind
}

func TestReadWellFormedHeader(t *testing.T) {
	raw := buildV10(t, "{'descr': '<f4', 'fortran_order': False, 'shape': (4, 4), }")
	r := binary.NewReader(bytes.NewReader(raw))
	hdr, err := Read(r)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	want := dtype.Descriptor{ByteOrder: dtype.LittleEndian, Kind: dtype.KindFloat, ItemSize: 4}
	if hdr.Dtype != want {
		t.Errorf("Dtype = %v, want %v", hdr.Dtype, want)
	}
	if hdr.FortranOrder {
		t.Error("FortranOrder = true, want false")
	}
	if len(hdr.Shape) != 2 || hdr.Shape[0] != 4 || hdr.Shape[1] != 4 {
		t.Errorf("Shape = %v, want [4 4]", hdr.Shape)
	}
	if hdr.BodyStartByte != int64(len(raw)) {
		t.Errorf("BodyStartByte = %d, want %d", hdr.BodyStartByte, len(raw))
	}
}

func TestReadBadMagic(t *testing.T) {
	raw := buildV10(t, "{'descr': '<f4', 'fortran_order': False, 'shape': (4, 4), }")
	raw[0] = 0x00
	r := binary.NewReader(bytes.NewReader(raw))
	_, err := Read(r)
	if kindOf(t, err) != errs.BadMagic {
		t.Errorf("expected BadMagic, got %v", err)
	}
}

func TestReadUnsupportedVersion(t *testing.T) {
	raw := buildV10(t, "{'descr': '<f4', 'fortran_order': False, 'shape': (4, 4), }")
	raw[6] = 9
	raw[7] = 9
	r := binary.NewReader(bytes.NewReader(raw))
	_, err := Read(r)
	if kindOf(t, err) != errs.UnsupportedVersion {
		t.Errorf("expected UnsupportedVersion, got %v", err)
	}
}

func TestReadFortranOrderUnsupported(t *testing.T) {
	raw := buildV10(t, "{'descr': '<f4', 'fortran_order': True, 'shape': (4, 4), }")
	r := binary.NewReader(bytes.NewReader(raw))
	_, err := Read(r)
	if kindOf(t, err) != errs.FortranOrderUnsupported {
		t.Errorf("expected FortranOrderUnsupported, got %v", err)
	}
}

func TestReadMissingKey(t *testing.T) {
	raw := buildV10(t, "{'descr': '<f4', 'shape': (4, 4), }")
	r := binary.NewReader(bytes.NewReader(raw))
	_, err := Read(r)
	if kindOf(t, err) != errs.MissingKey {
		t.Errorf("expected MissingKey, got %v", err)
	}
}

func TestReadInvalidShapeRankTooLow(t *testing.T) {
	raw := buildV10(t, "{'descr': '<f4', 'fortran_order': False, 'shape': (4,), }")
	r := binary.NewReader(bytes.NewReader(raw))
	_, err := Read(r)
	if kindOf(t, err) != errs.InvalidShape {
		t.Errorf("expected InvalidShape, got %v", err)
	}
}

func TestReadBadDtype(t *testing.T) {
	raw := buildV10(t, "{'descr': '<z4', 'fortran_order': False, 'shape': (4, 4), }")
	r := binary.NewReader(bytes.NewReader(raw))
	_, err := Read(r)
	if kindOf(t, err) != errs.BadDtype {
		t.Errorf("expected BadDtype, got %v", err)
	}
}

func TestReadTruncatedFile(t *testing.T) {
	raw := buildV10(t, "{'descr': '<f4', 'fortran_order': False, 'shape': (4, 4), }")
	r := binary.NewReader(bytes.NewReader(raw[:10]))
	_, err := Read(r)
	if kindOf(t, err) != errs.IoError {
		t.Errorf("expected IoError, got %v", err)
	}
}
