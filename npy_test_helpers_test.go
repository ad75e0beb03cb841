package npypatch

import (
	"bytes"
	"encoding/binary"
	"math"
	"os"
	"strings"
	"testing"
)

// buildNpyFile writes a well-formed v1.0 .npy file with the given descr
// string, shape, and raw body bytes, and returns its path. The header is
// padded to a 64-byte boundary the way NumPy's own writer does.
func buildNpyFile(t *testing.T, descr string, shape []int, body []byte) string {
	t.Helper()

	shapeStr := make([]string, len(shape))
	for i, d := range shape {
		shapeStr[i] = itoa(d)
	}
	tupleInner := strings.Join(shapeStr, ", ")
	if len(shape) == 1 {
		tupleInner += ","
	}
	dict := "{'descr': '" + descr + "', 'fortran_order': False, 'shape': (" + tupleInner + "), }"

	prefixLen := 6 + 2 + 2
	rem := (prefixLen + len(dict) + 1) % 64
	pad := 0
	if rem != 0 {
		pad = 64 - rem
	}
	dict += strings.Repeat(" ", pad)
	dict += "\n"

	var buf bytes.Buffer
	buf.Write([]byte{0x93, 'N', 'U', 'M', 'P', 'Y', 1, 0})
	hl := uint16(len(dict))
	lenBuf := make([]byte, 2)
	binary.LittleEndian.PutUint16(lenBuf, hl)
	buf.Write(lenBuf)
	buf.WriteString(dict)
	buf.Write(body)

	f, err := os.CreateTemp(t.TempDir(), "*.npy")
	if err != nil {
		t.Fatalf("CreateTemp: %v", err)
	}
	if _, err := f.Write(buf.Bytes()); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	return f.Name()
}

// buildNpyFileRaw writes a v1.0 .npy file from a caller-supplied dict
// literal, for tests that need to construct a deliberately malformed or
// unusual header (e.g. fortran_order: True).
func buildNpyFileRaw(t *testing.T, dict string, body []byte) string {
	t.Helper()

	prefixLen := 6 + 2 + 2
	rem := (prefixLen + len(dict) + 1) % 64
	pad := 0
	if rem != 0 {
		pad = 64 - rem
	}
	dict += strings.Repeat(" ", pad)
	dict += "\n"

	var buf bytes.Buffer
	buf.Write([]byte{0x93, 'N', 'U', 'M', 'P', 'Y', 1, 0})
	hl := uint16(len(dict))
	lenBuf := make([]byte, 2)
	binary.LittleEndian.PutUint16(lenBuf, hl)
	buf.Write(lenBuf)
	buf.WriteString(dict)
	buf.Write(body)

	f, err := os.CreateTemp(t.TempDir(), "*.npy")
	if err != nil {
		t.Fatalf("CreateTemp: %v", err)
	}
	if _, err := f.Write(buf.Bytes()); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	return f.Name()
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	if neg {
		return "-" + string(digits)
	}
	return string(digits)
}

func float32LE(vals ...float32) []byte {
	out := make([]byte, 4*len(vals))
	for i, v := range vals {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(v))
	}
	return out
}

func float64LE(vals ...float64) []byte {
	out := make([]byte, 8*len(vals))
	for i, v := range vals {
		binary.LittleEndian.PutUint64(out[i*8:], math.Float64bits(v))
	}
	return out
}

func int64LE(vals ...int64) []byte {
	out := make([]byte, 8*len(vals))
	for i, v := range vals {
		binary.LittleEndian.PutUint64(out[i*8:], uint64(v))
	}
	return out
}

func float32sFromBytes(t *testing.T, b []byte) []float32 {
	t.Helper()
	out := make([]float32, len(b)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return out
}
