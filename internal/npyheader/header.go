// Package npyheader parses the bit-exact on-disk .npy header: the magic
// string, the version-specific header-length field, and the Python-dict
// literal that follows, leaving the stream positioned exactly at the start
// of the array body.
package npyheader

import (
	"errors"

	"github.com/robert-malhotra/npypatch/internal/binary"
	"github.com/robert-malhotra/npypatch/internal/dtype"
	"github.com/robert-malhotra/npypatch/internal/errs"
	"github.com/robert-malhotra/npypatch/internal/pyliteral"
)

var magic = []byte{0x93, 'N', 'U', 'M', 'P', 'Y'}

// Header describes the parsed .npy header: its dtype, storage order, and
// shape, plus the byte offset at which the array body begins.
type Header struct {
	Dtype         dtype.Descriptor
	FortranOrder  bool
	Shape         []int
	BodyStartByte int64
}

// Read consumes a .npy header from r, which must be positioned at the
// start of the file, and leaves r positioned at the start of the array
// body. It never reads past the header, and never returns a partially
// populated Header on error.
func Read(r *binary.Reader) (Header, error) {
	got, err := r.ReadBytes(len(magic))
	if err != nil {
		return Header{}, errs.New(errs.IoError, "reading magic: %v", err)
	}
	for i := range magic {
		if got[i] != magic[i] {
			return Header{}, errs.New(errs.BadMagic, "file does not start with the .npy magic string")
		}
	}

	ver, err := r.ReadBytes(2)
	if err != nil {
		return Header{}, errs.New(errs.IoError, "reading version: %v", err)
	}
	major, minor := ver[0], ver[1]

	var headerLen int
	var prefixLen int
	switch {
	case major == 1 && minor == 0:
		hl, err := r.ReadUint16()
		if err != nil {
			return Header{}, errs.New(errs.IoError, "reading v1.0 header length: %v", err)
		}
		headerLen = int(hl)
		prefixLen = 6 + 2 + 2
	case major == 2 && minor == 0:
		hl, err := r.ReadUint32()
		if err != nil {
			return Header{}, errs.New(errs.IoError, "reading v2.0 header length: %v", err)
		}
		headerLen = int(hl)
		prefixLen = 6 + 2 + 4
	default:
		return Header{}, errs.New(errs.UnsupportedVersion, "version %d.%d is not 1.0 or 2.0", major, minor)
	}

	if (prefixLen+headerLen)%64 != 0 {
		return Header{}, errs.New(errs.BadHeader,
			"header length %d bytes not 64-byte aligned with prefix %d", headerLen, prefixLen)
	}

	raw, err := r.ReadBytes(headerLen)
	if err != nil {
		return Header{}, errs.New(errs.IoError, "reading header body: %v", err)
	}

	hdr, err := parse(string(raw))
	if err != nil {
		return Header{}, err
	}
	hdr.BodyStartByte = r.Pos()
	return hdr, nil
}

func parse(text string) (Header, error) {
	if len(text) == 0 || text[len(text)-1] != '\n' {
		return Header{}, errs.New(errs.BadHeader, "header missing trailing newline")
	}
	text = text[:len(text)-1]

	fields, err := pyliteral.ParseDict(text, []string{"descr", "fortran_order", "shape"})
	if err != nil {
		if errors.Is(err, pyliteral.ErrMissingKey) {
			return Header{}, errs.New(errs.MissingKey, "%v", err)
		}
		return Header{}, errs.New(errs.BadHeader, "%v", err)
	}

	descrStr, err := pyliteral.ParseStr(fields["descr"])
	if err != nil {
		return Header{}, errs.New(errs.BadDtype, "parsing descr: %v", err)
	}
	descr, err := dtype.ParseDescr(descrStr)
	if err != nil {
		return Header{}, errs.New(errs.BadDtype, "%v", err)
	}

	fortran, err := pyliteral.ParseBool(fields["fortran_order"])
	if err != nil {
		return Header{}, errs.New(errs.BadHeader, "parsing fortran_order: %v", err)
	}
	if fortran {
		return Header{}, errs.New(errs.FortranOrderUnsupported, "fortran_order is True")
	}

	shape, err := pyliteral.ParseTuple(fields["shape"])
	if err != nil {
		return Header{}, errs.New(errs.BadHeader, "parsing shape: %v", err)
	}
	if len(shape) < 2 {
		return Header{}, errs.New(errs.InvalidShape, "rank %d < 2", len(shape))
	}
	for _, dim := range shape {
		if dim <= 0 {
			return Header{}, errs.New(errs.InvalidShape, "non-positive dimension in shape %v", shape)
		}
	}

	return Header{Dtype: descr, FortranOrder: fortran, Shape: shape}, nil
}
