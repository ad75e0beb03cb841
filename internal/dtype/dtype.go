// Package dtype maps NumPy-style element kinds to their on-disk descriptor
// (byte order, kind character, item size) and back, and determines the
// host's native byte order once at init.
package dtype

import (
	"fmt"
	"unsafe"
)

// ByteOrder is one of the three NumPy descriptor byte-order characters.
type ByteOrder byte

const (
	LittleEndian ByteOrder = '<'
	BigEndian    ByteOrder = '>'
	NoEndian     ByteOrder = '|'
)

// Kind is one of the four NumPy descriptor kind characters this registry
// supports.
type Kind byte

const (
	KindFloat   Kind = 'f'
	KindInt     Kind = 'i'
	KindUint    Kind = 'u'
	KindComplex Kind = 'c'
)

// Descriptor is the on-disk dtype triple parsed from a .npy header's descr
// field, or the expected triple registered for a caller's element type.
type Descriptor struct {
	ByteOrder ByteOrder
	Kind      Kind
	ItemSize  int
}

func (d Descriptor) String() string {
	return fmt.Sprintf("%c%c%d", d.ByteOrder, d.Kind, d.ItemSize)
}

// Matches reports whether a file descriptor satisfies an expected
// descriptor: equal in all fields, except that for single-byte kinds a '|'
// (no-endian) byte order on either side acts as a wildcard, since a single
// byte has no order.
func (want Descriptor) Matches(got Descriptor) bool {
	if want.Kind != got.Kind || want.ItemSize != got.ItemSize {
		return false
	}
	if got.ItemSize == 1 {
		return got.ByteOrder == NoEndian || want.ByteOrder == NoEndian || got.ByteOrder == want.ByteOrder
	}
	return got.ByteOrder == want.ByteOrder
}

// hostByteOrder is probed once at init, the way npyio's nativeEndian is:
// Go has no build-time byte-order constant, so this is the closest
// equivalent of spec.md's "determined at build time".
var hostByteOrder ByteOrder

func init() {
	v := uint16(1)
	switch (*[2]byte)(unsafe.Pointer(&v))[0] {
	case 1:
		hostByteOrder = LittleEndian
	default:
		hostByteOrder = BigEndian
	}
}

// HostByteOrder returns the byte order of the host this binary was built
// for.
func HostByteOrder() ByteOrder {
	return hostByteOrder
}
