package dtype

import "fmt"

// Element is the closed set of Go types the generic patch-reading entry
// point can be instantiated with. It covers every kind spec.md registers
// except f80/extended and c160, which have no native Go representation and
// are served separately through the raw byte path (see ByName below).
type Element interface {
	~float32 | ~float64 |
		~int8 | ~int16 | ~int32 | ~int64 |
		~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~complex64 | ~complex128
}

// DescriptorFor returns the expected descriptor for a Go element type,
// using the host's byte order except for single-byte kinds, which are
// registered with the no-endian wildcard.
func DescriptorFor[T Element]() Descriptor {
	var zero T
	order := hostByteOrder
	var kind Kind
	var size int

	switch any(zero).(type) {
	case float32:
		kind, size = KindFloat, 4
	case float64:
		kind, size = KindFloat, 8
	case int8:
		kind, size, order = KindInt, 1, NoEndian
	case int16:
		kind, size = KindInt, 2
	case int32:
		kind, size = KindInt, 4
	case int64:
		kind, size = KindInt, 8
	case uint8:
		kind, size, order = KindUint, 1, NoEndian
	case uint16:
		kind, size = KindUint, 2
	case uint32:
		kind, size = KindUint, 4
	case uint64:
		kind, size = KindUint, 8
	case complex64:
		kind, size = KindComplex, 8
	case complex128:
		kind, size = KindComplex, 16
	default:
		panic(fmt.Sprintf("dtype: unregistered element type %T", zero))
	}

	return Descriptor{ByteOrder: order, Kind: kind, ItemSize: size}
}

// Named kinds a caller may request through the raw byte-oriented path,
// including the two the Go type system cannot natively represent.
const (
	F32      = "f32"
	F64      = "f64"
	F80      = "f80" // extended precision; served only via GetPatchRaw
	I8       = "i8"
	I16      = "i16"
	I32      = "i32"
	I64      = "i64"
	U8       = "u8"
	U16      = "u16"
	U32      = "u32"
	U64      = "u64"
	C64      = "c64"
	C128     = "c128"
	C160     = "c160" // 2x extended precision; served only via GetPatchRaw
)

// ByName returns the registered descriptor for one of the named kinds
// above. This is the table cmd/patchdump and callers of GetPatchRaw use to
// obtain a descriptor; the
// generic GetPatch path never needs it, since DescriptorFor derives the
// descriptor straight from the Go type parameter.
func ByName(name string) (Descriptor, error) {
	host := hostByteOrder
	switch name {
	case F32:
		return Descriptor{ByteOrder: host, Kind: KindFloat, ItemSize: 4}, nil
	case F64:
		return Descriptor{ByteOrder: host, Kind: KindFloat, ItemSize: 8}, nil
	case F80:
		return Descriptor{ByteOrder: host, Kind: KindFloat, ItemSize: 10}, nil
	case I8:
		return Descriptor{ByteOrder: NoEndian, Kind: KindInt, ItemSize: 1}, nil
	case I16:
		return Descriptor{ByteOrder: host, Kind: KindInt, ItemSize: 2}, nil
	case I32:
		return Descriptor{ByteOrder: host, Kind: KindInt, ItemSize: 4}, nil
	case I64:
		return Descriptor{ByteOrder: host, Kind: KindInt, ItemSize: 8}, nil
	case U8:
		return Descriptor{ByteOrder: NoEndian, Kind: KindUint, ItemSize: 1}, nil
	case U16:
		return Descriptor{ByteOrder: host, Kind: KindUint, ItemSize: 2}, nil
	case U32:
		return Descriptor{ByteOrder: host, Kind: KindUint, ItemSize: 4}, nil
	case U64:
		return Descriptor{ByteOrder: host, Kind: KindUint, ItemSize: 8}, nil
	case C64:
		return Descriptor{ByteOrder: host, Kind: KindComplex, ItemSize: 8}, nil
	case C128:
		return Descriptor{ByteOrder: host, Kind: KindComplex, ItemSize: 16}, nil
	case C160:
		return Descriptor{ByteOrder: host, Kind: KindComplex, ItemSize: 20}, nil
	default:
		return Descriptor{}, fmt.Errorf("dtype: unknown kind %q", name)
	}
}

// ParseDescr parses a .npy descr string ("<f4", "|u1", ">c16", ...) into a
// Descriptor, per spec.md §4.1 step 9.
func ParseDescr(descr string) (Descriptor, error) {
	if len(descr) < 3 {
		return Descriptor{}, fmt.Errorf("dtype: descr %q too short", descr)
	}

	order := ByteOrder(descr[0])
	switch order {
	case LittleEndian, BigEndian, NoEndian:
	default:
		return Descriptor{}, fmt.Errorf("dtype: invalid byte order %q in descr %q", descr[0], descr)
	}

	kind := Kind(descr[1])
	switch kind {
	case KindFloat, KindInt, KindUint, KindComplex:
	default:
		return Descriptor{}, fmt.Errorf("dtype: invalid kind %q in descr %q", descr[1], descr)
	}

	digits := descr[2:]
	size := 0
	for _, r := range digits {
		if r < '0' || r > '9' {
			return Descriptor{}, fmt.Errorf("dtype: invalid size digits %q in descr %q", digits, descr)
		}
		size = size*10 + int(r-'0')
	}
	if size < 1 {
		return Descriptor{}, fmt.Errorf("dtype: non-positive item size in descr %q", descr)
	}

	return Descriptor{ByteOrder: order, Kind: kind, ItemSize: size}, nil
}
