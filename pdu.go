package tmframe

import "encoding/binary"

// ProtocolDataUnit is the common interface satisfied by the Primary
// Header, Data Field and null fields of a Transfer Frame (the FECF does
// not satisfy it: its Insert also takes the octets it checksums) (spec
// §4.1): a compile-time-known serialized size S, a
// value type, and insert/extract operations over a growing/shrinking
// byte cursor. A failing Extract must leave the PDU's prior value
// unchanged (strong exception safety in the value sense).
type ProtocolDataUnit interface {
	// Size returns the number of octets this PDU serializes to.
	Size() int
	// Insert appends the PDU's current value to buf, returning the
	// extended slice.
	Insert(buf []byte) ([]byte, error)
	// Extract consumes Size() octets from the front of buf, returning
	// the remainder.
	Extract(buf []byte) ([]byte, error)
}

// ScalarPDU is a big-endian integer field of width Size octets.
// Grounded on ProtocolDataUnit<FieldSize, FieldValueType>'s scalar
// specialization, which defers to the platform serializer's big-endian
// integer codec the same way ScalarPDU defers to encoding/binary here.
type ScalarPDU struct {
	value uint64
	width int
}

// NewScalarPDU constructs a ScalarPDU of the given octet width (1, 2, 4
// or 8) with an initial value of zero.
func NewScalarPDU(width int) *ScalarPDU {
	return &ScalarPDU{width: width}
}

func (p *ScalarPDU) Size() int { return p.width }

// Get returns the PDU's current value.
func (p *ScalarPDU) Get() uint64 { return p.value }

// Set replaces the PDU's current value.
func (p *ScalarPDU) Set(val uint64) { p.value = val }

func (p *ScalarPDU) Insert(buf []byte) ([]byte, error) {
	out := make([]byte, p.width)
	switch p.width {
	case 1:
		out[0] = byte(p.value)
	case 2:
		binary.BigEndian.PutUint16(out, uint16(p.value))
	case 4:
		binary.BigEndian.PutUint32(out, uint32(p.value))
	case 8:
		binary.BigEndian.PutUint64(out, p.value)
	default:
		return buf, ErrSerialization("unsupported scalar width")
	}
	return append(buf, out...), nil
}

func (p *ScalarPDU) Extract(buf []byte) ([]byte, error) {
	if len(buf) < p.width {
		return buf, ErrSizeMismatch("scalar", p.width, len(buf))
	}
	var val uint64
	switch p.width {
	case 1:
		val = uint64(buf[0])
	case 2:
		val = uint64(binary.BigEndian.Uint16(buf[:2]))
	case 4:
		val = uint64(binary.BigEndian.Uint32(buf[:4]))
	case 8:
		val = binary.BigEndian.Uint64(buf[:8])
	default:
		return buf, ErrSerialization("unsupported scalar width")
	}
	p.value = val
	return buf[p.width:], nil
}

// ArrayPDU is a fixed-size octet array field, copied verbatim. Partial
// writes are rejected: a length mismatch on Set is a programming error,
// matching the original's FW_ASSERT(val.size() <= m_value.size()).
type ArrayPDU struct {
	value []byte
}

// NewArrayPDU constructs an ArrayPDU holding size zero octets.
func NewArrayPDU(size int) *ArrayPDU {
	return &ArrayPDU{value: make([]byte, size)}
}

func (p *ArrayPDU) Size() int { return len(p.value) }

// Get returns a copy of the PDU's current octets.
func (p *ArrayPDU) Get() []byte {
	out := make([]byte, len(p.value))
	copy(out, p.value)
	return out
}

// Set replaces the PDU's octets. val must have exactly Size() octets.
func (p *ArrayPDU) Set(val []byte) error {
	if len(val) != len(p.value) {
		return ErrSizeMismatch("array", len(p.value), len(val))
	}
	copy(p.value, val)
	return nil
}

func (p *ArrayPDU) Insert(buf []byte) ([]byte, error) {
	return append(buf, p.value...), nil
}

func (p *ArrayPDU) Extract(buf []byte) ([]byte, error) {
	if len(buf) < len(p.value) {
		return buf, ErrSizeMismatch("array", len(p.value), len(buf))
	}
	copy(p.value, buf[:len(p.value)])
	return buf[len(p.value):], nil
}

// NullPDU is a zero-length field (spec §4.1): used for the reserved
// Secondary Header and Operational Control Field, both null in this core
// (spec Non-goals). Insert/Extract are no-ops that always succeed.
type NullPDU struct{}

func (NullPDU) Size() int { return 0 }

func (NullPDU) Insert(buf []byte) ([]byte, error) { return buf, nil }

func (NullPDU) Extract(buf []byte) ([]byte, error) { return buf, nil }
