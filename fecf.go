package tmframe

import "github.com/sigurn/crc16"

// fecfTable is the CRC-16-CCITT table used by the Frame Error Control
// Field: polynomial 0x1021, initial value 0xFFFF, no input/output
// reflection, no final XOR (spec §3, §4.2) — exactly crc16.CCITT_FALSE.
var fecfTable = crc16.MakeTable(crc16.CCITT_FALSE)

const fecfSerializedSize = 2

// FrameErrorControlField is the trailing 2-octet CRC-16-CCITT field of a
// Transfer Frame. Grounded on FrameErrorControlField in the original
// (ProtocolDataUnits.hpp), which computes over [start, cursor) and writes
// a big-endian 16-bit result.
type FrameErrorControlField struct {
	value uint16
}

func (f *FrameErrorControlField) Size() int { return fecfSerializedSize }

// Get returns the PDU's current (possibly stale) CRC value.
func (f *FrameErrorControlField) Get() uint16 { return f.value }

// Set replaces the PDU's current CRC value directly, bypassing
// computation — used when deserializing a frame whose CRC is being
// checked rather than recomputed.
func (f *FrameErrorControlField) Set(val uint16) { f.value = val }

// Insert computes the CRC over frame[0:len(frame)] (the octets preceding
// the FECF slot, i.e. [start, cursor) in spec §4.2's terms) and appends
// the big-endian result to buf. It does not check len(frame) and always
// succeeds; a frame whose total length comes out wrong is rejected by
// TransferFrame.Serialize afterwards.
func (f *FrameErrorControlField) Insert(buf []byte, frame []byte) ([]byte, error) {
	f.value = crc16.Checksum(frame, fecfTable)
	return append(buf, byte(f.value>>8), byte(f.value)), nil
}

// Extract consumes the 2-octet CRC from the front of buf without
// validating it; use Verify to check against a computed value.
func (f *FrameErrorControlField) Extract(buf []byte) ([]byte, error) {
	if len(buf) < fecfSerializedSize {
		return buf, ErrSizeMismatch("fecf", fecfSerializedSize, len(buf))
	}
	f.value = uint16(buf[0])<<8 | uint16(buf[1])
	return buf[fecfSerializedSize:], nil
}

// Verify reports whether f's current value matches the CRC computed over
// frame, returning ErrCrcMismatch on failure.
func (f *FrameErrorControlField) Verify(frame []byte) error {
	computed := crc16.Checksum(frame, fecfTable)
	if computed != f.value {
		return ErrCrcMismatch(f.value, computed)
	}
	return nil
}
