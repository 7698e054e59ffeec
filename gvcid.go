package tmframe

// Bit-field widths for the Global Virtual Channel Identifier, per
// CCSDS 132.0-B-3 4.1.2.7 and spec §3. The OCF bit is not part of the
// GVCID itself but must be accounted for when packing/unpacking it into a
// 16-bit word, since it occupies the neighboring low bit on the wire.
const (
	ocfBitFieldSize  = 1
	scidBitFieldSize = 10
	tfvnBitFieldSize = 2
	vcidBitFieldSize = 3

	// MaxTFVN, MaxSCID, MaxVCID are the largest values each field can hold.
	MaxTFVN uint8  = 0x3
	MaxSCID uint16 = 0x3FF
	MaxVCID uint8  = 0x7
)

// Bit offsets within the 16-bit packed GVCID word (spec §3): OCF occupies
// bit 0, VCID bits [3:1], SCID bits [13:4], TFVN bits [15:14].
const (
	vcidOffset = ocfBitFieldSize
	scidOffset = vcidOffset + vcidBitFieldSize
	tfvnOffset = scidOffset + scidBitFieldSize
)

// MCID is the Master Channel Identifier: Transfer Frame Version Number
// concatenated with the Spacecraft Identifier. Equality is componentwise.
type MCID struct {
	TFVN uint8
	SCID uint16
}

// Equal reports whether two MCIDs identify the same master channel.
func (m MCID) Equal(other MCID) bool {
	return m.TFVN == other.TFVN && m.SCID == other.SCID
}

// GVCID is the Global Virtual Channel Identifier: an MCID concatenated
// with a Virtual Channel Identifier.
type GVCID struct {
	MCID MCID
	VCID uint8
}

// Equal reports whether two GVCIDs identify the same virtual channel.
func (g GVCID) Equal(other GVCID) bool {
	return g.MCID.Equal(other.MCID) && g.VCID == other.VCID
}

// Validate checks that every field of g fits within its CCSDS bit width.
// Out-of-range values here are a programming error (spec §3): callers
// should treat a non-nil return as fatal configuration, not a recoverable
// per-frame failure.
func (g GVCID) Validate() error {
	if uint32(g.MCID.TFVN) > uint32(MaxTFVN) {
		return ErrRangeViolation("TFVN", uint32(g.MCID.TFVN), uint32(MaxTFVN))
	}
	if uint32(g.MCID.SCID) > uint32(MaxSCID) {
		return ErrRangeViolation("SCID", uint32(g.MCID.SCID), uint32(MaxSCID))
	}
	if uint32(g.VCID) > uint32(MaxVCID) {
		return ErrRangeViolation("VCID", uint32(g.VCID), uint32(MaxVCID))
	}
	return nil
}

// GVCIDToVal packs g into the high 15 bits (bits 15..1) of a 16-bit word,
// leaving bit 0 for the Operational Control Flag position it neighbors
// on the wire (spec §3). It runs Validate itself and returns its
// RangeViolation error, rather than panicking, for an out-of-range
// component.
func GVCIDToVal(g GVCID) (uint16, error) {
	if err := g.Validate(); err != nil {
		return 0, err
	}
	var val uint16
	val |= uint16(g.MCID.SCID) << scidOffset
	val |= uint16(g.MCID.TFVN) << tfvnOffset
	val |= uint16(g.VCID) << vcidOffset
	return val, nil
}

// GVCIDFromVal unpacks a GVCID from the 16-bit packed word produced by
// GVCIDToVal, ignoring the OCF bit at position 0.
func GVCIDFromVal(val uint16) GVCID {
	scid := (val >> scidOffset) & uint16(MaxSCID)
	tfvn := uint8((val >> tfvnOffset) & uint16(MaxTFVN))
	vcid := uint8((val >> vcidOffset) & uint16(MaxVCID))
	return GVCID{MCID: MCID{TFVN: tfvn, SCID: scid}, VCID: vcid}
}
