package tmframe

// PrimaryHeaderControlInfo carries every field of a TM Transfer Frame
// Primary Header (CCSDS 132.0-B-3 4.1.2, spec §3). It is the Go analogue
// of the original's packed bit-field struct (PrimaryHeaderControlInfo_t),
// kept here as a plain struct of widened types; PrimaryHeaderPDU is
// responsible for bit-exact packing, not the struct layout, per Design
// Note 1 (spec §9): the byte order of bit fields in a packed struct is
// not portable and must not be relied on.
type PrimaryHeaderControlInfo struct {
	TransferFrameVersion     uint8 // 2 bits, constant for mission phase
	SpacecraftId             uint16
	VirtualChannelId         uint8
	OperationalControlFlag   bool
	MasterChannelFrameCount  uint8
	VirtualChannelFrameCount uint8
	DataFieldStatus          DataFieldStatus
}

// DataFieldStatus is the 16-bit Data Field Status subfield of the Primary
// Header (CCSDS 132.0-B-3 4.1.2.7).
type DataFieldStatus struct {
	HasSecondaryHeader  bool   // constant for mission phase
	IsSyncFlagEnabled   bool   // constant for mission phase
	IsPacketOrdered     bool   // 1 bit, reserved, recommended 0
	SegmentLengthId     uint8  // 2 bits
	FirstHeaderPointer  uint16 // 11 bits
}

// Sentinel First Header Pointer values (CCSDS 132.0-B-3 4.1.2.7.6),
// carried forward from the original's PrimaryHeader::IDLE_TYPE /
// EXTEND_PACKET_TYPE constants (SPEC_FULL §9 supplement).
const (
	FirstHeaderPointerIdle   uint16 = 0b11111111110
	FirstHeaderPointerExtend uint16 = 0b11111111111
)

const primaryHeaderSerializedSize = 6

// dataFieldStatusBitWidths mirrors the bit-field table in spec §3 for the
// Data Field Status word.
const (
	dfsSegLenOffset   = 11
	dfsPktOrderOffset = 13
	dfsSyncOffset     = 14
	dfsSecHdrOffset   = 15
	dfsFirstHdrMask   = 0x7FF
	dfsSegLenMask     = 0x3
)

// PrimaryHeaderPDU is the bit-packer for the six-octet Primary Header.
// Every field is written with an explicit bit writer rather than memcpy
// of a packed record, per Design Note 1 (spec §9).
type PrimaryHeaderPDU struct {
	value PrimaryHeaderControlInfo
}

// NewPrimaryHeaderPDU constructs a PrimaryHeaderPDU with a zero value.
func NewPrimaryHeaderPDU() *PrimaryHeaderPDU {
	return &PrimaryHeaderPDU{}
}

func (p *PrimaryHeaderPDU) Size() int { return primaryHeaderSerializedSize }

// Get returns the PDU's current control info.
func (p *PrimaryHeaderPDU) Get() PrimaryHeaderControlInfo { return p.value }

// Set replaces the PDU's current control info.
func (p *PrimaryHeaderPDU) Set(val PrimaryHeaderControlInfo) { p.value = val }

// SetMasterChannelCount stamps the Master Channel Frame Count octet,
// matching PrimaryHeader::setMasterChannelCount in the original.
func (p *PrimaryHeaderPDU) SetMasterChannelCount(count uint8) {
	p.value.MasterChannelFrameCount = count
}

// SetVirtualChannelCount stamps the Virtual Channel Frame Count octet.
func (p *PrimaryHeaderPDU) SetVirtualChannelCount(count uint8) {
	p.value.VirtualChannelFrameCount = count
}

func (p *PrimaryHeaderPDU) Insert(buf []byte) ([]byte, error) {
	v := p.value
	gvcid := GVCID{MCID: MCID{TFVN: v.TransferFrameVersion, SCID: v.SpacecraftId}, VCID: v.VirtualChannelId}
	word0, err := GVCIDToVal(gvcid)
	if err != nil {
		return buf, ErrSerialization(err.Error())
	}
	if v.OperationalControlFlag {
		word0 |= 1
	}

	var word1 uint16
	if v.DataFieldStatus.HasSecondaryHeader {
		word1 |= 1 << dfsSecHdrOffset
	}
	if v.DataFieldStatus.IsSyncFlagEnabled {
		word1 |= 1 << dfsSyncOffset
	}
	if v.DataFieldStatus.IsPacketOrdered {
		word1 |= 1 << dfsPktOrderOffset
	}
	word1 |= uint16(v.DataFieldStatus.SegmentLengthId&dfsSegLenMask) << dfsSegLenOffset
	word1 |= v.DataFieldStatus.FirstHeaderPointer & dfsFirstHdrMask

	out := [6]byte{
		byte(word0 >> 8), byte(word0),
		v.MasterChannelFrameCount,
		v.VirtualChannelFrameCount,
		byte(word1 >> 8), byte(word1),
	}
	return append(buf, out[:]...), nil
}

func (p *PrimaryHeaderPDU) Extract(buf []byte) ([]byte, error) {
	if len(buf) < primaryHeaderSerializedSize {
		return buf, ErrSizeMismatch("primaryHeader", primaryHeaderSerializedSize, len(buf))
	}
	word0 := uint16(buf[0])<<8 | uint16(buf[1])
	mcCount := buf[2]
	vcCount := buf[3]
	word1 := uint16(buf[4])<<8 | uint16(buf[5])

	gvcid := GVCIDFromVal(word0)
	p.value = PrimaryHeaderControlInfo{
		TransferFrameVersion:     gvcid.MCID.TFVN,
		SpacecraftId:             gvcid.MCID.SCID,
		VirtualChannelId:         gvcid.VCID,
		OperationalControlFlag:   word0&0x1 != 0,
		MasterChannelFrameCount:  mcCount,
		VirtualChannelFrameCount: vcCount,
		DataFieldStatus: DataFieldStatus{
			HasSecondaryHeader: word1&(1<<dfsSecHdrOffset) != 0,
			IsSyncFlagEnabled:  word1&(1<<dfsSyncOffset) != 0,
			IsPacketOrdered:    word1&(1<<dfsPktOrderOffset) != 0,
			SegmentLengthId:    uint8((word1 >> dfsSegLenOffset) & dfsSegLenMask),
			FirstHeaderPointer: word1 & dfsFirstHdrMask,
		},
	}
	return buf[primaryHeaderSerializedSize:], nil
}
