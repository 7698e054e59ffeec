package tmframe

// DefaultDataFieldSize is the default Data Field size in octets (spec §3),
// giving a default Transfer Frame size F = 6 + 247 + 2 = 255 octets.
const DefaultDataFieldSize = 247

// DefaultQueueDepth is the default per-channel queue depth (spec §6).
const DefaultQueueDepth = 10

// MissionPhaseParameters holds the parameters that are constant for a
// mission phase (spec §3, §6): CCSDS 132.0-B-3 1.6.1.3. Secondary header
// and Operational Control Field emission are hard-coded false in this
// core (spec Non-goals): the fields exist so configuration is explicit,
// but ValidateManagedParameters rejects any attempt to enable them.
type MissionPhaseParameters struct {
	TransferFrameVersion     uint8
	SpacecraftId             uint16
	HasOperationalControlFlag bool
	HasSecondaryHeader        bool
	IsSyncFlagEnabled         bool
	DataFieldSize             int
}

// DefaultMissionPhaseParameters returns a MissionPhaseParameters with the
// spec's recommended/default values (TFVN=0, 247-octet data field, sync
// flag enabled so VCA_SDUs rather than packets populate the data field).
func DefaultMissionPhaseParameters(scid uint16) MissionPhaseParameters {
	return MissionPhaseParameters{
		TransferFrameVersion: 0,
		SpacecraftId:         scid,
		IsSyncFlagEnabled:    true,
		DataFieldSize:        DefaultDataFieldSize,
	}
}

// ValidateManagedParameters range-checks a MissionPhaseParameters against
// its CCSDS bit-field widths and this core's Non-goals, grounded on the
// original's ManagedParameters validators (SPEC_FULL §9 supplement).
// An out-of-range TFVN or SCID returns RangeViolation; enabling OCF or
// secondary-header emission, or a non-positive DataFieldSize, returns
// InvariantViolation.
func ValidateManagedParameters(p MissionPhaseParameters) error {
	if uint32(p.TransferFrameVersion) > uint32(MaxTFVN) {
		return ErrRangeViolation("TransferFrameVersion", uint32(p.TransferFrameVersion), uint32(MaxTFVN))
	}
	if uint32(p.SpacecraftId) > uint32(MaxSCID) {
		return ErrRangeViolation("SpacecraftId", uint32(p.SpacecraftId), uint32(MaxSCID))
	}
	if p.HasOperationalControlFlag {
		return ErrInvariantViolation("Operational Control Field emission is not supported by this core")
	}
	if p.HasSecondaryHeader {
		return ErrInvariantViolation("secondary header emission is not supported by this core")
	}
	if p.DataFieldSize <= 0 {
		return ErrInvariantViolation("DataFieldSize must be positive")
	}
	return nil
}

// DataFieldDesc describes the contents of a frame's Data Field for the
// purpose of setting the First Header Pointer (spec §3, §4.4).
type DataFieldDesc struct {
	IsOnlyIdleData          bool
	IsFieldDataExtendedPacket bool
	PacketOffset              uint16
}

// TransferData is the per-frame data the Virtual Channel stamps into a
// Transfer Frame's control info (spec §3).
type TransferData struct {
	VirtualChannelId         uint8
	MasterChannelFrameCount  uint8
	VirtualChannelFrameCount uint8
	DataFieldDesc            DataFieldDesc
}

// FirstHeaderPointer derives the 11-bit First Header Pointer value from a
// DataFieldDesc, using the sentinel idle/extend values where applicable
// (spec §4.4, SPEC_FULL §9 supplement).
func (d DataFieldDesc) FirstHeaderPointer() uint16 {
	switch {
	case d.IsOnlyIdleData:
		return FirstHeaderPointerIdle
	case d.IsFieldDataExtendedPacket:
		return FirstHeaderPointerExtend
	default:
		return d.PacketOffset & dfsFirstHdrMask
	}
}
