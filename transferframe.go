package tmframe

// TransferFrame is a composition of (PrimaryHeader, SecondaryHeader,
// DataField, OCF, FECF) per spec §3/§4.3. SecondaryHeader and OCF are
// null fields (zero octets) in this core's Non-goals.
type TransferFrame struct {
	Primary         *PrimaryHeaderPDU
	SecondaryHeader NullPDU
	DataField       *ArrayPDU
	OCF             NullPDU
	FECF            *FrameErrorControlField
}

// NewTransferFrame allocates a TransferFrame whose Data Field holds
// dataFieldSize octets.
func NewTransferFrame(dataFieldSize int) *TransferFrame {
	return &TransferFrame{
		Primary:   NewPrimaryHeaderPDU(),
		DataField: NewArrayPDU(dataFieldSize),
		FECF:      &FrameErrorControlField{},
	}
}

// Size returns the total serialized frame length F in octets.
func (f *TransferFrame) Size() int {
	return f.Primary.Size() + f.SecondaryHeader.Size() + f.DataField.Size() + f.OCF.Size() + f.FECF.Size()
}

// SetControlInfo seeds the primary-header fields that are stable for the
// frame: mission phase parameters plus this frame's TransferData (spec
// §4.3). The MC frame count is taken from td; the Master Channel stage
// later overwrites it with its own count via SetMasterChannelCount.
func (f *TransferFrame) SetControlInfo(params MissionPhaseParameters, td TransferData) {
	f.Primary.Set(PrimaryHeaderControlInfo{
		TransferFrameVersion:     params.TransferFrameVersion,
		SpacecraftId:             params.SpacecraftId,
		VirtualChannelId:         td.VirtualChannelId,
		OperationalControlFlag:   params.HasOperationalControlFlag,
		MasterChannelFrameCount:  td.MasterChannelFrameCount,
		VirtualChannelFrameCount: td.VirtualChannelFrameCount,
		DataFieldStatus: DataFieldStatus{
			HasSecondaryHeader: params.HasSecondaryHeader,
			IsSyncFlagEnabled:  params.IsSyncFlagEnabled,
			IsPacketOrdered:    false,
			SegmentLengthId:    0b11,
			FirstHeaderPointer: td.DataFieldDesc.FirstHeaderPointer(),
		},
	})
}

// SetDataField copies data into the frame's Data Field. len(data) must
// equal the configured data-field size (spec §4.3).
func (f *TransferFrame) SetDataField(data []byte) error {
	return f.DataField.Set(data)
}

// Serialize writes Primary Header, (null Secondary Header,) Data Field,
// (null OCF,) and FECF in order, returning exactly Size() octets (spec
// §4.3). The FECF is (re)computed over every preceding octet — this is
// the only place a frame's CRC is produced, so every call reflects the
// frame's current in-memory state (resolves spec §9's Open Question in
// favor of recomputation, per DESIGN.md).
func (f *TransferFrame) Serialize() ([]byte, error) {
	buf := make([]byte, 0, f.Size())
	var err error
	if buf, err = f.Primary.Insert(buf); err != nil {
		return nil, err
	}
	if buf, err = f.SecondaryHeader.Insert(buf); err != nil {
		return nil, err
	}
	if buf, err = f.DataField.Insert(buf); err != nil {
		return nil, err
	}
	if buf, err = f.OCF.Insert(buf); err != nil {
		return nil, err
	}
	if buf, err = f.FECF.Insert(buf, buf); err != nil {
		return nil, err
	}
	if len(buf) != f.Size() {
		return nil, ErrSerialization("serialized frame length mismatch")
	}
	return buf, nil
}

// Deserialize is the inverse of Serialize: it validates the buffer length,
// unpacks every field, and checks the FECF against the preceding octets,
// failing with CrcMismatch on a checksum failure (spec §4.3).
func (f *TransferFrame) Deserialize(buf []byte) error {
	if len(buf) != f.Size() {
		return ErrSizeMismatch("transferFrame", f.Size(), len(buf))
	}
	prefix := buf[:f.Size()-fecfSerializedSize]

	rest := buf
	var err error
	if rest, err = f.Primary.Extract(rest); err != nil {
		return err
	}
	if rest, err = f.SecondaryHeader.Extract(rest); err != nil {
		return err
	}
	if rest, err = f.DataField.Extract(rest); err != nil {
		return err
	}
	if rest, err = f.OCF.Extract(rest); err != nil {
		return err
	}
	if _, err = f.FECF.Extract(rest); err != nil {
		return err
	}
	return f.FECF.Verify(prefix)
}
