package tmframe

// Services implement the spec §4.4–§4.5 generation step of the
// receive→generate→enqueue template: they turn a caller-supplied SDU
// (Service Data Unit) into a populated TransferFrame. Grounded on the
// original's VirtualChannelGenerationProtocol specializations
// (VCAService/VCFService in Services.hpp), reworked as plain funcs rather
// than a template hierarchy since Go has no equivalent specialization
// mechanism for this shape.

// VCAGenerationService is the stateless ("A", Async) transformer: it
// copies an already-framed SDU straight into the Data Field with no
// bookkeeping beyond the primary header stamp (spec §4.4).
type VCAGenerationService struct {
	params MissionPhaseParameters
}

func NewVCAGenerationService(params MissionPhaseParameters) *VCAGenerationService {
	return &VCAGenerationService{params: params}
}

// Generate builds a TransferFrame from sdu, which must be exactly
// params.DataFieldSize octets (spec §4.4 VCA_SDU contract).
func (s *VCAGenerationService) Generate(sdu []byte, vcid uint8, vcCount uint8) (*TransferFrame, error) {
	if len(sdu) != s.params.DataFieldSize {
		return nil, ErrSizeMismatch("vcaSdu", s.params.DataFieldSize, len(sdu))
	}
	tf := NewTransferFrame(s.params.DataFieldSize)
	tf.SetControlInfo(s.params, TransferData{
		VirtualChannelId:         vcid,
		VirtualChannelFrameCount: vcCount,
		DataFieldDesc:            DataFieldDesc{IsOnlyIdleData: len(sdu) == 0},
	})
	if err := tf.SetDataField(sdu); err != nil {
		return nil, err
	}
	return tf, nil
}

// VCFGenerationService is the stateful ("F", Framing) transformer: it
// packs one or more Packets into a Data Field, stamping the First Header
// Pointer to the offset of the first packet that starts within this
// frame, or to the idle/extend sentinels when no packet starts here
// (spec §4.4, CCSDS 132.0-B-3 4.1.2.7.6).
type VCFGenerationService struct {
	params  MissionPhaseParameters
	pending []byte // packet octets carried over from the previous frame
}

func NewVCFGenerationService(params MissionPhaseParameters) *VCFGenerationService {
	return &VCFGenerationService{params: params}
}

// Generate fills one Data Field from packets (whole Packets queued to be
// packed), consuming as many whole/partial packets as fit and carrying
// any remainder forward in s.pending for the next call. It returns the
// built frame plus the count of entries in packets it fully or partially
// consumed, so the caller can dequeue accordingly.
func (s *VCFGenerationService) Generate(packets [][]byte, vcid uint8, vcCount uint8) (*TransferFrame, int, error) {
	size := s.params.DataFieldSize
	data := make([]byte, 0, size)
	desc := DataFieldDesc{}
	firstNewPacketSeen := false

	if len(s.pending) > 0 {
		desc.IsFieldDataExtendedPacket = true
		n := copy(data[:size], s.pending)
		data = data[:n]
		s.pending = s.pending[n:]
	}

	consumed := 0
	for len(data) < size && consumed < len(packets) {
		p := packets[consumed]
		if !firstNewPacketSeen {
			desc.PacketOffset = uint16(len(data))
			desc.IsFieldDataExtendedPacket = false // a new packet starts in this frame
			firstNewPacketSeen = true
		}
		room := size - len(data)
		if len(p) <= room {
			data = append(data, p...)
			consumed++
			continue
		}
		data = append(data, p[:room]...)
		s.pending = append([]byte(nil), p[room:]...)
		consumed++
		break
	}

	if len(data) == 0 {
		desc.IsOnlyIdleData = true
	}
	for len(data) < size {
		data = append(data, 0) // idle fill pattern, spec §4.4
	}

	tf := NewTransferFrame(size)
	tf.SetControlInfo(s.params, TransferData{
		VirtualChannelId:         vcid,
		VirtualChannelFrameCount: vcCount,
		DataFieldDesc:            desc,
	})
	if err := tf.SetDataField(data); err != nil {
		return nil, 0, err
	}
	return tf, consumed, nil
}

// PendingBytes reports how many octets of a partially-packed packet are
// carried over to the next Generate call.
func (s *VCFGenerationService) PendingBytes() int { return len(s.pending) }
