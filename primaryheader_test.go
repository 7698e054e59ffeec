package tmframe

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPrimaryHeaderRoundTrip(t *testing.T) {
	p := NewPrimaryHeaderPDU()
	p.Set(PrimaryHeaderControlInfo{
		TransferFrameVersion:     0,
		SpacecraftId:             0x3FF,
		VirtualChannelId:         7,
		OperationalControlFlag:   false,
		MasterChannelFrameCount:  42,
		VirtualChannelFrameCount: 7,
		DataFieldStatus: DataFieldStatus{
			HasSecondaryHeader: false,
			IsSyncFlagEnabled:  true,
			IsPacketOrdered:    false,
			SegmentLengthId:    0b11,
			FirstHeaderPointer: FirstHeaderPointerIdle,
		},
	})

	buf, err := p.Insert(nil)
	require.NoError(t, err)
	require.Len(t, buf, primaryHeaderSerializedSize)

	p2 := NewPrimaryHeaderPDU()
	rest, err := p2.Extract(buf)
	require.NoError(t, err)
	require.Empty(t, rest)
	require.Equal(t, p.Get(), p2.Get())
}

// TestPrimaryHeaderEncoding_Scenario6 validates the bit-exact word0 octets
// against spec §8 scenario 6's GVCID worked example, which is internally
// self-consistent (unlike scenario 1 — see DESIGN.md).
func TestPrimaryHeaderEncoding_Scenario6(t *testing.T) {
	p := NewPrimaryHeaderPDU()
	p.Set(PrimaryHeaderControlInfo{
		TransferFrameVersion: 3,
		SpacecraftId:         0x3FF,
		VirtualChannelId:     7,
	})
	buf, err := p.Insert(nil)
	require.NoError(t, err)
	require.Equal(t, byte(0xFF), buf[0])
	require.Equal(t, byte(0xFE), buf[1])
}

func TestPrimaryHeaderExtract_SizeMismatch(t *testing.T) {
	p := NewPrimaryHeaderPDU()
	_, err := p.Extract([]byte{0x01, 0x02, 0x03})
	require.Error(t, err)
	require.True(t, IsErrSizeMismatch(err))
}

func TestDataFieldDescFirstHeaderPointer(t *testing.T) {
	require.Equal(t, FirstHeaderPointerIdle, DataFieldDesc{IsOnlyIdleData: true}.FirstHeaderPointer())
	require.Equal(t, FirstHeaderPointerExtend, DataFieldDesc{IsFieldDataExtendedPacket: true}.FirstHeaderPointer())
	require.Equal(t, uint16(17), DataFieldDesc{PacketOffset: 17}.FirstHeaderPointer())
}
