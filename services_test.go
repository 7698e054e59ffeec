package tmframe

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVCAGenerationService_Generate(t *testing.T) {
	params := DefaultMissionPhaseParameters(5)
	svc := NewVCAGenerationService(params)
	sdu := bytes.Repeat([]byte{0x42}, params.DataFieldSize)

	tf, err := svc.Generate(sdu, 2, 9)
	require.NoError(t, err)
	require.Equal(t, uint8(2), tf.Primary.Get().VirtualChannelId)
	require.Equal(t, uint8(9), tf.Primary.Get().VirtualChannelFrameCount)
	require.Equal(t, sdu, tf.DataField.Get())
}

func TestVCAGenerationService_Generate_SizeMismatch(t *testing.T) {
	params := DefaultMissionPhaseParameters(5)
	svc := NewVCAGenerationService(params)
	_, err := svc.Generate([]byte{1, 2, 3}, 0, 0)
	require.Error(t, err)
	require.True(t, IsErrSizeMismatch(err))
}

func TestVCFGenerationService_SinglePacketFitsWithRoom(t *testing.T) {
	params := DefaultMissionPhaseParameters(5)
	params.DataFieldSize = 10
	svc := NewVCFGenerationService(params)

	packet := []byte{1, 2, 3}
	tf, consumed, err := svc.Generate([][]byte{packet}, 0, 0)
	require.NoError(t, err)
	require.Equal(t, 1, consumed)
	require.Equal(t, uint16(0), tf.Primary.Get().DataFieldStatus.FirstHeaderPointer)
	require.Equal(t, []byte{1, 2, 3, 0, 0, 0, 0, 0, 0, 0}, tf.DataField.Get())
	require.Equal(t, 0, svc.PendingBytes())
}

func TestVCFGenerationService_PacketSpansFrames(t *testing.T) {
	params := DefaultMissionPhaseParameters(5)
	params.DataFieldSize = 4
	svc := NewVCFGenerationService(params)

	packet := []byte{1, 2, 3, 4, 5, 6}
	tf1, consumed, err := svc.Generate([][]byte{packet}, 0, 0)
	require.NoError(t, err)
	require.Equal(t, 1, consumed)
	require.Equal(t, []byte{1, 2, 3, 4}, tf1.DataField.Get())
	require.Equal(t, 2, svc.PendingBytes())

	tf2, consumed2, err := svc.Generate(nil, 0, 1)
	require.NoError(t, err)
	require.Equal(t, 0, consumed2)
	require.True(t, tf2.Primary.Get().DataFieldStatus.FirstHeaderPointer == FirstHeaderPointerExtend)
	require.Equal(t, []byte{5, 6, 0, 0}, tf2.DataField.Get())
	require.Equal(t, 0, svc.PendingBytes())
}

func TestVCFGenerationService_NoPacketsYieldsIdle(t *testing.T) {
	params := DefaultMissionPhaseParameters(5)
	params.DataFieldSize = 4
	svc := NewVCFGenerationService(params)

	tf, consumed, err := svc.Generate(nil, 0, 0)
	require.NoError(t, err)
	require.Equal(t, 0, consumed)
	require.True(t, tf.Primary.Get().DataFieldStatus.FirstHeaderPointer == FirstHeaderPointerIdle)
}
