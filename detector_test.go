package tmframe

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFrameDetector_SingleFrame(t *testing.T) {
	sync := DefaultAttachedSyncMarker
	d := NewFrameDetector(sync, 4)
	stream := append(append([]byte{0xDE, 0xAD}, sync[:]...), []byte{1, 2, 3, 4}...)

	frames := d.Feed(stream)
	require.Len(t, frames, 1)
	require.Equal(t, []byte{1, 2, 3, 4}, frames[0])
}

func TestFrameDetector_MultipleFramesBackToBack(t *testing.T) {
	sync := DefaultAttachedSyncMarker
	d := NewFrameDetector(sync, 2)
	var stream []byte
	stream = append(stream, sync[:]...)
	stream = append(stream, 1, 2)
	stream = append(stream, sync[:]...)
	stream = append(stream, 3, 4)

	frames := d.Feed(stream)
	require.Len(t, frames, 2)
	require.Equal(t, []byte{1, 2}, frames[0])
	require.Equal(t, []byte{3, 4}, frames[1])
}

func TestFrameDetector_SyncMarkerSplitAcrossChunks(t *testing.T) {
	sync := DefaultAttachedSyncMarker
	d := NewFrameDetector(sync, 2)

	require.Empty(t, d.Feed(sync[:2]))
	frames := d.Feed(append(append([]byte{}, sync[2:]...), 9, 8))
	require.Len(t, frames, 1)
	require.Equal(t, []byte{9, 8}, frames[0])
}

func TestFrameDetector_FramePayloadSplitAcrossChunks(t *testing.T) {
	sync := DefaultAttachedSyncMarker
	d := NewFrameDetector(sync, 4)

	require.Empty(t, d.Feed(append(append([]byte{}, sync[:]...), 1, 2)))
	frames := d.Feed([]byte{3, 4})
	require.Len(t, frames, 1)
	require.Equal(t, []byte{1, 2, 3, 4}, frames[0])
}

func TestFrameDetector_ResetDiscardsPartialState(t *testing.T) {
	sync := DefaultAttachedSyncMarker
	d := NewFrameDetector(sync, 4)
	d.Feed(append(append([]byte{}, sync[:]...), 1, 2))
	d.Reset()
	require.Empty(t, d.Feed([]byte{3, 4}))
}
