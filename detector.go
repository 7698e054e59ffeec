package tmframe

// FrameDetector recovers frame boundaries from an octet stream that
// carries no out-of-band framing (spec §6): it scans for the Attached
// Sync Marker and reads off a fixed-size frame. Frames are returned
// unverified: neither the FECF nor any header field is checked.
// Grounded on the original's
// FprimeTmFrameDetector (FPrimeTMFrame.hpp), reworked around a small
// explicit state machine instead of a byte-at-a-time callback interface.

// DefaultAttachedSyncMarker is the CCSDS-recommended ASM (CCSDS
// 132.0-B-3 Annex C / spec §6): 0x1ACFFC1D.
var DefaultAttachedSyncMarker = [4]byte{0x1A, 0xCF, 0xFC, 0x1D}

type detectorState int

const (
	detectorSeekingSync detectorState = iota
	detectorReadingFrame
)

// FrameDetector locates and extracts fixed-length frames, each preceded
// by an Attached Sync Marker, from an arbitrarily-chunked byte stream.
type FrameDetector struct {
	sync      [4]byte
	frameSize int

	state detectorState
	buf   []byte
}

// NewFrameDetector constructs a detector for frames of frameSize octets
// (the Transfer Frame length F, not including the ASM) preceded by sync.
func NewFrameDetector(sync [4]byte, frameSize int) *FrameDetector {
	return &FrameDetector{sync: sync, frameSize: frameSize}
}

// Feed appends chunk to the detector's internal buffer and returns every
// complete frame (ASM stripped, exactly frameSize octets each) found so
// far, in stream order. Partial data is retained across calls.
func (d *FrameDetector) Feed(chunk []byte) [][]byte {
	d.buf = append(d.buf, chunk...)
	var frames [][]byte

	for {
		switch d.state {
		case detectorSeekingSync:
			idx := d.indexSync()
			if idx < 0 {
				// keep the last len(sync)-1 octets in case the marker
				// straddles this chunk and the next
				if len(d.buf) > len(d.sync)-1 {
					d.buf = d.buf[len(d.buf)-(len(d.sync)-1):]
				}
				return frames
			}
			d.buf = d.buf[idx+len(d.sync):]
			d.state = detectorReadingFrame

		case detectorReadingFrame:
			if len(d.buf) < d.frameSize {
				return frames
			}
			frame := make([]byte, d.frameSize)
			copy(frame, d.buf[:d.frameSize])
			d.buf = d.buf[d.frameSize:]
			d.state = detectorSeekingSync
			frames = append(frames, frame)
		}
	}
}

func (d *FrameDetector) indexSync() int {
	if len(d.buf) < len(d.sync) {
		return -1
	}
	for i := 0; i+len(d.sync) <= len(d.buf); i++ {
		if d.buf[i] == d.sync[0] && d.buf[i+1] == d.sync[1] && d.buf[i+2] == d.sync[2] && d.buf[i+3] == d.sync[3] {
			return i
		}
	}
	return -1
}

// Reset discards any buffered partial state, forcing the next Feed call
// to resynchronize from scratch.
func (d *FrameDetector) Reset() {
	d.state = detectorSeekingSync
	d.buf = nil
}
