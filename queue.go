package tmframe

import (
	"context"

	"github.com/ccsds-go/tmframe/internal/pqueue"
)

// FrameQueue is the bounded, priority-ordered queue sitting between
// adjacent channel pipeline stages (spec §4.9): a Virtual Channel
// enqueues Transfer Frames for its Master Channel, and a Master Channel
// enqueues completed Master Channel frames for its Physical Channel.
// Frames are carried serialized, so a frame that fails its FECF check on
// the way out is reported at Receive time rather than silently swallowed
// at Send time.
type FrameQueue struct {
	q         *pqueue.Queue[[]byte]
	frameSize int
}

// NewFrameQueue constructs a FrameQueue with room for depth frames, each
// frameSize octets once serialized.
func NewFrameQueue(depth, frameSize int) *FrameQueue {
	return &FrameQueue{q: pqueue.New[[]byte](depth), frameSize: frameSize}
}

// Send serializes frame and enqueues it with the given priority (lower
// values drain first), blocking until there is room, the queue closes,
// or ctx ends.
func (fq *FrameQueue) Send(ctx context.Context, frame *TransferFrame, priority int) error {
	buf, err := frame.Serialize()
	if err != nil {
		return err
	}
	return translateQueueErr(fq.q.Send(ctx, buf, priority), "frameQueue")
}

// TrySend is the non-blocking counterpart to Send, failing with
// ErrQueueFull when the queue has no room.
func (fq *FrameQueue) TrySend(frame *TransferFrame, priority int) error {
	buf, err := frame.Serialize()
	if err != nil {
		return err
	}
	return translateQueueErr(fq.q.TrySend(buf, priority), "frameQueue")
}

// Receive blocks for the next queued frame, deserializing and CRC
// checking it before returning. A corrupt frame is returned as an
// ErrCrcMismatch error with a nil frame; the frame is still consumed
// from the queue.
func (fq *FrameQueue) Receive(ctx context.Context) (*TransferFrame, error) {
	buf, err := fq.q.Receive(ctx)
	if err != nil {
		return nil, translateQueueErr(err, "frameQueue")
	}
	return fq.decode(buf)
}

// TryReceive is the non-blocking counterpart to Receive, failing with
// ErrQueueEmpty when nothing is queued.
func (fq *FrameQueue) TryReceive() (*TransferFrame, error) {
	buf, err := fq.q.TryReceive()
	if err != nil {
		return nil, translateQueueErr(err, "frameQueue")
	}
	return fq.decode(buf)
}

func (fq *FrameQueue) decode(buf []byte) (*TransferFrame, error) {
	tf := NewTransferFrame(fq.frameSize - primaryHeaderSerializedSize - fecfSerializedSize)
	if err := tf.Deserialize(buf); err != nil {
		return nil, err
	}
	return tf, nil
}

// RequeueFront restores a frame the caller had already dequeued, placing
// it ahead of priority's normal ordering (spec §4.9 rollback semantics:
// pass a priority lower than any in-band priority this queue otherwise
// sees, so the frame drains before freshly-generated ones).
func (fq *FrameQueue) RequeueFront(frame *TransferFrame, priority int) error {
	buf, err := frame.Serialize()
	if err != nil {
		return err
	}
	return translateQueueErr(fq.q.Requeue(buf, priority), "frameQueue")
}

// Len returns the number of frames currently queued.
func (fq *FrameQueue) Len() int { return fq.q.Len() }

// Close unblocks every pending Send and Receive with ErrQueueClosed.
func (fq *FrameQueue) Close() { fq.q.Close() }

func translateQueueErr(err error, name string) error {
	switch err.(type) {
	case nil:
		return nil
	case pqueue.ErrClosed:
		return ErrQueueClosed(name)
	case pqueue.ErrFull:
		return ErrQueueFull(name)
	case pqueue.ErrEmpty:
		return ErrQueueEmpty(name)
	default:
		return err
	}
}
