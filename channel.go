package tmframe

import (
	"context"
	"sort"
	"sync"
)

// SduSource supplies the next SDU (already-framed VCA_SDU octets) for a
// Virtual Channel's generation step. A nil, nil return means "nothing
// ready this cycle" — the source must not block the channel goroutine.
type SduSource func() ([]byte, error)

// PacketSource supplies queued Packets for a VCF Virtual Channel's
// generation step. Like SduSource, a nil slice means nothing ready.
type PacketSource func() ([][]byte, error)

// VirtualChannel is the lowest tier of the channel hierarchy (spec
// §4.6): it receives an SDU or packets, generates a Transfer Frame
// stamped with this VC's own frame count, and enqueues the frame for its
// Master Channel. Grounded on the original's VirtualChannelBase /
// VirtualChannel<T> template (Channels.hpp), reworked around field
// composition instead of CRTP since Go has no class template mechanism.
type VirtualChannel struct {
	mu     sync.Mutex
	vcid   uint8
	params MissionPhaseParameters
	vcfc   uint8 // Virtual Channel Frame Count, modulo-256 (spec §4.7)

	vcas *VCAGenerationService
	vcf  *VCFGenerationService

	sduSource PacketOrSduSource
	out       *FrameQueue
}

// PacketOrSduSource lets a VirtualChannel be constructed against either
// generation discipline without two near-identical constructors.
type PacketOrSduSource struct {
	Sdu     SduSource
	Packets PacketSource
}

// NewVCAVirtualChannel constructs a Virtual Channel using the stateless
// VCA generation service.
func NewVCAVirtualChannel(vcid uint8, params MissionPhaseParameters, source SduSource, out *FrameQueue) *VirtualChannel {
	return &VirtualChannel{
		vcid:      vcid,
		params:    params,
		vcas:      NewVCAGenerationService(params),
		sduSource: PacketOrSduSource{Sdu: source},
		out:       out,
	}
}

// NewVCFVirtualChannel constructs a Virtual Channel using the stateful
// VCF generation service (packet multiplexing with continuation).
func NewVCFVirtualChannel(vcid uint8, params MissionPhaseParameters, source PacketSource, out *FrameQueue) *VirtualChannel {
	return &VirtualChannel{
		vcid:      vcid,
		params:    params,
		vcf:       NewVCFGenerationService(params),
		sduSource: PacketOrSduSource{Packets: source},
		out:       out,
	}
}

// VCID returns this Virtual Channel's identifier.
func (vc *VirtualChannel) VCID() uint8 { return vc.vcid }

// Cycle performs one receive→generate→enqueue pass (spec §4.6). It
// returns (false, nil) when the source had nothing ready, which callers
// must treat as "this VC contributes nothing this MC cycle" rather than
// an error.
func (vc *VirtualChannel) Cycle(ctx context.Context) (bool, error) {
	vc.mu.Lock()
	defer vc.mu.Unlock()

	var frame *TransferFrame
	switch {
	case vc.sduSource.Sdu != nil:
		sdu, err := vc.sduSource.Sdu()
		if err != nil {
			return false, err
		}
		if sdu == nil {
			return false, nil
		}
		frame, err = vc.vcas.Generate(sdu, vc.vcid, vc.vcfc)
		if err != nil {
			return false, err
		}
	case vc.sduSource.Packets != nil:
		packets, err := vc.sduSource.Packets()
		if err != nil {
			return false, err
		}
		if len(packets) == 0 && vc.vcf.PendingBytes() == 0 {
			return false, nil
		}
		frame, _, err = vc.vcf.Generate(packets, vc.vcid, vc.vcfc)
		if err != nil {
			return false, err
		}
	default:
		return false, ErrInvariantViolation("virtual channel has no configured source")
	}

	if err := vc.out.Send(ctx, frame, int(vc.vcid)); err != nil {
		return false, err
	}
	vc.vcfc++ // modulo-256 wrap is automatic (spec §4.7)
	return true, nil
}

// MasterChannel is the middle tier (spec §4.7): each cycle it draws
// exactly one frame from every child Virtual Channel, in ascending VCID
// order, multiplexing them onto its own output queue and stamping each
// with the shared Master Channel Frame Count. A cycle where any child
// has nothing ready aborts as a whole: frames already dequeued from
// other children this cycle are re-queued to the front of their
// respective VC output queues so no data is lost and the MC Frame Count
// is left unchanged (spec §9 Open Question decision, see DESIGN.md).
type MasterChannel struct {
	mu       sync.Mutex
	mcid     MCID
	params   MissionPhaseParameters
	mcfc     uint8
	children []*masterChannelChild
	out      *FrameQueue
}

type masterChannelChild struct {
	vcid uint8
	in   *FrameQueue // this VC's output queue, read by the MC
}

// NewMasterChannel constructs a Master Channel with no children; add
// them with AddVirtualChannel before starting the pipeline.
func NewMasterChannel(mcid MCID, params MissionPhaseParameters, out *FrameQueue) *MasterChannel {
	return &MasterChannel{mcid: mcid, params: params, out: out}
}

// AddVirtualChannel registers a child VC's output queue, keyed by vcid.
// Children are iterated in ascending vcid order during a cycle (spec
// §4.7), regardless of registration order.
func (mc *MasterChannel) AddVirtualChannel(vcid uint8, in *FrameQueue) {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.children = append(mc.children, &masterChannelChild{vcid: vcid, in: in})
	sort.Slice(mc.children, func(i, j int) bool { return mc.children[i].vcid < mc.children[j].vcid })
}

// Cycle performs one all-or-nothing multiplex pass across every child
// (spec §4.7, §4.9). It returns (false, nil) if any child had nothing
// ready, having rolled back every frame it had already pulled.
func (mc *MasterChannel) Cycle(ctx context.Context) (bool, error) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	pulled := make([]*TransferFrame, 0, len(mc.children))
	for _, child := range mc.children {
		frame, err := child.in.TryReceive()
		if err != nil {
			if IsErrQueueEmpty(err) {
				_lg.WithField("vcid", child.vcid).Debug("master channel cycle aborted: child queue empty")
				mc.rollback(pulled)
				return false, nil
			}
			mc.rollback(pulled)
			return false, err
		}
		pulled = append(pulled, frame)
	}

	for i, child := range mc.children {
		frame := pulled[i]
		frame.Primary.SetMasterChannelCount(mc.mcfc)
		if err := mc.out.Send(ctx, frame, int(child.vcid)); err != nil {
			// frames not yet sent this loop (including this one) go back
			mc.rollback(pulled[i:])
			return false, err
		}
	}
	mc.mcfc++
	return true, nil
}

// rollbackPriorityBase is a priority low enough to sort ahead of any
// frame a VC generates in normal operation (see FrameQueue.RequeueFront).
const rollbackPriorityBase = -1 << 30

// rollback re-queues frames to the front of their owning VC's output
// queue so a subsequent cycle sees them first and in their original
// relative pull order.
func (mc *MasterChannel) rollback(frames []*TransferFrame) {
	if len(frames) > 0 {
		_lg.WithField("count", len(frames)).Debug("re-queuing frames pulled earlier this master channel cycle")
	}
	for i, frame := range frames {
		vcid := frame.Primary.Get().VirtualChannelId
		for _, child := range mc.children {
			if child.vcid == vcid {
				child.in.RequeueFront(frame, rollbackPriorityBase+i)
				break
			}
		}
	}
}

// PhysicalChannel is the top tier (spec §4.8): it multiplexes one or
// more Master Channels' output, recomputes each frame's FECF (the only
// place a frame is mutated after leaving its Master Channel), and hands
// the finished octet stream to sink. Like MasterChannel, a cycle is
// all-or-nothing across its children.
type PhysicalChannel struct {
	mu       sync.Mutex
	children []*physicalChannelChild
	sink     func([]byte) error
}

type physicalChannelChild struct {
	mcid MCID
	in   *FrameQueue
}

// NewPhysicalChannel constructs a Physical Channel that writes finished
// frames to sink.
func NewPhysicalChannel(sink func([]byte) error) *PhysicalChannel {
	return &PhysicalChannel{sink: sink}
}

// AddMasterChannel registers a child Master Channel's output queue.
func (pc *PhysicalChannel) AddMasterChannel(mcid MCID, in *FrameQueue) {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	pc.children = append(pc.children, &physicalChannelChild{mcid: mcid, in: in})
}

// Cycle performs one all-or-nothing drain-and-emit pass across every
// child Master Channel.
func (pc *PhysicalChannel) Cycle(ctx context.Context) (bool, error) {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	pulled := make([]*TransferFrame, 0, len(pc.children))
	for _, child := range pc.children {
		frame, err := child.in.TryReceive()
		if err != nil {
			if IsErrQueueEmpty(err) {
				pc.rollback(pulled)
				return false, nil
			}
			pc.rollback(pulled)
			return false, err
		}
		pulled = append(pulled, frame)
	}

	for _, frame := range pulled {
		buf, err := frame.Serialize()
		if err != nil {
			return false, err
		}
		if err := pc.sink(buf); err != nil {
			return false, err
		}
	}
	return true, nil
}

func (pc *PhysicalChannel) rollback(frames []*TransferFrame) {
	for i, frame := range frames {
		scid := frame.Primary.Get().SpacecraftId
		tfvn := frame.Primary.Get().TransferFrameVersion
		for _, child := range pc.children {
			if child.mcid.SCID == scid && child.mcid.TFVN == tfvn {
				child.in.RequeueFront(frame, rollbackPriorityBase+i)
				break
			}
		}
	}
}
