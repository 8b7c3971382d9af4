package hook

import (
	"errors"
	"sync"

	"github.com/vklens/vklens/internal/objects"
	"github.com/vklens/vklens/internal/record"
)

// InstrumentKind selects what the hook splices in around the selected
// command (spec.md §4.8).
type InstrumentKind int

const (
	InstrumentTimestamp InstrumentKind = iota
	InstrumentPipelineStatistics
	InstrumentReadback
	InstrumentTransformFeedback
)

// State is the hook target's state machine (spec.md §4.8 summary):
// idle -> armed (GUI select) -> capturing (hooked submit in flight) ->
// completed (results pushed) -> armed (next frame, if still selected).
type State int

const (
	StateIdle State = iota
	StateArmed
	StateCapturing
	StateCompleted
)

// ErrCannotHook is reported to the GUI (never as a Vulkan error, per
// spec.md §7's "Hook not applicable") when the selected command sits in
// a render pass that cannot be split at its subpass.
var ErrCannotHook = errors.New("hook: selected command's render pass is not splittable at that subpass")

// ErrUnsupportedInstrument is returned for an InstrumentKind the layer
// cannot yet splice in — currently InstrumentTransformFeedback, which
// needs VK_EXT_transform_feedback entry points internal/vk has not
// resolved.
var ErrUnsupportedInstrument = errors.New("hook: instrumentation kind not supported by this build")

// Hook is one armed/capturing/completed instrumentation request against
// a command record. It is not stored on a PendingSubmission:
// cmd/vklayer's captureHook holds it across one standalone submission of
// the hooked secondary and retires it as soon as that call returns.
type Hook struct {
	mu sync.Mutex

	state  State
	Target Path
	Kind   InstrumentKind

	Pool *objects.QueryPool

	// ReadbackDst/ReadbackSize are set by the caller before BuildSecondary
	// runs an InstrumentReadback hook; ReadbackSrc is resolved during
	// replay from the target's own bound-state snapshot.
	ReadbackSrc  *objects.Buffer
	ReadbackDst  *objects.Buffer
	ReadbackSize uint64

	// enclosingRenderPass and subpass are recorded by Arm: the render-pass
	// section enclosing the target and the target's subpass index in it.
	enclosingRenderPass *record.Command
	subpass             int
}

// State returns the hook's current state.
func (h *Hook) State() State {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

func (h *Hook) setState(s State) {
	h.mu.Lock()
	h.state = s
	h.mu.Unlock()
}

// Arm selects target for instrumentation of the given kind, refusing
// with ErrCannotHook if target sits in a render pass that is not
// splittable at its subpass (spec.md §4.6/§4.8).
func Arm(target *record.Command, kind InstrumentKind) (*Hook, error) {
	if kind == InstrumentTransformFeedback {
		return nil, ErrUnsupportedInstrument
	}

	h := &Hook{state: StateArmed, Target: PathOf(target), Kind: kind}

	rp, subpass, ok := enclosingSubpass(target)
	if !ok {
		return h, nil
	}

	data, _ := rp.Data.(*record.BeginRenderPassData)
	if data == nil || data.RenderPass == nil || data.RenderPass.Data == nil {
		return h, nil
	}
	if !data.RenderPass.Data.Splittable(subpass) {
		return nil, ErrCannotHook
	}

	h.enclosingRenderPass = rp
	h.subpass = subpass
	return h, nil
}

// enclosingSubpass finds the nearest KindBeginRenderPass ancestor of
// target and the subpass index target falls in, counted by the
// KindNextSubpass leaves that precede it among that render pass's
// direct children (spec.md §9's resolved Open Question: subpasses are
// first-class leaf children of the render-pass section, not a second
// level of nesting).
func enclosingSubpass(target *record.Command) (rp *record.Command, subpass int, found bool) {
	child := target
	p := target.Parent
	for p != nil {
		if p.Kind == record.KindBeginRenderPass {
			rp = p
			break
		}
		child, p = p, p.Parent
	}
	if rp == nil {
		return nil, 0, false
	}
	for _, c := range rp.Children {
		if c == child {
			break
		}
		if c.Kind == record.KindNextSubpass {
			subpass++
		}
	}
	return rp, subpass, true
}
