package hook

import (
	"testing"

	"github.com/vklens/vklens/internal/objects"
	"github.com/vklens/vklens/internal/record"
	"github.com/vklens/vklens/internal/vk"
)

func newTestCommandBuffer() *objects.CommandBuffer {
	cb := &objects.CommandBuffer{}
	record.Begin(cb)
	return cb
}

func splittableRenderPass() *objects.RenderPass {
	return &objects.RenderPass{
		Data: &objects.RenderPassData{
			Subpasses: []vk.SubpassDescription{{}, {}},
		},
	}
}

func unsplittableRenderPass() *objects.RenderPass {
	return &objects.RenderPass{
		Data: &objects.RenderPassData{
			Subpasses: []vk.SubpassDescription{
				{ColorAttachments: []vk.AttachmentReference{{Attachment: 0}}},
				{ResolveAttachments: []vk.AttachmentReference{{Attachment: 0}}},
			},
		},
	}
}

func TestPathOf_LocateRoundTrips(t *testing.T) {
	cb := newTestCommandBuffer()
	record.CmdDraw(cb, 3, 1, 0, 0)
	record.CmdDraw(cb, 3, 1, 0, 0)
	record.CmdDraw(cb, 3, 1, 0, 0)

	root := record.Of(cb).Root()
	target := root.Children[2]

	path := PathOf(target)
	got, err := Locate(root, path)
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}
	if got != target {
		t.Fatalf("Locate returned a different node than PathOf was given")
	}
}

func TestLocate_MissingSiblingReturnsError(t *testing.T) {
	cb := newTestCommandBuffer()
	record.CmdDraw(cb, 3, 1, 0, 0)
	root := record.Of(cb).Root()

	_, err := Locate(root, Path{{Kind: record.KindDraw, RelID: 5}})
	if err == nil {
		t.Fatal("Locate on a rel_id that no longer exists must report an error, not panic")
	}
}

func TestArm_RejectsTransformFeedback(t *testing.T) {
	cb := newTestCommandBuffer()
	record.CmdDraw(cb, 3, 1, 0, 0)
	root := record.Of(cb).Root()

	_, err := Arm(root.Children[0], InstrumentTransformFeedback)
	if err != ErrUnsupportedInstrument {
		t.Fatalf("Arm(InstrumentTransformFeedback) = %v, want ErrUnsupportedInstrument", err)
	}
}

func TestArm_LeafOutsideRenderPassSucceeds(t *testing.T) {
	cb := newTestCommandBuffer()
	record.CmdDraw(cb, 3, 1, 0, 0)
	root := record.Of(cb).Root()

	h, err := Arm(root.Children[0], InstrumentTimestamp)
	if err != nil {
		t.Fatalf("Arm: %v", err)
	}
	if h.State() != StateArmed {
		t.Fatalf("State = %v, want StateArmed", h.State())
	}
}

func TestArm_RefusesUnsplittableRenderPass(t *testing.T) {
	cb := newTestCommandBuffer()
	rp := unsplittableRenderPass()
	fb := &objects.Framebuffer{}
	record.CmdBeginRenderPass(cb, rp, fb)
	record.CmdDraw(cb, 3, 1, 0, 0) // subpass 0, whose color attachment subpass 1 resolves
	record.CmdNextSubpass(cb)
	record.CmdDraw(cb, 3, 1, 0, 0)
	record.CmdEndRenderPass(cb)

	root := record.Of(cb).Root()
	rpNode := root.Children[0]
	target := rpNode.Children[0] // the draw in subpass 0

	_, err := Arm(target, InstrumentTimestamp)
	if err != ErrCannotHook {
		t.Fatalf("Arm = %v, want ErrCannotHook", err)
	}
}

func TestArm_AllowsSplittableRenderPass(t *testing.T) {
	cb := newTestCommandBuffer()
	rp := splittableRenderPass()
	fb := &objects.Framebuffer{}
	record.CmdBeginRenderPass(cb, rp, fb)
	record.CmdDraw(cb, 3, 1, 0, 0)
	record.CmdEndRenderPass(cb)

	root := record.Of(cb).Root()
	rpNode := root.Children[0]
	target := rpNode.Children[0]

	h, err := Arm(target, InstrumentTimestamp)
	if err != nil {
		t.Fatalf("Arm: %v", err)
	}
	if h.enclosingRenderPass != rpNode {
		t.Fatalf("Arm did not cache the enclosing render pass node")
	}
}

func TestBuildSecondary_StopsAtTargetAndClosesOpenRenderPass(t *testing.T) {
	cb := newTestCommandBuffer()
	rp := splittableRenderPass()
	fb := &objects.Framebuffer{}
	record.CmdBeginRenderPass(cb, rp, fb)
	record.CmdDraw(cb, 3, 1, 0, 0)
	record.CmdDraw(cb, 6, 1, 0, 0) // target
	record.CmdDraw(cb, 9, 1, 0, 0) // must not be replayed
	record.CmdEndRenderPass(cb)

	root := record.Of(cb).Root()
	rpNode := root.Children[0]
	target := rpNode.Children[1]

	h, err := Arm(target, InstrumentTimestamp)
	if err != nil {
		t.Fatalf("Arm: %v", err)
	}

	c := &vk.Commands{}
	if err := BuildSecondary(c, vk.CommandBuffer(0), root, h); err != nil {
		t.Fatalf("BuildSecondary: %v", err)
	}
}

func TestBuildSecondary_TargetNotFoundErrors(t *testing.T) {
	cb := newTestCommandBuffer()
	record.CmdDraw(cb, 3, 1, 0, 0)
	root := record.Of(cb).Root()
	target := root.Children[0]

	h, err := Arm(target, InstrumentTimestamp)
	if err != nil {
		t.Fatalf("Arm: %v", err)
	}

	otherCB := newTestCommandBuffer()
	otherRoot := record.Of(otherCB).Root()

	c := &vk.Commands{}
	if err := BuildSecondary(c, vk.CommandBuffer(0), otherRoot, h); err == nil {
		t.Fatal("BuildSecondary against a tree that never had the target must error, not silently succeed")
	}
}

func TestResultQueue_PushOverwritesUnreadResult(t *testing.T) {
	q := NewResultQueue()
	q.Push(HookResult{Kind: InstrumentTimestamp, TimestampStartNs: 1})
	q.Push(HookResult{Kind: InstrumentTimestamp, TimestampStartNs: 2})

	got, ok := q.TryPop()
	if !ok {
		t.Fatal("TryPop reported no result after two pushes")
	}
	if got.TimestampStartNs != 2 {
		t.Fatalf("TimestampStartNs = %d, want 2 (the most recent push, not the stale first one)", got.TimestampStartNs)
	}

	if _, ok := q.TryPop(); ok {
		t.Fatal("TryPop after drain should report no result")
	}
}

func TestRetire_NoPoolPushesBareResult(t *testing.T) {
	cb := newTestCommandBuffer()
	record.CmdDraw(cb, 3, 1, 0, 0)
	root := record.Of(cb).Root()
	target := root.Children[0]

	h, err := Arm(target, InstrumentReadback)
	if err != nil {
		t.Fatalf("Arm: %v", err)
	}

	q := NewResultQueue()
	Retire(&vk.Commands{}, vk.Device(0), h, q, 1)

	if h.State() != StateCompleted {
		t.Fatalf("State = %v, want StateCompleted", h.State())
	}
	result, ok := q.TryPop()
	if !ok {
		t.Fatal("Retire must push a result even when the hook used no query pool")
	}
	if result.Kind != InstrumentReadback {
		t.Fatalf("Kind = %v, want InstrumentReadback", result.Kind)
	}
}
