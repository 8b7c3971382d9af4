package match

import (
	"testing"

	"github.com/vklens/vklens/internal/objects"
	"github.com/vklens/vklens/internal/record"
	"github.com/vklens/vklens/internal/vk"
)

func node(kind record.Kind, data any) *record.Command {
	return &record.Command{Kind: kind, Data: data}
}

func TestNodeMatch_DifferentKindsAreIncomparable(t *testing.T) {
	a := node(record.KindDraw, nil)
	b := node(record.KindDispatch, nil)
	_, total := nodeMatch(a, b)
	if total != -1 {
		t.Errorf("total = %v, want -1 for different concrete kinds", total)
	}
}

func TestNodeMatch_BarriersScoreProportionalToEqualEntries(t *testing.T) {
	a := node(record.KindPipelineBarrier, &record.PipelineBarrierData{
		SrcStage: 1, DstStage: 2,
		ImageBarriers: []vk.ImageMemoryBarrier{
			{Image: vk.Image(1), NewLayout: vk.ImageLayoutGeneral},
			{Image: vk.Image(2), NewLayout: vk.ImageLayoutGeneral},
		},
	})
	b := node(record.KindPipelineBarrier, &record.PipelineBarrierData{
		SrcStage: 1, DstStage: 2,
		ImageBarriers: []vk.ImageMemoryBarrier{
			{Image: vk.Image(1), NewLayout: vk.ImageLayoutGeneral},
			{Image: vk.Image(3), NewLayout: vk.ImageLayoutGeneral},
		},
	})

	match, total := nodeMatch(a, b)
	if total == -1 {
		t.Fatal("two barriers must always be comparable")
	}
	// stage masks match (1) plus one of two image barriers matches (1):
	// match=2 out of a possible total=1+2=3.
	if match != 2 || total != 3 {
		t.Errorf("match,total = %v,%v, want 2,3", match, total)
	}
}

func TestNodeMatch_RenderPassRequiresEqualDescription(t *testing.T) {
	rpA := &objects.RenderPass{Data: &objects.RenderPassData{
		Attachments: []vk.AttachmentDescription{{Format: 37}},
	}}
	rpB := &objects.RenderPass{Data: &objects.RenderPassData{
		Attachments: []vk.AttachmentDescription{{Format: 99}},
	}}

	a := node(record.KindBeginRenderPass, &record.BeginRenderPassData{RenderPass: rpA})
	b := node(record.KindBeginRenderPass, &record.BeginRenderPassData{RenderPass: rpB})

	_, total := nodeMatch(a, b)
	if total != -1 {
		t.Errorf("total = %v, want -1 for differing render-pass descriptions", total)
	}
}

func TestNodeMatch_RenderPassMatchesSwapchainAttachmentsAcrossDifferentImages(t *testing.T) {
	sc := &objects.Swapchain{}
	imgA := &objects.Image{Swapchain: sc}
	imgB := &objects.Image{Swapchain: sc}
	viewA := &objects.ImageView{Image: imgA}
	viewB := &objects.ImageView{Image: imgB}

	rpData := &objects.RenderPassData{Attachments: []vk.AttachmentDescription{{Format: 37}}}
	rp := &objects.RenderPass{Data: rpData}

	fbA := &objects.Framebuffer{RenderPass: rp, Attachments: []*objects.ImageView{viewA}}
	fbB := &objects.Framebuffer{RenderPass: rp, Attachments: []*objects.ImageView{viewB}}

	a := node(record.KindBeginRenderPass, &record.BeginRenderPassData{RenderPass: rp, Framebuffer: fbA})
	b := node(record.KindBeginRenderPass, &record.BeginRenderPassData{RenderPass: rp, Framebuffer: fbB})

	match, total := nodeMatch(a, b)
	if total == -1 {
		t.Fatal("render passes with identical descriptions must be comparable")
	}
	// description (1) + one swapchain-equivalent attachment (1) out of
	// a possible 2, plus no children on either side.
	if match != 2 || total != 2 {
		t.Errorf("match,total = %v,%v, want 2,2 (swapchain attachments from the same swapchain count as matching)", match, total)
	}
}

func TestNodeMatch_RenderPassAttachmentsFromDifferentSwapchainsDoNotMatch(t *testing.T) {
	imgA := &objects.Image{Swapchain: &objects.Swapchain{}}
	imgB := &objects.Image{Swapchain: &objects.Swapchain{}}
	viewA := &objects.ImageView{Image: imgA}
	viewB := &objects.ImageView{Image: imgB}

	rp := &objects.RenderPass{Data: &objects.RenderPassData{}}
	fbA := &objects.Framebuffer{RenderPass: rp, Attachments: []*objects.ImageView{viewA}}
	fbB := &objects.Framebuffer{RenderPass: rp, Attachments: []*objects.ImageView{viewB}}

	a := node(record.KindBeginRenderPass, &record.BeginRenderPassData{RenderPass: rp, Framebuffer: fbA})
	b := node(record.KindBeginRenderPass, &record.BeginRenderPassData{RenderPass: rp, Framebuffer: fbB})

	match, total := nodeMatch(a, b)
	if match != 1 || total != 2 {
		t.Errorf("match,total = %v,%v, want 1,2 (description matches, the unrelated-swapchain attachment doesn't)", match, total)
	}
}
