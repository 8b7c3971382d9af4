package objects

import (
	"testing"

	"github.com/vklens/vklens/internal/vk"
)

func TestRenderPassData_Splittable(t *testing.T) {
	tests := []struct {
		name  string
		data  *RenderPassData
		n     int
		want  bool
	}{
		{
			name: "no later subpasses is splittable",
			data: &RenderPassData{Subpasses: []vk.SubpassDescription{
				{ColorAttachments: []vk.AttachmentReference{{Attachment: 0}}},
			}},
			n:    0,
			want: true,
		},
		{
			name: "later resolve into unread attachment is splittable",
			data: &RenderPassData{Subpasses: []vk.SubpassDescription{
				{ColorAttachments: []vk.AttachmentReference{{Attachment: 0}}},
				{ResolveAttachments: []vk.AttachmentReference{{Attachment: 1}}},
			}},
			n:    0,
			want: true,
		},
		{
			name: "later resolve into subpass's color attachment is not splittable",
			data: &RenderPassData{Subpasses: []vk.SubpassDescription{
				{ColorAttachments: []vk.AttachmentReference{{Attachment: 0}}},
				{ResolveAttachments: []vk.AttachmentReference{{Attachment: 0}}},
			}},
			n:    0,
			want: false,
		},
		{
			name: "later resolve into input attachment is not splittable",
			data: &RenderPassData{Subpasses: []vk.SubpassDescription{
				{InputAttachments: []vk.AttachmentReference{{Attachment: 2}}},
				{ResolveAttachments: []vk.AttachmentReference{{Attachment: 2}}},
			}},
			n:    0,
			want: false,
		},
		{
			name: "out of range subpass is not splittable",
			data: &RenderPassData{Subpasses: []vk.SubpassDescription{{}}},
			n:    5,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.data.Splittable(tt.n); got != tt.want {
				t.Errorf("Splittable(%d) = %v, want %v", tt.n, got, tt.want)
			}
		})
	}
}

func TestDescriptorSetLayoutData_RefcountRoundtrip(t *testing.T) {
	d := &DescriptorSetLayoutData{}
	d.Retain()
	d.Retain()
	if d.Release() {
		t.Fatal("Release() after two Retain() reported zero too early")
	}
	if !d.Release() {
		t.Fatal("Release() after matching count did not report zero")
	}
}
