// Copyright 2025 The vklens Authors
// SPDX-License-Identifier: MIT

// Package record implements the command recorder (spec.md §4.3/§4.4):
// the per-command-buffer tree of Command nodes, the bound-state snapshot
// carried forward as commands are recorded, and the used_images/
// used_buffers resource-use tables. It is a private component of the
// record rather than a free-standing service, the same way
// core/track's usage bitsets are embedded fields of the tracked
// resource rather than reached through a separate package boundary.
package record

import "github.com/vklens/vklens/internal/objects"

// BufferUses generalizes core/track/buffer.go's BufferUses bitset to the
// full set of access kinds the spec's vkCmd* entry points produce.
type BufferUses uint32

const (
	BufferUsesNone         BufferUses = 0
	BufferUsesTransferSrc  BufferUses = 1 << 0
	BufferUsesTransferDst  BufferUses = 1 << 1
	BufferUsesIndex        BufferUses = 1 << 2
	BufferUsesVertex       BufferUses = 1 << 3
	BufferUsesUniform      BufferUses = 1 << 4
	BufferUsesStorageRead  BufferUses = 1 << 5
	BufferUsesStorageWrite BufferUses = 1 << 6
	BufferUsesIndirect     BufferUses = 1 << 7
)

// IsReadOnly reports whether u contains only read-only access kinds.
func (u BufferUses) IsReadOnly() bool {
	writes := BufferUsesTransferDst | BufferUsesStorageWrite
	return u&writes == 0
}

// IsEmpty reports whether no usage bit is set.
func (u BufferUses) IsEmpty() bool { return u == BufferUsesNone }

// IsCompatible reports whether u and other can coexist without a
// barrier between them: read-only usages are always compatible with
// each other, any write usage requires the two to be identical.
func (u BufferUses) IsCompatible(other BufferUses) bool {
	if u.IsEmpty() || other.IsEmpty() {
		return true
	}
	if u.IsReadOnly() && other.IsReadOnly() {
		return true
	}
	return u == other
}

// ImageUses generalizes the same bitset shape to image access kinds.
type ImageUses uint32

const (
	ImageUsesNone             ImageUses = 0
	ImageUsesTransferSrc      ImageUses = 1 << 0
	ImageUsesTransferDst      ImageUses = 1 << 1
	ImageUsesColorAttachment  ImageUses = 1 << 2
	ImageUsesDepthAttachment  ImageUses = 1 << 3
	ImageUsesResolveTarget    ImageUses = 1 << 4
	ImageUsesSampled          ImageUses = 1 << 5
	ImageUsesStorage          ImageUses = 1 << 6
	ImageUsesPresent          ImageUses = 1 << 7
)

func (u ImageUses) IsReadOnly() bool {
	writes := ImageUsesTransferDst | ImageUsesColorAttachment | ImageUsesDepthAttachment |
		ImageUsesResolveTarget | ImageUsesStorage
	return u&writes == 0
}

func (u ImageUses) IsEmpty() bool { return u == ImageUsesNone }

func (u ImageUses) IsCompatible(other ImageUses) bool {
	if u.IsEmpty() || other.IsEmpty() {
		return true
	}
	if u.IsReadOnly() && other.IsReadOnly() {
		return true
	}
	return u == other
}

// BufferUseEntry is one used_buffers table entry (spec.md §4.4): the
// shadow pointer, the accumulated usage, and the nodes that referenced
// it.
type BufferUseEntry struct {
	Buffer *objects.Buffer
	Uses   BufferUses
	Nodes  []*Command
}

// ImageUseEntry is one used_images table entry; ImageUses additionally
// carries whether this record changes the image's layout and, if so,
// the layout it leaves the image in.
type ImageUseEntry struct {
	Image         *objects.Image
	Uses          ImageUses
	Nodes         []*Command
	LayoutChanged bool
	FinalLayout   int32
}

// resourceTracker is the pair of tables a CommandRecord owns.
type resourceTracker struct {
	buffers map[*objects.Buffer]*BufferUseEntry
	images  map[*objects.Image]*ImageUseEntry
}

func newResourceTracker() *resourceTracker {
	return &resourceTracker{
		buffers: make(map[*objects.Buffer]*BufferUseEntry),
		images:  make(map[*objects.Image]*ImageUseEntry),
	}
}

func (t *resourceTracker) useBuffer(b *objects.Buffer, uses BufferUses, node *Command) {
	e := t.buffers[b]
	if e == nil {
		e = &BufferUseEntry{Buffer: b}
		t.buffers[b] = e
	}
	e.Uses |= uses
	e.Nodes = append(e.Nodes, node)
}

func (t *resourceTracker) useImage(img *objects.Image, uses ImageUses, node *Command, transitionsTo int32, transitions bool) {
	e := t.images[img]
	if e == nil {
		e = &ImageUseEntry{Image: img}
		t.images[img] = e
	}
	e.Uses |= uses
	e.Nodes = append(e.Nodes, node)
	if transitions {
		e.LayoutChanged = true
		e.FinalLayout = transitionsTo
	}
}

// merge folds other's entries into t, used by ExecuteCommands to merge a
// secondary record's resource tables into the primary's (spec.md §4.4):
// destruction of a resource used only by a secondary must still
// invalidate the primary.
func (t *resourceTracker) merge(other *resourceTracker) {
	for b, e := range other.buffers {
		cur := t.buffers[b]
		if cur == nil {
			cur = &BufferUseEntry{Buffer: b}
			t.buffers[b] = cur
		}
		cur.Uses |= e.Uses
		cur.Nodes = append(cur.Nodes, e.Nodes...)
	}
	for img, e := range other.images {
		cur := t.images[img]
		if cur == nil {
			cur = &ImageUseEntry{Image: img}
			t.images[img] = cur
		}
		cur.Uses |= e.Uses
		cur.Nodes = append(cur.Nodes, e.Nodes...)
		if e.LayoutChanged {
			cur.LayoutChanged = true
			cur.FinalLayout = e.FinalLayout
		}
	}
}

// hasBuffer and hasImage report whether the tracker has an entry for the
// given shadow; CommandRecord.ReferencesBuffer/ReferencesImage expose
// them to destruction paths deciding whether to invalidate the record.
func (t *resourceTracker) hasBuffer(b *objects.Buffer) bool { _, ok := t.buffers[b]; return ok }
func (t *resourceTracker) hasImage(img *objects.Image) bool { _, ok := t.images[img]; return ok }
