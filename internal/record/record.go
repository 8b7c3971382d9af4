// Copyright 2025 The vklens Authors
// SPDX-License-Identifier: MIT

package record

import (
	"sync"
	"sync/atomic"

	"github.com/vklens/vklens/internal/objects"
	"github.com/vklens/vklens/internal/vklog"
)

// CommandRecord is the tree of Command nodes recorded into a
// CommandBuffer between Begin and End (spec.md §3/§4.3). It is
// reference-counted with atomic.Int32, following
// core/track.TrackingData's atomic-release idiom, because a record may
// outlive the command buffer that produced it: a pending submission or
// a GUI selection can still hold it after Begin/Reset has moved the
// command buffer on to a fresh record.
type CommandRecord struct {
	refs atomic.Int32

	mu       sync.Mutex
	root     *Command
	sections []*Command
	bound    *boundState
	tracker  *resourceTracker
	invalid  bool
}

func newCommandRecord() *CommandRecord {
	return &CommandRecord{
		root:    &Command{Kind: KindRoot},
		bound:   newBoundState(),
		tracker: newResourceTracker(),
	}
}

// Retain increments the record's reference count.
func (r *CommandRecord) Retain() { r.refs.Add(1) }

// Release decrements the reference count and reports whether it reached
// zero.
func (r *CommandRecord) Release() bool { return r.refs.Add(-1) == 0 }

// Root returns the record's synthetic root node.
func (r *CommandRecord) Root() *Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.root
}

// Invalidate marks the record invalid: the GUI may still display it but
// must not have the layer dereference resource pointers from it
// (spec.md §4.4). Called when a resource the record's tracker
// references is destroyed.
func (r *CommandRecord) Invalidate() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.invalid = true
}

// Invalid reports whether Invalidate has been called on this record.
func (r *CommandRecord) Invalid() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.invalid
}

// ReferencesBuffer and ReferencesImage report whether the record's
// resource-use tracker currently has an entry for the given shadow,
// used by destruction paths to decide whether Invalidate is needed.
func (r *CommandRecord) ReferencesBuffer(b *objects.Buffer) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tracker.hasBuffer(b)
}

func (r *CommandRecord) ReferencesImage(img *objects.Image) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tracker.hasImage(img)
}

// ImageLayoutTransitions returns the final layout recorded for every image
// this record transitions via a pipeline barrier, for internal/submit to
// apply to each image's pending_layout at submit time (spec.md §4.6).
// Render-pass attachment layout changes are not recorded.
func (r *CommandRecord) ImageLayoutTransitions() map[*objects.Image]int32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[*objects.Image]int32)
	for img, e := range r.tracker.images {
		if e.LayoutChanged {
			out[img] = e.FinalLayout
		}
	}
	return out
}

func (r *CommandRecord) currentSection() *Command {
	if len(r.sections) == 0 {
		return r.root
	}
	return r.sections[len(r.sections)-1]
}

// append builds a leaf node of kind with the given data, appends it to
// the innermost open section, and returns it. Caller holds r.mu.
func (r *CommandRecord) append(kind Kind, data any) *Command {
	parent := r.currentSection()
	node := &Command{Kind: kind, RelID: parent.nextRelID(kind), Parent: parent, Data: data}
	parent.Children = append(parent.Children, node)
	return node
}

// openSection appends a section node and pushes it onto the section
// stack. Caller holds r.mu.
func (r *CommandRecord) openSection(kind Kind, data any) *Command {
	node := r.append(kind, data)
	r.sections = append(r.sections, node)
	return node
}

// closeSection pops the innermost open section if it matches kind.
// Caller holds r.mu. Returns (node, true) on success; (nil, false) if
// the section stack is empty or the top does not match — the caller
// decides whether a mismatch is tolerated (labels) or a bug (render
// passes).
func (r *CommandRecord) closeSection(kind Kind) (*Command, bool) {
	if len(r.sections) == 0 {
		return nil, false
	}
	top := r.sections[len(r.sections)-1]
	if top.Kind != kind {
		return nil, false
	}
	r.sections = r.sections[:len(r.sections)-1]
	return top, true
}

// closeTrailingLabels implements EndCommandBuffer's tolerance rule
// (spec.md §4.3): any still-open label section is implicitly closed
// with a warning. It stops at the first non-label section, which is an
// unrelated invariant violation reported through vklog.Bug rather than
// silently swallowed.
func (r *CommandRecord) closeTrailingLabels() {
	for len(r.sections) > 0 {
		top := r.sections[len(r.sections)-1]
		if top.Kind != KindBeginLabel {
			break
		}
		r.sections = r.sections[:len(r.sections)-1]
		vklog.Warn("vklens: command buffer ended with open debug label section")
	}
	if len(r.sections) > 0 {
		vklog.Bug("vklens: command buffer ended with a non-label section still open")
	}
}

// Of returns the *CommandRecord currently stored on cb, or nil if none.
// cb.Record is kept as any to avoid internal/objects importing this
// package; Of is the one place outside internal/objects that unwraps
// it.
func Of(cb *objects.CommandBuffer) *CommandRecord {
	r, _ := cb.Record.(*CommandRecord)
	return r
}

// Begin transitions cb from initial to recording, building a fresh
// CommandRecord. The previous record (if any) is dropped unless another
// owner (a pending submission or a GUI selection) retained it — Release
// reports whether this was the last reference, mirroring
// core.CommandBufferMutable's encoder-owns-its-state shape generalized
// to a full tree with external retention.
func Begin(cb *objects.CommandBuffer) *CommandRecord {
	if prev := Of(cb); prev != nil {
		prev.Release()
	}
	fresh := newCommandRecord()
	fresh.Retain()
	cb.Record = fresh
	cb.ResetCount.Add(1)
	cb.SetState(objects.CommandBufferRecording)
	return fresh
}

// Reset transitions cb back to initial, dropping its current record the
// same way Begin does.
func Reset(cb *objects.CommandBuffer) {
	if prev := Of(cb); prev != nil {
		prev.Release()
	}
	cb.Record = nil
	cb.ResetCount.Add(1)
	cb.SetState(objects.CommandBufferInitial)
}

// End transitions cb from recording to executable, closing any trailing
// label sections first.
func End(cb *objects.CommandBuffer) {
	r := Of(cb)
	if r == nil {
		return
	}
	r.mu.Lock()
	r.closeTrailingLabels()
	r.mu.Unlock()
	cb.SetState(objects.CommandBufferExecutable)
}
