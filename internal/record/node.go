// Copyright 2025 The vklens Authors
// SPDX-License-Identifier: MIT

package record

// Kind identifies a Command node's concrete type. Section kinds own
// children; every other kind is a leaf.
type Kind int

const (
	KindRoot Kind = iota
	KindBindPipeline
	KindBindDescriptorSets
	KindPushConstants
	KindBindVertexBuffers
	KindBindIndexBuffer
	KindDraw
	KindDrawIndexed
	KindDispatch
	KindCopyBuffer
	KindFillBuffer
	KindUpdateBuffer
	KindPipelineBarrier
	KindBeginRenderPass
	KindNextSubpass
	KindEndRenderPass
	KindBeginLabel
	KindEndLabel
	KindExecuteCommands
)

func (k Kind) String() string {
	switch k {
	case KindRoot:
		return "Root"
	case KindBindPipeline:
		return "BindPipeline"
	case KindBindDescriptorSets:
		return "BindDescriptorSets"
	case KindPushConstants:
		return "PushConstants"
	case KindBindVertexBuffers:
		return "BindVertexBuffers"
	case KindBindIndexBuffer:
		return "BindIndexBuffer"
	case KindDraw:
		return "Draw"
	case KindDrawIndexed:
		return "DrawIndexed"
	case KindDispatch:
		return "Dispatch"
	case KindCopyBuffer:
		return "CopyBuffer"
	case KindFillBuffer:
		return "FillBuffer"
	case KindUpdateBuffer:
		return "UpdateBuffer"
	case KindPipelineBarrier:
		return "PipelineBarrier"
	case KindBeginRenderPass:
		return "BeginRenderPass"
	case KindNextSubpass:
		return "NextSubpass"
	case KindEndRenderPass:
		return "EndRenderPass"
	case KindBeginLabel:
		return "BeginLabel"
	case KindEndLabel:
		return "EndLabel"
	case KindExecuteCommands:
		return "ExecuteCommands"
	default:
		return "Unknown"
	}
}

// isSection reports whether nodes of this kind own an ordered list of
// children (spec.md §4.3's "non-leaf (section) node").
func (k Kind) isSection() bool {
	switch k {
	case KindRoot, KindBeginRenderPass, KindBeginLabel, KindExecuteCommands:
		return true
	default:
		return false
	}
}

// Command is one node of a CommandRecord's tree. RelID is the node's
// position among siblings of the same concrete Kind under the same
// parent — stable regardless of how many nodes of other kinds sit
// between them, matching spec.md §3's "stable rel_id (its position
// among siblings of its concrete type)".
//
// Data holds the concrete, kind-specific payload (a *DrawData,
// *BindPipelineData, ...) copied out of the application's call
// arguments. Go's garbage collector already gives every payload the
// same lifetime as its owning record with no extra bookkeeping, so
// there is no separate bump-allocator "arena" type here — none of the
// retrieved example repos implement one, and the record's own tree
// already is the scope that keeps captured payloads alive together and
// releases them together when the record is dropped.
type Command struct {
	Kind     Kind
	RelID    int
	Parent   *Command
	Children []*Command
	Data     any

	kindCounters map[Kind]int
}

func (c *Command) nextRelID(kind Kind) int {
	if c.kindCounters == nil {
		c.kindCounters = make(map[Kind]int)
	}
	id := c.kindCounters[kind]
	c.kindCounters[kind]++
	return id
}
