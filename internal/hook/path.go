// Copyright 2025 The vklens Authors
// SPDX-License-Identifier: MIT

// Package hook implements the command hook (spec.md §4.8): re-recording
// a target command buffer up to and including a GUI-selected command,
// with instrumentation (timestamp queries, pipeline-statistics queries,
// readback copies, transform-feedback capture) spliced in around the
// target.
package hook

import (
	"fmt"

	"github.com/vklens/vklens/internal/record"
)

// PathStep identifies one node along the path from a record's root to a
// selected command: its concrete Kind and its rel_id among siblings of
// that Kind under the same parent (record.Command's stable identity,
// spec.md §3).
type PathStep struct {
	Kind  record.Kind
	RelID int
}

// Path identifies a command within a CommandRecord's tree, the
// selection unit the GUI passes across the hook and overlay boundary
// (spec.md §6's "Select(rel_id path)") since the GUI never holds a live
// *record.Command across frames.
type Path []PathStep

// Locate walks root's tree following path and returns the command it
// identifies. It fails if any step has no matching child, which happens
// whenever the application's recording diverges from the frame the path
// was captured against — the caller degrades the affected GUI view
// rather than treating this as an invariant violation.
func Locate(root *record.Command, path Path) (*record.Command, error) {
	cur := root
	for i, step := range path {
		var next *record.Command
		for _, child := range cur.Children {
			if child.Kind == step.Kind && child.RelID == step.RelID {
				next = child
				break
			}
		}
		if next == nil {
			return nil, fmt.Errorf("hook: path step %d (%s#%d) not found under %s", i, step.Kind, step.RelID, cur.Kind)
		}
		cur = next
	}
	return cur, nil
}

// PathOf reconstructs the Path identifying cmd by walking its Parent
// chain back to the record's root, the inverse of Locate.
func PathOf(cmd *record.Command) Path {
	var steps []PathStep
	for n := cmd; n != nil && n.Parent != nil; n = n.Parent {
		steps = append(steps, PathStep{Kind: n.Kind, RelID: n.RelID})
	}
	for l, r := 0, len(steps)-1; l < r; l, r = l+1, r-1 {
		steps[l], steps[r] = steps[r], steps[l]
	}
	return steps
}
