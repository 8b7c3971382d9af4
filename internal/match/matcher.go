// Copyright 2025 The vklens Authors
// SPDX-License-Identifier: MIT

// Package match implements the command matcher (spec.md §4.7): a
// best-first "lazy matrix march" that fuzzy-aligns two command
// sequences so the GUI can follow a selected command across frames.
// Unlike the rest of this layer, the search itself has no precedent in
// the retrieved example repositories to generalize from — it is built
// directly from the spec's own algorithm description, using
// container/heap for its priority queue the same way the standard
// library's own documentation recommends for a best-first search.
package match

import (
	"container/heap"

	"github.com/vklens/vklens/internal/record"
)

// BranchThreshold is the local-match score (normalized to [0,1]) above
// which the search also considers realigning around a cell instead of
// only taking its matched transition (spec.md §4.7 point 4).
const BranchThreshold = 0.95

// Pair is one matched node in the alignment's result.
type Pair struct {
	A, B *record.Command
}

// Result is the outcome of matching two command sequences: the total
// score and the list of matched pairs, in sequence order.
type Result struct {
	Score float64
	Pairs []Pair
}

// Records aligns two whole command records by matching their top-level
// command sequences (spec.md §4.7), the entry point the GUI uses to
// follow a selected command from one frame's record to another's.
func Records(a, b *record.CommandRecord) Result {
	return Sequences(a.Root().Children, b.Root().Children)
}

// Sequences aligns as against bs and returns the best-scoring alignment.
// Symmetry holds: Sequences(bs, as) yields the same Score and the
// transposed Pairs list (spec.md §4.7).
func Sequences(as, bs []*record.Command) Result {
	if len(as) == 0 || len(bs) == 0 {
		return Result{}
	}

	open := &stateHeap{lenA: len(as), lenB: len(bs)}
	heap.Init(open)
	heap.Push(open, &searchState{i: 0, j: 0, score: 0})

	best := make(map[cellKey]float64)
	best[cellKey{0, 0}] = 0

	for open.Len() > 0 {
		cur := heap.Pop(open).(*searchState)
		if cur.score < best[cellKey{cur.i, cur.j}] {
			continue // dominated by a better path already relaxed into this cell
		}

		if cur.i == len(as) && cur.j == len(bs) {
			return reconstruct(cur)
		}

		expand(cur, as, bs, open, best)
	}

	// Unreachable for non-empty as/bs: (len(as), len(bs)) is always
	// reachable by skipping every remaining element.
	return Result{}
}

// cellKey identifies a cell of the implicit (len(as)+1)x(len(bs)+1)
// matching matrix.
type cellKey struct{ i, j int }

// searchState is one node of the best-first search frontier: a cell
// plus the score accumulated to reach it and a back-pointer for path
// reconstruction.
type searchState struct {
	i, j   int
	score  float64
	prev   *searchState
	pair   *Pair // non-nil if the transition into this state matched a-i-1 with b-j-1
}

func upperBoundRemaining(i, j, lenA, lenB int) float64 {
	remA, remB := lenA-i, lenB-j
	if remA < remB {
		return float64(remA)
	}
	return float64(remB)
}

func (s *searchState) priority(lenA, lenB int) float64 {
	return s.score + upperBoundRemaining(s.i, s.j, lenA, lenB)
}

// expand pushes every successor of cur onto open, relaxing best as it
// goes (Dijkstra/A*-style: a cell is only re-pushed if reached with a
// strictly better score than previously known).
func expand(cur *searchState, as, bs []*record.Command, open *stateHeap, best map[cellKey]float64) {
	lenA, lenB := len(as), len(bs)

	relax := func(next *searchState) {
		key := cellKey{next.i, next.j}
		if known, ok := best[key]; ok && next.score <= known {
			return
		}
		best[key] = next.score
		heap.Push(open, next)
	}

	if cur.i < lenA && cur.j < lenB {
		m, t := nodeMatch(as[cur.i], bs[cur.j])
		if t != -1 {
			normalized := 1.0
			if t > 0 {
				normalized = m / t
			}
			relax(&searchState{
				i: cur.i + 1, j: cur.j + 1,
				score: cur.score + normalized,
				prev:  cur,
				pair:  &Pair{A: as[cur.i], B: bs[cur.j]},
			})
			if normalized < BranchThreshold {
				return
			}
		}
	}

	if cur.i < lenA {
		relax(&searchState{i: cur.i + 1, j: cur.j, score: cur.score, prev: cur})
	}
	if cur.j < lenB {
		relax(&searchState{i: cur.i, j: cur.j + 1, score: cur.score, prev: cur})
	}
}

func reconstruct(final *searchState) Result {
	var pairs []Pair
	for s := final; s != nil; s = s.prev {
		if s.pair != nil {
			pairs = append(pairs, *s.pair)
		}
	}
	for l, r := 0, len(pairs)-1; l < r; l, r = l+1, r-1 {
		pairs[l], pairs[r] = pairs[r], pairs[l]
	}
	return Result{Score: final.score, Pairs: pairs}
}

// stateHeap is a container/heap max-heap ordered by priority
// (accumulated score + admissible upper bound on the remaining score),
// implementing the search's best-first frontier.
type stateHeap struct {
	items []*searchState
	lenA, lenB int
}

func (h *stateHeap) Len() int { return len(h.items) }
func (h *stateHeap) Less(i, j int) bool {
	return h.items[i].priority(h.lenA, h.lenB) > h.items[j].priority(h.lenA, h.lenB)
}
func (h *stateHeap) Swap(i, j int) { h.items[i], h.items[j] = h.items[j], h.items[i] }
func (h *stateHeap) Push(x any)    { h.items = append(h.items, x.(*searchState)) }
func (h *stateHeap) Pop() any {
	n := len(h.items)
	item := h.items[n-1]
	h.items = h.items[:n-1]
	return item
}
