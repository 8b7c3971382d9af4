package match

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

func TestSequences_IdenticalSequencesMatchEveryNode(t *testing.T) {
	pipe := &objects.GraphicsPipeline{}

	cbA := newTestCommandBuffer()
	record.CmdBindPipeline(cbA, vk.PipelineBindPointGraphics, pipe, nil)
	record.CmdDraw(cbA, 3, 1, 0, 0)

	cbB := newTestCommandBuffer()
	record.CmdBindPipeline(cbB, vk.PipelineBindPointGraphics, pipe, nil)
	record.CmdDraw(cbB, 3, 1, 0, 0)

	result := Records(record.Of(cbA), record.Of(cbB))
	if len(result.Pairs) != 2 {
		t.Fatalf("Pairs = %d, want 2", len(result.Pairs))
	}
	if result.Score != 2 {
		t.Fatalf("Score = %v, want 2 (a fully matched node contributes a normalized ratio of 1 per pair)", result.Score)
	}
}

func TestSequences_DifferentPipelineNeverMatchesDraw(t *testing.T) {
	pipeA := &objects.GraphicsPipeline{}
	pipeB := &objects.GraphicsPipeline{}

	cbA := newTestCommandBuffer()
	record.CmdBindPipeline(cbA, vk.PipelineBindPointGraphics, pipeA, nil)
	record.CmdDraw(cbA, 3, 1, 0, 0)

	cbB := newTestCommandBuffer()
	record.CmdBindPipeline(cbB, vk.PipelineBindPointGraphics, pipeB, nil)
	record.CmdDraw(cbB, 3, 1, 0, 0)

	result := Records(record.Of(cbA), record.Of(cbB))
	for _, p := range result.Pairs {
		if p.A.Kind == record.KindDraw {
			t.Error("a draw against a differently-bound pipeline must never be matched")
		}
	}
}

func TestSequences_ExtraIncomparableCommandIsSkippedNotMismatched(t *testing.T) {
	bufA := &objects.Buffer{}
	bufB := &objects.Buffer{}

	cbA := newTestCommandBuffer()
	record.CmdCopyBuffer(cbA, bufA, bufB, 0, 0, 16)
	record.CmdFillBuffer(cbA, bufB, 0, 16, 0)

	cbB := newTestCommandBuffer()
	record.CmdCopyBuffer(cbB, bufA, bufB, 0, 0, 16)

	result := Records(record.Of(cbA), record.Of(cbB))
	if len(result.Pairs) != 1 {
		t.Fatalf("Pairs = %d, want 1 (the copy; the extra fill must be skipped, not forced into a bad match)", len(result.Pairs))
	}
	if result.Pairs[0].A.Kind != record.KindCopyBuffer {
		t.Errorf("matched kind = %v, want CopyBuffer", result.Pairs[0].A.Kind)
	}
}

func TestSequences_Symmetric(t *testing.T) {
	bufA := &objects.Buffer{}
	bufB := &objects.Buffer{}

	cbA := newTestCommandBuffer()
	record.CmdCopyBuffer(cbA, bufA, bufB, 0, 0, 16)
	record.CmdFillBuffer(cbA, bufB, 0, 16, 7)

	cbB := newTestCommandBuffer()
	record.CmdFillBuffer(cbB, bufB, 0, 16, 7)
	record.CmdCopyBuffer(cbB, bufA, bufB, 0, 0, 16)

	forward := Records(record.Of(cbA), record.Of(cbB))
	backward := Records(record.Of(cbB), record.Of(cbA))

	if forward.Score != backward.Score {
		t.Fatalf("Score mismatch: forward=%v backward=%v, want equal (symmetry property)", forward.Score, backward.Score)
	}
	if len(forward.Pairs) != len(backward.Pairs) {
		t.Fatalf("Pairs length mismatch: forward=%d backward=%d", len(forward.Pairs), len(backward.Pairs))
	}
}

func TestSequences_EmptyInputsScoreZero(t *testing.T) {
	cbA := newTestCommandBuffer()
	cbB := newTestCommandBuffer()

	result := Records(record.Of(cbA), record.Of(cbB))
	if result.Score != 0 || len(result.Pairs) != 0 {
		t.Errorf("Result = %+v, want zero value for two empty records", result)
	}
}
