package record

import (
	"testing"

	"github.com/vklens/vklens/internal/objects"
)

func newTestCommandBuffer() *objects.CommandBuffer {
	return &objects.CommandBuffer{}
}

func TestBegin_ReplacesRecordAndReleasesPrevious(t *testing.T) {
	cb := newTestCommandBuffer()

	first := Begin(cb)
	if Of(cb) != first {
		t.Fatal("Of(cb) should return the record Begin just installed")
	}
	if cb.CurrentState() != objects.CommandBufferRecording {
		t.Fatalf("state = %v, want recording", cb.CurrentState())
	}

	second := Begin(cb)
	if Of(cb) != second {
		t.Fatal("Of(cb) should return the second record after re-Begin")
	}
	if second == first {
		t.Fatal("Begin should install a fresh record, not reuse the old one")
	}
}

func TestReset_ClearsRecordAndState(t *testing.T) {
	cb := newTestCommandBuffer()
	Begin(cb)
	Reset(cb)

	if Of(cb) != nil {
		t.Fatal("Of(cb) should be nil after Reset")
	}
	if cb.CurrentState() != objects.CommandBufferInitial {
		t.Fatalf("state = %v, want initial", cb.CurrentState())
	}
}

func TestEnd_ClosesTrailingLabelsAndSetsExecutable(t *testing.T) {
	cb := newTestCommandBuffer()
	Begin(cb)
	CmdBeginDebugUtilsLabel(cb, "outer", [4]float32{})
	CmdBeginDebugUtilsLabel(cb, "inner", [4]float32{})

	End(cb)

	r := Of(cb)
	if len(r.sections) != 0 {
		t.Fatalf("sections left open after End: %d", len(r.sections))
	}
	if cb.CurrentState() != objects.CommandBufferExecutable {
		t.Fatalf("state = %v, want executable", cb.CurrentState())
	}
}

func TestCommandRecord_RelIDStableAmongSameKindSiblings(t *testing.T) {
	cb := newTestCommandBuffer()
	Begin(cb)

	CmdDraw(cb, 3, 1, 0, 0)
	CmdDispatch(cb, 1, 1, 1)
	CmdDraw(cb, 3, 1, 0, 0)
	CmdDraw(cb, 3, 1, 0, 0)

	root := Of(cb).Root()
	var drawRelIDs []int
	for _, c := range root.Children {
		if c.Kind == KindDraw {
			drawRelIDs = append(drawRelIDs, c.RelID)
		}
	}
	want := []int{0, 1, 2}
	if len(drawRelIDs) != len(want) {
		t.Fatalf("draw RelIDs = %v, want %v", drawRelIDs, want)
	}
	for i, v := range want {
		if drawRelIDs[i] != v {
			t.Errorf("draw RelIDs = %v, want %v", drawRelIDs, want)
			break
		}
	}
}

func TestCommandRecord_RetainRelease(t *testing.T) {
	r := newCommandRecord()
	r.Retain()
	r.Retain()
	if r.Release() {
		t.Fatal("Release should report false while a reference remains")
	}
	if !r.Release() {
		t.Fatal("Release should report true when the last reference drops")
	}
}

func TestCommandRecord_Invalidate(t *testing.T) {
	r := newCommandRecord()
	if r.Invalid() {
		t.Fatal("fresh record should not be invalid")
	}
	r.Invalidate()
	if !r.Invalid() {
		t.Fatal("record should be invalid after Invalidate")
	}
}

func TestCmdExecuteCommands_MergesSecondaryResourceTracker(t *testing.T) {
	primary := newTestCommandBuffer()
	secondary := newTestCommandBuffer()
	Begin(primary)
	Begin(secondary)

	buf := &objects.Buffer{}
	CmdFillBuffer(secondary, buf, 0, 16, 0)

	CmdExecuteCommands(primary, []*objects.CommandBuffer{secondary})

	if !Of(primary).ReferencesBuffer(buf) {
		t.Fatal("primary record should reference a buffer only used by its secondary after ExecuteCommands merge")
	}
}

func TestCmdEndDebugUtilsLabel_UnmatchedIsNoop(t *testing.T) {
	cb := newTestCommandBuffer()
	Begin(cb)

	CmdEndDebugUtilsLabel(cb) // no open label: must not panic or desync the section stack

	CmdBeginDebugUtilsLabel(cb, "x", [4]float32{})
	if len(Of(cb).sections) != 1 {
		t.Fatalf("sections = %d, want 1 after the unmatched End was ignored", len(Of(cb).sections))
	}
}
