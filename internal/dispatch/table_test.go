package dispatch

import "testing"

type shadowBuffer struct {
	size uint64
}

func TestTable_InsertFindRemove(t *testing.T) {
	tbl := New[uint64, shadowBuffer]()

	if got := tbl.Find(1); got != nil {
		t.Fatalf("Find on empty table = %v, want nil", got)
	}

	tbl.Insert(1, &shadowBuffer{size: 256})
	if tbl.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", tbl.Len())
	}

	got := tbl.Find(1)
	if got == nil || got.size != 256 {
		t.Fatalf("Find(1) = %v, want size 256", got)
	}

	removed := tbl.Remove(1)
	if removed == nil || removed.size != 256 {
		t.Fatalf("Remove(1) = %v, want size 256", removed)
	}

	// property 1 (handle bijection): a handle removed must not resolve.
	if got := tbl.Find(1); got != nil {
		t.Fatalf("Find after Remove = %v, want nil", got)
	}
	if tbl.Len() != 0 {
		t.Fatalf("Len() after Remove = %d, want 0", tbl.Len())
	}
}

func TestTable_RemoveUnknownIsNilNoop(t *testing.T) {
	tbl := New[uint64, shadowBuffer]()
	if got := tbl.Remove(999); got != nil {
		t.Fatalf("Remove on unknown handle = %v, want nil", got)
	}
}

func TestTable_Each(t *testing.T) {
	tbl := New[uint64, shadowBuffer]()
	tbl.Insert(1, &shadowBuffer{size: 1})
	tbl.Insert(2, &shadowBuffer{size: 2})

	seen := map[uint64]uint64{}
	tbl.Each(func(h uint64, s *shadowBuffer) {
		seen[h] = s.size
	})

	if len(seen) != 2 || seen[1] != 1 || seen[2] != 2 {
		t.Fatalf("Each visited %v, want {1:1 2:2}", seen)
	}
}

func TestGlobal_BindFindUnbind(t *testing.T) {
	g := &Global{byKey: make(map[Key]entry)}

	type shadowInstance struct{ name string }
	key := Key(0x1000)

	if g.Find(key) != nil {
		t.Fatalf("Find on unbound key, want nil")
	}

	g.Bind(key, &shadowInstance{name: "test"})
	shadow, ok := g.Find(key).(*shadowInstance)
	if !ok || shadow.name != "test" {
		t.Fatalf("Find(%v) = %v, want shadowInstance{test}", key, g.Find(key))
	}
	if g.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", g.Len())
	}

	g.Unbind(key)
	if g.Find(key) != nil {
		t.Fatalf("Find after Unbind, want nil")
	}
}
