package sparse

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestMatrixAccumulate(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ccgsrl.rerank")
	defer teardown()
	//
	M := NewFloatMatrix(10, 10)
	M.Accumulate(2, 3, 1.5).Accumulate(2, 3, 1.0)
	if M.ValueCount() != 1 {
		t.Errorf("expected 1 position set, have %d", M.ValueCount())
	}
	if e := M.Entries(); len(e) != 1 || e[0].Value != 2.5 {
		t.Errorf("expected accumulated 2.5 at (2,3), have %v", e)
	}
}

func TestMatrixOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ccgsrl.rerank")
	defer teardown()
	//
	M := NewFloatMatrix(5, 5)
	M.Accumulate(3, 1, 1).Accumulate(0, 4, 2).Accumulate(3, 0, 3).Accumulate(1, 1, 4)
	entries := M.Entries()
	expected := [][2]int{{0, 4}, {1, 1}, {3, 0}, {3, 1}}
	if len(entries) != len(expected) {
		t.Fatalf("expected %d entries, have %d", len(expected), len(entries))
	}
	for k, e := range entries {
		if e.Row != expected[k][0] || e.Col != expected[k][1] {
			t.Errorf("expected entry %d at %v, is (%d,%d)", k, expected[k], e.Row, e.Col)
		}
	}
	entries[0].Value = 99
	if M.Entries()[0].Value != 2 {
		t.Errorf("expected Entries to return a copy")
	}
}

func TestMatrixOutOfRange(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ccgsrl.rerank")
	defer teardown()
	//
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected panic for index out of range")
		}
	}()
	NewFloatMatrix(2, 2).Accumulate(2, 0, 1)
}
