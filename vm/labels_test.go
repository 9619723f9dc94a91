package vm

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLabelTableInsertAndFind(t *testing.T) {
	tbl := NewLabelTable()

	if k := tbl.Insert("100", 42, 3); k != ErrNone {
		t.Fatalf("Insert: unexpected error %v", k)
	}
	if k := tbl.Insert("100", 99, 9); k != ErrLblDupl {
		t.Fatalf("Insert duplicate: got %v, want ErrLblDupl", k)
	}

	got, ok := tbl.Find("100")
	if !ok {
		t.Fatal("Find(100): not found")
	}
	want := Label{Name: "100", Pos: 42, Line: 3}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Find(100) mismatch (-want +got):\n%s", diff)
	}

	if _, ok := tbl.Find("200"); ok {
		t.Fatal("Find(200): expected miss")
	}
}

func TestLabelTableFull(t *testing.T) {
	tbl := NewLabelTable()
	for n := 0; n < MaxLabels; n++ {
		name := string(rune('a' + n%26))
		if k := tbl.Insert(name+string(rune('0'+n/26)), n, n); k != ErrNone {
			t.Fatalf("Insert #%d: unexpected error %v", n, k)
		}
	}
	if k := tbl.Insert("overflow", 0, 0); k != ErrLblFull {
		t.Fatalf("Insert past capacity: got %v, want ErrLblFull", k)
	}
}

func TestLabelTableAllPreservesOrder(t *testing.T) {
	tbl := NewLabelTable()
	tbl.Insert("30", 1, 1)
	tbl.Insert("10", 2, 2)
	tbl.Insert("20", 3, 3)

	all := tbl.All()
	var names []string
	for _, l := range all {
		names = append(names, l.Name)
	}
	want := []string{"30", "10", "20"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("label order mismatch (-want +got):\n%s", diff)
	}
}
