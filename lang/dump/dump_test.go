package dump

import (
	"bytes"
	"strings"
	"testing"

	"github.com/go-tbi/tbi/vm"
)

func TestSourceNumbersEveryLine(t *testing.T) {
	var buf bytes.Buffer
	if err := Source(&buf, []byte("PRINT 1\nEND\n"), 10); err != nil {
		t.Fatalf("Source: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "1   PRINT 1") {
		t.Errorf("missing line 1 in output:\n%s", out)
	}
	if !strings.Contains(out, "2   END") {
		t.Errorf("missing line 2 in output:\n%s", out)
	}
	if !strings.Contains(out, "Lines = 3, Chars = 12") {
		t.Errorf("missing line/char count in output:\n%s", out)
	}
}

func TestTokensCountsEveryToken(t *testing.T) {
	var buf bytes.Buffer
	if err := Tokens(&buf, []byte("X = 1\n"), 10); err != nil {
		t.Fatalf("Tokens: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Token = Variable, Value = X") {
		t.Errorf("missing variable token in output:\n%s", out)
	}
	if !strings.Contains(out, "Token = Number, Value = 1") {
		t.Errorf("missing number token in output:\n%s", out)
	}
	if !strings.Contains(out, "Tokens = 4") {
		t.Errorf("missing token count in output:\n%s", out)
	}
}

func TestLabelsEmptyTable(t *testing.T) {
	var buf bytes.Buffer
	if err := Labels(&buf, vm.NewLabelTable(), 10); err != nil {
		t.Fatalf("Labels: %v", err)
	}
	if buf.String() != "Label table is empty.\n\n" {
		t.Errorf("got %q", buf.String())
	}
}

func TestLabelsListsEachEntry(t *testing.T) {
	tbl := vm.NewLabelTable()
	tbl.Insert("100", 0, 3)
	tbl.Insert("200", 20, 7)

	var buf bytes.Buffer
	if err := Labels(&buf, tbl, 10); err != nil {
		t.Fatalf("Labels: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "100") || !strings.Contains(out, "200") {
		t.Errorf("missing label names in output:\n%s", out)
	}
	if !strings.Contains(out, "Labels = 2") {
		t.Errorf("missing label count in output:\n%s", out)
	}
}
