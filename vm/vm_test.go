package vm_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/go-tbi/tbi/vm"
)

func run(t *testing.T, src string, opts ...vm.Option) (*vm.Instance, string) {
	t.Helper()
	var out bytes.Buffer
	opts = append(opts, vm.WithOutput(&out))
	i, err := vm.New([]byte(src), opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := i.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	return i, out.String()
}

func TestHelloWorld(t *testing.T) {
	_, out := run(t, `PRINT "Hello, World!"`+"\n"+"END\n")
	if out != "Hello, World!\n" {
		t.Errorf("got %q", out)
	}
}

func TestSumOneToTen(t *testing.T) {
	src := "S = 0\n" +
		"FOR I = 1 TO 10\n" +
		"S = S + I\n" +
		"NEXT\n" +
		"PRINT S\n" +
		"END\n"
	_, out := run(t, src)
	if out != "55\n" {
		t.Errorf("got %q", out)
	}
}

func TestFactorialViaGosub(t *testing.T) {
	src := "N = 5\n" +
		"GOSUB 100\n" +
		"PRINT F\n" +
		"END\n" +
		"100\n" +
		"F = 1\n" +
		"C = N\n" +
		"WHILE C > 0\n" +
		"F = F * C\n" +
		"C = C - 1\n" +
		"WEND\n" +
		"RETURN\n"
	_, out := run(t, src)
	if out != "120\n" {
		t.Errorf("got %q", out)
	}
}

func TestIfElse(t *testing.T) {
	src := "X = 3\n" +
		"IF X > 5 THEN\n" +
		"PRINT \"big\"\n" +
		"ELSE\n" +
		"PRINT \"small\"\n" +
		"ENDIF\n" +
		"END\n"
	_, out := run(t, src)
	if out != "small\n" {
		t.Errorf("got %q", out)
	}
}

func TestWhileCountdown(t *testing.T) {
	src := "N = 3\n" +
		"WHILE N > 0\n" +
		"PRINT N\n" +
		"N = N - 1\n" +
		"WEND\n" +
		"END\n"
	_, out := run(t, src)
	if out != "3\n2\n1\n" {
		t.Errorf("got %q", out)
	}
}

func TestDoUntilRunsAtLeastOnce(t *testing.T) {
	src := "N = 0\n" +
		"DO\n" +
		"N = N + 1\n" +
		"PRINT N\n" +
		"UNTIL N >= 1\n" +
		"END\n"
	_, out := run(t, src)
	if out != "1\n" {
		t.Errorf("got %q", out)
	}
}

func TestDivisionByZeroReportsAndContinues(t *testing.T) {
	i, out := run(t, "X = 1 / 0\n"+"PRINT X\n"+"END\n")
	if i.ErrorCount() != 1 {
		t.Errorf("expected 1 diagnostic, got %d", i.ErrorCount())
	}
	if out != "ERROR: Line = 2, Msg = division by 0 is illegal.\n0\n" {
		t.Errorf("got %q", out)
	}
}

func TestUndefinedLabelReportsAndContinues(t *testing.T) {
	i, _ := run(t, "GOTO 999\n"+"END\n")
	if i.ErrorCount() != 1 {
		t.Errorf("expected 1 diagnostic, got %d", i.ErrorCount())
	}
}

func TestDuplicateLabelReportedAndFirstWins(t *testing.T) {
	src := "GOTO 10\n" +
		"END\n" +
		"10\n" +
		"PRINT \"first\"\n" +
		"GOTO 900\n" +
		"10\n" +
		"PRINT \"second\"\n" +
		"900\n" +
		"END\n"
	i, out := run(t, src)
	if i.ErrorCount() != 1 {
		t.Errorf("expected 1 diagnostic for duplicate label, got %d", i.ErrorCount())
	}
	if out != "ERROR: Line = 6, Msg = duplicate label.\nfirst\n" {
		t.Errorf("got %q", out)
	}
}

func TestTooManyErrorsAborts(t *testing.T) {
	var b strings.Builder
	for n := 0; n < vm.MaxErrors+5; n++ {
		b.WriteString("X = 1 / 0\n")
	}
	b.WriteString("END\n")
	i, _ := run(t, b.String())
	if i.ErrorCount() != vm.MaxErrors {
		t.Errorf("expected abort at %d errors, got %d", vm.MaxErrors, i.ErrorCount())
	}
}

func TestPrecisionFormatsOutput(t *testing.T) {
	_, out := run(t, "PRECISION 2\nPRINT 1/4\nEND\n")
	if out != "0.25\n" {
		t.Errorf("got %q", out)
	}
}

func TestPrecisionClampsToSix(t *testing.T) {
	i, _ := run(t, "PRECISION 9\nEND\n")
	if i.Precision() != 6 {
		t.Errorf("expected clamp to 6, got %d", i.Precision())
	}
}

func TestModuloRoundsNonIntegerOperands(t *testing.T) {
	i, out := run(t, "PRINT 7.6 % 3\nEND\n")
	if i.ErrorCount() != 1 {
		t.Errorf("expected 1 diagnostic for non-integer modulus operand, got %d", i.ErrorCount())
	}
	if out != "ERROR: Line = 2, Msg = % operands must be integers.\n2\n" {
		t.Errorf("got %q", out)
	}
}

func TestBreakExitsLoop(t *testing.T) {
	src := "FOR I = 1 TO 5\n" +
		"IF I = 3 THEN\n" +
		"BREAK\n" +
		"ENDIF\n" +
		"PRINT I\n" +
		"NEXT\n" +
		"END\n"
	_, out := run(t, src)
	if out != "1\n2\n" {
		t.Errorf("got %q", out)
	}
}

func TestContinueSkipsRestOfBody(t *testing.T) {
	src := "FOR I = 1 TO 3\n" +
		"IF I = 2 THEN\n" +
		"CONTINUE\n" +
		"ENDIF\n" +
		"PRINT I\n" +
		"NEXT\n" +
		"END\n"
	_, out := run(t, src)
	if out != "1\n3\n" {
		t.Errorf("got %q", out)
	}
}

func TestBuiltinFunctions(t *testing.T) {
	cases := []struct {
		expr string
		want string
	}{
		{"ABS(-4)", "4"},
		{"SGN(-4)", "-1"},
		{"CINT(2.5)", "3"},
		{"FIX(2.9)", "2"},
		{"SQR(9)", "3"},
		{"POW(2, 5)", "32"},
	}
	for _, c := range cases {
		_, out := run(t, "PRINT "+c.expr+"\nEND\n")
		if out != c.want+"\n" {
			t.Errorf("%s: got %q, want %q", c.expr, out, c.want)
		}
	}
}

func TestCommentsAreSkipped(t *testing.T) {
	src := "REM this is a comment\n" +
		"PRINT 1\n" +
		"END\n"
	_, out := run(t, src)
	if out != "1\n" {
		t.Errorf("got %q", out)
	}
}

func TestVariableNamesAreCaseInsensitive(t *testing.T) {
	_, out := run(t, "a = 7\nPRINT A\nEND\n")
	if out != "7\n" {
		t.Errorf("got %q", out)
	}
}

func TestMissingEndIsReported(t *testing.T) {
	i, _ := run(t, "PRINT 1\n")
	if i.ErrorCount() != 1 {
		t.Errorf("expected ErrEndMissing, got %d diagnostics", i.ErrorCount())
	}
}
