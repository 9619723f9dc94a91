// This file is part of tbi.
//
// Copyright 2016 Denis Bernard <db047h@gmail.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package vm

import "fmt"

// execCmd is the statement dispatch loop: the entry point of a run. It
// reads one token at a time and hands control to the matching Exec*
// handler until END or end-of-source is reached, or the diagnostic abort
// threshold trips.
func (i *Instance) execCmd() {
	tok := i.scan.ReadToken(i.diag)

	for {
		if i.diag.Aborted() {
			return
		}

		switch tok.Kind {
		case VAR:
			i.execAssign()
		case IF:
			i.execIf()
		case ELSE:
			i.execElse()
		case ENDIF:
			i.execEndIf()
		case GOTO:
			i.execGoto()
		case GOSUB:
			i.execGosub()
		case RETURN:
			i.execReturn()
		case FOR:
			i.execFor()
		case NEXT:
			i.execNext()
		case WHILE:
			i.execWhile()
		case WEND:
			i.execWend()
		case DO:
			i.execDo()
		case UNTIL:
			i.execUntil()
		case BREAK:
			i.execBreak()
		case CONTINUE:
			i.execContinue()
		case INPUT:
			i.execInput()
		case PRINT:
			i.execPrint()
		case RANDOMIZE:
			i.execRandomize()
		case PRECISION:
			i.execPrecision()
		case DEBMODE:
			i.execDebMode()
		case END, EOF:
			if tok.Kind != END {
				i.diag.Report(ErrEndMissing, i.scan.Line())
			}
			return
		default:
			i.scan.ReadToken(i.diag)
		}

		tok = i.scan.Token()
	}
}

// skipUntil advances the scanner, discarding tokens, until one of the
// target kinds (or END/EOF, which always stop the scan) is reached. It
// returns the terminating token's kind. Like the original interpreter,
// this scan is flat: it does not track nesting depth, so a target keyword
// belonging to a nested block of the same kind stops the skip early.
func (i *Instance) skipUntil(targets ...TokenKind) TokenKind {
	for {
		tok := i.scan.ReadToken(i.diag)
		if tok.Kind == END || tok.Kind == EOF {
			return tok.Kind
		}
		for _, t := range targets {
			if tok.Kind == t {
				return tok.Kind
			}
		}
	}
}

// execAssign implements "var = expr".
func (i *Instance) execAssign() {
	name := i.scan.Token().Lexeme[0]
	i.scan.ReadToken(i.diag) // read =

	if i.scan.Token().Kind != EQ {
		i.diag.Report(ErrEqMissing, i.scan.Line())
		return
	}

	i.scan.ReadToken(i.diag) // read expr
	value := i.evalExpr()
	i.vars.Set(name, value)
}

// execIf implements "IF expr THEN", skipping to ELSE/ENDIF when expr is
// false.
func (i *Instance) execIf() {
	i.scan.ReadToken(i.diag) // read expr
	res := i.evalExpr()

	if i.scan.Token().Kind != THEN {
		i.diag.Report(ErrThenMissing, i.scan.Line())
		return
	}
	i.scan.ReadToken(i.diag)

	if res == 0 {
		i.skipUntil(ELSE, ENDIF)
	}
	i.scan.ReadToken(i.diag)
}

// execElse implements the ELSE branch of a taken IF: its block was just
// executed, so the ELSE block is skipped.
func (i *Instance) execElse() {
	i.skipUntil(ENDIF)
	i.scan.ReadToken(i.diag)
}

// execEndIf is a no-op marker; it simply reads past itself.
func (i *Instance) execEndIf() {
	i.scan.ReadToken(i.diag)
}

// execGoto implements "GOTO label".
func (i *Instance) execGoto() {
	i.scan.ReadToken(i.diag) // read label

	if i.scan.Token().Kind != NUM {
		i.diag.Report(ErrLblMissing, i.scan.Line())
		return
	}

	lbl, ok := i.labels.Find(i.scan.Token().Lexeme)
	if !ok {
		i.diag.Report(ErrLblUndef, i.scan.Line())
		return
	}

	i.scan.Seek(lbl.Pos)
	i.scan.ReadToken(i.diag)
}

// execGosub implements "GOSUB label": pushes a return address, then
// jumps exactly like GOTO.
func (i *Instance) execGosub() {
	i.scan.ReadToken(i.diag) // read label

	if i.scan.Token().Kind != NUM {
		i.diag.Report(ErrLblMissing, i.scan.Line())
		return
	}

	lbl, ok := i.labels.Find(i.scan.Token().Lexeme)
	if !ok {
		i.diag.Report(ErrLblUndef, i.scan.Line())
		return
	}

	if !i.gosubStack.Push(i.scan.Cursor()) {
		i.diag.Report(ErrGosubFull, i.scan.Line())
		return
	}

	i.scan.Seek(lbl.Pos)
	i.scan.ReadToken(i.diag)
}

// execReturn implements RETURN: pops the GOSUB stack and resumes there.
func (i *Instance) execReturn() {
	pos, ok := i.gosubStack.Pop()
	if !ok {
		i.diag.Report(ErrRetWithoutGosub, i.scan.Line())
		return
	}
	i.scan.Seek(pos)
	i.scan.ReadToken(i.diag)
}

// execFor implements "FOR var = start TO end [STEP step]".
func (i *Instance) execFor() {
	i.scan.ReadToken(i.diag) // read var name

	if i.scan.Token().Kind != VAR {
		i.diag.Report(ErrNotVar, i.scan.Line())
		return
	}
	name := i.scan.Token().Lexeme[0]
	i.scan.ReadToken(i.diag) // read =

	if i.scan.Token().Kind != EQ {
		i.diag.Report(ErrEqMissing, i.scan.Line())
		return
	}

	i.scan.ReadToken(i.diag) // read start
	start := i.evalExpr()

	if i.scan.Token().Kind != TO {
		i.diag.Report(ErrToMissing, i.scan.Line())
		return
	}

	i.scan.ReadToken(i.diag) // read end
	end := i.evalExpr()

	step := 1.0
	if i.scan.Token().Kind == STEP {
		i.scan.ReadToken(i.diag) // read step
		step = i.evalExpr()
		if step == 0 {
			i.diag.Report(ErrStepZero, i.scan.Line())
			step = 1
		}
	}

	var skipLoop bool
	if step > 0 {
		skipLoop = start > end
	} else {
		skipLoop = start < end
	}

	if skipLoop {
		i.skipUntil(NEXT)
		if i.scan.Token().Kind != NEXT {
			i.diag.Report(ErrNextMissing, i.scan.Line())
		} else {
			i.scan.ReadToken(i.diag)
		}
		return
	}

	i.vars.Set(name, start)
	if !i.forStack.Push(ForFrame{Var: name, End: end, Step: step, BodyPos: i.scan.Cursor()}) {
		i.diag.Report(ErrForFull, i.scan.Line())
		return
	}
	i.scan.ReadToken(i.diag) // read 1st token of body
}

// execNext implements NEXT: advances the loop counter and either repeats
// the body or falls through.
func (i *Instance) execNext() {
	frame, ok := i.forStack.Top()
	if !ok {
		i.diag.Report(ErrNextWithoutFor, i.scan.Line())
		return
	}

	value := i.vars.Get(frame.Var) + frame.Step
	i.vars.Set(frame.Var, value)

	var skipLoop bool
	if frame.Step > 0 {
		skipLoop = value > frame.End
	} else {
		skipLoop = value < frame.End
	}

	if skipLoop {
		i.vars.Set(frame.Var, value-frame.Step)
		i.forStack.Pop()
		i.scan.ReadToken(i.diag)
		return
	}

	i.scan.Seek(frame.BodyPos)
	i.scan.ReadToken(i.diag)
}

// execWhile implements "WHILE var rel_op expr".
func (i *Instance) execWhile() {
	i.scan.ReadToken(i.diag) // read var name

	if i.scan.Token().Kind != VAR {
		i.diag.Report(ErrNotVar, i.scan.Line())
		return
	}
	name := i.scan.Token().Lexeme[0]
	value := i.vars.Get(name)

	op := i.scan.ReadToken(i.diag).Kind // read op
	if !op.IsRelational() {
		i.diag.Report(ErrRelOpMissing, i.scan.Line())
		return
	}

	i.scan.ReadToken(i.diag) // read expr
	rhs := i.evalExpr()

	if !i.compare(op, value, rhs) {
		i.skipUntil(WEND)
		if i.scan.Token().Kind == WEND {
			i.scan.ReadToken(i.diag)
		} else {
			i.diag.Report(ErrWendMissing, i.scan.Line())
		}
		return
	}

	if i.whileStack.Full() {
		i.diag.Report(ErrTooManyWhileNest, i.scan.Line())
		return
	}

	i.whileStack.Push(WhileFrame{Var: name, Op: op, RHS: rhs, BodyPos: i.scan.Cursor()})
	i.scan.ReadToken(i.diag) // read 1st token of body
}

// execWend implements WEND: re-tests the loop condition and either repeats
// the body or exits.
func (i *Instance) execWend() {
	frame, ok := i.whileStack.Top()
	if !ok {
		i.diag.Report(ErrWendWithoutWhile, i.scan.Line())
		return
	}

	value := i.vars.Get(frame.Var)

	if !i.compare(frame.Op, value, frame.RHS) {
		i.whileStack.Pop()
		i.scan.ReadToken(i.diag)
		return
	}

	i.scan.Seek(frame.BodyPos)
	i.scan.ReadToken(i.diag)
}

// execDo implements DO: records the loop header position.
func (i *Instance) execDo() {
	i.doStack.Push(DoFrame{BodyPos: i.scan.Cursor()})
	i.scan.ReadToken(i.diag)
}

// execUntil implements "UNTIL var rel_op expr": exits the loop once the
// condition holds, otherwise jumps back to the matching DO.
func (i *Instance) execUntil() {
	i.scan.ReadToken(i.diag) // read var name

	if i.scan.Token().Kind != VAR {
		i.diag.Report(ErrNotVar, i.scan.Line())
		return
	}
	name := i.scan.Token().Lexeme[0]
	value := i.vars.Get(name)

	op := i.scan.ReadToken(i.diag).Kind // read op
	if !op.IsRelational() {
		i.diag.Report(ErrRelOpMissing, i.scan.Line())
		return
	}

	i.scan.ReadToken(i.diag) // read expr
	rhs := i.evalExpr()

	if i.doStack.Empty() {
		i.diag.Report(ErrUntilWithoutDo, i.scan.Line())
		return
	}

	if i.compare(op, value, rhs) {
		i.doStack.Pop()
		i.scan.ReadToken(i.diag)
		return
	}

	if i.doStack.Full() {
		i.diag.Report(ErrTooManyDoNest, i.scan.Line())
		return
	}

	frame, _ := i.doStack.Pop()
	frame.Var, frame.Op, frame.RHS = name, op, rhs
	i.doStack.Push(frame)
	i.scan.Seek(frame.BodyPos)
	i.scan.ReadToken(i.diag)
}

// execBreak implements BREAK: jumps past the enclosing loop terminator
// without popping its frame (matching the original's behavior -- a
// subsequent loop-matching terminator of the same kind still sees a stale
// frame on its stack).
func (i *Instance) execBreak() {
	i.skipUntil(NEXT, WEND, UNTIL)
	i.scan.ReadToken(i.diag)
}

// execContinue implements CONTINUE: jumps to the loop's terminator so its
// normal re-test/advance logic runs.
func (i *Instance) execContinue() {
	i.skipUntil(NEXT, WEND, UNTIL)
}

// execInput implements "INPUT [prompt,] var".
func (i *Instance) execInput() {
	i.scan.ReadToken(i.diag) // read prompt or var name

	if i.scan.Token().Kind == STR {
		fmt.Fprintf(i.out, "%s ", i.scan.Token().Lexeme)
		i.scan.ReadToken(i.diag) // read ,

		if i.scan.Token().Kind != COMMA {
			i.diag.Report(ErrCommaMissing, i.scan.Line())
			return
		}
		i.scan.ReadToken(i.diag) // read var name
	} else {
		fmt.Fprint(i.out, "? ")
	}

	if i.scan.Token().Kind != VAR {
		i.diag.Report(ErrVarMissing, i.scan.Line())
		return
	}
	name := i.scan.Token().Lexeme[0]

	var value float64
	fmt.Fscan(i.in, &value)
	i.vars.Set(name, value)
	i.scan.ReadToken(i.diag)
}

// execPrint implements PRINT: a comma/semicolon-separated list of string
// literals and expressions. Comma prints a space, semicolon a tab.
func (i *Instance) execPrint() {
	i.scan.ReadToken(i.diag)

	for {
		switch i.scan.Token().Kind {
		case EOL, EOF, END:
			fmt.Fprintln(i.out)
			if i.scan.Token().Kind == EOL {
				i.scan.ReadToken(i.diag)
			}
			return

		case COMMA:
			fmt.Fprint(i.out, " ")
			i.scan.ReadToken(i.diag)

		case SEMI:
			fmt.Fprint(i.out, "\t")
			i.scan.ReadToken(i.diag)

		case STR:
			fmt.Fprint(i.out, i.scan.Token().Lexeme)
			i.scan.ReadToken(i.diag)

		default:
			value := i.evalExpr()
			fmt.Fprint(i.out, dispFloat(value, i.precision))
		}
	}
}

// execRandomize implements "RANDOMIZE seed".
func (i *Instance) execRandomize() {
	i.scan.ReadToken(i.diag) // read seed
	value := i.evalExpr()

	if value < 0 {
		i.diag.Report(ErrRandArgNeg, i.scan.Line())
		value = -value
	}
	if !isInt(value) {
		i.diag.Report(ErrRandArgInt, i.scan.Line())
		value = roundOff(value)
	}

	seed := int64(value)
	i.rng.Seed(seed)
	i.tracer.seed(value)
}

// execPrecision implements "PRECISION prec".
func (i *Instance) execPrecision() {
	i.scan.ReadToken(i.diag) // read prec
	value := i.evalExpr()

	if value < 0 {
		i.diag.Report(ErrPrecArgNeg, i.scan.Line())
		value = 0
	}
	if !isInt(value) {
		i.diag.Report(ErrPrecArgInt, i.scan.Line())
		value = roundOff(value)
	}

	p := int(value)
	if p > 6 {
		p = 6
	}
	i.precision = p
	i.tracer.precision(p)
}

// execDebMode implements "DEB_MODE ON|OFF".
func (i *Instance) execDebMode() {
	i.scan.ReadToken(i.diag) // read ON/OFF

	tok := i.scan.Token().Kind
	if tok != ON && tok != OFF {
		i.diag.Report(ErrOnOffMissing, i.scan.Line())
		return
	}

	i.tracer.SetEnabled(tok == ON)
	i.scan.ReadToken(i.diag)
	i.tracer.debMode(tok == ON)
}
