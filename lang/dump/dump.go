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

// Package dump provides debug-only renderings of a program's source,
// token stream and label table, for use by cmd/tbi's -dump-* flags.
package dump

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/go-tbi/tbi/vm"
)

// DefaultRuleWidth is the width of the horizontal rules in dump output
// when the output is not a terminal (or its width cannot be determined).
const DefaultRuleWidth = 50

func rule(w *bufio.Writer, ch byte, width int) {
	w.WriteString(strings.Repeat(string(ch), width))
	w.WriteByte('\n')
}

// Source writes src line-numbered, bracketed by a header/footer rule and a
// final line/char count, the way the original interpreter's DispSource
// did for inspecting a loaded program.
func Source(w io.Writer, src []byte, ruleWidth int) error {
	bw := bufio.NewWriter(w)
	rule(bw, '=', ruleWidth)
	bw.WriteString("\nSource File:\n\n")

	line := 1
	fmt.Fprintf(bw, "%3d   ", line)
	chCount := 0
	for _, b := range src {
		if b == '\n' {
			line++
			fmt.Fprintf(bw, "\n%3d   ", line)
		} else {
			bw.WriteByte(b)
		}
		chCount++
	}

	fmt.Fprintf(bw, "\n\nLines = %d, Chars = %d\n", line, chCount)
	rule(bw, '=', ruleWidth)
	bw.WriteString("\n\n")
	return bw.Flush()
}

// Tokens re-scans src from the start and writes one line per token: its
// source line and a human-readable description, mirroring the original
// interpreter's DispTokens.
func Tokens(w io.Writer, src []byte, ruleWidth int) error {
	bw := bufio.NewWriter(w)
	rule(bw, '=', ruleWidth)
	bw.WriteString("\nTokens:\n\n")
	bw.WriteString("Line  Token\n")
	rule(bw, '-', ruleWidth)

	scan := vm.NewScanner(src)
	diag := vm.NewSilentDiagnostics()

	count := 0
	for {
		tok := scan.ReadToken(diag)
		if tok.Kind == vm.EOF {
			break
		}
		count++

		switch tok.Kind {
		case vm.VAR:
			fmt.Fprintf(bw, "%3d   Token = Variable, Value = %s\n", scan.Line(), tok.Lexeme)
		case vm.NUM:
			fmt.Fprintf(bw, "%3d   Token = Number, Value = %s\n", scan.Line(), tok.Lexeme)
		case vm.STR:
			fmt.Fprintf(bw, "%3d   Token = String, Value = %s\n", scan.Line(), tok.Lexeme)
		case vm.EOL:
			fmt.Fprintf(bw, "%3d   Token = EOL\n", scan.Line()-1)
		case vm.INVALID:
			fmt.Fprintf(bw, "%3d   Token = Error\n", scan.Line()-1)
		default:
			fmt.Fprintf(bw, "%3d   Token = %s\n", scan.Line(), tok.Kind)
		}
	}

	rule(bw, '-', ruleWidth)
	fmt.Fprintf(bw, "\nTokens = %d\n", count)
	rule(bw, '=', ruleWidth)
	bw.WriteString("\n\n")
	return bw.Flush()
}

// Labels writes the label table built during preprocessing: name, line and
// cursor position, matching the shape of the original's LblTblDisplay.
func Labels(w io.Writer, labels *vm.LabelTable, ruleWidth int) error {
	bw := bufio.NewWriter(w)

	all := labels.All()
	if len(all) == 0 {
		bw.WriteString("Label table is empty.\n\n")
		return bw.Flush()
	}

	rule(bw, '=', ruleWidth)
	bw.WriteString("\nLabel Table:\n\n")
	bw.WriteString("Name  Line   Pos\n")
	rule(bw, '-', ruleWidth)

	for _, l := range all {
		fmt.Fprintf(bw, "%-5s %4d   %d\n", l.Name, l.Line, l.Pos)
	}

	rule(bw, '-', ruleWidth)
	fmt.Fprintf(bw, "\nLabels = %d\n", len(all))
	rule(bw, '=', ruleWidth)
	bw.WriteString("\n\n")
	return bw.Flush()
}
