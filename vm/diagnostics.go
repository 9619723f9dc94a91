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

import (
	"fmt"
	"io"

	"github.com/go-tbi/tbi/internal/tbio"
)

// MaxErrors is the number of reported errors after which the interpreter
// aborts the program.
const MaxErrors = 10

// Diagnostics records and reports runtime errors keyed by ErrorKind. It
// never unwinds: Report always returns, leaving the caller to supply its
// own safe default value.
type Diagnostics struct {
	w       *tbio.ErrWriter
	count   int
	aborted bool
}

// newDiagnostics wraps w for error reporting.
func newDiagnostics(w *tbio.ErrWriter) *Diagnostics {
	return &Diagnostics{w: w}
}

// NewSilentDiagnostics returns a Diagnostics that discards every report.
// It exists for callers that need to drive a Scanner (e.g. lang/dump)
// without surfacing scan errors.
func NewSilentDiagnostics() *Diagnostics {
	return &Diagnostics{w: tbio.NewErrWriter(io.Discard)}
}

// Report records a diagnostic for kind at the given source line, printing
// "ERROR: Line = <line>, Msg = <text>." and bumping the error counter. Once
// the counter reaches MaxErrors it prints the abort banner and sets Aborted;
// callers must check Aborted after every statement and stop executing.
func (d *Diagnostics) Report(kind ErrorKind, line int) {
	fmt.Fprintf(d.w, "ERROR: Line = %d, Msg = %s.\n", line, kind)
	d.count++
	if d.count >= MaxErrors && !d.aborted {
		d.aborted = true
		fmt.Fprint(d.w, "Too many errors. Program aborted.\n")
	}
}

// Count returns the number of diagnostics reported so far.
func (d *Diagnostics) Count() int { return d.count }

// Aborted reports whether the error threshold has been reached.
func (d *Diagnostics) Aborted() bool { return d.aborted }
