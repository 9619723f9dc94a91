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

// Package vm implements a tree-walking interpreter for a small BASIC
// dialect: a single-pass scanner, a precedence-climbing expression
// evaluator and a statement executor coordinating control flow through a
// handful of bounded stacks.
package vm

import (
	"bufio"
	"io"
	"math/rand"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/go-tbi/tbi/internal/tbio"
)

// Nesting capacities for the control-flow stacks, matching the original
// interpreter's fixed-size arrays.
const (
	MaxForNest   = 32
	MaxWhileNest = 32
	MaxDoNest    = 32
	MaxGosubNest = 32
)

// ForFrame is one live FOR ... NEXT loop: the counter variable, its bounds,
// and the cursor to jump back to on each iteration.
type ForFrame struct {
	Var     byte
	End     float64
	Step    float64
	BodyPos int
}

// WhileFrame is one live WHILE ... WEND loop: the condition to re-test on
// each WEND, and the cursor to jump back to while it holds.
type WhileFrame struct {
	Var     byte
	Op      TokenKind
	RHS     float64
	BodyPos int
}

// DoFrame is one live DO ... UNTIL loop: the condition tested at UNTIL, and
// the cursor of the DO header to jump back to while it fails.
type DoFrame struct {
	BodyPos int
	Var     byte
	Op      TokenKind
	RHS     float64
}

// Instance is one interpreter run: source buffer, scanner cursor, label
// table, variables, control-flow stacks and configuration. Every operation
// takes a mutable receiver; there is no state shared across Instances
// beyond what an Option explicitly wires in (e.g. a shared RNG source).
type Instance struct {
	src    []byte
	scan   *Scanner
	diag   *Diagnostics
	vars   Variables
	labels *LabelTable

	forStack   *Stack[ForFrame]
	whileStack *Stack[WhileFrame]
	doStack    *Stack[DoFrame]
	gosubStack *Stack[int]

	rng *rand.Rand

	precision int
	tracer    *tracer

	out *tbio.ErrWriter
	in  *bufio.Reader
}

// Option configures an Instance at construction time.
type Option func(*Instance)

// WithOutput directs PRINT, INPUT prompts and diagnostics to w instead of
// os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(i *Instance) { i.out = tbio.NewErrWriter(w) }
}

// WithInput directs INPUT to read from r instead of os.Stdin.
func WithInput(r io.Reader) Option {
	return func(i *Instance) { i.in = bufio.NewReader(r) }
}

// WithRNG installs an explicit random source, overriding the default one,
// which is seeded with 1.
func WithRNG(rng *rand.Rand) Option {
	return func(i *Instance) { i.rng = rng }
}

// WithLogger installs a logrus.Logger for DEB_MODE trace output, in place
// of a default logrus logger writing to standard error.
func WithLogger(log *logrus.Logger) Option {
	return func(i *Instance) { i.tracer = newTracer(log) }
}

// WithPrecision sets the initial display precision (0-6; out-of-range
// values are clamped), overriding the default of 0.
func WithPrecision(p int) Option {
	return func(i *Instance) {
		if p < 0 {
			p = 0
		}
		if p > 6 {
			p = 6
		}
		i.precision = p
	}
}

// New builds an Instance over src and runs the label-scan preprocessing
// pass. src must not exceed MaxSourceSize.
func New(src []byte, opts ...Option) (*Instance, error) {
	if len(src) > MaxSourceSize {
		return nil, errors.Errorf("source too large: %d bytes (max %d)", len(src), MaxSourceSize)
	}

	i := &Instance{
		src:        src,
		forStack:   NewStack[ForFrame](MaxForNest),
		whileStack: NewStack[WhileFrame](MaxWhileNest),
		doStack:    NewStack[DoFrame](MaxDoNest),
		gosubStack: NewStack[int](MaxGosubNest),
		rng:        rand.New(rand.NewSource(1)),
	}

	for _, opt := range opts {
		opt(i)
	}

	if i.out == nil {
		i.out = tbio.NewErrWriter(os.Stdout)
	}
	if i.in == nil {
		i.in = bufio.NewReader(os.Stdin)
	}
	if i.tracer == nil {
		i.tracer = newTracer(nil)
	}

	i.diag = newDiagnostics(i.out)
	i.labels = NewLabelTable()
	i.scan = NewScanner(src)

	scanLabels(i.scan, i.labels, i.diag)

	return i, nil
}

// ErrorCount returns the number of diagnostics reported so far.
func (i *Instance) ErrorCount() int { return i.diag.Count() }

// Precision returns the current display precision.
func (i *Instance) Precision() int { return i.precision }

// DebugMode reports whether DEB_MODE is currently ON.
func (i *Instance) DebugMode() bool { return i.tracer.Enabled() }

// SetDebugMode turns DEB_MODE trace output on or off, equivalent to
// running a DEB_MODE ON/OFF statement programmatically.
func (i *Instance) SetDebugMode(on bool) { i.tracer.SetEnabled(on) }

// Labels returns the label table built by the preprocessing pass.
func (i *Instance) Labels() *LabelTable { return i.labels }

// Run executes the program from the start of source until END or
// end-of-source, or until the diagnostic abort threshold is reached.
// Go-level failures (not BASIC runtime errors, which are reported via
// Diagnostics and never unwind) are recovered and returned as an error.
func (i *Instance) Run() (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = errors.Wrap(e, "interpreter panic")
			} else {
				err = errors.Errorf("interpreter panic: %v", r)
			}
		}
	}()

	i.scan.Seek(0)
	i.scan.SetLine(1)

	i.execCmd()
	return nil
}
