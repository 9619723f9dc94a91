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

// Command tbi runs a BASIC source file to completion.
package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/pborman/getopt"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"

	"github.com/go-tbi/tbi/lang/dump"
	"github.com/go-tbi/tbi/vm"
)

func atExit(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "tbi: %v\n", err)
	os.Exit(1)
}

func ruleWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return dump.DefaultRuleWidth
}

func main() {
	var (
		precision  = getopt.IntLong("precision", 'p', 0, "initial display precision, 0-6")
		debug      = getopt.BoolLong("debug", 'd', "enable DEB_MODE trace output from the start")
		rawInput   = getopt.BoolLong("raw", 'r', "put the input terminal in raw mode for the duration of the run")
		dumpSource = getopt.BoolLong("dump-source", 0, "print the source file, line-numbered, and exit")
		dumpTokens = getopt.BoolLong("dump-tokens", 0, "print the token stream and exit")
		dumpLabels = getopt.BoolLong("dump-labels", 0, "print the label table and exit")
		help       = getopt.BoolLong("help", '?', "display this help")
	)
	getopt.SetParameters("<file.bas>")

	if err := getopt.Getopt(nil); err != nil {
		fmt.Fprintln(os.Stderr, err)
		getopt.PrintUsage(os.Stderr)
		os.Exit(1)
	}

	if *help || getopt.NArgs() != 1 {
		getopt.PrintUsage(os.Stderr)
		os.Exit(1)
	}

	fileName := getopt.Arg(0)

	src, err := vm.Load(fileName)
	if err != nil {
		atExit(err)
		return
	}

	width := ruleWidth()

	if *dumpSource {
		atExit(dump.Source(os.Stdout, src, width))
		return
	}

	var instOpts []vm.Option
	instOpts = append(instOpts, vm.WithPrecision(*precision))

	log := logrus.New()
	log.SetOutput(os.Stdout)
	instOpts = append(instOpts, vm.WithLogger(log))

	stdout := bufio.NewWriter(os.Stdout)
	instOpts = append(instOpts, vm.WithOutput(stdout))
	defer stdout.Flush()

	i, err := vm.New(src, instOpts...)
	if err != nil {
		atExit(errors.Wrap(err, "initialization failed"))
		return
	}

	if *dumpTokens {
		atExit(dump.Tokens(os.Stdout, src, width))
		return
	}
	if *dumpLabels {
		atExit(dump.Labels(os.Stdout, i.Labels(), width))
		return
	}

	if *debug {
		i.SetDebugMode(true)
	}

	if *rawInput && term.IsTerminal(int(os.Stdin.Fd())) {
		if restore, err := setRawIO(); err != nil {
			fmt.Fprintf(os.Stderr, "tbi: %v, continuing in cooked mode\n", err)
		} else {
			defer restore()
		}
	}

	if err := i.Run(); err != nil {
		stdout.Flush()
		atExit(err)
		return
	}

	stdout.Flush()
	if n := i.ErrorCount(); n >= vm.MaxErrors {
		os.Exit(1)
	}
}
