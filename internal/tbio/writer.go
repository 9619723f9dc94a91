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

// Package tbio holds small I/O helpers used by the vm package: a
// sticky-error writer wrapper and the fixed-precision decimal formatter
// used for BASIC's numeric output.
package tbio

import (
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ErrWriter is a simple wrapper to track io errors. Write keeps returning
// the last error over and over once one occurs, so callers can issue a
// sequence of writes and check Err only once at the end.
type ErrWriter struct {
	w   io.Writer
	Err error
}

// NewErrWriter returns a new ErrWriter wrapping w.
func NewErrWriter(w io.Writer) *ErrWriter {
	return &ErrWriter{w: w}
}

func (w *ErrWriter) Write(p []byte) (n int, err error) {
	if w.Err != nil {
		return 0, w.Err
	}
	n, err = w.w.Write(p)
	if err != nil {
		w.Err = errors.Wrap(err, "write failed")
	}
	return n, w.Err
}

// FormatNumber renders x with exactly ndp decimal places (0 <= ndp <= 6,
// clamped), matching the original interpreter's DispFloat: a leading '-' if
// negative, the rounded integer part, and (when ndp > 0) a '.' followed by
// ndp digits, zero-padded on either side as needed. Zero always prints as
// "0" or "0.000...0". There is no scientific notation.
func FormatNumber(x float64, ndp int) string {
	if ndp > 6 {
		ndp = 6
	}
	if ndp < 0 {
		ndp = 0
	}

	var b strings.Builder

	if x == 0 {
		b.WriteByte('0')
		if ndp > 0 {
			b.WriteByte('.')
			b.WriteString(strings.Repeat("0", ndp))
		}
		return b.String()
	}

	neg := x < 0
	if neg {
		x = -x
	}

	scale := 1.0
	for i := 0; i < ndp; i++ {
		scale *= 10
	}
	scaled := float64(int64(x*scale + 0.5))

	ip := int64(scaled / scale)
	fp := int64(scaled) - ip*int64(scale)

	if neg {
		b.WriteByte('-')
	}
	b.WriteString(strconv.FormatInt(ip, 10))
	if ndp == 0 {
		return b.String()
	}
	b.WriteByte('.')
	frac := strconv.FormatInt(fp, 10)
	if pad := ndp - len(frac); pad > 0 {
		b.WriteString(strings.Repeat("0", pad))
	}
	b.WriteString(frac)
	return b.String()
}
