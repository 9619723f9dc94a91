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
	"bytes"
	"io"
	"os"

	"github.com/pkg/errors"
)

// Load reads a source file from disk, strips CR bytes (so CRLF and LF
// sources behave identically) and enforces MaxSourceSize. The result is
// ready to pass to New.
func Load(fileName string) ([]byte, error) {
	if fileName == "" {
		return nil, errors.New("file name is empty")
	}

	f, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrap(err, "open failed")
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, errors.Wrap(err, "fstat failed")
	}
	if st.Size() > MaxSourceSize {
		return nil, errors.Errorf("%s: source too large: %d bytes (max %d)", fileName, st.Size(), MaxSourceSize)
	}

	raw, err := io.ReadAll(f)
	if err != nil {
		return nil, errors.Wrap(err, "read failed")
	}

	return filterCR(raw), nil
}

// filterCR drops every CR byte from src, matching the original
// interpreter's line-ending normalization.
func filterCR(src []byte) []byte {
	if !bytes.ContainsRune(src, '\r') {
		return src
	}
	out := make([]byte, 0, len(src))
	for _, b := range src {
		if b != '\r' {
			out = append(out, b)
		}
	}
	return out
}
