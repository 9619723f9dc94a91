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

// Variables holds the 26 single-letter numeric cells A..Z, the original
// interpreter's entire namespace. Names are case folded: "a" and "A" refer
// to the same cell.
type Variables struct {
	cells [26]float64
}

// IsVarName reports whether b is a legal variable name byte (A-Z or a-z).
func IsVarName(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

func varIndex(name byte) int {
	if name >= 'a' && name <= 'z' {
		name -= 'a' - 'A'
	}
	return int(name - 'A')
}

// Get returns the current value of the variable named name.
func (v *Variables) Get(name byte) float64 {
	return v.cells[varIndex(name)]
}

// Set stores val into the variable named name.
func (v *Variables) Set(name byte, val float64) {
	v.cells[varIndex(name)] = val
}

// Reset zeroes every cell, as at the start of a fresh run.
func (v *Variables) Reset() {
	for i := range v.cells {
		v.cells[i] = 0
	}
}
