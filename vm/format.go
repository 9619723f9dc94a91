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

import "github.com/go-tbi/tbi/internal/tbio"

// dispFloat renders num with the interpreter's configured decimal
// precision, delegating the actual rounding/formatting rules to
// tbio.FormatNumber.
func dispFloat(num float64, precision int) string {
	return tbio.FormatNumber(num, precision)
}

// dispLogValue renders a truthiness value (0 or non-0) as TRUE or FALSE,
// the BASIC dialect's only boolean display form.
func dispLogValue(v float64) string {
	if v != 0 {
		return "TRUE"
	}
	return "FALSE"
}

// isInt reports whether num has no fractional part.
func isInt(num float64) bool {
	return num == float64(int64(num))
}

// roundOff rounds num to the nearest integer, half away from zero: 2.5 ->
// 3, -2.5 -> -3.
func roundOff(num float64) float64 {
	if num < 0 {
		return -float64(int64(-num + 0.5))
	}
	return float64(int64(num + 0.5))
}

// truncFloat truncates num toward zero: 2.9 -> 2, -2.9 -> -2.
func truncFloat(num float64) float64 {
	if num < 0 {
		return -float64(int64(-num))
	}
	return float64(int64(num))
}
