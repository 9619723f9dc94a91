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

import "github.com/sirupsen/logrus"

// tracer emits one structured log entry per evaluator/executor step when
// DEB_MODE is ON, replacing the original interpreter's scattered
// conditional printfs. It is silent (logrus' default Info level) unless
// debug mode is active, in which case entries go out at Debug level.
type tracer struct {
	log     *logrus.Logger
	enabled bool
}

func newTracer(log *logrus.Logger) *tracer {
	if log == nil {
		log = logrus.New()
	}
	return &tracer{log: log}
}

// SetEnabled toggles whether trace entries are emitted, mirroring the
// DEB_MODE ON/OFF command. It also raises the logger to Debug level so the
// entries actually reach their output; logrus' default Info level would
// otherwise filter every one of them out.
func (t *tracer) SetEnabled(v bool) {
	t.enabled = v
	if v {
		t.log.SetLevel(logrus.DebugLevel)
	}
}

// Enabled reports the current DEB_MODE state.
func (t *tracer) Enabled() bool { return t.enabled }

func (t *tracer) binOp(op TokenKind, opnd1, opnd2, res float64, precision int) {
	if !t.enabled {
		return
	}
	t.log.WithFields(logrus.Fields{
		"op":    op.String(),
		"opnd1": dispFloat(opnd1, precision),
		"opnd2": dispFloat(opnd2, precision),
		"res":   dispFloat(res, precision),
	}).Debug("eval")
}

func (t *tracer) logicOp(op TokenKind, opnd1, opnd2, res float64) {
	if !t.enabled {
		return
	}
	t.log.WithFields(logrus.Fields{
		"op":    op.String(),
		"opnd1": dispLogValue(opnd1),
		"opnd2": dispLogValue(opnd2),
		"res":   dispLogValue(res),
	}).Debug("eval")
}

func (t *tracer) not(opnd, res float64) {
	if !t.enabled {
		return
	}
	t.log.WithFields(logrus.Fields{
		"opnd": dispLogValue(opnd),
		"res":  dispLogValue(res),
	}).Debug("NOT")
}

func (t *tracer) unary(op TokenKind, opnd, res float64, precision int) {
	if !t.enabled {
		return
	}
	t.log.WithFields(logrus.Fields{
		"op":   op.String(),
		"opnd": dispFloat(opnd, precision),
		"res":  dispFloat(res, precision),
	}).Debug("eval")
}

func (t *tracer) compare(op TokenKind, opnd1, opnd2 float64, res bool, precision int) {
	if !t.enabled {
		return
	}
	t.log.WithFields(logrus.Fields{
		"op":    op.String(),
		"opnd1": dispFloat(opnd1, precision),
		"opnd2": dispFloat(opnd2, precision),
		"res":   dispLogValue(boolToFloat(res)),
	}).Debug("compare")
}

func (t *tracer) fn(name string, precision int, args ...float64) func(res float64) {
	if !t.enabled {
		return func(float64) {}
	}
	rendered := make([]string, len(args))
	for i, a := range args {
		rendered[i] = dispFloat(a, precision)
	}
	return func(res float64) {
		fields := logrus.Fields{"fn": name, "res": dispFloat(res, precision)}
		for i, a := range rendered {
			fields[argName(i)] = a
		}
		t.log.WithFields(fields).Debug("call")
	}
}

func argName(i int) string {
	names := []string{"a", "b", "c"}
	if i < len(names) {
		return names[i]
	}
	return "x"
}

func (t *tracer) seed(value float64) {
	if !t.enabled {
		return
	}
	t.log.WithField("seed", dispFloat(value, 0)).Debug("RANDOMIZE")
}

func (t *tracer) precision(value int) {
	if !t.enabled {
		return
	}
	t.log.WithField("precision", value).Debug("PRECISION")
}

func (t *tracer) debMode(on bool) {
	if !t.enabled {
		return
	}
	state := "OFF"
	if on {
		state = "ON"
	}
	t.log.WithField("state", state).Debug("DEB_MODE")
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
