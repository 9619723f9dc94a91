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

// scanLabels runs once before execution: it walks every token from the
// start of source, and for every NUM token that is the first token of its
// line, records a label at the cursor position immediately following it.
// Any other first-of-line token causes the rest of the line to be skipped
// untouched. The scanner is reset to the start of source when done.
func scanLabels(s *Scanner, labels *LabelTable, diag *Diagnostics) {
	s.Seek(0)
	s.SetLine(1)

	for {
		tok := s.ReadToken(diag)

		switch tok.Kind {
		case EOF:
			s.Seek(0)
			s.SetLine(1)
			return

		case EOL:
			// blank line, nothing to index

		case NUM:
			if labels.Len() >= MaxLabels {
				s.Seek(0)
				s.SetLine(1)
				return
			}
			if _, dup := labels.Find(tok.Lexeme); dup {
				diag.Report(ErrLblDupl, s.Line())
			} else {
				labels.Insert(tok.Lexeme, s.Cursor(), s.Line())
			}
			s.skipToEOL()

		default:
			s.skipToEOL()
		}
	}
}
