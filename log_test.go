// seehuhn.de/go/pdf - a library for reading and writing PDF files
// Copyright (C) 2023  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package cos

import (
	"errors"
	"testing"
)

type recordingLogger struct {
	lines []string
}

func (r *recordingLogger) Printf(format string, args ...any) {
	r.lines = append(r.lines, format)
}

func TestLogParseFailureUsesGivenLogger(t *testing.T) {
	rl := &recordingLogger{}
	logParseFailure(rl, errors.New("boom"))
	if len(rl.lines) != 1 {
		t.Fatalf("got %d log lines, want 1", len(rl.lines))
	}
}

func TestLogParseFailureFallsBackToDefault(t *testing.T) {
	rl := &recordingLogger{}
	SetLogger(rl)
	defer SetLogger(nil)

	logParseFailure(nil, errors.New("boom"))
	if len(rl.lines) != 1 {
		t.Fatalf("got %d log lines on the default logger, want 1", len(rl.lines))
	}
}

func TestSetLoggerNilRestoresStdLogger(t *testing.T) {
	SetLogger(&recordingLogger{})
	SetLogger(nil)
	if _, ok := defaultLogger.(stdLogger); !ok {
		t.Errorf("defaultLogger = %T, want stdLogger", defaultLogger)
	}
}
