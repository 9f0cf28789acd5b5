// Copyright 2023 Google LLC.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package peg

import (
	"fmt"
	"strings"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
)

// failureLog is the matcher's C8 failure log: every atomic expression
// (Terminal, MutexAlt, dot) that fails to match records itself here
// against the position it failed at. Only the furthest position
// reached across the whole match is kept in detail, since that's the
// one most likely to be the actual syntax error a user should see.
// The per-position set of expected-expression strings is a treeset
// rather than a plain slice so PrintMatchFailure reports them in a
// stable, sorted order run to run.
type failureLog struct {
	furthest int
	expected *treeset.Set
}

func newFailureLog() *failureLog {
	return &failureLog{furthest: -1, expected: treeset.NewWith(utils.StringComparator)}
}

// record notes that e failed to match at pos. Entries at a position
// behind the current furthest failure are dropped; reaching a new
// furthest position resets the expected set.
func (f *failureLog) record(pos int, e Expression) {
	switch {
	case pos > f.furthest:
		f.furthest = pos
		f.expected = treeset.NewWith(utils.StringComparator)
		f.expected.Add(e.String())
	case pos == f.furthest:
		f.expected.Add(e.String())
	}
}

// PrintMatchFailure formats the furthest-position diagnostic from the
// failure log: the position, a 40-character window of the input
// starting 10 characters before the failure, a caret pointing at the
// failing offset, and the set of expressions that were expected
// there.
func (m *Matcher) PrintMatchFailure() string {
	if m.failures == nil || m.failures.furthest < 0 {
		return "no match failure recorded"
	}
	pos := m.failures.furthest

	windowStart := pos - 10
	if windowStart < 0 {
		windowStart = 0
	}
	windowEnd := windowStart + 40
	if windowEnd > len(m.input) {
		windowEnd = len(m.input)
	}
	window := string(m.input[windowStart:windowEnd])
	caret := strings.Repeat(" ", pos-windowStart) + "^"

	var expected []string
	for _, v := range m.failures.expected.Values() {
		expected = append(expected, v.(string))
	}

	return fmt.Sprintf("match failure at position %d:\n%s\n%s\nexpected one of: %s",
		pos, window, caret, strings.Join(expected, ", "))
}
