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

import "github.com/emirpasic/gods/stacks/arraystack"

// indentState is the indentation engine (Python mode only): it tracks
// the stack of whitespace runs that make up the current indentation
// and synthesizes INDENT/DEDENT pseudo-tokens from it. Levels are
// recorded as the literal run of spaces/tabs that introduced them, not
// just a column count, so a DEDENT can be matched back against the
// exact text that was consumed going in.
type indentState struct {
	levels *arraystack.Stack // []string, bottom of stack = outermost indent
}

func newIndentState() *indentState {
	return &indentState{levels: arraystack.New()}
}

func isSpaceOrTab(r rune) bool {
	return r == ' ' || r == '\t'
}

func atLineStart(input []rune, pos int) bool {
	return pos == 0 || (pos > 0 && input[pos-1] == '\n')
}

// allLevels returns the stack's contents bottom-to-top (outermost
// indent first), the order needed to build the prefix a line must
// match to be considered "at or below" the current depth.
func (s *indentState) allLevels() []string {
	drained := make([]string, 0, s.levels.Size()) // top-to-bottom
	for !s.levels.Empty() {
		v, _ := s.levels.Pop()
		drained = append(drained, v.(string))
	}
	bottomUp := make([]string, len(drained))
	for i := len(drained) - 1; i >= 0; i-- {
		s.levels.Push(drained[i])
		bottomUp[len(drained)-1-i] = drained[i]
	}
	return bottomUp
}

func joinLevels(levels []string) string {
	total := ""
	for _, l := range levels {
		total += l
	}
	return total
}

func hasPrefixAt(input []rune, pos int, prefix string) bool {
	runes := []rune(prefix)
	if pos+len(runes) > len(input) {
		return false
	}
	for i, r := range runes {
		if input[pos+i] != r {
			return false
		}
	}
	return true
}

// lineStart returns the position at which a line's indentation should
// be checked: if pos sits exactly on the newline ending the previous
// line, that newline is crossed first, since INDENT/DEDENT describe
// the transition between lines rather than a mid-line run of
// whitespace. pos itself is returned unconsumed when it is already at
// a line boundary (the very first line has no leading newline to
// cross), and ok is false when pos is neither at a newline nor
// otherwise at a line's start.
func lineStart(input []rune, pos int) (int, bool) {
	if pos < len(input) && input[pos] == '\n' {
		return pos + 1, true
	}
	if atLineStart(input, pos) {
		return pos, true
	}
	return pos, false
}

// tryIndent attempts to synthesize an INDENT at pos: crossing a
// trailing newline if one sits there, the existing indent stack's
// text must match the new line literally, and at least one more
// space/tab must follow. On success it pushes the new run and returns
// the position just past it.
func (s *indentState) tryIndent(input []rune, pos int) (int, bool) {
	lineAt, ok := lineStart(input, pos)
	if !ok {
		return pos, false
	}
	prefix := joinLevels(s.allLevels())
	if !hasPrefixAt(input, lineAt, prefix) {
		return pos, false
	}
	p := lineAt + len([]rune(prefix))
	runStart := p
	for p < len(input) && isSpaceOrTab(input[p]) {
		p++
	}
	if p == runStart {
		return pos, false
	}
	s.levels.Push(string(input[runStart:p]))
	return p, true
}

// tryDedent attempts to synthesize a DEDENT at pos: crossing a
// trailing newline if one sits there, the new line must match every
// indent level except the innermost, and not be followed by further
// space/tab (which would mean the line is still at least as deep as
// before). On success it pops the innermost level.
func (s *indentState) tryDedent(input []rune, pos int) (int, bool) {
	lineAt, ok := lineStart(input, pos)
	if !ok || s.levels.Empty() {
		return pos, false
	}
	all := s.allLevels()
	prefix := joinLevels(all[:len(all)-1])
	if !hasPrefixAt(input, lineAt, prefix) {
		return pos, false
	}
	p := lineAt + len([]rune(prefix))
	if p < len(input) && isSpaceOrTab(input[p]) {
		return pos, false
	}
	s.levels.Pop()
	return p, true
}

func (s *indentState) depth() int {
	return s.levels.Size()
}
