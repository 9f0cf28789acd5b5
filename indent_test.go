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

import "testing"

func TestTryIndentRequiresLineStart(t *testing.T) {
	s := newIndentState()
	input := []rune("x  y")
	if _, ok := s.tryIndent(input, 2); ok {
		t.Fatal("expected tryIndent to fail mid-line")
	}
}

func TestTryIndentPushesRun(t *testing.T) {
	s := newIndentState()
	input := []rune("  body\n")
	pos, ok := s.tryIndent(input, 0)
	if !ok {
		t.Fatal("expected tryIndent to succeed")
	}
	if pos != 2 {
		t.Fatalf("pos = %d, want 2", pos)
	}
	if s.depth() != 1 {
		t.Fatalf("depth() = %d, want 1", s.depth())
	}
}

func TestTryIndentFailsWithoutAdditionalWhitespace(t *testing.T) {
	s := newIndentState()
	input := []rune("  x\n  y\n")
	if _, ok := s.tryIndent(input, 0); !ok {
		t.Fatal("expected first indent to succeed")
	}
	// Line 2 repeats the same indentation; there is nothing further to grow.
	if _, ok := s.tryIndent(input, 4); ok {
		t.Fatal("expected tryIndent to fail when indentation doesn't deepen")
	}
}

func TestTryDedentPopsLevel(t *testing.T) {
	s := newIndentState()
	input := []rune("  a\nb\n")
	if _, ok := s.tryIndent(input, 0); !ok {
		t.Fatal("expected indent to succeed")
	}

	pos, ok := s.tryDedent(input, 4)
	if !ok {
		t.Fatal("expected dedent to succeed")
	}
	if pos != 4 {
		t.Fatalf("pos = %d, want 4", pos)
	}
	if s.depth() != 0 {
		t.Fatalf("depth() = %d, want 0", s.depth())
	}
}

func TestTryDedentFailsOnEmptyStack(t *testing.T) {
	s := newIndentState()
	input := []rune("a\n")
	if _, ok := s.tryDedent(input, 0); ok {
		t.Fatal("expected dedent to fail with no open indents")
	}
}

func TestTryDedentFailsWhenStillIndented(t *testing.T) {
	s := newIndentState()
	input := []rune("  a\n  b\n")
	if _, ok := s.tryIndent(input, 0); !ok {
		t.Fatal("expected indent to succeed")
	}
	// Position 4 still carries the same two-space prefix; not a dedent.
	if _, ok := s.tryDedent(input, 4); ok {
		t.Fatal("expected dedent to fail when indentation is unchanged")
	}
}

func TestNestedIndentAndDedent(t *testing.T) {
	s := newIndentState()
	input := []rune("a\n  b\n    c\n  d\n")
	// line 2: "  b"
	if _, ok := s.tryIndent(input, 2); !ok {
		t.Fatal("expected first indent to succeed")
	}
	// line 3: "    c"
	pos := 2 + len("  b\n")
	if _, ok := s.tryIndent(input, pos); !ok {
		t.Fatal("expected second indent to succeed")
	}
	if s.depth() != 2 {
		t.Fatalf("depth() = %d, want 2", s.depth())
	}
	// line 4: "  d" dedents one level back to the first indent.
	pos = pos + len("    c\n")
	dedentPos, ok := s.tryDedent(input, pos)
	if !ok {
		t.Fatal("expected dedent to succeed")
	}
	if s.depth() != 1 {
		t.Fatalf("depth() = %d, want 1", s.depth())
	}
	if dedentPos != pos+2 {
		t.Fatalf("dedentPos = %d, want %d", dedentPos, pos+2)
	}
}
