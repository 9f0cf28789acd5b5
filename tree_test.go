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

func TestIsZeroWidth(t *testing.T) {
	zero := ParseTree{Start: 5, Finish: 4}
	if !zero.IsZeroWidth() {
		t.Fatal("expected zero-width tree to report IsZeroWidth")
	}
	nonZero := ParseTree{Start: 5, Finish: 5}
	if nonZero.IsZeroWidth() {
		t.Fatal("expected single-rune tree to not report IsZeroWidth")
	}
}

func TestMatchedText(t *testing.T) {
	input := []rune("hello world")
	tree := ParseTree{Input: input, Start: 0, Finish: 4}
	if got := tree.matchedText(); got != "hello" {
		t.Fatalf("matchedText() = %q, want hello", got)
	}
}

func TestMatchedTextZeroWidth(t *testing.T) {
	input := []rune("hello")
	tree := ParseTree{Input: input, Start: 2, Finish: 1}
	if got := tree.matchedText(); got != "" {
		t.Fatalf("matchedText() = %q, want empty string", got)
	}
}

func TestParseTreeStringDoesNotPanic(t *testing.T) {
	input := []rune("ab")
	leaf := ParseTree{Kind: KindTerminalTree, Input: input, Start: 0, Finish: 0, Text: "a"}
	tree := ParseTree{
		Kind:     KindApplyTree,
		Input:    input,
		Start:    0,
		Finish:   0,
		RuleName: "Letter",
		Children: []ParseTree{leaf},
	}
	if out := tree.String(); out == "" {
		t.Fatal("String() returned empty output")
	}
}
