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
)

// TreeKind mirrors ExprKind: the nine parse-tree shapes a successful
// match can produce, one per PEG operator.
type TreeKind uint8

const (
	KindApplyTree TreeKind = iota
	KindTerminalTree
	KindMutexAltTree
	KindChoiceTree
	KindSequenceTree
	KindOptionalTree
	KindRepetitionTree
	KindNegLookAheadTree
	KindPosLookAheadTree
)

// ParseTree is the result of a successful match: an immutable,
// rune-indexed span of the input, tagged by which operator produced
// it. Unlike the teacher's Node, a ParseTree is never re-parented or
// mutated after construction — it is built bottom-up as Apply.eval
// returns, exactly once, and never touched again, so plain slices
// (rather than a doubly-linked cascade) are sufficient.
type ParseTree struct {
	Kind  TreeKind
	Input []rune // shared reference to the full matched input

	// Start and Finish are inclusive rune offsets into Input. A
	// zero-width match (lookaheads, a failed-but-absorbed Optional
	// member, INDENT/DEDENT of length zero) has Finish == Start-1.
	Start  int
	Finish int

	Label string // from Expression.Label, if any

	RuleName string // ApplyTree: the rule whose body produced Children[0]
	Text     string // TerminalTree / MutexAltTree: the matched text

	Children []ParseTree
}

// IsZeroWidth reports whether the tree spans no input.
func (t ParseTree) IsZeroWidth() bool {
	return t.Finish < t.Start
}

// matchedText returns the substring of Input this tree spans, used by
// dump to annotate non-leaf nodes (which don't carry Text directly)
// with the text they actually matched.
func (t ParseTree) matchedText() string {
	if t.IsZeroWidth() {
		return ""
	}
	return string(t.Input[t.Start : t.Finish+1])
}

// String renders a parenthesized debug dump of the tree, in the
// spirit of the teacher's Node.ToString, generalized from a
// token-stream dump to a character-span dump.
func (t ParseTree) String() string {
	var b strings.Builder
	t.dump(&b, 0)
	return b.String()
}

func (t ParseTree) dump(b *strings.Builder, depth int) {
	indent := strings.Repeat("  ", depth)
	switch t.Kind {
	case KindApplyTree:
		fmt.Fprintf(b, "%s%s@%d..%d %q", indent, t.RuleName, t.Start, t.Finish, t.matchedText())
		if t.Label != "" {
			fmt.Fprintf(b, " #%s", t.Label)
		}
		if len(t.Children) > 0 {
			b.WriteString("\n")
			t.Children[0].dump(b, depth+1)
		}
	case KindTerminalTree, KindMutexAltTree:
		fmt.Fprintf(b, "%s%q", indent, t.Text)
	case KindSequenceTree, KindChoiceTree, KindRepetitionTree:
		fmt.Fprintf(b, "%s%s %q", indent, kindName(t.Kind), t.matchedText())
		for _, c := range t.Children {
			b.WriteString("\n")
			c.dump(b, depth+1)
		}
	case KindOptionalTree:
		fmt.Fprintf(b, "%soptional", indent)
		if len(t.Children) > 0 {
			b.WriteString("\n")
			t.Children[0].dump(b, depth+1)
		}
	case KindNegLookAheadTree:
		fmt.Fprintf(b, "%s!", indent)
	case KindPosLookAheadTree:
		fmt.Fprintf(b, "%s&", indent)
	}
}

func kindName(k TreeKind) string {
	switch k {
	case KindSequenceTree:
		return "seq"
	case KindChoiceTree:
		return "choice"
	case KindRepetitionTree:
		return "rep"
	default:
		return "?"
	}
}
