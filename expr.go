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

// ExprKind tags the nine PEG operators as a closed family. Dispatch on
// an Expression is by tag (a single switch in matcher.go), not by
// virtual method resolution: the operators share too much evaluation
// machinery (position save/restore, implicit skip, abort-flag checks)
// for per-type methods to pull their weight.
type ExprKind uint8

const (
	KindApply ExprKind = iota
	KindTerminal
	KindMutexAlt
	KindChoice
	KindSequence
	KindOptional
	KindRepetition0
	KindRepetition1
	KindNegLookAhead
	KindPosLookAhead

	// kindDot is not one of the nine PEG operators; it is sugar for
	// "match exactly one Unicode scalar value", the construction-time
	// resolution of the dot open question (see DESIGN.md).
	kindDot
)

// Reserved Terminal literals routed to the indentation engine in
// Python mode instead of being matched as literal text. In Standard
// mode a Terminal with either literal never matches.
const (
	pseudoIndent = "INDENT"
	pseudoDedent = "DEDENT"
)

// Expression is one node of a PEG grammar: a closed, immutable tagged
// union over the nine operators. Apply holds a rule name rather than
// a pointer to a Rule, so Apply/Rule/Expression may form a cyclic
// graph (a rule referring to itself, or to a rule defined later)
// without an ownership cycle; the name is resolved against the
// Matcher's rule registry at eval time.
type Expression struct {
	kind  ExprKind
	label string

	ruleName string // Apply

	literal string // Terminal

	alts   []string // MutexAlt: equal-length member strings
	altLen int      // rune length shared by all members of alts

	// children holds sub-expressions for every variant that has any:
	// exactly one for Optional/Repetition0/Repetition1/NegLookAhead/
	// PosLookAhead, an ordered list for Choice/Sequence.
	children []Expression
}

// Apply references a named rule. The name is resolved against the
// owning Matcher's registry when the expression is evaluated.
func Apply(ruleName string) Expression {
	return Expression{kind: KindApply, ruleName: ruleName}
}

// Term matches a literal string. The two reserved literals "INDENT"
// and "DEDENT" are pseudo-tokens: in Python mode they invoke the
// indentation engine rather than matching literal text; in Standard
// mode they never match.
func Term(s string) Expression {
	return Expression{kind: KindTerminal, literal: s}
}

// Alt matches one of a finite set of equal-length strings. All
// members must share the same rune length; this is validated when the
// owning rule is registered with AddRule, not here, since a grammar
// may assemble expressions in any order before registration.
func Alt(members []string) Expression {
	alts := append([]string(nil), members...)
	altLen := 0
	if len(alts) > 0 {
		altLen = len([]rune(alts[0]))
	}
	return Expression{kind: KindMutexAlt, alts: alts, altLen: altLen}
}

// Dot matches exactly one Unicode scalar value. This resolves the dot
// open question: rune-based, not byte-based, consistent with the
// engine's rune-indexed positions.
func Dot() Expression {
	return Expression{kind: kindDot}
}

// Choice tries alternatives in order and commits to the first that
// succeeds.
func Choice(alternatives []Expression) Expression {
	return Expression{kind: KindChoice, children: append([]Expression(nil), alternatives...)}
}

// Seq evaluates elements left to right, skipping implicit whitespace
// between them when the enclosing rule is syntactic.
func Seq(elements []Expression) Expression {
	return Expression{kind: KindSequence, children: append([]Expression(nil), elements...)}
}

// Opt attempts e; it never fails except under the abort flag.
func Opt(e Expression) Expression {
	return Expression{kind: KindOptional, children: []Expression{e}}
}

// Star matches e zero or more times.
func Star(e Expression) Expression {
	return Expression{kind: KindRepetition0, children: []Expression{e}}
}

// Plus matches e one or more times.
func Plus(e Expression) Expression {
	return Expression{kind: KindRepetition1, children: []Expression{e}}
}

// Neg is a negative lookahead: succeeds, consuming nothing, iff e
// fails.
func Neg(e Expression) Expression {
	return Expression{kind: KindNegLookAhead, children: []Expression{e}}
}

// Pos is a positive lookahead: succeeds, consuming nothing, iff e
// matches.
func Pos(e Expression) Expression {
	return Expression{kind: KindPosLookAhead, children: []Expression{e}}
}

// Label attaches a name to the tree node this expression produces. It
// returns a copy; expressions are immutable after construction.
func (e Expression) Label(name string) Expression {
	e.label = name
	return e
}

// isLookAhead reports whether e is one of the two lookahead
// predicates, which contribute no children to an enclosing Sequence/
// Optional/Repetition and are skipped when iterating a top-level
// Choice.
func isLookAhead(e Expression) bool {
	return e.kind == KindNegLookAhead || e.kind == KindPosLookAhead
}

// String renders e for diagnostics. The failure log stores these
// strings in a sorted set so PrintMatchFailure can report a
// deterministic "expected one of" list.
func (e Expression) String() string {
	switch e.kind {
	case KindApply:
		return e.ruleName
	case KindTerminal:
		return fmt.Sprintf("%q", e.literal)
	case KindMutexAlt:
		return "[" + strings.Join(e.alts, "|") + "]"
	case kindDot:
		return "."
	case KindChoice:
		return "(" + joinExprs(e.children, " / ") + ")"
	case KindSequence:
		return "(" + joinExprs(e.children, " ") + ")"
	case KindOptional:
		return e.children[0].String() + "?"
	case KindRepetition0:
		return e.children[0].String() + "*"
	case KindRepetition1:
		return e.children[0].String() + "+"
	case KindNegLookAhead:
		return "!" + e.children[0].String()
	case KindPosLookAhead:
		return "&" + e.children[0].String()
	default:
		return "<expr>"
	}
}

func joinExprs(exprs []Expression, sep string) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = e.String()
	}
	return strings.Join(parts, sep)
}
