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

// Package peg implements a Parsing Expression Grammar matching engine
// with support for direct left recursion.
//
// A grammar is a set of named Rules, each built from the nine PEG
// operators exposed as constructors (Apply, Term, Alt, Choice, Seq,
// Opt, Star, Plus, Neg, Pos, Dot). A Matcher owns one grammar and
// drives matching of an input string against a start rule, producing
// a ParseTree that spans the entire input or reporting failure.
//
// Unlike a classical packrat parser, rules whose bodies are directly
// left-recursive (expr <- expr "-" num) are handled correctly via a
// seed-growing algorithm: see matcher.go for the core evalApply
// implementation, and growing.go/stack.go for the supporting state.
//
// Two parsing modes are supported. In Standard mode, input is matched
// character by character. In Python mode, the pseudo-tokens INDENT
// and DEDENT are synthesized from runs of leading whitespace; see
// indent.go.
package peg
