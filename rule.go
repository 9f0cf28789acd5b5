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

import "unicode"

// Rule pairs a name with the expression that defines it. A grammar is
// a set of Rules; a Rule's name is itself the wire contract for
// whitespace handling (spec.md §6): a leading-uppercase name is
// syntactic and triggers implicit skip between Sequence/Repetition
// elements, anything else is lexical.
type Rule struct {
	Name string
	Body Expression
}

// IsSyntactic reports whether r's name begins with an uppercase rune.
// The empty name is treated as lexical.
func (r *Rule) IsSyntactic() bool {
	if r.Name == "" {
		return false
	}
	first := []rune(r.Name)[0]
	return unicode.IsUpper(first)
}

// defaultSkipRule is substituted whenever a grammar applies "skip"
// without defining it: zero-or-more would be wrong here since the
// matcher itself applies skip repeatedly (Matcher.skip), so the rule
// body just needs to consume one ASCII whitespace/control character
// (U+0000 through U+0020), matching the common PEG convention
// (spec.md §4.3).
var defaultSkipRule = &Rule{
	Name: "skip",
	Body: Alt(controlCharStrings()),
}

func controlCharStrings() []string {
	chars := make([]string, 0, 0x21)
	for c := rune(0); c <= 0x20; c++ {
		chars = append(chars, string(c))
	}
	return chars
}
