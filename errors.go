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

import "fmt"

// GrammarError reports a fatal defect in a grammar: an Apply that
// names a rule never registered with the Matcher, or a MutexAlt whose
// member strings are not all the same length. GrammarErrors surface
// immediately from AddRule or Match and are never recovered from
// inside a single Match call.
type GrammarError struct {
	Rule string // rule in which the defect was found, if known
	Msg  string
}

func (e *GrammarError) Error() string {
	if e.Rule == "" {
		return fmt.Sprintf("grammar error: %s", e.Msg)
	}
	return fmt.Sprintf("grammar error in rule %q: %s", e.Rule, e.Msg)
}

// newGrammarError builds a GrammarError scoped to the given rule.
func newGrammarError(rule, format string, args ...interface{}) *GrammarError {
	return &GrammarError{Rule: rule, Msg: fmt.Sprintf(format, args...)}
}

// InvariantViolation signals an internal bug: state that the matcher's
// own algorithm should never produce, such as popping a call-stack
// frame that isn't on top, or finding a growing-table entry with no
// frame left to claim it. Per spec.md's error taxonomy this is not a
// condition callers should handle; it is raised as a panic so it is
// never silently swallowed, and is recovered only in tests that
// specifically probe for it.
type InvariantViolation struct {
	Msg string
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("invariant violation: %s", e.Msg)
}

func panicInvariant(format string, args ...interface{}) {
	panic(&InvariantViolation{Msg: fmt.Sprintf(format, args...)})
}
