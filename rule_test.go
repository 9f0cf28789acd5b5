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

func TestIsSyntactic(t *testing.T) {
	cases := []struct {
		name string
		want bool
	}{
		{"Stmt", true},
		{"stmt", false},
		{"", false},
	}
	for _, c := range cases {
		r := &Rule{Name: c.name}
		if got := r.IsSyntactic(); got != c.want {
			t.Errorf("Rule{Name: %q}.IsSyntactic() = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestDefaultSkipRuleMatchesControlChars(t *testing.T) {
	if defaultSkipRule.Name != "skip" {
		t.Fatalf("defaultSkipRule.Name = %q, want skip", defaultSkipRule.Name)
	}
	if len(defaultSkipRule.Body.alts) != 0x21 {
		t.Fatalf("defaultSkipRule covers %d chars, want 33", len(defaultSkipRule.Body.alts))
	}
	for _, s := range defaultSkipRule.Body.alts {
		if len([]rune(s)) != 1 {
			t.Fatalf("defaultSkipRule alt %q is not one rune", s)
		}
	}
}
