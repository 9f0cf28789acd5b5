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

func TestGrowingTableEmptyInitially(t *testing.T) {
	g := newGrowingTable()
	if !g.empty() {
		t.Fatal("expected new growing table to be empty")
	}
	if g.contains("Expr", 0) {
		t.Fatal("expected contains() false on empty table")
	}
}

func TestGrowingTableSetNilSeedIsStillPresent(t *testing.T) {
	g := newGrowingTable()
	g.set("Expr", 3, nil)

	if !g.contains("Expr", 3) {
		t.Fatal("expected contains() true after set(nil)")
	}
	seed, ok := g.get("Expr", 3)
	if !ok || seed != nil {
		t.Fatalf("get() = (%v, %v), want (nil, true)", seed, ok)
	}
	if g.width("Expr") != 1 {
		t.Fatalf("width() = %d, want 1", g.width("Expr"))
	}
}

func TestGrowingTableSetAndReplaceSeed(t *testing.T) {
	g := newGrowingTable()
	first := &ParseTree{Finish: 2}
	second := &ParseTree{Finish: 5}

	g.set("Expr", 0, first)
	seed, ok := g.get("Expr", 0)
	if !ok || seed != first {
		t.Fatalf("get() = (%v, %v), want (%v, true)", seed, ok, first)
	}

	g.set("Expr", 0, second)
	seed, ok = g.get("Expr", 0)
	if !ok || seed != second {
		t.Fatalf("get() after replace = (%v, %v), want (%v, true)", seed, ok, second)
	}
}

func TestGrowingTableDeleteCleansUpEmptyRule(t *testing.T) {
	g := newGrowingTable()
	g.set("Expr", 0, nil)
	g.delete("Expr", 0)

	if g.contains("Expr", 0) {
		t.Fatal("expected contains() false after delete")
	}
	if !g.empty() {
		t.Fatal("expected table to be empty after deleting its only entry")
	}
}

func TestGrowingTableWidthTracksDistinctPositions(t *testing.T) {
	g := newGrowingTable()
	g.set("Expr", 0, nil)
	g.set("Expr", 4, nil)
	g.set("Other", 0, nil)

	if g.width("Expr") != 2 {
		t.Fatalf("width(Expr) = %d, want 2", g.width("Expr"))
	}
	if g.width("Other") != 1 {
		t.Fatalf("width(Other) = %d, want 1", g.width("Other"))
	}
	if g.width("NeverSeen") != 0 {
		t.Fatalf("width(NeverSeen) = %d, want 0", g.width("NeverSeen"))
	}
}
