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

// Frame is one activation record on the matcher's explicit call
// stack: the only durable record of "which rule, at which position,
// is currently being applied". Left-recursion detection scans this
// stack rather than relying on the host language's own call stack,
// since the host stack can't be searched or unwound selectively.
type Frame struct {
	Rule string
	Pos  int

	// IsLR records, at the moment this frame was pushed, whether the
	// same rule was already active at the same position further down
	// the stack (this_is_LR_at_pos in the seed-growing algorithm).
	IsLR bool

	// HasSeed and Seed are populated only on a frame that becomes the
	// target of an abort: the outer frame for a rule/position pair
	// whose inner, left-recursive application ran the seed growth
	// (prevAtPos in startGrowth).
	HasSeed bool
	Seed    ParseTree
}

// callStack is a searchable LIFO of Frames, backed by
// emirpasic/gods' arraystack. Go's slices would do the job as well,
// but the pack already reaches for gods for exactly this kind of
// explicit, inspectable parser state (see npillmayer-gorgo's state
// tables), so this module follows suit for consistency instead of
// hand-rolling a second stack type in indent.go.
type callStack struct {
	frames *arraystack.Stack
}

func newCallStack() *callStack {
	return &callStack{frames: arraystack.New()}
}

func (c *callStack) push(f *Frame) {
	c.frames.Push(f)
}

func (c *callStack) pop() *Frame {
	v, ok := c.frames.Pop()
	if !ok {
		panicInvariant("pop from empty call stack")
	}
	return v.(*Frame)
}

func (c *callStack) top() *Frame {
	v, ok := c.frames.Peek()
	if !ok {
		return nil
	}
	return v.(*Frame)
}

func (c *callStack) empty() bool {
	return c.frames.Empty()
}

func (c *callStack) size() int {
	return c.frames.Size()
}

// findTopmost scans from the top of the stack down and returns the
// first frame matching pred, or nil. arraystack doesn't expose a
// guaranteed top-to-bottom iteration order, so the scan drains the
// stack into a slice and restores it; Push/Pop remain the only
// operations gods actually performs for us.
func (c *callStack) findTopmost(pred func(*Frame) bool) *Frame {
	drained := make([]*Frame, 0, c.frames.Size())
	for !c.frames.Empty() {
		v, _ := c.frames.Pop()
		drained = append(drained, v.(*Frame))
	}
	for i := len(drained) - 1; i >= 0; i-- {
		c.frames.Push(drained[i])
	}
	for _, f := range drained {
		if pred(f) {
			return f
		}
	}
	return nil
}
