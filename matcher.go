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

// Mode selects between the two parsing styles a Matcher can run in.
type Mode int

const (
	// Standard matches the input character by character.
	Standard Mode = iota
	// Python synthesizes INDENT/DEDENT pseudo-tokens from runs of
	// leading whitespace.
	Python
)

// abortFlag is the single piece of global state the seed-growing
// algorithm uses to unwind the call stack back to a specific frame
// once a growth cycle has finished: every eval call checks it first
// and fails immediately while it is set, except the one frame it
// targets, which catches it and substitutes its grown seed.
type abortFlag struct {
	active bool
	target *Frame
}

// Matcher drives matching of an input string against a registered
// grammar. It owns all of the mutable state a single match needs:
// the input and cursor, the rule registry, and the left-recursion
// machinery (call stack, growing table, abort flag), plus the
// indentation engine and failure log. A Matcher may be reused across
// many calls to Match; each call resets every piece of mutable state
// except the rule registry itself.
type Matcher struct {
	mode  Mode
	rules map[string]*Rule

	startRule string // name of the first rule ever registered

	input []rune
	pos   int

	stack    *callStack
	growing  *growingTable
	failures *failureLog
	indentSt *indentState
	abort    abortFlag
}

// NewMatcher creates an empty Matcher in the given mode. Rules are
// added afterward with AddRule.
func NewMatcher(mode Mode) *Matcher {
	return &Matcher{
		mode:  mode,
		rules: make(map[string]*Rule),
	}
}

// AddRule adds or replaces the rule named name; repeated names
// overwrite. It validates the body's MutexAlt members eagerly, since
// a grammar with inconsistent widths can never match anything
// meaningfully and failing fast at registration is more useful than
// failing deep inside a match.
func (m *Matcher) AddRule(name string, body Expression) error {
	if err := validateExpression(name, body); err != nil {
		return err
	}
	if m.startRule == "" {
		m.startRule = name
	}
	m.rules[name] = &Rule{Name: name, Body: body}
	tracer().Debugf("rule %s registered (syntactic=%v)", name, m.rules[name].IsSyntactic())
	return nil
}

func validateExpression(ruleName string, e Expression) error {
	switch e.kind {
	case KindMutexAlt:
		if len(e.alts) == 0 {
			return newGrammarError(ruleName, "MutexAlt has no member strings")
		}
		want := len([]rune(e.alts[0]))
		for _, s := range e.alts {
			if len([]rune(s)) != want {
				return newGrammarError(ruleName, "MutexAlt members have unequal length: %v", e.alts)
			}
		}
		return nil
	case KindApply, KindTerminal, kindDot:
		return nil
	default:
		for _, c := range e.children {
			if err := validateExpression(ruleName, c); err != nil {
				return err
			}
		}
		return nil
	}
}

func (m *Matcher) findRule(name string) *Rule {
	if r, ok := m.rules[name]; ok {
		return r
	}
	if name == "skip" {
		return defaultSkipRule
	}
	return nil
}

func (m *Matcher) reset(input string) {
	m.input = []rune(input)
	m.pos = 0
	m.stack = newCallStack()
	m.growing = newGrowingTable()
	m.failures = newFailureLog()
	m.indentSt = newIndentState()
	m.abort = abortFlag{}
}

// Match attempts to match input, starting from startRule (or the
// first rule ever registered, if startRule is empty), and reports
// success only if the entire input is consumed. A GrammarError — an
// Apply naming an unregistered rule, discovered lazily during
// matching — is returned as err rather than recovered internally; an
// ordinary failure to match is reported solely via ok == false.
func (m *Matcher) Match(input string, startRule string) (tree ParseTree, ok bool, err error) {
	m.reset(input)

	defer func() {
		if r := recover(); r != nil {
			if ge, isGrammarError := r.(*GrammarError); isGrammarError {
				tree, ok, err = ParseTree{}, false, ge
				return
			}
			panic(r)
		}
	}()

	if startRule == "" {
		startRule = m.startRule
	}
	if startRule == "" {
		return ParseTree{}, false, newGrammarError("", "no start rule: no rules have been registered")
	}

	result, matched := m.eval(Apply(startRule))

	if !m.stack.empty() {
		panicInvariant("call stack not empty after match: %d frame(s) remain", m.stack.size())
	}
	if !m.growing.empty() {
		panicInvariant("growing table not empty after match")
	}
	if m.abort.active {
		panicInvariant("abort flag still active after match")
	}

	if !matched || m.pos != len(m.input) {
		return ParseTree{}, false, nil
	}
	return result, true, nil
}

// currentSyntactic reports whether the rule currently being applied
// (the top of the call stack) is syntactic, i.e. whether implicit
// whitespace skipping applies inside it.
func (m *Matcher) currentSyntactic() bool {
	top := m.stack.top()
	if top == nil {
		return false
	}
	rule := m.findRule(top.Rule)
	return rule != nil && rule.IsSyntactic()
}

// skip consumes zero or more applications of the "skip" rule. It
// never fails: the first application of skip that fails ends the
// loop and restores the position it started at. The loop is run
// directly rather than as a Repetition0 expression, since a
// Repetition0 evaluated inside a syntactic rule would itself skip
// between its iterations.
func (m *Matcher) skip() {
	for !m.abort.active {
		start := m.pos
		if _, ok := m.eval(Apply("skip")); !ok {
			m.pos = start
			return
		}
	}
}

// eval dispatches a single Expression node to its evaluator. Every
// variant is required to check the abort flag before doing any work
// of its own; checking it once here, before the switch, satisfies
// that requirement for all nine operators plus dot in one place.
func (m *Matcher) eval(e Expression) (ParseTree, bool) {
	if m.abort.active {
		return ParseTree{}, false
	}
	switch e.kind {
	case KindApply:
		return m.evalApply(e)
	case KindTerminal:
		return m.evalTerminal(e)
	case KindMutexAlt:
		return m.evalMutexAlt(e)
	case kindDot:
		return m.evalDot(e)
	case KindChoice:
		return m.evalChoice(e)
	case KindSequence:
		return m.evalSequence(e)
	case KindOptional:
		return m.evalOptional(e)
	case KindRepetition0:
		return m.evalRepetition(e, false)
	case KindRepetition1:
		return m.evalRepetition(e, true)
	case KindNegLookAhead:
		return m.evalLookAhead(e, true)
	case KindPosLookAhead:
		return m.evalLookAhead(e, false)
	default:
		panicInvariant("unhandled expression kind %d", e.kind)
		return ParseTree{}, false
	}
}

func (m *Matcher) evalTerminal(e Expression) (ParseTree, bool) {
	if e.literal == pseudoIndent {
		return m.evalIndentToken(e, true)
	}
	if e.literal == pseudoDedent {
		return m.evalIndentToken(e, false)
	}

	start := m.pos
	lit := []rune(e.literal)
	if start+len(lit) > len(m.input) {
		m.failures.record(start, e)
		return ParseTree{}, false
	}
	for i, r := range lit {
		if m.input[start+i] != r {
			m.failures.record(start, e)
			return ParseTree{}, false
		}
	}
	m.pos = start + len(lit)
	return ParseTree{Kind: KindTerminalTree, Input: m.input, Start: start, Finish: m.pos - 1, Label: e.label, Text: string(lit)}, true
}

func (m *Matcher) evalIndentToken(e Expression, indent bool) (ParseTree, bool) {
	if m.mode != Python {
		m.failures.record(m.pos, e)
		return ParseTree{}, false
	}
	start := m.pos
	var newPos int
	var ok bool
	var kind string
	if indent {
		newPos, ok = m.indentSt.tryIndent(m.input, start)
		kind = "INDENT"
	} else {
		newPos, ok = m.indentSt.tryDedent(m.input, start)
		kind = "DEDENT"
	}
	if !ok {
		m.failures.record(start, e)
		return ParseTree{}, false
	}
	tracer().Debugf("%s at %d..%d (depth=%d)", kind, start, newPos-1, m.indentSt.depth())
	m.pos = newPos
	return ParseTree{Kind: KindTerminalTree, Input: m.input, Start: start, Finish: newPos - 1, Label: e.label, Text: string(m.input[start:newPos])}, true
}

func (m *Matcher) evalMutexAlt(e Expression) (ParseTree, bool) {
	start := m.pos
	if start+e.altLen > len(m.input) {
		m.failures.record(start, e)
		return ParseTree{}, false
	}
	candidate := string(m.input[start : start+e.altLen])
	for _, alt := range e.alts {
		if alt == candidate {
			m.pos = start + e.altLen
			return ParseTree{Kind: KindMutexAltTree, Input: m.input, Start: start, Finish: m.pos - 1, Label: e.label, Text: candidate}, true
		}
	}
	m.failures.record(start, e)
	return ParseTree{}, false
}

func (m *Matcher) evalDot(e Expression) (ParseTree, bool) {
	start := m.pos
	if start >= len(m.input) {
		m.failures.record(start, e)
		return ParseTree{}, false
	}
	m.pos = start + 1
	return ParseTree{Kind: KindMutexAltTree, Input: m.input, Start: start, Finish: start, Label: e.label, Text: string(m.input[start])}, true
}

func (m *Matcher) evalSequence(e Expression) (ParseTree, bool) {
	start := m.pos
	syntactic := m.currentSyntactic()
	var children []ParseTree
	for i, child := range e.children {
		if i > 0 && syntactic {
			m.skip()
		}
		tree, ok := m.eval(child)
		if !ok {
			m.pos = start
			return ParseTree{}, false
		}
		if !isLookAhead(child) {
			children = append(children, tree)
		}
	}
	return ParseTree{Kind: KindSequenceTree, Input: m.input, Start: start, Finish: m.pos - 1, Label: e.label, Children: children}, true
}

func (m *Matcher) evalChoice(e Expression) (ParseTree, bool) {
	start := m.pos
	for _, alt := range e.children {
		if m.abort.active {
			break
		}
		if isLookAhead(alt) {
			continue
		}
		m.pos = start
		tree, ok := m.eval(alt)
		if ok {
			return ParseTree{Kind: KindChoiceTree, Input: m.input, Start: start, Finish: m.pos - 1, Label: e.label, Children: []ParseTree{tree}}, true
		}
	}
	m.pos = start
	return ParseTree{}, false
}

func (m *Matcher) evalOptional(e Expression) (ParseTree, bool) {
	start := m.pos
	child := e.children[0]
	tree, ok := m.eval(child)
	if !ok {
		if m.abort.active {
			return ParseTree{}, false
		}
		m.pos = start
		return ParseTree{Kind: KindOptionalTree, Input: m.input, Start: start, Finish: start - 1, Label: e.label}, true
	}
	if isLookAhead(child) {
		return ParseTree{Kind: KindOptionalTree, Input: m.input, Start: start, Finish: m.pos - 1, Label: e.label}, true
	}
	return ParseTree{Kind: KindOptionalTree, Input: m.input, Start: start, Finish: m.pos - 1, Label: e.label, Children: []ParseTree{tree}}, true
}

func (m *Matcher) evalRepetition(e Expression, atLeastOne bool) (ParseTree, bool) {
	start := m.pos
	child := e.children[0]
	syntactic := m.currentSyntactic()
	var children []ParseTree
	lastEnd := start
	iterCount := 0
	for {
		if m.abort.active {
			return ParseTree{}, false
		}
		if iterCount > 0 && syntactic {
			m.skip()
		}
		tree, ok := m.eval(child)
		if !ok {
			m.pos = lastEnd
			break
		}
		lastEnd = m.pos
		iterCount++
		if !isLookAhead(child) {
			children = append(children, tree)
		}
	}
	if m.abort.active {
		return ParseTree{}, false
	}
	if atLeastOne && iterCount == 0 {
		m.pos = start
		return ParseTree{}, false
	}
	return ParseTree{Kind: KindRepetitionTree, Input: m.input, Start: start, Finish: m.pos - 1, Label: e.label, Children: children}, true
}

func (m *Matcher) evalLookAhead(e Expression, negate bool) (ParseTree, bool) {
	start := m.pos
	_, matched := m.eval(e.children[0])
	m.pos = start
	if m.abort.active {
		return ParseTree{}, false
	}
	success := matched
	if negate {
		success = !matched
	}
	if !success {
		return ParseTree{}, false
	}
	kind := KindPosLookAheadTree
	if negate {
		kind = KindNegLookAheadTree
	}
	return ParseTree{Kind: kind, Input: m.input, Start: start, Finish: start - 1, Label: e.label}, true
}

// evalApply is the heart of the engine: Apply.eval from the
// seed-growing algorithm, Cases A (continue growth), B (start
// growth), and C (ordinary application). The call stack, not Go's own
// call stack, is what makes direct left recursion detectable: a
// second Apply of the same rule at the same position, while the first
// is still on the stack, is what Case B responds to.
func (m *Matcher) evalApply(e Expression) (ParseTree, bool) {
	rule := m.findRule(e.ruleName)
	if rule == nil {
		panic(newGrammarError(e.ruleName, "unresolved rule reference %q", e.ruleName))
	}
	p := m.pos

	prevAtPos := m.stack.findTopmost(func(f *Frame) bool { return f.Rule == rule.Name && f.Pos == p })
	thisIsLRAtPos := prevAtPos != nil
	lrAnywhere := m.stack.findTopmost(func(f *Frame) bool { return f.Rule == rule.Name && f.IsLR })

	cur := &Frame{Rule: rule.Name, Pos: p, IsLR: thisIsLRAtPos}
	m.stack.push(cur)

	var result ParseTree
	var ok bool

	switch {
	case lrAnywhere != nil && m.growing.contains(rule.Name, p):
		tracer().Debugf("case A: continuing growth of %s@%d", rule.Name, p)
		result, ok = m.continueGrowth(rule, p)
		tracer().Debugf("case A exit: %s@%d matched=%v", rule.Name, p, ok)
	case thisIsLRAtPos:
		tracer().Debugf("case B: starting seed growth of %s@%d", rule.Name, p)
		m.startGrowth(cur, prevAtPos, rule, p)
		ok = false
		tracer().Debugf("case B exit: %s@%d", rule.Name, p)
	default:
		tracer().Debugf("case C: traditional application of %s@%d", rule.Name, p)
		result, ok = m.traditionalApply(cur, rule, p)
		tracer().Debugf("case C exit: %s@%d matched=%v", rule.Name, p, ok)
	}

	if popped := m.stack.pop(); popped != cur {
		panicInvariant("call stack corrupted returning from %s@%d", rule.Name, p)
	}

	if !ok {
		return ParseTree{}, false
	}
	return ParseTree{
		Kind:     KindApplyTree,
		Input:    m.input,
		Start:    p,
		Finish:   m.pos - 1,
		Label:    e.label,
		RuleName: rule.Name,
		Children: []ParseTree{result},
	}, true
}

// evalRuleBody evaluates rule.Body directly at pos, without pushing a
// new call-stack frame. This is "traditional application" in the
// sense §4.2.1 uses the term: the frame for rule/pos is already on
// the stack (pushed by evalApply before dispatching to one of the
// three cases), so re-entering the rule here must not push a second
// one.
func (m *Matcher) evalRuleBody(rule *Rule, pos int) (ParseTree, bool) {
	m.pos = pos
	return m.eval(rule.Body)
}

// continueGrowth implements Case A: a rule already has an entry in
// the growing table at this exact position, so this application
// simply returns the seed currently stored there (which may be none,
// i.e. failure, on the very first pass before any seed has been
// established).
func (m *Matcher) continueGrowth(rule *Rule, pos int) (ParseTree, bool) {
	seed, _ := m.growing.get(rule.Name, pos)
	if seed == nil {
		m.pos = pos
		return ParseTree{}, false
	}
	m.pos = seed.Finish + 1
	return *seed, true
}

// startGrowth implements Case B. cur is the inner frame that detected
// the recursion; prevAtPos is the outer frame — the one that will
// receive the grown seed and catch the abort flag in
// traditionalApply. startGrowth itself never returns a value: cur
// always reports failure to its caller (evalApply sets ok = false
// unconditionally after calling this), since the seed belongs to
// prevAtPos, not to cur.
func (m *Matcher) startGrowth(cur, prevAtPos *Frame, rule *Rule, pos int) {
	if m.growing.width(rule.Name) == 0 {
		m.growing.set(rule.Name, pos, nil)
		for {
			newTree, ok := m.evalRuleBody(rule, pos)
			seed, _ := m.growing.get(rule.Name, pos)
			noGrowth := !ok || (seed != nil && newTree.Finish <= seed.Finish)
			if noGrowth {
				m.growing.delete(rule.Name, pos)
				if seed != nil {
					m.pos = seed.Finish + 1
					prevAtPos.Seed = *seed
					prevAtPos.HasSeed = true
				} else {
					m.pos = pos
					prevAtPos.HasSeed = false
				}
				m.abort.active = true
				m.abort.target = prevAtPos
				tracer().Debugf("abort set: unwinding to %s@%d", prevAtPos.Rule, prevAtPos.Pos)
				return
			}
			t := newTree
			m.growing.set(rule.Name, pos, &t)
		}
	}

	// Nested deeper seed: pin this position's entry at none for
	// exactly one attempt, so left recursion below this point cannot
	// itself grow.
	m.growing.set(rule.Name, pos, nil)
	newTree, ok := m.evalRuleBody(rule, pos)
	m.growing.delete(rule.Name, pos)
	if ok && !prevAtPos.IsLR {
		prevAtPos.Seed = newTree
		prevAtPos.HasSeed = true
		m.abort.active = true
		m.abort.target = prevAtPos
		tracer().Debugf("abort set: unwinding to nested %s@%d", prevAtPos.Rule, prevAtPos.Pos)
	}
}

// traditionalApply implements Case C: an ordinary, non-recursive
// application of rule at pos. It also catches the abort flag raised
// by startGrowth when this frame is the flag's target, substituting
// the grown seed as this frame's result.
func (m *Matcher) traditionalApply(cur *Frame, rule *Rule, pos int) (ParseTree, bool) {
	tree, ok := m.evalRuleBody(rule, pos)
	if !m.abort.active {
		return tree, ok
	}
	if m.abort.target != cur {
		m.pos = pos
		return ParseTree{}, false
	}
	m.abort.active = false
	m.abort.target = nil
	tracer().Debugf("abort cleared: caught at %s@%d", rule.Name, pos)
	if !cur.HasSeed {
		m.pos = pos
		return ParseTree{}, false
	}
	m.pos = cur.Seed.Finish + 1
	return cur.Seed, true
}
