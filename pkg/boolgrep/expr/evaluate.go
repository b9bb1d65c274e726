package expr

import "fmt"

// evalStack is the machine state of the postfix evaluator: a stack of
// values and, when pruning, a parallel stack of operand-index groups.
// groups[i] lists the operands that contributed to values[i].
type evalStack struct {
	values []bool
	groups [][]int
	prune  bool

	// discard is called for every operand whose matches must be dropped.
	discard func(index int)
}

func newEvalStack(capacity int, discard func(int)) *evalStack {
	s := &evalStack{
		values:  make([]bool, 0, capacity),
		discard: discard,
		prune:   discard != nil,
	}
	if s.prune {
		s.groups = make([][]int, 0, capacity)
	}
	return s
}

func (s *evalStack) pushOperand(index int, value bool) {
	s.values = append(s.values, value)
	if s.prune {
		s.groups = append(s.groups, []int{index})
	}
}

func (s *evalStack) popValue() bool {
	n := len(s.values)
	if n == 0 {
		panic("expr: evaluation stack underflow")
	}
	v := s.values[n-1]
	s.values = s.values[:n-1]
	return v
}

func (s *evalStack) popGroup() []int {
	n := len(s.groups)
	g := s.groups[n-1]
	s.groups = s.groups[:n-1]
	return g
}

func (s *evalStack) drop(group []int) {
	for _, idx := range group {
		s.discard(idx)
	}
}

// apply pops the operands of op, pushes its result and, when pruning,
// discards matches of groups whose sub-expression cannot justify a report.
func (s *evalStack) apply(op Kind) {
	if op == Not {
		a := s.popValue()
		result := !a
		s.values = append(s.values, result)
		if s.prune {
			g := s.popGroup()
			if !result {
				s.drop(g)
			}
			s.groups = append(s.groups, g)
		}
		return
	}

	b := s.popValue()
	a := s.popValue()
	result := combine(op, a, b)
	s.values = append(s.values, result)

	if !s.prune {
		return
	}
	gb := s.popGroup()
	ga := s.popGroup()
	if discards(op, result) {
		s.drop(gb)
		s.drop(ga)
	}
	merged := make([]int, 0, len(ga)+len(gb))
	merged = append(merged, gb...)
	merged = append(merged, ga...)
	s.groups = append(s.groups, merged)
}

// result returns the single remaining value.
func (s *evalStack) result() bool {
	if len(s.values) != 1 {
		panic(fmt.Sprintf("expr: evaluation left %d values on the stack", len(s.values)))
	}
	return s.values[0]
}

// combine applies a binary operator.
func combine(op Kind, a, b bool) bool {
	switch op {
	case And:
		return a && b
	case Nand:
		return !(a && b)
	case Or:
		return a || b
	case Xor:
		return (a || b) && !(a && b)
	case Nor:
		return !(a || b)
	}
	panic(fmt.Sprintf("expr: %s is not a binary operator", op))
}

// discards reports whether the operands under a binary operator lose their
// matches given the operator's result. OR and XOR never discard: either
// side alone can justify the report.
func discards(op Kind, result bool) bool {
	switch op {
	case And, Nor:
		return !result
	case Nand:
		return result
	}
	return false
}

// evaluate runs the postfix program against the operand results. discard
// may be nil to evaluate without pruning.
func evaluate(postfix []Token, results []Result, discard func(int)) (bool, error) {
	for _, r := range results {
		if !r.Known() {
			return false, ErrIncompleteExpression
		}
	}

	s := newEvalStack(len(results), discard)
	for _, tok := range postfix {
		if tok.Kind == Operand {
			s.pushOperand(tok.Index, results[tok.Index].Bool())
			continue
		}
		s.apply(tok.Kind)
	}
	return s.result(), nil
}
