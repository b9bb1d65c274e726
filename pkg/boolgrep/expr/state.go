package expr

// OperandSlot is the per-document slot of one operand: its result and the
// matches the scanner found for it. A nil Matches after Evaluate means the
// matches were discarded.
type OperandSlot[M any] struct {
	Result  Result
	Matches []M
}

// State holds the operand results of one expression for one document.
//
// A State is owned by a single goroutine. Workers scanning documents in
// parallel share the Expression and each keep their own State.
type State[M any] struct {
	expr     *Expression
	operands []OperandSlot[M]
}

// NewState returns an empty State for e with every operand Undetermined.
func NewState[M any](e *Expression) *State[M] {
	s := &State[M]{
		expr:     e,
		operands: make([]OperandSlot[M], e.NumOperands()),
	}
	s.Reset()
	return s
}

// Expression returns the expression the state belongs to.
func (s *State[M]) Expression() *Expression {
	return s.expr
}

// Len returns the number of operands.
func (s *State[M]) Len() int {
	return len(s.operands)
}

// Reset clears every result and match set for the next document.
func (s *State[M]) Reset() {
	for i := range s.operands {
		s.operands[i] = OperandSlot[M]{Result: Undetermined}
	}
}

// Set records the outcome of scanning for operand i.
func (s *State[M]) Set(i int, matched bool, matches []M) {
	s.operands[i] = OperandSlot[M]{Result: ResultOf(matched), Matches: matches}
}

// SetResult records a result for operand i without touching its matches.
func (s *State[M]) SetResult(i int, r Result) {
	s.operands[i].Result = r
}

// Result returns operand i's result.
func (s *State[M]) Result(i int) Result {
	return s.operands[i].Result
}

// Matches returns operand i's match set.
func (s *State[M]) Matches(i int) []M {
	return s.operands[i].Matches
}

// Operand returns a copy of operand i's slot.
func (s *State[M]) Operand(i int) OperandSlot[M] {
	return s.operands[i]
}

// Known returns the number of operands with a result.
func (s *State[M]) Known() int {
	n := 0
	for _, op := range s.operands {
		if op.Result.Known() {
			n++
		}
	}
	return n
}

// IsComplete reports whether every operand has a result.
func (s *State[M]) IsComplete() bool {
	return s.Known() == len(s.operands)
}

func (s *State[M]) results() []Result {
	out := make([]Result, len(s.operands))
	for i, op := range s.operands {
		out[i] = op.Result
	}
	return out
}

// EvaluateErr evaluates the expression and discards the matches of
// operands under falsified AND, NAND, NOR and NOT sub-expressions.
// It returns ErrIncompleteExpression if any operand is Undetermined.
func (s *State[M]) EvaluateErr() (bool, error) {
	if !s.expr.Valid() {
		return false, ErrInvalidExpression
	}
	return evaluate(s.expr.postfix, s.results(), func(i int) {
		s.operands[i].Matches = nil
	})
}

// Evaluate is like EvaluateErr but reports Undetermined instead of an
// error.
func (s *State[M]) Evaluate() Result {
	v, err := s.EvaluateErr()
	if err != nil {
		return Undetermined
	}
	return ResultOf(v)
}

// IsShortCircuitFalse reports whether the expression is already false no
// matter what the Undetermined operands turn out to be. The scanner can
// stop evaluating operands for the document once it returns true.
func (s *State[M]) IsShortCircuitFalse() bool {
	if !s.expr.Valid() {
		return false
	}
	return shortCircuitFalse(s.expr.postfix, s.results())
}

// IsNegativeExpression reports whether the expression is true when every
// operand is false, i.e. it can match a document with no hits at all.
func (s *State[M]) IsNegativeExpression() bool {
	return s.expr.IsNegative()
}

// AllMatches returns the surviving matches of every operand in operand
// order.
func (s *State[M]) AllMatches() []M {
	var out []M
	for _, op := range s.operands {
		out = append(out, op.Matches...)
	}
	return out
}

// IsNegative reports whether the expression is true when every operand is
// false.
func (e *Expression) IsNegative() bool {
	if !e.Valid() {
		return false
	}
	return negative(e.postfix, len(e.operands))
}
