package expr

// MaxTruthTableOperands is the largest expression for which
// IsShortCircuitFalse enumerates every assignment of the unknown operands.
const MaxTruthTableOperands = 5

// shortCircuitFalse reports whether the expression is false for every
// possible assignment of the operands that are still Undetermined.
// results is never modified.
func shortCircuitFalse(postfix []Token, results []Result) bool {
	ops := make([]Kind, 0, len(postfix))
	for _, tok := range postfix {
		if tok.Kind.IsOperator() {
			ops = append(ops, tok.Kind)
		}
	}

	// A top-level disjunction can always be saved by an unknown operand.
	if n := len(ops); n > 0 && (ops[n-1] == Or || ops[n-1] == Xor) {
		return false
	}

	count := 0
	for _, op := range ops {
		if op != And {
			break
		}
		count++
	}
	// Only operands that are conjuncts of the whole expression can force it
	// false; the leading AND run does not line up with them once parentheses
	// or other operators reorder the postfix.
	if count > 0 {
		spine := conjuncts(postfix, len(results))
		for idx := 0; idx < count && idx < len(results); idx++ {
			if spine[idx] && results[idx] == False {
				return true
			}
		}
	}

	if len(results) > MaxTruthTableOperands {
		return false
	}

	unknown := make([]int, 0, len(results))
	for idx, r := range results {
		if !r.Known() {
			unknown = append(unknown, idx)
		}
	}

	trial := make([]Result, len(results))
	copy(trial, results)

	outcome := Undetermined
	for row := 0; row < 1<<len(unknown); row++ {
		for bit, idx := range unknown {
			trial[idx] = ResultOf(row>>bit&1 == 1)
		}
		v, err := evaluate(postfix, trial, nil)
		if err != nil {
			return false
		}
		rowResult := ResultOf(v)
		if outcome == Undetermined {
			outcome = rowResult
		} else if outcome != rowResult {
			return false
		}
	}
	return outcome == False
}

// conjuncts marks the operands joined to the root by AND operators only.
func conjuncts(postfix []Token, operands int) []bool {
	out := make([]bool, operands)
	var walk func(end int, spine bool) int
	walk = func(end int, spine bool) int {
		tok := postfix[end]
		switch {
		case tok.Kind == Operand:
			if spine && tok.Index >= 0 && tok.Index < operands {
				out[tok.Index] = true
			}
			return end
		case tok.Kind == Not:
			return walk(end-1, false)
		default:
			spine = spine && tok.Kind == And
			start := walk(end-1, spine)
			return walk(start-1, spine)
		}
	}
	if len(postfix) > 0 {
		walk(len(postfix)-1, true)
	}
	return out
}

// negative evaluates the expression with every operand false.
func negative(postfix []Token, operands int) bool {
	results := make([]Result, operands)
	for i := range results {
		results[i] = False
	}
	v, err := evaluate(postfix, results, nil)
	if err != nil {
		return false
	}
	return v
}
