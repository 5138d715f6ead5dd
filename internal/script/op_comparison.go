package script

func applyComparison(o Operation, stack *Stack, ctx *Context) bool {
	switch o.Opcode {
	case IsEqual, IsEqualThenVerify:
		second := stack.Pop()
		first := stack.Pop()
		if stack.DidOverflow() {
			return false
		}
		equal := first.Equal(second)
		if o.Opcode == IsEqualThenVerify {
			return equal
		}
		stack.Push(BoolValue(equal))
		return !stack.DidOverflow()

	case IsTrue:
		n, ok := ctx.popInteger(stack)
		if !ok {
			return false
		}
		stack.Push(BoolValue(n != 0))
		return !stack.DidOverflow()

	case IsWithinRange:
		upper, ok := ctx.popInteger(stack)
		if !ok {
			return false
		}
		lower, ok := ctx.popInteger(stack)
		if !ok {
			return false
		}
		n, ok := ctx.popInteger(stack)
		if !ok {
			return false
		}
		stack.Push(BoolValue(lower <= n && n < upper))
		return !stack.DidOverflow()
	}

	// Binary numeric comparisons. The deeper operand is the left-hand side.
	b, ok := ctx.popInteger(stack)
	if !ok {
		return false
	}
	a, ok := ctx.popInteger(stack)
	if !ok {
		return false
	}

	var result bool
	switch o.Opcode {
	case IntegerAnd:
		result = a != 0 && b != 0
	case IntegerOr:
		result = a != 0 || b != 0
	case IsNumericallyEqual, IsNumericallyEqualThenVerify:
		result = a == b
	case IsNotNumericallyEqual:
		result = a != b
	case IsLessThan:
		result = a < b
	case IsGreaterThan:
		result = a > b
	case IsLessThanOrEqual:
		result = a <= b
	case IsGreaterThanOrEqual:
		result = a >= b
	default:
		return false
	}

	if o.Opcode == IsNumericallyEqualThenVerify {
		return result
	}
	stack.Push(BoolValue(result))
	return !stack.DidOverflow()
}
