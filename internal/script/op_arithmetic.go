package script

import (
	"math"

	"github.com/goodnatureofminers/utxonode/internal/upgrade"
)

func applyArithmetic(o Operation, stack *Stack, ctx *Context) bool {
	switch o.Opcode {
	case AddOne, SubtractOne, Negate, AbsoluteValue, Not:
		n, ok := ctx.popInteger(stack)
		if !ok {
			return false
		}
		var result int64
		switch o.Opcode {
		case AddOne:
			if result, ok = addInt64(n, 1); !ok {
				return false
			}
		case SubtractOne:
			if result, ok = subInt64(n, 1); !ok {
				return false
			}
		case Negate:
			result = -n
		case AbsoluteValue:
			result = n
			if n < 0 {
				result = -n
			}
		case Not:
			if n == 0 {
				result = 1
			}
		}
		return pushInteger(stack, ctx, result)
	}

	if o.Opcode == Multiply && !ctx.IsActive(upgrade.Multiply) {
		return false
	}

	// The deeper operand is the left-hand side: a b SUBTRACT yields a-b.
	b, ok := ctx.popInteger(stack)
	if !ok {
		return false
	}
	a, ok := ctx.popInteger(stack)
	if !ok {
		return false
	}

	var result int64
	switch o.Opcode {
	case Add:
		result, ok = addInt64(a, b)
	case Subtract:
		result, ok = subInt64(a, b)
	case Multiply:
		result, ok = mulInt64(a, b)
	case Divide:
		if b == 0 {
			return false
		}
		result = a / b
	case Modulus:
		if b == 0 {
			return false
		}
		result = a % b
	case Min:
		result = min(a, b)
	case Max:
		result = max(a, b)
	default:
		return false
	}
	if !ok {
		return false
	}
	return pushInteger(stack, ctx, result)
}

// pushInteger pushes n when it fits the active integer width and fails otherwise.
func pushInteger(stack *Stack, ctx *Context, n int64) bool {
	if !ctx.inIntegerRange(n) {
		return false
	}
	stack.Push(IntValue(n))
	return !stack.DidOverflow()
}

func addInt64(a, b int64) (int64, bool) {
	c := a + b
	if (c > a) != (b > 0) {
		return 0, false
	}
	return c, true
}

func subInt64(a, b int64) (int64, bool) {
	c := a - b
	if (c < a) != (b > 0) {
		return 0, false
	}
	return c, true
}

func mulInt64(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, false
	}
	c := a * b
	if c/b != a {
		return 0, false
	}
	return c, true
}
