package script

func applyStack(o Operation, stack *Stack, ctx *Context) bool {
	switch o.Opcode {
	case MoveToAltStack:
		v := stack.Pop()
		if stack.DidOverflow() {
			return false
		}
		stack.PushToAlt(v)

	case MoveFromAltStack:
		v := stack.PopFromAlt()
		if stack.DidOverflow() {
			return false
		}
		stack.Push(v)

	case Pop:
		stack.Pop()

	case PopTwo:
		stack.Pop()
		stack.Pop()

	case Remove2nd:
		stack.PopFromIndex(1)

	case Swap:
		stack.Push(stack.PopFromIndex(1))

	case Rotate:
		stack.Push(stack.PopFromIndex(2))

	case SwapPairs:
		a := stack.PopFromIndex(3)
		b := stack.PopFromIndex(2)
		if stack.DidOverflow() {
			return false
		}
		stack.Push(a)
		stack.Push(b)

	case Move6thThen5th:
		a := stack.PopFromIndex(5)
		b := stack.PopFromIndex(4)
		if stack.DidOverflow() {
			return false
		}
		stack.Push(a)
		stack.Push(b)

	case MoveNth:
		n, ok := ctx.popIndex(stack)
		if !ok {
			return false
		}
		v := stack.PopFromIndex(n)
		if stack.DidOverflow() {
			return false
		}
		stack.Push(v)

	case CopyIfTrue:
		v := stack.Peek(0)
		if stack.DidOverflow() {
			return false
		}
		if v.Bool() {
			stack.Push(v)
		}

	default:
		return false
	}
	return !stack.DidOverflow()
}
