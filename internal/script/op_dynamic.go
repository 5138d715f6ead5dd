package script

func applyDynamicValue(o Operation, stack *Stack, ctx *Context) bool {
	switch o.Opcode {
	case PushStackSize:
		stack.Push(IntValue(int64(stack.Size())))

	case Copy1st:
		stack.Push(stack.Peek(0))

	case Copy2nd:
		stack.Push(stack.Peek(1))

	case CopyNth:
		n, ok := ctx.popIndex(stack)
		if !ok {
			return false
		}
		v := stack.Peek(n)
		if stack.DidOverflow() {
			return false
		}
		stack.Push(v)

	case Copy2ndThen1st:
		second, first := stack.Peek(1), stack.Peek(0)
		if stack.DidOverflow() {
			return false
		}
		stack.Push(second)
		stack.Push(first)

	case Copy3rdThen2nd1st:
		third, second, first := stack.Peek(2), stack.Peek(1), stack.Peek(0)
		if stack.DidOverflow() {
			return false
		}
		stack.Push(third)
		stack.Push(second)
		stack.Push(first)

	case Copy4thThen3rd:
		fourth, third := stack.Peek(3), stack.Peek(2)
		if stack.DidOverflow() {
			return false
		}
		stack.Push(fourth)
		stack.Push(third)

	case Copy1stToUnder2nd:
		first := stack.Pop()
		second := stack.Pop()
		if stack.DidOverflow() {
			return false
		}
		stack.Push(first)
		stack.Push(second)
		stack.Push(first)

	default:
		return false
	}
	return !stack.DidOverflow()
}
