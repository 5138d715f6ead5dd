package script

func applyPush(o Operation, stack *Stack, ctx *Context) bool {
	switch {
	case o.Opcode == PushZero:
		stack.Push(Value{})
	case o.Opcode == PushNegativeOne:
		stack.Push(IntValue(-1))
	case o.Opcode >= PushOne && o.Opcode <= PushSixteen:
		stack.Push(IntValue(int64(o.Opcode-PushOne) + 1))
	default:
		if ctx.requireMinimal() && !isMinimalPush(o) {
			return false
		}
		v, ok := NewValue(o.Data)
		if !ok {
			return false
		}
		stack.Push(v)
	}
	return !stack.DidOverflow()
}

// isMinimalPush reports whether a data push uses the shortest opcode for its payload.
func isMinimalPush(o Operation) bool {
	n := len(o.Data)
	switch {
	case n == 0:
		return o.Opcode == PushZero
	case n == 1 && o.Data[0] >= 1 && o.Data[0] <= 16:
		return false
	case n == 1 && o.Data[0] == 0x81:
		return false
	case n <= int(PushDataMax):
		return o.Opcode == Opcode(n)
	case n <= 0xff:
		return o.Opcode == PushDataByte
	case n <= 0xffff:
		return o.Opcode == PushDataShort
	default:
		return true
	}
}
