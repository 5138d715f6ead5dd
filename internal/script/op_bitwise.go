package script

func applyBitwise(o Operation, stack *Stack, ctx *Context) bool {
	switch o.Opcode {
	case BitwiseAnd, BitwiseOr, BitwiseXor:
		second := stack.Pop()
		first := stack.Pop()
		if stack.DidOverflow() || len(first) != len(second) {
			return false
		}
		out := make(Value, len(first))
		for i := range first {
			switch o.Opcode {
			case BitwiseAnd:
				out[i] = first[i] & second[i]
			case BitwiseOr:
				out[i] = first[i] | second[i]
			default:
				out[i] = first[i] ^ second[i]
			}
		}
		stack.Push(out)

	case BitwiseInvert:
		v := stack.Pop()
		if stack.DidOverflow() {
			return false
		}
		out := make(Value, len(v))
		for i := range v {
			out[i] = ^v[i]
		}
		stack.Push(out)

	case ShiftLeft, ShiftRight:
		countValue := stack.Pop()
		v := stack.Pop()
		if stack.DidOverflow() {
			return false
		}
		count, ok := countValue.Int64(true, ctx.integerByteCount())
		if !ok || count < 0 {
			return false
		}
		if o.Opcode == ShiftLeft {
			stack.Push(shiftLeft(v, count))
		} else {
			stack.Push(shiftRight(v, count))
		}

	default:
		return false
	}
	return !stack.DidOverflow()
}

// shiftLeft moves every bit count positions toward the first byte, filling with zeros.
func shiftLeft(v Value, count int64) Value {
	bitCount := int64(len(v)) * 8
	out := make(Value, len(v))
	if count >= bitCount {
		return out
	}
	for i := int64(0); i < bitCount-count; i++ {
		setBit(out, int(i), v.bit(int(i+count)))
	}
	return out
}

// shiftRight moves every bit count positions toward the last byte, filling with zeros.
func shiftRight(v Value, count int64) Value {
	bitCount := int64(len(v)) * 8
	out := make(Value, len(v))
	if count >= bitCount {
		return out
	}
	for i := count; i < bitCount; i++ {
		setBit(out, int(i), v.bit(int(i-count)))
	}
	return out
}
