package script

import "github.com/goodnatureofminers/utxonode/internal/upgrade"

func applyString(o Operation, stack *Stack, ctx *Context) bool {
	switch o.Opcode {
	case Concatenate:
		second := stack.Pop()
		first := stack.Pop()
		if stack.DidOverflow() {
			return false
		}
		if len(first)+len(second) > MaxValueByteCount {
			return false
		}
		out := make(Value, 0, len(first)+len(second))
		out = append(out, first...)
		out = append(out, second...)
		stack.Push(out)

	case Split:
		n, ok := ctx.popIndex(stack)
		if !ok {
			return false
		}
		v := stack.Pop()
		if stack.DidOverflow() || n > len(v) {
			return false
		}
		left := append(Value{}, v[:n]...)
		right := append(Value{}, v[n:]...)
		stack.Push(left)
		stack.Push(right)

	case NumberToBytes:
		size, ok := ctx.popIndex(stack)
		if !ok || size > MaxValueByteCount {
			return false
		}
		v := stack.Pop()
		if stack.DidOverflow() {
			return false
		}
		out, ok := padNumber(v.MinimallyEncoded(), size)
		if !ok {
			return false
		}
		stack.Push(out)

	case EncodeNumber:
		v := stack.Pop()
		if stack.DidOverflow() {
			return false
		}
		out := v.MinimallyEncoded()
		if len(out) > ctx.integerByteCount() {
			return false
		}
		stack.Push(out)

	case Push1stByteCount:
		v := stack.Peek(0)
		if stack.DidOverflow() {
			return false
		}
		stack.Push(IntValue(int64(len(v))))

	case ReverseBytes:
		if !ctx.IsActive(upgrade.ReverseBytes) {
			return false
		}
		v := stack.Pop()
		if stack.DidOverflow() {
			return false
		}
		out := make(Value, len(v))
		for i := range v {
			out[len(v)-1-i] = v[i]
		}
		stack.Push(out)

	default:
		return false
	}
	return !stack.DidOverflow()
}

// padNumber widens a minimally encoded number to size bytes, moving the sign bit to the new last byte.
func padNumber(v Value, size int) (Value, bool) {
	if len(v) > size {
		return nil, false
	}
	out := make(Value, size)
	copy(out, v)
	if len(v) == 0 || len(v) == size {
		return out, true
	}
	sign := out[len(v)-1] & 0x80
	out[len(v)-1] &^= 0x80
	out[size-1] |= sign
	return out, true
}
