package script

import "github.com/goodnatureofminers/utxonode/internal/upgrade"

func applyIntrospection(o Operation, stack *Stack, ctx *Context) bool {
	if !ctx.IsActive(upgrade.NativeIntrospection) {
		return true
	}
	if ctx.Tx == nil {
		return false
	}
	tx := ctx.Tx

	var v Value
	switch o.Opcode {
	case PushInputIndex:
		v = IntValue(int64(ctx.InputIndex))

	case PushActiveBytecode:
		v = ctx.subscript()

	case PushTransactionVersion:
		v = IntValue(int64(tx.Version))

	case PushTransactionInputCount:
		v = IntValue(int64(len(tx.TxIn)))

	case PushTransactionOutputCount:
		v = IntValue(int64(len(tx.TxOut)))

	case PushTransactionLockTime:
		v = IntValue(int64(tx.LockTime))

	case PushPreviousOutputValue, PushPreviousOutputBytecode:
		i, ok := ctx.popIndex(stack)
		if !ok {
			return false
		}
		prev, ok := ctx.previousOutput(i)
		if !ok {
			return false
		}
		if o.Opcode == PushPreviousOutputValue {
			v = IntValue(prev.Value)
		} else {
			v = prev.PkScript
		}

	case PushPreviousOutputTxHash, PushPreviousOutputIndex, PushInputBytecode, PushInputSequenceNumber:
		i, ok := ctx.popIndex(stack)
		if !ok {
			return false
		}
		in, ok := ctx.input(i)
		if !ok {
			return false
		}
		switch o.Opcode {
		case PushPreviousOutputTxHash:
			v = append(Value{}, in.PreviousOutPoint.Hash[:]...)
		case PushPreviousOutputIndex:
			v = IntValue(int64(in.PreviousOutPoint.Index))
		case PushInputBytecode:
			v = in.SignatureScript
		default:
			v = IntValue(int64(in.Sequence))
		}

	case PushOutputValue, PushOutputBytecode:
		i, ok := ctx.popIndex(stack)
		if !ok {
			return false
		}
		out, ok := ctx.output(i)
		if !ok {
			return false
		}
		if o.Opcode == PushOutputValue {
			v = IntValue(out.Value)
		} else {
			v = out.PkScript
		}

	default:
		return false
	}

	value, ok := NewValue(v)
	if !ok {
		return false
	}
	stack.Push(value)
	return !stack.DidOverflow()
}
