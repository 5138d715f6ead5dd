package script

import (
	"github.com/btcsuite/btcd/wire"

	"github.com/goodnatureofminers/utxonode/internal/upgrade"
)

const (
	// LockTimeThreshold separates block-height lock times from timestamps.
	LockTimeThreshold = 500_000_000

	lockTimeByteCount = 5

	sequenceDisableFlag = 1 << 31
	sequenceTypeFlag    = 1 << 22
	sequenceMask        = 0x0000ffff
)

func applyLockTime(o Operation, stack *Stack, ctx *Context) bool {
	switch o.Opcode {
	case CheckLockTimeThenVerify:
		if !ctx.IsActive(upgrade.CheckLockTime) {
			return true
		}
		return checkLockTime(stack, ctx)

	case CheckSequenceNumberThenVerify:
		if !ctx.IsActive(upgrade.CheckSequenceNumber) {
			return true
		}
		return checkSequenceNumber(stack, ctx)

	default:
		return false
	}
}

// checkLockTime leaves the required lock time on the stack.
func checkLockTime(stack *Stack, ctx *Context) bool {
	in, ok := ctx.input(ctx.InputIndex)
	if !ok {
		return false
	}
	if in.Sequence == wire.MaxTxInSequenceNum {
		return false
	}

	required, ok := peekLockTime(stack, ctx)
	if !ok {
		return false
	}

	actual := int64(ctx.Tx.LockTime)
	if (required < LockTimeThreshold) != (actual < LockTimeThreshold) {
		return false
	}
	return required <= actual
}

// checkSequenceNumber compares the relative lock time on the stack with the input's sequence.
func checkSequenceNumber(stack *Stack, ctx *Context) bool {
	in, ok := ctx.input(ctx.InputIndex)
	if !ok {
		return false
	}

	required, ok := peekLockTime(stack, ctx)
	if !ok {
		return false
	}
	if required&sequenceDisableFlag != 0 {
		return true
	}

	if ctx.Tx.Version < 2 {
		return false
	}
	sequence := int64(in.Sequence)
	if sequence&sequenceDisableFlag != 0 {
		return false
	}

	const mask = sequenceTypeFlag | sequenceMask
	required &= mask
	sequence &= mask
	if (required < sequenceTypeFlag) != (sequence < sequenceTypeFlag) {
		return false
	}
	return required <= sequence
}

// peekLockTime reads the non-negative lock time on top of the stack without consuming it.
func peekLockTime(stack *Stack, ctx *Context) (int64, bool) {
	v := stack.Peek(0)
	if stack.DidOverflow() {
		return 0, false
	}
	n, ok := v.Int64(ctx.requireMinimal(), lockTimeByteCount)
	if !ok || n < 0 {
		return 0, false
	}
	return n, true
}
