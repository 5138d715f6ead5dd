package script

import (
	"math"

	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"

	"github.com/goodnatureofminers/utxonode/internal/upgrade"
)

// Context is the transaction-signing context of one input. Callers fill the exported fields;
// the interpreter owns the rest. A Context must not be shared between concurrent evaluations.
type Context struct {
	Tx              *wire.MsgTx
	InputIndex      int
	PreviousOutputs []*wire.TxOut
	Height          int64
	MedianTime      int64
	Schedule        upgrade.Schedule
	SigCache        SignatureCache

	active        Script
	position      int
	codeSeparator int
	opCount       int
	sigHashes     *txscript.TxSigHashes
}

// IsActive reports whether feature applies at the context's chain position.
func (c *Context) IsActive(feature upgrade.Feature) bool {
	if c.Schedule == nil {
		return false
	}
	return c.Schedule.IsActive(feature, upgrade.Point{Height: c.Height, MedianTime: c.MedianTime})
}

// isDisabled reports whether op fails on presence, including inside a skipped branch. The
// bitwise shift family stays disabled until its upgrade activates.
func (c *Context) isDisabled(op Opcode) bool {
	switch op {
	case BitwiseInvert, ShiftLeft, ShiftRight:
		return !c.IsActive(upgrade.BitwiseShift)
	default:
		return op.IsDisabled()
	}
}

func (c *Context) requireMinimal() bool {
	return c.IsActive(upgrade.MinimalNumberEncoding)
}

func (c *Context) integerByteCount() int {
	if c.IsActive(upgrade.Integers64Bit) {
		return longByteCount
	}
	return integerByteCount
}

// inIntegerRange reports whether n is representable by the active integer width.
func (c *Context) inIntegerRange(n int64) bool {
	if c.IsActive(upgrade.Integers64Bit) {
		return n != math.MinInt64
	}
	return n >= -math.MaxInt32 && n <= math.MaxInt32
}

// popInteger pops a script number using the active width and encoding rules.
func (c *Context) popInteger(stack *Stack) (int64, bool) {
	v := stack.Pop()
	if stack.DidOverflow() {
		return 0, false
	}
	return v.Int64(c.requireMinimal(), c.integerByteCount())
}

// popIndex pops a non-negative integer used as a position.
func (c *Context) popIndex(stack *Stack) (int, bool) {
	n, ok := c.popInteger(stack)
	if !ok || n < 0 || n > MaxStackSize*MaxValueByteCount {
		return 0, false
	}
	return int(n), true
}

func (c *Context) begin(s Script) {
	c.active = s
	c.position = 0
	c.codeSeparator = 0
}

// subscript is the executing script from just after the last executed CODE_SEPARATOR.
func (c *Context) subscript() []byte {
	return c.active.raw[c.codeSeparator:]
}

func (c *Context) input(i int) (*wire.TxIn, bool) {
	if c.Tx == nil || i < 0 || i >= len(c.Tx.TxIn) {
		return nil, false
	}
	return c.Tx.TxIn[i], true
}

func (c *Context) output(i int) (*wire.TxOut, bool) {
	if c.Tx == nil || i < 0 || i >= len(c.Tx.TxOut) {
		return nil, false
	}
	return c.Tx.TxOut[i], true
}

func (c *Context) previousOutput(i int) (*wire.TxOut, bool) {
	if _, ok := c.input(i); !ok {
		return nil, false
	}
	if i >= len(c.PreviousOutputs) || c.PreviousOutputs[i] == nil {
		return nil, false
	}
	return c.PreviousOutputs[i], true
}

// signatureHashes lazily computes the fork-id digest midstates for the transaction.
func (c *Context) signatureHashes() *txscript.TxSigHashes {
	if c.sigHashes == nil {
		c.sigHashes = txscript.NewTxSigHashes(c.Tx, prevOutputFetcher{ctx: c})
	}
	return c.sigHashes
}

// prevOutputFetcher adapts the context's previous outputs to txscript. Unknown outpoints resolve
// to an empty output so midstate computation never sees nil.
type prevOutputFetcher struct {
	ctx *Context
}

func (f prevOutputFetcher) FetchPrevOutput(op wire.OutPoint) *wire.TxOut {
	for i, in := range f.ctx.Tx.TxIn {
		if in.PreviousOutPoint != op {
			continue
		}
		if out, ok := f.ctx.previousOutput(i); ok {
			return out
		}
		break
	}
	return &wire.TxOut{}
}
