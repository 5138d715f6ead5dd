package script

import (
	"errors"
	"fmt"

	"github.com/goodnatureofminers/utxonode/internal/upgrade"
)

var (
	ErrScriptTooLarge        = errors.New("script exceeds max size")
	ErrOperationLimit        = errors.New("operation count exceeded")
	ErrDisabledOpcode        = errors.New("disabled opcode")
	ErrOperationFailed       = errors.New("operation failed")
	ErrUnbalancedConditional = errors.New("unbalanced conditional")
	ErrStackOverflow         = errors.New("stack overflow")
	ErrEvalFalse             = errors.New("script evaluated to false")
	ErrUnlockingNotPushOnly  = errors.New("unlocking script is not push only")
	ErrCleanStack            = errors.New("stack not clean after evaluation")
	ErrMalformedRedeemScript = errors.New("malformed redeem script")
	ErrMissingSigningContext = errors.New("missing signing context")
)

// Result is the outcome of running one input. Err is nil when the spend is authorized.
type Result struct {
	Err            error
	Stack          []Value
	OperationCount int
}

// Valid reports whether the spend is authorized.
func (r Result) Valid() bool { return r.Err == nil }

// Runner evaluates an unlocking script against the locking script of the output it spends.
type Runner struct {
	Unlocking []byte
	Locking   []byte
}

// NewRunner returns a Runner for one input.
func NewRunner(unlocking, locking []byte) *Runner {
	return &Runner{Unlocking: unlocking, Locking: locking}
}

// Run executes both scripts, then the redeem script for pay-to-script-hash outputs.
func (r *Runner) Run(ctx *Context) Result {
	if ctx == nil {
		return Result{Err: ErrMissingSigningContext}
	}

	unlocking, err := Parse(r.Unlocking)
	if err != nil {
		return Result{Err: fmt.Errorf("parse unlocking script: %w", err)}
	}
	locking, err := Parse(r.Locking)
	if err != nil {
		return Result{Err: fmt.Errorf("parse locking script: %w", err)}
	}

	if ctx.IsActive(upgrade.PushOnlyUnlockingScript) && !unlocking.IsPushOnly() {
		return Result{Err: ErrUnlockingNotPushOnly}
	}

	stack := NewStack()
	opCount := 0

	if err := Evaluate(unlocking, stack, ctx); err != nil {
		return Result{Err: fmt.Errorf("unlocking script: %w", err), Stack: stack.Values(), OperationCount: ctx.opCount}
	}
	opCount += ctx.opCount
	beforeLocking := stack.Clone()

	if err := Evaluate(locking, stack, ctx); err != nil {
		return Result{Err: fmt.Errorf("locking script: %w", err), Stack: stack.Values(), OperationCount: opCount + ctx.opCount}
	}
	opCount += ctx.opCount
	if err := checkFinalStack(stack); err != nil {
		return Result{Err: err, Stack: stack.Values(), OperationCount: opCount}
	}

	if isScriptHashLocked(locking, ctx) {
		if !unlocking.IsPushOnly() {
			return Result{Err: ErrUnlockingNotPushOnly, Stack: stack.Values(), OperationCount: opCount}
		}

		stack = beforeLocking
		redeem, err := Parse(stack.Pop())
		if err != nil || stack.DidOverflow() {
			return Result{Err: ErrMalformedRedeemScript, Stack: stack.Values(), OperationCount: opCount}
		}

		if err := Evaluate(redeem, stack, ctx); err != nil {
			return Result{Err: fmt.Errorf("redeem script: %w", err), Stack: stack.Values(), OperationCount: opCount + ctx.opCount}
		}
		opCount += ctx.opCount
		if err := checkFinalStack(stack); err != nil {
			return Result{Err: err, Stack: stack.Values(), OperationCount: opCount}
		}
	}

	if ctx.IsActive(upgrade.CleanStack) && stack.Size() != 1 {
		return Result{Err: ErrCleanStack, Stack: stack.Values(), OperationCount: opCount}
	}

	return Result{Stack: stack.Values(), OperationCount: opCount}
}

func isScriptHashLocked(locking Script, ctx *Context) bool {
	switch {
	case locking.IsPayToScriptHash():
		return ctx.IsActive(upgrade.PayToScriptHash)
	case locking.IsPayToScriptHash32():
		return ctx.IsActive(upgrade.PayToScriptHash32)
	default:
		return false
	}
}

func checkFinalStack(stack *Stack) error {
	if stack.DidOverflow() {
		return ErrStackOverflow
	}
	if stack.IsEmpty() || !stack.Peek(0).Bool() {
		return ErrEvalFalse
	}
	return nil
}

// Evaluate executes s on stack. The alt stack is cleared before returning.
func Evaluate(s Script, stack *Stack, ctx *Context) error {
	defer stack.clearAlt()

	if s.Len() > MaxScriptByteCount {
		return ErrScriptTooLarge
	}

	ctx.begin(s)
	ctx.opCount = 0
	controlState := NewControlState()

	for i, op := range s.ops {
		ctx.position = i

		if op.Opcode > PushSixteen {
			ctx.opCount++
			if ctx.opCount > MaxOperationCount {
				return ErrOperationLimit
			}
		}
		if ctx.isDisabled(op.Opcode) {
			return fmt.Errorf("%w: %s", ErrDisabledOpcode, op.Opcode)
		}
		if !controlState.ShouldExecute() && !op.Opcode.IsConditional() {
			continue
		}

		if !op.ApplyTo(stack, controlState, ctx) {
			return fmt.Errorf("%w: %s at %d", ErrOperationFailed, op.Opcode, i)
		}
	}

	if controlState.IsInCodeBlock() {
		return ErrUnbalancedConditional
	}
	if stack.DidOverflow() {
		return ErrStackOverflow
	}
	return nil
}
