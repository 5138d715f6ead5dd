package validation

import (
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

var (
	// ErrScriptFailed is wrapped by every InputError.
	ErrScriptFailed = errors.New("validation: script failed")
	// ErrDoubleSpend is returned when two inputs of one block spend the same outpoint.
	ErrDoubleSpend = errors.New("validation: outpoint spent twice in block")
	// ErrOutputAlreadySpent is returned when an input spends an outpoint already spent by an
	// ancestor of its block.
	ErrOutputAlreadySpent = errors.New("validation: outpoint already spent on this chain")
	// ErrMissingPreviousOutput is returned when an input's previous output cannot be found.
	ErrMissingPreviousOutput = errors.New("validation: previous output not found")
)

// InputError reports the input whose scripts did not authorize the spend.
type InputError struct {
	TxHash     chainhash.Hash
	InputIndex int
	Err        error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("tx %s input %d: %v", e.TxHash, e.InputIndex, e.Err)
}

// Unwrap exposes both ErrScriptFailed and the interpreter error.
func (e *InputError) Unwrap() []error {
	return []error{ErrScriptFailed, e.Err}
}
