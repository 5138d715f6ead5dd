package validation

import (
	"fmt"

	"github.com/btcsuite/btcd/wire"

	"github.com/goodnatureofminers/utxonode/internal/script"
	"github.com/goodnatureofminers/utxonode/internal/upgrade"
)

// ScriptCheck is a single script evaluation outside of a block.
type ScriptCheck struct {
	Unlocking []byte
	Locking   []byte
	// Tx is the spending transaction. When nil a one-input transaction carrying Unlocking is
	// used, so signature checks fail.
	Tx         *wire.MsgTx
	InputIndex int
	// Amount is the value of the spent output.
	Amount int64
	Point  upgrade.Point
}

// CheckScript evaluates check under schedule. The returned error reports a malformed check; a
// failed evaluation is reported through the result.
func CheckScript(check ScriptCheck, schedule upgrade.Schedule) (script.Result, error) {
	tx := check.Tx
	if tx == nil {
		tx = wire.NewMsgTx(wire.TxVersion)
		tx.AddTxIn(wire.NewTxIn(&wire.OutPoint{}, check.Unlocking, nil))
		tx.AddTxOut(wire.NewTxOut(0, nil))
		check.InputIndex = 0
	}
	if check.InputIndex < 0 || check.InputIndex >= len(tx.TxIn) {
		return script.Result{}, fmt.Errorf("input index %d out of range for %d inputs", check.InputIndex, len(tx.TxIn))
	}

	unlocking := check.Unlocking
	if unlocking == nil {
		unlocking = tx.TxIn[check.InputIndex].SignatureScript
	}

	prevOuts := make([]*wire.TxOut, len(tx.TxIn))
	for i := range prevOuts {
		prevOuts[i] = wire.NewTxOut(0, nil)
	}
	prevOuts[check.InputIndex] = wire.NewTxOut(check.Amount, check.Locking)

	ctx := &script.Context{
		Tx:              tx,
		InputIndex:      check.InputIndex,
		PreviousOutputs: prevOuts,
		Height:          check.Point.Height,
		MedianTime:      check.Point.MedianTime,
		Schedule:        schedule,
	}
	return script.NewRunner(unlocking, check.Locking).Run(ctx), nil
}
