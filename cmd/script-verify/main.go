// Package main evaluates a locking/unlocking script pair offline and prints the final stack.
package main

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/utxonode/internal/upgrade"
	"github.com/goodnatureofminers/utxonode/internal/validation"
)

type config struct {
	Network     string `long:"network" env:"SCRIPT_VERIFY_NETWORK" description:"network whose upgrade schedule applies" default:"mainnet"`
	Unlocking   string `long:"unlocking" description:"hex unlocking script, taken from the transaction input when empty"`
	Locking     string `long:"locking" description:"hex locking script" required:"true"`
	Transaction string `long:"tx" description:"hex serialized spending transaction"`
	InputIndex  int    `long:"input" description:"index of the input being verified" default:"0"`
	Amount      int64  `long:"amount" description:"spent output value in satoshis"`
	Height      int64  `long:"height" description:"block height the spend is evaluated at"`
	MedianTime  int64  `long:"median-time" description:"median time past (unix seconds) the spend is evaluated at"`
}

func main() {
	cfg := config{}

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("failed to parse flags", zap.Error(err))
	}

	valid, err := verify(cfg, os.Stdout)
	if err != nil {
		logger.Fatal("script verification failed", zap.Error(err))
	}
	if !valid {
		_ = logger.Sync()
		os.Exit(1)
	}
}

// verify runs the scripts and writes the outcome to w. An error means the input could not be
// evaluated at all; a script that fails is reported as valid == false.
func verify(cfg config, w io.Writer) (bool, error) {
	schedule, err := upgrade.ForNetwork(cfg.Network)
	if err != nil {
		return false, err
	}
	check, err := scriptCheck(cfg)
	if err != nil {
		return false, err
	}

	res, err := validation.CheckScript(check, schedule)
	if err != nil {
		return false, err
	}

	if res.Valid() {
		fmt.Fprintln(w, "result: valid")
	} else {
		fmt.Fprintf(w, "result: invalid (%v)\n", res.Err)
	}
	fmt.Fprintf(w, "operations: %d\n", res.OperationCount)
	fmt.Fprintf(w, "locking script class: %s\n", txscript.GetScriptClass(check.Locking))
	fmt.Fprintln(w, "stack (bottom first):")
	for i, v := range res.Stack {
		fmt.Fprintf(w, "  %d: %s\n", i, v)
	}
	return res.Valid(), nil
}

func scriptCheck(cfg config) (validation.ScriptCheck, error) {
	locking, err := hex.DecodeString(cfg.Locking)
	if err != nil {
		return validation.ScriptCheck{}, fmt.Errorf("decode locking script: %w", err)
	}
	check := validation.ScriptCheck{
		Locking:    locking,
		InputIndex: cfg.InputIndex,
		Amount:     cfg.Amount,
		Point:      upgrade.Point{Height: cfg.Height, MedianTime: cfg.MedianTime},
	}
	if cfg.Unlocking != "" {
		if check.Unlocking, err = hex.DecodeString(cfg.Unlocking); err != nil {
			return validation.ScriptCheck{}, fmt.Errorf("decode unlocking script: %w", err)
		}
	}
	if cfg.Transaction == "" {
		if check.Unlocking == nil {
			return validation.ScriptCheck{}, errors.New("either --unlocking or --tx is required")
		}
		return check, nil
	}

	raw, err := hex.DecodeString(cfg.Transaction)
	if err != nil {
		return validation.ScriptCheck{}, fmt.Errorf("decode transaction: %w", err)
	}
	tx := wire.NewMsgTx(wire.TxVersion)
	if err := tx.Deserialize(bytes.NewReader(raw)); err != nil {
		return validation.ScriptCheck{}, fmt.Errorf("deserialize transaction: %w", err)
	}
	check.Tx = tx
	return check, nil
}
