// Package validation checks the scripts of every input of a block.
package validation

import (
	"context"
	"fmt"
	"sync"
	"time"

	btcchain "github.com/btcsuite/btcd/blockchain"
	"github.com/btcsuite/btcd/wire"
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/utxonode/internal/script"
	"github.com/goodnatureofminers/utxonode/internal/upgrade"
)

// Validator runs input scripts on a shared goroutine pool.
type Validator struct {
	logger   *zap.Logger
	pool     *ants.Pool
	schedule upgrade.Schedule
	sigCache script.SignatureCache
	metrics  Metrics
}

// NewValidator starts a pool of workers goroutines. sigCache may be nil.
func NewValidator(logger *zap.Logger, schedule upgrade.Schedule, sigCache script.SignatureCache, metrics Metrics, workers int) (*Validator, error) {
	pool, err := ants.NewPool(workers, ants.WithExpiryDuration(10*time.Second))
	if err != nil {
		return nil, fmt.Errorf("create validation pool: %w", err)
	}
	if sigCache != nil {
		sigCache = NewObservedSignatureCache(sigCache, metrics)
	}
	return &Validator{
		logger:   logger.Named("validator"),
		pool:     pool,
		schedule: schedule,
		sigCache: sigCache,
		metrics:  metrics,
	}, nil
}

// Close stops the pool.
func (v *Validator) Close() {
	v.pool.Release()
}

type inputJob struct {
	tx         *wire.MsgTx
	index      int
	prevOutput []*wire.TxOut
}

// ValidateBlock checks that no outpoint is spent twice and that every non-coinbase input is
// authorized by the output it spends. Outputs created in the block are resolved before prevOuts is
// asked: any transaction's outputs once canonical ordering is active, earlier transactions' before.
// The first failing input cancels the rest.
func (v *Validator) ValidateBlock(ctx context.Context, block *wire.MsgBlock, point upgrade.Point, prevOuts PrevOutputSource) (err error) {
	started := time.Now()
	jobs := 0
	defer func() {
		v.metrics.ObserveBlock(err, jobs, started)
	}()

	inputs, err := v.collectInputs(ctx, block, v.schedule.IsActive(upgrade.CanonicalTransactionOrder, point), prevOuts)
	if err != nil {
		return err
	}
	jobs = len(inputs)

	if err := v.run(ctx, inputs, point); err != nil {
		return err
	}

	v.logger.Debug("block scripts valid",
		zap.Stringer("hash", block.BlockHash()),
		zap.Int("inputs", jobs),
		zap.Duration("elapsed", time.Since(started)))
	return nil
}

func (v *Validator) collectInputs(ctx context.Context, block *wire.MsgBlock, anyOrder bool, prevOuts PrevOutputSource) ([]inputJob, error) {
	spent := mapset.NewThreadUnsafeSet[wire.OutPoint]()
	created := make(map[wire.OutPoint]*wire.TxOut)
	if anyOrder {
		for _, tx := range block.Transactions {
			addOutputs(created, tx)
		}
	}

	var jobs []inputJob
	for _, tx := range block.Transactions {
		txHash := tx.TxHash()

		if !btcchain.IsCoinBaseTx(tx) {
			prevOutputs := make([]*wire.TxOut, len(tx.TxIn))
			for i, in := range tx.TxIn {
				op := in.PreviousOutPoint
				if spent.Contains(op) {
					return nil, fmt.Errorf("%w: %s in tx %s", ErrDoubleSpend, op, txHash)
				}
				spent.Add(op)

				out, ok := created[op]
				if !ok {
					var err error
					if out, err = prevOuts.PreviousOutput(ctx, op); err != nil {
						return nil, fmt.Errorf("resolve %s: %w", op, err)
					}
					if out == nil {
						return nil, fmt.Errorf("%w: %s", ErrMissingPreviousOutput, op)
					}
				}
				prevOutputs[i] = out
			}
			for i := range tx.TxIn {
				jobs = append(jobs, inputJob{tx: tx, index: i, prevOutput: prevOutputs})
			}
		}

		if !anyOrder {
			addOutputs(created, tx)
		}
	}
	return jobs, nil
}

func addOutputs(created map[wire.OutPoint]*wire.TxOut, tx *wire.MsgTx) {
	txHash := tx.TxHash()
	for i, out := range tx.TxOut {
		created[wire.OutPoint{Hash: txHash, Index: uint32(i)}] = out
	}
}

func (v *Validator) run(ctx context.Context, jobs []inputJob, point upgrade.Point) error {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg       sync.WaitGroup
		once     sync.Once
		firstErr error
	)
	fail := func(err error) {
		once.Do(func() {
			firstErr = err
			cancel()
		})
	}

	for _, job := range jobs {
		job := job
		if runCtx.Err() != nil {
			break
		}
		wg.Add(1)
		if err := v.pool.Submit(func() {
			defer wg.Done()
			if runCtx.Err() != nil {
				return
			}
			if err := v.verifyInput(job, point); err != nil {
				fail(err)
			}
		}); err != nil {
			wg.Done()
			fail(fmt.Errorf("submit input: %w", err))
			break
		}
	}
	wg.Wait()

	if firstErr != nil {
		return firstErr
	}
	return ctx.Err()
}

func (v *Validator) verifyInput(job inputJob, point upgrade.Point) error {
	in := job.tx.TxIn[job.index]
	sc := &script.Context{
		Tx:              job.tx,
		InputIndex:      job.index,
		PreviousOutputs: job.prevOutput,
		Height:          point.Height,
		MedianTime:      point.MedianTime,
		Schedule:        v.schedule,
		SigCache:        v.sigCache,
	}

	result := script.NewRunner(in.SignatureScript, job.prevOutput[job.index].PkScript).Run(sc)
	if !result.Valid() {
		return &InputError{TxHash: job.tx.TxHash(), InputIndex: job.index, Err: result.Err}
	}
	return nil
}

// OutputSet is a PrevOutputSource over a fixed set of outputs.
type OutputSet map[wire.OutPoint]*wire.TxOut

func (s OutputSet) PreviousOutput(_ context.Context, outpoint wire.OutPoint) (*wire.TxOut, error) {
	out, ok := s[outpoint]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingPreviousOutput, outpoint)
	}
	return out, nil
}
