// Package service keeps the segment forest in step with an upstream node.
package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/utxonode/internal/blockchain"
	"github.com/goodnatureofminers/utxonode/internal/clock"
	"github.com/goodnatureofminers/utxonode/internal/model"
	"github.com/goodnatureofminers/utxonode/internal/node/bitcoin"
	"github.com/goodnatureofminers/utxonode/internal/upgrade"
	"github.com/goodnatureofminers/utxonode/internal/validation"
	"github.com/goodnatureofminers/utxonode/pkg/workerpool"
)

// ErrReorgTooDeep is returned when an orphan header cannot be connected within MaxReorgDepth
// ancestors.
var ErrReorgTooDeep = errors.New("follower: reorganisation deeper than allowed")

// Chain is the part of the segment forest the follower drives.
type Chain interface {
	Lock() *blockchain.Mutation
	BlockByHash(hash chainhash.Hash) (blockchain.Block, error)
	Block(id blockchain.BlockID) (blockchain.Block, error)
	HeadBlock() (blockchain.Block, error)
	Segments() []blockchain.Segment
	IsBlockConnectedToSegment(id blockchain.BlockID, segment blockchain.SegmentID, rel blockchain.Relationship) (bool, error)
}

// Config tunes the follower. Zero values fall back to defaults.
type Config struct {
	Network       model.Network
	WorkerCount   int
	BatchSize     int64
	MaxReorgDepth int
	OrphanTTL     time.Duration
}

// Follower pulls headers from an upstream node into the segment forest, optionally validating
// the scripts of best-chain blocks and exporting the forest to ClickHouse.
type Follower struct {
	logger  *zap.Logger
	cfg     Config
	chain   Chain
	source  Source
	metrics FollowerMetrics
	orphans *cache.Cache

	validator BlockValidator
	prevOuts  PrevOutputs
	spent     SpentIndex
	writer    *blockWriter
	health    Health

	sleep             func(context.Context, time.Duration) error
	sleepDuration     time.Duration
	idleSleepDuration time.Duration
	blockSignal       <-chan struct{}

	exported map[blockchain.SegmentID]model.Segment
}

// NewFollower builds a Follower.
func NewFollower(chain Chain, source Source, metrics FollowerMetrics, logger *zap.Logger, cfg Config) (*Follower, error) {
	if metrics == nil {
		return nil, errors.New("follower metrics is required")
	}
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = defaultWorkerCount
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaultBatchSize
	}
	if cfg.MaxReorgDepth <= 0 {
		cfg.MaxReorgDepth = defaultMaxReorgDepth
	}
	if cfg.OrphanTTL <= 0 {
		cfg.OrphanTTL = defaultOrphanTTL
	}

	return &Follower{
		logger:            logger.Named("follower").With(zap.String("network", string(cfg.Network))),
		cfg:               cfg,
		chain:             chain,
		source:            source,
		metrics:           metrics,
		orphans:           cache.New(cfg.OrphanTTL, cfg.OrphanTTL),
		sleep:             clock.SleepWithContext,
		sleepDuration:     sleepDuration,
		idleSleepDuration: idleSleepDuration,
		exported:          make(map[blockchain.SegmentID]model.Segment),
	}, nil
}

// WithValidation enables script validation of best-chain blocks.
func (f *Follower) WithValidation(validator BlockValidator, prevOuts PrevOutputs) *Follower {
	f.validator = validator
	f.prevOuts = prevOuts
	return f
}

// WithSpentOutputs makes validation reject blocks spending outputs already spent on their chain.
// It has no effect without WithValidation.
func (f *Follower) WithSpentOutputs(spent SpentIndex) *Follower {
	f.spent = spent
	return f
}

// WithExport enables export of blocks and segments.
func (f *Follower) WithExport(repo ClickhouseRepository) *Follower {
	f.writer = newBlockWriter(repo, f.logger)
	return f
}

// WithHealth reports readiness to health once the forest reaches the upstream tip.
func (f *Follower) WithHealth(health Health) *Follower {
	f.health = health
	return f
}

// WithBlockSignal wakes the idle follower whenever signal fires.
func (f *Follower) WithBlockSignal(signal <-chan struct{}) *Follower {
	f.blockSignal = signal
	return f
}

// Run follows the upstream node until the context is canceled.
func (f *Follower) Run(ctx context.Context) error {
	if f.writer != nil {
		f.writer.Start(ctx)
		defer f.writer.Stop()
	}

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		caughtUp, err := f.run(ctx)
		switch {
		case err != nil:
			if ctx.Err() != nil {
				return ctx.Err()
			}
			f.logger.Warn("sync iteration failed, backing off", zap.Error(err), zap.Duration("sleep", f.sleepDuration))
			if sleepErr := f.sleep(ctx, f.sleepDuration); sleepErr != nil {
				return sleepErr
			}
		case caughtUp:
			if waitErr := f.wait(ctx, f.idleSleepDuration); waitErr != nil {
				return waitErr
			}
		}
	}
}

// run performs one sync iteration and reports whether the forest reached the upstream tip.
func (f *Follower) run(ctx context.Context) (caughtUp bool, err error) {
	started := time.Now()
	var inserted []blockchain.Block
	defer func() {
		f.metrics.ObserveSync(err, len(inserted), started)
		f.metrics.SetOrphans(f.orphans.ItemCount())
	}()

	latest, err := f.source.LatestHeight(ctx)
	if err != nil {
		return false, err
	}
	local, err := f.localHeight()
	if err != nil {
		return false, err
	}

	headers, err := f.fetchHeaders(ctx, local, latest)
	if err != nil {
		return false, err
	}
	if inserted, err = f.insertHeaders(headers); err != nil {
		return false, err
	}

	resolved, err := f.resolveOrphans(ctx)
	inserted = append(inserted, resolved...)
	if err != nil {
		return false, err
	}

	if len(inserted) > 0 {
		f.logger.Info("headers inserted", zap.Int("count", len(inserted)), zap.Int64("upstream", latest))
	}
	if err = f.process(ctx, inserted); err != nil {
		return false, err
	}

	local, err = f.localHeight()
	if err != nil {
		return false, err
	}
	caughtUp = local >= latest && f.orphans.ItemCount() == 0
	if f.health != nil {
		f.health.SetServing(caughtUp)
	}
	return caughtUp, nil
}

func (f *Follower) localHeight() (int64, error) {
	head, err := f.chain.HeadBlock()
	if errors.Is(err, blockchain.ErrSegmentNotFound) {
		return -1, nil
	}
	if err != nil {
		return 0, fmt.Errorf("head block: %w", err)
	}
	return head.Height, nil
}

// fetchHeaders returns the upstream headers above local, at most BatchSize of them. When the
// forest is level with upstream the upstream tip is returned so that a same-height
// reorganisation is noticed.
func (f *Follower) fetchHeaders(ctx context.Context, local, latest int64) ([]bitcoin.Header, error) {
	from := local + 1
	if from > latest {
		tip, err := f.source.HeaderAt(ctx, latest)
		if err != nil {
			return nil, fmt.Errorf("fetch tip header: %w", err)
		}
		return []bitcoin.Header{tip}, nil
	}

	to := min(latest, local+f.cfg.BatchSize)
	heights := make([]int64, 0, to-from+1)
	for h := from; h <= to; h++ {
		heights = append(heights, h)
	}

	return workerpool.Map(ctx, f.cfg.WorkerCount, heights, func(ctx context.Context, height int64) (bitcoin.Header, error) {
		h, err := f.source.HeaderAt(ctx, height)
		if err != nil {
			return bitcoin.Header{}, fmt.Errorf("fetch header at height %d: %w", height, err)
		}
		return h, nil
	})
}

// insertHeaders inserts headers in order. Headers with an unknown parent are parked in the
// orphan pool; parked headers are adopted as soon as their parent is present.
func (f *Follower) insertHeaders(headers []bitcoin.Header) ([]blockchain.Block, error) {
	mu := f.chain.Lock()
	defer mu.Unlock()

	var inserted []blockchain.Block
	for _, h := range headers {
		b, err := f.insertHeader(mu, h)
		if err != nil {
			return inserted, err
		}
		if b != nil {
			inserted = append(inserted, *b)
		}
	}

	adopted, err := f.adoptOrphans(mu)
	return append(inserted, adopted...), err
}

// insertHeader returns nil when the header was already known or was parked.
func (f *Follower) insertHeader(mu *blockchain.Mutation, h bitcoin.Header) (*blockchain.Block, error) {
	hash := h.BlockHash()
	if _, err := f.chain.BlockByHash(hash); err == nil {
		return nil, nil
	}

	b, err := mu.InsertBlock(&h.BlockHeader, false)
	if errors.Is(err, blockchain.ErrOrphanBlock) {
		f.orphans.SetDefault(hash.String(), h)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (f *Follower) adoptOrphans(mu *blockchain.Mutation) ([]blockchain.Block, error) {
	var adopted []blockchain.Block
	for {
		ready := f.readyOrphans()
		if len(ready) == 0 {
			return adopted, nil
		}
		for _, h := range ready {
			f.orphans.Delete(h.BlockHash().String())
			b, err := f.insertHeader(mu, h)
			if err != nil {
				return adopted, err
			}
			if b != nil {
				adopted = append(adopted, *b)
			}
		}
	}
}

// readyOrphans returns the parked headers whose parent is in the forest, lowest first.
func (f *Follower) readyOrphans() []bitcoin.Header {
	var ready []bitcoin.Header
	for _, item := range f.orphans.Items() {
		h, ok := item.Object.(bitcoin.Header)
		if !ok {
			continue
		}
		if _, err := f.chain.BlockByHash(h.PrevBlock); err == nil {
			ready = append(ready, h)
		}
	}
	slices.SortFunc(ready, func(a, b bitcoin.Header) int {
		switch {
		case a.Height < b.Height:
			return -1
		case a.Height > b.Height:
			return 1
		default:
			return 0
		}
	})
	return ready
}

// resolveOrphans fetches the missing ancestors of every parked header whose parent is not parked
// itself, then inserts them.
func (f *Follower) resolveOrphans(ctx context.Context) ([]blockchain.Block, error) {
	var missing []chainhash.Hash
	for _, item := range f.orphans.Items() {
		h, ok := item.Object.(bitcoin.Header)
		if !ok {
			continue
		}
		if _, parked := f.orphans.Get(h.PrevBlock.String()); parked {
			continue
		}
		missing = append(missing, h.PrevBlock)
	}

	var inserted []blockchain.Block
	for _, hash := range missing {
		ancestors, err := f.fetchAncestors(ctx, hash)
		if err != nil {
			return inserted, err
		}
		f.logger.Info("connecting orphan headers",
			zap.Stringer("missing", hash),
			zap.Int("ancestors", len(ancestors)))
		blocks, err := f.insertHeaders(ancestors)
		inserted = append(inserted, blocks...)
		if err != nil {
			return inserted, err
		}
	}
	return inserted, nil
}

// fetchAncestors walks back from hash until it reaches a block in the forest and returns the
// headers on the way, oldest first.
func (f *Follower) fetchAncestors(ctx context.Context, hash chainhash.Hash) ([]bitcoin.Header, error) {
	var out []bitcoin.Header
	for {
		if _, err := f.chain.BlockByHash(hash); err == nil {
			break
		}
		if len(out) >= f.cfg.MaxReorgDepth {
			return nil, fmt.Errorf("%w: %s after %d ancestors", ErrReorgTooDeep, hash, len(out))
		}
		h, err := f.source.Header(ctx, hash)
		if err != nil {
			return nil, fmt.Errorf("fetch ancestor %s: %w", hash, err)
		}
		out = append(out, h)
		hash = h.PrevBlock
	}
	slices.Reverse(out)
	return out, nil
}

// process validates and exports newly inserted blocks.
func (f *Follower) process(ctx context.Context, inserted []blockchain.Block) error {
	if len(inserted) == 0 {
		return nil
	}
	head, err := f.chain.HeadBlock()
	if err != nil {
		return fmt.Errorf("head block: %w", err)
	}

	for _, b := range inserted {
		status := model.BlockHeader
		if f.validator != nil {
			onBest, err := f.chain.IsBlockConnectedToSegment(b.ID, head.SegmentID, blockchain.Ancestor)
			if err != nil {
				return fmt.Errorf("locate block %s: %w", b.Hash, err)
			}
			if onBest {
				if status, err = f.validate(ctx, b); err != nil {
					return err
				}
			}
		}
		if f.writer != nil {
			row, err := toModelBlock(f.cfg.Network, b, status)
			if err != nil {
				return err
			}
			if err := f.writer.WriteBlock(ctx, row); err != nil {
				return fmt.Errorf("export block %s: %w", b.Hash, err)
			}
		}
	}

	if f.writer != nil {
		return f.exportSegments(ctx)
	}
	return nil
}

// validate runs the scripts of b. An invalid block is logged and left header-only; only
// errors that stop the follower are returned.
func (f *Follower) validate(ctx context.Context, b blockchain.Block) (model.BlockStatus, error) {
	block, err := f.source.Block(ctx, b.Hash)
	if err != nil {
		return model.BlockHeader, fmt.Errorf("fetch block %s: %w", b.Hash, err)
	}

	err = f.checkBlock(ctx, block, b.Point())
	switch {
	case err == nil:
	case errors.Is(err, validation.ErrScriptFailed),
		errors.Is(err, validation.ErrDoubleSpend),
		errors.Is(err, validation.ErrOutputAlreadySpent),
		errors.Is(err, validation.ErrMissingPreviousOutput):
		f.logger.Error("block failed script validation",
			zap.Stringer("hash", b.Hash),
			zap.Int64("height", b.Height),
			zap.Error(err))
		return model.BlockHeader, nil
	default:
		return model.BlockHeader, fmt.Errorf("validate block %s: %w", b.Hash, err)
	}

	f.prevOuts.Remember(block)
	if err := f.markValidated(&block.Header); err != nil {
		return model.BlockHeader, err
	}
	return model.BlockValidated, nil
}

// checkBlock runs the scripts of block. With a spent index the spends of block are staged first
// and kept only when the scripts pass.
func (f *Follower) checkBlock(ctx context.Context, block *wire.MsgBlock, point upgrade.Point) error {
	if f.spent == nil {
		return f.validator.ValidateBlock(ctx, block, point, f.prevOuts)
	}
	if err := f.spent.Stage(block); err != nil {
		return err
	}
	if err := f.validator.ValidateBlock(ctx, block, point, f.prevOuts); err != nil {
		if discardErr := f.spent.Discard(); discardErr != nil {
			return errors.Join(err, fmt.Errorf("discard spends: %w", discardErr))
		}
		return err
	}
	if err := f.spent.Commit(); err != nil {
		return fmt.Errorf("commit spends: %w", err)
	}
	return nil
}

func (f *Follower) markValidated(header *wire.BlockHeader) error {
	mu := f.chain.Lock()
	defer mu.Unlock()

	if _, err := mu.InsertBlock(header, true); err != nil {
		return fmt.Errorf("mark block %s validated: %w", header.BlockHash(), err)
	}
	return nil
}

// exportSegments writes the segments that changed since the last export.
func (f *Follower) exportSegments(ctx context.Context) error {
	var changed []model.Segment
	for _, s := range f.chain.Segments() {
		head, err := f.chain.Block(s.HeadBlockID)
		if err != nil {
			return fmt.Errorf("segment %d head: %w", s.ID, err)
		}
		row, err := toModelSegment(f.cfg.Network, s, head)
		if err != nil {
			return err
		}
		if prev, ok := f.exported[s.ID]; ok && prev == row {
			continue
		}
		changed = append(changed, row)
	}

	if err := f.writer.WriteSegments(ctx, changed); err != nil {
		return fmt.Errorf("export segments: %w", err)
	}
	for _, row := range changed {
		f.exported[blockchain.SegmentID(row.ID)] = row
	}
	return nil
}

func (f *Follower) wait(ctx context.Context, d time.Duration) error {
	if f.blockSignal == nil {
		return f.sleep(ctx, d)
	}

	_, err := clock.WaitForSignal(ctx, d, f.blockSignal)
	return err
}
