package bitcoin

import (
	"context"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	lru "github.com/hashicorp/golang-lru/v2"
)

// Source reads the upstream chain. Headers are cached by hash since the follower asks for the
// same ancestors again while resolving forks.
type Source struct {
	rpc     RPC
	headers *lru.Cache[chainhash.Hash, Header]
}

// NewSource creates a Source caching up to headerCacheSize headers.
func NewSource(rpc RPC, headerCacheSize int) (*Source, error) {
	headers, err := lru.New[chainhash.Hash, Header](headerCacheSize)
	if err != nil {
		return nil, fmt.Errorf("create header cache: %w", err)
	}
	return &Source{rpc: rpc, headers: headers}, nil
}

// LatestHeight returns the height of the upstream best block.
func (s *Source) LatestHeight(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	count, err := s.rpc.GetBlockCount()
	if err != nil {
		return 0, fmt.Errorf("get block count: %w", err)
	}
	return count, nil
}

// HeaderAt returns the upstream best-chain header at height.
func (s *Source) HeaderAt(ctx context.Context, height int64) (Header, error) {
	if err := ctx.Err(); err != nil {
		return Header{}, err
	}
	hash, err := s.rpc.GetBlockHash(height)
	if err != nil {
		return Header{}, fmt.Errorf("get block hash at height %d: %w", height, err)
	}
	return s.Header(ctx, *hash)
}

// Header returns the header with hash.
func (s *Source) Header(ctx context.Context, hash chainhash.Hash) (Header, error) {
	if h, ok := s.headers.Get(hash); ok {
		return h, nil
	}
	if err := ctx.Err(); err != nil {
		return Header{}, err
	}

	res, err := s.rpc.GetBlockHeaderVerbose(&hash)
	if err != nil {
		return Header{}, fmt.Errorf("get header %s: %w", hash, err)
	}
	h, err := HeaderFromVerbose(*res)
	if err != nil {
		return Header{}, err
	}
	s.headers.Add(hash, h)
	return h, nil
}

// Block returns the full block with hash.
func (s *Source) Block(ctx context.Context, hash chainhash.Hash) (*wire.MsgBlock, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	block, err := s.rpc.GetBlock(&hash)
	if err != nil {
		return nil, fmt.Errorf("get block %s: %w", hash, err)
	}
	return block, nil
}
