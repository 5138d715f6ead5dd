package transport

import (
	"time"

	"github.com/btcsuite/btcd/btcutil"

	"github.com/goodnatureofminers/utxonode/internal/blockchain"
	"github.com/goodnatureofminers/utxonode/internal/script"
)

type blockResponse struct {
	Hash            string    `json:"hash"`
	PreviousHash    string    `json:"previous_hash"`
	Height          int64     `json:"height"`
	Version         int32     `json:"version"`
	MerkleRoot      string    `json:"merkle_root"`
	Timestamp       time.Time `json:"timestamp"`
	MedianTime      time.Time `json:"median_time"`
	Bits            string    `json:"bits"`
	Nonce           uint32    `json:"nonce"`
	ChainWork       string    `json:"chain_work"`
	SegmentID       uint64    `json:"segment_id"`
	HasTransactions bool      `json:"has_transactions"`
}

func newBlockResponse(b blockchain.Block) blockResponse {
	return blockResponse{
		Hash:            b.Hash.String(),
		PreviousHash:    b.PreviousHash.String(),
		Height:          b.Height,
		Version:         b.Header.Version,
		MerkleRoot:      b.Header.MerkleRoot.String(),
		Timestamp:       b.Header.Timestamp.UTC(),
		MedianTime:      time.Unix(b.MedianTime, 0).UTC(),
		Bits:            bitsString(b.Header.Bits),
		Nonce:           b.Header.Nonce,
		ChainWork:       b.ChainWork.Hex(),
		SegmentID:       uint64(b.SegmentID),
		HasTransactions: b.HasTransactions,
	}
}

type segmentResponse struct {
	ID             uint64 `json:"id"`
	ParentID       uint64 `json:"parent_id,omitempty"`
	NestedSetLeft  int64  `json:"nested_set_left"`
	NestedSetRight int64  `json:"nested_set_right"`
	MinHeight      int64  `json:"min_height"`
	MaxHeight      int64  `json:"max_height"`
	BlockCount     int64  `json:"block_count"`
	Leaf           bool   `json:"leaf"`
}

func newSegmentResponse(s blockchain.Segment) segmentResponse {
	return segmentResponse{
		ID:             uint64(s.ID),
		ParentID:       uint64(s.ParentID),
		NestedSetLeft:  s.NestedSetLeft,
		NestedSetRight: s.NestedSetRight,
		MinHeight:      s.MinHeight(),
		MaxHeight:      s.MaxHeight,
		BlockCount:     s.BlockCount,
		Leaf:           s.IsLeaf(),
	}
}

type connectedResponse struct {
	A            uint64 `json:"a"`
	B            uint64 `json:"b"`
	Relationship string `json:"relationship"`
	Connected    bool   `json:"connected"`
}

type verifyRequest struct {
	UnlockingScript string `json:"unlocking_script"`
	LockingScript   string `json:"locking_script"`
	// Transaction is the hex-serialized spending transaction.
	Transaction string `json:"transaction,omitempty"`
	InputIndex  int    `json:"input_index"`
	// Amount of the spent output in satoshis.
	Amount     int64 `json:"amount"`
	Height     int64 `json:"height"`
	MedianTime int64 `json:"median_time"`
}

type verifyResponse struct {
	Valid          bool     `json:"valid"`
	Error          string   `json:"error,omitempty"`
	Stack          []string `json:"stack"`
	OperationCount int      `json:"operation_count"`
	Amount         string   `json:"amount"`
	// LockingScript classifies the spent output's script.
	LockingScript lockingScriptInfo `json:"locking_script"`
}

func newVerifyResponse(res script.Result, amount int64) verifyResponse {
	stack := make([]string, 0, len(res.Stack))
	for _, v := range res.Stack {
		stack = append(stack, v.String())
	}
	out := verifyResponse{
		Valid:          res.Valid(),
		Stack:          stack,
		OperationCount: res.OperationCount,
		Amount:         btcutil.Amount(amount).String(),
	}
	if res.Err != nil {
		out.Error = res.Err.Error()
	}
	return out
}

type errorResponse struct {
	Error string `json:"error"`
}
