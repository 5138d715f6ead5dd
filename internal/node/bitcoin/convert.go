// Package bitcoin reads headers, blocks and previous outputs from an upstream node over RPC.
package bitcoin

import (
	"fmt"
	"strconv"
	"time"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"

	"github.com/goodnatureofminers/utxonode/pkg/safe"
)

// Header is an upstream header and the height the upstream node reports for it.
type Header struct {
	wire.BlockHeader
	Height int64
}

// ParseBits parses a bits string into a 32-bit value.
func ParseBits(value string) (uint32, error) {
	parsed, err := strconv.ParseUint(value, 16, 32)
	if err != nil {
		return 0, err
	}
	return uint32(parsed), nil
}

// HeaderFromVerbose maps a verbose header result to a wire header and checks that it hashes to
// the reported hash.
func HeaderFromVerbose(src btcjson.GetBlockHeaderVerboseResult) (Header, error) {
	bits, err := ParseBits(src.Bits)
	if err != nil {
		return Header{}, fmt.Errorf("header %d bits parse: %w", src.Height, err)
	}
	nonce, err := safe.Uint32(src.Nonce)
	if err != nil {
		return Header{}, fmt.Errorf("header %d nonce: %w", src.Height, err)
	}
	merkleRoot, err := chainhash.NewHashFromStr(src.MerkleRoot)
	if err != nil {
		return Header{}, fmt.Errorf("header %d merkle root parse: %w", src.Height, err)
	}

	var prev chainhash.Hash
	if src.PreviousHash != "" {
		parsed, err := chainhash.NewHashFromStr(src.PreviousHash)
		if err != nil {
			return Header{}, fmt.Errorf("header %d previous hash parse: %w", src.Height, err)
		}
		prev = *parsed
	}

	h := Header{
		BlockHeader: wire.BlockHeader{
			Version:    src.Version,
			PrevBlock:  prev,
			MerkleRoot: *merkleRoot,
			Timestamp:  time.Unix(src.Time, 0),
			Bits:       bits,
			Nonce:      nonce,
		},
		Height: int64(src.Height),
	}
	if got := h.BlockHash().String(); got != src.Hash {
		return Header{}, fmt.Errorf("header %d hashes to %s, upstream reported %s", src.Height, got, src.Hash)
	}
	return h, nil
}
