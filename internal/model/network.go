package model

import (
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/chaincfg"
)

// Network names the chain a row belongs to.
type Network string

const (
	Mainnet  Network = "mainnet"
	Testnet3 Network = "testnet3"
	Regtest  Network = "regtest"
)

// Params returns the chain parameters of the network.
func (n Network) Params() (*chaincfg.Params, error) {
	switch Network(strings.ToLower(string(n))) {
	case Mainnet, "main", "bitcoin":
		return &chaincfg.MainNetParams, nil
	case Testnet3, "testnet":
		return &chaincfg.TestNet3Params, nil
	case Regtest:
		return &chaincfg.RegressionNetParams, nil
	default:
		return nil, fmt.Errorf("unsupported network %q", n)
	}
}
