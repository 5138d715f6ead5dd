package transport

import (
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
)

// lockingScriptInfo describes a locking script the way block explorers do.
type lockingScriptInfo struct {
	Class     string   `json:"class"`
	Addresses []string `json:"addresses,omitempty"`
	Required  int      `json:"required_signatures,omitempty"`
}

// decodeLockingScript classifies locking and extracts the addresses it pays to. Scripts the
// standard templates do not cover come back as "nonstandard".
func decodeLockingScript(locking []byte, params *chaincfg.Params) lockingScriptInfo {
	class, addrs, required, err := txscript.ExtractPkScriptAddrs(locking, params)
	if err != nil {
		return lockingScriptInfo{Class: txscript.NonStandardTy.String()}
	}
	info := lockingScriptInfo{Class: class.String(), Required: required}
	for _, addr := range addrs {
		info.Addresses = append(info.Addresses, addr.EncodeAddress())
	}
	return info
}
