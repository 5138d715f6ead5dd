package upgrade

import "fmt"

const (
	hf20190515Time = 1557921600
	hf20191115Time = 1573819200
	hf20200515Time = 1589544000
	hf20220515Time = 1652616000
	hf20230515Time = 1684152000
)

// MainNet is the activation table of the main network.
var MainNet = NewTable("mainnet", map[Feature]Activation{
	PayToScriptHash:           AtHeight(173805),
	BlockHeightInCoinbase:     AtHeight(227931),
	CheckLockTime:             AtHeight(388381),
	StrictDERSignatures:       AtHeight(363725),
	CheckSequenceNumber:       AtHeight(419328),
	ForkIDSignatureHash:       AtHeight(478559),
	NullFail:                  AtHeight(504031),
	PushOnlyUnlockingScript:   AtHeight(556767),
	CleanStack:                AtHeight(556767),
	CheckDataSignature:        AtHeight(556767),
	CanonicalTransactionOrder: AtHeight(556767),
	MinimalNumberEncoding:     AtTime(hf20191115Time),
	SchnorrMultiSignature:     AtTime(hf20191115Time),
	ReverseBytes:              AtTime(hf20200515Time),
	NativeIntrospection:       AtTime(hf20220515Time),
	Integers64Bit:             AtTime(hf20220515Time),
	Multiply:                  AtTime(hf20220515Time),
	PayToScriptHash32:         AtTime(hf20230515Time),
	BitwiseShift:              Never(),
})

// TestNet3 is the activation table of the public test network.
var TestNet3 = NewTable("testnet3", map[Feature]Activation{
	PayToScriptHash:           AtHeight(514),
	BlockHeightInCoinbase:     AtHeight(21111),
	CheckLockTime:             AtHeight(581885),
	StrictDERSignatures:       AtHeight(330776),
	CheckSequenceNumber:       AtHeight(770112),
	ForkIDSignatureHash:       AtHeight(1155876),
	NullFail:                  AtHeight(1188697),
	PushOnlyUnlockingScript:   AtHeight(1267996),
	CleanStack:                AtHeight(1267996),
	CheckDataSignature:        AtHeight(1267996),
	CanonicalTransactionOrder: AtHeight(1267996),
	MinimalNumberEncoding:     AtTime(hf20191115Time),
	SchnorrMultiSignature:     AtTime(hf20191115Time),
	ReverseBytes:              AtTime(hf20200515Time),
	NativeIntrospection:       AtTime(hf20220515Time),
	Integers64Bit:             AtTime(hf20220515Time),
	Multiply:                  AtTime(hf20220515Time),
	PayToScriptHash32:         AtTime(hf20230515Time),
	BitwiseShift:              Never(),
})

// RegTest activates every BCH rule from genesis.
var RegTest = NewTable("regtest", map[Feature]Activation{
	PayToScriptHash:           AtHeight(0),
	BlockHeightInCoinbase:     AtHeight(0),
	CheckLockTime:             AtHeight(0),
	StrictDERSignatures:       AtHeight(0),
	CheckSequenceNumber:       AtHeight(0),
	ForkIDSignatureHash:       AtHeight(0),
	NullFail:                  AtHeight(0),
	PushOnlyUnlockingScript:   AtHeight(0),
	CleanStack:                AtHeight(0),
	CheckDataSignature:        AtHeight(0),
	CanonicalTransactionOrder: AtHeight(0),
	MinimalNumberEncoding:     AtHeight(0),
	SchnorrMultiSignature:     AtHeight(0),
	ReverseBytes:              AtHeight(0),
	NativeIntrospection:       AtHeight(0),
	Integers64Bit:             AtHeight(0),
	Multiply:                  AtHeight(0),
	PayToScriptHash32:         AtHeight(0),
	BitwiseShift:              Never(),
})

// ForNetwork returns the activation table for a network name.
func ForNetwork(name string) (*Table, error) {
	switch name {
	case "mainnet":
		return MainNet, nil
	case "testnet3", "testnet":
		return TestNet3, nil
	case "regtest":
		return RegTest, nil
	default:
		return nil, fmt.Errorf("unknown network %q", name)
	}
}
