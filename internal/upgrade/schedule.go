// Package upgrade answers whether a consensus feature is active at a given chain position.
package upgrade

import "fmt"

// Feature identifies a consensus rule that activates at a fixed height or median block time.
type Feature int

const (
	PayToScriptHash             Feature = iota // BIP16
	BlockHeightInCoinbase                      // BIP34
	CheckLockTime                              // BIP65
	StrictDERSignatures                        // BIP66
	CheckSequenceNumber                        // BIP68, BIP112, BIP113
	ForkIDSignatureHash                        // UAHF: fork-id sighash with strict signature/key encoding
	NullFail                                   // HF20171113: NULLFAIL and LOW_S
	PushOnlyUnlockingScript                    // HF20181115
	CleanStack                                 // HF20181115
	CheckDataSignature                         // HF20181115
	CanonicalTransactionOrder                  // HF20181115: outputs of any transaction in the block are spendable
	MinimalNumberEncoding                      // HF20191115
	SchnorrMultiSignature                      // HF20191115
	ReverseBytes                               // HF20200515
	NativeIntrospection                        // HF20220515
	Integers64Bit                              // HF20220515
	Multiply                                   // HF20220515
	PayToScriptHash32                          // HF20230515
	BitwiseShift                               // INVERT, SHIFT_LEFT and SHIFT_RIGHT
	featureCount
)

var featureNames = [featureCount]string{
	PayToScriptHash:           "p2sh",
	BlockHeightInCoinbase:     "bip34",
	CheckLockTime:             "check_lock_time",
	StrictDERSignatures:       "strict_der",
	CheckSequenceNumber:       "check_sequence_number",
	ForkIDSignatureHash:       "fork_id",
	NullFail:                  "null_fail",
	PushOnlyUnlockingScript:   "push_only_unlocking",
	CleanStack:                "clean_stack",
	CheckDataSignature:        "check_data_signature",
	CanonicalTransactionOrder: "canonical_transaction_order",
	MinimalNumberEncoding:     "minimal_number_encoding",
	SchnorrMultiSignature:     "schnorr_multisig",
	ReverseBytes:              "reverse_bytes",
	NativeIntrospection:       "native_introspection",
	Integers64Bit:             "integers_64bit",
	Multiply:                  "multiply",
	PayToScriptHash32:         "p2sh32",
	BitwiseShift:              "bitwise_shift",
}

func (f Feature) String() string {
	if f < 0 || f >= featureCount {
		return fmt.Sprintf("feature(%d)", int(f))
	}
	return featureNames[f]
}

// Features returns every known feature in declaration order.
func Features() []Feature {
	out := make([]Feature, 0, featureCount)
	for f := Feature(0); f < featureCount; f++ {
		out = append(out, f)
	}
	return out
}

// Point is a position on a chain: the block height and the median time past of that block.
type Point struct {
	Height     int64
	MedianTime int64
}

// Schedule reports feature activation. Implementations must be pure in (feature, point).
type Schedule interface {
	IsActive(feature Feature, at Point) bool
}

type activationKind uint8

const (
	never activationKind = iota
	byHeight
	byTime
)

// Activation is the threshold at which a feature switches on.
type Activation struct {
	kind  activationKind
	value int64
}

// AtHeight activates once the block height reaches h.
func AtHeight(h int64) Activation { return Activation{kind: byHeight, value: h} }

// AtTime activates once the median block time reaches the unix time t.
func AtTime(t int64) Activation { return Activation{kind: byTime, value: t} }

// Never keeps the feature disabled.
func Never() Activation { return Activation{} }

func (a Activation) isActive(at Point) bool {
	switch a.kind {
	case byHeight:
		return at.Height >= a.value
	case byTime:
		return at.MedianTime >= a.value
	default:
		return false
	}
}

// Table is a compiled activation table.
type Table struct {
	name        string
	activations [featureCount]Activation
}

// NewTable builds a Table; features missing from activations never activate.
func NewTable(name string, activations map[Feature]Activation) *Table {
	t := &Table{name: name}
	for f, a := range activations {
		if f >= 0 && f < featureCount {
			t.activations[f] = a
		}
	}
	return t
}

// Name returns the network name of the table.
func (t *Table) Name() string { return t.name }

// IsActive implements Schedule.
func (t *Table) IsActive(feature Feature, at Point) bool {
	if feature < 0 || feature >= featureCount {
		return false
	}
	return t.activations[feature].isActive(at)
}

// Changed reports whether any feature flips between two points.
func (t *Table) Changed(a, b Point) bool {
	for f := Feature(0); f < featureCount; f++ {
		if t.IsActive(f, a) != t.IsActive(f, b) {
			return true
		}
	}
	return false
}

// Fixed is a Schedule with a constant set of active features, independent of the chain position.
type Fixed map[Feature]bool

// IsActive implements Schedule.
func (f Fixed) IsActive(feature Feature, _ Point) bool { return f[feature] }

// AllActive returns a Fixed schedule with every feature enabled.
func AllActive() Fixed {
	out := make(Fixed, featureCount)
	for f := Feature(0); f < featureCount; f++ {
		out[f] = true
	}
	return out
}

// Without returns a copy of f with the given features disabled.
func (f Fixed) Without(features ...Feature) Fixed {
	out := make(Fixed, len(f))
	for k, v := range f {
		out[k] = v
	}
	for _, feature := range features {
		delete(out, feature)
	}
	return out
}
