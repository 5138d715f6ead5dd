package script

import (
	"crypto/sha1" //nolint:gosec // consensus opcode
	"crypto/sha256"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // consensus opcode

	"github.com/goodnatureofminers/utxonode/internal/upgrade"
)

const (
	// MaxOperationCount bounds the non-push operations of one script, multisig keys included.
	MaxOperationCount = 201
	// MaxMultiSignatureKeyCount bounds the public keys of CHECK_MULTISIGNATURE.
	MaxMultiSignatureKeyCount = 20
)

func applyCryptographic(o Operation, stack *Stack, ctx *Context) bool {
	switch o.Opcode {
	case Ripemd160, Sha1, Sha256, Hash160, DoubleSha256:
		v := stack.Pop()
		if stack.DidOverflow() {
			return false
		}
		stack.Push(hashValue(o.Opcode, v))
		return !stack.DidOverflow()

	case CodeSeparator:
		ctx.codeSeparator = ctx.active.offsetAfter(ctx.position)
		return true

	case CheckSignature, CheckSignatureThenVerify:
		return checkSignature(o, stack, ctx)

	case CheckMultiSignature, CheckMultiSignatureThenVerify:
		return checkMultiSignature(o, stack, ctx)

	case CheckDataSignature, CheckDataSignatureThenVerify:
		if !ctx.IsActive(upgrade.CheckDataSignature) {
			return false
		}
		return checkDataSignature(o, stack, ctx)

	default:
		return false
	}
}

func hashValue(op Opcode, v Value) Value {
	switch op {
	case Ripemd160:
		h := ripemd160.New()
		h.Write(v)
		return h.Sum(nil)
	case Sha1:
		sum := sha1.Sum(v) //nolint:gosec
		return sum[:]
	case Sha256:
		sum := sha256.Sum256(v)
		return sum[:]
	case Hash160:
		return btcutil.Hash160(v)
	default:
		return chainhash.DoubleHashB(v)
	}
}

// verifyOutcome applies NULLFAIL and the verify/push convention shared by the signature opcodes.
func verifyOutcome(stack *Stack, ctx *Context, valid, signaturesEmpty, thenVerify bool) bool {
	if !valid && !signaturesEmpty && ctx.IsActive(upgrade.NullFail) {
		return false
	}
	if thenVerify {
		return valid
	}
	stack.Push(BoolValue(valid))
	return !stack.DidOverflow()
}

func checkSignature(o Operation, stack *Stack, ctx *Context) bool {
	key := stack.Pop()
	sig := stack.Pop()
	if stack.DidOverflow() {
		return false
	}
	if !ctx.checkTransactionSignatureEncoding(sig) || !ctx.checkPublicKeyEncoding(key) {
		return false
	}

	subscript := ctx.subscript()
	if !ctx.usesForkID(sig) {
		subscript = removeSignaturePush(subscript, sig)
	}

	valid := ctx.verifyTransactionSignature(sig, key, subscript)
	return verifyOutcome(stack, ctx, valid, len(sig) == 0, o.Opcode == CheckSignatureThenVerify)
}

func checkMultiSignature(o Operation, stack *Stack, ctx *Context) bool {
	keyCount, ok := ctx.popInteger(stack)
	if !ok || keyCount < 0 || keyCount > MaxMultiSignatureKeyCount {
		return false
	}
	ctx.opCount += int(keyCount)
	if ctx.opCount > MaxOperationCount {
		return false
	}

	keys := make([]Value, keyCount)
	for i := len(keys) - 1; i >= 0; i-- {
		keys[i] = stack.Pop()
	}

	sigCount, ok := ctx.popInteger(stack)
	if !ok || sigCount < 0 || sigCount > keyCount {
		return false
	}
	sigs := make([]Value, sigCount)
	for i := len(sigs) - 1; i >= 0; i-- {
		sigs[i] = stack.Pop()
	}

	// One extra element is always consumed; it must be empty once Schnorr multisig is active.
	dummy := stack.Pop()
	if stack.DidOverflow() {
		return false
	}
	if len(dummy) != 0 && ctx.IsActive(upgrade.SchnorrMultiSignature) {
		return false
	}

	subscript := ctx.subscript()
	for _, sig := range sigs {
		if !ctx.usesForkID(sig) {
			subscript = removeSignaturePush(subscript, sig)
		}
	}

	// Signatures match keys in order; a key that fails is skipped, a signature never is.
	valid := true
	for si, ki := 0, 0; si < len(sigs); {
		sig, key := sigs[si], keys[ki]
		if !ctx.checkTransactionSignatureEncoding(sig) || !ctx.checkPublicKeyEncoding(key) {
			return false
		}
		if ctx.verifyTransactionSignature(sig, key, subscript) {
			si++
		}
		ki++
		if len(sigs)-si > len(keys)-ki {
			valid = false
			break
		}
	}

	signaturesEmpty := true
	for _, sig := range sigs {
		if len(sig) != 0 {
			signaturesEmpty = false
			break
		}
	}
	return verifyOutcome(stack, ctx, valid, signaturesEmpty, o.Opcode == CheckMultiSignatureThenVerify)
}

func checkDataSignature(o Operation, stack *Stack, ctx *Context) bool {
	key := stack.Pop()
	message := stack.Pop()
	sig := stack.Pop()
	if stack.DidOverflow() {
		return false
	}
	if !ctx.checkDataSignatureEncoding(sig) || !ctx.checkPublicKeyEncoding(key) {
		return false
	}

	digest := sha256.Sum256(message)
	valid := ctx.verifyDigest(digest[:], sig, key)
	return verifyOutcome(stack, ctx, valid, len(sig) == 0, o.Opcode == CheckDataSignatureThenVerify)
}
