package script

import (
	"bytes"
	"encoding/binary"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"

	"github.com/goodnatureofminers/utxonode/internal/upgrade"
)

const (
	// SigHashForkID marks a signature committing to the replay-protected digest.
	SigHashForkID txscript.SigHashType = 0x40

	sigHashBaseMask           = 0x1f
	schnorrSignatureByteCount = 64
)

// usesForkID reports whether the trailing hash type of sig selects the fork-id digest.
func (c *Context) usesForkID(sig []byte) bool {
	if len(sig) == 0 || !c.IsActive(upgrade.ForkIDSignatureHash) {
		return false
	}
	return txscript.SigHashType(sig[len(sig)-1])&SigHashForkID != 0
}

func (c *Context) strictEncoding() bool {
	return c.IsActive(upgrade.StrictDERSignatures) || c.IsActive(upgrade.ForkIDSignatureHash)
}

// checkTransactionSignatureEncoding validates a signature with its trailing hash type byte.
// An empty signature is well formed and simply fails verification.
func (c *Context) checkTransactionSignatureEncoding(sig []byte) bool {
	if len(sig) == 0 {
		return true
	}
	if len(sig)-1 != schnorrSignatureByteCount && !c.checkDEREncoding(sig[:len(sig)-1]) {
		return false
	}
	if !c.IsActive(upgrade.ForkIDSignatureHash) {
		return true
	}

	hashType := txscript.SigHashType(sig[len(sig)-1])
	if hashType&SigHashForkID == 0 {
		return false
	}
	base := hashType &^ (txscript.SigHashAnyOneCanPay | SigHashForkID)
	return base >= txscript.SigHashAll && base <= txscript.SigHashSingle
}

// checkDataSignatureEncoding validates a signature that carries no hash type byte.
func (c *Context) checkDataSignatureEncoding(sig []byte) bool {
	if len(sig) == 0 || len(sig) == schnorrSignatureByteCount {
		return true
	}
	return c.checkDEREncoding(sig)
}

func (c *Context) checkDEREncoding(der []byte) bool {
	if c.strictEncoding() && !isStrictDER(der) {
		return false
	}
	if c.IsActive(upgrade.NullFail) && !isLowS(der) {
		return false
	}
	return true
}

func (c *Context) checkPublicKeyEncoding(key []byte) bool {
	if !c.IsActive(upgrade.ForkIDSignatureHash) {
		return true
	}
	switch len(key) {
	case 33:
		return key[0] == 0x02 || key[0] == 0x03
	case 65:
		return key[0] == 0x04
	default:
		return false
	}
}

// isStrictDER checks the BIP66 encoding of an ECDSA signature without hash type.
func isStrictDER(sig []byte) bool {
	if len(sig) < 8 || len(sig) > 72 {
		return false
	}
	if sig[0] != 0x30 || int(sig[1]) != len(sig)-2 {
		return false
	}

	lenR := int(sig[3])
	if 5+lenR >= len(sig) {
		return false
	}
	lenS := int(sig[5+lenR])
	if lenR+lenS+6 != len(sig) {
		return false
	}

	if sig[2] != 0x02 || lenR == 0 || sig[4]&0x80 != 0 {
		return false
	}
	if lenR > 1 && sig[4] == 0x00 && sig[5]&0x80 == 0 {
		return false
	}

	if sig[lenR+4] != 0x02 || lenS == 0 || sig[lenR+6]&0x80 != 0 {
		return false
	}
	if lenS > 1 && sig[lenR+6] == 0x00 && sig[lenR+7]&0x80 == 0 {
		return false
	}
	return true
}

// isLowS reports whether the S component of a DER signature is at most half the curve order.
func isLowS(der []byte) bool {
	if !isStrictDER(der) {
		return false
	}
	lenR := int(der[3])
	lenS := int(der[5+lenR])
	s := bytes.TrimLeft(der[6+lenR:6+lenR+lenS], "\x00")
	if len(s) > 32 {
		return false
	}

	var scalar btcec.ModNScalar
	if overflow := scalar.SetByteSlice(s); overflow {
		return false
	}
	return !scalar.IsOverHalfOrder()
}

// verifyTransactionSignature checks sig (DER plus hash type) against the input's digest.
func (c *Context) verifyTransactionSignature(sig, key, subscript []byte) bool {
	if len(sig) == 0 || len(sig)-1 == schnorrSignatureByteCount {
		return false
	}
	digest, ok := c.signatureDigest(subscript, txscript.SigHashType(sig[len(sig)-1]))
	if !ok {
		return false
	}
	return c.verifyDigest(digest, sig[:len(sig)-1], key)
}

func (c *Context) verifyDigest(digest, der, key []byte) bool {
	if len(der) == 0 || len(der) == schnorrSignatureByteCount {
		return false
	}
	if c.SigCache != nil && c.SigCache.Exists(digest, der, key) {
		return true
	}

	publicKey, err := btcec.ParsePubKey(key)
	if err != nil {
		return false
	}

	var signature *ecdsa.Signature
	if c.strictEncoding() {
		signature, err = ecdsa.ParseDERSignature(der)
	} else {
		signature, err = ecdsa.ParseSignature(der)
	}
	if err != nil {
		return false
	}
	if !signature.Verify(digest, publicKey) {
		return false
	}

	if c.SigCache != nil {
		c.SigCache.Add(digest, der, key)
	}
	return true
}

func (c *Context) signatureDigest(subscript []byte, hashType txscript.SigHashType) ([]byte, bool) {
	if _, ok := c.input(c.InputIndex); !ok {
		return nil, false
	}

	if hashType&SigHashForkID != 0 && c.IsActive(upgrade.ForkIDSignatureHash) {
		prev, ok := c.previousOutput(c.InputIndex)
		if !ok {
			return nil, false
		}
		return forkIDDigest(subscript, c.signatureHashes(), hashType, c.Tx, c.InputIndex, prev.Value), true
	}

	digest, err := txscript.CalcSignatureHash(subscript, hashType, c.Tx, c.InputIndex)
	if err != nil {
		return nil, false
	}
	return digest, true
}

// forkIDDigest serializes the replay-protected preimage: the BIP143 layout with the full hash
// type, fork id included, in the trailing field.
func forkIDDigest(subscript []byte, hashes *txscript.TxSigHashes, hashType txscript.SigHashType,
	tx *wire.MsgTx, idx int, amount int64) []byte {
	var (
		buf     bytes.Buffer
		scratch [8]byte
		zero    chainhash.Hash
	)

	anyoneCanPay := hashType&txscript.SigHashAnyOneCanPay != 0
	base := hashType & sigHashBaseMask

	binary.LittleEndian.PutUint32(scratch[:4], uint32(tx.Version))
	buf.Write(scratch[:4])

	if anyoneCanPay {
		buf.Write(zero[:])
	} else {
		buf.Write(hashes.HashPrevOutsV0[:])
	}

	if anyoneCanPay || base == txscript.SigHashSingle || base == txscript.SigHashNone {
		buf.Write(zero[:])
	} else {
		buf.Write(hashes.HashSequenceV0[:])
	}

	in := tx.TxIn[idx]
	buf.Write(in.PreviousOutPoint.Hash[:])
	binary.LittleEndian.PutUint32(scratch[:4], in.PreviousOutPoint.Index)
	buf.Write(scratch[:4])

	_ = wire.WriteVarBytes(&buf, 0, subscript)

	binary.LittleEndian.PutUint64(scratch[:], uint64(amount))
	buf.Write(scratch[:])
	binary.LittleEndian.PutUint32(scratch[:4], in.Sequence)
	buf.Write(scratch[:4])

	switch {
	case base != txscript.SigHashSingle && base != txscript.SigHashNone:
		buf.Write(hashes.HashOutputsV0[:])
	case base == txscript.SigHashSingle && idx < len(tx.TxOut):
		var out bytes.Buffer
		_ = wire.WriteTxOut(&out, 0, 0, tx.TxOut[idx])
		buf.Write(chainhash.DoubleHashB(out.Bytes()))
	default:
		buf.Write(zero[:])
	}

	binary.LittleEndian.PutUint32(scratch[:4], tx.LockTime)
	buf.Write(scratch[:4])
	binary.LittleEndian.PutUint32(scratch[:4], uint32(hashType))
	buf.Write(scratch[:4])

	return chainhash.DoubleHashB(buf.Bytes())
}

// removeSignaturePush drops every canonical push of sig from script, matching only at
// operation boundaries.
func removeSignaturePush(script, sig []byte) []byte {
	if len(sig) == 0 {
		return script
	}
	pattern := canonicalPush(sig)

	parsed, err := Parse(script)
	if err != nil {
		return script
	}

	out := make([]byte, 0, len(script))
	for i := range parsed.ops {
		start := parsed.offsets[i]
		end := parsed.offsetAfter(i)
		if bytes.Equal(script[start:end], pattern) {
			continue
		}
		out = append(out, script[start:end]...)
	}
	return out
}

// canonicalPush encodes data with the shortest length-prefixed push, never a small-integer opcode.
func canonicalPush(data []byte) []byte {
	n := len(data)
	var op Opcode
	switch {
	case n <= int(PushDataMax):
		op = Opcode(n)
	case n <= 0xff:
		op = PushDataByte
	case n <= 0xffff:
		op = PushDataShort
	default:
		op = PushDataInteger
	}
	return Operation{Opcode: op, Data: data}.appendTo(nil)
}
