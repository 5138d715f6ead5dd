package script

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
)

// MaxScriptByteCount is the largest script the interpreter evaluates.
const MaxScriptByteCount = 10_000

var (
	// ErrMalformedPush is returned when a push declares more bytes than the script holds.
	ErrMalformedPush = errors.New("malformed push")
	// ErrPushTooLarge is returned when a length-prefixed push exceeds MaxValueByteCount.
	ErrPushTooLarge = errors.New("push exceeds max value size")
)

// Script is a decoded script together with its original bytes.
type Script struct {
	raw     []byte
	ops     []Operation
	offsets []int
}

// Parse decodes raw into operations. Unknown opcode bytes decode to operations that fail when
// executed.
func Parse(raw []byte) (Script, error) {
	s := Script{raw: append([]byte(nil), raw...)}

	for pos := 0; pos < len(raw); {
		start := pos
		op := Opcode(raw[pos])
		pos++

		var n int
		switch {
		case op >= PushDataMin && op <= PushDataMax:
			n = int(op)
		case op == PushDataByte:
			if pos+1 > len(raw) {
				return Script{}, fmt.Errorf("%w: %s at %d", ErrMalformedPush, op, start)
			}
			n = int(raw[pos])
			pos++
		case op == PushDataShort:
			if pos+2 > len(raw) {
				return Script{}, fmt.Errorf("%w: %s at %d", ErrMalformedPush, op, start)
			}
			n = int(binary.LittleEndian.Uint16(raw[pos:]))
			pos += 2
		case op == PushDataInteger:
			if pos+4 > len(raw) {
				return Script{}, fmt.Errorf("%w: %s at %d", ErrMalformedPush, op, start)
			}
			size := binary.LittleEndian.Uint32(raw[pos:])
			if size > MaxValueByteCount {
				return Script{}, fmt.Errorf("%w: %s declares %d bytes", ErrPushTooLarge, op, size)
			}
			n = int(size)
			pos += 4
		default:
			s.ops = append(s.ops, Operation{Opcode: op})
			s.offsets = append(s.offsets, start)
			continue
		}

		if n > MaxValueByteCount {
			return Script{}, fmt.Errorf("%w: %s declares %d bytes", ErrPushTooLarge, op, n)
		}
		if pos+n > len(raw) {
			return Script{}, fmt.Errorf("%w: %s wants %d bytes, %d left", ErrMalformedPush, op, n, len(raw)-pos)
		}

		data := make([]byte, n)
		copy(data, raw[pos:pos+n])
		pos += n

		s.ops = append(s.ops, Operation{Opcode: op, Data: data})
		s.offsets = append(s.offsets, start)
	}

	return s, nil
}

// MustParse is Parse for scripts known to be well formed. It panics on error.
func MustParse(raw []byte) Script {
	s, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return s
}

// Operations returns the decoded operations.
func (s Script) Operations() []Operation { return s.ops }

// Bytes returns the original encoding.
func (s Script) Bytes() []byte { return s.raw }

// Len returns the byte count.
func (s Script) Len() int { return len(s.raw) }

// IsPushOnly reports whether every operation only pushes data.
func (s Script) IsPushOnly() bool {
	for _, op := range s.ops {
		if !op.Opcode.IsPush() {
			return false
		}
	}
	return true
}

// offsetAfter returns the byte offset following operation i.
func (s Script) offsetAfter(i int) int {
	return s.offsets[i] + s.ops[i].serializedSize()
}

// IsPayToScriptHash matches HASH160 <20 bytes> IS_EQUAL.
func (s Script) IsPayToScriptHash() bool {
	r := s.raw
	return len(r) == 23 && r[0] == byte(Hash160) && r[1] == 0x14 && r[22] == byte(IsEqual)
}

// IsPayToScriptHash32 matches DOUBLE_SHA256 <32 bytes> IS_EQUAL.
func (s Script) IsPayToScriptHash32() bool {
	r := s.raw
	return len(r) == 35 && r[0] == byte(DoubleSha256) && r[1] == 0x20 && r[34] == byte(IsEqual)
}

func (s Script) String() string {
	parts := make([]string, 0, len(s.ops))
	for _, op := range s.ops {
		parts = append(parts, op.String())
	}
	return strings.Join(parts, " ")
}

// Builder assembles scripts using minimal pushes.
type Builder struct {
	raw []byte
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// AddOp appends opcodes.
func (b *Builder) AddOp(ops ...Opcode) *Builder {
	for _, op := range ops {
		b.raw = append(b.raw, byte(op))
	}
	return b
}

// AddData appends the minimal push of data.
func (b *Builder) AddData(data []byte) *Builder {
	n := len(data)
	switch {
	case n == 0:
		b.raw = append(b.raw, byte(PushZero))
		return b
	case n == 1 && data[0] >= 1 && data[0] <= 16:
		b.raw = append(b.raw, byte(PushOne)+data[0]-1)
		return b
	case n == 1 && data[0] == 0x81:
		b.raw = append(b.raw, byte(PushNegativeOne))
		return b
	}

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
	b.raw = Operation{Opcode: op, Data: data}.appendTo(b.raw)
	return b
}

// AddInt64 appends the minimal push of n.
func (b *Builder) AddInt64(n int64) *Builder {
	return b.AddData(IntValue(n))
}

// AddRaw appends bytes verbatim.
func (b *Builder) AddRaw(raw []byte) *Builder {
	b.raw = append(b.raw, raw...)
	return b
}

// Bytes returns the assembled script bytes.
func (b *Builder) Bytes() []byte {
	return append([]byte(nil), b.raw...)
}

// Script parses the assembled bytes.
func (b *Builder) Script() (Script, error) {
	return Parse(b.raw)
}
