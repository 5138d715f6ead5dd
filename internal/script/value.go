package script

import "encoding/hex"

const (
	// MaxValueByteCount is the largest value that may exist on the stack.
	MaxValueByteCount = 520

	integerByteCount = 4
	longByteCount    = 8
)

// Value is a stack element. Values are never mutated after they are pushed.
type Value []byte

// NewValue copies b into a Value. ok is false when b exceeds MaxValueByteCount.
func NewValue(b []byte) (Value, bool) {
	if len(b) > MaxValueByteCount {
		return nil, false
	}
	v := make(Value, len(b))
	copy(v, b)
	return v, true
}

// IntValue returns the minimal encoding of n.
func IntValue(n int64) Value {
	if n == 0 {
		return Value{}
	}

	negative := n < 0
	var magnitude uint64
	if negative {
		magnitude = uint64(-(n + 1)) + 1
	} else {
		magnitude = uint64(n)
	}

	out := make(Value, 0, 9)
	for magnitude > 0 {
		out = append(out, byte(magnitude))
		magnitude >>= 8
	}

	if out[len(out)-1]&0x80 != 0 {
		if negative {
			out = append(out, 0x80)
		} else {
			out = append(out, 0x00)
		}
	} else if negative {
		out[len(out)-1] |= 0x80
	}
	return out
}

// BoolValue encodes true as 0x01 and false as the empty value.
func BoolValue(b bool) Value {
	if b {
		return Value{0x01}
	}
	return Value{}
}

// Bytes returns the raw bytes. The caller must not modify them.
func (v Value) Bytes() []byte { return v }

// Len returns the byte count.
func (v Value) Len() int { return len(v) }

// Equal compares raw bytes.
func (v Value) Equal(o Value) bool {
	if len(v) != len(o) {
		return false
	}
	for i := range v {
		if v[i] != o[i] {
			return false
		}
	}
	return true
}

// Bool is false for an empty value, all-zero bytes, and negative zero.
func (v Value) Bool() bool {
	for i, b := range v {
		if b != 0 {
			if i == len(v)-1 && b == 0x80 {
				return false
			}
			return true
		}
	}
	return false
}

// IsMinimallyEncoded reports whether v is the shortest encoding of its integer.
func (v Value) IsMinimallyEncoded() bool {
	if len(v) == 0 {
		return true
	}
	if v[len(v)-1]&0x7f != 0 {
		return true
	}
	// The last byte carries only the sign, which is only allowed when the byte before it
	// would otherwise collide with the sign bit.
	if len(v) == 1 {
		return false
	}
	return v[len(v)-2]&0x80 != 0
}

// Int32 decodes v as a 4-byte script integer.
func (v Value) Int32(requireMinimal bool) (int32, bool) {
	n, ok := v.Int64(requireMinimal, integerByteCount)
	if !ok {
		return 0, false
	}
	return int32(n), true
}

// Int64 decodes v as a script integer of at most maxByteCount bytes (at most 8).
func (v Value) Int64(requireMinimal bool, maxByteCount int) (int64, bool) {
	if maxByteCount > longByteCount {
		maxByteCount = longByteCount
	}
	if len(v) > maxByteCount {
		return 0, false
	}
	if requireMinimal && !v.IsMinimallyEncoded() {
		return 0, false
	}
	if len(v) == 0 {
		return 0, true
	}

	var magnitude uint64
	for i, b := range v {
		if i == len(v)-1 {
			b &= 0x7f
		}
		magnitude |= uint64(b) << (8 * uint(i))
	}
	n := int64(magnitude)
	if v[len(v)-1]&0x80 != 0 {
		n = -n
	}
	return n, true
}

// MinimallyEncoded returns v with redundant trailing bytes removed, preserving the sign.
func (v Value) MinimallyEncoded() Value {
	if len(v) == 0 {
		return Value{}
	}

	last := v[len(v)-1]
	if last&0x7f != 0 {
		out, _ := NewValue(v)
		return out
	}
	if len(v) == 1 {
		return Value{}
	}
	if v[len(v)-2]&0x80 != 0 {
		out, _ := NewValue(v)
		return out
	}

	for i := len(v) - 1; i > 0; i-- {
		if v[i-1] == 0 {
			continue
		}
		if v[i-1]&0x80 != 0 {
			out := make(Value, i+1)
			copy(out, v[:i])
			out[i] = last
			return out
		}
		out := make(Value, i)
		copy(out, v[:i])
		out[i-1] |= last
		return out
	}
	return Value{}
}

// String renders v as hex.
func (v Value) String() string {
	return hex.EncodeToString(v)
}

// bit returns bit i of v counting from the most significant bit of the first byte.
func (v Value) bit(i int) bool {
	return v[i/8]&(0x80>>uint(i%8)) != 0
}

func setBit(b []byte, i int, on bool) {
	mask := byte(0x80 >> uint(i%8))
	if on {
		b[i/8] |= mask
	} else {
		b[i/8] &^= mask
	}
}
