// Package safe converts between integer widths and reports values that do not fit instead of
// wrapping them.
package safe

import (
	"errors"
	"fmt"
	"math"
)

// ErrOutOfRange is wrapped by every conversion error.
var ErrOutOfRange = errors.New("value out of range")

// Integer is any built-in integer type used for heights, counters and wire fields.
type Integer interface {
	~int | ~int32 | ~int64 | ~uint | ~uint32 | ~uint64
}

// bounds reports whether v is negative and, when it is not, its magnitude.
func bounds[T Integer](v T) (negative bool, magnitude uint64) {
	if v < 0 {
		return true, 0
	}
	return false, uint64(v)
}

func convert[R, T Integer](v T, limit uint64, name string) (R, error) {
	negative, magnitude := bounds(v)
	if negative || magnitude > limit {
		return 0, fmt.Errorf("%w: %d does not fit %s", ErrOutOfRange, v, name)
	}
	return R(magnitude), nil
}

// Uint32 converts v to uint32.
func Uint32[T Integer](v T) (uint32, error) {
	return convert[uint32](v, math.MaxUint32, "uint32")
}

// Uint64 converts v to uint64, rejecting negatives.
func Uint64[T Integer](v T) (uint64, error) {
	return convert[uint64](v, math.MaxUint64, "uint64")
}

// Int64 converts v to int64, rejecting negatives and unsigned values above math.MaxInt64.
func Int64[T Integer](v T) (int64, error) {
	return convert[int64](v, math.MaxInt64, "int64")
}
