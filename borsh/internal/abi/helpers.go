package abi

import (
	"math"
	"math/big"
	"reflect"
)

// TypeName returns "nil" for nil values, avoiding reflect.TypeOf(nil) panic.
func TypeName(value any) string {
	if value == nil {
		return "nil"
	}
	return reflect.TypeOf(value).String()
}

// FitsUnsigned reports whether v fits in an unsigned integer of the given width in bytes.
func FitsUnsigned(v uint64, width int) bool {
	if width >= 8 {
		return true
	}
	return v <= (uint64(1)<<(uint(width)*8))-1
}

// FitsSigned reports whether v fits in a signed integer of the given width in bytes.
func FitsSigned(v int64, width int) bool {
	if width >= 8 {
		return true
	}
	bits := uint(width) * 8
	lo := -(int64(1) << (bits - 1))
	hi := (int64(1) << (bits - 1)) - 1
	return v >= lo && v <= hi
}

// Bounds for 128-bit integers
var (
	MaxU128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))
	MaxI128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 127), big.NewInt(1))
	MinI128 = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 127))
)

// FitsU128 reports whether v is within [0, 2^128)
func FitsU128(v *big.Int) bool {
	return v.Sign() >= 0 && v.Cmp(MaxU128) <= 0
}

// FitsI128 reports whether v is within [-2^127, 2^127)
func FitsI128(v *big.Int) bool {
	return v.Cmp(MinI128) >= 0 && v.Cmp(MaxI128) <= 0
}

// PutUint128 writes v as 16 little-endian bytes. Negative values are written in two's complement.
func PutUint128(dst []byte, v *big.Int) {
	x := new(big.Int).Set(v)
	if x.Sign() < 0 {
		x.Add(x, new(big.Int).Lsh(big.NewInt(1), 128))
	}
	be := x.FillBytes(make([]byte, 16))
	for i := 0; i < 16; i++ {
		dst[i] = be[15-i]
	}
}

// Uint128 reads 16 little-endian bytes. When signed, the top bit is the sign.
func Uint128(src []byte, signed bool) *big.Int {
	be := make([]byte, 16)
	for i := 0; i < 16; i++ {
		be[i] = src[15-i]
	}
	x := new(big.Int).SetBytes(be)
	if signed && be[0]&0x80 != 0 {
		x.Sub(x, new(big.Int).Lsh(big.NewInt(1), 128))
	}
	return x
}

// SafeMul multiplies non-negative ints, reporting overflow.
func SafeMul(a, b int) (int, bool) {
	if a < 0 || b < 0 {
		return 0, false
	}
	if b != 0 && a > math.MaxInt/b {
		return 0, false
	}
	return a * b, true
}

const (
	MaxStringSize = 1 << 30 // 1 GB max string size
	MaxVecLength  = 1 << 27 // 128M max elements

	// MaxZeroWidthItems bounds vecs whose elements occupy no bytes, since
	// their length prefix is not checked against the remaining input.
	MaxZeroWidthItems = MaxVecLength >> 11 // 64K elements

	// MaxDepth bounds nesting through recursive layouts.
	MaxDepth = 128
)
