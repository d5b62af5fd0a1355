package abi

import (
	"bytes"
	"math"
	"math/big"
	"testing"
)

func TestTypeName(t *testing.T) {
	if got := TypeName(nil); got != "nil" {
		t.Errorf("TypeName(nil) = %q", got)
	}
	if got := TypeName(uint8(1)); got != "uint8" {
		t.Errorf("TypeName(uint8) = %q", got)
	}
	if got := TypeName(map[string]any{}); got != "map[string]interface {}" {
		t.Errorf("TypeName(map) = %q", got)
	}
}

func TestFits(t *testing.T) {
	tests := []struct {
		name  string
		ok    bool
		check func() bool
	}{
		{"u8 max", true, func() bool { return FitsUnsigned(255, 1) }},
		{"u8 over", false, func() bool { return FitsUnsigned(256, 1) }},
		{"u16 max", true, func() bool { return FitsUnsigned(65535, 2) }},
		{"u32 over", false, func() bool { return FitsUnsigned(1<<32, 4) }},
		{"u64 any", true, func() bool { return FitsUnsigned(math.MaxUint64, 8) }},
		{"i8 min", true, func() bool { return FitsSigned(-128, 1) }},
		{"i8 under", false, func() bool { return FitsSigned(-129, 1) }},
		{"i8 over", false, func() bool { return FitsSigned(128, 1) }},
		{"i32 max", true, func() bool { return FitsSigned(math.MaxInt32, 4) }},
		{"i64 any", true, func() bool { return FitsSigned(math.MinInt64, 8) }},
		{"u128 max", true, func() bool { return FitsU128(MaxU128) }},
		{"u128 over", false, func() bool { return FitsU128(new(big.Int).Add(MaxU128, big.NewInt(1))) }},
		{"u128 negative", false, func() bool { return FitsU128(big.NewInt(-1)) }},
		{"i128 min", true, func() bool { return FitsI128(MinI128) }},
		{"i128 over", false, func() bool { return FitsI128(new(big.Int).Add(MaxI128, big.NewInt(1))) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.check(); got != tt.ok {
				t.Errorf("got %v, want %v", got, tt.ok)
			}
		})
	}
}

func TestUint128RoundTrip(t *testing.T) {
	tests := []struct {
		value  *big.Int
		name   string
		bytes  []byte
		signed bool
	}{
		{big.NewInt(1), "one", append([]byte{1}, make([]byte, 15)...), false},
		{big.NewInt(0x0102), "two bytes", append([]byte{2, 1}, make([]byte, 14)...), false},
		{big.NewInt(-1), "minus one", bytes.Repeat([]byte{0xff}, 16), true},
		{MaxU128, "u128 max", bytes.Repeat([]byte{0xff}, 16), false},
		{MinI128, "i128 min", append(make([]byte, 15), 0x80), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := make([]byte, 16)
			PutUint128(buf, tt.value)
			if !bytes.Equal(buf, tt.bytes) {
				t.Errorf("PutUint128 = %x, want %x", buf, tt.bytes)
			}
			if got := Uint128(buf, tt.signed); got.Cmp(tt.value) != 0 {
				t.Errorf("Uint128 = %s, want %s", got, tt.value)
			}
		})
	}
}

func TestSafeMul(t *testing.T) {
	if got, ok := SafeMul(4, 8); !ok || got != 32 {
		t.Errorf("SafeMul(4, 8) = %d, %v", got, ok)
	}
	if _, ok := SafeMul(math.MaxInt, 2); ok {
		t.Error("SafeMul should detect overflow")
	}
	if _, ok := SafeMul(-1, 2); ok {
		t.Error("SafeMul should reject negatives")
	}
	if got, ok := SafeMul(math.MaxInt, 0); !ok || got != 0 {
		t.Errorf("SafeMul(max, 0) = %d, %v", got, ok)
	}
}
