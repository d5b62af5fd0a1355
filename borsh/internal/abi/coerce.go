package abi

import (
	"encoding/json"
	"math"
	"math/big"
	"reflect"
	"strconv"
)

// CoerceToUint64 handles JSON decoded numbers (float64, json.Number) and other numeric types.
func CoerceToUint64(value any) (uint64, bool) {
	switch v := value.(type) {
	case uint64:
		return v, true
	case uint8:
		return uint64(v), true
	case uint16:
		return uint64(v), true
	case uint32:
		return uint64(v), true
	case uint:
		return uint64(v), true
	case int8:
		if v >= 0 {
			return uint64(v), true
		}
	case int16:
		if v >= 0 {
			return uint64(v), true
		}
	case int32:
		if v >= 0 {
			return uint64(v), true
		}
	case int:
		if v >= 0 {
			return uint64(v), true
		}
	case int64:
		if v >= 0 {
			return uint64(v), true
		}
	case float64:
		if v >= 0 && v < twoTo64 && v == math.Trunc(v) {
			return uint64(v), true
		}
	case float32:
		f := float64(v)
		if f >= 0 && f < twoTo64 && f == math.Trunc(f) {
			return uint64(f), true
		}
	case json.Number:
		if u, err := strconv.ParseUint(string(v), 10, 64); err == nil {
			return u, true
		}
	case *big.Int:
		if v != nil && v.IsUint64() {
			return v.Uint64(), true
		}
	}
	return 0, false
}

// CoerceToInt64 is the signed counterpart of CoerceToUint64
func CoerceToInt64(value any) (int64, bool) {
	switch v := value.(type) {
	case int64:
		return v, true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int:
		return int64(v), true
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint:
		if v <= math.MaxInt64 {
			return int64(v), true
		}
	case uint64:
		if v <= math.MaxInt64 {
			return int64(v), true
		}
	case float64:
		if v >= -twoTo63 && v < twoTo63 && v == math.Trunc(v) {
			return int64(v), true
		}
	case float32:
		f := float64(v)
		if f >= -twoTo63 && f < twoTo63 && f == math.Trunc(f) {
			return int64(f), true
		}
	case json.Number:
		if i, err := strconv.ParseInt(string(v), 10, 64); err == nil {
			return i, true
		}
	case *big.Int:
		if v != nil && v.IsInt64() {
			return v.Int64(), true
		}
	}
	return 0, false
}

// CoerceToBigInt accepts any integer form, including decimal strings, for 128-bit fields.
func CoerceToBigInt(value any) (*big.Int, bool) {
	switch v := value.(type) {
	case *big.Int:
		if v == nil {
			return nil, false
		}
		return new(big.Int).Set(v), true
	case json.Number:
		return new(big.Int).SetString(string(v), 10)
	case string:
		return new(big.Int).SetString(v, 10)
	}
	if u, ok := CoerceToUint64(value); ok {
		return new(big.Int).SetUint64(u), true
	}
	if i, ok := CoerceToInt64(value); ok {
		return big.NewInt(i), true
	}
	return nil, false
}

// CoerceToFloat64 accepts any numeric form
func CoerceToFloat64(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	}
	if i, ok := CoerceToInt64(value); ok {
		return float64(i), true
	}
	if u, ok := CoerceToUint64(value); ok {
		return float64(u), true
	}
	return 0, false
}

// CoerceToBool accepts bool only
func CoerceToBool(value any) (bool, bool) {
	b, ok := value.(bool)
	return b, ok
}

// CoerceToBytes accepts []byte, strings (raw bytes), and slices of small integers.
func CoerceToBytes(value any) ([]byte, bool) {
	switch v := value.(type) {
	case []byte:
		return v, true
	case string:
		return []byte(v), true
	case []any:
		out := make([]byte, len(v))
		for i, e := range v {
			u, ok := CoerceToUint64(e)
			if !ok || u > math.MaxUint8 {
				return nil, false
			}
			out[i] = byte(u)
		}
		return out, true
	}
	return nil, false
}

// Deref follows pointers until a non-pointer value or nil is reached.
func Deref(value any) any {
	for value != nil {
		rv := reflect.ValueOf(value)
		if rv.Kind() != reflect.Ptr {
			return value
		}
		if rv.IsNil() {
			return nil
		}
		// *big.Int is a value in its own right
		if _, ok := value.(*big.Int); ok {
			return value
		}
		value = rv.Elem().Interface()
	}
	return nil
}

// AsSlice converts any slice or array value to []any.
func AsSlice(value any) ([]any, bool) {
	switch v := value.(type) {
	case []any:
		return v, true
	case nil:
		return nil, false
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// AsMap converts map[string]any and maps with string keys to map[string]any.
func AsMap(value any) (map[string]any, bool) {
	if m, ok := value.(map[string]any); ok {
		return m, true
	}
	if value == nil {
		return nil, false
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out, true
}

const (
	twoTo63 = float64(1 << 63)
	twoTo64 = twoTo63 * 2
)
