package borsh

import "github.com/wippyai/idl-codec/borsh/internal/abi"

// FieldValues returns a struct input as a field map, accepting the same loose
// forms the encoder does: pointers and maps with any string key type.
func FieldValues(value any) (map[string]any, bool) {
	return abi.AsMap(abi.Deref(value))
}

// PayloadLen returns the byte length a string or bytes input occupies after
// the length prefix, as the encoder would coerce it.
func PayloadLen(k Kind, value any) (int, bool) {
	value = abi.Deref(value)
	switch k {
	case KindString, KindString64:
		s, ok := value.(string)
		return len(s), ok
	case KindBytes:
		b, ok := abi.CoerceToBytes(value)
		return len(b), ok
	}
	return 0, false
}
