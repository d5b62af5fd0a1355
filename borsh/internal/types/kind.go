package types

type Kind uint8

const (
	KindBool Kind = iota
	KindU8
	KindI8
	KindU16
	KindI16
	KindU32
	KindI32
	KindF32
	KindU64
	KindI64
	KindF64
	KindU128
	KindI128
	KindPublicKey
	KindString
	KindBytes
	KindString64
	KindStruct
	KindEnum
	KindVec
	KindOption
	KindCOption
	KindArray
)

var kindNames = [...]string{
	KindBool:      "bool",
	KindU8:        "u8",
	KindI8:        "i8",
	KindU16:       "u16",
	KindI16:       "i16",
	KindU32:       "u32",
	KindI32:       "i32",
	KindF32:       "f32",
	KindU64:       "u64",
	KindI64:       "i64",
	KindF64:       "f64",
	KindU128:      "u128",
	KindI128:      "i128",
	KindPublicKey: "publicKey",
	KindString:    "string",
	KindBytes:     "bytes",
	KindString64:  "string64",
	KindStruct:    "struct",
	KindEnum:      "enum",
	KindVec:       "vec",
	KindOption:    "option",
	KindCOption:   "coption",
	KindArray:     "array",
}

var kindWidths = [...]int{
	KindBool:      1,
	KindU8:        1,
	KindI8:        1,
	KindU16:       2,
	KindI16:       2,
	KindU32:       4,
	KindI32:       4,
	KindF32:       4,
	KindU64:       8,
	KindI64:       8,
	KindF64:       8,
	KindU128:      16,
	KindI128:      16,
	KindPublicKey: 32,
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// IsPrimitive reports fixed-width leaves
func (k Kind) IsPrimitive() bool {
	return k <= KindPublicKey
}

// IsVariable reports length-prefixed kinds whose span depends on the value
func (k Kind) IsVariable() bool {
	switch k {
	case KindString, KindBytes, KindString64, KindVec:
		return true
	default:
		return false
	}
}

// IsSigned reports signed integer kinds
func (k Kind) IsSigned() bool {
	switch k {
	case KindI8, KindI16, KindI32, KindI64, KindI128:
		return true
	default:
		return false
	}
}

// Width returns the byte width of a primitive, 0 for other kinds
func (k Kind) Width() int {
	if int(k) < len(kindWidths) {
		return kindWidths[k]
	}
	return 0
}

// PrefixWidth returns the width of the length prefix or presence tag a kind
// writes ahead of its payload: 4 for string, bytes and vec, 8 for string64,
// 1 for option and enum, 4 for coption.
func (k Kind) PrefixWidth() int {
	switch k {
	case KindString, KindBytes, KindVec, KindCOption:
		return 4
	case KindString64:
		return 8
	case KindOption, KindEnum:
		return 1
	default:
		return 0
	}
}
