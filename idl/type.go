package idl

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Kind names a type reference form
type Kind string

// Primitive kinds
const (
	Bool      Kind = "bool"
	U8        Kind = "u8"
	I8        Kind = "i8"
	U16       Kind = "u16"
	I16       Kind = "i16"
	U32       Kind = "u32"
	I32       Kind = "i32"
	F32       Kind = "f32"
	U64       Kind = "u64"
	I64       Kind = "i64"
	F64       Kind = "f64"
	U128      Kind = "u128"
	I128      Kind = "i128"
	Bytes     Kind = "bytes"
	String    Kind = "string"
	PublicKey Kind = "publicKey"
)

// Composite kinds
const (
	Vec     Kind = "vec"
	Option  Kind = "option"
	COption Kind = "coption"
	Array   Kind = "array"
	Defined Kind = "defined"
)

var primitives = map[Kind]bool{
	Bool: true, U8: true, I8: true, U16: true, I16: true, U32: true, I32: true,
	F32: true, U64: true, I64: true, F64: true, U128: true, I128: true,
	Bytes: true, String: true, PublicKey: true,
}

// IsPrimitive reports whether k is a leaf kind
func (k Kind) IsPrimitive() bool {
	return primitives[k]
}

// Type is a reference to a primitive, a composite of another Type, or a named definition.
// Elem is set for vec, option, coption and array; Len for array; Name for defined.
type Type struct {
	Elem *Type
	Kind Kind
	Name string
	Len  int
}

// Prim returns a primitive type reference
func Prim(k Kind) Type {
	return Type{Kind: k}
}

// VecOf returns vec<t>
func VecOf(t Type) Type {
	return Type{Kind: Vec, Elem: &t}
}

// OptionOf returns option<t>
func OptionOf(t Type) Type {
	return Type{Kind: Option, Elem: &t}
}

// COptionOf returns coption<t>
func COptionOf(t Type) Type {
	return Type{Kind: COption, Elem: &t}
}

// ArrayOf returns array<t, n>
func ArrayOf(t Type, n int) Type {
	return Type{Kind: Array, Elem: &t, Len: n}
}

// DefinedType returns a reference to a named definition
func DefinedType(name string) Type {
	return Type{Kind: Defined, Name: name}
}

// String renders the reference in a compact human form
func (t Type) String() string {
	switch t.Kind {
	case Vec, Option, COption:
		return fmt.Sprintf("%s<%s>", t.Kind, t.elemString())
	case Array:
		return fmt.Sprintf("[%s; %d]", t.elemString(), t.Len)
	case Defined:
		return t.Name
	default:
		return string(t.Kind)
	}
}

func (t Type) elemString() string {
	if t.Elem == nil {
		return "?"
	}
	return t.Elem.String()
}

// MarshalJSON emits the IDL form
func (t Type) MarshalJSON() ([]byte, error) {
	switch t.Kind {
	case Vec, Option, COption:
		if t.Elem == nil {
			return nil, fmt.Errorf("%s type without element", t.Kind)
		}
		return json.Marshal(map[string]Type{string(t.Kind): *t.Elem})
	case Array:
		if t.Elem == nil {
			return nil, fmt.Errorf("array type without element")
		}
		return json.Marshal(map[string][]any{"array": {*t.Elem, t.Len}})
	case Defined:
		return json.Marshal(map[string]string{"defined": t.Name})
	default:
		if !t.Kind.IsPrimitive() {
			return nil, fmt.Errorf("unknown type kind %q", t.Kind)
		}
		return json.Marshal(string(t.Kind))
	}
}

// UnmarshalJSON parses the IDL form
func (t *Type) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		k := Kind(name)
		if k == "pubkey" {
			k = PublicKey
		}
		if !k.IsPrimitive() {
			return fmt.Errorf("unknown primitive type %q", name)
		}
		*t = Type{Kind: k}
		return nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("type must be a string or object: %w", err)
	}
	if len(obj) != 1 {
		return fmt.Errorf("type object must have exactly one key, got %d", len(obj))
	}

	for key, raw := range obj {
		switch Kind(key) {
		case Vec, Option, COption:
			var elem Type
			if err := json.Unmarshal(raw, &elem); err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			*t = Type{Kind: Kind(key), Elem: &elem}
		case Array:
			var parts []json.RawMessage
			if err := json.Unmarshal(raw, &parts); err != nil {
				return fmt.Errorf("array: %w", err)
			}
			if len(parts) != 2 {
				return fmt.Errorf("array: want [type, len], got %d elements", len(parts))
			}
			var elem Type
			if err := json.Unmarshal(parts[0], &elem); err != nil {
				return fmt.Errorf("array: %w", err)
			}
			n, err := strconv.Atoi(string(bytes.TrimSpace(parts[1])))
			if err != nil || n < 0 {
				return fmt.Errorf("array: invalid length %s", parts[1])
			}
			*t = Type{Kind: Array, Elem: &elem, Len: n}
		case Defined:
			name, err := definedName(raw)
			if err != nil {
				return err
			}
			*t = Type{Kind: Defined, Name: name}
		default:
			return fmt.Errorf("unknown type kind %q", key)
		}
	}
	return nil
}

// definedName accepts both "Name" and {"name": "Name"}
func definedName(raw json.RawMessage) (string, error) {
	var name string
	if err := json.Unmarshal(raw, &name); err == nil {
		return name, nil
	}
	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(raw, &obj); err != nil || obj.Name == "" {
		return "", fmt.Errorf("defined: want a type name, got %s", raw)
	}
	return obj.Name, nil
}

// EnumFields holds the payload of a variant: either named fields or positional types.
type EnumFields struct {
	Named []Field
	Tuple []Type
}

// IsTuple reports whether the variant uses positional fields
func (f *EnumFields) IsTuple() bool {
	return f != nil && len(f.Tuple) > 0
}

// MarshalJSON emits a list of fields or a list of types
func (f EnumFields) MarshalJSON() ([]byte, error) {
	if len(f.Tuple) > 0 {
		return json.Marshal(f.Tuple)
	}
	if f.Named == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(f.Named)
}

// UnmarshalJSON distinguishes named from tuple fields by the shape of each element
func (f *EnumFields) UnmarshalJSON(data []byte) error {
	var elems []json.RawMessage
	if err := json.Unmarshal(data, &elems); err != nil {
		return fmt.Errorf("enum fields: %w", err)
	}
	*f = EnumFields{}
	for _, raw := range elems {
		if isNamedField(raw) {
			var fld Field
			if err := json.Unmarshal(raw, &fld); err != nil {
				return err
			}
			f.Named = append(f.Named, fld)
			continue
		}
		var t Type
		if err := json.Unmarshal(raw, &t); err != nil {
			return err
		}
		f.Tuple = append(f.Tuple, t)
	}
	if len(f.Named) > 0 && len(f.Tuple) > 0 {
		return fmt.Errorf("enum fields mix named and tuple members")
	}
	return nil
}

func isNamedField(raw json.RawMessage) bool {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(raw, &keys); err != nil {
		return false
	}
	_, hasName := keys["name"]
	_, hasType := keys["type"]
	return hasName && hasType
}
