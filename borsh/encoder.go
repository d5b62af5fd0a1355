package borsh

import (
	"math"
	"strconv"
	"unicode/utf8"

	idlcodec "github.com/wippyai/idl-codec"
	"github.com/wippyai/idl-codec/borsh/internal/abi"
	"github.com/wippyai/idl-codec/errors"
	"github.com/wippyai/idl-codec/idl"
)

// Encoder packs loosely typed Go values according to a layout.
// Safe for concurrent use.
type Encoder struct {
	packetSize int
}

func NewEncoder(opts Options) *Encoder {
	return &Encoder{packetSize: opts.packetSize()}
}

// Encode writes value into a scratch buffer of n's span, or of the packet
// size when n has none, and returns the written prefix.
func (e *Encoder) Encode(n *Node, value any) ([]byte, error) {
	capacity := n.Span
	if capacity < 0 {
		capacity = e.packetSize
	}
	return e.EncodeWithCapacity(n, value, capacity)
}

// EncodeWithCapacity is Encode with an explicit buffer size.
func (e *Encoder) EncodeWithCapacity(n *Node, value any, capacity int) ([]byte, error) {
	w := newWriter(capacity)
	if err := e.storeValue(n, value, w, nil, 0); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

func (e *Encoder) storeValue(n *Node, value any, w *writer, path []string, depth int) error {
	if depth > abi.MaxDepth {
		return depthExceeded(errors.PhaseEncode, path)
	}
	value = abi.Deref(value)

	switch n.Kind {
	case KindBool:
		v, ok := abi.CoerceToBool(value)
		if !ok {
			return errors.TypeMismatch(errors.PhaseEncode, path, abi.TypeName(value), "bool")
		}
		var b uint8
		if v {
			b = 1
		}
		return w.WriteU8(b, path)

	case KindU8, KindU16, KindU32, KindU64:
		v, err := unsignedValue(n.Kind, value, path)
		if err != nil {
			return err
		}
		switch n.Kind {
		case KindU8:
			return w.WriteU8(uint8(v), path)
		case KindU16:
			return w.WriteU16(uint16(v), path)
		case KindU32:
			return w.WriteU32(uint32(v), path)
		default:
			return w.WriteU64(v, path)
		}

	case KindI8, KindI16, KindI32, KindI64:
		v, err := signedValue(n.Kind, value, path)
		if err != nil {
			return err
		}
		switch n.Kind {
		case KindI8:
			return w.WriteU8(uint8(int8(v)), path)
		case KindI16:
			return w.WriteU16(uint16(int16(v)), path)
		case KindI32:
			return w.WriteU32(uint32(int32(v)), path)
		default:
			return w.WriteU64(uint64(v), path)
		}

	case KindU128, KindI128:
		v, ok := abi.CoerceToBigInt(value)
		if !ok {
			return errors.TypeMismatch(errors.PhaseEncode, path, abi.TypeName(value), n.Kind.String())
		}
		fits := abi.FitsU128(v)
		if n.Kind == KindI128 {
			fits = abi.FitsI128(v)
		}
		if !fits {
			return errors.Overflow(errors.PhaseEncode, path, v, n.Kind.String())
		}
		b, err := w.reserve(16, path)
		if err != nil {
			return err
		}
		abi.PutUint128(b, v)
		return nil

	case KindF32:
		v, ok := abi.CoerceToFloat64(value)
		if !ok {
			return errors.TypeMismatch(errors.PhaseEncode, path, abi.TypeName(value), "f32")
		}
		return w.WriteU32(math.Float32bits(float32(v)), path)

	case KindF64:
		v, ok := abi.CoerceToFloat64(value)
		if !ok {
			return errors.TypeMismatch(errors.PhaseEncode, path, abi.TypeName(value), "f64")
		}
		return w.WriteU64(math.Float64bits(v), path)

	case KindPublicKey:
		pk, err := publicKeyValue(value, path)
		if err != nil {
			return err
		}
		return w.Write(pk[:], path)

	case KindString, KindString64:
		s, ok := value.(string)
		if !ok {
			return errors.TypeMismatch(errors.PhaseEncode, path, abi.TypeName(value), "string")
		}
		if !utf8.ValidString(s) {
			return errors.InvalidUTF8(errors.PhaseEncode, path, []byte(s))
		}
		return e.storeBytes(n.Kind, []byte(s), w, path)

	case KindBytes:
		b, ok := abi.CoerceToBytes(value)
		if !ok {
			return errors.TypeMismatch(errors.PhaseEncode, path, abi.TypeName(value), "bytes")
		}
		return e.storeBytes(n.Kind, b, w, path)

	case KindStruct:
		return e.storeStruct(n, value, w, path, depth)

	case KindEnum:
		return e.storeEnum(n, value, w, path, depth)

	case KindOption:
		if value == nil {
			return w.WriteU8(0, path)
		}
		if err := w.WriteU8(1, path); err != nil {
			return err
		}
		return e.storeValue(n.Elem, value, w, path, depth+1)

	case KindCOption:
		inner := n.Elem.Span
		if inner < 0 {
			return errors.IndeterminateSpan(path, "coption payload "+n.Elem.TypeName())
		}
		if value == nil {
			if err := w.WriteU32(0, path); err != nil {
				return err
			}
			return w.Zero(inner, path)
		}
		if err := w.WriteU32(1, path); err != nil {
			return err
		}
		start := w.off
		if err := e.storeValue(n.Elem, value, w, path, depth+1); err != nil {
			return err
		}
		// pad a shorter inner encoding (e.g. an absent option) to full width
		return w.Zero(inner-(w.off-start), path)

	case KindVec:
		items, ok := abi.AsSlice(value)
		if !ok {
			return errors.TypeMismatch(errors.PhaseEncode, path, abi.TypeName(value), n.TypeName())
		}
		if len(items) > abi.MaxVecLength {
			return errors.New(errors.PhaseEncode, errors.KindOverflow).
				Path(path...).
				Detail("vec length %d exceeds maximum %d", len(items), abi.MaxVecLength).
				Build()
		}
		if err := w.WriteU32(uint32(len(items)), path); err != nil {
			return err
		}
		return e.storeItems(n.Elem, items, w, path, depth)

	case KindArray:
		items, ok := abi.AsSlice(value)
		if !ok {
			return errors.TypeMismatch(errors.PhaseEncode, path, abi.TypeName(value), n.TypeName())
		}
		if len(items) != n.Len {
			return errors.New(errors.PhaseEncode, errors.KindInvalidData).
				Path(path...).
				Type(n.TypeName()).
				Detail("array needs %d elements, got %d", n.Len, len(items)).
				Build()
		}
		return e.storeItems(n.Elem, items, w, path, depth)
	}

	return errors.New(errors.PhaseEncode, errors.KindInvalidData).
		Path(path...).
		Detail("unsupported layout kind %s", n.Kind).
		Build()
}

func (e *Encoder) storeBytes(k Kind, b []byte, w *writer, path []string) error {
	if len(b) > abi.MaxStringSize {
		return errors.New(errors.PhaseEncode, errors.KindOverflow).
			Path(path...).
			Detail("%s length %d exceeds maximum %d", k, len(b), abi.MaxStringSize).
			Build()
	}
	var err error
	if k == KindString64 {
		err = w.WriteU64(uint64(len(b)), path)
	} else {
		err = w.WriteU32(uint32(len(b)), path)
	}
	if err != nil {
		return err
	}
	return w.Write(b, path)
}

func (e *Encoder) storeItems(elem *Node, items []any, w *writer, path []string, depth int) error {
	for i, item := range items {
		if err := e.storeValue(elem, item, w, appendPath(path, "["+strconv.Itoa(i)+"]"), depth+1); err != nil {
			return err
		}
	}
	return nil
}

func (e *Encoder) storeStruct(n *Node, value any, w *writer, path []string, depth int) error {
	m, ok := abi.AsMap(value)
	if !ok {
		if value == nil && len(n.Fields) == 0 {
			return nil
		}
		return errors.TypeMismatch(errors.PhaseEncode, path, abi.TypeName(value), "map[string]any")
	}
	return e.storeFields(n.Fields, m, w, path, depth)
}

func (e *Encoder) storeFields(fields []NodeField, m map[string]any, w *writer, path []string, depth int) error {
	for _, f := range fields {
		fv, exists := m[f.Name]
		if !exists {
			// absent optional fields encode as none
			if f.Node.Kind != KindOption && f.Node.Kind != KindCOption {
				return errors.FieldMissing(errors.PhaseEncode, path, f.Name)
			}
		}
		if err := e.storeValue(f.Node, fv, w, appendPath(path, f.Name), depth+1); err != nil {
			return err
		}
	}
	return nil
}

// storeEnum accepts a variant name for unit variants, or a single-key map
// {variant: {field: value}}.
func (e *Encoder) storeEnum(n *Node, value any, w *writer, path []string, depth int) error {
	var name string
	var payload any

	switch v := value.(type) {
	case string:
		name = v
	default:
		m, ok := abi.AsMap(value)
		if !ok || len(m) != 1 {
			return errors.New(errors.PhaseEncode, errors.KindTypeMismatch).
				Path(path...).
				GoType(abi.TypeName(value)).
				Type(n.TypeName()).
				Detail("enum value must be a variant name or a single-key map").
				Build()
		}
		for k, p := range m {
			name, payload = k, p
		}
	}

	idx := variantIndex(n, name)
	if idx < 0 {
		return errors.New(errors.PhaseEncode, errors.KindInvalidVariant).
			Path(path...).
			Name(name).
			Type(n.TypeName()).
			Detail("unknown variant").
			Build()
	}
	if idx > math.MaxUint8 {
		return errors.Overflow(errors.PhaseEncode, path, idx, "enum ordinal")
	}
	if err := w.WriteU8(uint8(idx), path); err != nil {
		return err
	}

	variant := n.Variants[idx]
	if len(variant.Fields) == 0 {
		return nil
	}
	payload = abi.Deref(payload)
	fields, ok := abi.AsMap(payload)
	if !ok {
		if payload != nil {
			return errors.TypeMismatch(errors.PhaseEncode, appendPath(path, variant.Name), abi.TypeName(payload), "map[string]any")
		}
		fields = map[string]any{}
	}
	return e.storeFields(variant.Fields, fields, w, appendPath(path, variant.Name), depth)
}

// variantIndex matches exactly first, then by camelCase spelling.
func variantIndex(n *Node, name string) int {
	if idx := n.VariantIndex(name); idx >= 0 {
		return idx
	}
	want := idl.CamelCase(name)
	for i, v := range n.Variants {
		if idl.CamelCase(v.Name) == want {
			return i
		}
	}
	return -1
}

func unsignedValue(k Kind, value any, path []string) (uint64, error) {
	v, ok := abi.CoerceToUint64(value)
	if !ok {
		if neg, isInt := abi.CoerceToInt64(value); isInt {
			return 0, errors.Overflow(errors.PhaseEncode, path, neg, k.String())
		}
		return 0, errors.TypeMismatch(errors.PhaseEncode, path, abi.TypeName(value), k.String())
	}
	if !abi.FitsUnsigned(v, k.Width()) {
		return 0, errors.Overflow(errors.PhaseEncode, path, v, k.String())
	}
	return v, nil
}

func signedValue(k Kind, value any, path []string) (int64, error) {
	v, ok := abi.CoerceToInt64(value)
	if !ok {
		if large, isUint := abi.CoerceToUint64(value); isUint {
			return 0, errors.Overflow(errors.PhaseEncode, path, large, k.String())
		}
		return 0, errors.TypeMismatch(errors.PhaseEncode, path, abi.TypeName(value), k.String())
	}
	if !abi.FitsSigned(v, k.Width()) {
		return 0, errors.Overflow(errors.PhaseEncode, path, v, k.String())
	}
	return v, nil
}

func publicKeyValue(value any, path []string) (idlcodec.PublicKey, error) {
	switch v := value.(type) {
	case idlcodec.PublicKey:
		return v, nil
	case [idlcodec.PublicKeySize]byte:
		return idlcodec.PublicKey(v), nil
	case []byte:
		pk, err := idlcodec.PublicKeyFromBytes(v)
		if err != nil {
			return pk, errors.New(errors.PhaseEncode, errors.KindInvalidData).
				Path(path...).
				Cause(err).
				Detail("invalid public key bytes").
				Build()
		}
		return pk, nil
	case string:
		pk, err := idlcodec.ParsePublicKey(v)
		if err != nil {
			return pk, errors.New(errors.PhaseEncode, errors.KindInvalidData).
				Path(path...).
				Cause(err).
				Detail("invalid public key %q", v).
				Build()
		}
		return pk, nil
	}
	return idlcodec.PublicKey{}, errors.TypeMismatch(errors.PhaseEncode, path, abi.TypeName(value), "publicKey")
}
