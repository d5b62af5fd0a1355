package borsh

import (
	"math"
	"strconv"
	"unicode/utf8"

	idlcodec "github.com/wippyai/idl-codec"
	"github.com/wippyai/idl-codec/borsh/internal/abi"
	"github.com/wippyai/idl-codec/errors"
)

// Decoder unpacks bytes into loosely typed Go values according to a layout:
// structs become map[string]any, vecs and arrays []any, enums a single-key
// map from variant name to its fields, absent options nil.
// Safe for concurrent use.
type Decoder struct{}

func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode unpacks data from the start. Trailing bytes are ignored.
func (d *Decoder) Decode(n *Node, data []byte) (any, error) {
	v, _, err := d.DecodePrefix(n, data)
	return v, err
}

// DecodePrefix unpacks data from the start and reports how many bytes were consumed.
func (d *Decoder) DecodePrefix(n *Node, data []byte) (any, int, error) {
	r := newReader(data)
	v, err := d.loadValue(n, r, nil, 0)
	if err != nil {
		return nil, 0, err
	}
	return v, r.Offset(), nil
}

func (d *Decoder) loadValue(n *Node, r *reader, path []string, depth int) (any, error) {
	if depth > abi.MaxDepth {
		return nil, depthExceeded(errors.PhaseDecode, path)
	}

	switch n.Kind {
	case KindBool:
		v, err := r.ReadU8(path)
		if err != nil {
			return nil, err
		}
		return v != 0, nil

	case KindU8:
		return r.ReadU8(path)

	case KindI8:
		v, err := r.ReadU8(path)
		if err != nil {
			return nil, err
		}
		return int8(v), nil

	case KindU16:
		return r.ReadU16(path)

	case KindI16:
		v, err := r.ReadU16(path)
		if err != nil {
			return nil, err
		}
		return int16(v), nil

	case KindU32:
		return r.ReadU32(path)

	case KindI32:
		v, err := r.ReadU32(path)
		if err != nil {
			return nil, err
		}
		return int32(v), nil

	case KindU64:
		return r.ReadU64(path)

	case KindI64:
		v, err := r.ReadU64(path)
		if err != nil {
			return nil, err
		}
		return int64(v), nil

	case KindU128, KindI128:
		b, err := r.next(16, path)
		if err != nil {
			return nil, err
		}
		return abi.Uint128(b, n.Kind == KindI128), nil

	case KindF32:
		bits, err := r.ReadU32(path)
		if err != nil {
			return nil, err
		}
		return math.Float32frombits(bits), nil

	case KindF64:
		bits, err := r.ReadU64(path)
		if err != nil {
			return nil, err
		}
		return math.Float64frombits(bits), nil

	case KindPublicKey:
		b, err := r.next(idlcodec.PublicKeySize, path)
		if err != nil {
			return nil, err
		}
		var pk idlcodec.PublicKey
		copy(pk[:], b)
		return pk, nil

	case KindString, KindString64:
		b, err := d.loadBytes(n.Kind, r, path)
		if err != nil {
			return nil, err
		}
		if !utf8.Valid(b) {
			return nil, errors.InvalidUTF8(errors.PhaseDecode, path, b)
		}
		return string(b), nil

	case KindBytes:
		return d.loadBytes(n.Kind, r, path)

	case KindStruct:
		return d.loadFields(n.Fields, r, path, depth)

	case KindEnum:
		ord, err := r.ReadU8(path)
		if err != nil {
			return nil, err
		}
		if int(ord) >= len(n.Variants) {
			return nil, errors.InvalidDiscriminant(errors.PhaseDecode, path, uint32(ord), uint32(len(n.Variants)-1))
		}
		variant := n.Variants[ord]
		fields, err := d.loadFields(variant.Fields, r, appendPath(path, variant.Name), depth)
		if err != nil {
			return nil, err
		}
		return map[string]any{variant.Name: fields}, nil

	case KindOption:
		tag, err := r.ReadU8(path)
		if err != nil {
			return nil, err
		}
		switch tag {
		case 0:
			return nil, nil
		case 1:
			return d.loadValue(n.Elem, r, path, depth+1)
		default:
			return nil, errors.InvalidPresenceTag(path, uint32(tag))
		}

	case KindCOption:
		inner := n.Elem.Span
		if inner < 0 {
			return nil, errors.IndeterminateSpan(path, "coption payload "+n.Elem.TypeName())
		}
		tag, err := r.ReadU32(path)
		if err != nil {
			return nil, err
		}
		switch tag {
		case 0:
			return nil, r.Skip(inner, path)
		case 1:
			start := r.Offset()
			v, err := d.loadValue(n.Elem, r, path, depth+1)
			if err != nil {
				return nil, err
			}
			if err := r.Skip(inner-(r.Offset()-start), path); err != nil {
				return nil, err
			}
			return v, nil
		default:
			return nil, errors.InvalidPresenceTag(path, tag)
		}

	case KindVec:
		length, err := r.ReadU32(path)
		if err != nil {
			return nil, err
		}
		if length > abi.MaxVecLength {
			return nil, errors.New(errors.PhaseDecode, errors.KindOverflow).
				Path(path...).
				Detail("vec length %d exceeds maximum %d", length, abi.MaxVecLength).
				Build()
		}
		// every element occupies at least one byte unless the element is zero-width
		if n.Elem.Span == 0 {
			if length > abi.MaxZeroWidthItems {
				return nil, errors.New(errors.PhaseDecode, errors.KindOverflow).
					Path(path...).
					Detail("vec of zero-width %s has length %d, maximum %d", n.Elem.TypeName(), length, abi.MaxZeroWidthItems).
					Build()
			}
		} else if int(length) > r.Remaining() {
			return nil, errors.OutOfBounds(errors.PhaseDecode, path, r.Offset(), int(length), len(r.data))
		}
		return d.loadItems(n.Elem, int(length), r, path, depth)

	case KindArray:
		return d.loadItems(n.Elem, n.Len, r, path, depth)
	}

	return nil, errors.New(errors.PhaseDecode, errors.KindInvalidData).
		Path(path...).
		Detail("unsupported layout kind %s", n.Kind).
		Build()
}

func (d *Decoder) loadBytes(k Kind, r *reader, path []string) ([]byte, error) {
	var length uint64
	if k == KindString64 {
		v, err := r.ReadU64(path)
		if err != nil {
			return nil, err
		}
		length = v
	} else {
		v, err := r.ReadU32(path)
		if err != nil {
			return nil, err
		}
		length = uint64(v)
	}
	if length > abi.MaxStringSize {
		return nil, errors.New(errors.PhaseDecode, errors.KindOverflow).
			Path(path...).
			Detail("%s length %d exceeds maximum %d", k, length, abi.MaxStringSize).
			Build()
	}
	return r.Read(int(length), path)
}

func (d *Decoder) loadFields(fields []NodeField, r *reader, path []string, depth int) (map[string]any, error) {
	result := make(map[string]any, len(fields))
	for _, f := range fields {
		v, err := d.loadValue(f.Node, r, appendPath(path, f.Name), depth+1)
		if err != nil {
			return nil, err
		}
		result[f.Name] = v
	}
	return result, nil
}

func (d *Decoder) loadItems(elem *Node, count int, r *reader, path []string, depth int) ([]any, error) {
	result := make([]any, count)
	for i := 0; i < count; i++ {
		v, err := d.loadValue(elem, r, appendPath(path, "["+strconv.Itoa(i)+"]"), depth+1)
		if err != nil {
			return nil, err
		}
		result[i] = v
	}
	return result, nil
}

// depthExceeded reports nesting past MaxDepth, reached only through
// recursive layouts.
func depthExceeded(phase errors.Phase, path []string) error {
	return errors.New(phase, errors.KindOverflow).
		Path(path...).
		Detail("nesting depth exceeds maximum %d", abi.MaxDepth).
		Build()
}
