package layout

import (
	"github.com/wippyai/idl-codec/errors"
	"github.com/wippyai/idl-codec/idl"
)

// Lookup resolves a defined type name
type Lookup func(name string) (idl.TypeDef, bool)

// DeclaredSize estimates the payload width of def. String, bytes and vec
// fields count as one byte each.
func DeclaredSize(lookup Lookup, def idl.TypeDef) (int, error) {
	d := declared{lookup: lookup, active: make(map[string]bool)}
	return d.typeDef(def, []string{def.Name})
}

type declared struct {
	lookup Lookup
	active map[string]bool
}

func (d *declared) typeDef(def idl.TypeDef, path []string) (int, error) {
	if d.active[def.Name] {
		return 0, errors.IndeterminateSpan(path, "recursive type "+def.Name)
	}
	d.active[def.Name] = true
	defer delete(d.active, def.Name)

	if def.IsEnum() {
		largest := 0
		for _, v := range def.Type.Variants {
			if v.Fields == nil {
				continue
			}
			if v.Fields.IsTuple() {
				return 0, errors.UnsupportedVariant(errors.PhaseSize, path, def.Name, v.Name)
			}
			sum, err := d.fields(v.Fields.Named, append(path, v.Name))
			if err != nil {
				return 0, err
			}
			if sum > largest {
				largest = sum
			}
		}
		return 1 + largest, nil
	}

	return d.fields(def.Type.Fields, path)
}

func (d *declared) fields(fields []idl.Field, path []string) (int, error) {
	total := 0
	for _, f := range fields {
		s, err := d.typ(f.Type, append(path, f.Name))
		if err != nil {
			return 0, err
		}
		total += s
	}
	return total, nil
}

func (d *declared) typ(t idl.Type, path []string) (int, error) {
	switch t.Kind {
	case idl.Bool, idl.U8, idl.I8:
		return 1, nil
	case idl.U16, idl.I16:
		return 2, nil
	case idl.U32, idl.I32, idl.F32:
		return 4, nil
	case idl.U64, idl.I64, idl.F64:
		return 8, nil
	case idl.U128, idl.I128:
		return 16, nil
	case idl.PublicKey:
		return 32, nil
	case idl.String, idl.Bytes, idl.Vec:
		return 1, nil
	case idl.Option, idl.COption:
		inner, err := d.typ(*t.Elem, path)
		if err != nil {
			return 0, err
		}
		if t.Kind == idl.COption {
			return 4 + inner, nil
		}
		return 1 + inner, nil
	case idl.Array:
		elem, err := d.typ(*t.Elem, path)
		if err != nil {
			return 0, err
		}
		return t.Len * elem, nil
	case idl.Defined:
		def, ok := d.lookup(t.Name)
		if !ok {
			return 0, errors.UndefinedType(errors.PhaseSize, path, t.Name)
		}
		return d.typeDef(def, path)
	}
	return 0, errors.New(errors.PhaseSize, errors.KindInvalidData).
		Path(path...).
		Type(string(t.Kind)).
		Detail("unknown type kind").
		Build()
}
