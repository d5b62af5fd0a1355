package idl

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tidwall/jsonc"

	"github.com/wippyai/idl-codec/errors"
)

// Parse decodes an IDL document. Comments and trailing commas are allowed.
func Parse(data []byte) (*Idl, error) {
	var out Idl
	if err := json.Unmarshal(jsonc.ToJSON(data), &out); err != nil {
		return nil, errors.ParseFailed("idl", err)
	}
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return &out, nil
}

// MustParse is Parse that panics on error, for embedded documents
func MustParse(data []byte) *Idl {
	out, err := Parse(data)
	if err != nil {
		panic(err)
	}
	return out
}

// ReadFile parses the IDL document at path
func ReadFile(path string) (*Idl, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseParse, errors.KindInvalidData, err,
			fmt.Sprintf("read %s", path))
	}
	return Parse(data)
}

// Validate checks structural well-formedness: named definitions, known kinds and
// unique names within accounts and within types. Reference resolution is left to
// layout construction.
func (i *Idl) Validate() error {
	if err := validateDefs("accounts", i.Accounts); err != nil {
		return err
	}
	if err := validateDefs("types", i.Types); err != nil {
		return err
	}
	if i.State != nil {
		if err := validateDef("state", i.State.Struct); err != nil {
			return err
		}
	}
	seen := make(map[string]bool, len(i.Instructions))
	for _, ix := range i.Instructions {
		if ix.Name == "" {
			return errors.InvalidData(errors.PhaseParse, []string{"instructions"}, "instruction without name")
		}
		if seen[ix.Name] {
			return errors.New(errors.PhaseParse, errors.KindInvalidData).
				Path("instructions").
				Name(ix.Name).
				Detail("duplicate instruction").
				Build()
		}
		seen[ix.Name] = true
	}
	return nil
}

func validateDefs(section string, defs []TypeDef) error {
	seen := make(map[string]bool, len(defs))
	for _, d := range defs {
		if err := validateDef(section, d); err != nil {
			return err
		}
		if seen[d.Name] {
			return errors.New(errors.PhaseParse, errors.KindInvalidData).
				Path(section).
				Name(d.Name).
				Detail("duplicate definition").
				Build()
		}
		seen[d.Name] = true
	}
	return nil
}

func validateDef(section string, d TypeDef) error {
	if d.Name == "" {
		return errors.InvalidData(errors.PhaseParse, []string{section}, "definition without name")
	}
	if d.Type.Kind != KindStruct && d.Type.Kind != KindEnum {
		return errors.New(errors.PhaseParse, errors.KindInvalidData).
			Path(section, d.Name).
			Name(d.Name).
			Detail("unknown definition kind %q", d.Type.Kind).
			Build()
	}
	return nil
}
