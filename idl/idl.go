package idl

// Idl is a parsed program interface
type Idl struct {
	State        *State        `json:"state,omitempty"`
	Metadata     *Metadata     `json:"metadata,omitempty"`
	Version      string        `json:"version"`
	Name         string        `json:"name"`
	Docs         []string      `json:"docs,omitempty"`
	Instructions []Instruction `json:"instructions"`
	Accounts     []TypeDef     `json:"accounts,omitempty"`
	Types        []TypeDef     `json:"types,omitempty"`
	Events       []Event       `json:"events,omitempty"`
	Errors       []ErrorCode   `json:"errors,omitempty"`
	Constants    []Constant    `json:"constants,omitempty"`
}

// Metadata carries deployment information
type Metadata struct {
	Address string `json:"address,omitempty"`
}

// Instruction describes one program entrypoint
type Instruction struct {
	Returns  *Type         `json:"returns,omitempty"`
	Name     string        `json:"name"`
	Docs     []string      `json:"docs,omitempty"`
	Accounts []AccountItem `json:"accounts"`
	Args     []Field       `json:"args"`
}

// AccountItem is an account slot of an instruction, or a named group of slots
type AccountItem struct {
	Name     string        `json:"name"`
	Docs     []string      `json:"docs,omitempty"`
	Accounts []AccountItem `json:"accounts,omitempty"`
	IsMut    bool          `json:"isMut,omitempty"`
	IsSigner bool          `json:"isSigner,omitempty"`
	Optional bool          `json:"isOptional,omitempty"`
}

// State is the legacy singleton state of a program
type State struct {
	Struct  TypeDef       `json:"struct"`
	Methods []Instruction `json:"methods"`
}

// Type definition kinds
const (
	KindStruct = "struct"
	KindEnum   = "enum"
)

// TypeDef is a named struct or enum
type TypeDef struct {
	Name string    `json:"name"`
	Docs []string  `json:"docs,omitempty"`
	Type TypeDefTy `json:"type"`
}

// TypeDefTy is the body of a TypeDef
type TypeDefTy struct {
	Kind     string        `json:"kind"`
	Fields   []Field       `json:"fields,omitempty"`
	Variants []EnumVariant `json:"variants,omitempty"`
}

// IsEnum reports whether the definition is an enum
func (d TypeDef) IsEnum() bool {
	return d.Type.Kind == KindEnum
}

// Field is a named, typed struct member or instruction argument
type Field struct {
	Name string   `json:"name"`
	Docs []string `json:"docs,omitempty"`
	Type Type     `json:"type"`
}

// EnumVariant is one arm of an enum. Fields is nil for unit variants.
type EnumVariant struct {
	Fields *EnumFields `json:"fields,omitempty"`
	Name   string      `json:"name"`
}

// Event is a structured log record
type Event struct {
	Name   string       `json:"name"`
	Fields []EventField `json:"fields"`
}

// EventField is a member of an Event
type EventField struct {
	Name  string `json:"name"`
	Type  Type   `json:"type"`
	Index bool   `json:"index"`
}

// ErrorCode is a program-defined error
type ErrorCode struct {
	Name string `json:"name"`
	Msg  string `json:"msg,omitempty"`
	Code int    `json:"code"`
}

// Constant is a program-defined constant in its textual form
type Constant struct {
	Name  string `json:"name"`
	Type  Type   `json:"type"`
	Value string `json:"value"`
}

// TypeTable returns all named definitions a defined reference may resolve to:
// accounts first, then types.
func (i *Idl) TypeTable() []TypeDef {
	out := make([]TypeDef, 0, len(i.Accounts)+len(i.Types))
	out = append(out, i.Accounts...)
	out = append(out, i.Types...)
	return out
}

// FindAccount looks up an account definition by exact name
func (i *Idl) FindAccount(name string) (TypeDef, bool) {
	return findDef(i.Accounts, name)
}

// FindType looks up a type definition by exact name
func (i *Idl) FindType(name string) (TypeDef, bool) {
	return findDef(i.Types, name)
}

// FindInstruction looks up an instruction by exact name
func (i *Idl) FindInstruction(name string) (Instruction, bool) {
	for _, ix := range i.Instructions {
		if ix.Name == name {
			return ix, true
		}
	}
	return Instruction{}, false
}

// Address returns the program address recorded in metadata, if any
func (i *Idl) Address() string {
	if i.Metadata == nil {
		return ""
	}
	return i.Metadata.Address
}

func findDef(defs []TypeDef, name string) (TypeDef, bool) {
	for _, d := range defs {
		if d.Name == name {
			return d, true
		}
	}
	return TypeDef{}, false
}

// StructDef builds a struct TypeDef
func StructDef(name string, fields ...Field) TypeDef {
	return TypeDef{Name: name, Type: TypeDefTy{Kind: KindStruct, Fields: fields}}
}

// EnumDef builds an enum TypeDef
func EnumDef(name string, variants ...EnumVariant) TypeDef {
	return TypeDef{Name: name, Type: TypeDefTy{Kind: KindEnum, Variants: variants}}
}

// F builds a Field
func F(name string, t Type) Field {
	return Field{Name: name, Type: t}
}

// UnitVariant builds a variant without fields
func UnitVariant(name string) EnumVariant {
	return EnumVariant{Name: name}
}

// NamedVariant builds a variant with named fields
func NamedVariant(name string, fields ...Field) EnumVariant {
	return EnumVariant{Name: name, Fields: &EnumFields{Named: fields}}
}

// TupleVariant builds a variant with positional fields
func TupleVariant(name string, types ...Type) EnumVariant {
	return EnumVariant{Name: name, Fields: &EnumFields{Tuple: types}}
}
