package idlcodec

import "github.com/wippyai/idl-codec/idl"

// AccountsCoder encodes and decodes persistent account records
type AccountsCoder interface {
	Encode(name string, value any) ([]byte, error)
	Decode(name string, data []byte) (map[string]any, error)
	DecodeUnchecked(name string, data []byte) (map[string]any, error)
	Memcmp(name string, extra []byte) (MemcmpFilter, error)
	Size(def idl.TypeDef) (int, error)
}

// InstructionCoder encodes instruction arguments and identifies encoded instructions.
// Decode returns nil without error when the data does not belong to any known instruction.
type InstructionCoder interface {
	Encode(name string, args any) ([]byte, error)
	Decode(data []byte) (*Instruction, error)
}

// StateCoder handles the single legacy state record of a program
type StateCoder interface {
	Name() string
	Encode(value any) ([]byte, error)
	Decode(data []byte) (map[string]any, error)
	DecodeUnchecked(data []byte) (map[string]any, error)
	Memcmp(extra []byte) (MemcmpFilter, error)
	Size() (int, error)
}

// TypesCoder encodes free-standing named types with no discriminator
type TypesCoder interface {
	Encode(name string, value any) ([]byte, error)
	Decode(name string, data []byte) (map[string]any, error)
}

// EventCoder decodes events emitted in program logs.
// Decode returns nil without error for lines that carry no known event.
type EventCoder interface {
	Decode(log string) (*Event, error)
}

// Coder is the uniform handle over one program's binary formats.
// State and Events are nil when the program defines none.
type Coder struct {
	Instruction InstructionCoder
	Accounts    AccountsCoder
	State       StateCoder
	Types       TypesCoder
	Events      EventCoder
}

// Instruction is a decoded instruction payload
type Instruction struct {
	Data map[string]any `json:"data" yaml:"data"`
	Name string         `json:"name" yaml:"name"`
}

// Event is a decoded program event
type Event struct {
	Data map[string]any `json:"data" yaml:"data"`
	Name string         `json:"name" yaml:"name"`
}

// MemcmpFilter describes how to locate records of one type in opaque storage.
// Schema-backed records compare Bytes at Offset; fixed-format records match
// on DataSize alone and leave Offset nil.
type MemcmpFilter struct {
	Offset   *int   `json:"offset,omitempty" yaml:"offset,omitempty"`
	Bytes    string `json:"bytes,omitempty" yaml:"bytes,omitempty"`
	DataSize int    `json:"dataSize,omitempty" yaml:"dataSize,omitempty"`
}

// LeadingBytes returns a filter comparing b against the start of a record.
func LeadingBytes(b string) MemcmpFilter {
	offset := 0
	return MemcmpFilter{Offset: &offset, Bytes: b}
}
