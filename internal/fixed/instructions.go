package fixed

import (
	"sort"

	idlcodec "github.com/wippyai/idl-codec"
	"github.com/wippyai/idl-codec/borsh"
	"github.com/wippyai/idl-codec/errors"
	"github.com/wippyai/idl-codec/idl"
)

// Instruction is one entry of a closed opcode table. Layout describes the
// arguments that follow the opcode.
type Instruction struct {
	Layout *borsh.Node
	Name   string
	Opcode uint32
}

// Instructions encodes opcode || args over a closed table.
// Safe for concurrent use.
type Instructions struct {
	byName  map[string]*Instruction
	byCode  map[uint32]*Instruction
	opcode  *borsh.Node
	enc     *borsh.Encoder
	dec     *borsh.Decoder
	program string
}

var _ idlcodec.InstructionCoder = (*Instructions)(nil)

// NewInstructions builds a table whose opcode is encoded as kind (u8 or u32).
func NewInstructions(program string, kind borsh.Kind, opts borsh.Options, table ...Instruction) *Instructions {
	r := &Instructions{
		byName:  make(map[string]*Instruction, len(table)),
		byCode:  make(map[uint32]*Instruction, len(table)),
		opcode:  borsh.Primitive(kind),
		enc:     borsh.NewEncoder(opts),
		dec:     borsh.NewDecoder(),
		program: program,
	}
	for i := range table {
		ix := &table[i]
		r.byName[idl.CamelCase(ix.Name)] = ix
		r.byCode[ix.Opcode] = ix
	}
	return r
}

// Encode packs the opcode of name followed by its arguments.
func (r *Instructions) Encode(name string, args any) ([]byte, error) {
	ix, ok := r.byName[idl.CamelCase(name)]
	if !ok {
		return nil, errors.UnknownIdentifier(errors.PhaseLookup, r.program+" instruction", name)
	}

	code, err := r.enc.Encode(r.opcode, ix.Opcode)
	if err != nil {
		return nil, err
	}
	if args == nil && len(ix.Layout.Fields) == 0 {
		return code, nil
	}

	payload, err := r.enc.EncodeWithCapacity(ix.Layout, args, capacity(ix.Layout, args))
	if err != nil {
		return nil, err
	}
	return append(code, payload...), nil
}

// Decode identifies an instruction by its opcode. Unknown opcodes yield nil.
func (r *Instructions) Decode(data []byte) (*idlcodec.Instruction, error) {
	width := r.opcode.Span
	if len(data) < width {
		return nil, nil
	}
	v, err := r.dec.Decode(r.opcode, data)
	if err != nil {
		return nil, err
	}
	var code uint32
	switch c := v.(type) {
	case uint8:
		code = uint32(c)
	case uint32:
		code = c
	}
	ix, ok := r.byCode[code]
	if !ok {
		return nil, nil
	}

	args, err := r.dec.Decode(ix.Layout, data[width:])
	if err != nil {
		return nil, err
	}
	fields, _ := args.(map[string]any)
	return &idlcodec.Instruction{Name: ix.Name, Data: fields}, nil
}

// Lookup returns the table entry for name.
func (r *Instructions) Lookup(name string) (Instruction, bool) {
	ix, ok := r.byName[idl.CamelCase(name)]
	if !ok {
		return Instruction{}, false
	}
	return *ix, true
}

// Names lists instructions in opcode order.
func (r *Instructions) Names() []string {
	codes := make([]uint32, 0, len(r.byCode))
	for c := range r.byCode {
		codes = append(codes, c)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })

	names := make([]string, len(codes))
	for i, c := range codes {
		names[i] = r.byCode[c].Name
	}
	return names
}

// capacity sizes the scratch buffer for one instruction: the exact span when
// known, otherwise the prefix span plus the lengths of the variable arguments.
func capacity(layout *borsh.Node, args any) int {
	if layout.HasSpan() {
		return layout.Span
	}
	prefix, err := borsh.PrefixSpan(layout)
	if err != nil {
		return borsh.MaxPacketSize
	}
	m, ok := borsh.FieldValues(args)
	if !ok {
		return borsh.MaxPacketSize
	}
	total := prefix
	for _, f := range layout.Fields {
		switch f.Node.Kind {
		case borsh.KindString, borsh.KindString64, borsh.KindBytes:
			n, _ := borsh.PayloadLen(f.Node.Kind, m[f.Name])
			total += n
		default:
			if !f.Node.HasSpan() {
				return borsh.MaxPacketSize
			}
		}
	}
	return total
}
