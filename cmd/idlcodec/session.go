package main

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	idlcodec "github.com/wippyai/idl-codec"
	"github.com/wippyai/idl-codec/borsh"
	"github.com/wippyai/idl-codec/coder"
	"github.com/wippyai/idl-codec/idl"
	"github.com/wippyai/idl-codec/internal/fixed"
	"github.com/wippyai/idl-codec/spltoken"
	"github.com/wippyai/idl-codec/system"
)

// Record kinds selectable with --kind.
const (
	kindAccount     = "account"
	kindInstruction = "instruction"
	kindType        = "type"
	kindState       = "state"
	kindEvent       = "event"
)

var builtins = map[string]func() *idl.Idl{
	system.ProgramID:   system.IDL,
	spltoken.ProgramID: spltoken.IDL,
}

var aliases = map[string]string{
	"system":    system.ProgramID,
	"spl-token": spltoken.ProgramID,
	"token":     spltoken.ProgramID,
}

type layouts interface {
	Layout(name string) (*borsh.Node, bool)
}

type session struct {
	coder   *idlcodec.Coder
	schema  *idl.Idl
	program string
}

func open(cfg config) (*session, error) {
	program := cfg.program
	if id, ok := aliases[program]; ok {
		program = id
	}

	var schema *idl.Idl
	switch {
	case cfg.idlPath != "":
		doc, err := idl.ReadFile(cfg.idlPath)
		if err != nil {
			return nil, err
		}
		schema = doc
		if program == "" {
			program = doc.Address()
		}
	case builtins[program] != nil:
		schema = builtins[program]()
	case program == "":
		return nil, fmt.Errorf("one of --idl or --program is required")
	}

	c, err := coder.New(program, schema, borsh.DefaultOptions())
	if err != nil {
		return nil, err
	}
	if schema == nil {
		return nil, fmt.Errorf("program %s has no IDL to inspect", program)
	}
	return &session{coder: c, schema: schema, program: program}, nil
}

func (s *session) fixed() bool {
	_, ok := coder.Lookup(s.program)
	return ok
}

func (s *session) encode(kind, name string, value any) ([]byte, error) {
	switch kind {
	case kindAccount:
		return s.coder.Accounts.Encode(name, value)
	case kindInstruction:
		return s.coder.Instruction.Encode(name, value)
	case kindType:
		return s.coder.Types.Encode(name, value)
	case kindState:
		if s.coder.State == nil {
			return nil, fmt.Errorf("program defines no state")
		}
		return s.coder.State.Encode(value)
	case kindEvent:
		ev, ok := s.coder.Events.(interface {
			Encode(name string, value any) ([]byte, error)
		})
		if !ok {
			return nil, fmt.Errorf("program defines no events")
		}
		return ev.Encode(name, value)
	}
	return nil, unknownKind(kind)
}

// decode ignores name for instructions, state and events, which identify
// themselves from their leading bytes.
func (s *session) decode(kind, name string, data []byte) (any, error) {
	switch kind {
	case kindAccount:
		return s.coder.Accounts.Decode(name, data)
	case kindType:
		return s.coder.Types.Decode(name, data)
	case kindState:
		if s.coder.State == nil {
			return nil, fmt.Errorf("program defines no state")
		}
		return s.coder.State.Decode(data)
	case kindInstruction:
		ix, err := s.coder.Instruction.Decode(data)
		if err != nil {
			return nil, err
		}
		if ix == nil {
			return nil, fmt.Errorf("data matches no instruction")
		}
		return ix, nil
	case kindEvent:
		if s.coder.Events == nil {
			return nil, fmt.Errorf("program defines no events")
		}
		ev, err := s.coder.Events.Decode(borsh.ProgramDataPrefix + base64.StdEncoding.EncodeToString(data))
		if err != nil {
			return nil, err
		}
		if ev == nil {
			return nil, fmt.Errorf("log matches no event")
		}
		return ev, nil
	}
	return nil, unknownKind(kind)
}

// discriminator returns the leading bytes that identify name, hex encoded.
// Fixed-format instructions report their opcode instead.
func (s *session) discriminator(kind, name string) (string, error) {
	if ix, ok := s.coder.Instruction.(*fixed.Instructions); ok && kind == kindInstruction {
		op, found := ix.Lookup(name)
		if !found {
			return "", fmt.Errorf("unknown instruction %q", name)
		}
		return fmt.Sprintf("opcode %d", op.Opcode), nil
	}
	if s.fixed() {
		return "", fmt.Errorf("fixed-format %ss carry no discriminator", kind)
	}

	var disc [borsh.DiscriminatorSize]byte
	var err error
	switch kind {
	case kindAccount:
		accounts, ok := s.coder.Accounts.(*borsh.AccountsCoder)
		if !ok {
			return "", fmt.Errorf("accounts carry no discriminator")
		}
		disc, err = accounts.Discriminator(name)
	case kindInstruction:
		ix, ok := s.coder.Instruction.(*borsh.InstructionCoder)
		if !ok {
			return "", fmt.Errorf("instructions carry no discriminator")
		}
		disc, err = ix.Sighash(name)
	case kindState:
		st, ok := s.coder.State.(*borsh.StateCoder)
		if !ok {
			return "", fmt.Errorf("program defines no state")
		}
		disc = st.Discriminator()
	case kindEvent:
		disc = borsh.EventDiscriminator(name)
	case kindType:
		return "", fmt.Errorf("types carry no discriminator")
	default:
		return "", unknownKind(kind)
	}
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(disc[:]), nil
}

func (s *session) layout(kind, name string) (*borsh.Node, bool) {
	switch kind {
	case kindAccount:
		if l, ok := s.coder.Accounts.(layouts); ok {
			return l.Layout(name)
		}
	case kindType:
		if l, ok := s.coder.Types.(layouts); ok {
			return l.Layout(name)
		}
	case kindInstruction:
		switch c := s.coder.Instruction.(type) {
		case *fixed.Instructions:
			ix, ok := c.Lookup(name)
			return ix.Layout, ok
		case *borsh.InstructionCoder:
			return c.Layout(name)
		}
	case kindState:
		if st, ok := s.coder.State.(*borsh.StateCoder); ok {
			return st.Layout(), true
		}
	}
	return nil, false
}

type sizeInfo struct {
	Span          *int   `json:"span,omitempty" yaml:"span,omitempty"`
	Name          string `json:"name" yaml:"name"`
	Declared      int    `json:"declared,omitempty" yaml:"declared,omitempty"`
	Prefix        int    `json:"prefix" yaml:"prefix"`
	Indeterminate bool   `json:"indeterminate,omitempty" yaml:"indeterminate,omitempty"`
}

// size reports the declared size of accounts, types and state, and the exact
// payload span of any layout whose width is static.
func (s *session) size(kind, name string) (sizeInfo, error) {
	info := sizeInfo{Name: name}

	switch kind {
	case kindAccount:
		def, ok := s.schema.FindAccount(name)
		if !ok {
			return info, fmt.Errorf("unknown account %q", name)
		}
		n, err := s.coder.Accounts.Size(def)
		if err != nil {
			return info, err
		}
		info.Declared = n
	case kindType:
		def, ok := s.schema.FindType(name)
		if !ok {
			return info, fmt.Errorf("unknown type %q", name)
		}
		n, err := borsh.DeclaredSize(s.schema.TypeTable(), def)
		if err != nil {
			return info, err
		}
		info.Declared = n
	case kindState:
		if s.coder.State == nil {
			return info, fmt.Errorf("program defines no state")
		}
		n, err := s.coder.State.Size()
		if err != nil {
			return info, err
		}
		info.Name = s.coder.State.Name()
		info.Declared = n
	case kindInstruction:
	default:
		return info, unknownKind(kind)
	}

	node, ok := s.layout(kind, name)
	if !ok {
		return info, fmt.Errorf("unknown %s %q", kind, name)
	}
	if span, err := borsh.Span(node); err == nil {
		info.Span = &span
	} else {
		info.Indeterminate = true
	}
	if prefix, err := borsh.PrefixSpan(node); err == nil {
		info.Prefix = prefix
	}
	return info, nil
}

func (s *session) memcmp(kind, name string, extra []byte) (idlcodec.MemcmpFilter, error) {
	switch kind {
	case kindAccount:
		return s.coder.Accounts.Memcmp(name, extra)
	case kindState:
		if s.coder.State == nil {
			return idlcodec.MemcmpFilter{}, fmt.Errorf("program defines no state")
		}
		return s.coder.State.Memcmp(extra)
	}
	return idlcodec.MemcmpFilter{}, fmt.Errorf("memcmp filters apply to accounts and state, not %ss", kind)
}

type listing struct {
	Program      string   `json:"program,omitempty" yaml:"program,omitempty"`
	Name         string   `json:"name" yaml:"name"`
	State        string   `json:"state,omitempty" yaml:"state,omitempty"`
	Instructions []string `json:"instructions" yaml:"instructions"`
	Accounts     []string `json:"accounts,omitempty" yaml:"accounts,omitempty"`
	Types        []string `json:"types,omitempty" yaml:"types,omitempty"`
	Events       []string `json:"events,omitempty" yaml:"events,omitempty"`
}

func (s *session) list() listing {
	l := listing{Program: s.program, Name: s.schema.Name}
	for _, ix := range s.schema.Instructions {
		l.Instructions = append(l.Instructions, ix.Name)
	}
	for _, d := range s.schema.Accounts {
		l.Accounts = append(l.Accounts, d.Name)
	}
	for _, d := range s.schema.Types {
		l.Types = append(l.Types, d.Name)
	}
	for _, e := range s.schema.Events {
		l.Events = append(l.Events, e.Name)
	}
	if s.schema.State != nil {
		l.State = s.schema.State.Struct.Name
	}
	return l
}

func unknownKind(kind string) error {
	return fmt.Errorf("unknown kind %q (want %s)", kind, strings.Join([]string{
		kindAccount, kindInstruction, kindType, kindState, kindEvent,
	}, ", "))
}
