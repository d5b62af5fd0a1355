package borsh

import (
	"encoding/base64"
	"strings"

	idlcodec "github.com/wippyai/idl-codec"
	"github.com/wippyai/idl-codec/errors"
	"github.com/wippyai/idl-codec/idl"
)

// ProgramDataPrefix introduces event payloads in program logs.
const ProgramDataPrefix = "Program data: "

// EventCoder decodes base64 event payloads found in program logs.
// Safe for concurrent use.
type EventCoder struct {
	layouts *registry
	byDisc  map[[DiscriminatorSize]byte]*record
	enc     *Encoder
	dec     *Decoder
}

var _ idlcodec.EventCoder = (*EventCoder)(nil)

// NewEvents compiles every event of doc.
func NewEvents(doc *idl.Idl, opts Options) (*EventCoder, error) {
	compiler := NewCompiler(doc.TypeTable())
	c := &EventCoder{
		layouts: newRegistry("event", idl.PascalCase, len(doc.Events)),
		byDisc:  make(map[[DiscriminatorSize]byte]*record, len(doc.Events)),
		enc:     NewEncoder(opts),
		dec:     NewDecoder(),
	}
	for _, ev := range doc.Events {
		fields := make([]idl.Field, len(ev.Fields))
		for i, f := range ev.Fields {
			fields[i] = idl.F(f.Name, f.Type)
		}
		node, err := compiler.CompileStruct(ev.Name, fields)
		if err != nil {
			return nil, err
		}
		rec := &record{node: node, def: idl.StructDef(ev.Name, fields...), disc: EventDiscriminator(ev.Name)}
		if err := c.layouts.add(ev.Name, rec); err != nil {
			return nil, err
		}
		c.byDisc[rec.disc] = rec
	}
	return c, nil
}

// NewEventsWithDefaults creates an event coder with default options.
func NewEventsWithDefaults(doc *idl.Idl) (*EventCoder, error) {
	return NewEvents(doc, DefaultOptions())
}

// Encode returns discriminator || payload for an event.
func (c *EventCoder) Encode(name string, value any) ([]byte, error) {
	rec, ok := c.layouts.find(name)
	if !ok {
		return nil, errors.UnknownIdentifier(errors.PhaseLookup, "event", name)
	}
	payload, err := c.enc.Encode(rec.node, value)
	if err != nil {
		return nil, err
	}
	return prefixed(rec.disc, payload), nil
}

// Decode parses a log line, with or without the "Program data: " prefix.
// Lines that are not base64 or carry no known event yield nil.
func (c *EventCoder) Decode(log string) (*idlcodec.Event, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(log, ProgramDataPrefix))
	if err != nil || len(raw) < DiscriminatorSize {
		return nil, nil
	}
	var disc [DiscriminatorSize]byte
	copy(disc[:], raw)
	rec, ok := c.byDisc[disc]
	if !ok {
		return nil, nil
	}
	data, err := decodeMap(c.dec, rec.node, raw[DiscriminatorSize:])
	if err != nil {
		return nil, err
	}
	return &idlcodec.Event{Name: rec.def.Name, Data: data}, nil
}

// Names lists known events in sorted order.
func (c *EventCoder) Names() []string {
	return c.layouts.names()
}
