package coder

import (
	"sort"
	"sync"

	"go.uber.org/zap"

	idlcodec "github.com/wippyai/idl-codec"
	"github.com/wippyai/idl-codec/borsh"
	"github.com/wippyai/idl-codec/errors"
	"github.com/wippyai/idl-codec/idl"
	"github.com/wippyai/idl-codec/spltoken"
	"github.com/wippyai/idl-codec/system"
)

// Factory builds the codec family of a fixed-format program. schema is the
// caller's IDL and may be nil.
type Factory func(schema *idl.Idl, opts borsh.Options) (*idlcodec.Coder, error)

var (
	registryMu sync.RWMutex
	registry   = map[string]Factory{
		system.ProgramID: func(_ *idl.Idl, opts borsh.Options) (*idlcodec.Coder, error) {
			return system.New(opts)
		},
		spltoken.ProgramID: func(_ *idl.Idl, opts borsh.Options) (*idlcodec.Coder, error) {
			return spltoken.New(opts)
		},
	}
)

// Register installs a fixed-format factory for programID, replacing any
// existing one.
func Register(programID string, f Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[programID] = f
}

// Registered lists program IDs with a fixed-format codec, sorted.
func Registered() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	ids := make([]string, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Lookup returns the fixed-format factory for programID.
func Lookup(programID string) (Factory, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	f, ok := registry[programID]
	return f, ok
}

// New returns the codec family for programID: the registered fixed format
// when there is one, otherwise the schema-driven codecs over schema.
func New(programID string, schema *idl.Idl, opts borsh.Options) (*idlcodec.Coder, error) {
	if f, ok := Lookup(programID); ok {
		Logger().Debug("using fixed-format codec", zap.String("program", programID))
		return f(schema, opts)
	}
	if schema == nil {
		return nil, errors.New(errors.PhaseLookup, errors.KindUnknownIdentifier).
			Name(programID).
			Detail("no fixed-format codec for program and no IDL given").
			Build()
	}

	Logger().Debug("using schema-driven codec",
		zap.String("program", programID),
		zap.String("idl", schema.Name))
	return borsh.New(schema, opts)
}

// NewWithDefaults is New with default options.
func NewWithDefaults(programID string, schema *idl.Idl) (*idlcodec.Coder, error) {
	return New(programID, schema, borsh.DefaultOptions())
}

// ForIDL selects by the program address recorded in schema's metadata.
func ForIDL(schema *idl.Idl, opts borsh.Options) (*idlcodec.Coder, error) {
	if schema == nil {
		return nil, errors.New(errors.PhaseLookup, errors.KindUnknownIdentifier).
			Detail("no IDL given").
			Build()
	}
	return New(schema.Address(), schema, opts)
}
