package coder

import (
	stderrors "errors"
	"reflect"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	idlcodec "github.com/wippyai/idl-codec"
	"github.com/wippyai/idl-codec/borsh"
	"github.com/wippyai/idl-codec/errors"
	"github.com/wippyai/idl-codec/idl"
	"github.com/wippyai/idl-codec/spltoken"
	"github.com/wippyai/idl-codec/system"
)

const counterIDL = `{
  "version": "0.1.0",
  "name": "counter",
  "instructions": [{"name": "increment", "accounts": [], "args": [{"name": "by", "type": "u64"}]}],
  "accounts": [
    {"name": "Counter", "type": {"kind": "struct", "fields": [{"name": "count", "type": "u64"}]}}
  ],
  "metadata": {"address": "Fg6PaFpoGXkYsidMpWTK6W2BeZ7FEfcYkg476zPFsLnS"}
}`

func counterDoc(t *testing.T) *idl.Idl {
	t.Helper()
	doc, err := idl.Parse([]byte(counterIDL))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return doc
}

func TestNewSelectsFixedFormats(t *testing.T) {
	tests := []struct {
		programID string
		account   string
		size      int
	}{
		{system.ProgramID, "nonce", system.NonceAccountSize},
		{spltoken.ProgramID, "token", spltoken.AccountSize},
		{spltoken.ProgramID, "mint", spltoken.MintSize},
	}

	for _, tc := range tests {
		t.Run(tc.account, func(t *testing.T) {
			c, err := NewWithDefaults(tc.programID, nil)
			if err != nil {
				t.Fatalf("New failed: %v", err)
			}
			f, err := c.Accounts.Memcmp(tc.account, nil)
			if err != nil {
				t.Fatalf("Memcmp failed: %v", err)
			}
			if f.DataSize != tc.size {
				t.Errorf("DataSize = %d, want %d", f.DataSize, tc.size)
			}
		})
	}
}

func TestNewSchemaDriven(t *testing.T) {
	doc := counterDoc(t)

	c, err := ForIDL(doc, borsh.DefaultOptions())
	if err != nil {
		t.Fatalf("ForIDL failed: %v", err)
	}
	data, err := c.Accounts.Encode("Counter", map[string]any{"count": 7})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if len(data) != 16 {
		t.Errorf("len = %d, want 16", len(data))
	}
	got, err := c.Accounts.Decode("Counter", data)
	if err != nil || got["count"] != uint64(7) {
		t.Errorf("Decode = %v, %v", got, err)
	}

	ixData, err := c.Instruction.Encode("increment", map[string]any{"by": 1})
	if err != nil {
		t.Fatalf("Instruction.Encode failed: %v", err)
	}
	ix, err := c.Instruction.Decode(ixData)
	if err != nil || ix == nil || ix.Name != "increment" {
		t.Errorf("Instruction.Decode = %+v, %v", ix, err)
	}
}

func TestNewUnknownProgram(t *testing.T) {
	_, err := NewWithDefaults("Unknown1111111111111111111111111111111111", nil)
	if !stderrors.Is(err, errors.ErrUnknownIdentifier) {
		t.Errorf("New = %v, want unknown identifier", err)
	}
}

func TestForIDLWithoutSchema(t *testing.T) {
	c, err := ForIDL(nil, borsh.DefaultOptions())
	if c != nil || !stderrors.Is(err, errors.ErrUnknownIdentifier) {
		t.Errorf("ForIDL(nil) = %v, %v, want unknown identifier", c, err)
	}
}

func TestRegister(t *testing.T) {
	const id = "Custom11111111111111111111111111111111111"
	called := false
	Register(id, func(schema *idl.Idl, opts borsh.Options) (*idlcodec.Coder, error) {
		called = true
		return borsh.New(schema, opts)
	})
	defer func() {
		registryMu.Lock()
		delete(registry, id)
		registryMu.Unlock()
	}()

	if _, err := NewWithDefaults(id, counterDoc(t)); err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if !called {
		t.Error("registered factory not used")
	}

	want := []string{system.ProgramID, id, spltoken.ProgramID}
	if got := Registered(); !reflect.DeepEqual(got, want) {
		t.Errorf("Registered = %v, want %v", got, want)
	}
}

func TestSelectionIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))
	defer SetLogger(nil)

	if _, err := NewWithDefaults(system.ProgramID, nil); err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if logs.FilterMessage("using fixed-format codec").Len() != 1 {
		t.Errorf("entries = %v", logs.All())
	}
}
