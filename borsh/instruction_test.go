package borsh

import (
	"bytes"
	"encoding/hex"
	stderrors "errors"
	"reflect"
	"testing"

	"github.com/wippyai/idl-codec/errors"
)

func newInstructions(t *testing.T) *InstructionCoder {
	t.Helper()
	c, err := NewInstructionsWithDefaults(widgetsDoc(t))
	if err != nil {
		t.Fatalf("NewInstructions failed: %v", err)
	}
	return c
}

func TestInstructionEncode(t *testing.T) {
	c := newInstructions(t)

	tests := []struct {
		args any
		name string
		hex  string
	}{
		{nil, "initialize", "afaf6d1f0d989bed"},
		{map[string]any{"data": 5, "label": "x"}, "setData", "df725b88c54e9999 0500000000000000 01000000 78"},
		{map[string]any{"data": 5, "label": "x"}, "set_data", "df725b88c54e9999 0500000000000000 01000000 78"},
		{map[string]any{"mode": "Off"}, "configure", hexSighash("configure") + " 00 00"},
		{map[string]any{"mode": map[string]any{"limited": map[string]any{"max": 2}}, "limit": 10}, "configure", hexSighash("configure") + " 01 0200 01 0a000000"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			data, err := c.Encode(tc.name, tc.args)
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			if want := mustHex(t, tc.hex); !bytes.Equal(data, want) {
				t.Errorf("Encode = %x, want %x", data, want)
			}
		})
	}
}

func hexSighash(name string) string {
	s := Sighash(NamespaceGlobal, name)
	return hex.EncodeToString(s[:])
}

func TestInstructionDecode(t *testing.T) {
	c := newInstructions(t)

	data, err := c.Encode("setData", map[string]any{"data": 5, "label": "x"})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	ix, err := c.Decode(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if ix == nil || ix.Name != "setData" {
		t.Fatalf("Decode = %+v", ix)
	}
	if want := map[string]any{"data": uint64(5), "label": "x"}; !reflect.DeepEqual(ix.Data, want) {
		t.Errorf("Data = %#v, want %#v", ix.Data, want)
	}

	state, err := c.EncodeState("increment", map[string]any{"by": 2})
	if err != nil {
		t.Fatalf("EncodeState failed: %v", err)
	}
	if want := mustHex(t, "5e7a79b074288071 0200000000000000"); !bytes.Equal(state, want) {
		t.Errorf("EncodeState = %x, want %x", state, want)
	}
	ix, err = c.Decode(state)
	if err != nil || ix == nil || ix.Name != "increment" {
		t.Errorf("Decode state method = %+v, %v", ix, err)
	}

	for _, unknown := range [][]byte{nil, {1, 2, 3}, make([]byte, 16)} {
		ix, err := c.Decode(unknown)
		if ix != nil || err != nil {
			t.Errorf("Decode(%x) = %+v, %v; want nil, nil", unknown, ix, err)
		}
	}
}

func TestInstructionErrors(t *testing.T) {
	c := newInstructions(t)

	if _, err := c.Encode("explode", nil); !stderrors.Is(err, errors.ErrUnknownIdentifier) {
		t.Errorf("Encode unknown = %v", err)
	}
	if _, err := c.Encode("increment", map[string]any{"by": 1}); !stderrors.Is(err, errors.ErrUnknownIdentifier) {
		t.Errorf("state methods are not global instructions: %v", err)
	}
	if _, err := c.Encode("setData", map[string]any{"data": 5}); !stderrors.Is(err, &errors.Error{Kind: errors.KindFieldMissing}) {
		t.Errorf("missing argument = %v", err)
	}

	// a known tag followed by a truncated payload is an error, not an unknown instruction
	sig, _ := c.Sighash("setData")
	if _, err := c.Decode(append(sig[:], 1)); !stderrors.Is(err, &errors.Error{Kind: errors.KindOutOfBounds}) {
		t.Errorf("Decode truncated = %v", err)
	}

	if got := c.Names(); !reflect.DeepEqual(got, []string{"configure", "initialize", "setData"}) {
		t.Errorf("Names = %v", got)
	}
}
