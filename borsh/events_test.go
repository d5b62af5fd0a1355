package borsh

import (
	"encoding/base64"
	"testing"

	"github.com/wippyai/idl-codec/idl"
)

func TestEventsRoundTrip(t *testing.T) {
	c, err := NewEventsWithDefaults(widgetsDoc(t))
	if err != nil {
		t.Fatalf("NewEvents failed: %v", err)
	}

	data, err := c.Encode("Transferred", map[string]any{"from": testOwner, "amount": 12})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	encoded := base64.StdEncoding.EncodeToString(data)

	for _, line := range []string{encoded, ProgramDataPrefix + encoded} {
		ev, err := c.Decode(line)
		if err != nil {
			t.Fatalf("Decode failed: %v", err)
		}
		if ev == nil || ev.Name != "Transferred" {
			t.Fatalf("Decode = %+v", ev)
		}
		if ev.Data["from"] != testOwner || ev.Data["amount"] != uint64(12) {
			t.Errorf("Data = %v", ev.Data)
		}
	}
}

func TestEventsUnknown(t *testing.T) {
	c, err := NewEventsWithDefaults(widgetsDoc(t))
	if err != nil {
		t.Fatalf("NewEvents failed: %v", err)
	}

	lines := []string{
		"Program log: Instruction: Transfer",
		ProgramDataPrefix + base64.StdEncoding.EncodeToString([]byte("0123456789")),
		ProgramDataPrefix + "AQID",
		"",
	}
	for _, line := range lines {
		ev, err := c.Decode(line)
		if ev != nil || err != nil {
			t.Errorf("Decode(%q) = %+v, %v; want nil, nil", line, ev, err)
		}
	}
}

func TestNewCoder(t *testing.T) {
	c, err := NewWithDefaults(widgetsDoc(t))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if c.Instruction == nil || c.Accounts == nil || c.Types == nil {
		t.Fatal("missing coder")
	}
	if c.State == nil || c.State.Name() != "Counter" {
		t.Errorf("State = %v", c.State)
	}
	if c.Events == nil {
		t.Error("Events missing")
	}

	bare, err := NewWithDefaults(&idl.Idl{Name: "bare"})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if bare.State != nil || bare.Events != nil {
		t.Errorf("bare coder has State=%v Events=%v", bare.State, bare.Events)
	}
}
