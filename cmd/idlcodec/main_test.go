package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wippyai/idl-codec/spltoken"
	"github.com/wippyai/idl-codec/system"
)

const counterIDL = `{
  "version": "0.1.0",
  "name": "counter",
  "instructions": [
    {"name": "initialize", "accounts": [], "args": []},
    {"name": "setLabel", "accounts": [], "args": [{"name": "label", "type": "string"}]}
  ],
  "accounts": [
    {"name": "Counter", "type": {"kind": "struct", "fields": [{"name": "count", "type": "u64"}]}}
  ],
  "types": [
    {"name": "Mode", "type": {"kind": "enum", "variants": [{"name": "Off"}, {"name": "On"}]}}
  ],
  "events": [
    {"name": "Transferred", "fields": [{"name": "amount", "type": "u64", "index": false}]}
  ]
}`

func writeIDL(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "counter.json")
	if err := os.WriteFile(path, []byte(counterIDL), 0o600); err != nil {
		t.Fatalf("write IDL: %v", err)
	}
	return path
}

func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(args, strings.NewReader(stdin), &stdout, &stderr)
	return stdout.String(), err
}

func TestEncodeDecode(t *testing.T) {
	idlPath := writeIDL(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "system transfer",
			args: []string{"--program", "system", "-k", "instruction", "encode", "transfer", `{"lamports": 1000}`},
			want: "02000000e803000000000000\n",
		},
		{
			name: "token transfer",
			args: []string{"--program", spltoken.ProgramID, "-k", "instruction", "encode", "transfer", `{"amount": 5}`},
			want: "030500000000000000\n",
		},
		{
			name: "account",
			args: []string{"--idl", idlPath, "encode", "Counter", `{"count": 5}`},
			want: "ffb004f5bcfd7c190500000000000000\n",
		},
		{
			name: "instruction without args",
			args: []string{"--idl", idlPath, "-k", "instruction", "encode", "initialize"},
			want: "afaf6d1f0d989bed\n",
		},
		{
			name: "type",
			args: []string{"--idl", idlPath, "-k", "type", "encode", "Mode", `"On"`},
			want: "01\n",
		},
		{
			name: "event",
			args: []string{"--idl", idlPath, "-k", "event", "encode", "Transferred", `{"amount": 1}`},
			want: "1584ef4092efa6440100000000000000\n",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := runCLI(t, "", tc.args...)
			if err != nil {
				t.Fatalf("run failed: %v", err)
			}
			if got != tc.want {
				t.Errorf("output = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestEncodeFromStdin(t *testing.T) {
	got, err := runCLI(t, `{"count": 5}`, "--idl", writeIDL(t), "encode", "Counter", "-")
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if got != "ffb004f5bcfd7c190500000000000000\n" {
		t.Errorf("output = %q", got)
	}
}

func TestDecodeInstruction(t *testing.T) {
	out, err := runCLI(t, "", "--program", "system", "-k", "instruction", "decode", "0x02000000e803000000000000")
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	var got struct {
		Data map[string]any `json:"data"`
		Name string         `json:"name"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if got.Name != "transfer" || got.Data["lamports"] != float64(1000) {
		t.Errorf("decoded = %+v", got)
	}
}

func TestDecodeEvent(t *testing.T) {
	out, err := runCLI(t, "", "--idl", writeIDL(t), "-k", "event", "decode", "1584ef4092efa6440700000000000000")
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !strings.Contains(out, `"name": "Transferred"`) || !strings.Contains(out, `"amount": 7`) {
		t.Errorf("output = %s", out)
	}
}

func TestDecodeYAML(t *testing.T) {
	out, err := runCLI(t, "", "--idl", writeIDL(t), "-o", "yaml", "decode", "Counter", "ffb004f5bcfd7c190500000000000000")
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if out != "count: 5\n" {
		t.Errorf("output = %q", out)
	}
}

func TestDiscriminator(t *testing.T) {
	idlPath := writeIDL(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"account", []string{"--idl", idlPath, "discriminator", "Counter"}, "ffb004f5bcfd7c19\n"},
		{"instruction", []string{"--idl", idlPath, "-k", "instruction", "discriminator", "initialize"}, "afaf6d1f0d989bed\n"},
		{"event", []string{"--idl", idlPath, "-k", "event", "discriminator", "Transferred"}, "1584ef4092efa644\n"},
		{"fixed opcode", []string{"--program", "system", "-k", "instruction", "discriminator", "transfer"}, "opcode 2\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := runCLI(t, "", tc.args...)
			if err != nil {
				t.Fatalf("run failed: %v", err)
			}
			if got != tc.want {
				t.Errorf("output = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestSize(t *testing.T) {
	tests := []struct {
		name          string
		args          []string
		declared      int
		span          int
		indeterminate bool
	}{
		{"mint", []string{"--program", "spl-token", "size", "mint"}, spltoken.MintSize, spltoken.MintSize, false},
		{"nonce", []string{"--program", "system", "size", "nonce"}, system.NonceAccountSize, system.NonceAccountSize, false},
		{"seeded instruction", []string{"--program", "system", "-k", "instruction", "size", "allocateWithSeed"}, 0, 0, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out, err := runCLI(t, "", tc.args...)
			if err != nil {
				t.Fatalf("run failed: %v", err)
			}
			var got struct {
				Span          *int `json:"span"`
				Declared      int  `json:"declared"`
				Indeterminate bool `json:"indeterminate"`
			}
			if err := json.Unmarshal([]byte(out), &got); err != nil {
				t.Fatalf("output is not JSON: %v", err)
			}
			if got.Declared != tc.declared || got.Indeterminate != tc.indeterminate {
				t.Errorf("size = %s", out)
			}
			if !tc.indeterminate && (got.Span == nil || *got.Span != tc.span) {
				t.Errorf("span = %s", out)
			}
		})
	}
}

func TestMemcmp(t *testing.T) {
	out, err := runCLI(t, "", "--program", "spl-token", "memcmp", "token")
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !strings.Contains(out, `"dataSize": 165`) || strings.Contains(out, "offset") {
		t.Errorf("output = %s", out)
	}

	out, err = runCLI(t, "", "--idl", writeIDL(t), "memcmp", "Counter")
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !strings.Contains(out, `"offset": 0`) || !strings.Contains(out, `"bytes"`) {
		t.Errorf("output = %s", out)
	}
}

func TestListAndInspectWithoutTerminal(t *testing.T) {
	for _, cmd := range []string{"list", "inspect"} {
		t.Run(cmd, func(t *testing.T) {
			out, err := runCLI(t, "", "--idl", writeIDL(t), cmd)
			if err != nil {
				t.Fatalf("run failed: %v", err)
			}
			var got listing
			if err := json.Unmarshal([]byte(out), &got); err != nil {
				t.Fatalf("output is not JSON: %v", err)
			}
			if got.Name != "counter" || len(got.Instructions) != 2 || len(got.Accounts) != 1 || len(got.Events) != 1 {
				t.Errorf("listing = %+v", got)
			}
		})
	}
}

func TestErrors(t *testing.T) {
	idlPath := writeIDL(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no command", []string{"--idl", idlPath}, "missing command"},
		{"unknown command", []string{"--idl", idlPath, "frobnicate"}, "unknown command"},
		{"no source", []string{"list"}, "--idl or --program"},
		{"unknown kind", []string{"--idl", idlPath, "-k", "widget", "encode", "Counter", "{}"}, "unknown kind"},
		{"bad hex", []string{"--idl", idlPath, "decode", "Counter", "zz"}, "parse hex"},
		{"bad json", []string{"--idl", idlPath, "encode", "Counter", "{"}, "parse value"},
		{"bad format", []string{"--idl", idlPath, "-o", "toml", "list"}, "unknown output format"},
		{"types have no discriminator", []string{"--idl", idlPath, "-k", "type", "discriminator", "Mode"}, "no discriminator"},
		{"unknown instruction", []string{"--idl", idlPath, "-k", "instruction", "decode", "0000000000000000"}, "matches no instruction"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := runCLI(t, "", tc.args...)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Errorf("err = %v, want %q", err, tc.want)
			}
		})
	}
}

func TestCatalog(t *testing.T) {
	s, err := open(config{program: "system"})
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}

	entries := catalog(s)
	var transfer, nonce *entry
	for i := range entries {
		switch entries[i].name {
		case "transfer":
			transfer = &entries[i]
		case "nonce":
			nonce = &entries[i]
		}
	}
	if transfer == nil || nonce == nil {
		t.Fatalf("catalog = %+v", entries)
	}
	if transfer.discriminator != "opcode 2" || transfer.size != "8 bytes" {
		t.Errorf("transfer = %+v", *transfer)
	}
	if nonce.kind != kindAccount || nonce.size != "80 bytes, declared 80" {
		t.Errorf("nonce = %+v", *nonce)
	}
	if got := placeholder(transfer.layout); got != `{"lamports": u64}` {
		t.Errorf("placeholder = %q", got)
	}
}
