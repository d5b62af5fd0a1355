package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"os"
	"strings"

	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	idlcodec "github.com/wippyai/idl-codec"
)

func render(w io.Writer, format string, v any) error {
	v = plain(v)
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown output format %q (want json or yaml)", format)
}

// plain converts decoded values to text-friendly forms: public keys as
// base58, bytes as hex and 128-bit integers as decimal strings.
func plain(v any) any {
	switch x := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = plain(e)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = plain(e)
		}
		return out
	case []byte:
		return hex.EncodeToString(x)
	case idlcodec.PublicKey:
		return x.String()
	case *big.Int:
		return x.String()
	case *idlcodec.Instruction:
		return map[string]any{"name": x.Name, "data": plain(x.Data)}
	case *idlcodec.Event:
		return map[string]any{"name": x.Name, "data": plain(x.Data)}
	}
	return v
}

// parseValue reads a JSON value, keeping numbers exact.
func parseValue(text string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("parse value: %w", err)
	}
	return v, nil
}

func parseHex(text string) ([]byte, error) {
	text = strings.TrimPrefix(strings.TrimSpace(text), "0x")
	b, err := hex.DecodeString(text)
	if err != nil {
		return nil, fmt.Errorf("parse hex: %w", err)
	}
	return b, nil
}

// readArg returns arg, or all of stdin when arg is "-".
func readArg(arg string, stdin io.Reader) (string, error) {
	if arg != "-" {
		return arg, nil
	}
	b, err := io.ReadAll(stdin)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
