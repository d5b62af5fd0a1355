package system

import (
	"bytes"
	"encoding/hex"
	stderrors "errors"
	"reflect"
	"strings"
	"testing"

	idlcodec "github.com/wippyai/idl-codec"
	"github.com/wippyai/idl-codec/borsh"
	"github.com/wippyai/idl-codec/errors"
)

var (
	base  = idlcodec.MustParsePublicKey("Fg6PaFpoGXkYsidMpWTK6W2BeZ7FEfcYkg476zPFsLnS")
	owner = idlcodec.MustParsePublicKey("TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA")
)

func fromHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(strings.ReplaceAll(s, " ", ""))
	if err != nil {
		t.Fatalf("bad hex %q: %v", s, err)
	}
	return b
}

func TestInstructionEncode(t *testing.T) {
	c := NewInstructions(borsh.DefaultOptions())

	tests := []struct {
		args any
		name string
		hex  string
	}{
		{map[string]any{"lamports": 1000}, "transfer", "02000000 e803000000000000"},
		{map[string]any{"space": 165}, "allocate", "08000000 a500000000000000"},
		{map[string]any{"lamports": 1}, "withdraw_nonce_account", "05000000 0100000000000000"},
		{map[string]any{"authorized": owner}, "AdvanceNonceAccount", "04000000" + hex.EncodeToString(owner[:])},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := c.Encode(tc.name, tc.args)
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			if want := fromHex(t, tc.hex); !bytes.Equal(got, want) {
				t.Errorf("Encode = %x, want %x", got, want)
			}
		})
	}
}

func TestCreateAccountLength(t *testing.T) {
	c := NewInstructions(borsh.DefaultOptions())

	got, err := c.Encode("createAccount", map[string]any{"lamports": 1, "space": 2, "owner": owner})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if len(got) != 4+8+8+32 {
		t.Errorf("len = %d, want 52", len(got))
	}
}

func TestSeededInstructions(t *testing.T) {
	c := NewInstructions(borsh.DefaultOptions())

	tests := []struct {
		args   map[string]any
		name   string
		prefix int
	}{
		{map[string]any{"base": base, "seed": "vault", "lamports": 1, "space": 2, "owner": owner}, "createAccountWithSeed", 92},
		{map[string]any{"base": base, "seed": "vault", "space": 2, "owner": owner}, "allocateWithSeed", 84},
		{map[string]any{"base": base, "seed": "vault", "owner": owner}, "assignWithSeed", 76},
		{map[string]any{"lamports": 1, "seed": "vault", "owner": owner}, "transferWithSeed", 52},
		{map[string]any{"base": base, "seed": "", "owner": owner}, "assignWithSeed", 76},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			seed := tc.args["seed"].(string)
			data, err := c.Encode(tc.name, tc.args)
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			if len(data) != tc.prefix+len(seed) {
				t.Errorf("len = %d, want %d", len(data), tc.prefix+len(seed))
			}

			ix, err := c.Decode(data)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if ix == nil || ix.Name != tc.name {
				t.Fatalf("Decode = %+v", ix)
			}
			if ix.Data["seed"] != seed || ix.Data["owner"] != owner {
				t.Errorf("Data = %v", ix.Data)
			}
		})
	}
}

func TestSeededInstructionLooseInputs(t *testing.T) {
	c := NewInstructions(borsh.DefaultOptions())
	seed := "vault"
	args := map[string]any{"base": base, "seed": &seed, "lamports": 1, "space": 2, "owner": owner}

	tests := []struct {
		args any
		name string
	}{
		{args, "seed pointer"},
		{&args, "args pointer"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			data, err := c.Encode("createAccountWithSeed", tc.args)
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			if len(data) != 92+len(seed) {
				t.Errorf("len = %d, want %d", len(data), 92+len(seed))
			}
		})
	}
}

func TestSeedWireFormat(t *testing.T) {
	c := NewInstructions(borsh.DefaultOptions())

	data, err := c.Encode("createAccountWithSeed", map[string]any{
		"base": base, "seed": "ab", "lamports": 1, "space": 2, "owner": owner,
	})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	// opcode, base, then a u64 length
	if got := data[36:46]; !bytes.Equal(got, fromHex(t, "0200000000000000 6162")) {
		t.Errorf("seed bytes = %x", got)
	}
}

func TestInstructionDecode(t *testing.T) {
	c := NewInstructions(borsh.DefaultOptions())

	ix, err := c.Decode(fromHex(t, "02000000 e803000000000000"))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if ix == nil || ix.Name != "transfer" || ix.Data["lamports"] != uint64(1000) {
		t.Errorf("Decode = %+v", ix)
	}

	for _, data := range [][]byte{nil, {2, 0}, fromHex(t, "63000000")} {
		ix, err := c.Decode(data)
		if ix != nil || err != nil {
			t.Errorf("Decode(%x) = %+v, %v; want nil, nil", data, ix, err)
		}
	}

	if _, err := c.Decode(fromHex(t, "02000000 e803")); !stderrors.Is(err, &errors.Error{Kind: errors.KindOutOfBounds}) {
		t.Errorf("truncated Decode = %v", err)
	}
}

func TestInstructionErrors(t *testing.T) {
	c := NewInstructions(borsh.DefaultOptions())

	if _, err := c.Encode("mintTo", map[string]any{}); !stderrors.Is(err, errors.ErrUnknownIdentifier) {
		t.Errorf("Encode unknown = %v", err)
	}
	if _, err := c.Encode("transfer", map[string]any{}); !stderrors.Is(err, &errors.Error{Kind: errors.KindFieldMissing}) {
		t.Errorf("Encode missing lamports = %v", err)
	}

	want := []string{
		"createAccount", "assign", "transfer", "createAccountWithSeed",
		"advanceNonceAccount", "withdrawNonceAccount", "initializeNonceAccount",
		"authorizeNonceAccount", "allocate", "allocateWithSeed", "assignWithSeed",
		"transferWithSeed",
	}
	if got := c.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Names = %v", got)
	}
}

func TestNonceAccount(t *testing.T) {
	c := NewAccounts(borsh.DefaultOptions())
	value := map[string]any{
		"version":          1,
		"state":            1,
		"authorizedPubkey": base,
		"nonce":            owner,
		"feeCalculator":    map[string]any{"lamportsPerSignature": 5000},
	}

	data, err := c.Encode("nonce", value)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if len(data) != NonceAccountSize {
		t.Fatalf("len = %d, want %d", len(data), NonceAccountSize)
	}

	got, err := c.Decode("nonce", data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	fee, _ := got["feeCalculator"].(map[string]any)
	if got["authorizedPubkey"] != base || fee["lamportsPerSignature"] != uint64(5000) {
		t.Errorf("Decode = %v", got)
	}

	f, err := c.Memcmp("nonce", []byte{1, 2, 3})
	if err != nil {
		t.Fatalf("Memcmp failed: %v", err)
	}
	if f != (idlcodec.MemcmpFilter{DataSize: NonceAccountSize}) {
		t.Errorf("Memcmp = %+v", f)
	}

	def, _ := IDL().FindAccount("nonce")
	if size, err := c.Size(def); err != nil || size != NonceAccountSize {
		t.Errorf("Size = %d, %v", size, err)
	}

	if _, err := c.Decode("mint", data); !stderrors.Is(err, errors.ErrUnknownIdentifier) {
		t.Errorf("Decode unknown = %v", err)
	}
}

func TestNew(t *testing.T) {
	c, err := NewWithDefaults()
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if c.State != nil || c.Events != nil {
		t.Error("System has no state or events")
	}

	data, err := c.Types.Encode("FeeCalculator", map[string]any{"lamportsPerSignature": 10})
	if err != nil {
		t.Fatalf("Types.Encode failed: %v", err)
	}
	if len(data) != 8 {
		t.Errorf("len = %d, want 8", len(data))
	}
	if IDL().Address() != ProgramID {
		t.Errorf("IDL address = %q", IDL().Address())
	}
}
