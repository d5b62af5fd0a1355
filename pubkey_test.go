package idlcodec

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/minio/sha256-simd"

	codecerrors "github.com/wippyai/idl-codec/errors"
)

const tokenProgram = "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA"

func TestParsePublicKey(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
		zero    bool
	}{
		{"system program", "11111111111111111111111111111111", false, true},
		{"token program", tokenProgram, false, false},
		{"invalid alphabet", "0OIl0OIl", true, false},
		{"too short", "1111", true, false},
		{"empty", "", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pk, err := ParsePublicKey(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParsePublicKey(%q) succeeded, want error", tt.input)
				}
				var cerr *codecerrors.Error
				if !errors.As(err, &cerr) || cerr.Phase != codecerrors.PhaseParse {
					t.Errorf("error = %v, want parse phase codec error", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePublicKey(%q): %v", tt.input, err)
			}
			if pk.IsZero() != tt.zero {
				t.Errorf("IsZero() = %v, want %v", pk.IsZero(), tt.zero)
			}
			if pk.String() != tt.input {
				t.Errorf("String() = %q, want %q", pk.String(), tt.input)
			}
		})
	}
}

func TestPublicKeyFromBytes(t *testing.T) {
	raw := make([]byte, PublicKeySize)
	raw[0] = 7
	pk, err := PublicKeyFromBytes(raw)
	if err != nil {
		t.Fatal(err)
	}
	if pk[0] != 7 {
		t.Errorf("pk[0] = %d, want 7", pk[0])
	}
	raw[0] = 9
	if pk[0] != 7 {
		t.Error("PublicKeyFromBytes must copy")
	}
	if _, err := PublicKeyFromBytes(raw[:31]); err == nil {
		t.Error("expected error for 31-byte input")
	}
}

func TestPublicKeyJSON(t *testing.T) {
	type holder struct {
		Owner PublicKey `json:"owner"`
	}
	in := holder{Owner: MustParsePublicKey(tokenProgram)}

	data, err := json.Marshal(in)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"owner":"`+tokenProgram+`"}` {
		t.Errorf("Marshal = %s", data)
	}

	var out holder
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if !out.Owner.Equals(in.Owner) {
		t.Errorf("round trip = %v, want %v", out.Owner, in.Owner)
	}

	if err := json.Unmarshal([]byte(`{"owner":"not-a-key"}`), &out); err == nil {
		t.Error("expected error for invalid key")
	}
}

func TestCreateWithSeed(t *testing.T) {
	base := MustParsePublicKey("11111111111111111111111111111111")
	owner := MustParsePublicKey(tokenProgram)

	got, err := CreateWithSeed(base, "vault", owner)
	if err != nil {
		t.Fatal(err)
	}

	buf := append(append(base.Bytes(), "vault"...), owner.Bytes()...)
	want := sha256.Sum256(buf)
	if got != PublicKey(want) {
		t.Errorf("CreateWithSeed = %v, want %v", got, PublicKey(want))
	}

	again, _ := CreateWithSeed(base, "vault", owner)
	if again != got {
		t.Error("CreateWithSeed is not deterministic")
	}
	other, _ := CreateWithSeed(base, "vault2", owner)
	if other == got {
		t.Error("different seeds produced the same address")
	}

	long := "0123456789abcdef0123456789abcdef0"
	if _, err := CreateWithSeed(base, long, owner); !errors.Is(err, &codecerrors.Error{Kind: codecerrors.KindOverflow}) {
		t.Errorf("seed of %d bytes: err = %v, want overflow", len(long), err)
	}
}
