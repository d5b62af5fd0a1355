package idlcodec

import (
	"bytes"

	"github.com/minio/sha256-simd"
	"github.com/mr-tron/base58"

	"github.com/wippyai/idl-codec/errors"
)

// PublicKeySize is the byte width of an address
const PublicKeySize = 32

// MaxSeedLength bounds the seed accepted by CreateWithSeed
const MaxSeedLength = 32

// PublicKey is a 32-byte program or account address
type PublicKey [PublicKeySize]byte

// ParsePublicKey decodes a base58 address
func ParsePublicKey(s string) (PublicKey, error) {
	var pk PublicKey
	raw, err := base58.Decode(s)
	if err != nil {
		return pk, errors.New(errors.PhaseParse, errors.KindInvalidData).
			Name(s).
			Detail("invalid base58 public key").
			Cause(err).
			Build()
	}
	if len(raw) != PublicKeySize {
		return pk, errors.New(errors.PhaseParse, errors.KindInvalidData).
			Name(s).
			Detail("public key decodes to %d bytes, want %d", len(raw), PublicKeySize).
			Build()
	}
	copy(pk[:], raw)
	return pk, nil
}

// MustParsePublicKey is ParsePublicKey that panics on error, for constants
func MustParsePublicKey(s string) PublicKey {
	pk, err := ParsePublicKey(s)
	if err != nil {
		panic(err)
	}
	return pk
}

// PublicKeyFromBytes copies a 32-byte slice into a PublicKey
func PublicKeyFromBytes(b []byte) (PublicKey, error) {
	var pk PublicKey
	if len(b) != PublicKeySize {
		return pk, errors.New(errors.PhaseParse, errors.KindInvalidData).
			Detail("public key is %d bytes, want %d", len(b), PublicKeySize).
			Build()
	}
	copy(pk[:], b)
	return pk, nil
}

// String returns the base58 form
func (pk PublicKey) String() string {
	return base58.Encode(pk[:])
}

// Bytes returns a copy of the raw key
func (pk PublicKey) Bytes() []byte {
	out := make([]byte, PublicKeySize)
	copy(out, pk[:])
	return out
}

// IsZero reports whether every byte is zero
func (pk PublicKey) IsZero() bool {
	return pk == PublicKey{}
}

// Equals compares two keys
func (pk PublicKey) Equals(other PublicKey) bool {
	return bytes.Equal(pk[:], other[:])
}

// MarshalText implements encoding.TextMarshaler
func (pk PublicKey) MarshalText() ([]byte, error) {
	return []byte(pk.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (pk *PublicKey) UnmarshalText(text []byte) error {
	parsed, err := ParsePublicKey(string(text))
	if err != nil {
		return err
	}
	*pk = parsed
	return nil
}

// CreateWithSeed derives sha256(base || seed || owner), the address scheme used by
// the System program's *WithSeed instructions.
func CreateWithSeed(base PublicKey, seed string, owner PublicKey) (PublicKey, error) {
	if len(seed) > MaxSeedLength {
		return PublicKey{}, errors.New(errors.PhaseEncode, errors.KindOverflow).
			Name(seed).
			Detail("seed is %d bytes, max %d", len(seed), MaxSeedLength).
			Build()
	}
	h := sha256.New()
	h.Write(base[:])
	h.Write([]byte(seed))
	h.Write(owner[:])
	var pk PublicKey
	copy(pk[:], h.Sum(nil))
	return pk, nil
}
