package borsh

import (
	"bytes"

	"github.com/minio/sha256-simd"

	"github.com/wippyai/idl-codec/idl"
)

// DiscriminatorSize is the width of the type tag prefixed to records.
const DiscriminatorSize = 8

// Discriminator namespaces
const (
	NamespaceAccount = "account"
	NamespaceState   = "state"
	NamespaceGlobal  = "global"
	NamespaceEvent   = "event"
)

// Discriminator returns sha256("{namespace}:{PascalCase(name)}")[:8].
func Discriminator(namespace, name string) [DiscriminatorSize]byte {
	return digest(namespace + ":" + idl.PascalCase(name))
}

// AccountDiscriminator tags persistent records.
func AccountDiscriminator(name string) [DiscriminatorSize]byte {
	return Discriminator(NamespaceAccount, name)
}

// StateDiscriminator tags the legacy state record. With deprecated set the
// account namespace is used instead.
func StateDiscriminator(name string, deprecated bool) [DiscriminatorSize]byte {
	if deprecated {
		return Discriminator(NamespaceAccount, name)
	}
	return Discriminator(NamespaceState, name)
}

// EventDiscriminator tags event payloads.
func EventDiscriminator(name string) [DiscriminatorSize]byte {
	return Discriminator(NamespaceEvent, name)
}

// Sighash identifies an instruction: sha256("{namespace}:{snake_case(name)}")[:8].
// Global instructions use NamespaceGlobal, state methods NamespaceState.
func Sighash(namespace, name string) [DiscriminatorSize]byte {
	return digest(namespace + ":" + idl.SnakeCase(name))
}

// HasDiscriminator reports whether data starts with disc.
func HasDiscriminator(data []byte, disc [DiscriminatorSize]byte) bool {
	return len(data) >= DiscriminatorSize && bytes.Equal(data[:DiscriminatorSize], disc[:])
}

func digest(preimage string) [DiscriminatorSize]byte {
	sum := sha256.Sum256([]byte(preimage))
	var out [DiscriminatorSize]byte
	copy(out[:], sum[:DiscriminatorSize])
	return out
}
