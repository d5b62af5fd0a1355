// Package borsh provides schema-driven Borsh encoding and decoding.
//
// An IDL document is compiled once into a layout graph; coders then pack
// loosely typed Go values into bytes and unpack bytes back into maps.
//
// # Wire Format
//
// All integers are little-endian. Composite types add no padding:
//
//	Type            Encoding
//	──────────────────────────────────────────────────────
//	bool            1 byte
//	u8..u128        1/2/4/8/16 bytes, two's complement when signed
//	f32/f64         IEEE 754
//	publicKey       32 bytes
//	string/bytes    u32 length + payload
//	vec<T>          u32 count + elements
//	[T; N]          N elements, no prefix
//	option<T>       u8 tag (0/1) + T when present
//	coption<T>      u32 tag (0/1) + T, zero-filled when absent
//	enum            u8 ordinal + variant fields
//	struct          fields in declaration order
//
// # Discriminators
//
// Records are tagged with the first 8 bytes of a SHA-256 preimage:
//
//	account       sha256("account:" + PascalCase(name))
//	state         sha256("state:" + PascalCase(name))
//	event         sha256("event:" + PascalCase(name))
//	instruction   sha256("global:" + snake_case(name))
//	state method  sha256("state:" + snake_case(name))
//
// # Key Types
//
//	Compiler          - Builds layout graphs from IDL definitions
//	Encoder/Decoder   - Walk a layout over values or bytes
//	AccountsCoder     - Discriminator-prefixed account records
//	InstructionCoder  - Sighash-prefixed instruction arguments
//	StateCoder        - The legacy singleton state record
//	TypesCoder        - Free-standing types without a tag
//	EventCoder        - Base64 event payloads from program logs
//
// # Spans
//
// Every compiled node carries its exact encoded width in Node.Span, or
// Indeterminate when it holds strings, bytes, vecs or reaches itself.
// Encoding a layout without a span uses a scratch buffer of MaxPacketSize.
//
// Layouts without an IDL can be assembled by hand with Struct, Enum, VecOf
// and the other constructors in this package.
package borsh
