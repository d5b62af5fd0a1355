package borsh

import (
	"github.com/wippyai/idl-codec/borsh/internal/types"
)

type Kind = types.Kind

const (
	KindBool      = types.KindBool
	KindU8        = types.KindU8
	KindI8        = types.KindI8
	KindU16       = types.KindU16
	KindI16       = types.KindI16
	KindU32       = types.KindU32
	KindI32       = types.KindI32
	KindF32       = types.KindF32
	KindU64       = types.KindU64
	KindI64       = types.KindI64
	KindF64       = types.KindF64
	KindU128      = types.KindU128
	KindI128      = types.KindI128
	KindPublicKey = types.KindPublicKey
	KindString    = types.KindString
	KindBytes     = types.KindBytes
	KindString64  = types.KindString64
	KindStruct    = types.KindStruct
	KindEnum      = types.KindEnum
	KindVec       = types.KindVec
	KindOption    = types.KindOption
	KindCOption   = types.KindCOption
	KindArray     = types.KindArray
)

// Indeterminate is the span of layouts whose width depends on the value.
const Indeterminate = types.Indeterminate

type Node = types.Node
type NodeField = types.Field
type NodeVariant = types.Variant
