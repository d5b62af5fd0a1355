package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseBuild  Phase = "build"  // layout construction from an IDL
	PhaseSize   Phase = "size"   // span and declared-size calculation
	PhaseEncode Phase = "encode" // Go value to bytes
	PhaseDecode Phase = "decode" // bytes to Go value
	PhaseLookup Phase = "lookup" // name resolution in a coder
	PhaseParse  Phase = "parse"  // IDL parsing
)

// Kind categorizes the error
type Kind string

const (
	KindUnknownIdentifier     Kind = "unknown_identifier"
	KindUndefinedType         Kind = "undefined_type"
	KindUnsupportedVariant    Kind = "unsupported_variant"
	KindIndeterminateSpan     Kind = "indeterminate_span"
	KindInvalidPresenceTag    Kind = "invalid_presence_tag"
	KindDiscriminatorMismatch Kind = "discriminator_mismatch"
	KindStateNotDefined       Kind = "state_not_defined"
	KindTypeMismatch          Kind = "type_mismatch"
	KindFieldMissing          Kind = "field_missing"
	KindOutOfBounds           Kind = "out_of_bounds"
	KindOverflow              Kind = "overflow"
	KindInvalidUTF8           Kind = "invalid_utf8"
	KindInvalidVariant        Kind = "invalid_variant"
	KindInvalidData           Kind = "invalid_data"
)

// Sentinels for errors.Is checks that should match regardless of phase.
var (
	ErrUnknownIdentifier     = &Error{Kind: KindUnknownIdentifier}
	ErrUndefinedType         = &Error{Kind: KindUndefinedType}
	ErrUnsupportedVariant    = &Error{Kind: KindUnsupportedVariant}
	ErrIndeterminateSpan     = &Error{Kind: KindIndeterminateSpan}
	ErrInvalidPresenceTag    = &Error{Kind: KindInvalidPresenceTag}
	ErrDiscriminatorMismatch = &Error{Kind: KindDiscriminatorMismatch}
	ErrStateNotDefined       = &Error{Kind: KindStateNotDefined}
)

// Error is the structured error type used throughout the codec
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Name   string
	GoType string
	Type   string
	Detail string
	Path   []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Name != "" {
		b.WriteString(" ")
		b.WriteString(fmt.Sprintf("%q", e.Name))
	}

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.GoType != "" || e.Type != "" {
		b.WriteString(": ")
		if e.GoType != "" && e.Type != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
			b.WriteString(", IDL type ")
			b.WriteString(e.Type)
		} else if e.GoType != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
		} else {
			b.WriteString("IDL type ")
			b.WriteString(e.Type)
		}
	}

	if e.Detail != "" {
		if e.GoType != "" || e.Type != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error. A target without a phase
// matches on kind alone.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Phase == "" {
		return e.Kind == t.Kind
	}
	return e.Phase == t.Phase && e.Kind == t.Kind
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Name sets the offending identifier
func (b *Builder) Name(name string) *Builder {
	b.err.Name = name
	return b
}

// GoType sets the Go type name
func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
	return b
}

// Type sets the IDL type name
func (b *Builder) Type(t string) *Builder {
	b.err.Type = t
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// UnknownIdentifier reports a name absent from a coder's schema or dispatch table
func UnknownIdentifier(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnknownIdentifier,
		Name:   name,
		Detail: fmt.Sprintf("unknown %s", what),
	}
}

// UndefinedType reports a defined(name) reference with no matching definition
func UndefinedType(phase Phase, path []string, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUndefinedType,
		Path:   path,
		Name:   name,
		Detail: "type not found",
	}
}

// UnsupportedVariant reports a tuple-style enum variant
func UnsupportedVariant(phase Phase, path []string, enumName, variant string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupportedVariant,
		Path:   path,
		Name:   enumName,
		Detail: fmt.Sprintf("variant %q has tuple fields", variant),
	}
}

// IndeterminateSpan reports an exact size requested for a variable-length layout
func IndeterminateSpan(path []string, what string) *Error {
	return &Error{
		Phase:  PhaseSize,
		Kind:   KindIndeterminateSpan,
		Path:   path,
		Detail: fmt.Sprintf("%s has no static span", what),
	}
}

// InvalidPresenceTag reports an option/coption tag outside {0,1}
func InvalidPresenceTag(path []string, tag uint32) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindInvalidPresenceTag,
		Path:   path,
		Detail: fmt.Sprintf("presence tag %d is neither 0 nor 1", tag),
		Value:  tag,
	}
}

// DiscriminatorMismatch reports leading bytes that do not identify the expected type
func DiscriminatorMismatch(name string, want, got []byte) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindDiscriminatorMismatch,
		Name:   name,
		Detail: fmt.Sprintf("expected discriminator %x, got %x", want, got),
		Value:  got,
	}
}

// StateNotDefined reports a state coder built against an IDL without state
func StateNotDefined(idlName string) *Error {
	return &Error{
		Phase:  PhaseBuild,
		Kind:   KindStateNotDefined,
		Name:   idlName,
		Detail: "IDL state not defined",
	}
}

// TypeMismatch creates a type mismatch error
func TypeMismatch(phase Phase, path []string, goType, idlType string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindTypeMismatch,
		Path:   path,
		GoType: goType,
		Type:   idlType,
	}
}

// InvalidUTF8 creates an invalid UTF-8 error
func InvalidUTF8(phase Phase, path []string, data []byte) *Error {
	preview := data
	if len(preview) > 32 {
		preview = preview[:32]
	}
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidUTF8,
		Path:   path,
		Detail: fmt.Sprintf("invalid UTF-8 sequence: %x", preview),
	}
}

// FieldMissing creates a missing field error
func FieldMissing(phase Phase, path []string, fieldName string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindFieldMissing,
		Path:   path,
		Detail: fmt.Sprintf("required field %q not found", fieldName),
	}
}

// InvalidDiscriminant creates an invalid ordinal error for enums
func InvalidDiscriminant(phase Phase, path []string, disc uint32, maxValid uint32) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidVariant,
		Path:   path,
		Detail: fmt.Sprintf("discriminant %d out of range (max %d)", disc, maxValid),
		Value:  disc,
	}
}

// OutOfBounds reports a read or write past the end of a buffer
func OutOfBounds(phase Phase, path []string, offset, need, length int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Path:   path,
		Detail: fmt.Sprintf("need %d bytes at offset %d (length %d)", need, offset, length),
		Value:  offset,
	}
}

// Overflow creates an overflow error
func Overflow(phase Phase, path []string, value any, targetType string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOverflow,
		Path:   path,
		Type:   targetType,
		Detail: fmt.Sprintf("value %v overflows %s", value, targetType),
		Value:  value,
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Path:   path,
		Detail: detail,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// ParseFailed creates a parsing error
func ParseFailed(what string, cause error) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindInvalidData,
		Detail: fmt.Sprintf("parse %s", what),
		Cause:  cause,
	}
}
