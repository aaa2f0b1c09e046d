package mbx

import "errors"

// Kind is a stable category for programmatic error handling.
//
// KindCodec means an adapter received a codec other than the one it
// handles; KindUnsupported means the codec is in the right category but no
// adapter exists for it. KindMismatch is reported when a recomputed digest
// differs from the one carried.
//
// Callers should branch on Kind/RuleID rather than matching error strings.
// Use errors.As to extract *Error for structured handling.
type Kind string

const (
	KindBase        Kind = "Base"
	KindPrefix      Kind = "Prefix"
	KindCategory    Kind = "Category"
	KindLength      Kind = "Length"
	KindCodec       Kind = "Codec"
	KindUnsupported Kind = "Unsupported"
	KindLibrary     Kind = "Library"
	KindMismatch    Kind = "Mismatch"
	KindInternal    Kind = "Internal"
)

// Error is the package's structured error type.
//
// RuleID is a stable identifier (e.g., MBX-BASE-001, MBX-CAT-001) naming the
// violated rule. Message is intended for humans; do not match on it.
type Error struct {
	Kind    Kind
	RuleID  string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func newError(kind Kind, ruleID, msg string) error {
	return &Error{Kind: kind, RuleID: ruleID, Message: msg}
}

func wrapError(kind Kind, ruleID, msg string, cause error) error {
	if cause == nil {
		return newError(kind, ruleID, msg)
	}
	return &Error{Kind: kind, RuleID: ruleID, Message: msg, Cause: cause}
}

// IsKind reports whether err is (or wraps) a *Error with the given Kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}

// RuleID returns the stable RuleID for a structured error, or "" if unknown.
func RuleID(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return ""
	}
	return e.RuleID
}
