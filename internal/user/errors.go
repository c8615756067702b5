package user

import "fmt"

// Kind classifies failed operations so callers can branch on the failure
// category instead of matching message text.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindConflict
	KindStoreUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindStoreUnavailable:
		return "store_unavailable"
	default:
		return "unknown"
	}
}

// Messages safe to put on the wire. Store-level detail never leaves the
// process through these.
const (
	MsgEmailTaken   = "email already registered"
	MsgPhoneTaken   = "phone number already registered"
	MsgCreateFailed = "unexpected error occurred while registering"
	MsgListFailed   = "failed to fetch users"
	MsgDeleteFailed = "failed to delete user"
)

// Error is the structured outcome for a failed user operation. Message is
// user-safe; Code and the wrapped error carry store detail for logs only.
type Error struct {
	Kind    Kind
	Field   string // "email", "phone", etc. when the failure is attributable
	Message string
	Code    string // store error code, when the store reported one
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func validationError(field, message string) *Error {
	return &Error{Kind: KindValidation, Field: field, Message: message}
}
