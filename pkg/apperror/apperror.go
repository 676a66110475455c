package apperror

import "errors"

// Kind classifies a business error independently of the transport.
type Kind string

const (
	KindInvalidInput      Kind = "invalid_input"
	KindNotFound          Kind = "not_found"
	KindForbidden         Kind = "forbidden"
	KindInvalidState      Kind = "invalid_state"
	KindDuplicateResource Kind = "duplicate_resource"
	KindServerFault       Kind = "server_fault"
)

// Error is a business rule violation that is safe to show to the caller.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Is matches another *Error of the same kind and message, so sentinel values
// keep working after being wrapped.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Message == t.Message
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func InvalidInput(message string) *Error      { return New(KindInvalidInput, message) }
func NotFound(message string) *Error          { return New(KindNotFound, message) }
func Forbidden(message string) *Error         { return New(KindForbidden, message) }
func InvalidState(message string) *Error      { return New(KindInvalidState, message) }
func DuplicateResource(message string) *Error { return New(KindDuplicateResource, message) }

// KindOf returns the kind of the first *Error in err's chain, or
// KindServerFault for anything else.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindServerFault
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
