package bcn

import "errors"

// ErrorCode is a codec API error code.
type ErrorCode uint32

const (
	// Success reports that an operation completed without error.
	Success ErrorCode = 0

	// ErrBadParam reports an invalid argument: nil image, zero-size buffer,
	// or a buffer whose length does not match width, height and format.
	ErrBadParam ErrorCode = 1

	// ErrBadFormat reports a format value outside the catalog.
	ErrBadFormat ErrorCode = 2

	// ErrBadBuffer reports a source or destination buffer that is too small
	// for the described image.
	ErrBadBuffer ErrorCode = 3

	// ErrUnsupportedConversion reports a format pair absent from the
	// conversion compatibility matrix.
	ErrUnsupportedConversion ErrorCode = 4

	// ErrBadContext reports misuse of a compression context.
	ErrBadContext ErrorCode = 5
)

// ErrorString returns the stable string name for a code.
//
// For unknown codes, it returns "".
func ErrorString(code ErrorCode) string {
	switch code {
	case Success:
		return "BCN_SUCCESS"
	case ErrBadParam:
		return "BCN_ERR_BAD_PARAM"
	case ErrBadFormat:
		return "BCN_ERR_BAD_FORMAT"
	case ErrBadBuffer:
		return "BCN_ERR_BAD_BUFFER"
	case ErrUnsupportedConversion:
		return "BCN_ERR_UNSUPPORTED_CONVERSION"
	case ErrBadContext:
		return "BCN_ERR_BAD_CONTEXT"
	default:
		return ""
	}
}

// Error is a typed error that carries a codec error code.
type Error struct {
	Code ErrorCode
	Msg  string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Msg != "" {
		return e.Msg
	}
	if s := ErrorString(e.Code); s != "" {
		return "bcn: " + s
	}
	return "bcn: error"
}

// ErrorCodeOf returns the error code for err, or Success for nil.
//
// For non-*Error errors it returns ErrBadParam as a conservative fallback.
func ErrorCodeOf(err error) ErrorCode {
	if err == nil {
		return Success
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ErrBadParam
}

func newError(code ErrorCode, msg string) error {
	return &Error{Code: code, Msg: msg}
}
