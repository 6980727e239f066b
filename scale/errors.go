package scale

import (
	"errors"
	"fmt"
)

var (
	ErrUnexpectedEOF      = errors.New("unexpected end of input")
	ErrNonCanonical       = errors.New("non-canonical compact encoding")
	ErrInvalidVariant     = errors.New("invalid variant index")
	ErrOverflow           = errors.New("value overflows target type")
	ErrInvalidBool        = errors.New("invalid bool byte")
	ErrLengthExceedsInput = errors.New("length prefix exceeds remaining input")
	ErrTrailingBytes      = errors.New("trailing bytes after value")
)

// DecodeError reports malformed input together with the offset at which
// decoding stopped.
type DecodeError struct {
	Offset int
	Err    error
	Detail string
}

func (e *DecodeError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("scale: decode at offset %d: %v: %s", e.Offset, e.Err, e.Detail)
	}
	return fmt.Sprintf("scale: decode at offset %d: %v", e.Offset, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// IsDecodeError checks whether an error is a DecodeError and returns it.
func IsDecodeError(err error) (*DecodeError, bool) {
	var d *DecodeError
	if errors.As(err, &d) {
		return d, true
	}
	return nil, false
}
