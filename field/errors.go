package field

import "github.com/pkg/errors"

// Error kinds.
var (
	ErrSize           = errors.New("size mismatch")
	ErrValue          = errors.New("invalid value")
	ErrInvalidState   = errors.New("invalid state")
	ErrNotImplemented = errors.New("not implemented")
)

// Errorf annotates one of the error kinds with a message and the stack at the
// point of detection.
func Errorf(kind error, format string, args ...any) error {
	return errors.Wrapf(kind, format, args...)
}
