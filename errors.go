package pasteboard

import (
	"errors"
	"fmt"
	"io/fs"

	"go.klb.dev/pasteboard/internal/clip"
)

var (
	// ErrUnknownFormat means the format argument is not a recognised Format.
	ErrUnknownFormat = errors.New("unrecognized image format")

	// ErrNoRepresentation means the clipboard does not hold the requested
	// representation.
	ErrNoRepresentation = errors.New("no such representation on the pasteboard")

	// ErrUnsupported means the active backend cannot hold the representation.
	ErrUnsupported = clip.ErrUnsupported

	// ErrFileExists is returned (wrapped in a *fs.PathError) when an image
	// destination exists and overwriting was not requested.
	ErrFileExists = fs.ErrExist
)

// TypeError reports a format that is unrecognised or that the clipboard
// cannot provide. Err is ErrUnknownFormat, ErrNoRepresentation or
// ErrUnsupported.
type TypeError struct {
	Op     string
	Format string
	Err    error
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("pasteboard: %s %s: %v", e.Op, e.Format, e.Err)
}

func (e *TypeError) Unwrap() error { return e.Err }

// IsTypeError reports whether err is, or wraps, a *TypeError.
func IsTypeError(err error) bool {
	var te *TypeError
	return errors.As(err, &te)
}

// backendErr wraps err from the backend, turning ErrUnsupported into a
// *TypeError for the representation t.
func backendErr(op string, t clip.Type, err error) error {
	if errors.Is(err, clip.ErrUnsupported) {
		return &TypeError{Op: op, Format: string(t), Err: err}
	}
	return fmt.Errorf("%s: %w", op, err)
}
