package label

import (
	"errors"
	"fmt"
)

// ErrQROverflow is returned when a QR symbol placed at its layout offset
// would extend past the edge of its canvas.
var ErrQROverflow = errors.New("qr code does not fit on canvas")

// DomainError reports a tag number outside the supported range.
type DomainError struct {
	Field string
	Value int
	Msg   string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s %d: %s", e.Field, e.Value, e.Msg)
}

// PathError reports a save target that is missing or not a directory.
type PathError struct {
	Path string
	Err  error
}

func (e *PathError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("save path %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("save path %s does not seem to be a directory", e.Path)
}

func (e *PathError) Unwrap() error { return e.Err }

// ResourceError reports a font that could not be found or loaded.
type ResourceError struct {
	Name string
	Err  error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("font %q: %v", e.Name, e.Err)
}

func (e *ResourceError) Unwrap() error { return e.Err }
