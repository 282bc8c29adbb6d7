package photo

import "fmt"

// ResolutionError reports a photo that could not be resolved into a Record.
type ResolutionError struct {
	Path string
	Err  error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("resolve %s: %v", e.Path, e.Err)
}

func (e *ResolutionError) Unwrap() error { return e.Err }

// ThumbnailError reports a thumbnail that could not be rendered.
type ThumbnailError struct {
	Path string
	Err  error
}

func (e *ThumbnailError) Error() string {
	return fmt.Sprintf("thumbnail %s: %v", e.Path, e.Err)
}

func (e *ThumbnailError) Unwrap() error { return e.Err }
