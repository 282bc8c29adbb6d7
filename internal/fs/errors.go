package fs

import (
	"errors"
	iofs "io/fs"
	"syscall"
)

// ErrorKind classifies a discovery failure.
type ErrorKind int

const (
	IOError ErrorKind = iota
	PermissionDenied
	NotFound
)

func (k ErrorKind) String() string {
	switch k {
	case PermissionDenied:
		return "permission denied"
	case NotFound:
		return "not found"
	default:
		return "i/o error"
	}
}

// DiscoveryError is returned by Discover when a directory cannot be listed.
type DiscoveryError struct {
	Kind ErrorKind
	Path string
	Err  error
}

func (e *DiscoveryError) Error() string {
	if e.Err == nil {
		return e.Path + ": " + e.Kind.String()
	}
	return e.Path + ": " + e.Kind.String() + ": " + e.Err.Error()
}

func (e *DiscoveryError) Unwrap() error { return e.Err }

// Is lets errors.Is match on kind alone, e.g. errors.Is(err, &DiscoveryError{Kind: NotFound}).
func (e *DiscoveryError) Is(target error) bool {
	t, ok := target.(*DiscoveryError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Path == "" || t.Path == e.Path)
}

// ErrNotDirectory is wrapped in a NotFound DiscoveryError when the path names a file.
var ErrNotDirectory = errors.New("not a directory")

func classify(path string, err error) *DiscoveryError {
	var de *DiscoveryError
	if errors.As(err, &de) {
		return de
	}
	kind := IOError
	switch {
	case errors.Is(err, iofs.ErrPermission):
		kind = PermissionDenied
	case errors.Is(err, iofs.ErrNotExist), errors.Is(err, ErrNotDirectory), errors.Is(err, syscall.ENOTDIR):
		kind = NotFound
	}
	return &DiscoveryError{Kind: kind, Path: path, Err: err}
}

// KindOf returns the kind of a discovery error, or IOError for anything else.
func KindOf(err error) ErrorKind {
	var de *DiscoveryError
	if errors.As(err, &de) {
		return de.Kind
	}
	return IOError
}
