package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/justyntemme/photogeoview/internal/fs"
	"github.com/justyntemme/photogeoview/internal/photo"
)

var (
	// ErrEmptyPath rejects navigation to "".
	ErrEmptyPath = errors.New("empty path")
	// ErrNoDirectory is returned by operations that need an open directory.
	ErrNoDirectory = errors.New("no directory open")
	// ErrNoLastFolder is reported when Open Last Folder has nothing stored.
	ErrNoLastFolder = errors.New("no last folder recorded")
	// ErrNoPicker is returned by OpenFolder when no directory picker is wired.
	ErrNoPicker = errors.New("no directory picker")
	// ErrClosed is returned once the browser has been closed.
	ErrClosed = errors.New("browser closed")
)

// DialogError wraps a directory picker failure.
type DialogError struct {
	Err error
}

func (e *DialogError) Error() string { return "directory dialog: " + e.Err.Error() }

func (e *DialogError) Unwrap() error { return e.Err }

// Level is the severity of a notification.
type Level int

const (
	LevelInfo Level = iota
	LevelWarning
	LevelError
)

// Notification is a dismissible user-visible message.
type Notification struct {
	Level   Level
	Title   string
	Message string
	Err     error
	At      time.Time
}

// notificationFor turns a collaborator error into a notification.
func notificationFor(err error) Notification {
	n := Notification{Level: LevelError, Err: err, Message: err.Error(), At: time.Now()}

	var de *fs.DiscoveryError
	var re *photo.ResolutionError
	var dlg *DialogError
	switch {
	case errors.As(err, &de):
		switch de.Kind {
		case fs.PermissionDenied:
			n.Title = "Permission denied"
			n.Message = fmt.Sprintf("Cannot open %s: access is denied.", de.Path)
		case fs.NotFound:
			n.Title = "Folder not found"
			n.Message = fmt.Sprintf("%s does not exist or is not a folder.", de.Path)
		default:
			n.Title = "Cannot read folder"
			n.Message = fmt.Sprintf("Reading %s failed: %v", de.Path, de.Err)
		}
	case errors.As(err, &re):
		n.Title = "Cannot open photo"
		n.Message = fmt.Sprintf("Loading %s failed: %v", re.Path, re.Err)
	case errors.As(err, &dlg):
		n.Title = "Folder dialog failed"
	case errors.Is(err, ErrNoLastFolder):
		n.Level = LevelInfo
		n.Title = "No recent folder"
		n.Message = "Open a folder first."
	default:
		n.Title = "Error"
	}
	return n
}
