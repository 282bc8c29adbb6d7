package fs

import (
	"os"
	"time"

	"github.com/rwcarlsen/goexif/exif"
)

// CapturedTime reads only the EXIF capture date of a photo. It returns false
// when the file has no EXIF block or no date tag.
func CapturedTime(path string) (time.Time, bool) {
	f, err := os.Open(path)
	if err != nil {
		return time.Time{}, false
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if x == nil || (err != nil && exif.IsCriticalError(err)) {
		return time.Time{}, false
	}
	t, err := x.DateTime()
	if err != nil || t.IsZero() {
		return time.Time{}, false
	}
	return t, true
}
