// Package photo resolves photo records and renders thumbnails.
package photo

import (
	"time"
)

// Camera identifies the capturing device.
type Camera struct {
	Make  string
	Model string
}

// Exposure holds the shot settings.
type Exposure struct {
	ISO          int
	Aperture     float64 // f-number
	ShutterSpeed string  // "1/250" or "2s"
	FocalLength  float64 // millimetres
}

// GPS is a capture location.
type GPS struct {
	Lat      float64
	Lng      float64
	Altitude *float64
}

// Exif is the decoded metadata of a photo. Nil sections were absent.
type Exif struct {
	Camera      *Camera
	Exposure    *Exposure
	GPS         *GPS
	DateTime    *time.Time
	Width       int
	Height      int
	Orientation int
}

// HasGPS reports whether the photo carries a location.
func (e *Exif) HasGPS() bool { return e != nil && e.GPS != nil }

// HasDateTime reports whether the photo carries a capture time.
func (e *Exif) HasDateTime() bool { return e != nil && e.DateTime != nil }

// Record is a fully resolved photo.
type Record struct {
	Path      string
	Filename  string
	FileSize  int64
	ModTime   time.Time
	Thumbnail []byte // JPEG; nil when it could not be rendered
	Exif      *Exif
}
