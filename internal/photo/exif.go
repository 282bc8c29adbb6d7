package photo

import (
	"fmt"
	"io"
	"math"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"
)

// ReadExif decodes the EXIF block of r. It returns nil, nil when the image
// has no usable EXIF data.
func ReadExif(r io.Reader) (*Exif, error) {
	x, err := exif.Decode(r)
	if x == nil || (err != nil && exif.IsCriticalError(err)) {
		return nil, nil
	}

	e := &Exif{Orientation: 1}

	if mk, md := tagString(x, exif.Make), tagString(x, exif.Model); mk != "" || md != "" {
		e.Camera = &Camera{Make: mk, Model: md}
	}

	var exp Exposure
	haveExp := false
	if v, ok := tagRat(x, exif.FocalLength); ok {
		exp.FocalLength, haveExp = v, true
	}
	if v, ok := tagRat(x, exif.FNumber); ok {
		exp.Aperture, haveExp = v, true
	}
	if ss, err := x.Get(exif.ExposureTime); err == nil {
		if num, den, err := ss.Rat2(0); err == nil && den != 0 {
			if den == 1 {
				exp.ShutterSpeed = fmt.Sprintf("%ds", num)
			} else {
				exp.ShutterSpeed = fmt.Sprintf("%d/%d", num, den)
			}
			haveExp = true
		}
	}
	if v, ok := tagInt(x, exif.ISOSpeedRatings); ok {
		exp.ISO, haveExp = v, true
	}
	if haveExp {
		e.Exposure = &exp
	}

	if dt, err := x.DateTime(); err == nil && !dt.IsZero() {
		e.DateTime = &dt
	}

	if lat, lng, err := x.LatLong(); err == nil && !math.IsNaN(lat) && !math.IsNaN(lng) {
		e.GPS = &GPS{Lat: lat, Lng: lng}
		if alt, ok := tagRat(x, exif.GPSAltitude); ok {
			if ref, ok := tagInt(x, exif.GPSAltitudeRef); ok && ref == 1 {
				alt = -alt
			}
			e.GPS.Altitude = &alt
		}
	}

	if v, ok := tagInt(x, exif.Orientation); ok && v >= 1 && v <= 8 {
		e.Orientation = v
	}
	if v, ok := tagInt(x, exif.PixelXDimension); ok {
		e.Width = v
	}
	if v, ok := tagInt(x, exif.PixelYDimension); ok {
		e.Height = v
	}
	return e, nil
}

func tagString(x *exif.Exif, f exif.FieldName) string {
	tag, err := x.Get(f)
	if err != nil {
		return ""
	}
	if tag.Format() == tiff.StringVal {
		s, _ := tag.StringVal()
		return s
	}
	return tag.String()
}

func tagRat(x *exif.Exif, f exif.FieldName) (float64, bool) {
	tag, err := x.Get(f)
	if err != nil {
		return 0, false
	}
	num, den, err := tag.Rat2(0)
	if err != nil || den == 0 {
		return 0, false
	}
	return float64(num) / float64(den), true
}

func tagInt(x *exif.Exif, f exif.FieldName) (int, bool) {
	tag, err := x.Get(f)
	if err != nil {
		return 0, false
	}
	v, err := tag.Int(0)
	if err != nil {
		return 0, false
	}
	return v, true
}
