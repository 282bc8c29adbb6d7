package photo

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/justyntemme/photogeoview/internal/logging"
)

// Resolver builds full photo records: stat, EXIF and thumbnail.
type Resolver struct {
	thumbs *Generator
	log    *zap.Logger
}

// NewResolver returns a Resolver. thumbs may be nil to skip thumbnails.
func NewResolver(thumbs *Generator) *Resolver {
	return &Resolver{thumbs: thumbs, log: logging.Named("photo")}
}

// Resolve loads the record for path. Errors are *ResolutionError. A failed
// thumbnail leaves Record.Thumbnail nil without failing the record.
func (r *Resolver) Resolve(ctx context.Context, path string) (*Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, &ResolutionError{Path: path, Err: err}
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, &ResolutionError{Path: path, Err: err}
	}
	if info.IsDir() {
		return nil, &ResolutionError{Path: path, Err: errors.New("is a directory")}
	}

	rec := &Record{
		Path:     path,
		Filename: filepath.Base(path),
		FileSize: info.Size(),
		ModTime:  info.ModTime(),
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &ResolutionError{Path: path, Err: err}
	}
	rec.Exif, _ = ReadExif(f)
	f.Close()

	if rec.Exif != nil && (rec.Exif.Width == 0 || rec.Exif.Height == 0) {
		if w, h, err := dimensions(path); err == nil {
			rec.Exif.Width, rec.Exif.Height = w, h
		}
	}

	if r.thumbs != nil {
		thumb, err := r.thumbs.Generate(ctx, path)
		if err != nil {
			r.log.Debug("record without thumbnail", zap.String("path", path), zap.Error(err))
		} else {
			rec.Thumbnail = thumb
		}
	}
	return rec, nil
}
