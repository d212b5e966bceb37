// Package uploads maps image metadata records to their on-disk files.
// Originals live at {root}/images/{id}.{ext}, thumbnails at
// {root}/thumbs/{id}.{ext}.
package uploads

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

type Dir struct {
	root string
}

func New(root string) Dir { return Dir{root: root} }

func (d Dir) ImagePath(id, ext string) string {
	return filepath.Join(d.root, "images", id+"."+ext)
}

func (d Dir) ThumbPath(id, ext string) string {
	return filepath.Join(d.root, "thumbs", id+"."+ext)
}

// RemoveAsync deletes a file without blocking the caller. The result is
// ignored beyond a log line: image cleanup is best-effort and a missing file
// must never abort the metadata cleanup that follows.
func (d Dir) RemoveAsync(path string) {
	go func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			log.Warn().Err(err).Str("path", path).Msg("upload cleanup: file remove failed")
		}
	}()
}
