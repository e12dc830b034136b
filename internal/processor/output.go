package processor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"regexp"

	"github.com/woozymasta/geodesy/internal/format"
	"github.com/woozymasta/geodesy/internal/geo"
	"github.com/woozymasta/geodesy/internal/render"

	"github.com/rs/zerolog/log"
)

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// fileName turns a job name into a safe file name.
func fileName(name string) string {
	return unsafeName.ReplaceAllString(name, "_")
}

// saveGeoJSON marshals the feature collection and writes it to disk.
func saveGeoJSON(dir, path string, fc *format.FeatureCollection, minified bool) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(fc, "", "  ")
	if err != nil {
		return err
	}
	if minified {
		if data, err = format.Minify(data); err != nil {
			return err
		}
	}

	return writeFile(path, data)
}

// savePreview renders g to previews/<name>.webp under the output directory.
// Existing previews are kept unless forced.
func (p *Processor) savePreview(name string, g geo.Geometry) (string, error) {
	path := filepath.Join(p.opts.OutDir, "previews", fileName(name)+".webp")
	if !p.opts.Force {
		if info, err := os.Stat(path); err == nil && info.Size() > 0 {
			return path, nil
		}
	}

	preview := render.NewPreview(p.preview.Size)

	var (
		img *image.RGBA
		err error
	)
	switch shape := g.(type) {
	case *geo.Polygon:
		img, err = preview.Polygon(shape)
	case *geo.Polyline:
		img, err = preview.Polyline(shape)
	default:
		err = fmt.Errorf("unsupported geometry %T", g)
	}

	var buf bytes.Buffer
	if err == nil {
		err = render.EncodeWebP(&buf, img, p.preview.Quality)
	}
	if err != nil {
		return "", fmt.Errorf("preview %s: %w", name, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", err
	}
	if err := writeFile(path, buf.Bytes()); err != nil {
		return "", err
	}

	return path, nil
}

func writeFile(path string, data []byte) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := writeAndClose(f, data); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	return nil
}

// writeAndClose writes data and closes w. A failed close after a good write
// is returned, since the data may not have reached the disk.
func writeAndClose(w io.WriteCloser, data []byte) (err error) {
	defer func() {
		if closeErr := w.Close(); closeErr != nil {
			if err == nil {
				err = closeErr
			} else {
				log.Error().Err(closeErr).Msg("Failed to close file")
			}
		}
	}()

	_, err = w.Write(data)
	return err
}
