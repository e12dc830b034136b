package processor

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/woozymasta/geodesy/internal/format"
	"github.com/woozymasta/geodesy/internal/geo"

	"github.com/rs/zerolog/log"
)

// maxSourceSize limits downloaded and local GeoJSON sources.
const maxSourceSize = 16 << 20

// loadSource reads a GeoJSON geometry from a local file or an http(s) URL.
func loadSource(ctx context.Context, client *http.Client, source string, e geo.Ellipsoid) (geo.Geometry, error) {
	var (
		data []byte
		err  error
	)

	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		log.Debug().Str("url", source).Msg("Downloading geometry")
		data, err = download(ctx, client, source)
	} else {
		data, err = readFile(source)
	}
	if err != nil {
		return nil, err
	}

	return format.ParseGeometry(data, e)
}

func download(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	// Explicitly ignore close error as it's a read-only operation
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download %s: status %d", url, resp.StatusCode)
	}

	return io.ReadAll(io.LimitReader(resp.Body, maxSourceSize))
}

func readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	return io.ReadAll(io.LimitReader(f, maxSourceSize))
}
