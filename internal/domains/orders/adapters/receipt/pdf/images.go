package pdf

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const maxImageBytes = 10 << 20

// ImageSource resolves a plan image reference to raw bytes.
type ImageSource interface {
	Load(ctx context.Context, ref string) ([]byte, error)
}

// MediaImageSource fetches remote images over HTTP and reads relative references from a media root.
type MediaImageSource struct {
	httpClient *http.Client
	mediaRoot  string
}

// NewMediaImageSource builds an image source. A zero timeout falls back to five seconds.
func NewMediaImageSource(mediaRoot string, timeout time.Duration) *MediaImageSource {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &MediaImageSource{
		httpClient: &http.Client{Timeout: timeout, Transport: otelhttp.NewTransport(http.DefaultTransport)},
		mediaRoot:  strings.TrimSpace(mediaRoot),
	}
}

func (s *MediaImageSource) Load(ctx context.Context, ref string) ([]byte, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, errors.New("image reference is empty")
	}
	if u, err := url.Parse(ref); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		return s.fetch(ctx, ref)
	}
	return s.readLocal(ref)
}

func (s *MediaImageSource) fetch(ctx context.Context, ref string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch image: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch image: unexpected status %d", resp.StatusCode)
	}
	return readLimited(resp.Body)
}

func (s *MediaImageSource) readLocal(ref string) ([]byte, error) {
	if s.mediaRoot == "" {
		return nil, errors.New("media root not configured")
	}
	rel := strings.TrimPrefix(filepath.ToSlash(ref), "/")
	rel = strings.TrimPrefix(rel, "media/")
	root, err := os.OpenRoot(s.mediaRoot)
	if err != nil {
		return nil, fmt.Errorf("open media root: %w", err)
	}
	defer root.Close()
	f, err := root.Open(filepath.FromSlash(rel))
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()
	return readLimited(f)
}

func readLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxImageBytes+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxImageBytes {
		return nil, errors.New("image exceeds size limit")
	}
	return data, nil
}

func imageType(data []byte) (string, error) {
	switch http.DetectContentType(data) {
	case "image/jpeg":
		return "JPG", nil
	case "image/png":
		return "PNG", nil
	case "image/gif":
		return "GIF", nil
	default:
		return "", errors.New("unsupported image format")
	}
}
