// Package media turns remote images into ANSI block previews.
package media

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"strings"
	"time"
)

// HTTPLoader implements app.ImageLoader over HTTP.
type HTTPLoader struct {
	http *http.Client
}

// NewHTTPLoader creates an HTTPLoader with a short timeout.
func NewHTTPLoader() *HTTPLoader {
	return &HTTPLoader{http: &http.Client{Timeout: 6 * time.Second}}
}

// Load fetches url and renders it w cells wide and h lines tall.
func (l *HTTPLoader) Load(ctx context.Context, url string, w, h int) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("creating image request: %w", err)
	}
	resp, err := l.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching image: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("preview status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, 4*1024*1024))
	if err != nil {
		return "", fmt.Errorf("reading image: %w", err)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("decoding image: %w", err)
	}
	return renderANSIThumbnail(img, w, h), nil
}

// Placeholder renders the fixed picture shown when an image cannot load.
func (l *HTTPLoader) Placeholder(w, h int) string {
	return Placeholder(w, h)
}

// Placeholder renders a muted diagonal gradient of the requested size.
func Placeholder(w, h int) string {
	const size = 32
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	for y := range size {
		for x := range size {
			v := uint8(70 + (x+y)*60/(2*size))
			img.SetNRGBA(x, y, color.NRGBA{R: v, G: v + 6, B: v + 18, A: 0xff})
		}
	}
	return renderANSIThumbnail(img, w, h)
}

// renderANSIThumbnail samples img into w×h cells of two-space blocks with a
// truecolor background.
func renderANSIThumbnail(img image.Image, w, h int) string {
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return ""
	}
	if w < 4 {
		w = 4
	}
	if h < 2 {
		h = 2
	}
	var out strings.Builder
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			sx := b.Min.X + x*b.Dx()/w
			sy := b.Min.Y + y*b.Dy()/h
			c := color.NRGBAModel.Convert(img.At(sx, sy)).(color.NRGBA)
			fmt.Fprintf(&out, "\x1b[48;2;%d;%d;%dm  \x1b[0m", c.R, c.G, c.B)
		}
		if y < h-1 {
			out.WriteByte('\n')
		}
	}
	return out.String()
}
