package retro

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Screenshot queues a labeled capture of the canvas render target. It is
// taken at native canvas resolution after the next Draw and written to
// ScreenshotDir with a timestamped filename.
func (c *Canvas) Screenshot(label string) {
	c.screenshotQueue = append(c.screenshotQueue, label)
}

// flushScreenshots writes every queued screenshot. Failures are logged, not
// returned, since Draw has no error path.
func (c *Canvas) flushScreenshots() {
	if len(c.screenshotQueue) == 0 {
		return
	}
	defer func() { c.screenshotQueue = c.screenshotQueue[:0] }()

	if err := os.MkdirAll(c.ScreenshotDir, 0o755); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "[retro] screenshot: mkdir %s: %v\n", c.ScreenshotDir, err)
		return
	}

	img := c.captureTarget()
	stamp := time.Now().Format("20060102_150405")
	for _, label := range c.screenshotQueue {
		path := filepath.Join(c.ScreenshotDir, fmt.Sprintf("%s_%s.png", stamp, sanitizeLabel(label)))
		if err := writePNG(path, img); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "[retro] screenshot: %v\n", err)
		}
	}
}

// captureTarget reads the render target into a straight-alpha image.
func (c *Canvas) captureTarget() *image.NRGBA {
	rt := c.comp.target
	w, h := rt.Width(), rt.Height()
	pixels := make([]byte, 4*w*h)
	rt.Image().ReadPixels(pixels)
	return unpremultiply(pixels, w, h)
}

// unpremultiply converts premultiplied RGBA bytes to an NRGBA image.
func unpremultiply(pixels []byte, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i+3 < len(pixels) && i+3 < len(img.Pix); i += 4 {
		r, g, b, a := pixels[i], pixels[i+1], pixels[i+2], pixels[i+3]
		if a > 0 && a < 255 {
			r = uint8(min(int(r)*255/int(a), 255))
			g = uint8(min(int(g)*255/int(a), 255))
			b = uint8(min(int(b)*255/int(a), 255))
		}
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = r, g, b, a
	}
	return img
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("retro: create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("retro: encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
