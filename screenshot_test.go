package retro

import "testing"

func TestSanitizeLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"hello", "hello"},
		{"after-resize", "after-resize"},
		{"frame.01", "frame.01"},
		{"has spaces", "has_spaces"},
		{"path/to/thing", "path_to_thing"},
		{"", "unlabeled"},
		{"   ", "unlabeled"},
		{"Zoom4x", "Zoom4x"},
	}
	for _, tt := range tests {
		if got := sanitizeLabel(tt.in); got != tt.want {
			t.Errorf("sanitizeLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestScreenshotQueue(t *testing.T) {
	c := NewCanvas(DefaultConfig())
	if c.ScreenshotDir != "screenshots" {
		t.Errorf("ScreenshotDir = %q, want %q", c.ScreenshotDir, "screenshots")
	}
	c.Screenshot("a")
	c.Screenshot("b")
	if len(c.screenshotQueue) != 2 || c.screenshotQueue[0] != "a" || c.screenshotQueue[1] != "b" {
		t.Errorf("queue = %v, want [a b]", c.screenshotQueue)
	}
}

func TestUnpremultiply(t *testing.T) {
	pixels := []byte{
		255, 0, 0, 255, // opaque red
		64, 32, 0, 128, // half-alpha orange
		0, 0, 0, 0, // transparent
	}
	img := unpremultiply(pixels, 3, 1)

	tests := []struct {
		x    int
		want [4]uint8
	}{
		{0, [4]uint8{255, 0, 0, 255}},
		{1, [4]uint8{127, 63, 0, 128}},
		{2, [4]uint8{0, 0, 0, 0}},
	}
	for _, tt := range tests {
		c := img.NRGBAAt(tt.x, 0)
		got := [4]uint8{c.R, c.G, c.B, c.A}
		if got != tt.want {
			t.Errorf("pixel %d = %v, want %v", tt.x, got, tt.want)
		}
	}
}
