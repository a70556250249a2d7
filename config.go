package retro

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config describes the virtual canvas. It is a plain comparable value: the
// Canvas keeps the last applied copy and compares it against the live config
// every frame, so in-place field edits take effect on the next frame.
type Config struct {
	// Resolution is the virtual canvas size in canvas pixels.
	Resolution Vec2
	// Scale selects how the canvas is magnified onto the surface.
	Scale ScaleMode
	// LockCursor keeps the OS cursor inside the visible canvas area.
	LockCursor bool
	// Clear is the canvas camera's background.
	Clear ClearColor
	// Letterbox is the surface color drawn around the scaled canvas.
	Letterbox Color
}

// DefaultConfig returns a 160x144 AutoFit canvas without cursor lock.
func DefaultConfig() Config {
	return Config{
		Resolution: Vec2{160, 144},
		Scale:      AutoFit(false),
		Letterbox:  ColorBlack,
	}
}

// Validate reports configuration values the compositor cannot honour.
func (c Config) Validate() error {
	if !(c.Resolution.X > 0) || !(c.Resolution.Y > 0) {
		return fmt.Errorf("resolution must be positive, got %vx%v", c.Resolution.X, c.Resolution.Y)
	}
	switch c.Scale.Kind {
	case ScaleAutoFit:
	case ScaleManual:
		if !(c.Scale.Factor > 0) {
			return fmt.Errorf("manual scale factor must be positive, got %v", c.Scale.Factor)
		}
	default:
		return fmt.Errorf("unknown scale kind %d", c.Scale.Kind)
	}
	return nil
}

// --- YAML ---

type fileConfig struct {
	Resolution *struct {
		Width  float64 `yaml:"width"`
		Height float64 `yaml:"height"`
	} `yaml:"resolution"`
	Scale *struct {
		Mode         string  `yaml:"mode"`
		PixelPerfect bool    `yaml:"pixel_perfect"`
		Factor       float64 `yaml:"factor"`
	} `yaml:"scale"`
	LockCursor *bool      `yaml:"lock_cursor"`
	ClearColor *yamlColor `yaml:"clear_color"`
	Letterbox  *yamlColor `yaml:"letterbox"`
}

// yamlColor accepts "#RRGGBB", "#RRGGBBAA", "default" or "none".
type yamlColor struct {
	mode  ClearMode
	color Color
}

func (c *yamlColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return errors.New("color must be a string")
	}

	switch strings.ToLower(strings.TrimSpace(value.Value)) {
	case "default", "":
		c.mode = ClearDefault
		return nil
	case "none":
		c.mode = ClearNone
		return nil
	}

	s := strings.TrimPrefix(value.Value, "#")
	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (float64, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return float64(v) / 255, err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := 1.0
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.mode = ClearCustom
	c.color = Color{r, g, b, a}
	return nil
}

// ParseConfig decodes a YAML canvas config. Fields missing from the document
// keep their DefaultConfig values.
//
//	resolution: {width: 480, height: 270}
//	scale: {mode: autofit, pixel_perfect: true}
//	lock_cursor: false
//	clear_color: "#000000"
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return cfg, fmt.Errorf("retro: unmarshal config: %w", err)
	}

	if fc.Resolution != nil {
		cfg.Resolution = Vec2{fc.Resolution.Width, fc.Resolution.Height}
	}
	if fc.Scale != nil {
		switch strings.ToLower(fc.Scale.Mode) {
		case "", "autofit", "auto_fit", "auto":
			cfg.Scale = AutoFit(fc.Scale.PixelPerfect)
		case "manual":
			cfg.Scale = Manual(fc.Scale.Factor)
		default:
			return cfg, fmt.Errorf("retro: unmarshal config: unknown scale mode %q", fc.Scale.Mode)
		}
	}
	if fc.LockCursor != nil {
		cfg.LockCursor = *fc.LockCursor
	}
	if fc.ClearColor != nil {
		cfg.Clear = ClearColor{Mode: fc.ClearColor.mode, Color: fc.ClearColor.color}
	}
	if fc.Letterbox != nil {
		if c, ok := (ClearColor{Mode: fc.Letterbox.mode, Color: fc.Letterbox.color}).resolve(); ok {
			cfg.Letterbox = c
		} else {
			cfg.Letterbox = Color{}
		}
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("retro: invalid config: %w", err)
	}
	return cfg, nil
}

// LoadConfig reads and parses a YAML canvas config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultConfig(), fmt.Errorf("retro: load config %s: %w", path, err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}
