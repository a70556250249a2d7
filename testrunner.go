package retro

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"gopkg.in/yaml.v3"
)

// testStep represents a single action in a test script. Coordinates are in
// physical-surface pixels.
type testStep struct {
	Action string  `yaml:"action"`
	Label  string  `yaml:"label,omitempty"`
	X      float64 `yaml:"x,omitempty"`
	Y      float64 `yaml:"y,omitempty"`
	FromX  float64 `yaml:"fromX,omitempty"`
	FromY  float64 `yaml:"fromY,omitempty"`
	ToX    float64 `yaml:"toX,omitempty"`
	ToY    float64 `yaml:"toY,omitempty"`
	Frames int     `yaml:"frames,omitempty"`
	Button string  `yaml:"button,omitempty"`
	ID     uint64  `yaml:"id,omitempty"`
	Phase  string  `yaml:"phase,omitempty"`
	Width  float64 `yaml:"width,omitempty"`
	Height float64 `yaml:"height,omitempty"`
}

// testScript is the top-level structure for a test script.
type testScript struct {
	Steps []testStep `yaml:"steps"`
}

// TestRunner sequences injected input, surface resizes and screenshots across
// frames for automated runs. Attach to a Canvas via SetTestRunner.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a YAML (or JSON) test script and returns a
// TestRunner ready to be attached to a Canvas via SetTestRunner.
//
//	steps:
//	  - {action: move, x: 120, y: 80}
//	  - {action: click, x: 120, y: 80}
//	  - {action: touch, id: 1, phase: started, x: 40, y: 40}
//	  - {action: wait, frames: 3}
//	  - {action: resize, width: 1280, height: 720}
//	  - {action: screenshot, label: after-resize}
func LoadTestScript(data []byte) (*TestRunner, error) {
	var script testScript
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("retro: parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("retro: parse test script: no steps")
	}
	for i, st := range script.Steps {
		if err := st.validate(); err != nil {
			return nil, fmt.Errorf("retro: parse test script: step %d: %w", i, err)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

func (st testStep) validate() error {
	switch st.Action {
	case "move", "click", "drag", "wait", "screenshot", "tap":
	case "press", "release":
		if _, ok := parseMouseButton(st.Button); !ok {
			return fmt.Errorf("unknown button %q", st.Button)
		}
	case "touch":
		if _, ok := parseTouchPhase(st.Phase); !ok {
			return fmt.Errorf("unknown touch phase %q", st.Phase)
		}
	case "resize", "resolution":
		if !(st.Width > 0) || !(st.Height > 0) {
			return fmt.Errorf("%s needs a positive width and height", st.Action)
		}
	default:
		return fmt.Errorf("unknown action %q", st.Action)
	}
	return nil
}

func parseMouseButton(s string) (ebiten.MouseButton, bool) {
	switch strings.ToLower(s) {
	case "", "left", "primary":
		return ebiten.MouseButtonLeft, true
	case "right", "secondary":
		return ebiten.MouseButtonRight, true
	case "middle":
		return ebiten.MouseButtonMiddle, true
	}
	return 0, false
}

func parseTouchPhase(s string) (TouchPhase, bool) {
	switch strings.ToLower(s) {
	case "started", "start":
		return TouchStarted, true
	case "moved", "move":
		return TouchMoved, true
	case "ended", "end":
		return TouchEnded, true
	case "canceled", "cancelled", "cancel":
		return TouchCanceled, true
	}
	return 0, false
}

// SetTestRunner attaches a TestRunner to the canvas. The runner advances once
// per Update, before input ingestion.
func (c *Canvas) SetTestRunner(runner *TestRunner) {
	c.testRunner = runner
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the test runner by one frame. Called from Canvas.Update.
func (r *TestRunner) step(c *Canvas) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(c.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "screenshot":
		c.Screenshot(st.Label)
	case "move":
		c.InjectCursorMove(st.X, st.Y)
	case "press", "release":
		b, _ := parseMouseButton(st.Button)
		c.InjectButton(b, st.Action == "press")
	case "click":
		c.InjectClick(st.X, st.Y)
	case "drag":
		c.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "touch":
		phase, _ := parseTouchPhase(st.Phase)
		c.InjectTouch(st.ID, phase, st.X, st.Y)
	case "tap":
		c.InjectTap(st.ID, st.X, st.Y)
	case "resize":
		c.SetSurfaceSize(int(st.Width), int(st.Height))
	case "resolution":
		c.config.Resolution = Vec2{st.Width, st.Height}
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(c.injectQueue) == 0 {
		r.done = true
	}
}
