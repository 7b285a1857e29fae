package cardwave

import (
	"encoding/json"
	"fmt"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	Card   int     `json:"card,omitempty"`
	Target string  `json:"target,omitempty"`
	Key    string  `json:"key,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

// TestRunner sequences injected input events and snapshots across frames
// for automated testing. Attach to a Gallery via SetTestRunner.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON test script and returns a TestRunner ready
// to be attached to a Gallery via SetTestRunner.
//
// Actions: "move" (x, y), "enter" and "leave" (card), "click" (card, target
// name, or x/y), "key" (key name), "wait" (frames), "snapshot" (label).
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		if st.Card < 0 {
			return nil, fmt.Errorf("parse test script: step %d: negative card %d", i, st.Card)
		}
		switch st.Action {
		case "move", "enter", "leave", "click", "wait", "snapshot":
		case "key":
			if ParseKey(st.Key) == KeyUnknown {
				return nil, fmt.Errorf("parse test script: step %d: unknown key %q", i, st.Key)
			}
		default:
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches a TestRunner to the gallery. The runner's step
// method is called from Gallery.Update before injected input is processed.
func (g *Gallery) SetTestRunner(runner *TestRunner) {
	g.testRunner = runner
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the test runner by one frame. Called from Gallery.Update.
func (r *TestRunner) step(g *Gallery) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(g.injectQueue) > 0 {
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

	if st.Card != 0 && !g.cards.Contains(CardID(st.Card)) {
		// Card ids past the gallery's size are skipped, like any unknown card.
		r.finishIfDrained(g)
		return
	}

	switch st.Action {
	case "snapshot":
		g.Snapshot(st.Label)
	case "move":
		g.InjectPointerMove(st.X, st.Y)
	case "enter":
		g.InjectPointerEnter(CardID(st.Card))
	case "leave":
		g.InjectPointerLeave(CardID(st.Card))
	case "click":
		switch {
		case st.Card != 0:
			g.InjectClick(CardTarget(CardID(st.Card)))
		case st.Target != "":
			g.InjectClick(ParseTarget(st.Target))
		default:
			g.InjectClickAt(st.X, st.Y)
		}
	case "key":
		g.InjectKey(ParseKey(st.Key))
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	r.finishIfDrained(g)
}

func (r *TestRunner) finishIfDrained(g *Gallery) {
	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(g.injectQueue) == 0 {
		r.done = true
	}
}
