package cardwave

import (
	"math"
	"testing"
	"time"
)

var t0 = time.Unix(1700000000, 0)

func TestWaveProgress(t *testing.T) {
	w := NewWaveScheduler(31, 2*time.Second)
	w.Start(t0)

	tests := []struct {
		name    string
		elapsed time.Duration
		want    float64
	}{
		{"start", 0, 0},
		{"first card", time.Second, 1.0 / 62},
		{"half cycle", 31 * time.Second, 0.5},
		{"full cycle wraps", 62 * time.Second, 0},
		{"one and a half cycles", 93 * time.Second, 0.5},
		{"clock before start", -5 * time.Second, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := w.Progress(t0.Add(tt.elapsed))
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Progress(+%v) = %v, want %v", tt.elapsed, got, tt.want)
			}
			if got < 0 || got >= 1 {
				t.Errorf("Progress(+%v) = %v outside [0, 1)", tt.elapsed, got)
			}
		})
	}
}

func TestWaveCycleDuration(t *testing.T) {
	if got := NewWaveScheduler(31, 0).CycleDuration(); got != 62*time.Second {
		t.Errorf("CycleDuration = %v, want 62s", got)
	}
	if got := NewWaveScheduler(3, 500*time.Millisecond).CycleDuration(); got != 1500*time.Millisecond {
		t.Errorf("CycleDuration = %v, want 1.5s", got)
	}
}

func TestWaveSchedulerPanicsWithoutCards(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("NewWaveScheduler(0) did not panic")
		}
	}()
	NewWaveScheduler(0, time.Second)
}

func TestWaveStallSkipsSlots(t *testing.T) {
	w := NewWaveScheduler(4, time.Second)
	w.Start(t0)
	w.Tick(t0.Add(500 * time.Millisecond))
	if got := w.State().ActiveIndex(4); got != 0 {
		t.Fatalf("active = %d, want 0", got)
	}
	// A long stall jumps straight to the wall-clock slot.
	w.Tick(t0.Add(2500 * time.Millisecond))
	if got := w.State().ActiveIndex(4); got != 2 {
		t.Errorf("active after stall = %d, want 2", got)
	}
}

func TestWaveTickPublishes(t *testing.T) {
	w := NewWaveScheduler(2, time.Second)
	w.Start(t0)

	var got []float64
	h := w.OnProgress(func(p float64) { got = append(got, p) })
	w.Tick(t0.Add(500 * time.Millisecond))
	w.Tick(t0.Add(1500 * time.Millisecond))

	if len(got) != 2 || got[0] != 0.25 || got[1] != 0.75 {
		t.Errorf("published = %v, want [0.25 0.75]", got)
	}
	if w.State().Progress != 0.75 {
		t.Errorf("State().Progress = %v, want 0.75", w.State().Progress)
	}

	h.Remove()
	if w.Subscribers() != 0 {
		t.Errorf("Subscribers = %d, want 0", w.Subscribers())
	}
}

func TestWaveRestartResetsProgress(t *testing.T) {
	w := NewWaveScheduler(2, time.Second)
	w.Start(t0)
	w.Tick(t0.Add(700 * time.Millisecond))

	later := t0.Add(time.Hour)
	w.Start(later)
	if w.State().Progress != 0 {
		t.Errorf("State after restart = %v, want 0", w.State().Progress)
	}
	if got := w.Tick(later); got != 0 {
		t.Errorf("Tick at restart = %v, want 0", got)
	}
}

// --- Frame queue ---

func TestFrameQueueDefersRequestsMadeDuringAdvance(t *testing.T) {
	var q FrameQueue
	runs := 0
	var loop func(time.Time)
	loop = func(time.Time) {
		runs++
		q.Request(loop)
	}
	q.Request(loop)

	q.Advance(t0)
	if runs != 1 {
		t.Fatalf("runs = %d, want 1", runs)
	}
	if q.Pending() != 1 {
		t.Fatalf("Pending = %d, want 1", q.Pending())
	}
	q.Advance(t0)
	q.Advance(t0)
	if runs != 3 {
		t.Errorf("runs = %d, want 3", runs)
	}
}

func TestFrameQueueCancel(t *testing.T) {
	var q FrameQueue
	ran := false
	id := q.Request(func(time.Time) { ran = true })
	q.Cancel(id)
	q.Advance(t0)
	if ran {
		t.Error("cancelled frame ran")
	}
	if q.Pending() != 0 {
		t.Errorf("Pending = %d, want 0", q.Pending())
	}
	q.Cancel(id) // unknown ids are ignored
}

func TestFrameQueueCancelDuringAdvance(t *testing.T) {
	var q FrameQueue
	var second FrameID
	ran := false
	q.Request(func(time.Time) { q.Cancel(second) })
	second = q.Request(func(time.Time) { ran = true })

	q.Advance(t0)
	if ran {
		t.Error("frame cancelled by an earlier callback in the same frame ran")
	}
}

func TestFrameQueuePassesTimestamp(t *testing.T) {
	var q FrameQueue
	var got time.Time
	q.Request(func(now time.Time) { got = now })
	now := t0.Add(42 * time.Millisecond)
	q.Advance(now)
	if !got.Equal(now) {
		t.Errorf("callback time = %v, want %v", got, now)
	}
}

// --- Frame loop ---

func TestWaveRunAndStop(t *testing.T) {
	var q FrameQueue
	w := NewWaveScheduler(4, time.Second)

	stop := w.Run(&q, t0)
	if !w.Running() {
		t.Fatal("Running = false after Run")
	}
	for i := 1; i <= 3; i++ {
		q.Advance(t0.Add(time.Duration(i) * time.Second))
		if got := w.State().ActiveIndex(4); got != i {
			t.Errorf("frame %d: active = %d, want %d", i, got, i)
		}
		if q.Pending() != 1 {
			t.Errorf("frame %d: Pending = %d, want 1", i, q.Pending())
		}
	}

	stop()
	if w.Running() {
		t.Error("Running = true after stop")
	}
	if q.Pending() != 0 {
		t.Errorf("Pending after stop = %d, want 0", q.Pending())
	}
	stop() // idempotent

	before := w.State()
	q.Advance(t0.Add(10 * time.Second))
	if w.State() != before {
		t.Error("state changed after stop")
	}
}

func TestWaveStopFromSubscriber(t *testing.T) {
	var q FrameQueue
	w := NewWaveScheduler(4, time.Second)
	stop := w.Run(&q, t0)
	w.OnProgress(func(float64) { stop() })

	q.Advance(t0.Add(time.Second))
	if q.Pending() != 0 {
		t.Errorf("Pending = %d, want 0 after subscriber stopped the loop", q.Pending())
	}
}

func TestWaveRunTwiceKeepsOneFrame(t *testing.T) {
	var q FrameQueue
	w := NewWaveScheduler(4, time.Second)
	w.Run(&q, t0)
	w.Run(&q, t0.Add(time.Second))
	if q.Pending() != 1 {
		t.Errorf("Pending = %d, want 1", q.Pending())
	}
	q.Advance(t0.Add(time.Second))
	if got := w.State().Progress; got != 0 {
		t.Errorf("Progress = %v, want 0 from the second start", got)
	}
}
