package cardwave

import "time"

// DefaultPerCard is how long each card stays under the wave.
const DefaultPerCard = 2000 * time.Millisecond

// --- Frame queue ---

// FrameID identifies a pending frame callback.
type FrameID uint64

type frameRequest struct {
	id FrameID
	fn func(now time.Time)
}

// FrameQueue holds one-shot callbacks for the next frame, in the manner of a
// browser's animation-frame queue. A host calls Advance once per displayed
// frame. Callbacks requested while Advance runs are deferred to the next
// frame, so a callback that re-requests itself runs exactly once per frame.
//
// FrameQueue is not safe for concurrent use; hosts drive it from their single
// update loop.
type FrameQueue struct {
	pending []frameRequest
	running []frameRequest
	nextID  FrameID
}

// Request schedules fn to run on the next Advance and returns an id that can
// be passed to Cancel.
func (q *FrameQueue) Request(fn func(now time.Time)) FrameID {
	q.nextID++
	q.pending = append(q.pending, frameRequest{id: q.nextID, fn: fn})
	return q.nextID
}

// Cancel removes a pending callback. Cancelling an id that already ran or was
// already cancelled is a no-op.
func (q *FrameQueue) Cancel(id FrameID) {
	for i := range q.pending {
		if q.pending[i].id == id {
			copy(q.pending[i:], q.pending[i+1:])
			q.pending[len(q.pending)-1] = frameRequest{}
			q.pending = q.pending[:len(q.pending)-1]
			return
		}
	}
	// Cancel from inside Advance: the callback may still be queued in running.
	for i := range q.running {
		if q.running[i].id == id {
			q.running[i].fn = nil
			return
		}
	}
}

// Advance runs every callback that was pending when Advance was called.
func (q *FrameQueue) Advance(now time.Time) {
	if len(q.pending) == 0 {
		return
	}
	q.running, q.pending = q.pending, q.running[:0]
	for i := range q.running {
		if fn := q.running[i].fn; fn != nil {
			fn(now)
		}
	}
	for i := range q.running {
		q.running[i] = frameRequest{}
	}
	q.running = q.running[:0]
}

// Pending returns the number of callbacks waiting for the next frame.
func (q *FrameQueue) Pending() int {
	return len(q.pending)
}

// --- Wave scheduler ---

// WaveScheduler advances the wave's cycle progress from wall-clock time.
// Progress is strictly modulo the cycle: every pass is identical, and if the
// host stalls the wave jumps ahead to where the clock says it should be rather
// than replaying skipped slots.
type WaveScheduler struct {
	cards   int
	perCard time.Duration
	start   time.Time
	state   AnimationState

	handlers handlerRegistry

	frames  *FrameQueue
	frameID FrameID
	running bool
}

// NewWaveScheduler creates a scheduler for a cycle of cards*perCard. A
// non-positive perCard falls back to DefaultPerCard. It panics if cards is not
// positive.
func NewWaveScheduler(cards int, perCard time.Duration) *WaveScheduler {
	if cards <= 0 {
		panic("cardwave: wave scheduler needs at least one card")
	}
	if perCard <= 0 {
		perCard = DefaultPerCard
	}
	return &WaveScheduler{cards: cards, perCard: perCard}
}

// CycleDuration returns the time for the wave to sweep every card once.
func (w *WaveScheduler) CycleDuration() time.Duration {
	return time.Duration(w.cards) * w.perCard
}

// Start resets the cycle so that progress is 0 at now.
func (w *WaveScheduler) Start(now time.Time) {
	w.start = now
	w.state = AnimationState{}
}

// Progress computes the cycle progress in [0, 1) at now without publishing it.
// A clock reading before the start time yields 0.
func (w *WaveScheduler) Progress(now time.Time) float64 {
	elapsed := now.Sub(w.start)
	if elapsed <= 0 {
		return 0
	}
	cycle := w.CycleDuration()
	return float64(elapsed%cycle) / float64(cycle)
}

// Tick computes progress at now, stores it, and publishes it to every
// OnProgress subscriber.
func (w *WaveScheduler) Tick(now time.Time) float64 {
	w.state.Progress = w.Progress(now)
	emit(w.handlers.progress, w.state.Progress)
	return w.state.Progress
}

// State returns the most recently ticked animation state.
func (w *WaveScheduler) State() AnimationState {
	return w.state
}

// OnProgress registers fn to receive the progress published by every Tick.
func (w *WaveScheduler) OnProgress(fn func(progress float64)) CallbackHandle {
	return w.handlers.onProgress(fn)
}

// Subscribers returns the number of OnProgress callbacks still registered.
func (w *WaveScheduler) Subscribers() int {
	return w.handlers.count()
}

// Run starts the recurring frame task on frames: the cycle restarts at now
// and every Advance ticks the scheduler and re-registers it for the next
// frame. The returned stop function cancels the pending frame; it is
// idempotent. Calling Run while already running stops the previous loop
// first.
func (w *WaveScheduler) Run(frames *FrameQueue, now time.Time) (stop func()) {
	w.Stop()
	w.frames = frames
	w.running = true
	w.Start(now)
	w.frameID = frames.Request(w.frame)
	return w.Stop
}

func (w *WaveScheduler) frame(now time.Time) {
	if !w.running {
		return
	}
	w.Tick(now)
	if w.running {
		w.frameID = w.frames.Request(w.frame)
	}
}

// Stop cancels the frame loop started by Run.
func (w *WaveScheduler) Stop() {
	if !w.running {
		return
	}
	w.running = false
	w.frames.Cancel(w.frameID)
	w.frameID = 0
}

// Running reports whether the frame loop is active.
func (w *WaveScheduler) Running() bool {
	return w.running
}
