package cardwave

import "testing"

// keyBus is a minimal KeySource.
type keyBus struct {
	reg handlerRegistry
}

func (b *keyBus) OnKeyDown(fn func(KeyContext) bool) CallbackHandle {
	return b.reg.onKeyDown(fn)
}

func (b *keyBus) press(k Key) bool {
	return b.reg.emitKey(KeyContext{Key: k})
}

func newTestLightbox(n int) (*Lightbox, *keyBus) {
	bus := &keyBus{}
	return NewLightbox(NewCardSet(n), bus), bus
}

func TestLightboxOpenClose(t *testing.T) {
	lb, _ := newTestLightbox(31)
	if lb.State() != Closed {
		t.Fatalf("initial state = %v, want Closed", lb.State())
	}

	lb.Open(5)
	if lb.State() != OpenOn(5) {
		t.Errorf("after Open(5) = %v, want Open(5)", lb.State())
	}
	if got := lb.Counter(); got != "5 / 31" {
		t.Errorf("Counter = %q, want %q", got, "5 / 31")
	}

	lb.Close()
	if lb.State() != Closed {
		t.Errorf("after Close = %v, want Closed", lb.State())
	}
	if got := lb.Counter(); got != "" {
		t.Errorf("closed Counter = %q, want empty", got)
	}

	lb.Close()
	if lb.State() != Closed {
		t.Errorf("Close on closed = %v, want Closed", lb.State())
	}
}

func TestLightboxWraps(t *testing.T) {
	tests := []struct {
		name  string
		start CardID
		step  func(*Lightbox)
		want  CardID
	}{
		{"next from last", 31, (*Lightbox).Next, 1},
		{"prev from first", 1, (*Lightbox).Prev, 31},
		{"next in middle", 5, (*Lightbox).Next, 6},
		{"prev in middle", 5, (*Lightbox).Prev, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lb, _ := newTestLightbox(31)
			lb.Open(tt.start)
			tt.step(lb)
			if want := OpenOn(tt.want); lb.State() != want {
				t.Errorf("state = %v, want %v", lb.State(), want)
			}
		})
	}
}

func TestLightboxFullCycleReturnsToStart(t *testing.T) {
	const n = 7
	for start := CardID(1); start <= n; start++ {
		lb, _ := newTestLightbox(n)
		lb.Open(start)
		for range n {
			lb.Next()
		}
		if lb.State() != OpenOn(start) {
			t.Errorf("Next x%d from %d = %v", n, start, lb.State())
		}
		for range n {
			lb.Prev()
		}
		if lb.State() != OpenOn(start) {
			t.Errorf("Prev x%d from %d = %v", n, start, lb.State())
		}
	}
}

func TestLightboxSingleCard(t *testing.T) {
	lb, _ := newTestLightbox(1)
	lb.Open(1)
	lb.Next()
	lb.Prev()
	if lb.State() != OpenOn(1) {
		t.Errorf("state = %v, want Open(1)", lb.State())
	}
}

func TestLightboxNavigationWhenClosed(t *testing.T) {
	lb, _ := newTestLightbox(31)
	lb.Next()
	lb.Prev()
	if lb.State() != Closed {
		t.Errorf("state = %v, want Closed", lb.State())
	}
	if lb.HandleKey(KeyArrowRight) {
		t.Error("closed lightbox consumed ArrowRight")
	}
}

func TestLightboxOpenOutOfRangePanics(t *testing.T) {
	for _, id := range []CardID{0, 32, -1} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("Open(%d) did not panic", id)
				}
			}()
			lb, _ := newTestLightbox(31)
			lb.Open(id)
		}()
	}
}

func TestLightboxKeys(t *testing.T) {
	lb, bus := newTestLightbox(31)
	lb.Open(31)

	steps := []struct {
		key  Key
		want LightboxState
	}{
		{KeyArrowRight, OpenOn(1)},
		{KeyArrowRight, OpenOn(2)},
		{KeyArrowLeft, OpenOn(1)},
		{KeyArrowLeft, OpenOn(31)},
		{KeyEscape, Closed},
	}
	for i, st := range steps {
		if !bus.press(st.key) {
			t.Errorf("step %d: %v not consumed", i, st.key)
		}
		if lb.State() != st.want {
			t.Errorf("step %d: after %v state = %v, want %v", i, st.key, lb.State(), st.want)
		}
	}
}

func TestLightboxKeyBindingScopedToOpen(t *testing.T) {
	lb, bus := newTestLightbox(31)
	if lb.Bound() || bus.reg.count() != 0 {
		t.Fatal("closed lightbox holds a key binding")
	}

	lb.Open(3)
	if !lb.Bound() || bus.reg.count() != 1 {
		t.Fatalf("open lightbox: Bound = %v, bindings = %d, want true/1", lb.Bound(), bus.reg.count())
	}

	lb.Next()
	if bus.reg.count() != 1 {
		t.Errorf("navigation changed bindings to %d, want 1", bus.reg.count())
	}

	lb.Close()
	if lb.Bound() || bus.reg.count() != 0 {
		t.Errorf("after Close: Bound = %v, bindings = %d, want false/0", lb.Bound(), bus.reg.count())
	}

	if bus.press(KeyEscape) {
		t.Error("key consumed after Close")
	}
}

func TestLightboxKeysPreemptOlderHandlers(t *testing.T) {
	lb, bus := newTestLightbox(31)
	background := 0
	bus.OnKeyDown(func(KeyContext) bool {
		background++
		return true
	})

	lb.Open(10)
	bus.press(KeyArrowRight)
	if background != 0 {
		t.Errorf("background handler saw %d keys while lightbox open", background)
	}
	if lb.State() != OpenOn(11) {
		t.Errorf("state = %v, want Open(11)", lb.State())
	}

	lb.Close()
	bus.press(KeyArrowRight)
	if background != 1 {
		t.Errorf("background handler saw %d keys after close, want 1", background)
	}
}

func TestLightboxHandleClick(t *testing.T) {
	lb, _ := newTestLightbox(31)

	if lb.HandleClick(ClickTarget{Kind: TargetBackdrop}) {
		t.Error("backdrop click consumed while closed")
	}
	if !lb.HandleClick(CardTarget(4)) || lb.State() != OpenOn(4) {
		t.Fatalf("card click: state = %v, want Open(4)", lb.State())
	}
	if !lb.HandleClick(CardTarget(9)) || lb.State() != OpenOn(4) {
		t.Errorf("card click while open changed state to %v", lb.State())
	}
	lb.HandleClick(ClickTarget{Kind: TargetNext})
	lb.HandleClick(ClickTarget{Kind: TargetNext})
	lb.HandleClick(ClickTarget{Kind: TargetPrev})
	if lb.State() != OpenOn(5) {
		t.Errorf("after next, next, prev = %v, want Open(5)", lb.State())
	}
	lb.HandleClick(ClickTarget{Kind: TargetClose})
	if lb.State() != Closed {
		t.Errorf("after close control = %v, want Closed", lb.State())
	}

	lb.Open(2)
	lb.HandleClick(ClickTarget{Kind: TargetBackdrop})
	if lb.State() != Closed {
		t.Errorf("after backdrop = %v, want Closed", lb.State())
	}
	if lb.HandleClick(ClickTarget{}) {
		t.Error("TargetNone consumed")
	}
}

func TestLightboxOnChange(t *testing.T) {
	lb, _ := newTestLightbox(3)
	var changes []LightboxChange
	h := lb.OnChange(func(ch LightboxChange) { changes = append(changes, ch) })

	lb.Open(3)
	lb.Next()
	lb.Close()
	lb.Close()

	want := []LightboxChange{
		{From: Closed, To: OpenOn(3)},
		{From: OpenOn(3), To: OpenOn(1)},
		{From: OpenOn(1), To: Closed},
	}
	if len(changes) != len(want) {
		t.Fatalf("changes = %v, want %v", changes, want)
	}
	for i := range want {
		if changes[i] != want[i] {
			t.Errorf("change %d = %v, want %v", i, changes[i], want[i])
		}
	}

	h.Remove()
	lb.Open(1)
	if len(changes) != 3 {
		t.Errorf("removed subscriber still notified")
	}
}

func TestLightboxRelease(t *testing.T) {
	lb, bus := newTestLightbox(31)
	notified := 0
	lb.OnChange(func(LightboxChange) { notified++ })
	lb.Open(7)

	lb.Release()
	if lb.State() != Closed || lb.Bound() || bus.reg.count() != 0 {
		t.Errorf("after Release: state = %v, Bound = %v, bindings = %d", lb.State(), lb.Bound(), bus.reg.count())
	}
	if notified != 1 {
		t.Errorf("Release notified subscribers: %d changes, want 1", notified)
	}
}

func TestLightboxWithoutKeySource(t *testing.T) {
	lb := NewLightbox(NewCardSet(3), nil)
	lb.Open(2)
	if lb.Bound() {
		t.Error("Bound = true without a key source")
	}
	lb.Close()
}

func TestLightboxStateString(t *testing.T) {
	if got := Closed.String(); got != "Closed" {
		t.Errorf("Closed.String() = %q", got)
	}
	if got := OpenOn(12).String(); got != "Open(12)" {
		t.Errorf("OpenOn(12).String() = %q", got)
	}
}
