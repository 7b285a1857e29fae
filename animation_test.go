package cardwave

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func TestTweenTransformReachesTarget(t *testing.T) {
	cur := IdentityTransform
	to := Transform{TranslateY: -20, TranslateZ: 30, RotateY: 8, Scale: 1.15}
	tw := TweenTransform(&cur, to, 1.0, ease.Linear)

	tw.Update(0.5)
	if tw.Done {
		t.Fatal("Done after half the duration")
	}
	if math.Abs(cur.TranslateY+10) > 0.01 {
		t.Errorf("midway TranslateY = %v, want -10", cur.TranslateY)
	}

	tw.Update(0.5)
	if !tw.Done {
		t.Fatal("not Done after the full duration")
	}
	if !transformNear(cur, to, 1e-4) {
		t.Errorf("final = %+v, want %+v", cur, to)
	}

	// Further updates are no-ops.
	tw.Update(1)
	if !transformNear(cur, to, 1e-4) {
		t.Errorf("after Done = %+v, want %+v", cur, to)
	}
}

func TestCardMotionGlidesToTarget(t *testing.T) {
	m := NewCardMotion(IdentityTransform)
	if !m.Settled() {
		t.Fatal("new motion not settled")
	}

	lifted := Transform{TranslateZ: 60, Scale: 1.08}
	got := m.Update(lifted, 0.1)
	if m.Settled() {
		t.Fatal("settled after 0.1s")
	}
	if got.TranslateZ <= 0 || got.TranslateZ >= 60 {
		t.Errorf("TranslateZ after 0.1s = %v, want strictly between 0 and 60", got.TranslateZ)
	}

	got = m.Update(lifted, 0.5)
	if !m.Settled() || got != lifted {
		t.Errorf("after 0.6s: settled %v, transform %+v, want %+v", m.Settled(), got, lifted)
	}
}

func TestCardMotionRetargetsFromCurrent(t *testing.T) {
	m := NewCardMotion(IdentityTransform)
	lifted := Transform{TranslateZ: 60, Scale: 1.08}
	mid := m.Update(lifted, 0.1)

	got := m.Update(IdentityTransform, 0)
	if math.Abs(got.TranslateZ-mid.TranslateZ) > 1e-3 {
		t.Errorf("retarget jumped from %v to %v", mid.TranslateZ, got.TranslateZ)
	}
	m.Update(IdentityTransform, 1)
	if !m.Settled() || m.Current != IdentityTransform {
		t.Errorf("did not settle back at identity: %+v", m.Current)
	}
}

func TestEntranceStagger(t *testing.T) {
	e := NewEntrance(2) // starts after 0.1s

	tr, opacity := e.Update(0.05)
	if opacity != 0 {
		t.Errorf("opacity before delay = %v, want 0", opacity)
	}
	if tr.TranslateY != entranceLift {
		t.Errorf("TranslateY before delay = %v, want %v", tr.TranslateY, entranceLift)
	}

	_, opacity = e.Update(0.35) // 0.3s into the entrance
	if opacity < 0.4 || opacity > 0.6 {
		t.Errorf("opacity midway = %v, want about 0.5", opacity)
	}

	tr, opacity = e.Update(1)
	if !e.Done || opacity != 1 || tr != IdentityTransform {
		t.Errorf("after entrance: done %v, opacity %v, transform %+v", e.Done, opacity, tr)
	}
}
