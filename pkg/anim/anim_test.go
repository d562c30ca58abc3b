package anim

import (
	"testing"
	"time"
)

func TestGroupAdvanceAppliesEasedValues(t *testing.T) {
	var v float64
	g := NewGroup(100*time.Millisecond, Tween{From: 0, To: 10, Apply: func(x float64) { v = x }}).
		WithEasing(Linear)

	if g.Advance(50 * time.Millisecond) {
		t.Fatal("group done at half duration")
	}
	if v != 5 {
		t.Fatalf("v = %v at midpoint, want 5", v)
	}
	if !g.Advance(50 * time.Millisecond) {
		t.Fatal("group not done at full duration")
	}
	if v != 10 {
		t.Fatalf("v = %v at completion, want 10", v)
	}
}

func TestGroupOvershootSnapsToTarget(t *testing.T) {
	var v float64
	g := NewGroup(100*time.Millisecond, Tween{From: 0, To: 1, Apply: func(x float64) { v = x }})
	g.Advance(time.Second)
	if v != 1 {
		t.Fatalf("v = %v after overshoot, want exactly 1", v)
	}
	// Completed groups become no-ops.
	v = -1
	if !g.Advance(time.Millisecond) {
		t.Fatal("completed group no longer reports done")
	}
	if v != -1 {
		t.Fatal("completed group still applying values")
	}
}

func TestGroupZeroDurationCompletesImmediately(t *testing.T) {
	var v float64
	g := NewGroup(0, Tween{From: 3, To: 7, Apply: func(x float64) { v = x }})
	if !g.Advance(time.Nanosecond) {
		t.Fatal("zero-duration group not done on first advance")
	}
	if v != 7 {
		t.Fatalf("v = %v, want 7", v)
	}
}

func TestSetStartReplacesInFlightGroup(t *testing.T) {
	var a, b float64
	s := NewSet()
	s.Start("ch", NewGroup(time.Second, Tween{From: 0, To: 1, Apply: func(x float64) { a = x }}))
	s.Advance(100 * time.Millisecond)
	first := a

	s.Start("ch", NewGroup(time.Second, Tween{From: 0, To: 1, Apply: func(x float64) { b = x }}))
	s.Advance(100 * time.Millisecond)
	if a != first {
		t.Fatal("replaced group kept advancing")
	}
	if b == 0 {
		t.Fatal("replacement group not advancing")
	}
}

func TestSetChannelsIndependent(t *testing.T) {
	var a, b float64
	s := NewSet()
	s.Start("one", NewGroup(time.Second, Tween{From: 0, To: 1, Apply: func(x float64) { a = x }}))
	s.Start("two", NewGroup(time.Second, Tween{From: 0, To: 1, Apply: func(x float64) { b = x }}))
	s.Advance(500 * time.Millisecond)
	if a == 0 || b == 0 {
		t.Fatal("channels did not advance independently")
	}
	if s.Active("one") == nil || s.Active("two") == nil {
		t.Fatal("channels should still be in flight")
	}
	s.Advance(time.Second)
	if s.Active("one") != nil || s.Active("two") != nil {
		t.Fatal("completed channels still reported active")
	}
}

func TestSetStopAll(t *testing.T) {
	var v float64
	s := NewSet()
	s.Start("ch", NewGroup(time.Second, Tween{From: 0, To: 1, Apply: func(x float64) { v = x }}))
	s.StopAll()
	if s.Active("ch") != nil {
		t.Fatal("channel active after StopAll")
	}
	s.Advance(time.Second)
	if v != 0 {
		t.Fatal("stopped group still applied values")
	}
}
