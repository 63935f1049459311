package flurry

import (
	"sync"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestHandToScene(t *testing.T) {
	tests := []struct {
		x, y float64
		want mgl32.Vec3
	}{
		{0.5, 0.5, mgl32.Vec3{0, 0, 2}},
		{1, 0, mgl32.Vec3{4, 2.5, 2}},
		{0, 1, mgl32.Vec3{-4, -2.5, 2}},
		{0.25, 0.75, mgl32.Vec3{-2, -1.25, 2}},
	}
	for _, tt := range tests {
		if got := HandToScene(tt.x, tt.y); got != tt.want {
			t.Errorf("HandToScene(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestHandState_Observe(t *testing.T) {
	var h HandState
	if sig := h.Signal(); sig.Presence {
		t.Error("fresh hand state should have no presence")
	}

	if trig := h.Observe(GestureOpenPalm, 0.4, nil); trig != TriggerNone {
		t.Errorf("low score trigger = %v", trig)
	}
	if h.Signal().Presence {
		t.Error("results at or below the score gate must be ignored")
	}

	h.Observe(GestureOpenPalm, 0.9, &mgl32.Vec3{0.25, 0.75, 0})
	sig := h.Signal()
	if !sig.Presence || sig.Openness != 1 {
		t.Errorf("open palm signal = %+v", sig)
	}
	if sig.PointOfInterest != (mgl32.Vec3{-2, -1.25, 2}) {
		t.Errorf("PointOfInterest = %v", sig.PointOfInterest)
	}

	h.Observe(GestureClosedFist, 0.8, nil)
	if got := h.Signal().Openness; got != 0 {
		t.Errorf("closed fist openness = %v, want 0", got)
	}
	if h.Signal().PointOfInterest != sig.PointOfInterest {
		t.Error("missing wrist should keep the previous position")
	}

	if trig := h.Observe(GestureVictory, 0.7, nil); trig != TriggerHeart {
		t.Errorf("victory trigger = %v, want TriggerHeart", trig)
	}
	if got := h.Signal().Openness; got != 0 {
		t.Errorf("victory changed openness to %v", got)
	}
	if trig := h.Observe(GestureILoveYou, 0.7, nil); trig != TriggerHeart {
		t.Errorf("i-love-you trigger = %v, want TriggerHeart", trig)
	}
	if h.Gesture() != GestureILoveYou {
		t.Errorf("Gesture = %v", h.Gesture())
	}

	h.Lost()
	if h.Signal().Presence || h.Gesture() != GestureNone {
		t.Error("Lost should clear presence and gesture")
	}
}

func TestSignalLatch(t *testing.T) {
	var l SignalLatch
	if l.Load() != nil {
		t.Fatal("Load before Publish should be nil")
	}
	l.Publish(ControlSignal{Openness: 0.3, Presence: true})
	l.Publish(ControlSignal{Openness: 0.7, Presence: true})
	got := l.Load()
	if got == nil || got.Openness != 0.7 {
		t.Errorf("Load = %+v, want openness 0.7", got)
	}
	if l.Seq() != 2 {
		t.Errorf("Seq = %d, want 2", l.Seq())
	}
}

func TestSignalLatch_Concurrent(t *testing.T) {
	var l SignalLatch
	var wg sync.WaitGroup
	const writers, perWriter = 4, 500
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				l.Publish(ControlSignal{Openness: float64(w) / writers, Presence: true})
			}
		}(w)
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		for l.Seq() < writers*perWriter {
			if s := l.Load(); s != nil && !s.Presence {
				t.Error("observed a torn signal")
				return
			}
		}
	}()
	wg.Wait()
	<-done
	if l.Seq() != writers*perWriter {
		t.Errorf("Seq = %d, want %d", l.Seq(), writers*perWriter)
	}
}

func TestControlSignal_Usable(t *testing.T) {
	var nilSig *ControlSignal
	if nilSig.usable() {
		t.Error("nil signal should not be usable")
	}
	if !(&ControlSignal{Openness: 0.2, Presence: true}).usable() {
		t.Error("valid signal should be usable")
	}
}
