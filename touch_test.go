package dial

import "testing"

func TestTouchSessionDownAssignsSlots(t *testing.T) {
	var s TouchSession

	if !s.Down(7, 100, 150) {
		t.Fatal("first down rejected")
	}
	if !s.Tracking1() || s.Tracking2() {
		t.Fatalf("tracking = %v/%v, want true/false", s.Tracking1(), s.Tracking2())
	}
	if _, ok := s.Center(); ok {
		t.Error("center set with one point")
	}

	if !s.Down(9, 200, 150) {
		t.Fatal("second down rejected")
	}
	if s.Tracked() != 2 {
		t.Fatalf("Tracked = %d, want 2", s.Tracked())
	}
	c, ok := s.Center()
	if !ok || c != (Point{150, 150}) {
		t.Errorf("Center = %v %v, want (150,150)", c, ok)
	}
	p2, _ := s.Point2()
	if p2.ID != 9 || p2.X != 200 {
		t.Errorf("Point2 = %+v", p2)
	}
}

func TestTouchSessionIgnoresAnomalies(t *testing.T) {
	var s TouchSession
	s.Down(1, 0, 0)
	s.Down(2, 10, 0)

	if s.Down(3, 50, 50) {
		t.Error("third pointer accepted")
	}
	if s.Down(1, 99, 99) {
		t.Error("duplicate down accepted")
	}
	p1, _ := s.Point1()
	if p1.X != 0 || p1.Y != 0 {
		t.Errorf("duplicate down moved point1 to %+v", p1)
	}
	if s.Move(3, 5, 5) {
		t.Error("move of unknown id reported tracked")
	}
	if s.Up(3) {
		t.Error("up of unknown id reported tracked")
	}
	if s.Tracked() != 2 {
		t.Errorf("Tracked = %d after anomalies, want 2", s.Tracked())
	}
}

func TestTouchSessionMoveUpdatesCenter(t *testing.T) {
	var s TouchSession
	s.Down(1, 0, 0)
	s.Down(2, 100, 0)
	s.Move(2, 100, 100)

	c, _ := s.Center()
	if c != (Point{50, 50}) {
		t.Errorf("Center = %v, want (50,50)", c)
	}
}

func TestTouchSessionInference(t *testing.T) {
	var s TouchSession
	s.Down(1, 100, 150)
	s.Down(2, 200, 150)
	s.Up(2)

	if s.Tracked() != 1 {
		t.Fatalf("Tracked = %d, want 1", s.Tracked())
	}
	center, ok := s.Center()
	if !ok || center != (Point{150, 150}) {
		t.Fatalf("Center = %v %v after release, want (150,150)", center, ok)
	}

	moves := []Point{{120, 130}, {150, 100}, {73.25, 211.5}}
	for _, m := range moves {
		s.Move(1, m.X, m.Y)
		p1, _ := s.Point1()
		p2, ok := s.Point2()
		if !ok {
			t.Fatal("point2 unknown after inference")
		}
		want := center.Mul(2).Sub(p1.Pos())
		if p2.Pos() != want {
			t.Errorf("inferred point2 = %v, want %v", p2.Pos(), want)
		}
	}
	if s.Tracking2() {
		t.Error("inferred point must not be tracked")
	}
}

func TestTouchSessionUpRecomputesCenter(t *testing.T) {
	var s TouchSession
	s.Down(1, 0, 0)
	s.Down(2, 100, 0)
	s.Move(1, 0, 100)
	s.Up(1)

	c, ok := s.Center()
	if !ok || c != (Point{50, 50}) {
		t.Errorf("Center = %v %v, want (50,50)", c, ok)
	}

	// The remaining pointer drives the released one by reflection.
	s.Move(2, 60, 60)
	p1, _ := s.Point1()
	if p1.Pos() != (Point{40, 40}) {
		t.Errorf("inferred point1 = %v, want (40,40)", p1.Pos())
	}
}

func TestTouchSessionFullReset(t *testing.T) {
	var s TouchSession
	s.Down(1, 0, 0)
	s.Down(2, 100, 0)
	s.Up(1)
	s.Up(2)

	if s.Tracked() != 0 {
		t.Errorf("Tracked = %d, want 0", s.Tracked())
	}
	if _, ok := s.Center(); ok {
		t.Error("center survived full release")
	}
	if _, ok := s.Point1(); ok {
		t.Error("point1 survived full release")
	}
	if _, ok := s.Point2(); ok {
		t.Error("point2 survived full release")
	}
}

func TestTouchSessionRefillsFreedSlot(t *testing.T) {
	var s TouchSession
	s.Down(1, 0, 0)
	s.Down(2, 100, 0)
	s.Up(1)

	if !s.Down(3, 0, 100) {
		t.Fatal("down into freed slot rejected")
	}
	p1, _ := s.Point1()
	if p1.ID != 3 || !s.Tracking1() {
		t.Errorf("Point1 = %+v tracking=%v, want id 3 tracked", p1, s.Tracking1())
	}
	c, _ := s.Center()
	if c != (Point{50, 50}) {
		t.Errorf("Center = %v, want (50,50)", c)
	}
}

func TestTouchSessionAnchor(t *testing.T) {
	var s TouchSession
	s.Anchor(4, 150, 100, Point{150, 150})

	if s.Tracked() != 1 || !s.IsTracking(4) {
		t.Fatalf("anchored pointer not tracked")
	}
	p2, ok := s.Point2()
	if !ok || p2.Pos() != (Point{150, 200}) {
		t.Errorf("synthesized point2 = %v %v, want (150,200)", p2.Pos(), ok)
	}

	s.Move(4, 100, 150)
	p2, _ = s.Point2()
	if p2.Pos() != (Point{200, 150}) {
		t.Errorf("point2 after move = %v, want (200,150)", p2.Pos())
	}

	s.Up(4)
	if _, ok := s.Center(); ok {
		t.Error("center survived release of anchored pointer")
	}
}

func TestTouchSessionSnapshotAccessors(t *testing.T) {
	d := NewDetector(DetectorConfig{}, nil)
	d.Down(1, 100, 150)
	d.Down(2, 200, 150)

	// Read-only accessors work directly on the returned copy.
	if n := d.Touches().Tracked(); n != 2 {
		t.Errorf("Tracked = %d, want 2", n)
	}
	if !d.Touches().IsTracking(2) || !d.Touches().Tracking1() || !d.Touches().Tracking2() {
		t.Error("snapshot lost tracking flags")
	}
	if c, ok := d.Touches().Center(); !ok || c != (Point{150, 150}) {
		t.Errorf("Center = %v %v", c, ok)
	}

	snap := d.Touches()
	snap.Up(1)
	if d.Touches().Tracked() != 2 {
		t.Error("mutating the snapshot changed the detector")
	}
}
