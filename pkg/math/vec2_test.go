package math

import "testing"

func TestVec2(t *testing.T) {
	a := Vec2{3, 4}
	b := Vec2{1, 1}

	if got := a.Add(b); got != (Vec2{4, 5}) {
		t.Errorf("Add: got %v", got)
	}
	if got := a.Sub(b); got != (Vec2{2, 3}) {
		t.Errorf("Sub: got %v", got)
	}
	if got := a.Scale(2); got != (Vec2{6, 8}) {
		t.Errorf("Scale: got %v", got)
	}
	if got := a.Length(); got != 5 {
		t.Errorf("Length: got %v, want 5", got)
	}
	if got := a.Normalize(); !near(got.X, 0.6) || !near(got.Y, 0.8) {
		t.Errorf("Normalize: got %v", got)
	}
	if got := (Vec2{}).Normalize(); got != (Vec2{}) {
		t.Errorf("Normalize of zero vector: got %v", got)
	}
	if got := (Vec2{1, 0}).Perp(); got != (Vec2{0, 1}) {
		t.Errorf("Perp: got %v", got)
	}
	if got := (Vec2{0, 0}).Lerp(Vec2{10, 20}, 0.5); got != (Vec2{5, 10}) {
		t.Errorf("Lerp: got %v", got)
	}
}
