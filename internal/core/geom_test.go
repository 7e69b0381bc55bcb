package core

import "testing"

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 {
		t.Errorf("Right() = %d, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %d, expected 25", r.Bottom())
	}
}

func TestTicksPer(t *testing.T) {
	tests := []struct {
		name     string
		rate, ms int
		expected int
	}{
		{"half second at 60fps", 60, 500, 30},
		{"one second at 30fps", 30, 1000, 30},
		{"tiny interval floors to one tick", 60, 1, 1},
		{"zero rate falls back to 60", 0, 500, 30},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := RuntimeConfig{TickRate: tc.rate}
			if got := cfg.TicksPer(tc.ms); got != tc.expected {
				t.Errorf("TicksPer(%d) = %d, expected %d", tc.ms, got, tc.expected)
			}
		})
	}
}

func TestInputFrame(t *testing.T) {
	f := NewInputFrame()
	if !f.Empty() {
		t.Error("new frame should be empty")
	}

	f.Set(ActionLeft)
	if !f.Has(ActionLeft) || f.Has(ActionRight) {
		t.Error("frame should contain only Left")
	}

	if f.Empty() {
		t.Error("frame with Left should not be empty")
	}

	f.Clear()
	if !f.Empty() {
		t.Error("frame should be empty after Clear")
	}

	var zero InputFrame
	if zero.Has(ActionLeft) {
		t.Error("zero frame should report no actions")
	}
	zero.Set(ActionRotate)
	if !zero.Has(ActionRotate) {
		t.Error("Set on zero frame should allocate")
	}
}
