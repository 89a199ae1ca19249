package vram

import (
	"math/rand"
	"testing"
)

func TestCursorWrap(t *testing.T) {
	tests := []struct {
		name  string
		count int
		moves []Action
		want  int
	}{
		{"up then down", 104, []Action{ActionForward10, ActionBack10}, 0},
		{"left from zero", 104, []Action{ActionPrev}, 103},
		{"right past end", 3, []Action{ActionNext, ActionNext, ActionNext}, 0},
		{"down from zero", 104, []Action{ActionBack10}, 94},
		{"down wraps small pool", 4, []Action{ActionBack10}, 2},
		{"up wraps small pool", 4, []Action{ActionForward10}, 2},
		{"single buffer", 1, []Action{ActionNext, ActionBack10, ActionForward10}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCursor(tt.count)
			for _, a := range tt.moves {
				c.Move(a.Delta())
			}
			if c.Index() != tt.want {
				t.Errorf("Index() = %d, want %d", c.Index(), tt.want)
			}
		})
	}
}

func TestCursorMatchesModulo(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	deltas := []int{1, -1, 10, -10}

	for _, count := range []int{1, 2, 7, 10, 11, 104} {
		c := NewCursor(count)
		sum := 0
		for range 1000 {
			d := deltas[rng.Intn(len(deltas))]
			sum += d
			got := c.Move(d)
			if got < 0 || got >= count {
				t.Fatalf("count %d: index %d out of range", count, got)
			}
			want := ((sum % count) + count) % count
			if got != want {
				t.Fatalf("count %d: index %d, want %d (sum %d)", count, got, want, sum)
			}
		}
	}
}

func TestCursorEmpty(t *testing.T) {
	c := NewCursor(0)
	if got := c.Move(-1); got != 0 {
		t.Errorf("Move on empty cursor = %d, want 0", got)
	}
}

func TestActionString(t *testing.T) {
	if ActionSave.String() != "save" || Action(42).String() != "unknown" {
		t.Errorf("String() = %q, %q", ActionSave, Action(42))
	}
	if ActionQuit.Delta() != 0 || ActionSave.Delta() != 0 {
		t.Error("non-navigation actions must not move the cursor")
	}
}
