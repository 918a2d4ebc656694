package timetable

import "testing"

func TestSelectionPolicyValid(t *testing.T) {
	tests := []struct {
		policy SelectionPolicy
		want   bool
	}{
		{SelectFirst, true},
		{SelectRandom, true},
		{SelectionPolicy(""), false},
		{SelectionPolicy("round-robin"), false},
	}

	for _, tc := range tests {
		if got := tc.policy.Valid(); got != tc.want {
			t.Errorf("Valid(%q) = %v, want %v", tc.policy, got, tc.want)
		}
	}
}

func TestSelectRoom(t *testing.T) {
	available := []string{"Room A", "Room B", "Room C"}

	t.Run("first policy picks the head of the set", func(t *testing.T) {
		room, ok := SelectRoom(available, SelectFirst, nil)
		if !ok || room != "Room A" {
			t.Fatalf("got %q ok=%v", room, ok)
		}
	})

	t.Run("random policy uses the injected source", func(t *testing.T) {
		room, ok := SelectRoom(available, SelectRandom, func(n int) int { return n - 1 })
		if !ok || room != "Room C" {
			t.Fatalf("got %q ok=%v", room, ok)
		}
	})

	t.Run("random policy without a source degrades to first", func(t *testing.T) {
		room, ok := SelectRoom(available, SelectRandom, nil)
		if !ok || room != "Room A" {
			t.Fatalf("got %q ok=%v", room, ok)
		}
	})

	t.Run("empty set reports no selection", func(t *testing.T) {
		if room, ok := SelectRoom(nil, SelectFirst, nil); ok || room != "" {
			t.Fatalf("expected no selection, got %q ok=%v", room, ok)
		}
	})
}
