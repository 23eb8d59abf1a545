package version

import (
	"testing"

	"pkgevent/pkg/types"
)

func TestCompare(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"1.0", "2.0", -1},
		{"2.0", "1.0", 1},
		{"1.0", "1.0", 0},
		{"1.10", "1.9", 1},
		{"1.2_1", "1.2_2", -1},
		{"1.2_3", "1.2", 1},
		{"1.2,1", "9.9", 1},
		{"3.2.1a", "3.2.1b", -1},
	}
	for _, c := range cases {
		if got := Compare(c.a, c.b); got != c.want {
			t.Fatalf("Compare(%q, %q) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}

func TestChangeOf(t *testing.T) {
	cases := []struct {
		old, cur string
		want     types.Change
	}{
		{"1.0", "2.0", types.Upgrade},
		{"2.0", "1.0", types.Downgrade},
		{"2.0", "2.0", types.Reinstall},
		{"", "2.0", types.Upgrade},
	}
	for _, c := range cases {
		if got := ChangeOf(c.old, c.cur); got != c.want {
			t.Fatalf("ChangeOf(%q, %q) = %v, want %v", c.old, c.cur, got, c.want)
		}
	}
	if got := types.Downgrade.Action(); got != "downgraded" {
		t.Fatalf("Action() = %q", got)
	}
}
