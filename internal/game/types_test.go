package game

import "testing"

func TestParseSide(t *testing.T) {
	cases := map[string]Side{
		"player":   SidePlayer,
		"P":        SidePlayer,
		"opponent": SideOpponent,
		" o ":      SideOpponent,
	}
	for in, want := range cases {
		got, err := ParseSide(in)
		if err != nil || got != want {
			t.Errorf("ParseSide(%q) = %s, %v; expected %s", in, got, err, want)
		}
	}
	if _, err := ParseSide("both"); err == nil {
		t.Error("Expected error for unknown side")
	}
}

func TestSideOther(t *testing.T) {
	if SidePlayer.Other() != SideOpponent || SideOpponent.Other() != SidePlayer {
		t.Error("Expected Other to swap sides")
	}
}
