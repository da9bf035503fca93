package core

import "testing"

func TestParseVariant(t *testing.T) {
	for _, v := range Variants() {
		got, err := ParseVariant(string(v))
		if err != nil {
			t.Fatalf("ParseVariant(%q) failed: %v", v, err)
		}
		if got != v {
			t.Errorf("ParseVariant(%q) = %q", v, got)
		}
	}

	if _, err := ParseVariant("map"); err == nil {
		t.Error("ParseVariant should reject unknown ids")
	}
}

func TestStatusTerminal(t *testing.T) {
	if StatusPlaying.Terminal() {
		t.Error("Playing must not be terminal")
	}
	for _, s := range []Status{StatusWon, StatusLost, StatusTimedOut} {
		if !s.Terminal() {
			t.Errorf("%s should be terminal", s)
		}
	}
}

func TestInputString(t *testing.T) {
	if got := MoveStation(1, 0).String(); got != "Move(1->0)" {
		t.Errorf("MoveStation string = %q", got)
	}
	if got := SelectBox(2).String(); got != "Select(2)" {
		t.Errorf("SelectBox string = %q", got)
	}
	if got := Press(ActionJump).String(); got != "Jump" {
		t.Errorf("Press string = %q", got)
	}
}
