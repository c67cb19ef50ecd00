package styles

import "testing"

func TestColorFunctions_NoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	for _, tc := range []struct {
		name string
		fn   func(string) string
	}{
		{"Yellow", Yellow},
		{"Mute", Mute},
		{"MutedMsg", MutedMsg},
		{"FailMsg", FailMsg},
	} {
		if got := tc.fn("Austin, TX"); got != "Austin, TX" {
			t.Fatalf("%s: got %q, want plain text", tc.name, got)
		}
	}
}

func TestSuccessMsg_NoColorSymbol(t *testing.T) {
	SetNoColor(true)
	t.Cleanup(func() { SetNoColor(false) })
	if got := SuccessMsg("saved"); got != "+ saved" {
		t.Fatalf("got %q, want %q", got, "+ saved")
	}
}
