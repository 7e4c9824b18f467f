package latticedecoder

import "testing"

func TestChewingKeyIsZero(t *testing.T) {
	var zero ChewingKey
	if !zero.IsZero() {
		t.Errorf("zero value IsZero() = false, want true")
	}

	nonZero := ChewingKey{Initial: InitialN, Middle: MiddleI}
	if nonZero.IsZero() {
		t.Errorf("IsZero() = true for a key with a real initial/middle")
	}

	toneOnly := ChewingKey{Tone: Tone2}
	if !toneOnly.IsZero() {
		t.Errorf("IsZero() = false for a key with only a tone set, want true (tone doesn't count)")
	}
}

func TestChewingKeyEqualIgnoresTone(t *testing.T) {
	a := ChewingKey{Initial: InitialN, Middle: MiddleI, Final: FinalZero, Tone: Tone1}
	b := ChewingKey{Initial: InitialN, Middle: MiddleI, Final: FinalZero, Tone: Tone4}
	if !a.Equal(b) {
		t.Errorf("Equal() = false for keys differing only by tone, want true")
	}

	c := ChewingKey{Initial: InitialL, Middle: MiddleI, Final: FinalZero, Tone: Tone1}
	if a.Equal(c) {
		t.Errorf("Equal() = true for keys with different initials, want false")
	}
}
