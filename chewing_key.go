package latticedecoder

// ChewingInitial enumerates the initial (onset) consonant element of a
// syllable, zero meaning "no initial".
type ChewingInitial uint8

const (
	InitialZero ChewingInitial = 0
	InitialB    ChewingInitial = 1
	InitialC    ChewingInitial = 2
	InitialCH   ChewingInitial = 3
	InitialD    ChewingInitial = 4
	InitialF    ChewingInitial = 5
	InitialH    ChewingInitial = 6
	InitialG    ChewingInitial = 7
	InitialK    ChewingInitial = 8
	InitialJ    ChewingInitial = 9
	InitialM    ChewingInitial = 10
	InitialN    ChewingInitial = 11
	InitialL    ChewingInitial = 12
	InitialR    ChewingInitial = 13
	InitialP    ChewingInitial = 14
	InitialQ    ChewingInitial = 15
	InitialS    ChewingInitial = 16
	InitialSH   ChewingInitial = 17
	InitialT    ChewingInitial = 18
	InitialW    ChewingInitial = 19
	InitialX    ChewingInitial = 20
	InitialY    ChewingInitial = 21
	InitialZ    ChewingInitial = 22
	InitialZH   ChewingInitial = 23
)

// ChewingMiddle enumerates the medial glide element, zero meaning "no
// medial".
type ChewingMiddle uint8

const (
	MiddleZero ChewingMiddle = 0
	MiddleI    ChewingMiddle = 1
	MiddleU    ChewingMiddle = 2
	MiddleV    ChewingMiddle = 3
)

// ChewingFinal enumerates the rime/final element, zero meaning "no
// final".
type ChewingFinal uint8

const (
	FinalZero ChewingFinal = 0
	FinalA    ChewingFinal = 1
	FinalAI   ChewingFinal = 2
	FinalAN   ChewingFinal = 3
	FinalANG  ChewingFinal = 4
	FinalAO   ChewingFinal = 5
	FinalE    ChewingFinal = 6
	FinalEI   ChewingFinal = 8
	FinalEN   ChewingFinal = 9
	FinalENG  ChewingFinal = 10
	FinalER   ChewingFinal = 11
	FinalNG   ChewingFinal = 12
	FinalO    ChewingFinal = 13
	FinalONG  ChewingFinal = 14
	FinalOU   ChewingFinal = 15
	FinalIN   ChewingFinal = 16
	FinalING  ChewingFinal = 17
)

// ChewingTone enumerates the tone element, zero meaning "no tone
// marked" (neutral/unspecified).
type ChewingTone uint8

const (
	ToneZero ChewingTone = 0
	Tone1    ChewingTone = 1
	Tone2    ChewingTone = 2
	Tone3    ChewingTone = 3
	Tone4    ChewingTone = 4
	Tone5    ChewingTone = 5
)

// ChewingKey is one syllable's phonetic decomposition: initial, medial,
// final, and tone. The zero value is the zero-key, used as a column
// separator in a PhoneticKeyMatrix.
type ChewingKey struct {
	Initial ChewingInitial
	Middle  ChewingMiddle
	Final   ChewingFinal
	Tone    ChewingTone
}

// IsZero reports whether k is the zero-key (no initial, no middle, no
// final, regardless of tone).
func (k ChewingKey) IsZero() bool {
	return k.Initial == InitialZero && k.Middle == MiddleZero && k.Final == FinalZero
}

// Equal compares two keys ignoring tone. Phrase/word lookup in the
// reference stores ignores tone the same way (pronKey in memstore.go
// encodes only initial, middle and final).
func (k ChewingKey) Equal(other ChewingKey) bool {
	return k.Initial == other.Initial && k.Middle == other.Middle && k.Final == other.Final
}

// KeyRest records the raw input span [RawBegin, RawEnd) a ChewingKey was
// parsed from, so results can be mapped back onto the caller's original
// keystrokes.
type KeyRest struct {
	RawBegin int
	RawEnd   int
}
