package latticedecoder

import "testing"

func buildTwoSyllableMatrix(t *testing.T) *PhoneticKeyMatrix {
	t.Helper()
	keys := []ChewingKey{
		{Initial: InitialN, Middle: MiddleI},
		{Initial: InitialH, Final: FinalAO},
	}
	rests := []KeyRest{
		{RawBegin: 0, RawEnd: 2},
		{RawBegin: 2, RawEnd: 4},
	}
	m, err := FillFromChewingKeys(keys, rests)
	if err != nil {
		t.Fatalf("FillFromChewingKeys: %v", err)
	}
	return m
}

func TestSearchMatrixFindsExactSpan(t *testing.T) {
	m := buildTwoSyllableMatrix(t)

	idx := NewMemPhoneticIndex()
	idx.Add([]ChewingKey{{Initial: InitialN, Middle: MiddleI}}, NewToken(0, 1))

	result, ranges := SearchMatrix(idx, m, 0, 2)
	if !result.Has(SearchOK) {
		t.Fatalf("result = %v, want SearchOK set", result)
	}
	if len(ranges[0]) != 1 || ranges[0][0].Begin != 1 {
		t.Errorf("ranges[0] = %#v, want a single range starting at 1", ranges[0])
	}
}

func TestSearchMatrixContinuedWhenLongerMatchPossible(t *testing.T) {
	m := buildTwoSyllableMatrix(t)

	idx := NewMemPhoneticIndex()
	idx.Add([]ChewingKey{{Initial: InitialN, Middle: MiddleI}}, NewToken(0, 1))
	idx.Add([]ChewingKey{
		{Initial: InitialN, Middle: MiddleI},
		{Initial: InitialH, Final: FinalAO},
	}, NewToken(0, 2))

	result, _ := SearchMatrix(idx, m, 0, 2)
	if !result.Has(SearchContinued) {
		t.Errorf("result = %v, want SearchContinued set (a 2-syllable entry also matches)", result)
	}
}

func TestSearchMatrixNoneOnEmptyStartColumn(t *testing.T) {
	m := buildTwoSyllableMatrix(t)
	idx := NewMemPhoneticIndex()

	// column 1 lies inside the first key's raw span [0, 2), so it holds
	// no entry in this fixture.
	result, _ := SearchMatrix(idx, m, 1, 2)
	if result != SearchNone {
		t.Errorf("result = %v, want SearchNone (start column is empty)", result)
	}
}

func TestComputePronunciationPossibilityExactMatch(t *testing.T) {
	m := buildTwoSyllableMatrix(t)
	item := NewMemPhraseItem(1)
	item.IncreasePronunciationPossibility(AmbAll, []ChewingKey{{Initial: InitialN, Middle: MiddleI}}, 100)

	poss := ComputePronunciationPossibility(AmbAll, m, 0, 2, item)
	if poss != 100 {
		t.Errorf("ComputePronunciationPossibility = %v, want 100", poss)
	}
}

func TestComputePronunciationPossibilityLengthMismatch(t *testing.T) {
	m := buildTwoSyllableMatrix(t)
	item := NewMemPhraseItem(2)
	item.IncreasePronunciationPossibility(AmbAll, []ChewingKey{{Initial: InitialN, Middle: MiddleI}}, 100)

	// item expects a 2-key phrase, but [0,2) only spans one key: no
	// match, possibility stays zero.
	poss := ComputePronunciationPossibility(AmbAll, m, 0, 2, item)
	if poss != 0 {
		t.Errorf("ComputePronunciationPossibility = %v, want 0", poss)
	}
}
