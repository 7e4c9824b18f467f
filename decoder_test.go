package latticedecoder

import "testing"

func buildNiHaoFixture(t *testing.T) (*PhoneticKeyMatrix, *Context, Token, Token, Token) {
	t.Helper()

	niKey := ChewingKey{Initial: InitialN, Middle: MiddleI}
	haoKey := ChewingKey{Initial: InitialH, Final: FinalAO}

	m, err := FillFromChewingKeys(
		[]ChewingKey{niKey, haoKey},
		[]KeyRest{{RawBegin: 0, RawEnd: 2}, {RawBegin: 2, RawEnd: 4}},
	)
	if err != nil {
		t.Fatalf("FillFromChewingKeys: %v", err)
	}

	tokenA := NewToken(0, 1) // one syllable, "ni"
	tokenB := NewToken(0, 2) // one syllable, "hao"
	tokenAB := NewToken(0, 3) // two syllables, "ni hao"

	phonetic := NewMemPhoneticIndex()
	phonetic.Add([]ChewingKey{niKey}, tokenA)
	phonetic.Add([]ChewingKey{haoKey}, tokenB)
	phonetic.Add([]ChewingKey{niKey, haoKey}, tokenAB)

	phrases := NewMemPhraseIndex()

	itemA := NewMemPhraseItem(1)
	itemA.freq = 500
	itemA.IncreasePronunciationPossibility(AmbAll, []ChewingKey{niKey}, 1000)
	phrases.Put(tokenA, itemA)

	itemB := NewMemPhraseItem(1)
	itemB.freq = 500
	itemB.IncreasePronunciationPossibility(AmbAll, []ChewingKey{haoKey}, 1000)
	phrases.Put(tokenB, itemB)

	itemAB := NewMemPhraseItem(2)
	itemAB.freq = 2000
	itemAB.IncreasePronunciationPossibility(AmbAll, []ChewingKey{niKey, haoKey}, 1000)
	phrases.Put(tokenAB, itemAB)

	ctx := &Context{
		PhoneticIndex: phonetic,
		PhraseIndex:   phrases,
		SystemBigram:  NewMemBigramStore(),
		UserBigram:    NewMemBigramStore(),
	}

	return m, ctx, tokenA, tokenB, tokenAB
}

func TestDecoderNBestMatchFindsRegisteredTokens(t *testing.T) {
	matrix, ctx, tokenA, tokenB, tokenAB := buildNiHaoFixture(t)

	decoder := NewDecoder(ctx, DefaultLambda, AmbAll, 4, 2, DefaultBeamWidth)
	constraints := NewForwardPhoneticConstraints(ctx.PhraseIndex, matrix.Size())

	results, err := decoder.NBestMatch([]Token{SentenceStart}, matrix, constraints)
	if err != nil {
		t.Fatalf("NBestMatch: %v", err)
	}
	if results.Size() == 0 {
		t.Fatalf("NBestMatch returned no candidates")
	}

	top, ok := results.Get(0)
	if !ok {
		t.Fatalf("Get(0) = false")
	}
	if len(top) != matrix.Size() {
		t.Fatalf("len(top) = %d, want %d", len(top), matrix.Size())
	}

	known := map[Token]bool{tokenA: true, tokenB: true, tokenAB: true, NullToken: true}
	sawKnown := false
	for _, tok := range top {
		if !known[tok] {
			t.Errorf("result contains unrecognized token %v", tok)
		}
		if tok != NullToken {
			sawKnown = true
		}
	}
	if !sawKnown {
		t.Errorf("result contained no recognized token at all")
	}
}

func TestDecoderNBestMatchEmptyMatrixRejected(t *testing.T) {
	ctx := &Context{
		PhoneticIndex: NewMemPhoneticIndex(),
		PhraseIndex:   NewMemPhraseIndex(),
		SystemBigram:  NewMemBigramStore(),
		UserBigram:    NewMemBigramStore(),
	}
	decoder := NewDecoder(ctx, DefaultLambda, AmbAll, 2, 2, DefaultBeamWidth)
	m := &PhoneticKeyMatrix{}
	constraints := NewForwardPhoneticConstraints(ctx.PhraseIndex, 0)

	if _, err := decoder.NBestMatch([]Token{SentenceStart}, m, constraints); err != ErrInvalidSpan {
		t.Errorf("err = %v, want ErrInvalidSpan", err)
	}
}
