package latticedecoder

import "testing"

func TestMemPhraseIndexPrepareRangesCollapsesContiguousRuns(t *testing.T) {
	idx := NewMemPhraseIndex()
	for _, local := range []uint32{1, 2, 3, 7, 8, 20} {
		item := NewMemPhraseItem(1)
		idx.Put(NewToken(0, local), item)
	}

	ranges := idx.PrepareRanges()
	got := ranges[0]
	want := []PhraseIndexRange{
		{Library: 0, Begin: 1, End: 4},
		{Library: 0, Begin: 7, End: 9},
		{Library: 0, Begin: 20, End: 21},
	}

	if len(got) != len(want) {
		t.Fatalf("PrepareRanges()[0] = %#v, want %#v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("range[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestMemPhraseIndexAddUnigramFrequencyUpdatesTotal(t *testing.T) {
	idx := NewMemPhraseIndex()
	item := NewMemPhraseItem(1)
	item.freq = 100
	tok := NewToken(0, 1)
	idx.Put(tok, item)

	idx.AddUnigramFrequency(tok, 50)

	if item.UnigramFrequency() != 150 {
		t.Errorf("UnigramFrequency() = %d, want 150", item.UnigramFrequency())
	}
	if idx.TotalFreq() != 150 {
		t.Errorf("TotalFreq() = %d, want 150", idx.TotalFreq())
	}
}

func TestMemPhraseIndexGetPhraseItemUnknownToken(t *testing.T) {
	idx := NewMemPhraseIndex()
	if _, ok := idx.GetPhraseItem(NewToken(0, 99)); ok {
		t.Errorf("GetPhraseItem on an unregistered token returned ok=true")
	}
}

func TestMemPhoneticIndexSearchReportsContinuedForLongerEntries(t *testing.T) {
	idx := NewMemPhoneticIndex()
	niKey := ChewingKey{Initial: InitialN, Middle: MiddleI}
	haoKey := ChewingKey{Initial: InitialH, Final: FinalAO}

	idx.Add([]ChewingKey{niKey}, NewToken(0, 1))

	var ranges [PhraseLibraryCount][]PhraseIndexRange
	result := idx.Search([]ChewingKey{niKey}, &ranges)
	if !result.Has(SearchOK) {
		t.Fatalf("result = %v, want SearchOK", result)
	}
	if result.Has(SearchContinued) {
		t.Errorf("result = %v, want SearchContinued unset (no longer entry registered yet)", result)
	}

	idx.Add([]ChewingKey{niKey, haoKey}, NewToken(0, 2))

	ranges = [PhraseLibraryCount][]PhraseIndexRange{}
	result = idx.Search([]ChewingKey{niKey}, &ranges)
	if !result.Has(SearchContinued) {
		t.Errorf("result = %v, want SearchContinued set now that a 2-syllable entry exists", result)
	}
}

func TestMemBigramStoreLoadUnknownToken(t *testing.T) {
	s := NewMemBigramStore()
	if _, ok := s.Load(NewToken(0, 1)); ok {
		t.Errorf("Load on an empty store returned ok=true")
	}
}

func TestMemSingleGramSearchFiltersByRange(t *testing.T) {
	g := newMemSingleGram()
	g.SetFreq(NewToken(0, 1), 10)
	g.SetFreq(NewToken(0, 5), 20)
	g.SetFreq(NewToken(0, 9), 30)

	out := g.Search(PhraseIndexRange{Library: 0, Begin: 1, End: 6}, nil)
	if len(out) != 2 {
		t.Fatalf("Search() returned %d items, want 2", len(out))
	}
	for _, item := range out {
		if item.Token.LocalID() >= 6 {
			t.Errorf("Search() returned out-of-range token %v", item.Token)
		}
	}
}

func TestMemSingleGramSearchFiltersByLibraryNotJustLocalID(t *testing.T) {
	g := newMemSingleGram()
	g.SetFreq(NewToken(0, 1), 10)
	g.SetFreq(NewToken(2, 1), 20) // same local id, different library

	out := g.Search(PhraseIndexRange{Library: 0, Begin: 0, End: 10}, nil)
	if len(out) != 1 {
		t.Fatalf("Search() returned %d items, want 1", len(out))
	}
	if out[0].Token.LibraryIndex() != 0 {
		t.Errorf("Search() returned a token from library %d, want only library 0", out[0].Token.LibraryIndex())
	}
}
