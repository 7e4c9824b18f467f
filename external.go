package latticedecoder

// SearchResult is the bitflag result of a MatrixSearch / PhoneticIndex
// search: whether anything matched, and whether a longer match might
// still exist further into the matrix.
type SearchResult uint8

const (
	SearchNone      SearchResult = 0x00
	SearchOK        SearchResult = 0x01
	SearchContinued SearchResult = 0x02
)

// Has reports whether flag is set in r.
func (r SearchResult) Has(flag SearchResult) bool {
	return r&flag != 0
}

// PhraseItem is one phrase/word entry: its surface length (in
// characters), its unigram frequency, and the pronunciation
// possibilities attached to the ChewingKey sequences that can produce
// it (a single phrase can have more than one pronunciation).
type PhraseItem interface {
	// PhraseLength returns the character length of the phrase.
	PhraseLength() int
	// UnigramFrequency returns the phrase's raw (unnormalized)
	// frequency count.
	UnigramFrequency() uint32
	// PronunciationPossibility returns the fraction of this phrase's
	// total pronunciation weight the given key sequence accounts for,
	// fuzzy-matching per options. len(keys) must equal PhraseLength().
	PronunciationPossibility(options AmbiguityFlag, keys []ChewingKey) float32
	// IncreasePronunciationPossibility adds delta to the weight
	// associated with keys, fuzzy-matching per options.
	IncreasePronunciationPossibility(options AmbiguityFlag, keys []ChewingKey, delta int32)
}

// PhoneticIndex looks up which tokens a ChewingKey sequence of a given
// length can spell, across however many phrase libraries the backing
// store partitions itself into.
type PhoneticIndex interface {
	// Search looks up keys (length len(keys)) and appends every
	// matching PhraseIndexRange into ranges, one slice per library
	// index. It returns SearchOK if anything matched and
	// SearchContinued if a longer key sequence starting at the same
	// position might also match.
	Search(keys []ChewingKey, ranges *[PhraseLibraryCount][]PhraseIndexRange) SearchResult
}

// PhraseIndex resolves tokens to PhraseItems and tracks the total
// unigram frequency across every token it knows about.
type PhraseIndex interface {
	// GetPhraseItem returns the item for token, or false if token is
	// unknown.
	GetPhraseItem(token Token) (PhraseItem, bool)
	// AddUnigramFrequency adds delta to token's unigram frequency.
	AddUnigramFrequency(token Token, delta uint32)
	// TotalFreq returns the sum of unigram frequencies across every
	// token the index knows about, the denominator unigram
	// probabilities are computed against.
	TotalFreq() uint32
	// PrepareRanges returns the full PhraseIndexRange set for every
	// library the index partitions tokens into, used to enumerate
	// "every known token" when no constraint narrows the search.
	PrepareRanges() [PhraseLibraryCount][]PhraseIndexRange
}

// SingleGram is one bigram context's adjacency list: the set of
// (token, frequency) pairs observed to follow some fixed preceding
// token.
type SingleGram interface {
	// Freq returns the frequency recorded for token, or false if none.
	Freq(token Token) (uint32, bool)
	// TotalFreq returns the sum of every recorded frequency in this
	// context.
	TotalFreq() uint32
	// Search appends every (token, freq) pair whose token falls inside
	// r to out.
	Search(r PhraseIndexRange, out []BigramPhraseItem) []BigramPhraseItem
}

// MutableSingleGram is the writable extension of SingleGram the
// training updater needs.
type MutableSingleGram interface {
	SingleGram
	SetFreq(token Token, freq uint32)
	SetTotalFreq(total uint32)
}

// BigramStore loads the SingleGram recorded for a preceding token, and
// (for the user-side store) stores updated ones back.
type BigramStore interface {
	// Load returns the context for token, or false if none recorded.
	Load(token Token) (SingleGram, bool)
}

// MutableBigramStore is the writable extension the training updater
// needs for the user-side bigram store.
type MutableBigramStore interface {
	BigramStore
	// Store persists gram as the context for token, creating it if
	// absent.
	Store(token Token, gram MutableSingleGram)
	// NewSingleGram returns a fresh, empty MutableSingleGram the caller
	// can populate and then Store.
	NewSingleGram() MutableSingleGram
}

// mergeSingleGram combines a system and a user SingleGram into one
// merged view whose frequencies are the sum of both (a token present in
// only one contributes its own frequency unchanged). It mirrors the
// original decoder's merge of "system" and "user" adjacency lists
// before bigram scoring, so long-lived system statistics and
// short-lived per-user corrections interpolate transparently. Returns
// false if neither gram carries any data.
func mergeSingleGram(system, user SingleGram) (SingleGram, bool) {
	if system == nil && user == nil {
		return nil, false
	}
	if user == nil {
		return system, true
	}
	if system == nil {
		return user, true
	}
	return &mergedSingleGram{system: system, user: user}, true
}

type mergedSingleGram struct {
	system, user SingleGram
}

func (m *mergedSingleGram) Freq(token Token) (uint32, bool) {
	sf, sok := m.system.Freq(token)
	uf, uok := m.user.Freq(token)
	if !sok && !uok {
		return 0, false
	}
	return sf + uf, true
}

func (m *mergedSingleGram) TotalFreq() uint32 {
	return m.system.TotalFreq() + m.user.TotalFreq()
}

func (m *mergedSingleGram) Search(r PhraseIndexRange, out []BigramPhraseItem) []BigramPhraseItem {
	merged := make(map[Token]uint32)
	order := make([]Token, 0)
	for _, src := range [2]SingleGram{m.system, m.user} {
		var scratch []BigramPhraseItem
		scratch = src.Search(r, scratch)
		for _, item := range scratch {
			if _, ok := merged[item.Token]; !ok {
				order = append(order, item.Token)
			}
			merged[item.Token] += item.Freq
		}
	}
	for _, tok := range order {
		out = append(out, BigramPhraseItem{Token: tok, Freq: merged[tok]})
	}
	return out
}
