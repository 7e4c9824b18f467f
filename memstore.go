package latticedecoder

import (
	"sort"
	"strings"
	"sync"

	"github.com/golang/glog"
)

// pronKey flattens a ChewingKey sequence into a comparable map key.
// Fuzzy substitution already happened upstream when the matrix was
// expanded (FuzzySyllableStep appends the substituted keys as separate
// column entries), so a reference PhraseItem only ever needs exact
// matches against whatever sequence the caller hands it.
func pronKey(keys []ChewingKey) string {
	var b strings.Builder
	for _, k := range keys {
		b.WriteByte(byte(k.Initial))
		b.WriteByte(byte(k.Middle))
		b.WriteByte(byte(k.Final))
	}
	return b.String()
}

// MemPhraseItem is the in-memory reference PhraseItem. Its
// PronunciationPossibility returns the weight accumulated for exactly
// the given key sequence; the weight is not divided by the item's total
// pronunciation weight, and options are ignored.
type MemPhraseItem struct {
	length int
	freq   uint32
	prons  map[string]float32
}

// NewMemPhraseItem creates a phrase item of the given character length.
func NewMemPhraseItem(length int) *MemPhraseItem {
	return &MemPhraseItem{length: length, prons: make(map[string]float32)}
}

func (p *MemPhraseItem) PhraseLength() int { return p.length }

func (p *MemPhraseItem) UnigramFrequency() uint32 { return p.freq }

func (p *MemPhraseItem) PronunciationPossibility(options AmbiguityFlag, keys []ChewingKey) float32 {
	return p.prons[pronKey(keys)]
}

func (p *MemPhraseItem) IncreasePronunciationPossibility(options AmbiguityFlag, keys []ChewingKey, delta int32) {
	p.prons[pronKey(keys)] += float32(delta)
}

// MemPhraseIndex is the in-memory reference PhraseIndex, grounded on
// probing.go's Token-keyed probing map for O(1) token lookup plus a
// sorted-token-id slice (in the manner of sorted.go's binary search
// over ordered transitions) to answer PrepareRanges without scanning
// every library linearly.
type MemPhraseIndex struct {
	mu         sync.RWMutex
	items      *probingMap[*MemPhraseItem]
	totalFreq  uint32
	byLibrary  [PhraseLibraryCount][]uint32 // sorted local ids per library
}

// NewMemPhraseIndex creates an empty reference phrase index.
func NewMemPhraseIndex() *MemPhraseIndex {
	return &MemPhraseIndex{items: newProbingMap[*MemPhraseItem](16)}
}

// Put registers item under token, available to GetPhraseItem and to
// PrepareRanges's library enumeration.
func (idx *MemPhraseIndex) Put(token Token, item *MemPhraseItem) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	*idx.items.FindOrInsert(token) = item
	idx.totalFreq += item.freq

	lib := token.LibraryIndex()
	local := token.LocalID()
	ids := idx.byLibrary[lib]
	i := sort.Search(len(ids), func(i int) bool { return ids[i] >= local })
	if i < len(ids) && ids[i] == local {
		return
	}
	ids = append(ids, 0)
	copy(ids[i+1:], ids[i:])
	ids[i] = local
	idx.byLibrary[lib] = ids
}

func (idx *MemPhraseIndex) GetPhraseItem(token Token) (PhraseItem, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	item, ok := idx.items.Find(token)
	if !ok {
		glog.V(2).Infof("latticedecoder: unknown token %d", token)
		return nil, false
	}
	return item, true
}

func (idx *MemPhraseIndex) AddUnigramFrequency(token Token, delta uint32) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	item, ok := idx.items.Find(token)
	if !ok {
		glog.Warningf("latticedecoder: AddUnigramFrequency on unknown token %d", token)
		return
	}
	item.freq += delta
	idx.totalFreq += delta
}

func (idx *MemPhraseIndex) TotalFreq() uint32 {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.totalFreq
}

func (idx *MemPhraseIndex) PrepareRanges() [PhraseLibraryCount][]PhraseIndexRange {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	var ranges [PhraseLibraryCount][]PhraseIndexRange
	for lib, ids := range idx.byLibrary {
		if len(ids) == 0 {
			continue
		}
		// collapse contiguous runs into ranges.
		start := ids[0]
		prev := ids[0]
		for _, id := range ids[1:] {
			if id == prev+1 {
				prev = id
				continue
			}
			ranges[lib] = append(ranges[lib], PhraseIndexRange{Library: uint8(lib), Begin: start, End: prev + 1})
			start, prev = id, id
		}
		ranges[lib] = append(ranges[lib], PhraseIndexRange{Library: uint8(lib), Begin: start, End: prev + 1})
	}
	return ranges
}

// MemPhoneticIndex is the in-memory reference PhoneticIndex: an exact
// map from a flattened key sequence to the tokens it spells, plus the
// set of sequence lengths recorded (sorted, for the "is a longer match
// possible" SearchContinued signal), grounded on sorted.go's sorted
// binary search used to answer a similar "what's the longest match"
// question over transitions.
type MemPhoneticIndex struct {
	mu      sync.RWMutex
	entries map[string][]Token
	lengths []int // sorted, deduplicated
}

// NewMemPhoneticIndex creates an empty reference phonetic index.
func NewMemPhoneticIndex() *MemPhoneticIndex {
	return &MemPhoneticIndex{entries: make(map[string][]Token)}
}

// Add records that keys spells token.
func (idx *MemPhoneticIndex) Add(keys []ChewingKey, token Token) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	k := pronKey(keys)
	idx.entries[k] = append(idx.entries[k], token)

	n := len(keys)
	i := sort.SearchInts(idx.lengths, n)
	if i < len(idx.lengths) && idx.lengths[i] == n {
		return
	}
	idx.lengths = append(idx.lengths, 0)
	copy(idx.lengths[i+1:], idx.lengths[i:])
	idx.lengths[i] = n
}

func (idx *MemPhoneticIndex) Search(keys []ChewingKey, ranges *[PhraseLibraryCount][]PhraseIndexRange) SearchResult {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	var result SearchResult

	tokens, ok := idx.entries[pronKey(keys)]
	if ok && len(tokens) > 0 {
		result |= SearchOK
		for _, tok := range tokens {
			lib := tok.LibraryIndex()
			ranges[lib] = append(ranges[lib], PhraseIndexRange{Library: lib, Begin: tok.LocalID(), End: tok.LocalID() + 1})
		}
	}

	n := len(keys)
	i := sort.SearchInts(idx.lengths, n+1)
	if i < len(idx.lengths) {
		result |= SearchContinued
	}

	return result
}

// memSingleGram is the in-memory reference SingleGram / MutableSingleGram.
type memSingleGram struct {
	freqs     *probingMap[uint32]
	totalFreq uint32
}

func newMemSingleGram() *memSingleGram {
	return &memSingleGram{freqs: newProbingMap[uint32](8)}
}

func (g *memSingleGram) Freq(token Token) (uint32, bool) {
	return g.freqs.Find(token)
}

func (g *memSingleGram) TotalFreq() uint32 {
	return g.totalFreq
}

func (g *memSingleGram) SetFreq(token Token, freq uint32) {
	*g.freqs.FindOrInsert(token) = freq
}

func (g *memSingleGram) SetTotalFreq(total uint32) {
	g.totalFreq = total
}

func (g *memSingleGram) Search(r PhraseIndexRange, out []BigramPhraseItem) []BigramPhraseItem {
	for _, e := range g.freqs.Range() {
		if e.key.LibraryIndex() != r.Library {
			continue
		}
		if e.key.LocalID() >= r.Begin && e.key.LocalID() < r.End {
			out = append(out, BigramPhraseItem{Token: e.key, Freq: e.value})
		}
	}
	return out
}

// MemBigramStore is the in-memory reference BigramStore /
// MutableBigramStore, one memSingleGram per preceding token.
type MemBigramStore struct {
	mu    sync.RWMutex
	grams *probingMap[*memSingleGram]
}

// NewMemBigramStore creates an empty reference bigram store.
func NewMemBigramStore() *MemBigramStore {
	return &MemBigramStore{grams: newProbingMap[*memSingleGram](16)}
}

func (s *MemBigramStore) Load(token Token) (SingleGram, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.grams.Find(token)
	if !ok {
		return nil, false
	}
	return g, true
}

func (s *MemBigramStore) Store(token Token, gram MutableSingleGram) {
	s.mu.Lock()
	defer s.mu.Unlock()

	mg, ok := gram.(*memSingleGram)
	if !ok {
		glog.Fatalf("latticedecoder: MemBigramStore.Store given a foreign SingleGram implementation")
	}
	*s.grams.FindOrInsert(token) = mg
}

func (s *MemBigramStore) NewSingleGram() MutableSingleGram {
	return newMemSingleGram()
}
