package latticedecoder

import "sort"

// ForwardTrellis is the column-indexed lattice the Viterbi search fills
// in: each column holds one TrellisNode per distinct token reached at
// that column, keyed directly by token (a Go map standing in for the
// original's parallel index/content array pair).
type ForwardTrellis struct {
	nstore int
	nbest  int
	steps  []map[Token]*TrellisNode
}

// NewForwardTrellis creates a trellis that keeps up to nstore
// hypotheses per (column, token) node and returns up to nbest sentence
// candidates overall.
func NewForwardTrellis(nstore, nbest int) *ForwardTrellis {
	return &ForwardTrellis{nstore: nstore, nbest: nbest}
}

// Size returns the trellis's column count.
func (t *ForwardTrellis) Size() int {
	return len(t.steps)
}

// Prepare resets the trellis to nstep empty columns.
func (t *ForwardTrellis) Prepare(nstep int) {
	t.steps = make([]map[Token]*TrellisNode, nstep)
	for i := range t.steps {
		t.steps[i] = make(map[Token]*TrellisNode)
	}
}

// FillPrefixes seeds column 0 with one sentence-initial hypothesis per
// token in prefixes (typically just SentenceStart), each with
// log-probability 0 (certainty) and no predecessor.
func (t *ForwardTrellis) FillPrefixes(prefixes []Token) {
	for _, token := range prefixes {
		value := TrellisValue{
			CurToken: token,
			LastStep: -1,
			SubIndex: -1,
		}
		node := NewTrellisNode(t.nstore)
		node.EvalItem(value)
		t.steps[0][token] = node
	}
}

// GetCandidates returns every hypothesis stored at column index, having
// first numbered each contributing node so later InsertCandidate calls
// can record a stable back-reference.
func (t *ForwardTrellis) GetCandidates(index int) []TrellisValue {
	nodes := t.steps[index]
	if len(nodes) == 0 {
		return nil
	}
	var out []TrellisValue
	for _, node := range nodes {
		node.Number()
		out = append(out, node.Values()...)
	}
	return out
}

// InsertCandidate offers candidate to the node keyed by token at
// column index, creating the node if this is its first hypothesis.
// Reports whether candidate was actually stored.
func (t *ForwardTrellis) InsertCandidate(index int, token Token, candidate TrellisValue) bool {
	nodes := t.steps[index]
	node, ok := nodes[token]
	if !ok {
		node = NewTrellisNode(t.nstore)
		nodes[token] = node
	}
	return node.EvalItem(candidate)
}

// GetCandidate looks up the sub_index'th hypothesis stored under token
// at column index, the lookup ExtractResult's backtrace chases.
func (t *ForwardTrellis) GetCandidate(index int, token Token, subIndex int) (TrellisValue, bool) {
	nodes := t.steps[index]
	node, ok := nodes[token]
	if !ok {
		return TrellisValue{}, false
	}
	values := node.Values()
	if subIndex < 0 || subIndex >= len(values) {
		return TrellisValue{}, false
	}
	return values[subIndex], true
}

// GetTails returns the trellis's best surviving hypotheses at its final
// column, ranked by trellisValueLess and then re-sorted into strict
// descending log-probability order (ignoring sentence length) before
// results are extracted.
func (t *ForwardTrellis) GetTails() []TrellisValue {
	tailIndex := t.Size() - 1
	candidates := t.GetCandidates(tailIndex)
	tails := topResults(candidates, t.nbest, t.nstore)

	sort.Slice(tails, func(i, j int) bool {
		return tails[i].LogProb > tails[j].LogProb
	})

	return tails
}

// topResults returns up to num of candidates, best-first by
// trellisValueLess (the same ordering TrellisNode uses to decide what
// to keep).
func topResults(candidates []TrellisValue, num, nstore int) []TrellisValue {
	if len(candidates) == 0 {
		return nil
	}

	sorted := append([]TrellisValue(nil), candidates...)
	sort.Slice(sorted, func(i, j int) bool {
		return trellisValueLess(nstore, &sorted[j], &sorted[i])
	})

	if len(sorted) > num {
		sorted = sorted[:num]
	}
	return sorted
}

// ExtractResult backtraces from tail to a sentence-initial hypothesis,
// filling in the token assigned to every column the backtrace visits.
// Columns never reached by the backtrace (e.g. inside a zero-key span)
// are left as NullToken.
func ExtractResult(trellis *ForwardTrellis, tail TrellisValue) []Token {
	result := make([]Token, trellis.Size())

	current := tail
	for {
		index := current.LastStep
		if index == -1 {
			break
		}

		result[index] = current.CurToken

		lastToken := current.PrevToken
		subIndex := current.SubIndex

		next, ok := trellis.GetCandidate(index, lastToken, subIndex)
		if !ok {
			break
		}
		current = next
	}

	return result
}

// NBestResults accumulates the sentence candidates a decode produced,
// one []Token per candidate.
type NBestResults struct {
	results [][]Token
}

// Size returns how many candidates are stored.
func (r *NBestResults) Size() int {
	return len(r.results)
}

// Get returns the index'th candidate.
func (r *NBestResults) Get(index int) ([]Token, bool) {
	if index < 0 || index >= len(r.results) {
		return nil, false
	}
	return r.results[index], true
}

// Clear empties the result set.
func (r *NBestResults) Clear() {
	r.results = nil
}

// Add appends a copy of result to the set.
func (r *NBestResults) Add(result []Token) {
	cp := append([]Token(nil), result...)
	r.results = append(r.results, cp)
}
