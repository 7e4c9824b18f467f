package latticedecoder

import (
	"math"

	"github.com/golang/glog"
)

const (
	// DefaultLambda is the bigram/unigram interpolation weight.
	DefaultLambda = 0.588792
	// DefaultBeamWidth bounds how many candidates from a column are
	// considered as bases for the next hop.
	DefaultBeamWidth = 32

	// dblEpsilon and fltEpsilon are C's DBL_EPSILON/FLT_EPSILON, the
	// machine-precision thresholds the scoring skip-guards below prune
	// against (not a "smallest representable value" bound — a
	// difference below this is indistinguishable from zero at that
	// float width).
	dblEpsilon = 2.220446049250313e-16
	fltEpsilon = 1.1920929e-07
)

// Context bundles the read-only backing stores a Decoder searches
// against. It carries no locking of its own: pick thread-safe store
// implementations if the same Context is shared across concurrent
// decodes.
type Context struct {
	PhoneticIndex PhoneticIndex
	PhraseIndex   PhraseIndex
	SystemBigram  BigramStore
	UserBigram    MutableBigramStore
}

// Decoder runs the sentence-level n-best Viterbi search against a
// Context.
type Decoder struct {
	ctx *Context

	bigramLambda   float64
	unigramLambda  float64
	ambiguity      AmbiguityFlag
	beamWidth      int
	nstore, nbest  int

	trellis *ForwardTrellis

	// activeMatrix is the matrix being searched by the in-flight
	// NBestMatch call; unigramGenNextStep/bigramGenNextStep read it
	// without needing it threaded through every call.
	activeMatrix *PhoneticKeyMatrix
}

// NewDecoder creates a Decoder. lambda weights the bigram term of the
// interpolated score (1-lambda weights the unigram term); nstore bounds
// hypotheses retained per trellis node; nbest bounds how many sentence
// candidates NBestMatch returns; beamWidth bounds how many candidates
// per column seed the next hop.
func NewDecoder(ctx *Context, lambda float64, ambiguity AmbiguityFlag, nstore, nbest, beamWidth int) *Decoder {
	return &Decoder{
		ctx:           ctx,
		bigramLambda:  lambda,
		unigramLambda: 1 - lambda,
		ambiguity:     ambiguity,
		beamWidth:     beamWidth,
		nstore:        nstore,
		nbest:         nbest,
		trellis:       NewForwardTrellis(nstore, nbest),
	}
}

// NBestMatch runs the beam search over matrix, honoring constraints,
// starting every candidate sentence from one of prefixes (typically
// just SentenceStart). It returns the surviving sentence candidates,
// best first.
func (d *Decoder) NBestMatch(prefixes []Token, matrix *PhoneticKeyMatrix, constraints *ForwardPhoneticConstraints) (*NBestResults, error) {
	nstep := matrix.Size()
	if nstep == 0 {
		return nil, ErrInvalidSpan
	}

	results := &NBestResults{}

	d.activeMatrix = matrix
	d.trellis = NewForwardTrellis(d.nstore, d.nbest)
	d.trellis.Prepare(nstep)
	d.trellis.FillPrefixes(prefixes)

	for i := 0; i < nstep-1; i++ {
		cur, ok := constraints.Get(i)
		if !ok {
			return nil, ErrInvalidSpan
		}
		if cur.Type == NoSearchConstraint {
			continue
		}

		candidates := d.trellis.GetCandidates(i)
		topresults := topResults(candidates, d.beamWidth, d.nstore)
		if len(topresults) == 0 {
			glog.V(2).Infof("latticedecoder: no surviving candidates at column %d", i)
			continue
		}

		if cur.Type == OneStepConstraint {
			end := cur.End
			result, ranges := SearchMatrix(d.ctx.PhoneticIndex, matrix, i, end)
			if result.Has(SearchOK) {
				d.searchBigram(topresults, i, end, ranges, constraints)
				d.searchUnigram(topresults, i, end, ranges, constraints)
			}
			continue
		}

		for m := i + 1; m < nstep; m++ {
			next, ok := constraints.Get(m)
			if !ok {
				break
			}
			if next.Type == NoSearchConstraint {
				break
			}

			result, ranges := SearchMatrix(d.ctx.PhoneticIndex, matrix, i, m)
			if result.Has(SearchOK) {
				d.searchBigram(topresults, i, m, ranges, constraints)
				d.searchUnigram(topresults, i, m, ranges, constraints)
			}

			if !result.Has(SearchContinued) {
				break
			}
		}
	}

	for _, tail := range d.trellis.GetTails() {
		results.Add(ExtractResult(d.trellis, tail))
	}

	if results.Size() == 0 {
		return results, ErrNoCandidates
	}
	return results, nil
}

func (d *Decoder) searchUnigram(topresults []TrellisValue, start, end int, ranges [PhraseLibraryCount][]PhraseIndexRange, constraints *ForwardPhoneticConstraints) bool {
	if len(topresults) == 0 {
		return false
	}
	cur := &topresults[0]

	constraint, ok := constraints.Get(start)
	if !ok {
		return false
	}

	if constraint.Type == OneStepConstraint {
		return d.unigramGenNextStep(start, constraint.End, cur, constraint.Token)
	}

	found := false
	if constraint.Type == NoConstraint {
		for lib, rs := range ranges {
			for _, r := range rs {
				for local := r.Begin; local != r.End; local++ {
					tok := NewToken(uint8(lib), local)
					if d.unigramGenNextStep(start, end, cur, tok) {
						found = true
					}
				}
			}
		}
	}
	return found
}

func (d *Decoder) searchBigram(topresults []TrellisValue, start, end int, ranges [PhraseLibraryCount][]PhraseIndexRange, constraints *ForwardPhoneticConstraints) bool {
	constraint, ok := constraints.Get(start)
	if !ok {
		return false
	}

	found := false

	for i := range topresults {
		value := &topresults[i]
		indexToken := value.CurToken

		system, hasSystem := d.ctx.SystemBigram.Load(indexToken)
		user, hasUser := d.ctx.UserBigram.Load(indexToken)
		if !hasSystem && !hasUser {
			continue
		}
		var sys, usr SingleGram
		if hasSystem {
			sys = system
		}
		if hasUser {
			usr = user
		}
		merged, ok := mergeSingleGram(sys, usr)
		if !ok {
			continue
		}

		if constraint.Type == OneStepConstraint {
			token := constraint.Token
			if freq, ok := merged.Freq(token); ok {
				total := merged.TotalFreq()
				if total > 0 {
					bigramPoss := float32(freq) / float32(total)
					if d.bigramGenNextStep(start, constraint.End, value, token, bigramPoss) {
						found = true
					}
				}
			}
			continue
		}

		if constraint.Type == NoConstraint {
			total := merged.TotalFreq()
			if total == 0 {
				continue
			}
			for _, rs := range ranges {
				for _, r := range rs {
					var items []BigramPhraseItem
					items = merged.Search(r, items)
					for _, item := range items {
						bigramPoss := float32(item.Freq) / float32(total)
						if d.bigramGenNextStep(start, end, value, item.Token, bigramPoss) {
							found = true
						}
					}
				}
			}
		}
	}

	return found
}

func (d *Decoder) unigramGenNextStep(start, end int, cur *TrellisValue, token Token) bool {
	item, ok := d.ctx.PhraseIndex.GetPhraseItem(token)
	if !ok {
		return false
	}

	phraseLength := item.PhraseLength()
	totalFreq := d.ctx.PhraseIndex.TotalFreq()
	if totalFreq == 0 {
		return false
	}
	elemPoss := float64(item.UnigramFrequency()) / float64(totalFreq)
	if elemPoss < dblEpsilon {
		return false
	}

	pinyinPoss := ComputePronunciationPossibility(d.ambiguity, d.matrixOf(), start, end, item)
	if pinyinPoss < fltEpsilon {
		return false
	}

	next := TrellisValue{
		PrevToken:      cur.CurToken,
		CurToken:       token,
		SentenceLength: cur.SentenceLength + phraseLength,
		LogProb:        cur.LogProb + math.Log(elemPoss*float64(pinyinPoss)*d.unigramLambda),
		LastStep:       start,
		SubIndex:       cur.CurrentIndex,
	}

	return d.trellis.InsertCandidate(end, token, next)
}

func (d *Decoder) bigramGenNextStep(start, end int, cur *TrellisValue, token Token, bigramPoss float32) bool {
	item, ok := d.ctx.PhraseIndex.GetPhraseItem(token)
	if !ok {
		return false
	}

	phraseLength := item.PhraseLength()
	totalFreq := d.ctx.PhraseIndex.TotalFreq()
	var unigramPoss float64
	if totalFreq > 0 {
		unigramPoss = float64(item.UnigramFrequency()) / float64(totalFreq)
	}
	if bigramPoss < fltEpsilon && unigramPoss < dblEpsilon {
		return false
	}

	pinyinPoss := ComputePronunciationPossibility(d.ambiguity, d.matrixOf(), start, end, item)
	if pinyinPoss < fltEpsilon {
		return false
	}

	next := TrellisValue{
		PrevToken:      cur.CurToken,
		CurToken:       token,
		SentenceLength: cur.SentenceLength + phraseLength,
		LogProb:        cur.LogProb + math.Log((d.bigramLambda*float64(bigramPoss)+d.unigramLambda*unigramPoss)*float64(pinyinPoss)),
		LastStep:       start,
		SubIndex:       cur.CurrentIndex,
	}

	return d.trellis.InsertCandidate(end, token, next)
}

// matrixOf exists so unigramGenNextStep/bigramGenNextStep can reach the
// matrix currently being searched without threading it through every
// call; NBestMatch stashes it here before the beam loop starts.
func (d *Decoder) matrixOf() *PhoneticKeyMatrix {
	return d.activeMatrix
}
