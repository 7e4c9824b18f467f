package latticedecoder

// Training constants for the seed ramp-up schedule: a just-trained
// bigram context's seed doubles on repeat reinforcement, capped at
// DefaultCeilingSeed, and the unigram/pronunciation updates scale the
// same seed by fixed factors.
const (
	DefaultInitialSeed   = 23 * 3
	DefaultExpandFactor  = 2
	DefaultUnigramFactor = 7
	DefaultPinyinFactor  = 1
	DefaultCeilingSeed   = 23 * 15 * 64
)

// TrainingParams bundles the Train call's tunable seed schedule so
// callers can adjust reinforcement aggressiveness without touching the
// decoder's search-time parameters.
type TrainingParams struct {
	InitialSeed   uint32
	ExpandFactor  uint32
	UnigramFactor uint32
	PinyinFactor  uint32
	CeilingSeed   uint32
}

// DefaultTrainingParams returns the package's default seed schedule.
func DefaultTrainingParams() TrainingParams {
	return TrainingParams{
		InitialSeed:   DefaultInitialSeed,
		ExpandFactor:  DefaultExpandFactor,
		UnigramFactor: DefaultUnigramFactor,
		PinyinFactor:  DefaultPinyinFactor,
		CeilingSeed:   DefaultCeilingSeed,
	}
}

// Train reinforces every constrained (user-selected) token in result:
// the bigram edge from the preceding token gets a reinforcement seed
// that ramps up on repeat selections (bounded by params.CeilingSeed),
// and that same seed (scaled by params.PinyinFactor /
// params.UnigramFactor) increases the token's pronunciation-possibility
// and unigram frequency respectively. The token that immediately
// follows a pinned one is reinforced the same way (with the bigram edge
// from the pinned token); every other token result assigns outside a
// OneStepConstraint span is left untouched, so training reinforces the
// choices the caller explicitly pinned (e.g. by accepting a candidate
// sentence and feeding DiffResult's constraints back in) and their
// immediate successors.
func Train(ctx *Context, ambiguity AmbiguityFlag, params TrainingParams, matrix *PhoneticKeyMatrix, constraints *ForwardPhoneticConstraints, result []Token) {
	trainNext := false
	lastToken := SentenceStart

	for i := 0; i < constraints.Length(); i++ {
		token := result[i]
		if token == NullToken {
			continue
		}

		constraint, ok := constraints.Get(i)
		if !ok {
			continue
		}

		if !trainNext && constraint.Type != OneStepConstraint {
			lastToken = token
			continue
		}

		if constraint.Type == OneStepConstraint {
			trainNext = true
		} else {
			trainNext = false
		}

		seed := params.InitialSeed

		if lastToken != NullToken {
			seed = trainBigram(ctx.UserBigram, lastToken, token, params)
		}

		nextPos := i + 1
		for ; nextPos < constraints.Length(); nextPos++ {
			if result[nextPos] != NullToken {
				break
			}
		}
		if nextPos >= constraints.Length() {
			nextPos = constraints.Length() - 1
		}

		item, ok := ctx.PhraseIndex.GetPhraseItem(token)
		if ok {
			IncreasePronunciationPossibility(ambiguity, matrix, i, nextPos, item, int32(seed*params.PinyinFactor))
			ctx.PhraseIndex.AddUnigramFrequency(token, seed*params.UnigramFactor)
		}

		lastToken = token
	}
}

// trainBigram reinforces the lastToken -> token edge in the user bigram
// store, returning the seed used (the ramp-up value on repeat
// reinforcement, or params.InitialSeed on first reinforcement). A
// pending update that would overflow the context's total frequency is
// dropped rather than wrapping.
func trainBigram(store MutableBigramStore, lastToken, token Token, params TrainingParams) uint32 {
	gram, ok := store.Load(lastToken)
	var user MutableSingleGram
	if ok {
		user, ok = gram.(MutableSingleGram)
	}
	if !ok {
		user = store.NewSingleGram()
	}

	totalFreq := user.TotalFreq()

	seed := params.InitialSeed
	freq, hasFreq := user.Freq(token)
	if !hasFreq {
		user.SetFreq(token, 0)
		seed = params.InitialSeed
	} else {
		if freq > seed {
			seed = freq
		}
		seed *= params.ExpandFactor
		if seed > params.CeilingSeed {
			seed = params.CeilingSeed
		}
	}

	if totalFreq+seed < totalFreq {
		// would overflow; skip committing this reinforcement.
		store.Store(lastToken, user)
		return seed
	}

	user.SetTotalFreq(totalFreq + seed)
	user.SetFreq(token, freq+seed)
	store.Store(lastToken, user)

	return seed
}
