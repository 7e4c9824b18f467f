package latticedecoder

// MaxPhraseLength bounds how many ChewingKeys a single MatrixSearch
// lookup span may hold: a key sequence longer than this is never handed
// to the PhoneticIndex and resolves to SearchNone.
const MaxPhraseLength = 16

// SearchMatrix enumerates every token span starting at column start
// and ending at column end (end itself excluded from the span, as a
// "one past" boundary) against index, honoring the matrix's zero-key
// separators as pass-through hops. It returns SearchOK if any key
// sequence in [start, end) resolved to a token, and additionally sets
// SearchContinued if any recursive branch reached past end (meaning a
// longer end might also match).
func SearchMatrix(index PhoneticIndex, matrix *PhoneticKeyMatrix, start, end int) (SearchResult, [PhraseLibraryCount][]PhraseIndexRange) {
	var ranges [PhraseLibraryCount][]PhraseIndexRange

	if end >= matrix.Size() {
		return SearchNone, ranges
	}
	if matrix.ColumnSize(start) == 0 {
		return SearchNone, ranges
	}
	if matrix.ColumnSize(end) == 0 {
		return SearchContinued, ranges
	}

	var longest int
	var cached []ChewingKey
	result := searchMatrixRecur(index, matrix, start, end, &ranges, &cached, &longest)
	if longest > end {
		result |= SearchContinued
	}
	return result, ranges
}

func searchMatrixRecur(index PhoneticIndex, matrix *PhoneticKeyMatrix, start, end int, ranges *[PhraseLibraryCount][]PhraseIndexRange, cached *[]ChewingKey, longest *int) SearchResult {
	if start > end {
		return SearchNone
	}

	if start == end {
		if len(*cached) > MaxPhraseLength {
			return SearchNone
		}
		if len(*cached) == 0 {
			return SearchContinued
		}
		return index.Search(*cached, ranges)
	}

	var result SearchResult
	items := matrix.GetColumn(start)

	for _, it := range items {
		newstart := it.Rest.RawEnd

		if it.Key.IsZero() {
			return searchMatrixRecur(index, matrix, newstart, end, ranges, cached, longest)
		}

		*cached = append(*cached, it.Key)
		if newstart > *longest {
			*longest = newstart
		}

		result |= searchMatrixRecur(index, matrix, newstart, end, ranges, cached, longest)

		*cached = (*cached)[:len(*cached)-1]
	}

	return result
}

// ComputePronunciationPossibility sums, over every key-sequence spelled
// by [start, end) in matrix, the possibility item assigns to that exact
// sequence (zero for sequences whose length doesn't match item's
// phrase length).
func ComputePronunciationPossibility(options AmbiguityFlag, matrix *PhoneticKeyMatrix, start, end int, item PhraseItem) float32 {
	var cached []ChewingKey
	return computePronunciationPossibilityRecur(options, matrix, start, end, &cached, item)
}

func computePronunciationPossibilityRecur(options AmbiguityFlag, matrix *PhoneticKeyMatrix, start, end int, cached *[]ChewingKey, item PhraseItem) float32 {
	if start > end {
		return 0
	}
	if item.PhraseLength() < len(*cached) {
		return 0
	}

	if start == end {
		if item.PhraseLength() != len(*cached) {
			return 0
		}
		return item.PronunciationPossibility(options, *cached)
	}

	var result float32
	items := matrix.GetColumn(start)

	for _, it := range items {
		newstart := it.Rest.RawEnd

		if it.Key.IsZero() {
			return computePronunciationPossibilityRecur(options, matrix, newstart, end, cached, item)
		}

		*cached = append(*cached, it.Key)
		result += computePronunciationPossibilityRecur(options, matrix, newstart, end, cached, item)
		*cached = (*cached)[:len(*cached)-1]
	}

	return result
}

// IncreasePronunciationPossibility adds delta, distributed across every
// key sequence spelled by [start, end) that matches item's phrase
// length, to item's per-sequence possibility weights.
func IncreasePronunciationPossibility(options AmbiguityFlag, matrix *PhoneticKeyMatrix, start, end int, item PhraseItem, delta int32) bool {
	var cached []ChewingKey
	return increasePronunciationPossibilityRecur(options, matrix, start, end, &cached, item, delta)
}

func increasePronunciationPossibilityRecur(options AmbiguityFlag, matrix *PhoneticKeyMatrix, start, end int, cached *[]ChewingKey, item PhraseItem, delta int32) bool {
	if start > end {
		return false
	}
	if item.PhraseLength() < len(*cached) {
		return false
	}

	if start == end {
		if item.PhraseLength() != len(*cached) {
			return false
		}
		item.IncreasePronunciationPossibility(options, *cached, delta)
		return true
	}

	var result bool
	items := matrix.GetColumn(start)

	for _, it := range items {
		newstart := it.Rest.RawEnd

		if it.Key.IsZero() {
			return increasePronunciationPossibilityRecur(options, matrix, newstart, end, cached, item, delta)
		}

		*cached = append(*cached, it.Key)
		if increasePronunciationPossibilityRecur(options, matrix, newstart, end, cached, item, delta) {
			result = true
		}
		*cached = (*cached)[:len(*cached)-1]
	}

	return result
}
