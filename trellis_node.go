package latticedecoder

import "math"

// longSentencePenalty is the margin by which a one-character-longer
// hypothesis's log-probability must exceed a shorter one's before
// trellisValueLess ranks the shorter one below it.
var longSentencePenalty = math.Log(1.2)

// TrellisValue is one hypothesis reaching a trellis column: the token
// that produced it (and the token before it, for bigram context on the
// next hop), the cumulative sentence length and log-probability, and a
// back reference to the trellis node/slot it extends.
type TrellisValue struct {
	PrevToken Token
	CurToken  Token

	SentenceLength int
	LogProb        float64

	// LastStep is the column the hypothesis this one extends lives in,
	// or -1 if this is a sentence-initial hypothesis.
	LastStep int
	// SubIndex is that hypothesis's slot within its trellis node's
	// current top-k ordering (valid only after TrellisNode.Number has
	// been called on it).
	SubIndex int
	// CurrentIndex is this value's own slot within its node's current
	// top-k ordering, set by TrellisNode.Number.
	CurrentIndex int
}

// trellisValueLess reports whether lhs ranks below rhs in the beam:
// between equal lengths the higher probability wins, and otherwise the
// longer hypothesis ranks below the shorter one. With nstore > 1, a
// shorter hypothesis additionally ranks below one exactly one character
// longer whose log-probability exceeds its own by more than
// longSentencePenalty; for such a pair both trellisValueLess(shorter,
// longer) and trellisValueLess(longer, shorter) hold, so the relation is
// not a strict weak ordering there. An nstore-1 node (used when only the
// single best hypothesis per column is retained) skips the
// length-tradeoff rules, matching the original's specialization.
func trellisValueLess(nstore int, lhs, rhs *TrellisValue) bool {
	if nstore > 1 {
		if lhs.SentenceLength+1 == rhs.SentenceLength && lhs.LogProb+longSentencePenalty < rhs.LogProb {
			return true
		}
		if lhs.SentenceLength == rhs.SentenceLength+1 && lhs.LogProb < rhs.LogProb+longSentencePenalty {
			return true
		}
	}

	if lhs.SentenceLength == rhs.SentenceLength && lhs.LogProb < rhs.LogProb {
		return true
	}

	if lhs.SentenceLength > rhs.SentenceLength {
		return true
	}

	return false
}

// TrellisNode is a bounded min-heap of up to nstore TrellisValues,
// keeping only the nstore best hypotheses ever offered to it (by
// trellisValueLess, which ranks "worse" hypotheses as heap-smaller so
// the weakest surviving hypothesis sits at the root and is the first to
// be evicted).
type TrellisNode struct {
	nstore   int
	elements []TrellisValue
}

// NewTrellisNode creates an empty node bounded to nstore elements.
func NewTrellisNode(nstore int) *TrellisNode {
	return &TrellisNode{nstore: nstore}
}

// Length returns how many hypotheses are currently stored.
func (n *TrellisNode) Length() int {
	return len(n.elements)
}

// Values returns the node's current hypotheses in heap order (not
// sorted by rank).
func (n *TrellisNode) Values() []TrellisValue {
	return n.elements
}

// Number stamps each stored hypothesis's CurrentIndex with its position
// in Values(), so later hypotheses extending this node can record a
// stable SubIndex back-reference.
func (n *TrellisNode) Number() {
	for i := range n.elements {
		n.elements[i].CurrentIndex = i
	}
}

// EvalItem offers item to the node: if the node has spare capacity,
// item is stored unconditionally; otherwise item replaces the current
// weakest stored hypothesis if and only if item ranks better. Reports
// whether item was stored.
func (n *TrellisNode) EvalItem(item TrellisValue) bool {
	if len(n.elements) < n.nstore {
		n.elements = append(n.elements, item)
		n.siftUp(len(n.elements) - 1)
		return true
	}

	min := &n.elements[0]
	if trellisValueLess(n.nstore, min, &item) {
		n.elements[0] = item
		n.siftDown(0)
		return true
	}

	return false
}

// siftUp and siftDown maintain the min-heap invariant (by
// trellisValueLess) over n.elements, the direct translation of
// push_heap/pop_heap-then-replace-root used against an array-backed
// heap.
func (n *TrellisNode) siftUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if !trellisValueLess(n.nstore, &n.elements[i], &n.elements[parent]) {
			return
		}
		n.elements[i], n.elements[parent] = n.elements[parent], n.elements[i]
		i = parent
	}
}

func (n *TrellisNode) siftDown(i int) {
	for {
		left := 2*i + 1
		right := 2*i + 2
		smallest := i

		if left < len(n.elements) && trellisValueLess(n.nstore, &n.elements[left], &n.elements[smallest]) {
			smallest = left
		}
		if right < len(n.elements) && trellisValueLess(n.nstore, &n.elements[right], &n.elements[smallest]) {
			smallest = right
		}
		if smallest == i {
			return
		}
		n.elements[i], n.elements[smallest] = n.elements[smallest], n.elements[i]
		i = smallest
	}
}
