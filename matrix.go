package latticedecoder

// PhoneticItem is the element type a PhoneticTable column holds: a
// parsed syllable plus the raw input span it came from.
type PhoneticItem struct {
	Key  ChewingKey
	Rest KeyRest
}

// PhoneticTable is a generic column-major table of per-index item
// lists, the shape both PhoneticKeyMatrix and future sibling tables
// (e.g. a zhuyin variant) share.
type PhoneticTable[Item any] struct {
	columns [][]Item
}

// ClearAll empties every column without changing the table's size.
func (t *PhoneticTable[Item]) ClearAll() {
	for i := range t.columns {
		t.columns[i] = nil
	}
}

// SetSize resizes the table to n columns, discarding contents beyond
// the new size and zero-filling any newly added columns.
func (t *PhoneticTable[Item]) SetSize(n int) {
	if n <= len(t.columns) {
		t.columns = t.columns[:n]
		return
	}
	grown := make([][]Item, n)
	copy(grown, t.columns)
	t.columns = grown
}

// Size returns the table's column count.
func (t *PhoneticTable[Item]) Size() int {
	return len(t.columns)
}

// GetItems returns the items stored at index, or nil if index is out of
// range or empty.
func (t *PhoneticTable[Item]) GetItems(index int) []Item {
	if index < 0 || index >= len(t.columns) {
		return nil
	}
	return t.columns[index]
}

// ColumnSize returns how many items are stored at index.
func (t *PhoneticTable[Item]) ColumnSize(index int) int {
	return len(t.GetItems(index))
}

// Append adds item to the column at index, growing the table if index
// is beyond its current size.
func (t *PhoneticTable[Item]) Append(index int, item Item) {
	if index >= len(t.columns) {
		t.SetSize(index + 1)
	}
	t.columns[index] = append(t.columns[index], item)
}

// PhoneticKeyMatrix is the column-major lattice MatrixSearch and the
// trellis decoder traverse: column i holds every ChewingKey (plus the
// raw span it spans) that a parse could start at input position i. A
// zero-key entry in a singleton column marks either a syllable
// separator ("'") or the matrix's terminal column.
type PhoneticKeyMatrix struct {
	table PhoneticTable[PhoneticItem]
}

// ClearAll empties the matrix without changing its size.
func (m *PhoneticKeyMatrix) ClearAll() {
	m.table.ClearAll()
}

// SetSize resizes the matrix to n columns (one more than the last raw
// input position, per the fill function's "one extra slot" rule).
func (m *PhoneticKeyMatrix) SetSize(n int) {
	m.table.SetSize(n)
}

// Size returns the matrix's column count.
func (m *PhoneticKeyMatrix) Size() int {
	return m.table.Size()
}

// GetColumn returns the (key, rest) pairs held at index.
func (m *PhoneticKeyMatrix) GetColumn(index int) []PhoneticItem {
	return m.table.GetItems(index)
}

// ColumnSize returns how many items are stored at index.
func (m *PhoneticKeyMatrix) ColumnSize(index int) int {
	return m.table.ColumnSize(index)
}

// GetItem returns the i'th item stored at index, and whether it exists.
func (m *PhoneticKeyMatrix) GetItem(index, i int) (ChewingKey, KeyRest, bool) {
	items := m.table.GetItems(index)
	if i < 0 || i >= len(items) {
		return ChewingKey{}, KeyRest{}, false
	}
	return items[i].Key, items[i].Rest, true
}

// Append stores key (and its raw-input rest) at column index.
func (m *PhoneticKeyMatrix) Append(index int, key ChewingKey, rest KeyRest) {
	m.table.Append(index, PhoneticItem{Key: key, Rest: rest})
}

// FillFromChewingKeys builds a matrix from a flat parsed-key sequence,
// one key/rest pair per syllable, inserting zero-key separators in
// every gap between a key's raw end and the next key's raw begin
// (covering explicit syllable-divider punctuation like "'") and a
// trailing zero-key column at the very end.
func FillFromChewingKeys(keys []ChewingKey, rests []KeyRest) (*PhoneticKeyMatrix, error) {
	if len(keys) != len(rests) {
		return nil, ErrMismatchedKeyRests
	}
	if len(keys) == 0 {
		return nil, ErrEmptyKeySequence
	}

	m := &PhoneticKeyMatrix{}
	length := rests[len(rests)-1].RawEnd + 1
	m.SetSize(length)

	for i, k := range keys {
		m.Append(rests[i].RawBegin, k, rests[i])
	}

	var zeroKey ChewingKey
	for i := 0; i < len(rests)-1; i++ {
		for fill := rests[i].RawEnd; fill < rests[i+1].RawBegin; fill++ {
			m.Append(fill, zeroKey, KeyRest{RawBegin: fill, RawEnd: fill + 1})
		}
	}

	last := length - 1
	m.Append(last, zeroKey, KeyRest{RawBegin: last, RawEnd: length})

	return m, nil
}

// FuzzySyllableStep expands every column in place with the fuzzy
// initial/final variants options enables, skipping empty columns and
// leaving zero-key columns untouched (a zero key has no initial or
// final to substitute).
func FuzzySyllableStep(options AmbiguityFlag, m *PhoneticKeyMatrix) {
	length := m.Size()
	for index := 0; index < length; index++ {
		items := m.table.GetItems(index)
		if len(items) == 0 {
			continue
		}

		base := append([]PhoneticItem(nil), items...)
		for _, it := range base {
			if it.Key.IsZero() {
				continue
			}
			for _, v := range fuzzyInitialVariants(options, it.Key) {
				m.Append(index, v, it.Rest)
			}
		}

		base = append([]PhoneticItem(nil), m.table.GetItems(index)...)
		for _, it := range base {
			if it.Key.IsZero() {
				continue
			}
			for _, v := range fuzzyFinalVariants(options, it.Key) {
				m.Append(index, v, it.Rest)
			}
		}
	}
}
