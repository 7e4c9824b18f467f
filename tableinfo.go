package latticedecoder

import (
	"bytes"
	"encoding/gob"
)

// TableInfo is the small header external storage engines are expected
// to persist alongside a phonetic/phrase/bigram table set, so a loader
// can sanity-check compatibility before wiring a store into a Context.
type TableInfo struct {
	BinaryFormatVersion uint32
	ModelDataVersion    uint32
	Lambda              float64
}

// MarshalBinary gob-encodes t as a small fixed header ahead of whatever
// bulk table data a store persists alongside it.
func (t TableInfo) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(t); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary decodes data produced by MarshalBinary into t.
func (t *TableInfo) UnmarshalBinary(data []byte) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(t)
}
