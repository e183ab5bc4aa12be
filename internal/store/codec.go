package store

import (
	"encoding/json"
	"errors"
	"fmt"

	"stocksphere/internal/models"
)

// ErrMalformedState marks a persisted value that is not a Store document.
// Load absorbs it; it only escapes from Decode.
var ErrMalformedState = errors.New("malformed persisted state")

// Encode serializes st with statuses re-derived.
func Encode(st *models.Store) ([]byte, error) {
	c := st.Clone()
	c.Normalize()
	data, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encode store: %w", err)
	}
	return data, nil
}

// Decode parses a persisted document and re-derives every status.
func Decode(data []byte) (*models.Store, error) {
	var st *models.Store
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedState, err)
	}
	if st == nil {
		return nil, fmt.Errorf("%w: document is null", ErrMalformedState)
	}
	st.Normalize()
	return st, nil
}
