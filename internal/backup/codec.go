package backup

import (
	"encoding/json"
	"fmt"
	"io"
)

// Encode writes s as indented JSON.
func Encode(w io.Writer, s *Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(toWire(s)); err != nil {
		return fmt.Errorf("encode backup: %w", err)
	}
	return nil
}

// Decode parses and validates a backup document. Anything that does not
// describe a complete snapshot yields ErrMalformedBackup.
func Decode(r io.Reader) (*Snapshot, error) {
	dec := json.NewDecoder(r)

	var w wireSnapshot
	if err := dec.Decode(&w); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedBackup, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data after document", ErrMalformedBackup)
	}
	return fromWire(w)
}
