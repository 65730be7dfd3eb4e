package export

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"
)

// WriteJSON encodes r to w as indented JSON. Statistics are sanitised first.
func WriteJSON(w io.Writer, r Record) error {
	if r.Stats != nil {
		st := sanitizeStats(*r.Stats)
		r.Stats = &st
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("export: encode json: %w", err)
	}

	return nil
}

// ReadJSON decodes one Record from rd. Unknown fields are rejected.
func ReadJSON(rd io.Reader) (Record, error) {
	var r Record
	dec := json.NewDecoder(rd)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&r); err != nil {
		return Record{}, fmt.Errorf("%w: %w", ErrRecord, err)
	}

	return r, nil
}
