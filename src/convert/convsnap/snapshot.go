package convsnap

import (
	"encoding/json"
	"fmt"
	"io"
	"multiverse/src/base"
	"os"
)

// Decode reads one snapshot in the engine's JSON shape
func Decode(r io.Reader) (*base.Snapshot, error) {
	var s base.Snapshot
	dec := json.NewDecoder(r)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("error decode snapshot: %w", err)
	}
	if s.Size != nil && (s.Size.X <= 0 || s.Size.Y <= 0) {
		return nil, fmt.Errorf("invalid board size %dx%d", s.Size.X, s.Size.Y)
	}
	return &s, nil
}

func Encode(w io.Writer, s *base.Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	return enc.Encode(s)
}

func LoadFile(path string) (*base.Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}
