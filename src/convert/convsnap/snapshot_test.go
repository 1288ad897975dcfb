package convsnap

import (
	"bytes"
	"multiverse/src/base"
	"strings"
	"testing"
)

const engineJSON = `{
	"boards": [
		{"l": 0, "t": 0, "c": 0, "fen": "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR"},
		{"l": 0, "t": 0, "c": 1, "fen": "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR"}
	],
	"present": {"t": 0, "c": true},
	"highlights": [
		{"color": "--highlight-check",
		 "coordinates": [{"l": 0, "t": 0, "c": 1, "x": 4, "y": 3}],
		 "arrows": [{"from": {"l": 0, "t": 0, "c": false, "x": 4, "y": 1}, "to": {"l": 0, "t": 0, "c": true, "x": 4, "y": 3}}],
		 "timelines": [0],
		 "boards": [{"l": 0, "t": 0, "c": 1}]}
	],
	"size": {"x": 8, "y": 8},
	"focus": [{"l": 0, "t": 0, "c": 1}],
	"unknown": "ignored"
}`

func TestDecode(t *testing.T) {
	s, err := Decode(strings.NewReader(engineJSON))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(s.Boards) != 2 {
		t.Fatalf("len(Boards) %d, want 2", len(s.Boards))
	}
	if s.Boards[1].C != base.Black || s.Boards[1].V() != 1 {
		t.Errorf("second board %+v, want black half-column v=1", s.Boards[1].Pos)
	}
	if s.Present == nil || s.Present.C != base.Black {
		t.Errorf("Present %+v, want black", s.Present)
	}
	if len(s.Highlights) != 1 {
		t.Fatalf("len(Highlights) %d, want 1", len(s.Highlights))
	}
	h := s.Highlights[0]
	if h.Coordinates[0].X != 4 || h.Coordinates[0].Y != 3 || h.Coordinates[0].C != base.Black {
		t.Errorf("coordinate %+v", h.Coordinates[0])
	}
	if h.Arrows[0].From.C != base.White || h.Arrows[0].To.C != base.Black {
		t.Errorf("arrow parities %v -> %v", h.Arrows[0].From.C, h.Arrows[0].To.C)
	}
	if s.Fade != nil {
		t.Errorf("Fade %v, want nil", *s.Fade)
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{name: "not json", in: "boards"},
		{name: "bad parity", in: `{"boards": [{"l": 0, "t": 0, "c": 2}]}`},
		{name: "bad size", in: `{"boards": [], "size": {"x": 0, "y": 8}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode(strings.NewReader(tt.in)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestEncodeDecode(t *testing.T) {
	fade := 0.25
	in := &base.Snapshot{
		Boards:  []base.Board{{Pos: base.Pos{L: -1, T: 2, C: base.Black}, FEN: "8/8/8/8/8/8/8/8"}},
		Present: &base.Present{T: 2, C: base.Black},
		Fade:    &fade,
	}
	var buf bytes.Buffer
	if err := Encode(&buf, in); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	out, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if out.Boards[0].Pos != in.Boards[0].Pos {
		t.Errorf("board pos %+v, want %+v", out.Boards[0].Pos, in.Boards[0].Pos)
	}
	if out.Fade == nil || *out.Fade != fade {
		t.Errorf("Fade %v, want %v", out.Fade, fade)
	}
}
