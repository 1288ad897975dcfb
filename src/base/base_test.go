package base

import "testing"

func TestPosV(t *testing.T) {
	tests := []struct {
		pos  Pos
		want int
	}{
		{Pos{L: 0, T: 0, C: White}, 0},
		{Pos{L: 0, T: 0, C: Black}, 1},
		{Pos{L: 3, T: 2, C: Black}, 5},
		{Pos{L: -1, T: -1, C: White}, -2},
		{Pos{L: -1, T: -1, C: Black}, -1},
	}
	for _, tt := range tests {
		if got := tt.pos.V(); got != tt.want {
			t.Errorf("%v.V() = %d, want %d", tt.pos, got, tt.want)
		}
		if back := PosFromLV(tt.pos.L, tt.want); back != tt.pos {
			t.Errorf("PosFromLV(%d, %d) = %v, want %v", tt.pos.L, tt.want, back, tt.pos)
		}
	}
}

func TestSquareString(t *testing.T) {
	s := Square{Pos: Pos{L: 0, T: 1, C: Black}, X: 4, Y: 3}
	if got := s.String(); got != "(0T1b)e4" {
		t.Errorf("String() = %q, want (0T1b)e4", got)
	}
}

func TestAddHighlight_Merges(t *testing.T) {
	var s Snapshot
	s.AddHighlight(Highlight{Color: "red", Timelines: []int{1}})
	s.AddHighlight(Highlight{Color: "blue", Timelines: []int{2}})
	s.AddHighlight(Highlight{Color: "red", Timelines: []int{3}})
	if len(s.Highlights) != 2 {
		t.Fatalf("len(Highlights) %d, want 2", len(s.Highlights))
	}
	if got := s.Highlights[0].Timelines; len(got) != 2 || got[1] != 3 {
		t.Errorf("red timelines %v, want [1 3]", got)
	}
}

func TestMergePhantom(t *testing.T) {
	s := Snapshot{
		Boards:  []Board{{Pos: Pos{L: 0, T: 0}, FEN: "8/8/8/8/8/8/8/8"}},
		Present: &Present{T: 1, C: White},
		Phantom: []Board{{Pos: Pos{L: 0, T: 1, C: Black}, FEN: "8/8/8/8/8/8/8/8"}},
		PhantomChecks: []Arrow{{
			From: Square{Pos: Pos{L: 0, T: 1}, X: 0, Y: 0},
			To:   Square{Pos: Pos{L: 0, T: 1}, X: 7, Y: 7},
		}},
	}
	if !s.MergePhantom("--highlight-phantom-board", "--highlight-check") {
		t.Fatal("MergePhantom returned false")
	}
	if len(s.Boards) != 2 {
		t.Errorf("len(Boards) %d, want 2", len(s.Boards))
	}
	if s.Fade == nil || *s.Fade != PhantomFade {
		t.Errorf("Fade %v, want %v", s.Fade, PhantomFade)
	}
	if len(s.Highlights) != 2 {
		t.Fatalf("len(Highlights) %d, want 2", len(s.Highlights))
	}
	if got := s.Highlights[0].Boards[0].C; got != Black {
		t.Errorf("phantom board parity %v, want b", got)
	}
	if a := s.Highlights[1].Arrows[0]; a.From.C != Black || a.To.C != Black {
		t.Errorf("check arrow parities %v/%v, want b/b", a.From.C, a.To.C)
	}

	var empty Snapshot
	if empty.MergePhantom("a", "b") {
		t.Error("MergePhantom on a snapshot without phantoms returned true")
	}
}
