package convfen

import (
	"errors"
	"fmt"
	"multiverse/src/base"
	"strconv"
	"strings"
)

var ErrEmptyFEN = errors.New("empty board encoding")

// RowError reports the first malformed row of a board encoding
type RowError struct {
	Row    int // 1-based, counted from the top rank
	Text   string
	Reason string
}

func (e *RowError) Error() string {
	return fmt.Sprintf("invalid FEN row[%d] %q: %s", e.Row, e.Text, e.Reason)
}

// ConvertFENToGrid parses the piece placement field into lengthY rows of
// lengthX squares. Digit runs (possibly multi-digit) are empty squares.
func ConvertFENToGrid(fen string, lengthX, lengthY int) (base.Grid, error) {
	placement := strings.TrimSpace(fen)
	if i := strings.IndexByte(placement, ' '); i >= 0 {
		placement = placement[:i]
	}
	if placement == "" {
		return nil, ErrEmptyFEN
	}

	rows := strings.Split(placement, "/")
	if len(rows) != lengthY {
		return nil, fmt.Errorf("invalid FEN: must be %d rows, but there are %d", lengthY, len(rows))
	}

	grid := make(base.Grid, lengthY)
	for r, row := range rows {
		parsed, err := convertRow(row, lengthX)
		if err != nil {
			return nil, &RowError{Row: r + 1, Text: row, Reason: err.Error()}
		}
		grid[r] = parsed
	}
	return grid, nil
}

func convertRow(row string, lengthX int) ([]base.Piece, error) {
	out := make([]base.Piece, 0, lengthX)
	runes := []rune(row)
	for i := 0; i < len(runes); i++ {
		ch := runes[i]
		if ch >= '0' && ch <= '9' {
			j := i
			for j+1 < len(runes) && runes[j+1] >= '0' && runes[j+1] <= '9' {
				j++
			}
			empty, _ := strconv.Atoi(string(runes[i : j+1]))
			if empty == 0 {
				return nil, errors.New("zero-length empty run")
			}
			if len(out)+empty > lengthX {
				return nil, fmt.Errorf("row overflow: must be %d squares, got at least %d", lengthX, len(out)+empty)
			}
			for k := 0; k < empty; k++ {
				out = append(out, base.EmptyPiece)
			}
			i = j
			continue
		}
		p, ok := base.PieceFromRune(ch)
		if !ok {
			return nil, fmt.Errorf("invalid piece %q", ch)
		}
		if len(out) == lengthX {
			return nil, fmt.Errorf("row overflow: must be %d squares", lengthX)
		}
		out = append(out, p)
	}
	if len(out) != lengthX {
		return nil, fmt.Errorf("must be %d squares, but there are %d", lengthX, len(out))
	}
	return out, nil
}

// ConvertGridToFEN is the inverse of ConvertFENToGrid
func ConvertGridToFEN(grid base.Grid) string {
	var b strings.Builder
	for r, row := range grid {
		empty := 0
		for _, pc := range row {
			if pc.IsEmpty() {
				empty++
				continue
			}
			if empty > 0 {
				b.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			b.WriteByte(byte(pc))
		}
		if empty > 0 {
			b.WriteString(strconv.Itoa(empty))
		}
		if r < len(grid)-1 {
			b.WriteByte('/')
		}
	}
	return b.String()
}
