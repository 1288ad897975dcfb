package cli

import (
	"os"

	"golang.org/x/term"
)

const defaultWidth = 80

// Terminal describes where the dump goes
type Terminal struct {
	IsTTY bool
	Width int
}

func DetectTerminal(f *os.File) Terminal {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return Terminal{Width: defaultWidth}
	}
	w, _, err := term.GetSize(fd)
	if err != nil || w <= 0 {
		w = defaultWidth
	}
	return Terminal{IsTTY: true, Width: w}
}
