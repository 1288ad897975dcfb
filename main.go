package main

import (
	"fmt"
	"os"

	"multiverse/ui"
)

func main() {
	if err := ui.RunMultiverse(); err != nil {
		fmt.Fprintf(os.Stderr, "error multiverse: %v\n", err)
		os.Exit(1)
	}
}
