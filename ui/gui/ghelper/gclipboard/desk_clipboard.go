//go:build !js && !wasm
// +build !js,!wasm

package gclipboard

import "github.com/atotto/clipboard"

// Unsupported reports that no clipboard utility is available
func Unsupported() bool {
	return clipboard.Unsupported
}

func WriteAll(text string) error {
	return clipboard.WriteAll(text)
}
