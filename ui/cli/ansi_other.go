//go:build !windows

package cli

// EnableANSI is a no-op, terminals outside Windows understand ANSI
func EnableANSI() {}
