//go:build !windows

package cli

// EnableANSI is a no-op outside Windows; ANSI escapes work as-is.
func EnableANSI() {}
