package e2e

import "github.com/charmbracelet/x/ansi"

// StripANSI removes escape sequences, including private modes such as the
// alternate screen switch
func StripANSI(s string) string {
	return ansi.Strip(s)
}
