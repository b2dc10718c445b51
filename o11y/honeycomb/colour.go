package honeycomb

import (
	"fmt"
	"hash/crc32"
)

// palette holds the 256-colour ANSI codes that stay readable on a dark terminal.
var palette = func() []uint8 {
	var p []uint8
	for c := 9; c <= 231; c++ {
		switch {
		case c >= 15 && c <= 20, c >= 52 && c <= 62, c >= 88 && c <= 91, c == 145, c == 159:
			continue
		}
		p = append(p, uint8(c))
	}
	return p
}()

// applyColour wraps value in the escape sequence for a colour picked by hashing the
// value, so the same trace id or span name always gets the same colour.
func applyColour(value string) string {
	i := crc32.ChecksumIEEE([]byte(value)) % uint32(len(palette)) //nolint:gosec
	return fmt.Sprintf("\033[1;38;5;%dm%s\033[0m", palette[i], value)
}

// errorHighlight renders s as white on red.
func errorHighlight(s string) string {
	return fmt.Sprintf("\033[1;37;41m%s\033[0m", s)
}
