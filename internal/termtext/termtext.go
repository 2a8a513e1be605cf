// Package termtext measures text that may carry terminal control sequences.
package termtext

import "strings"

const esc = '\x1b'

// VisibleLen returns the number of columns s occupies once printed.
//
// Control sequence introducers (ESC '[') are skipped together with their
// parameter and intermediate bytes up to and including the final byte. An
// ESC followed by anything else swallows that one character. Every other
// code point counts as a single column.
func VisibleLen(s string) int {
	n := 0
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		if runes[i] != esc {
			n++
			continue
		}
		i++
		if i >= len(runes) || runes[i] != '[' {
			continue
		}
		for i+1 < len(runes) {
			i++
			c := runes[i]
			if isParameter(c) || isIntermediate(c) {
				continue
			}
			// final byte, or a malformed sequence which we stop at
			break
		}
	}
	return n
}

func isParameter(c rune) bool    { return c >= 0x30 && c <= 0x3f }
func isIntermediate(c rune) bool { return c >= 0x20 && c <= 0x2f }

// Lines splits formatted text into display lines on embedded line breaks.
// A trailing "\r" is dropped from each line and a terminating newline does
// not produce an extra empty line. The empty string has no lines.
func Lines(s string) []string {
	if s == "" {
		return nil
	}
	s = strings.TrimSuffix(s, "\n")
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// MaxVisibleLen returns the widest VisibleLen among lines.
func MaxVisibleLen(lines []string) int {
	w := 0
	for _, l := range lines {
		if n := VisibleLen(l); n > w {
			w = n
		}
	}
	return w
}
