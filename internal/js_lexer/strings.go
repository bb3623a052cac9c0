package js_lexer

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// decodeEscapeSequences resolves backslash escapes in string and template
// literal contents. Invalid escapes decode to the replacement character
// instead of failing, since the scanners only compare decoded values against
// known specifiers and property names.
func decodeEscapeSequences(text string) string {
	sb := strings.Builder{}
	sb.Grow(len(text))

	for i := 0; i < len(text); {
		c, width := utf8.DecodeRuneInString(text[i:])
		i += width
		if c != '\\' || i >= len(text) {
			sb.WriteRune(c)
			continue
		}

		c2, width2 := utf8.DecodeRuneInString(text[i:])
		i += width2

		switch c2 {
		case 'b':
			sb.WriteByte('\b')
		case 'f':
			sb.WriteByte('\f')
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case 'v':
			sb.WriteByte('\v')
		case '0':
			sb.WriteByte(0)

		case '\r':
			// Line continuation, swallowing a CRLF pair as one newline
			if i < len(text) && text[i] == '\n' {
				i++
			}

		case '\n', ' ', ' ':
			// Line continuation

		case 'x':
			// "\x41"
			if i+2 <= len(text) {
				if value, err := strconv.ParseUint(text[i:i+2], 16, 32); err == nil {
					sb.WriteRune(rune(value))
					i += 2
					continue
				}
			}
			sb.WriteRune(utf8.RuneError)

		case 'u':
			if i < len(text) && text[i] == '{' {
				// "\u{1F680}"
				if close := strings.IndexByte(text[i:], '}'); close > 1 {
					if value, err := strconv.ParseUint(text[i+1:i+close], 16, 32); err == nil && value <= 0x10FFFF {
						sb.WriteRune(rune(value))
						i += close + 1
						continue
					}
				}
				sb.WriteRune(utf8.RuneError)
			} else if i+4 <= len(text) {
				// "☃"
				if value, err := strconv.ParseUint(text[i:i+4], 16, 32); err == nil {
					sb.WriteRune(rune(value))
					i += 4
					continue
				}
				sb.WriteRune(utf8.RuneError)
			} else {
				sb.WriteRune(utf8.RuneError)
			}

		default:
			sb.WriteRune(c2)
		}
	}

	return sb.String()
}

func parseLossyNumber(raw string) float64 {
	raw = strings.ReplaceAll(raw, "_", "")
	if len(raw) > 2 && raw[0] == '0' {
		switch raw[1] {
		case 'x', 'X', 'o', 'O', 'b', 'B':
			value, err := strconv.ParseUint(raw[2:], baseForPrefix(raw[1]), 64)
			if err != nil {
				return 0
			}
			return float64(value)
		}
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return value
}

func baseForPrefix(c byte) int {
	switch c {
	case 'x', 'X':
		return 16
	case 'o', 'O':
		return 8
	default:
		return 2
	}
}
