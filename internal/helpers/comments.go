package helpers

import "strings"

// ScanComments lexes the comments out of JavaScript or CSS source text,
// honoring string literals so quoted comment markers don't count. Good
// enough for license extraction; the real parsers do their own lexing.
func ScanComments(contents string) []string {
	var comments []string
	i := 0
	for i < len(contents) {
		c := contents[i]
		switch c {
		case '"', '\'', '`':
			i = skipStringLiteral(contents, i)

		case '/':
			if i+1 < len(contents) && contents[i+1] == '/' {
				end := strings.IndexByte(contents[i:], '\n')
				if end < 0 {
					comments = append(comments, contents[i:])
					return comments
				}
				comments = append(comments, contents[i:i+end])
				i += end
				continue
			}
			if i+1 < len(contents) && contents[i+1] == '*' {
				end := strings.Index(contents[i+2:], "*/")
				if end < 0 {
					comments = append(comments, contents[i:])
					return comments
				}
				comments = append(comments, contents[i:i+2+end+2])
				i += 2 + end + 2
				continue
			}
			i++

		default:
			i++
		}
	}
	return comments
}

func skipStringLiteral(contents string, start int) int {
	quote := contents[start]
	i := start + 1
	for i < len(contents) {
		c := contents[i]
		if c == '\\' {
			i += 2
			continue
		}
		i++
		if c == quote {
			break
		}
		if quote != '`' && (c == '\n' || c == '\r') {
			break
		}
	}
	return i
}
