package css_scanner

import (
	"strings"

	"github.com/CyberFlameGO/rspack/internal/ast"
	"github.com/CyberFlameGO/rspack/internal/logger"
)

// The CSS scanner walks a stylesheet's raw text and records @import rules,
// url(...) tokens, and CSS-modules composes declarations. It is a linear
// tokenizer rather than a full CSS parser: strings and comments are honored,
// everything else is matched lexically.

type ScanResult struct {
	Dependencies []ast.Dependency
	Rewrites     []ast.DependencyRewrite
}

type scanner struct {
	log      logger.Log
	source   logger.Source
	contents string
	i        int

	deps     []ast.Dependency
	rewrites []ast.DependencyRewrite
}

func Scan(log logger.Log, source logger.Source) *ScanResult {
	s := &scanner{log: log, source: source, contents: source.Contents}
	s.scan()
	return &ScanResult{Dependencies: s.deps, Rewrites: s.rewrites}
}

func (s *scanner) scan() {
	for s.i < len(s.contents) {
		c := s.contents[s.i]
		switch {
		case c == '/' && s.peekAt(s.i+1) == '*':
			s.skipComment()

		case c == '"' || c == '\'':
			s.skipString(c)

		case c == '@' && s.matchKeyword(s.i+1, "import"):
			s.scanImportRule()

		case (c == 'u' || c == 'U') && s.matchKeyword(s.i, "url") &&
			s.peekAt(s.i+3) == '(' && !isIdentByte(s.peekBefore()):
			s.scanURLToken()

		case c == 'c' && s.matchKeyword(s.i, "composes") && !isIdentByte(s.peekBefore()):
			s.scanComposesDecl()

		default:
			s.i++
		}
	}
}

func (s *scanner) peekAt(i int) byte {
	if i < len(s.contents) {
		return s.contents[i]
	}
	return 0
}

func (s *scanner) peekBefore() byte {
	if s.i > 0 {
		return s.contents[s.i-1]
	}
	return 0
}

// matchKeyword reports a case-insensitive keyword at position i that is not
// followed by more identifier characters.
func (s *scanner) matchKeyword(i int, keyword string) bool {
	if i+len(keyword) > len(s.contents) {
		return false
	}
	if !strings.EqualFold(s.contents[i:i+len(keyword)], keyword) {
		return false
	}
	return !isIdentByte(s.peekAt(i + len(keyword)))
}

func isIdentByte(c byte) bool {
	return c == '-' || c == '_' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func (s *scanner) skipComment() {
	end := strings.Index(s.contents[s.i+2:], "*/")
	if end < 0 {
		s.i = len(s.contents)
		return
	}
	s.i += 2 + end + 2
}

func (s *scanner) skipString(quote byte) {
	s.i++
	for s.i < len(s.contents) {
		c := s.contents[s.i]
		if c == '\\' {
			s.i += 2
			continue
		}
		s.i++
		if c == quote {
			return
		}
	}
}

func (s *scanner) skipWhitespace() {
	for s.i < len(s.contents) {
		switch s.contents[s.i] {
		case ' ', '\t', '\n', '\r', '\f':
			s.i++
		default:
			return
		}
	}
}

// readString consumes a quoted string and returns its decoded value.
func (s *scanner) readString(quote byte) string {
	var sb strings.Builder
	s.i++
	for s.i < len(s.contents) {
		c := s.contents[s.i]
		if c == '\\' && s.i+1 < len(s.contents) {
			sb.WriteByte(s.contents[s.i+1])
			s.i += 2
			continue
		}
		s.i++
		if c == quote {
			break
		}
		sb.WriteByte(c)
	}
	return sb.String()
}

// readURLArgument consumes the contents of "url(...)" starting just past the
// open paren and returns the request together with its span.
func (s *scanner) readURLArgument() (string, logger.Range, bool) {
	s.skipWhitespace()
	start := s.i

	if c := s.peekAt(s.i); c == '"' || c == '\'' {
		value := s.readString(c)
		span := logger.RangeOfOffsets(uint32(start), uint32(s.i))
		s.skipWhitespace()
		if s.peekAt(s.i) == ')' {
			s.i++
		}
		return value, span, true
	}

	for s.i < len(s.contents) && s.contents[s.i] != ')' {
		s.i++
	}
	value := strings.TrimSpace(s.contents[start:s.i])
	span := logger.RangeOfOffsets(uint32(start), uint32(start+len(value)))
	if s.i < len(s.contents) {
		s.i++
	}
	return value, span, value != ""
}

// isExternalURL filters requests the bundler never touches.
func isExternalURL(url string) bool {
	return url == "" ||
		strings.HasPrefix(url, "data:") ||
		strings.HasPrefix(url, "http://") ||
		strings.HasPrefix(url, "https://") ||
		strings.HasPrefix(url, "//") ||
		strings.HasPrefix(url, "#")
}

// @import "x"; or @import url(x) screen;
func (s *scanner) scanImportRule() {
	atLoc := s.i
	s.i += len("@import")
	s.skipWhitespace()

	var request string
	var ok bool
	switch {
	case s.peekAt(s.i) == '"' || s.peekAt(s.i) == '\'':
		request = s.readString(s.peekAt(s.i))
		ok = true
	case s.matchKeyword(s.i, "url") && s.peekAt(s.i+3) == '(':
		s.i += 4
		request, _, ok = s.readURLArgument()
	}
	if !ok {
		s.log.AddRangeWarning(&s.source, logger.RangeOfOffsets(uint32(atLoc), uint32(s.i)),
			"Expected a string or url() after @import")
		return
	}

	// Everything up to the semicolon is the media query
	mediaStart := s.i
	for s.i < len(s.contents) && s.contents[s.i] != ';' {
		s.i++
	}
	media := strings.TrimSpace(s.contents[mediaStart:s.i])
	if s.i < len(s.contents) {
		s.i++
	}

	span := logger.RangeOfOffsets(uint32(atLoc), uint32(s.i))
	if isExternalURL(request) {
		return
	}
	s.deps = append(s.deps, NewImportDependency(request, span, media))

	// The rule is inlined by the bundler, so the statement is deleted
	s.rewrites = append(s.rewrites, ast.NewConstDependency(uint32(atLoc), uint32(s.i), ""))
}

func (s *scanner) scanURLToken() {
	s.i += 4
	request, span, ok := s.readURLArgument()
	if !ok || isExternalURL(request) {
		return
	}
	s.deps = append(s.deps, NewURLDependency(request, span))
}

// composes: a b from "m";
func (s *scanner) scanComposesDecl() {
	declLoc := s.i
	s.i += len("composes")
	s.skipWhitespace()
	if s.peekAt(s.i) != ':' {
		return
	}
	s.i++

	valueStart := s.i
	for s.i < len(s.contents) && s.contents[s.i] != ';' && s.contents[s.i] != '}' {
		s.i++
	}
	value := s.contents[valueStart:s.i]
	span := logger.RangeOfOffsets(uint32(declLoc), uint32(s.i))

	fields := strings.Fields(value)
	fromIndex := -1
	for i, field := range fields {
		if field == "from" {
			fromIndex = i
			break
		}
	}
	if fromIndex < 0 || fromIndex+1 >= len(fields) {
		// Composing local classes needs no dependency
		return
	}

	source := fields[fromIndex+1]
	if source == "global" {
		return
	}
	request := strings.Trim(source, `"'`)
	names := fields[:fromIndex]
	if len(names) == 0 || isExternalURL(request) {
		return
	}
	s.deps = append(s.deps, NewComposeDependency(request, span, names))
}
