package js_scanner

import (
	"strconv"
	"strings"

	"github.com/dlclark/regexp2"

	"github.com/CyberFlameGO/rspack/internal/ast"
)

// Magic comments are the "/* webpackChunkName: "x" */" annotations carried
// inside "import(...)" parentheses. Unknown keys are ignored; malformed
// values fall back to the default rather than failing the scan.
type magicComments struct {
	ChunkName     string
	Mode          ast.ContextMode
	HasMode       bool
	PrefetchOrder *int32
	PreloadOrder  *int32
	Ignore        bool
}

var (
	magicChunkName = regexp2.MustCompile(`webpackChunkName\s*:\s*("([^"]*)"|'([^']*)')`, regexp2.None)
	magicMode      = regexp2.MustCompile(`webpackMode\s*:\s*("([^"]*)"|'([^']*)')`, regexp2.None)
	magicPrefetch  = regexp2.MustCompile(`webpackPrefetch\s*:\s*(true|-?\d+)`, regexp2.None)
	magicPreload   = regexp2.MustCompile(`webpackPreload\s*:\s*(true|-?\d+)`, regexp2.None)
	magicIgnore    = regexp2.MustCompile(`webpackIgnore\s*:\s*true`, regexp2.None)
)

func parseMagicComments(comments []string) magicComments {
	parsed := magicComments{Mode: ast.ContextModeLazy}
	for _, comment := range comments {
		text := strings.TrimPrefix(comment, "//")
		if strings.HasPrefix(text, "/*") {
			text = strings.TrimSuffix(strings.TrimPrefix(text, "/*"), "*/")
		}

		if value, ok := matchQuoted(magicChunkName, text); ok {
			parsed.ChunkName = value
		}
		if value, ok := matchQuoted(magicMode, text); ok {
			if mode, err := ast.ParseContextMode(value); err == nil {
				parsed.Mode = mode
				parsed.HasMode = true
			}
		}
		if order, ok := matchOrder(magicPrefetch, text); ok {
			parsed.PrefetchOrder = order
		}
		if order, ok := matchOrder(magicPreload, text); ok {
			parsed.PreloadOrder = order
		}
		if match, _ := magicIgnore.FindStringMatch(text); match != nil {
			parsed.Ignore = true
		}
	}
	return parsed
}

func matchQuoted(re *regexp2.Regexp, text string) (string, bool) {
	match, _ := re.FindStringMatch(text)
	if match == nil {
		return "", false
	}
	groups := match.Groups()
	if value := groups[2].String(); value != "" {
		return value, true
	}
	return groups[3].String(), true
}

func matchOrder(re *regexp2.Regexp, text string) (*int32, bool) {
	match, _ := re.FindStringMatch(text)
	if match == nil {
		return nil, false
	}
	raw := match.Groups()[1].String()
	if raw == "true" {
		order := int32(0)
		return &order, true
	}
	value, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return nil, false
	}
	order := int32(value)
	return &order, true
}

func (m magicComments) groupOptions() *ast.ChunkGroupOptions {
	if m.ChunkName == "" && m.PrefetchOrder == nil && m.PreloadOrder == nil {
		return nil
	}
	return &ast.ChunkGroupOptions{
		Name:          m.ChunkName,
		PrefetchOrder: m.PrefetchOrder,
		PreloadOrder:  m.PreloadOrder,
	}
}

// parseRegExpLiteral converts a JavaScript regex literal like "/\.json$/i"
// into a compiled pattern. The trailing flags are mapped onto the matching
// regexp2 options; unsupported flags are dropped.
func parseRegExpLiteral(literal string) *regexp2.Regexp {
	if len(literal) < 2 || literal[0] != '/' {
		return nil
	}
	end := strings.LastIndexByte(literal, '/')
	if end <= 0 {
		return nil
	}
	pattern := literal[1:end]
	flags := literal[end+1:]

	var options regexp2.RegexOptions
	for _, flag := range flags {
		switch flag {
		case 'i':
			options |= regexp2.IgnoreCase
		case 'm':
			options |= regexp2.Multiline
		case 's':
			options |= regexp2.Singleline
		case 'u':
			options |= regexp2.Unicode
		}
	}

	re, err := regexp2.Compile(pattern, options)
	if err != nil {
		return nil
	}
	return re
}
