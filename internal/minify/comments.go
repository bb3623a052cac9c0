package minify

import (
	"strings"
	"sync"

	"github.com/dlclark/regexp2"
)

// The minifier drops comments unless an extract rule keeps them. Matching
// comments are moved into a sidecar file per output chunk; the registry
// collects them across concurrently-minified chunks.

// The terser default, selected by the literal option value "true".
const defaultExtractPattern = `@preserve|@lic|@cc_on|^\**!`

// ParseExtractRule turns the extract-comments option into a matcher. The
// value is either "true", a JS regex literal like "/^!/i", or a bare
// pattern. Regex-literal delimiters are stripped by locating the final "/",
// never by blind index arithmetic, so flags of any length survive.
func ParseExtractRule(option string) (*regexp2.Regexp, error) {
	pattern := option
	var options regexp2.RegexOptions

	switch {
	case option == "" || option == "true":
		pattern = defaultExtractPattern

	case strings.HasPrefix(option, "/") && strings.Count(option, "/") >= 2:
		end := strings.LastIndexByte(option, '/')
		pattern = option[1:end]
		for _, flag := range option[end+1:] {
			switch flag {
			case 'i':
				options |= regexp2.IgnoreCase
			case 'm':
				options |= regexp2.Multiline
			case 's':
				options |= regexp2.Singleline
			}
		}
	}

	return regexp2.Compile(pattern, options)
}

// CommentText strips the comment markers so rules match the body only.
func CommentText(comment string) string {
	if strings.HasPrefix(comment, "//") {
		return strings.TrimPrefix(comment, "//")
	}
	text := strings.TrimPrefix(comment, "/*")
	return strings.TrimSuffix(text, "*/")
}

// ExtractedComments accumulates the kept comments per output file. Chunks
// minify in parallel, so access is serialized.
type ExtractedComments struct {
	mu       sync.Mutex
	comments map[string][]string
}

func NewExtractedComments() *ExtractedComments {
	return &ExtractedComments{comments: make(map[string][]string)}
}

func (e *ExtractedComments) Add(outputFile string, comment string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.comments[outputFile] = append(e.comments[outputFile], comment)
}

// TakeAll drains the registry, returning the comments grouped by file.
func (e *ExtractedComments) TakeAll() map[string][]string {
	e.mu.Lock()
	defer e.mu.Unlock()
	taken := e.comments
	e.comments = make(map[string][]string)
	return taken
}

// Extract filters one module's comments through the rule and records the
// matches under the output file.
func (e *ExtractedComments) Extract(rule *regexp2.Regexp, outputFile string, comments []string) {
	if rule == nil {
		return
	}
	for _, comment := range comments {
		if matched, err := rule.MatchString(CommentText(comment)); err == nil && matched {
			e.Add(outputFile, comment)
		}
	}
}
