package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScanComments(t *testing.T) {
	source := "/*! banner */\nlet a = 1 // trailing\nlet b = 2\n/* block */\n"
	assert.Equal(t, []string{
		"/*! banner */",
		"// trailing",
		"/* block */",
	}, ScanComments(source))
}

func TestScanCommentsIgnoresStrings(t *testing.T) {
	source := "let a = \"// not a comment\"\nlet b = '/* neither */'\n// real\n"
	assert.Equal(t, []string{"// real"}, ScanComments(source))
}

func TestScanCommentsTemplateLiteral(t *testing.T) {
	source := "let a = `multi\n// line /* string */\n`\n// after\n"
	assert.Equal(t, []string{"// after"}, ScanComments(source))
}

func TestScanCommentsEscapedQuote(t *testing.T) {
	source := "let a = \"quote \\\" still string // nope\"\n// yes\n"
	assert.Equal(t, []string{"// yes"}, ScanComments(source))
}

func TestScanCommentsUnterminated(t *testing.T) {
	assert.Equal(t, []string{"// eof line"}, ScanComments("let a = 1\n// eof line"))
	assert.Equal(t, []string{"/* open"}, ScanComments("let a = 1\n/* open"))
}

func TestScanCommentsDivisionIsNotComment(t *testing.T) {
	assert.Empty(t, ScanComments("let a = b / c / d\n"))
}

func TestScanCommentsEmpty(t *testing.T) {
	assert.Empty(t, ScanComments(""))
}
