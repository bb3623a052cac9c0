package js_lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CyberFlameGO/rspack/internal/logger"
)

func lexerForTest(t *testing.T, contents string) Lexer {
	t.Helper()
	source := logger.Source{
		KeyPath:    logger.Path{Text: "<stdin>"},
		PrettyPath: "<stdin>",
		Contents:   contents,
	}
	return NewLexer(logger.NewDeferLog(), source)
}

func tokensOf(t *testing.T, contents string) []T {
	t.Helper()
	lexer := lexerForTest(t, contents)
	var tokens []T
	for lexer.Token != TEndOfFile {
		tokens = append(tokens, lexer.Token)
		lexer.Next()
	}
	return tokens
}

func TestTokens(t *testing.T) {
	assert.Equal(t, []T{TImport, TIdentifier, TIdentifier, TStringLiteral},
		tokensOf(t, "import a from './a'"))
	assert.Equal(t, []T{TNew, TIdentifier, TOpenParen, TStringLiteral, TComma,
		TImport, TDot, TIdentifier, TDot, TIdentifier, TCloseParen},
		tokensOf(t, "new URL('./a.png', import.meta.url)"))
}

func TestIdentifierContents(t *testing.T) {
	lexer := lexerForTest(t, "foo $bar _baz")
	assert.Equal(t, TIdentifier, lexer.Token)
	assert.Equal(t, "foo", lexer.Identifier)
	lexer.Next()
	assert.Equal(t, "$bar", lexer.Identifier)
	lexer.Next()
	assert.Equal(t, "_baz", lexer.Identifier)
}

func TestStringLiteralContents(t *testing.T) {
	lexer := lexerForTest(t, `"a\nb"`)
	assert.Equal(t, TStringLiteral, lexer.Token)
	assert.Equal(t, "a\nb", lexer.StringLiteral)
}

func TestNumericLiteral(t *testing.T) {
	lexer := lexerForTest(t, "123.5")
	assert.Equal(t, TNumericLiteral, lexer.Token)
	assert.Equal(t, 123.5, lexer.Number)
}

func TestTemplateTokens(t *testing.T) {
	assert.Equal(t, []T{TNoSubstitutionTemplateLiteral}, tokensOf(t, "`plain`"))

	lexer := lexerForTest(t, "`a${b}c`")
	assert.Equal(t, TTemplateHead, lexer.Token)
	assert.Equal(t, "a", lexer.StringLiteral)
	lexer.Next()
	assert.Equal(t, TIdentifier, lexer.Token)
	lexer.Next()
	assert.Equal(t, TCloseBrace, lexer.Token)
	lexer.RescanCloseBraceAsTemplateToken()
	assert.Equal(t, TTemplateTail, lexer.Token)
	assert.Equal(t, "c", lexer.StringLiteral)
	lexer.Next()
	assert.Equal(t, TEndOfFile, lexer.Token)
}

func TestTemplateWithMultipleSubstitutions(t *testing.T) {
	lexer := lexerForTest(t, "`a${b}c${d}e`")
	assert.Equal(t, TTemplateHead, lexer.Token)
	lexer.Next()
	assert.Equal(t, TIdentifier, lexer.Token)
	lexer.Next()
	lexer.RescanCloseBraceAsTemplateToken()
	assert.Equal(t, TTemplateMiddle, lexer.Token)
	assert.Equal(t, "c", lexer.StringLiteral)
	lexer.Next()
	assert.Equal(t, TIdentifier, lexer.Token)
	lexer.Next()
	lexer.RescanCloseBraceAsTemplateToken()
	assert.Equal(t, TTemplateTail, lexer.Token)
	assert.Equal(t, "e", lexer.StringLiteral)
}

func TestRescanCloseBraceRequiresCloseBrace(t *testing.T) {
	log := logger.NewDeferLog()
	source := logger.Source{
		KeyPath:    logger.Path{Text: "<stdin>"},
		PrettyPath: "<stdin>",
		Contents:   "foo",
	}
	lexer := NewLexer(log, source)
	assert.PanicsWithValue(t, LexerPanic{}, func() {
		lexer.RescanCloseBraceAsTemplateToken()
	})
}

func TestKeywordsAreNotIdentifiers(t *testing.T) {
	assert.Equal(t, []T{TExport, TDefault, TFunction, TIdentifier, TOpenParen,
		TCloseParen, TOpenBrace, TCloseBrace},
		tokensOf(t, "export default function f() {}"))
}

func TestCommentsBefore(t *testing.T) {
	lexer := lexerForTest(t, "/* webpackChunkName: \"lazy\" */ foo")
	assert.Equal(t, TIdentifier, lexer.Token)
	comments := lexer.TakeCommentsBefore()
	require.Len(t, comments, 1)
	assert.Equal(t, `/* webpackChunkName: "lazy" */`, comments[0])

	// A second take returns nothing
	assert.Empty(t, lexer.TakeCommentsBefore())
}

func TestHasNewlineBefore(t *testing.T) {
	lexer := lexerForTest(t, "a\nb c")
	lexer.Next()
	assert.True(t, lexer.HasNewlineBefore)
	lexer.Next()
	assert.False(t, lexer.HasNewlineBefore)
}

func TestRangeAndRaw(t *testing.T) {
	lexer := lexerForTest(t, "  hello  ")
	r := lexer.Range()
	assert.Equal(t, int32(2), r.Loc.Start)
	assert.Equal(t, int32(5), r.Len)
	assert.Equal(t, "hello", lexer.Raw())
}

func TestScanRegExp(t *testing.T) {
	lexer := lexerForTest(t, "/ab+c/gi")
	assert.Equal(t, TSlash, lexer.Token)
	lexer.ScanRegExp()
	assert.Equal(t, "/ab+c/gi", lexer.Raw())
}

func TestIsIdentifier(t *testing.T) {
	assert.True(t, IsIdentifier("foo"))
	assert.True(t, IsIdentifier("$_1"))
	assert.False(t, IsIdentifier("1foo"))
	assert.False(t, IsIdentifier(""))
	assert.False(t, IsIdentifier("a-b"))
}

func TestSyntaxErrorPanics(t *testing.T) {
	log := logger.NewDeferLog()
	source := logger.Source{
		KeyPath:    logger.Path{Text: "<stdin>"},
		PrettyPath: "<stdin>",
		Contents:   `"unterminated`,
	}
	assert.PanicsWithValue(t, LexerPanic{}, func() {
		NewLexer(log, source)
	})
	msgs := log.Done()
	require.NotEmpty(t, msgs)
}
