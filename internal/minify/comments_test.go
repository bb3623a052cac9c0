package minify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustMatch(t *testing.T, rule interface {
	MatchString(string) (bool, error)
}, text string) bool {
	t.Helper()
	matched, err := rule.MatchString(text)
	require.NoError(t, err)
	return matched
}

func TestParseExtractRuleDefault(t *testing.T) {
	for _, option := range []string{"", "true"} {
		rule, err := ParseExtractRule(option)
		require.NoError(t, err)
		assert.True(t, mustMatch(t, rule, "! Copyright 2024"))
		assert.True(t, mustMatch(t, rule, "**! bundled"))
		assert.True(t, mustMatch(t, rule, " @preserve this"))
		assert.True(t, mustMatch(t, rule, " @license MIT"))
		assert.False(t, mustMatch(t, rule, " just a comment"))
	}
}

func TestParseExtractRuleRegexLiteral(t *testing.T) {
	rule, err := ParseExtractRule("/^copyright/i")
	require.NoError(t, err)
	assert.True(t, mustMatch(t, rule, "Copyright Example Corp"))
	assert.False(t, mustMatch(t, rule, "no notice here"))
}

func TestParseExtractRuleMultipleFlags(t *testing.T) {
	rule, err := ParseExtractRule("/^notice$/im")
	require.NoError(t, err)
	assert.True(t, mustMatch(t, rule, "padding\nNOTICE\npadding"))
}

func TestParseExtractRuleBarePattern(t *testing.T) {
	rule, err := ParseExtractRule("@keepme")
	require.NoError(t, err)
	assert.True(t, mustMatch(t, rule, "some @keepme text"))
	assert.False(t, mustMatch(t, rule, "nothing"))
}

func TestParseExtractRuleInvalidPattern(t *testing.T) {
	_, err := ParseExtractRule("(unclosed")
	assert.Error(t, err)
}

func TestCommentText(t *testing.T) {
	assert.Equal(t, "! line", CommentText("//! line"))
	assert.Equal(t, "! block ", CommentText("/*! block */"))
}

func TestExtractedComments(t *testing.T) {
	rule, err := ParseExtractRule("true")
	require.NoError(t, err)

	extracted := NewExtractedComments()
	extracted.Extract(rule, "main.js", []string{
		"/*! keep me */",
		"// drop me",
		"//! keep me too",
	})
	extracted.Extract(rule, "other.js", []string{"/* @license MIT */"})

	taken := extracted.TakeAll()
	assert.Equal(t, []string{"/*! keep me */", "//! keep me too"}, taken["main.js"])
	assert.Equal(t, []string{"/* @license MIT */"}, taken["other.js"])

	// Drained
	assert.Empty(t, extracted.TakeAll())
}

func TestExtractNilRuleIsNoop(t *testing.T) {
	extracted := NewExtractedComments()
	extracted.Extract(nil, "main.js", []string{"/*! keep me */"})
	assert.Empty(t, extracted.TakeAll())
}
