package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CyberFlameGO/rspack/internal/js_scanner"
)

func TestKeyIsStable(t *testing.T) {
	a := Key("src/index.js", "import x from './x'")
	b := Key("src/index.js", "import x from './x'")
	assert.Equal(t, a, b)
}

func TestKeyDistinguishesPathAndContents(t *testing.T) {
	base := Key("src/index.js", "let a = 1")
	assert.NotEqual(t, base, Key("src/other.js", "let a = 1"))
	assert.NotEqual(t, base, Key("src/index.js", "let a = 2"))

	// The separator keeps path/contents boundaries from colliding
	assert.NotEqual(t, Key("ab", "c"), Key("a", "bc"))
}

func TestGetPut(t *testing.T) {
	c, err := NewScanCache(4)
	require.NoError(t, err)

	key := Key("src/index.js", "export {}")
	_, ok := c.Get(key)
	assert.False(t, ok)

	entry := &Entry{Result: &js_scanner.ScanResult{}}
	c.Put(key, entry)

	got, ok := c.Get(key)
	require.True(t, ok)
	assert.Same(t, entry, got)
	assert.Equal(t, 1, c.Len())
}

func TestEviction(t *testing.T) {
	c, err := NewScanCache(2)
	require.NoError(t, err)

	c.Put(1, &Entry{})
	c.Put(2, &Entry{})
	c.Get(1) // refresh recency
	c.Put(3, &Entry{})

	_, ok := c.Get(2)
	assert.False(t, ok)
	_, ok = c.Get(1)
	assert.True(t, ok)
	assert.Equal(t, 2, c.Len())
}

func TestZeroSizeUsesDefault(t *testing.T) {
	c, err := NewScanCache(0)
	require.NoError(t, err)
	for i := uint64(0); i < 100; i++ {
		c.Put(i, &Entry{})
	}
	assert.Equal(t, 100, c.Len())
}
