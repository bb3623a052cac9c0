package cache

import (
	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/CyberFlameGO/rspack/internal/js_ast"
	"github.com/CyberFlameGO/rspack/internal/js_scanner"
)

// ScanCache memoizes per-module analysis across rebuilds. Entries are keyed
// by a content hash, so an unchanged file skips parsing and scanning
// entirely; dependency IDs inside a cached result stay stable, which is what
// makes incremental rebuilds deterministic.
type ScanCache struct {
	entries *lru.Cache[uint64, *Entry]
}

type Entry struct {
	Tree   *js_ast.AST
	Result *js_scanner.ScanResult
}

const defaultCacheSize = 1024

func NewScanCache(size int) (*ScanCache, error) {
	if size <= 0 {
		size = defaultCacheSize
	}
	entries, err := lru.New[uint64, *Entry](size)
	if err != nil {
		return nil, err
	}
	return &ScanCache{entries: entries}, nil
}

// Key hashes the module path together with its contents. The path is part
// of the key because scan output depends on the module's identity, not just
// its text.
func Key(path string, contents string) uint64 {
	digest := xxhash.New()
	_, _ = digest.WriteString(path)
	_, _ = digest.Write([]byte{0})
	_, _ = digest.WriteString(contents)
	return digest.Sum64()
}

func (c *ScanCache) Get(key uint64) (*Entry, bool) {
	return c.entries.Get(key)
}

func (c *ScanCache) Put(key uint64, entry *Entry) {
	c.entries.Add(key, entry)
}

func (c *ScanCache) Len() int {
	return c.entries.Len()
}
