package ast

import (
	"sync"
	"testing"

	"github.com/dlclark/regexp2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDependencyCategoryRoundTrip(t *testing.T) {
	categories := []DependencyCategory{
		DependencyCategoryEsm,
		DependencyCategoryCommonJS,
		DependencyCategoryURL,
		DependencyCategoryCssImport,
		DependencyCategoryCssCompose,
		DependencyCategoryWasm,
		DependencyCategoryWorker,
		DependencyCategoryUnknown,
	}
	for _, category := range categories {
		parsed, err := ParseDependencyCategory(category.String())
		require.NoError(t, err)
		assert.Equal(t, category, parsed)
	}

	_, err := ParseDependencyCategory("not-a-category")
	assert.Error(t, err)
}

func TestDependencyTypeDisplay(t *testing.T) {
	assert.Equal(t, "esm import", DependencyTypeEsmImport.String())
	assert.Equal(t, "new URL()", DependencyTypeNewURL.String())
	assert.Equal(t, "import.meta.webpackHot.accept", DependencyTypeImportMetaHotAccept.String())
	assert.Equal(t, "custom my-plugin", CustomDependencyType("my-plugin").String())
	assert.Equal(t, "unknown", DependencyTypeUnknown.String())
}

func TestDependencyTypeComparable(t *testing.T) {
	assert.Equal(t, DependencyTypeEsmImport, DependencyTypeEsmImport)
	assert.NotEqual(t, DependencyTypeEsmImport, DependencyTypeEsmExport)
	assert.Equal(t, CustomDependencyType("x"), CustomDependencyType("x"))
	assert.NotEqual(t, CustomDependencyType("x"), CustomDependencyType("y"))
}

func TestDependencyIDsAreUniqueUnderConcurrency(t *testing.T) {
	const goroutines = 8
	const perGoroutine = 1000

	ids := make([][]DependencyID, goroutines)
	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			ids[g] = make([]DependencyID, perGoroutine)
			for i := 0; i < perGoroutine; i++ {
				ids[g][i] = NewDependencyID()
			}
		}(g)
	}
	wg.Wait()

	seen := make(map[DependencyID]bool, goroutines*perGoroutine)
	for _, batch := range ids {
		for _, id := range batch {
			assert.False(t, seen[id], "duplicate id %d", id)
			seen[id] = true
		}
	}
}

func TestIsAsyncForContextModes(t *testing.T) {
	forMode := func(mode ContextMode) bool {
		dep := NewContextElementDependency("./a", "./a", "./dir",
			&ContextOptions{Mode: mode}, DependencyCategoryEsm)
		return IsAsyncDependency(dep)
	}

	assert.True(t, forMode(ContextModeLazy))
	assert.True(t, forMode(ContextModeLazyOnce))
	assert.False(t, forMode(ContextModeSync))
	assert.False(t, forMode(ContextModeEager))
	assert.False(t, forMode(ContextModeWeak))
	assert.False(t, forMode(ContextModeAsyncWeak))
}

func TestContextModeRoundTrip(t *testing.T) {
	for _, mode := range []ContextMode{
		ContextModeSync, ContextModeEager, ContextModeWeak,
		ContextModeAsyncWeak, ContextModeLazy, ContextModeLazyOnce,
	} {
		parsed, err := ParseContextMode(mode.String())
		require.NoError(t, err)
		assert.Equal(t, mode, parsed)
	}
	_, err := ParseContextMode("sometimes")
	assert.Error(t, err)
}

func TestContextOptionsCloneSharesPatterns(t *testing.T) {
	re := regexp2.MustCompile(`\.json$`, regexp2.None)
	order := int32(3)
	options := &ContextOptions{
		Mode:         ContextModeLazy,
		Recursive:    true,
		RegExp:       re,
		Request:      "./locales",
		GroupOptions: &ChunkGroupOptions{Name: "locales", PrefetchOrder: &order},
	}

	clone := options.Clone()
	require.NotNil(t, clone)

	// Patterns are immutable after construction so clones share them
	assert.Same(t, options.RegExp, clone.RegExp)

	// Group options are deep-copied
	require.NotNil(t, clone.GroupOptions)
	*clone.GroupOptions.PrefetchOrder = 9
	assert.Equal(t, int32(3), *options.GroupOptions.PrefetchOrder)
}

func TestExportsSpecClone(t *testing.T) {
	canMangle := true
	spec := NewExportSpec("a")
	spec.Export = []string{"original"}
	original := &ExportsSpec{
		Exports:   ExportsOfExportsSpec{Kind: ExportsArray, Entries: []ExportNameOrSpec{{Spec: &spec}}},
		CanMangle: &canMangle,
	}

	clone := original.Clone()
	require.NotNil(t, clone)

	*clone.CanMangle = false
	assert.True(t, *original.CanMangle)

	clone.Exports.Entries[0].Spec.Export[0] = "changed"
	assert.Equal(t, "original", original.Exports.Entries[0].Spec.Export[0])

	var nilSpec *ExportsSpec
	assert.Nil(t, nilSpec.Clone())
}

func TestConstDependencyRewrite(t *testing.T) {
	rewrite := NewConstDependency(3, 9, "replacement")
	lo, hi := rewrite.RewriteRange()
	assert.Equal(t, uint32(3), lo)
	assert.Equal(t, uint32(9), hi)
	assert.Equal(t, "replacement", rewrite.Replacement())
}
