package js_scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CyberFlameGO/rspack/internal/ast"
	"github.com/CyberFlameGO/rspack/internal/logger"
)

func specifierDeps(result *ScanResult) []*HarmonyImportSpecifierDependency {
	var deps []*HarmonyImportSpecifierDependency
	for _, dep := range result.Dependencies {
		if s, ok := dep.(*HarmonyImportSpecifierDependency); ok {
			deps = append(deps, s)
		}
	}
	return deps
}

func TestNamespaceMemberAccess(t *testing.T) {
	contents := `import * as ns from "m"; ns.foo; ns.foo();`
	result := scanForTest(t, contents, Options{})

	deps := specifierDeps(result)
	require.Len(t, deps, 2)

	// "ns.foo" alone: not a callee, call-like
	assert.Equal(t, []string{"foo"}, deps[0].IDs)
	assert.False(t, deps[0].InCallee)
	assert.True(t, deps[0].CallLike)
	assert.Equal(t, "ns.foo", contents[deps[0].Lo:deps[0].Hi])

	// "ns.foo()": the member is the callee
	assert.Equal(t, []string{"foo"}, deps[1].IDs)
	assert.True(t, deps[1].InCallee)
	assert.False(t, deps[1].CallLike)
}

func TestIndexAccessWithStringLiteral(t *testing.T) {
	contents := `import * as ns from "m"; ns["weird name"];`
	result := scanForTest(t, contents, Options{})

	deps := specifierDeps(result)
	require.Len(t, deps, 1)
	assert.Equal(t, []string{"weird name"}, deps[0].IDs)
	assert.Equal(t, `ns["weird name"]`, contents[deps[0].Lo:deps[0].Hi])
}

func TestDefaultImportReference(t *testing.T) {
	contents := `import def from "m"; def;`
	result := scanForTest(t, contents, Options{})

	deps := specifierDeps(result)
	require.Len(t, deps, 1)
	assert.Equal(t, []string{"default"}, deps[0].IDs)
	assert.Equal(t, SpecifierDefault, deps[0].Specifier.Kind)
	assert.False(t, deps[0].InCallee)
	assert.True(t, deps[0].CallLike)
}

func TestShorthandProperty(t *testing.T) {
	contents := `import { x } from "m"; const o = { x };`
	result := scanForTest(t, contents, Options{})

	deps := specifierDeps(result)
	require.Len(t, deps, 1)
	assert.True(t, deps[0].Shorthand)
	assert.Equal(t, []string{"x"}, deps[0].IDs)
	assert.Equal(t, "x", contents[deps[0].Lo:deps[0].Hi])
}

func TestShadowedImportIsNotReferenced(t *testing.T) {
	contents := `import { x } from "m"; function f(x) { return x; } f(1);`
	result := scanForTest(t, contents, Options{})
	assert.Empty(t, specifierDeps(result))
}

func TestImportsTableOrder(t *testing.T) {
	imports := NewImports()
	keyB := ImportKey{Request: "b", Type: ast.DependencyTypeEsmImport}
	keyA := ImportKey{Request: "a", Type: ast.DependencyTypeEsmImport}

	first := imports.GetOrCreate(keyB, logger.RangeOfOffsets(0, 10))
	imports.GetOrCreate(keyA, logger.RangeOfOffsets(20, 30))
	again := imports.GetOrCreate(keyB, logger.RangeOfOffsets(40, 50))

	assert.Same(t, first, again)
	assert.Equal(t, int32(0), again.Span.Loc.Start)

	var order []string
	imports.ForEach(func(key ImportKey, info *ImporterInfo) {
		order = append(order, key.Request)
	})
	assert.Equal(t, []string{"b", "a"}, order)
}

func TestSpecifierImportedName(t *testing.T) {
	imported := "orig"
	assert.Equal(t, "default", DefaultSpecifier("d").ImportedName())
	assert.Equal(t, "orig", NamedSpecifier("local", &imported).ImportedName())
	assert.Equal(t, "plain", NamedSpecifier("plain", nil).ImportedName())
	assert.Equal(t, "ns", NamespaceSpecifier("ns").ImportedName())
}

func TestExportImportedSpecifierExports(t *testing.T) {
	original := "a"
	dep := NewHarmonyExportImportedSpecifierDependency("m", logger.RangeOfOffsets(0, 10),
		NamedSpecifier("b", &original))

	exports := dep.GetExports()
	require.NotNil(t, exports)
	assert.Equal(t, ast.ExportsArray, exports.Exports.Kind)
	require.Len(t, exports.Exports.Entries, 1)
	spec := exports.Exports.Entries[0].Spec
	require.NotNil(t, spec)
	assert.Equal(t, "b", spec.Name)
	assert.Equal(t, []string{"a"}, spec.Export)
}

func TestExportImportedSpecifierPanicsOnDefault(t *testing.T) {
	assert.Panics(t, func() {
		NewHarmonyExportImportedSpecifierDependency("m", logger.Range{}, DefaultSpecifier("d"))
	})
}

func TestDependencyClonesAreSnapshots(t *testing.T) {
	dep := NewHarmonyImportSpecifierDependency("m", 5, 8, []string{"a"}, NamedSpecifier("a", nil))
	dep.DestructuredNames = []string{"x"}

	clone, ok := ast.AsModuleDependency(dep.Clone())
	require.True(t, ok)
	assert.Equal(t, dep.ID(), clone.ID())
	assert.Equal(t, dep.Request(), clone.Request())

	// Mutating the clone must not leak into the original
	clone.SetRequest("other")
	assert.Equal(t, "m", dep.Request())

	cloned := clone.(*HarmonyImportSpecifierDependency)
	cloned.IDs[0] = "changed"
	assert.Equal(t, "a", dep.IDs[0])
}

func TestDependencyIDsAreUnique(t *testing.T) {
	a := NewImportDependency("x", logger.Range{}, nil)
	b := NewImportDependency("x", logger.Range{}, nil)
	assert.NotEqual(t, a.ID(), b.ID())
}
