package js_scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CyberFlameGO/rspack/internal/ast"
	"github.com/CyberFlameGO/rspack/internal/js_parser"
	"github.com/CyberFlameGO/rspack/internal/js_printer"
	"github.com/CyberFlameGO/rspack/internal/logger"
	"github.com/CyberFlameGO/rspack/internal/test"
)

func scanForTest(t *testing.T, contents string, options Options) *ScanResult {
	t.Helper()
	log := logger.NewDeferLog()
	source := test.SourceForTest(contents)
	tree, ok := js_parser.Parse(log, source)
	require.True(t, ok, "parse failed: %v", log.Done())
	return Scan(log, test.SilentZerolog(), source, &tree, options)
}

func moduleDeps(result *ScanResult) []ast.ModuleDependency {
	var deps []ast.ModuleDependency
	for _, dep := range result.Dependencies {
		if md, ok := ast.AsModuleDependency(dep); ok {
			deps = append(deps, md)
		}
	}
	return deps
}

func TestNamedImportAndCall(t *testing.T) {
	contents := `import { a as b } from "x"; b();`
	result := scanForTest(t, contents, Options{})

	require.Len(t, result.Dependencies, 2)

	umbrella, ok := result.Dependencies[0].(*HarmonyImportDependency)
	require.True(t, ok)
	assert.Equal(t, "x", umbrella.Request())
	assert.Equal(t, ast.DependencyTypeEsmImport, umbrella.Type())
	assert.False(t, umbrella.ExportsAll)
	require.Len(t, umbrella.Specifiers, 1)
	assert.Equal(t, SpecifierNamed, umbrella.Specifiers[0].Kind)
	assert.Equal(t, "b", umbrella.Specifiers[0].Local)
	assert.Equal(t, "a", umbrella.Specifiers[0].ImportedName())

	specifier, ok := result.Dependencies[1].(*HarmonyImportSpecifierDependency)
	require.True(t, ok)
	assert.Equal(t, []string{"a"}, specifier.IDs)
	assert.True(t, specifier.InCallee)
	assert.True(t, specifier.CallLike)
	assert.False(t, specifier.Shorthand)
	assert.Equal(t, "b", contents[specifier.Lo:specifier.Hi])

	require.Len(t, result.Rewrites, 1)
	lo, hi := result.Rewrites[0].RewriteRange()
	assert.Equal(t, `import { a as b } from "x";`, contents[lo:hi])
	assert.Equal(t, "", result.Rewrites[0].Replacement())
}

func TestExportStar(t *testing.T) {
	contents := `export * from "./y";`
	result := scanForTest(t, contents, Options{})

	require.Len(t, result.Dependencies, 1)
	umbrella, ok := result.Dependencies[0].(*HarmonyImportDependency)
	require.True(t, ok)
	assert.Equal(t, "./y", umbrella.Request())
	assert.Equal(t, ast.DependencyTypeEsmExport, umbrella.Type())
	assert.True(t, umbrella.ExportsAll)
	assert.Empty(t, umbrella.Specifiers)

	require.Len(t, result.AllStarExports, 1)
	assert.Equal(t, umbrella.ID(), result.AllStarExports[0])

	exports := umbrella.GetExports()
	require.NotNil(t, exports)
	assert.Equal(t, ast.ExportsTrue, exports.Exports.Kind)

	require.Len(t, result.Rewrites, 1)
	lo, hi := result.Rewrites[0].RewriteRange()
	assert.Equal(t, contents, contents[lo:hi])
}

func TestNewURL(t *testing.T) {
	contents := `const u = new URL("./img.png", import.meta.url);`
	result := scanForTest(t, contents, Options{})

	require.Len(t, result.Dependencies, 1)
	dep, ok := result.Dependencies[0].(*URLDependency)
	require.True(t, ok)
	assert.Equal(t, "./img.png", dep.Request())
	span := dep.Span()
	require.NotNil(t, span)
	assert.Equal(t, `"./img.png", import.meta.url`, contents[span.Loc.Start:span.End()])
}

func TestNewURLWithSpreadIsNotRecognized(t *testing.T) {
	contents := `const u = new URL(...["./img.png", import.meta.url]);`
	result := scanForTest(t, contents, Options{})
	assert.Empty(t, result.Dependencies)
}

func TestNamespaceDestructuring(t *testing.T) {
	contents := `import * as ns from "m"; const { a, b } = ns; a();`
	result := scanForTest(t, contents, Options{})

	var specifiers []*HarmonyImportSpecifierDependency
	for _, dep := range result.Dependencies {
		if s, ok := dep.(*HarmonyImportSpecifierDependency); ok {
			specifiers = append(specifiers, s)
		}
	}

	// The namespace reference is recorded exactly once and carries the
	// destructured property set; the local "a" is a plain binding
	require.Len(t, specifiers, 1)
	assert.Equal(t, SpecifierNamespace, specifiers[0].Specifier.Kind)
	assert.Equal(t, []string{"a", "b"}, specifiers[0].DestructuredNames)
	assert.Equal(t, "ns", contents[specifiers[0].Lo:specifiers[0].Hi])

	exports := specifiers[0].GetReferencedExports()
	require.Len(t, exports, 2)
	assert.Equal(t, []string{"a"}, exports[0].Names)
	assert.Equal(t, []string{"b"}, exports[1].Names)
}

func TestDynamicImport(t *testing.T) {
	contents := `import("./chunk")`
	result := scanForTest(t, contents, Options{})

	require.Len(t, result.Dependencies, 1)
	dep, ok := result.Dependencies[0].(*ImportDependency)
	require.True(t, ok)
	assert.Equal(t, "./chunk", dep.Request())
	assert.True(t, ast.IsAsyncDependency(dep))
}

func TestRequireContext(t *testing.T) {
	contents := `require.context("./locales", true, /\.json$/)`
	result := scanForTest(t, contents, Options{})

	require.Len(t, result.Dependencies, 1)
	dep, ok := result.Dependencies[0].(*RequireContextDependency)
	require.True(t, ok)
	options := dep.Options()
	require.NotNil(t, options)
	assert.Equal(t, "./locales", options.Request)
	assert.Equal(t, ast.ContextModeSync, options.Mode)
	assert.True(t, options.Recursive)
	require.NotNil(t, options.RegExp)
	matched, err := options.RegExp.MatchString("./en.json")
	require.NoError(t, err)
	assert.True(t, matched)
	matched, err = options.RegExp.MatchString("./en.yaml")
	require.NoError(t, err)
	assert.False(t, matched)
}

func TestEmptyImportClauseRegistersImporterInfo(t *testing.T) {
	contents := `import {} from "m";`
	result := scanForTest(t, contents, Options{})

	require.Len(t, result.Dependencies, 1)
	umbrella, ok := result.Dependencies[0].(*HarmonyImportDependency)
	require.True(t, ok)
	assert.Equal(t, "m", umbrella.Request())
	assert.Empty(t, umbrella.Specifiers)
	assert.False(t, umbrella.ExportsAll)
}

func TestExportStarMergesWithNamedReExport(t *testing.T) {
	contents := `export * from "m"; export { a } from "m";`
	result := scanForTest(t, contents, Options{})

	// One EsmExport key: the specifier record for "a" precedes the single
	// umbrella record, which carries both ExportsAll and the specifier
	require.Len(t, result.Dependencies, 2)

	reExport, ok := result.Dependencies[0].(*HarmonyExportImportedSpecifierDependency)
	require.True(t, ok)
	require.Len(t, reExport.Names, 1)
	assert.Equal(t, "a", reExport.Names[0].Exported)
	require.NotNil(t, reExport.Names[0].Original)
	assert.Equal(t, "a", *reExport.Names[0].Original)

	umbrella, ok := result.Dependencies[1].(*HarmonyImportDependency)
	require.True(t, ok)
	assert.True(t, umbrella.ExportsAll)
	require.Len(t, umbrella.Specifiers, 1)
	assert.Equal(t, "a", umbrella.Specifiers[0].Local)

	assert.True(t, result.HarmonyNamedExports["a"])
}

func TestDefaultAsNamedReExport(t *testing.T) {
	contents := `export { default as X } from "m";`
	result := scanForTest(t, contents, Options{})

	require.Len(t, result.Dependencies, 2)
	reExport, ok := result.Dependencies[0].(*HarmonyExportImportedSpecifierDependency)
	require.True(t, ok)
	require.Len(t, reExport.Names, 1)
	assert.Equal(t, "X", reExport.Names[0].Exported)
	require.NotNil(t, reExport.Names[0].Original)
	assert.Equal(t, "default", *reExport.Names[0].Original)
}

func TestFirstOccurrenceOrdering(t *testing.T) {
	contents := `
		import { a } from "b-module";
		import { c } from "a-module";
		import { d } from "b-module";
	`
	result := scanForTest(t, contents, Options{})

	var requests []string
	for _, dep := range result.Dependencies {
		if umbrella, ok := dep.(*HarmonyImportDependency); ok {
			requests = append(requests, umbrella.Request())
		}
	}
	assert.Equal(t, []string{"b-module", "a-module"}, requests)
}

func TestDeterministicRescanning(t *testing.T) {
	contents := `
		import x from "a";
		export * from "b";
		import("./c");
		require("d");
		x();
	`
	first := scanForTest(t, contents, Options{})
	second := scanForTest(t, contents, Options{})

	require.Equal(t, len(first.Dependencies), len(second.Dependencies))
	for i := range first.Dependencies {
		assert.Equal(t, first.Dependencies[i].Type(), second.Dependencies[i].Type())
		a, aOK := ast.AsModuleDependency(first.Dependencies[i])
		b, bOK := ast.AsModuleDependency(second.Dependencies[i])
		require.Equal(t, aOK, bOK)
		if aOK {
			assert.Equal(t, a.Request(), b.Request())
		}
	}
}

func TestRewritesAreInBoundsAndDisjoint(t *testing.T) {
	contents := `
		import a from "x";
		import { b, c } from "y";
		export * from "z";
		export { d } from "w";
		a(b, c);
	`
	result := scanForTest(t, contents, Options{})
	require.NotEmpty(t, result.Rewrites)

	type span struct{ lo, hi uint32 }
	var spans []span
	for _, rewrite := range result.Rewrites {
		lo, hi := rewrite.RewriteRange()
		assert.LessOrEqual(t, lo, hi)
		assert.LessOrEqual(t, hi, uint32(len(contents)))
		spans = append(spans, span{lo, hi})
	}
	for i := range spans {
		for j := i + 1; j < len(spans); j++ {
			disjoint := spans[i].hi <= spans[j].lo || spans[j].hi <= spans[i].lo
			assert.True(t, disjoint, "rewrites %d and %d overlap", i, j)
		}
	}
}

func TestRoundTripRemovesStaticImports(t *testing.T) {
	contents := `
		import a from "x";
		export { b } from "y";
		export * from "z";
		console.log(a);
	`
	result := scanForTest(t, contents, Options{})
	output := js_printer.ApplyRewrites(contents, result.Rewrites)

	rescanned := scanForTest(t, output, Options{})
	for _, dep := range rescanned.Dependencies {
		assert.NotEqual(t, ast.DependencyTypeEsmImport, dep.Type())
		assert.NotEqual(t, ast.DependencyTypeEsmExport, dep.Type())
	}
}

func TestScannerStateMachine(t *testing.T) {
	log := logger.NewDeferLog()
	source := test.SourceForTest(`import a from "x"; a();`)
	tree, ok := js_parser.Parse(log, source)
	require.True(t, ok)

	scanner := NewScanner(log, test.SilentZerolog(), source, &tree, Options{})
	assert.Equal(t, StateFresh, scanner.State())
	scanner.Scan()
	assert.Equal(t, StateFrozen, scanner.State())

	assert.Panics(t, func() { scanner.Scan() })
	assert.Panics(t, func() {
		scanner.addDependency(NewImportDependency("x", logger.Range{}, nil))
	})
}

func TestIsAsyncStableAcrossClones(t *testing.T) {
	result := scanForTest(t, `import("./a"); new Worker(new URL("./b", import.meta.url));`, Options{})

	for _, dep := range moduleDeps(result) {
		clone, ok := ast.AsModuleDependency(dep.Clone())
		require.True(t, ok)
		assert.Equal(t, ast.IsAsyncDependency(dep), ast.IsAsyncDependency(clone))
		assert.Equal(t, dep.ID(), clone.ID())
	}
}
