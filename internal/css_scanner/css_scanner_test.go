package css_scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CyberFlameGO/rspack/internal/ast"
	"github.com/CyberFlameGO/rspack/internal/js_printer"
	"github.com/CyberFlameGO/rspack/internal/logger"
	"github.com/CyberFlameGO/rspack/internal/test"
)

func scanCSS(t *testing.T, contents string) *ScanResult {
	t.Helper()
	return Scan(logger.NewDeferLog(), test.SourceForTest(contents))
}

func TestImportRule(t *testing.T) {
	contents := `@import "./base.css";
body { color: red; }`
	result := scanCSS(t, contents)

	require.Len(t, result.Dependencies, 1)
	dep, ok := result.Dependencies[0].(*ImportDependency)
	require.True(t, ok)
	assert.Equal(t, "./base.css", dep.Request())
	assert.Equal(t, ast.DependencyTypeCssImport, dep.Type())
	assert.Equal(t, ast.DependencyCategoryCssImport, dep.Category())

	require.Len(t, result.Rewrites, 1)
	output := js_printer.ApplyRewrites(contents, result.Rewrites)
	assert.Equal(t, "\nbody { color: red; }", output)
}

func TestImportURLFormWithMedia(t *testing.T) {
	contents := `@import url("./print.css") print and (min-width: 10cm);`
	result := scanCSS(t, contents)

	require.Len(t, result.Dependencies, 1)
	dep := result.Dependencies[0].(*ImportDependency)
	assert.Equal(t, "./print.css", dep.Request())
	assert.Equal(t, "print and (min-width: 10cm)", dep.Media)
}

func TestURLToken(t *testing.T) {
	contents := `.logo { background: url(./logo.png) no-repeat; }`
	result := scanCSS(t, contents)

	require.Len(t, result.Dependencies, 1)
	dep, ok := result.Dependencies[0].(*URLDependency)
	require.True(t, ok)
	assert.Equal(t, "./logo.png", dep.Request())
	span := dep.Span()
	require.NotNil(t, span)
	assert.Equal(t, "./logo.png", contents[span.Loc.Start:span.End()])
}

func TestExternalURLsAreSkipped(t *testing.T) {
	contents := `
		@import "https://example.com/theme.css";
		.a { background: url(data:image/png;base64,AAAA); }
		.b { background: url(https://example.com/x.png); }
		.c { mask: url(#clip); }
	`
	result := scanCSS(t, contents)
	assert.Empty(t, result.Dependencies)
}

func TestURLInsideCommentIsIgnored(t *testing.T) {
	contents := `/* url(./nope.png) @import "nope.css"; */ .a { color: blue; }`
	result := scanCSS(t, contents)
	assert.Empty(t, result.Dependencies)
}

func TestURLInsideStringIsIgnored(t *testing.T) {
	contents := `.a { content: "url(./nope.png)"; }`
	result := scanCSS(t, contents)
	assert.Empty(t, result.Dependencies)
}

func TestComposes(t *testing.T) {
	contents := `.button { composes: base large from "./shared.css"; color: blue; }`
	result := scanCSS(t, contents)

	require.Len(t, result.Dependencies, 1)
	dep, ok := result.Dependencies[0].(*ComposeDependency)
	require.True(t, ok)
	assert.Equal(t, "./shared.css", dep.Request())
	assert.Equal(t, []string{"base", "large"}, dep.Names)

	exports := dep.GetReferencedExports()
	require.Len(t, exports, 2)
	assert.Equal(t, []string{"base"}, exports[0].Names)
	assert.Equal(t, []string{"large"}, exports[1].Names)
}

func TestComposesLocalAndGlobal(t *testing.T) {
	contents := `
		.a { composes: base; }
		.b { composes: reset from global; }
	`
	result := scanCSS(t, contents)
	assert.Empty(t, result.Dependencies)
}
