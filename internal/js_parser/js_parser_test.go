package js_parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CyberFlameGO/rspack/internal/js_ast"
	"github.com/CyberFlameGO/rspack/internal/logger"
)

func parseForTest(t *testing.T, contents string) js_ast.AST {
	t.Helper()
	log := logger.NewDeferLog()
	source := logger.Source{
		KeyPath:    logger.Path{Text: "<stdin>"},
		PrettyPath: "<stdin>",
		Contents:   contents,
	}
	tree, ok := Parse(log, source)
	if !ok {
		for _, msg := range log.Done() {
			t.Logf("%s", msg.Text)
		}
		t.Fatal("parse failed")
	}
	return tree
}

func TestParseImportClause(t *testing.T) {
	tree := parseForTest(t, "import def, { a, b as c } from './mod'\n")
	require.Len(t, tree.Stmts, 1)

	st, ok := tree.Stmts[0].Data.(*js_ast.SImport)
	require.True(t, ok)
	assert.Equal(t, "./mod", st.PathText)
	require.NotNil(t, st.DefaultName)
	assert.Equal(t, "def", st.DefaultNameText)

	require.NotNil(t, st.Items)
	items := *st.Items
	require.Len(t, items, 2)
	assert.Equal(t, "a", items[0].Alias)
	assert.Equal(t, "a", items[0].OriginalName)
	assert.Equal(t, "b", items[1].Alias)
	assert.Equal(t, "c", items[1].OriginalName)
	assert.True(t, tree.HasES6Imports)
}

func TestParseNamespaceImport(t *testing.T) {
	tree := parseForTest(t, "import * as ns from './mod'\n")
	st := tree.Stmts[0].Data.(*js_ast.SImport)
	assert.Equal(t, "ns", st.StarName)
	require.NotNil(t, st.StarNameLoc)
	assert.NotEqual(t, js_ast.InvalidRef, st.StarNameRef)
}

func TestParseExportFrom(t *testing.T) {
	tree := parseForTest(t, "export { a as b } from './mod'\n")
	st, ok := tree.Stmts[0].Data.(*js_ast.SExportFrom)
	require.True(t, ok)
	assert.Equal(t, "./mod", st.PathText)
	require.Len(t, st.Items, 1)
	assert.Equal(t, "b", st.Items[0].Alias)
	assert.Equal(t, "a", st.Items[0].OriginalName)
	assert.True(t, tree.HasES6Exports)
}

func TestParseExportStar(t *testing.T) {
	tree := parseForTest(t, "export * from './a'\nexport * as ns from './b'\n")

	star := tree.Stmts[0].Data.(*js_ast.SExportStar)
	assert.Equal(t, "./a", star.PathText)
	assert.Nil(t, star.Alias)

	named := tree.Stmts[1].Data.(*js_ast.SExportStar)
	assert.Equal(t, "./b", named.PathText)
	require.NotNil(t, named.Alias)
	assert.Equal(t, "ns", named.Alias.Name)
}

func TestParseDynamicImport(t *testing.T) {
	tree := parseForTest(t, "const p = import('./lazy')\n")
	local := tree.Stmts[0].Data.(*js_ast.SLocal)
	require.Len(t, local.Decls, 1)

	call, ok := local.Decls[0].Value.Data.(*js_ast.EImportCall)
	require.True(t, ok)
	str, ok := call.Expr.Data.(*js_ast.EString)
	require.True(t, ok)
	assert.Equal(t, "./lazy", str.Value)
	assert.Greater(t, call.CloseParenLoc.Start, call.Expr.Loc.Start)
}

func TestParseImportCallComments(t *testing.T) {
	tree := parseForTest(t, "import(/* webpackChunkName: \"about\" */ './about')\n")
	expr := tree.Stmts[0].Data.(*js_ast.SExpr)
	call := expr.Value.Data.(*js_ast.EImportCall)
	require.Len(t, call.LeadingInteriorComments, 1)
	assert.Contains(t, call.LeadingInteriorComments[0], "webpackChunkName")
}

func TestParseImportMetaURL(t *testing.T) {
	tree := parseForTest(t, "const u = new URL('./a.png', import.meta.url)\n")
	local := tree.Stmts[0].Data.(*js_ast.SLocal)
	newExpr := local.Decls[0].Value.Data.(*js_ast.ENew)
	require.Len(t, newExpr.Args, 2)
	assert.True(t, js_ast.IsImportMetaURL(newExpr.Args[1]))
}

func TestParseTemplateSubstitutions(t *testing.T) {
	tree := parseForTest(t, "const x = `./locales/${lang}.json`\nf(`a${b}c`)\n")

	local := tree.Stmts[0].Data.(*js_ast.SLocal)
	template, ok := local.Decls[0].Value.Data.(*js_ast.ETemplate)
	require.True(t, ok)
	assert.Equal(t, "./locales/", template.Head)
	require.Len(t, template.Parts, 1)
	assert.Equal(t, ".json", template.Parts[0].Tail)

	expr := tree.Stmts[1].Data.(*js_ast.SExpr)
	call := expr.Value.Data.(*js_ast.ECall)
	arg, ok := call.Args[0].Data.(*js_ast.ETemplate)
	require.True(t, ok)
	assert.Equal(t, "a", arg.Head)
	require.Len(t, arg.Parts, 1)
	assert.Equal(t, "c", arg.Parts[0].Tail)
}

func TestParseDynamicImportTemplate(t *testing.T) {
	tree := parseForTest(t, "import(`./locales/${lang}.json`)\n")
	expr := tree.Stmts[0].Data.(*js_ast.SExpr)
	call := expr.Value.Data.(*js_ast.EImportCall)
	template, ok := call.Expr.Data.(*js_ast.ETemplate)
	require.True(t, ok)
	assert.Equal(t, "./locales/", template.Head)
}

func TestUnboundSymbols(t *testing.T) {
	tree := parseForTest(t, "require('./a')\nconst require = () => {}\nrequire('./b')\n")

	// The module-level "require" declaration shadows both call sites
	for _, symbol := range tree.Symbols {
		if symbol.OriginalName == "require" {
			assert.NotEqual(t, js_ast.SymbolUnbound, symbol.Kind)
		}
	}
}

func TestUnboundRequireIsUnbound(t *testing.T) {
	tree := parseForTest(t, "require('./a')\n")
	expr := tree.Stmts[0].Data.(*js_ast.SExpr)
	call := expr.Value.Data.(*js_ast.ECall)
	id := call.Target.Data.(*js_ast.EIdentifier)
	assert.Equal(t, js_ast.SymbolUnbound, tree.Symbols[id.Ref.InnerIndex].Kind)
}

func TestShadowedBindingResolves(t *testing.T) {
	tree := parseForTest(t, "import { a } from './mod'\nfunction f(a) { return a }\nexport { a }\n")
	st := tree.Stmts[0].Data.(*js_ast.SImport)
	require.NotNil(t, st.Items)

	importRef := (*st.Items)[0].Name.Ref
	assert.Equal(t, js_ast.SymbolImport, tree.Symbols[importRef.InnerIndex].Kind)
}

func TestParseRecoversFromLexerPanic(t *testing.T) {
	log := logger.NewDeferLog()
	source := logger.Source{
		KeyPath:    logger.Path{Text: "<stdin>"},
		PrettyPath: "<stdin>",
		Contents:   "import { from './broken\n",
	}
	_, ok := Parse(log, source)
	assert.False(t, ok)
	assert.NotEmpty(t, log.Done())
}

func TestParseHashbang(t *testing.T) {
	tree := parseForTest(t, "#!/usr/bin/env node\nlet a = 1\n")
	assert.Equal(t, "#!/usr/bin/env node", tree.Hashbang)
	require.Len(t, tree.Stmts, 1)
}
