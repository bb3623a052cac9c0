package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CyberFlameGO/rspack/internal/ast"
	"github.com/CyberFlameGO/rspack/internal/logger"
)

func moduleForTest(identifier string) *Module {
	return NewModule(ast.ModuleIdentifier(identifier), logger.Source{
		KeyPath:    logger.Path{Text: identifier},
		PrettyPath: identifier,
	})
}

func TestGraphKeepsDiscoveryOrder(t *testing.T) {
	g := NewGraph()
	g.Add(moduleForTest("src/index.js"))
	g.Add(moduleForTest("src/a.js"))
	g.Add(moduleForTest("src/b.js"))

	var order []string
	g.ForEach(func(m *Module) {
		order = append(order, string(m.Identifier))
	})
	assert.Equal(t, []string{"src/index.js", "src/a.js", "src/b.js"}, order)
	assert.Equal(t, 3, g.Len())
}

func TestGraphAddIgnoresDuplicates(t *testing.T) {
	g := NewGraph()
	first := moduleForTest("src/index.js")
	g.Add(first)
	g.Add(moduleForTest("src/index.js"))

	assert.Equal(t, 1, g.Len())
	got, ok := g.Get(ast.ModuleIdentifier("src/index.js"))
	require.True(t, ok)
	assert.Same(t, first, got)
}

func TestGraphGetMissing(t *testing.T) {
	g := NewGraph()
	_, ok := g.Get(ast.ModuleIdentifier("nope"))
	assert.False(t, ok)
}

func TestNewModuleInitializesBuildInfo(t *testing.T) {
	m := moduleForTest("src/index.js")
	require.NotNil(t, m.BuildInfo)
	assert.NotNil(t, m.BuildInfo.HarmonyNamedExports)
	assert.NotNil(t, m.ResolvedRequests)
}
