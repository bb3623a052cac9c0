package js_printer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/CyberFlameGO/rspack/internal/ast"
)

func TestApplyRewrites(t *testing.T) {
	contents := `import a from "x"; a();`
	output := ApplyRewrites(contents, []ast.DependencyRewrite{
		ast.NewConstDependency(0, 18, ""),
		ast.NewConstDependency(19, 20, "__mod.a"),
	})
	assert.Equal(t, ` __mod.a();`, output)
}

func TestApplyRewritesSortsByLo(t *testing.T) {
	contents := "abcdef"
	output := ApplyRewrites(contents, []ast.DependencyRewrite{
		ast.NewConstDependency(4, 5, "E"),
		ast.NewConstDependency(0, 1, "A"),
		ast.NewConstDependency(2, 2, "!"),
	})
	assert.Equal(t, "Ab!cdEf", output)
}

func TestApplyRewritesEmpty(t *testing.T) {
	assert.Equal(t, "unchanged", ApplyRewrites("unchanged", nil))
}

func TestApplyRewritesPanicsOnOverlap(t *testing.T) {
	assert.Panics(t, func() {
		ApplyRewrites("0123456789", []ast.DependencyRewrite{
			ast.NewConstDependency(0, 5, ""),
			ast.NewConstDependency(4, 8, ""),
		})
	})
}

func TestApplyRewritesPanicsOutOfBounds(t *testing.T) {
	assert.Panics(t, func() {
		ApplyRewrites("short", []ast.DependencyRewrite{
			ast.NewConstDependency(0, 99, ""),
		})
	})
}
