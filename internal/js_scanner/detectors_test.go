package js_scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CyberFlameGO/rspack/internal/ast"
)

func TestWorkerFromGlobal(t *testing.T) {
	contents := `const w = new Worker(new URL("./worker.js", import.meta.url), { name: "bg" });`
	result := scanForTest(t, contents, Options{})

	require.Len(t, result.Dependencies, 1)
	dep, ok := result.Dependencies[0].(*WorkerDependency)
	require.True(t, ok)
	assert.Equal(t, "./worker.js", dep.Request())
	assert.True(t, ast.IsAsyncDependency(dep))
	require.NotNil(t, dep.GroupOptions())
	assert.Equal(t, "bg", dep.GroupOptions().Name)
}

func TestWorkerFromImportedBinding(t *testing.T) {
	contents := `import { Worker as Thread } from "worker_threads"; new Thread("./task.js");`
	result := scanForTest(t, contents, Options{})

	var worker *WorkerDependency
	for _, dep := range result.Dependencies {
		if w, ok := dep.(*WorkerDependency); ok {
			worker = w
		}
	}
	require.NotNil(t, worker)
	assert.Equal(t, "./task.js", worker.Request())
}

func TestWorkerSyntaxParsing(t *testing.T) {
	syntax, err := ParseWorkerSyntax("Worker from worker_threads")
	require.NoError(t, err)
	assert.Equal(t, WorkerSyntax{Ident: "Worker", Source: "worker_threads"}, syntax)

	syntax, err = ParseWorkerSyntax("SharedWorker()")
	require.NoError(t, err)
	assert.Equal(t, WorkerSyntax{Ident: "SharedWorker"}, syntax)

	syntax, err = ParseWorkerSyntax("Worker() from node:worker_threads")
	require.NoError(t, err)
	assert.Equal(t, WorkerSyntax{Ident: "Worker", Source: "node:worker_threads"}, syntax)

	_, err = ParseWorkerSyntax("  ")
	assert.Error(t, err)
}

func TestRequireDetectionNeedsUnboundRequire(t *testing.T) {
	contents := `const require = (x) => x; require("not-a-dep");`
	result := scanForTest(t, contents, Options{})
	assert.Empty(t, result.Dependencies)

	contents = `require("is-a-dep");`
	result = scanForTest(t, contents, Options{})
	require.Len(t, result.Dependencies, 1)
	dep, ok := result.Dependencies[0].(*CommonJsRequireDependency)
	require.True(t, ok)
	assert.Equal(t, "is-a-dep", dep.Request())
	assert.Equal(t, ast.DependencyCategoryCommonJS, dep.Category())
}

func TestRequireInTryIsOptional(t *testing.T) {
	contents := `try { require("maybe"); } catch (err) {}`
	result := scanForTest(t, contents, Options{})

	require.Len(t, result.Dependencies, 1)
	dep, ok := result.Dependencies[0].(*CommonJsRequireDependency)
	require.True(t, ok)
	assert.True(t, dep.GetOptional())
}

func TestRequireResolveIsWeak(t *testing.T) {
	contents := `require.resolve("peer");`
	result := scanForTest(t, contents, Options{})

	require.Len(t, result.Dependencies, 1)
	dep, ok := result.Dependencies[0].(*RequireResolveDependency)
	require.True(t, ok)
	assert.True(t, dep.Weak())
	assert.Empty(t, dep.GetReferencedExports())
}

func TestNeedCreateRequire(t *testing.T) {
	contents := `require("cjs");`

	result := scanForTest(t, contents, Options{ESMOutput: true})
	assert.True(t, result.NeedCreateRequire)

	result = scanForTest(t, contents, Options{})
	assert.False(t, result.NeedCreateRequire)
}

func TestDynamicImportMagicComments(t *testing.T) {
	contents := `import(/* webpackChunkName: "admin", webpackPrefetch: true */ "./admin");`
	result := scanForTest(t, contents, Options{})

	require.Len(t, result.Dependencies, 1)
	dep, ok := result.Dependencies[0].(*ImportDependency)
	require.True(t, ok)
	group := dep.GroupOptions()
	require.NotNil(t, group)
	assert.Equal(t, "admin", group.Name)
	require.NotNil(t, group.PrefetchOrder)
	assert.Equal(t, int32(0), *group.PrefetchOrder)
}

func TestDynamicImportIgnored(t *testing.T) {
	contents := `import(/* webpackIgnore: true */ "./skipped");`
	result := scanForTest(t, contents, Options{})
	assert.Empty(t, result.Dependencies)
}

func TestDynamicImportTemplateBecomesContext(t *testing.T) {
	contents := "import(/* webpackMode: \"lazy-once\" */ `./locales/${lang}.json`);"
	result := scanForTest(t, contents, Options{})

	require.Len(t, result.Dependencies, 1)
	dep, ok := result.Dependencies[0].(*ImportContextDependency)
	require.True(t, ok)
	options := dep.Options()
	require.NotNil(t, options)
	assert.Equal(t, "./locales/", options.Request)
	assert.Equal(t, ast.ContextModeLazyOnce, options.Mode)
	assert.True(t, ast.IsAsyncDependency(dep))
}

func TestModuleHotAccept(t *testing.T) {
	contents := `module.hot.accept("./dep", () => {});`
	result := scanForTest(t, contents, Options{})

	require.Len(t, result.Dependencies, 1)
	dep, ok := result.Dependencies[0].(*HotDependency)
	require.True(t, ok)
	assert.Equal(t, ast.DependencyTypeModuleHotAccept, dep.Type())
	assert.Equal(t, "./dep", dep.Request())
	assert.True(t, dep.Weak())
	assert.False(t, result.SelfAccepting)
}

func TestImportMetaHotSelfAccept(t *testing.T) {
	contents := `import.meta.webpackHot.accept();`
	result := scanForTest(t, contents, Options{})

	assert.Empty(t, result.Dependencies)
	assert.True(t, result.SelfAccepting)
}

func TestHotAcceptArrayOfRequests(t *testing.T) {
	contents := `module.hot.accept(["./a", "./b"], () => {});`
	result := scanForTest(t, contents, Options{})

	require.Len(t, result.Dependencies, 2)
	assert.Equal(t, ast.DependencyTypeModuleHotAccept, result.Dependencies[0].Type())
	assert.Equal(t, ast.DependencyTypeModuleHotAccept, result.Dependencies[1].Type())
}

func TestHotDecline(t *testing.T) {
	contents := `module.hot.decline("./volatile"); import.meta.webpackHot.decline("./other");`
	result := scanForTest(t, contents, Options{})

	require.Len(t, result.Dependencies, 2)
	assert.Equal(t, ast.DependencyTypeModuleHotDecline, result.Dependencies[0].Type())
	assert.Equal(t, ast.DependencyTypeImportMetaHotDecline, result.Dependencies[1].Type())
	assert.False(t, result.SelfAccepting)
}
