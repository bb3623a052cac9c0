package bundler

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CyberFlameGO/rspack/internal/ast"
	"github.com/CyberFlameGO/rspack/internal/cache"
	"github.com/CyberFlameGO/rspack/internal/config"
	"github.com/CyberFlameGO/rspack/internal/graph"
	"github.com/CyberFlameGO/rspack/internal/logger"
)

func writeFixture(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, contents := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	}
}

func bundleFixture(t *testing.T, dir string, entries []string, cfg *config.Config) (*graph.Graph, logger.Log, error) {
	t.Helper()
	if cfg == nil {
		cfg = config.Default()
	}
	for _, entry := range entries {
		cfg.Entries = append(cfg.Entries, filepath.Join(dir, entry))
	}

	log := logger.NewDeferLog()
	g, err := Bundle(context.Background(), Options{
		Config: cfg,
		Log:    log,
		ZLog:   zerolog.Nop(),
	})
	return g, log, err
}

func TestBundleWalksImportChain(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, map[string]string{
		"index.js": "import { greet } from './greet'\ngreet()\n",
		"greet.js": "import { name } from './name'\nexport function greet() { return name }\n",
		"name.js":  "export const name = 'world'\n",
	})

	g, log, err := bundleFixture(t, dir, []string{"index.js"}, nil)
	require.NoError(t, err)
	assert.Empty(t, log.Done())
	assert.Equal(t, 3, g.Len())

	entry, ok := g.Get(ast.ModuleIdentifier(filepath.Join(dir, "index.js")))
	require.True(t, ok)

	var resolved []string
	for _, target := range entry.ResolvedRequests {
		resolved = append(resolved, string(target))
	}
	assert.Contains(t, resolved, filepath.Join(dir, "greet.js"))
}

func TestBundleSharedDependencyIsScannedOnce(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, map[string]string{
		"index.js":  "import './a'\nimport './b'\n",
		"a.js":      "import './shared'\n",
		"b.js":      "import './shared'\n",
		"shared.js": "export {}\n",
	})

	g, _, err := bundleFixture(t, dir, []string{"index.js"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 4, g.Len())
}

func TestBundleMissingImportFails(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, map[string]string{
		"index.js": "import './missing'\n",
	})

	_, log, err := bundleFixture(t, dir, []string{"index.js"}, nil)
	assert.Error(t, err)

	msgs := log.Done()
	require.NotEmpty(t, msgs)
	assert.Equal(t, logger.Error, msgs[0].Kind)
}

func TestBundleWeakRequestOnlyWarns(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, map[string]string{
		"index.js": "require.resolve('./missing')\n",
	})

	g, log, err := bundleFixture(t, dir, []string{"index.js"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, g.Len())

	msgs := log.Done()
	require.NotEmpty(t, msgs)
	assert.Equal(t, logger.Warning, msgs[0].Kind)
}

func TestBundleOptionalRequireOnlyWarns(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, map[string]string{
		"index.js": "try { require('./missing') } catch {}\n",
	})

	_, log, err := bundleFixture(t, dir, []string{"index.js"}, nil)
	require.NoError(t, err)

	msgs := log.Done()
	require.NotEmpty(t, msgs)
	assert.Equal(t, logger.Warning, msgs[0].Kind)
}

func TestBundleBareSpecifierStaysExternal(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, map[string]string{
		"index.js": "import React from 'react'\nReact\n",
	})

	g, log, err := bundleFixture(t, dir, []string{"index.js"}, nil)
	require.NoError(t, err)
	assert.Empty(t, log.Done())

	// The external module contributes no graph node
	assert.Equal(t, 1, g.Len())
}

func TestBundleCSSModule(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, map[string]string{
		"index.js":   "import './styles.css'\n",
		"styles.css": "@import \"./base.css\";\nbody { color: red }\n",
		"base.css":   "body { margin: 0 }\n",
	})

	g, log, err := bundleFixture(t, dir, []string{"index.js"}, nil)
	require.NoError(t, err)
	assert.Empty(t, log.Done())
	assert.Equal(t, 3, g.Len())
}

func TestBundleParseErrorFails(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, map[string]string{
		"index.js": "import { from\n",
	})

	_, log, err := bundleFixture(t, dir, []string{"index.js"}, nil)
	assert.Error(t, err)
	assert.NotEmpty(t, log.Done())
}

func TestBundleUsesScanCache(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, map[string]string{
		"index.js": "import './dep'\n",
		"dep.js":   "export {}\n",
	})

	scanCache, err := cache.NewScanCache(16)
	require.NoError(t, err)

	cfg := config.Default()
	cfg.Entries = []string{filepath.Join(dir, "index.js")}

	run := func() *graph.Graph {
		g, bundleErr := Bundle(context.Background(), Options{
			Config: cfg,
			Cache:  scanCache,
			Log:    logger.NewDeferLog(),
			ZLog:   zerolog.Nop(),
		})
		require.NoError(t, bundleErr)
		return g
	}

	first := run()
	assert.Equal(t, 2, scanCache.Len())

	second := run()
	assert.Equal(t, first.Len(), second.Len())

	// Cached results keep their dependency ids stable across rebuilds
	firstEntry, _ := first.Get(ast.ModuleIdentifier(filepath.Join(dir, "index.js")))
	secondEntry, _ := second.Get(ast.ModuleIdentifier(filepath.Join(dir, "index.js")))
	require.Len(t, secondEntry.Dependencies, len(firstEntry.Dependencies))
	for i := range firstEntry.Dependencies {
		assert.Equal(t, firstEntry.Dependencies[i].ID(), secondEntry.Dependencies[i].ID())
	}
}

func TestBundleWithBoundedParallelism(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, map[string]string{
		"entry.js": "import './dep'\n",
		"dep.js":   "export {}\n",
	})

	cfg := config.Default()
	cfg.Entries = []string{filepath.Join(dir, "entry.js")}

	done := make(chan struct{})
	var g *graph.Graph
	go func() {
		defer close(done)
		var err error
		g, err = Bundle(context.Background(), Options{
			Config:      cfg,
			Log:         logger.NewDeferLog(),
			ZLog:        zerolog.Nop(),
			Parallelism: 1,
		})
		assert.NoError(t, err)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("bundle did not finish with parallelism 1")
	}
	assert.Equal(t, 2, g.Len())
}

func TestBundleWideGraphWithBoundedParallelism(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"entry.js":  "import './a'\nimport './b'\nimport './c'\n",
		"a.js":      "import './shared'\n",
		"b.js":      "import './shared'\n",
		"c.js":      "import './deep'\n",
		"deep.js":   "import './shared'\n",
		"shared.js": "export {}\n",
	}
	writeFixture(t, dir, files)

	cfg := config.Default()
	cfg.Entries = []string{filepath.Join(dir, "entry.js")}

	for _, parallelism := range []int{1, 2} {
		g, err := Bundle(context.Background(), Options{
			Config:      cfg,
			Log:         logger.NewDeferLog(),
			ZLog:        zerolog.Nop(),
			Parallelism: parallelism,
		})
		require.NoError(t, err)
		assert.Equal(t, len(files), g.Len())
	}
}

func TestBundleCancellation(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, map[string]string{
		"index.js": "export {}\n",
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := config.Default()
	cfg.Entries = []string{filepath.Join(dir, "index.js")}
	_, err := Bundle(ctx, Options{
		Config: cfg,
		Log:    logger.NewDeferLog(),
		ZLog:   zerolog.Nop(),
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEmitAppliesRewrites(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, map[string]string{
		"index.js": "import { a } from './dep'\nconsole.log(a)\n",
		"dep.js":   "export const a = 1\n",
	})

	g, _, err := bundleFixture(t, dir, []string{"index.js"}, nil)
	require.NoError(t, err)

	outDir := t.TempDir()
	cfg := config.Default()
	cfg.OutDir = outDir
	require.NoError(t, Emit(g, cfg, zerolog.Nop()))

	output, readErr := os.ReadFile(filepath.Join(outDir, "index.js"))
	require.NoError(t, readErr)
	assert.NotContains(t, string(output), "from './dep'")
	assert.Contains(t, string(output), "console.log")
}

func TestEmitExtractsComments(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, map[string]string{
		"index.js": "/*! Copyright Example */\nexport {}\n",
	})

	g, _, err := bundleFixture(t, dir, []string{"index.js"}, nil)
	require.NoError(t, err)

	outDir := t.TempDir()
	cfg := config.Default()
	cfg.OutDir = outDir
	cfg.ExtractComments = "true"
	require.NoError(t, Emit(g, cfg, zerolog.Nop()))

	sidecar, readErr := os.ReadFile(filepath.Join(outDir, "index.js.LICENSE.txt"))
	require.NoError(t, readErr)
	assert.Contains(t, string(sidecar), "Copyright Example")
}

func TestEmitRunsCopyPatterns(t *testing.T) {
	dir := t.TempDir()
	assets := filepath.Join(dir, "assets")
	writeFixture(t, dir, map[string]string{
		"index.js":         "export {}\n",
		"assets/logo.svg":  "<svg/>",
		"assets/notes.map": "ignored",
	})

	g, _, err := bundleFixture(t, dir, []string{"index.js"}, nil)
	require.NoError(t, err)

	outDir := t.TempDir()
	cfg := config.Default()
	cfg.OutDir = outDir
	cfg.Copy = []config.CopyPattern{{
		From:   assets,
		To:     "static",
		Ignore: []string{"*.map"},
	}}
	require.NoError(t, Emit(g, cfg, zerolog.Nop()))

	copied, readErr := os.ReadFile(filepath.Join(outDir, "static", "logo.svg"))
	require.NoError(t, readErr)
	assert.Equal(t, "<svg/>", string(copied))

	_, statErr := os.Stat(filepath.Join(outDir, "static", "notes.map"))
	assert.True(t, os.IsNotExist(statErr))
}
