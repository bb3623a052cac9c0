package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModuleTypeRoundTrip(t *testing.T) {
	for _, moduleType := range []ModuleType{
		ModuleTypeJS, ModuleTypeJSX, ModuleTypeTS, ModuleTypeTSX,
		ModuleTypeCSS, ModuleTypeWasm, ModuleTypeNodeCommonJS,
	} {
		parsed, err := ParseModuleType(moduleType.String())
		require.NoError(t, err)
		assert.Equal(t, moduleType, parsed)
	}

	parsed, err := ParseModuleType("")
	require.NoError(t, err)
	assert.Equal(t, ModuleTypeJS, parsed)

	_, err = ParseModuleType("coffeescript")
	assert.Error(t, err)
}

func TestModuleTypeForPath(t *testing.T) {
	assert.Equal(t, ModuleTypeJS, ModuleTypeForPath("src/index.js"))
	assert.Equal(t, ModuleTypeJS, ModuleTypeForPath("src/index.mjs"))
	assert.Equal(t, ModuleTypeJSX, ModuleTypeForPath("src/App.jsx"))
	assert.Equal(t, ModuleTypeTS, ModuleTypeForPath("src/util.ts"))
	assert.Equal(t, ModuleTypeTS, ModuleTypeForPath("src/util.mts"))
	assert.Equal(t, ModuleTypeTSX, ModuleTypeForPath("src/App.tsx"))
	assert.Equal(t, ModuleTypeCSS, ModuleTypeForPath("styles/main.CSS"))
	assert.Equal(t, ModuleTypeWasm, ModuleTypeForPath("lib/math.wasm"))
	assert.Equal(t, ModuleTypeNodeCommonJS, ModuleTypeForPath("scripts/run.cjs"))
	assert.Equal(t, ModuleTypeJS, ModuleTypeForPath("no-extension"))
}

func TestParseToType(t *testing.T) {
	for value, want := range map[string]ToType{
		"":         ToTypeNone,
		"none":     ToTypeNone,
		"dir":      ToTypeDir,
		"file":     ToTypeFile,
		"template": ToTypeTemplate,
	} {
		got, known := ParseToType(value)
		assert.True(t, known, "value %q", value)
		assert.Equal(t, want, got)
	}

	got, known := ParseToType("symlink")
	assert.False(t, known)
	assert.Equal(t, ToTypeNone, got)
}

func TestCopyPatternIgnored(t *testing.T) {
	pattern := CopyPattern{Ignore: []string{"*.map", "private/*"}}

	assert.True(t, pattern.Ignored("dist/bundle.js.map"))
	assert.True(t, pattern.Ignored("private/keys.txt"))
	assert.False(t, pattern.Ignored("dist/bundle.js"))

	malformed := CopyPattern{Ignore: []string{"[unclosed"}}
	assert.False(t, malformed.Ignored("anything"))
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "dist", cfg.OutDir)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.ESMOutput)
}

func TestFromViper(t *testing.T) {
	v := viper.New()
	v.Set("entries", []string{"src/index.js"})
	v.Set("outdir", "build")
	v.Set("esmoutput", true)
	v.Set("workersyntaxes", []string{"MyWorker from my-lib"})

	cfg, warnings, err := FromViper(v)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, []string{"src/index.js"}, cfg.Entries)
	assert.Equal(t, "build", cfg.OutDir)
	assert.True(t, cfg.ESMOutput)
}

func TestFromViperRejectsBadWorkerSyntax(t *testing.T) {
	v := viper.New()
	v.Set("workersyntaxes", []string{"   "})

	_, _, err := FromViper(v)
	assert.Error(t, err)
}

func TestFromViperParsesCopyToType(t *testing.T) {
	v := viper.New()
	v.Set("copy", []map[string]interface{}{
		{"from": "LICENSE", "to": "LICENSE.txt", "totype": "file"},
		{"from": "assets", "to": "static"},
	})

	cfg, warnings, err := FromViper(v)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, cfg.Copy, 2)
	assert.Equal(t, ToTypeFile, cfg.Copy[0].ToType)
	assert.Equal(t, ToTypeNone, cfg.Copy[1].ToType)
}

func TestFromViperWarnsOnUnknownToType(t *testing.T) {
	v := viper.New()
	v.Set("copy", []map[string]interface{}{
		{"from": "assets", "to": "static", "totype": "symlink"},
	})

	cfg, warnings, err := FromViper(v)
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "symlink")
	require.Len(t, cfg.Copy, 1)
	assert.Equal(t, ToTypeNone, cfg.Copy[0].ToType)
}
