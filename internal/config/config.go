package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/CyberFlameGO/rspack/internal/js_scanner"
)

// ModuleType selects which scanner pipeline handles a module.
type ModuleType uint8

const (
	ModuleTypeJS ModuleType = iota
	ModuleTypeJSX
	ModuleTypeTS
	ModuleTypeTSX
	ModuleTypeCSS
	ModuleTypeWasm
	ModuleTypeNodeCommonJS
)

func (t ModuleType) String() string {
	switch t {
	case ModuleTypeJSX:
		return "jsx"
	case ModuleTypeTS:
		return "ts"
	case ModuleTypeTSX:
		return "tsx"
	case ModuleTypeCSS:
		return "css"
	case ModuleTypeWasm:
		return "wasm"
	case ModuleTypeNodeCommonJS:
		return "node-commonjs"
	default:
		return "js"
	}
}

func ParseModuleType(value string) (ModuleType, error) {
	switch value {
	case "js", "":
		return ModuleTypeJS, nil
	case "jsx":
		return ModuleTypeJSX, nil
	case "ts":
		return ModuleTypeTS, nil
	case "tsx":
		return ModuleTypeTSX, nil
	case "css":
		return ModuleTypeCSS, nil
	case "wasm":
		return ModuleTypeWasm, nil
	case "node-commonjs":
		return ModuleTypeNodeCommonJS, nil
	}
	return ModuleTypeJS, fmt.Errorf("unknown module type %q", value)
}

// ModuleTypeForPath infers the type from the file extension.
func ModuleTypeForPath(path string) ModuleType {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jsx":
		return ModuleTypeJSX
	case ".ts", ".mts":
		return ModuleTypeTS
	case ".tsx":
		return ModuleTypeTSX
	case ".css":
		return ModuleTypeCSS
	case ".wasm":
		return ModuleTypeWasm
	case ".cjs":
		return ModuleTypeNodeCommonJS
	default:
		return ModuleTypeJS
	}
}

// ToType tells the copy plugin how to treat a copied entry.
type ToType uint8

const (
	ToTypeNone ToType = iota
	ToTypeDir
	ToTypeFile
	ToTypeTemplate
)

// ParseToType is total: unknown values degrade to none and the caller
// decides whether to warn.
func ParseToType(value string) (ToType, bool) {
	switch value {
	case "", "none":
		return ToTypeNone, true
	case "dir":
		return ToTypeDir, true
	case "file":
		return ToTypeFile, true
	case "template":
		return ToTypeTemplate, true
	}
	return ToTypeNone, false
}

// CopyPattern is one entry of the copy plugin configuration.
type CopyPattern struct {
	From   string
	To     string
	Ignore []string

	// The raw to_type value from the config file; FromViper parses it into
	// ToType after unmarshaling.
	ToTypeRaw string `mapstructure:"totype"`
	ToType    ToType `mapstructure:"-"`
}

// Ignored matches a path against the pattern's ignore globs. A malformed
// glob never matches.
func (p CopyPattern) Ignored(path string) bool {
	for _, glob := range p.Ignore {
		if ok, err := filepath.Match(glob, filepath.Base(path)); err == nil && ok {
			return true
		}
		if ok, err := filepath.Match(glob, path); err == nil && ok {
			return true
		}
	}
	return false
}

// Config is the bundler-level option surface.
type Config struct {
	Entries []string
	OutDir  string

	ESMOutput       bool
	WorkerSyntaxes  []string
	CacheSize       int
	ExtractComments string
	Copy            []CopyPattern

	LogLevel string
}

func Default() *Config {
	return &Config{
		OutDir:   "dist",
		LogLevel: "info",
	}
}

// FromViper reads the configuration file and flags bound by the CLI.
// Warnings for recoverable mistakes are returned so the caller can log them
// with the module context it has.
func FromViper(v *viper.Viper) (*Config, []string, error) {
	cfg := Default()
	var warnings []string

	if err := v.Unmarshal(cfg); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if _, err := js_scanner.ParseWorkerSyntaxes(cfg.WorkerSyntaxes); err != nil {
		return nil, nil, fmt.Errorf("invalid worker syntax: %w", err)
	}

	for i := range cfg.Copy {
		toType, known := ParseToType(cfg.Copy[i].ToTypeRaw)
		if !known {
			warnings = append(warnings, fmt.Sprintf("unknown copy to_type %q, defaulting to none", cfg.Copy[i].ToTypeRaw))
		}
		cfg.Copy[i].ToType = toType

		for _, glob := range cfg.Copy[i].Ignore {
			if _, err := filepath.Match(glob, ""); err != nil {
				warnings = append(warnings, fmt.Sprintf("malformed ignore glob %q is skipped", glob))
			}
		}
	}

	return cfg, warnings, nil
}
