package ast

// This file contains the dependency taxonomy and the polymorphic dependency
// record model shared by the JavaScript and CSS scanners. The bundler treats
// both in a format-agnostic manner: a module's analysis produces an ordered
// vector of dependency records plus an ordered vector of rewrite templates,
// and the graph builder consumes both without caring which scanner made them.

import (
	"fmt"
	"sync/atomic"

	"github.com/CyberFlameGO/rspack/internal/logger"
)

// A module identifier is the resolver's output for a request string. The
// analyzer itself only ever emits raw request strings; identifiers appear in
// export specs that reference other modules after resolution.
type ModuleIdentifier string

// DependencyID is a process-wide monotone counter. The value is opaque apart
// from equality, hash, and total order. IDs are never reused within a process
// lifetime; rebuilds may reuse an ID only by carrying the record itself over.
type DependencyID uint32

var nextDependencyID uint32

func NewDependencyID() DependencyID {
	return DependencyID(atomic.AddUint32(&nextDependencyID, 1) - 1)
}

// DependencyCategory groups dependency types by resolution semantics. This
// is a closed set: parsing from a string rejects everything else.
type DependencyCategory uint8

const (
	DependencyCategoryUnknown DependencyCategory = iota
	DependencyCategoryEsm
	DependencyCategoryCommonJS
	DependencyCategoryURL
	DependencyCategoryCssImport
	DependencyCategoryCssCompose
	DependencyCategoryWasm
	DependencyCategoryWorker
)

func (c DependencyCategory) String() string {
	switch c {
	case DependencyCategoryEsm:
		return "esm"
	case DependencyCategoryCommonJS:
		return "commonjs"
	case DependencyCategoryURL:
		return "url"
	case DependencyCategoryCssImport:
		return "css-import"
	case DependencyCategoryCssCompose:
		return "css-compose"
	case DependencyCategoryWasm:
		return "wasm"
	case DependencyCategoryWorker:
		return "worker"
	default:
		return "unknown"
	}
}

func ParseDependencyCategory(value string) (DependencyCategory, error) {
	switch value {
	case "esm":
		return DependencyCategoryEsm, nil
	case "commonjs":
		return DependencyCategoryCommonJS, nil
	case "url":
		return DependencyCategoryURL, nil
	case "css-import":
		return DependencyCategoryCssImport, nil
	case "css-compose":
		return DependencyCategoryCssCompose, nil
	case "wasm":
		return DependencyCategoryWasm, nil
	case "worker":
		return DependencyCategoryWorker, nil
	case "unknown":
		return DependencyCategoryUnknown, nil
	}
	return DependencyCategoryUnknown, fmt.Errorf("unknown dependency category %q", value)
}

type dependencyTypeKind uint8

const (
	dependencyTypeUnknown dependencyTypeKind = iota
	dependencyTypeEntry
	dependencyTypeEsmImport
	dependencyTypeEsmImportSpecifier
	dependencyTypeEsmExport
	dependencyTypeEsmExportSpecifier
	dependencyTypeEsmExportImportedSpecifier
	dependencyTypeDynamicImport
	dependencyTypeCjsRequire
	dependencyTypeNewURL
	dependencyTypeNewWorker
	dependencyTypeImportMetaHotAccept
	dependencyTypeImportMetaHotDecline
	dependencyTypeModuleHotAccept
	dependencyTypeModuleHotDecline
	dependencyTypeCssURL
	dependencyTypeCssImport
	dependencyTypeCssCompose
	dependencyTypeContextElement
	dependencyTypeImportContext
	dependencyTypeCommonJSRequireContext
	dependencyTypeRequireContext
	dependencyTypeRequireResolve
	dependencyTypeWasmImport
	dependencyTypeWasmExportImported
	dependencyTypeStaticExports
	dependencyTypeExportInfoAPI
	dependencyTypeCustom
)

// DependencyType is a closed tag set plus one open custom variant for
// plugin-defined kinds. Values compare with ==, including custom ones.
type DependencyType struct {
	kind   dependencyTypeKind
	custom string
}

var (
	DependencyTypeUnknown                    = DependencyType{kind: dependencyTypeUnknown}
	DependencyTypeEntry                      = DependencyType{kind: dependencyTypeEntry}
	DependencyTypeEsmImport                  = DependencyType{kind: dependencyTypeEsmImport}
	DependencyTypeEsmImportSpecifier         = DependencyType{kind: dependencyTypeEsmImportSpecifier}
	DependencyTypeEsmExport                  = DependencyType{kind: dependencyTypeEsmExport}
	DependencyTypeEsmExportSpecifier         = DependencyType{kind: dependencyTypeEsmExportSpecifier}
	DependencyTypeEsmExportImportedSpecifier = DependencyType{kind: dependencyTypeEsmExportImportedSpecifier}
	DependencyTypeDynamicImport              = DependencyType{kind: dependencyTypeDynamicImport}
	DependencyTypeCjsRequire                 = DependencyType{kind: dependencyTypeCjsRequire}
	DependencyTypeNewURL                     = DependencyType{kind: dependencyTypeNewURL}
	DependencyTypeNewWorker                  = DependencyType{kind: dependencyTypeNewWorker}
	DependencyTypeImportMetaHotAccept        = DependencyType{kind: dependencyTypeImportMetaHotAccept}
	DependencyTypeImportMetaHotDecline       = DependencyType{kind: dependencyTypeImportMetaHotDecline}
	DependencyTypeModuleHotAccept            = DependencyType{kind: dependencyTypeModuleHotAccept}
	DependencyTypeModuleHotDecline           = DependencyType{kind: dependencyTypeModuleHotDecline}
	DependencyTypeCssURL                     = DependencyType{kind: dependencyTypeCssURL}
	DependencyTypeCssImport                  = DependencyType{kind: dependencyTypeCssImport}
	DependencyTypeCssCompose                 = DependencyType{kind: dependencyTypeCssCompose}
	DependencyTypeContextElement             = DependencyType{kind: dependencyTypeContextElement}
	DependencyTypeImportContext              = DependencyType{kind: dependencyTypeImportContext}
	DependencyTypeCommonJSRequireContext     = DependencyType{kind: dependencyTypeCommonJSRequireContext}
	DependencyTypeRequireContext             = DependencyType{kind: dependencyTypeRequireContext}
	DependencyTypeRequireResolve             = DependencyType{kind: dependencyTypeRequireResolve}
	DependencyTypeWasmImport                 = DependencyType{kind: dependencyTypeWasmImport}
	DependencyTypeWasmExportImported         = DependencyType{kind: dependencyTypeWasmExportImported}
	DependencyTypeStaticExports              = DependencyType{kind: dependencyTypeStaticExports}
	DependencyTypeExportInfoAPI              = DependencyType{kind: dependencyTypeExportInfoAPI}
)

// CustomDependencyType is the escape hatch for plugin-defined kinds.
func CustomDependencyType(tag string) DependencyType {
	return DependencyType{kind: dependencyTypeCustom, custom: tag}
}

func (t DependencyType) String() string {
	switch t.kind {
	case dependencyTypeEntry:
		return "entry"
	case dependencyTypeEsmImport:
		return "esm import"
	case dependencyTypeEsmImportSpecifier:
		return "esm import specifier"
	case dependencyTypeEsmExport:
		return "esm export"
	case dependencyTypeEsmExportSpecifier:
		return "esm export specifier"
	case dependencyTypeEsmExportImportedSpecifier:
		return "esm export import specifier"
	case dependencyTypeDynamicImport:
		return "dynamic import"
	case dependencyTypeCjsRequire:
		return "cjs require"
	case dependencyTypeNewURL:
		return "new URL()"
	case dependencyTypeNewWorker:
		return "new Worker()"
	case dependencyTypeImportMetaHotAccept:
		return "import.meta.webpackHot.accept"
	case dependencyTypeImportMetaHotDecline:
		return "import.meta.webpackHot.decline"
	case dependencyTypeModuleHotAccept:
		return "module.hot.accept"
	case dependencyTypeModuleHotDecline:
		return "module.hot.decline"
	case dependencyTypeCssURL:
		return "css url"
	case dependencyTypeCssImport:
		return "css import"
	case dependencyTypeCssCompose:
		return "css compose"
	case dependencyTypeContextElement:
		return "context element"
	case dependencyTypeImportContext:
		return "import context"
	case dependencyTypeCommonJSRequireContext:
		return "commonjs require context"
	case dependencyTypeRequireContext:
		return "require.context"
	case dependencyTypeRequireResolve:
		return "require.resolve"
	case dependencyTypeWasmImport:
		return "wasm import"
	case dependencyTypeWasmExportImported:
		return "wasm export imported"
	case dependencyTypeStaticExports:
		return "static exports"
	case dependencyTypeExportInfoAPI:
		return "export info api"
	case dependencyTypeCustom:
		return "custom " + t.custom
	default:
		return "unknown"
	}
}

// ConnectionState describes whether evaluating a module connection has side
// effects. "Transitive only" means the answer depends on the modules further
// down the chain.
type ConnectionState uint8

const (
	ConnectionActive ConnectionState = iota
	ConnectionInactive
	ConnectionTransitiveOnly
)

// ReferencedExport names one export (possibly a nested path like ns.a.b)
// that a dependency pulls in from the module it points at. An empty Names
// slice means the whole exports object is referenced.
type ReferencedExport struct {
	Names     []string
	CanMangle bool
}

// ExportsObjectReferenced is the conventional "everything" answer for
// GetReferencedExports.
func ExportsObjectReferenced() []ReferencedExport {
	return []ReferencedExport{{}}
}

// NoExportsReferenced means the dependency evaluates the module only for its
// side effects.
func NoExportsReferenced() []ReferencedExport {
	return nil
}

// Dependency is the common header every record carries. Records are deeply
// clonable (required for graph snapshotting) and compare by DependencyID.
type Dependency interface {
	ID() DependencyID
	Category() DependencyCategory
	Type() DependencyType

	// The base directory used to resolve this dependency's request, or ""
	// to use the importing module's directory.
	Context() string

	// The record's contribution to the module's export-info table, or nil.
	GetExports() *ExportsSpec

	Clone() Dependency
}

// ModuleDependency is implemented by records that represent a request for
// another module.
type ModuleDependency interface {
	Dependency

	Request() string
	UserRequest() string
	SetRequest(string)
	Span() *logger.Range

	// Weak dependencies don't cause resolution errors when missing.
	Weak() bool

	// Options are present only for require.context-style records.
	Options() *ContextOptions

	GroupOptions() *ChunkGroupOptions
	GetOptional() bool

	ModuleEvaluationSideEffects() ConnectionState
	GetReferencedExports() []ReferencedExport

	// An identifier used to merge equal requests, or "" if the record never
	// deduplicates. Set once after resolution.
	ResourceIdentifier() string
}

// DependencyRewrite is the rewrite-template capability: an edit replacing
// the byte range [lo, hi) of the original source during code generation.
// Emitted templates within one module must never overlap.
type DependencyRewrite interface {
	RewriteRange() (lo uint32, hi uint32)
	Replacement() string
}

// AsModuleDependency is the downcast used by the graph builder and by
// plugin code paths that need request metadata.
func AsModuleDependency(d Dependency) (ModuleDependency, bool) {
	md, ok := d.(ModuleDependency)
	return md, ok
}

// IsAsyncDependency is true exactly for dynamic imports, worker spawns, and
// lazily-loaded context elements. The answer never changes for a given
// record after construction.
func IsAsyncDependency(dep ModuleDependency) bool {
	switch dep.Type() {
	case DependencyTypeDynamicImport, DependencyTypeNewWorker:
		return true
	case DependencyTypeContextElement:
		if options := dep.Options(); options != nil {
			return options.Mode == ContextModeLazy || options.Mode == ContextModeLazyOnce
		}
	}
	return false
}
