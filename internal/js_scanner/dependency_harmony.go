package js_scanner

import (
	"fmt"

	"github.com/CyberFlameGO/rspack/internal/ast"
	"github.com/CyberFlameGO/rspack/internal/logger"
)

// HarmonyImportDependency is the umbrella record for one (request, kind)
// pair: every "import ... from 'm'" and "export ... from 'm'" statement group
// collapses into one of these, carrying the accumulated specifiers.
type HarmonyImportDependency struct {
	moduleDependencyBase
	Specifiers []Specifier
	Kind       ast.DependencyType // EsmImport or EsmExport
	ExportsAll bool
}

func NewHarmonyImportDependency(request string, span logger.Range, specifiers []Specifier,
	kind ast.DependencyType, exportsAll bool) *HarmonyImportDependency {
	return &HarmonyImportDependency{
		moduleDependencyBase: newModuleDependencyBase(request, &span),
		Specifiers:           specifiers,
		Kind:                 kind,
		ExportsAll:           exportsAll,
	}
}

func (d *HarmonyImportDependency) Category() ast.DependencyCategory {
	return ast.DependencyCategoryEsm
}

func (d *HarmonyImportDependency) Type() ast.DependencyType {
	return d.Kind
}

func (d *HarmonyImportDependency) GetExports() *ast.ExportsSpec {
	if d.ExportsAll {
		// "export *": everything the source module exports is re-exported
		return &ast.ExportsSpec{Exports: ast.ExportsOfExportsSpec{Kind: ast.ExportsTrue}}
	}
	return nil
}

func (d *HarmonyImportDependency) GetReferencedExports() []ast.ReferencedExport {
	// The umbrella import evaluates the module; the per-use-site specifier
	// records carry the name references
	return ast.NoExportsReferenced()
}

func (d *HarmonyImportDependency) Clone() ast.Dependency {
	clone := *d
	clone.moduleDependencyBase = d.moduleDependencyBase.clone()
	clone.Specifiers = append([]Specifier(nil), d.Specifiers...)
	return &clone
}

// HarmonyImportSpecifierDependency is emitted per use site of an imported
// binding during the reference scan.
type HarmonyImportSpecifierDependency struct {
	moduleDependencyBase

	// The byte range of the expression being rewritten
	Lo uint32
	Hi uint32

	// The reference path on the source module, e.g. ["a"] for a named import
	// of "a", or ["a", "b"] for "ns.a.b"
	IDs []string

	Specifier Specifier

	// True when the expression is the callee of a call
	InCallee bool

	// True when the rewritten expression is used in a call-like position;
	// for member accesses this is the inverse of InCallee
	CallLike bool

	// True for object-property shorthand uses, so the printer expands
	// "{ x }" to "{ x: <rewritten> }"
	Shorthand bool

	// The property names destructured out of a namespace binding, attached
	// to the first reference after the destructuring
	DestructuredNames []string
}

func NewHarmonyImportSpecifierDependency(request string, lo uint32, hi uint32, ids []string,
	specifier Specifier) *HarmonyImportSpecifierDependency {
	span := logger.RangeOfOffsets(lo, hi)
	return &HarmonyImportSpecifierDependency{
		moduleDependencyBase: newModuleDependencyBase(request, &span),
		Lo:                   lo,
		Hi:                   hi,
		IDs:                  ids,
		Specifier:            specifier,
	}
}

func (d *HarmonyImportSpecifierDependency) Category() ast.DependencyCategory {
	return ast.DependencyCategoryEsm
}

func (d *HarmonyImportSpecifierDependency) Type() ast.DependencyType {
	return ast.DependencyTypeEsmImportSpecifier
}

func (d *HarmonyImportSpecifierDependency) GetReferencedExports() []ast.ReferencedExport {
	if len(d.DestructuredNames) > 0 {
		// Only the destructured properties of the namespace are used
		exports := make([]ast.ReferencedExport, 0, len(d.DestructuredNames))
		for _, name := range d.DestructuredNames {
			exports = append(exports, ast.ReferencedExport{
				Names:     append(append([]string(nil), d.IDs...), name),
				CanMangle: true,
			})
		}
		return exports
	}
	if len(d.IDs) == 0 {
		return ast.ExportsObjectReferenced()
	}
	return []ast.ReferencedExport{{Names: d.IDs, CanMangle: true}}
}

func (d *HarmonyImportSpecifierDependency) Clone() ast.Dependency {
	clone := *d
	clone.moduleDependencyBase = d.moduleDependencyBase.clone()
	clone.IDs = append([]string(nil), d.IDs...)
	clone.DestructuredNames = append([]string(nil), d.DestructuredNames...)
	return &clone
}

// ExportPair is one (exported, original) pair of an export-from statement.
// Original is nil for namespace re-exports ("export * as ns").
type ExportPair struct {
	Exported string
	Original *string
}

// HarmonyExportImportedSpecifierDependency re-exports names from another
// module: "export { a as b } from 'm'" and "export * as ns from 'm'".
type HarmonyExportImportedSpecifierDependency struct {
	moduleDependencyBase
	Names []ExportPair
}

// NewHarmonyExportImportedSpecifierDependency builds the record for one
// re-export specifier. A default import specifier cannot appear in an export
// statement; receiving one means the parser and the scanner disagree about
// the grammar, which is unrecoverable.
func NewHarmonyExportImportedSpecifierDependency(request string, span logger.Range,
	specifier Specifier) *HarmonyExportImportedSpecifierDependency {
	var names []ExportPair
	switch specifier.Kind {
	case SpecifierNamed:
		original := specifier.ImportedName()
		names = []ExportPair{{Exported: specifier.Local, Original: &original}}
	case SpecifierNamespace:
		names = []ExportPair{{Exported: specifier.Local}}
	default:
		panic(fmt.Sprintf("default specifier %q cannot appear in an export statement", specifier.Local))
	}
	return &HarmonyExportImportedSpecifierDependency{
		moduleDependencyBase: newModuleDependencyBase(request, &span),
		Names:                names,
	}
}

func (d *HarmonyExportImportedSpecifierDependency) Category() ast.DependencyCategory {
	return ast.DependencyCategoryEsm
}

func (d *HarmonyExportImportedSpecifierDependency) Type() ast.DependencyType {
	return ast.DependencyTypeEsmExportImportedSpecifier
}

func (d *HarmonyExportImportedSpecifierDependency) GetExports() *ast.ExportsSpec {
	entries := make([]ast.ExportNameOrSpec, 0, len(d.Names))
	for _, pair := range d.Names {
		spec := ast.NewExportSpec(pair.Exported)
		if pair.Original != nil {
			spec.Export = []string{*pair.Original}
		}
		entries = append(entries, ast.ExportNameOrSpec{Spec: &spec})
	}
	return &ast.ExportsSpec{
		Exports: ast.ExportsOfExportsSpec{Kind: ast.ExportsArray, Entries: entries},
	}
}

func (d *HarmonyExportImportedSpecifierDependency) GetReferencedExports() []ast.ReferencedExport {
	exports := make([]ast.ReferencedExport, 0, len(d.Names))
	for _, pair := range d.Names {
		if pair.Original != nil {
			exports = append(exports, ast.ReferencedExport{Names: []string{*pair.Original}, CanMangle: true})
		} else {
			exports = append(exports, ast.ReferencedExport{})
		}
	}
	return exports
}

func (d *HarmonyExportImportedSpecifierDependency) Clone() ast.Dependency {
	clone := *d
	clone.moduleDependencyBase = d.moduleDependencyBase.clone()
	clone.Names = append([]ExportPair(nil), d.Names...)
	return &clone
}
