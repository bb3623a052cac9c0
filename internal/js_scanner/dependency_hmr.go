package js_scanner

import (
	"github.com/CyberFlameGO/rspack/internal/ast"
	"github.com/CyberFlameGO/rspack/internal/logger"
)

// HotDependency covers the four HMR hook forms: accept and decline on both
// the "import.meta.hot" and "module.hot" surfaces. HMR references are always
// weak since a missing update target must not fail the build.
type HotDependency struct {
	moduleDependencyBase
	kind ast.DependencyType
}

func newHotDependency(request string, span logger.Range, kind ast.DependencyType) *HotDependency {
	d := &HotDependency{
		moduleDependencyBase: newModuleDependencyBase(request, &span),
		kind:                 kind,
	}
	d.weak = true
	return d
}

func NewImportMetaHotAcceptDependency(request string, span logger.Range) *HotDependency {
	return newHotDependency(request, span, ast.DependencyTypeImportMetaHotAccept)
}

func NewImportMetaHotDeclineDependency(request string, span logger.Range) *HotDependency {
	return newHotDependency(request, span, ast.DependencyTypeImportMetaHotDecline)
}

func NewModuleHotAcceptDependency(request string, span logger.Range) *HotDependency {
	return newHotDependency(request, span, ast.DependencyTypeModuleHotAccept)
}

func NewModuleHotDeclineDependency(request string, span logger.Range) *HotDependency {
	return newHotDependency(request, span, ast.DependencyTypeModuleHotDecline)
}

func (d *HotDependency) Category() ast.DependencyCategory {
	switch d.kind {
	case ast.DependencyTypeModuleHotAccept, ast.DependencyTypeModuleHotDecline:
		return ast.DependencyCategoryCommonJS
	}
	return ast.DependencyCategoryEsm
}

func (d *HotDependency) Type() ast.DependencyType { return d.kind }

func (d *HotDependency) GetReferencedExports() []ast.ReferencedExport {
	return ast.NoExportsReferenced()
}

func (d *HotDependency) Clone() ast.Dependency {
	clone := *d
	clone.moduleDependencyBase = d.moduleDependencyBase.clone()
	return &clone
}
