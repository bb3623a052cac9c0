package js_scanner

import (
	"github.com/CyberFlameGO/rspack/internal/ast"
	"github.com/CyberFlameGO/rspack/internal/logger"
)

// ImportDependency is a dynamic "import(...)" with a fully static request.
type ImportDependency struct {
	moduleDependencyBase
	ChunkGroup *ast.ChunkGroupOptions
}

func NewImportDependency(request string, span logger.Range, group *ast.ChunkGroupOptions) *ImportDependency {
	return &ImportDependency{
		moduleDependencyBase: newModuleDependencyBase(request, &span),
		ChunkGroup:           group,
	}
}

func (d *ImportDependency) Category() ast.DependencyCategory { return ast.DependencyCategoryEsm }
func (d *ImportDependency) Type() ast.DependencyType         { return ast.DependencyTypeDynamicImport }

func (d *ImportDependency) GroupOptions() *ast.ChunkGroupOptions { return d.ChunkGroup }

func (d *ImportDependency) Clone() ast.Dependency {
	clone := *d
	clone.moduleDependencyBase = d.moduleDependencyBase.clone()
	clone.ChunkGroup = d.ChunkGroup.Clone()
	return &clone
}

// ImportContextDependency is a dynamic "import(...)" whose argument mixes a
// static prefix with runtime parts; it expands to a directory context.
type ImportContextDependency struct {
	moduleDependencyBase
	ContextOptions *ast.ContextOptions
}

func NewImportContextDependency(options *ast.ContextOptions, span logger.Range) *ImportContextDependency {
	d := &ImportContextDependency{
		moduleDependencyBase: newModuleDependencyBase(options.Request, &span),
		ContextOptions:       options,
	}
	return d
}

func (d *ImportContextDependency) Category() ast.DependencyCategory { return ast.DependencyCategoryEsm }
func (d *ImportContextDependency) Type() ast.DependencyType         { return ast.DependencyTypeImportContext }

func (d *ImportContextDependency) Options() *ast.ContextOptions { return d.ContextOptions }

func (d *ImportContextDependency) GroupOptions() *ast.ChunkGroupOptions {
	if d.ContextOptions == nil {
		return nil
	}
	return d.ContextOptions.GroupOptions
}

func (d *ImportContextDependency) Weak() bool {
	return d.ContextOptions != nil &&
		(d.ContextOptions.Mode == ast.ContextModeWeak || d.ContextOptions.Mode == ast.ContextModeAsyncWeak)
}

func (d *ImportContextDependency) Clone() ast.Dependency {
	clone := *d
	clone.moduleDependencyBase = d.moduleDependencyBase.clone()
	clone.ContextOptions = d.ContextOptions.Clone()
	return &clone
}

// CommonJsRequireDependency is a bare "require('m')" call. Optional is set
// when the call sits inside a try block, so a missing module degrades to a
// runtime error instead of a build failure.
type CommonJsRequireDependency struct {
	moduleDependencyBase
}

func NewCommonJsRequireDependency(request string, span logger.Range, optional bool) *CommonJsRequireDependency {
	d := &CommonJsRequireDependency{newModuleDependencyBase(request, &span)}
	d.optional = optional
	return d
}

func (d *CommonJsRequireDependency) Category() ast.DependencyCategory {
	return ast.DependencyCategoryCommonJS
}
func (d *CommonJsRequireDependency) Type() ast.DependencyType { return ast.DependencyTypeCjsRequire }

func (d *CommonJsRequireDependency) Clone() ast.Dependency {
	clone := *d
	clone.moduleDependencyBase = d.moduleDependencyBase.clone()
	return &clone
}

// CommonJsRequireContextDependency is a "require(...)" whose argument is only
// partially static.
type CommonJsRequireContextDependency struct {
	moduleDependencyBase
	ContextOptions *ast.ContextOptions
}

func NewCommonJsRequireContextDependency(options *ast.ContextOptions, span logger.Range, optional bool) *CommonJsRequireContextDependency {
	d := &CommonJsRequireContextDependency{
		moduleDependencyBase: newModuleDependencyBase(options.Request, &span),
		ContextOptions:       options,
	}
	d.optional = optional
	return d
}

func (d *CommonJsRequireContextDependency) Category() ast.DependencyCategory {
	return ast.DependencyCategoryCommonJS
}
func (d *CommonJsRequireContextDependency) Type() ast.DependencyType {
	return ast.DependencyTypeCommonJSRequireContext
}

func (d *CommonJsRequireContextDependency) Options() *ast.ContextOptions { return d.ContextOptions }

func (d *CommonJsRequireContextDependency) Clone() ast.Dependency {
	clone := *d
	clone.moduleDependencyBase = d.moduleDependencyBase.clone()
	clone.ContextOptions = d.ContextOptions.Clone()
	return &clone
}

// RequireContextDependency is the explicit "require.context(dir, recursive,
// regexp, mode)" API.
type RequireContextDependency struct {
	moduleDependencyBase
	ContextOptions *ast.ContextOptions
}

func NewRequireContextDependency(options *ast.ContextOptions, span logger.Range) *RequireContextDependency {
	return &RequireContextDependency{
		moduleDependencyBase: newModuleDependencyBase(options.Request, &span),
		ContextOptions:       options,
	}
}

func (d *RequireContextDependency) Category() ast.DependencyCategory {
	return ast.DependencyCategoryCommonJS
}
func (d *RequireContextDependency) Type() ast.DependencyType {
	return ast.DependencyTypeRequireContext
}

func (d *RequireContextDependency) Options() *ast.ContextOptions { return d.ContextOptions }

func (d *RequireContextDependency) Clone() ast.Dependency {
	clone := *d
	clone.moduleDependencyBase = d.moduleDependencyBase.clone()
	clone.ContextOptions = d.ContextOptions.Clone()
	return &clone
}

// RequireResolveDependency is "require.resolve('m')": the module is resolved
// to an id without being evaluated, so the reference is weak and pulls in no
// exports.
type RequireResolveDependency struct {
	moduleDependencyBase
}

func NewRequireResolveDependency(request string, span logger.Range, optional bool) *RequireResolveDependency {
	d := &RequireResolveDependency{newModuleDependencyBase(request, &span)}
	d.weak = true
	d.optional = optional
	return d
}

func (d *RequireResolveDependency) Category() ast.DependencyCategory {
	return ast.DependencyCategoryCommonJS
}
func (d *RequireResolveDependency) Type() ast.DependencyType { return ast.DependencyTypeRequireResolve }

func (d *RequireResolveDependency) GetReferencedExports() []ast.ReferencedExport {
	return ast.NoExportsReferenced()
}

func (d *RequireResolveDependency) Clone() ast.Dependency {
	clone := *d
	clone.moduleDependencyBase = d.moduleDependencyBase.clone()
	return &clone
}

// URLDependency is "new URL('./asset', import.meta.url)". The span covers
// both arguments so the printer can rewrite them together.
type URLDependency struct {
	moduleDependencyBase
}

func NewURLDependency(request string, span logger.Range) *URLDependency {
	return &URLDependency{newModuleDependencyBase(request, &span)}
}

func (d *URLDependency) Category() ast.DependencyCategory { return ast.DependencyCategoryURL }
func (d *URLDependency) Type() ast.DependencyType         { return ast.DependencyTypeNewURL }

func (d *URLDependency) GetReferencedExports() []ast.ReferencedExport {
	return ast.NoExportsReferenced()
}

func (d *URLDependency) Clone() ast.Dependency {
	clone := *d
	clone.moduleDependencyBase = d.moduleDependencyBase.clone()
	return &clone
}

// WorkerDependency is "new Worker(new URL('./w', import.meta.url))" or one of
// the configured worker syntaxes. Workers load as separate entry chunks.
type WorkerDependency struct {
	moduleDependencyBase
	ChunkGroup *ast.ChunkGroupOptions

	// The span of the whole constructor arguments, distinct from the request
	// span carried by the base.
	ArgsSpan logger.Range
}

func NewWorkerDependency(request string, span logger.Range, group *ast.ChunkGroupOptions, argsSpan logger.Range) *WorkerDependency {
	return &WorkerDependency{
		moduleDependencyBase: newModuleDependencyBase(request, &span),
		ChunkGroup:           group,
		ArgsSpan:             argsSpan,
	}
}

func (d *WorkerDependency) Category() ast.DependencyCategory { return ast.DependencyCategoryWorker }
func (d *WorkerDependency) Type() ast.DependencyType         { return ast.DependencyTypeNewWorker }

func (d *WorkerDependency) GroupOptions() *ast.ChunkGroupOptions { return d.ChunkGroup }

func (d *WorkerDependency) GetReferencedExports() []ast.ReferencedExport {
	return ast.NoExportsReferenced()
}

func (d *WorkerDependency) Clone() ast.Dependency {
	clone := *d
	clone.moduleDependencyBase = d.moduleDependencyBase.clone()
	clone.ChunkGroup = d.ChunkGroup.Clone()
	return &clone
}
