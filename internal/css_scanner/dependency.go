package css_scanner

import (
	"github.com/CyberFlameGO/rspack/internal/ast"
	"github.com/CyberFlameGO/rspack/internal/logger"
)

// CSS records carry no specifier list; they are plain module requests with a
// category that tells the resolver which pipeline handles them.
type cssDependencyBase struct {
	id      ast.DependencyID
	request string
	span    logger.Range
}

func newCSSDependencyBase(request string, span logger.Range) cssDependencyBase {
	return cssDependencyBase{id: ast.NewDependencyID(), request: request, span: span}
}

func (d *cssDependencyBase) ID() ast.DependencyID         { return d.id }
func (d *cssDependencyBase) Context() string              { return "" }
func (d *cssDependencyBase) GetExports() *ast.ExportsSpec { return nil }
func (d *cssDependencyBase) Request() string              { return d.request }
func (d *cssDependencyBase) UserRequest() string          { return d.request }
func (d *cssDependencyBase) SetRequest(request string)    { d.request = request }
func (d *cssDependencyBase) Span() *logger.Range          { return &d.span }
func (d *cssDependencyBase) Weak() bool                   { return false }
func (d *cssDependencyBase) Options() *ast.ContextOptions { return nil }
func (d *cssDependencyBase) GetOptional() bool            { return false }
func (d *cssDependencyBase) ResourceIdentifier() string   { return "" }

func (d *cssDependencyBase) GroupOptions() *ast.ChunkGroupOptions { return nil }

func (d *cssDependencyBase) ModuleEvaluationSideEffects() ast.ConnectionState {
	return ast.ConnectionActive
}

func (d *cssDependencyBase) GetReferencedExports() []ast.ReferencedExport {
	return ast.ExportsObjectReferenced()
}

// ImportDependency is an "@import" rule.
type ImportDependency struct {
	cssDependencyBase

	// Media query text following the request, if any
	Media string
}

func NewImportDependency(request string, span logger.Range, media string) *ImportDependency {
	return &ImportDependency{cssDependencyBase: newCSSDependencyBase(request, span), Media: media}
}

func (d *ImportDependency) Category() ast.DependencyCategory { return ast.DependencyCategoryCssImport }
func (d *ImportDependency) Type() ast.DependencyType         { return ast.DependencyTypeCssImport }

func (d *ImportDependency) Clone() ast.Dependency {
	clone := *d
	return &clone
}

// URLDependency is a "url(...)" token in a property value.
type URLDependency struct {
	cssDependencyBase
}

func NewURLDependency(request string, span logger.Range) *URLDependency {
	return &URLDependency{newCSSDependencyBase(request, span)}
}

func (d *URLDependency) Category() ast.DependencyCategory { return ast.DependencyCategoryURL }
func (d *URLDependency) Type() ast.DependencyType         { return ast.DependencyTypeCssURL }

func (d *URLDependency) GetReferencedExports() []ast.ReferencedExport {
	return ast.NoExportsReferenced()
}

func (d *URLDependency) Clone() ast.Dependency {
	clone := *d
	return &clone
}

// ComposeDependency is a CSS-modules "composes: a b from 'm'" declaration.
type ComposeDependency struct {
	cssDependencyBase

	// The class names composed from the source module
	Names []string
}

func NewComposeDependency(request string, span logger.Range, names []string) *ComposeDependency {
	return &ComposeDependency{cssDependencyBase: newCSSDependencyBase(request, span), Names: names}
}

func (d *ComposeDependency) Category() ast.DependencyCategory {
	return ast.DependencyCategoryCssCompose
}
func (d *ComposeDependency) Type() ast.DependencyType { return ast.DependencyTypeCssCompose }

func (d *ComposeDependency) GetReferencedExports() []ast.ReferencedExport {
	exports := make([]ast.ReferencedExport, 0, len(d.Names))
	for _, name := range d.Names {
		exports = append(exports, ast.ReferencedExport{Names: []string{name}})
	}
	return exports
}

func (d *ComposeDependency) Clone() ast.Dependency {
	clone := *d
	clone.Names = append([]string(nil), d.Names...)
	return &clone
}
