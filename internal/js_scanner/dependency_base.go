package js_scanner

import (
	"github.com/CyberFlameGO/rspack/internal/ast"
	"github.com/CyberFlameGO/rspack/internal/logger"
)

// moduleDependencyBase carries the fields shared by every module-request
// record. Concrete records embed it and override the methods whose defaults
// don't apply.
type moduleDependencyBase struct {
	id                 ast.DependencyID
	request            string
	userRequest        string
	span               *logger.Range
	context            string
	optional           bool
	weak               bool
	resourceIdentifier string
}

func newModuleDependencyBase(request string, span *logger.Range) moduleDependencyBase {
	return moduleDependencyBase{
		id:          ast.NewDependencyID(),
		request:     request,
		userRequest: request,
	}.withSpan(span)
}

func (d moduleDependencyBase) withSpan(span *logger.Range) moduleDependencyBase {
	if span != nil {
		value := *span
		d.span = &value
	}
	return d
}

func (d *moduleDependencyBase) ID() ast.DependencyID { return d.id }
func (d *moduleDependencyBase) Context() string      { return d.context }
func (d *moduleDependencyBase) Request() string      { return d.request }
func (d *moduleDependencyBase) UserRequest() string  { return d.userRequest }
func (d *moduleDependencyBase) SetRequest(request string) {
	d.request = request
}

func (d *moduleDependencyBase) Span() *logger.Range {
	return d.span
}

func (d *moduleDependencyBase) Weak() bool                           { return d.weak }
func (d *moduleDependencyBase) GetOptional() bool                    { return d.optional }
func (d *moduleDependencyBase) Options() *ast.ContextOptions         { return nil }
func (d *moduleDependencyBase) GroupOptions() *ast.ChunkGroupOptions { return nil }
func (d *moduleDependencyBase) GetExports() *ast.ExportsSpec         { return nil }

func (d *moduleDependencyBase) ModuleEvaluationSideEffects() ast.ConnectionState {
	return ast.ConnectionTransitiveOnly
}

func (d *moduleDependencyBase) GetReferencedExports() []ast.ReferencedExport {
	return ast.ExportsObjectReferenced()
}

func (d *moduleDependencyBase) ResourceIdentifier() string {
	return d.resourceIdentifier
}

func (d *moduleDependencyBase) SetResourceIdentifier(value string) {
	d.resourceIdentifier = value
}

// clone copies the base, giving the copy its own span allocation. The
// DependencyID is carried over: clones are snapshots of the same record, not
// new dependencies.
func (d *moduleDependencyBase) clone() moduleDependencyBase {
	return (*d).withSpan(d.span)
}
