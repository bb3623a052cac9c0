package ast

import "github.com/CyberFlameGO/rspack/internal/logger"

// ContextElementDependency is one concrete module inside a resolved context
// request: require.context("./locales", true, /\.json$/) produces one of
// these per matching file. The element inherits the context's options, which
// is what makes lazy/lazy-once elements async.
type ContextElementDependency struct {
	options     *ContextOptions
	request     string
	userRequest string
	context     string
	category    DependencyCategory
	id          DependencyID
}

func NewContextElementDependency(request string, userRequest string, context string, options *ContextOptions, category DependencyCategory) *ContextElementDependency {
	return &ContextElementDependency{
		id:          NewDependencyID(),
		request:     request,
		userRequest: userRequest,
		context:     context,
		options:     options,
		category:    category,
	}
}

func (d *ContextElementDependency) ID() DependencyID             { return d.id }
func (d *ContextElementDependency) Category() DependencyCategory { return d.category }
func (d *ContextElementDependency) Type() DependencyType         { return DependencyTypeContextElement }
func (d *ContextElementDependency) Context() string              { return d.context }
func (d *ContextElementDependency) GetExports() *ExportsSpec     { return nil }

func (d *ContextElementDependency) Request() string     { return d.request }
func (d *ContextElementDependency) UserRequest() string { return d.userRequest }
func (d *ContextElementDependency) SetRequest(request string) {
	d.request = request
}
func (d *ContextElementDependency) Span() *logger.Range              { return nil }
func (d *ContextElementDependency) Options() *ContextOptions         { return d.options }
func (d *ContextElementDependency) GroupOptions() *ChunkGroupOptions { return nil }
func (d *ContextElementDependency) GetOptional() bool                { return false }

func (d *ContextElementDependency) Weak() bool {
	if d.options == nil {
		return false
	}
	return d.options.Mode == ContextModeWeak || d.options.Mode == ContextModeAsyncWeak
}

func (d *ContextElementDependency) ModuleEvaluationSideEffects() ConnectionState {
	return ConnectionActive
}

func (d *ContextElementDependency) GetReferencedExports() []ReferencedExport {
	return ExportsObjectReferenced()
}

func (d *ContextElementDependency) ResourceIdentifier() string {
	return "context" + d.context + "|" + d.request
}

func (d *ContextElementDependency) Clone() Dependency {
	clone := *d
	clone.options = d.options.Clone()
	return &clone
}
