package ast

import "github.com/CyberFlameGO/rspack/internal/logger"

// EntryDependency is the synthetic record the graph builder creates for each
// user-provided entry point. It has no span: it doesn't come from source.
type EntryDependency struct {
	request string
	id      DependencyID
}

func NewEntryDependency(request string) *EntryDependency {
	return &EntryDependency{id: NewDependencyID(), request: request}
}

func (d *EntryDependency) ID() DependencyID             { return d.id }
func (d *EntryDependency) Category() DependencyCategory { return DependencyCategoryEsm }
func (d *EntryDependency) Type() DependencyType         { return DependencyTypeEntry }
func (d *EntryDependency) Context() string              { return "" }
func (d *EntryDependency) GetExports() *ExportsSpec     { return nil }

func (d *EntryDependency) Request() string     { return d.request }
func (d *EntryDependency) UserRequest() string { return d.request }
func (d *EntryDependency) SetRequest(request string) {
	d.request = request
}
func (d *EntryDependency) Span() *logger.Range              { return nil }
func (d *EntryDependency) Weak() bool                       { return false }
func (d *EntryDependency) Options() *ContextOptions         { return nil }
func (d *EntryDependency) GroupOptions() *ChunkGroupOptions { return nil }
func (d *EntryDependency) GetOptional() bool                { return false }
func (d *EntryDependency) ModuleEvaluationSideEffects() ConnectionState {
	return ConnectionActive
}
func (d *EntryDependency) GetReferencedExports() []ReferencedExport {
	return ExportsObjectReferenced()
}
func (d *EntryDependency) ResourceIdentifier() string { return "" }

func (d *EntryDependency) Clone() Dependency {
	clone := *d
	return &clone
}
