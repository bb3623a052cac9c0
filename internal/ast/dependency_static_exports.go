package ast

// StaticExportsDependency declares exports that are known without executing
// the module, e.g. the export section of a wasm module or the keys of a JSON
// file. ExportsTrue means "exports exist but the names aren't enumerable".
type StaticExportsDependency struct {
	exports  []string
	id       DependencyID
	allKnown bool
}

func NewStaticExportsDependency(exports []string, allKnown bool) *StaticExportsDependency {
	return &StaticExportsDependency{id: NewDependencyID(), exports: exports, allKnown: allKnown}
}

func (d *StaticExportsDependency) ID() DependencyID             { return d.id }
func (d *StaticExportsDependency) Category() DependencyCategory { return DependencyCategoryUnknown }
func (d *StaticExportsDependency) Type() DependencyType         { return DependencyTypeStaticExports }
func (d *StaticExportsDependency) Context() string              { return "" }

func (d *StaticExportsDependency) GetExports() *ExportsSpec {
	if !d.allKnown {
		return &ExportsSpec{Exports: ExportsOfExportsSpec{Kind: ExportsTrue}}
	}
	entries := make([]ExportNameOrSpec, len(d.exports))
	for i, name := range d.exports {
		entries[i] = ExportNameOrSpec{Name: name}
	}
	return &ExportsSpec{Exports: ExportsOfExportsSpec{Kind: ExportsArray, Entries: entries}}
}

func (d *StaticExportsDependency) Clone() Dependency {
	clone := *d
	clone.exports = append([]string(nil), d.exports...)
	return &clone
}
