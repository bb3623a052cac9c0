package ast

// The exports spec is what a dependency contributes to its module's
// export-info table: which names the module exports, whether each one can be
// mangled, and whether it is re-exported from another module.

// ExportSpec describes one named export.
type ExportSpec struct {
	Name string

	// The path of the export on the source module when re-exported under a
	// different name, e.g. ["default"] for "export { default as X }".
	Export []string

	// Nested exports, when the export is itself a namespace object.
	Exports []ExportNameOrSpec

	CanMangle       *bool
	TerminalBinding *bool
	Priority        *uint8
	Hidden          *bool

	// The module this export is re-exported from, if any.
	From       *ModuleIdentifier
	FromExport *ModuleIdentifier
}

func NewExportSpec(name string) ExportSpec {
	return ExportSpec{Name: name}
}

func (s ExportSpec) clone() ExportSpec {
	clone := s
	clone.Export = append([]string(nil), s.Export...)
	clone.CanMangle = cloneBool(s.CanMangle)
	clone.TerminalBinding = cloneBool(s.TerminalBinding)
	clone.Hidden = cloneBool(s.Hidden)
	if s.Priority != nil {
		v := *s.Priority
		clone.Priority = &v
	}
	if s.From != nil {
		v := *s.From
		clone.From = &v
	}
	if s.FromExport != nil {
		v := *s.FromExport
		clone.FromExport = &v
	}
	if s.Exports != nil {
		clone.Exports = make([]ExportNameOrSpec, len(s.Exports))
		for i, e := range s.Exports {
			clone.Exports[i] = e.clone()
		}
	}
	return clone
}

// ExportNameOrSpec is either a bare name or a full spec. Exactly one of the
// two fields is set.
type ExportNameOrSpec struct {
	Name string
	Spec *ExportSpec
}

func (e ExportNameOrSpec) clone() ExportNameOrSpec {
	if e.Spec == nil {
		return e
	}
	spec := e.Spec.clone()
	return ExportNameOrSpec{Spec: &spec}
}

// ExportsKind is the three-way union for what a dependency knows about the
// exported names: everything ("true"), nothing known ("null"), or a list.
type ExportsKind uint8

const (
	ExportsNull ExportsKind = iota
	ExportsTrue
	ExportsArray
)

type ExportsOfExportsSpec struct {
	Kind    ExportsKind
	Entries []ExportNameOrSpec
}

type ExportsSpec struct {
	Exports         ExportsOfExportsSpec
	Priority        *uint8
	CanMangle       *bool
	TerminalBinding *bool
	From            *ModuleIdentifier
	Dependencies    []ModuleIdentifier
	HideExport      []string
	ExcludeExports  []string
}

func (s *ExportsSpec) Clone() *ExportsSpec {
	if s == nil {
		return nil
	}
	clone := *s
	clone.CanMangle = cloneBool(s.CanMangle)
	clone.TerminalBinding = cloneBool(s.TerminalBinding)
	if s.Priority != nil {
		v := *s.Priority
		clone.Priority = &v
	}
	if s.From != nil {
		v := *s.From
		clone.From = &v
	}
	clone.Dependencies = append([]ModuleIdentifier(nil), s.Dependencies...)
	clone.HideExport = append([]string(nil), s.HideExport...)
	clone.ExcludeExports = append([]string(nil), s.ExcludeExports...)
	if s.Exports.Entries != nil {
		entries := make([]ExportNameOrSpec, len(s.Exports.Entries))
		for i, e := range s.Exports.Entries {
			entries[i] = e.clone()
		}
		clone.Exports.Entries = entries
	}
	return &clone
}

func cloneBool(b *bool) *bool {
	if b == nil {
		return nil
	}
	v := *b
	return &v
}
