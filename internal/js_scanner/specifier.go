package js_scanner

import (
	"github.com/CyberFlameGO/rspack/internal/ast"
	"github.com/CyberFlameGO/rspack/internal/js_ast"
	"github.com/CyberFlameGO/rspack/internal/logger"
)

type SpecifierKind uint8

const (
	SpecifierDefault SpecifierKind = iota
	SpecifierNamed
	SpecifierNamespace
)

// Specifier is one binding introduced by an import or export-from clause:
// Default(local), Named(local, imported?), or Namespace(local).
type Specifier struct {
	Kind  SpecifierKind
	Local string

	// The source-side export name when it differs from the local name, e.g.
	// "a" for `import { a as b }`. Nil when the names coincide.
	Imported *string
}

func DefaultSpecifier(local string) Specifier {
	return Specifier{Kind: SpecifierDefault, Local: local}
}

func NamedSpecifier(local string, imported *string) Specifier {
	return Specifier{Kind: SpecifierNamed, Local: local, Imported: imported}
}

func NamespaceSpecifier(local string) Specifier {
	return Specifier{Kind: SpecifierNamespace, Local: local}
}

// ImportedName is the name looked up on the source module: the explicit
// imported name, "default" for default specifiers, or the local name.
func (s Specifier) ImportedName() string {
	if s.Kind == SpecifierDefault {
		return "default"
	}
	if s.Imported != nil {
		return *s.Imported
	}
	return s.Local
}

// ImporterReferenceInfo is the import-map value for one local binding: which
// request it came from, how it was bound, and the qualified-name path for
// renamed named imports.
type ImporterReferenceInfo struct {
	Request   string
	Specifier Specifier

	// The reference path on the source module. Empty for namespace imports,
	// ["default"] for defaults, [imported-or-local] for named imports.
	Names []string
}

func newImporterReferenceInfo(request string, specifier Specifier) ImporterReferenceInfo {
	info := ImporterReferenceInfo{Request: request, Specifier: specifier}
	switch specifier.Kind {
	case SpecifierDefault:
		info.Names = []string{"default"}
	case SpecifierNamed:
		info.Names = []string{specifier.ImportedName()}
	}
	return info
}

// ImportMap maps each imported local binding to its reference info. The key
// is the binder's symbol ref, so shadowed names never collide.
type ImportMap map[js_ast.Ref]ImporterReferenceInfo

// ImportKey identifies one ImporterInfo entry: a request string together
// with the statement kind that mentioned it.
type ImportKey struct {
	Request string
	Type    ast.DependencyType
}

// ImporterInfo accumulates everything learned about one (request, kind) pair
// during phase 1: where it first occurred, the specifiers in source order,
// and whether an "export *" was seen.
type ImporterInfo struct {
	Span       logger.Range
	Specifiers []Specifier
	ExportsAll bool
}

func (info *ImporterInfo) appendSpecifier(specifier Specifier) {
	// De-duplicated by local name; the first occurrence wins
	for _, existing := range info.Specifiers {
		if existing.Local == specifier.Local && existing.Kind == specifier.Kind {
			return
		}
	}
	info.Specifiers = append(info.Specifiers, specifier)
}

// Imports is the phase-1 output table. It iterates in first-insertion order,
// which is what makes rebuild emission deterministic.
type Imports struct {
	keys    []ImportKey
	entries map[ImportKey]*ImporterInfo
}

func NewImports() *Imports {
	return &Imports{entries: map[ImportKey]*ImporterInfo{}}
}

// GetOrCreate returns the entry for the key, creating it with the given span
// on first sight. The span of an existing entry is never updated.
func (im *Imports) GetOrCreate(key ImportKey, span logger.Range) *ImporterInfo {
	if info, ok := im.entries[key]; ok {
		return info
	}
	info := &ImporterInfo{Span: span}
	im.entries[key] = info
	im.keys = append(im.keys, key)
	return info
}

func (im *Imports) Get(key ImportKey) (*ImporterInfo, bool) {
	info, ok := im.entries[key]
	return info, ok
}

func (im *Imports) Len() int {
	return len(im.keys)
}

// ForEach visits entries in first-insertion order.
func (im *Imports) ForEach(fn func(key ImportKey, info *ImporterInfo)) {
	for _, key := range im.keys {
		fn(key, im.entries[key])
	}
}
