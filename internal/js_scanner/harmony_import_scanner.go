package js_scanner

import (
	"github.com/CyberFlameGO/rspack/internal/ast"
	"github.com/CyberFlameGO/rspack/internal/js_ast"
	"github.com/CyberFlameGO/rspack/internal/logger"
)

// Phase 1: walk the top-level statements, record every import/export
// declaration into the imports table and the import map, and queue a rewrite
// that deletes the declaration. The declarations are materialized later as
// injected runtime imports.

func (s *Scanner) scanHarmonyImports() {
	for _, stmt := range s.tree.Stmts {
		switch st := stmt.Data.(type) {
		case *js_ast.SImport:
			s.scanImportStmt(stmt.Loc, st)
		case *js_ast.SExportFrom:
			s.scanExportFromStmt(stmt.Loc, st)
		case *js_ast.SExportStar:
			s.scanExportStarStmt(stmt.Loc, st)
		}
	}
}

func (s *Scanner) scanImportStmt(loc logger.Loc, st *js_ast.SImport) {
	span := logger.RangeOfOffsets(uint32(loc.Start), uint32(st.EndLoc.Start))
	key := ImportKey{Request: st.PathText, Type: ast.DependencyTypeEsmImport}
	info := s.imports.GetOrCreate(key, span)

	if st.DefaultName != nil {
		spec := DefaultSpecifier(st.DefaultNameText)
		info.appendSpecifier(spec)
		s.importMap[st.DefaultName.Ref] = newImporterReferenceInfo(st.PathText, spec)
	}
	if st.StarNameLoc != nil {
		spec := NamespaceSpecifier(st.StarName)
		info.appendSpecifier(spec)
		s.importMap[st.StarNameRef] = newImporterReferenceInfo(st.PathText, spec)
	}
	if st.Items != nil {
		for _, item := range *st.Items {
			var imported *string
			if item.Alias != item.OriginalName {
				alias := item.Alias
				imported = &alias
			}
			spec := NamedSpecifier(item.OriginalName, imported)
			info.appendSpecifier(spec)
			s.importMap[item.Name.Ref] = newImporterReferenceInfo(st.PathText, spec)
		}
	}

	s.workerMatcher.CollectImport(st)
	s.addRewrite(ast.NewConstDependency(uint32(loc.Start), uint32(st.EndLoc.Start), ""))
}

func (s *Scanner) scanExportFromStmt(loc logger.Loc, st *js_ast.SExportFrom) {
	span := logger.RangeOfOffsets(uint32(loc.Start), uint32(st.EndLoc.Start))
	key := ImportKey{Request: st.PathText, Type: ast.DependencyTypeEsmExport}
	info := s.imports.GetOrCreate(key, span)

	for _, item := range st.Items {
		// item.Alias is the exported name, item.OriginalName the name on the
		// source module
		var imported *string
		if item.OriginalName != item.Alias {
			original := item.OriginalName
			imported = &original
		}
		info.appendSpecifier(NamedSpecifier(item.Alias, imported))
	}

	s.addRewrite(ast.NewConstDependency(uint32(loc.Start), uint32(st.EndLoc.Start), ""))
}

func (s *Scanner) scanExportStarStmt(loc logger.Loc, st *js_ast.SExportStar) {
	span := logger.RangeOfOffsets(uint32(loc.Start), uint32(st.EndLoc.Start))
	key := ImportKey{Request: st.PathText, Type: ast.DependencyTypeEsmExport}
	info := s.imports.GetOrCreate(key, span)

	if st.Alias != nil {
		info.appendSpecifier(NamespaceSpecifier(st.Alias.Name))
	} else {
		info.ExportsAll = true
	}

	s.addRewrite(ast.NewConstDependency(uint32(loc.Start), uint32(st.EndLoc.Start), ""))
}

// Phase 2 of the import scan: turn the accumulated imports table into
// dependency records. Iteration follows first-occurrence order of each
// (request, kind) key; within one key the re-export specifier records
// precede the umbrella import record.
func (s *Scanner) emitHarmonyDependencies() {
	s.imports.ForEach(func(key ImportKey, info *ImporterInfo) {
		if key.Type == ast.DependencyTypeEsmExport {
			for _, spec := range info.Specifiers {
				s.addDependency(NewHarmonyExportImportedSpecifierDependency(key.Request, info.Span, spec))
				s.harmonyNamedExports[spec.Local] = true
			}
		}

		dep := NewHarmonyImportDependency(key.Request, info.Span, info.Specifiers, key.Type, info.ExportsAll)
		s.addDependency(dep)
		if info.ExportsAll {
			s.allStarExports = append(s.allStarExports, dep.ID())
		}
	})
}
