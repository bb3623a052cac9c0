package js_scanner

import (
	"github.com/CyberFlameGO/rspack/internal/js_ast"
	"github.com/CyberFlameGO/rspack/internal/logger"
)

// The reference scanner is the second full walk. It consults the import map
// built in phase 1 and emits one specifier dependency per use site of an
// imported binding. The same walk hosts the request detectors (dynamic
// import, new URL, workers, require, HMR) so the tree is traversed once.
//
// Import and export declarations are not recursed into here; their bindings
// were fully handled in phase 1.
type refScanner struct {
	s *Scanner

	// Set while visiting the callee subtree of a call or new expression
	inCallee bool

	// Depth of enclosing try blocks; require() inside try is optional
	tryDepth int
}

func (s *Scanner) scanReferences() {
	r := &refScanner{s: s}
	for _, stmt := range s.tree.Stmts {
		r.stmt(stmt)
	}
}

func (r *refScanner) stmts(stmts []js_ast.Stmt) {
	for _, stmt := range stmts {
		r.stmt(stmt)
	}
}

func (r *refScanner) stmt(stmt js_ast.Stmt) {
	switch st := stmt.Data.(type) {
	case *js_ast.SImport, *js_ast.SExportFrom, *js_ast.SExportStar, *js_ast.SExportClause:
		// Handled in phase 1

	case *js_ast.SBlock:
		r.stmts(st.Stmts)

	case *js_ast.SExpr:
		r.value(st.Value)

	case *js_ast.SLocal:
		for _, decl := range st.Decls {
			r.scanDecl(decl)
		}

	case *js_ast.SExportDefault:
		r.stmt(st.Value)

	case *js_ast.SFunction:
		r.fn(st.Fn)

	case *js_ast.SClass:
		r.class(st.Class)

	case *js_ast.SIf:
		r.value(st.Test)
		r.stmt(st.Yes)
		if st.No != nil {
			r.stmt(*st.No)
		}

	case *js_ast.SFor:
		if st.Init != nil {
			r.stmt(*st.Init)
		}
		if st.Test != nil {
			r.value(*st.Test)
		}
		if st.Update != nil {
			r.value(*st.Update)
		}
		r.stmt(st.Body)

	case *js_ast.SForIn:
		r.stmt(st.Init)
		r.value(st.Value)
		r.stmt(st.Body)

	case *js_ast.SForOf:
		r.stmt(st.Init)
		r.value(st.Value)
		r.stmt(st.Body)

	case *js_ast.SDoWhile:
		r.stmt(st.Body)
		r.value(st.Test)

	case *js_ast.SWhile:
		r.value(st.Test)
		r.stmt(st.Body)

	case *js_ast.SWith:
		r.value(st.Value)
		r.stmt(st.Body)

	case *js_ast.SLabel:
		r.stmt(st.Stmt)

	case *js_ast.STry:
		r.tryDepth++
		r.stmts(st.Body)
		r.tryDepth--
		if st.Catch != nil {
			if st.Catch.Binding != nil {
				r.binding(*st.Catch.Binding)
			}
			r.stmts(st.Catch.Body)
		}
		if st.Finally != nil {
			r.stmts(st.Finally.Stmts)
		}

	case *js_ast.SSwitch:
		r.value(st.Test)
		for _, c := range st.Cases {
			if c.Value != nil {
				r.value(*c.Value)
			}
			r.stmts(c.Body)
		}

	case *js_ast.SReturn:
		if st.Value != nil {
			r.value(*st.Value)
		}

	case *js_ast.SThrow:
		r.value(st.Value)
	}
}

// scanDecl handles one declarator, feeding the destructuring side-channel
// when an object pattern binds a namespace import.
func (r *refScanner) scanDecl(decl js_ast.Decl) {
	if decl.Value != nil {
		if pattern, ok := decl.Binding.Data.(*js_ast.BObject); ok {
			r.stashDestructuredNames(*decl.Value, bindingPropertyNames(pattern))
		}
	}
	r.binding(decl.Binding)
	if decl.Value != nil {
		r.value(*decl.Value)
	}
}

// binding visits the default-value expressions inside a binding pattern.
func (r *refScanner) binding(binding js_ast.Binding) {
	switch b := binding.Data.(type) {
	case *js_ast.BArray:
		for _, item := range b.Items {
			r.binding(item.Binding)
			if item.DefaultValue != nil {
				r.value(*item.DefaultValue)
			}
		}
	case *js_ast.BObject:
		for _, property := range b.Properties {
			if property.IsComputed {
				r.value(property.Key)
			}
			r.binding(property.Value)
			if property.DefaultValue != nil {
				r.value(*property.DefaultValue)
			}
		}
	}
}

// value visits an expression in non-callee position.
func (r *refScanner) value(expr js_ast.Expr) {
	saved := r.inCallee
	r.inCallee = false
	r.expr(expr)
	r.inCallee = saved
}

// callee visits the callee subtree of a call or new expression.
func (r *refScanner) callee(expr js_ast.Expr) {
	saved := r.inCallee
	r.inCallee = true
	r.expr(expr)
	r.inCallee = saved
}

func (r *refScanner) expr(expr js_ast.Expr) {
	switch e := expr.Data.(type) {
	case *js_ast.EIdentifier:
		if info, ok := r.s.importMap[e.Ref]; ok {
			r.emitIdentifierRef(expr.Loc, e, info, false)
		}

	case *js_ast.EDot:
		if id, ok := e.Target.Data.(*js_ast.EIdentifier); ok {
			if info, found := r.s.importMap[id.Ref]; found {
				r.emitMemberRef(expr, info, e.Name)
				return
			}
		}
		r.value(e.Target)

	case *js_ast.EIndex:
		if id, ok := e.Target.Data.(*js_ast.EIdentifier); ok {
			if prop, isString := js_ast.StringLiteralValue(e.Index); isString {
				if info, found := r.s.importMap[id.Ref]; found {
					r.emitMemberRef(expr, info, prop)
					return
				}
			}
		}
		r.value(e.Target)
		r.value(e.Index)

	case *js_ast.ECall:
		if r.detectCall(expr, e) {
			return
		}
		r.callee(e.Target)
		for _, arg := range e.Args {
			r.value(arg)
		}

	case *js_ast.ENew:
		if r.detectNew(expr, e) {
			return
		}
		r.callee(e.Target)
		for _, arg := range e.Args {
			r.value(arg)
		}

	case *js_ast.EImportCall:
		r.detectImportCall(expr, e)
		r.value(e.Expr)

	case *js_ast.EBinary:
		if e.Op == "=" {
			if pattern, ok := e.Left.Data.(*js_ast.EObject); ok {
				r.stashDestructuredNames(e.Right, objectPatternNames(pattern))
			}
		}
		r.value(e.Left)
		r.value(e.Right)

	case *js_ast.EUnary:
		r.value(e.Value)

	case *js_ast.ESpread:
		r.value(e.Value)

	case *js_ast.EAwait:
		r.value(e.Value)

	case *js_ast.EYield:
		if e.Value != nil {
			r.value(*e.Value)
		}

	case *js_ast.EIf:
		r.value(e.Test)
		r.value(e.Yes)
		r.value(e.No)

	case *js_ast.EArray:
		for _, item := range e.Items {
			r.value(item)
		}

	case *js_ast.EObject:
		for _, property := range e.Properties {
			r.objectProperty(property)
		}

	case *js_ast.ETemplate:
		if e.Tag != nil {
			r.value(*e.Tag)
		}
		for _, part := range e.Parts {
			r.value(part.Value)
		}

	case *js_ast.EArrow:
		for _, arg := range e.Args {
			r.binding(arg.Binding)
			if arg.Default != nil {
				r.value(*arg.Default)
			}
		}
		r.stmts(e.Body.Stmts)

	case *js_ast.EFunction:
		r.fn(e.Fn)

	case *js_ast.EClass:
		r.class(e.Class)
	}
}

func (r *refScanner) objectProperty(property js_ast.Property) {
	if property.IsComputed {
		r.value(property.Key)
	}
	if property.WasShorthand && property.Value != nil {
		if id, ok := property.Value.Data.(*js_ast.EIdentifier); ok {
			if info, found := r.s.importMap[id.Ref]; found {
				r.emitIdentifierRef(property.Value.Loc, id, info, true)
				if property.Initializer != nil {
					r.value(*property.Initializer)
				}
				return
			}
		}
	}
	if property.Value != nil {
		r.value(*property.Value)
	}
	if property.Initializer != nil {
		r.value(*property.Initializer)
	}
}

func (r *refScanner) fn(fn js_ast.Fn) {
	for _, arg := range fn.Args {
		r.binding(arg.Binding)
		if arg.Default != nil {
			r.value(*arg.Default)
		}
	}
	r.stmts(fn.Body.Stmts)
}

func (r *refScanner) class(class js_ast.Class) {
	if class.Extends != nil {
		r.value(*class.Extends)
	}
	for _, property := range class.Properties {
		r.objectProperty(property)
	}
}

// stashDestructuredNames records the property names an object pattern pulls
// out of a namespace binding. The next reference to that binding consumes
// them, so tree-shaking sees which namespace members are actually used.
func (r *refScanner) stashDestructuredNames(source js_ast.Expr, names []string) {
	if len(names) == 0 {
		return
	}
	id, ok := source.Data.(*js_ast.EIdentifier)
	if !ok {
		return
	}
	info, found := r.s.importMap[id.Ref]
	if !found || info.Specifier.Kind != SpecifierNamespace {
		return
	}
	r.s.destructuredNames[id.Name] = append(r.s.destructuredNames[id.Name], names...)
}

func bindingPropertyNames(pattern *js_ast.BObject) []string {
	var names []string
	for _, property := range pattern.Properties {
		if property.IsComputed || property.IsSpread {
			continue
		}
		if key, ok := property.Key.Data.(*js_ast.EString); ok {
			names = append(names, key.Value)
		}
	}
	return names
}

func objectPatternNames(pattern *js_ast.EObject) []string {
	var names []string
	for _, property := range pattern.Properties {
		if property.IsComputed || property.Kind == js_ast.PropertySpread {
			continue
		}
		if key, ok := property.Key.Data.(*js_ast.EString); ok {
			names = append(names, key.Value)
		}
	}
	return names
}

// emitIdentifierRef emits the specifier dependency for a bare identifier
// use. Bare identifier uses are always call-like: the printer must wrap the
// rewritten expression so a method extracted from a namespace keeps its
// "this" unbound.
func (r *refScanner) emitIdentifierRef(loc logger.Loc, id *js_ast.EIdentifier, info ImporterReferenceInfo, shorthand bool) {
	lo := uint32(loc.Start)
	hi := lo + uint32(len(id.Name))
	dep := NewHarmonyImportSpecifierDependency(info.Request, lo, hi, info.Names, info.Specifier)
	dep.InCallee = r.inCallee
	dep.CallLike = true
	dep.Shorthand = shorthand
	if names, ok := r.s.destructuredNames[id.Name]; ok {
		dep.DestructuredNames = names
		delete(r.s.destructuredNames, id.Name)
	}
	r.s.addDependency(dep)
}

// emitMemberRef emits one dependency covering a whole member expression
// whose object is an imported binding. The object identifier is not emitted
// separately.
func (r *refScanner) emitMemberRef(expr js_ast.Expr, info ImporterReferenceInfo, prop string) {
	lo := uint32(expr.Loc.Start)
	hi := uint32(js_ast.ExprEndLoc(expr).Start)
	ids := append(append([]string(nil), info.Names...), prop)
	dep := NewHarmonyImportSpecifierDependency(info.Request, lo, hi, ids, info.Specifier)
	dep.InCallee = r.inCallee
	dep.CallLike = !r.inCallee
	r.s.addDependency(dep)
}
