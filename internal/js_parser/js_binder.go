package js_parser

// The binder resolves identifiers to symbols after parsing. It rebuilds the
// scope tree from the AST: "var" and function statements hoist to the nearest
// function or module scope, lexical declarations stay in their block, and
// names that resolve to nothing share a single unbound symbol per name.
//
// Hoisting here is deliberately simpler than the specification. Annex B
// function-in-block semantics and TDZ errors are ignored because the
// dependency scanners only need to know which declaration a name refers to,
// not whether the reference was legal.

import (
	"github.com/CyberFlameGO/rspack/internal/js_ast"
)

type binder struct {
	symbols     []js_ast.Symbol
	sourceIndex uint32
	scope       *js_ast.Scope

	// One shared symbol per unbound name, so "require" used twice compares
	// equal by Ref
	unbound map[string]js_ast.Ref
}

func bind(tree *js_ast.AST, sourceIndex uint32) {
	b := &binder{
		sourceIndex: sourceIndex,
		unbound:     map[string]js_ast.Ref{},
	}

	moduleScope := b.pushScope(js_ast.ScopeEntry)
	b.hoistStmts(tree.Stmts)
	b.declareLexical(tree.Stmts)
	b.stmts(tree.Stmts)
	b.popScope()

	tree.Symbols = b.symbols
	tree.ModuleScope = moduleScope
}

func (b *binder) pushScope(kind js_ast.ScopeKind) *js_ast.Scope {
	scope := &js_ast.Scope{
		Parent:   b.scope,
		Kind:     kind,
		Members:  map[string]js_ast.ScopeMember{},
		LabelRef: js_ast.InvalidRef,
	}
	if b.scope != nil {
		b.scope.Children = append(b.scope.Children, scope)
	}
	b.scope = scope
	return scope
}

func (b *binder) popScope() {
	b.scope = b.scope.Parent
}

func (b *binder) newSymbol(kind js_ast.SymbolKind, name string) js_ast.Ref {
	ref := js_ast.Ref{OuterIndex: b.sourceIndex, InnerIndex: uint32(len(b.symbols))}
	b.symbols = append(b.symbols, js_ast.Symbol{Kind: kind, OriginalName: name})
	return ref
}

func (b *binder) declare(kind js_ast.SymbolKind, name string, loc js_ast.LocRef) js_ast.Ref {
	if existing, ok := b.scope.Members[name]; ok {
		// "var" declared twice in the same scope shares one symbol
		if b.symbols[existing.Ref.InnerIndex].Kind.IsHoisted() && kind.IsHoisted() {
			return existing.Ref
		}
	}
	ref := b.newSymbol(kind, name)
	b.scope.Members[name] = js_ast.ScopeMember{Loc: loc.Loc, Ref: ref}
	return ref
}

func (b *binder) findSymbol(name string) js_ast.Ref {
	for scope := b.scope; scope != nil; scope = scope.Parent {
		if member, ok := scope.Members[name]; ok {
			b.symbols[member.Ref.InnerIndex].UseCountEstimate++
			return member.Ref
		}
	}

	ref, ok := b.unbound[name]
	if !ok {
		ref = b.newSymbol(js_ast.SymbolUnbound, name)
		b.unbound[name] = ref
	}
	b.symbols[ref.InnerIndex].UseCountEstimate++
	return ref
}

// hoistStmts declares "var" bindings and directly nested function statement
// names into the current scope, descending through statements that do not
// begin a new function scope.
func (b *binder) hoistStmts(stmts []js_ast.Stmt) {
	for i := range stmts {
		b.hoistStmt(&stmts[i])
	}
}

func (b *binder) hoistStmt(stmt *js_ast.Stmt) {
	switch s := stmt.Data.(type) {
	case *js_ast.SLocal:
		if s.Kind == js_ast.LocalVar {
			for i := range s.Decls {
				b.declareBinding(js_ast.SymbolHoisted, s.Decls[i].Binding)
			}
		}

	case *js_ast.SFunction:
		if s.Fn.Name != nil && s.Fn.Name.Ref == js_ast.InvalidRef {
			s.Fn.Name.Ref = b.declare(js_ast.SymbolHoistedFunction, s.Fn.NameText, *s.Fn.Name)
		}

	case *js_ast.SBlock:
		b.hoistStmts(s.Stmts)

	case *js_ast.SIf:
		b.hoistStmt(&s.Yes)
		if s.No != nil {
			b.hoistStmt(s.No)
		}

	case *js_ast.SFor:
		if s.Init != nil {
			b.hoistStmt(s.Init)
		}
		b.hoistStmt(&s.Body)

	case *js_ast.SForIn:
		b.hoistStmt(&s.Init)
		b.hoistStmt(&s.Body)

	case *js_ast.SForOf:
		b.hoistStmt(&s.Init)
		b.hoistStmt(&s.Body)

	case *js_ast.SDoWhile:
		b.hoistStmt(&s.Body)

	case *js_ast.SWhile:
		b.hoistStmt(&s.Body)

	case *js_ast.SWith:
		b.hoistStmt(&s.Body)

	case *js_ast.SLabel:
		b.hoistStmt(&s.Stmt)

	case *js_ast.STry:
		b.hoistStmts(s.Body)
		if s.Catch != nil {
			b.hoistStmts(s.Catch.Body)
		}
		if s.Finally != nil {
			b.hoistStmts(s.Finally.Stmts)
		}

	case *js_ast.SSwitch:
		for i := range s.Cases {
			b.hoistStmts(s.Cases[i].Body)
		}
	}
}

// declareLexical declares the block-scoped names of the given statement list
// into the current scope: let, const, class, import, and any function
// statements not already hoisted.
func (b *binder) declareLexical(stmts []js_ast.Stmt) {
	for i := range stmts {
		switch s := stmts[i].Data.(type) {
		case *js_ast.SLocal:
			if s.Kind != js_ast.LocalVar {
				kind := js_ast.SymbolOther
				if s.Kind == js_ast.LocalConst {
					kind = js_ast.SymbolConst
				}
				for j := range s.Decls {
					b.declareBinding(kind, s.Decls[j].Binding)
				}
			}

		case *js_ast.SFunction:
			if s.Fn.Name != nil && s.Fn.Name.Ref == js_ast.InvalidRef {
				s.Fn.Name.Ref = b.declare(js_ast.SymbolHoistedFunction, s.Fn.NameText, *s.Fn.Name)
			}

		case *js_ast.SClass:
			if s.Class.Name != nil && s.Class.Name.Ref == js_ast.InvalidRef {
				s.Class.Name.Ref = b.declare(js_ast.SymbolClass, s.Class.NameText, *s.Class.Name)
			}

		case *js_ast.SImport:
			if s.DefaultName != nil {
				s.DefaultName.Ref = b.declare(js_ast.SymbolImport, s.DefaultNameText, *s.DefaultName)
			}
			if s.StarNameLoc != nil {
				s.StarNameRef = b.declare(js_ast.SymbolImport, s.StarName,
					js_ast.LocRef{Loc: *s.StarNameLoc, Ref: js_ast.InvalidRef})
			}
			if s.Items != nil {
				items := *s.Items
				for j := range items {
					items[j].Name.Ref = b.declare(js_ast.SymbolImport, items[j].OriginalName, items[j].Name)
				}
			}

		case *js_ast.SExportDefault:
			switch value := s.Value.Data.(type) {
			case *js_ast.SFunction:
				if value.Fn.Name != nil && value.Fn.Name.Ref == js_ast.InvalidRef {
					value.Fn.Name.Ref = b.declare(js_ast.SymbolHoistedFunction, value.Fn.NameText, *value.Fn.Name)
				}
			case *js_ast.SClass:
				if value.Class.Name != nil && value.Class.Name.Ref == js_ast.InvalidRef {
					value.Class.Name.Ref = b.declare(js_ast.SymbolClass, value.Class.NameText, *value.Class.Name)
				}
			}
		}
	}
}

func (b *binder) declareBinding(kind js_ast.SymbolKind, binding js_ast.Binding) {
	switch d := binding.Data.(type) {
	case *js_ast.BIdentifier:
		if d.Ref == js_ast.InvalidRef {
			d.Ref = b.declare(kind, d.Name, js_ast.LocRef{Loc: binding.Loc, Ref: js_ast.InvalidRef})
		}

	case *js_ast.BArray:
		for _, item := range d.Items {
			b.declareBinding(kind, item.Binding)
		}

	case *js_ast.BObject:
		for _, property := range d.Properties {
			b.declareBinding(kind, property.Value)
		}
	}
}

// resolveBindingExprs resolves the expressions nested inside a binding
// pattern (computed keys and default values) without touching the binding
// identifiers themselves.
func (b *binder) resolveBindingExprs(binding js_ast.Binding) {
	switch d := binding.Data.(type) {
	case *js_ast.BArray:
		for _, item := range d.Items {
			b.resolveBindingExprs(item.Binding)
			if item.DefaultValue != nil {
				b.expr(*item.DefaultValue)
			}
		}

	case *js_ast.BObject:
		for _, property := range d.Properties {
			if property.IsComputed {
				b.expr(property.Key)
			}
			b.resolveBindingExprs(property.Value)
			if property.DefaultValue != nil {
				b.expr(*property.DefaultValue)
			}
		}
	}
}

func (b *binder) stmts(stmts []js_ast.Stmt) {
	for i := range stmts {
		b.stmt(stmts[i])
	}
}

func (b *binder) stmt(stmt js_ast.Stmt) {
	switch s := stmt.Data.(type) {
	case *js_ast.SBlock:
		b.pushScope(js_ast.ScopeBlock)
		b.declareLexical(s.Stmts)
		b.stmts(s.Stmts)
		b.popScope()

	case *js_ast.SExpr:
		b.expr(s.Value)

	case *js_ast.SLocal:
		for i := range s.Decls {
			b.resolveBindingExprs(s.Decls[i].Binding)
			if s.Decls[i].Value != nil {
				b.expr(*s.Decls[i].Value)
			}
		}

	case *js_ast.SFunction:
		b.fn(&s.Fn)

	case *js_ast.SClass:
		b.class(&s.Class)

	case *js_ast.SIf:
		b.expr(s.Test)
		b.stmt(s.Yes)
		if s.No != nil {
			b.stmt(*s.No)
		}

	case *js_ast.SFor:
		b.pushScope(js_ast.ScopeBlock)
		if s.Init != nil {
			b.declareLexical([]js_ast.Stmt{*s.Init})
			b.stmt(*s.Init)
		}
		if s.Test != nil {
			b.expr(*s.Test)
		}
		if s.Update != nil {
			b.expr(*s.Update)
		}
		b.stmt(s.Body)
		b.popScope()

	case *js_ast.SForIn:
		b.pushScope(js_ast.ScopeBlock)
		b.declareLexical([]js_ast.Stmt{s.Init})
		b.stmt(s.Init)
		b.expr(s.Value)
		b.stmt(s.Body)
		b.popScope()

	case *js_ast.SForOf:
		b.pushScope(js_ast.ScopeBlock)
		b.declareLexical([]js_ast.Stmt{s.Init})
		b.stmt(s.Init)
		b.expr(s.Value)
		b.stmt(s.Body)
		b.popScope()

	case *js_ast.SDoWhile:
		b.stmt(s.Body)
		b.expr(s.Test)

	case *js_ast.SWhile:
		b.expr(s.Test)
		b.stmt(s.Body)

	case *js_ast.SWith:
		b.expr(s.Value)
		b.pushScope(js_ast.ScopeWith)
		b.stmt(s.Body)
		b.popScope()

	case *js_ast.STry:
		b.pushScope(js_ast.ScopeBlock)
		b.declareLexical(s.Body)
		b.stmts(s.Body)
		b.popScope()

		if s.Catch != nil {
			b.pushScope(js_ast.ScopeBlock)
			if s.Catch.Binding != nil {
				kind := js_ast.SymbolOther
				if _, isIdentifier := s.Catch.Binding.Data.(*js_ast.BIdentifier); isIdentifier {
					kind = js_ast.SymbolCatchIdentifier
				}
				b.declareBinding(kind, *s.Catch.Binding)
				b.resolveBindingExprs(*s.Catch.Binding)
			}
			b.declareLexical(s.Catch.Body)
			b.stmts(s.Catch.Body)
			b.popScope()
		}

		if s.Finally != nil {
			b.pushScope(js_ast.ScopeBlock)
			b.declareLexical(s.Finally.Stmts)
			b.stmts(s.Finally.Stmts)
			b.popScope()
		}

	case *js_ast.SSwitch:
		b.expr(s.Test)
		b.pushScope(js_ast.ScopeBlock)
		for i := range s.Cases {
			b.declareLexical(s.Cases[i].Body)
		}
		for i := range s.Cases {
			if s.Cases[i].Value != nil {
				b.expr(*s.Cases[i].Value)
			}
			b.stmts(s.Cases[i].Body)
		}
		b.popScope()

	case *js_ast.SReturn:
		if s.Value != nil {
			b.expr(*s.Value)
		}

	case *js_ast.SThrow:
		b.expr(s.Value)

	case *js_ast.SLabel:
		b.stmt(s.Stmt)

	case *js_ast.SExportClause:
		for i := range s.Items {
			s.Items[i].Name.Ref = b.findSymbol(s.Items[i].OriginalName)
		}

	case *js_ast.SExportDefault:
		s.DefaultName.Ref = b.newSymbol(js_ast.SymbolOther, "default")
		b.stmt(s.Value)
	}
}

func (b *binder) fn(fn *js_ast.Fn) {
	b.pushScope(js_ast.ScopeFunctionBody)

	for _, arg := range fn.Args {
		b.declareBinding(js_ast.SymbolHoisted, arg.Binding)
	}
	b.declare(js_ast.SymbolArguments, "arguments", js_ast.LocRef{Ref: js_ast.InvalidRef})
	for _, arg := range fn.Args {
		b.resolveBindingExprs(arg.Binding)
		if arg.Default != nil {
			b.expr(*arg.Default)
		}
	}

	b.hoistStmts(fn.Body.Stmts)
	b.declareLexical(fn.Body.Stmts)
	b.stmts(fn.Body.Stmts)
	b.popScope()
}

func (b *binder) arrow(arrow *js_ast.EArrow) {
	// Arrows do not get their own "arguments"
	b.pushScope(js_ast.ScopeFunctionBody)
	for _, arg := range arrow.Args {
		b.declareBinding(js_ast.SymbolHoisted, arg.Binding)
	}
	for _, arg := range arrow.Args {
		b.resolveBindingExprs(arg.Binding)
		if arg.Default != nil {
			b.expr(*arg.Default)
		}
	}
	b.hoistStmts(arrow.Body.Stmts)
	b.declareLexical(arrow.Body.Stmts)
	b.stmts(arrow.Body.Stmts)
	b.popScope()
}

func (b *binder) class(class *js_ast.Class) {
	if class.Extends != nil {
		b.expr(*class.Extends)
	}

	b.pushScope(js_ast.ScopeClassName)
	if class.Name != nil && class.Name.Ref != js_ast.InvalidRef {
		// The class name is visible inside the class body
		name := b.symbols[class.Name.Ref.InnerIndex].OriginalName
		b.scope.Members[name] = js_ast.ScopeMember{Loc: class.Name.Loc, Ref: class.Name.Ref}
	}

	for _, property := range class.Properties {
		if property.IsComputed {
			b.expr(property.Key)
		}
		if property.Value != nil {
			b.expr(*property.Value)
		}
		if property.Initializer != nil {
			b.expr(*property.Initializer)
		}
	}
	b.popScope()
}

func (b *binder) expr(expr js_ast.Expr) {
	switch e := expr.Data.(type) {
	case *js_ast.EIdentifier:
		if e.Ref == js_ast.InvalidRef {
			e.Ref = b.findSymbol(e.Name)
		}

	case *js_ast.EArray:
		for _, item := range e.Items {
			b.expr(item)
		}

	case *js_ast.EUnary:
		b.expr(e.Value)

	case *js_ast.EBinary:
		b.expr(e.Left)
		b.expr(e.Right)

	case *js_ast.ENew:
		b.expr(e.Target)
		for _, arg := range e.Args {
			b.expr(arg)
		}

	case *js_ast.ECall:
		b.expr(e.Target)
		for _, arg := range e.Args {
			b.expr(arg)
		}

	case *js_ast.EDot:
		b.expr(e.Target)

	case *js_ast.EIndex:
		b.expr(e.Target)
		b.expr(e.Index)

	case *js_ast.EArrow:
		b.arrow(e)

	case *js_ast.EFunction:
		// A function expression's name is only visible inside itself
		b.pushScope(js_ast.ScopeClassName)
		if e.Fn.Name != nil {
			if e.Fn.Name.Ref == js_ast.InvalidRef {
				e.Fn.Name.Ref = b.declare(js_ast.SymbolOther, e.Fn.NameText, *e.Fn.Name)
			}
		}
		b.fn(&e.Fn)
		b.popScope()

	case *js_ast.EClass:
		if e.Class.Name != nil && e.Class.Name.Ref == js_ast.InvalidRef {
			e.Class.Name.Ref = b.newSymbol(js_ast.SymbolClass, e.Class.NameText)
		}
		b.class(&e.Class)

	case *js_ast.EObject:
		for _, property := range e.Properties {
			if property.IsComputed {
				b.expr(property.Key)
			}
			if property.Value != nil {
				b.expr(*property.Value)
			}
			if property.Initializer != nil {
				b.expr(*property.Initializer)
			}
		}

	case *js_ast.ESpread:
		b.expr(e.Value)

	case *js_ast.ETemplate:
		if e.Tag != nil {
			b.expr(*e.Tag)
		}
		for _, part := range e.Parts {
			b.expr(part.Value)
		}

	case *js_ast.EAwait:
		b.expr(e.Value)

	case *js_ast.EYield:
		if e.Value != nil {
			b.expr(*e.Value)
		}

	case *js_ast.EIf:
		b.expr(e.Test)
		b.expr(e.Yes)
		b.expr(e.No)

	case *js_ast.EImportCall:
		b.expr(e.Expr)
	}
}
