package js_scanner

import (
	"github.com/CyberFlameGO/rspack/internal/ast"
	"github.com/CyberFlameGO/rspack/internal/js_ast"
	"github.com/CyberFlameGO/rspack/internal/logger"
)

// The request detectors run inside the reference walk. Each detector either
// claims the expression (returns true, after visiting whatever subtrees
// still need scanning) or leaves it to the generic traversal.

func (r *refScanner) detectImportCall(expr js_ast.Expr, e *js_ast.EImportCall) {
	span := logger.RangeOfOffsets(uint32(expr.Loc.Start), uint32(e.CloseParenLoc.Start)+1)
	magic := parseMagicComments(e.LeadingInteriorComments)
	if magic.Ignore {
		return
	}

	if request, ok := js_ast.StringLiteralValue(e.Expr); ok {
		r.s.addDependency(NewImportDependency(request, span, magic.groupOptions()))
		return
	}

	// A template with a static prefix becomes a directory context; the
	// runtime part selects the element.
	if template, ok := e.Expr.Data.(*js_ast.ETemplate); ok && template.Tag == nil && template.Head != "" {
		options := &ast.ContextOptions{
			Mode:         magic.Mode,
			Recursive:    true,
			Category:     ast.DependencyCategoryEsm,
			Request:      template.Head,
			ChunkName:    magic.ChunkName,
			GroupOptions: magic.groupOptions(),
		}
		r.s.addDependency(NewImportContextDependency(options, span))
		return
	}

	r.s.log.AddRangeWarning(&r.s.source, span,
		"The argument to import() is fully dynamic and cannot be analyzed")
}

func (r *refScanner) detectNew(expr js_ast.Expr, e *js_ast.ENew) bool {
	if r.detectNewURL(e) {
		return true
	}
	return r.detectNewWorker(e)
}

// new URL("./asset", import.meta.url): the callee must be the global URL,
// the arguments must be spread-free, the first a string literal and the
// second exactly import.meta.url.
func (r *refScanner) detectNewURL(e *js_ast.ENew) bool {
	id, ok := e.Target.Data.(*js_ast.EIdentifier)
	if !ok || id.Name != "URL" || !r.s.isUnbound(id.Ref) {
		return false
	}
	if len(e.Args) < 2 || e.HasSpread {
		return false
	}
	request, isString := js_ast.StringLiteralValue(e.Args[0])
	if !isString || !js_ast.IsImportMetaURL(e.Args[1]) {
		return false
	}

	// The span covers both arguments so the rewrite can replace them together
	span := logger.RangeOfOffsets(
		uint32(e.Args[0].Loc.Start),
		uint32(js_ast.ExprEndLoc(e.Args[1]).Start))
	r.s.addDependency(NewURLDependency(request, span))
	return true
}

func (r *refScanner) detectNewWorker(e *js_ast.ENew) bool {
	if !r.s.workerMatcher.MatchNewWorker(e.Target) || len(e.Args) == 0 || e.HasSpread {
		return false
	}

	request, span, ok := workerRequest(e.Args[0])
	if !ok {
		return false
	}

	argsSpan := logger.RangeOfOffsets(
		uint32(e.Args[0].Loc.Start),
		uint32(js_ast.ExprEndLoc(e.Args[len(e.Args)-1]).Start))
	r.s.addDependency(NewWorkerDependency(request, span, workerGroupOptions(e.Args), argsSpan))

	// The worker options object can still reference imported bindings
	for _, arg := range e.Args[1:] {
		r.value(arg)
	}
	return true
}

// workerRequest extracts the module request from a worker constructor's
// first argument: either a string literal or a nested
// new URL("./w", import.meta.url).
func workerRequest(arg js_ast.Expr) (string, logger.Range, bool) {
	if request, ok := js_ast.StringLiteralValue(arg); ok {
		return request, js_ast.RangeOfExpr(arg), true
	}
	if nested, ok := arg.Data.(*js_ast.ENew); ok {
		if id, isID := nested.Target.Data.(*js_ast.EIdentifier); isID && id.Name == "URL" &&
			len(nested.Args) >= 2 && !nested.HasSpread && js_ast.IsImportMetaURL(nested.Args[1]) {
			if request, isString := js_ast.StringLiteralValue(nested.Args[0]); isString {
				return request, js_ast.RangeOfExpr(nested.Args[0]), true
			}
		}
	}
	return "", logger.Range{}, false
}

// workerGroupOptions reads `{ name: "..." }` from the worker options object.
func workerGroupOptions(args []js_ast.Expr) *ast.ChunkGroupOptions {
	if len(args) < 2 {
		return nil
	}
	object, ok := args[1].Data.(*js_ast.EObject)
	if !ok {
		return nil
	}
	for _, property := range object.Properties {
		if property.IsComputed || property.Value == nil {
			continue
		}
		if key, isKey := property.Key.Data.(*js_ast.EString); isKey && key.Value == "name" {
			if name, isString := js_ast.StringLiteralValue(*property.Value); isString {
				return &ast.ChunkGroupOptions{Name: name}
			}
		}
	}
	return nil
}

func (r *refScanner) detectCall(expr js_ast.Expr, e *js_ast.ECall) bool {
	span := logger.RangeOfOffsets(uint32(expr.Loc.Start), uint32(e.CloseParenLoc.Start)+1)

	// require("m"): only when "require" resolves to nothing declared in the
	// module, so a local binding named require disables the detection
	if id, ok := e.Target.Data.(*js_ast.EIdentifier); ok && id.Name == "require" && r.s.isUnbound(id.Ref) {
		return r.detectRequireCall(e, span)
	}

	if dot, ok := e.Target.Data.(*js_ast.EDot); ok {
		if id, isID := dot.Target.Data.(*js_ast.EIdentifier); isID && id.Name == "require" && r.s.isUnbound(id.Ref) {
			switch dot.Name {
			case "resolve":
				return r.detectRequireResolve(e, span)
			case "context":
				return r.detectRequireContext(e, span)
			}
		}

		if kind, isHot := hotHookKind(dot, r.s); isHot {
			r.detectHotCall(e, kind)
			return true
		}
	}

	return false
}

func (r *refScanner) detectRequireCall(e *js_ast.ECall, span logger.Range) bool {
	if len(e.Args) != 1 || e.HasSpread {
		return false
	}
	optional := r.tryDepth > 0

	if request, ok := js_ast.StringLiteralValue(e.Args[0]); ok {
		r.s.addDependency(NewCommonJsRequireDependency(request, span, optional))
		r.s.markCommonJSRequest()
		return true
	}

	if template, ok := e.Args[0].Data.(*js_ast.ETemplate); ok && template.Tag == nil && template.Head != "" {
		options := &ast.ContextOptions{
			Mode:      ast.ContextModeSync,
			Recursive: true,
			Category:  ast.DependencyCategoryCommonJS,
			Request:   template.Head,
		}
		r.s.addDependency(NewCommonJsRequireContextDependency(options, span, optional))
		r.s.markCommonJSRequest()
		r.value(e.Args[0])
		return true
	}

	return false
}

func (r *refScanner) detectRequireResolve(e *js_ast.ECall, span logger.Range) bool {
	if len(e.Args) != 1 || e.HasSpread {
		return false
	}
	request, ok := js_ast.StringLiteralValue(e.Args[0])
	if !ok {
		return false
	}
	r.s.addDependency(NewRequireResolveDependency(request, span, r.tryDepth > 0))
	r.s.markCommonJSRequest()
	return true
}

// require.context(dir, recursive?, regExp?, mode?)
func (r *refScanner) detectRequireContext(e *js_ast.ECall, span logger.Range) bool {
	if len(e.Args) == 0 || len(e.Args) > 4 || e.HasSpread {
		return false
	}
	directory, ok := js_ast.StringLiteralValue(e.Args[0])
	if !ok {
		return false
	}

	options := &ast.ContextOptions{
		Mode:      ast.ContextModeSync,
		Recursive: true,
		Category:  ast.DependencyCategoryCommonJS,
		Request:   directory,
	}
	if len(e.Args) > 1 {
		if recursive, isBool := e.Args[1].Data.(*js_ast.EBoolean); isBool {
			options.Recursive = recursive.Value
		}
	}
	if len(e.Args) > 2 {
		if literal, isRegExp := e.Args[2].Data.(*js_ast.ERegExp); isRegExp {
			options.RegExp = parseRegExpLiteral(literal.Value)
		}
	}
	if len(e.Args) > 3 {
		if mode, isString := js_ast.StringLiteralValue(e.Args[3]); isString {
			if parsed, err := ast.ParseContextMode(mode); err == nil {
				options.Mode = parsed
			}
		}
	}

	r.s.addDependency(NewRequireContextDependency(options, span))
	r.s.markCommonJSRequest()
	return true
}

// hotHookKind recognizes the two HMR surfaces: module.hot.<hook> with an
// unbound "module", and import.meta.webpackHot.<hook>.
func hotHookKind(dot *js_ast.EDot, s *Scanner) (ast.DependencyType, bool) {
	if dot.Name != "accept" && dot.Name != "decline" {
		return ast.DependencyTypeUnknown, false
	}

	if inner, ok := dot.Target.Data.(*js_ast.EDot); ok {
		if id, isID := inner.Target.Data.(*js_ast.EIdentifier); isID && id.Name == "module" &&
			inner.Name == "hot" && s.isUnbound(id.Ref) {
			if dot.Name == "accept" {
				return ast.DependencyTypeModuleHotAccept, true
			}
			return ast.DependencyTypeModuleHotDecline, true
		}
		if _, isMeta := inner.Target.Data.(*js_ast.EImportMeta); isMeta && inner.Name == "webpackHot" {
			if dot.Name == "accept" {
				return ast.DependencyTypeImportMetaHotAccept, true
			}
			return ast.DependencyTypeImportMetaHotDecline, true
		}
	}

	return ast.DependencyTypeUnknown, false
}

// detectHotCall emits one weak dependency per literal request. An accept
// with no requests marks the module as self-accepting. Callback arguments
// are still scanned for imported-binding references.
func (r *refScanner) detectHotCall(e *js_ast.ECall, kind ast.DependencyType) {
	var requests []js_ast.Expr
	rest := e.Args

	if len(e.Args) > 0 {
		switch arg := e.Args[0].Data.(type) {
		case *js_ast.EString, *js_ast.ETemplate:
			requests = e.Args[:1]
			rest = e.Args[1:]
		case *js_ast.EArray:
			requests = arg.Items
			rest = e.Args[1:]
		}
	}

	count := 0
	for _, request := range requests {
		if value, ok := js_ast.StringLiteralValue(request); ok {
			span := js_ast.RangeOfExpr(request)
			switch kind {
			case ast.DependencyTypeModuleHotAccept:
				r.s.addDependency(NewModuleHotAcceptDependency(value, span))
			case ast.DependencyTypeModuleHotDecline:
				r.s.addDependency(NewModuleHotDeclineDependency(value, span))
			case ast.DependencyTypeImportMetaHotAccept:
				r.s.addDependency(NewImportMetaHotAcceptDependency(value, span))
			case ast.DependencyTypeImportMetaHotDecline:
				r.s.addDependency(NewImportMetaHotDeclineDependency(value, span))
			}
			count++
		}
	}

	isAccept := kind == ast.DependencyTypeModuleHotAccept || kind == ast.DependencyTypeImportMetaHotAccept
	if count == 0 && isAccept {
		r.s.selfAccepting = true
	}

	for _, arg := range rest {
		r.value(arg)
	}
}
