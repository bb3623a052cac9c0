package js_ast

import (
	"github.com/CyberFlameGO/rspack/internal/logger"
)

// ExprEndLoc computes the location just past the end of an expression. Only
// the variants the dependency scanners take spans of are supported; other
// variants return the start location, which callers must treat as "no span".
func ExprEndLoc(expr Expr) logger.Loc {
	switch e := expr.Data.(type) {
	case *EIdentifier:
		return logger.Loc{Start: expr.Loc.Start + int32(len(e.Name))}
	case *EDot:
		return logger.Loc{Start: e.NameLoc.Start + int32(len(e.Name))}
	case *EIndex:
		return logger.Loc{Start: e.CloseBracketLoc.Start + 1}
	case *ECall:
		return logger.Loc{Start: e.CloseParenLoc.Start + 1}
	case *ENew:
		return logger.Loc{Start: e.CloseParenLoc.Start + 1}
	case *EImportCall:
		return logger.Loc{Start: e.CloseParenLoc.Start + 1}
	case *EString:
		return e.EndLoc
	case *ERegExp:
		return logger.Loc{Start: expr.Loc.Start + int32(len(e.Value))}
	case *EImportMeta:
		return logger.Loc{Start: expr.Loc.Start + int32(len("import.meta"))}
	case *EArray:
		return logger.Loc{Start: e.CloseBracketLoc.Start + 1}
	case *EObject:
		return logger.Loc{Start: e.CloseBraceLoc.Start + 1}
	case *ETemplate:
		return e.EndLoc
	}
	return expr.Loc
}

// RangeOfExpr is the span [lo, hi) an emitted dependency covers.
func RangeOfExpr(expr Expr) logger.Range {
	end := ExprEndLoc(expr)
	return logger.Range{Loc: expr.Loc, Len: end.Start - expr.Loc.Start}
}

// IsImportMetaURL tests for the exact member expression "import.meta.url",
// comparing structurally and ignoring source positions.
func IsImportMetaURL(expr Expr) bool {
	if dot, ok := expr.Data.(*EDot); ok && dot.Name == "url" {
		_, ok := dot.Target.Data.(*EImportMeta)
		return ok
	}
	if index, ok := expr.Data.(*EIndex); ok {
		if str, ok := index.Index.Data.(*EString); ok && str.Value == "url" {
			_, ok := index.Target.Data.(*EImportMeta)
			return ok
		}
	}
	return false
}

// IsIdentifierNamed matches an identifier expression by lexical name,
// regardless of binding.
func IsIdentifierNamed(expr Expr, name string) bool {
	id, ok := expr.Data.(*EIdentifier)
	return ok && id.Name == name
}

// StringLiteralValue unwraps a string literal argument, rejecting anything
// else (template literals with substitutions, concatenations, identifiers).
func StringLiteralValue(expr Expr) (string, bool) {
	switch e := expr.Data.(type) {
	case *EString:
		return e.Value, true
	case *ETemplate:
		if e.Tag == nil && len(e.Parts) == 0 {
			return e.Head, true
		}
	}
	return "", false
}
