package js_parser

// The parser turns a token stream into an AST. It is a single recursive
// descent pass. Symbol binding happens afterwards in a separate pass over the
// finished tree (see js_binder.go) so the dependency scanners see resolved
// references.
//
// Only enough of the language is covered to analyze real-world modules. The
// parser is forgiving rather than spec-complete: constructs it cannot
// represent precisely, like exotic arrow parameter lists, degrade to plain
// syntax errors instead of misparsing silently.

import (
	"github.com/CyberFlameGO/rspack/internal/js_ast"
	"github.com/CyberFlameGO/rspack/internal/js_lexer"
	"github.com/CyberFlameGO/rspack/internal/logger"
)

type parser struct {
	log    logger.Log
	source logger.Source
	lexer  js_lexer.Lexer

	// "in" operators are forbidden in the init clause of a "for" loop
	allowIn bool

	hasES6Imports bool
	hasES6Exports bool
}

// L is the operator precedence "level"
type L int

const (
	LLowest L = iota
	LComma
	LSpread
	LYield
	LAssign
	LConditional
	LNullishCoalescing
	LLogicalOr
	LLogicalAnd
	LBitwiseOr
	LBitwiseXor
	LBitwiseAnd
	LEquals
	LCompare
	LShift
	LAdd
	LMultiply
	LExponentiation
	LPrefix
	LPostfix
	LNew
	LCall
	LMember
)

// Parse converts the source into an AST with bound symbols. It returns
// ok == false if a syntax error was logged.
func Parse(log logger.Log, source logger.Source) (result js_ast.AST, ok bool) {
	ok = true
	defer func() {
		r := recover()
		if _, isLexerPanic := r.(js_lexer.LexerPanic); isLexerPanic {
			ok = false
		} else if r != nil {
			panic(r)
		}
	}()

	p := &parser{
		log:     log,
		source:  source,
		allowIn: true,
		lexer:   js_lexer.NewLexer(log, source),
	}

	hashbang := ""
	if p.lexer.Token == js_lexer.THashbang {
		hashbang = p.lexer.Identifier
		p.lexer.Next()
	}

	stmts := p.parseStmtsUpTo(js_lexer.TEndOfFile)

	directive := ""
	if len(stmts) > 0 {
		if s, isDirective := stmts[0].Data.(*js_ast.SDirective); isDirective {
			directive = s.Value
		}
	}

	result = js_ast.AST{
		Stmts:         stmts,
		Hashbang:      hashbang,
		Directive:     directive,
		HasES6Imports: p.hasES6Imports,
		HasES6Exports: p.hasES6Exports,
	}
	bind(&result, source.Index)
	return
}

func (p *parser) parseStmtsUpTo(end js_lexer.T) []js_ast.Stmt {
	stmts := []js_ast.Stmt{}
	isDirectivePrologue := true

	for p.lexer.Token != end {
		stmt := p.parseStmt()

		// Skip over empty statements
		if _, isEmpty := stmt.Data.(*js_ast.SEmpty); isEmpty {
			continue
		}

		// Track "use strict" style directives at the top of the file
		if isDirectivePrologue {
			isDirectivePrologue = false
			if expr, isExpr := stmt.Data.(*js_ast.SExpr); isExpr {
				if str, isString := expr.Value.Data.(*js_ast.EString); isString {
					stmt = js_ast.Stmt{Loc: stmt.Loc, Data: &js_ast.SDirective{Value: str.Value}}
					isDirectivePrologue = true
				}
			}
		}

		stmts = append(stmts, stmt)
	}

	return stmts
}

func (p *parser) parseStmt() js_ast.Stmt {
	loc := p.lexer.Loc()

	switch p.lexer.Token {
	case js_lexer.TSemicolon:
		p.lexer.Next()
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SEmpty{}}

	case js_lexer.TOpenBrace:
		p.lexer.Next()
		stmts := p.parseStmtsUpTo(js_lexer.TCloseBrace)
		p.lexer.Next()
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SBlock{Stmts: stmts}}

	case js_lexer.TDebugger:
		p.lexer.Next()
		p.lexer.ExpectOrInsertSemicolon()
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SDebugger{}}

	case js_lexer.TImport:
		return p.parseImportStmt(loc)

	case js_lexer.TExport:
		return p.parseExportStmt(loc)

	case js_lexer.TVar:
		p.lexer.Next()
		decls := p.parseDecls()
		p.lexer.ExpectOrInsertSemicolon()
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SLocal{Kind: js_ast.LocalVar, Decls: decls}}

	case js_lexer.TConst:
		p.lexer.Next()
		decls := p.parseDecls()
		p.lexer.ExpectOrInsertSemicolon()
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SLocal{Kind: js_ast.LocalConst, Decls: decls}}

	case js_lexer.TFunction:
		p.lexer.Next()
		return p.parseFnStmt(loc, false)

	case js_lexer.TClass:
		class := p.parseClass()
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SClass{Class: class}}

	case js_lexer.TIf:
		p.lexer.Next()
		p.lexer.Expect(js_lexer.TOpenParen)
		test := p.parseExpr(LLowest)
		p.lexer.Expect(js_lexer.TCloseParen)
		yes := p.parseStmt()
		var no *js_ast.Stmt
		if p.lexer.Token == js_lexer.TElse {
			p.lexer.Next()
			stmt := p.parseStmt()
			no = &stmt
		}
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SIf{Test: test, Yes: yes, No: no}}

	case js_lexer.TDo:
		p.lexer.Next()
		body := p.parseStmt()
		p.lexer.Expect(js_lexer.TWhile)
		p.lexer.Expect(js_lexer.TOpenParen)
		test := p.parseExpr(LLowest)
		p.lexer.Expect(js_lexer.TCloseParen)
		if p.lexer.Token == js_lexer.TSemicolon {
			p.lexer.Next()
		}
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SDoWhile{Body: body, Test: test}}

	case js_lexer.TWhile:
		p.lexer.Next()
		p.lexer.Expect(js_lexer.TOpenParen)
		test := p.parseExpr(LLowest)
		p.lexer.Expect(js_lexer.TCloseParen)
		body := p.parseStmt()
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SWhile{Test: test, Body: body}}

	case js_lexer.TWith:
		p.lexer.Next()
		p.lexer.Expect(js_lexer.TOpenParen)
		value := p.parseExpr(LLowest)
		p.lexer.Expect(js_lexer.TCloseParen)
		body := p.parseStmt()
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SWith{Value: value, Body: body}}

	case js_lexer.TSwitch:
		return p.parseSwitchStmt(loc)

	case js_lexer.TFor:
		return p.parseForStmt(loc)

	case js_lexer.TTry:
		return p.parseTryStmt(loc)

	case js_lexer.TReturn:
		p.lexer.Next()
		var value *js_ast.Expr
		if p.lexer.Token != js_lexer.TSemicolon && p.lexer.Token != js_lexer.TCloseBrace &&
			p.lexer.Token != js_lexer.TEndOfFile && !p.lexer.HasNewlineBefore {
			expr := p.parseExpr(LLowest)
			value = &expr
		}
		p.lexer.ExpectOrInsertSemicolon()
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SReturn{Value: value}}

	case js_lexer.TThrow:
		p.lexer.Next()
		if p.lexer.HasNewlineBefore {
			p.log.AddError(&p.source, loc, "Unexpected newline after \"throw\"")
			panic(js_lexer.LexerPanic{})
		}
		value := p.parseExpr(LLowest)
		p.lexer.ExpectOrInsertSemicolon()
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SThrow{Value: value}}

	case js_lexer.TBreak:
		p.lexer.Next()
		label := p.parseLabelName()
		p.lexer.ExpectOrInsertSemicolon()
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SBreak{Label: label}}

	case js_lexer.TContinue:
		p.lexer.Next()
		label := p.parseLabelName()
		p.lexer.ExpectOrInsertSemicolon()
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SContinue{Label: label}}

	default:
		if p.lexer.IsContextualKeyword("let") {
			// Distinguish "let x" from the identifier expression "let"
			raw := p.lexer.Raw()
			p.lexer.Next()
			if p.lexer.Token == js_lexer.TIdentifier || p.lexer.Token == js_lexer.TOpenBracket ||
				p.lexer.Token == js_lexer.TOpenBrace {
				decls := p.parseDecls()
				p.lexer.ExpectOrInsertSemicolon()
				return js_ast.Stmt{Loc: loc, Data: &js_ast.SLocal{Kind: js_ast.LocalLet, Decls: decls}}
			}
			expr := p.parseSuffix(js_ast.Expr{Loc: loc, Data: &js_ast.EIdentifier{
				Name: raw, Ref: js_ast.InvalidRef}}, LLowest)
			p.lexer.ExpectOrInsertSemicolon()
			return js_ast.Stmt{Loc: loc, Data: &js_ast.SExpr{Value: expr}}
		}

		if p.lexer.IsContextualKeyword("async") {
			// "async function foo() {}"
			asyncRange := p.lexer.Range()
			p.lexer.Next()
			if p.lexer.Token == js_lexer.TFunction && !p.lexer.HasNewlineBefore {
				p.lexer.Next()
				return p.parseFnStmt(loc, true)
			}
			expr := p.parseSuffix(p.parseAsyncPrefixExpr(asyncRange), LLowest)
			p.lexer.ExpectOrInsertSemicolon()
			return js_ast.Stmt{Loc: loc, Data: &js_ast.SExpr{Value: expr}}
		}

		// Labeled statements
		if p.lexer.Token == js_lexer.TIdentifier {
			nameLoc := p.lexer.Loc()
			contents := p.source.Contents
			if int(p.lexer.EndLoc().Start) < len(contents) && contents[p.lexer.EndLoc().Start] == ':' {
				p.lexer.Next()
				p.lexer.Expect(js_lexer.TColon)
				stmt := p.parseStmt()
				return js_ast.Stmt{Loc: loc, Data: &js_ast.SLabel{
					Name: js_ast.LocRef{Loc: nameLoc, Ref: js_ast.InvalidRef},
					Stmt: stmt,
				}}
			}
		}

		expr := p.parseExpr(LLowest)
		p.lexer.ExpectOrInsertSemicolon()
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SExpr{Value: expr}}
	}
}

func (p *parser) parseLabelName() *js_ast.LocRef {
	if p.lexer.Token != js_lexer.TIdentifier || p.lexer.HasNewlineBefore {
		return nil
	}
	name := js_ast.LocRef{Loc: p.lexer.Loc(), Ref: js_ast.InvalidRef}
	p.lexer.Next()
	return &name
}

func (p *parser) parseFnStmt(loc logger.Loc, isAsync bool) js_ast.Stmt {
	isGenerator := p.lexer.Token == js_lexer.TAsterisk
	if isGenerator {
		p.lexer.Next()
	}
	var name *js_ast.LocRef
	nameText := ""
	if p.lexer.Token == js_lexer.TIdentifier {
		name = &js_ast.LocRef{Loc: p.lexer.Loc(), Ref: js_ast.InvalidRef}
		nameText = p.lexer.Identifier
		p.lexer.Next()
	}
	fn := p.parseFn(name, isAsync, isGenerator)
	fn.NameText = nameText
	return js_ast.Stmt{Loc: loc, Data: &js_ast.SFunction{Fn: fn}}
}

func (p *parser) parseFn(name *js_ast.LocRef, isAsync bool, isGenerator bool) js_ast.Fn {
	p.lexer.Expect(js_lexer.TOpenParen)
	args := []js_ast.Arg{}
	hasRestArg := false

	for p.lexer.Token != js_lexer.TCloseParen {
		if p.lexer.Token == js_lexer.TDotDotDot {
			p.lexer.Next()
			hasRestArg = true
		}
		binding := p.parseBinding()
		var defaultValue *js_ast.Expr
		if p.lexer.Token == js_lexer.TEquals {
			p.lexer.Next()
			value := p.parseExpr(LComma)
			defaultValue = &value
		}
		args = append(args, js_ast.Arg{Binding: binding, Default: defaultValue})
		if p.lexer.Token != js_lexer.TComma {
			break
		}
		p.lexer.Next()
	}
	p.lexer.Expect(js_lexer.TCloseParen)

	bodyLoc := p.lexer.Loc()
	p.lexer.Expect(js_lexer.TOpenBrace)
	stmts := p.parseStmtsUpTo(js_lexer.TCloseBrace)
	p.lexer.Next()

	return js_ast.Fn{
		Name:        name,
		Args:        args,
		HasRestArg:  hasRestArg,
		IsAsync:     isAsync,
		IsGenerator: isGenerator,
		Body:        js_ast.FnBody{Loc: bodyLoc, Stmts: stmts},
	}
}

func (p *parser) parseClass() js_ast.Class {
	p.lexer.Expect(js_lexer.TClass)

	var name *js_ast.LocRef
	nameText := ""
	if p.lexer.Token == js_lexer.TIdentifier {
		name = &js_ast.LocRef{Loc: p.lexer.Loc(), Ref: js_ast.InvalidRef}
		nameText = p.lexer.Identifier
		p.lexer.Next()
	}

	var extends *js_ast.Expr
	if p.lexer.Token == js_lexer.TExtends {
		p.lexer.Next()
		value := p.parseExpr(LNew)
		extends = &value
	}

	bodyLoc := p.lexer.Loc()
	p.lexer.Expect(js_lexer.TOpenBrace)
	properties := []js_ast.Property{}

	for p.lexer.Token != js_lexer.TCloseBrace {
		if p.lexer.Token == js_lexer.TSemicolon {
			p.lexer.Next()
			continue
		}
		properties = append(properties, p.parseClassProperty())
	}
	p.lexer.Next()

	return js_ast.Class{Name: name, NameText: nameText, Extends: extends, BodyLoc: bodyLoc, Properties: properties}
}

func (p *parser) parseClassProperty() js_ast.Property {
	kind := js_ast.PropertyNormal
	isAsync := false
	isGenerator := false

	// "static", "async", "get", and "set" are only modifiers when followed by
	// another property name
	for p.lexer.Token == js_lexer.TIdentifier && !p.isPropertyNameEnd() {
		switch p.lexer.Identifier {
		case "static", "async", "get", "set":
			modifier := p.lexer.Identifier
			p.lexer.Next()
			if p.isPropertyNameStart() || p.lexer.Token == js_lexer.TAsterisk {
				switch modifier {
				case "async":
					isAsync = true
				case "get":
					kind = js_ast.PropertyGet
				case "set":
					kind = js_ast.PropertySet
				}
				continue
			}
			// The modifier itself was the property name
			return p.finishClassProperty(kind, isAsync, isGenerator, js_ast.Expr{
				Loc:  logger.Loc{Start: p.lexer.Loc().Start - int32(len(modifier))},
				Data: &js_ast.EString{Value: modifier},
			}, false)
		}
		break
	}

	if p.lexer.Token == js_lexer.TAsterisk {
		isGenerator = true
		p.lexer.Next()
	}

	key, isComputed := p.parsePropertyKey()
	return p.finishClassProperty(kind, isAsync, isGenerator, key, isComputed)
}

func (p *parser) finishClassProperty(kind js_ast.PropertyKind, isAsync bool, isGenerator bool,
	key js_ast.Expr, isComputed bool) js_ast.Property {
	if p.lexer.Token == js_lexer.TOpenParen {
		fn := p.parseFn(nil, isAsync, isGenerator)
		value := js_ast.Expr{Loc: key.Loc, Data: &js_ast.EFunction{Fn: fn}}
		return js_ast.Property{Kind: kind, Key: key, Value: &value, IsComputed: isComputed, IsMethod: true}
	}

	// Class field
	var initializer *js_ast.Expr
	if p.lexer.Token == js_lexer.TEquals {
		p.lexer.Next()
		value := p.parseExpr(LComma)
		initializer = &value
	}
	p.lexer.ExpectOrInsertSemicolon()
	return js_ast.Property{Kind: kind, Key: key, Initializer: initializer, IsComputed: isComputed}
}

func (p *parser) isPropertyNameStart() bool {
	switch p.lexer.Token {
	case js_lexer.TIdentifier, js_lexer.TStringLiteral, js_lexer.TNumericLiteral,
		js_lexer.TOpenBracket, js_lexer.TPrivateIdentifier:
		return true
	}
	return p.lexer.IsIdentifierOrKeyword()
}

func (p *parser) isPropertyNameEnd() bool {
	switch p.lexer.Token {
	case js_lexer.TOpenParen, js_lexer.TEquals, js_lexer.TSemicolon, js_lexer.TCloseBrace,
		js_lexer.TColon, js_lexer.TComma:
		return true
	}
	return false
}

func (p *parser) parsePropertyKey() (js_ast.Expr, bool) {
	loc := p.lexer.Loc()

	switch p.lexer.Token {
	case js_lexer.TStringLiteral:
		value := p.lexer.StringLiteral
		endLoc := p.lexer.EndLoc()
		p.lexer.Next()
		return js_ast.Expr{Loc: loc, Data: &js_ast.EString{Value: value, EndLoc: endLoc}}, false

	case js_lexer.TNumericLiteral:
		value := p.lexer.Number
		p.lexer.Next()
		return js_ast.Expr{Loc: loc, Data: &js_ast.ENumber{Value: value}}, false

	case js_lexer.TOpenBracket:
		p.lexer.Next()
		expr := p.parseExpr(LComma)
		p.lexer.Expect(js_lexer.TCloseBracket)
		return expr, true

	case js_lexer.TPrivateIdentifier:
		name := p.lexer.Identifier
		p.lexer.Next()
		return js_ast.Expr{Loc: loc, Data: &js_ast.EString{Value: name}}, false

	default:
		if !p.lexer.IsIdentifierOrKeyword() {
			p.lexer.Expected(js_lexer.TIdentifier)
		}
		name := p.lexer.Raw()
		p.lexer.Next()
		return js_ast.Expr{Loc: loc, Data: &js_ast.EString{Value: name}}, false
	}
}

func (p *parser) parseDecls() []js_ast.Decl {
	decls := []js_ast.Decl{}

	for {
		binding := p.parseBinding()
		var value *js_ast.Expr
		if p.lexer.Token == js_lexer.TEquals {
			p.lexer.Next()
			expr := p.parseExpr(LComma)
			value = &expr
		}
		decls = append(decls, js_ast.Decl{Binding: binding, Value: value})
		if p.lexer.Token != js_lexer.TComma {
			break
		}
		p.lexer.Next()
	}

	return decls
}

func (p *parser) parseBinding() js_ast.Binding {
	loc := p.lexer.Loc()

	switch p.lexer.Token {
	case js_lexer.TIdentifier:
		name := p.lexer.Identifier
		p.lexer.Next()
		return js_ast.Binding{Loc: loc, Data: &js_ast.BIdentifier{Name: name, Ref: js_ast.InvalidRef}}

	case js_lexer.TOpenBracket:
		p.lexer.Next()
		items := []js_ast.ArrayBinding{}
		hasSpread := false
		for p.lexer.Token != js_lexer.TCloseBracket {
			if p.lexer.Token == js_lexer.TComma {
				// An elision
				items = append(items, js_ast.ArrayBinding{
					Binding: js_ast.Binding{Loc: p.lexer.Loc(), Data: &js_ast.BMissing{}},
				})
				p.lexer.Next()
				continue
			}
			if p.lexer.Token == js_lexer.TDotDotDot {
				p.lexer.Next()
				hasSpread = true
			}
			binding := p.parseBinding()
			var defaultValue *js_ast.Expr
			if p.lexer.Token == js_lexer.TEquals {
				p.lexer.Next()
				value := p.parseExpr(LComma)
				defaultValue = &value
			}
			items = append(items, js_ast.ArrayBinding{Binding: binding, DefaultValue: defaultValue})
			if p.lexer.Token != js_lexer.TComma {
				break
			}
			p.lexer.Next()
		}
		p.lexer.Expect(js_lexer.TCloseBracket)
		return js_ast.Binding{Loc: loc, Data: &js_ast.BArray{Items: items, HasSpread: hasSpread}}

	case js_lexer.TOpenBrace:
		p.lexer.Next()
		properties := []js_ast.PropertyBinding{}
		for p.lexer.Token != js_lexer.TCloseBrace {
			property := p.parsePropertyBinding()
			properties = append(properties, property)
			if p.lexer.Token != js_lexer.TComma {
				break
			}
			p.lexer.Next()
		}
		p.lexer.Expect(js_lexer.TCloseBrace)
		return js_ast.Binding{Loc: loc, Data: &js_ast.BObject{Properties: properties}}
	}

	p.lexer.Expected(js_lexer.TIdentifier)
	return js_ast.Binding{}
}

func (p *parser) parsePropertyBinding() js_ast.PropertyBinding {
	if p.lexer.Token == js_lexer.TDotDotDot {
		p.lexer.Next()
		value := p.parseBinding()
		return js_ast.PropertyBinding{IsSpread: true, Value: value}
	}

	key, isComputed := p.parsePropertyKey()

	if !isComputed && p.lexer.Token != js_lexer.TColon {
		// Shorthand property: "{a}" or "{a = 1}"
		str, _ := key.Data.(*js_ast.EString)
		value := js_ast.Binding{Loc: key.Loc, Data: &js_ast.BIdentifier{
			Name: str.Value, Ref: js_ast.InvalidRef}}
		var defaultValue *js_ast.Expr
		if p.lexer.Token == js_lexer.TEquals {
			p.lexer.Next()
			expr := p.parseExpr(LComma)
			defaultValue = &expr
		}
		return js_ast.PropertyBinding{Key: key, Value: value, DefaultValue: defaultValue}
	}

	p.lexer.Expect(js_lexer.TColon)
	value := p.parseBinding()
	var defaultValue *js_ast.Expr
	if p.lexer.Token == js_lexer.TEquals {
		p.lexer.Next()
		expr := p.parseExpr(LComma)
		defaultValue = &expr
	}
	return js_ast.PropertyBinding{Key: key, Value: value, DefaultValue: defaultValue, IsComputed: isComputed}
}

func (p *parser) parseSwitchStmt(loc logger.Loc) js_ast.Stmt {
	p.lexer.Expect(js_lexer.TSwitch)
	p.lexer.Expect(js_lexer.TOpenParen)
	test := p.parseExpr(LLowest)
	p.lexer.Expect(js_lexer.TCloseParen)
	p.lexer.Expect(js_lexer.TOpenBrace)

	cases := []js_ast.Case{}
	for p.lexer.Token != js_lexer.TCloseBrace {
		var value *js_ast.Expr
		if p.lexer.Token == js_lexer.TDefault {
			p.lexer.Next()
		} else {
			p.lexer.Expect(js_lexer.TCase)
			expr := p.parseExpr(LLowest)
			value = &expr
		}
		p.lexer.Expect(js_lexer.TColon)

		body := []js_ast.Stmt{}
		for p.lexer.Token != js_lexer.TCloseBrace && p.lexer.Token != js_lexer.TCase &&
			p.lexer.Token != js_lexer.TDefault {
			body = append(body, p.parseStmt())
		}
		cases = append(cases, js_ast.Case{Value: value, Body: body})
	}
	p.lexer.Next()

	return js_ast.Stmt{Loc: loc, Data: &js_ast.SSwitch{Test: test, Cases: cases}}
}

func (p *parser) parseTryStmt(loc logger.Loc) js_ast.Stmt {
	p.lexer.Expect(js_lexer.TTry)
	p.lexer.Expect(js_lexer.TOpenBrace)
	body := p.parseStmtsUpTo(js_lexer.TCloseBrace)
	p.lexer.Next()

	var catch *js_ast.Catch
	var finally *js_ast.Finally

	if p.lexer.Token == js_lexer.TCatch {
		catchLoc := p.lexer.Loc()
		p.lexer.Next()
		var binding *js_ast.Binding
		if p.lexer.Token == js_lexer.TOpenParen {
			p.lexer.Next()
			value := p.parseBinding()
			binding = &value
			p.lexer.Expect(js_lexer.TCloseParen)
		}
		p.lexer.Expect(js_lexer.TOpenBrace)
		stmts := p.parseStmtsUpTo(js_lexer.TCloseBrace)
		p.lexer.Next()
		catch = &js_ast.Catch{Loc: catchLoc, Binding: binding, Body: stmts}
	}

	if p.lexer.Token == js_lexer.TFinally {
		finallyLoc := p.lexer.Loc()
		p.lexer.Next()
		p.lexer.Expect(js_lexer.TOpenBrace)
		stmts := p.parseStmtsUpTo(js_lexer.TCloseBrace)
		p.lexer.Next()
		finally = &js_ast.Finally{Loc: finallyLoc, Stmts: stmts}
	}

	if catch == nil && finally == nil {
		p.lexer.Expected(js_lexer.TCatch)
	}

	return js_ast.Stmt{Loc: loc, Data: &js_ast.STry{Body: body, Catch: catch, Finally: finally}}
}

func (p *parser) parseForStmt(loc logger.Loc) js_ast.Stmt {
	p.lexer.Expect(js_lexer.TFor)

	isAwait := p.lexer.IsContextualKeyword("await")
	if isAwait {
		p.lexer.Next()
	}

	p.lexer.Expect(js_lexer.TOpenParen)

	var init *js_ast.Stmt

	// "in" is forbidden inside the init clause so "for (a in b)" is
	// unambiguous
	p.allowIn = false

	switch p.lexer.Token {
	case js_lexer.TSemicolon:

	case js_lexer.TVar, js_lexer.TConst:
		kind := js_ast.LocalVar
		if p.lexer.Token == js_lexer.TConst {
			kind = js_ast.LocalConst
		}
		declLoc := p.lexer.Loc()
		p.lexer.Next()
		decls := p.parseDecls()
		init = &js_ast.Stmt{Loc: declLoc, Data: &js_ast.SLocal{Kind: kind, Decls: decls}}

	default:
		if p.lexer.IsContextualKeyword("let") {
			declLoc := p.lexer.Loc()
			p.lexer.Next()
			decls := p.parseDecls()
			init = &js_ast.Stmt{Loc: declLoc, Data: &js_ast.SLocal{Kind: js_ast.LocalLet, Decls: decls}}
		} else {
			exprLoc := p.lexer.Loc()
			expr := p.parseExpr(LLowest)
			init = &js_ast.Stmt{Loc: exprLoc, Data: &js_ast.SExpr{Value: expr}}
		}
	}

	p.allowIn = true

	if p.lexer.Token == js_lexer.TIn {
		p.lexer.Next()
		value := p.parseExpr(LLowest)
		p.lexer.Expect(js_lexer.TCloseParen)
		body := p.parseStmt()
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SForIn{Init: *init, Value: value, Body: body}}
	}

	if p.lexer.IsContextualKeyword("of") {
		p.lexer.Next()
		value := p.parseExpr(LComma)
		p.lexer.Expect(js_lexer.TCloseParen)
		body := p.parseStmt()
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SForOf{Init: *init, Value: value, Body: body, IsAwait: isAwait}}
	}

	p.lexer.Expect(js_lexer.TSemicolon)
	var test *js_ast.Expr
	if p.lexer.Token != js_lexer.TSemicolon {
		expr := p.parseExpr(LLowest)
		test = &expr
	}
	p.lexer.Expect(js_lexer.TSemicolon)
	var update *js_ast.Expr
	if p.lexer.Token != js_lexer.TCloseParen {
		expr := p.parseExpr(LLowest)
		update = &expr
	}
	p.lexer.Expect(js_lexer.TCloseParen)
	body := p.parseStmt()
	return js_ast.Stmt{Loc: loc, Data: &js_ast.SFor{Init: init, Test: test, Update: update, Body: body}}
}
