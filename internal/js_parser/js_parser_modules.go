package js_parser

import (
	"github.com/CyberFlameGO/rspack/internal/js_ast"
	"github.com/CyberFlameGO/rspack/internal/js_lexer"
	"github.com/CyberFlameGO/rspack/internal/logger"
)

func (p *parser) parseImportStmt(loc logger.Loc) js_ast.Stmt {
	p.lexer.Next()

	switch p.lexer.Token {
	case js_lexer.TOpenParen, js_lexer.TDot:
		// "import('path')" and "import.meta" are expressions
		expr := p.parseSuffix(p.parseImportExpr(loc), LLowest)
		p.lexer.ExpectOrInsertSemicolon()
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SExpr{Value: expr}}

	case js_lexer.TStringLiteral:
		// "import 'path'"
		p.hasES6Imports = true
		path, pathText := p.parsePath()
		endLoc := p.statementEndLoc(logger.Loc{Start: path.End()})
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SImport{Path: path, PathText: pathText, EndLoc: endLoc}}
	}

	p.hasES6Imports = true
	stmt := js_ast.SImport{StarNameRef: js_ast.InvalidRef}

	if p.lexer.Token == js_lexer.TIdentifier {
		// "import defaultItem from 'path'"
		stmt.DefaultName = &js_ast.LocRef{Loc: p.lexer.Loc(), Ref: js_ast.InvalidRef}
		stmt.DefaultNameText = p.lexer.Identifier
		p.lexer.Next()
		if p.lexer.Token == js_lexer.TComma {
			p.lexer.Next()
		} else {
			p.lexer.ExpectContextualKeyword("from")
			path, pathText := p.parsePath()
			stmt.Path = path
			stmt.PathText = pathText
			stmt.EndLoc = p.statementEndLoc(logger.Loc{Start: path.End()})
			return js_ast.Stmt{Loc: loc, Data: &stmt}
		}
	}

	switch p.lexer.Token {
	case js_lexer.TAsterisk:
		// "import * as ns from 'path'"
		p.lexer.Next()
		p.lexer.ExpectContextualKeyword("as")
		starLoc := p.lexer.Loc()
		stmt.StarNameLoc = &starLoc
		stmt.StarName = p.lexer.Identifier
		p.lexer.Expect(js_lexer.TIdentifier)

	case js_lexer.TOpenBrace:
		// "import {item1, item2} from 'path'"
		items := p.parseImportClause()
		stmt.Items = &items

	default:
		p.lexer.Unexpected()
	}

	p.lexer.ExpectContextualKeyword("from")
	path, pathText := p.parsePath()
	stmt.Path = path
	stmt.PathText = pathText
	stmt.EndLoc = p.statementEndLoc(logger.Loc{Start: path.End()})
	return js_ast.Stmt{Loc: loc, Data: &stmt}
}

func (p *parser) parseExportStmt(loc logger.Loc) js_ast.Stmt {
	p.hasES6Exports = true
	p.lexer.Next()

	switch p.lexer.Token {
	case js_lexer.TAsterisk:
		// "export * from 'path'" or "export * as ns from 'path'"
		p.lexer.Next()
		var alias *js_ast.ExportStarAlias
		if p.lexer.IsContextualKeyword("as") {
			p.lexer.Next()
			alias = &js_ast.ExportStarAlias{Loc: p.lexer.Loc(), Name: p.moduleExportName()}
		}
		p.lexer.ExpectContextualKeyword("from")
		path, pathText := p.parsePath()
		endLoc := p.statementEndLoc(logger.Loc{Start: path.End()})
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SExportStar{
			Alias: alias, Path: path, PathText: pathText, EndLoc: endLoc}}

	case js_lexer.TOpenBrace:
		// "export {a, b as c}" with an optional "from 'path'"
		items, closeBraceEndLoc := p.parseExportClause()
		if p.lexer.IsContextualKeyword("from") {
			p.lexer.Next()
			path, pathText := p.parsePath()
			endLoc := p.statementEndLoc(logger.Loc{Start: path.End()})
			return js_ast.Stmt{Loc: loc, Data: &js_ast.SExportFrom{
				Items: items, Path: path, PathText: pathText, EndLoc: endLoc}}
		}
		endLoc := p.statementEndLoc(closeBraceEndLoc)
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SExportClause{Items: items, EndLoc: endLoc}}

	case js_lexer.TDefault:
		defaultLoc := p.lexer.Loc()
		p.lexer.Next()
		defaultName := js_ast.LocRef{Loc: defaultLoc, Ref: js_ast.InvalidRef}

		if p.lexer.Token == js_lexer.TFunction {
			stmtLoc := p.lexer.Loc()
			p.lexer.Next()
			value := p.parseFnStmt(stmtLoc, false)
			return js_ast.Stmt{Loc: loc, Data: &js_ast.SExportDefault{DefaultName: defaultName, Value: value}}
		}

		if p.lexer.IsContextualKeyword("async") {
			asyncLoc := p.lexer.Loc()
			p.lexer.Next()
			if p.lexer.Token == js_lexer.TFunction && !p.lexer.HasNewlineBefore {
				p.lexer.Next()
				value := p.parseFnStmt(asyncLoc, true)
				return js_ast.Stmt{Loc: loc, Data: &js_ast.SExportDefault{DefaultName: defaultName, Value: value}}
			}
			expr := p.parseSuffix(p.parseAsyncPrefixExpr(logger.Range{Loc: asyncLoc, Len: 5}), LComma)
			p.lexer.ExpectOrInsertSemicolon()
			return js_ast.Stmt{Loc: loc, Data: &js_ast.SExportDefault{DefaultName: defaultName,
				Value: js_ast.Stmt{Loc: expr.Loc, Data: &js_ast.SExpr{Value: expr}}}}
		}

		if p.lexer.Token == js_lexer.TClass {
			stmtLoc := p.lexer.Loc()
			class := p.parseClass()
			value := js_ast.Stmt{Loc: stmtLoc, Data: &js_ast.SClass{Class: class}}
			return js_ast.Stmt{Loc: loc, Data: &js_ast.SExportDefault{DefaultName: defaultName, Value: value}}
		}

		expr := p.parseExpr(LComma)
		p.lexer.ExpectOrInsertSemicolon()
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SExportDefault{DefaultName: defaultName,
			Value: js_ast.Stmt{Loc: expr.Loc, Data: &js_ast.SExpr{Value: expr}}}}

	case js_lexer.TVar:
		p.lexer.Next()
		decls := p.parseDecls()
		p.lexer.ExpectOrInsertSemicolon()
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SLocal{
			Kind: js_ast.LocalVar, Decls: decls, IsExport: true}}

	case js_lexer.TConst:
		p.lexer.Next()
		decls := p.parseDecls()
		p.lexer.ExpectOrInsertSemicolon()
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SLocal{
			Kind: js_ast.LocalConst, Decls: decls, IsExport: true}}

	case js_lexer.TFunction:
		p.lexer.Next()
		stmt := p.parseFnStmt(loc, false)
		stmt.Data.(*js_ast.SFunction).IsExport = true
		return stmt

	case js_lexer.TClass:
		class := p.parseClass()
		return js_ast.Stmt{Loc: loc, Data: &js_ast.SClass{Class: class, IsExport: true}}

	default:
		if p.lexer.IsContextualKeyword("let") {
			p.lexer.Next()
			decls := p.parseDecls()
			p.lexer.ExpectOrInsertSemicolon()
			return js_ast.Stmt{Loc: loc, Data: &js_ast.SLocal{
				Kind: js_ast.LocalLet, Decls: decls, IsExport: true}}
		}

		if p.lexer.IsContextualKeyword("async") {
			p.lexer.Next()
			p.lexer.Expect(js_lexer.TFunction)
			stmt := p.parseFnStmt(loc, true)
			stmt.Data.(*js_ast.SFunction).IsExport = true
			return stmt
		}

		p.lexer.Unexpected()
		return js_ast.Stmt{}
	}
}

// parseImportClause parses "{item1, item2 as other}". The local binding name
// is stored in OriginalName so the binder can declare it.
func (p *parser) parseImportClause() []js_ast.ClauseItem {
	items := []js_ast.ClauseItem{}
	p.lexer.Expect(js_lexer.TOpenBrace)

	for p.lexer.Token != js_lexer.TCloseBrace {
		aliasLoc := p.lexer.Loc()
		alias := p.moduleExportName()
		nameLoc := aliasLoc
		name := alias

		if p.lexer.IsContextualKeyword("as") {
			p.lexer.Next()
			nameLoc = p.lexer.Loc()
			name = p.lexer.Identifier
			p.lexer.Expect(js_lexer.TIdentifier)
		} else if !js_lexer.IsIdentifier(alias) {
			// "import {'a b'} from 'path'" is a syntax error without "as"
			p.lexer.ExpectedString("\"as\"")
		}

		items = append(items, js_ast.ClauseItem{
			Alias:        alias,
			AliasLoc:     aliasLoc,
			Name:         js_ast.LocRef{Loc: nameLoc, Ref: js_ast.InvalidRef},
			OriginalName: name,
		})

		if p.lexer.Token != js_lexer.TComma {
			break
		}
		p.lexer.Next()
	}

	p.lexer.Expect(js_lexer.TCloseBrace)
	return items
}

// parseExportClause parses "{a, b as c}". Alias is the exported name and
// OriginalName is the local (or source-module) name.
func (p *parser) parseExportClause() ([]js_ast.ClauseItem, logger.Loc) {
	items := []js_ast.ClauseItem{}
	p.lexer.Expect(js_lexer.TOpenBrace)

	for p.lexer.Token != js_lexer.TCloseBrace {
		nameLoc := p.lexer.Loc()
		originalName := p.moduleExportName()
		alias := originalName
		aliasLoc := nameLoc

		if p.lexer.IsContextualKeyword("as") {
			p.lexer.Next()
			aliasLoc = p.lexer.Loc()
			alias = p.moduleExportName()
		}

		items = append(items, js_ast.ClauseItem{
			Alias:        alias,
			AliasLoc:     aliasLoc,
			Name:         js_ast.LocRef{Loc: nameLoc, Ref: js_ast.InvalidRef},
			OriginalName: originalName,
		})

		if p.lexer.Token != js_lexer.TComma {
			break
		}
		p.lexer.Next()
	}

	closeBraceEndLoc := p.lexer.EndLoc()
	p.lexer.Expect(js_lexer.TCloseBrace)
	return items, closeBraceEndLoc
}

// moduleExportName parses a name in an import or export clause, which can be
// an identifier, a keyword like "default", or a string literal.
func (p *parser) moduleExportName() string {
	if p.lexer.Token == js_lexer.TStringLiteral {
		name := p.lexer.StringLiteral
		p.lexer.Next()
		return name
	}
	if !p.lexer.IsIdentifierOrKeyword() {
		p.lexer.Expected(js_lexer.TIdentifier)
	}
	name := p.lexer.Raw()
	p.lexer.Next()
	return name
}

func (p *parser) parsePath() (logger.Range, string) {
	path := p.lexer.Range()
	text := p.lexer.StringLiteral
	p.lexer.Expect(js_lexer.TStringLiteral)
	return path, text
}

// statementEndLoc extends a statement's end past a trailing semicolon when
// one is present, then consumes it.
func (p *parser) statementEndLoc(endLoc logger.Loc) logger.Loc {
	if p.lexer.Token == js_lexer.TSemicolon {
		endLoc = p.lexer.EndLoc()
	}
	p.lexer.ExpectOrInsertSemicolon()
	return endLoc
}
