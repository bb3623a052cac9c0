package js_parser

import (
	"github.com/CyberFlameGO/rspack/internal/js_ast"
	"github.com/CyberFlameGO/rspack/internal/js_lexer"
	"github.com/CyberFlameGO/rspack/internal/logger"
)

func (p *parser) parseExpr(level L) js_ast.Expr {
	return p.parseSuffix(p.parsePrefix(level), level)
}

func (p *parser) parsePrefix(level L) js_ast.Expr {
	loc := p.lexer.Loc()

	switch p.lexer.Token {
	case js_lexer.TSuper:
		p.lexer.Next()
		return js_ast.Expr{Loc: loc, Data: &js_ast.ESuper{}}

	case js_lexer.TOpenParen:
		p.lexer.Next()
		return p.parseParenExpr(loc, false)

	case js_lexer.TFalse:
		p.lexer.Next()
		return js_ast.Expr{Loc: loc, Data: &js_ast.EBoolean{Value: false}}

	case js_lexer.TTrue:
		p.lexer.Next()
		return js_ast.Expr{Loc: loc, Data: &js_ast.EBoolean{Value: true}}

	case js_lexer.TNull:
		p.lexer.Next()
		return js_ast.Expr{Loc: loc, Data: &js_ast.ENull{}}

	case js_lexer.TThis:
		p.lexer.Next()
		return js_ast.Expr{Loc: loc, Data: &js_ast.EThis{}}

	case js_lexer.TIdentifier:
		name := p.lexer.Identifier
		p.lexer.Next()

		switch name {
		case "async":
			if !p.lexer.HasNewlineBefore {
				switch p.lexer.Token {
				case js_lexer.TFunction, js_lexer.TIdentifier, js_lexer.TOpenParen:
					return p.parseAsyncPrefixExpr(logger.Range{Loc: loc, Len: 5})
				}
			}

		case "await":
			// Only treat "await" as an operator when it is followed by
			// something that starts an expression. This over-approximates
			// being inside an async function, which is fine for scanning.
			if !p.lexer.HasNewlineBefore && p.prefixCanStartExpr() {
				value := p.parseExpr(LPrefix)
				return js_ast.Expr{Loc: loc, Data: &js_ast.EAwait{Value: value}}
			}

		case "yield":
			if !p.lexer.HasNewlineBefore {
				isStar := p.lexer.Token == js_lexer.TAsterisk
				if isStar {
					p.lexer.Next()
				}
				if isStar || p.prefixCanStartExpr() {
					value := p.parseExpr(LYield)
					return js_ast.Expr{Loc: loc, Data: &js_ast.EYield{Value: &value, IsStar: isStar}}
				}
				return js_ast.Expr{Loc: loc, Data: &js_ast.EYield{}}
			}
		}

		ident := js_ast.Expr{Loc: loc, Data: &js_ast.EIdentifier{Name: name, Ref: js_ast.InvalidRef}}

		// "x => x * 2"
		if p.lexer.Token == js_lexer.TEqualsGreaterThan && level <= LAssign {
			return p.parseArrowBody(loc, []js_ast.Arg{{Binding: js_ast.Binding{
				Loc: loc, Data: &js_ast.BIdentifier{Name: name, Ref: js_ast.InvalidRef}}}}, false, false)
		}

		return ident

	case js_lexer.TStringLiteral:
		value := p.lexer.StringLiteral
		endLoc := p.lexer.EndLoc()
		p.lexer.Next()
		return js_ast.Expr{Loc: loc, Data: &js_ast.EString{Value: value, EndLoc: endLoc}}

	case js_lexer.TNoSubstitutionTemplateLiteral:
		head := p.lexer.StringLiteral
		endLoc := p.lexer.EndLoc()
		p.lexer.Next()
		return js_ast.Expr{Loc: loc, Data: &js_ast.ETemplate{Head: head, EndLoc: endLoc}}

	case js_lexer.TTemplateHead:
		head := p.lexer.StringLiteral
		parts, endLoc := p.parseTemplateParts()
		return js_ast.Expr{Loc: loc, Data: &js_ast.ETemplate{Head: head, Parts: parts, EndLoc: endLoc}}

	case js_lexer.TNumericLiteral:
		value := p.lexer.Number
		p.lexer.Next()
		return js_ast.Expr{Loc: loc, Data: &js_ast.ENumber{Value: value}}

	case js_lexer.TBigIntegerLiteral:
		value := p.lexer.Identifier
		p.lexer.Next()
		return js_ast.Expr{Loc: loc, Data: &js_ast.EBigInt{Value: value}}

	case js_lexer.TSlash, js_lexer.TSlashEquals:
		p.lexer.ScanRegExp()
		value := p.lexer.Raw()
		p.lexer.Next()
		return js_ast.Expr{Loc: loc, Data: &js_ast.ERegExp{Value: value}}

	case js_lexer.TVoid:
		p.lexer.Next()
		value := p.parseExpr(LPrefix)
		return js_ast.Expr{Loc: loc, Data: &js_ast.EUnary{Op: "void", Value: value}}

	case js_lexer.TTypeof:
		p.lexer.Next()
		value := p.parseExpr(LPrefix)
		return js_ast.Expr{Loc: loc, Data: &js_ast.EUnary{Op: "typeof", Value: value}}

	case js_lexer.TDelete:
		p.lexer.Next()
		value := p.parseExpr(LPrefix)
		return js_ast.Expr{Loc: loc, Data: &js_ast.EUnary{Op: "delete", Value: value}}

	case js_lexer.TPlus:
		p.lexer.Next()
		value := p.parseExpr(LPrefix)
		return js_ast.Expr{Loc: loc, Data: &js_ast.EUnary{Op: "+", Value: value}}

	case js_lexer.TMinus:
		p.lexer.Next()
		value := p.parseExpr(LPrefix)
		return js_ast.Expr{Loc: loc, Data: &js_ast.EUnary{Op: "-", Value: value}}

	case js_lexer.TTilde:
		p.lexer.Next()
		value := p.parseExpr(LPrefix)
		return js_ast.Expr{Loc: loc, Data: &js_ast.EUnary{Op: "~", Value: value}}

	case js_lexer.TExclamation:
		p.lexer.Next()
		value := p.parseExpr(LPrefix)
		return js_ast.Expr{Loc: loc, Data: &js_ast.EUnary{Op: "!", Value: value}}

	case js_lexer.TMinusMinus:
		p.lexer.Next()
		value := p.parseExpr(LPrefix)
		return js_ast.Expr{Loc: loc, Data: &js_ast.EUnary{Op: "--", Value: value}}

	case js_lexer.TPlusPlus:
		p.lexer.Next()
		value := p.parseExpr(LPrefix)
		return js_ast.Expr{Loc: loc, Data: &js_ast.EUnary{Op: "++", Value: value}}

	case js_lexer.TFunction:
		return p.parseFnExpr(loc, false)

	case js_lexer.TClass:
		class := p.parseClass()
		return js_ast.Expr{Loc: loc, Data: &js_ast.EClass{Class: class}}

	case js_lexer.TNew:
		p.lexer.Next()

		// "new.target"
		if p.lexer.Token == js_lexer.TDot {
			p.lexer.Next()
			p.lexer.ExpectContextualKeyword("target")
			return js_ast.Expr{Loc: loc, Data: &js_ast.ENewTarget{}}
		}

		target := p.parseExpr(LMember)

		if p.lexer.Token == js_lexer.TOpenParen {
			args, closeParenLoc, hasSpread := p.parseCallArgs()
			return js_ast.Expr{Loc: loc, Data: &js_ast.ENew{
				Target:        target,
				Args:          args,
				CloseParenLoc: closeParenLoc,
				HasSpread:     hasSpread,
			}}
		}

		// "new Foo" without arguments has no closing parenthesis. Point just
		// before the end of the target so span math stays in bounds.
		return js_ast.Expr{Loc: loc, Data: &js_ast.ENew{
			Target:        target,
			CloseParenLoc: logger.Loc{Start: js_ast.ExprEndLoc(target).Start - 1},
		}}

	case js_lexer.TOpenBracket:
		p.lexer.Next()
		items := []js_ast.Expr{}
		for p.lexer.Token != js_lexer.TCloseBracket {
			switch p.lexer.Token {
			case js_lexer.TComma:
				// An elision
				items = append(items, js_ast.Expr{Loc: p.lexer.Loc(), Data: &js_ast.EMissing{}})

			case js_lexer.TDotDotDot:
				spreadLoc := p.lexer.Loc()
				p.lexer.Next()
				value := p.parseExpr(LComma)
				items = append(items, js_ast.Expr{Loc: spreadLoc, Data: &js_ast.ESpread{Value: value}})

			default:
				items = append(items, p.parseExpr(LComma))
			}
			if p.lexer.Token != js_lexer.TComma {
				break
			}
			p.lexer.Next()
		}
		closeBracketLoc := p.lexer.Loc()
		p.lexer.Expect(js_lexer.TCloseBracket)
		return js_ast.Expr{Loc: loc, Data: &js_ast.EArray{Items: items, CloseBracketLoc: closeBracketLoc}}

	case js_lexer.TOpenBrace:
		p.lexer.Next()
		properties := []js_ast.Property{}
		for p.lexer.Token != js_lexer.TCloseBrace {
			properties = append(properties, p.parseObjectProperty())
			if p.lexer.Token != js_lexer.TComma {
				break
			}
			p.lexer.Next()
		}
		closeBraceLoc := p.lexer.Loc()
		p.lexer.Expect(js_lexer.TCloseBrace)
		return js_ast.Expr{Loc: loc, Data: &js_ast.EObject{Properties: properties, CloseBraceLoc: closeBraceLoc}}

	case js_lexer.TImport:
		p.lexer.Next()
		return p.parseImportExpr(loc)

	default:
		p.lexer.Unexpected()
		return js_ast.Expr{}
	}
}

// prefixCanStartExpr reports whether the current token can begin an
// expression, used to disambiguate "await"/"yield" as identifiers vs
// operators.
func (p *parser) prefixCanStartExpr() bool {
	switch p.lexer.Token {
	case js_lexer.TIdentifier, js_lexer.TNumericLiteral, js_lexer.TBigIntegerLiteral,
		js_lexer.TStringLiteral, js_lexer.TNoSubstitutionTemplateLiteral, js_lexer.TTemplateHead,
		js_lexer.TSlash, js_lexer.TSlashEquals, js_lexer.TOpenParen, js_lexer.TOpenBracket,
		js_lexer.TOpenBrace, js_lexer.TNew, js_lexer.TFunction, js_lexer.TClass, js_lexer.TThis,
		js_lexer.TSuper, js_lexer.TNull, js_lexer.TTrue, js_lexer.TFalse, js_lexer.TImport,
		js_lexer.TTypeof, js_lexer.TVoid, js_lexer.TDelete, js_lexer.TExclamation, js_lexer.TTilde,
		js_lexer.TPlus, js_lexer.TMinus, js_lexer.TPlusPlus, js_lexer.TMinusMinus:
		return true
	}
	return false
}

// parseImportExpr parses what comes after the "import" keyword in expression
// position: "import(path)" or "import.meta".
func (p *parser) parseImportExpr(loc logger.Loc) js_ast.Expr {
	if p.lexer.Token == js_lexer.TDot {
		p.lexer.Next()
		p.lexer.ExpectContextualKeyword("meta")
		return p.parseSuffix(js_ast.Expr{Loc: loc, Data: &js_ast.EImportMeta{}}, LMember)
	}

	p.lexer.Expect(js_lexer.TOpenParen)
	comments := p.lexer.TakeCommentsBefore()
	value := p.parseExpr(LComma)
	comments = append(comments, p.lexer.TakeCommentsBefore()...)

	// A second argument (import assertions) can be present; the scanners
	// ignore it
	if p.lexer.Token == js_lexer.TComma {
		p.lexer.Next()
		if p.lexer.Token != js_lexer.TCloseParen {
			p.parseExpr(LComma)
		}
	}

	closeParenLoc := p.lexer.Loc()
	p.lexer.Expect(js_lexer.TCloseParen)
	return p.parseSuffix(js_ast.Expr{Loc: loc, Data: &js_ast.EImportCall{
		Expr:                    value,
		CloseParenLoc:           closeParenLoc,
		LeadingInteriorComments: comments,
	}}, LMember)
}

func (p *parser) parseFnExpr(loc logger.Loc, isAsync bool) js_ast.Expr {
	p.lexer.Expect(js_lexer.TFunction)
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
	return js_ast.Expr{Loc: loc, Data: &js_ast.EFunction{Fn: fn}}
}

// parseAsyncPrefixExpr is called after the contextual keyword "async" when it
// could begin an async function or arrow.
func (p *parser) parseAsyncPrefixExpr(asyncRange logger.Range) js_ast.Expr {
	loc := asyncRange.Loc

	switch p.lexer.Token {
	case js_lexer.TFunction:
		return p.parseFnExpr(loc, true)

	case js_lexer.TIdentifier:
		// "async x => {}"
		name := p.lexer.Identifier
		argLoc := p.lexer.Loc()
		p.lexer.Next()
		if p.lexer.Token == js_lexer.TEqualsGreaterThan {
			return p.parseArrowBody(loc, []js_ast.Arg{{Binding: js_ast.Binding{
				Loc: argLoc, Data: &js_ast.BIdentifier{Name: name, Ref: js_ast.InvalidRef}}}}, true, false)
		}
		// Just the identifier "async" followed by another expression
		return p.parseSuffix(js_ast.Expr{Loc: argLoc, Data: &js_ast.EIdentifier{
			Name: name, Ref: js_ast.InvalidRef}}, LLowest)

	case js_lexer.TOpenParen:
		// "async () => {}"
		p.lexer.Next()
		return p.parseParenExpr(loc, true)
	}

	// A plain reference to a variable called "async"
	return js_ast.Expr{Loc: loc, Data: &js_ast.EIdentifier{Name: "async", Ref: js_ast.InvalidRef}}
}

// parseParenExpr parses the contents of a parenthesized expression after the
// "(" token, then decides whether it was an arrow function parameter list.
func (p *parser) parseParenExpr(loc logger.Loc, isAsync bool) js_ast.Expr {
	items := []js_ast.Expr{}
	hasSpread := false

	oldAllowIn := p.allowIn
	p.allowIn = true

	for p.lexer.Token != js_lexer.TCloseParen {
		if p.lexer.Token == js_lexer.TDotDotDot {
			spreadLoc := p.lexer.Loc()
			p.lexer.Next()
			hasSpread = true
			value := p.parseExpr(LComma)
			items = append(items, js_ast.Expr{Loc: spreadLoc, Data: &js_ast.ESpread{Value: value}})
		} else {
			items = append(items, p.parseExpr(LComma))
		}
		if p.lexer.Token != js_lexer.TComma {
			break
		}
		p.lexer.Next()
	}
	p.lexer.Expect(js_lexer.TCloseParen)

	p.allowIn = oldAllowIn

	if p.lexer.Token == js_lexer.TEqualsGreaterThan {
		args := make([]js_ast.Arg, 0, len(items))
		for _, item := range items {
			args = append(args, p.exprToArg(item))
		}
		return p.parseArrowBody(loc, args, isAsync, hasSpread)
	}

	if len(items) == 0 || hasSpread {
		p.lexer.Expected(js_lexer.TEqualsGreaterThan)
	}

	// Join the items with commas to reconstruct the sequence expression
	value := items[0]
	for _, item := range items[1:] {
		value = js_ast.Expr{Loc: value.Loc, Data: &js_ast.EBinary{Op: ",", Left: value, Right: item}}
	}
	return value
}

func (p *parser) parseArrowBody(loc logger.Loc, args []js_ast.Arg, isAsync bool, hasRestArg bool) js_ast.Expr {
	p.lexer.Expect(js_lexer.TEqualsGreaterThan)

	if p.lexer.Token == js_lexer.TOpenBrace {
		bodyLoc := p.lexer.Loc()
		p.lexer.Next()
		stmts := p.parseStmtsUpTo(js_lexer.TCloseBrace)
		p.lexer.Next()
		return js_ast.Expr{Loc: loc, Data: &js_ast.EArrow{
			Args:       args,
			Body:       js_ast.FnBody{Loc: bodyLoc, Stmts: stmts},
			IsAsync:    isAsync,
			HasRestArg: hasRestArg,
		}}
	}

	expr := p.parseExpr(LComma)
	return js_ast.Expr{Loc: loc, Data: &js_ast.EArrow{
		Args: args,
		Body: js_ast.FnBody{Loc: expr.Loc, Stmts: []js_ast.Stmt{
			{Loc: expr.Loc, Data: &js_ast.SReturn{Value: &expr}}}},
		IsAsync:    isAsync,
		HasRestArg: hasRestArg,
		PreferExpr: true,
	}}
}

// exprToArg converts an expression that was parsed as a parenthesized item
// into an arrow function parameter.
func (p *parser) exprToArg(expr js_ast.Expr) js_ast.Arg {
	if spread, ok := expr.Data.(*js_ast.ESpread); ok {
		expr = spread.Value
	}
	if binary, ok := expr.Data.(*js_ast.EBinary); ok && binary.Op == "=" {
		binding := p.exprToBinding(binary.Left)
		return js_ast.Arg{Binding: binding, Default: &binary.Right}
	}
	return js_ast.Arg{Binding: p.exprToBinding(expr)}
}

func (p *parser) exprToBinding(expr js_ast.Expr) js_ast.Binding {
	switch e := expr.Data.(type) {
	case *js_ast.EMissing:
		return js_ast.Binding{Loc: expr.Loc, Data: &js_ast.BMissing{}}

	case *js_ast.EIdentifier:
		return js_ast.Binding{Loc: expr.Loc, Data: &js_ast.BIdentifier{Name: e.Name, Ref: js_ast.InvalidRef}}

	case *js_ast.EArray:
		items := make([]js_ast.ArrayBinding, 0, len(e.Items))
		hasSpread := false
		for _, item := range e.Items {
			if spread, ok := item.Data.(*js_ast.ESpread); ok {
				hasSpread = true
				item = spread.Value
			}
			var defaultValue *js_ast.Expr
			if binary, ok := item.Data.(*js_ast.EBinary); ok && binary.Op == "=" {
				defaultValue = &binary.Right
				item = binary.Left
			}
			items = append(items, js_ast.ArrayBinding{Binding: p.exprToBinding(item), DefaultValue: defaultValue})
		}
		return js_ast.Binding{Loc: expr.Loc, Data: &js_ast.BArray{Items: items, HasSpread: hasSpread}}

	case *js_ast.EObject:
		properties := make([]js_ast.PropertyBinding, 0, len(e.Properties))
		for _, property := range e.Properties {
			if property.Kind == js_ast.PropertySpread {
				properties = append(properties, js_ast.PropertyBinding{
					IsSpread: true, Value: p.exprToBinding(*property.Value)})
				continue
			}
			var value js_ast.Binding
			if property.Value != nil {
				value = p.exprToBinding(*property.Value)
			}
			properties = append(properties, js_ast.PropertyBinding{
				Key:          property.Key,
				Value:        value,
				DefaultValue: property.Initializer,
				IsComputed:   property.IsComputed,
			})
		}
		return js_ast.Binding{Loc: expr.Loc, Data: &js_ast.BObject{Properties: properties}}
	}

	p.log.AddError(&p.source, expr.Loc, "Invalid binding pattern")
	panic(js_lexer.LexerPanic{})
}

func (p *parser) parseObjectProperty() js_ast.Property {
	if p.lexer.Token == js_lexer.TDotDotDot {
		p.lexer.Next()
		value := p.parseExpr(LComma)
		return js_ast.Property{Kind: js_ast.PropertySpread, Value: &value}
	}

	kind := js_ast.PropertyNormal
	isAsync := false
	isGenerator := false

	// "get x() {}", "set x(v) {}", "async x() {}"
	if p.lexer.Token == js_lexer.TIdentifier {
		switch p.lexer.Identifier {
		case "get", "set", "async":
			modifier := p.lexer.Identifier
			p.lexer.Next()
			if p.isPropertyNameStart() || p.lexer.Token == js_lexer.TAsterisk {
				switch modifier {
				case "get":
					kind = js_ast.PropertyGet
				case "set":
					kind = js_ast.PropertySet
				case "async":
					isAsync = true
				}
			} else {
				// The modifier itself was the property name
				key := js_ast.Expr{
					Loc:  logger.Loc{Start: p.lexer.Loc().Start - int32(len(modifier))},
					Data: &js_ast.EString{Value: modifier},
				}
				return p.finishObjectProperty(kind, isAsync, isGenerator, key, false)
			}
		}
	}

	if p.lexer.Token == js_lexer.TAsterisk {
		isGenerator = true
		p.lexer.Next()
	}

	key, isComputed := p.parsePropertyKey()
	return p.finishObjectProperty(kind, isAsync, isGenerator, key, isComputed)
}

func (p *parser) finishObjectProperty(kind js_ast.PropertyKind, isAsync bool, isGenerator bool,
	key js_ast.Expr, isComputed bool) js_ast.Property {
	switch p.lexer.Token {
	case js_lexer.TOpenParen:
		// A method
		fn := p.parseFn(nil, isAsync, isGenerator)
		value := js_ast.Expr{Loc: key.Loc, Data: &js_ast.EFunction{Fn: fn}}
		return js_ast.Property{Kind: kind, Key: key, Value: &value, IsComputed: isComputed, IsMethod: true}

	case js_lexer.TColon:
		p.lexer.Next()
		value := p.parseExpr(LComma)
		return js_ast.Property{Kind: kind, Key: key, Value: &value, IsComputed: isComputed}

	case js_lexer.TEquals:
		// Shorthand with a default, only valid in a binding pattern
		p.lexer.Next()
		initializer := p.parseExpr(LComma)
		str, _ := key.Data.(*js_ast.EString)
		value := js_ast.Expr{Loc: key.Loc, Data: &js_ast.EIdentifier{Name: str.Value, Ref: js_ast.InvalidRef}}
		return js_ast.Property{Key: key, Value: &value, Initializer: &initializer, WasShorthand: true}

	default:
		// Shorthand property: "{a, b}"
		str, ok := key.Data.(*js_ast.EString)
		if !ok || isComputed {
			p.lexer.Expected(js_lexer.TColon)
		}
		value := js_ast.Expr{Loc: key.Loc, Data: &js_ast.EIdentifier{Name: str.Value, Ref: js_ast.InvalidRef}}
		return js_ast.Property{Key: key, Value: &value, WasShorthand: true}
	}
}

func (p *parser) parseTemplateParts() ([]js_ast.TemplatePart, logger.Loc) {
	parts := []js_ast.TemplatePart{}
	for {
		p.lexer.Next()
		value := p.parseExpr(LLowest)
		tailLoc := p.lexer.Loc()
		p.lexer.RescanCloseBraceAsTemplateToken()
		tail := p.lexer.StringLiteral
		parts = append(parts, js_ast.TemplatePart{Value: value, Tail: tail, TailLoc: tailLoc})
		if p.lexer.Token == js_lexer.TTemplateTail {
			endLoc := p.lexer.EndLoc()
			p.lexer.Next()
			return parts, endLoc
		}
	}
}

func (p *parser) parseCallArgs() (args []js_ast.Expr, closeParenLoc logger.Loc, hasSpread bool) {
	// Allow "in" inside call arguments
	oldAllowIn := p.allowIn
	p.allowIn = true

	p.lexer.Expect(js_lexer.TOpenParen)
	for p.lexer.Token != js_lexer.TCloseParen {
		if p.lexer.Token == js_lexer.TDotDotDot {
			spreadLoc := p.lexer.Loc()
			p.lexer.Next()
			hasSpread = true
			value := p.parseExpr(LComma)
			args = append(args, js_ast.Expr{Loc: spreadLoc, Data: &js_ast.ESpread{Value: value}})
		} else {
			args = append(args, p.parseExpr(LComma))
		}
		if p.lexer.Token != js_lexer.TComma {
			break
		}
		p.lexer.Next()
	}
	closeParenLoc = p.lexer.Loc()
	p.lexer.Expect(js_lexer.TCloseParen)

	p.allowIn = oldAllowIn
	return
}

func (p *parser) parseSuffix(left js_ast.Expr, level L) js_ast.Expr {
	for {
		switch p.lexer.Token {
		case js_lexer.TDot:
			p.lexer.Next()
			if !p.lexer.IsIdentifierOrKeyword() && p.lexer.Token != js_lexer.TPrivateIdentifier {
				p.lexer.Expected(js_lexer.TIdentifier)
			}
			nameLoc := p.lexer.Loc()
			name := p.lexer.Raw()
			p.lexer.Next()
			left = js_ast.Expr{Loc: left.Loc, Data: &js_ast.EDot{Target: left, Name: name, NameLoc: nameLoc}}

		case js_lexer.TQuestionDot:
			p.lexer.Next()
			switch p.lexer.Token {
			case js_lexer.TOpenParen:
				if level >= LCall {
					return left
				}
				args, closeParenLoc, hasSpread := p.parseCallArgs()
				left = js_ast.Expr{Loc: left.Loc, Data: &js_ast.ECall{
					Target: left, Args: args, CloseParenLoc: closeParenLoc, HasSpread: hasSpread}}

			case js_lexer.TOpenBracket:
				p.lexer.Next()
				index := p.parseExpr(LLowest)
				closeBracketLoc := p.lexer.Loc()
				p.lexer.Expect(js_lexer.TCloseBracket)
				left = js_ast.Expr{Loc: left.Loc, Data: &js_ast.EIndex{
					Target: left, Index: index, CloseBracketLoc: closeBracketLoc}}

			default:
				if !p.lexer.IsIdentifierOrKeyword() && p.lexer.Token != js_lexer.TPrivateIdentifier {
					p.lexer.Expected(js_lexer.TIdentifier)
				}
				nameLoc := p.lexer.Loc()
				name := p.lexer.Raw()
				p.lexer.Next()
				left = js_ast.Expr{Loc: left.Loc, Data: &js_ast.EDot{Target: left, Name: name, NameLoc: nameLoc}}
			}

		case js_lexer.TOpenBracket:
			p.lexer.Next()
			index := p.parseExpr(LLowest)
			closeBracketLoc := p.lexer.Loc()
			p.lexer.Expect(js_lexer.TCloseBracket)
			left = js_ast.Expr{Loc: left.Loc, Data: &js_ast.EIndex{
				Target: left, Index: index, CloseBracketLoc: closeBracketLoc}}

		case js_lexer.TOpenParen:
			if level >= LCall {
				return left
			}
			args, closeParenLoc, hasSpread := p.parseCallArgs()
			left = js_ast.Expr{Loc: left.Loc, Data: &js_ast.ECall{
				Target: left, Args: args, CloseParenLoc: closeParenLoc, HasSpread: hasSpread}}

		case js_lexer.TNoSubstitutionTemplateLiteral:
			// Tagged template literal
			if level >= LPrefix {
				return left
			}
			head := p.lexer.StringLiteral
			endLoc := p.lexer.EndLoc()
			p.lexer.Next()
			tag := left
			left = js_ast.Expr{Loc: left.Loc, Data: &js_ast.ETemplate{Tag: &tag, Head: head, EndLoc: endLoc}}

		case js_lexer.TTemplateHead:
			if level >= LPrefix {
				return left
			}
			head := p.lexer.StringLiteral
			parts, endLoc := p.parseTemplateParts()
			tag := left
			left = js_ast.Expr{Loc: left.Loc, Data: &js_ast.ETemplate{Tag: &tag, Head: head, Parts: parts, EndLoc: endLoc}}

		case js_lexer.TEqualsGreaterThan:
			// Arrows on identifiers are handled in parsePrefix
			return left

		case js_lexer.TQuestion:
			if level >= LConditional {
				return left
			}
			p.lexer.Next()

			// "in" is allowed inside the branches
			oldAllowIn := p.allowIn
			p.allowIn = true
			yes := p.parseExpr(LComma)
			p.allowIn = oldAllowIn

			p.lexer.Expect(js_lexer.TColon)
			no := p.parseExpr(LComma)
			left = js_ast.Expr{Loc: left.Loc, Data: &js_ast.EIf{Test: left, Yes: yes, No: no}}

		case js_lexer.TPlusPlus:
			if p.lexer.HasNewlineBefore || level >= LPostfix {
				return left
			}
			p.lexer.Next()
			left = js_ast.Expr{Loc: left.Loc, Data: &js_ast.EUnary{Op: "++", Value: left}}

		case js_lexer.TMinusMinus:
			if p.lexer.HasNewlineBefore || level >= LPostfix {
				return left
			}
			p.lexer.Next()
			left = js_ast.Expr{Loc: left.Loc, Data: &js_ast.EUnary{Op: "--", Value: left}}

		case js_lexer.TComma:
			if level >= LComma {
				return left
			}
			p.lexer.Next()
			right := p.parseExpr(LComma)
			left = js_ast.Expr{Loc: left.Loc, Data: &js_ast.EBinary{Op: ",", Left: left, Right: right}}

		case js_lexer.TQuestionQuestion:
			if level >= LNullishCoalescing {
				return left
			}
			p.lexer.Next()
			right := p.parseExpr(LNullishCoalescing)
			left = js_ast.Expr{Loc: left.Loc, Data: &js_ast.EBinary{Op: "??", Left: left, Right: right}}

		case js_lexer.TBarBar:
			if level >= LLogicalOr {
				return left
			}
			p.lexer.Next()
			right := p.parseExpr(LLogicalOr)
			left = js_ast.Expr{Loc: left.Loc, Data: &js_ast.EBinary{Op: "||", Left: left, Right: right}}

		case js_lexer.TAmpersandAmpersand:
			if level >= LLogicalAnd {
				return left
			}
			p.lexer.Next()
			right := p.parseExpr(LLogicalAnd)
			left = js_ast.Expr{Loc: left.Loc, Data: &js_ast.EBinary{Op: "&&", Left: left, Right: right}}

		case js_lexer.TBar:
			if level >= LBitwiseOr {
				return left
			}
			p.lexer.Next()
			right := p.parseExpr(LBitwiseOr)
			left = js_ast.Expr{Loc: left.Loc, Data: &js_ast.EBinary{Op: "|", Left: left, Right: right}}

		case js_lexer.TCaret:
			if level >= LBitwiseXor {
				return left
			}
			p.lexer.Next()
			right := p.parseExpr(LBitwiseXor)
			left = js_ast.Expr{Loc: left.Loc, Data: &js_ast.EBinary{Op: "^", Left: left, Right: right}}

		case js_lexer.TAmpersand:
			if level >= LBitwiseAnd {
				return left
			}
			p.lexer.Next()
			right := p.parseExpr(LBitwiseAnd)
			left = js_ast.Expr{Loc: left.Loc, Data: &js_ast.EBinary{Op: "&", Left: left, Right: right}}

		case js_lexer.TEqualsEquals:
			if level >= LEquals {
				return left
			}
			p.lexer.Next()
			right := p.parseExpr(LEquals)
			left = js_ast.Expr{Loc: left.Loc, Data: &js_ast.EBinary{Op: "==", Left: left, Right: right}}

		case js_lexer.TExclamationEquals:
			if level >= LEquals {
				return left
			}
			p.lexer.Next()
			right := p.parseExpr(LEquals)
			left = js_ast.Expr{Loc: left.Loc, Data: &js_ast.EBinary{Op: "!=", Left: left, Right: right}}

		case js_lexer.TEqualsEqualsEquals:
			if level >= LEquals {
				return left
			}
			p.lexer.Next()
			right := p.parseExpr(LEquals)
			left = js_ast.Expr{Loc: left.Loc, Data: &js_ast.EBinary{Op: "===", Left: left, Right: right}}

		case js_lexer.TExclamationEqualsEquals:
			if level >= LEquals {
				return left
			}
			p.lexer.Next()
			right := p.parseExpr(LEquals)
			left = js_ast.Expr{Loc: left.Loc, Data: &js_ast.EBinary{Op: "!==", Left: left, Right: right}}

		case js_lexer.TLessThan:
			if level >= LCompare {
				return left
			}
			p.lexer.Next()
			right := p.parseExpr(LCompare)
			left = js_ast.Expr{Loc: left.Loc, Data: &js_ast.EBinary{Op: "<", Left: left, Right: right}}

		case js_lexer.TLessThanEquals:
			if level >= LCompare {
				return left
			}
			p.lexer.Next()
			right := p.parseExpr(LCompare)
			left = js_ast.Expr{Loc: left.Loc, Data: &js_ast.EBinary{Op: "<=", Left: left, Right: right}}

		case js_lexer.TGreaterThan:
			if level >= LCompare {
				return left
			}
			p.lexer.Next()
			right := p.parseExpr(LCompare)
			left = js_ast.Expr{Loc: left.Loc, Data: &js_ast.EBinary{Op: ">", Left: left, Right: right}}

		case js_lexer.TGreaterThanEquals:
			if level >= LCompare {
				return left
			}
			p.lexer.Next()
			right := p.parseExpr(LCompare)
			left = js_ast.Expr{Loc: left.Loc, Data: &js_ast.EBinary{Op: ">=", Left: left, Right: right}}

		case js_lexer.TInstanceof:
			if level >= LCompare {
				return left
			}
			p.lexer.Next()
			right := p.parseExpr(LCompare)
			left = js_ast.Expr{Loc: left.Loc, Data: &js_ast.EBinary{Op: "instanceof", Left: left, Right: right}}

		case js_lexer.TIn:
			if level >= LCompare || !p.allowIn {
				return left
			}
			p.lexer.Next()
			right := p.parseExpr(LCompare)
			left = js_ast.Expr{Loc: left.Loc, Data: &js_ast.EBinary{Op: "in", Left: left, Right: right}}

		case js_lexer.TLessThanLessThan:
			if level >= LShift {
				return left
			}
			p.lexer.Next()
			right := p.parseExpr(LShift)
			left = js_ast.Expr{Loc: left.Loc, Data: &js_ast.EBinary{Op: "<<", Left: left, Right: right}}

		case js_lexer.TGreaterThanGreaterThan:
			if level >= LShift {
				return left
			}
			p.lexer.Next()
			right := p.parseExpr(LShift)
			left = js_ast.Expr{Loc: left.Loc, Data: &js_ast.EBinary{Op: ">>", Left: left, Right: right}}

		case js_lexer.TGreaterThanGreaterThanGreaterThan:
			if level >= LShift {
				return left
			}
			p.lexer.Next()
			right := p.parseExpr(LShift)
			left = js_ast.Expr{Loc: left.Loc, Data: &js_ast.EBinary{Op: ">>>", Left: left, Right: right}}

		case js_lexer.TPlus:
			if level >= LAdd {
				return left
			}
			p.lexer.Next()
			right := p.parseExpr(LAdd)
			left = js_ast.Expr{Loc: left.Loc, Data: &js_ast.EBinary{Op: "+", Left: left, Right: right}}

		case js_lexer.TMinus:
			if level >= LAdd {
				return left
			}
			p.lexer.Next()
			right := p.parseExpr(LAdd)
			left = js_ast.Expr{Loc: left.Loc, Data: &js_ast.EBinary{Op: "-", Left: left, Right: right}}

		case js_lexer.TAsterisk:
			if level >= LMultiply {
				return left
			}
			p.lexer.Next()
			right := p.parseExpr(LMultiply)
			left = js_ast.Expr{Loc: left.Loc, Data: &js_ast.EBinary{Op: "*", Left: left, Right: right}}

		case js_lexer.TSlash:
			if level >= LMultiply {
				return left
			}
			p.lexer.Next()
			right := p.parseExpr(LMultiply)
			left = js_ast.Expr{Loc: left.Loc, Data: &js_ast.EBinary{Op: "/", Left: left, Right: right}}

		case js_lexer.TPercent:
			if level >= LMultiply {
				return left
			}
			p.lexer.Next()
			right := p.parseExpr(LMultiply)
			left = js_ast.Expr{Loc: left.Loc, Data: &js_ast.EBinary{Op: "%", Left: left, Right: right}}

		case js_lexer.TAsteriskAsterisk:
			// Right-associative
			if level >= LExponentiation {
				return left
			}
			p.lexer.Next()
			right := p.parseExpr(LExponentiation - 1)
			left = js_ast.Expr{Loc: left.Loc, Data: &js_ast.EBinary{Op: "**", Left: left, Right: right}}

		case js_lexer.TEquals:
			if level >= LAssign {
				return left
			}
			p.lexer.Next()
			right := p.parseExpr(LAssign - 1)
			left = js_ast.Expr{Loc: left.Loc, Data: &js_ast.EBinary{Op: "=", Left: left, Right: right}}

		case js_lexer.TPlusEquals, js_lexer.TMinusEquals, js_lexer.TAsteriskEquals,
			js_lexer.TSlashEquals, js_lexer.TPercentEquals, js_lexer.TAsteriskAsteriskEquals,
			js_lexer.TLessThanLessThanEquals, js_lexer.TGreaterThanGreaterThanEquals,
			js_lexer.TGreaterThanGreaterThanGreaterThanEquals, js_lexer.TAmpersandEquals,
			js_lexer.TBarEquals, js_lexer.TCaretEquals, js_lexer.TAmpersandAmpersandEquals,
			js_lexer.TBarBarEquals, js_lexer.TQuestionQuestionEquals:
			// Compound assignments are all right-associative
			if level >= LAssign {
				return left
			}
			op := assignOps[p.lexer.Token]
			p.lexer.Next()
			right := p.parseExpr(LAssign - 1)
			left = js_ast.Expr{Loc: left.Loc, Data: &js_ast.EBinary{Op: op, Left: left, Right: right}}

		default:
			return left
		}
	}
}

var assignOps = map[js_lexer.T]string{
	js_lexer.TPlusEquals:                              "+=",
	js_lexer.TMinusEquals:                             "-=",
	js_lexer.TAsteriskEquals:                          "*=",
	js_lexer.TSlashEquals:                             "/=",
	js_lexer.TPercentEquals:                           "%=",
	js_lexer.TAsteriskAsteriskEquals:                  "**=",
	js_lexer.TLessThanLessThanEquals:                  "<<=",
	js_lexer.TGreaterThanGreaterThanEquals:            ">>=",
	js_lexer.TGreaterThanGreaterThanGreaterThanEquals: ">>>=",
	js_lexer.TAmpersandEquals:                         "&=",
	js_lexer.TBarEquals:                               "|=",
	js_lexer.TCaretEquals:                             "^=",
	js_lexer.TAmpersandAmpersandEquals:                "&&=",
	js_lexer.TBarBarEquals:                            "||=",
	js_lexer.TQuestionQuestionEquals:                  "??=",
}
