package js_ast

import (
	"github.com/CyberFlameGO/rspack/internal/logger"
)

// Every module is parsed into a separate AST data structure. The parser also
// resolves all scopes and binds all symbols in the tree, so identifiers in
// the tree carry a Ref, which is a pointer into the symbol table for the
// file. Two identifiers spell the same binding exactly when their Refs are
// equal; that equality is the hygiene discriminator the dependency scanners
// rely on.

// Files are parsed in parallel for speed. We want to allow each parser to
// generate symbol IDs that won't conflict with each other. We also want to
// be able to quickly merge symbol tables from all files into one giant
// symbol table. So a symbol ID has two parts: an outer index unique to the
// parser goroutine, and an inner index that increments as the parser
// generates new symbol IDs.
type Ref struct {
	OuterIndex uint32
	InnerIndex uint32
}

var InvalidRef = Ref{^uint32(0), ^uint32(0)}

type SymbolKind uint8

const (
	// An unbound symbol is one that isn't declared in the file it's
	// referenced in. For example, using "window" without declaring it.
	SymbolUnbound SymbolKind = iota

	// Hoisted to the closest containing function or module scope: function
	// arguments, function statements, and "var".
	SymbolHoisted
	SymbolHoistedFunction

	// A catch variable declared using a simple identifier.
	SymbolCatchIdentifier

	// The special "arguments" variable inside functions.
	SymbolArguments

	SymbolClass

	// An item in the import clause of an import statement.
	SymbolImport

	// Assigning to a "const" symbol throws a TypeError at runtime.
	SymbolConst

	SymbolLabel

	// All other symbols without special behavior.
	SymbolOther
)

func (kind SymbolKind) IsHoisted() bool {
	return kind == SymbolHoisted || kind == SymbolHoistedFunction
}

type Symbol struct {
	// This is the name that came from the parser. Printed names may be
	// renamed later; do not use the original name during printing.
	OriginalName string

	// An estimate of the number of uses of this symbol.
	UseCountEstimate uint32

	Kind SymbolKind
}

type SymbolMap struct {
	// This could be represented as a "map[Ref]Symbol" but a two-level array
	// is more efficient and makes it trivial to merge symbol maps from
	// multiple files together. Each file only generates symbols in a single
	// inner array. See the comment on "Ref".
	Outer [][]Symbol
}

func NewSymbolMap(sourceCount int) SymbolMap {
	return SymbolMap{make([][]Symbol, sourceCount)}
}

func (sm SymbolMap) Get(ref Ref) *Symbol {
	return &sm.Outer[ref.OuterIndex][ref.InnerIndex]
}

type ScopeKind int

const (
	ScopeBlock ScopeKind = iota
	ScopeWith
	ScopeLabel
	ScopeClassName

	// The scopes below stop hoisted variables from extending into parent scopes
	ScopeEntry // This is a module
	ScopeFunctionArgs
	ScopeFunctionBody
)

func (kind ScopeKind) StopsHoisting() bool {
	return kind >= ScopeEntry
}

type ScopeMember struct {
	Loc logger.Loc
	Ref Ref
}

type Scope struct {
	Parent   *Scope
	Children []*Scope
	Members  map[string]ScopeMember
	LabelRef Ref
	Kind     ScopeKind
}

type LocRef struct {
	Loc logger.Loc
	Ref Ref
}

type PropertyKind int

const (
	PropertyNormal PropertyKind = iota
	PropertyGet
	PropertySet
	PropertySpread
)

type Property struct {
	Key Expr

	// This is omitted for shorthand properties
	Value *Expr

	// This is used when parsing a pattern that uses default values, like
	// "({a = 1} = {})".
	Initializer *Expr

	Kind         PropertyKind
	IsComputed   bool
	IsMethod     bool
	WasShorthand bool
}

type PropertyBinding struct {
	Key          Expr
	Value        Binding
	DefaultValue *Expr
	IsComputed   bool
	IsSpread     bool
}

type Arg struct {
	Binding Binding
	Default *Expr
}

type Fn struct {
	Name     *LocRef
	NameText string
	Args     []Arg
	Body     FnBody

	IsAsync     bool
	IsGenerator bool
	HasRestArg  bool
}

type FnBody struct {
	Loc   logger.Loc
	Stmts []Stmt
}

type Class struct {
	Name       *LocRef
	NameText   string
	Extends    *Expr
	BodyLoc    logger.Loc
	Properties []Property
}

type ArrayBinding struct {
	Binding      Binding
	DefaultValue *Expr
}

type Binding struct {
	Loc  logger.Loc
	Data B
}

// This interface is never called. Its purpose is to encode a variant type in
// Go's type system.
type B interface{ isBinding() }

type BMissing struct{}

type BIdentifier struct {
	Name string
	Ref  Ref
}

type BArray struct {
	Items     []ArrayBinding
	HasSpread bool
}

type BObject struct {
	Properties []PropertyBinding
}

func (*BMissing) isBinding()    {}
func (*BIdentifier) isBinding() {}
func (*BArray) isBinding()      {}
func (*BObject) isBinding()     {}

type Expr struct {
	Loc  logger.Loc
	Data E
}

// This interface is never called. Its purpose is to encode a variant type in
// Go's type system.
type E interface{ isExpr() }

type EArray struct {
	Items           []Expr
	CloseBracketLoc logger.Loc
}

type EUnary struct {
	Value Expr
	Op    string
}

type EBinary struct {
	Left  Expr
	Right Expr
	Op    string
}

type EBoolean struct{ Value bool }

type ENull struct{}

type EUndefined struct{}

type EThis struct{}

type ESuper struct{}

type ENew struct {
	Target        Expr
	Args          []Expr
	CloseParenLoc logger.Loc
	HasSpread     bool
}

type ENewTarget struct{}

type EImportMeta struct{}

type ECall struct {
	Target        Expr
	Args          []Expr
	CloseParenLoc logger.Loc
	HasSpread     bool
}

type EDot struct {
	Target  Expr
	Name    string
	NameLoc logger.Loc
}

type EIndex struct {
	Target          Expr
	Index           Expr
	CloseBracketLoc logger.Loc
}

type EArrow struct {
	Args       []Arg
	Body       FnBody
	IsAsync    bool
	HasRestArg bool
	PreferExpr bool
}

type EFunction struct{ Fn Fn }

type EClass struct{ Class Class }

type EIdentifier struct {
	Name string
	Ref  Ref
}

type EMissing struct{}

type ENumber struct{ Value float64 }

type EBigInt struct{ Value string }

type EObject struct {
	Properties    []Property
	CloseBraceLoc logger.Loc
}

type ESpread struct{ Value Expr }

type EString struct {
	Value string

	// Just past the closing quote
	EndLoc logger.Loc
}

type TemplatePart struct {
	Value   Expr
	Tail    string
	TailLoc logger.Loc
}

type ETemplate struct {
	Tag    *Expr
	Head   string
	Parts  []TemplatePart
	EndLoc logger.Loc
}

// Value includes the slashes and flags, e.g. "/\\.json$/i"
type ERegExp struct{ Value string }

type EAwait struct{ Value Expr }

type EYield struct {
	Value  *Expr
	IsStar bool
}

type EIf struct {
	Test Expr
	Yes  Expr
	No   Expr
}

// A dynamic "import(...)" expression
type EImportCall struct {
	Expr          Expr
	CloseParenLoc logger.Loc

	// Comments inside "import()" carry magic options (webpackChunkName,
	// webpackMode). They are preserved verbatim for the scanner.
	LeadingInteriorComments []string
}

func (*EArray) isExpr()      {}
func (*EUnary) isExpr()      {}
func (*EBinary) isExpr()     {}
func (*EBoolean) isExpr()    {}
func (*ENull) isExpr()       {}
func (*EUndefined) isExpr()  {}
func (*EThis) isExpr()       {}
func (*ESuper) isExpr()      {}
func (*ENew) isExpr()        {}
func (*ENewTarget) isExpr()  {}
func (*EImportMeta) isExpr() {}
func (*ECall) isExpr()       {}
func (*EDot) isExpr()        {}
func (*EIndex) isExpr()      {}
func (*EArrow) isExpr()      {}
func (*EFunction) isExpr()   {}
func (*EClass) isExpr()      {}
func (*EIdentifier) isExpr() {}
func (*EMissing) isExpr()    {}
func (*ENumber) isExpr()     {}
func (*EBigInt) isExpr()     {}
func (*EObject) isExpr()     {}
func (*ESpread) isExpr()     {}
func (*EString) isExpr()     {}
func (*ETemplate) isExpr()   {}
func (*ERegExp) isExpr()     {}
func (*EAwait) isExpr()      {}
func (*EYield) isExpr()      {}
func (*EIf) isExpr()         {}
func (*EImportCall) isExpr() {}

type Stmt struct {
	Loc  logger.Loc
	Data S
}

// This interface is never called. Its purpose is to encode a variant type in
// Go's type system.
type S interface{ isStmt() }

type SBlock struct{ Stmts []Stmt }

type SEmpty struct{}

type SDebugger struct{}

type SDirective struct{ Value string }

type SExpr struct{ Value Expr }

type ClauseItem struct {
	Alias    string
	AliasLoc logger.Loc
	Name     LocRef

	// This is used for "export {foo as bar} from 'path'" statements. Both
	// "foo" and "bar" are aliases in that case.
	OriginalName string
}

// This object represents all of these types of import statements:
//
//	import 'path'
//	import {item1, item2} from 'path'
//	import * as ns from 'path'
//	import defaultItem, {item1, item2} from 'path'
//	import defaultItem, * as ns from 'path'
type SImport struct {
	DefaultName *LocRef

	// The original text of the default import name, kept so the binder can
	// declare it without consulting the source
	DefaultNameText string

	Items       *[]ClauseItem
	StarNameLoc *logger.Loc
	StarName    string
	StarNameRef Ref

	Path     logger.Range
	PathText string

	// Just past the end of the whole statement, including any trailing
	// semicolon
	EndLoc logger.Loc
}

// "export {a, b as c}"
type SExportClause struct {
	Items  []ClauseItem
	EndLoc logger.Loc
}

// "export {a, b as c} from 'path'"
type SExportFrom struct {
	Items    []ClauseItem
	Path     logger.Range
	PathText string
	EndLoc   logger.Loc
}

// "export * from 'path'" and "export * as ns from 'path'"
type SExportStar struct {
	Alias    *ExportStarAlias
	Path     logger.Range
	PathText string
	EndLoc   logger.Loc
}

type ExportStarAlias struct {
	Loc  logger.Loc
	Name string
}

type SExportDefault struct {
	DefaultName LocRef
	Value       Stmt // May be a SExpr, SFunction, or SClass
}

type SFunction struct {
	Fn       Fn
	IsExport bool
}

type SClass struct {
	Class    Class
	IsExport bool
}

type SLabel struct {
	Name LocRef
	Stmt Stmt
}

type SIf struct {
	Test Expr
	Yes  Stmt
	No   *Stmt
}

type SFor struct {
	Init   *Stmt // May be a SLocal or SExpr
	Test   *Expr
	Update *Expr
	Body   Stmt
}

type SForIn struct {
	Init  Stmt
	Value Expr
	Body  Stmt
}

type SForOf struct {
	Init    Stmt
	Value   Expr
	Body    Stmt
	IsAwait bool
}

type SDoWhile struct {
	Body Stmt
	Test Expr
}

type SWhile struct {
	Test Expr
	Body Stmt
}

type SWith struct {
	Value Expr
	Body  Stmt
}

type Catch struct {
	Loc     logger.Loc
	Binding *Binding
	Body    []Stmt
}

type Finally struct {
	Loc   logger.Loc
	Stmts []Stmt
}

type STry struct {
	Body    []Stmt
	Catch   *Catch
	Finally *Finally
}

type Case struct {
	Value *Expr
	Body  []Stmt
}

type SSwitch struct {
	Test  Expr
	Cases []Case
}

type SReturn struct{ Value *Expr }

type SThrow struct{ Value Expr }

type LocalKind uint8

const (
	LocalVar LocalKind = iota
	LocalLet
	LocalConst
)

type Decl struct {
	Binding Binding
	Value   *Expr
}

type SLocal struct {
	Decls    []Decl
	Kind     LocalKind
	IsExport bool
}

type SBreak struct{ Label *LocRef }

type SContinue struct{ Label *LocRef }

func (*SBlock) isStmt()         {}
func (*SEmpty) isStmt()         {}
func (*SDebugger) isStmt()      {}
func (*SDirective) isStmt()     {}
func (*SExpr) isStmt()          {}
func (*SImport) isStmt()        {}
func (*SExportClause) isStmt()  {}
func (*SExportFrom) isStmt()    {}
func (*SExportStar) isStmt()    {}
func (*SExportDefault) isStmt() {}
func (*SFunction) isStmt()      {}
func (*SClass) isStmt()         {}
func (*SLabel) isStmt()         {}
func (*SIf) isStmt()            {}
func (*SFor) isStmt()           {}
func (*SForIn) isStmt()         {}
func (*SForOf) isStmt()         {}
func (*SDoWhile) isStmt()       {}
func (*SWhile) isStmt()         {}
func (*SWith) isStmt()          {}
func (*STry) isStmt()           {}
func (*SSwitch) isStmt()        {}
func (*SReturn) isStmt()        {}
func (*SThrow) isStmt()         {}
func (*SLocal) isStmt()         {}
func (*SBreak) isStmt()         {}
func (*SContinue) isStmt()      {}

// AST is the parse result for one module.
type AST struct {
	Stmts   []Stmt
	Symbols []Symbol

	ModuleScope *Scope

	// These are set during parsing so the scanners don't need an extra pass
	HasES6Imports bool
	HasES6Exports bool

	Hashbang  string
	Directive string
}
