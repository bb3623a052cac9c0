package js_scanner

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/CyberFlameGO/rspack/internal/ast"
	"github.com/CyberFlameGO/rspack/internal/js_ast"
	"github.com/CyberFlameGO/rspack/internal/logger"
)

// The scanner runs two visitor passes over a parsed module and accumulates
// dependency records and rewrite templates. Phase 1 discovers import/export
// declarations and builds the import map; phase 2 emits a specifier record
// per use site and runs the request detectors (dynamic import, new URL,
// workers, require, HMR).

type ScanState uint8

const (
	StateFresh ScanState = iota
	StatePhase1Scanning
	StateImportsFinalized
	StatePhase2Scanning
	StateFrozen
)

func (s ScanState) String() string {
	switch s {
	case StatePhase1Scanning:
		return "phase1-scanning"
	case StateImportsFinalized:
		return "imports-finalized"
	case StatePhase2Scanning:
		return "phase2-scanning"
	case StateFrozen:
		return "frozen"
	default:
		return "fresh"
	}
}

type Options struct {
	WorkerSyntaxes []WorkerSyntax

	// When the module is emitted as ESM, CommonJS requests need an injected
	// createRequire call; the scanner only reports the fact.
	ESMOutput bool
}

// ScanResult is handed to the graph builder once the scanner freezes.
type ScanResult struct {
	Dependencies []ast.Dependency
	Rewrites     []ast.DependencyRewrite

	HarmonyNamedExports map[string]bool
	AllStarExports      []ast.DependencyID
	NeedCreateRequire   bool

	// Set by an argument-less HMR accept: the module accepts its own updates.
	SelfAccepting bool
}

type Scanner struct {
	log     logger.Log
	zlog    zerolog.Logger
	source  logger.Source
	tree    *js_ast.AST
	options Options
	state   ScanState

	importMap     ImportMap
	imports       *Imports
	workerMatcher *WorkerMatcher

	dependencies []ast.Dependency
	rewrites     []ast.DependencyRewrite

	harmonyNamedExports map[string]bool
	allStarExports      []ast.DependencyID
	needCreateRequire   bool
	selfAccepting       bool

	// The destructuring side-channel: property names destructured out of a
	// namespace binding, keyed by the binding's lexical name and drained by
	// the next identifier reference.
	destructuredNames map[string][]string
}

func NewScanner(log logger.Log, zlog zerolog.Logger, source logger.Source, tree *js_ast.AST, options Options) *Scanner {
	if options.WorkerSyntaxes == nil {
		options.WorkerSyntaxes = DefaultWorkerSyntaxes()
	}
	return &Scanner{
		log:                 log,
		zlog:                zlog,
		source:              source,
		tree:                tree,
		options:             options,
		importMap:           make(ImportMap),
		imports:             NewImports(),
		workerMatcher:       NewWorkerMatcher(options.WorkerSyntaxes),
		harmonyNamedExports: make(map[string]bool),
		destructuredNames:   make(map[string][]string),
	}
}

func Scan(log logger.Log, zlog zerolog.Logger, source logger.Source, tree *js_ast.AST, options Options) *ScanResult {
	return NewScanner(log, zlog, source, tree, options).Scan()
}

func (s *Scanner) Scan() *ScanResult {
	s.transition(StateFresh, StatePhase1Scanning)
	s.scanHarmonyImports()
	s.transition(StatePhase1Scanning, StateImportsFinalized)
	s.emitHarmonyDependencies()
	s.transition(StateImportsFinalized, StatePhase2Scanning)
	s.scanReferences()
	s.transition(StatePhase2Scanning, StateFrozen)

	s.zlog.Debug().
		Str("module", s.source.PrettyPath).
		Int("dependencies", len(s.dependencies)).
		Int("rewrites", len(s.rewrites)).
		Msg("module scan complete")

	return &ScanResult{
		Dependencies:        s.dependencies,
		Rewrites:            s.rewrites,
		HarmonyNamedExports: s.harmonyNamedExports,
		AllStarExports:      s.allStarExports,
		NeedCreateRequire:   s.needCreateRequire,
		SelfAccepting:       s.selfAccepting,
	}
}

func (s *Scanner) State() ScanState { return s.state }

func (s *Scanner) transition(from ScanState, to ScanState) {
	if s.state != from {
		panic(fmt.Sprintf("invalid scanner transition %s -> %s (current state %s)", from, to, s.state))
	}
	s.state = to
}

func (s *Scanner) addDependency(dep ast.Dependency) {
	if s.state == StateFrozen {
		panic("cannot add a dependency to a frozen scanner")
	}
	s.dependencies = append(s.dependencies, dep)
}

func (s *Scanner) addRewrite(rewrite ast.DependencyRewrite) {
	if s.state == StateFrozen {
		panic("cannot add a rewrite to a frozen scanner")
	}
	s.rewrites = append(s.rewrites, rewrite)
}

// isUnbound reports whether an identifier resolved to nothing declared in
// the module, e.g. "require" in a file that never declares it.
func (s *Scanner) isUnbound(ref js_ast.Ref) bool {
	if ref == js_ast.InvalidRef {
		return true
	}
	return s.tree.Symbols[ref.InnerIndex].Kind == js_ast.SymbolUnbound
}

func (s *Scanner) markCommonJSRequest() {
	if s.options.ESMOutput {
		s.needCreateRequire = true
	}
}
