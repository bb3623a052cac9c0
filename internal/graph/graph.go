package graph

import (
	"github.com/CyberFlameGO/rspack/internal/ast"
	"github.com/CyberFlameGO/rspack/internal/logger"
)

// BuildInfo is the per-module summary the scanners hand to the graph
// builder. It feeds export-info construction and runtime injection.
type BuildInfo struct {
	// The names this module exports through re-export statements
	HarmonyNamedExports map[string]bool

	// The umbrella dependency ids of "export *" statements, in emission
	// order; drives wildcard re-export expansion at runtime
	AllStarExports []ast.DependencyID

	// Set when an ESM-output module contains CommonJS requests; the runtime
	// must inject a createRequire call
	NeedCreateRequire bool

	// Set by an argument-less HMR accept hook
	SelfAccepting bool
}

func NewBuildInfo() *BuildInfo {
	return &BuildInfo{HarmonyNamedExports: make(map[string]bool)}
}

// Module couples a module's identity with its analysis output.
type Module struct {
	Identifier ast.ModuleIdentifier
	Source     logger.Source

	Dependencies []ast.Dependency
	Rewrites     []ast.DependencyRewrite
	BuildInfo    *BuildInfo

	// Filled in by the graph builder: the resolved identifier per
	// module-request dependency, keyed by dependency id
	ResolvedRequests map[ast.DependencyID]ast.ModuleIdentifier
}

func NewModule(identifier ast.ModuleIdentifier, source logger.Source) *Module {
	return &Module{
		Identifier:       identifier,
		Source:           source,
		BuildInfo:        NewBuildInfo(),
		ResolvedRequests: make(map[ast.DependencyID]ast.ModuleIdentifier),
	}
}

// Graph is the bundle-wide module table. Modules are keyed by identifier
// and kept in discovery order for deterministic output.
type Graph struct {
	order   []ast.ModuleIdentifier
	modules map[ast.ModuleIdentifier]*Module
}

func NewGraph() *Graph {
	return &Graph{modules: make(map[ast.ModuleIdentifier]*Module)}
}

func (g *Graph) Add(module *Module) {
	if _, ok := g.modules[module.Identifier]; ok {
		return
	}
	g.modules[module.Identifier] = module
	g.order = append(g.order, module.Identifier)
}

func (g *Graph) Get(identifier ast.ModuleIdentifier) (*Module, bool) {
	module, ok := g.modules[identifier]
	return module, ok
}

func (g *Graph) Len() int {
	return len(g.order)
}

// ForEach visits modules in discovery order.
func (g *Graph) ForEach(fn func(*Module)) {
	for _, identifier := range g.order {
		fn(g.modules[identifier])
	}
}
