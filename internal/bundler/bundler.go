package bundler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/CyberFlameGO/rspack/internal/ast"
	"github.com/CyberFlameGO/rspack/internal/cache"
	"github.com/CyberFlameGO/rspack/internal/config"
	"github.com/CyberFlameGO/rspack/internal/css_scanner"
	"github.com/CyberFlameGO/rspack/internal/graph"
	"github.com/CyberFlameGO/rspack/internal/js_parser"
	"github.com/CyberFlameGO/rspack/internal/js_scanner"
	"github.com/CyberFlameGO/rspack/internal/logger"
	"github.com/CyberFlameGO/rspack/internal/resolver"
)

type Options struct {
	Config   *config.Config
	Resolver resolver.Resolver
	Cache    *cache.ScanCache
	Log      logger.Log
	ZLog     zerolog.Logger

	// Maximum number of modules analyzed concurrently; 0 means unlimited
	Parallelism int
}

// Bundle walks the module graph from the configured entries, analyzing
// modules in parallel. Each module's analysis is single-threaded and owns
// its AST exclusively; the walk shares only the discovered-set and the
// resolver. Cancellation is observed between module analyses.
func Bundle(ctx context.Context, options Options) (*graph.Graph, error) {
	if options.Resolver == nil {
		options.Resolver = resolver.NewFSResolver()
	}

	b := &builder{
		options: options,
		graph:   graph.NewGraph(),
		seen:    make(map[ast.ModuleIdentifier]bool),
	}

	group, groupCtx := errgroup.WithContext(ctx)
	if options.Parallelism > 0 {
		group.SetLimit(options.Parallelism)
	}
	b.group = group
	b.ctx = groupCtx

	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	for _, entry := range options.Config.Entries {
		entryDep := ast.NewEntryDependency(entry)
		identifier, resolveErr := options.Resolver.Resolve(cwd, entry)
		if resolveErr != nil {
			return nil, fmt.Errorf("cannot resolve entry %q: %w", entry, resolveErr)
		}
		b.options.ZLog.Info().
			Str("entry", entry).
			Str("module", string(identifier)).
			Uint32("dependency", uint32(entryDep.ID())).
			Msg("entry resolved")
		if err := b.enqueue(identifier); err != nil {
			return nil, err
		}
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	if b.options.Log.HasErrors() {
		return nil, fmt.Errorf("build failed with errors")
	}
	return b.graph, nil
}

type builder struct {
	options Options
	group   *errgroup.Group
	ctx     context.Context

	mu    sync.Mutex
	seen  map[ast.ModuleIdentifier]bool
	graph *graph.Graph
}

// enqueue hands a newly discovered module to the worker pool. When the pool
// is at its limit the module is scanned in the calling goroutine instead:
// workers discover modules mid-scan, and a worker blocking on its own full
// pool would never release a slot.
func (b *builder) enqueue(identifier ast.ModuleIdentifier) error {
	b.mu.Lock()
	already := b.seen[identifier]
	b.seen[identifier] = true
	b.mu.Unlock()
	if already {
		return nil
	}

	if b.group.TryGo(func() error {
		if err := b.ctx.Err(); err != nil {
			return err
		}
		return b.scanModule(identifier)
	}) {
		return nil
	}

	if err := b.ctx.Err(); err != nil {
		return err
	}
	return b.scanModule(identifier)
}

func (b *builder) scanModule(identifier ast.ModuleIdentifier) error {
	path := string(identifier)
	if path == "" || strings.HasPrefix(path, "external:") {
		return nil
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		b.options.Log.AddError(nil, logger.Loc{}, fmt.Sprintf("cannot read %q: %s", path, err))
		return nil
	}

	source := logger.Source{
		KeyPath:    logger.Path{Text: path},
		PrettyPath: path,
		Contents:   string(contents),
	}

	module := graph.NewModule(identifier, source)
	switch config.ModuleTypeForPath(path) {
	case config.ModuleTypeCSS:
		result := css_scanner.Scan(b.options.Log, source)
		module.Dependencies = result.Dependencies
		module.Rewrites = result.Rewrites

	case config.ModuleTypeWasm:
		// Wasm exports are known statically; nothing to scan
		module.Dependencies = []ast.Dependency{ast.NewStaticExportsDependency(nil, false)}

	default:
		result, scanErr := b.analyzeJS(path, source)
		if scanErr != nil {
			return scanErr
		}
		if result == nil {
			return nil // parse errors were logged
		}
		module.Dependencies = result.Dependencies
		module.Rewrites = result.Rewrites
		module.BuildInfo.HarmonyNamedExports = result.HarmonyNamedExports
		module.BuildInfo.AllStarExports = result.AllStarExports
		module.BuildInfo.NeedCreateRequire = result.NeedCreateRequire
		module.BuildInfo.SelfAccepting = result.SelfAccepting
	}

	if err := b.resolveDependencies(module); err != nil {
		return err
	}

	b.mu.Lock()
	b.graph.Add(module)
	b.mu.Unlock()
	return nil
}

func (b *builder) analyzeJS(path string, source logger.Source) (*js_scanner.ScanResult, error) {
	var key uint64
	if b.options.Cache != nil {
		key = cache.Key(path, source.Contents)
		if entry, ok := b.options.Cache.Get(key); ok {
			b.options.ZLog.Debug().Str("module", path).Msg("scan cache hit")
			return entry.Result, nil
		}
	}

	tree, ok := js_parser.Parse(b.options.Log, source)
	if !ok {
		return nil, nil
	}

	syntaxes, err := js_scanner.ParseWorkerSyntaxes(b.options.Config.WorkerSyntaxes)
	if err != nil {
		return nil, err
	}
	result := js_scanner.Scan(b.options.Log, b.options.ZLog, source, &tree, js_scanner.Options{
		WorkerSyntaxes: syntaxes,
		ESMOutput:      b.options.Config.ESMOutput,
	})

	if b.options.Cache != nil {
		b.options.Cache.Put(key, &cache.Entry{Tree: &tree, Result: result})
	}
	return result, nil
}

// resolveDependencies maps every module request to an identifier and
// enqueues newly discovered modules. Weak and optional requests downgrade
// resolution failures to warnings.
func (b *builder) resolveDependencies(module *graph.Module) error {
	moduleDir := filepath.Dir(string(module.Identifier))

	for _, dep := range module.Dependencies {
		md, ok := ast.AsModuleDependency(dep)
		if !ok {
			continue
		}
		context := moduleDir
		if md.Context() != "" {
			context = md.Context()
		}
		if md.Options() != nil {
			// Context requests expand to directories at generation time
			continue
		}

		resolved, err := b.options.Resolver.Resolve(context, md.Request())
		if err != nil {
			span := logger.Range{}
			if s := md.Span(); s != nil {
				span = *s
			}
			if md.Weak() || md.GetOptional() {
				b.options.Log.AddRangeWarning(&module.Source, span,
					fmt.Sprintf("cannot resolve optional %q: %s", md.Request(), err))
			} else {
				b.options.Log.AddRangeError(&module.Source, span,
					fmt.Sprintf("cannot resolve %q", md.Request()))
			}
			continue
		}

		module.ResolvedRequests[md.ID()] = resolved
		if err := b.enqueue(resolved); err != nil {
			return err
		}
	}
	return nil
}
