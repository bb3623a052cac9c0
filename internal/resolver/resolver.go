package resolver

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/CyberFlameGO/rspack/internal/ast"
)

// Resolver turns a request string into a module identifier. The analyzer
// never calls it; the graph builder resolves the emitted raw requests.
type Resolver interface {
	Resolve(context string, request string) (ast.ModuleIdentifier, error)
}

// FSResolver resolves relative requests against the importing module's
// directory, probing the configured extensions and index files the way
// node-style resolution does. Bare specifiers (packages) are out of scope
// for the walk and resolve to an external identifier.
type FSResolver struct {
	Extensions []string
}

func NewFSResolver() *FSResolver {
	return &FSResolver{Extensions: []string{".js", ".mjs", ".cjs", ".json", ".css"}}
}

func (r *FSResolver) Resolve(context string, request string) (ast.ModuleIdentifier, error) {
	if request == "" {
		return "", fmt.Errorf("cannot resolve an empty request")
	}

	if !strings.HasPrefix(request, "./") && !strings.HasPrefix(request, "../") &&
		!filepath.IsAbs(request) {
		// Bare specifier: leave it external
		return ast.ModuleIdentifier("external:" + request), nil
	}

	base := request
	if !filepath.IsAbs(base) {
		base = filepath.Join(context, request)
	}

	if path, ok := r.probe(base); ok {
		return ast.ModuleIdentifier(path), nil
	}
	return "", fmt.Errorf("cannot resolve %q from %q", request, context)
}

func (r *FSResolver) probe(base string) (string, bool) {
	if info, err := os.Stat(base); err == nil {
		if !info.IsDir() {
			return base, true
		}
		for _, ext := range r.Extensions {
			index := filepath.Join(base, "index"+ext)
			if stat, statErr := os.Stat(index); statErr == nil && !stat.IsDir() {
				return index, true
			}
		}
		return "", false
	}

	for _, ext := range r.Extensions {
		withExt := base + ext
		if info, err := os.Stat(withExt); err == nil && !info.IsDir() {
			return withExt, true
		}
	}
	return "", false
}
