package js_scanner

import (
	"fmt"
	"strings"

	"github.com/dlclark/regexp2"

	"github.com/CyberFlameGO/rspack/internal/js_ast"
)

// A worker syntax entry names a constructor that spawns a worker. Bare names
// match any identifier with that name; "Name from module" matches only
// identifiers bound by importing Name (or the default export) from that
// module. A "()" suffix on the name is accepted and ignored.
type WorkerSyntax struct {
	Ident  string
	Source string // "" for a global match
}

func DefaultWorkerSyntaxes() []WorkerSyntax {
	return []WorkerSyntax{
		{Ident: "Worker"},
		{Ident: "SharedWorker"},
		{Ident: "Worker", Source: "worker_threads"},
	}
}

var workerFromSyntax = regexp2.MustCompile(`^(.+?)(\(\))?\s+from\s+(.+)$`, regexp2.None)

func ParseWorkerSyntax(entry string) (WorkerSyntax, error) {
	entry = strings.TrimSpace(entry)
	if entry == "" {
		return WorkerSyntax{}, fmt.Errorf("empty worker syntax entry")
	}
	if match, _ := workerFromSyntax.FindStringMatch(entry); match != nil {
		groups := match.Groups()
		return WorkerSyntax{
			Ident:  groups[1].String(),
			Source: groups[3].String(),
		}, nil
	}
	return WorkerSyntax{Ident: strings.TrimSuffix(entry, "()")}, nil
}

func ParseWorkerSyntaxes(entries []string) ([]WorkerSyntax, error) {
	syntaxes := make([]WorkerSyntax, 0, len(entries))
	for _, entry := range entries {
		syntax, err := ParseWorkerSyntax(entry)
		if err != nil {
			return nil, err
		}
		syntaxes = append(syntaxes, syntax)
	}
	return syntaxes, nil
}

// WorkerMatcher answers whether a "new X(...)" expression spawns a worker.
// Globals match by bare name; "from" entries match by the resolved binding of
// the local import, so a shadowed or renamed import still matches and an
// unrelated local named "Worker" does not.
type WorkerMatcher struct {
	globals   map[string]bool
	fromRules []WorkerSyntax
	variables map[js_ast.Ref]bool
}

func NewWorkerMatcher(syntaxes []WorkerSyntax) *WorkerMatcher {
	m := &WorkerMatcher{
		globals:   make(map[string]bool),
		variables: make(map[js_ast.Ref]bool),
	}
	for _, syntax := range syntaxes {
		if syntax.Source == "" {
			m.globals[syntax.Ident] = true
		} else {
			m.fromRules = append(m.fromRules, syntax)
		}
	}
	return m
}

// CollectImport records the local bindings of an import declaration whose
// source module and imported name match a "from" rule.
func (m *WorkerMatcher) CollectImport(s *js_ast.SImport) {
	if len(m.fromRules) == 0 {
		return
	}
	for _, rule := range m.fromRules {
		if rule.Source != s.PathText {
			continue
		}
		if s.DefaultName != nil {
			m.variables[s.DefaultName.Ref] = true
		}
		if s.Items != nil {
			for _, item := range *s.Items {
				if item.Alias == rule.Ident || item.Alias == "default" {
					m.variables[item.Name.Ref] = true
				}
			}
		}
	}
}

// MatchNewWorker reports whether the target of a "new" expression is one of
// the configured worker constructors.
func (m *WorkerMatcher) MatchNewWorker(target js_ast.Expr) bool {
	id, ok := target.Data.(*js_ast.EIdentifier)
	if !ok {
		return false
	}
	if m.variables[id.Ref] {
		return true
	}
	return m.globals[id.Name]
}
