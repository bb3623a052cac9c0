package js_printer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/CyberFlameGO/rspack/internal/ast"
)

// ApplyRewrites edits the original source by replacing each template's
// [lo, hi) byte range with its payload. Templates may arrive in any order;
// they are applied in ascending lo. Overlapping templates indicate a scanner
// bug and abort.
func ApplyRewrites(contents string, rewrites []ast.DependencyRewrite) string {
	if len(rewrites) == 0 {
		return contents
	}

	sorted := append([]ast.DependencyRewrite(nil), rewrites...)
	sort.SliceStable(sorted, func(i int, j int) bool {
		loI, _ := sorted[i].RewriteRange()
		loJ, _ := sorted[j].RewriteRange()
		return loI < loJ
	})

	var sb strings.Builder
	end := uint32(0)
	for _, rewrite := range sorted {
		lo, hi := rewrite.RewriteRange()
		if lo > hi || hi > uint32(len(contents)) {
			panic(fmt.Sprintf("rewrite template [%d, %d) is out of bounds for a %d-byte source", lo, hi, len(contents)))
		}
		if lo < end {
			panic(fmt.Sprintf("rewrite template [%d, %d) overlaps the previous template ending at %d", lo, hi, end))
		}
		sb.WriteString(contents[end:lo])
		sb.WriteString(rewrite.Replacement())
		end = hi
	}
	sb.WriteString(contents[end:])
	return sb.String()
}
