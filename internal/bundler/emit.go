package bundler

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dlclark/regexp2"
	"github.com/rs/zerolog"

	"github.com/CyberFlameGO/rspack/internal/config"
	"github.com/CyberFlameGO/rspack/internal/graph"
	"github.com/CyberFlameGO/rspack/internal/helpers"
	"github.com/CyberFlameGO/rspack/internal/js_printer"
	"github.com/CyberFlameGO/rspack/internal/minify"
)

// Emit applies every module's rewrite templates and writes the results into
// the output directory. When comment extraction is configured, the kept
// comments of each output land in a sidecar ".LICENSE.txt" file.
func Emit(g *graph.Graph, cfg *config.Config, zlog zerolog.Logger) error {
	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		return err
	}

	extractRule, err := extractRuleFor(cfg)
	if err != nil {
		return err
	}
	extracted := minify.NewExtractedComments()

	var emitErr error
	g.ForEach(func(module *graph.Module) {
		if emitErr != nil {
			return
		}
		name := filepath.Base(string(module.Identifier))
		outPath := filepath.Join(cfg.OutDir, name)

		output := js_printer.ApplyRewrites(module.Source.Contents, module.Rewrites)
		if err := os.WriteFile(outPath, []byte(output), 0o644); err != nil {
			emitErr = err
			return
		}

		if extractRule != nil {
			extracted.Extract(extractRule, name, helpers.ScanComments(module.Source.Contents))
		}

		zlog.Debug().Str("module", string(module.Identifier)).Str("output", outPath).Msg("emitted")
	})
	if emitErr != nil {
		return emitErr
	}

	for name, comments := range extracted.TakeAll() {
		sidecar := filepath.Join(cfg.OutDir, name+".LICENSE.txt")
		if err := os.WriteFile(sidecar, []byte(strings.Join(comments, "\n\n")+"\n"), 0o644); err != nil {
			return err
		}
	}

	return runCopyPatterns(cfg, zlog)
}

func extractRuleFor(cfg *config.Config) (*regexp2.Regexp, error) {
	if cfg.ExtractComments == "" {
		return nil, nil
	}
	rule, err := minify.ParseExtractRule(cfg.ExtractComments)
	if err != nil {
		return nil, fmt.Errorf("invalid extract-comments rule: %w", err)
	}
	return rule, nil
}

// runCopyPatterns copies static assets alongside the bundle. Unknown
// to_type values were already defaulted to none at config ingest.
func runCopyPatterns(cfg *config.Config, zlog zerolog.Logger) error {
	for _, pattern := range cfg.Copy {
		err := filepath.Walk(pattern.From, func(path string, info os.FileInfo, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if info.IsDir() || pattern.Ignored(path) {
				return nil
			}

			rel, relErr := filepath.Rel(pattern.From, path)
			if relErr != nil {
				rel = filepath.Base(path)
			}
			target := filepath.Join(cfg.OutDir, pattern.To, rel)
			if pattern.ToType == config.ToTypeFile {
				target = filepath.Join(cfg.OutDir, pattern.To)
			}
			if mkErr := os.MkdirAll(filepath.Dir(target), 0o755); mkErr != nil {
				return mkErr
			}
			if copyErr := copyFile(path, target); copyErr != nil {
				return copyErr
			}
			zlog.Debug().Str("from", path).Str("to", target).Msg("copied asset")
			return nil
		})
		if err != nil {
			return fmt.Errorf("copy pattern %q: %w", pattern.From, err)
		}
	}
	return nil
}

func copyFile(from string, to string) error {
	src, err := os.Open(from)
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.Create(to)
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = io.Copy(dst, src)
	return err
}
