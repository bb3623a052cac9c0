package test

import (
	"github.com/rs/zerolog"

	"github.com/CyberFlameGO/rspack/internal/logger"
)

func SourceForTest(contents string) logger.Source {
	return logger.Source{
		Index:      0,
		KeyPath:    logger.Path{Text: "<stdin>"},
		PrettyPath: "<stdin>",
		Contents:   contents,
	}
}

// SilentZerolog returns a logger that discards everything, for tests that
// only care about the scan output.
func SilentZerolog() zerolog.Logger {
	return zerolog.Nop()
}
