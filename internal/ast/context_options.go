package ast

import (
	"fmt"

	"github.com/dlclark/regexp2"
)

// ContextMode controls how a context dependency (require.context and the
// dynamic-import-with-expression form) loads its elements.
type ContextMode uint8

const (
	ContextModeSync ContextMode = iota
	ContextModeEager
	ContextModeWeak
	ContextModeAsyncWeak
	ContextModeLazy
	ContextModeLazyOnce
)

func (m ContextMode) String() string {
	switch m {
	case ContextModeEager:
		return "eager"
	case ContextModeWeak:
		return "weak"
	case ContextModeAsyncWeak:
		return "async-weak"
	case ContextModeLazy:
		return "lazy"
	case ContextModeLazyOnce:
		return "lazy-once"
	default:
		return "sync"
	}
}

func ParseContextMode(value string) (ContextMode, error) {
	switch value {
	case "sync":
		return ContextModeSync, nil
	case "eager":
		return ContextModeEager, nil
	case "weak":
		return ContextModeWeak, nil
	case "async-weak":
		return ContextModeAsyncWeak, nil
	case "lazy":
		return ContextModeLazy, nil
	case "lazy-once":
		return ContextModeLazyOnce, nil
	}
	return ContextModeSync, fmt.Errorf("unknown context mode %q", value)
}

// ChunkGroupOptions carries the chunk-group settings a dependency requests
// for the modules it loads (webpackChunkName and friends).
type ChunkGroupOptions struct {
	Name          string
	PreloadOrder  *int32
	PrefetchOrder *int32
}

func (o *ChunkGroupOptions) Clone() *ChunkGroupOptions {
	if o == nil {
		return nil
	}
	clone := *o
	if o.PreloadOrder != nil {
		v := *o.PreloadOrder
		clone.PreloadOrder = &v
	}
	if o.PrefetchOrder != nil {
		v := *o.PrefetchOrder
		clone.PrefetchOrder = &v
	}
	return &clone
}

// ContextOptions describes a directory-wide request. The regexes use
// JavaScript semantics since they come verbatim from user source; they are
// immutable after construction so clones share them by pointer.
type ContextOptions struct {
	Mode         ContextMode
	Recursive    bool
	RegExp       *regexp2.Regexp
	Include      *regexp2.Regexp
	Exclude      *regexp2.Regexp
	Category     DependencyCategory
	Request      string
	ChunkName    string
	GroupOptions *ChunkGroupOptions
}

func (o *ContextOptions) Clone() *ContextOptions {
	if o == nil {
		return nil
	}
	clone := *o
	clone.GroupOptions = o.GroupOptions.Clone()
	return &clone
}
