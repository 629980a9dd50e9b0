// Package logging holds the zap logger shared by the compiler packages, and the scopes that select which
// stages of compilation write to it. This is in an independent package to avoid dependency cycles.
package logging

import (
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
)

type LogScopes uint64

const (
	LogScopeNone             = LogScopes(0)
	LogScopeDecode LogScopes = 1 << iota
	LogScopeValidate
	LogScopeEmit
	LogScopeHelper
	LogScopeCache
	LogScopeExec
	LogScopeAll = LogScopes(0xffffffffffffffff)
)

func scopeName(s LogScopes) string {
	switch s {
	case LogScopeDecode:
		return "decode"
	case LogScopeValidate:
		return "validate"
	case LogScopeEmit:
		return "emit"
	case LogScopeHelper:
		return "helper"
	case LogScopeCache:
		return "cache"
	case LogScopeExec:
		return "exec"
	default:
		return fmt.Sprintf("<unknown=%d>", s)
	}
}

// IsEnabled returns true if the scope (or group of scopes) is enabled.
func (f LogScopes) IsEnabled(scope LogScopes) bool {
	return f&scope != 0
}

// String implements fmt.Stringer by returning each enabled log scope.
func (f LogScopes) String() string {
	if f == LogScopeAll {
		return "all"
	}
	var builder strings.Builder
	for i := 1; i <= 6; i++ {
		target := LogScopes(1 << i)
		if f.IsEnabled(target) {
			if builder.Len() > 0 {
				builder.WriteByte('|')
			}
			builder.WriteString(scopeName(target))
		}
	}
	return builder.String()
}

// ParseLogScopes parses a comma-separated list of scope names, as accepted by the CLI.
func ParseLogScopes(s string) (LogScopes, error) {
	var ret LogScopes
	for _, name := range strings.Split(s, ",") {
		switch strings.TrimSpace(name) {
		case "":
		case "all":
			ret |= LogScopeAll
		case "decode":
			ret |= LogScopeDecode
		case "validate":
			ret |= LogScopeValidate
		case "emit":
			ret |= LogScopeEmit
		case "helper":
			ret |= LogScopeHelper
		case "cache":
			ret |= LogScopeCache
		case "exec":
			ret |= LogScopeExec
		default:
			return 0, fmt.Errorf("invalid log scope: %q", name)
		}
	}
	return ret, nil
}

var (
	mu      sync.RWMutex
	current = zap.NewNop()
)

// Logger returns the process-wide logger. It is a no-op logger until SetLogger is called.
func Logger() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// SetLogger replaces the process-wide logger. A nil logger restores the no-op logger.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	mu.Lock()
	current = l
	mu.Unlock()
}

// Scoped is a logger that only writes for the enabled scopes.
type Scoped struct {
	base   *zap.Logger
	scopes LogScopes
}

// NewScoped returns a Scoped writing to base. A nil base falls back to Logger().
func NewScoped(base *zap.Logger, scopes LogScopes) *Scoped {
	if base == nil {
		base = Logger()
	}
	return &Scoped{base: base, scopes: scopes}
}

// Nop never writes.
var Nop = &Scoped{base: zap.NewNop()}

// Enabled reports whether scope writes.
func (s *Scoped) Enabled(scope LogScopes) bool {
	return s != nil && s.scopes.IsEnabled(scope)
}

// Debug writes msg at debug level when scope is enabled.
func (s *Scoped) Debug(scope LogScopes, msg string, fields ...zap.Field) {
	if !s.Enabled(scope) {
		return
	}
	s.base.Debug(msg, append(fields, zap.String("scope", scopeName(scope)))...)
}

// Base returns the underlying logger.
func (s *Scoped) Base() *zap.Logger {
	if s == nil {
		return zap.NewNop()
	}
	return s.base
}
