package wasmlower

import (
	"go.uber.org/zap"

	"github.com/wasmlower/wasmlower/internal/logging"
	"github.com/wasmlower/wasmlower/internal/vm"
	"github.com/wasmlower/wasmlower/internal/wasm"
)

// Features are the enabled WebAssembly proposals. See CompilerConfig.WithFeatures.
type Features = wasm.Features

const (
	FeatureSignExtensionOps                = wasm.FeatureSignExtensionOps
	FeatureNonTrappingFloatToIntConversion = wasm.FeatureNonTrappingFloatToIntConversion
	FeatureMultiValue                      = wasm.FeatureMultiValue
	FeatureSIMD                            = wasm.FeatureSIMD
	FeaturesAll                            = wasm.FeaturesAll
)

// LogScopes select which stages of compilation log. See CompilerConfig.WithLogScopes.
type LogScopes = logging.LogScopes

const (
	LogScopeNone     = logging.LogScopeNone
	LogScopeDecode   = logging.LogScopeDecode
	LogScopeValidate = logging.LogScopeValidate
	LogScopeEmit     = logging.LogScopeEmit
	LogScopeHelper   = logging.LogScopeHelper
	LogScopeCache    = logging.LogScopeCache
	LogScopeExec     = logging.LogScopeExec
	LogScopeAll      = logging.LogScopeAll
)

// CompilerConfig controls compilation and execution, with the default implementation as NewCompilerConfig.
//
// Each With method returns a copy, so a config can be shared and specialized safely:
//
//	base := wasmlower.NewCompilerConfig().WithLogger(logger)
//	noSIMD := base.WithFeatureSIMD(false)
type CompilerConfig struct {
	features         Features
	caps             *vm.Capabilities
	logger           *zap.Logger
	logScopes        LogScopes
	cache            Cache
	callStackCeiling int
	memoryLimitPages uint32
}

// defaultConfig helps avoid copy/pasting the wrong defaults.
var defaultConfig = &CompilerConfig{
	features:         FeaturesAll,
	logScopes:        LogScopeAll,
	callStackCeiling: vm.DefaultCallStackCeiling,
	memoryLimitPages: vm.MemoryMaxPages,
}

// clone ensures all fields are copied even if nil.
func (c *CompilerConfig) clone() *CompilerConfig {
	ret := *c
	return &ret
}

// NewCompilerConfig returns the default config: every feature enabled, the default capabilities of the target,
// no cache, and the process-wide logger.
func NewCompilerConfig() *CompilerConfig {
	ret := defaultConfig.clone()
	ret.caps = vm.Default()
	return ret
}

// WithFeatures replaces the enabled features.
func (c *CompilerConfig) WithFeatures(features Features) *CompilerConfig {
	ret := c.clone()
	ret.features = features
	return ret
}

// WithFeatureSIMD enables the vector prefix and the v128 value type. This defaults to true.
//
// See https://github.com/WebAssembly/simd/blob/main/proposals/simd/SIMD.md
func (c *CompilerConfig) WithFeatureSIMD(enabled bool) *CompilerConfig {
	ret := c.clone()
	ret.features = ret.features.Set(FeatureSIMD, enabled)
	return ret
}

// WithFeatureSignExtensionOps enables sign-extend operations. This defaults to true.
//
// See https://github.com/WebAssembly/spec/blob/main/proposals/sign-extension-ops/Overview.md
func (c *CompilerConfig) WithFeatureSignExtensionOps(enabled bool) *CompilerConfig {
	ret := c.clone()
	ret.features = ret.features.Set(FeatureSignExtensionOps, enabled)
	return ret
}

// WithFeatureNonTrappingFloatToIntConversion enables the saturating trunc_sat operations. This defaults to true.
//
// See https://github.com/WebAssembly/spec/blob/main/proposals/nontrapping-float-to-int-conversion/Overview.md
func (c *CompilerConfig) WithFeatureNonTrappingFloatToIntConversion(enabled bool) *CompilerConfig {
	ret := c.clone()
	ret.features = ret.features.Set(FeatureNonTrappingFloatToIntConversion, enabled)
	return ret
}

// WithFeatureMultiValue allows block types to reference a function type. This defaults to true.
//
// See https://github.com/WebAssembly/spec/blob/main/proposals/multi-value/Overview.md
func (c *CompilerConfig) WithFeatureMultiValue(enabled bool) *CompilerConfig {
	ret := c.clone()
	ret.features = ret.features.Set(FeatureMultiValue, enabled)
	return ret
}

// WithCapabilities replaces the primitive set of the target. Operations with no primitive are lowered where a
// lowering exists, and fail to compile otherwise. A nil value restores vm.Default.
func (c *CompilerConfig) WithCapabilities(caps *vm.Capabilities) *CompilerConfig {
	if caps == nil {
		caps = vm.Default()
	}
	ret := c.clone()
	ret.caps = caps
	return ret
}

// WithLogger sets the logger used for compilation and traps. Defaults to the process-wide logger, which is a no-op
// unless replaced.
func (c *CompilerConfig) WithLogger(logger *zap.Logger) *CompilerConfig {
	ret := c.clone()
	ret.logger = logger
	return ret
}

// WithLogScopes selects which stages log. Defaults to LogScopeAll, which only writes when the logger is enabled
// for debug.
func (c *CompilerConfig) WithLogScopes(scopes LogScopes) *CompilerConfig {
	ret := c.clone()
	ret.logScopes = scopes
	return ret
}

// WithCache configures a cache of compiled bodies, which can be shared by compilers of any config. Defaults to nil,
// which compiles every body.
func (c *CompilerConfig) WithCache(cache Cache) *CompilerConfig {
	ret := c.clone()
	ret.cache = cache
	return ret
}

// WithCallStackCeiling sets the call depth at which execution traps with a stack overflow. Defaults to
// vm.DefaultCallStackCeiling.
func (c *CompilerConfig) WithCallStackCeiling(ceiling int) *CompilerConfig {
	ret := c.clone()
	ret.callStackCeiling = ceiling
	return ret
}

// WithMemoryLimitPages reduces the maximum number of pages a module can define from 65536 pages (4GiB).
//
// Notes:
//   - A memory without a max is limited to this value.
//   - A memory whose min or max exceeds this fails to compile.
func (c *CompilerConfig) WithMemoryLimitPages(pages uint32) *CompilerConfig {
	ret := c.clone()
	ret.memoryLimitPages = pages
	return ret
}

func (c *CompilerConfig) scoped() *logging.Scoped {
	return logging.NewScoped(c.logger, c.logScopes)
}
