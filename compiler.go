package wasmlower

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/wasmlower/wasmlower/internal/compiler"
	"github.com/wasmlower/wasmlower/internal/logging"
	"github.com/wasmlower/wasmlower/internal/vm"
	"github.com/wasmlower/wasmlower/internal/wasm"
	"github.com/wasmlower/wasmlower/internal/wasmerr"
)

// Compiler validates module descriptions and compiles their function bodies into routines of the target. It is
// safe for concurrent use.
type Compiler struct {
	config *CompilerConfig
	log    *logging.Scoped
	scope  string
	// helpers is used when the config has no cache.
	helpers *compiler.HelperCache
}

// NewCompiler returns a Compiler of config. A nil config is NewCompilerConfig.
func NewCompiler(config *CompilerConfig) *Compiler {
	if config == nil {
		config = NewCompilerConfig()
	}
	log := config.scoped()
	c := &Compiler{config: config, log: log, scope: cacheScope(config.features, config.caps)}
	if cc, ok := config.cache.(*cache); ok {
		c.helpers = cc.helperCache(c.scope, config.caps, log)
	} else {
		c.helpers = compiler.NewHelperCache(config.caps, log)
	}
	return c
}

// Compile validates desc and compiles every function body, concurrently. The error of the lowest failing function
// index is returned, wrapped as "function[index]: " and matching its wasmerr sentinel under errors.Is.
func (c *Compiler) Compile(ctx context.Context, desc *ModuleDescription) (*CompiledModule, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	v, err := desc.validate(c.config.features, c.config.memoryLimitPages)
	if err != nil {
		return nil, err
	}

	cfg := &compiler.Config{Features: c.config.features, Helpers: c.helpers, Log: c.log}
	cc, _ := c.config.cache.(*cache)
	var fingerprint []byte
	if cc != nil {
		fingerprint = v.fingerprint()
	}

	routines := make([]*vm.Routine, len(desc.Functions))
	bodies := make([][]wasm.Instruction, len(desc.Functions))
	errs := make([]error, len(desc.Functions))
	var wg sync.WaitGroup
	for i := range desc.Functions {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return
			}
			bodies[i], routines[i], errs[i] = c.compileFunction(cfg, v.info, cc, fingerprint, uint32(i), &desc.Functions[i])
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("function[%d]: %w", i, err)
		}
	}
	return &CompiledModule{config: c.config, log: c.log, module: v, desc: desc, bodies: bodies, routines: routines}, nil
}

func (c *Compiler) compileFunction(cfg *compiler.Config, info *compiler.ModuleInfo, cc *cache, fingerprint []byte,
	index uint32, f *FunctionDescription,
) ([]wasm.Instruction, *vm.Routine, error) {
	r := wasm.NewReader(f.Code, 0)
	body, err := wasm.DecodeBody(r, c.config.features)
	if err != nil {
		return nil, nil, err
	}
	if r.Len() != 0 {
		return nil, nil, wasmerr.Decode(wasmerr.KindMalformedImmediate, r.Offset(),
			"%d bytes after the end of the body", r.Len())
	}
	c.log.Debug(logging.LogScopeDecode, "decoded function",
		zap.Uint32("index", index), zap.Int("bytes", len(f.Code)), zap.Int("instructions", len(body)))

	var key []byte
	if cc != nil {
		key = bodyKey(c.scope, fingerprint, index, f)
		if routine, ok := cc.get(key, c.log); ok {
			return body, routine, nil
		}
	}

	routine, err := compiler.CompileFunction(cfg, info, index, f.Locals, body)
	if err != nil {
		return nil, nil, err
	}
	if cc != nil {
		cc.put(key, routine)
	}
	return body, routine, nil
}
