package wasmlower

import (
	"bytes"
	"encoding/binary"
	"strings"
	"sync"

	"github.com/dchest/siphash"
	"go.uber.org/zap"

	"github.com/wasmlower/wasmlower/internal/compiler"
	"github.com/wasmlower/wasmlower/internal/logging"
	"github.com/wasmlower/wasmlower/internal/vm"
)

// Cache holds compiled bodies across calls to Compiler.Compile, so that a body already compiled under the same
// features and capabilities, in a module it references the same way, isn't compiled again. Helper routines are
// shared the same way.
//
// A Cache is safe for concurrent use, and may be shared by compilers of different configs.
type Cache interface {
	// Len returns the count of cached bodies.
	Len() int

	// Clear drops every cached body and helper.
	Clear()
}

// NewCache returns a new Cache to be passed to CompilerConfig.WithCache.
func NewCache() Cache {
	return &cache{bodies: map[uint64]*cacheEntry{}, helpers: map[string]*compiler.HelperCache{}}
}

// The siphash key is fixed: the hash only spreads entries, and every hit is verified against the full key.
const (
	cacheK0 = 0x7761736d6c6f7765
	cacheK1 = 0x722d626f64696573
)

type cacheEntry struct {
	key     []byte
	routine *vm.Routine
}

// cache implements Cache interface.
type cache struct {
	mux     sync.RWMutex
	bodies  map[uint64]*cacheEntry
	helpers map[string]*compiler.HelperCache
}

// Len implements the same method on the Cache interface.
func (c *cache) Len() int {
	c.mux.RLock()
	defer c.mux.RUnlock()
	return len(c.bodies)
}

// Clear implements the same method on the Cache interface.
func (c *cache) Clear() {
	c.mux.Lock()
	c.bodies = map[uint64]*cacheEntry{}
	c.helpers = map[string]*compiler.HelperCache{}
	c.mux.Unlock()
}

// scope identifies the features and capabilities a body was compiled under.
func cacheScope(features Features, caps *vm.Capabilities) string {
	var b strings.Builder
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(features))
	b.Write(buf[:])
	for _, k := range caps.Keys() {
		b.WriteString(k.String())
		b.WriteByte(0)
	}
	return b.String()
}

// helperCache returns the HelperCache of scope, creating it from caps if needed.
func (c *cache) helperCache(scope string, caps *vm.Capabilities, log *logging.Scoped) *compiler.HelperCache {
	c.mux.RLock()
	h, ok := c.helpers[scope]
	c.mux.RUnlock()
	if ok {
		return h
	}

	c.mux.Lock()
	defer c.mux.Unlock()
	if h, ok = c.helpers[scope]; !ok {
		h = compiler.NewHelperCache(caps, log)
		c.helpers[scope] = h
	}
	return h
}

// bodyKey is the full identity of one compiled body.
func bodyKey(scope string, module []byte, index uint32, f *FunctionDescription) []byte {
	key := make([]byte, 0, len(scope)+len(module)+len(f.Locals)+len(f.Code)+16)
	key = appendUint32(key, uint32(len(scope)))
	key = append(key, scope...)
	key = appendUint32(key, uint32(len(module)))
	key = append(key, module...)
	key = appendUint32(key, index)
	key = appendKinds(key, f.Locals)
	return append(key, f.Code...)
}

func (c *cache) get(key []byte, log *logging.Scoped) (*vm.Routine, bool) {
	h := siphash.Hash(cacheK0, cacheK1, key)
	c.mux.RLock()
	e, ok := c.bodies[h]
	c.mux.RUnlock()
	if ok && bytes.Equal(e.key, key) {
		log.Debug(logging.LogScopeCache, "cache hit", zap.Uint64("key", h), zap.String("function", e.routine.Name))
		return e.routine, true
	}
	log.Debug(logging.LogScopeCache, "cache miss", zap.Uint64("key", h))
	return nil, false
}

func (c *cache) put(key []byte, r *vm.Routine) {
	h := siphash.Hash(cacheK0, cacheK1, key)
	c.mux.Lock()
	c.bodies[h] = &cacheEntry{key: key, routine: r}
	c.mux.Unlock()
}
