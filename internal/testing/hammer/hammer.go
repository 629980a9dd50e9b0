// Package hammer runs a test body from many goroutines released at once, to surface races in shared caches.
package hammer

import (
	"runtime"
	"sync"
	"testing"
)

// Hammer invokes a test concurrently in P goroutines N times per goroutine.
//
// For example, to race helper resolution:
//
//	P, N := 8, 100
//	if testing.Short() {
//		P, N = 4, 10
//	}
//	hammer.NewHammer(t, P, N).Run(func(p, n int) {
//		_, err := helpers.RangeCheck(4)
//		require.NoError(t, err)
//	}, nil)
//	if t.Failed() {
//		return
//	}
type Hammer interface {
	// Run starts P goroutines and, once all are running, calls onRunning, if not nil, then releases them together.
	// Each goroutine calls test N times with its goroutine and iteration index. Run returns when all have finished.
	Run(test func(p, n int), onRunning func())
}

// NewHammer returns a Hammer of P goroutines doing N iterations each.
func NewHammer(t *testing.T, P, N int) Hammer {
	return &hammer{t: t, P: P, N: N}
}

type hammer struct {
	t    *testing.T
	P, N int
}

// Run implements Hammer.Run
func (h *hammer) Run(test func(p, n int), onRunning func()) {
	// Fewer cores than goroutines, so that they have to switch.
	procs := h.P / 2
	if procs < 1 {
		procs = 1
	}
	defer runtime.GOMAXPROCS(runtime.GOMAXPROCS(procs))

	var running, finished sync.WaitGroup
	release := make(chan struct{})
	running.Add(h.P)
	finished.Add(h.P)
	for p := 0; p < h.P; p++ {
		p := p
		go func() {
			defer finished.Done()
			// Report a panic of test on the calling test rather than crashing the binary.
			defer func() {
				if recovered := recover(); recovered != nil {
					h.t.Error(recovered)
				}
			}()
			running.Done()
			<-release
			for n := 0; n < h.N; n++ {
				test(p, n)
			}
		}()
	}

	running.Wait()
	if onRunning != nil {
		onRunning()
	}
	close(release)
	finished.Wait()
}
