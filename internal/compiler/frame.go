package compiler

import (
	"github.com/wasmlower/wasmlower/internal/vm"
	"github.com/wasmlower/wasmlower/internal/wasm"
)

type controlFrameKind byte

const (
	controlFrameKindFunction controlFrameKind = iota
	controlFrameKindBlock
	controlFrameKindLoop
	controlFrameKindIf
	controlFrameKindElse
)

type (
	controlFrame struct {
		kind            controlFrameKind
		params, results []wasm.ValueKind
		// height is the operand stack height below the params.
		height int
		// start is bound to the loop header. end is bound after the frame, and elseLabel to the else arm of an if.
		start, end, elseLabel vm.Label
		// unreachable is set after an instruction that never falls through, until the end of the frame.
		unreachable bool
		// dead is set when the frame opened in unreachable code, so nothing inside it is emitted.
		dead bool
	}
	controlFrames struct{ frames []*controlFrame }
)

// labelKinds returns the kinds a branch to the frame carries: the params of a loop, otherwise the results.
func (f *controlFrame) labelKinds() []wasm.ValueKind {
	if f.kind == controlFrameKindLoop {
		return f.params
	}
	return f.results
}

func (f *controlFrame) asBranchTarget() vm.BranchTarget {
	if f.kind == controlFrameKindLoop {
		return vm.BranchTarget{Label: f.start, Height: uint32(f.height)}
	}
	return vm.BranchTarget{Label: f.end, Height: uint32(f.height)}
}

// get returns the frame n levels out from the innermost, or false if there are not that many.
func (c *controlFrames) get(n uint32) (*controlFrame, bool) {
	if int(n) >= len(c.frames) {
		return nil, false
	}
	return c.frames[len(c.frames)-int(n)-1], true
}

func (c *controlFrames) functionFrame() *controlFrame {
	return c.frames[0]
}

func (c *controlFrames) top() *controlFrame {
	return c.frames[len(c.frames)-1]
}

func (c *controlFrames) empty() bool {
	return len(c.frames) == 0
}

func (c *controlFrames) pop() (frame *controlFrame) {
	frame = c.top()
	c.frames = c.frames[:len(c.frames)-1]
	return
}

func (c *controlFrames) push(frame *controlFrame) {
	c.frames = append(c.frames, frame)
}
