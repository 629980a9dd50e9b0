package compiler

import (
	"strings"

	"github.com/wasmlower/wasmlower/internal/wasm"
	"github.com/wasmlower/wasmlower/internal/wasmerr"
)

// OperandStack tracks the kinds of the values on the operand stack of a function body and checks every pop
// against them.
//
// Only the values above the floor belong to the innermost control frame. Once that frame is unreachable, the stack
// below the values pushed since is polymorphic: pops succeed, returning wasm.ValueKindUnknown.
type OperandStack struct {
	kinds       []wasm.ValueKind
	floor       int
	polymorphic bool
}

// Push pushes kinds, the last one ending on top.
func (s *OperandStack) Push(kinds ...wasm.ValueKind) {
	s.kinds = append(s.kinds, kinds...)
}

// Pop pops one value per expected kind, the first kind being the top of the stack, and returns the actual kinds in
// the same order. wasm.ValueKindUnknown matches any kind.
//
// Nothing is popped unless every kind matches. instruction names the popping instruction in errors.
func (s *OperandStack) Pop(instruction string, expected ...wasm.ValueKind) ([]wasm.ValueKind, error) {
	actual := make([]wasm.ValueKind, len(expected))
	top := len(s.kinds)
	for i, exp := range expected {
		at := top - 1 - i
		if at < s.floor {
			if !s.polymorphic {
				return nil, wasmerr.Validate(wasmerr.KindStackTooSmall, instruction,
					"need %d values, but the stack has %d", len(expected), top-s.floor)
			}
			actual[i] = wasm.ValueKindUnknown
			continue
		}
		act := s.kinds[at]
		if exp != wasm.ValueKindUnknown && act != wasm.ValueKindUnknown && exp != act {
			return nil, wasmerr.TypeMismatch(instruction, wasm.ValueKindName(exp), wasm.ValueKindName(act))
		}
		actual[i] = act
	}

	n := len(expected)
	if avail := top - s.floor; n > avail {
		n = avail
	}
	s.kinds = s.kinds[:top-n]
	return actual, nil
}

// PopOne pops a single value of kind expected.
func (s *OperandStack) PopOne(instruction string, expected wasm.ValueKind) (wasm.ValueKind, error) {
	actual, err := s.Pop(instruction, expected)
	if err != nil {
		return 0, err
	}
	return actual[0], nil
}

// Peek returns the kind i values below the top, or false if that is below the floor.
func (s *OperandStack) Peek(i int) (wasm.ValueKind, bool) {
	at := len(s.kinds) - 1 - i
	if at < s.floor {
		return wasm.ValueKindUnknown, s.polymorphic
	}
	return s.kinds[at], true
}

// Len returns the count of values on the stack, including those below the floor.
func (s *OperandStack) Len() int {
	return len(s.kinds)
}

// Truncate drops the values above height.
func (s *OperandStack) Truncate(height int) {
	s.kinds = s.kinds[:height]
}

// enter restricts pops to the values above floor.
func (s *OperandStack) enter(floor int, polymorphic bool) {
	s.floor, s.polymorphic = floor, polymorphic
}

func (s *OperandStack) String() string {
	names := make([]string, len(s.kinds))
	for i, k := range s.kinds {
		names[i] = wasm.ValueKindName(k)
	}
	return "[" + strings.Join(names, ", ") + "]"
}

// reversed returns kinds top first, for popping a signature whose last element is on top.
func reversed(kinds []wasm.ValueKind) []wasm.ValueKind {
	ret := make([]wasm.ValueKind, len(kinds))
	for i, k := range kinds {
		ret[len(kinds)-1-i] = k
	}
	return ret
}
