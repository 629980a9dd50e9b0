package wasmlower_test

import (
	"context"
	"fmt"
	"log"

	"github.com/wasmlower/wasmlower"
)

// This is an example of compiling a module and calling one of its functions.
func Example() {
	ctx := context.Background()

	desc := &wasmlower.ModuleDescription{
		Types: []*wasmlower.FunctionType{{
			Params:  []wasmlower.ValueKind{wasmlower.ValueKindI32, wasmlower.ValueKindI32},
			Results: []wasmlower.ValueKind{wasmlower.ValueKindI32},
		}},
		Functions: []wasmlower.FunctionDescription{{
			Type:   0,
			Export: "add",
			// local.get 0, local.get 1, i32.add, end
			Code: []byte{0x20, 0x00, 0x20, 0x01, 0x6a, 0x0b},
		}},
	}

	compiled, err := wasmlower.NewCompiler(wasmlower.NewCompilerConfig()).Compile(ctx, desc)
	if err != nil {
		log.Panicln(err)
	}
	instance, err := compiled.Instantiate(ctx)
	if err != nil {
		log.Panicln(err)
	}

	results, err := instance.Call(ctx, "add", 40, 2)
	if err != nil {
		log.Panicln(err)
	}
	fmt.Println(results[0])

	// Output:
	// 42
}
