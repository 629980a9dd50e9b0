package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/wasmlower/wasmlower"
	"github.com/wasmlower/wasmlower/internal/asm/amd64"
	"github.com/wasmlower/wasmlower/internal/compiler"
	"github.com/wasmlower/wasmlower/internal/logging"
	"github.com/wasmlower/wasmlower/internal/version"
	"github.com/wasmlower/wasmlower/internal/vm"
	"github.com/wasmlower/wasmlower/internal/wasm"
	"github.com/wasmlower/wasmlower/internal/wasmerr"
)

func main() {
	doMain(os.Stdout, os.Stderr, os.Exit)
}

// doMain is separated out for the purpose of unit testing.
func doMain(stdOut, stdErr io.Writer, exit func(code int)) {
	flag.CommandLine.SetOutput(stdErr)

	var help bool
	flag.BoolVar(&help, "h", false, "print usage")

	var verbose bool
	flag.BoolVar(&verbose, "v", false, "log compilation to stderr")

	flag.Parse()

	if help || flag.NArg() == 0 {
		printUsage(stdErr)
		exit(0)
	}

	if verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(stdErr, "error creating logger: %v\n", err)
			exit(1)
		}
		logging.SetLogger(logger)
		defer func() {
			_ = logger.Sync()
			logging.SetLogger(nil)
		}()
	}

	subCmd := flag.Arg(0)
	args := flag.Args()[1:]
	switch subCmd {
	case "compile":
		doCompile(args, stdOut, stdErr, exit)
	case "disasm":
		doDisasm(args, stdOut, stdErr, exit)
	case "run":
		doRun(args, stdOut, stdErr, exit)
	case "asm":
		doAsm(args, stdOut, stdErr, exit)
	case "info":
		doInfo(stdOut)
		exit(0)
	case "version":
		fmt.Fprintln(stdOut, version.GetVersion())
		exit(0)
	default:
		fmt.Fprintln(stdErr, "invalid command")
		printUsage(stdErr)
		exit(1)
	}
}

// commonFlags are the flags of every subcommand reading a module description.
type commonFlags struct {
	help      bool
	noSIMD    bool
	logScopes string
}

func newFlags(name string, stdErr io.Writer) (*flag.FlagSet, *commonFlags) {
	flags := flag.NewFlagSet(name, flag.ExitOnError)
	flags.SetOutput(stdErr)

	c := &commonFlags{}
	flags.BoolVar(&c.help, "h", false, "print usage")
	flags.BoolVar(&c.noSIMD, "nosimd", false, "disable the SIMD feature")
	flags.StringVar(&c.logScopes, "log", "all",
		"comma-separated list of stages to log with -v. Supported values: all,decode,validate,emit,helper,cache,exec")
	return flags, c
}

// compile parses the flags, loads the description named by the first positional argument and compiles it.
func compile(name, usage string, args []string, minArgs int, stdErr io.Writer, exit func(code int)) (*flag.FlagSet, *wasmlower.CompiledModule) {
	flags, c := newFlags(name, stdErr)
	_ = flags.Parse(args)

	if c.help {
		printCommandUsage(stdErr, flags, usage)
		exit(0)
	}

	if flags.NArg() < minArgs {
		fmt.Fprintln(stdErr, "missing path to module description")
		printCommandUsage(stdErr, flags, usage)
		exit(1)
	}

	scopes, err := logging.ParseLogScopes(c.logScopes)
	if err != nil {
		fmt.Fprintf(stdErr, "error parsing -log: %v\n", err)
		exit(1)
	}

	desc, err := loadDescription(flags.Arg(0))
	if err != nil {
		fmt.Fprintf(stdErr, "error reading module description: %v\n", err)
		exit(1)
	}

	config := wasmlower.NewCompilerConfig().WithLogScopes(scopes)
	if c.noSIMD {
		config = config.WithFeatureSIMD(false)
	}
	compiled, err := wasmlower.NewCompiler(config).Compile(context.Background(), desc)
	if err != nil {
		fmt.Fprintf(stdErr, "error compiling module: %v\n", err)
		var werr *wasmerr.Error
		if errors.As(err, &werr) {
			fmt.Fprintf(stdErr, "kind: %s (%s)\n", werr.Kind, werr.Kind.Category())
		}
		exit(1)
	}
	return flags, compiled
}

func doCompile(args []string, stdOut, stdErr io.Writer, exit func(code int)) {
	_, compiled := compile("compile", "compile <options> <module description>", args, 1, stdErr, exit)
	fmt.Fprintf(stdOut, "ok, exports: %s\n", strings.Join(compiled.ExportedFunctions(), " "))
	exit(0)
}

func doDisasm(args []string, stdOut, stdErr io.Writer, exit func(code int)) {
	_, compiled := compile("disasm", "disasm <options> <module description>", args, 1, stdErr, exit)
	fmt.Fprint(stdOut, compiled.Disassemble())
	exit(0)
}

func doRun(args []string, stdOut, stdErr io.Writer, exit func(code int)) {
	const usage = "run <options> <module description> <export> [params...]"
	flags, compiled := compile("run", usage, args, 2, stdErr, exit)

	export := flags.Arg(1)
	r := compiled.ExportedFunction(export)
	if r == nil {
		fmt.Fprintf(stdErr, "error: %q is not exported\n", export)
		exit(1)
	}

	params, err := parseParams(r.Sig.Params, flags.Args()[2:])
	if err != nil {
		fmt.Fprintf(stdErr, "error parsing params: %v\n", err)
		exit(1)
	}

	ctx := context.Background()
	instance, err := compiled.Instantiate(ctx)
	if err != nil {
		fmt.Fprintf(stdErr, "error instantiating module: %v\n", err)
		exit(1)
	}
	results, err := instance.Call(ctx, export, params...)
	if err != nil {
		fmt.Fprintf(stdErr, "error calling %s: %v\n", export, err)
		exit(1)
	}
	fmt.Fprintln(stdOut, formatResults(r.Sig.Results, results))
	exit(0)
}

func doAsm(args []string, stdOut, stdErr io.Writer, exit func(code int)) {
	flags, compiled := compile("asm", "asm <options> <module description> <export>", args, 2, stdErr, exit)

	export := flags.Arg(1)
	r := compiled.ExportedFunction(export)
	if r == nil {
		fmt.Fprintf(stdErr, "error: %q is not exported\n", export)
		exit(1)
	}
	listing, err := amd64.Assemble(r)
	if err != nil {
		fmt.Fprintf(stdErr, "error assembling %s: %v\n", export, err)
		exit(1)
	}
	fmt.Fprint(stdOut, listing.Disassemble())
	exit(0)
}

func doInfo(stdOut io.Writer) {
	host := vm.HostProfile()
	fmt.Fprintf(stdOut, "arch: %s\n", host.Arch)
	fmt.Fprintf(stdOut, "extensions: %s\n", strings.Join(host.Extensions, " "))

	caps := vm.Default()
	fmt.Fprintf(stdOut, "primitives: %d\n", caps.Len())

	var lowered []string
	for i := 0; i <= math.MaxUint8; i++ {
		op := wasm.OpcodeVec(i)
		info, ok := wasm.VecInfoOf(op)
		if !ok || !info.Lowered {
			continue
		}
		if key, ok := compiler.VecPrimitive(op); ok {
			if _, ok = caps.Lookup(key.Op, key.Shape); ok {
				continue
			}
		}
		lowered = append(lowered, info.Name)
	}
	fmt.Fprintf(stdOut, "lowered: %d\n", len(lowered))
	for _, name := range lowered {
		fmt.Fprintf(stdOut, "  %s\n", name)
	}
}

// parseParams encodes args as Instance.Call params. A v128 param takes two args, the low half first.
func parseParams(types []vm.Type, args []string) ([]uint64, error) {
	var ret []uint64
	for _, t := range types {
		n := 1
		if t == vm.TypeV128 {
			n = 2
		}
		if len(args) < n {
			return nil, fmt.Errorf("expected more params for %s", t)
		}
		for _, arg := range args[:n] {
			v, err := parseParam(t, arg)
			if err != nil {
				return nil, err
			}
			ret = append(ret, v)
		}
		args = args[n:]
	}
	if len(args) > 0 {
		return nil, fmt.Errorf("%d params too many", len(args))
	}
	return ret, nil
}

func parseParam(t vm.Type, arg string) (uint64, error) {
	switch t {
	case vm.TypeI32:
		if v, err := strconv.ParseInt(arg, 0, 32); err == nil {
			return uint64(uint32(v)), nil
		}
		v, err := strconv.ParseUint(arg, 0, 32)
		return v, err
	case vm.TypeF32:
		v, err := strconv.ParseFloat(arg, 32)
		return uint64(math.Float32bits(float32(v))), err
	case vm.TypeF64:
		v, err := strconv.ParseFloat(arg, 64)
		return math.Float64bits(v), err
	default:
		if v, err := strconv.ParseInt(arg, 0, 64); err == nil {
			return uint64(v), nil
		}
		return strconv.ParseUint(arg, 0, 64)
	}
}

func formatResults(types []vm.Type, results []uint64) string {
	var parts []string
	for _, t := range types {
		switch t {
		case vm.TypeI32:
			parts = append(parts, strconv.FormatInt(int64(int32(results[0])), 10))
		case vm.TypeI64:
			parts = append(parts, strconv.FormatInt(int64(results[0]), 10))
		case vm.TypeF32:
			parts = append(parts, strconv.FormatFloat(float64(math.Float32frombits(uint32(results[0]))), 'g', -1, 32))
		case vm.TypeF64:
			parts = append(parts, strconv.FormatFloat(math.Float64frombits(results[0]), 'g', -1, 64))
		case vm.TypeV128:
			parts = append(parts, fmt.Sprintf("0x%016x%016x", results[1], results[0]))
			results = results[1:]
		}
		results = results[1:]
	}
	return strings.Join(parts, " ")
}

func printUsage(stdErr io.Writer) {
	fmt.Fprintln(stdErr, "wasmlower CLI")
	fmt.Fprintln(stdErr)
	fmt.Fprintln(stdErr, "Usage:\n  wasmlower [-v] <command>")
	fmt.Fprintln(stdErr)
	fmt.Fprintln(stdErr, "Commands:")
	fmt.Fprintln(stdErr, "  compile\tValidates and compiles a module description")
	fmt.Fprintln(stdErr, "  disasm\tPrints the decoded and the compiled functions of a module description")
	fmt.Fprintln(stdErr, "  run\t\tCalls an exported function")
	fmt.Fprintln(stdErr, "  asm\t\tPrints the amd64 listing of an exported function")
	fmt.Fprintln(stdErr, "  info\t\tDisplays the host vector extensions and the target primitives")
	fmt.Fprintln(stdErr, "  version\tDisplays the version of wasmlower CLI")
}

func printCommandUsage(stdErr io.Writer, flags *flag.FlagSet, usage string) {
	fmt.Fprintln(stdErr, "wasmlower CLI")
	fmt.Fprintln(stdErr)
	fmt.Fprintf(stdErr, "Usage:\n  wasmlower %s\n", usage)
	fmt.Fprintln(stdErr)
	fmt.Fprintln(stdErr, "Options:")
	flags.PrintDefaults()
}
