// svm - the stackvm CLI: assembles mnemonic programs and runs them on the
// stack machine.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/chazu/stackvm/asm"
	"github.com/chazu/stackvm/manifest"
	"github.com/chazu/stackvm/vm"
)

// demoProgram is the built-in sample run when no program is given.
var demoProgram = strings.Join([]string{
	"loadcon 2",
	"loadcon 3",
	"negate",
	"add",
	"write",
}, "\n")

func main() {
	expr := flag.String("e", "", `Inline program, ';'-separated (e.g. "loadcon 2; write")`)
	capacity := flag.Int("capacity", manifest.DefaultCapacity, "Value stack capacity")
	traceMode := flag.String("trace", "", "Trace mode: off, log or display")
	list := flag.Bool("l", false, "Print the assembled listing before running")
	verbose := flag.Bool("v", false, "Verbose output")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: svm [options] [program.svm]\n\n")
		fmt.Fprintf(os.Stderr, "Assembles a mnemonic stack machine program and runs it.\n")
		fmt.Fprintf(os.Stderr, "With no program, looks for a stackvm.toml manifest, then falls\n")
		fmt.Fprintf(os.Stderr, "back to a built-in demo.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  svm abs.svm                          # Run a program file\n")
		fmt.Fprintf(os.Stderr, "  svm -e \"loadcon 5; dup; mpy; write\"  # Run an inline program\n")
		fmt.Fprintf(os.Stderr, "  svm -trace display abs.svm           # Show the stack after each step\n")
	}
	flag.Parse()

	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	stackCap := *capacity
	trace := *traceMode
	var seed []int64

	// Resolve the program source: inline, file, manifest, or demo.
	var source string
	switch {
	case *expr != "":
		source = strings.ReplaceAll(*expr, ";", "\n")

	case flag.NArg() > 0:
		data, err := os.ReadFile(flag.Arg(0))
		if err != nil {
			fatal("cannot read program: %v", err)
		}
		source = string(data)

	default:
		m, err := manifest.FindAndLoad(".")
		if err != nil {
			fatal("%v", err)
		}
		if m != nil {
			if !set["capacity"] {
				stackCap = m.Machine.Capacity
			}
			if !set["trace"] {
				trace = m.Run.Trace
			}
			seed = m.Machine.Seed
			path := m.ProgramPath()
			if path == "" {
				fatal("%s/stackvm.toml names no program", m.Dir)
			}
			data, err := os.ReadFile(path)
			if err != nil {
				fatal("cannot read program: %v", err)
			}
			source = string(data)
			if *verbose {
				fmt.Printf("Using manifest %s/stackvm.toml\n", m.Dir)
			}
		} else {
			source = demoProgram
			if trace == "" {
				trace = manifest.TraceDisplay
			}
			if *verbose {
				fmt.Println("No program given, running the built-in demo")
			}
		}
	}
	if trace == "" {
		trace = manifest.TraceOff
	}

	verbosity := 0
	if trace == manifest.TraceLog {
		verbosity = 1
	}
	if *verbose {
		verbosity = 2
	}
	commonlog.Configure(verbosity, nil)

	program, err := asm.Parse(source)
	if err != nil {
		fatal("%v", err)
	}
	if *list {
		fmt.Print(asm.Format(program))
	}

	stack, err := vm.NewSeededValueStack(stackCap, seed)
	if err != nil {
		fatal("%v", err)
	}

	machine := vm.NewMachineWithStack(stack, program)
	machine.SetSink(vm.WriterSink(os.Stdout))
	switch trace {
	case manifest.TraceLog:
		machine.SetTracer(vm.NewLogTracer())
	case manifest.TraceDisplay:
		machine.SetTracer(vm.NewDisplayTracer(os.Stdout))
	case manifest.TraceOff:
	default:
		fatal("unknown trace mode %q", trace)
	}

	machine.Run()

	if *verbose {
		fmt.Printf("Execution finished, %d value(s) left on the stack\n", machine.Stack().Len())
	}
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
