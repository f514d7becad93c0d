package main

// implements the nib command: run a script file, evaluate a one-liner,
// or start an interactive session.

import (
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	flag "github.com/spf13/pflag"

	"nib/eval"
	"nib/lexer"
	"nib/parser"
)

var VERSION = "0.1.0"
var LOGO = `
         .  |
 .--. .-..-.|.-.   nib language
 |  | |  |  |  )   version: $VERSION
 '  '-'  '--'-'    |
`

var (
	flagEval    = flag.StringP("eval", "e", "", "evaluate the given source and exit")
	flagAst     = flag.Bool("ast", false, "print the parsed module instead of running it")
	flagVersion = flag.Bool("version", false, "print the version and exit")
)

func reportErrors(errors []error) {
	for _, err := range errors {
		fmt.Fprintf(os.Stderr, "%s\n", err)
	}
}

// run lexes, parses and executes src; the exit code follows the usual
// sysexits split between bad input (65) and runtime failure (70).
func run(filename, src string) int {
	l := lexer.New(filename, src)
	l.ScanTokens()
	if len(l.Errors) != 0 {
		for _, err := range l.Errors {
			fmt.Fprintf(os.Stderr, "%s\n", err)
		}
		return 65
	}
	p := parser.New(filename, l.Tokens)
	module := p.Parse()
	if len(p.Errors) != 0 {
		for _, err := range p.Errors {
			fmt.Fprintf(os.Stderr, "%s\n", err)
		}
		return 65
	}
	if *flagAst {
		fmt.Println(module.String())
		return 0
	}
	ctx := eval.NewContext(os.Stdout)
	eval.Install(ctx)
	if _, err := ctx.Execute(module); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		return 70
	}
	return 0
}

func repl() int {
	fmt.Println(strings.Replace(LOGO, "$VERSION", VERSION, 1))
	rl, err := readline.New("> ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		return 1
	}
	defer rl.Close()

	ic := eval.NewInteractiveContext(os.Stdout)
	for {
		line, err := rl.Readline()
		if err != nil {
			break
		}
		u, errs := ic.Run(line)
		if errs != nil {
			reportErrors(errs)
			continue
		}
		if u == nil || u.Type() == eval.VT_NOTHING {
			continue
		}
		fmt.Println(ic.Inspect(u))
	}
	return 0
}

func main() {
	flag.Parse()
	switch {
	case *flagVersion:
		fmt.Printf("nib %s\n", VERSION)
		os.Exit(0)
	case *flagEval != "":
		os.Exit(run("<eval>", *flagEval))
	}
	args := flag.Args()
	if len(args) == 0 {
		os.Exit(repl())
	}
	src, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(66)
	}
	os.Exit(run(args[0], string(src)))
}
