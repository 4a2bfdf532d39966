/*
Farctl checks CTL, ARCTL, and Fair (AR)CTL formulas against a finite
transition system loaded from a TOML model file.

Usage:

	farctl check --model FILE [--logic ctl|arctl|fair] FORMULA...
	farctl repl  --model FILE [--logic ctl|arctl|fair]

The flags are:

	-m, --model FILE
		TOML model file to load (see modelspec for the schema).

	-l, --logic ctl|arctl|fair
		Which evaluator to check formulas under. Defaults to "fair", the
		most permissive (it accepts plain CTL and ARCTL formulas too).

Once a repl session has started, each line is parsed as a formula and
checked against the loaded model; type "QUIT" to exit.
*/
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"
	"github.com/spf13/pflag"

	"github.com/rfielding/farctl/checker"
	"github.com/rfielding/farctl/modelspec"
)

const (
	exitSuccess = iota
	exitUsageError
	exitLoadError
	exitCheckError
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(exitUsageError)
	}
	switch os.Args[1] {
	case "check":
		os.Exit(runCheck(os.Args[2:]))
	case "repl":
		os.Exit(runRepl(os.Args[2:]))
	default:
		usage()
		os.Exit(exitUsageError)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: farctl check --model FILE [--logic ctl|arctl|fair] FORMULA...")
	fmt.Fprintln(os.Stderr, "       farctl repl  --model FILE [--logic ctl|arctl|fair]")
}

func newChecker(modelPath, logic string) (*checker.Checker, *modelspec.Model, error) {
	m, err := modelspec.LoadFile(modelPath)
	if err != nil {
		return nil, nil, fmt.Errorf("loading model: %w", err)
	}
	switch logic {
	case "ctl":
		return checker.NewCTL(m.Universe, m.Pred, nil), m, nil
	case "arctl":
		c, err := checker.NewARCTL(m.Universe, m.Actions, nil)
		return c, m, err
	case "fair", "":
		c, err := checker.NewFairARCTL(m.Universe, m.Actions, nil, checker.PtermSink{})
		return c, m, err
	default:
		return nil, nil, fmt.Errorf("unknown --logic %q: want ctl, arctl, or fair", logic)
	}
}

func runCheck(args []string) int {
	fs := pflag.NewFlagSet("check", pflag.ContinueOnError)
	modelPath := fs.StringP("model", "m", "", "TOML model file")
	logic := fs.StringP("logic", "l", "fair", "ctl, arctl, or fair")
	if err := fs.Parse(args); err != nil {
		return exitUsageError
	}
	if *modelPath == "" || fs.NArg() == 0 {
		usage()
		return exitUsageError
	}

	c, _, err := newChecker(*modelPath, *logic)
	if err != nil {
		pterm.Error.Printfln("%v", err)
		return exitLoadError
	}

	status := exitSuccess
	for _, formula := range fs.Args() {
		s, err := c.Check(formula)
		if err != nil {
			pterm.Error.Printfln("%s: %v", formula, err)
			status = exitCheckError
			continue
		}
		pterm.Success.Printfln("%s -> %s", formula, s.String())
	}
	return status
}

func runRepl(args []string) int {
	fs := pflag.NewFlagSet("repl", pflag.ContinueOnError)
	modelPath := fs.StringP("model", "m", "", "TOML model file")
	logic := fs.StringP("logic", "l", "fair", "ctl, arctl, or fair")
	if err := fs.Parse(args); err != nil {
		return exitUsageError
	}
	if *modelPath == "" {
		usage()
		return exitUsageError
	}

	c, m, err := newChecker(*modelPath, *logic)
	if err != nil {
		pterm.Error.Printfln("%v", err)
		return exitLoadError
	}
	pterm.Info.Printfln("loaded %d states; type QUIT to exit", m.Universe.NumStates())

	rl, err := readline.NewEx(&readline.Config{Prompt: "farctl> "})
	if err != nil {
		pterm.Error.Printfln("could not start readline: %v", err)
		return replLoop(os.Stdin, c)
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			return exitSuccess
		}
		if err != nil {
			pterm.Error.Printfln("%v", err)
			return exitCheckError
		}
		if !evalLine(line, c) {
			return exitSuccess
		}
	}
}

// replLoop is the direct-stdin fallback when readline cannot attach to
// a tty, mirroring dekarrin-tunaq's DirectCommandReader/InteractiveCommandReader split.
func replLoop(r io.Reader, c *checker.Checker) int {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if !evalLine(scanner.Text(), c) {
			return exitSuccess
		}
	}
	return exitSuccess
}

func evalLine(line string, c *checker.Checker) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return true
	}
	if strings.EqualFold(line, "QUIT") {
		return false
	}
	s, err := c.Check(line)
	if err != nil {
		pterm.Error.Printfln("%v", err)
		return true
	}
	pterm.Success.Printfln("%s", s.String())
	return true
}
