/*
Mmtool is a small command-line front end over the toolbox's independent
TSTP and natural-deduction pipelines and its assertion matcher, grounded
on original_source/apps/tstp.cpp and provers/subst.cpp's hand-registered
`name -> main function` dispatch table.

Usage:

	mmtool <command> [flags]

The commands are:

	parse-tstp
		Read TSTP/TPTP cnf/fof lines from stdin, one per line, and print
		each one's reconstructed formula.

	convert-to-tstp
		Read Metamath-style sentences from stdin ("wff (ph -> ps)") and
		print each one converted to TSTP formula syntax.

	read-gapt
		Read one GAPT wire-format natural-deduction proof node from stdin
		and report whether it checks.

	subst-search
		Start an interactive assertion-matching session against a small
		demonstration library.

	find-defs
		List the demonstration library's definitional (zero-essential-
		hypothesis) assertions.

The -v/--version flag prints the program name and exits; -l/--log-level
sets the hclog level used by commands that accept a logger (default
"off").
*/
package main

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/pflag"
)

const (
	ExitSuccess = iota
	ExitUsageError
	ExitCommandError
)

var (
	flagVersion = pflag.BoolP("version", "v", false, "print version and exit")
	flagLogLevel = pflag.StringP("log-level", "l", "off", "hclog level for commands that log (trace, debug, info, warn, error, off)")
)

// registry is the dispatch table named in external "CLI
// registry" collaborator: command name to entrypoint, exactly the shape
// of the original's register_main_function calls.
var registry = map[string]func(args []string, log hclog.Logger) int{
	"parse-tstp": parseTSTPMain,
	"convert-to-tstp": convertToTSTPMain,
	"read-gapt": readGAPTMain,
	"subst-search": substSearchMain,
	"find-defs": findDefsMain,
}

func main() {
	pflag.Parse()
	if *flagVersion {
		fmt.Println("mmtool (development build)")
		os.Exit(ExitSuccess)
	}

	args := pflag.Args()
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "usage: mmtool <command> [args...]")
		fmt.Fprintln(os.Stderr, "commands: parse-tstp, convert-to-tstp, read-gapt, subst-search, find-defs")
		os.Exit(ExitUsageError)
	}

	cmd, ok := registry[args[0]]
	if !ok {
		fmt.Fprintf(os.Stderr, "mmtool: unknown command %q\n", args[0])
		os.Exit(ExitUsageError)
	}

	level := hclog.LevelFromString(*flagLogLevel)
	log := hclog.New(&hclog.LoggerOptions{Name: "mmtool", Level: level, Output: os.Stderr})

	os.Exit(cmd(args[1:], log))
}
