package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/dekarrin/mmtoolbox/internal/library"
	"github.com/dekarrin/mmtoolbox/internal/symtab"
	"github.com/dekarrin/mmtoolbox/toolbox"
	"github.com/hashicorp/go-hclog"
)

// substSearchMain is the Go counterpart of original_source/provers/subst.cpp's
// subst_search_main, as an interactive REPL over chzyer/readline mirroring
// the prior toolbox's cmd/tqi: the user types essential-hypothesis sentences (one
// per line, blank line to end) followed by a thesis sentence, and the
// assertion matcher reports which library assertions unify with the goal.
func substSearchMain(args []string, log hclog.Logger) int {
	demo := buildDemoLibrary()
	tb, err := toolbox.New(demo.store, toolbox.Options{StartSymbol: demo.wff, Logger: log})
	if err != nil {
		fmt.Fprintf(os.Stderr, "mmtool: subst-search: %s\n", err)
		return ExitCommandError
	}

	rl, err := readline.NewEx(&readline.Config{Prompt: "hyp (blank to end)> "})
	if err != nil {
		fmt.Fprintf(os.Stderr, "mmtool: subst-search: %s\n", err)
		return ExitCommandError
	}
	defer rl.Close()

	for {
		hyps, ok := readHypotheses(rl, demo.store.Symbols)
		if !ok {
			return ExitSuccess
		}

		rl.SetPrompt("thesis> ")
		thesisLine, err := rl.Readline()
		if err == io.EOF || err == readline.ErrInterrupt {
			return ExitSuccess
		} else if err != nil {
			fmt.Fprintf(os.Stderr, "mmtool: subst-search: %s\n", err)
			return ExitCommandError
		}
		thesis, err := tokenizeSentence(demo.store.Symbols, thesisLine)
		if err != nil {
			fmt.Fprintf(os.Stderr, "mmtool: subst-search: %s\n", err)
			rl.SetPrompt("hyp (blank to end)> ")
			continue
		}

		matches, err := tb.UnifyAssertion(hyps, thesis, false)
		if err != nil {
			fmt.Fprintf(os.Stderr, "mmtool: subst-search: %s\n", err)
		} else if len(matches) == 0 {
			fmt.Println("no matching assertions")
		} else {
			for _, m := range matches {
				name, _ := demo.store.ResolveLabel(m.Label)
				fmt.Printf(" matches %s\n", name)
			}
		}
		rl.SetPrompt("hyp (blank to end)> ")
	}
}

// readHypotheses reads sentences until a blank line, returning false if the
// session should end (EOF or interrupt on the first line read).
func readHypotheses(rl *readline.Instance, syms *symtab.Symbols) ([]library.Sentence, bool) {
	var hyps []library.Sentence
	for {
		line, err := rl.Readline()
		if err == io.EOF || err == readline.ErrInterrupt {
			return nil, false
		} else if err != nil {
			fmt.Fprintf(os.Stderr, "mmtool: subst-search: %s\n", err)
			return nil, false
		}
		line = strings.TrimSpace(line)
		if line == "" {
			return hyps, true
		}
		sent, err := tokenizeSentence(syms, line)
		if err != nil {
			fmt.Fprintf(os.Stderr, "mmtool: subst-search: %s\n", err)
			continue
		}
		hyps = append(hyps, sent)
	}
}
