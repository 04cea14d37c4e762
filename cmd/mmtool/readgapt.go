package main

import (
	"fmt"
	"os"

	"github.com/dekarrin/mmtoolbox/internal/nd/gaptio"
	"github.com/dekarrin/mmtoolbox/internal/tstp/ast"
	"github.com/dekarrin/rosed"
	"github.com/hashicorp/go-hclog"
)

// sequentLineWidth is the column at which a read-gapt sequent dump wraps,
// matching the wrap width the prior toolbox used for its own console output.
const sequentLineWidth = 60

// readGAPTMain is the Go counterpart of original_source/provers/gapt.cpp's
// read_gapt_main: read one GAPT wire-format natural-deduction proof node
// from stdin and report whether it checks.
func readGAPTMain(args []string, log hclog.Logger) int {
	r := gaptio.NewReader(os.Stdin)
	rule, err := r.Rule()
	if err != nil {
		fmt.Fprintf(os.Stderr, "mmtool: read-gapt: %s\n", err)
		return ExitCommandError
	}

	log.Debug("read rule", "kind", rule.Kind.String())

	thesis := rule.Thesis
	dump := fmt.Sprintf("%s :- %s [%s]", formulaList(thesis.Antecedents), formulaList(thesis.Succedents), rule.Kind)
	fmt.Println(rosed.Edit(dump).Wrap(sequentLineWidth).String())

	if err := rule.CheckOrError(); err != nil {
		fmt.Printf("INVALID: %s\n", err)
		return ExitCommandError
	}
	fmt.Println("VALID")
	return ExitSuccess
}

func formulaList(fs []*ast.Formula) string {
	out := ""
	for i, f := range fs {
		if i > 0 {
			out += ", "
		}
		out += f.String()
	}
	return out
}
