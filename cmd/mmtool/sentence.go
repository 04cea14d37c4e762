package main

import (
	"fmt"
	"strings"

	"github.com/dekarrin/mmtoolbox/internal/library"
	"github.com/dekarrin/mmtoolbox/internal/symtab"
)

// tokenizeSentence splits a whitespace-separated Metamath-style sentence
// ("wff (ph -> ps)") into a library.Sentence by looking each token up as
// either a known constant/variable symbol in syms.
func tokenizeSentence(syms *symtab.Symbols, line string) (library.Sentence, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty sentence")
	}
	sent := make(library.Sentence, len(fields))
	for i, f := range fields {
		sym, ok := syms.Lookup(f)
		if !ok {
			return nil, fmt.Errorf("unknown symbol %q", f)
		}
		sent[i] = sym
	}
	return sent, nil
}
