package ptree

import (
	"github.com/dekarrin/mmtoolbox/internal/grammar"
	"github.com/dekarrin/mmtoolbox/internal/library"
	"github.com/dekarrin/mmtoolbox/internal/symtab"
)

// ReconstructSentence prepends firstSym then walks t per g's
// ders_by_label to re-emit the sentence t was parsed from.
func ReconstructSentence(t *Tree, firstSym symtab.SymTok, g *grammar.Grammar) library.Sentence {
	out := make([]symtab.SymTok, 0, 1)
	out = append(out, firstSym)
	out = append(out, reconstructNode(t, g)...)
	return library.Sentence(out)
}

func reconstructNode(t *Tree, g *grammar.Grammar) []symtab.SymTok {
	if len(t.Children) == 0 {
		return []symtab.SymTok{t.Type}
	}

	der, ok := g.DerivationByLabel(t.Label)
	if !ok {
		// no known derivation for this label; best effort, emit children's
		// own type tokens in order.
		out := make([]symtab.SymTok, 0, len(t.Children))
		for _, c := range t.Children {
			out = append(out, reconstructNode(c, g)...)
		}
		return out
	}

	out := make([]symtab.SymTok, 0, len(der.RHS))
	for i, rhsSym := range der.RHS {
		if i >= len(t.Children) {
			break
		}
		child := t.Children[i]
		if g.IsTerminal(rhsSym) {
			out = append(out, child.Type)
		} else {
			out = append(out, reconstructNode(child, g)...)
		}
	}
	return out
}
