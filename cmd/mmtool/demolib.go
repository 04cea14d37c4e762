package main

import (
	"github.com/dekarrin/mmtoolbox/internal/library"
	"github.com/dekarrin/mmtoolbox/internal/symtab"
)

// demoLibrary bundles the symbols a demo library's commands need to look
// tokens back up by name when tokenizing a sentence typed at the CLI.
type demoLibrary struct {
	store *library.Store
	wff symtab.SymTok
}

// buildDemoLibrary returns a small hand-built propositional-calculus
// library exercising the same shapes as original_source's set.mm (wff
// type, the turnstile, implication and negation notation, modus ponens)
// without depending on a concrete library.Reader, which names
// as a thin external peripheral with no implementation in this module.
// subst-search and find-defs operate on this library since there is
// nowhere else to get one from a plain CLI invocation.
func buildDemoLibrary() *demoLibrary {
	s := library.NewStore()

	must := func(err error) {
		if err != nil {
			panic("mmtool: building demo library: " + err.Error())
		}
	}
	mustSym := func(name string) symtab.SymTok {
		sym, err := s.CreateSymbol(name)
		must(err)
		return sym
	}
	mustLab := func(name string) symtab.LabTok {
		lab, err := s.CreateLabel(name)
		must(err)
		return lab
	}

	wff := mustSym("wff")
	turnstile := mustSym("|-")
	arrow := mustSym("->")
	not := mustSym("~")
	lparen := mustSym("(")
	rparen := mustSym(")")
	for _, c := range []symtab.SymTok{wff, turnstile, arrow, not, lparen, rparen} {
		must(s.SetConstant(c, true))
	}
	s.SetTurnstile(turnstile)

	ph := mustSym("ph")
	ps := mustSym("ps")
	ch := mustSym("ch")
	wph := mustLab("wph")
	wps := mustLab("wps")
	wch := mustLab("wch")
	must(s.DeclareVariable(wph, wff, ph))
	must(s.DeclareVariable(wps, wff, ps))
	must(s.DeclareVariable(wch, wff, ch))

	// wi: notation for implication, a definitional (zero-hypothesis)
	// production, mirroring set.mm's "wi $a wff (ph -> ps) $.".
	wi := mustLab("wi")
	s.AddSentence(wi, library.Sentence{wff, lparen, ph, arrow, ps, rparen})
	s.AddAssertion(wi, &library.Assertion{Valid: true, Thesis: wi})

	// wn: notation for negation, set.mm's "wn $a wff -. ph $.".
	wn := mustLab("wn")
	s.AddSentence(wn, library.Sentence{wff, not, ph})
	s.AddAssertion(wn, &library.Assertion{Valid: true, Thesis: wn})

	// ax-mp: modus ponens.
	min := mustLab("min")
	s.AddSentence(min, library.Sentence{turnstile, ph})
	maj := mustLab("maj")
	s.AddSentence(maj, library.Sentence{turnstile, lparen, ph, arrow, ps, rparen})
	mpThesis := mustLab("mpthesis")
	s.AddSentence(mpThesis, library.Sentence{turnstile, ps})
	ampLab := mustLab("ax-mp")
	s.AddAssertion(ampLab, &library.Assertion{
		Valid: true,
		FloatHyps: []symtab.LabTok{wph, wps},
		EssHyps: []symtab.LabTok{min, maj},
		Thesis: mpThesis,
	})

	// ax-3: a second hypothesis-free axiom over negation/implication, set.mm's
	// "ax-3 $a |- ((-. ph -> -. ps) -> (ps -> ph)) $.", so find-defs has
	// more than one definitional assertion to report.
	ax3Thesis := mustLab("ax3thesis")
	s.AddSentence(ax3Thesis, library.Sentence{
		turnstile, lparen, lparen, not, ph, arrow, not, ps, rparen, arrow, lparen, ps, arrow, ph, rparen, rparen,
	})
	ax3 := mustLab("ax-3")
	s.AddAssertion(ax3, &library.Assertion{
		FloatHyps: []symtab.LabTok{wph, wps},
		Valid: true,
		Thesis: ax3Thesis,
	})

	s.Finalize()
	return &demoLibrary{store: s, wff: wff}
}
