// Package web names the JSON serialization surface the original's
// web/jsonize.cpp exposed to its httpd front end, without the front end
// itself: a GUI and its HTTP server are out of scope here, by extension
// excluding the server jsonize.cpp fed. Serializer stays a named interface so a caller
// embedding the toolbox in its own server has a documented shape to
// implement against.
package web

import (
	"github.com/dekarrin/mmtoolbox/internal/library"
	"github.com/dekarrin/mmtoolbox/internal/ptree"
	"github.com/dekarrin/mmtoolbox/internal/symtab"
)

// AssertionDTO is the wire shape jsonize(const Assertion&) produced, field
// for field, minus get_opt_dists/get_number's internal bookkeeping uses
// that have no external consumer without a server.
type AssertionDTO struct {
	Valid bool `json:"valid"`
	Theorem bool `json:"theorem"`
	UsageDisc bool `json:"usage_disc"`
	ModifDisc bool `json:"modif_disc"`
	Thesis string `json:"thesis"`
	EssHyps []string `json:"ess_hyps"`
	FloatHyps []string `json:"float_hyps"`
	Comment string `json:"comment"`
}

// ProofTreeDTO is the wire shape jsonize(const ProofTree<Sentence>&)
// produced: a label, the sentence proved at that step, and its children.
type ProofTreeDTO struct {
	Label string `json:"label"`
	Sentence string `json:"sentence"`
	Children []ProofTreeDTO `json:"children"`
}

// Serializer converts toolbox-internal types, which are keyed by opaque
// interned symtab tokens, into the display-string DTOs above. No
// implementation is provided in this module; a caller that embeds the
// toolbox in a server supplies one bound to its own library.Store so that
// SymTok/LabTok values can be rendered back to their source names.
type Serializer interface {
	Assertion(store *library.Store, label symtab.LabTok, a *library.Assertion) (AssertionDTO, error)
	ProofTree(store *library.Store, t *ptree.Tree) (ProofTreeDTO, error)
}
