package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"

	"github.com/dekarrin/mmtoolbox/internal/grammar"
)

// Digest returns a stable content-addressable key for g, so a cached
// table can be invalidated automatically whenever the library the
// grammar was induced from changes ("persistent cache keyed
// by a content-addressable digest"). crypto/sha256 is the standard
// library's content-hashing primitive; no example repo wires a
// dedicated hashing library for this kind of digest (the one occurrence
// of an xxhash import in the corpus is an indirect transitive
// dependency nothing in that repo's own code calls).
func Digest(g *grammar.Grammar) string {
	var lines []string
	for _, nt := range g.NonTerminals() {
		for _, rhs := range g.Rule(nt) {
			var sb strings.Builder
			sb.WriteString(grammar.SymbolString(nt))
			sb.WriteString("->")
			for i, s := range rhs {
				if i > 0 {
					sb.WriteByte(' ')
				}
				sb.WriteString(grammar.SymbolString(s))
			}
			lines = append(lines, sb.String())
		}
	}
	sort.Strings(lines)

	h := sha256.New()
	h.Write([]byte(grammar.SymbolString(g.StartSymbol())))
	h.Write([]byte{'\n'})
	for _, line := range lines {
		h.Write([]byte(line))
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}
