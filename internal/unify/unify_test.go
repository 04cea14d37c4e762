package unify

import (
	"testing"

	"github.com/dekarrin/mmtoolbox/internal/library"
	"github.com/dekarrin/mmtoolbox/internal/ptree"
	"github.com/dekarrin/mmtoolbox/internal/symtab"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUnifyStore(t *testing.T) (*library.Store, symtab.SymTok, symtab.LabTok, symtab.LabTok) {
	t.Helper()
	s := library.NewStore()
	wff, err := s.CreateSymbol("wff")
	require.NoError(t, err)
	require.NoError(t, s.SetConstant(wff, true))

	ph, err := s.CreateSymbol("ph")
	require.NoError(t, err)
	wph, err := s.CreateLabel("wph")
	require.NoError(t, err)
	require.NoError(t, s.DeclareVariable(wph, wff, ph))

	ps, err := s.CreateSymbol("ps")
	require.NoError(t, err)
	wps, err := s.CreateLabel("wps")
	require.NoError(t, err)
	require.NoError(t, s.DeclareVariable(wps, wff, ps))

	return s, wff, wph, wps
}

func varLeaf(lab symtab.LabTok, typ, sym symtab.SymTok) *ptree.Tree {
	return &ptree.Tree{Label: lab, Type: typ, Children: []*ptree.Tree{{Label: 0, Type: sym}}}
}

func constLeaf(typ symtab.SymTok) *ptree.Tree {
	return &ptree.Tree{Label: 0, Type: typ}
}

func Test_Unilateral_SimpleBinding(t *testing.T) {
	s, wff, wph, _ := newUnifyStore(t)
	u := NewUnilateral(s)

	template := varLeaf(wph, wff, 99)
	concrete := constLeaf(42)

	require.NoError(t, u.AddParsingTrees(template, concrete))
	ok, m := u.Unify()
	require.True(t, ok)
	assert.True(t, m[wph].Equal(concrete))
}

func Test_Unilateral_ConflictingBindingFails(t *testing.T) {
	s, wff, wph, _ := newUnifyStore(t)
	u := NewUnilateral(s)

	template := varLeaf(wph, wff, 99)
	require.NoError(t, u.AddParsingTrees(template, constLeaf(42)))
	err := u.AddParsingTrees(template, constLeaf(43))
	assert.Error(t, err)
	assert.False(t, u.IsUnifiable())

	ok, _ := u.Unify()
	assert.False(t, ok)
}

func Test_Unilateral_Clone_IsIndependent(t *testing.T) {
	s, wff, wph, _ := newUnifyStore(t)
	u := NewUnilateral(s)
	require.NoError(t, u.AddParsingTrees(varLeaf(wph, wff, 99), constLeaf(42)))

	cp := u.Clone()
	require.NoError(t, cp.AddParsingTrees(varLeaf(wph, wff, 99), constLeaf(7)))

	assert.True(t, u.IsUnifiable())
	assert.False(t, cp.IsUnifiable())
}

func Test_Bilateral_BindsBothDirections(t *testing.T) {
	s, wff, wph, wps := newUnifyStore(t)
	b := NewBilateral(s)

	left := varLeaf(wph, wff, 99)
	right := varLeaf(wps, wff, 100)

	require.True(t, b.Unify(left, right))
	require.True(t, b.Unify(right, constLeaf(7)))

	m := b.Substitution()
	assert.True(t, m[wph].Equal(constLeaf(7)))
	assert.True(t, m[wps].Equal(constLeaf(7)))
}

func Test_Bilateral_StructuralMismatchFails(t *testing.T) {
	s, _, _, _ := newUnifyStore(t)
	b := NewBilateral(s)

	a := &ptree.Tree{Label: 1, Type: 10, Children: []*ptree.Tree{constLeaf(1)}}
	c := &ptree.Tree{Label: 1, Type: 10, Children: []*ptree.Tree{constLeaf(2)}}
	assert.False(t, b.Unify(a, c))
}
