package library_test

import (
	"testing"

	"github.com/dekarrin/mmtoolbox/internal/library"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Store_AddSentence_Overwrites(t *testing.T) {
	store := library.NewStore()
	wff, err := store.CreateSymbol("wff")
	require.NoError(t, err)
	v, err := store.CreateSymbol("v")
	require.NoError(t, err)
	lab, err := store.CreateLabel("wv")
	require.NoError(t, err)

	store.AddSentence(lab, library.Sentence{wff, v})
	sent, ok := store.GetSentence(lab)
	require.True(t, ok)
	assert.Equal(t, wff, sent.Type())

	store.AddSentence(lab, library.Sentence{wff, v, v})
	sent, ok = store.GetSentence(lab)
	require.True(t, ok)
	assert.Len(t, sent, 3)
}

func Test_Store_IsConstant_RejectsFlip(t *testing.T) {
	store := library.NewStore()
	sym, err := store.CreateSymbol("(")
	require.NoError(t, err)

	require.NoError(t, store.SetConstant(sym, true))
	assert.True(t, store.IsConstant(sym))
	assert.Error(t, store.SetConstant(sym, false))
}

func Test_ParseDiscouragement(t *testing.T) {
	modif, usage := library.ParseDiscouragement("Some comment. (Proof modification is discouraged.)")
	assert.True(t, modif)
	assert.False(t, usage)

	modif, usage = library.ParseDiscouragement("Some comment. (New usage is discouraged.)")
	assert.False(t, modif)
	assert.True(t, usage)
}

func Test_Store_ListAssertions_SkipsInvalid(t *testing.T) {
	store := library.NewStore()
	good, _ := store.CreateLabel("good")
	bad, _ := store.CreateLabel("bad")

	store.AddAssertion(good, &library.Assertion{Valid: true})
	store.AddAssertion(bad, &library.Assertion{Valid: false})

	all := store.ListAssertions()
	require.Len(t, all, 1)
	assert.Equal(t, good, all[0].Label)
}

func Test_View_RequiresFinalize(t *testing.T) {
	store := library.NewStore()
	assert.Panics(t, func() { library.NewView(store) })

	store.Finalize()
	assert.NotPanics(t, func() { library.NewView(store) })
}
