package web

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssertionDTO_MarshalsExpectedFields(t *testing.T) {
	dto := AssertionDTO{
		Valid: true,
		Theorem: true,
		Thesis: "|- (ph -> ph)",
		EssHyps: []string{"|- ph"},
		FloatHyps: []string{"wff ph"},
		Comment: "Identity law.",
	}

	raw, err := json.Marshal(dto)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Equal(t, true, decoded["valid"])
	assert.Equal(t, "|- (ph -> ph)", decoded["thesis"])
	assert.Equal(t, []any{"|- ph"}, decoded["ess_hyps"])
}

func TestProofTreeDTO_MarshalsNestedChildren(t *testing.T) {
	dto := ProofTreeDTO{
		Label: "ax-mp",
		Sentence: "|- ps",
		Children: []ProofTreeDTO{
			{Label: "wph", Sentence: "wff ph"},
			{Label: "wps", Sentence: "wff ps"},
		},
	}

	raw, err := json.Marshal(dto)
	require.NoError(t, err)

	var decoded ProofTreeDTO
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, dto, decoded)
}
