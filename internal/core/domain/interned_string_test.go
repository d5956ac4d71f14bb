package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/burrow/internal/core/domain"
)

func TestInternedString(t *testing.T) {
	a := domain.NewInternedString("https://conda.anaconda.org/conda-forge")
	b := domain.NewInternedString("https://conda.anaconda.org/conda-forge")

	assert.Equal(t, a, b, "identical strings should intern to the same handle")
	assert.Equal(t, "https://conda.anaconda.org/conda-forge", a.String())
}

func TestInternedString_Zero(t *testing.T) {
	var zero domain.InternedString
	assert.Empty(t, zero.String())
}

func TestInternedStringJSON(t *testing.T) {
	original := domain.NewInternedString("conda-forge")

	data, err := json.Marshal(original)
	require.NoError(t, err)
	assert.JSONEq(t, `"conda-forge"`, string(data))

	var decoded domain.InternedString
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, original, decoded)
}
