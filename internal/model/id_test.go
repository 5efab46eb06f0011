package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDAceptaNumeroYString(t *testing.T) {
	var numerico struct {
		ID ID `json:"id"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"id": 42}`), &numerico))
	assert.Equal(t, "42", numerico.ID.String())

	var texto struct {
		ID ID `json:"id"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"id": "42"}`), &texto))
	assert.Equal(t, "42", texto.ID.String())

	// Both spellings compare equal once normalized
	assert.Equal(t, numerico.ID, texto.ID)
}

func TestIDNulo(t *testing.T) {
	var v struct {
		ID ID `json:"id"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"id": null}`), &v))
	assert.Equal(t, "", v.ID.String())
}

func TestIDMarshalComoString(t *testing.T) {
	b, err := json.Marshal(ID("7"))
	require.NoError(t, err)
	assert.Equal(t, `"7"`, string(b))
}

func TestActivoPorDefecto(t *testing.T) {
	verdadero := true
	falso := false

	assert.True(t, ActivoPorDefecto(nil), "flag ausente debe ser activo")
	assert.True(t, ActivoPorDefecto(&verdadero))
	assert.False(t, ActivoPorDefecto(&falso))
}
