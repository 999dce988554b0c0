package main

import (
	"bytes"
	"testing"

	"github.com/pokesdk/poke-sdk/domain/entities"
	"github.com/pokesdk/poke-sdk/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestOutputJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, OutputJSON(entities.Failure("pokemon 0 not found"), &buf))

	assert.Equal(t, `{"success":false,"pokemon":null,"error":"pokemon 0 not found"}`+"\n", buf.String())
}

func TestOutputPretty(t *testing.T) {
	tests := []struct {
		name     string
		env      entities.Envelope
		contains []string
	}{
		{
			name: "bulbasaur",
			env:  entities.Success(testutil.Bulbasaur()),
			contains: []string{
				"#1 bulbasaur",
				"height: 0.7 m",
				"weight: 6.9 kg",
				"base experience: 64",
				"types: grass, poison",
				"front sprite: https://",
				"back sprite: https://",
			},
		},
		{
			name: "absent_optionals",
			env:  entities.Success(testutil.Unknown()),
			contains: []string{
				"#10001 deoxys-attack",
				"height: 1.7 m",
				"weight: 60.8 kg",
				"base experience: unknown",
				"types: psychic",
			},
		},
		{
			name:     "failure",
			env:      entities.Failure("transport error"),
			contains: []string{"error: transport error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, OutputPretty(tt.env, &buf))
			for _, s := range tt.contains {
				assert.Contains(t, buf.String(), s)
			}
		})
	}

	t.Run("no_sprites_line_when_absent", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, OutputPretty(entities.Success(testutil.Unknown()), &buf))
		assert.NotContains(t, buf.String(), "sprite")
	})
}

func TestOutputYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, OutputYAML(entities.Success(testutil.Pikachu()), &buf))

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, true, doc["success"])
	assert.Nil(t, doc["error"])

	pokemon, ok := doc["pokemon"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "pikachu", pokemon["name"])
	assert.Contains(t, pokemon, "base_experience")
}

func TestOutputEnvelope_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := OutputEnvelope("xml", entities.Failure("x"), &buf)
	assert.EqualError(t, err, "unknown format: xml")
	assert.Empty(t, buf.String())
}

func TestValidFormats(t *testing.T) {
	for _, f := range []string{"json", "pretty", "yaml"} {
		assert.True(t, ValidFormats[f], f)
	}
	assert.False(t, ValidFormats["jsonl"])
}
