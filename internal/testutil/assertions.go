// Package testutil provides common test utilities and assertions for SDK tests
package testutil

import (
	"encoding/json"
	"testing"

	"github.com/pokesdk/poke-sdk/domain/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertJSONEqual compares two JSON strings for equality, ignoring formatting
func AssertJSONEqual(t *testing.T, expected, actual string, msgAndArgs ...interface{}) {
	t.Helper()

	var expectedJSON, actualJSON interface{}
	require.NoError(t, json.Unmarshal([]byte(expected), &expectedJSON), "expected JSON is invalid")
	require.NoError(t, json.Unmarshal([]byte(actual), &actualJSON), "actual JSON is invalid")

	assert.Equal(t, expectedJSON, actualJSON, msgAndArgs...)
}

// RequireSuccess fails the test unless env is a success and returns its Pokemon.
func RequireSuccess(t *testing.T, env entities.Envelope) entities.Pokemon {
	t.Helper()

	msg, _ := env.Message()
	require.True(t, env.IsSuccess(), "expected success envelope, got failure: %s", msg)
	p, ok := env.Pokemon()
	require.True(t, ok)
	return p
}

// RequireFailure fails the test unless env is a failure and returns its message.
func RequireFailure(t *testing.T, env entities.Envelope) string {
	t.Helper()

	require.False(t, env.IsSuccess(), "expected failure envelope")
	_, ok := env.Pokemon()
	require.False(t, ok, "failure envelope must not carry a pokemon")
	msg, ok := env.Message()
	require.True(t, ok)
	require.NotEmpty(t, msg)
	return msg
}

// AssertWireKeys asserts that a serialized envelope has exactly the three
// top-level wire keys.
func AssertWireKeys(t *testing.T, encoded string) {
	t.Helper()

	var top map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(encoded), &top))
	keys := make([]string, 0, len(top))
	for k := range top {
		keys = append(keys, k)
	}
	assert.ElementsMatch(t, []string{"success", "pokemon", "error"}, keys)
}
