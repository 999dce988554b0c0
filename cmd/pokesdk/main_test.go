package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/pokesdk/poke-sdk/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseID(t *testing.T) {
	id, err := parseID("25")
	require.NoError(t, err)
	assert.Equal(t, uint32(25), id)

	id, err = parseID("4294967295")
	require.NoError(t, err)
	assert.Equal(t, uint32(4294967295), id)

	for _, bad := range []string{"-1", "abc", "1.5", "4294967296", ""} {
		_, err := parseID(bad)
		assert.Error(t, err, bad)
	}
}

func TestGuestEnv(t *testing.T) {
	env := guestEnv([]string{
		"HOME=/root",
		"POKESDK_BASE_URL=http://localhost:8080/api/v2",
		"POKESDK_TIMEOUT=5s",
		"POKESDK_EMPTY=",
		"POKESDKX=1",
		"MALFORMED",
	})

	assert.Equal(t, map[string]string{
		"POKESDK_BASE_URL": "http://localhost:8080/api/v2",
		"POKESDK_TIMEOUT":  "5s",
		"POKESDK_EMPTY":    "",
	}, env)
}

func TestLoadConfig_LogLevelFlag(t *testing.T) {
	t.Setenv("POKESDK_CONFIG", "")
	t.Cleanup(func() { logLevel, configPath = "", "" })

	logLevel = "debug"
	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)

	logLevel = "loud"
	_, err = loadConfig()
	assert.Error(t, err)
}

func executeGet(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() { format, logLevel, configPath = "json", "", "" })

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(append([]string{"get"}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestGetCommand(t *testing.T) {
	up := testutil.NewUpstream(t, testutil.Pikachu())
	t.Setenv("POKESDK_CONFIG", "")
	t.Setenv("POKESDK_BASE_URL", up.BaseURL())
	t.Setenv("POKESDK_LOG_LEVEL", "error")

	out, err := executeGet(t, "25")
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, true, doc["success"])
	assert.Nil(t, doc["error"])
}

func TestGetCommand_Failure(t *testing.T) {
	up := testutil.NewUpstream(t)
	t.Setenv("POKESDK_CONFIG", "")
	t.Setenv("POKESDK_BASE_URL", up.BaseURL())
	t.Setenv("POKESDK_LOG_LEVEL", "error")

	out, err := executeGet(t, "9999", "--format", "pretty")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
	assert.Contains(t, out, "error: pokemon 9999 not found")
}

func TestGetCommand_BadArgs(t *testing.T) {
	_, err := executeGet(t, "pikachu")
	assert.Error(t, err)

	_, err = executeGet(t, "1", "--format", "xml")
	assert.EqualError(t, err, "unknown format: xml")
}
