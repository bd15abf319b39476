package main

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/sizing-assistant/internal/types"
)

func TestParseQueryCommand_RequiresText(t *testing.T) {
	_, _, err := executeCommand(t, "parse-query")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required")
}

func TestParseQueryCommand_ParseOnly(t *testing.T) {
	stdout, _, err := executeCommand(t, "parse-query", "--text", "¿Qué talla para C0001 en P001?")
	require.NoError(t, err)

	var out parseQueryOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	assert.Equal(t, types.IntentSizeRecommendation, out.ParsedQuery.Intent)
	assert.Equal(t, []string{"C0001"}, out.ParsedQuery.ClientIDs)
	assert.Equal(t, []string{"P001"}, out.ParsedQuery.ProductIDs)
	assert.Nil(t, out.RetrievedContext)
}

func TestParseQueryCommand_Retrieve(t *testing.T) {
	stdout, stderr, err := executeCommand(t, "parse-query", "--data", testDataDir,
		"--text", "talla para C0001 en P001", "--retrieve", "--verbose")
	require.NoError(t, err)
	assert.NotEmpty(t, stderr)

	var out parseQueryOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	require.NotNil(t, out.RetrievedContext)
	require.Len(t, out.RetrievedContext.Clients, 1)
	assert.Equal(t, "C0001", out.RetrievedContext.Clients[0].ClientID)
	require.Len(t, out.RetrievedContext.Products, 1)
	assert.Equal(t, "P001", out.RetrievedContext.Products[0].ProductID)
}
