package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/sizing-assistant/internal/types"
)

func TestRecommendCommand_FlagsValidation(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		errorString string
	}{
		{
			name:        "Missing --client flag",
			args:        []string{"recommend", "--data", testDataDir, "--product", "P001"},
			errorString: "required",
		},
		{
			name:        "Missing --product flag",
			args:        []string{"recommend", "--data", testDataDir, "--client", "C0001"},
			errorString: "required",
		},
		{
			name:        "Unknown client",
			args:        []string{"recommend", "--data", testDataDir, "--client", "C9999", "--product", "P001"},
			errorString: "client not found: C9999",
		},
		{
			name:        "Unknown product",
			args:        []string{"recommend", "--data", testDataDir, "--client", "C0001", "--product", "P999"},
			errorString: "product not found: P999",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := executeCommand(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorString)
		})
	}
}

func TestRecommendCommand_Stdout(t *testing.T) {
	stdout, _, err := executeCommand(t, "recommend", "--data", testDataDir, "--client", "C0001", "--product", "P001")
	require.NoError(t, err)

	var rec types.SizeRecommendation
	require.NoError(t, json.Unmarshal([]byte(stdout), &rec))
	assert.Equal(t, types.SizeM, rec.RecommendedSize)
	assert.GreaterOrEqual(t, rec.Confidence, 0.0)
	assert.LessOrEqual(t, rec.Confidence, 1.0)
}

func TestRecommendCommand_OutputFile(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "nested", "rec.json")

	stdout, stderr, err := executeCommand(t, "recommend", "--data", testDataDir,
		"--client", "C0001", "--product", "P001", "--out", outPath, "--verbose")
	require.NoError(t, err)
	assert.Contains(t, stdout, outPath)
	assert.NotEmpty(t, stderr)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	var rec types.SizeRecommendation
	require.NoError(t, json.Unmarshal(data, &rec))
	assert.Equal(t, types.SizeM, rec.RecommendedSize)
}

func TestRecommendCommand_BadDataDir(t *testing.T) {
	_, _, err := executeCommand(t, "recommend", "--data", t.TempDir(), "--client", "C0001", "--product", "P001")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load catalog")
}
