package schemas

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	embedded "github.com/jonathan/sizing-assistant/schemas"
)

const validClients = `[
  {
    "client_id": "C0001",
    "name": "Ana García",
    "age": 28,
    "height_cm": 165,
    "weight_kg": 58,
    "body_measurements": {"bust_cm": 90, "waist_cm": 70, "hips_cm": 95},
    "preferred_fit": "regular",
    "purchase_history": [{"product_id": "P002", "size_purchased": "M", "fit_feedback": "Perfect fit"}]
  }
]`

func TestValidateDocument_ValidClients(t *testing.T) {
	err := ValidateDocument(embedded.ClientProfiles, []byte(validClients))
	assert.NoError(t, err)
}

func TestValidateDocument_InvalidPreferredFit(t *testing.T) {
	doc := `[{"client_id": "C0001", "name": "Ana", "height_cm": 165,
		"body_measurements": {"bust_cm": 90, "waist_cm": 70, "hips_cm": 95},
		"preferred_fit": "baggy"}]`

	err := ValidateDocument(embedded.ClientProfiles, []byte(doc))
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok, "error should be ValidationError type")
	assert.Greater(t, len(validationErr.Errors), 0)
}

func TestValidateDocument_MissingSizeChartEntry(t *testing.T) {
	doc := `[{"product_id": "P001", "name": "Blusa", "available_sizes": ["S"], "fit": "Regular", "fabric": "Cotton",
		"size_chart": {"S": {"bust_cm": 86, "waist_cm": 66, "hips_cm": 91}}}]`

	err := ValidateDocument(embedded.ProductCatalog, []byte(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "size_chart")
}

func TestValidateDocument_EmptyArray(t *testing.T) {
	err := ValidateDocument(embedded.ProductCatalog, []byte(`[]`))
	assert.Error(t, err)
}

func TestValidateDocument_MalformedJSON(t *testing.T) {
	err := ValidateDocument(embedded.ClientProfiles, []byte(`[{"client_id": `))
	require.Error(t, err)

	_, ok := err.(*SchemaLoadError)
	assert.True(t, ok, "error should be SchemaLoadError type")
}

func TestValidateDocument_UnknownSchema(t *testing.T) {
	err := ValidateDocument("missing.schema.json", []byte(`[]`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "embedded schema not found")
}

func TestValidateJSON_Files(t *testing.T) {
	dir := t.TempDir()
	schemaPath := filepath.Join(dir, "schema.json")
	jsonPath := filepath.Join(dir, "doc.json")

	schema, err := embedded.Files.ReadFile(embedded.ClientProfiles)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(schemaPath, schema, 0644))
	require.NoError(t, os.WriteFile(jsonPath, []byte(validClients), 0644))

	assert.NoError(t, ValidateJSON(schemaPath, jsonPath))
}

func TestValidateJSON_NonExistentJSON(t *testing.T) {
	dir := t.TempDir()
	schemaPath := filepath.Join(dir, "schema.json")
	require.NoError(t, os.WriteFile(schemaPath, []byte(`{"type": "object"}`), 0644))

	err := ValidateJSON(schemaPath, filepath.Join(dir, "nope.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidateJSONString_Invalid(t *testing.T) {
	schema := `{"type": "object", "required": ["name"], "properties": {"name": {"type": "string"}}}`

	err := ValidateJSONString(schema, `{"other": 1}`)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Equal(t, "(root)", validationErr.Errors[0].Field)
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Errors: []FieldError{{Field: "0.name", Message: "is required"}}}

	assert.Contains(t, err.Error(), "1. 0.name: is required")
}
