package schemas

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xeipuuv/gojsonschema"
)

func TestAllSchemaFiles_ValidJSON(t *testing.T) {
	for _, schemaFile := range All {
		t.Run(schemaFile, func(t *testing.T) {
			data, err := Read(schemaFile)
			require.NoError(t, err, "should be able to read schema file")

			var schemaObj map[string]any
			require.NoError(t, json.Unmarshal(data, &schemaObj), "schema file should be valid JSON")

			assert.Equal(t, "http://json-schema.org/draft-07/schema#", schemaObj["$schema"])
			assert.Equal(t, "object", schemaObj["type"])
			assert.Contains(t, schemaObj, "required")
		})
	}
}

func TestSchemaFiles_Compile(t *testing.T) {
	for _, schemaFile := range All {
		t.Run(schemaFile, func(t *testing.T) {
			data, err := Read(schemaFile)
			require.NoError(t, err)

			_, err = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
			assert.NoError(t, err, "schema should compile")
		})
	}
}

func TestRead_Unknown(t *testing.T) {
	_, err := Read("missing.schema.json")
	assert.Error(t, err)
}
