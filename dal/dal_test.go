package dal

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintPrettyJSONStruct(t *testing.T) {
	data := struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}{Name: "equipment", Count: 3}

	result := PrintPrettyJSON(data)
	require.NotEmpty(t, result)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(result), &decoded))
	assert.Equal(t, "equipment", decoded["name"])
	assert.Equal(t, float64(3), decoded["count"])
}

func TestPrintPrettyJSONMap(t *testing.T) {
	result := PrintPrettyJSON(map[string]string{"status": "active"})
	assert.Contains(t, result, `"status": "active"`)
}

func TestPrintPrettyJSONUnserializable(t *testing.T) {
	// Channels cannot be marshalled; the helper must not panic
	result := PrintPrettyJSON(make(chan int))
	assert.Contains(t, result, "unserializable")
}
