package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDUnmarshal(t *testing.T) {
	var payload struct {
		A ID `json:"a"`
		B ID `json:"b"`
		C ID `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a": 42, "b": "v-7", "c": null}`), &payload))

	assert.Equal(t, ID("42"), payload.A)
	assert.Equal(t, ID("v-7"), payload.B)
	assert.True(t, payload.C.IsZero())
}

func TestIDUnmarshalRejectsObjects(t *testing.T) {
	var id ID
	assert.Error(t, json.Unmarshal([]byte(`{"x":1}`), &id))
}

func TestIDMarshal(t *testing.T) {
	out, err := json.Marshal(map[string]ID{"num": "12", "str": "abc-1", "none": ""})
	require.NoError(t, err)
	assert.JSONEq(t, `{"num": 12, "str": "abc-1", "none": null}`, string(out))
}
