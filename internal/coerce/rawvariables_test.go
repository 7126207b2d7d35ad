package coerce_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wundergraph/graphql-core-engine/internal/coerce"
)

func TestScanRawVariablesScalarsAndStructured(t *testing.T) {
	payload := []byte(`{
		"ep": "JEDI",
		"limit": 10,
		"ratio": 1.5,
		"active": true,
		"nothing": null,
		"review": {"stars": 5, "commentary": "great"},
		"ids": [1, 2, 3],
		"unused": "should not be scanned"
	}`)

	out, err := coerce.ScanRawVariables(payload, []string{"ep", "limit", "ratio", "active", "nothing", "review", "ids", "missing"})
	require.NoError(t, err)

	assert.Equal(t, "JEDI", out["ep"])
	assert.Equal(t, float64(10), out["limit"])
	assert.Equal(t, 1.5, out["ratio"])
	assert.Equal(t, true, out["active"])
	assert.Nil(t, out["nothing"])
	assert.Equal(t, map[string]interface{}{"stars": float64(5), "commentary": "great"}, out["review"])
	assert.Equal(t, []interface{}{float64(1), float64(2), float64(3)}, out["ids"])
	_, missingPresent := out["missing"]
	assert.False(t, missingPresent)
	_, unusedPresent := out["unused"]
	assert.False(t, unusedPresent, "ScanRawVariables must not return keys it wasn't asked for")
}

func TestScanRawVariablesEmptyPayload(t *testing.T) {
	out, err := coerce.ScanRawVariables(nil, []string{"a"})
	require.NoError(t, err)
	assert.Empty(t, out)
}
