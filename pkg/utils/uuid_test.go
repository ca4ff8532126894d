package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUUID_TrimsInput(t *testing.T) {
	id, err := ParseUUID("  6ba7b810-9dad-11d1-80b4-00c04fd430c8 ")
	require.NoError(t, err)
	assert.Equal(t, "6ba7b810-9dad-11d1-80b4-00c04fd430c8", id.String())

	_, err = ParseUUID("nope")
	assert.Error(t, err)
}

func TestGenerateProductCode(t *testing.T) {
	a, b := GenerateProductCode(), GenerateProductCode()
	assert.Regexp(t, `^PROD-[0-9A-F]{8}$`, a)
	assert.NotEqual(t, a, b)
}
