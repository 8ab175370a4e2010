package mongodb

import (
	"testing"

	"gotest.tools/assert"
)

func TestNew(t *testing.T) {
	h, err := New("mongodb_test_config.json")
	assert.NilError(t, err)

	assert.Equal(t, h.config.URI, "mongodb://localhost")
	assert.Equal(t, h.config.Database, "esn")
	assert.Equal(t, h.config.Port, "27017")
}

func TestNewRejectsMissingConfig(t *testing.T) {
	_, err := New("no_such_config.json")
	assert.Assert(t, err != nil)
}
