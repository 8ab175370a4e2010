package sqldb

import (
	"testing"

	"gotest.tools/assert"
)

func TestNew(t *testing.T) {
	h, err := New("sqldb_test_config.json")
	assert.NilError(t, err)
	defer h.Close()

	assert.Equal(t, h.config.Server, "localhost")
	assert.Equal(t, h.config.Port, 3306)
	assert.Equal(t, h.config.Database, "esn")
}

func TestNewRejectsMissingConfig(t *testing.T) {
	_, err := New("no_such_config.json")
	assert.Assert(t, err != nil)
}
