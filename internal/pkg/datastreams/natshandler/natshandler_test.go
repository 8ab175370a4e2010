package natshandler

import (
	"testing"

	"gotest.tools/assert"

	"github.com/esdl/esn_core/internal/pkg/model"
	"github.com/esdl/esn_core/internal/pkg/uid"
)

func TestNew(t *testing.T) {
	h, err := New("natshandler_test_config.json")
	assert.NilError(t, err)

	assert.Equal(t, h.config.Server, "nats://localhost:4222")
}

func TestNewRejectsMissingConfig(t *testing.T) {
	_, err := New("no_such_config.json")
	assert.Assert(t, err != nil)
}

func TestSubmitQueues(t *testing.T) {
	h, err := New("natshandler_test_config.json")
	assert.NilError(t, err)

	m, err := model.New("queued", uid.StyleName)
	assert.NilError(t, err)

	h.Submit(m)

	queued := <-h.inbox
	assert.Equal(t, queued.Uid(), "queued")
}
