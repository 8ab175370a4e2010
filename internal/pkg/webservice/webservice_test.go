package webservice

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gotest.tools/assert"

	"github.com/esdl/esn_core/internal/pkg/codec"
	"github.com/esdl/esn_core/internal/pkg/component"
	"github.com/esdl/esn_core/internal/pkg/model"
	"github.com/esdl/esn_core/internal/pkg/nts"
	"github.com/esdl/esn_core/internal/pkg/timeframe"
	"github.com/esdl/esn_core/internal/pkg/uid"
)

func testDocument(t *testing.T) []byte {
	t.Helper()

	gen := component.NewSource(uid.Uid{Name: "Gen"}, []string{"electricity"}, nil)
	load := component.NewSink(uid.Uid{Name: "Load"}, []string{"electricity"}, nil)
	bus := component.NewBus(uid.Uid{Name: "Powerline"},
		[]string{"Gen.electricity"}, []string{"Load.electricity"})

	tf, err := timeframe.New(time.Date(2019, 10, 8, 0, 0, 0, 0, time.UTC), 2, time.Hour)
	assert.NilError(t, err)

	m, err := model.FromComponents("mwe", uid.StyleName,
		[]component.Component{gen, load, bus}, tf, nil)
	assert.NilError(t, err)

	data, err := codec.Serialize(m)
	assert.NilError(t, err)
	return data
}

func TestModelPostThenGet(t *testing.T) {
	app := NewApp(uid.StyleName)
	router := app.Router()
	doc := testDocument(t)

	w := httptest.NewRecorder()
	r := httptest.NewRequest("POST", "http://example.com/models/mwe", bytes.NewBuffer(doc))
	router.ServeHTTP(w, r)
	assert.Equal(t, http.StatusCreated, w.Code, "post returned 201")

	w = httptest.NewRecorder()
	r = httptest.NewRequest("GET", "http://example.com/models/mwe", nil)
	router.ServeHTTP(w, r)
	assert.Equal(t, http.StatusOK, w.Code, "get returned 200")
	assert.Equal(t, "application/json; charset=UTF-8", w.HeaderMap.Get("Content-Type"), "got expected Content-Type in response")

	restored, err := codec.Deserialize(w.Body.Bytes(), uid.StyleName)
	assert.NilError(t, err)
	assert.Equal(t, restored.Uid(), "mwe")
}

func TestModelGetUnknownUid(t *testing.T) {
	app := NewApp(uid.StyleName)
	router := app.Router()

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "http://example.com/models/nope", nil)
	router.ServeHTTP(w, r)
	assert.Equal(t, http.StatusNotFound, w.Code, "get returned 404")
}

func TestModelPostRejectsMalformedDocument(t *testing.T) {
	app := NewApp(uid.StyleName)
	router := app.Router()

	w := httptest.NewRecorder()
	r := httptest.NewRequest("POST", "http://example.com/models/mwe", bytes.NewBufferString("{"))
	router.ServeHTTP(w, r)
	assert.Equal(t, http.StatusBadRequest, w.Code, "post returned 400")
}

func TestTopologyGet(t *testing.T) {
	app := NewApp(uid.StyleName)
	router := app.Router()
	doc := testDocument(t)

	w := httptest.NewRecorder()
	r := httptest.NewRequest("POST", "http://example.com/models/mwe", bytes.NewBuffer(doc))
	router.ServeHTTP(w, r)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	r = httptest.NewRequest("GET", "http://example.com/models/mwe/topology", nil)
	router.ServeHTTP(w, r)
	assert.Equal(t, http.StatusOK, w.Code, "get returned 200")

	var edges []nts.Edge
	assert.NilError(t, json.Unmarshal(w.Body.Bytes(), &edges))
	assert.Equal(t, len(edges), 2)
	assert.Equal(t, edges[0], nts.Edge{Source: "Gen", Target: "Powerline"})
}
