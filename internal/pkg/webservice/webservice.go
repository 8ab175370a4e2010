// Package webservice exposes an HTTP registry of serialized system model
// documents with an inferred-topology endpoint.
package webservice

import (
	"encoding/json"
	"io/ioutil"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/mux"

	"github.com/esdl/esn_core/internal/pkg/codec"
	"github.com/esdl/esn_core/internal/pkg/nts"
	"github.com/esdl/esn_core/internal/pkg/uid"
)

// Registry is an in-memory document store keyed by model uid.
type Registry struct {
	mux       *sync.Mutex
	documents map[string][]byte
}

func NewRegistry() *Registry {
	return &Registry{
		mux:       &sync.Mutex{},
		documents: make(map[string][]byte),
	}
}

func (r *Registry) Put(uid string, doc []byte) {
	r.mux.Lock()
	defer r.mux.Unlock()
	r.documents[uid] = doc
}

func (r *Registry) Get(uid string) ([]byte, bool) {
	r.mux.Lock()
	defer r.mux.Unlock()
	doc, ok := r.documents[uid]
	return doc, ok
}

// App serves the model registry.
type App struct {
	registry *Registry
	style    uid.Style
}

func NewApp(style uid.Style) *App {
	return &App{
		registry: NewRegistry(),
		style:    style,
	}
}

func (app *App) Registry() *Registry {
	return app.registry
}

func (app *App) Router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/models/{uid}", app.ModelHandler).Methods("GET", "POST")
	r.HandleFunc("/models/{uid}/topology", app.TopologyHandler).Methods("GET")
	return r
}

// ModelHandler serves and accepts wire documents. POSTed documents are
// decoded before acceptance so the registry only ever holds valid models.
func (app *App) ModelHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")

	switch r.Method {
	case "GET":
		doc, ok := app.registry.Get(vars["uid"])
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(doc); err != nil {
			log.Println("[Webservice] write response:", err)
		}

	case "POST":
		body, err := ioutil.ReadAll(r.Body)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if _, err := codec.Deserialize(body, app.style); err != nil {
			log.Println("[Webservice] malformed document:", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		app.registry.Put(vars["uid"], body)
		w.WriteHeader(http.StatusCreated)

	default:
		w.WriteHeader(http.StatusBadRequest)
	}
}

// TopologyHandler serves the inferred edge list of a registered model.
func (app *App) TopologyHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")

	doc, ok := app.registry.Get(vars["uid"])
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	m, err := codec.Deserialize(doc, app.style)
	if err != nil {
		log.Println("[Webservice] stored document no longer decodes:", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	edges := m.Edges()
	if edges == nil {
		edges = []nts.Edge{}
	}
	body, err := json.Marshal(edges)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Println("[Webservice] write response:", err)
	}
}
