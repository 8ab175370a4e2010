// Package natshandler publishes serialized system model snapshots to a
// NATS server, one subject per model uid.
package natshandler

import (
	"encoding/json"
	"io/ioutil"
	"log"

	"github.com/google/uuid"
	nats "github.com/nats-io/nats.go"

	"github.com/esdl/esn_core/internal/pkg/codec"
	"github.com/esdl/esn_core/internal/pkg/model"
)

type Handler struct {
	inbox  chan *model.SystemModel
	pid    uuid.UUID
	config config
	stop   chan bool
}

type config struct {
	Server string `json:"Server"`
}

// New returns a handler configured from a JSON config file. An empty
// Server falls back to the default NATS url.
func New(configPath string) (Handler, error) {
	jsonConfig, err := ioutil.ReadFile(configPath)
	if err != nil {
		return Handler{}, err
	}
	cfg := config{}
	if err := json.Unmarshal(jsonConfig, &cfg); err != nil {
		return Handler{}, err
	}
	if cfg.Server == "" {
		cfg.Server = nats.DefaultURL
	}

	pid, err := uuid.NewUUID()
	if err != nil {
		return Handler{}, err
	}

	return Handler{
		inbox:  make(chan *model.SystemModel, 50),
		pid:    pid,
		config: cfg,
		stop:   make(chan bool),
	}, nil
}

func (h Handler) PID() uuid.UUID {
	return h.pid
}

// Submit queues a model snapshot for publication.
func (h Handler) Submit(m *model.SystemModel) {
	h.inbox <- m
}

func (h *Handler) Stop() {
	h.stop <- true
}

// Process publishes queued snapshots to "models.<uid>" until stopped.
func (h Handler) Process() {
	log.Println("[NATS client] Process Started")
	nc, err := nats.Connect(h.config.Server)
	if err != nil {
		panic(err)
	}
	defer nc.Close()

loop:
	for {
		select {
		case m := <-h.inbox:
			data, err := codec.Serialize(m)
			if err != nil {
				log.Printf("[NATS client] serialize %s: %v", m.Uid(), err)
				continue
			}
			if err = nc.Publish("models."+m.Uid(), data); err != nil {
				log.Printf("[NATS client] unable to publish to nats server: %v", err)
			}

		case <-h.stop:
			break loop
		}
	}
	log.Println("[NATS client] Process Shutdown")
}
