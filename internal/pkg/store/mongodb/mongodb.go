// Package mongodb persists serialized system model snapshots in a MongoDB
// collection keyed by model uid.
package mongodb

import (
	"context"
	"encoding/json"
	"io/ioutil"
	"log"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/esdl/esn_core/internal/pkg/codec"
	"github.com/esdl/esn_core/internal/pkg/model"
	esnuid "github.com/esdl/esn_core/internal/pkg/uid"
)

const collection = "systemModels"

type Handler struct {
	pid    uuid.UUID
	config config
	client *mongo.Client
}

type config struct {
	URI      string `json:"URI"`
	Database string `json:"Database"`
	Port     string `json:"Port"`
}

// New returns a handler configured from a JSON config file.
func New(configPath string) (*Handler, error) {
	jsonConfig, err := ioutil.ReadFile(configPath)
	if err != nil {
		return nil, err
	}
	cfg := config{}
	if err := json.Unmarshal(jsonConfig, &cfg); err != nil {
		return nil, err
	}

	pid, err := uuid.NewUUID()
	if err != nil {
		return nil, err
	}

	return &Handler{pid: pid, config: cfg}, nil
}

func (h *Handler) PID() uuid.UUID {
	return h.pid
}

// Connect dials the configured MongoDB resource.
func (h *Handler) Connect(ctx context.Context) error {
	client, err := mongo.NewClient(options.Client().ApplyURI(h.config.URI + ":" + h.config.Port))
	if err != nil {
		return err
	}
	if err := client.Connect(ctx); err != nil {
		return err
	}
	h.client = client
	return nil
}

func (h *Handler) Disconnect(ctx context.Context) error {
	if h.client == nil {
		return nil
	}
	return h.client.Disconnect(ctx)
}

// Save upserts the model's serialized snapshot keyed by its uid.
func (h *Handler) Save(ctx context.Context, m *model.SystemModel) error {
	data, err := codec.Serialize(m)
	if err != nil {
		return err
	}

	opts := options.Update().SetUpsert(true)
	_, err = h.client.Database(h.config.Database).Collection(collection).UpdateOne(
		ctx,
		bson.M{"uid": m.Uid()},
		bson.D{{Key: "$set", Value: bson.M{
			"uid":      m.Uid(),
			"document": string(data),
		}}},
		opts,
	)
	if err != nil {
		log.Printf("[Mongo] save %s: %v", m.Uid(), err)
	}
	return err
}

// Load restores the model stored under the uid. The style must match the
// one the snapshot was written under.
func (h *Handler) Load(ctx context.Context, uid string, style esnuid.Style) (*model.SystemModel, error) {
	var snapshot struct {
		Uid      string `bson:"uid"`
		Document string `bson:"document"`
	}
	err := h.client.Database(h.config.Database).Collection(collection).FindOne(
		ctx, bson.M{"uid": uid}).Decode(&snapshot)
	if err != nil {
		return nil, err
	}
	return codec.Deserialize([]byte(snapshot.Document), style)
}
