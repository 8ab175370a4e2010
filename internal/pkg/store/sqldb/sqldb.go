// Package sqldb persists serialized system model snapshots in a MySQL
// table keyed by model uid.
package sqldb

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"time"

	"github.com/google/uuid"

	_ "github.com/go-sql-driver/mysql"

	"github.com/esdl/esn_core/internal/pkg/codec"
	"github.com/esdl/esn_core/internal/pkg/model"
	esnuid "github.com/esdl/esn_core/internal/pkg/uid"
)

const queryTimeout = 1 * time.Second

type Handler struct {
	pid    uuid.UUID
	config config
	db     *sql.DB
}

type config struct {
	Server   string `json:"Server"`
	Port     int    `json:"Port"`
	Username string `json:"Username"`
	Password string `json:"Password"`
	Database string `json:"Database"`
}

// New returns a handler configured from a JSON config file. The database
// handle is lazy; Init creates the snapshot table before first use.
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

	h := &Handler{pid: pid, config: cfg}
	db, err := h.getDB()
	if err != nil {
		return nil, err
	}
	h.db = db
	return h, nil
}

// Init creates the snapshot table.
func (h *Handler) Init(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	return initDBTables(ctx, h.db)
}

func (h *Handler) PID() uuid.UUID {
	return h.pid
}

func (h *Handler) getDB() (*sql.DB, error) {
	uri := fmt.Sprintf("%v:%v@tcp(%v:%v)/%v",
		h.config.Username, h.config.Password, h.config.Server, h.config.Port, h.config.Database)
	return sql.Open("mysql", uri)
}

func initDBTables(ctx context.Context, db *sql.DB) error {
	sqlStatement := `CREATE TABLE IF NOT EXISTS system_models(
		uid VARCHAR(255) PRIMARY KEY,
		document MEDIUMBLOB)`
	_, err := db.ExecContext(ctx, sqlStatement)
	return err
}

func (h *Handler) Close() error {
	return h.db.Close()
}

// Save upserts the model's serialized snapshot keyed by its uid.
func (h *Handler) Save(ctx context.Context, m *model.SystemModel) error {
	data, err := codec.Serialize(m)
	if err != nil {
		return err
	}

	sqlStatement := `INSERT INTO system_models (uid, document) VALUES (?, ?)
		ON DUPLICATE KEY UPDATE document = VALUES(document)`

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	_, err = h.db.ExecContext(ctx, sqlStatement, m.Uid(), data)
	return err
}

// Load restores the model stored under the uid. The style must match the
// one the snapshot was written under.
func (h *Handler) Load(ctx context.Context, uid string, style esnuid.Style) (*model.SystemModel, error) {
	sqlStatement := `SELECT document FROM system_models WHERE uid = ?`

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var document []byte
	if err := h.db.QueryRowContext(ctx, sqlStatement, uid).Scan(&document); err != nil {
		return nil, err
	}
	return codec.Deserialize(document, style)
}
