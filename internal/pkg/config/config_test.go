package config

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"gotest.tools/assert"

	"github.com/esdl/esn_core/internal/pkg/uid"
)

func TestLoad(t *testing.T) {
	s, err := Load("config_test_settings.yaml")
	assert.NilError(t, err)

	assert.Equal(t, s.Listen, ":9090")
	assert.Equal(t, s.Style(), uid.StyleQualname)
	assert.Equal(t, s.ModelFile, "./config/model/mwe.json")
	assert.Equal(t, s.NatsConfig, "./config/datastreams/nats_config.json")
	assert.Equal(t, s.MongoConfig, "")
}

func TestLoadDefaults(t *testing.T) {
	dir, err := ioutil.TempDir("", "config")
	assert.NilError(t, err)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "settings.yaml")
	assert.NilError(t, ioutil.WriteFile(path, []byte("model_file: m.json\n"), 0644))

	s, err := Load(path)
	assert.NilError(t, err)
	assert.Equal(t, s.Listen, ":8080")
	assert.Equal(t, s.Style(), uid.StyleName)
}

func TestLoadRejectsUnknownStyle(t *testing.T) {
	dir, err := ioutil.TempDir("", "config")
	assert.NilError(t, err)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "settings.yaml")
	assert.NilError(t, ioutil.WriteFile(path, []byte("uid_style: nonsense\n"), 0644))

	_, err = Load(path)
	assert.ErrorContains(t, err, "unknown style")
}
