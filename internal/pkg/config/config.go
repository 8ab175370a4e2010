// Package config loads the service configuration from a YAML file.
package config

import (
	"io/ioutil"

	"gopkg.in/yaml.v3"

	"github.com/esdl/esn_core/internal/pkg/uid"
)

// Settings configures the esn daemon. The store and stream entries point
// at the JSON config files of their handlers; empty entries disable the
// handler.
type Settings struct {
	Listen      string `yaml:"listen"`
	UidStyle    string `yaml:"uid_style"`
	ModelFile   string `yaml:"model_file"`
	MongoConfig string `yaml:"mongo_config"`
	SQLConfig   string `yaml:"sql_config"`
	NatsConfig  string `yaml:"nats_config"`
}

// Load reads settings from a YAML file and fills the defaults.
func Load(path string) (Settings, error) {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return Settings{}, err
	}

	s := Settings{}
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return Settings{}, err
	}

	if s.Listen == "" {
		s.Listen = ":8080"
	}
	if s.UidStyle == "" {
		s.UidStyle = string(uid.StyleName)
	}
	if _, err := uid.ParseStyle(s.UidStyle); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Style returns the configured uid projection style.
func (s Settings) Style() uid.Style {
	style, err := uid.ParseStyle(s.UidStyle)
	if err != nil {
		return uid.StyleName
	}
	return style
}
