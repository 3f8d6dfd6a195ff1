package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/userdir/internal/flagx"
	"gopkg.in/yaml.v3"
)

// FileConfig is the DTO decoded from a JSON or YAML config file.
type FileConfig struct {
	StorePath    string   `json:"store_path" yaml:"store_path"`
	DatabasePath string   `json:"database_path" yaml:"database_path"`
	OrdersDir    string   `json:"orders_dir" yaml:"orders_dir"`
	OrderFields  []string `json:"order_fields" yaml:"order_fields"`
	LogLevel     string   `json:"log_level" yaml:"log_level"`
}

// parseFile overlays cfg with the file named by -c/-config. Empty values in
// the file leave cfg untouched. Panics on read or decode errors.
func parseFile(cfg *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	fc, err := decodeFile(path, data)
	if err != nil {
		panic(err)
	}
	fc.apply(cfg)
}

func decodeFile(path string, data []byte) (*FileConfig, error) {
	var fc FileConfig

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return nil, err
		}
	default:
		if err := json.Unmarshal(data, &fc); err != nil {
			return nil, err
		}
	}
	return &fc, nil
}

func (fc *FileConfig) apply(cfg *Config) {
	if fc.StorePath != "" {
		cfg.StorePath = fc.StorePath
	}
	if fc.DatabasePath != "" {
		cfg.DatabasePath = fc.DatabasePath
	}
	if fc.OrdersDir != "" {
		cfg.OrdersDir = fc.OrdersDir
	}
	if len(fc.OrderFields) > 0 {
		cfg.OrderFields = flagx.SplitList(strings.Join(fc.OrderFields, ","))
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
}
