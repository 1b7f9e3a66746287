// Package config reads the optional tvload.yaml project file.
//
// The file lives next to the listings data (or wherever the command
// runs from) and supplies defaults for connection parameters and load
// behavior. CLI flags and environment variables always win over it.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

type ConnectionConfig struct {
	Host           string `yaml:"host"`
	Port           int    `yaml:"port"`
	Username       string `yaml:"username"`
	Database       string `yaml:"database"`
	SSLMode        string `yaml:"sslmode"`
	SSLCert        string `yaml:"sslcert,omitempty"`
	SSLKey         string `yaml:"sslkey,omitempty"`
	SSLRootCert    string `yaml:"sslrootcert,omitempty"`
	AuthMethod     string `yaml:"auth_method,omitempty"`
	AzureTenantID  string `yaml:"azure_tenant_id,omitempty"`
	AzureClientID  string `yaml:"azure_client_id,omitempty"`
	AWSRegion      string `yaml:"aws_region,omitempty"`
	GoogleInstance string `yaml:"google_instance,omitempty"`
}

// LoadSettings configures how listings files are read and loaded.
type LoadSettings struct {
	// Delimiter is the field separator as a one-character string,
	// e.g. "," or ";". Empty means the built-in default.
	Delimiter string `yaml:"delimiter,omitempty"`

	// StatusFallback, when present, is stored for rows whose estado
	// field does not parse as an integer. Absent means such rows are
	// rejected and counted as failures.
	StatusFallback *int `yaml:"status_fallback,omitempty"`
}

// DelimiterRune converts the configured delimiter string to a rune.
// Returns 0 for an empty setting so callers can apply their default.
func (l LoadSettings) DelimiterRune() (rune, error) {
	if l.Delimiter == "" {
		return 0, nil
	}
	r, size := utf8.DecodeRuneInString(l.Delimiter)
	if r == utf8.RuneError || size != len(l.Delimiter) {
		return 0, fmt.Errorf("delimiter must be a single character, got %q", l.Delimiter)
	}
	return r, nil
}

type ProjectConfig struct {
	Connection ConnectionConfig `yaml:"connection"`
	Load       LoadSettings     `yaml:"load"`
	Timeout    string           `yaml:"timeout"`
}

const ConfigFileName = "tvload.yaml"

func Load(dir string) (*ProjectConfig, error) {
	configPath := filepath.Join(dir, ConfigFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
