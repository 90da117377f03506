// Package config loads and validates the host configuration.
package config

import (
	"bytes"
	"encoding/hex"
	stdErrors "errors"
	"fmt"
	"io"

	"github.com/calimero-network/calimero-sdk-js/application/schema"
	"github.com/calimero-network/calimero-sdk-js/domain/entities"
	"github.com/calimero-network/calimero-sdk-js/domain/errors"
	"github.com/calimero-network/calimero-sdk-js/hostfuncs"
	"github.com/calimero-network/calimero-sdk-js/infrastructure/wazero"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// validate is a package-level singleton; building a validator is expensive.
var validate = validator.New()

// Backend names.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
)

// Config is the host configuration.
type Config struct {
	Host    HostConfig    `yaml:"host" json:"host"`
	Storage StorageConfig `yaml:"storage" json:"storage"`
	Blobs   BlobConfig    `yaml:"blobs" json:"blobs"`
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// HostConfig configures the host module and the per-call runtime.
type HostConfig struct {
	ModuleName      string `yaml:"module_name" json:"module_name" validate:"required" jsonschema:"default=env"`
	MaxBufferSize   uint32 `yaml:"max_buffer_size" json:"max_buffer_size" validate:"gt=0" jsonschema:"description=Largest span read from guest memory in bytes"`
	MaxRegisterSize int    `yaml:"max_register_size" json:"max_register_size" validate:"gt=0"`
	MaxBlobSize     int    `yaml:"max_blob_size" json:"max_blob_size" validate:"gt=0"`
	ContextID       string `yaml:"context_id,omitempty" json:"context_id,omitempty" validate:"omitempty,hexadecimal,len=64" jsonschema:"description=Hex-encoded 32-byte context id"`
	ExecutorID      string `yaml:"executor_id,omitempty" json:"executor_id,omitempty" validate:"omitempty,hexadecimal,len=64" jsonschema:"description=Hex-encoded 32-byte executor id"`
	TraceCalls      bool   `yaml:"trace_calls,omitempty" json:"trace_calls,omitempty"`
}

// StorageConfig selects the key-value backend.
type StorageConfig struct {
	Backend string `yaml:"backend" json:"backend" validate:"oneof=memory file" jsonschema:"enum=memory,enum=file"`
	Path    string `yaml:"path,omitempty" json:"path,omitempty" validate:"required_if=Backend file"`
}

// BlobConfig selects the blob backend.
type BlobConfig struct {
	Backend string `yaml:"backend" json:"backend" validate:"oneof=memory file" jsonschema:"enum=memory,enum=file"`
	Dir     string `yaml:"dir,omitempty" json:"dir,omitempty" validate:"required_if=Backend file"`
}

// LoggingConfig configures the host logger.
type LoggingConfig struct {
	Level       string `yaml:"level" json:"level" validate:"oneof=debug info warn error" jsonschema:"enum=debug,enum=info,enum=warn,enum=error"`
	Development bool   `yaml:"development,omitempty" json:"development,omitempty"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Host: HostConfig{
			ModuleName:      wazero.DefaultModuleName,
			MaxBufferSize:   wazero.DefaultMaxBufferSize,
			MaxRegisterSize: hostfuncs.DefaultMaxRegisterSize,
			MaxBlobSize:     hostfuncs.DefaultMaxBlobSize,
		},
		Storage: StorageConfig{Backend: BackendMemory},
		Blobs:   BlobConfig{Backend: BackendMemory},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load reads and validates the YAML configuration at path on fsys.
func Load(fsys afero.Fs, path string) (*Config, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result. Unknown
// fields are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !stdErrors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration. The first failing field is reported as
// an *errors.ConfigError.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if stdErrors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return &errors.ConfigError{
			Field: fe.Namespace(),
			Err:   fmt.Errorf("failed on the '%s' rule", fe.Tag()),
		}
	}
	return &errors.ConfigError{Err: err}
}

// ContextID decodes Host.ContextID; an empty value yields the zero id.
func (c *Config) ContextID() (entities.ContextID, error) {
	var id entities.ContextID
	err := decodeID(c.Host.ContextID, id[:])
	return id, err
}

// ExecutorID decodes Host.ExecutorID; an empty value yields the zero id.
func (c *Config) ExecutorID() (entities.ExecutorID, error) {
	var id entities.ExecutorID
	err := decodeID(c.Host.ExecutorID, id[:])
	return id, err
}

func decodeID(s string, dst []byte) error {
	if s == "" {
		return nil
	}
	b, err := hex.DecodeString(s)
	if err != nil || len(b) != len(dst) {
		return fmt.Errorf("invalid id %q: want %d hex-encoded bytes", s, len(dst))
	}
	copy(dst, b)
	return nil
}

// Schema returns the JSON schema of the configuration file.
func Schema() ([]byte, error) {
	return schema.GenerateSchema(&Config{})
}
