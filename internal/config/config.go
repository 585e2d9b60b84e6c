package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/hashicorp/go-multierror"
	"github.com/pelletier/go-toml/v2"

	"qsearch/internal/eventbus"
)

// Backend kinds
const (
	BackendGRPC    = "grpc"
	BackendHTTP    = "http"
	BackendElastic = "elastic"
)

// Environment overrides
const (
	EnvBackendAddress  = "QSEARCH_BACKEND_ADDRESS"
	EnvElasticUsername = "QSEARCH_ELASTIC_USERNAME"
	EnvElasticPassword = "QSEARCH_ELASTIC_PASSWORD"
)

var ErrUnknownBackend = errors.New("unknown backend kind")

// Config represents the application configuration
type Config struct {
	Version int             `toml:"version"`
	Backend BackendSettings `toml:"backend"`
	Search  SearchSettings  `toml:"search"`
	Log     LogSettings     `toml:"log"`
}

// BackendSettings selects and configures the remote search service
type BackendSettings struct {
	Kind      string `toml:"kind"`
	Address   string `toml:"address"`
	TimeoutMS int    `toml:"timeout_ms"`
	Insecure  bool   `toml:"insecure"`

	// Elasticsearch only
	Index    string `toml:"index,omitempty"`
	Username string `toml:"username,omitempty"`
	Password string `toml:"password,omitempty"`
}

// SearchSettings holds the pagination and debounce parameters
type SearchSettings struct {
	PageSize   int `toml:"page_size"`
	DebounceMS int `toml:"debounce_ms"`
	CacheSize  int `toml:"cache_size"` // 0 keeps every page for the session
	WindowSize int `toml:"window_size"`
}

// LogSettings controls where logs are written
type LogSettings struct {
	File string `toml:"file"`
}

// Timeout returns the per-request timeout
func (b BackendSettings) Timeout() time.Duration {
	return time.Duration(b.TimeoutMS) * time.Millisecond
}

// Debounce returns the delay applied to typed queries
func (s SearchSettings) Debounce() time.Duration {
	return time.Duration(s.DebounceMS) * time.Millisecond
}

// Validate reports every invalid setting at once
func (c *Config) Validate() error {
	var result *multierror.Error

	switch c.Backend.Kind {
	case BackendGRPC, BackendHTTP, BackendElastic:
	default:
		result = multierror.Append(result, fmt.Errorf("%w: %q", ErrUnknownBackend, c.Backend.Kind))
	}
	if c.Backend.Address == "" {
		result = multierror.Append(result, errors.New("backend.address must be set"))
	}
	if c.Backend.TimeoutMS < 0 {
		result = multierror.Append(result, errors.New("backend.timeout_ms must not be negative"))
	}
	if c.Backend.Kind == BackendElastic && c.Backend.Index == "" {
		result = multierror.Append(result, errors.New("backend.index must be set for elastic"))
	}
	if c.Search.PageSize < 1 {
		result = multierror.Append(result, errors.New("search.page_size must be at least 1"))
	}
	if c.Search.DebounceMS < 0 {
		result = multierror.Append(result, errors.New("search.debounce_ms must not be negative"))
	}
	if c.Search.CacheSize < 0 {
		result = multierror.Append(result, errors.New("search.cache_size must not be negative"))
	}
	if c.Search.WindowSize < 1 {
		result = multierror.Append(result, errors.New("search.window_size must be at least 1"))
	}

	return result.ErrorOrNil()
}

// ApplyEnv overrides settings from the environment
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvBackendAddress); v != "" {
		c.Backend.Address = v
	}
	if v := os.Getenv(EnvElasticUsername); v != "" {
		c.Backend.Username = v
	}
	if v := os.Getenv(EnvElasticPassword); v != "" {
		c.Backend.Password = v
	}
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// NewConfigService creates a config service rooted at the XDG config dir
func NewConfigService() ConfigService {
	path, err := xdg.ConfigFile(filepath.Join("qsearch", "config.toml"))
	if err != nil {
		// Fall back to the working directory
		path = "qsearch.toml"
	}
	return &configService{filePath: path}
}

// NewConfigServiceAt creates a config service for an explicit file
func NewConfigServiceAt(path string) ConfigService {
	return &configService{filePath: path}
}

// WithBus attaches an event bus to a config service
func WithBus(cs ConfigService, bus eventbus.EventBus) ConfigService {
	if impl, ok := cs.(*configService); ok {
		impl.bus = bus
	}
	return cs
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from file, falling back to defaults
// when no file exists yet
func (cs *configService) Load() (*Config, error) {
	var cfg *Config
	if _, err := os.Stat(cs.filePath); os.IsNotExist(err) {
		cfg = DefaultConfig()
		cfg.ApplyEnv()
	} else {
		cfg, err = cs.LoadFromPath(cs.filePath)
		if err != nil {
			return nil, err
		}
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{
			Path:    cs.filePath,
			Backend: cfg.Backend.Kind,
		})
	}

	return cfg, nil
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	}

	return nil
}

// LoadFromPath loads configuration from a specific path.
// Missing keys keep their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.ApplyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Backend: BackendSettings{
			Kind:      BackendGRPC,
			Address:   "localhost:50051",
			TimeoutMS: 10000,
			Insecure:  true,
			Index:     "questions",
		},
		Search: SearchSettings{
			PageSize:   10,
			DebounceMS: 300,
			CacheSize:  0,
			WindowSize: 5,
		},
		Log: LogSettings{
			File: "qsearch.log",
		},
	}
}
