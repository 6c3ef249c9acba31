package ucsc

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"sigs.k8s.io/yaml"
)

// Config is everything needed to build a Handle.  It is the on-disk format
// of the ucscctl config file, too; field names follow the JSON tags.
type Config struct {
	// Endpoint is the base URL of the UCS Central instance, e.g.
	// "https://ucs-central.example.com".
	Endpoint string `json:"endpoint" validate:"required,url"`

	Username string `json:"username" validate:"required"`

	// Password may be left empty in config files and supplied via the
	// UCSC_PASSWORD environment variable or an interactive prompt.
	Password string `json:"password,omitempty"`

	// Insecure disables TLS certificate verification.  UCS Central ships
	// with a self-signed certificate, so this is sadly common.
	Insecure bool `json:"insecure,omitempty"`

	// RequestTimeout bounds a single XML API exchange.  Zero means 60s.
	RequestTimeout time.Duration `json:"requestTimeout,omitempty"`

	UserAgent string `json:"userAgent,omitempty"`
}

var validate = validator.New()

// Validate checks the Config's declared constraints.
func (cfg Config) Validate() error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// LoadConfig reads and validates a YAML config file.  Unknown fields are an
// error, so typos don't silently disable settings.
func LoadConfig(filename string) (Config, error) {
	var cfg Config
	yamlBytes, err := os.ReadFile(filename)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(yamlBytes, &cfg, yaml.DisallowUnknownFields); err != nil {
		return cfg, fmt.Errorf("%s: %w", filename, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", filename, err)
	}
	return cfg, nil
}
