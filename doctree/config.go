package doctree

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/storykeep/nodetree/history"
	"github.com/storykeep/nodetree/notify"
	"gopkg.in/yaml.v3"
)

// DefaultReservedSlugs are slugs taken by application routes.
var DefaultReservedSlugs = []string{
	"api", "create", "edit", "concierge", "context", "products", "storykeep", "cart", "404",
}

// Config holds the settings of a document.
type Config struct {
	HistoryCapacity int           `json:"history_capacity" yaml:"history_capacity"`
	ReservedSlugs   []string      `json:"reserved_slugs" yaml:"reserved_slugs"`
	HomeSlug        string        `json:"home_slug" yaml:"home_slug"`
	ClickWindow     time.Duration `json:"click_window" yaml:"click_window"`
	RootKey         string        `json:"root_key" yaml:"root_key"`
}

// DefaultConfig returns the configuration used if none is given.
func DefaultConfig() Config {
	return Config{
		HistoryCapacity: history.DefaultCapacity,
		ReservedSlugs:   append([]string(nil), DefaultReservedSlugs...),
		HomeSlug:        "hello",
		ClickWindow:     250 * time.Millisecond,
		RootKey:         notify.RootKey,
	}
}

// Validate checks a configuration for sane values.
func (c Config) Validate() error {
	var errs []error
	if c.HistoryCapacity < 1 {
		errs = append(errs, fmt.Errorf("history capacity must be positive, is %d", c.HistoryCapacity))
	}
	if c.ClickWindow < 0 {
		errs = append(errs, fmt.Errorf("click window must not be negative, is %s", c.ClickWindow))
	}
	if c.RootKey == "" {
		errs = append(errs, errors.New("root key must not be empty"))
	}
	return errors.Join(errs...)
}

// LoadConfig reads a YAML configuration. Keys missing from the input keep
// their default values.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
