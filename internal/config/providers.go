package config

import (
	"fmt"
	"os"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

// DefaultProvider is selected when the front end starts.
const DefaultProvider = "local"

// Provider is one selectable transcription engine.
type Provider struct {
	Value   string `yaml:"value"`
	Label   string `yaml:"label"`
	Enabled bool   `yaml:"enabled"`
}

// ProviderCatalog is the ordered list of providers shown in the selector.
type ProviderCatalog struct {
	Default   string     `yaml:"default"`
	Providers []Provider `yaml:"providers"`
}

// DefaultProviderCatalog returns the built-in catalog. The disabled entries
// are placeholders for engines the backend does not expose yet.
func DefaultProviderCatalog() *ProviderCatalog {
	return &ProviderCatalog{
		Default: DefaultProvider,
		Providers: []Provider{
			{Value: "local", Label: "Local Whisper (free/offline)", Enabled: true},
			{Value: "mock", Label: "Mock (demo)", Enabled: true},
			{Value: "openai", Label: "OpenAI Whisper", Enabled: false},
			{Value: "google", Label: "Google STT", Enabled: false},
		},
	}
}

// LoadProviderCatalog reads a YAML catalog, or returns the default when path is empty.
func LoadProviderCatalog(path string) (*ProviderCatalog, error) {
	if path == "" {
		return DefaultProviderCatalog(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read provider catalog: %w", err)
	}

	var catalog ProviderCatalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse provider catalog %s: %w", path, err)
	}
	if err := catalog.Validate(); err != nil {
		return nil, err
	}
	return &catalog, nil
}

// Validate checks that the catalog has unique values and an enabled default.
func (c *ProviderCatalog) Validate() error {
	enabled := c.Enabled()
	if len(enabled) == 0 {
		return fmt.Errorf("provider catalog has no enabled providers")
	}

	values := lo.Map(c.Providers, func(p Provider, _ int) string { return p.Value })
	if dup := lo.FindDuplicates(values); len(dup) > 0 {
		return fmt.Errorf("provider catalog has duplicate values: %v", dup)
	}
	if lo.Contains(values, "") {
		return fmt.Errorf("provider catalog has an entry without a value")
	}

	if c.Default == "" {
		c.Default = enabled[0].Value
	}
	if !c.IsEnabled(c.Default) {
		return fmt.Errorf("default provider %q is not enabled", c.Default)
	}
	return nil
}

// Enabled returns the providers that can be selected, in catalog order.
func (c *ProviderCatalog) Enabled() []Provider {
	return lo.Filter(c.Providers, func(p Provider, _ int) bool { return p.Enabled })
}

// IsEnabled reports whether value names a selectable provider.
func (c *ProviderCatalog) IsEnabled(value string) bool {
	return lo.ContainsBy(c.Providers, func(p Provider) bool { return p.Enabled && p.Value == value })
}

// Next returns the enabled provider after value, wrapping around.
func (c *ProviderCatalog) Next(value string) string {
	enabled := c.Enabled()
	if len(enabled) == 0 {
		return value
	}
	_, idx, found := lo.FindIndexOf(enabled, func(p Provider) bool { return p.Value == value })
	if !found {
		return enabled[0].Value
	}
	return enabled[(idx+1)%len(enabled)].Value
}

// Label returns the display label for value, falling back to value itself.
func (c *ProviderCatalog) Label(value string) string {
	p, ok := lo.Find(c.Providers, func(p Provider) bool { return p.Value == value })
	if !ok || p.Label == "" {
		return value
	}
	return p.Label
}
