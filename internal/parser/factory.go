package parser

import (
	"fmt"

	"payroll/internal/config"
	"payroll/internal/port"
)

// ProviderFactory creates a RosterExtractor from a provider config.
type ProviderFactory func(cfg *config.ParserProviderConfig) (port.RosterExtractor, error)

// registry of provider factories, populated via RegisterProvider.
var providers = map[string]ProviderFactory{}

// RegisterProvider registers a provider factory by name.
func RegisterProvider(name string, factory ProviderFactory) {
	providers[name] = factory
}

// NewExtractor creates a RosterExtractor from a provider config using the registered factory.
func NewExtractor(cfg *config.ParserProviderConfig) (port.RosterExtractor, error) {
	factory, ok := providers[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown parser provider: %s", cfg.Provider)
	}
	return factory(cfg)
}

// Build creates the configured extractor chain. With more than one provider configured
// the result is a FallbackExtractor trying primary, secondary, tertiary in order.
func Build(cfg *config.ParserConfig) (port.RosterExtractor, error) {
	tiers := []*config.ParserProviderConfig{cfg.PrimaryConfig(), cfg.SecondaryConfig(), cfg.TertiaryConfig()}

	var extractors []port.RosterExtractor
	var names []string
	for _, tier := range tiers {
		if tier == nil {
			continue
		}
		ex, err := NewExtractor(tier)
		if err != nil {
			return nil, err
		}
		extractors = append(extractors, ex)
		names = append(names, tier.Provider)
	}

	if len(extractors) == 1 {
		return extractors[0], nil
	}
	return NewFallbackExtractor(extractors, names), nil
}
