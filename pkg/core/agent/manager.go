package agent

import (
	"fmt"
	"sort"

	"tenk_analyzer/pkg/core/llm"
)

// Config selects which LLM provider backs each agent. Loaded from YAML
// (config/models.yaml) at process start.
type Config struct {
	ActiveProvider string                     `yaml:"active_provider"`
	Agents         map[string]ProviderConfig `yaml:"agents"`
}

// ProviderConfig is an optional per-agent provider override.
type ProviderConfig struct {
	Provider    string `yaml:"provider"`
	Description string `yaml:"description"`
}

// Manager routes agents to LLM providers.
type Manager struct {
	config    Config
	providers map[string]Provider
}

func NewManager(config Config) *Manager {
	return &Manager{
		config: config,
		providers: map[string]Provider{
			"gemini":   &llm.GeminiProvider{},
			"deepseek": &llm.DeepSeekProvider{},
		},
	}
}

// GetProvider resolves the provider for an agent: per-agent override first,
// then the global active provider, then gemini.
func (m *Manager) GetProvider(agentName string) Provider {
	if cfg, ok := m.config.Agents[agentName]; ok && cfg.Provider != "" {
		if p, ok := m.providers[cfg.Provider]; ok {
			return p
		}
	}

	if p, ok := m.providers[m.config.ActiveProvider]; ok {
		return p
	}

	return m.providers["gemini"]
}

// SetProvider registers or replaces a named provider. Tests use this to
// inject deterministic fakes.
func (m *Manager) SetProvider(name string, p Provider) {
	m.providers[name] = p
}

// ActiveProvider returns the globally configured provider name.
func (m *Manager) ActiveProvider() string {
	return m.config.ActiveProvider
}

// SetActiveProvider switches the global provider. The name must already be
// registered.
func (m *Manager) SetActiveProvider(name string) error {
	if _, ok := m.providers[name]; !ok {
		return fmt.Errorf("unknown provider: %s", name)
	}
	m.config.ActiveProvider = name
	return nil
}

// ProviderNames lists the registered providers in sorted order.
func (m *Manager) ProviderNames() []string {
	names := make([]string, 0, len(m.providers))
	for name := range m.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
