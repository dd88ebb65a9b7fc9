package openrouter

import "strings"

const modelSeparator = "/"

// ResolveModelID returns the fully qualified model identifier in vendor/model
// form, the shape OpenRouter expects.
func ResolveModelID(alias string, cfg ModelConfig) string {
	model := strings.TrimSpace(alias)
	if strings.Contains(model, modelSeparator) {
		return model
	}

	name := strings.TrimSpace(cfg.ModelName)
	if name == "" {
		name = model
	}

	vendor := strings.TrimSpace(cfg.Vendor)
	if vendor == "" || strings.Contains(name, modelSeparator) {
		return name
	}
	return vendor + modelSeparator + name
}

// ParseModelID splits a fully qualified model string into vendor and name.
func ParseModelID(model string) (vendor, name string) {
	parts := strings.SplitN(model, modelSeparator, 2)
	if len(parts) != 2 {
		return "", model
	}
	return parts[0], parts[1]
}
