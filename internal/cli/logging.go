package cli

import (
	"fmt"
	"strings"

	"github.com/zeromicro/go-zero/core/logx"

	"orq/internal/config"
)

// ConfigSummaryLines returns human readable lines describing the loaded app config.
func ConfigSummaryLines(cfg *config.Config) []string {
	if cfg == nil {
		return []string{"Configuration: <nil>"}
	}

	lines := []string{
		fmt.Sprintf("Environment: %s", cfg.Env),
		fmt.Sprintf("Log level: %s", cfg.LogLevel),
	}

	switch {
	case strings.TrimSpace(cfg.LLM.File) != "":
		lines = append(lines, fmt.Sprintf("LLM config: %s", cfg.LLM.File))
	case cfg.LLM.Value != nil:
		lines = append(lines, "LLM config: inline")
	default:
		lines = append(lines, "LLM config: not configured")
	}

	if cfg.LLM.Value != nil {
		lines = append(lines,
			fmt.Sprintf("Base URL: %s", cfg.LLM.Value.BaseURL),
			fmt.Sprintf("Default model: %s", cfg.LLM.Value.DefaultModel),
			fmt.Sprintf("API key: %s", presence(strings.TrimSpace(cfg.LLM.Value.APIKey) != "")),
		)
		if prov := cfg.LLM.Value.Provider; prov != nil {
			lines = append(lines, fmt.Sprintf("Provider routing: order=%v ignore=%v", prov.Order, prov.Ignore))
		}
	}

	return lines
}

// LogConfigSummary emits the configuration summary using logx.
func LogConfigSummary(cfg *config.Config) {
	lines := ConfigSummaryLines(cfg)
	if len(lines) == 0 {
		return
	}
	logx.Info("configuration summary")
	for _, line := range lines {
		logx.Infof("config • %s", line)
	}
}

func presence(ok bool) string {
	if ok {
		return "configured"
	}
	return "not configured"
}
