package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/zeromicro/go-zero/core/logx"

	"orq/internal/cli"
	"orq/internal/config"
	"orq/pkg/openrouter"
	"orq/pkg/prompt"
)

var (
	configFile  = flag.String("f", "etc/orq.yaml", "the config file")
	modelFlag   = flag.String("model", "", "model alias or vendor/model id")
	systemFlag  = flag.String("system", "", "system message text")
	userFlag    = flag.String("user", "", "user message text")
	systemFile  = flag.String("system-file", "", "template file rendered as the system message")
	userFile    = flag.String("user-file", "", "template file rendered as the user message")
	specFile    = flag.String("spec", "", "function spec JSON file; forces a tool-call response")
	temperature = flag.Float64("temperature", -1, "sampling temperature (negative means unset)")
	maxTokens   = flag.Int("max-tokens", 0, "max completion tokens (0 means unset)")
	showUsage   = flag.Bool("usage", false, "print token usage and metadata after the output")
)

func main() {
	flag.Parse()

	cfg := config.MustLoad(*configFile)
	cli.LogConfigSummary(cfg)

	if cfg.LLM.Value == nil {
		fatalf("no LLM section configured in %s", *configFile)
	}

	client, err := openrouter.NewClient(cfg.LLM.Value)
	if err != nil {
		fatalf("create client: %v", err)
	}
	defer client.Close()

	req := &openrouter.QueryRequest{
		Model:         *modelFlag,
		SystemMessage: resolveMessage(*systemFlag, *systemFile),
		UserMessage:   resolveMessage(*userFlag, *userFile),
	}
	if *temperature >= 0 {
		req.Temperature = temperature
	}
	if *maxTokens > 0 {
		req.MaxCompletionTokens = maxTokens
	}
	if *specFile != "" {
		spec, err := loadFuncSpec(*specFile)
		if err != nil {
			fatalf("load function spec: %v", err)
		}
		req.FuncSpec = spec
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	result, err := client.Query(ctx, req)
	if err != nil {
		fatalf("query: %v", err)
	}

	if result.Arguments != nil {
		out, err := json.MarshalIndent(result.Arguments, "", "  ")
		if err != nil {
			fatalf("encode arguments: %v", err)
		}
		fmt.Println(string(out))
	} else {
		fmt.Println(result.Content)
	}

	if *showUsage {
		fmt.Fprintf(os.Stderr, "elapsed=%.2fs prompt_tokens=%d completion_tokens=%d model=%s fingerprint=%s\n",
			result.Elapsed.Seconds(),
			result.PromptTokens,
			result.CompletionTokens,
			result.Metadata.Model,
			result.Metadata.SystemFingerprint,
		)
	}
}

// resolveMessage prefers inline text; otherwise renders the template file.
func resolveMessage(inline, file string) string {
	if inline != "" || file == "" {
		return inline
	}
	tmpl, err := prompt.New(file, nil)
	if err != nil {
		fatalf("load message template: %v", err)
	}
	rendered, err := tmpl.Render(map[string]string{})
	if err != nil {
		fatalf("render message template: %v", err)
	}
	return rendered
}

func loadFuncSpec(path string) (*openrouter.FunctionSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var spec openrouter.FunctionSpec
	if err := json.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

func fatalf(format string, args ...any) {
	logx.Errorf(format, args...)
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
