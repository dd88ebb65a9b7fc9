//go:build ignore

package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"orq/pkg/openrouter"
)

func main() {
	cfg, err := openrouter.LoadConfig("../../etc/openrouter.yaml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	client, err := openrouter.NewClient(cfg)
	if err != nil {
		log.Fatalf("create client: %v", err)
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	result, err := client.Query(ctx, &openrouter.QueryRequest{
		SystemMessage: "You are a terse assistant.",
		UserMessage:   "Name the three largest moons of Jupiter.",
	})
	if err != nil {
		log.Fatalf("query failed: %v", err)
	}

	fmt.Println(result.Content)
	fmt.Printf("elapsed=%.2fs tokens=%d/%d model=%s\n",
		result.Elapsed.Seconds(), result.PromptTokens, result.CompletionTokens, result.Metadata.Model)
}
