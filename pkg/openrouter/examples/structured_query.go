//go:build ignore

package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"orq/pkg/openrouter"
)

type Review struct {
	Score   int    `json:"score" description:"quality score from 1 to 10"`
	Summary string `json:"summary" description:"one-sentence verdict"`
}

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

	spec, err := openrouter.NewFunctionSpec(
		"submit_review",
		"Submit a structured review of the provided text.",
		Review{},
	)
	if err != nil {
		log.Fatalf("build function spec: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	result, err := client.Query(ctx, &openrouter.QueryRequest{
		SystemMessage: "You review prose quality.",
		UserMessage:   "Review this sentence: 'The quick brown fox jumps over the lazy dog.'",
		FuncSpec:      spec,
	})
	if err != nil {
		log.Fatalf("query failed: %v", err)
	}

	fmt.Printf("score=%v summary=%v\n", result.Arguments["score"], result.Arguments["summary"])
}
