package openrouter

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Query performs one request/response cycle against the completion endpoint
// and normalizes the result.
//
// The system and user messages are both sent with the "user" role so the
// request works against backends that reject system-role messages; empty
// messages are dropped. When req.FuncSpec is set the model is forced to
// invoke that exact function and the returned QueryResult carries the parsed
// arguments instead of text content.
func (c *Client) Query(ctx context.Context, req *QueryRequest) (*QueryResult, error) {
	if req == nil {
		return nil, errors.New("openrouter: query request cannot be nil")
	}

	chatReq := &ChatRequest{
		Model:               req.Model,
		Messages:            buildQueryMessages(req.SystemMessage, req.UserMessage),
		Temperature:         req.Temperature,
		MaxCompletionTokens: req.MaxCompletionTokens,
		TopP:                req.TopP,
		Provider:            req.Provider,
	}
	if chatReq.Provider == nil {
		chatReq.Provider = c.config.Provider
	}

	if req.FuncSpec != nil {
		if err := req.FuncSpec.Validate(); err != nil {
			return nil, err
		}
		chatReq.Tools = []Tool{req.FuncSpec.AsTool()}
		chatReq.ToolChoice = req.FuncSpec.AsToolChoice()
		c.logger.Info(ctx, "forcing tool call", Fields{"tool": req.FuncSpec.Name})
	}

	start := time.Now()
	resp, err := c.Chat(ctx, chatReq)
	if err != nil {
		return nil, err
	}
	elapsed := time.Since(start)

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: completion has no choices", ErrUnexpectedResponse)
	}
	choice := resp.Choices[0]

	result := &QueryResult{
		Elapsed:          elapsed,
		PromptTokens:     resp.Usage.PromptTokens,
		CompletionTokens: resp.Usage.CompletionTokens,
		Metadata: Metadata{
			SystemFingerprint: resp.Fingerprint,
			Model:             resp.Model,
			Created:           resp.Created,
		},
	}

	if req.FuncSpec == nil {
		result.Content = choice.Message.Content
		return result, nil
	}

	if len(choice.ToolCalls) == 0 {
		return nil, fmt.Errorf("%w: no tool calls in response for %s", ErrUnexpectedResponse, req.FuncSpec.Name)
	}
	call := choice.ToolCalls[0]
	if call.Function.Name != req.FuncSpec.Name {
		return nil, fmt.Errorf("%w: expected tool %s, got %s", ErrUnexpectedResponse, req.FuncSpec.Name, call.Function.Name)
	}

	args, err := DecodeArguments(call.Function.Arguments)
	if err != nil {
		c.logger.Error(ctx, err, Fields{
			"tool":      req.FuncSpec.Name,
			"arguments": call.Function.Arguments,
		})
		return nil, err
	}
	c.logger.Info(ctx, "parsed tool call response", Fields{"tool": req.FuncSpec.Name})

	result.Arguments = args
	return result, nil
}

// buildQueryMessages assembles the outgoing message list. Each non-empty
// input becomes a user-role message, system-derived entry first.
func buildQueryMessages(systemMessage, userMessage string) []Message {
	msgs := make([]Message, 0, 2)
	for _, content := range []string{systemMessage, userMessage} {
		if content == "" {
			continue
		}
		msgs = append(msgs, Message{Role: "user", Content: content})
	}
	return msgs
}
