package openrouter

import "errors"

// ErrUnexpectedResponse marks completions whose shape violates the adapter
// contract: no choices, a missing tool call, or a tool call naming a function
// that was never requested. These are never retried.
var ErrUnexpectedResponse = errors.New("openrouter: unexpected response shape")
