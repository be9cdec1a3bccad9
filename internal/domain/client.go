package domain

import (
	"context"
	"encoding/json"
)

// Params are scalar query parameters for a GET request.
type Params map[string]any

// Response is a successful API reply.
type Response struct {
	Status int
	Body   json.RawMessage
}

// APIClient is the transport the store depends on. Failures are reported as
// *APIError.
type APIClient interface {
	Get(ctx context.Context, path string, params Params) (*Response, error)
}
