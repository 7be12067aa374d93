// Package echo is an offline gateway for local runs and tests.
package echo

import (
	"context"

	"github.com/heartmarshall/nene-backend/internal/domain"
)

// Gateway answers every request with its own text.
type Gateway struct{}

// New creates an echo gateway.
func New() *Gateway { return &Gateway{} }

// Complete returns req.Text unchanged.
func (Gateway) Complete(_ context.Context, req domain.CompletionRequest) (string, error) {
	return req.Text, nil
}
