package llm

import (
	"context"
	"fmt"
)

type unconfiguredProvider struct {
	reason error
}

// Unconfigured returns a Provider whose every call fails with
// ErrNotConfigured. It lets the app run without credentials.
func Unconfigured(reason error) Provider {
	return &unconfiguredProvider{reason: reason}
}

func (p *unconfiguredProvider) Generate(context.Context, Request) (*Response, error) {
	if p.reason != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotConfigured, p.reason)
	}
	return nil, ErrNotConfigured
}

func (p *unconfiguredProvider) ModelID() string {
	return "none"
}
