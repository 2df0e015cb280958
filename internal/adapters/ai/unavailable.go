package ai

import (
	"context"

	"ideaforge/pkg/errors"
)

var _ Completer = Unavailable{}

// Unavailable is used when no API key is configured. Every call fails with ErrUnavailable.
type Unavailable struct {
	Reason string
}

func (u Unavailable) Complete(context.Context, CompletionRequest) (*Completion, error) {
	return nil, errors.Wrap(errors.ErrUnavailable, u.reason())
}

func (u Unavailable) Ready() bool   { return false }
func (u Unavailable) Name() string  { return "unavailable" }
func (u Unavailable) Model() string { return "" }

func (u Unavailable) reason() string {
	if u.Reason == "" {
		return "completion backend not configured"
	}
	return u.Reason
}
