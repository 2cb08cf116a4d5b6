package provider

import "errors"

var (
	// ErrNoModel is returned when a completion is requested without a model.
	ErrNoModel = errors.New("no model configured")
	// ErrNoThread is returned when a completion is requested without a conversation.
	ErrNoThread = errors.New("no conversation thread")
)
