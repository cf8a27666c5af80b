// Package push delivers reminder notifications to farmers' devices.
package push

import "context"

type Message struct {
	Token string
	Title string
	Body  string
	Data  map[string]string
}

// Sender delivers one message and returns the provider's message id.
type Sender interface {
	Send(ctx context.Context, m Message) (string, error)
}
