package notifier

import (
	"context"
	"time"
)

// Notifier delivers a message to one recipient, fire-and-forget. Delivery
// failure never propagates into the workflow that triggered it.
type Notifier interface {
	Notify(ctx context.Context, recipient, message, link string)
}

// Message is the payload handed to the delivery channel.
type Message struct {
	Recipient string    `json:"destinatario"`
	Text      string    `json:"mensagem"`
	Link      string    `json:"link,omitempty"`
	Read      bool      `json:"lida"`
	Timestamp time.Time `json:"timestamp"`
}

// Sender performs the actual delivery of one message.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}
