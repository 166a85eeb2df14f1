// Package mail contains the outbound notification abstraction and its SMTP
// implementation. All sends are fire-and-forget from the caller's point of
// view; failures are logged, never surfaced to HTTP clients.
package mail

import "context"

// Message is a plain-text outbound email.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Mailer sends notification emails. Implementations must be safe for
// concurrent use.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}
