package mailer

import "context"

// Message is an outbound email.
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Sender delivers email out of band. Callers on security-sensitive paths must
// not let a send failure change the response they return; they log it and keep
// the anti-enumeration reply identical.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}
