package service

import "context"

// Mailer is the outbound transactional email capability. Delivery is
// best-effort from the caller's point of view: a failed send never rolls
// back the operation that triggered it.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}
