package ports

import "context"

// Notifier delivers account notifications to users.
type Notifier interface {
	SendVerification(ctx context.Context, email, name string) error
}
