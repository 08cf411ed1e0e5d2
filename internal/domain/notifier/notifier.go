// internal/domain/notifier/notifier.go
package notifier

import (
	"context"
	"errors"
)

// Configuration errors returned by notifier constructors.
var (
	ErrMissingToken   = errors.New("notifier token is not set")
	ErrMissingChannel = errors.New("notifier channel is not set")
)

// Notifier posts text messages to the configured channel.
// This keeps the application logic independent from the messaging provider.
type Notifier interface {
	Send(ctx context.Context, text string) error
	CheckConnectivity(ctx context.Context) (Connectivity, error)
}

// Connectivity describes who we are connected as and where messages go.
type Connectivity struct {
	Provider string
	Identity string
	Channel  string
}
