package syncer

import (
	"context"

	"github.com/Adda-Baaj/userdir/internal/domain"
	"github.com/Adda-Baaj/userdir/pkg/publishers"
)

// UserSource lists the active users of the remote directory.
type UserSource interface {
	BaseURL() string
	FetchAllUsers(ctx context.Context) ([]domain.User, error)
}

// EventPublisher publishes user events downstream and reports how many sinks accepted them.
type EventPublisher interface {
	Publish(ctx context.Context, evt publishers.Event) (int, error)
}

// Deduper remembers which users were already published.
type Deduper interface {
	SeenUser(id uint32) (bool, error)
	MarkUser(id uint32) error
}
