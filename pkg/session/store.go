package session

import (
	"context"

	"github.com/pkg/errors"
)

// ErrNotFound is returned when no session exists for the given id.
var ErrNotFound = errors.New("session not found")

// Store is durable keyed persistence for session snapshots. Put is a full
// overwrite (last writer wins); there are no cross-session relationships.
// Implementations must make writes durable before returning, at minimum
// for the lifetime of the process.
type Store interface {
	Get(ctx context.Context, id string) (sess Session, err error)
	Put(ctx context.Context, sess Session) (err error)
	Exists(ctx context.Context, id string) (found bool, err error)
	Close() (err error)
}
