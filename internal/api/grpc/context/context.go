package context

import (
	"context"

	"github.com/google/uuid"
	"google.golang.org/grpc/metadata"
)

// userIDKey is the incoming metadata key holding the logged-in user's id.
const userIDKey = "x-shopfront-user-id"

// Manager stores the logged-in user's id in incoming gRPC metadata so
// handlers can attribute their log lines.
type Manager struct{}

func NewManager() *Manager {
	return &Manager{}
}

// SetUserIDToContext returns ctx with userID added to its incoming metadata.
// Existing metadata is copied, not modified.
func (m *Manager) SetUserIDToContext(ctx context.Context, userID uuid.UUID) context.Context {
	md, ok := metadata.FromIncomingContext(ctx)
	if ok {
		md = md.Copy()
	} else {
		md = metadata.MD{}
	}
	md.Set(userIDKey, userID.String())

	return metadata.NewIncomingContext(ctx, md)
}

// GetUserIDFromContext reads the id set by SetUserIDToContext.
func (m *Manager) GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return uuid.Nil, false
	}

	values := md.Get(userIDKey)
	if len(values) == 0 {
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(values[0])
	if err != nil {
		return uuid.Nil, false
	}

	return userID, true
}
