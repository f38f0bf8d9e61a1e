package usecase

import (
	"context"
	"time"

	"github.com/Mattyonemillion/henlo/internal/domain/entity"
)

// FirebaseAuthClient is the slice of the auth provider the usecases need.
type FirebaseAuthClient interface {
	CreateUser(ctx context.Context, email, password, displayName string) (string, error)
	VerifyToken(ctx context.Context, token string) (string, error)
	GenerateToken(ctx context.Context, uid string) (string, error)
	UpdateUserPassword(ctx context.Context, uid, newPassword string) error
	DeleteUser(ctx context.Context, uid string) error
	SignInWithEmailPassword(email, password string) (string, error)
	SignInWithEmailPasswordWithRefresh(email, password string) (string, string, error)
	RefreshIdToken(refreshToken string) (string, string, error)
}

// ChatEventBroadcaster pushes realtime chat events to connected clients.
// Implemented by the WebSocket manager; a no-op stand-in works for tests.
type ChatEventBroadcaster interface {
	BroadcastNewMessage(message *entity.Message)
	NotifyConversationUpdate(userID string, conversation *entity.Conversation)
}

// RateLimiter guards the abuse-prone operations (messaging, checkout).
type RateLimiter interface {
	Allow(userID, action string) (bool, time.Duration)
}
