package repository

import (
	"context"

	"github.com/Mattyonemillion/henlo/internal/domain/entity"
)

type ConversationRepository interface {
	// GetOrCreate returns the conversation for (listingID, buyerID),
	// creating it if absent. The deterministic document id makes this safe
	// under concurrent calls.
	GetOrCreate(ctx context.Context, conversation *entity.Conversation) (*entity.Conversation, error)
	GetByID(ctx context.Context, id string) (*entity.Conversation, error)
	ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.Conversation, int64, error)
	Update(ctx context.Context, conversation *entity.Conversation) error

	CreateMessage(ctx context.Context, message *entity.Message) error
	// ListMessages returns messages ordered by createdAt ascending.
	ListMessages(ctx context.Context, conversationID string, limit, offset int) ([]*entity.Message, int64, error)
	// MarkMessagesRead flags all messages in the conversation not sent by
	// readerID as read.
	MarkMessagesRead(ctx context.Context, conversationID, readerID string) error
}
