package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Mattyonemillion/henlo/internal/domain/entity"
	"github.com/Mattyonemillion/henlo/internal/domain/repository"
	"github.com/Mattyonemillion/henlo/pkg/errors"
	"github.com/Mattyonemillion/henlo/pkg/logger"
)

type ChatUseCase struct {
	conversationRepo repository.ConversationRepository
	listingRepo      repository.ListingRepository
	broadcaster      ChatEventBroadcaster
	rateLimiter      RateLimiter
}

func NewChatUseCase(
	conversationRepo repository.ConversationRepository,
	listingRepo repository.ListingRepository,
	broadcaster ChatEventBroadcaster,
	rateLimiter RateLimiter,
) *ChatUseCase {
	return &ChatUseCase{
		conversationRepo: conversationRepo,
		listingRepo:      listingRepo,
		broadcaster:      broadcaster,
		rateLimiter:      rateLimiter,
	}
}

// StartConversation opens (or returns) the conversation between the caller
// and the seller of a listing. Repeated calls for the same pair always land
// on the same conversation.
func (uc *ChatUseCase) StartConversation(ctx context.Context, buyerID, listingID string) (*entity.Conversation, error) {
	if uc.rateLimiter != nil {
		allowed, wait := uc.rateLimiter.Allow(buyerID, "start_conversation")
		if !allowed {
			return nil, errors.TooManyRequests(fmt.Sprintf("Too many new conversations, retry in %s", wait.Round(time.Second)))
		}
	}

	listing, err := uc.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}

	if listing.SellerID == buyerID {
		return nil, errors.BadRequest("You cannot message yourself about your own listing", nil)
	}

	now := time.Now()
	conversation := &entity.Conversation{
		ID:        entity.ConversationID(listingID, buyerID),
		ListingID: listingID,
		BuyerID:   buyerID,
		SellerID:  listing.SellerID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	return uc.conversationRepo.GetOrCreate(ctx, conversation)
}

func (uc *ChatUseCase) SendMessage(ctx context.Context, senderID, conversationID, content string) (*entity.Message, error) {
	if uc.rateLimiter != nil {
		allowed, wait := uc.rateLimiter.Allow(senderID, "send_message")
		if !allowed {
			return nil, errors.TooManyRequests(fmt.Sprintf("Too many messages, retry in %s", wait.Round(time.Second)))
		}
	}

	conversation, err := uc.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	if !conversation.HasParticipant(senderID) {
		return nil, errors.Forbidden("You are not a participant of this conversation", nil)
	}

	now := time.Now()
	message := &entity.Message{
		ID:             uuid.New().String(),
		ConversationID: conversationID,
		SenderID:       senderID,
		Content:        content,
		CreatedAt:      now,
	}

	if err := uc.conversationRepo.CreateMessage(ctx, message); err != nil {
		return nil, err
	}

	conversation.LastMessage = content
	conversation.LastMessageAt = now
	conversation.UpdatedAt = now
	if err := uc.conversationRepo.Update(ctx, conversation); err != nil {
		logger.Error("Failed to update conversation %s summary: %v", conversationID, err)
	}

	if uc.broadcaster != nil {
		// Subscribers get the message itself, the sender's own
		// connections included, so every open tab converges.
		uc.broadcaster.BroadcastNewMessage(message)
		uc.broadcaster.NotifyConversationUpdate(conversation.BuyerID, conversation)
		uc.broadcaster.NotifyConversationUpdate(conversation.SellerID, conversation)
	}

	return message, nil
}

func (uc *ChatUseCase) ListConversations(ctx context.Context, userID string, page, limit int) ([]*entity.Conversation, int64, error) {
	offset := (page - 1) * limit
	if offset < 0 {
		offset = 0
	}

	return uc.conversationRepo.ListByUserID(ctx, userID, limit, offset)
}

func (uc *ChatUseCase) GetConversation(ctx context.Context, userID, conversationID string) (*entity.Conversation, error) {
	conversation, err := uc.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	if !conversation.HasParticipant(userID) {
		return nil, errors.Forbidden("You are not a participant of this conversation", nil)
	}

	return conversation, nil
}

func (uc *ChatUseCase) ListMessages(ctx context.Context, userID, conversationID string, page, limit int) ([]*entity.Message, int64, error) {
	conversation, err := uc.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, 0, err
	}

	if !conversation.HasParticipant(userID) {
		return nil, 0, errors.Forbidden("You are not a participant of this conversation", nil)
	}

	offset := (page - 1) * limit
	if offset < 0 {
		offset = 0
	}

	return uc.conversationRepo.ListMessages(ctx, conversationID, limit, offset)
}

// MarkRead flags every message from the other participant as read.
func (uc *ChatUseCase) MarkRead(ctx context.Context, userID, conversationID string) error {
	conversation, err := uc.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		return err
	}

	if !conversation.HasParticipant(userID) {
		return errors.Forbidden("You are not a participant of this conversation", nil)
	}

	return uc.conversationRepo.MarkMessagesRead(ctx, conversationID, userID)
}
