package websocket

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Mattyonemillion/henlo/internal/domain/entity"
	"github.com/Mattyonemillion/henlo/pkg/logger"
)

// Frame types accepted from clients.
const (
	FrameTypeSubscribe   = "subscribe"
	FrameTypeUnsubscribe = "unsubscribe"
	FrameTypePing        = "ping"
)

// Frame types sent to clients.
const (
	FrameTypeNewMessage         = "new_message"
	FrameTypeConversationUpdate = "conversation_update"
	FrameTypePong               = "pong"
	FrameTypeError              = "error"
)

// Frame is the envelope for every message on the socket, both directions.
type Frame struct {
	Type           string      `json:"type"`
	ConversationID string      `json:"conversation_id,omitempty"`
	Data           interface{} `json:"data,omitempty"`
	Timestamp      string      `json:"timestamp"`
}

func newFrame(frameType, conversationID string, data interface{}) Frame {
	return Frame{
		Type:           frameType,
		ConversationID: conversationID,
		Data:           data,
		Timestamp:      time.Now().Format(time.RFC3339),
	}
}

func (m *Manager) handleFrame(client *Client, payload []byte) {
	var frame Frame
	if err := json.Unmarshal(payload, &frame); err != nil {
		m.sendError(client, "", "Invalid frame format")
		return
	}

	switch frame.Type {
	case FrameTypePing:
		m.sendFrame(client, newFrame(FrameTypePong, "", nil))

	case FrameTypeSubscribe:
		m.handleSubscribe(client, frame.ConversationID)

	case FrameTypeUnsubscribe:
		if frame.ConversationID == "" {
			m.sendError(client, "", "Missing conversation_id")
			return
		}
		m.unsubscribe(frame.ConversationID, client)

	default:
		m.sendError(client, frame.ConversationID, "Unknown frame type")
	}
}

// handleSubscribe joins a conversation room after checking that the
// caller is one of its two participants.
func (m *Manager) handleSubscribe(client *Client, conversationID string) {
	if conversationID == "" {
		m.sendError(client, "", "Missing conversation_id")
		return
	}

	conversation, err := m.conversationRepo.GetByID(context.Background(), conversationID)
	if err != nil {
		m.sendError(client, conversationID, "Conversation not found")
		return
	}

	if !conversation.HasParticipant(client.UserID) {
		m.sendError(client, conversationID, "Not a participant of this conversation")
		return
	}

	m.subscribe(conversationID, client)
	logger.Debug("WebSocket client %s subscribed to conversation %s", client.UserID, conversationID)
}

// BroadcastNewMessage pushes a stored message to every subscriber of its
// conversation, the sender's own connections included.
func (m *Manager) BroadcastNewMessage(message *entity.Message) {
	frame := newFrame(FrameTypeNewMessage, message.ConversationID, message)
	payload, err := json.Marshal(frame)
	if err != nil {
		logger.Error("Failed to marshal new_message frame: %v", err)
		return
	}

	m.BroadcastToConversation(message.ConversationID, payload)
}

// NotifyConversationUpdate pushes the refreshed conversation summary to a
// participant's connections, subscribed or not, so inbox views stay
// current.
func (m *Manager) NotifyConversationUpdate(userID string, conversation *entity.Conversation) {
	frame := newFrame(FrameTypeConversationUpdate, conversation.ID, conversation)
	payload, err := json.Marshal(frame)
	if err != nil {
		logger.Error("Failed to marshal conversation_update frame: %v", err)
		return
	}

	m.SendToUser(userID, payload)
}

func (m *Manager) sendFrame(client *Client, frame Frame) {
	payload, err := json.Marshal(frame)
	if err != nil {
		logger.Error("Failed to marshal frame for client %s: %v", client.UserID, err)
		return
	}

	m.deliver(client, payload)
}

func (m *Manager) sendError(client *Client, conversationID, message string) {
	m.sendFrame(client, newFrame(FrameTypeError, conversationID, map[string]string{
		"error": message,
	}))
}
