package hub

import "time"

// ForwardMessage is pushed from the hub to a session for delivery on its
// socket. This is the wire shape the client receives.
type ForwardMessage struct {
	Message  string `json:"message"`
	SenderID uint   `json:"sender_id"`
	SentAt   int64  `json:"sent_at"`
}

// StoredMessage is one persisted chat line as returned by the message store.
type StoredMessage struct {
	Content   string
	SenderID  uint
	CreatedAt time.Time
}

// MessageStore is the durable side of the hub. RecentMessages returns up to
// limit messages for the chat in ascending created-at order.
type MessageStore interface {
	RecentMessages(chatID uint, limit int) ([]StoredMessage, error)
	AppendMessage(chatID, senderID uint, content string) (uint, error)
}

// The connect request from a chat session to the hub. The hub answers with
// the assigned session id on the reply channel.
type connectRequest struct {
	handle chan<- ForwardMessage
	chatID uint
	reply  chan uint64
}

// The disconnect request from a chat session to the hub.
type disconnectRequest struct {
	id     uint64
	chatID uint
}

// The chat message from a chat session to the hub.
type clientMessage struct {
	sessionID uint64
	chatID    uint
	senderID  uint
	content   string
}
