package models

type ChatOverview struct {
	ChatID        uint         `json:"chat_id"`
	LastMessage   *string      `json:"last_message"`
	LastMessageAt *int64       `json:"last_message_at"`
	OtherUser     UserResponse `json:"other_user"`
}
