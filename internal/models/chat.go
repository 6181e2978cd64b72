package models

import (
	"time"

	"gorm.io/gorm"
)

// Chat is a two-party conversation. User1ID is always the smaller user id so
// the (User1ID, User2ID) pair is unique per couple of users.
type Chat struct {
	gorm.Model
	User1ID       uint       `gorm:"not null;index:idx_chat_users,unique" json:"user1_id"`
	User2ID       uint       `gorm:"not null;index:idx_chat_users,unique" json:"user2_id"`
	LastMessageAt *time.Time `json:"last_message_at"`
}

func (chat *Chat) OtherUserID(userID uint) uint {
	if chat.User1ID == userID {
		return chat.User2ID
	}
	return chat.User1ID
}

func (chat *Chat) HasMember(userID uint) bool {
	return chat.User1ID == userID || chat.User2ID == userID
}
