package models

import (
	"gorm.io/gorm"
)

type Message struct {
	gorm.Model
	ChatID   uint   `gorm:"not null;index" json:"chat_id"`
	Chat     Chat   `json:"-"`
	SenderID uint   `gorm:"not null" json:"sender_id"`
	Content  string `gorm:"not null" json:"content"`
}
