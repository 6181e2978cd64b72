package repositories

import (
	"errors"
	"time"

	"chatStream/internal/models"
	"chatStream/internal/utils"

	"gorm.io/gorm"
)

type ChatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) *ChatRepository {
	return &ChatRepository{
		db: db,
	}
}

// FindChatBetweenUsers expects the user ids in ascending order, the same
// order they are stored in.
func (chr *ChatRepository) FindChatBetweenUsers(user1ID, user2ID uint) (*models.Chat, error) {
	var chat models.Chat
	result := chr.db.Where("user1_id = ? AND user2_id = ?", user1ID, user2ID).First(&chat)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &chat, nil
}

func (chr *ChatRepository) CreateChat(user1ID, user2ID uint) (*models.Chat, error) {
	chat := models.Chat{
		User1ID: user1ID,
		User2ID: user2ID,
	}
	if err := chr.db.Create(&chat).Error; err != nil {
		return nil, err
	}
	return &chat, nil
}

func (chr *ChatRepository) GetChatByID(chatID uint) (*models.Chat, error) {
	var chat models.Chat
	if err := chr.db.First(&chat, chatID).Error; err != nil {
		return nil, err
	}
	return &chat, nil
}

// SaveMessage stores the message and bumps the chat's last message time in
// one transaction.
func (chr *ChatRepository) SaveMessage(message *models.Message) (*models.Message, error) {
	transactionErr := chr.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(message).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Chat{}).
			Where("id = ?", message.ChatID).
			Update("last_message_at", time.Now()).Error; err != nil {
			return err
		}
		return nil
	})
	if transactionErr != nil {
		return nil, transactionErr
	}
	return message, nil
}

// GetRecentMessages returns up to limit latest messages of the chat,
// reordered ascending so the oldest comes first.
func (chr *ChatRepository) GetRecentMessages(chatID uint, limit int) ([]models.Message, error) {
	var messages []models.Message
	err := chr.db.
		Raw(`SELECT * FROM (
			SELECT * FROM messages
			WHERE chat_id = ? AND deleted_at IS NULL
			ORDER BY created_at DESC
			LIMIT ?
		) AS latest_messages ORDER BY created_at ASC`, chatID, limit).
		Scan(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func (chr *ChatRepository) GetMessagesByChatID(chatID uint, page, size int) (*models.MessageListResponse, error) {
	var messages []models.Message
	var total int64

	transactionErr := chr.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Scopes(utils.Paginate(page, size)).
			Where("chat_id = ?", chatID).
			Order("created_at DESC").
			Find(&messages).Error; err != nil {
			return err
		}
		if err := tx.
			Model(&models.Message{}).
			Where("chat_id = ?", chatID).
			Count(&total).Error; err != nil {
			return err
		}
		return nil
	})
	if transactionErr != nil {
		return nil, transactionErr
	}

	return &models.MessageListResponse{
		Messages: messages,
		Page:     page,
		Size:     size,
		Total:    total,
	}, nil
}

func (chr *ChatRepository) GetUserChats(userID uint) ([]models.Chat, error) {
	var chats []models.Chat
	err := chr.db.
		Where("user1_id = ? OR user2_id = ?", userID, userID).
		Order("last_message_at DESC NULLS LAST").
		Find(&chats).Error
	if err != nil {
		return nil, err
	}
	return chats, nil
}

func (chr *ChatRepository) GetChatLastMessage(chatID uint) (*models.Message, error) {
	var message models.Message
	if err := chr.db.
		Where("chat_id = ?", chatID).
		Last(&message).Error; err != nil {
		return nil, err
	}
	return &message, nil
}

func (chr *ChatRepository) CheckChatExists(chatID uint) bool {
	var count int64
	chr.db.Model(&models.Chat{}).Where("id = ?", chatID).Count(&count)
	return count > 0
}

func (chr *ChatRepository) CheckUserInChat(userID, chatID uint) bool {
	var count int64
	chr.db.Model(&models.Chat{}).
		Where("id = ? AND (user1_id = ? OR user2_id = ?)", chatID, userID, userID).
		Count(&count)
	return count > 0
}
