package services

import (
	"errors"

	"chatStream/internal/errs"
	"chatStream/internal/hub"
	"chatStream/internal/models"
	"chatStream/internal/repositories"

	"gorm.io/gorm"
)

// ChatService manages two-party chats and their messages. It also serves as
// the hub's message store.
type ChatService struct {
	chatRepo *repositories.ChatRepository
	authRepo *repositories.AuthenticationRepository
}

func NewChatService(
	chatRepo *repositories.ChatRepository,
	authRepo *repositories.AuthenticationRepository,
) *ChatService {
	return &ChatService{
		chatRepo: chatRepo,
		authRepo: authRepo,
	}
}

// OpenChat returns the chat between the caller and the recipient, creating
// it when the two users have never talked before.
func (cs *ChatService) OpenChat(userID uint, recipientEmail string) (*models.Chat, []error) {
	var errorList []error

	recipient := cs.authRepo.FindUserByEmail(recipientEmail)
	if recipient == nil {
		errorList = append(errorList, errs.ErrUserNotFound)
		return nil, errorList
	}
	if recipient.ID == userID {
		errorList = append(errorList, errs.ErrChatWithSelf)
		return nil, errorList
	}

	// The smaller user id always comes first.
	user1ID, user2ID := userID, recipient.ID
	if user1ID > user2ID {
		user1ID, user2ID = user2ID, user1ID
	}

	chat, err := cs.chatRepo.FindChatBetweenUsers(user1ID, user2ID)
	if err != nil {
		errorList = append(errorList, err)
		return nil, errorList
	}
	if chat != nil {
		return chat, nil
	}

	chat, err = cs.chatRepo.CreateChat(user1ID, user2ID)
	if err != nil {
		errorList = append(errorList, err)
		return nil, errorList
	}
	return chat, nil
}

// GetChatOverviews lists the caller's chats with their last message and the
// other participant's details, most recently active first.
func (cs *ChatService) GetChatOverviews(userID uint) ([]models.ChatOverview, []error) {
	var errorList []error

	chats, err := cs.chatRepo.GetUserChats(userID)
	if err != nil {
		errorList = append(errorList, err)
		return nil, errorList
	}

	overviews := []models.ChatOverview{}
	for _, chat := range chats {
		otherUser, err := cs.authRepo.FindUserByID(chat.OtherUserID(userID))
		if err != nil {
			errorList = append(errorList, err)
			return nil, errorList
		}
		overview := models.ChatOverview{
			ChatID:    chat.ID,
			OtherUser: *otherUser.ToUserResponse(),
		}
		if lastMessage, err := cs.chatRepo.GetChatLastMessage(chat.ID); err == nil {
			sentAt := lastMessage.CreatedAt.Unix()
			overview.LastMessage = &lastMessage.Content
			overview.LastMessageAt = &sentAt
		}
		overviews = append(overviews, overview)
	}
	return overviews, nil
}

func (cs *ChatService) GetChatMessages(chatID uint, page, size int) (*models.MessageListResponse, []error) {
	var errorList []error
	response, err := cs.chatRepo.GetMessagesByChatID(chatID, page, size)
	if err != nil {
		errorList = append(errorList, err)
		return nil, errorList
	}
	return response, nil
}

func (cs *ChatService) CheckChatExists(chatID uint) bool {
	return cs.chatRepo.CheckChatExists(chatID)
}

func (cs *ChatService) CheckUserInChat(userID, chatID uint) bool {
	return cs.chatRepo.CheckUserInChat(userID, chatID)
}

// RecentMessages implements hub.MessageStore.
func (cs *ChatService) RecentMessages(chatID uint, limit int) ([]hub.StoredMessage, error) {
	messages, err := cs.chatRepo.GetRecentMessages(chatID, limit)
	if err != nil {
		return nil, errs.ErrStoreUnavailable
	}
	stored := make([]hub.StoredMessage, 0, len(messages))
	for _, message := range messages {
		stored = append(stored, hub.StoredMessage{
			Content:   message.Content,
			SenderID:  message.SenderID,
			CreatedAt: message.CreatedAt,
		})
	}
	return stored, nil
}

// AppendMessage implements hub.MessageStore.
func (cs *ChatService) AppendMessage(chatID, senderID uint, content string) (uint, error) {
	message := &models.Message{
		ChatID:   chatID,
		SenderID: senderID,
		Content:  content,
	}
	saved, err := cs.chatRepo.SaveMessage(message)
	if err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) || errors.Is(err, gorm.ErrDuplicatedKey) {
			return 0, errs.ErrConstraintViolation
		}
		return 0, errs.ErrStoreUnavailable
	}
	return saved.ID, nil
}
