package repositories

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"chatStream/internal/errs"
	"chatStream/internal/models"
	"chatStream/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Chat{},
		&models.Message{},
	))
	return db
}

func createTestUser(t *testing.T, repo *AuthenticationRepository, email string) *models.User {
	t.Helper()

	hash, err := utils.HashPassword("Secret123!")
	require.NoError(t, err)

	user, createErrs := repo.CreateUser(&models.User{
		FirstName:    "Test",
		LastName:     "User",
		Email:        email,
		PasswordHash: hash,
	})
	require.Empty(t, createErrs)
	return user
}

func TestCreateUserAndLogin(t *testing.T) {
	repo := NewAuthenticationRepository(setupTestDB(t))
	user := createTestUser(t, repo, "alice@example.com")

	t.Run("find by email", func(t *testing.T) {
		found := repo.FindUserByEmail("alice@example.com")
		require.NotNil(t, found)
		assert.Equal(t, user.ID, found.ID)

		assert.Nil(t, repo.FindUserByEmail("nobody@example.com"))
	})

	t.Run("login with correct password", func(t *testing.T) {
		loggedIn, loginErrs := repo.Login(&models.LoginRequestBody{
			Email:    "alice@example.com",
			Password: "Secret123!",
		})
		require.Empty(t, loginErrs)
		assert.Equal(t, user.ID, loggedIn.ID)
	})

	t.Run("login with wrong password", func(t *testing.T) {
		_, loginErrs := repo.Login(&models.LoginRequestBody{
			Email:    "alice@example.com",
			Password: "wrong",
		})
		require.NotEmpty(t, loginErrs)
		assert.ErrorIs(t, loginErrs[0], errs.ErrWrongPassword)
	})

	t.Run("login with unknown email", func(t *testing.T) {
		_, loginErrs := repo.Login(&models.LoginRequestBody{
			Email:    "nobody@example.com",
			Password: "Secret123!",
		})
		require.NotEmpty(t, loginErrs)
		assert.ErrorIs(t, loginErrs[0], errs.ErrUserNotFound)
	})
}

func TestGetAllUsersWithPagination(t *testing.T) {
	repo := NewAuthenticationRepository(setupTestDB(t))
	for i := 0; i < 15; i++ {
		createTestUser(t, repo, fmt.Sprintf("user%02d@example.com", i))
	}

	response, getErrs := repo.GetAllUsersWithPagination(2, 10)
	require.Empty(t, getErrs)
	assert.Len(t, response.Users, 5)
	assert.Equal(t, int64(15), response.Total)
	assert.Equal(t, 2, response.Page)
}

func TestFindAndCreateChat(t *testing.T) {
	db := setupTestDB(t)
	chatRepo := NewChatRepository(db)

	chat, err := chatRepo.FindChatBetweenUsers(1, 2)
	require.NoError(t, err)
	assert.Nil(t, chat)

	created, err := chatRepo.CreateChat(1, 2)
	require.NoError(t, err)

	found, err := chatRepo.FindChatBetweenUsers(1, 2)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, created.ID, found.ID)

	assert.True(t, chatRepo.CheckChatExists(created.ID))
	assert.False(t, chatRepo.CheckChatExists(created.ID+1))

	assert.True(t, chatRepo.CheckUserInChat(1, created.ID))
	assert.True(t, chatRepo.CheckUserInChat(2, created.ID))
	assert.False(t, chatRepo.CheckUserInChat(3, created.ID))
}

func TestSaveMessageBumpsLastMessageAt(t *testing.T) {
	chatRepo := NewChatRepository(setupTestDB(t))

	chat, err := chatRepo.CreateChat(1, 2)
	require.NoError(t, err)
	require.Nil(t, chat.LastMessageAt)

	_, err = chatRepo.SaveMessage(&models.Message{
		ChatID:   chat.ID,
		SenderID: 1,
		Content:  "hello",
	})
	require.NoError(t, err)

	reloaded, err := chatRepo.GetChatByID(chat.ID)
	require.NoError(t, err)
	assert.NotNil(t, reloaded.LastMessageAt)
}

func TestGetRecentMessagesOrderAndLimit(t *testing.T) {
	chatRepo := NewChatRepository(setupTestDB(t))

	chat, err := chatRepo.CreateChat(1, 2)
	require.NoError(t, err)

	base := time.Now().Add(-time.Hour).Truncate(time.Second)
	for i := 0; i < 60; i++ {
		message := &models.Message{
			ChatID:   chat.ID,
			SenderID: uint(1 + i%2),
			Content:  fmt.Sprintf("message %02d", i),
		}
		message.CreatedAt = base.Add(time.Duration(i) * time.Second)
		_, err := chatRepo.SaveMessage(message)
		require.NoError(t, err)
	}

	messages, err := chatRepo.GetRecentMessages(chat.ID, 50)
	require.NoError(t, err)
	require.Len(t, messages, 50)

	// The oldest of the 50 latest entries comes first.
	assert.Equal(t, "message 10", messages[0].Content)
	assert.Equal(t, "message 59", messages[len(messages)-1].Content)
	for i := 1; i < len(messages); i++ {
		assert.False(t, messages[i].CreatedAt.Before(messages[i-1].CreatedAt))
	}
}

func TestGetMessagesByChatIDPagination(t *testing.T) {
	chatRepo := NewChatRepository(setupTestDB(t))

	chat, err := chatRepo.CreateChat(1, 2)
	require.NoError(t, err)

	base := time.Now().Add(-time.Hour).Truncate(time.Second)
	for i := 0; i < 25; i++ {
		message := &models.Message{ChatID: chat.ID, SenderID: 1, Content: fmt.Sprintf("m%d", i)}
		message.CreatedAt = base.Add(time.Duration(i) * time.Second)
		_, err := chatRepo.SaveMessage(message)
		require.NoError(t, err)
	}

	response, err := chatRepo.GetMessagesByChatID(chat.ID, 2, 10)
	require.NoError(t, err)
	assert.Len(t, response.Messages, 10)
	assert.Equal(t, int64(25), response.Total)

	// Newest first within the page.
	assert.Equal(t, "m14", response.Messages[0].Content)
}

func TestGetUserChatsOrderedByActivity(t *testing.T) {
	chatRepo := NewChatRepository(setupTestDB(t))

	older, err := chatRepo.CreateChat(1, 2)
	require.NoError(t, err)
	newer, err := chatRepo.CreateChat(1, 3)
	require.NoError(t, err)

	_, err = chatRepo.SaveMessage(&models.Message{ChatID: older.ID, SenderID: 2, Content: "first"})
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	_, err = chatRepo.SaveMessage(&models.Message{ChatID: newer.ID, SenderID: 3, Content: "second"})
	require.NoError(t, err)

	chats, err := chatRepo.GetUserChats(1)
	require.NoError(t, err)
	require.Len(t, chats, 2)
	assert.Equal(t, newer.ID, chats[0].ID)
	assert.Equal(t, older.ID, chats[1].ID)

	chats, err = chatRepo.GetUserChats(2)
	require.NoError(t, err)
	require.Len(t, chats, 1)

	last, err := chatRepo.GetChatLastMessage(older.ID)
	require.NoError(t, err)
	assert.Equal(t, "first", last.Content)
}
