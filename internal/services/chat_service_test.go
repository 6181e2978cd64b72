package services

import (
	"path/filepath"
	"testing"
	"time"

	"chatStream/internal/errs"
	"chatStream/internal/models"
	"chatStream/internal/repositories"
	"chatStream/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupChatService(t *testing.T) (*ChatService, *repositories.AuthenticationRepository) {
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

	authRepo := repositories.NewAuthenticationRepository(db)
	chatRepo := repositories.NewChatRepository(db)
	return NewChatService(chatRepo, authRepo), authRepo
}

func registerUser(t *testing.T, authRepo *repositories.AuthenticationRepository, email string) *models.User {
	t.Helper()

	hash, err := utils.HashPassword("Secret123!")
	require.NoError(t, err)
	user, createErrs := authRepo.CreateUser(&models.User{
		FirstName:    "Test",
		LastName:     "User",
		Email:        email,
		PasswordHash: hash,
	})
	require.Empty(t, createErrs)
	return user
}

func TestOpenChat(t *testing.T) {
	chatService, authRepo := setupChatService(t)
	alice := registerUser(t, authRepo, "alice@example.com")
	bob := registerUser(t, authRepo, "bob@example.com")

	t.Run("creates a chat between two users", func(t *testing.T) {
		chat, openErrs := chatService.OpenChat(alice.ID, "bob@example.com")
		require.Empty(t, openErrs)
		assert.True(t, chat.HasMember(alice.ID))
		assert.True(t, chat.HasMember(bob.ID))
	})

	t.Run("reuses the existing chat regardless of direction", func(t *testing.T) {
		first, openErrs := chatService.OpenChat(alice.ID, "bob@example.com")
		require.Empty(t, openErrs)
		second, openErrs := chatService.OpenChat(bob.ID, "alice@example.com")
		require.Empty(t, openErrs)
		assert.Equal(t, first.ID, second.ID)
	})

	t.Run("rejects unknown recipients", func(t *testing.T) {
		_, openErrs := chatService.OpenChat(alice.ID, "nobody@example.com")
		require.NotEmpty(t, openErrs)
		assert.ErrorIs(t, openErrs[0], errs.ErrUserNotFound)
	})

	t.Run("rejects a chat with yourself", func(t *testing.T) {
		_, openErrs := chatService.OpenChat(alice.ID, "alice@example.com")
		require.NotEmpty(t, openErrs)
		assert.ErrorIs(t, openErrs[0], errs.ErrChatWithSelf)
	})
}

func TestMessageStoreRoundTrip(t *testing.T) {
	chatService, authRepo := setupChatService(t)
	alice := registerUser(t, authRepo, "alice@example.com")
	registerUser(t, authRepo, "bob@example.com")

	chat, openErrs := chatService.OpenChat(alice.ID, "bob@example.com")
	require.Empty(t, openErrs)

	for _, content := range []string{"one", "two", "three"} {
		_, err := chatService.AppendMessage(chat.ID, alice.ID, content)
		require.NoError(t, err)
		time.Sleep(5 * time.Millisecond)
	}

	stored, err := chatService.RecentMessages(chat.ID, 50)
	require.NoError(t, err)
	require.Len(t, stored, 3)
	assert.Equal(t, "one", stored[0].Content)
	assert.Equal(t, "three", stored[2].Content)
	assert.Equal(t, alice.ID, stored[0].SenderID)
	for i := 1; i < len(stored); i++ {
		assert.False(t, stored[i].CreatedAt.Before(stored[i-1].CreatedAt))
	}
}

func TestGetChatOverviews(t *testing.T) {
	chatService, authRepo := setupChatService(t)
	alice := registerUser(t, authRepo, "alice@example.com")
	bob := registerUser(t, authRepo, "bob@example.com")
	registerUser(t, authRepo, "carol@example.com")

	chatWithBob, openErrs := chatService.OpenChat(alice.ID, "bob@example.com")
	require.Empty(t, openErrs)
	_, openErrs = chatService.OpenChat(alice.ID, "carol@example.com")
	require.Empty(t, openErrs)

	_, err := chatService.AppendMessage(chatWithBob.ID, bob.ID, "hi alice")
	require.NoError(t, err)

	overviews, overviewErrs := chatService.GetChatOverviews(alice.ID)
	require.Empty(t, overviewErrs)
	require.Len(t, overviews, 2)

	// The chat with recent traffic comes first and carries its last message.
	assert.Equal(t, chatWithBob.ID, overviews[0].ChatID)
	require.NotNil(t, overviews[0].LastMessage)
	assert.Equal(t, "hi alice", *overviews[0].LastMessage)
	assert.Equal(t, "bob@example.com", overviews[0].OtherUser.Email)

	assert.Nil(t, overviews[1].LastMessage)
	assert.Equal(t, "carol@example.com", overviews[1].OtherUser.Email)
}
