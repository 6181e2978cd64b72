package handlers

import (
	"log"
	"net/http"
	"strconv"

	"chatStream/internal/errs"
	"chatStream/internal/hub"
	"chatStream/internal/models"
	"chatStream/internal/msgs"
	"chatStream/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type SocketChatHandler struct {
	upgrader    websocket.Upgrader
	chatHub     *hub.Hub
	chatService *services.ChatService
	authService *services.AuthenticationService
}

func NewSocketChatHandler(
	chatHub *hub.Hub,
	chatService *services.ChatService,
	authService *services.AuthenticationService,
) *SocketChatHandler {
	return &SocketChatHandler{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		chatHub:     chatHub,
		chatService: chatService,
		authService: authService,
	}
}

// HandleSocketChatRoute authenticates the caller, checks that the requested
// chat exists and belongs to them, then hands the upgraded connection to a
// chat session for the rest of its lifetime.
func (sch *SocketChatHandler) HandleSocketChatRoute(ctx *gin.Context) {
	token := ExtractToken(ctx)
	if token == "" {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  []error{errs.ErrUnauthorized},
		})
		return
	}

	claims, err := sch.authService.Authenticate(token)
	if err != nil {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  []error{errs.ErrUnauthorized},
		})
		return
	}

	chatID, err := strconv.Atoi(ctx.Param("chatID"))
	if err != nil || chatID <= 0 {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  []error{errs.ErrInvalidChatId},
		})
		return
	}
	if !sch.chatService.CheckChatExists(uint(chatID)) {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  []error{errs.ErrInvalidChatId},
		})
		return
	}
	if !sch.chatService.CheckUserInChat(claims.ID, uint(chatID)) {
		ctx.AbortWithStatusJSON(http.StatusForbidden, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  []error{errs.ErrInvalidChatId},
		})
		return
	}

	ws, err := sch.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade connection: %v", err)
		return
	}

	session := hub.NewChatSession(sch.chatHub, ws, uint(chatID), claims.ID)
	if err := session.Run(); err != nil {
		log.Printf("Chat session for user %d on chat %d could not connect: %v", claims.ID, chatID, err)
	}
}
