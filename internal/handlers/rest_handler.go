package handlers

import (
	"log"
	"net/http"
	"strconv"

	"chatStream/internal/errs"
	"chatStream/internal/models"
	"chatStream/internal/msgs"
	"chatStream/internal/services"

	"github.com/gin-gonic/gin"
)

type RestHandler struct {
	authService *services.AuthenticationService
	chatService *services.ChatService
}

func NewRestHandler(
	authService *services.AuthenticationService,
	chatService *services.ChatService,
) *RestHandler {
	return &RestHandler{
		authService: authService,
		chatService: chatService,
	}
}

// Register godoc
// @Summary      Register a new user
// @Accept       json
// @Produce      json
// @Success      200  {object}  models.Response
// @Failure      400  {object}  models.Response
// @Router       /register [post]
func (rh *RestHandler) Register(ctx *gin.Context) {
	var errors []error

	var user models.User
	err := ctx.BindJSON(&user)
	if err != nil {
		errors = append(errors, errs.ErrInvalidRequestBody)
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  errors,
		})
		return
	}

	_, registerErrs := rh.authService.Register(&user)
	if len(registerErrs) > 0 {
		errors = append(errors, registerErrs...)
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  errors,
		})
		return
	}

	ctx.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: msgs.MsgUserCreatedSuccessfully,
	})
}

// Login godoc
// @Summary      Login with email and password
// @Accept       json
// @Produce      json
// @Success      200  {object}  models.Response
// @Failure      400  {object}  models.Response
// @Router       /login [post]
func (rh *RestHandler) Login(ctx *gin.Context) {
	var errors []error

	var loginData models.LoginRequestBody
	err := ctx.BindJSON(&loginData)
	if err != nil {
		log.Println("Error login data json binding:", err)
		errors = append(errors, errs.ErrInvalidRequestBody)
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  errors,
		})
		return
	}

	loginResponse, loginErrs := rh.authService.Login(&loginData)
	if len(loginErrs) > 0 {
		errors = append(errors, loginErrs...)
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  errors,
		})
		return
	}

	ctx.SetCookie("jwt_token", loginResponse.Token, 0, "/", "", false, true)
	ctx.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: msgs.MsgOperationSuccessful,
		Data:    loginResponse,
	})
}

func (rh *RestHandler) Logout(ctx *gin.Context) {
	token := TokenFromContext(ctx)
	if err := rh.authService.Logout(token); err != nil {
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  []error{err},
		})
		return
	}

	ctx.SetCookie("jwt_token", "", -1, "/", "", false, true)
	ctx.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: msgs.MsgLoggedOutSuccessfully,
	})
}

func (rh *RestHandler) GetUsers(ctx *gin.Context) {
	page, err := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	if err != nil {
		page = 1
	}
	size, err := strconv.Atoi(ctx.DefaultQuery("size", "10"))
	if err != nil {
		size = 10
	}

	usersResponse, getUsersErrs := rh.authService.GetAllUsersWithPagination(page, size)
	if len(getUsersErrs) > 0 {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  getUsersErrs,
		})
		return
	}

	ctx.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: msgs.MsgOperationSuccessful,
		Data:    usersResponse,
	})
}

func (rh *RestHandler) GetCurrentUser(ctx *gin.Context) {
	claims := ClaimsFromContext(ctx)
	if claims == nil {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  []error{errs.ErrUnauthorized},
		})
		return
	}

	user, err := rh.authService.GetUserByID(claims.ID)
	if err != nil {
		ctx.AbortWithStatusJSON(http.StatusNotFound, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  []error{err},
		})
		return
	}

	ctx.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: msgs.MsgOperationSuccessful,
		Data:    user.ToUserResponse(),
	})
}

// OpenChat finds or creates the chat between the caller and the requested
// recipient and returns its id.
func (rh *RestHandler) OpenChat(ctx *gin.Context) {
	claims := ClaimsFromContext(ctx)

	var chatRequest models.ChatRequest
	if err := ctx.BindJSON(&chatRequest); err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  []error{errs.ErrInvalidRequestBody},
		})
		return
	}

	chat, openErrs := rh.chatService.OpenChat(claims.ID, chatRequest.Recipient)
	if len(openErrs) > 0 {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  openErrs,
		})
		return
	}

	ctx.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: msgs.MsgOperationSuccessful,
		Data:    chat,
	})
}

func (rh *RestHandler) GetChats(ctx *gin.Context) {
	claims := ClaimsFromContext(ctx)

	overviews, getErrs := rh.chatService.GetChatOverviews(claims.ID)
	if len(getErrs) > 0 {
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  getErrs,
		})
		return
	}

	ctx.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: msgs.MsgOperationSuccessful,
		Data:    overviews,
	})
}

func (rh *RestHandler) GetChatMessages(ctx *gin.Context) {
	claims := ClaimsFromContext(ctx)

	chatID, err := strconv.Atoi(ctx.Param("chatID"))
	if err != nil || chatID <= 0 {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  []error{errs.ErrInvalidChatId},
		})
		return
	}
	if !rh.chatService.CheckUserInChat(claims.ID, uint(chatID)) {
		ctx.AbortWithStatusJSON(http.StatusForbidden, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  []error{errs.ErrInvalidChatId},
		})
		return
	}

	page, err := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	if err != nil {
		page = 1
	}
	size, err := strconv.Atoi(ctx.DefaultQuery("size", "20"))
	if err != nil {
		size = 20
	}

	messages, getErrs := rh.chatService.GetChatMessages(uint(chatID), page, size)
	if len(getErrs) > 0 {
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  getErrs,
		})
		return
	}

	ctx.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: msgs.MsgOperationSuccessful,
		Data:    messages,
	})
}
