package services

import (
	"log"
	"time"

	"chatStream/configs"
	"chatStream/internal/errs"
	"chatStream/internal/models"
	"chatStream/internal/repositories"
	"chatStream/internal/utils"
	"chatStream/internal/validators"
)

type AuthenticationService struct {
	authRepo       *repositories.AuthenticationRepository
	sessionService *SessionService
	config         *configs.Config
}

func NewAuthenticationService(
	authRepo *repositories.AuthenticationRepository,
	sessionService *SessionService,
	config *configs.Config,
) *AuthenticationService {
	return &AuthenticationService{
		authRepo:       authRepo,
		sessionService: sessionService,
		config:         config,
	}
}

func (as *AuthenticationService) Register(user *models.User) (*models.User, []error) {
	var errors []error
	if as.CheckIfUserExists(user.Email) {
		errors = append(errors, errs.ErrUserAlreadyExists)
		return nil, errors
	}
	validationErrs := validators.ValidateUser(user)
	if len(validationErrs) > 0 {
		errors = append(errors, validationErrs...)
		return nil, errors
	}
	password, err := utils.HashPassword(user.Password)
	if err != nil {
		errors = append(errors, err)
		return nil, errors
	}
	user.PasswordHash = password
	return as.authRepo.CreateUser(user)
}

func (as *AuthenticationService) Login(loginData *models.LoginRequestBody) (*models.LoginResponse, []error) {
	var errors []error

	user, loginErrs := as.authRepo.Login(loginData)
	if len(loginErrs) > 0 {
		errors = append(errors, loginErrs...)
		return nil, errors
	}

	ttl := time.Duration(as.config.Viper.GetInt("jwt.expiration_time")) * time.Second
	expiration := time.Now().Add(ttl)
	token, jwtErr := utils.CreateJwtToken(
		user.ID,
		user.Email,
		user.FirstName,
		user.LastName,
		utils.GetJwtKey(),
		expiration,
	)
	if jwtErr != nil {
		errors = append(errors, jwtErr)
		return nil, errors
	}

	if err := as.sessionService.StoreSession(token, user.ID, ttl); err != nil {
		errors = append(errors, err)
		return nil, errors
	}

	return &models.LoginResponse{
		User:  *user.ToUserResponse(),
		Token: token,
	}, nil
}

func (as *AuthenticationService) Logout(token string) error {
	return as.sessionService.RevokeSession(token)
}

// Authenticate verifies the JWT and requires the token to still be live in
// the session store.
func (as *AuthenticationService) Authenticate(token string) (*models.Claims, error) {
	claims, err := utils.VerifyToken(token, utils.GetJwtKey())
	if err != nil {
		return nil, errs.ErrInvalidToken
	}
	if !as.sessionService.SessionExists(token) {
		return nil, errs.ErrUnauthorized
	}
	return claims, nil
}

func (as *AuthenticationService) CheckIfUserExists(email string) bool {
	return as.authRepo.FindUserByEmail(email) != nil
}

func (as *AuthenticationService) GetUserByEmail(email string) (*models.User, error) {
	user := as.authRepo.FindUserByEmail(email)
	if user == nil {
		return nil, errs.ErrUserNotFound
	}
	return user, nil
}

func (as *AuthenticationService) GetUserByID(id uint) (*models.User, error) {
	return as.authRepo.FindUserByID(id)
}

func (as *AuthenticationService) GetAllUsersWithPagination(page, size int) (*models.GetUsersResponse, []error) {
	var errors []error
	if page < 0 || size < 0 {
		log.Println("Page or size < 0")
		errors = append(errors, errs.ErrInvalidPageOrSize)
		return nil, errors
	}
	return as.authRepo.GetAllUsersWithPagination(page, size)
}
