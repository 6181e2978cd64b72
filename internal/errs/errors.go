package errs

type Error string

func (e Error) Error() string { return string(e) }

const (
	ErrInvalidRequestBody  = Error("invalid request body")
	ErrUserAlreadyExists   = Error("user already exists")
	ErrUserNotFound        = Error("user not found")
	ErrWrongPassword       = Error("wrong password")
	ErrInvalidToken        = Error("invalid token")
	ErrInvalidEmail        = Error("invalid email")
	ErrInvalidPassword     = Error("invalid password")
	ErrInvalidUser         = Error("invalid user")
	ErrInvalidParams       = Error("invalid params")
	ErrInvalidPageOrSize   = Error("invalid page or size")
	ErrFirstName           = Error("first name is empty or too short")
	ErrLastName            = Error("last name is empty or too short")
	ErrUnauthorized        = Error("unauthorized")
	ErrInvalidChatId       = Error("invalid chat id")
	ErrChatWithSelf        = Error("cannot open a chat with yourself")
	ErrStoreUnavailable    = Error("message store unavailable")
	ErrConstraintViolation = Error("message store constraint violation")
	ErrHubClosed           = Error("chat hub is closed")
)
