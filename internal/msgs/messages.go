package msgs

const (
	MsgOperationFailed         = "operation failed"
	MsgOperationSuccessful     = "operation successful"
	MsgUserCreatedSuccessfully = "user created successfully"
	MsgLoggedOutSuccessfully   = "logged out successfully"
)
