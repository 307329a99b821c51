package errors

// Generic error codes
const (
	ErrInternalServer = "ERR_INTERNAL_SERVER"
	ErrInvalidParam   = "ERR_INVALID_PARAM"
)

// User error codes
const (
	ErrEmptyID            = "ERR_EMPTY_ID"
	ErrUserNotFound       = "ERR_USER_NOT_FOUND"
	ErrEmptyCredentials   = "ERR_EMPTY_CREDENTIALS"
	ErrInvalidCredentials = "ERR_INVALID_CREDENTIALS"
	ErrUserDisabled       = "ERR_USER_DISABLED"
	ErrEmailTaken         = "ERR_EMAIL_TAKEN"
	ErrUsernameTaken      = "ERR_USERNAME_TAKEN"
	ErrEmptyPassword      = "ERR_EMPTY_PASSWORD"
)

// Workspace error codes
const (
	ErrWorkspaceNotFound = "ERR_WORKSPACE_NOT_FOUND"
	ErrLastWorkspace     = "ERR_LAST_WORKSPACE"
	ErrGroupNotFound     = "ERR_GROUP_NOT_FOUND"
	ErrGroupMismatch     = "ERR_GROUP_MISMATCH"
)

// Favorite / personality / provider error codes
const (
	ErrFavoriteNotFound    = "ERR_FAVORITE_NOT_FOUND"
	ErrPersonalityNotFound = "ERR_PERSONALITY_NOT_FOUND"
	ErrProviderNotFound    = "ERR_PROVIDER_NOT_FOUND"
)

// Chat error codes
const (
	ErrSessionNotFound = "ERR_SESSION_NOT_FOUND"
	ErrSessionPrivate  = "ERR_SESSION_PRIVATE"
)
