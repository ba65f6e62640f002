package constants

// Context and session keys
const (
	ContextKeyUserID = "user_id"
	SessionName      = "board_session"
)

// Authentication
const (
	MinPasswordLength = 8
)

// Input limits shared by client and server validation
const (
	MaxNameLength        = 50
	MaxDescriptionLength = 100
	MaxCommentLength     = 2000
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)
