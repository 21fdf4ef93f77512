// internal/api/error_codes.go
package api

// API error code constants.
const (
	// Generic
	ErrorBadRequest    = "BAD_REQUEST"
	ErrorNotFound      = "NOT_FOUND"
	ErrorInternalError = "INTERNAL_ERROR"
	ErrorForbidden     = "FORBIDDEN"

	// Project and file store
	ErrorProjectNotFound = "PROJECT_NOT_FOUND"
	ErrorFileNotFound    = "FILE_NOT_FOUND"
	ErrorTrashNotFound   = "TRASH_ITEM_NOT_FOUND"
	ErrorEmptyName       = "EMPTY_NAME"
	ErrorWrongFileType   = "WRONG_FILE_TYPE"

	// Argument builder
	ErrorSubThemeNotFound = "SUB_THEME_NOT_FOUND"

	// Script editor
	ErrorInvalidRange = "INVALID_RANGE"

	// Pitching and analysis
	ErrorUnknownSection   = "UNKNOWN_SECTION"
	ErrorUnknownCriterion = "UNKNOWN_CRITERION"
	ErrorUnknownStep      = "UNKNOWN_STEP"
	ErrorUnknownPoint     = "UNKNOWN_POINT"

	// Chat
	ErrorConversationNotFound = "CONVERSATION_NOT_FOUND"
	ErrorEmptyMessage         = "EMPTY_MESSAGE"

	// Account
	ErrorWrongPassword    = "WRONG_PASSWORD"
	ErrorPasswordMismatch = "PASSWORD_MISMATCH"

	// Settings
	ErrorSettingsInvalid = "SETTINGS_INVALID"
)
