package auth

import "LulaiPlatform/pkg/response"

var (
	ErrUserNotFound           = response.NewError(404, "user not found")
	ErrEmailAlreadyExists     = response.NewError(409, "email already exists")
	ErrInvalidEmailOrPassword = response.NewError(400, "invalid email or password")
	ErrUserNotVerified        = response.NewError(403, "email is not verified")
	ErrInvalidOTP             = response.NewError(400, "invalid or expired otp")
	ErrAdminNotFound          = response.NewError(404, "admin not found")
	ErrInvalidInviteToken     = response.NewError(400, "invalid or expired invite token")
	ErrAdminAlreadyActive     = response.NewError(409, "admin account already active")
	ErrOAuthExchangeFailed    = response.NewError(502, "failed to exchange oauth code")
	ErrInvalidFileType        = response.NewError(400, "invalid file type")
	ErrFailedToUpload         = response.NewError(500, "failed to upload file")
)
