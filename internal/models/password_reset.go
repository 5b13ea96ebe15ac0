package models

type PasswordResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type VerifyResetCodeRequest struct {
	Email     string `json:"email" validate:"required,email"`
	ResetCode string `json:"reset_code" validate:"required"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	ResetCode   string `json:"reset_code" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,password"`
}

type PasswordResetResponse struct {
	Message          string `json:"message"`
	ResetCode        string `json:"reset_code,omitempty"`
	ExpiresInSeconds int64  `json:"expires_in_seconds,omitempty"`
}
