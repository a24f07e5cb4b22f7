package account

// ResetPasswordRequest is the body of the password reset call
type ResetPasswordRequest struct {
	UserID      string `json:"userId"`
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}
