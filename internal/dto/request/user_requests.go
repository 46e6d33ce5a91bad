// This file contains the request bodies for account operations.
package request

// RegisterRequest creates a new account.
type RegisterRequest struct {
	UserName  string `json:"user_name" binding:"required,min=3,max=30"`
	FirstName string `json:"first_name" binding:"required,min=1,max=30"`
	LastName  string `json:"last_name" binding:"required,min=1,max=30"`
	Password  string `json:"password" binding:"required,min=8,max=72"`
}

// LoginRequest exchanges credentials for a token pair.
type LoginRequest struct {
	UserName string `json:"user_name" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest exchanges a refresh token for a new token pair.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ChangeNameRequest updates the caller's display name.
type ChangeNameRequest struct {
	FirstName string `json:"first_name" binding:"required,min=1,max=30"`
	LastName  string `json:"last_name" binding:"required,min=1,max=30"`
}

// ChangePasswordRequest updates the caller's password.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=72"`
}
