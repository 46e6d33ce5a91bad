// This file contains the response bodies for account operations.
package respond

// TokenPairRespond carries a fresh access/refresh token pair.
type TokenPairRespond struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// LoginRespond is returned on successful login or registration.
type LoginRespond struct {
	UserUuid     string `json:"user_uuid"`
	UserName     string `json:"user_name"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// UserInfoRespond is the caller's own profile.
type UserInfoRespond struct {
	UserUuid  string `json:"user_uuid"`
	UserName  string `json:"user_name"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}
