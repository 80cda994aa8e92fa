package models

import "github.com/golang-jwt/jwt/v5"

// Claims is the JWT claims structure issued by this server.
// Only the registered claims are used; the subject is always "user"
// since this is a single-user tool.
type Claims struct {
	jwt.RegisteredClaims
}

// TokenPair is the response body for a successful login.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}
