package api

import "github.com/golang-jwt/jwt/v5"

// TokenIssuer is the iss claim of access tokens.
const TokenIssuer = "notesync"

// TokenClaims представляет JWT claims access токена
type TokenClaims struct {
	UserID   string `json:"user_id"`
	UserName string `json:"user_name"`
	jwt.RegisteredClaims
}
