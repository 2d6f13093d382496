package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWTClaims are the claims embedded in access tokens.
type JWTClaims struct {
	UserID     string `json:"uid"`
	Username   string `json:"username"`
	Department string `json:"department"`
	IsAdmin    bool   `json:"is_admin"`
	jwt.RegisteredClaims
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the issued token pair.
type LoginResponse struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	ExpiresIn    int64       `json:"expires_in"`
	IssuedAt     time.Time   `json:"issued_at"`
	User         AccountInfo `json:"user"`
}

// RefreshTokenRequest exchanges a refresh token for a new pair.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// LogoutRequest revokes a refresh token.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// AccountInfo is the public profile embedded in auth responses.
type AccountInfo struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	Department  string `json:"department"`
	TeacherCode string `json:"teacher_code"`
}
