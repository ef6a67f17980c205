package dto

import (
	"hotel/infras/jwt"
	userModel "hotel/internal/domains/user/model"
	"hotel/shared/constant"
	gModel "hotel/shared/model"
	"strings"
	"time"

	"github.com/google/uuid"
)

type RegisterRequest struct {
	FirstName string  `json:"first_name"          validate:"required,max=100"`
	LastName  *string `json:"last_name,omitempty" validate:"omitempty,max=100"`
	Email     string  `json:"email"               validate:"required,email"`
	Password  string  `json:"password"            validate:"required,min=8,max=72"`
}

func (r *RegisterRequest) Normalize() {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))

	if r.LastName != nil {
		lastName := strings.TrimSpace(*r.LastName)
		r.LastName = &lastName
	}
}

func (r *RegisterRequest) ToUserModel(actor string, hashedPassword string) userModel.User {
	return userModel.User{
		ID:         uuid.NewString(),
		FirstName:  r.FirstName,
		LastName:   r.LastName,
		Email:      r.Email,
		Password:   hashedPassword,
		Role:       constant.RoleUser,
		IsVerified: false,
		Active:     true,
		Metadata:   gModel.NewMetadata(actor),
	}
}

type RegisterResponse struct {
	ID        string  `json:"id"`
	FirstName string  `json:"first_name"`
	LastName  *string `json:"last_name,omitempty"`
	Email     string  `json:"email"`
	Role      string  `json:"role"`
}

func (r *RegisterResponse) FromModel(user userModel.User) {
	r.ID = user.ID
	r.FirstName = user.FirstName
	r.LastName = user.LastName
	r.Email = user.Email
	r.Role = user.Role
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateLastLoginRequest struct {
	LastLogin time.Time `db:"last_login"`
}

type UpdateVerifiedRequest struct {
	IsVerified bool `db:"is_verified"`
}

type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
	UserID       string `json:"user_id"`
	FirstName    string `json:"first_name"`
	Role         string `json:"role"`
}

func (l *LoginResponse) FromTokenPair(tokenPair *jwt.TokenPair, user userModel.User) {
	l.AccessToken = tokenPair.AccessToken
	l.RefreshToken = tokenPair.RefreshToken
	l.TokenType = tokenPair.TokenType
	l.ExpiresIn = tokenPair.ExpiresIn
	l.UserID = user.ID
	l.FirstName = user.FirstName
	l.Role = user.Role
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (r *RefreshTokenResponse) FromTokenPair(tokenPair *jwt.TokenPair) {
	r.AccessToken = tokenPair.AccessToken
	r.RefreshToken = tokenPair.RefreshToken
	r.TokenType = tokenPair.TokenType
	r.ExpiresIn = tokenPair.ExpiresIn
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=8,max=72,nefield=CurrentPassword"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token"    validate:"required"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type UpdatePasswordRequest struct {
	Password string `db:"password"`
}

type StatusResponse struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}
