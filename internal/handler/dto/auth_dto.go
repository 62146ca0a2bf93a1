package dto

import (
	"github.com/yourusername/quizexam-api/internal/domain/entity"
)

// UserResponse представляет пользователя в формате для ответа клиенту
type UserResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// AuthResponse представляет ответ на успешный вход
type AuthResponse struct {
	Success bool          `json:"success"`
	Token   string        `json:"token"`
	User    *UserResponse `json:"user"`
}

// NewUserResponse создает DTO для пользователя
func NewUserResponse(user *entity.User) *UserResponse {
	return &UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
	}
}

// NewAuthResponse создает DTO ответа аутентификации
func NewAuthResponse(user *entity.User, token string) *AuthResponse {
	return &AuthResponse{
		Success: true,
		Token:   token,
		User:    NewUserResponse(user),
	}
}
