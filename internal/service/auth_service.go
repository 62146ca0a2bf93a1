package service

import (
	"errors"
	"fmt"

	"github.com/yourusername/quizexam-api/internal/domain/entity"
	"github.com/yourusername/quizexam-api/internal/domain/repository"
	apperrors "github.com/yourusername/quizexam-api/internal/pkg/errors"
	"github.com/yourusername/quizexam-api/pkg/auth"
)

// AuthService предоставляет методы для регистрации и входа пользователей
type AuthService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
}

// NewAuthService создает новый сервис аутентификации
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

// Register регистрирует нового пользователя.
// Пароль хешируется bcrypt-хуком сущности при сохранении.
func (s *AuthService) Register(username, email, password string) (*entity.User, error) {
	if username == "" || email == "" {
		return nil, fmt.Errorf("username and email are required: %w", apperrors.ErrValidation)
	}
	if len(password) < 6 {
		return nil, fmt.Errorf("password must be at least 6 characters: %w", apperrors.ErrValidation)
	}

	// Проверяем уникальность email и имени пользователя
	if _, err := s.userRepo.GetByEmail(email); err == nil {
		return nil, fmt.Errorf("email already registered: %w", apperrors.ErrConflict)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	if _, err := s.userRepo.GetByUsername(username); err == nil {
		return nil, fmt.Errorf("username already taken: %w", apperrors.ErrConflict)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	user := &entity.User{
		Username: username,
		Email:    email,
		Password: password,
		Role:     entity.RoleUser,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Login проверяет учетные данные и возвращает пользователя с JWT токеном.
// Неверный email и неверный пароль неразличимы для клиента.
func (s *AuthService) Login(email, password string) (*entity.User, string, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, "", fmt.Errorf("invalid email or password: %w", apperrors.ErrUnauthorized)
		}
		return nil, "", err
	}

	if !user.CheckPassword(password) {
		return nil, "", fmt.Errorf("invalid email or password: %w", apperrors.ErrUnauthorized)
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	return user, token, nil
}

// GetUser возвращает пользователя по ID
func (s *AuthService) GetUser(userID uint) (*entity.User, error) {
	return s.userRepo.GetByID(userID)
}
