package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/yourusername/quizexam-api/internal/domain/entity"
	"github.com/yourusername/quizexam-api/internal/domain/repository"
	apperrors "github.com/yourusername/quizexam-api/internal/pkg/errors"
)

const (
	quizListCacheKey  = "quizzes:list"
	quizInfoCacheKey  = "quizzes:info:%d"
	quizCacheDuration = 5 * time.Minute
)

// QuizService предоставляет методы для работы с каталогом квизов
type QuizService struct {
	quizRepo  repository.QuizRepository
	cacheRepo repository.CacheRepository
}

// NewQuizService создает новый сервис каталога квизов
func NewQuizService(
	quizRepo repository.QuizRepository,
	cacheRepo repository.CacheRepository,
) *QuizService {
	return &QuizService{
		quizRepo:  quizRepo,
		cacheRepo: cacheRepo,
	}
}

// ListQuizzes возвращает список квизов с опциональной фильтрацией
// по уровню сложности, технологии и текстовому поиску.
// Нефильтрованный список кешируется в Redis.
func (s *QuizService) ListQuizzes(filters repository.QuizFilters) ([]entity.Quiz, error) {
	if filters.IsEmpty() {
		var cached []entity.Quiz
		if err := s.cacheRepo.GetJSON(quizListCacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	quizzes, err := s.quizRepo.List(filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list quizzes: %w", err)
	}

	if filters.IsEmpty() {
		if err := s.cacheRepo.SetJSON(quizListCacheKey, quizzes, quizCacheDuration); err != nil {
			log.Printf("[QuizService] Не удалось закешировать список квизов: %v", err)
		}
	}

	return quizzes, nil
}

// GetQuizInfo возвращает метаданные квиза без вопросов
func (s *QuizService) GetQuizInfo(quizID uint) (*entity.Quiz, error) {
	cacheKey := fmt.Sprintf(quizInfoCacheKey, quizID)

	var cached entity.Quiz
	if err := s.cacheRepo.GetJSON(cacheKey, &cached); err == nil {
		return &cached, nil
	}

	quiz, err := s.quizRepo.GetByID(quizID)
	if err != nil {
		return nil, err
	}

	if err := s.cacheRepo.SetJSON(cacheKey, quiz, quizCacheDuration); err != nil {
		log.Printf("[QuizService] Не удалось закешировать квиз %d: %v", quizID, err)
	}

	return quiz, nil
}

// CreateQuiz создает новый квиз вместе с вопросами (только для администраторов).
// Каждый вопрос проверяется на инвариант "правильный ответ входит в варианты".
func (s *QuizService) CreateQuiz(quiz *entity.Quiz, questions []entity.Question) (*entity.Quiz, error) {
	if quiz.Title == "" {
		return nil, fmt.Errorf("quiz title is required: %w", apperrors.ErrValidation)
	}
	quiz.Level = entity.NormalizeLevel(quiz.Level)
	if !entity.IsValidLevel(quiz.Level) {
		return nil, fmt.Errorf("invalid quiz level %q: %w", quiz.Level, apperrors.ErrValidation)
	}
	if quiz.TimeLimitMin <= 0 {
		return nil, fmt.Errorf("time limit must be positive: %w", apperrors.ErrValidation)
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("quiz must contain at least one question: %w", apperrors.ErrValidation)
	}
	if quiz.PassMarks < 0 || quiz.PassMarks > len(questions) {
		return nil, fmt.Errorf("pass marks must be between 0 and the question count: %w", apperrors.ErrValidation)
	}

	for i := range questions {
		if err := questions[i].Validate(); err != nil {
			return nil, fmt.Errorf("question %d: %s: %w", i+1, err, apperrors.ErrValidation)
		}
	}

	quiz.TotalQuestions = len(questions)

	// Вопросы создаются ассоциацией вместе с квизом в одной транзакции:
	// при ошибке не остается квиза-сироты без вопросов
	for i := range questions {
		questions[i].Position = i
	}
	quiz.Questions = questions

	if err := s.quizRepo.Create(quiz); err != nil {
		return nil, fmt.Errorf("failed to create quiz: %w", err)
	}

	// Инвалидируем кеш списка, чтобы новый квиз появился сразу
	if err := s.cacheRepo.Delete(quizListCacheKey); err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		log.Printf("[QuizService] Не удалось инвалидировать кеш списка квизов: %v", err)
	}

	return quiz, nil
}
