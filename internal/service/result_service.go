package service

import (
	"errors"
	"fmt"
	"log"

	"github.com/yourusername/quizexam-api/internal/domain/entity"
	"github.com/yourusername/quizexam-api/internal/domain/repository"
	apperrors "github.com/yourusername/quizexam-api/internal/pkg/errors"
)

const (
	defaultResultsPage  = 1
	defaultResultsLimit = 10
)

// ResultPage содержит страницу результатов вместе с метаданными
// пагинации и сводной статистикой пользователя
type ResultPage struct {
	Results      []entity.Result
	Page         int
	Limit        int
	TotalResults int64
	TotalPages   int
	Stats        repository.UserStats
}

// ResultService предоставляет доступ к истории результатов пользователя
type ResultService struct {
	resultRepo repository.ResultRepository
	quizRepo   repository.QuizRepository
}

// NewResultService создает новый сервис результатов
func NewResultService(resultRepo repository.ResultRepository, quizRepo repository.QuizRepository) *ResultService {
	return &ResultService{
		resultRepo: resultRepo,
		quizRepo:   quizRepo,
	}
}

// QueryForUser возвращает страницу результатов пользователя.
// Фильтры и пагинация влияют только на страницу и totalResults;
// статистика (totalAttempts/passedCount/failedCount) всегда считается
// по всем результатам пользователя: она отвечает на вопрос
// "как пользователь справляется в целом", а не "что попало в выборку".
func (s *ResultService) QueryForUser(userID uint, filters repository.ResultFilters, page, limit int) (*ResultPage, error) {
	if page <= 0 {
		page = defaultResultsPage
	}
	if limit <= 0 {
		limit = defaultResultsLimit
	}

	offset := (page - 1) * limit

	results, total, err := s.resultRepo.GetUserResults(userID, filters, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query results: %w", err)
	}

	stats, err := s.resultRepo.GetUserStats(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute user stats: %w", err)
	}

	s.enrich(results)

	totalPages := int((total + int64(limit) - 1) / int64(limit))

	return &ResultPage{
		Results:      results,
		Page:         page,
		Limit:        limit,
		TotalResults: total,
		TotalPages:   totalPages,
		Stats:        stats,
	}, nil
}

// GetByIDForUser возвращает результат по ID с проверкой владения.
// Чужой результат неотличим от несуществующего (ErrNotFound).
func (s *ResultService) GetByIDForUser(userID, resultID uint) (*entity.Result, error) {
	result, err := s.resultRepo.GetByID(resultID)
	if err != nil {
		return nil, err
	}
	if result.UserID != userID {
		return nil, fmt.Errorf("result %d does not belong to user %d: %w", resultID, userID, apperrors.ErrNotFound)
	}
	return result, nil
}

// GetAllForUser возвращает все результаты пользователя без пагинации
// (используется при экспорте истории)
func (s *ResultService) GetAllForUser(userID uint) ([]entity.Result, error) {
	results, err := s.resultRepo.GetAllUserResults(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load results for export: %w", err)
	}
	s.enrich(results)
	return results, nil
}

// enrich подменяет снапшот названия и уровня квиза актуальными данными
// каталога. Если квиз удален из каталога, остаются значения снапшота —
// результат самодостаточен и не теряет смысла.
func (s *ResultService) enrich(results []entity.Result) {
	// Локальный кеш на время запроса: один квиз встречается
	// в истории многократно
	quizzes := make(map[uint]*entity.Quiz)

	for i := range results {
		quizID := results[i].QuizID
		quiz, ok := quizzes[quizID]
		if !ok {
			loaded, err := s.quizRepo.GetByID(quizID)
			if err != nil {
				if !errors.Is(err, apperrors.ErrNotFound) {
					log.Printf("[ResultService] Не удалось загрузить квиз %d для обогащения: %v", quizID, err)
				}
				quizzes[quizID] = nil
				continue
			}
			quiz = loaded
			quizzes[quizID] = quiz
		}
		if quiz == nil {
			continue
		}
		results[i].QuizTitle = quiz.Title
		results[i].Level = quiz.Level
	}
}
