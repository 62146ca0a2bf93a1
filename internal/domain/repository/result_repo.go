package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/yourusername/quizexam-api/internal/domain/entity"
)

// ResultFilters определяет фильтры выборки результатов пользователя.
// Указатели отличают «фильтр не задан» от нулевого значения.
type ResultFilters struct {
	Pass     *bool
	QuizID   uint
	Level    string
	DateFrom *time.Time
	DateTo   *time.Time
	MinScore *int
	MaxScore *int
}

// UserStats — агрегированная статистика по ВСЕМ результатам пользователя.
// Считается независимо от фильтров текущей выборки.
type UserStats struct {
	TotalAttempts int64 `json:"total_attempts"`
	PassedCount   int64 `json:"passed_count"`
	FailedCount   int64 `json:"failed_count"`
}

// ResultRepository определяет методы для работы с результатами.
// Хранилище append-only: результаты не изменяются и не удаляются.
type ResultRepository interface {
	// Save сохраняет результат В ПЕРЕДАННОЙ ТРАНЗАКЦИИ — в той же логической
	// единице, что и закрытие сессии.
	Save(tx *gorm.DB, result *entity.Result) error
	GetByID(id uint) (*entity.Result, error)
	// GetUserResults возвращает страницу результатов пользователя под фильтрами
	// (сортировка: completed_at DESC, score DESC) и total count под теми же фильтрами
	GetUserResults(userID uint, filters ResultFilters, limit, offset int) ([]entity.Result, int64, error)
	// GetAllUserResults возвращает все результаты пользователя без пагинации (экспорт)
	GetAllUserResults(userID uint) ([]entity.Result, error)
	GetUserStats(userID uint) (UserStats, error)
}
