package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/quizexam-api/internal/domain/entity"
	"github.com/yourusername/quizexam-api/internal/domain/repository"
	apperrors "github.com/yourusername/quizexam-api/internal/pkg/errors"
)

// ResultRepo реализует repository.ResultRepository
type ResultRepo struct {
	db *gorm.DB
}

// NewResultRepo создает новый репозиторий результатов
func NewResultRepo(db *gorm.DB) *ResultRepo {
	return &ResultRepo{db: db}
}

// Save сохраняет результат В ПЕРЕДАННОЙ ТРАНЗАКЦИИ.
// Хранилище append-only: UPDATE/DELETE по результатам не выполняются никогда.
func (r *ResultRepo) Save(tx *gorm.DB, result *entity.Result) error {
	return tx.Create(result).Error
}

// GetByID возвращает результат по ID
func (r *ResultRepo) GetByID(id uint) (*entity.Result, error) {
	var result entity.Result
	err := r.db.First(&result, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &result, nil
}

// applyFilters навешивает фильтры выборки результатов на запрос
func applyFilters(query *gorm.DB, filters repository.ResultFilters) *gorm.DB {
	if filters.Pass != nil {
		query = query.Where("pass = ?", *filters.Pass)
	}
	if filters.QuizID != 0 {
		query = query.Where("quiz_id = ?", filters.QuizID)
	}
	if filters.Level != "" {
		query = query.Where("LOWER(level) = LOWER(?)", filters.Level)
	}
	if filters.DateFrom != nil {
		query = query.Where("completed_at >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("completed_at <= ?", *filters.DateTo)
	}
	if filters.MinScore != nil {
		query = query.Where("score >= ?", *filters.MinScore)
	}
	if filters.MaxScore != nil {
		query = query.Where("score <= ?", *filters.MaxScore)
	}
	return query
}

// GetUserResults возвращает страницу результатов пользователя под фильтрами
// и total count под теми же фильтрами
func (r *ResultRepo) GetUserResults(userID uint, filters repository.ResultFilters, limit, offset int) ([]entity.Result, int64, error) {
	var results []entity.Result
	var total int64

	// Транзакция для согласованности count и страницы
	tx := r.db.Begin()
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
		}
	}()
	if tx.Error != nil {
		return nil, 0, tx.Error
	}

	query := applyFilters(tx.Model(&entity.Result{}).Where("user_id = ?", userID), filters)

	if err := query.Count(&total).Error; err != nil {
		tx.Rollback()
		return nil, 0, err
	}

	// Сортировка: сначала свежие, при равной дате — более высокий балл
	err := query.Order("completed_at DESC, score DESC").
		Limit(limit).
		Offset(offset).
		Find(&results).Error
	if err != nil {
		tx.Rollback()
		return nil, 0, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, 0, err
	}

	return results, total, nil
}

// GetAllUserResults возвращает ВСЕ результаты пользователя без пагинации.
// Используется экспортом; пустой слайс - валидный результат.
func (r *ResultRepo) GetAllUserResults(userID uint) ([]entity.Result, error) {
	var results []entity.Result
	err := r.db.Where("user_id = ?", userID).
		Order("completed_at DESC, score DESC").
		Find(&results).Error
	return results, err
}

// GetUserStats возвращает агрегаты по всем результатам пользователя,
// независимо от фильтров текущей выборки
func (r *ResultRepo) GetUserStats(userID uint) (repository.UserStats, error) {
	var stats repository.UserStats

	if err := r.db.Model(&entity.Result{}).
		Where("user_id = ?", userID).
		Count(&stats.TotalAttempts).Error; err != nil {
		return stats, err
	}

	if err := r.db.Model(&entity.Result{}).
		Where("user_id = ? AND pass = true", userID).
		Count(&stats.PassedCount).Error; err != nil {
		return stats, err
	}

	stats.FailedCount = stats.TotalAttempts - stats.PassedCount
	return stats, nil
}
