package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/quizexam-api/internal/domain/entity"
	"github.com/yourusername/quizexam-api/internal/domain/repository"
	apperrors "github.com/yourusername/quizexam-api/internal/pkg/errors"
)

// QuizRepo реализует repository.QuizRepository
type QuizRepo struct {
	db *gorm.DB
}

// NewQuizRepo создает новый репозиторий каталога викторин
func NewQuizRepo(db *gorm.DB) *QuizRepo {
	return &QuizRepo{db: db}
}

// Create создает викторину вместе с вопросами в одной транзакции.
// GORM пишет ассоциированные вопросы в том же Create: либо сохраняется
// все, либо ничего.
func (r *QuizRepo) Create(quiz *entity.Quiz) error {
	return r.db.Create(quiz).Error
}

// GetByID возвращает викторину по ID без вопросов
func (r *QuizRepo) GetByID(id uint) (*entity.Quiz, error) {
	var quiz entity.Quiz
	err := r.db.First(&quiz, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &quiz, nil
}

// GetWithQuestions возвращает викторину вместе с вопросами в сохраненном порядке
func (r *QuizRepo) GetWithQuestions(id uint) (*entity.Quiz, error) {
	var quiz entity.Quiz
	err := r.db.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC, id ASC")
	}).First(&quiz, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &quiz, nil
}

// List возвращает викторины под фильтрами, отсортированные по названию.
// Отсутствие совпадений — пустой слайс, не ошибка.
func (r *QuizRepo) List(filters repository.QuizFilters) ([]entity.Quiz, error) {
	var quizzes []entity.Quiz

	query := r.db.Model(&entity.Quiz{})

	if filters.Level != "" {
		query = query.Where("LOWER(level) = LOWER(?)", filters.Level)
	}

	if filters.Technology != "" {
		// technologies хранится как JSONB-массив строк; для регистронезависимого
		// поиска по вхождению достаточно каста к тексту
		query = query.Where("technologies::text ILIKE ?", "%"+filters.Technology+"%")
	}

	if filters.Search != "" {
		search := "%" + filters.Search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", search, search)
	}

	err := query.Order("title ASC").Find(&quizzes).Error
	return quizzes, err
}

// QuestionRepo реализует repository.QuestionRepository
type QuestionRepo struct {
	db *gorm.DB
}

// NewQuestionRepo создает новый репозиторий вопросов
func NewQuestionRepo(db *gorm.DB) *QuestionRepo {
	return &QuestionRepo{db: db}
}

// GetByQuizID возвращает вопросы викторины в сохраненном порядке
func (r *QuestionRepo) GetByQuizID(quizID uint) ([]entity.Question, error) {
	var questions []entity.Question
	err := r.db.Where("quiz_id = ?", quizID).
		Order("position ASC, id ASC").
		Find(&questions).Error
	return questions, err
}
