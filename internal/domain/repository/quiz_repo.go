package repository

import (
	"github.com/yourusername/quizexam-api/internal/domain/entity"
)

// QuizFilters определяет фильтры каталога викторин
type QuizFilters struct {
	Level      string // Точное совпадение с уровнем (регистронезависимо)
	Technology string // Вхождение подстроки в любой из тегов технологий
	Search     string // Поиск по названию/описанию
}

// IsEmpty возвращает true, если ни один фильтр не задан
func (f QuizFilters) IsEmpty() bool {
	return f.Level == "" && f.Technology == "" && f.Search == ""
}

// QuizRepository определяет методы для работы с каталогом викторин
type QuizRepository interface {
	// Create создает викторину вместе с приложенными вопросами
	// в одной транзакции
	Create(quiz *entity.Quiz) error
	GetByID(id uint) (*entity.Quiz, error)
	GetWithQuestions(id uint) (*entity.Quiz, error)
	// List возвращает викторины, подходящие под фильтры, отсортированные
	// по названию по возрастанию. Пустые фильтры — весь каталог.
	List(filters QuizFilters) ([]entity.Quiz, error)
}

// QuestionRepository определяет методы для работы с вопросами
type QuestionRepository interface {
	// GetByQuizID возвращает вопросы викторины в сохраненном порядке
	GetByQuizID(quizID uint) ([]entity.Question, error)
}
