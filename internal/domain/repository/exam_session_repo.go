package repository

import (
	"gorm.io/gorm"

	"github.com/yourusername/quizexam-api/internal/domain/entity"
)

// ExamSessionRepository определяет методы для работы с экзаменационными сессиями
type ExamSessionRepository interface {
	// Create сохраняет новую сессию. Если для пары (user, quiz) уже есть
	// незакрытая сессия, возвращает ErrActiveSessionExists (частичный
	// уникальный индекс, а не проверка перед записью).
	Create(session *entity.ExamSession) error
	// GetActive возвращает незакрытую сессию пары (user, quiz) или ErrNotFound
	GetActive(userID, quizID uint) (*entity.ExamSession, error)
	// GetByToken возвращает незакрытую сессию с данным токеном для пары
	// (user, quiz) или ErrNotFound
	GetByToken(userID, quizID uint, token string) (*entity.ExamSession, error)
	// Close помечает сессию закрытой вне транзакции (ленивое закрытие
	// истекших сессий). RowsAffected == 0 → ErrSessionAlreadySubmitted.
	Close(sessionID uint) error
	// MarkSubmitted атомарно переводит сессию Active → Submitted В ПЕРЕДАННОЙ
	// ТРАНЗАКЦИИ. Условный UPDATE по is_submitted = false: если сессия уже
	// закрыта конкурентным запросом, возвращает ErrSessionAlreadySubmitted
	// и результат записывать нельзя.
	MarkSubmitted(tx *gorm.DB, sessionID uint) error
}
