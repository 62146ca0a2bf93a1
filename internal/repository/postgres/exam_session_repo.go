package postgres

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/yourusername/quizexam-api/internal/domain/entity"
	"github.com/yourusername/quizexam-api/internal/domain/repository"
	apperrors "github.com/yourusername/quizexam-api/internal/pkg/errors"
)

// ExamSessionRepo реализует repository.ExamSessionRepository
type ExamSessionRepo struct {
	db *gorm.DB
}

// NewExamSessionRepo создает новый репозиторий экзаменационных сессий
func NewExamSessionRepo(db *gorm.DB) *ExamSessionRepo {
	return &ExamSessionRepo{db: db}
}

// Create сохраняет новую сессию.
// Partial unique index idx_active_session гарантирует max 1 незакрытую сессию
// на пару (user, quiz):
// - 23505 (unique violation) → ErrActiveSessionExists, вызывающий код
//   перечитывает существующую сессию
// - Другая DB ошибка → возвращается как есть
func (r *ExamSessionRepo) Create(session *entity.ExamSession) error {
	if err := r.db.Create(session).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: user #%d, quiz #%d",
				repository.ErrActiveSessionExists, session.UserID, session.QuizID)
		}
		return err
	}
	return nil
}

// GetActive возвращает незакрытую сессию пары (user, quiz)
func (r *ExamSessionRepo) GetActive(userID, quizID uint) (*entity.ExamSession, error) {
	var session entity.ExamSession
	err := r.db.Where("user_id = ? AND quiz_id = ? AND is_submitted = false", userID, quizID).
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &session, nil
}

// GetByToken возвращает незакрытую сессию с точным совпадением токена
// для пары (user, quiz)
func (r *ExamSessionRepo) GetByToken(userID, quizID uint, token string) (*entity.ExamSession, error) {
	var session entity.ExamSession
	err := r.db.Where(
		"user_id = ? AND quiz_id = ? AND session_token = ? AND is_submitted = false",
		userID, quizID, token,
	).First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &session, nil
}

// Close помечает сессию закрытой (ленивое закрытие истекшей сессии перед
// созданием новой). Условный UPDATE, чтобы не гонять уже закрытую запись.
func (r *ExamSessionRepo) Close(sessionID uint) error {
	return r.markSubmitted(r.db, sessionID)
}

// MarkSubmitted атомарно переводит сессию Active → Submitted В ПЕРЕДАННОЙ ТРАНЗАКЦИИ.
// - RowsAffected == 0 → ErrSessionAlreadySubmitted: сессию уже закрыл
//   конкурентный запрос, результат записывать нельзя
// - Другая DB ошибка → возвращается как есть
func (r *ExamSessionRepo) MarkSubmitted(tx *gorm.DB, sessionID uint) error {
	return r.markSubmitted(tx, sessionID)
}

func (r *ExamSessionRepo) markSubmitted(db *gorm.DB, sessionID uint) error {
	result := db.Model(&entity.ExamSession{}).
		Where("id = ? AND is_submitted = false", sessionID).
		Update("is_submitted", true)

	if result.Error != nil {
		return fmt.Errorf("mark session #%d submitted failed: %w", sessionID, result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: session #%d", repository.ErrSessionAlreadySubmitted, sessionID)
	}

	return nil
}

// isUniqueViolation проверяет Postgres unique violation (23505) для pgconn и lib/pq драйверов
func isUniqueViolation(err error) bool {
	// pgx/v5 driver (pgconn.PgError)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	// lib/pq driver
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return true
	}
	return false
}
