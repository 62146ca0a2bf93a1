package entity

import (
	"time"
)

// ExamSession представляет одну попытку прохождения викторины: одноразовый
// токен доступа с ограничением по времени.
//
// Жизненный цикл: Active → Submitted (терминальное состояние). Сессии никогда
// не удаляются — история попыток сохраняется как audit trail. Инвариант
// «не более одной активной сессии на пару (user, quiz)» обеспечивается
// частичным уникальным индексом idx_active_session (см. миграции).
type ExamSession struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"not null;index" json:"user_id"`
	QuizID       uint      `gorm:"not null;index" json:"quiz_id"`
	SessionToken string    `gorm:"size:64;not null;uniqueIndex" json:"session_token"`
	StartedAt    time.Time `gorm:"not null" json:"started_at"`
	ExpiresAt    time.Time `gorm:"not null" json:"expires_at"`
	IsSubmitted  bool      `gorm:"not null;default:false" json:"is_submitted"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (ExamSession) TableName() string {
	return "exam_sessions"
}

// IsExpired проверяет, истекла ли сессия к моменту now
func (s *ExamSession) IsExpired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// IsUsable проверяет, можно ли по сессии выдавать вопросы и принимать ответы:
// сессия не закрыта и не истекла
func (s *ExamSession) IsUsable(now time.Time) bool {
	return !s.IsSubmitted && !s.IsExpired(now)
}
