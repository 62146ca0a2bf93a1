package entity

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Уровни сложности викторины
const (
	QuizLevelEasy   = "Easy"
	QuizLevelMedium = "Medium"
	QuizLevelHard   = "Hard"
)

// Quiz представляет определение викторины: набор вопросов с порогом
// прохождения и ограничением по времени. Для идущего экзамена считается
// неизменяемым.
type Quiz struct {
	ID             uint        `gorm:"primaryKey" json:"id"`
	Title          string      `gorm:"size:100;not null" json:"title"`
	Description    string      `gorm:"size:500;not null;default:''" json:"description"`
	Level          string      `gorm:"size:20;not null;default:'Easy';index" json:"level"`
	TimeLimitMin   int         `gorm:"not null;default:30" json:"time_limit_min"`
	PassMarks      int         `gorm:"not null" json:"pass_marks"`
	TotalQuestions int         `gorm:"not null;default:0" json:"total_questions"`
	Technologies   StringArray `gorm:"type:jsonb;not null" json:"technologies"`
	Questions      []Question  `gorm:"foreignKey:QuizID" json:"questions,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Quiz) TableName() string {
	return "quizzes"
}

// BeforeSave поддерживает инвариант total_questions == len(questions)
func (q *Quiz) BeforeSave(tx *gorm.DB) error {
	if len(q.Questions) > 0 {
		q.TotalQuestions = len(q.Questions)
	}
	return nil
}

// IsValidLevel проверяет, что уровень входит в допустимый enum
func IsValidLevel(level string) bool {
	switch level {
	case QuizLevelEasy, QuizLevelMedium, QuizLevelHard:
		return true
	}
	return false
}

// NormalizeLevel приводит уровень к каноническому написанию enum
// ("easy" → "Easy"). Пустая строка и неизвестные значения возвращаются как есть.
func NormalizeLevel(level string) string {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "easy":
		return QuizLevelEasy
	case "medium":
		return QuizLevelMedium
	case "hard":
		return QuizLevelHard
	}
	return level
}

// HasTechnology проверяет, содержит ли викторина тег технологии
// (регистронезависимое вхождение подстроки)
func (q *Quiz) HasTechnology(tech string) bool {
	needle := strings.ToLower(strings.TrimSpace(tech))
	if needle == "" {
		return true
	}
	for _, t := range q.Technologies {
		if strings.Contains(strings.ToLower(t), needle) {
			return true
		}
	}
	return false
}

// SessionDuration возвращает длительность экзаменационной сессии
func (q *Quiz) SessionDuration() time.Duration {
	return time.Duration(q.TimeLimitMin) * time.Minute
}
