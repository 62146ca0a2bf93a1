package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// AnswerDetail — разбор одного вопроса в составе результата: что спрашивали,
// что ответил пользователь и был ли ответ верным. Правильный ответ здесь
// раскрывается намеренно — экзамен уже завершен.
type AnswerDetail struct {
	QuestionText  string   `json:"question_text"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	UserAnswer    string   `json:"user_answer"`
	IsCorrect     bool     `json:"is_correct"`
}

// AnswerDetailArray - пользовательский тип для хранения разбора в JSONB
type AnswerDetailArray []AnswerDetail

// Scan реализует интерфейс sql.Scanner для AnswerDetailArray
func (a *AnswerDetailArray) Scan(value interface{}) error {
	if value == nil {
		*a = AnswerDetailArray{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to unmarshal JSONB value: expected []byte")
	}

	if len(bytes) == 0 {
		*a = AnswerDetailArray{}
		return nil
	}

	return json.Unmarshal(bytes, a)
}

// Value реализует интерфейс driver.Valuer для AnswerDetailArray
func (a AnswerDetailArray) Value() (driver.Value, error) {
	if a == nil || len(a) == 0 {
		return []byte("[]"), nil
	}
	return json.Marshal(a)
}

// Result представляет сохраненный итог завершенной и оцененной попытки.
// Запись неизменяема: результаты никогда не редактируются и не удаляются.
// Название, уровень и технологии викторины снапшотятся на момент оценки,
// чтобы история оставалась достоверной даже после правки или удаления викторины.
type Result struct {
	ID             uint              `gorm:"primaryKey" json:"id"`
	UserID         uint              `gorm:"not null;index" json:"user_id"`
	Username       string            `gorm:"size:50;not null" json:"username"`
	QuizID         uint              `gorm:"not null;index" json:"quiz_id"`
	QuizTitle      string            `gorm:"size:100;not null" json:"quiz_title"`
	Level          string            `gorm:"size:20;not null" json:"level"`
	Technologies   StringArray       `gorm:"type:jsonb;not null" json:"technologies"`
	Score          int               `gorm:"not null;default:0" json:"score"`
	Pass           bool              `gorm:"not null;default:false;index" json:"pass"`
	CorrectCount   int               `gorm:"not null;default:0" json:"correct_count"`
	WrongCount     int               `gorm:"not null;default:0" json:"wrong_count"`
	TotalQuestions int               `gorm:"not null;default:0" json:"total_questions"`
	Details        AnswerDetailArray `gorm:"type:jsonb;not null" json:"details"`
	CompletedAt    time.Time         `gorm:"not null;index" json:"completed_at"`
	CreatedAt      time.Time         `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (Result) TableName() string {
	return "results"
}
