package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExamSession_IsExpired(t *testing.T) {
	// Arrange
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	session := &ExamSession{
		ExpiresAt: now.Add(30 * time.Minute),
	}

	// Act & Assert
	assert.False(t, session.IsExpired(now), "Сессия не истекла в момент старта")
	assert.False(t, session.IsExpired(now.Add(30*time.Minute)), "Граница действия включительна")
	assert.True(t, session.IsExpired(now.Add(30*time.Minute+time.Second)), "Сессия истекла после дедлайна")
}

func TestExamSession_IsUsable(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	testCases := []struct {
		name     string
		session  ExamSession
		expected bool
	}{
		{
			name:     "активная сессия",
			session:  ExamSession{ExpiresAt: now.Add(time.Hour), IsSubmitted: false},
			expected: true,
		},
		{
			name:     "закрытая сессия",
			session:  ExamSession{ExpiresAt: now.Add(time.Hour), IsSubmitted: true},
			expected: false,
		},
		{
			name:     "истекшая сессия",
			session:  ExamSession{ExpiresAt: now.Add(-time.Minute), IsSubmitted: false},
			expected: false,
		},
		{
			name:     "истекшая и закрытая",
			session:  ExamSession{ExpiresAt: now.Add(-time.Minute), IsSubmitted: true},
			expected: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.session.IsUsable(now))
		})
	}
}

func TestExamSession_TableName(t *testing.T) {
	session := ExamSession{}
	assert.Equal(t, "exam_sessions", session.TableName(), "TableName должен возвращать 'exam_sessions'")
}
