package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestGinContextWithQuery создает контекст с GET-запросом и query-строкой
func newTestGinContextWithQuery(rawQuery string) *gin.Context {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/user/passed-results?"+rawQuery, nil)
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	return c
}

func TestParseResultFilters_AllFilters(t *testing.T) {
	// Arrange
	c := newTestGinContextWithQuery("pass=true&quizId=7&level=Easy&startDate=2025-01-01&endDate=2025-01-31&minScore=2&maxScore=10")

	// Act
	filters, err := parseResultFilters(c)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, filters.Pass)
	assert.True(t, *filters.Pass)
	assert.Equal(t, uint(7), filters.QuizID)
	assert.Equal(t, "Easy", filters.Level)
	require.NotNil(t, filters.DateFrom)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), *filters.DateFrom)
	require.NotNil(t, filters.DateTo)
	assert.Equal(t, 31, filters.DateTo.Day(), "Фильтр по endDate должен включать весь день")
	assert.Equal(t, 23, filters.DateTo.Hour())
	require.NotNil(t, filters.MinScore)
	assert.Equal(t, 2, *filters.MinScore)
	require.NotNil(t, filters.MaxScore)
	assert.Equal(t, 10, *filters.MaxScore)
}

func TestParseResultFilters_EmptyQuery(t *testing.T) {
	// Arrange
	c := newTestGinContextWithQuery("")

	// Act
	filters, err := parseResultFilters(c)

	// Assert: отсутствующие параметры — это отсутствие фильтра, а не ошибка
	require.NoError(t, err)
	assert.Nil(t, filters.Pass)
	assert.Zero(t, filters.QuizID)
	assert.Nil(t, filters.DateFrom)
	assert.Nil(t, filters.DateTo)
	assert.Nil(t, filters.MinScore)
	assert.Nil(t, filters.MaxScore)
}

func TestParseResultFilters_MalformedValues(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"bad pass", "pass=maybe"},
		{"bad quizId", "quizId=abc"},
		{"bad startDate", "startDate=01.02.2025"},
		{"bad endDate", "endDate=tomorrow"},
		{"bad minScore", "minScore=two"},
		{"bad maxScore", "maxScore=1.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestGinContextWithQuery(tt.query)

			_, err := parseResultFilters(c)

			assert.Error(t, err, "Некорректное значение фильтра — ошибка клиента")
		})
	}
}

func TestSanitizeForExcel(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Go Basics", "Go Basics"},
		{"=1+1", "'=1+1"},
		{"+SUM(A1)", "'+SUM(A1)"},
		{"-2+3", "'-2+3"},
		{"@cmd", "'@cmd"},
		{"\tdata", "'\tdata"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, sanitizeForExcel(tt.input))
	}
}
