package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newLimiterTestContext(path string) *gin.Context {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", path, nil)
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	return c
}

func TestLimiterKey_PerUserUsesAuthenticatedUser(t *testing.T) {
	// Arrange: RequireAuth уже положил user_id в контекст
	c := newLimiterTestContext("/api/quiz/submit")
	c.Set("user_id", uint(42))

	// Act
	key := limiterKey(SubmitRateLimitConfig(), c)

	// Assert: лимит сдачи считается на пользователя, не на IP —
	// общий NAT не должен блокировать соседей
	assert.Equal(t, "rl:submit:user:42:/api/quiz/submit", key)
}

func TestLimiterKey_PerUserFallsBackToIPWithoutAuth(t *testing.T) {
	c := newLimiterTestContext("/api/quiz/submit")

	key := limiterKey(SubmitRateLimitConfig(), c)

	assert.Contains(t, key, "rl:submit:")
	assert.NotContains(t, key, "user:", "Без аутентификации идентичность — IP клиента")
}

func TestLimiterKey_IPBasedConfigIgnoresUser(t *testing.T) {
	c := newLimiterTestContext("/api/auth/login")
	c.Set("user_id", uint(42))

	key := limiterKey(StrictAuthRateLimitConfig(), c)

	assert.NotContains(t, key, "user:42", "Лимиты login/register всегда по IP")
}
