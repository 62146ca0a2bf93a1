package middleware

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// RateLimitConfig содержит настройки rate limiting
type RateLimitConfig struct {
	// MaxRequests — максимальное количество запросов за Window
	MaxRequests int
	// Window — временное окно для подсчёта запросов
	Window time.Duration
	// KeyPrefix — префикс для ключей в Redis
	KeyPrefix string
	// PerUser — считать лимит по аутентифицированному пользователю,
	// а не по IP (требует RequireAuth раньше в цепочке)
	PerUser bool
}

// DefaultRateLimitConfig возвращает конфигурацию по умолчанию для API endpoints
func DefaultRateLimitConfig(maxRequests int) RateLimitConfig {
	if maxRequests <= 0 {
		maxRequests = 60
	}
	return RateLimitConfig{
		MaxRequests: maxRequests,
		Window:      1 * time.Minute,
		KeyPrefix:   "rl:api",
	}
}

// StrictAuthRateLimitConfig — строгий лимит для login/register (защита от brute-force)
func StrictAuthRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		MaxRequests: 5,               // 5 попыток
		Window:      1 * time.Minute, // за 1 минуту
		KeyPrefix:   "rl:auth:strict",
	}
}

// SubmitRateLimitConfig — лимит для сдачи экзаменов, считается на пользователя
func SubmitRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		MaxRequests: 10,
		Window:      1 * time.Minute,
		KeyPrefix:   "rl:submit",
		PerUser:     true,
	}
}

// RateLimiter создаёт middleware для rate limiting на основе Redis
type RateLimiter struct {
	redisClient redis.UniversalClient
}

// NewRateLimiter создает новый RateLimiter
func NewRateLimiter(redisClient redis.UniversalClient) *RateLimiter {
	return &RateLimiter{redisClient: redisClient}
}

// limiterKey формирует ключ Redis: префикс + идентичность + endpoint path.
// Идентичность — user_id для PerUser-лимитов (если клиент аутентифицирован),
// иначе IP клиента.
func limiterKey(cfg RateLimitConfig, c *gin.Context) string {
	identity := c.ClientIP()
	if cfg.PerUser {
		if userID, exists := c.Get("user_id"); exists {
			identity = fmt.Sprintf("user:%d", userID)
		}
	}

	path := c.FullPath() // Gin route pattern, e.g. "/api/quiz/submit"
	if path == "" {
		path = c.Request.URL.Path
	}

	return fmt.Sprintf("%s:%s:%s", cfg.KeyPrefix, identity, path)
}

// Limit возвращает Gin middleware с заданной конфигурацией
func (rl *RateLimiter) Limit(cfg RateLimitConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := limiterKey(cfg, c)

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		// Инкрементируем счётчик
		count, err := rl.redisClient.Incr(ctx, key).Result()
		if err != nil {
			// При ошибке Redis пропускаем запрос (fail-open), но логируем
			log.Printf("[RateLimiter] Redis error for key %s: %v. Allowing request (fail-open).", key, err)
			c.Next()
			return
		}

		// Если это первый запрос в окне — устанавливаем TTL
		if count == 1 {
			if err := rl.redisClient.Expire(ctx, key, cfg.Window).Err(); err != nil {
				log.Printf("[RateLimiter] Failed to set TTL for key %s: %v", key, err)
			}
		}

		// Устанавливаем заголовки rate limit
		remaining := cfg.MaxRequests - int(count)
		if remaining < 0 {
			remaining = 0
		}

		ttl, _ := rl.redisClient.TTL(ctx, key).Result()
		retryAfter := int(ttl.Seconds())
		if retryAfter < 0 {
			retryAfter = int(cfg.Window.Seconds())
		}

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", cfg.MaxRequests))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))
		c.Header("X-RateLimit-Reset", fmt.Sprintf("%d", retryAfter))

		// Проверяем лимит
		if int(count) > cfg.MaxRequests {
			log.Printf("[RateLimiter] Rate limit exceeded for key=%s. Count=%d, Limit=%d",
				key, count, cfg.MaxRequests)

			c.Header("Retry-After", fmt.Sprintf("%d", retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"message":     "Too many requests. Please try again later.",
				"retry_after": retryAfter,
			})
			return
		}

		c.Next()
	}
}
