package repository

import (
	"time"
)

// CacheRepository определяет методы для работы с кешем каталога.
// Rate limiting работает с Redis напрямую и через этот интерфейс не ходит.
type CacheRepository interface {
	// SetJSON сохраняет структуру в кеше в виде JSON
	SetJSON(key string, value interface{}, expiration time.Duration) error
	// GetJSON читает структуру из кеша; промах — ErrNotFound
	GetJSON(key string, dest interface{}) error
	Delete(key string) error
}
