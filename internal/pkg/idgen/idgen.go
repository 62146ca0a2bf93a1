package idgen

import (
	"fmt"

	"github.com/google/uuid"
)

// Generator выдает уникальные идентификаторы (токены сессий, серийные номера
// сертификатов). Выделен в интерфейс, чтобы в тестах подставлять
// детерминированную реализацию.
type Generator interface {
	// NewToken возвращает новый уникальный токен (UUID v4).
	NewToken() string
	// NewCertificateSerial возвращает серийный номер сертификата вида CERT-XXXXXXXX.
	NewCertificateSerial() string
}

// UUIDGenerator — реализация Generator на основе google/uuid.
type UUIDGenerator struct{}

// NewUUIDGenerator создает новый генератор идентификаторов
func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) NewToken() string {
	return uuid.NewString()
}

func (g *UUIDGenerator) NewCertificateSerial() string {
	u := uuid.New()
	// Первые 4 байта UUID достаточно для человекочитаемого серийника
	return fmt.Sprintf("CERT-%08X", u.ID())
}
