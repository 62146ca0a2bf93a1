package service

import (
	"fmt"
	"time"

	"github.com/yourusername/quizexam-api/internal/certificate"
	"github.com/yourusername/quizexam-api/internal/domain/repository"
	apperrors "github.com/yourusername/quizexam-api/internal/pkg/errors"
	"github.com/yourusername/quizexam-api/internal/pkg/idgen"
)

// CertificateService готовит данные для генерации сертификатов.
// Проверка прав (владение результатом, сданный экзамен) выполняется здесь,
// рендерер остается чистой функцией.
type CertificateService struct {
	resultRepo repository.ResultRepository
	renderer   *certificate.Renderer
	idGen      idgen.Generator
}

// NewCertificateService создает новый сервис сертификатов
func NewCertificateService(
	resultRepo repository.ResultRepository,
	renderer *certificate.Renderer,
	idGen idgen.Generator,
) *CertificateService {
	return &CertificateService{
		resultRepo: resultRepo,
		renderer:   renderer,
		idGen:      idGen,
	}
}

// GenerateAdHoc рендерит сертификат из переданных клиентом данных
// без обращения к хранилищу результатов. Дата выдачи — текущий момент.
func (s *CertificateService) GenerateAdHoc(name, quizTitle string, score int) ([]byte, error) {
	if name == "" || quizTitle == "" {
		return nil, fmt.Errorf("name and quiz title are required: %w", apperrors.ErrValidation)
	}

	return s.renderer.Render(certificate.Data{
		Name:      name,
		QuizTitle: quizTitle,
		Score:     score,
		Serial:    s.idGen.NewCertificateSerial(),
		IssueDate: time.Now(),
	})
}

// GenerateForResult рендерит сертификат по сохраненному результату.
// Результат должен принадлежать пользователю и иметь pass == true;
// дата выдачи — момент завершения экзамена.
func (s *CertificateService) GenerateForResult(userID, resultID uint) ([]byte, error) {
	result, err := s.resultRepo.GetByID(resultID)
	if err != nil {
		return nil, err
	}

	if result.UserID != userID {
		return nil, fmt.Errorf("result %d does not belong to user %d: %w", resultID, userID, apperrors.ErrForbidden)
	}
	if !result.Pass {
		return nil, fmt.Errorf("certificate is available only for passed exams: %w", apperrors.ErrForbidden)
	}

	return s.renderer.Render(certificate.Data{
		Name:      result.Username,
		QuizTitle: result.QuizTitle,
		Score:     result.Score,
		Serial:    s.idGen.NewCertificateSerial(),
		IssueDate: result.CompletedAt,
	})
}
