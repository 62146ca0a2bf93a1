package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/quizexam-api/internal/certificate"
	"github.com/yourusername/quizexam-api/internal/domain/entity"
	apperrors "github.com/yourusername/quizexam-api/internal/pkg/errors"
)

func createTestCertificateService(resultRepo *MockResultRepository) *CertificateService {
	return NewCertificateService(resultRepo, certificate.NewRenderer(""), &fakeIDGenerator{})
}

func TestCertificateService_GenerateAdHoc_ProducesPDF(t *testing.T) {
	svc := createTestCertificateService(new(MockResultRepository))

	pdfBytes, err := svc.GenerateAdHoc("Алия Смагулова", "Go Basics", 8)

	require.NoError(t, err)
	require.NotEmpty(t, pdfBytes)
	// PDF всегда начинается с сигнатуры %PDF-
	assert.Equal(t, "%PDF-", string(pdfBytes[:5]))
}

func TestCertificateService_GenerateAdHoc_RequiresNameAndTitle(t *testing.T) {
	svc := createTestCertificateService(new(MockResultRepository))

	_, err := svc.GenerateAdHoc("", "Go Basics", 8)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = svc.GenerateAdHoc("Алия", "", 8)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestCertificateService_GenerateForResult_Success(t *testing.T) {
	mockResultRepo := new(MockResultRepository)
	mockResultRepo.On("GetByID", uint(3)).Return(&entity.Result{
		ID:          3,
		UserID:      1,
		Username:    "alice",
		QuizTitle:   "SQL Basics",
		Score:       9,
		Pass:        true,
		CompletedAt: time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC),
	}, nil)

	svc := createTestCertificateService(mockResultRepo)

	pdfBytes, err := svc.GenerateForResult(1, 3)

	require.NoError(t, err)
	assert.Equal(t, "%PDF-", string(pdfBytes[:5]))
}

func TestCertificateService_GenerateForResult_ForbiddenForFailedExam(t *testing.T) {
	// Сертификат выдается только за сданный экзамен
	mockResultRepo := new(MockResultRepository)
	mockResultRepo.On("GetByID", uint(3)).Return(&entity.Result{
		ID:     3,
		UserID: 1,
		Pass:   false,
	}, nil)

	svc := createTestCertificateService(mockResultRepo)

	_, err := svc.GenerateForResult(1, 3)

	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestCertificateService_GenerateForResult_ForbiddenForForeignResult(t *testing.T) {
	mockResultRepo := new(MockResultRepository)
	mockResultRepo.On("GetByID", uint(3)).Return(&entity.Result{
		ID:     3,
		UserID: 42,
		Pass:   true,
	}, nil)

	svc := createTestCertificateService(mockResultRepo)

	_, err := svc.GenerateForResult(1, 3)

	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestCertificateService_GenerateForResult_NotFound(t *testing.T) {
	mockResultRepo := new(MockResultRepository)
	mockResultRepo.On("GetByID", uint(99)).Return(nil, apperrors.ErrNotFound)

	svc := createTestCertificateService(mockResultRepo)

	_, err := svc.GenerateForResult(1, 99)

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
