package handler

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/yourusername/quizexam-api/internal/pkg/errors"
	"github.com/yourusername/quizexam-api/internal/service"
)

// CertificateHandler обрабатывает запросы генерации PDF-сертификатов
type CertificateHandler struct {
	certService *service.CertificateService
}

// NewCertificateHandler создает новый обработчик сертификатов
func NewCertificateHandler(certService *service.CertificateService) *CertificateHandler {
	return &CertificateHandler{certService: certService}
}

// GenerateCertificateRequest представляет запрос на генерацию
// сертификата по переданным данным
type GenerateCertificateRequest struct {
	Name      string `json:"name" binding:"required,min=1,max=100"`
	QuizTitle string `json:"quizTitle" binding:"required,min=1,max=255"`
	Score     int    `json:"score" binding:"min=0"`
}

// GenerateCertificate генерирует сертификат без обращения к хранилищу результатов
// POST /certificate
func (h *CertificateHandler) GenerateCertificate(c *gin.Context) {
	var req GenerateCertificateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	pdfBytes, err := h.certService.GenerateAdHoc(req.Name, req.QuizTitle, req.Score)
	if err != nil {
		h.handleCertificateError(c, err)
		return
	}

	h.writePDF(c, pdfBytes, req.Name)
}

// DownloadCertificateRequest представляет запрос на сертификат
// по сохраненному результату
type DownloadCertificateRequest struct {
	ResultID uint `json:"resultId" binding:"required"`
}

// DownloadCertificate генерирует сертификат по сданному результату пользователя
// POST /certificate/download
func (h *CertificateHandler) DownloadCertificate(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)

	var req DownloadCertificateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	pdfBytes, err := h.certService.GenerateForResult(userID, req.ResultID)
	if err != nil {
		h.handleCertificateError(c, err)
		return
	}

	h.writePDF(c, pdfBytes, fmt.Sprintf("result_%d", req.ResultID))
}

// writePDF отдает PDF как скачиваемый файл
func (h *CertificateHandler) writePDF(c *gin.Context, pdfBytes []byte, nameHint string) {
	filename := fmt.Sprintf("Certificate_%s.pdf", strings.ReplaceAll(nameHint, " ", "_"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

// handleCertificateError обрабатывает типичные ошибки сервиса сертификатов
func (h *CertificateHandler) handleCertificateError(c *gin.Context, err error) {
	if errors.Is(err, apperrors.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
	} else if errors.Is(err, apperrors.ErrForbidden) {
		c.JSON(http.StatusForbidden, gin.H{"message": err.Error()})
	} else if errors.Is(err, apperrors.ErrValidation) {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	} else {
		log.Printf("ERROR: Internal server error in CertificateHandler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
	}
}
