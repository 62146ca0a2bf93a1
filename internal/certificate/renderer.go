// Package certificate реализует генерацию PDF-сертификатов о сдаче экзамена.
package certificate

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/go-pdf/fpdf"
)

// Data содержит все входные данные для генерации сертификата.
// Рендеринг детерминирован относительно Data: серийный номер и дата
// выдачи передаются снаружи, внутри нет обращений к часам или ГСЧ.
type Data struct {
	Name      string
	QuizTitle string
	Score     int
	Serial    string
	IssueDate time.Time
}

// Renderer генерирует PDF-сертификаты по статическому шаблону
type Renderer struct {
	logoPath string
}

// NewRenderer создает рендерер сертификатов.
// logoPath может указывать на отсутствующий файл: логотип в этом случае
// пропускается без ошибки.
func NewRenderer(logoPath string) *Renderer {
	return &Renderer{logoPath: logoPath}
}

// Render генерирует PDF-сертификат и возвращает его содержимое
func (r *Renderer) Render(data Data) ([]byte, error) {
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(50, 50, 50)
	pdf.AddPage()

	pageW, pageH := pdf.GetPageSize()

	// Декоративная рамка по периметру
	pdf.SetLineWidth(4)
	pdf.SetDrawColor(0x00, 0x33, 0x66)
	pdf.Rect(30, 30, pageW-60, pageH-60, "D")

	// Логотип компании (опционально)
	if r.logoPath != "" {
		if _, err := os.Stat(r.logoPath); err == nil {
			pdf.ImageOptions(r.logoPath, pageW/2-40, 45, 80, 0, false, fpdf.ImageOptions{}, 0, "")
			pdf.SetY(130)
		} else {
			log.Printf("[Certificate] Логотип %q недоступен, сертификат генерируется без него", r.logoPath)
		}
	}

	// Название компании
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(0x44, 0x44, 0x44)
	pdf.CellFormat(0, 20, "TechWorld Learning Pvt. Ltd.", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(0x66, 0x66, 0x66)
	pdf.CellFormat(0, 14, "CIN: U12345MH2023PTC456789", "", 1, "C", false, 0, "")

	pdf.Ln(40)

	// Заголовок сертификата
	pdf.SetFont("Helvetica", "B", 28)
	pdf.SetTextColor(0x00, 0x33, 0x66)
	pdf.CellFormat(0, 34, "Certificate of Completion", "", 1, "C", false, 0, "")

	pdf.Ln(40)

	pdf.SetFont("Helvetica", "", 14)
	pdf.SetTextColor(0x00, 0x00, 0x00)
	pdf.CellFormat(0, 18, "This is to certify that", "", 1, "C", false, 0, "")

	pdf.Ln(18)

	// Имя получателя с подчеркиванием
	pdf.SetFont("Helvetica", "BU", 22)
	pdf.SetTextColor(0x00, 0x66, 0xCC)
	pdf.CellFormat(0, 26, data.Name, "", 1, "C", false, 0, "")

	pdf.Ln(18)

	pdf.SetFont("Helvetica", "", 14)
	pdf.SetTextColor(0x00, 0x00, 0x00)
	pdf.CellFormat(0, 18, "has successfully completed the quiz titled", "", 1, "C", false, 0, "")

	pdf.Ln(8)

	pdf.SetFont("Helvetica", "I", 14)
	pdf.CellFormat(0, 18, fmt.Sprintf("%q", data.QuizTitle), "", 1, "C", false, 0, "")

	pdf.Ln(18)

	pdf.SetFont("Helvetica", "", 12)
	pdf.SetTextColor(0x44, 0x44, 0x44)
	pdf.CellFormat(0, 16, fmt.Sprintf("With a score of: %d", data.Score), "", 1, "C", false, 0, "")

	pdf.Ln(50)

	// Серийный номер в правом нижнем блоке
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(0x88, 0x88, 0x88)
	pdf.CellFormat(0, 14, fmt.Sprintf("Certificate ID: %s", data.Serial), "", 1, "R", false, 0, "")

	// Линия подписи и дата выдачи
	pdf.SetFont("Helvetica", "", 12)
	pdf.SetTextColor(0x00, 0x00, 0x00)
	pdf.Text(100, 650, "_________________________")
	pdf.Text(120, 670, "Authorized Signatory")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(0x55, 0x55, 0x55)
	pdf.Text(400, 670, fmt.Sprintf("Date of Issue: %s", data.IssueDate.Format("02.01.2006")))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render certificate: %w", err)
	}
	return buf.Bytes(), nil
}
