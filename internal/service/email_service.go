package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/resend/resend-go/v2"

	"github.com/yourusername/quizexam-api/internal/domain/entity"
)

// EmailService sends transactional emails.
type EmailService interface {
	SendPassNotification(ctx context.Context, user *entity.User, result *entity.Result) error
}

// NoopEmailService is used when email notifications are disabled.
type NoopEmailService struct{}

func (s *NoopEmailService) SendPassNotification(ctx context.Context, user *entity.User, result *entity.Result) error {
	log.Printf("[EmailService] noop send pass notification to=%s quiz=%q", user.Email, result.QuizTitle)
	return nil
}

// ResendEmailService sends emails via Resend REST API.
type ResendEmailService struct {
	from   string
	client *resend.Client
}

func NewResendEmailService(apiKey, from string) (*ResendEmailService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("resend api key is required")
	}
	if from == "" {
		return nil, fmt.Errorf("email from is required")
	}
	return &ResendEmailService{
		from:   from,
		client: resend.NewClient(apiKey),
	}, nil
}

func (s *ResendEmailService) SendPassNotification(ctx context.Context, user *entity.User, result *entity.Result) error {
	if user.Email == "" {
		return fmt.Errorf("user email is required")
	}

	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{user.Email},
		Subject: fmt.Sprintf("Поздравляем со сдачей экзамена %q", result.QuizTitle),
		Text: fmt.Sprintf(
			"Здравствуйте, %s!\n\nВы успешно сдали экзамен %q с результатом %d из %d.\nСертификат доступен в личном кабинете.",
			user.Username, result.QuizTitle, result.Score, result.TotalQuestions,
		),
		Html: fmt.Sprintf(
			"<p>Здравствуйте, <strong>%s</strong>!</p><p>Вы успешно сдали экзамен <strong>%s</strong> с результатом %d из %d.</p><p>Сертификат доступен в личном кабинете.</p>",
			user.Username, result.QuizTitle, result.Score, result.TotalQuestions,
		),
	}

	// Ключ идемпотентности привязан к результату: ретраи не задублируют письмо
	options := &resend.SendEmailOptions{
		IdempotencyKey: fmt.Sprintf("pass-notification-%d", result.ID),
	}

	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		_, err := s.client.Emails.SendWithOptions(ctx, params, options)
		if err == nil {
			return nil
		}
		lastErr = err

		if wait, ok := resendRetryDelay(err, attempt); ok {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
				continue
			}
		}

		return fmt.Errorf("resend send failed: %w", err)
	}

	return fmt.Errorf("resend send failed after retries: %w", lastErr)
}

func resendRetryDelay(err error, attempt int) (time.Duration, bool) {
	var rateLimitErr *resend.RateLimitError
	if errors.As(err, &rateLimitErr) {
		if seconds, convErr := strconv.Atoi(strings.TrimSpace(rateLimitErr.RetryAfter)); convErr == nil && seconds > 0 {
			if seconds > 30 {
				seconds = 30
			}
			return time.Duration(seconds) * time.Second, true
		}
		return time.Duration(attempt+1) * time.Second, true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && (netErr.Timeout() || netErr.Temporary()) {
		return time.Duration(attempt+1) * 500 * time.Millisecond, true
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "timeout") || strings.Contains(msg, "temporar") {
		return time.Duration(attempt+1) * 500 * time.Millisecond, true
	}

	return 0, false
}
