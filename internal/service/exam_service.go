package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/yourusername/quizexam-api/internal/domain/entity"
	"github.com/yourusername/quizexam-api/internal/domain/repository"
	apperrors "github.com/yourusername/quizexam-api/internal/pkg/errors"
	"github.com/yourusername/quizexam-api/internal/pkg/idgen"
)

// TxRunner выполняет функцию в рамках одной транзакции БД
type TxRunner func(fn func(tx *gorm.DB) error) error

// ExamService управляет жизненным циклом экзаменационных сессий:
// выдача токена, проверка доступа к вопросам, прием и оценка ответов.
type ExamService struct {
	quizRepo     repository.QuizRepository
	questionRepo repository.QuestionRepository
	sessionRepo  repository.ExamSessionRepository
	resultRepo   repository.ResultRepository
	userRepo     repository.UserRepository
	idGen        idgen.Generator
	emailService EmailService
	runTx        TxRunner
}

// NewExamService создает новый сервис экзаменов
func NewExamService(
	quizRepo repository.QuizRepository,
	questionRepo repository.QuestionRepository,
	sessionRepo repository.ExamSessionRepository,
	resultRepo repository.ResultRepository,
	userRepo repository.UserRepository,
	idGen idgen.Generator,
	emailService EmailService,
	db *gorm.DB,
) *ExamService {
	return &ExamService{
		quizRepo:     quizRepo,
		questionRepo: questionRepo,
		sessionRepo:  sessionRepo,
		resultRepo:   resultRepo,
		userRepo:     userRepo,
		idGen:        idGen,
		emailService: emailService,
		runTx: func(fn func(tx *gorm.DB) error) error {
			return db.Transaction(fn)
		},
	}
}

// StartSession выдает сессию для сдачи квиза. Операция идемпотентна:
// повторный запрос при живой сессии возвращает ее же, а не создает новую.
// Инвариант "не более одной активной сессии на пару (пользователь, квиз)"
// обеспечивается частичным уникальным индексом в БД, поэтому гонка двух
// конкурентных запросов разрешается на стороне PostgreSQL.
func (s *ExamService) StartSession(userID, quizID uint) (*entity.ExamSession, error) {
	quiz, err := s.quizRepo.GetByID(quizID)
	if err != nil {
		return nil, err
	}

	now := time.Now()

	// Проверяем существующую активную сессию
	existing, err := s.sessionRepo.GetActive(userID, quizID)
	if err == nil {
		if existing.IsUsable(now) {
			return existing, nil
		}
		// Сессия истекла, но не была сдана: закрываем ее, чтобы
		// освободить место под новую. Записи сессий не удаляются.
		if closeErr := s.sessionRepo.Close(existing.ID); closeErr != nil &&
			!errors.Is(closeErr, repository.ErrSessionAlreadySubmitted) {
			return nil, fmt.Errorf("failed to close expired session: %w", closeErr)
		}
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	session := &entity.ExamSession{
		UserID:       userID,
		QuizID:       quizID,
		SessionToken: s.idGen.NewToken(),
		StartedAt:    now,
		ExpiresAt:    now.Add(quiz.SessionDuration()),
	}

	if err := s.sessionRepo.Create(session); err != nil {
		if errors.Is(err, repository.ErrActiveSessionExists) {
			// Конкурентный запрос успел создать сессию первым — возвращаем ее
			log.Printf("[ExamService] Конкурентный старт сессии user=%d quiz=%d, возвращаем существующую", userID, quizID)
			return s.sessionRepo.GetActive(userID, quizID)
		}
		return nil, fmt.Errorf("failed to create exam session: %w", err)
	}

	return session, nil
}

// ValidateSession проверяет, что токен дает доступ к квизу:
// сессия существует, принадлежит пользователю, относится к этому квизу,
// не сдана и не истекла. Любое нарушение — ErrForbidden.
func (s *ExamService) ValidateSession(userID, quizID uint, token string) (*entity.ExamSession, error) {
	if token == "" {
		return nil, fmt.Errorf("session token is required: %w", apperrors.ErrForbidden)
	}

	session, err := s.sessionRepo.GetByToken(userID, quizID, token)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Чужой, несуществующий или уже использованный токен неразличимы
			return nil, fmt.Errorf("session not found or already used: %w", apperrors.ErrForbidden)
		}
		return nil, err
	}

	if session.IsExpired(time.Now()) {
		return nil, fmt.Errorf("session expired: %w", apperrors.ErrForbidden)
	}

	return session, nil
}

// GetQuestions возвращает вопросы квиза для активной сессии.
// Без валидного токена вопросы недоступны.
func (s *ExamService) GetQuestions(userID, quizID uint, token string) ([]entity.Question, error) {
	if _, err := s.ValidateSession(userID, quizID, token); err != nil {
		return nil, err
	}
	return s.questionRepo.GetByQuizID(quizID)
}

// Submit принимает ответы, оценивает их и сохраняет результат.
// Сессия помечается сданной условным UPDATE в одной транзакции
// с записью результата: повторная отправка по тому же токену
// гарантированно не создаст дубликат результата.
func (s *ExamService) Submit(userID, quizID uint, token string, answers []string) (*entity.Result, error) {
	session, err := s.ValidateSession(userID, quizID, token)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	quiz, err := s.quizRepo.GetWithQuestions(quizID)
	if err != nil {
		return nil, err
	}

	grade := Grade(quiz, quiz.Questions, answers)
	result := BuildResult(user, quiz, grade, time.Now())

	err = s.runTx(func(tx *gorm.DB) error {
		// Сначала забираем сессию: если RowsAffected == 0, результат
		// уже записан другим запросом и вставка не выполняется
		if err := s.sessionRepo.MarkSubmitted(tx, session.ID); err != nil {
			return err
		}
		return s.resultRepo.Save(tx, result)
	})
	if err != nil {
		if errors.Is(err, repository.ErrSessionAlreadySubmitted) {
			return nil, fmt.Errorf("session already submitted: %w", apperrors.ErrForbidden)
		}
		return nil, fmt.Errorf("failed to save result: %w", err)
	}

	// Уведомление о сдаче отправляется best-effort: ошибка отправки
	// не влияет на ответ пользователю
	if result.Pass {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := s.emailService.SendPassNotification(ctx, user, result); err != nil {
				log.Printf("[ExamService] Не удалось отправить уведомление о сдаче user=%d result=%d: %v", user.ID, result.ID, err)
			}
		}()
	}

	return result, nil
}
