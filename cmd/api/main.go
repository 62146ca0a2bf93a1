package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yourusername/quizexam-api/internal/certificate"
	"github.com/yourusername/quizexam-api/internal/config"
	"github.com/yourusername/quizexam-api/internal/handler"
	"github.com/yourusername/quizexam-api/internal/middleware"
	"github.com/yourusername/quizexam-api/internal/pkg/idgen"
	pgRepo "github.com/yourusername/quizexam-api/internal/repository/postgres"
	redisRepo "github.com/yourusername/quizexam-api/internal/repository/redis"
	"github.com/yourusername/quizexam-api/internal/service"
	"github.com/yourusername/quizexam-api/pkg/auth"
	"github.com/yourusername/quizexam-api/pkg/database"
)

func main() {
	// Загружаем конфигурацию
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	log.Printf("Загрузка конфигурации из %s", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	// Инициализируем подключение к PostgreSQL
	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString())
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	// Применяем миграции
	if err := database.MigrateDB(db); err != nil {
		log.Printf("Failed to migrate database: %v", err)
		os.Exit(1)
	}

	// Инициализируем подключение к Redis
	redisClient, err := database.NewUniversalRedisClient(database.RedisConfig{
		Addrs:    cfg.Redis.AllAddrs(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Printf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}

	// Инициализируем репозитории
	userRepo := pgRepo.NewUserRepo(db)
	quizRepo := pgRepo.NewQuizRepo(db)
	questionRepo := pgRepo.NewQuestionRepo(db)
	sessionRepo := pgRepo.NewExamSessionRepo(db)
	resultRepo := pgRepo.NewResultRepo(db)

	cacheRepo, err := redisRepo.NewCacheRepo(redisClient)
	if err != nil {
		log.Printf("Failed to initialize CacheRepo: %v", err)
		os.Exit(1)
	}

	// Инициализируем JWT сервис
	jwtService, err := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpirationHrs)
	if err != nil {
		log.Printf("Failed to initialize JWTService: %v", err)
		os.Exit(1)
	}

	// Генератор токенов сессий и серийных номеров сертификатов
	idGenerator := idgen.NewUUIDGenerator()

	// Уведомления по email включаются конфигурацией
	var emailService service.EmailService = &service.NoopEmailService{}
	if cfg.Email.Enabled {
		from := cfg.Email.FromAddress
		if cfg.Email.FromName != "" {
			from = cfg.Email.FromName + " <" + cfg.Email.FromAddress + ">"
		}
		resendService, err := service.NewResendEmailService(cfg.Email.APIKey, from)
		if err != nil {
			log.Printf("Failed to initialize ResendEmailService: %v", err)
			os.Exit(1)
		}
		emailService = resendService
	}

	// Инициализируем сервисы
	authService := service.NewAuthService(userRepo, jwtService)
	quizService := service.NewQuizService(quizRepo, cacheRepo)
	examService := service.NewExamService(quizRepo, questionRepo, sessionRepo, resultRepo, userRepo, idGenerator, emailService, db)
	resultService := service.NewResultService(resultRepo, quizRepo)
	certService := service.NewCertificateService(resultRepo, certificate.NewRenderer(cfg.Certificate.LogoPath), idGenerator)

	// Инициализируем обработчики
	authHandler := handler.NewAuthHandler(authService)
	quizHandler := handler.NewQuizHandler(quizService, examService)
	resultHandler := handler.NewResultHandler(resultService)
	certHandler := handler.NewCertificateHandler(certService)

	// Инициализируем middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService)
	rateLimiter := middleware.NewRateLimiter(redisClient)

	// Инициализируем роутер Gin
	router := gin.Default()

	// Настройка доверенных прокси для корректной работы c.ClientIP()
	// В production (GIN_MODE=release): не доверяем прокси (защита от IP spoofing)
	// В development: доверяем localhost
	isProduction := gin.Mode() == gin.ReleaseMode
	if isProduction {
		if err := router.SetTrustedProxies(nil); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	} else {
		if err := router.SetTrustedProxies([]string{"127.0.0.1", "::1"}); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	}

	// Настройка CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", handler.SessionHeader},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Настраиваем маршруты API.
	// Общий лимит на все endpoints задается конфигурацией;
	// у login/register и submit свои, более строгие лимиты.
	api := router.Group("/api")
	api.Use(rateLimiter.Limit(middleware.DefaultRateLimitConfig(cfg.RateLimit.RequestsPerMinute)))
	{
		// Аутентификация
		authGroup := api.Group("/auth")
		{
			strictLimit := rateLimiter.Limit(middleware.StrictAuthRateLimitConfig())
			authGroup.POST("/register", strictLimit, authHandler.Register)
			authGroup.POST("/login", strictLimit, authHandler.Login)

			authedAuth := authGroup.Group("/")
			authedAuth.Use(authMiddleware.RequireAuth())
			{
				authedAuth.GET("/me", authHandler.Me)
			}
		}

		// Каталог квизов и экзаменационные сессии
		quiz := api.Group("/quiz")
		{
			quiz.GET("/list", quizHandler.ListQuizzes)

			quizInfo := quiz.Group("/info/:quizId")
			quizInfo.Use(authMiddleware.RequireAuth(), middleware.ExtractUintParam("quizId", "quizID"))
			{
				quizInfo.GET("", quizHandler.GetQuizInfo)
			}

			quizStart := quiz.Group("/start/:quizId")
			quizStart.Use(authMiddleware.RequireAuth(), middleware.ExtractUintParam("quizId", "quizID"))
			{
				quizStart.POST("", quizHandler.StartExam)
			}

			quiz.POST("/submit",
				authMiddleware.RequireAuth(),
				rateLimiter.Limit(middleware.SubmitRateLimitConfig()),
				quizHandler.SubmitQuiz,
			)

			// Вопросы выдаются только при валидной сессии;
			// маршрут объявлен последним, чтобы не перехватывать list/info/start
			quizExam := quiz.Group("/:quizId")
			quizExam.Use(authMiddleware.RequireAuth(), middleware.ExtractUintParam("quizId", "quizID"))
			{
				quizExam.GET("", quizHandler.GetExamQuestions)
			}
		}

		// История результатов пользователя
		user := api.Group("/user")
		user.Use(authMiddleware.RequireAuth())
		{
			user.GET("/passed-results", resultHandler.GetUserResults)
			user.GET("/results/export", resultHandler.ExportUserResults)

			resultWithID := user.Group("/results/:resultId")
			resultWithID.Use(middleware.ExtractUintParam("resultId", "resultID"))
			{
				resultWithID.GET("", resultHandler.GetResult)
			}
		}

		// Сертификаты
		cert := api.Group("/certificate")
		cert.Use(authMiddleware.RequireAuth())
		{
			cert.POST("", certHandler.GenerateCertificate)
			cert.POST("/download", certHandler.DownloadCertificate)
		}

		// Администрирование каталога
		admin := api.Group("/admin")
		admin.Use(authMiddleware.RequireAuth(), authMiddleware.AdminOnly())
		{
			admin.POST("/quizzes", quizHandler.CreateQuiz)
		}
	}

	// Настраиваем HTTP сервер с тайм-аутами для защиты от slow client attacks
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Запускаем сервер в горутине
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Failed to start server: %v", err)
		}
	}()

	// Ожидаем сигнал остановки
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Создаем контекст с таймаутом для graceful shutdown сервера
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
		os.Exit(1)
	}

	if err := redisClient.Close(); err != nil {
		log.Printf("Error closing Redis client: %v", err)
	}

	log.Println("Server exited properly")
}
