package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "athlete-app/docs" // сгенерированная OpenAPI-спецификация
	"athlete-app/internal/config"
	"athlete-app/internal/database"
	authhandler "athlete-app/internal/handler/auth"
	"athlete-app/internal/handler/health"
	"athlete-app/internal/handler/middleware"
	profilehandler "athlete-app/internal/handler/profile"
	uploadhandler "athlete-app/internal/handler/upload"
	pgrepo "athlete-app/internal/repository/postgres"
	"athlete-app/internal/storage"
	authuc "athlete-app/internal/usecase/auth"
	profileuc "athlete-app/internal/usecase/profile"
	jwtsvc "athlete-app/pkg/jwt"
	"athlete-app/pkg/logger"
)

// Server представляет HTTP сервер приложения
type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	db         *database.DB
	cfg        *config.Config

	jwtService     jwtsvc.Service
	authHandler    *authhandler.Handler
	profileHandler *profilehandler.Handler
	uploadHandler  *uploadhandler.Handler
}

// NewServer создает новый экземпляр сервера
func NewServer(cfg *config.Config, db *database.DB) (*Server, error) {
	// Устанавливаем режим Gin в зависимости от окружения
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()

	s := &Server{
		router: router,
		db:     db,
		cfg:    cfg,
	}

	// Инициализируем зависимости аутентификации и профиля один раз
	gormDB := db.DB
	userRepo := pgrepo.NewUserRepository(gormDB)
	profileRepo := pgrepo.NewProfileRepository(gormDB)

	s.jwtService = jwtsvc.NewService(&cfg.JWT)

	authService := authuc.NewService(userRepo, s.jwtService)
	profileService := profileuc.NewService(profileRepo, cfg.Database.ReadTimeout, cfg.Database.WriteTimeout)

	imageStore, err := storage.NewLocalImageStore(cfg.Upload.Dir, cfg.Upload.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("ошибка инициализации хранилища изображений: %w", err)
	}

	s.authHandler = authhandler.NewHandler(authService)
	s.profileHandler = profilehandler.NewHandler(profileService)
	s.uploadHandler = uploadhandler.NewHandler(imageStore, cfg.Upload.MaxSizeBytes)

	// Настраиваем middleware и роуты
	s.setupMiddleware()
	s.setupRoutes()

	return s, nil
}

// setupMiddleware настраивает middleware для роутера
func (s *Server) setupMiddleware() {
	// Recovery middleware - должен быть первым для перехвата паник
	s.router.Use(middleware.Recovery())

	// Logger middleware - логирование всех запросов
	s.router.Use(middleware.LoggerStructured(logger.Default()))

	// CORS middleware - настройка CORS
	s.router.Use(middleware.CORS(&s.cfg.CORS))
}

// setupRoutes настраивает маршруты приложения
func (s *Server) setupRoutes() {
	s.setupHealthRoutes()
	s.setupAuthRoutes()
	s.setupProfileRoutes()
	s.setupStaticRoutes()
}

// setupHealthRoutes настраивает health-check эндпоинты.
func (s *Server) setupHealthRoutes() {
	healthHandler := health.NewHandler(s.db, s.cfg.AppEnv)
	// GET /health — базовый health-check сервера (жив ли процесс).
	s.router.GET("/health", healthHandler.Health)
	// GET /health/db — проверка доступности базы данных.
	s.router.GET("/health/db", healthHandler.HealthDB)
}

// setupAuthRoutes настраивает эндпоинты аутентификации и корневой роут API.
func (s *Server) setupAuthRoutes() {
	api := s.router.Group("/api")

	// GET /api/ — корневой эндпоинт API, возвращает версию и базовую информацию.
	api.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Athlete App API",
			"version": "1.0.0",
		})
	})

	authGroup := api.Group("/auth")
	{
		// POST /api/auth/register — регистрация нового пользователя по email/паролю/username.
		authGroup.POST("/register", s.authHandler.Register)
		// POST /api/auth/login — аутентификация пользователя по email/паролю.
		authGroup.POST("/login", s.authHandler.Login)
		// POST /api/auth/refresh — обновление пары access/refresh токенов по refresh-токену.
		authGroup.POST("/refresh", s.authHandler.Refresh)
	}
}

// setupProfileRoutes настраивает защищённые эндпоинты профиля атлета.
func (s *Server) setupProfileRoutes() {
	api := s.router.Group("/api")

	profileGroup := api.Group("/profile")
	profileGroup.Use(middleware.Auth(s.jwtService))
	{
		// GET /api/profile/me — получить профиль атлета текущего пользователя.
		profileGroup.GET("/me", s.profileHandler.Get)
		// PATCH /api/profile/me — создать или частично обновить профиль.
		profileGroup.PATCH("/me", s.profileHandler.Upsert)
		// POST /api/profile/me/photo — загрузить фотографию профиля.
		profileGroup.POST("/me/photo", s.uploadHandler.Photo)
	}
}

// setupStaticRoutes настраивает раздачу загруженных файлов и Swagger UI.
func (s *Server) setupStaticRoutes() {
	// Загруженные изображения профиля
	s.router.Static(s.cfg.Upload.BaseURL, s.cfg.Upload.Dir)

	// Swagger UI доступен вне production
	if s.cfg.AppEnv != "production" {
		s.router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
}

// Start запускает HTTP сервер с graceful shutdown
func (s *Server) Start() error {
	address := s.cfg.Server.Address()

	s.httpServer = &http.Server{
		Addr:           address,
		Handler:        s.router,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   15 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20, // 1 MB
	}

	// Канал для получения сигналов ОС
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Канал для ошибок запуска сервера
	serverErr := make(chan error, 1)

	// Запускаем сервер в отдельной горутине
	go func() {
		log.Printf("HTTP сервер запущен на %s", address)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- fmt.Errorf("ошибка запуска HTTP сервера: %w", err)
		}
	}()

	// Ожидаем либо сигнал для graceful shutdown, либо ошибку запуска
	select {
	case err := <-serverErr:
		// Если сервер не смог запуститься, пытаемся корректно остановить
		log.Printf("Ошибка запуска сервера: %v", err)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.httpServer.Shutdown(ctx)
		return err
	case sig := <-quit:
		log.Printf("Получен сигнал %v для остановки сервера...", sig)
	}

	// Создаем контекст с таймаутом для graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Останавливаем сервер
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("ошибка при остановке сервера: %w", err)
	}

	log.Println("HTTP сервер успешно остановлен")
	return nil
}

// GetRouter возвращает роутер (для тестирования)
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}
