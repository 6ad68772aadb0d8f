package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/marketplace-backend/internal/app"
	"github.com/ignatzorin/marketplace-backend/internal/config"
	"github.com/ignatzorin/marketplace-backend/internal/db"
	"github.com/ignatzorin/marketplace-backend/internal/domain/entity"
	"github.com/ignatzorin/marketplace-backend/internal/domain/repository"
	"github.com/ignatzorin/marketplace-backend/internal/infrastructure/memory"
	"github.com/ignatzorin/marketplace-backend/internal/infrastructure/persistence"
	"github.com/ignatzorin/marketplace-backend/internal/logger"
	"github.com/ignatzorin/marketplace-backend/internal/service"
)

func main() {
	// Готовим контекст для graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: ошибка загрузки конфигурации: %v", err)
	}

	// Инициализация логгера
	if cfg.Env == "development" {
		logger.Init("debug")
		logger.SetTextFormatter()
	} else {
		logger.Init(cfg.LogLevel)
	}

	store, closeStore := openStore(ctx, cfg)
	defer closeStore()

	application, err := app.New(cfg, store)
	if err != nil {
		logger.Log.WithError(err).Fatal("main: не удалось собрать приложение")
	}

	if mem, ok := store.(*memory.Store); ok {
		seedDemo(mem, application.Tokens)
	}

	go application.Hub.Run(ctx)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           application.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Завершаем сервер при получении сигнала.
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Log.WithError(err).Error("main: ошибка остановки http сервера")
		}
	}()

	logger.Log.WithFields(logrus.Fields{
		"port":         cfg.HTTPPort,
		"env":          cfg.Env,
		"store_driver": cfg.StoreDriver,
	}).Info("main: HTTP сервер запущен")

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Log.WithError(err).Fatal("main: сервер завершился с ошибкой")
	}
}

// openStore подключает выбранное хранилище и возвращает функцию его закрытия.
func openStore(ctx context.Context, cfg *config.Config) (repository.Store, func()) {
	if cfg.StoreDriver == config.StoreDriverMemory {
		logger.Log.Warn("main: используется хранилище в памяти, данные не сохраняются между запусками")
		return memory.NewStore(), func() {}
	}

	// Подключение к базе и миграции.
	dbConn, err := db.NewPostgres(ctx, cfg.DatabaseURL, cfg.DBMaxOpenConns)
	if err != nil {
		logger.Log.WithError(err).Fatal("main: ошибка подключения к базе")
	}

	if err := db.RunMigrations(ctx, dbConn, cfg.MigrationsPath); err != nil {
		safeClose(dbConn)
		logger.Log.WithError(err).Fatal("main: ошибка миграций")
	}

	return persistence.NewStore(dbConn), func() { safeClose(dbConn) }
}

// seedDemo заполняет хранилище в памяти и печатает токены участников для локальных запросов.
func seedDemo(store *memory.Store, tokens *service.TokenManager) {
	demo := memory.SeedDemo(store, time.Now())

	issue := func(to entity.Recipient, name string) {
		token, err := tokens.IssueAccess(to, 24*time.Hour)
		if err != nil {
			logger.Log.WithError(err).Warn("main: не удалось выпустить токен")
			return
		}
		logger.Log.WithFields(logrus.Fields{
			"recipient": to.Key(),
			"name":      name,
			"token":     token,
		}).Info("main: демо участник")
	}

	for _, c := range demo.Clients {
		issue(entity.ClientRecipient(c.ID), c.Name)
	}
	for _, f := range demo.Freelancers {
		issue(entity.FreelancerRecipient(f.ID), f.Name)
	}
	for _, j := range demo.Jobs {
		logger.Log.WithFields(logrus.Fields{"job_id": j.ID, "title": j.Title}).Info("main: демо работа")
	}
}

// safeClose закрывает соединение с базой.
func safeClose(db *sqlx.DB) {
	if err := db.Close(); err != nil {
		logger.Log.WithError(err).Error("main: ошибка закрытия базы")
	}
}
