package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/ittest-team/device-accounting/internal/application/audit"
	"github.com/ittest-team/device-accounting/internal/application/auth"
	"github.com/ittest-team/device-accounting/internal/application/deletion"
	"github.com/ittest-team/device-accounting/internal/application/report"
	"github.com/ittest-team/device-accounting/internal/application/usecase"
	"github.com/ittest-team/device-accounting/internal/infrastructure/mailer"
	infrapdf "github.com/ittest-team/device-accounting/internal/infrastructure/pdf"
	"github.com/ittest-team/device-accounting/internal/infrastructure/postgres"
	httpRouter "github.com/ittest-team/device-accounting/internal/interfaces/http"
	"github.com/ittest-team/device-accounting/pkg/config"
	"github.com/ittest-team/device-accounting/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("загрузка конфигурации: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("запуск приложения")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("подключение к PostgreSQL")
	}
	defer pool.Close()

	locationRepo := postgres.NewLocationRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	deviceTypeRepo := postgres.NewDeviceTypeRepository(pool)
	employeeRepo := postgres.NewEmployeeRepository(pool)
	deviceRepo := postgres.NewDeviceRepository(pool)
	historyRepo := postgres.NewDeviceHistoryRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	auditRepo := postgres.NewAuditLogRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	auditSvc := audit.NewService(auditRepo, log)
	notifier := mailer.NewDeletionNotifier(cfg.SMTP, userRepo, log)
	deletionSvc := deletion.NewService(txRunner, auditSvc, notifier, log)

	locationUC := usecase.NewLocationUseCase(locationRepo, deviceRepo, employeeRepo, deletionSvc, auditSvc)
	warehouseUC := usecase.NewWarehouseUseCase(warehouseRepo, deviceRepo, locationUC, deletionSvc, auditSvc)
	deviceTypeUC := usecase.NewDeviceTypeUseCase(deviceTypeRepo, deviceRepo, deletionSvc, auditSvc)
	employeeUC := usecase.NewEmployeeUseCase(employeeRepo, deviceRepo, locationUC, deletionSvc, auditSvc)
	deviceUC := usecase.NewDeviceUseCase(deviceRepo, deviceTypeRepo, warehouseRepo, employeeRepo, locationRepo, historyRepo, deletionSvc, auditSvc)
	userUC := usecase.NewUserUseCase(userRepo, deletionSvc, auditSvc)
	trashUC := usecase.NewTrashUseCase(deviceRepo, employeeRepo, warehouseRepo, locationRepo, deviceTypeRepo, userRepo, deletionSvc)
	dashboardUC := usecase.NewDashboardUseCase(deviceRepo)
	reportUC := report.NewUsecase(deviceRepo, infrapdf.NewMarotoReportGenerator(), log)

	authUC := auth.NewUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		DeviceUC:     deviceUC,
		EmployeeUC:   employeeUC,
		WarehouseUC:  warehouseUC,
		LocationUC:   locationUC,
		DeviceTypeUC: deviceTypeUC,
		UserUC:       userUC,
		TrashUC:      trashUC,
		DashboardUC:  dashboardUC,
		ReportUC:     reportUC,
		AuditSvc:     auditSvc,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP-сервер завершился")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("получен сигнал остановки, закрываем сервер...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("остановка сервера")
	}

	log.Info().Msg("приложение остановлено")
}
