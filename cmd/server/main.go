package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"oleo-backend/internal/auth"
	"oleo-backend/internal/cache"
	"oleo-backend/internal/config"
	"oleo-backend/internal/database"
	"oleo-backend/internal/db"
	"oleo-backend/internal/handlers"
	"oleo-backend/internal/health"
	apphttp "oleo-backend/internal/http"
	"oleo-backend/internal/logger"
	"oleo-backend/internal/mailer"
	"oleo-backend/internal/metrics"
	"oleo-backend/internal/middleware"
	"oleo-backend/internal/repositories"
	"oleo-backend/internal/services"
	"oleo-backend/internal/storage"
	"oleo-backend/internal/stream"

	"github.com/sirupsen/logrus"
)

func main() {
	logger.Setup()

	cfg := config.Load()

	pool := db.Connect(cfg)
	defer pool.Close()

	migrator := database.NewMigrator(pool)
	if err := migrator.RunMigrations(context.Background()); err != nil {
		logrus.Fatalf("Migrations failed: %v", err)
	}

	// Redis is optional; the API degrades to uncached reads without it
	redisAddr := fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port)
	if err := cache.Init(redisAddr, cfg.Redis.Password); err != nil {
		logrus.Warnf("[Cache] Redis unavailable, running without cache: %v", err)
	}

	// Repositories
	usuarioRepo := repositories.NewUsuarioRepository(pool)
	rutaRepo := repositories.NewRutaRepository(pool)
	recogidaRepo := repositories.NewRecogidaRepository(pool)
	comunidadRepo := repositories.NewComunidadRepository(pool)
	trabajadorRepo := repositories.NewTrabajadorRepository(pool)
	turnoRepo := repositories.NewTurnoRepository(pool)
	captadoRepo := repositories.NewClienteCaptadoRepository(pool)
	comisionRepo := repositories.NewComisionRepository(pool)
	donacionRepo := repositories.NewDonacionRepository(pool)
	totpRepo := repositories.NewTOTPRepository(pool)
	incidenciaRepo := repositories.NewIncidenciaRepository(pool)

	jwtManager := auth.NewJWTManager(cfg)
	hub := stream.NewHub()

	// Services
	usuarioService := services.NewUsuarioService(usuarioRepo, totpRepo, jwtManager)
	rutaService := services.NewRutaService(rutaRepo)
	comercialService := services.NewComercialService(captadoRepo, comisionRepo, cfg)
	recogidaService := services.NewRecogidaService(recogidaRepo, rutaRepo, usuarioRepo, captadoRepo)
	recogidaService.SetComercialService(comercialService)
	rankingService := services.NewRankingService(recogidaRepo, usuarioRepo)
	comunidadService := services.NewComunidadService(comunidadRepo)
	trabajadorService := services.NewTrabajadorService(trabajadorRepo, turnoRepo)
	donacionService := services.NewDonacionService(donacionRepo, cfg)
	impactoService := services.NewImpactoService(recogidaRepo, hub)
	reportService := services.NewReportService(recogidaRepo, usuarioRepo)
	totpService := services.NewTOTPService(usuarioRepo, totpRepo, jwtManager)
	incidenciaService := services.NewIncidenciaService(incidenciaRepo)

	// Object storage is optional; uploads return 503 when unconfigured
	storageClient, err := storage.New(context.Background(), cfg)
	if err != nil {
		logrus.Warnf("[Storage] disabled: %v", err)
		storageClient = nil
	}

	mail := mailer.New(cfg)
	healthChecker := health.NewHealthChecker(pool)

	// Handlers
	authHandler := handlers.NewAuthHandler(usuarioService, totpService)
	usuarioHandler := handlers.NewUsuarioHandler(usuarioService)
	rutaHandler := handlers.NewRutaHandler(rutaService, recogidaService, impactoService)
	recogidaHandler := handlers.NewRecogidaHandler(recogidaService, impactoService)
	rankingHandler := handlers.NewRankingHandler(rankingService)
	comunidadHandler := handlers.NewComunidadHandler(comunidadService)
	trabajadorHandler := handlers.NewTrabajadorHandler(trabajadorService)
	comercialHandler := handlers.NewComercialHandler(comercialService)
	donacionHandler := handlers.NewDonacionHandler(donacionService)
	impactoHandler := handlers.NewImpactoHandler(impactoService)
	reportHandler := handlers.NewReportHandler(reportService)
	totpHandler := handlers.NewTOTPHandler(totpService, usuarioService)
	incidenciaHandler := handlers.NewIncidenciaHandler(incidenciaService)
	mailHandler := handlers.NewMailHandler(mail)
	storageHandler := handlers.NewStorageHandler(storageClient)
	healthHandler := handlers.NewHealthHandler(healthChecker)

	authMiddleware := middleware.NewAuthMiddleware(jwtManager, usuarioRepo)

	router := apphttp.NewRouter(
		authHandler,
		usuarioHandler,
		rutaHandler,
		recogidaHandler,
		rankingHandler,
		comunidadHandler,
		trabajadorHandler,
		comercialHandler,
		donacionHandler,
		impactoHandler,
		reportHandler,
		totpHandler,
		incidenciaHandler,
		mailHandler,
		storageHandler,
		healthHandler,
		authMiddleware,
		hub,
	)

	metrics.StartHostCollector(context.Background(), 15*time.Second)

	corsMiddleware := middleware.NewCORS(cfg)
	handler := corsMiddleware(middleware.PanicRecovery(router))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	logrus.Infof("Server listening on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		logrus.Fatalf("Server failed: %v", err)
	}
}
