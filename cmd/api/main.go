package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/httplog/v3"

	"github.com/eldar-magrafta/hilan-calculator/internal/config"
	"github.com/eldar-magrafta/hilan-calculator/internal/domain/attendance"
	appHTTP "github.com/eldar-magrafta/hilan-calculator/internal/handler/http"
	"github.com/eldar-magrafta/hilan-calculator/internal/pkg/calendar"
	"github.com/eldar-magrafta/hilan-calculator/internal/pkg/cron"
	"github.com/eldar-magrafta/hilan-calculator/internal/pkg/database"
	"github.com/eldar-magrafta/hilan-calculator/internal/pkg/hilan"
	"github.com/eldar-magrafta/hilan-calculator/internal/pkg/jwt"
	"github.com/eldar-magrafta/hilan-calculator/internal/pkg/sse"
	"github.com/eldar-magrafta/hilan-calculator/internal/pkg/storage"
	"github.com/eldar-magrafta/hilan-calculator/internal/repository/memory"
	"github.com/eldar-magrafta/hilan-calculator/internal/repository/postgresql"
	attendanceService "github.com/eldar-magrafta/hilan-calculator/internal/service/attendance"
	"github.com/eldar-magrafta/hilan-calculator/internal/service/export"
	"github.com/eldar-magrafta/hilan-calculator/internal/service/extractor"
)

const version = "v1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	logFormat := httplog.SchemaECS.Concise(cfg.App.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       parseLevel(cfg.App.LogLevel),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hilan-calculator"),
		slog.String("version", version),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var sessionRepo attendance.SessionRepository
	switch cfg.Session.Store {
	case config.SessionStorePostgres:
		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
			MaxConns: cfg.Database.MaxConns,
			MinConns: 1,
		})
		if err != nil {
			log.Fatal("Error connecting to database: ", err)
		}
		defer db.Close()

		if err := postgresql.EnsureSessionSchema(ctx, db); err != nil {
			log.Fatal("Failed to prepare session schema: ", err)
		}
		sessionRepo = postgresql.NewSessionRepository(db)
	default:
		sessionRepo = memory.NewSessionRepository()
	}

	var snapshots *storage.Snapshots
	if cfg.Snapshot.Enabled {
		fileStorage, err := storage.NewLocalStorage(cfg.Snapshot.Path)
		if err != nil {
			log.Fatal("Failed to initialize snapshot storage: ", err)
		}
		snapshots = storage.NewSnapshots(fileStorage)
	}

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.SessionExpiration, cfg.JWT.StreamExpiration)
	locale := calendar.ParseLocale(cfg.Export.Locale)

	hoursService := attendanceService.NewAttendanceService(
		hilan.NewClient(cfg.Portal, nil),
		extractor.New(),
		sessionRepo,
		JWTService,
		sse.NewHub(),
		export.New(cfg.Export.PDFFontPath),
		snapshots,
		attendanceService.Config{
			SessionTTL: cfg.JWT.SessionExpiration,
			Locale:     locale,
			Location:   cfg.Location(),
		},
	)

	scheduler := cron.NewScheduler(ctx)
	cron.NewSessionJobs(sessionRepo, JWTService).Register(scheduler, cfg.Session.CleanupInterval)
	scheduler.Start()
	defer scheduler.Stop()

	hoursHandler := appHTTP.NewHoursHandler(hoursService, JWTService, locale)
	router := appHTTP.NewRouter(appHTTP.RouterConfig{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Logger:         logger,
	}, JWTService, hoursHandler)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown failed", "error", err)
		}
	}()

	slog.Info("Server running", "addr", "http://localhost"+server.Addr, "session_store", cfg.Session.Store)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		fmt.Println("Server error:", err)
	}
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
