package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	api "github.com/DanyaArt/itbot/internal/api/http"
	"github.com/DanyaArt/itbot/internal/audit"
	auth "github.com/DanyaArt/itbot/internal/auth/middleware"
	"github.com/DanyaArt/itbot/internal/config"
	"github.com/DanyaArt/itbot/internal/db"
	"github.com/DanyaArt/itbot/internal/institution"
	"github.com/DanyaArt/itbot/internal/logger"
	"github.com/DanyaArt/itbot/internal/notify"
	"github.com/DanyaArt/itbot/internal/quiz"
	"github.com/DanyaArt/itbot/internal/rbac"
	"github.com/DanyaArt/itbot/internal/session"
)

// sessionBase is the concrete backend underneath the cache/fallback layers;
// broadcast and statistics read it directly.
type sessionBase interface {
	quiz.SessionStore
	UserIDs(ctx context.Context) ([]int64, error)
	FinishedCount(ctx context.Context) (int, error)
}

func main() {
	cfg := config.FromEnv()

	zlog, err := logger.New(cfg.LogJSON, cfg.LogDebug)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer zlog.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		zlog.Fatal("db open failed", zap.Error(err))
	}

	// --- Stores ---
	catalog, err := quiz.NewCatalogStore(ctx, dbh, zlog)
	if err != nil {
		zlog.Fatal("question catalog", zap.Error(err))
	}
	instStore := institution.NewSQLStore(dbh)
	if err := instStore.EnsureSeed(ctx); err != nil {
		zlog.Fatal("specialization seed", zap.Error(err))
	}
	exporter := institution.NewExporter(instStore, cfg.DatasetPath, zlog)
	events := audit.NewEventRepo(dbh)

	var base sessionBase
	switch cfg.SessionBackend {
	case "memory":
		base = session.NewMemoryStore()
	default:
		base = session.NewSQLStore(dbh)
	}
	var sessions quiz.SessionStore = base
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		sessions = session.NewCache(rdb, sessions)
	}
	if cfg.SessionBackend != "memory" {
		sessions = session.NewFallback(sessions, zlog)
	}

	// --- Core ---
	normalizer, err := quiz.NewNormalizer(cfg.Normalizer)
	if err != nil {
		zlog.Fatal("normalizer", zap.Error(err))
	}
	classifier := quiz.NewClassifier(quiz.Category(cfg.DefaultCategory))
	svc := quiz.NewService(sessions, catalog, normalizer, classifier, zlog)

	var notifier notify.Notifier
	if cfg.TelegramToken != "" {
		notifier = notify.NewTelegram(cfg.TelegramToken)
	} else {
		notifier = notify.NewLog(zlog)
	}

	authSvc := auth.NewAuthService(cfg.HMACSecret, cfg.AdminUser, cfg.AdminPassHash)

	resultDeps := api.ResultDeps{
		Catalog:      catalog,
		Institutions: instStore,
		Notifier:     notifier,
		Log:          zlog,
	}
	adminDeps := api.AdminDeps{
		Catalog:      catalog,
		Institutions: instStore,
		Exporter:     exporter,
		Audit:        events,
		Sessions:     base,
		Users:        base,
		Notifier:     notifier,
		Log:          zlog,
	}

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/healthz", api.HealthHandler())
	r.Post("/auth/login", auth.LoginHandler(authSvc))

	// Public test flow
	r.Post("/test/start", api.StartTestHandler(svc, catalog))
	r.Post("/test/answer", api.AnswerHandler(svc, resultDeps))
	r.Get("/test/result", api.ResultHandler(svc, resultDeps))
	r.Get("/test/report", api.DetailedReportHandler(svc, resultDeps))
	r.Get("/test/institutions", api.AllInstitutionsHandler(svc, resultDeps))

	// Admin (JWT → role in context → RBAC)
	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(authSvc))

		pr.With(rbac.Require("questions:view")).
			Get("/admin/questions", api.ListQuestionsHandler(adminDeps))
		pr.With(rbac.Require("questions:add")).
			Post("/admin/questions", api.AddQuestionHandler(adminDeps))
		pr.With(rbac.Require("questions:delete")).
			Delete("/admin/questions/{id}", api.DeleteQuestionHandler(adminDeps))

		pr.With(rbac.Require("specializations:view")).
			Get("/admin/specializations", api.ListSpecializationsHandler(adminDeps))
		pr.With(rbac.Require("specializations:add")).
			Post("/admin/specializations", api.AddSpecializationHandler(adminDeps))
		pr.With(rbac.Require("specializations:delete")).
			Delete("/admin/specializations/{id}", api.DeleteSpecializationHandler(adminDeps))

		pr.With(rbac.Require("institutions:view")).
			Get("/admin/institutions", api.ListInstitutionsAdminHandler(adminDeps))
		pr.With(rbac.Require("institutions:add")).
			Post("/admin/institutions", api.AddInstitutionHandler(adminDeps))
		pr.With(rbac.Require("institutions:delete")).
			Post("/admin/institutions/delete", api.DeleteInstitutionHandler(adminDeps))

		pr.With(rbac.Require("dataset:sync")).
			Post("/sync", api.SyncHandler(adminDeps))
		pr.With(rbac.Require("stats:view")).
			Get("/admin/stats", api.StatsHandler(adminDeps))
		pr.With(rbac.Require("stats:view")).
			Get("/admin/events", api.EventsHandler(adminDeps))
		pr.With(rbac.Require("broadcast:send")).
			Post("/admin/broadcast", api.BroadcastHandler(adminDeps))
	})

	zlog.Info("listening", zap.String("addr", cfg.HTTPAddr))
	if err := http.ListenAndServe(cfg.HTTPAddr, r); err != nil {
		zlog.Fatal("server", zap.Error(err))
	}
}
