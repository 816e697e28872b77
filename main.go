package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"kompetensiku_backend/internals/configs"
	database "kompetensiku_backend/internals/databases"
	formModel "kompetensiku_backend/internals/features/evaluations/forms/model"
	responseModel "kompetensiku_backend/internals/features/evaluations/responses/model"
	sessionModel "kompetensiku_backend/internals/features/evaluations/sessions/model"
	userModel "kompetensiku_backend/internals/features/users/user/model"
	middlewares "kompetensiku_backend/internals/middlewares"
	routes "kompetensiku_backend/internals/route"
)

func main() {
	configs.LoadEnv()

	app := fiber.New(fiber.Config{
		// 🚀 JSON super cepat
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		DisableStartupMessage:   true,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"},
	})

	// ⚙️ middleware dasar + performa
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault})) // gzip
	app.Use(etag.New())                                                  // 304 caching

	// 🔎 Request-ID + timing (observability ringan)
	app.Use(func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("X-Request-ID", id)
		c.Locals("reqid", id)
		start := time.Now()
		// HTTP timeout guard (selaras dengan statement_timeout di DB)
		ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
		defer cancel()
		c.SetUserContext(ctx)
		err := c.Next()
		dur := time.Since(start)
		log.Printf("[REQ] id=%s %s %s status=%d dur=%s", id, c.Method(), c.OriginalURL(), c.Response().StatusCode(), dur)
		return err
	})

	middlewares.SetupMiddlewares(app)

	// 🔌 DB connect + pool + warm-up
	database.ConnectDB()
	database.TunePool()
	database.WarmUpQueries()

	// 🧱 skema evaluasi (idempotent)
	runMigrations(database.DB)

	// ❤️ Health check (anti-cold start)
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	// ✅ Routes
	routes.SetupRoutes(app, database.DB)

	// 🔒 Keep-Alive & timeout koneksi server
	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	// Start server non-blocking
	go func() {
		log.Printf("✅ Listening on :%s", port)
		if err := app.Listen("0.0.0.0:" + port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown + tutup pool DB
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	if sqlDB, err := database.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// runMigrations menyelaraskan skema tabel evaluasi.
// Urutan penting: parent dulu, baru child (FK).
func runMigrations(db *gorm.DB) {
	err := db.AutoMigrate(
		&userModel.UserModel{},
		&formModel.EvaluationFormModel{},
		&formModel.CompetencyUnitModel{},
		&formModel.CompetencyElementModel{},
		&formModel.RatingCriteriaModel{},
		&formModel.RatingScaleDescriptionModel{},
		&responseModel.EvaluationResponseModel{},
		&sessionModel.EvaluationSessionModel{},
	)
	if err != nil {
		log.Fatalf("❌ Gagal migrasi skema: %v", err)
	}

	// indeks unik kunci (NULLS NOT DISTINCT, butuh postgres 15+) —
	// tag gorm tidak bisa mengekspresikannya, jadi DDL mentah
	for _, ddl := range []string{
		responseModel.UniqueKeyIndexDDL,
		sessionModel.UniqueKeyIndexDDL,
	} {
		if err := db.Exec(ddl).Error; err != nil {
			log.Fatalf("❌ Gagal membuat indeks unik: %v", err)
		}
	}
	log.Println("✅ Skema evaluasi siap.")
}
