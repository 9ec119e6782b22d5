package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fadilmartias/pathfinder/internal/config"
	"github.com/fadilmartias/pathfinder/internal/domain/fiber/handler"
	"github.com/fadilmartias/pathfinder/internal/middleware"
	"github.com/fadilmartias/pathfinder/internal/repository"
	"github.com/fadilmartias/pathfinder/internal/service"
	"github.com/fadilmartias/pathfinder/internal/usecase"
	"github.com/fadilmartias/pathfinder/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Could not load .env file")
	}

	appConfig := config.LoadAppConfig()
	authConfig := config.LoadAuthConfig()
	engineConfig := config.LoadEngineConfig()

	app := fiber.New(fiber.Config{
		AppName:      appConfig.Name,
		ErrorHandler: util.FiberErrorHandler,
	})
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: !appConfig.IsProduction(),
	}))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(pprof.New(pprof.Config{
		Next: func(c *fiber.Ctx) bool {
			return appConfig.IsProduction()
		},
	}))
	app.Use(healthcheck.New())
	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))
	app.Use(middleware.RateLimiter(50, 1*time.Minute))

	db, err := repository.ConnectDB(config.LoadDBConfig(), appConfig)
	if err != nil {
		log.Fatalf("Could not connect to database: %v", err)
	}
	if err := repository.Migrate(db); err != nil {
		log.Fatal("migration failed: ", err)
	}

	questionRepo := repository.NewQuestionRepository(db)
	institutionRepo := repository.NewInstitutionRepository(db)
	resultRepo := repository.NewAssessmentResultRepository(db)
	matcher := service.NewMatchingService(engineConfig)
	uc := usecase.NewAssessmentUsecase(questionRepo, institutionRepo, resultRepo, matcher, engineConfig)
	handler.NewAssessmentHandler(uc, authConfig.JWTSecret).RegisterRoutes(app)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				log.Printf("Active goroutines: %d", runtime.NumGoroutine())
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		<-ctx.Done()
		log.Println("Shutting down server")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Println("Server running on ", appConfig.Port)
	if err := app.Listen(appConfig.Port); err != nil {
		log.Fatal(err)
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
