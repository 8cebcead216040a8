package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"hireflow/ats-engine/internal/config"
	"hireflow/ats-engine/internal/handlers"
	"hireflow/ats-engine/internal/repositories"
	"hireflow/ats-engine/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	// Initialize repositories
	jobRepo := repositories.NewJobRepository(db)
	appRepo := repositories.NewApplicationRepository(db)
	docRepo := repositories.NewDocumentRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize storage
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	// Initialize Gemini AI. Without an API key the generative extraction
	// layer and similarity search stay disabled; scoring still works.
	var geminiService services.GeminiService
	if cfg.Gemini.APIKey != "" {
		geminiService, err = services.NewGeminiService(cfg.Gemini.APIKey)
		if err != nil {
			log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
		}
		log.Println("✅ Gemini AI initialized successfully")
	} else {
		log.Println("⚠️  GEMINI_API_KEY not set, generative extraction disabled")
	}

	// Initialize the scoring pipeline
	extractor := services.NewDocumentExtractorService()
	tagger := services.NewProseTagger(cfg.NLP.TaggerEnabled)
	generative := services.NewGeminiEntityExtractor(geminiService, cfg.Worker.RetryMaxAttempts)
	entityExtractor := services.NewEntityExtractorService(tagger, generative)
	scoringService := services.NewScoringService(services.NewTFIDFSimilarity())
	atsService := services.NewATSService(extractor, entityExtractor, scoringService)
	filterService := services.NewFilterService()
	log.Println("✅ Scoring services initialized successfully")

	// Initialize Qdrant (optional)
	var vectorStore services.ResumeVectorStore
	if cfg.Qdrant.Enabled {
		vectorStore, err = services.NewResumeVectorStore(
			cfg.Qdrant.URL,
			cfg.Qdrant.APIKey,
			cfg.Qdrant.Collection,
		)
		if err != nil {
			log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
		}

		if err := vectorStore.InitCollection(); err != nil {
			log.Fatalf("❌ Failed to initialize Qdrant collection: %v", err)
		}
		log.Println("✅ Qdrant initialized successfully")
	}

	// Initialize notifications
	notifier := services.NewEmailNotifier(cfg.SMTP)

	// Initialize processor and worker
	processor := services.NewApplicationProcessorService(
		appRepo,
		jobRepo,
		docRepo,
		storageService,
		atsService,
		notifier,
		geminiService,
		vectorStore,
	)
	worker := services.NewWorker(appRepo, processor, cfg.Worker.Concurrency)

	ctx := context.Background()
	worker.Start(ctx)

	// Initialize handlers
	jobHandler := handlers.NewJobHandler(jobRepo)
	applicationHandler := handlers.NewApplicationHandler(
		appRepo,
		jobRepo,
		docRepo,
		storageService,
		filterService,
		notifier,
		worker,
		cfg.Storage.MaxFileSize,
	)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "HireFlow ATS Engine",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize),
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// Jobs
	api.Post("/jobs", jobHandler.HandleCreate)
	api.Get("/jobs", jobHandler.HandleList)
	api.Get("/jobs/:id", jobHandler.HandleGet)
	api.Put("/jobs/:id", jobHandler.HandleUpdate)
	api.Patch("/jobs/:id/status", jobHandler.HandleUpdateStatus)
	api.Delete("/jobs/:id", jobHandler.HandleDelete)

	// Applications
	api.Post("/applications", applicationHandler.HandleSubmit)
	api.Post("/applications/filter", applicationHandler.HandleFilter)
	api.Get("/applications/:id", applicationHandler.HandleGet)
	api.Get("/applications/:id/report", applicationHandler.HandleReport)
	api.Get("/applications/:id/history", applicationHandler.HandleHistory)
	api.Post("/applications/:id/status", applicationHandler.HandleUpdateStatus)
	api.Get("/jobs/:id/applications", applicationHandler.HandleListByJob)

	// Similarity search, only when the vector store is available
	if vectorStore != nil && geminiService != nil {
		searchHandler := handlers.NewSearchHandler(
			appRepo,
			docRepo,
			storageService,
			extractor,
			geminiService,
			vectorStore,
		)
		api.Get("/applications/:id/similar", searchHandler.HandleSimilar)
	}

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "HireFlow ATS Engine",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/jobs",
				"POST /api/v1/applications",
				"GET /api/v1/applications/:id/report",
				"POST /api/v1/applications/filter",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		worker.Stop()
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
