package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/koine-verse-search-api/internal/config"
	"github.com/koine-verse-search-api/internal/handlers"
	"github.com/koine-verse-search-api/internal/llm"
	"github.com/koine-verse-search-api/internal/middleware"
	"github.com/koine-verse-search-api/internal/repository"
	"github.com/koine-verse-search-api/internal/repository/memory"
	"github.com/koine-verse-search-api/internal/repository/postgres"
	"github.com/koine-verse-search-api/internal/repository/vertex"
	"github.com/koine-verse-search-api/internal/services"
	schemaconfig "github.com/koine-verse-search-api/pkg/schema/config"
	"github.com/koine-verse-search-api/pkg/schema/db"
	pkgservices "github.com/koine-verse-search-api/pkg/schema/services"
)

func main() {
	// Load .env file if present
	_ = godotenv.Load()

	// Get configuration
	cfg := config.GetConfig()
	storeCfg := schemaconfig.GetConfig()

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(middleware.CORSMiddleware())

	ctx := context.Background()

	// Create the verse store. Store initialization failure is fatal; there
	// is no degraded serving mode without the corpus.
	var store repository.VerseStore
	var vertexStore *vertex.VerseStore // For cleanup

	switch cfg.VectorBackend {
	case "memory":
		log.Println("Using in-memory verse store (non-persistent, dev only)")
		store = memory.NewVerseStore()
	case "vertex":
		log.Println("Using Vertex AI Vector Search backend")
		pgStore := mustPostgresStore(ctx)
		vertexCfg := vertex.Config{
			ProjectID:            cfg.VertexProjectID,
			Location:             cfg.VertexLocation,
			IndexEndpointID:      cfg.VertexIndexEndpointID,
			DeployedIndexID:      cfg.VertexDeployedIndexID,
			PublicEndpointDomain: cfg.VertexPublicEndpointDomain,
		}
		var err error
		vertexStore, err = vertex.NewVerseStore(ctx, vertexCfg, pgStore)
		if err != nil {
			log.Fatalf("Failed to create Vertex AI verse store: %v", err)
		}
		store = vertexStore
	default:
		log.Println("Using pgvector backend")
		store = mustPostgresStore(ctx)
	}

	// Embeddings handle: constructed eagerly, backend loaded lazily on the
	// first concept search.
	embeddingsSvc := pkgservices.NewEmbeddingsService(storeCfg)

	// Resolvers
	referenceResolver := services.NewReferenceResolver(store)
	conceptResolver := services.NewConceptResolver(store, embeddingsSvc, referenceResolver)

	// Generative collaborator (optional at runtime; handlers degrade)
	generator := llm.NewClient(storeCfg.LLMBaseURL, storeCfg.LLMModel)

	// Create API group with prefix
	api := e.Group(cfg.APIPrefix)

	// Register handlers
	healthHandler := handlers.NewHealthHandler(store)
	healthHandler.RegisterRoutes(api)

	verseHandler := handlers.NewVerseHandler(referenceResolver)
	verseHandler.RegisterRoutes(api)

	searchHandler := handlers.NewSearchHandler(conceptResolver)
	searchHandler.RegisterRoutes(api)

	compareHandler := handlers.NewCompareHandler(referenceResolver, generator)
	compareHandler.RegisterRoutes(api)

	// Root health check
	e.GET("/", func(c echo.Context) error {
		return c.JSON(200, map[string]string{
			"name":    cfg.APITitle,
			"version": cfg.APIVersion,
			"status":  "running",
		})
	})

	// Start server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Port)
		log.Printf("Starting %s v%s on %s", cfg.APITitle, cfg.APIVersion, addr)
		if err := e.Start(addr); err != nil {
			log.Printf("Server stopped: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error shutting down server: %v", err)
	}

	if db.PostgresEnabled() {
		if err := db.ClosePostgres(); err != nil {
			log.Printf("Error closing PostgreSQL: %v", err)
		}
	}

	// Close Vertex AI client if used
	if vertexStore != nil {
		if err := vertexStore.Close(); err != nil {
			log.Printf("Error closing Vertex AI client: %v", err)
		}
	}

	log.Println("Server stopped")
}

func mustPostgresStore(ctx context.Context) *postgres.VerseStore {
	if err := db.InitPostgres(ctx); err != nil {
		log.Fatalf("Failed to initialize PostgreSQL: %v", err)
	}
	log.Println("Database initialization complete")
	return postgres.NewVerseStore(db.GetPostgres())
}
