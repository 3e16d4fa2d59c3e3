package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	mid "github.com/meridian-research/triad/internal/server/middleware"
	"github.com/meridian-research/triad/internal/util"
	"github.com/meridian-research/triad/pkg/cypher"
	"github.com/meridian-research/triad/pkg/graph"
	"github.com/meridian-research/triad/pkg/logger"
	"github.com/meridian-research/triad/pkg/retrieval"
	"github.com/meridian-research/triad/pkg/store/cache"
	"github.com/meridian-research/triad/pkg/store/graphdb"
	"github.com/meridian-research/triad/pkg/store/vector"
	"github.com/meridian-research/triad/pkg/websearch"

	"github.com/go-playground/validator"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	aiopenai "github.com/meridian-research/triad/pkg/ai/openai"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i any) error {
	if err := cv.validator.Struct(i); err != nil {
		return err
	}
	return nil
}

func Init() {
	e := echo.New()
	e.Validator = &CustomValidator{validator: validator.New()}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	aiClient := aiopenai.NewClient(aiopenai.NewClientParams{
		ChatModel:      util.GetEnvString("AI_CHAT_MODEL", "gpt-4o-mini"),
		EmbeddingModel: util.GetEnvString("AI_EMBED_MODEL", "text-embedding-3-small"),
		BaseURL:        util.GetEnv("AI_BASE_URL"),
		APIKey:         util.GetEnv("AI_API_KEY"),
	})

	graphDB, err := graphdb.NewClientFromEnv(ctx)
	if err != nil {
		logger.Fatal("Failed to connect to neo4j", "err", err)
	}
	if graphDB != nil {
		defer graphDB.Close(ctx)
	}

	docCache := cache.NewCacheFromEnv(ctx)
	vectorIndex := vector.NewIndex(aiClient)
	webClient := websearch.NewClient(time.Duration(util.GetEnvInt("WEB_SEARCH_TIMEOUT_SECONDS", 15)) * time.Second)
	translator := cypher.NewTranslator(aiClient)

	var graphSource retrieval.GraphSource
	if graphDB != nil {
		graphSource = graphDB
	}
	orchestrator := retrieval.NewOrchestrator(retrieval.NewOrchestratorParams{
		AiClient:   aiClient,
		Vector:     vectorIndex,
		Graph:      graphSource,
		Translator: translator,
		Web:        webClient,
		VectorTopK: util.GetEnvInt("RETRIEVAL_TOP_K", 3),
	})

	app := &mid.App{
		AiClient:     aiClient,
		GraphClient:  graph.NewGraphClientFromEnv(),
		GraphDB:      graphDB,
		VectorIndex:  vectorIndex,
		Cache:        docCache,
		Translator:   translator,
		Web:          webClient,
		Orchestrator: orchestrator,
	}

	e.Use(mid.AppContextMiddleware(app))
	e.Use(middleware.CORS())
	e.Use(middleware.RequestLogger())
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit("64M"))

	RegisterRoutes(e)

	go func() {
		port := util.GetEnv("PORT")
		if port == "" {
			port = "8080"
		}
		logger.Info("Starting server", "port", port)
		if err := e.Start(":" + port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed shutting down server", "err", err)
		}
	}()

	<-ctx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Failed to shutdown server", "err", err)
	}
}
