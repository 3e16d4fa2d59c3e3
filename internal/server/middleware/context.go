package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/meridian-research/triad/pkg/ai"
	"github.com/meridian-research/triad/pkg/cypher"
	"github.com/meridian-research/triad/pkg/graph"
	"github.com/meridian-research/triad/pkg/retrieval"
	"github.com/meridian-research/triad/pkg/store/cache"
	"github.com/meridian-research/triad/pkg/store/graphdb"
	"github.com/meridian-research/triad/pkg/store/vector"
	"github.com/meridian-research/triad/pkg/websearch"
)

// App carries the constructed service handles every handler needs. It is
// built once at startup; handlers must not mutate it.
type App struct {
	AiClient     ai.Client
	GraphClient  *graph.GraphClient
	GraphDB      *graphdb.Client
	VectorIndex  *vector.Index
	Cache        cache.Cache
	Translator   *cypher.Translator
	Web          *websearch.Client
	Orchestrator *retrieval.Orchestrator
}

type AppContext struct {
	echo.Context
	App *App
}

func AppContextMiddleware(app *App) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cc := &AppContext{c, app}
			return next(cc)
		}
	}
}
