package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ano333333/llm-time-manager/internal/app/domain"
	"github.com/ano333333/llm-time-manager/internal/app/domain/capture"
	"github.com/ano333333/llm-time-manager/internal/app/domain/goals"
	"github.com/ano333333/llm-time-manager/internal/app/domain/header"
	"github.com/ano333333/llm-time-manager/internal/app/domain/search"
	"github.com/ano333333/llm-time-manager/internal/app/pages"
	"github.com/ano333333/llm-time-manager/internal/app/renderer"
	database "github.com/ano333333/llm-time-manager/internal/db"
	"github.com/ano333333/llm-time-manager/internal/pkg/cache"
)

// Dependencies are the collaborators the routes are built from. DB may be
// nil, in which case the /api group is not mounted.
type Dependencies struct {
	Logger   *zap.Logger
	Headers  *cache.HeaderStore
	Location *time.Location
	DB       database.Pool
	// Now overrides the clock of the header date; nil means time.Now.
	Now func() time.Time
}

type AppHandlers struct {
	Pages   *domain.BaseHandler
	Header  *header.Handler
	Search  *search.Handler
	Goals   *goals.Handler
	Capture *capture.Handler
}

func Setup(r *gin.Engine, deps Dependencies) {
	// Setup custom templ renderer
	ginHTMLRenderer := r.HTMLRender
	r.HTMLRender = &renderer.HTMLTemplRenderer{FallbackHTMLRenderer: ginHTMLRenderer}

	setupRouter(r, setupDependencies(deps), pages.Default, deps.Logger)
}

func setupDependencies(deps Dependencies) *AppHandlers {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	baseHandler := domain.NewBaseHandler(log, deps.Headers, deps.Location)
	if deps.Now != nil {
		baseHandler.Now = deps.Now
	}

	handlers := &AppHandlers{
		Pages:  baseHandler,
		Header: header.NewHandler(baseHandler),
		Search: search.NewHandler(baseHandler, search.NewIndex(baseHandler.Nav, pages.Default)),
	}

	if deps.DB != nil {
		goalsRepo := goals.NewRepository(deps.DB, log)
		captureRepo := capture.NewRepository(deps.DB, log)

		handlers.Goals = goals.NewHandler(goals.NewService(goalsRepo, log), baseHandler.Location, log)
		handlers.Capture = capture.NewHandler(capture.NewService(captureRepo, log), log)
	} else {
		log.Info("No database configured, API routes disabled")
	}

	return handlers
}

func setupRouter(r *gin.Engine, h *AppHandlers, table pages.Table, log *zap.Logger) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Route pages
	for _, page := range table.Routes {
		r.GET(page.Path, h.Pages.PageHandler(page))
	}

	// HTMX fragments
	uiGroup := r.Group("/ui")
	{
		uiGroup.POST("/header/:id/:panel", h.Header.Toggle)
		uiGroup.GET("/search", h.Search.Results)
	}

	if h.Goals != nil && h.Capture != nil {
		apiGroup := r.Group("/api")
		{
			apiGroup.GET("/goal", h.Goals.List)
			apiGroup.POST("/goal", h.Goals.Create)
			apiGroup.GET("/capture/schedule", h.Capture.Get)
			apiGroup.PUT("/capture/schedule", h.Capture.Update)
		}
		if log != nil {
			log.Info("API routes mounted", zap.String("prefix", "/api"))
		}
	}

	r.NoRoute(h.Pages.NotFoundHandler(table))
}
