package domain

import (
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ano333333/llm-time-manager/internal/app/components/layout"
	"github.com/ano333333/llm-time-manager/internal/app/middleware"
	"github.com/ano333333/llm-time-manager/internal/app/models"
	"github.com/ano333333/llm-time-manager/internal/app/pages"
	"github.com/ano333333/llm-time-manager/internal/app/renderer"
	"github.com/ano333333/llm-time-manager/internal/pkg/cache"
)

// HeaderQueryKey carries a header instance id across a full page load.
const HeaderQueryKey = models.HeaderQueryKey

type BaseHandler struct {
	Logger   *zap.Logger
	Headers  *cache.HeaderStore
	Nav      models.Navigation
	Location *time.Location
	// Now is the clock the header date is computed from.
	Now func() time.Time
}

func NewBaseHandler(logger *zap.Logger, headers *cache.HeaderStore, loc *time.Location) *BaseHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &BaseHandler{
		Logger:   logger,
		Headers:  headers,
		Nav:      models.MainNav,
		Location: loc,
		Now:      time.Now,
	}
}

// Today is the current instant in the configured zone.
func (h *BaseHandler) Today() time.Time {
	return h.Now().In(h.Location)
}

func (h *BaseHandler) render(c *gin.Context, status int, component templ.Component) {
	if err := renderer.New(c, status, component).Render(c.Writer); err != nil {
		h.Logger.Error("Failed to render", zap.String("path", c.Request.URL.Path), zap.Error(err))
	}
}

// Render writes a bare component, used for htmx fragments.
func (h *BaseHandler) Render(c *gin.Context, status int, component templ.Component) {
	h.render(c, status, component)
}

// RenderPage answers htmx navigations with a partial and everything else
// with the full document. A full document resumes the header named by the
// header query parameter, or mints a new one.
func (h *BaseHandler) RenderPage(c *gin.Context, status int, page pages.Page) {
	data := models.LayoutTempl{
		Title:   layout.Title(page.Name),
		Path:    c.Request.URL.Path,
		Nav:     h.Nav,
		Content: page.Component,
	}

	if middleware.IsHTMX(c) && !middleware.IsHistoryRestore(c) {
		c.Header("Vary", "HX-Request")
		h.render(c, status, layout.Partial(data))
		return
	}

	id := c.Query(HeaderQueryKey)
	data.Header = h.Headers.Resume(id)
	data.ResumedHeader = id != "" && data.Header.ID == id
	c.Header("Vary", "HX-Request")
	h.render(c, status, layout.LayoutPage(data, h.Today()))
}

// PageHandler serves page with status 200.
func (h *BaseHandler) PageHandler(page pages.Page) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.RenderPage(c, http.StatusOK, page)
	}
}

// NotFoundHandler serves the fallback page of table with status 404.
func (h *BaseHandler) NotFoundHandler(table pages.Table) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.RenderPage(c, http.StatusNotFound, table.NotFound)
	}
}
