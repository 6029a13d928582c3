package header

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/ano333333/llm-time-manager/internal/app/components/header"
	"github.com/ano333333/llm-time-manager/internal/app/domain"
	"github.com/ano333333/llm-time-manager/internal/app/middleware"
	"github.com/ano333333/llm-time-manager/internal/app/models"
	"github.com/ano333333/llm-time-manager/internal/app/observability/metrics"
)

// ReturnField is the form field naming the page a toggle came from.
const ReturnField = "return"

type Handler struct {
	*domain.BaseHandler
}

func NewHandler(base *domain.BaseHandler) *Handler {
	return &Handler{BaseHandler: base}
}

// Toggle flips one panel of a header instance. htmx gets the header back for
// an outerHTML swap; a plain form post is redirected to the page it came from.
func (h *Handler) Toggle(c *gin.Context) {
	id := c.Param("id")
	panel, err := models.ParseHeaderPanel(c.Param("panel"))
	if err != nil {
		c.String(http.StatusNotFound, "not found")
		return
	}

	state, err := h.Headers.Toggle(id, panel)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			h.Logger.Debug("Toggle on unknown header", zap.String("header_id", id))
			c.String(http.StatusNotFound, "not found")
			return
		}
		h.Logger.Error("Failed to toggle header panel", zap.Error(err))
		c.String(http.StatusInternalServerError, "internal server error")
		return
	}

	metrics.Get().HeaderTogglesTotal.Add(c.Request.Context(), 1,
		metric.WithAttributes(attribute.String("panel", string(panel))))

	if middleware.IsHTMX(c) {
		// the hidden field is stale after an htmx navigation
		current := currentURLPath(c.GetHeader("HX-Current-URL"))
		if current == "" {
			current = c.PostForm(ReturnField)
		}
		returnPath := SafeReturnPath(current)
		h.Render(c, http.StatusOK, header.Header(header.Props{
			State:      state,
			Now:        h.Today(),
			ReturnPath: returnPath,
		}))
		return
	}

	target := SafeReturnPath(c.PostForm(ReturnField))
	c.Redirect(http.StatusSeeOther, target+"?"+url.Values{domain.HeaderQueryKey: {state.ID}}.Encode())
}

// SafeReturnPath keeps p only when it is a local absolute path.
func SafeReturnPath(p string) string {
	if p == "" || !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.Contains(p, `\`) {
		return "/"
	}
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	return p
}

func currentURLPath(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.EscapedPath()
}
