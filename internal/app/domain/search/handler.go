package search

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	searchui "github.com/ano333333/llm-time-manager/internal/app/components/search"
	"github.com/ano333333/llm-time-manager/internal/app/domain"
	"github.com/ano333333/llm-time-manager/internal/app/observability/metrics"
)

type Handler struct {
	*domain.BaseHandler
	index *Index
}

func NewHandler(base *domain.BaseHandler, index *Index) *Handler {
	return &Handler{BaseHandler: base, index: index}
}

// Results answers GET /ui/search?q= with the results fragment.
func (h *Handler) Results(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	items := h.index.Search(query)

	metrics.Get().SearchRequestsTotal.Add(c.Request.Context(), 1)
	h.Logger.Debug("Header search", zap.String("query", query), zap.Int("hits", len(items)))

	h.Render(c, http.StatusOK, searchui.Results(query, items))
}
