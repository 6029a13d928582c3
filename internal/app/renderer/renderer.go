package renderer

import (
	"context"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/ano333333/llm-time-manager/internal/app/observability/metrics"
)

// HTMLTemplRenderer lets c.HTML take a templ.Component as data. Anything
// else goes to FallbackHTMLRenderer.
type HTMLTemplRenderer struct {
	FallbackHTMLRenderer render.HTMLRender
}

func (r *HTMLTemplRenderer) Instance(s string, d any) render.Render {
	templData, ok := d.(templ.Component)
	if !ok {
		if r.FallbackHTMLRenderer != nil {
			return r.FallbackHTMLRenderer.Instance(s, d)
		}
	}
	return &Renderer{
		Ctx:       context.Background(),
		Status:    -1,
		Component: templData,
		Name:      s,
	}
}

// New builds a renderer bound to the request context of c.
func New(c *gin.Context, status int, component templ.Component) *Renderer {
	return &Renderer{
		Ctx:       c.Request.Context(),
		Status:    status,
		Component: component,
		Name:      c.FullPath(),
	}
}

type Renderer struct {
	Ctx       context.Context
	Status    int
	Component templ.Component
	Name      string
}

func (t Renderer) Render(w http.ResponseWriter) error {
	t.WriteContentType(w)
	if t.Status != -1 {
		w.WriteHeader(t.Status)
	}
	if t.Component == nil {
		return nil
	}

	start := time.Now()
	err := t.Component.Render(t.Ctx, w)
	metrics.Get().TemplateRenderDuration.Record(t.Ctx, time.Since(start).Seconds(),
		metric.WithAttributes(attribute.String("template", t.Name)))
	return err
}

func (t Renderer) WriteContentType(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
}
