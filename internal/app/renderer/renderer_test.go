package renderer

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hello() templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "<p>hello</p>")
		return err
	})
}

func TestNewWritesStatusAndComponent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/", func(c *gin.Context) {
		c.Render(http.StatusTeapot, New(c, http.StatusTeapot, hello()))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusTeapot, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, "<p>hello</p>", w.Body.String())
}

func TestHTMLWithComponentData(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.HTMLRender = &HTMLTemplRenderer{FallbackHTMLRenderer: r.HTMLRender}
	r.GET("/", func(c *gin.Context) {
		c.HTML(http.StatusOK, "", hello())
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "<p>hello</p>", w.Body.String())
}

func TestNilComponentWritesNothing(t *testing.T) {
	w := httptest.NewRecorder()
	require.NoError(t, Renderer{Ctx: context.Background(), Status: http.StatusNoContent}.Render(w))
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}
