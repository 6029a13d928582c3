package search

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/ano333333/llm-time-manager/internal/app/components/ui"
	"github.com/ano333333/llm-time-manager/internal/app/models"
)

// EmptyMessage is shown when a non-empty query matches nothing.
const EmptyMessage = "一致する項目はありません"

// Results renders the hits under the header search input. A blank query
// renders nothing.
func Results(query string, items []models.NavItem) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		out := ui.NewWriter(w)
		if query == "" {
			return nil
		}
		if len(items) == 0 {
			out.Raw(`<p class="search-empty py-2 text-sm text-gray-500">`)
			out.Text(EmptyMessage)
			out.Raw(`</p>`)
			return out.Err()
		}
		out.Raw(`<ul class="search-results-list mt-2 divide-y divide-gray-100">`)
		for _, item := range items {
			out.Raw(`<li><a`)
			out.URLAttr("href", item.Path)
			out.URLAttr("hx-get", item.Path)
			out.Raw(` hx-target="#app-main" hx-push-url="true" class="search-result flex items-center gap-2 py-2 hover:bg-gray-50">`)
			out.Raw(`<span role="img" aria-hidden="true">`)
			out.Text(item.Icon)
			out.Raw(`</span><span>`)
			out.Text(item.Label)
			out.Raw(`</span></a></li>`)
		}
		out.Raw(`</ul>`)
		return out.Err()
	})
}
