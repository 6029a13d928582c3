package navigation

import (
	"context"
	"io"
	"net/url"
	"strings"

	"github.com/a-h/templ"

	"github.com/ano333333/llm-time-manager/internal/app/components/ui"
	"github.com/ano333333/llm-time-manager/internal/app/models"
)

// ElementID is the id of the rendered nav, used for out of band swaps.
const ElementID = "app-nav"

const (
	linkClass   = "nav-link flex items-center gap-2 rounded-md px-3 py-2 text-sm text-gray-700 hover:bg-gray-100"
	activeClass = "active bg-blue-50 text-blue-700 font-semibold hover:bg-blue-50"
)

// IsActive reports whether the entry at itemPath is active for currentPath.
// The root entry needs an exact match; every other entry matches by plain
// string prefix, so "/task" would also match "/tasks123".
func IsActive(itemPath, currentPath string) bool {
	if itemPath == "/" {
		return currentPath == itemPath
	}
	return strings.HasPrefix(currentPath, itemPath)
}

// ActiveIndex returns the index of the first active entry, or -1.
func ActiveIndex(nav models.Navigation, currentPath string) int {
	for i, item := range nav.Items {
		if IsActive(item.Path, currentPath) {
			return i
		}
	}
	return -1
}

type Props struct {
	Nav  models.Navigation
	Path string
	// OOB marks the nav for an htmx out of band swap.
	OOB bool
	// HeaderID, when set, is appended to every href so a plain link keeps
	// the header instance. hx-get targets stay bare.
	HeaderID string
}

// Href is the link target of path for header instance id.
func Href(path, headerID string) string {
	if headerID == "" {
		return path
	}
	return path + "?" + url.Values{models.HeaderQueryKey: {headerID}}.Encode()
}

// Navigation renders the entries in declaration order.
func Navigation(p Props) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		out := ui.NewWriter(w)
		out.Raw(`<nav`)
		out.Attr("id", ElementID)
		out.Attr("class", "navigation w-full md:w-56 shrink-0 border-r border-gray-200 p-4")
		out.Attr("aria-label", "メインナビゲーション")
		if p.OOB {
			out.Attr("hx-swap-oob", "true")
		}
		out.Raw(`><ul class="nav-list flex md:flex-col gap-1">`)
		for _, item := range p.Nav.Items {
			active := IsActive(item.Path, p.Path)
			out.Raw(`<li class="nav-item">`)
			out.Raw(`<a`)
			out.URLAttr("href", Href(item.Path, p.HeaderID))
			out.URLAttr("hx-get", item.Path)
			out.Attr("hx-target", "#app-main")
			out.Attr("hx-push-url", "true")
			if active {
				out.Attr("class", ui.Class(linkClass, activeClass))
				out.Attr("aria-current", "page")
			} else {
				out.Attr("class", linkClass)
			}
			out.Raw(`><span class="nav-icon" role="img"`)
			out.Attr("aria-label", item.Label)
			out.Raw(`>`)
			out.Text(item.Icon)
			out.Raw(`</span><span class="nav-label">`)
			out.Text(item.Label)
			out.Raw(`</span></a></li>`)
		}
		out.Raw(`</ul></nav>`)
		return out.Err()
	})
}
