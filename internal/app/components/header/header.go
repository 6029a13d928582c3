package header

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/a-h/templ"

	"github.com/ano333333/llm-time-manager/internal/app/components/ui"
	"github.com/ano333333/llm-time-manager/internal/app/models"
)

// ElementID is the id of the rendered header, the target of toggle swaps.
const ElementID = "app-header"

// SearchPlaceholder is the placeholder of the search input.
const SearchPlaceholder = "タスク、目標、設定を検索..."

var weekdays = [7]string{"日", "月", "火", "水", "木", "金", "土"}

// FormatDate renders t as 2025年1月5日（日） in t's own location.
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%d年%d月%d日（%s）", t.Year(), int(t.Month()), t.Day(), weekdays[t.Weekday()])
}

type menuItem struct {
	Label    string
	Shortcut string
}

var menuItems = []menuItem{
	{Label: "ショートカット", Shortcut: "Cmd+K"},
	{Label: "ヘルプ"},
	{Label: "バージョン情報"},
}

type Props struct {
	State models.HeaderState
	Now   time.Time
	// ReturnPath is where a toggle without htmx redirects back to.
	ReturnPath string
}

// TogglePath is the endpoint that flips panel for the header instance id.
func TogglePath(id string, panel models.HeaderPanel) string {
	return "/ui/header/" + url.PathEscape(id) + "/" + string(panel)
}

const buttonClass = "header-button inline-flex items-center justify-center rounded-md p-2 text-gray-600 hover:bg-gray-100"

func Header(p Props) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		out := ui.NewWriter(w)
		out.Raw(`<header`)
		out.Attr("id", ElementID)
		out.Attr("class", "header border-b border-gray-200 bg-white")
		out.Attr("data-header-id", p.State.ID)
		out.Raw(`><div class="header-content flex items-center justify-between px-4 py-3">`)
		out.Raw(`<div class="header-left flex items-baseline gap-3"><h1 class="header-title text-lg font-bold">`)
		out.Text(models.HeaderTitle)
		out.Raw(`</h1><span class="header-date text-sm text-gray-500">`)
		out.Text(FormatDate(p.Now))
		out.Raw(`</span></div><div class="header-right flex items-center gap-2">`)

		toggleButton(out, p, models.PanelSearch, p.State.SearchOpen, "検索", "検索 (Cmd/Ctrl+K)", searchIcon)
		toggleButton(out, p, models.PanelMenu, p.State.MenuOpen, "メニュー", "メニュー", menuIcon)

		out.Raw(`</div></div>`)

		if p.State.SearchOpen {
			out.Raw(`<div class="search-panel px-4 pb-3"><input type="text" name="q" class="search-input w-full rounded-md border border-gray-300 px-3 py-2"`)
			out.Attr("placeholder", SearchPlaceholder)
			out.Attr("aria-label", "検索")
			out.Attr("hx-get", "/ui/search")
			out.Attr("hx-trigger", "input changed delay:300ms")
			out.Attr("hx-target", "#search-results")
			out.Raw(` autofocus><div id="search-results" class="search-results"></div></div>`)
		}

		if p.State.MenuOpen {
			out.Raw(`<div class="global-menu px-4 pb-3"><ul class="menu-list">`)
			for _, item := range menuItems {
				out.Raw(`<li><a href="#" class="menu-item flex justify-between py-1"><span>`)
				out.Text(item.Label)
				out.Raw(`</span>`)
				if item.Shortcut != "" {
					out.Raw(`<span class="menu-shortcut text-xs text-gray-400">`)
					out.Text(item.Shortcut)
					out.Raw(`</span>`)
				}
				out.Raw(`</a></li>`)
			}
			out.Raw(`</ul></div>`)
		}

		out.Raw(`</header>`)
		return out.Err()
	})
}

// toggleButton renders a form so the toggle also works without htmx.
func toggleButton(out *ui.Writer, p Props, panel models.HeaderPanel, open bool, label, title, icon string) {
	action := TogglePath(p.State.ID, panel)
	out.Raw(`<form method="post" class="inline"`)
	out.URLAttr("action", action)
	out.Raw(`><input type="hidden" name="return"`)
	out.Attr("value", p.ReturnPath)
	out.Raw(`><button type="submit"`)
	out.Attr("class", buttonClass)
	out.Attr("data-panel", string(panel))
	out.Attr("aria-label", label)
	out.Attr("title", title)
	out.Attr("aria-expanded", fmt.Sprint(open))
	out.URLAttr("hx-post", action)
	out.Attr("hx-target", "#"+ElementID)
	out.Attr("hx-swap", "outerHTML")
	out.Raw(`>`, icon, `</button></form>`)
}

const searchIcon = `<svg width="20" height="20" viewBox="0 0 20 20" fill="none" xmlns="http://www.w3.org/2000/svg" aria-hidden="true"><path d="M9 17A8 8 0 1 0 9 1a8 8 0 0 0 0 16zM19 19l-4.35-4.35" stroke="currentColor" stroke-width="2" stroke-linecap="round" stroke-linejoin="round"/></svg>`

const menuIcon = `<svg width="20" height="20" viewBox="0 0 20 20" fill="none" xmlns="http://www.w3.org/2000/svg" aria-hidden="true"><path d="M3 10h14M3 5h14M3 15h14" stroke="currentColor" stroke-width="2" stroke-linecap="round"/></svg>`
