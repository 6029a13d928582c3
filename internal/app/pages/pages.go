package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/ano333333/llm-time-manager/internal/app/components/ui"
)

// BackLinkLabel is the text of the link every page shows back to Home.
const BackLinkLabel = "← ホームに戻る"

// Page is one entry of the route table.
type Page struct {
	Path string
	// Name is used in the document title; empty means the bare app name.
	Name        string
	Heading     string
	Description string
	Component   templ.Component
}

// Table is an ordered list of literal paths with a catch-all fallback.
type Table struct {
	Routes   []Page
	NotFound Page
}

// Resolve returns the first route whose path equals path exactly, or the
// fallback page. ok is false when the fallback was used.
func (t Table) Resolve(path string) (page Page, ok bool) {
	for _, p := range t.Routes {
		if p.Path == path {
			return p, true
		}
	}
	return t.NotFound, false
}

func placeholder(heading, description string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		out := ui.NewWriter(w)
		out.Raw(`<section class="page"><h1 class="text-2xl font-bold">`)
		out.Text(heading)
		out.Raw(`</h1><p class="mt-2 text-gray-600">`)
		out.Text(description)
		out.Raw(`</p><div class="mt-8">`)
		backLink(out)
		out.Raw(`</div></section>`)
		return out.Err()
	})
}

func backLink(out *ui.Writer) {
	out.Raw(`<a href="/" hx-get="/" hx-target="#app-main" hx-push-url="true" class="back-link text-blue-700 hover:underline">`)
	out.Text(BackLinkLabel)
	out.Raw(`</a>`)
}

func newPage(path, name, heading, description string) Page {
	return Page{
		Path:        path,
		Name:        name,
		Heading:     heading,
		Description: description,
		Component:   placeholder(heading, description),
	}
}

var (
	Chat     = newPage("/chat", "チャット", "💬 LLMチャット", "LLMとの対話画面です。")
	Tasks    = newPage("/tasks", "タスク", "✅ タスク一覧", "タスクの管理画面です。")
	Goals    = newPage("/goals", "目標", "🎯 目標一覧", "目標の管理画面です。")
	Capture  = newPage("/capture", "キャプチャ", "📸 キャプチャ設定", "画面キャプチャの設定画面です。")
	Settings = newPage("/settings/local", "設定", "⚙️ ローカル設定", "アプリケーションの設定画面です。")
	NotFound = newPage("", "ページが見つかりません", "404 - ページが見つかりません", "お探しのページは存在しません。")
	Home     = homePage()
)

// Shortcuts are the pages Home links to, in display order.
var Shortcuts = []Page{Chat, Goals, Tasks, Capture, Settings}

func homePage() Page {
	heading := "LLM時間管理ツール"
	description := "ホーム画面へようこそ"
	return Page{
		Path:        "/",
		Heading:     heading,
		Description: description,
		Component: templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			out := ui.NewWriter(w)
			out.Raw(`<section class="page"><h1 class="text-2xl font-bold">`)
			out.Text(heading)
			out.Raw(`</h1><p class="mt-2 text-gray-600">`)
			out.Text(description)
			out.Raw(`</p><ul class="home-links mt-8 flex flex-col gap-4">`)
			for _, p := range Shortcuts {
				out.Raw(`<li><a`)
				out.URLAttr("href", p.Path)
				out.URLAttr("hx-get", p.Path)
				out.Raw(` hx-target="#app-main" hx-push-url="true" class="text-blue-700 hover:underline">`)
				out.Text(p.Heading)
				out.Raw(`</a></li>`)
			}
			out.Raw(`</ul></section>`)
			return out.Err()
		}),
	}
}

// Default is the route table of the shell.
var Default = Table{
	Routes:   []Page{Home, Chat, Tasks, Goals, Capture, Settings},
	NotFound: NotFound,
}
