package models

import "github.com/a-h/templ"

// AppName is the product name shown in document titles.
const AppName = "LLM時間管理ツール"

// HeaderTitle is the short title printed in the header banner.
const HeaderTitle = "LLM時間管理"

type NavItem struct {
	Path  string
	Label string
	Icon  string
}

type Navigation struct {
	Items []NavItem
}

// MainNav is the fixed, ordered navigation of the shell.
var MainNav = Navigation{
	Items: []NavItem{
		{Path: "/", Label: "ホーム", Icon: "🏠"},
		{Path: "/chat", Label: "チャット", Icon: "💬"},
		{Path: "/tasks", Label: "タスク", Icon: "✅"},
		{Path: "/goals", Label: "目標", Icon: "🎯"},
		{Path: "/capture", Label: "キャプチャ", Icon: "📸"},
		{Path: "/settings/local", Label: "設定", Icon: "⚙️"},
	},
}

// HeaderPanel names one of the header's toggleable panels.
type HeaderPanel string

const (
	PanelSearch HeaderPanel = "search"
	PanelMenu   HeaderPanel = "menu"
)

// ParseHeaderPanel maps a URL segment to a panel.
func ParseHeaderPanel(s string) (HeaderPanel, error) {
	switch HeaderPanel(s) {
	case PanelSearch, PanelMenu:
		return HeaderPanel(s), nil
	default:
		return "", ErrInvalidPanel
	}
}

// HeaderState is one mounted header and its two panel flags.
type HeaderState struct {
	ID         string
	SearchOpen bool
	MenuOpen   bool
}

// Toggle flips the flag of panel and leaves the other flag alone.
func (s HeaderState) Toggle(panel HeaderPanel) HeaderState {
	switch panel {
	case PanelSearch:
		s.SearchOpen = !s.SearchOpen
	case PanelMenu:
		s.MenuOpen = !s.MenuOpen
	}
	return s
}

// HeaderQueryKey carries a header instance id across a full page load.
const HeaderQueryKey = "header"

type LayoutTempl struct {
	Title  string
	Path   string
	Header HeaderState
	// ResumedHeader is set when the document resumed Header from the query
	// string; nav links then carry its id to the next full load.
	ResumedHeader bool
	Nav           Navigation
	Content       templ.Component
}
