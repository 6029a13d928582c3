package layout

import (
	"context"
	"io"
	"time"

	"github.com/a-h/templ"

	"github.com/ano333333/llm-time-manager/internal/app/components/header"
	"github.com/ano333333/llm-time-manager/internal/app/components/navigation"
	"github.com/ano333333/llm-time-manager/internal/app/components/ui"
	"github.com/ano333333/llm-time-manager/internal/app/models"
)

// MainID is the id of the content region that htmx navigation targets.
const MainID = "app-main"

const htmxSrc = "https://unpkg.com/htmx.org@2.0.4"

// Layout renders the header, then the navigation beside the page content.
func Layout(data models.LayoutTempl, now time.Time) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		out := ui.NewWriter(w)
		out.Raw(`<div class="layout flex min-h-screen flex-col">`)
		out.Component(ctx, header.Header(header.Props{
			State:      data.Header,
			Now:        now,
			ReturnPath: data.Path,
		}))
		out.Raw(`<div class="layout-body flex flex-1 flex-col md:flex-row">`)
		out.Component(ctx, navigation.Navigation(navigation.Props{Nav: data.Nav, Path: data.Path, HeaderID: resumedID(data)}))
		out.Raw(`<main`)
		out.Attr("id", MainID)
		out.Raw(` class="layout-content flex-1 p-8">`)
		out.Component(ctx, data.Content)
		out.Raw(`</main></div></div>`)
		return out.Err()
	})
}

// LayoutPage wraps Layout in a complete HTML document.
func LayoutPage(data models.LayoutTempl, now time.Time) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		out := ui.NewWriter(w)
		out.Raw(`<!DOCTYPE html><html lang="ja"><head><meta charset="utf-8">`)
		out.Raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		out.Raw(`<title>`)
		out.Text(data.Title)
		out.Raw(`</title><link rel="stylesheet" href="/assets/css/app.css">`)
		out.Raw(`<script`)
		out.Attr("src", htmxSrc)
		out.Raw(` defer></script></head><body class="bg-gray-50 text-gray-900">`)
		out.Component(ctx, Layout(data, now))
		out.Raw(`</body></html>`)
		return out.Err()
	})
}

// Partial is the htmx response of a navigation: the page content for main,
// plus the title and an out of band navigation so the active entry follows.
// The header is not part of it and stays mounted.
func Partial(data models.LayoutTempl) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		out := ui.NewWriter(w)
		out.Raw(`<title>`)
		out.Text(data.Title)
		out.Raw(`</title>`)
		out.Component(ctx, data.Content)
		out.Component(ctx, navigation.Navigation(navigation.Props{Nav: data.Nav, Path: data.Path, OOB: true}))
		return out.Err()
	})
}

// Title is the document title of a page called name.
func Title(name string) string {
	if name == "" {
		return models.AppName
	}
	return name + " - " + models.AppName
}

func resumedID(data models.LayoutTempl) string {
	if data.ResumedHeader {
		return data.Header.ID
	}
	return ""
}
