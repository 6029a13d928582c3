package navigation

import (
	"context"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"

	"github.com/ano333333/llm-time-manager/internal/app/models"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestIsActive(t *testing.T) {
	tests := []struct {
		name     string
		itemPath string
		current  string
		want     bool
	}{
		{"root matches root", "/", "/", true},
		{"root never matches by prefix", "/", "/chat", false},
		{"exact path", "/chat", "/chat", true},
		{"deeper path", "/settings/local", "/settings/local/theme", true},
		{"shallower path", "/settings/local", "/settings", false},
		{"sibling by string prefix", "/task", "/tasks123", true},
		{"unrelated", "/goals", "/tasks", false},
		{"not found path", "/chat", "/non-existent-page", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsActive(tt.itemPath, tt.current); got != tt.want {
				t.Errorf("IsActive(%q, %q) = %v, want %v", tt.itemPath, tt.current, got, tt.want)
			}
		})
	}
}

func TestActiveIndex(t *testing.T) {
	for i, item := range models.MainNav.Items {
		if got := ActiveIndex(models.MainNav, item.Path); got != i {
			t.Errorf("ActiveIndex(%q) = %d, want %d", item.Path, got, i)
		}
	}
	if got := ActiveIndex(models.MainNav, "/non-existent-page"); got != -1 {
		t.Errorf("ActiveIndex for unknown path = %d, want -1", got)
	}
}

func render(t *testing.T, p Props) *goquery.Document {
	t.Helper()
	var sb strings.Builder
	if err := Navigation(p).Render(context.Background(), &sb); err != nil {
		t.Fatalf("failed to render: %v", err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(sb.String()))
	if err != nil {
		t.Fatalf("failed to read rendered HTML: %v", err)
	}
	return doc
}

func TestNavigation(t *testing.T) {
	t.Run("it renders the entries in declaration order", func(t *testing.T) {
		doc := render(t, Props{Nav: models.MainNav, Path: "/"})

		var got []string
		doc.Find("nav a").Each(func(_ int, s *goquery.Selection) {
			href, _ := s.Attr("href")
			got = append(got, href)
		})
		want := []string{"/", "/chat", "/tasks", "/goals", "/capture", "/settings/local"}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("link order mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("it marks exactly the matching entry active", func(t *testing.T) {
		for _, item := range models.MainNav.Items {
			doc := render(t, Props{Nav: models.MainNav, Path: item.Path})

			active := doc.Find("nav a.active")
			if active.Length() != 1 {
				t.Fatalf("path %q: expected 1 active link, got %d", item.Path, active.Length())
			}
			if href, _ := active.Attr("href"); href != item.Path {
				t.Errorf("path %q: active link is %q", item.Path, href)
			}
			if cur, _ := active.Attr("aria-current"); cur != "page" {
				t.Errorf("path %q: expected aria-current=page, got %q", item.Path, cur)
			}
		}
	})

	t.Run("it marks nothing active for an unknown path", func(t *testing.T) {
		doc := render(t, Props{Nav: models.MainNav, Path: "/non-existent-page"})

		if n := doc.Find("nav a.active").Length(); n != 0 {
			t.Errorf("expected no active link, got %d", n)
		}
	})

	t.Run("it resolves class conflicts for the active link", func(t *testing.T) {
		doc := render(t, Props{Nav: models.MainNav, Path: "/chat"})

		active := doc.Find("nav a.active")
		if active.HasClass("text-gray-700") {
			t.Error("expected the active text colour to replace the default one")
		}
		if !active.HasClass("text-blue-700") {
			t.Error("expected the active text colour")
		}
	})

	t.Run("it wires htmx navigation into main", func(t *testing.T) {
		doc := render(t, Props{Nav: models.MainNav, Path: "/"})

		link := doc.Find(`nav a[href="/goals"]`)
		if target, _ := link.Attr("hx-target"); target != "#app-main" {
			t.Errorf(`expected hx-target "#app-main", got %q`, target)
		}
		if push, _ := link.Attr("hx-push-url"); push != "true" {
			t.Errorf(`expected hx-push-url "true", got %q`, push)
		}
		if _, ok := doc.Find("nav").Attr("hx-swap-oob"); ok {
			t.Error("expected no hx-swap-oob on a full render")
		}
	})

	t.Run("it flags out of band renders", func(t *testing.T) {
		doc := render(t, Props{Nav: models.MainNav, Path: "/", OOB: true})

		if oob, _ := doc.Find("nav#" + ElementID).Attr("hx-swap-oob"); oob != "true" {
			t.Errorf(`expected hx-swap-oob "true", got %q`, oob)
		}
	})
}

func TestHeaderIDIsCarriedOnHrefs(t *testing.T) {
	doc := render(t, Props{Nav: models.MainNav, Path: "/chat", HeaderID: "abc-123"})

	var hrefs, hxGets []string
	doc.Find("nav a").Each(func(_ int, s *goquery.Selection) {
		hrefs = append(hrefs, s.AttrOr("href", ""))
		hxGets = append(hxGets, s.AttrOr("hx-get", ""))
	})

	var wantHrefs, wantGets []string
	for _, item := range models.MainNav.Items {
		wantHrefs = append(wantHrefs, item.Path+"?header=abc-123")
		wantGets = append(wantGets, item.Path)
	}
	if diff := cmp.Diff(wantHrefs, hrefs); diff != "" {
		t.Errorf("hrefs mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(wantGets, hxGets); diff != "" {
		t.Errorf("hx-get targets mismatch (-want +got):\n%s", diff)
	}
}

func TestHref(t *testing.T) {
	if got := Href("/tasks", ""); got != "/tasks" {
		t.Errorf("Href without id = %q", got)
	}
	if got := Href("/settings/local", "a b"); got != "/settings/local?header=a+b" {
		t.Errorf("Href with id = %q", got)
	}
}
