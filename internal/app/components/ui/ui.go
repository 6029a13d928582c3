// Package ui holds the small helpers shared by the shell components.
package ui

import (
	"context"
	"io"

	twmerge "github.com/Oudwins/tailwind-merge-go"
	"github.com/a-h/templ"
)

// Writer keeps the first write error so component bodies read top to bottom.
type Writer struct {
	w   io.Writer
	err error
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Raw writes trusted markup as is.
func (w *Writer) Raw(parts ...string) {
	for _, p := range parts {
		if w.err != nil {
			return
		}
		_, w.err = io.WriteString(w.w, p)
	}
}

// Text writes s HTML-escaped.
func (w *Writer) Text(s string) {
	w.Raw(templ.EscapeString(s))
}

// Attr writes ` name="value"` with value escaped.
func (w *Writer) Attr(name, value string) {
	w.Raw(" ", name, `="`, templ.EscapeString(value), `"`)
}

// URLAttr is Attr for URL-valued attributes; unsafe schemes are neutralised.
func (w *Writer) URLAttr(name, value string) {
	w.Attr(name, string(templ.URL(value)))
}

// Component renders c in place. A nil component renders nothing.
func (w *Writer) Component(ctx context.Context, c templ.Component) {
	if w.err != nil || c == nil {
		return
	}
	w.err = c.Render(ctx, w.w)
}

func (w *Writer) Err() error {
	return w.err
}

// Class merges tailwind class lists, later lists winning conflicts.
func Class(classes ...string) string {
	return twmerge.Merge(classes...)
}
