package view

import (
	"embed"
	"html/template"
	"time"

	"reservebook/internal/pkg/notice"
	"reservebook/internal/usecase/queries"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	IndexTemplate = "index.html"
	ListTemplate  = "list.html"

	displayLayout = "2006-01-02 15:04"
)

// Templates parses the embedded pages; the result is handed to gin via SetHTMLTemplate.
func Templates() *template.Template {
	return template.Must(template.New("").Funcs(template.FuncMap{
		"fmtTime": func(t time.Time) string { return t.Format(displayLayout) },
		"deref": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
	}).ParseFS(templateFS, "templates/*.html"))
}

type IndexPage struct {
	Notice   *notice.Notice
	TimeZone string
}

type ListPage struct {
	Notice       *notice.Notice
	TimeZone     string
	Reservations []*queries.ReservationView
}
