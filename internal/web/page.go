package web

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/muurk/catalog-admin/internal/admin"
	"github.com/muurk/catalog-admin/internal/logging"
	"github.com/muurk/catalog-admin/internal/version"
	"github.com/muurk/catalog-admin/internal/view"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// pageLink is one control of the pagination bar
type pageLink struct {
	Label    string
	Href     string
	Active   bool
	Ellipsis bool
}

// pageData is what index.html renders
type pageData struct {
	Title          string
	APIURL         string
	Version        string
	CurrencySymbol string
	FilterName     string
	FilterID       string
	Doc            view.Snapshot
	Pages          []pageLink
}

func buildPageLinks(p admin.Pagination) []pageLink {
	links := make([]pageLink, 0, len(p.Items))
	for _, item := range p.Items {
		link := pageLink{Label: item.Label(), Active: item.Active}
		if item.Kind == admin.PageItemEllipsis {
			link.Ellipsis = true
		} else {
			link.Href = "/page/" + strconv.Itoa(item.Page)
		}
		links = append(links, link)
	}
	return links
}

func (s *Server) renderPage(w http.ResponseWriter, r *http.Request) {
	snap := s.doc.Snapshot()
	name, id := s.filters()

	data := pageData{
		Title:          "Product Catalog",
		APIURL:         s.cfg.APIURL,
		Version:        version.Version,
		CurrencySymbol: s.cfg.CurrencySymbol,
		FilterName:     name,
		FilterID:       id,
		Doc:            snap,
		Pages:          buildPageLinks(snap.Pagination),
	}

	// Render to a buffer so a template error does not leave a half page
	var buf bytes.Buffer
	if err := pageTemplate.ExecuteTemplate(&buf, "index.html", data); err != nil {
		logging.Error("Failed to render page", zap.Error(err), zap.String("request_id", requestIDFrom(r.Context())))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = buf.WriteTo(w)
}
