package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/elitestar/bookings-web/internal/auth"
	"github.com/elitestar/bookings-web/pkg"

	log "github.com/sirupsen/logrus"
	"github.com/yuin/goldmark"
)

//go:embed templates/*.html
var templatesFS embed.FS

var pageNames = []string{
	"home",
	"login",
	"celebrities",
	"celebrity",
	"add_celeb",
	"accounts",
	"bookings",
	"messages",
	"dashboard",
	"markdown",
	"error",
}

type FlashKind string

const (
	FlashOK  FlashKind = "ok"
	FlashErr FlashKind = "err"
)

type Flash struct {
	Kind    FlashKind
	Message string
}

type NavLink struct {
	Label string
	Href  string
}

// Data is handed to every page. Page holds the page specific payload.
type Data struct {
	Title   string
	Session auth.Session
	Nav     []NavLink
	Flash   *Flash
	Page    any
}

func NewData(r *http.Request, title string, page any) *Data {
	session := auth.SessionFromContext(r.Context())
	return &Data{
		Title:   title,
		Session: session,
		Nav:     NavLinks(session),
		Page:    page,
	}
}

func (d *Data) WithFlash(kind FlashKind, message string) *Data {
	d.Flash = &Flash{Kind: kind, Message: message}
	return d
}

// NavLinks lists the navigation entries the session may use.
func NavLinks(session auth.Session) []NavLink {
	links := []NavLink{
		{Label: "Home", Href: "/"},
		{Label: "Celebrities", Href: "/celebrities"},
		{Label: "How it works", Href: "/how-it-works"},
		{Label: "About us", Href: "/about-us"},
		{Label: "Blog", Href: "/blog"},
	}

	switch {
	case session.IsAdmin():
		links = append(links,
			NavLink{Label: "Accounts", Href: "/accounts"},
			NavLink{Label: "Bookings", Href: "/bookings"},
			NavLink{Label: "Messages", Href: "/messages"},
		)
	case session.Authenticated:
		links = append(links, NavLink{Label: "Dashboard", Href: "/dashboard"})
	default:
		links = append(links,
			NavLink{Label: "Book a celebrity", Href: "/celebrities"},
			NavLink{Label: "Login", Href: "/login"},
		)
	}

	return links
}

// Markdown converts markdown text to HTML (safe to inject as template.HTML).
func Markdown(md string) template.HTML {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		log.Errorf("render markdown: %s", err)
	}
	return template.HTML(buf.String())
}

type Renderer struct {
	pages map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	base := template.New("layout.html").Funcs(template.FuncMap{
		"truncate": pkg.Truncate,
		"markdown": Markdown,
		"date": func(t time.Time) string {
			if t.IsZero() {
				return "-"
			}
			return t.Format("Jan 2, 2006 15:04")
		},
		"add": func(a, b int) int { return a + b },
		"sub": func(a, b int) int { return a - b },
	})

	pages := make(map[string]*template.Template, len(pageNames))
	for _, page := range pageNames {
		t, err := base.Clone()
		if err != nil {
			return nil, err
		}
		// each page overrides the title/content blocks of the layout
		if _, err := t.ParseFS(templatesFS, "templates/layout.html", "templates/"+page+".html"); err != nil {
			return nil, fmt.Errorf("parse page %s: %w", page, err)
		}
		pages[page] = t
	}

	return &Renderer{pages: pages}, nil
}

// Render writes the page with the given status. The page is executed into a
// buffer first, so a template error never leaves a half written response.
func (r *Renderer) Render(w http.ResponseWriter, status int, page string, data *Data) {
	t, ok := r.pages[page]
	if !ok {
		log.Errorf("render: unknown page %s", page)
		http.Error(w, "page not found", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		log.Errorf("render %s: %s", page, err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.HTML, buf.Bytes(), status)
}

// Error renders the generic error page.
func (r *Renderer) Error(w http.ResponseWriter, req *http.Request, status int, message string) {
	data := NewData(req, http.StatusText(status), nil).WithFlash(FlashErr, message)
	r.Render(w, status, "error", data)
}
