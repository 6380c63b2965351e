package misc

import (
	"context"
	"embed"
	"fmt"
	"net/http"

	"github.com/elitestar/bookings-web/internal/telemetry/tracing"
	"github.com/elitestar/bookings-web/internal/view"
	"github.com/elitestar/bookings-web/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
)

//go:embed content/*.md
var contentFS embed.FS

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=misc_test

type healthChecker interface {
	Healthcheck(ctx context.Context) error
}

type MarkdownPage struct {
	Body string
}

type staticPage struct {
	route string
	title string
	file  string
}

var staticPages = []staticPage{
	{route: "/about-us", title: "About us", file: "about-us.md"},
	{route: "/how-it-works", title: "How it works", file: "how-it-works.md"},
	{route: "/blog", title: "Blog", file: "blog.md"},
}

type Handler struct {
	api         healthChecker
	renderer    *view.Renderer
	versionInfo string
	content     map[string]string
}

func NewHandler(api healthChecker, renderer *view.Renderer, versionInfo string) (*Handler, error) {
	content := make(map[string]string, len(staticPages))
	for _, page := range staticPages {
		body, err := contentFS.ReadFile("content/" + page.file)
		if err != nil {
			return nil, fmt.Errorf("read page %s: %w", page.file, err)
		}
		content[page.route] = string(body)
	}

	return &Handler{
		api:         api,
		renderer:    renderer,
		versionInfo: versionInfo,
		content:     content,
	}, nil
}

func (handler *Handler) SetupRoutes(mainRouter *mux.Router) {
	for _, page := range staticPages {
		mainRouter.HandleFunc(page.route, handler.handleStatic(page)).Methods("GET").Name(page.file)
	}
	mainRouter.HandleFunc("/healthz", handler.handleHealth).Methods("GET").Name("healthz")
	mainRouter.HandleFunc("/version", handler.handleGetVersionInfo).Methods("GET").Name("version")
}

func (handler *Handler) handleStatic(page staticPage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := view.NewData(r, page.title, MarkdownPage{Body: handler.content[page.route]})
		handler.renderer.Render(w, http.StatusOK, "markdown", data)
	}
}

// handleHealth reports whether the remote API answers.
func (handler *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "miscHandler.health")
	defer span.End()

	if err := handler.api.Healthcheck(ctx); err != nil {
		span.SetStatus(codes.Error, fmt.Sprintf("remote healthcheck: %s", err))
		log.Errorf("remote api healthcheck failed: %s", err)
		http.Error(w, "remote api unreachable", http.StatusServiceUnavailable)
		return
	}

	pkg.WriteTextResponseOK(w, "I'm OK, thanks ;)")
}

func (handler *Handler) handleGetVersionInfo(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteTextResponseOK(w, handler.versionInfo)
}
