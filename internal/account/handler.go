package account

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/elitestar/bookings-web/internal/activity"
	"github.com/elitestar/bookings-web/internal/api"
	"github.com/elitestar/bookings-web/internal/auth"
	"github.com/elitestar/bookings-web/internal/middleware"
	"github.com/elitestar/bookings-web/internal/telemetry/metrics"
	"github.com/elitestar/bookings-web/internal/telemetry/tracing"
	"github.com/elitestar/bookings-web/internal/view"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=account_test

type activityLog interface {
	Record(ctx context.Context, event activity.Event) error
	ListByUser(ctx context.Context, username string, limit int) ([]activity.Event, error)
}

type celebsLister interface {
	ListCelebrities(ctx context.Context) ([]api.Celebrity, error)
}

const recentActivityLimit = 20

type LoginPage struct {
	Username string
}

type DashboardPage struct {
	Events         []activity.Event
	CelebrityCount int
}

type Handler struct {
	activity activityLog
	celebs   celebsLister
	renderer *view.Renderer
	metrics  *metrics.Manager
}

func NewHandler(
	activityLog activityLog,
	celebs celebsLister,
	renderer *view.Renderer,
	metricsManager *metrics.Manager,
) *Handler {
	return &Handler{
		activity: activityLog,
		celebs:   celebs,
		renderer: renderer,
		metrics:  metricsManager,
	}
}

// SetupRoutes registers login and logout on mainRouter, with login attempts
// rate limited per client IP, and the dashboard on authRouter.
func (handler *Handler) SetupRoutes(
	mainRouter *mux.Router,
	authRouter *mux.Router,
	rateLimiter middleware.RequestRateLimiter,
	loginsPerMin int,
	metricsManager *metrics.Manager,
) {
	mainRouter.HandleFunc("/login", handler.HandleLoginForm).Methods("GET").Name("login")
	mainRouter.Handle("/login",
		middleware.RateLimit(rateLimiter, "login", loginsPerMin, metricsManager)(http.HandlerFunc(handler.HandleLogin)),
	).Methods("POST").Name("login-submit")
	mainRouter.HandleFunc("/logout", handler.HandleLogout).Methods("POST").Name("logout")

	authRouter.HandleFunc("/dashboard", handler.HandleDashboard).Methods("GET").Name("dashboard")
}

// landingPage is where a visitor goes right after signing in.
func landingPage(session auth.Session) string {
	if session.IsAdmin() {
		return "/accounts"
	}
	return "/dashboard"
}

func (handler *Handler) HandleLoginForm(w http.ResponseWriter, r *http.Request) {
	session := auth.SessionFromContext(r.Context())
	if session.Authenticated {
		http.Redirect(w, r, landingPage(session), http.StatusSeeOther)
		return
	}
	handler.renderer.Render(w, http.StatusOK, "login", view.NewData(r, "Login", LoginPage{}))
}

func (handler *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.account.login")
	defer span.End()

	authCtx, ok := auth.FromContext(r.Context())
	if !ok {
		log.Error("login: no auth context attached to the request")
		http.Error(w, "login unavailable", http.StatusInternalServerError)
		return
	}

	if err := r.ParseForm(); err != nil {
		log.Errorf("login failed, parse form error: %s", err)
		handler.renderer.Error(w, r, http.StatusBadRequest, "Failed to read the login form.")
		return
	}
	username := strings.TrimSpace(r.PostForm.Get("username"))
	password := r.PostForm.Get("password")
	span.SetAttributes(attribute.String("login.username", username))

	session, err := authCtx.Login(ctx, username, password)
	if view.ClientGone(r) {
		return
	}
	if err != nil {
		result, status, message := loginFailure(err)
		handler.metrics.CounterLogins.WithLabelValues(result).Inc()
		span.SetStatus(codes.Error, result)
		log.Tracef("failed login attempt for user [%s]: %s", username, err)

		data := view.NewData(r, "Login", LoginPage{Username: username}).WithFlash(view.FlashErr, message)
		handler.renderer.Render(w, status, "login", data)
		return
	}

	handler.metrics.CounterLogins.WithLabelValues("ok").Inc()
	handler.record(ctx, session.Username, activity.KindLogin)
	log.Debugf("login success for [%s] as %s", session.Username, session.Role)

	http.Redirect(w, r, landingPage(session), http.StatusSeeOther)
}

func loginFailure(err error) (result string, status int, message string) {
	switch {
	case errors.Is(err, auth.ErrMissingCredentials):
		return "missing", http.StatusBadRequest, "Please enter your username and password."
	case errors.Is(err, auth.ErrInvalidCredentials):
		return "invalid", http.StatusUnauthorized, "Invalid username or password."
	case errors.Is(err, auth.ErrUnreachable):
		return "unreachable", http.StatusBadGateway, "The login service is unavailable. Please try again."
	default:
		return "error", http.StatusInternalServerError, "Login failed. Please try again."
	}
}

func (handler *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.account.logout")
	defer span.End()

	authCtx, ok := auth.FromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	session := authCtx.CurrentSession()
	if err := authCtx.Logout(ctx); err != nil {
		log.Errorf("logout for [%s] failed: %s", session.Username, err)
		handler.renderer.Error(w, r, http.StatusInternalServerError, "Logout failed. Please try again.")
		return
	}

	if session.Authenticated {
		handler.record(ctx, session.Username, activity.KindLogout)
		log.Debugf("logout for [%s] success", session.Username)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (handler *Handler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.account.dashboard")
	defer span.End()

	session := auth.SessionFromContext(r.Context())

	var page DashboardPage
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		events, err := handler.activity.ListByUser(gCtx, session.Username, recentActivityLimit)
		if err != nil {
			return err
		}
		page.Events = events
		return nil
	})
	g.Go(func() error {
		celebs, err := handler.celebs.ListCelebrities(gCtx)
		if err != nil {
			return err
		}
		page.CelebrityCount = len(celebs)
		return nil
	})
	err := g.Wait()
	if view.ClientGone(r) {
		return
	}

	data := view.NewData(r, "Dashboard", page)
	if err != nil {
		log.Errorf("dashboard for [%s]: %s", session.Username, err)
		data.WithFlash(view.FlashErr, view.Message("load your dashboard", err))
	}
	handler.renderer.Render(w, http.StatusOK, "dashboard", data)
}

func (handler *Handler) record(ctx context.Context, username string, kind activity.Kind) {
	event := activity.Event{
		Username: username,
		Kind:     kind,
	}
	if err := handler.activity.Record(ctx, event); err != nil {
		log.Errorf("record %s activity of %s: %s", kind, username, err)
	}
}
