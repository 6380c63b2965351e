package celebs

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"strings"

	"github.com/elitestar/bookings-web/internal/activity"
	"github.com/elitestar/bookings-web/internal/api"
	"github.com/elitestar/bookings-web/internal/auth"
	"github.com/elitestar/bookings-web/internal/telemetry/metrics"
	"github.com/elitestar/bookings-web/internal/telemetry/tracing"
	"github.com/elitestar/bookings-web/internal/view"
	"github.com/elitestar/bookings-web/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=celebs_test

type celebsAPI interface {
	ListCelebrities(ctx context.Context) ([]api.Celebrity, error)
	GetCelebrity(ctx context.Context, id string) (*api.Celebrity, error)
	CreateCelebrity(ctx context.Context, celeb api.NewCelebrity) (*api.Celebrity, error)
	DeleteCelebrity(ctx context.Context, id string) error
	BookCelebrity(ctx context.Context, booking api.BookingRequest) error
}

type activityRecorder interface {
	Record(ctx context.Context, event activity.Event) error
}

type HomePage struct {
	Featured []api.Celebrity
}

type ListPage struct {
	Query       string
	Profession  string
	Filters     []string
	Celebrities []api.Celebrity
	Total       int
	Page        int
	TotalPages  int
	HasPrev     bool
	HasNext     bool
}

type DetailPage struct {
	Celebrity  *api.Celebrity
	EventTypes []string
	Form       api.BookingRequest
	Errors     []string
}

type AddPage struct {
	Professions  []string
	MaxBioImages int
	Form         api.NewCelebrity
	Errors       []string
}

type AccountsPage struct {
	Celebrities []api.Celebrity
}

type Handler struct {
	api       celebsAPI
	recorder  activityRecorder
	renderer  *view.Renderer
	validator *pkg.Validator
	metrics   *metrics.Manager
}

func NewHandler(
	celebsAPI celebsAPI,
	recorder activityRecorder,
	renderer *view.Renderer,
	validator *pkg.Validator,
	metricsManager *metrics.Manager,
) *Handler {
	return &Handler{
		api:       celebsAPI,
		recorder:  recorder,
		renderer:  renderer,
		validator: validator,
		metrics:   metricsManager,
	}
}

// SetupRoutes registers the public celebrity pages on publicRouter and the
// admin only pages on adminRouter.
func (handler *Handler) SetupRoutes(publicRouter, adminRouter *mux.Router) {
	publicRouter.HandleFunc("/", handler.HandleHome).Methods("GET").Name("home")
	publicRouter.HandleFunc("/celebrities", handler.HandleList).Methods("GET").Name("celebrities")
	publicRouter.HandleFunc("/celebrities/{id}", handler.HandleDetail).Methods("GET").Name("celebrity")
	publicRouter.HandleFunc("/celebrities/{id}/book", handler.HandleBook).Methods("POST").Name("celebrity-book")

	adminRouter.HandleFunc("/add-celeb", handler.HandleAddForm).Methods("GET").Name("add-celeb")
	adminRouter.HandleFunc("/add-celeb", handler.HandleAdd).Methods("POST").Name("add-celeb-submit")
	adminRouter.HandleFunc("/accounts", handler.HandleAccounts).Methods("GET").Name("accounts")
	adminRouter.HandleFunc("/accounts/{id}/delete", handler.HandleDelete).Methods("POST").Name("accounts-delete")
}

func (handler *Handler) HandleHome(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.celebs.home")
	defer span.End()

	celebs, err := handler.api.ListCelebrities(ctx)
	if view.ClientGone(r) {
		return
	}

	data := view.NewData(r, "EliteStar Bookings", HomePage{})
	if err != nil {
		log.Errorf("home, list celebrities: %s", err)
		data.WithFlash(view.FlashErr, view.Message("load celebrities", err))
		handler.renderer.Render(w, http.StatusOK, "home", data)
		return
	}

	data.Page = HomePage{Featured: Featured(celebs)}
	handler.renderer.Render(w, http.StatusOK, "home", data)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.celebs.list")
	defer span.End()

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	profession := r.URL.Query().Get("profession")
	if !slices.Contains(Filters, profession) {
		profession = FilterAll
	}
	span.SetAttributes(
		attribute.String("celebs.query", query),
		attribute.String("celebs.profession", profession),
	)

	page := ListPage{
		Query:      query,
		Profession: profession,
		Filters:    Filters,
		Page:       1,
	}

	celebs, err := handler.api.ListCelebrities(ctx)
	if view.ClientGone(r) {
		return
	}
	if err != nil {
		log.Errorf("list celebrities: %s", err)
		data := view.NewData(r, "Celebrities", page).
			WithFlash(view.FlashErr, view.Message("load celebrities", err))
		handler.renderer.Render(w, view.StatusFor(err), "celebrities", data)
		return
	}

	filtered := FilterCelebrities(celebs, query, profession)
	pageItems, current, totalPages := Paginate(filtered, parsePage(r.URL.Query().Get("page")), PageSize)

	page.Celebrities = pageItems
	page.Total = len(filtered)
	page.Page = current
	page.TotalPages = totalPages
	page.HasPrev = current > 1
	page.HasNext = current < totalPages

	handler.renderer.Render(w, http.StatusOK, "celebrities", view.NewData(r, "Celebrities", page))
}

func (handler *Handler) HandleDetail(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.celebs.detail")
	defer span.End()

	id := mux.Vars(r)["id"]
	span.SetAttributes(attribute.String("celebs.id", id))

	celeb, err := handler.api.GetCelebrity(ctx, id)
	if view.ClientGone(r) {
		return
	}
	if err != nil {
		log.Errorf("get celebrity %s: %s", id, err)
		handler.renderer.Error(w, r, view.StatusFor(err), view.Message("load celebrity", err))
		return
	}

	page := DetailPage{
		Celebrity:  celeb,
		EventTypes: api.EventTypes,
		Form:       api.BookingRequest{CelebID: celeb.ID},
	}
	handler.renderer.Render(w, http.StatusOK, "celebrity", view.NewData(r, celeb.Name, page))
}

func (handler *Handler) HandleBook(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.celebs.book")
	defer span.End()

	id := mux.Vars(r)["id"]
	span.SetAttributes(attribute.String("celebs.id", id))

	if err := r.ParseForm(); err != nil {
		log.Errorf("book celebrity, parse form: %s", err)
		handler.renderer.Error(w, r, http.StatusBadRequest, "Failed to read the booking form.")
		return
	}

	celeb, err := handler.api.GetCelebrity(ctx, id)
	if view.ClientGone(r) {
		return
	}
	if err != nil {
		log.Errorf("book celebrity, get celebrity %s: %s", id, err)
		handler.renderer.Error(w, r, view.StatusFor(err), view.Message("load celebrity", err))
		return
	}

	booking := api.BookingRequest{
		CelebID: celeb.ID,
		Name:    strings.TrimSpace(r.PostForm.Get("name")),
		Email:   strings.TrimSpace(r.PostForm.Get("email")),
		Date:    strings.TrimSpace(r.PostForm.Get("date")),
		Reason:  r.PostForm.Get("reason"),
		Message: strings.TrimSpace(r.PostForm.Get("message")),
	}
	page := DetailPage{
		Celebrity:  celeb,
		EventTypes: api.EventTypes,
		Form:       booking,
	}

	if err := handler.validator.Validate(booking); err != nil {
		handler.metrics.CounterBookings.WithLabelValues("invalid").Inc()
		page.Errors = validationMessages(err)
		data := view.NewData(r, celeb.Name, page).WithFlash(view.FlashErr, view.Message("book", err))
		handler.renderer.Render(w, http.StatusBadRequest, "celebrity", data)
		return
	}

	err = handler.api.BookCelebrity(ctx, booking)
	if view.ClientGone(r) {
		return
	}
	if err != nil {
		log.Errorf("book celebrity %s: %s", celeb.ID, err)
		handler.metrics.CounterBookings.WithLabelValues("failed").Inc()
		data := view.NewData(r, celeb.Name, page).WithFlash(view.FlashErr, view.Message("book", err))
		handler.renderer.Render(w, view.StatusFor(err), "celebrity", data)
		return
	}

	handler.metrics.CounterBookings.WithLabelValues("ok").Inc()
	handler.record(r, activity.KindBookingRequested, celeb.Name)
	log.Debugf("booking requested for %s by %s", celeb.ID, booking.Email)

	page.Form = api.BookingRequest{CelebID: celeb.ID}
	data := view.NewData(r, celeb.Name, page).WithFlash(view.FlashOK, "Booking successful!")
	handler.renderer.Render(w, http.StatusOK, "celebrity", data)
}

func (handler *Handler) HandleAddForm(w http.ResponseWriter, r *http.Request) {
	page := AddPage{
		Professions:  api.Professions,
		MaxBioImages: api.MaxBioImages,
	}
	handler.renderer.Render(w, http.StatusOK, "add_celeb", view.NewData(r, "Add celebrity", page))
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.celebs.add")
	defer span.End()

	if err := r.ParseForm(); err != nil {
		log.Errorf("add celebrity, parse form: %s", err)
		handler.renderer.Error(w, r, http.StatusBadRequest, "Failed to read the form.")
		return
	}

	celeb := api.NewCelebrity{
		Name:         strings.TrimSpace(r.PostForm.Get("name")),
		Profession:   r.PostForm.Get("profession"),
		Bio:          strings.TrimSpace(r.PostForm.Get("bio")),
		ProfileImage: strings.TrimSpace(r.PostForm.Get("profileImage")),
		BioImages:    bioImages(r.PostForm["bioImages"]),
	}
	page := AddPage{
		Professions:  api.Professions,
		MaxBioImages: api.MaxBioImages,
		Form:         celeb,
	}

	if err := handler.validator.Validate(celeb); err != nil {
		page.Errors = validationMessages(err)
		data := view.NewData(r, "Add celebrity", page).WithFlash(view.FlashErr, view.Message("add celebrity", err))
		handler.renderer.Render(w, http.StatusBadRequest, "add_celeb", data)
		return
	}

	created, err := handler.api.CreateCelebrity(ctx, celeb)
	if view.ClientGone(r) {
		return
	}
	if err != nil {
		log.Errorf("add celebrity %s: %s", celeb.Name, err)
		data := view.NewData(r, "Add celebrity", page).WithFlash(view.FlashErr, view.Message("add celebrity", err))
		handler.renderer.Render(w, view.StatusFor(err), "add_celeb", data)
		return
	}

	handler.record(r, activity.KindCelebrityAdded, created.Name)
	log.Debugf("celebrity added: %s [%s]", created.Name, created.ID)

	http.Redirect(w, r, "/accounts?added=1", http.StatusSeeOther)
}

func (handler *Handler) HandleAccounts(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.celebs.accounts")
	defer span.End()

	celebs, err := handler.api.ListCelebrities(ctx)
	if view.ClientGone(r) {
		return
	}

	data := view.NewData(r, "Accounts", AccountsPage{})
	if err != nil {
		log.Errorf("accounts, list celebrities: %s", err)
		data.WithFlash(view.FlashErr, view.Message("load celebrities", err))
		handler.renderer.Render(w, view.StatusFor(err), "accounts", data)
		return
	}

	data.Page = AccountsPage{Celebrities: celebs}
	switch {
	case r.URL.Query().Get("added") != "":
		data.WithFlash(view.FlashOK, "Celebrity added successfully!")
	case r.URL.Query().Get("deleted") != "":
		data.WithFlash(view.FlashOK, "Celebrity deleted successfully!")
	}
	handler.renderer.Render(w, http.StatusOK, "accounts", data)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.celebs.delete")
	defer span.End()

	id := mux.Vars(r)["id"]
	span.SetAttributes(attribute.String("celebs.id", id))

	err := handler.api.DeleteCelebrity(ctx, id)
	if view.ClientGone(r) {
		return
	}
	if err != nil {
		log.Errorf("delete celebrity %s: %s", id, err)
		handler.renderer.Error(w, r, view.StatusFor(err), view.Message("delete celebrity", err))
		return
	}

	handler.record(r, activity.KindCelebrityDeleted, id)
	http.Redirect(w, r, "/accounts?deleted=1", http.StatusSeeOther)
}

// record stores an activity event of the signed in visitor. Failures are only
// logged.
func (handler *Handler) record(r *http.Request, kind activity.Kind, subject string) {
	session := auth.SessionFromContext(r.Context())
	if !session.Authenticated {
		return
	}
	event := activity.Event{
		Username: session.Username,
		Kind:     kind,
		Subject:  subject,
	}
	if err := handler.recorder.Record(r.Context(), event); err != nil {
		log.Errorf("record %s activity of %s: %s", kind, session.Username, err)
	}
}

func bioImages(raw []string) []string {
	images := make([]string, 0, len(raw))
	for _, img := range raw {
		if img = strings.TrimSpace(img); img != "" {
			images = append(images, img)
		}
	}
	return images
}

func validationMessages(err error) []string {
	var validationErr *pkg.ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Messages
	}
	return []string{err.Error()}
}
