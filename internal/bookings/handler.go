package bookings

import (
	"context"
	"net/http"
	"slices"
	"strings"

	"github.com/elitestar/bookings-web/internal/activity"
	"github.com/elitestar/bookings-web/internal/api"
	"github.com/elitestar/bookings-web/internal/auth"
	"github.com/elitestar/bookings-web/internal/telemetry/tracing"
	"github.com/elitestar/bookings-web/internal/view"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=bookings_test

type bookingsAPI interface {
	ListBookings(ctx context.Context) ([]api.Booking, error)
	DeleteBooking(ctx context.Context, id string) error
	ListCelebrities(ctx context.Context) ([]api.Celebrity, error)
}

type activityRecorder interface {
	Record(ctx context.Context, event activity.Event) error
}

type BookingsPage struct {
	Bookings []api.Booking
}

type MessagesPage struct {
	Messages []api.Booking
}

type Handler struct {
	api      bookingsAPI
	recorder activityRecorder
	renderer *view.Renderer
}

func NewHandler(bookingsAPI bookingsAPI, recorder activityRecorder, renderer *view.Renderer) *Handler {
	return &Handler{
		api:      bookingsAPI,
		recorder: recorder,
		renderer: renderer,
	}
}

// SetupRoutes registers the booking pages. adminRouter is expected to be
// guarded for admins.
func (handler *Handler) SetupRoutes(adminRouter *mux.Router) {
	adminRouter.HandleFunc("/bookings", handler.HandleList).Methods("GET").Name("bookings")
	adminRouter.HandleFunc("/bookings/{id}/delete", handler.HandleDelete).Methods("POST").Name("bookings-delete")
	adminRouter.HandleFunc("/messages", handler.HandleMessages).Methods("GET").Name("messages")
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.bookings.list")
	defer span.End()

	bookings, err := handler.loadBookings(ctx)
	if view.ClientGone(r) {
		return
	}

	data := view.NewData(r, "Bookings", BookingsPage{})
	if err != nil {
		log.Errorf("list bookings: %s", err)
		data.WithFlash(view.FlashErr, view.Message("load bookings", err))
		handler.renderer.Render(w, view.StatusFor(err), "bookings", data)
		return
	}

	span.SetAttributes(attribute.Int("bookings.count", len(bookings)))
	data.Page = BookingsPage{Bookings: bookings}
	if r.URL.Query().Get("deleted") != "" {
		data.WithFlash(view.FlashOK, "Booking deleted successfully!")
	}
	handler.renderer.Render(w, http.StatusOK, "bookings", data)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.bookings.delete")
	defer span.End()

	id := mux.Vars(r)["id"]
	span.SetAttributes(attribute.String("bookings.id", id))

	err := handler.api.DeleteBooking(ctx, id)
	if view.ClientGone(r) {
		return
	}
	if err != nil {
		log.Errorf("delete booking %s: %s", id, err)
		handler.renderer.Error(w, r, view.StatusFor(err), view.Message("delete booking", err))
		return
	}

	if session := auth.SessionFromContext(r.Context()); session.Authenticated {
		event := activity.Event{
			Username: session.Username,
			Kind:     activity.KindBookingDeleted,
			Subject:  id,
		}
		if err := handler.recorder.Record(r.Context(), event); err != nil {
			log.Errorf("record booking deletion by %s: %s", session.Username, err)
		}
	}

	http.Redirect(w, r, "/bookings?deleted=1", http.StatusSeeOther)
}

func (handler *Handler) HandleMessages(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.bookings.messages")
	defer span.End()

	bookings, err := handler.loadBookings(ctx)
	if view.ClientGone(r) {
		return
	}

	data := view.NewData(r, "Messages", MessagesPage{})
	if err != nil {
		log.Errorf("list messages: %s", err)
		data.WithFlash(view.FlashErr, view.Message("load messages", err))
		handler.renderer.Render(w, view.StatusFor(err), "messages", data)
		return
	}

	data.Page = MessagesPage{Messages: WithMessages(bookings)}
	handler.renderer.Render(w, http.StatusOK, "messages", data)
}

// loadBookings fetches the bookings and the celebrity list side by side and
// fills in celebrity names the API left unpopulated. A failing celebrity list
// only costs the names.
func (handler *Handler) loadBookings(ctx context.Context) ([]api.Booking, error) {
	var (
		bookings []api.Booking
		celebs   []api.Celebrity
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		bookings, err = handler.api.ListBookings(gCtx)
		return err
	})
	g.Go(func() error {
		var err error
		celebs, err = handler.api.ListCelebrities(gCtx)
		if err != nil {
			log.Warnf("list celebrities for bookings: %s", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return ResolveCelebNames(bookings, celebs), nil
}

// ResolveCelebNames sets the celebrity name of bookings that only carry the id.
func ResolveCelebNames(bookings []api.Booking, celebs []api.Celebrity) []api.Booking {
	names := make(map[string]string, len(celebs))
	for _, c := range celebs {
		names[c.ID] = c.Name
	}
	for i := range bookings {
		if bookings[i].Celeb.Name != "" {
			continue
		}
		if name, ok := names[bookings[i].Celeb.ID]; ok {
			bookings[i].Celeb.Name = name
		}
	}
	return bookings
}

// WithMessages keeps the bookings that carry a message, newest first.
func WithMessages(bookings []api.Booking) []api.Booking {
	messages := make([]api.Booking, 0, len(bookings))
	for _, b := range bookings {
		if strings.TrimSpace(b.Message) != "" {
			messages = append(messages, b)
		}
	}
	slices.SortStableFunc(messages, func(a, b api.Booking) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return messages
}
