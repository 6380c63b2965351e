package testinternals

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/elitestar/bookings-web/internal/api"
)

type FakeUser struct {
	Password string
	Role     string
}

// FakeAPI is an in-memory stand-in for the remote celebrity API.
type FakeAPI struct {
	*httptest.Server

	mu       sync.Mutex
	users    map[string]FakeUser
	celebs   []api.Celebrity
	bookings []api.Booking
	nextID   int
	down     bool
}

func NewFakeAPI(users map[string]FakeUser, celebs []api.Celebrity) *FakeAPI {
	f := &FakeAPI{
		users:  users,
		celebs: celebs,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/auth/healthcheck", f.handleHealth)
	mux.HandleFunc("POST /api/auth/login", f.handleLogin)
	mux.HandleFunc("GET /api/celebs", f.handleListCelebs)
	mux.HandleFunc("POST /api/celebs", f.handleCreateCeleb)
	mux.HandleFunc("GET /api/celebs/bookings", f.handleListBookings)
	mux.HandleFunc("DELETE /api/celebs/bookings/{id}", f.handleDeleteBooking)
	mux.HandleFunc("POST /api/celebs/book", f.handleBook)
	mux.HandleFunc("GET /api/celebs/{id}", f.handleGetCeleb)
	mux.HandleFunc("DELETE /api/celebs/{id}", f.handleDeleteCeleb)

	f.Server = httptest.NewServer(f.guard(mux))
	return f
}

// SetDown makes every endpoint answer 503.
func (f *FakeAPI) SetDown(down bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.down = down
}

func (f *FakeAPI) Bookings() []api.Booking {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]api.Booking(nil), f.bookings...)
}

// CelebrityID looks a celebrity up by name, "" when there is none.
func (f *FakeAPI) CelebrityID(name string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.celebs {
		if c.Name == name {
			return c.ID
		}
	}
	return ""
}

func (f *FakeAPI) guard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		down := f.down
		f.mu.Unlock()
		if down {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"message": "maintenance"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func (f *FakeAPI) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (f *FakeAPI) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "bad request"})
		return
	}

	f.mu.Lock()
	user, ok := f.users[req.Username]
	f.mu.Unlock()
	if !ok || user.Password != req.Password {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "invalid credentials"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"username": req.Username, "role": user.Role})
}

func (f *FakeAPI) handleListCelebs(w http.ResponseWriter, _ *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	writeJSON(w, http.StatusOK, f.celebs)
}

func (f *FakeAPI) handleGetCeleb(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.celebs {
		if c.ID == r.PathValue("id") {
			writeJSON(w, http.StatusOK, c)
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "celebrity not found"})
}

func (f *FakeAPI) handleCreateCeleb(w http.ResponseWriter, r *http.Request) {
	var celeb api.Celebrity
	if err := json.NewDecoder(r.Body).Decode(&celeb); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "bad request"})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	celeb.ID = fmt.Sprintf("new-%d", f.nextID)
	f.celebs = append(f.celebs, celeb)
	writeJSON(w, http.StatusCreated, celeb)
}

func (f *FakeAPI) handleDeleteCeleb(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, c := range f.celebs {
		if c.ID == r.PathValue("id") {
			f.celebs = append(f.celebs[:i], f.celebs[i+1:]...)
			writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "celebrity not found"})
}

func (f *FakeAPI) handleBook(w http.ResponseWriter, r *http.Request) {
	var req api.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "bad request"})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	f.bookings = append(f.bookings, api.Booking{
		ID:        fmt.Sprintf("booking-%d", f.nextID),
		Celeb:     api.BookingCeleb{ID: req.CelebID},
		Name:      req.Name,
		Email:     req.Email,
		Date:      req.Date,
		Reason:    req.Reason,
		Message:   req.Message,
		CreatedAt: time.Now(),
	})
	writeJSON(w, http.StatusCreated, map[string]string{"message": "Booking successful"})
}

func (f *FakeAPI) handleListBookings(w http.ResponseWriter, _ *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	writeJSON(w, http.StatusOK, f.bookings)
}

func (f *FakeAPI) handleDeleteBooking(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, b := range f.bookings {
		if b.ID == r.PathValue("id") {
			f.bookings = append(f.bookings[:i], f.bookings[i+1:]...)
			writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "booking not found"})
}
