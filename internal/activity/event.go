package activity

import (
	"context"
	"time"
)

type Kind string

const (
	KindLogin            Kind = "login"
	KindLogout           Kind = "logout"
	KindCelebrityAdded   Kind = "celebrity_added"
	KindCelebrityDeleted Kind = "celebrity_deleted"
	KindBookingRequested Kind = "booking_requested"
	KindBookingDeleted   Kind = "booking_deleted"
)

func (k Kind) Label() string {
	switch k {
	case KindLogin:
		return "Logged in"
	case KindLogout:
		return "Logged out"
	case KindCelebrityAdded:
		return "Added celebrity"
	case KindCelebrityDeleted:
		return "Deleted celebrity"
	case KindBookingRequested:
		return "Requested booking"
	case KindBookingDeleted:
		return "Deleted booking"
	default:
		return string(k)
	}
}

// Event is one thing a signed in visitor did.
type Event struct {
	ID        int64
	Username  string
	Kind      Kind
	Subject   string
	CreatedAt time.Time
}

type Recorder interface {
	Record(ctx context.Context, event Event) error
	ListByUser(ctx context.Context, username string, limit int) ([]Event, error)
}

var _ Recorder = NoopRecorder{}

// NoopRecorder is used when the activity log is disabled.
type NoopRecorder struct{}

func (NoopRecorder) Record(context.Context, Event) error { return nil }

func (NoopRecorder) ListByUser(context.Context, string, int) ([]Event, error) { return nil, nil }
