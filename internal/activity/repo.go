package activity

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/elitestar/bookings-web/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

//go:embed schema.sql
var schema string

var ErrEventInvalid = errors.New("activity event needs a username and a kind")

var _ Recorder = (*Repo)(nil)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// EnsureSchema creates the activity table if it is missing.
func (r *Repo) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure activity schema: %w", err)
	}
	return nil
}

func (r *Repo) Record(ctx context.Context, event Event) error {
	ctx, span := tracing.GlobalTracer.Start(ctx, "activityRepo.Record")
	defer span.End()
	span.SetAttributes(attribute.String("kind", string(event.Kind)))

	if event.Username == "" || event.Kind == "" {
		return ErrEventInvalid
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	_, err := r.db.Exec(
		ctx,
		`INSERT INTO activity_event (username, kind, subject, created_at) VALUES ($1, $2, $3, $4);`,
		event.Username, string(event.Kind), event.Subject, event.CreatedAt,
	)
	return err
}

func (r *Repo) ListByUser(ctx context.Context, username string, limit int) ([]Event, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "activityRepo.ListByUser")
	defer span.End()

	if limit <= 0 {
		limit = 20
	}

	rows, err := r.db.Query(
		ctx,
		`SELECT id, username, kind, subject, created_at FROM activity_event
		WHERE username = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2;`,
		username, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Event, error) {
		var e Event
		var kind string
		if err := row.Scan(&e.ID, &e.Username, &kind, &e.Subject, &e.CreatedAt); err != nil {
			return Event{}, err
		}
		e.Kind = Kind(kind)
		return e, nil
	})
	if err != nil {
		return nil, fmt.Errorf("collect activity rows: %w", err)
	}

	return events, nil
}
