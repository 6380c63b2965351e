package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/elitestar/bookings-web/internal/api"
	"github.com/elitestar/bookings-web/internal/auth"
	"github.com/elitestar/bookings-web/internal/bookings"
	"github.com/elitestar/bookings-web/internal/celebs"
	"github.com/elitestar/bookings-web/internal/guard"
	"github.com/elitestar/bookings-web/pkg"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

var bookingsRule = guard.Rule{RedirectTo: "login", RequireAdmin: true}

type celebsAPI interface {
	ListCelebrities(ctx context.Context) ([]api.Celebrity, error)
	ListBookings(ctx context.Context) ([]api.Booking, error)
}

type app struct {
	api     celebsAPI
	authCtx *auth.Context
	out     io.Writer
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	fs.SetOutput(a.out)
	username := fs.String("u", "", "username")
	password := fs.String("p", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	session, err := a.authCtx.Login(ctx, *username, *password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrMissingCredentials):
			return errors.New("please give both -u and -p")
		case errors.Is(err, auth.ErrInvalidCredentials):
			return errors.New("invalid username or password")
		case errors.Is(err, auth.ErrUnreachable):
			log.Debugf("login: %s", err)
			return errors.New("the login service is unavailable, please try again")
		default:
			return fmt.Errorf("login: %w", err)
		}
	}

	fmt.Fprintf(a.out, "Logged in as %s (%s)\n", session.Username, session.Role)
	return nil
}

// hashPassword prints the bcrypt hash to put in ELITESTAR_ADMIN_PASSWORD_HASH
// when the web front runs with auth_mode = "local".
func (a *app) hashPassword(args []string) error {
	fs := flag.NewFlagSet("hash-password", flag.ContinueOnError)
	fs.SetOutput(a.out)
	password := fs.String("p", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *password == "" {
		return errors.New("please give -p")
	}

	hash, err := pkg.HashPassword(*password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	fmt.Fprintln(a.out, hash)
	return nil
}

func (a *app) logout(ctx context.Context) error {
	if err := a.authCtx.Logout(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *app) whoami() error {
	session := a.authCtx.CurrentSession()
	if !session.Authenticated {
		fmt.Fprintln(a.out, "Not logged in")
		return nil
	}
	fmt.Fprintf(a.out, "%s (%s)\n", session.Username, session.Role)
	return nil
}

func (a *app) celebs(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("celebs", flag.ContinueOnError)
	fs.SetOutput(a.out)
	query := fs.String("q", "", "name contains")
	profession := fs.String("profession", celebs.FilterAll, "one of All, Actor, Musician, Athlete")
	page := fs.Int("page", 1, "page number")
	if err := fs.Parse(args); err != nil {
		return err
	}

	all, err := a.api.ListCelebrities(ctx)
	if err != nil {
		return fmt.Errorf("list celebrities: %w", err)
	}

	filtered := celebs.FilterCelebrities(all, *query, *profession)
	if len(filtered) == 0 {
		fmt.Fprintln(a.out, "No celebrities found.")
		return nil
	}
	pageItems, current, total := celebs.Paginate(filtered, *page, celebs.PageSize)

	rows := make([][]string, 0, len(pageItems))
	for _, c := range pageItems {
		rows = append(rows, []string{c.ID, c.Name, c.Profession})
	}
	fmt.Fprintln(a.out, renderTable([]string{"ID", "NAME", "PROFESSION"}, rows))
	fmt.Fprintf(a.out, "page %d/%d\n", current, total)
	return nil
}

func (a *app) bookings(ctx context.Context) error {
	decision := guard.Evaluate(a.authCtx.CurrentSession(), bookingsRule)
	if !decision.Allow {
		if decision.Reason == guard.ReasonUnauthenticated {
			return errors.New("not logged in, run: celebctl login -u <username> -p <password>")
		}
		return errors.New("bookings are only available to admins")
	}

	var (
		allBookings []api.Booking
		allCelebs   []api.Celebrity
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		allBookings, err = a.api.ListBookings(gCtx)
		return err
	})
	g.Go(func() error {
		var err error
		if allCelebs, err = a.api.ListCelebrities(gCtx); err != nil {
			// names are a nicety, the ids are still shown
			log.Warnf("list celebrities: %s", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("list bookings: %w", err)
	}

	if len(allBookings) == 0 {
		fmt.Fprintln(a.out, "No bookings found.")
		return nil
	}
	allBookings = bookings.ResolveCelebNames(allBookings, allCelebs)

	rows := make([][]string, 0, len(allBookings))
	for _, b := range allBookings {
		celeb := b.Celeb.Name
		if celeb == "" {
			celeb = b.Celeb.ID
		}
		createdAt := "-"
		if !b.CreatedAt.IsZero() {
			createdAt = b.CreatedAt.Local().Format("2006-01-02 15:04")
		}
		rows = append(rows, []string{b.ID, celeb, b.Name, b.Email, b.Date, b.Reason, pkg.Truncate(b.Message, 20), createdAt})
	}
	fmt.Fprintln(a.out, renderTable([]string{"ID", "CELEBRITY", "NAME", "EMAIL", "DATE", "REASON", "MESSAGE", "CREATED AT"}, rows))
	return nil
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func renderTable(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		String()
}
