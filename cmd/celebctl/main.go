package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/elitestar/bookings-web/internal/api"
	"github.com/elitestar/bookings-web/internal/auth"
	"github.com/elitestar/bookings-web/internal/logging"

	"github.com/sethvargo/go-envconfig"
	log "github.com/sirupsen/logrus"
)

const usage = `usage: celebctl [flags] <command> [command flags]

commands:
  login -u <username> -p <password>
  logout
  whoami
  celebs [-q <name>] [-profession <All|Actor|Musician|Athlete>] [-page <n>]
  bookings
  hash-password -p <password>

flags:
`

// env holds the defaults that may come from the environment; flags win.
type env struct {
	APIURL      string `env:"CELEBCTL_API_URL, default=http://localhost:5000"`
	TokenSecret string `env:"CELEBCTL_TOKEN_SECRET, default=celebctl-local"`
	LogLevel    string `env:"CELEBCTL_LOG_LEVEL, default=warn"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], envconfig.OsLookuper(), os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "celebctl: %s\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, lookuper envconfig.Lookuper, stdout io.Writer) error {
	var e env
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &e,
		Lookuper: lookuper,
	}); err != nil {
		return fmt.Errorf("read environment: %w", err)
	}

	defaultTokenPath, err := auth.DefaultTokenPath()
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("celebctl", flag.ContinueOnError)
	fs.SetOutput(stdout)
	fs.Usage = func() {
		fmt.Fprint(fs.Output(), usage)
		fs.PrintDefaults()
	}
	apiURL := fs.String("api", e.APIURL, "remote celebrity api base url")
	tokenPath := fs.String("token-file", defaultTokenPath, "where the session token is kept")
	logLevel := fs.String("log-level", e.LogLevel, "log level")
	if err := fs.Parse(args); err != nil {
		return err
	}

	// stdout belongs to the command output
	log.SetOutput(os.Stderr)
	log.SetLevel(logging.GetLevel(*logLevel))

	if fs.NArg() == 0 {
		fs.Usage()
		return flag.ErrHelp
	}

	apiClient := api.NewClient(api.ClientParams{
		BaseURL: *apiURL,
	})
	a := &app{
		api: apiClient,
		authCtx: auth.NewContext(auth.ContextParams{
			Store:    auth.NewFileStore(*tokenPath),
			Codec:    auth.NewJWTCodec(e.TokenSecret, auth.DefaultTTL),
			Verifier: apiClient,
		}),
		out: stdout,
	}
	a.authCtx.Initialize(ctx)

	command, commandArgs := fs.Arg(0), fs.Args()[1:]
	log.Debugf("celebctl %s, api: %s", command, *apiURL)

	switch command {
	case "login":
		return a.login(ctx, commandArgs)
	case "logout":
		return a.logout(ctx)
	case "whoami":
		return a.whoami()
	case "celebs":
		return a.celebs(ctx, commandArgs)
	case "bookings":
		return a.bookings(ctx)
	case "hash-password":
		return a.hashPassword(commandArgs)
	default:
		fs.Usage()
		return fmt.Errorf("unknown command: %s", command)
	}
}
