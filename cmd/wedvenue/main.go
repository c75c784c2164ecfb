package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/rs/zerolog"

	"github.com/wedvenue/wedvenue-client/credentials"
	"github.com/wedvenue/wedvenue-client/internal/config"
	"github.com/wedvenue/wedvenue-client/internal/utils"
	"github.com/wedvenue/wedvenue-client/marketplace"
	"github.com/wedvenue/wedvenue-client/session"
	"github.com/wedvenue/wedvenue-client/watchdog"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error: %s\n", err)
	}
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic: %v\n", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	email := flag.String("email", "", "account email for the login command")
	password := flag.String("password", "", "account password for the login command")
	flag.Parse()

	cfg, err := config.New()
	if err != nil {
		return fmt.Errorf("config.New: %w", err)
	}
	displayAppname(cfg.AppName)

	logger := buildLogger(cfg)

	var repoOptions []credentials.FileRepoOption
	if cfg.StorePassphrase != "" {
		repoOptions = append(repoOptions, credentials.WithPassphrase(cfg.StorePassphrase))
	}
	repo, err := credentials.NewFileRepo(cfg.DataDir, repoOptions...)
	if err != nil {
		return fmt.Errorf("credentials.NewFileRepo: %w", err)
	}

	manager, err := session.NewManager(repo,
		session.WithMaxAge(cfg.SessionMaxAge),
		session.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("session.NewManager: %w", err)
	}

	ctx := context.Background()

	// Hydration runs concurrently with whatever the command does first, the
	// same way the UI fires requests before the persisted session is loaded.
	go func() {
		if err := manager.Hydrate(ctx); err != nil {
			logger.Warn().Err(err).Msg("session hydration failed")
		}
	}()

	navigator := newConsoleNavigator(logger)
	client, err := marketplace.New(cfg.APIBaseURL, manager, navigator,
		marketplace.WithLogger(logger),
		marketplace.WithTimeout(cfg.RequestTimeout),
	)
	if err != nil {
		return fmt.Errorf("marketplace.New: %w", err)
	}

	wd, err := watchdog.New(manager, navigator, watchdog.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("watchdog.New: %w", err)
	}
	stop := wd.Start(ctx)
	defer stop()

	command := flag.Arg(0)
	if command == "" {
		command = "status"
	}
	return dispatch(ctx, command, client, manager, *email, *password)
}

func dispatch(ctx context.Context, command string, client *marketplace.Client, manager *session.Manager, email, password string) error {
	switch command {
	case "login":
		if email == "" || password == "" {
			return errors.New("login requires -email and -password")
		}
		ident, err := client.SignIn(ctx, email, password)
		if err != nil {
			return err
		}
		fmt.Printf("Signed in as %s (%s)\n", ident.FullName, ident.Role)
		return nil

	case "logout":
		if err := client.SignOut(ctx); err != nil {
			return err
		}
		fmt.Println("Signed out")
		return nil

	case "status":
		return printStatus(ctx, manager)

	case "vendors":
		vendors, err := client.BrowseVendors(ctx, marketplace.VendorFilter{PageSize: 20})
		if err != nil {
			return err
		}
		for _, v := range vendors {
			fmt.Printf("%-30s %-15s %.1f (%d reviews)\n", v.Name, v.Category, v.Rating, v.ReviewCount)
		}
		return nil

	case "checklist":
		items, err := client.Checklist(ctx)
		if err != nil {
			return err
		}
		for _, item := range items {
			mark := " "
			if item.IsCompleted {
				mark = "x"
			}
			fmt.Printf("[%s] %s (%s)\n", mark, item.Title, item.Category)
		}
		return nil

	case "book":
		vendorID := flag.Arg(1)
		if vendorID == "" {
			return errors.New("book requires a vendor id argument")
		}
		booking, err := client.CreateBooking(ctx, marketplace.BookingCreate{
			VendorID:      vendorID,
			EventDate:     time.Now().AddDate(0, 6, 0),
			EventLocation: "TBD",
			GuestCount:    utils.Ptr(100),
			TotalAmount:   1,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Booking %s created (%s)\n", booking.ID, booking.Status)
		return nil

	default:
		return fmt.Errorf("unknown command %q (want login, logout, status, vendors, checklist, or book)", command)
	}
}

func printStatus(ctx context.Context, manager *session.Manager) error {
	// Give hydration the same bounded window a request would.
	if _, ok := manager.AwaitToken(ctx); !ok {
		fmt.Println("Not signed in")
		return nil
	}
	if manager.IsExpired(ctx) {
		fmt.Println("Session expired; please sign in again")
		return nil
	}
	sess := manager.Current()
	fmt.Printf("Signed in as %s (%s) since %s\n",
		sess.Identity.Email, sess.Identity.Role, sess.LoginTime.Format(time.RFC822))
	return nil
}

func buildLogger(cfg config.Config) zerolog.Logger {
	level := zerolog.WarnLevel
	if cfg.Debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
