package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/Adda-Baaj/userdir/internal/config"
	"github.com/Adda-Baaj/userdir/internal/domain"
	"github.com/Adda-Baaj/userdir/internal/logger"
	"github.com/Adda-Baaj/userdir/pkg/httpclient"
	"github.com/Adda-Baaj/userdir/pkg/users"
)

// UserReader is the part of users.Service the lookup relies on.
type UserReader interface {
	FetchUser(ctx context.Context, id uint32) (domain.User, error)
	FetchAllUsers(ctx context.Context) ([]domain.User, error)
}

// LookupReport holds the outcome of both lookups.
type LookupReport struct {
	User      domain.User
	UserErr   error
	Active    []domain.User
	ActiveErr error
}

// Lookup fetches one user and the active user list and prints the outcome.
type Lookup struct {
	reader UserReader
	userID uint32
	out    io.Writer
	log    logger.Logger
}

// NewLookup builds a lookup against the configured directory, printing to stdout.
func NewLookup(cfg *config.Config, log logger.Logger) (*Lookup, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}

	svc, err := newUserService(cfg)
	if err != nil {
		return nil, err
	}
	return newLookup(svc, cfg.LookupUserID, os.Stdout, log), nil
}

func newLookup(reader UserReader, userID uint32, out io.Writer, log logger.Logger) *Lookup {
	return &Lookup{
		reader: reader,
		userID: userID,
		out:    out,
		log:    logger.Ensure(log),
	}
}

func newUserService(cfg *config.Config) (*users.Service, error) {
	client := httpclient.NewRestyClient(httpclient.Options{
		Timeout:   cfg.HTTPTimeout,
		UserAgent: cfg.UserAgent,
	})
	svc, err := users.New(cfg.APIBaseURL, client)
	if err != nil {
		return nil, fmt.Errorf("init user service: %w", err)
	}
	return svc, nil
}

// Run performs both lookups concurrently and reports each result.
// Lookup failures are reported, not returned.
func (l *Lookup) Run(ctx context.Context) (LookupReport, error) {
	if l == nil || l.reader == nil {
		return LookupReport{}, fmt.Errorf("lookup is not initialized")
	}

	var report LookupReport
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		report.User, report.UserErr = l.reader.FetchUser(gctx, l.userID)
		return nil
	})
	g.Go(func() error {
		report.Active, report.ActiveErr = l.reader.FetchAllUsers(gctx)
		return nil
	})
	_ = g.Wait()

	l.print(report)
	return report, nil
}

func (l *Lookup) print(r LookupReport) {
	if r.UserErr != nil {
		fmt.Fprintf(l.out, "Error fetching user: %v\n", r.UserErr)
		l.log.WarnObj("fetch user failed", "lookup_error", map[string]any{
			"user_id": l.userID,
			"kind":    users.KindOf(r.UserErr).String(),
			"error":   r.UserErr.Error(),
		})
	} else {
		fmt.Fprintf(l.out, "User: %s (%s)\n", r.User.Name, r.User.Email)
		l.log.InfoObj("user fetched", "user", r.User)
	}

	if r.ActiveErr != nil {
		fmt.Fprintf(l.out, "Error fetching users: %v\n", r.ActiveErr)
		l.log.WarnObj("fetch users failed", "lookup_error", map[string]any{
			"kind":  users.KindOf(r.ActiveErr).String(),
			"error": r.ActiveErr.Error(),
		})
	} else {
		fmt.Fprintf(l.out, "Found %d active users\n", len(r.Active))
		l.log.InfoObj("active users fetched", "active_users", map[string]any{
			"count": len(r.Active),
		})
	}
}
