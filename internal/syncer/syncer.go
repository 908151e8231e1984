package syncer

import (
	"context"
	"errors"
	"fmt"

	"github.com/Adda-Baaj/userdir/internal/domain"
	"github.com/Adda-Baaj/userdir/internal/logger"
	"github.com/Adda-Baaj/userdir/pkg/publishers"
	"github.com/Adda-Baaj/userdir/pkg/users"
)

// Result summarizes a single sync pass.
type Result struct {
	Active    int
	New       int
	Published int
}

// Service publishes users that became visible as active since the last pass.
type Service struct {
	source    UserSource
	publisher EventPublisher
	deduper   Deduper
	log       logger.Logger
}

// NewService wires a sync service. A nil deduper publishes every active user on every pass.
func NewService(source UserSource, publisher EventPublisher, log logger.Logger, deduper Deduper) *Service {
	return &Service{
		source:    source,
		publisher: publisher,
		deduper:   deduper,
		log:       logger.Ensure(log),
	}
}

// Run executes one pass: fetch active users, drop already published ones,
// publish the rest and remember those accepted by at least one sink.
func (s *Service) Run(ctx context.Context) (Result, error) {
	if s == nil || s.source == nil || s.publisher == nil {
		return Result{}, fmt.Errorf("sync service is not initialized")
	}

	active, err := s.source.FetchAllUsers(ctx)
	if err != nil {
		s.log.ErrorObj("fetch users failed", "fetch_error", map[string]any{
			"source": s.source.BaseURL(),
			"kind":   users.KindOf(err).String(),
			"error":  err.Error(),
		})
		return Result{}, fmt.Errorf("fetch users: %w", err)
	}

	res := Result{Active: len(active)}
	fresh := s.filterNewUsers(active)
	res.New = len(fresh)

	var errs []error
	for _, u := range fresh {
		if ctx.Err() != nil {
			s.log.WarnObj("sync pass cancelled", "sync_progress", map[string]any{
				"published": res.Published,
				"remaining": res.New - res.Published,
			})
			break
		}
		if err := s.publishUser(ctx, u); err != nil {
			errs = append(errs, err)
			continue
		}
		res.Published++
	}

	s.log.InfoObj("sync pass completed", "sync_result", map[string]any{
		"source":    s.source.BaseURL(),
		"active":    res.Active,
		"new":       res.New,
		"published": res.Published,
		"failed":    len(errs),
	})
	return res, errors.Join(errs...)
}

func (s *Service) publishUser(ctx context.Context, u domain.User) error {
	evt := publishers.NewEvent(s.source.BaseURL(), u)
	accepted, err := s.publisher.Publish(ctx, evt)
	if accepted == 0 {
		if err == nil {
			err = errors.New("no publisher accepted the event")
		}
		return fmt.Errorf("publish user %d: %w", u.ID, err)
	}
	if err != nil {
		s.log.WarnObj("user partially published", "publish_error", map[string]any{
			"user_id":  u.ID,
			"accepted": accepted,
			"error":    err.Error(),
		})
	}
	if s.deduper != nil {
		if err := s.deduper.MarkUser(u.ID); err != nil {
			s.log.WarnObj("mark user failed", "dedupe_error", map[string]any{
				"user_id": u.ID,
				"error":   err.Error(),
			})
		}
	}
	return nil
}

// filterNewUsers drops users already published. Lookup failures keep the user.
func (s *Service) filterNewUsers(all []domain.User) []domain.User {
	if s.deduper == nil {
		return all
	}
	out := make([]domain.User, 0, len(all))
	for _, u := range all {
		seen, err := s.deduper.SeenUser(u.ID)
		if err != nil {
			s.log.WarnObj("dedupe lookup failed", "dedupe_error", map[string]any{
				"user_id": u.ID,
				"error":   err.Error(),
			})
			out = append(out, u)
			continue
		}
		if !seen {
			out = append(out, u)
		}
	}
	return out
}
