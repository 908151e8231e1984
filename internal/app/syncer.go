package app

import (
	"context"
	"fmt"
	"time"

	"github.com/Adda-Baaj/userdir/internal/config"
	"github.com/Adda-Baaj/userdir/internal/logger"
	"github.com/Adda-Baaj/userdir/internal/storage"
	"github.com/Adda-Baaj/userdir/internal/syncer"
	"github.com/Adda-Baaj/userdir/pkg/publishers"
)

// Syncer is the long-running runtime that periodically publishes newly
// active users. It owns the publishers and the dedupe store.
type Syncer struct {
	cfg          *config.Config
	fanout       *publishers.Fanout
	syncService  *syncer.Service
	syncInterval time.Duration
	log          logger.Logger
	store        storage.Store
}

// NewSyncer builds a syncer runtime from config files.
func NewSyncer(ctx context.Context, cfg *config.Config, log logger.Logger) (*Syncer, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	log = logger.Ensure(log)
	if ctx == nil {
		ctx = context.Background()
	}

	svc, err := newUserService(cfg)
	if err != nil {
		return nil, err
	}

	publisherReg, err := publishers.LoadRegistry(cfg.PublishersFile)
	if err != nil {
		return nil, fmt.Errorf("load publishers registry: %w", err)
	}
	enabledPublishers := publisherReg.Enabled()
	if len(enabledPublishers) == 0 {
		return nil, fmt.Errorf("no publishers configured")
	}

	pubClients, err := publishers.BuildAll(ctx, publishers.DefaultRegistry(), enabledPublishers, log)
	if err != nil {
		return nil, fmt.Errorf("build publishers: %w", err)
	}
	fanout := publishers.NewFanout(pubClients)
	publisherSummaries := make([]map[string]string, 0, len(enabledPublishers))
	for _, pubCfg := range enabledPublishers {
		publisherSummaries = append(publisherSummaries, map[string]string{
			"id":   pubCfg.ID,
			"type": pubCfg.Type,
		})
	}
	log.InfoObj("publishers registry loaded", "publishers_meta", map[string]any{
		"count":      len(publisherSummaries),
		"publishers": publisherSummaries,
	})

	store, err := storage.NewStore(cfg.StorageType, cfg.BBoltPath, storage.Options{
		UserTTL:         cfg.StorageTTL,
		CleanupInterval: cfg.StorageCleanupInterval,
	})
	if err != nil {
		_ = fanout.Close()
		return nil, fmt.Errorf("init storage: %w", err)
	}
	log.InfoObj("storage initialized", "storage_config", map[string]any{
		"type":                     cfg.StorageType,
		"path":                     cfg.BBoltPath,
		"user_ttl_seconds":         int(cfg.StorageTTL.Seconds()),
		"cleanup_interval_seconds": int(cfg.StorageCleanupInterval.Seconds()),
	})

	return newSyncer(cfg, syncer.NewService(svc, fanout, log, store), fanout, store, log), nil
}

func newSyncer(cfg *config.Config, svc *syncer.Service, fanout *publishers.Fanout, store storage.Store, log logger.Logger) *Syncer {
	return &Syncer{
		cfg:          cfg,
		fanout:       fanout,
		syncService:  svc,
		syncInterval: cfg.SyncInterval,
		log:          logger.Ensure(log),
		store:        store,
	}
}

// Run starts the sync loop until the context is cancelled.
func (s *Syncer) Run(ctx context.Context) error {
	if s == nil || s.syncService == nil {
		return fmt.Errorf("syncer is not initialized")
	}
	defer s.close()

	s.log.InfoObj("sync loop starting", "syncer_state", map[string]any{
		"source":           s.cfg.APIBaseURL,
		"publishers_count": s.fanout.Size(),
		"sync_interval":    s.syncInterval.String(),
	})

	if err := s.runOnce(ctx); err != nil {
		s.log.ErrorObj("initial sync failed", "error", err.Error())
	}

	ticker := time.NewTicker(s.syncInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.InfoObj("sync loop exiting", "reason", ctx.Err().Error())
			return nil
		case <-ticker.C:
			if err := s.runOnce(ctx); err != nil {
				s.log.ErrorObj("scheduled sync failed", "error", err.Error())
			}
		}
	}
}

func (s *Syncer) runOnce(ctx context.Context) error {
	start := time.Now()
	res, err := s.syncService.Run(ctx)
	s.log.InfoObj("sync finished", "sync_meta", map[string]any{
		"published":  res.Published,
		"elapsed_ms": time.Since(start).Milliseconds(),
	})
	return err
}

// close releases the publishers and the store, logging failures.
func (s *Syncer) close() {
	if err := s.fanout.Close(); err != nil {
		s.log.ErrorObj("publishers close failed", "error", err.Error())
	}
	if s.store == nil {
		return
	}
	if err := s.store.Close(); err != nil {
		s.log.ErrorObj("storage close failed", "error", err.Error())
	}
}
