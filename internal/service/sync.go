// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/MKhiriev/go-configur/internal/adapter"
	"github.com/MKhiriev/go-configur/internal/config"
	"github.com/MKhiriev/go-configur/internal/crypto"
	"github.com/MKhiriev/go-configur/internal/logger"
	"github.com/MKhiriev/go-configur/internal/store"
	"github.com/MKhiriev/go-configur/models"
)

// Stage names used in failure logs.
const (
	stageFetch     = "fetch"
	stageCacheSave = "cache_save"
	stageCacheLoad = "cache_load"
	stageDecrypt   = "decrypt"
)

// SyncDeps are the collaborators of the sync service.
type SyncDeps struct {
	Fetcher   adapter.BundleFetcher
	Cache     store.BundleCache
	Decryptor crypto.Decryptor
	Settings  *store.SettingsStore
	Push      PushSubscriber
}

// SyncOptions describe the application the sync service works for. They are
// also the source of the reserved __Configur_ metadata keys.
type SyncOptions struct {
	Identity        models.Identity
	Remote          config.Remote
	CacheEnabled    bool
	RefreshInterval time.Duration
	DisablePush     bool
}

type syncService struct {
	deps         SyncDeps
	opts         SyncOptions
	onInvalidate func()

	// cycleMu serializes cycles.
	cycleMu sync.Mutex
	handle  PushHandle

	statusMu sync.RWMutex
	status   models.RefreshStatus

	now    func() time.Time
	logger *logger.Logger
}

// NewSyncService builds the [SyncService]. onInvalidate is handed to every
// push subscription; it must not block.
func NewSyncService(deps SyncDeps, opts SyncOptions, onInvalidate func(), log *logger.Logger) SyncService {
	if onInvalidate == nil {
		onInvalidate = func() {}
	}

	return &syncService{
		deps:         deps,
		opts:         opts,
		onInvalidate: onInvalidate,
		status: models.RefreshStatus{
			AppID: opts.Identity.AppID,
			State: models.StateIdle,
		},
		now:    time.Now,
		logger: log.ForApp(opts.Identity.AppID),
	}
}

// RunCycle implements [SyncService].
//
// The cache is consulted only when the fetch fails, and a fresh bundle is
// saved to the cache only after it parsed. Every abort happens before
// SettingsStore.Merge, so the previous settings stay in place.
func (s *syncService) RunCycle(ctx context.Context, trigger models.CycleTrigger) error {
	s.cycleMu.Lock()
	defer s.cycleMu.Unlock()

	start := s.now()
	appID := s.opts.Identity.AppID
	log := s.logger.With().Str("trigger", string(trigger)).Logger()

	s.beginCycle(trigger)
	defer s.setState(models.StateIdle)

	s.setState(models.StateFetching)
	bundle, raw, err := s.deps.Fetcher.Fetch(ctx)
	source := models.SourceRemote

	if err == nil {
		s.setState(models.StateFetchedOK)
		if saveErr := s.deps.Cache.Save(ctx, appID, raw); saveErr != nil {
			log.Warn().Err(saveErr).
				Str("stage", stageCacheSave).
				Dur("elapsed", s.now().Sub(start)).
				Msg("could not cache bundle")
		}
	} else {
		s.setState(models.StateFetchFailed)
		log.Warn().Err(err).
			Str("stage", stageFetch).
			Dur("elapsed", s.now().Sub(start)).
			Msg("fetching bundle failed, trying local cache")

		fetchErr := err
		bundle, _, err = s.deps.Cache.Load(ctx, appID)
		if err != nil {
			s.setState(models.StateCacheMiss)
			err = fmt.Errorf("no bundle available: %w", errors.Join(fetchErr, err))
			log.Error().Err(err).
				Str("stage", stageCacheLoad).
				Dur("elapsed", s.now().Sub(start)).
				Msg("sync cycle aborted")
			s.fail(err)
			return err
		}

		s.setState(models.StateCacheHit)
		source = models.SourceCache
	}

	s.setState(models.StateDecrypting)
	settings, channel, err := s.deps.Decryptor.Decrypt(bundle, s.opts.Identity.AppPassword)
	if err != nil {
		s.setState(models.StateDecryptFailed)
		log.Error().Err(err).
			Str("stage", stageDecrypt).
			Str("source", string(source)).
			Dur("elapsed", s.now().Sub(start)).
			Msg("sync cycle aborted")
		err = fmt.Errorf("decrypt bundle: %w", err)
		s.fail(err)
		return err
	}

	count := s.deps.Settings.Merge(settings, s.metadata(channel))
	s.setState(models.StateMergedOK)
	s.succeed(source, bundle.ETag)

	s.resubscribe(ctx, channel)

	log.Info().
		Str("source", string(source)).
		Str("etag", bundle.ETag).
		Int("settings", count).
		Dur("elapsed", s.now().Sub(start)).
		Msg("configuration refreshed")

	return nil
}

// resubscribe replaces the push subscription with one for channel. It runs
// with cycleMu held, so only one subscription exists at a time.
func (s *syncService) resubscribe(ctx context.Context, channel models.PushChannel) {
	if s.handle != nil {
		s.handle.Cancel()
		s.handle = nil
	}

	if s.opts.DisablePush || channel.IsZero() || s.deps.Push == nil {
		s.setSubscribed(false)
		return
	}

	// the subscription outlives this cycle
	s.handle = s.deps.Push.Subscribe(context.WithoutCancel(ctx), channel, s.onInvalidate)
	s.setSubscribed(true)
}

// Close implements [SyncService].
func (s *syncService) Close() {
	s.cycleMu.Lock()
	defer s.cycleMu.Unlock()

	if s.handle != nil {
		s.handle.Cancel()
		s.handle = nil
	}
	s.setSubscribed(false)
}

// Status implements [SyncService].
func (s *syncService) Status() models.RefreshStatus {
	s.statusMu.RLock()
	st := s.status
	s.statusMu.RUnlock()

	st.SettingsCount = s.deps.Settings.Len()
	return st
}

// metadata returns the reserved keys merged next to the decrypted settings.
func (s *syncService) metadata(channel models.PushChannel) []models.Setting {
	md := []models.Setting{
		{Key: models.KeyAPIHost, Value: s.opts.Remote.APIHost},
		{Key: models.KeyAppID, Value: s.opts.Identity.AppID},
		{Key: models.KeyIdentityServerAuthority, Value: s.opts.Remote.IdentityAuthority},
		{Key: models.KeyIsDevelopment, Value: strconv.FormatBool(s.opts.Remote.IsDevelopment)},
		{Key: models.KeyIsFileCacheEnabled, Value: strconv.FormatBool(s.opts.CacheEnabled)},
		{Key: models.KeyRefreshInterval, Value: s.opts.RefreshInterval.String()},
	}

	if !channel.IsZero() {
		md = append(md,
			models.Setting{Key: models.KeySignalRURL, Value: channel.URL},
			models.Setting{Key: models.KeySignalRAccessToken, Value: channel.AccessToken},
		)
	}

	return md
}

func (s *syncService) beginCycle(trigger models.CycleTrigger) {
	s.statusMu.Lock()
	s.status.Cycles++
	s.status.LastTrigger = trigger
	s.statusMu.Unlock()
}

func (s *syncService) setState(state models.CycleState) {
	s.statusMu.Lock()
	s.status.State = state
	s.statusMu.Unlock()
}

func (s *syncService) setSubscribed(v bool) {
	s.statusMu.Lock()
	s.status.Subscribed = v
	s.statusMu.Unlock()
}

func (s *syncService) fail(err error) {
	s.statusMu.Lock()
	s.status.Failures++
	s.status.LastError = err.Error()
	s.statusMu.Unlock()
}

func (s *syncService) succeed(source models.BundleSource, etag string) {
	s.statusMu.Lock()
	s.status.LastSuccessAt = s.now().UTC()
	s.status.LastSource = source
	s.status.LastETag = etag
	s.status.LastError = ""
	s.statusMu.Unlock()
}
