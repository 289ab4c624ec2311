package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/MKhiriev/go-configur/internal/adapter"
	"github.com/MKhiriev/go-configur/internal/logger"
	"github.com/MKhiriev/go-configur/models"
)

// InvalidationTarget is the hub method the server invokes when the
// application's settings change.
const InvalidationTarget = "ValuablesDeposited"

// errStableLoss marks a connection that was up long enough to start the
// backoff over.
var errStableLoss = errors.New("push connection lost")

type pushSubscriber struct {
	connector adapter.HubConnector

	baseDelay   time.Duration
	maxDelay    time.Duration
	maxRetries  uint64
	stableAfter time.Duration

	logger *logger.Logger
}

// NewPushSubscriber returns the [PushSubscriber] over connector. Failed
// connection attempts back off exponentially from one second up to one
// minute, and the subscription gives up after ten consecutive failures.
func NewPushSubscriber(connector adapter.HubConnector, log *logger.Logger) PushSubscriber {
	return &pushSubscriber{
		connector:   connector,
		baseDelay:   time.Second,
		maxDelay:    time.Minute,
		maxRetries:  10,
		stableAfter: 30 * time.Second,
		logger:      log,
	}
}

type pushHandle struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// Cancel implements [PushHandle].
func (h *pushHandle) Cancel() {
	h.cancel()
	<-h.done
}

// Subscribe implements [PushSubscriber].
func (p *pushSubscriber) Subscribe(ctx context.Context, channel models.PushChannel, onInvalidate func()) PushHandle {
	ctx, cancel := context.WithCancel(ctx)
	h := &pushHandle{cancel: cancel, done: make(chan struct{})}

	go func() {
		defer close(h.done)
		p.listen(ctx, channel, onInvalidate)
	}()

	return h
}

func (p *pushSubscriber) listen(ctx context.Context, channel models.PushChannel, onInvalidate func()) {
	log := p.logger.With().Str("hub", channel.URL).Logger()

	handler := func(inv adapter.Invocation) {
		if !strings.EqualFold(inv.Target, InvalidationTarget) {
			return
		}
		log.Info().Int("args", len(inv.Arguments)).Msg("Reloading configuration via push")
		onInvalidate()
	}

	for {
		err := retry.Do(ctx, p.backoff(), func(ctx context.Context) error {
			stream, err := p.connector.Connect(ctx, channel)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				log.Warn().Err(err).Msg("push connection failed")
				return retry.RetryableError(err)
			}

			log.Info().Msg("push subscription established")
			connectedAt := time.Now()
			err = stream.Listen(ctx, handler)
			_ = stream.Close()

			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Warn().Err(err).Msg("push connection lost")
			if time.Since(connectedAt) >= p.stableAfter {
				return errStableLoss
			}
			return retry.RetryableError(err)
		})

		switch {
		case ctx.Err() != nil:
			return
		case errors.Is(err, errStableLoss):
			continue
		default:
			log.Error().Err(err).Msg("giving up on push subscription until the next refresh")
			return
		}
	}
}

func (p *pushSubscriber) backoff() retry.Backoff {
	b := retry.NewExponential(p.baseDelay)
	b = retry.WithJitterPercent(10, b)
	b = retry.WithCappedDuration(p.maxDelay, b)
	return retry.WithMaxRetries(p.maxRetries, b)
}

