package service

import (
	"context"
	"time"

	"github.com/portwarden/portwarden/pkg/logger"
)

// StartPolling moves the scheduler from idle to polling and kicks off the
// fetch chain: an immediate fetch, then one fetch per interval. Calling it
// while already polling is a no-op, so two calls never produce two
// concurrent fetch chains.
func (svc *Service) StartPolling() {
	svc.pollMu.Lock()
	if svc.polling {
		svc.pollMu.Unlock()
		return
	}
	svc.polling = true
	stop := make(chan struct{})
	svc.pollStop = stop
	svc.pollMu.Unlock()

	go svc.pollLoop(stop)
}

// StopPolling flips the state flag and wakes the loop. An in-flight fetch
// is not cancelled; the loop observes the flag at its next re-arm check and
// exits instead of scheduling another fetch.
func (svc *Service) StopPolling() {
	svc.pollMu.Lock()
	defer svc.pollMu.Unlock()
	if !svc.polling {
		return
	}
	svc.polling = false
	close(svc.pollStop)
	svc.pollStop = nil
}

// SetPollInterval takes effect at the next re-arm, not retroactively.
func (svc *Service) SetPollInterval(msec int64) {
	if msec > 0 {
		svc.pollInterval.Store(msec)
	}
}

func (svc *Service) pollLoop(stop chan struct{}) {
	ctx := context.Background()
	logger.Logger(ctx).Info().Int64("interval_msec", svc.pollInterval.Load()).Msg("poll scheduler started")

	for {
		// Fetch failures surface through Status() and keep the cadence:
		// transient backend unavailability must not require manual
		// recovery.
		if err := svc.Refresh(ctx); err != nil {
			logger.Logger(ctx).Warn().Err(err).Msg("scheduled fetch failed, polling continues")
		}

		interval := time.Duration(svc.pollInterval.Load()) * time.Millisecond
		timer := time.NewTimer(interval)
		select {
		case <-timer.C:
		case <-stop:
			timer.Stop()
			logger.Logger(ctx).Info().Msg("poll scheduler stopped")
			return
		}

		// Stop may have landed while the timer was firing.
		select {
		case <-stop:
			logger.Logger(ctx).Info().Msg("poll scheduler stopped")
			return
		default:
		}
	}
}
