package dispatch

import (
	"context"
	"fmt"
	"time"

	"proassignment/internal/config"
	"proassignment/internal/usecase/interfaces"

	log "github.com/sirupsen/logrus"
)

// Options caps how hard an effect is retried.
type Options struct {
	MaxAttempts int
	RetryDelay  time.Duration
	Timeout     time.Duration
}

func OptionsFrom(cfg config.DispatchConfig) Options {
	return Options{MaxAttempts: cfg.MaxAttempts, RetryDelay: cfg.RetryDelay, Timeout: cfg.Timeout}
}

func (o Options) attempts() int {
	if o.MaxAttempts < 1 {
		return 1
	}
	return o.MaxAttempts
}

// run executes effect until it succeeds or the attempts run out. Panics count
// as failed attempts. The last error is logged and returned.
func run(ctx context.Context, name string, effect interfaces.Effect, opts Options) error {
	var err error
	max := opts.attempts()
	for attempt := 1; attempt <= max; attempt++ {
		err = attemptOnce(ctx, effect, opts.Timeout)
		if err == nil {
			return nil
		}
		if attempt == max || ctx.Err() != nil {
			break
		}
		log.WithError(err).WithFields(log.Fields{"effect": name, "attempt": attempt}).Debug("[effects][dispatch] retrying")
		select {
		case <-ctx.Done():
		case <-time.After(opts.RetryDelay * time.Duration(attempt)):
		}
	}
	log.WithError(err).WithFields(log.Fields{"effect": name, "attempts": max}).Warn("[effects][dispatch] effect failed")
	return err
}

func attemptOnce(ctx context.Context, effect interfaces.Effect, timeout time.Duration) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return effect(ctx)
}

// Inline runs effects on the caller's goroutine before Dispatch returns.
type Inline struct {
	opts Options
}

var _ interfaces.IEffectDispatcher = (*Inline)(nil)

func NewInline(opts Options) *Inline {
	return &Inline{opts: opts}
}

func (d *Inline) Dispatch(ctx context.Context, name string, effect interfaces.Effect) {
	_ = run(ctx, name, effect, d.opts)
}
