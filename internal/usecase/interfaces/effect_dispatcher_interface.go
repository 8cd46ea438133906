package interfaces

import "context"

// Effect is a best-effort side effect of a committed write.
type Effect func(ctx context.Context) error

// IEffectDispatcher runs side effects. Dispatch has no result: a failing effect
// is retried and logged by the dispatcher and never reaches the caller.
type IEffectDispatcher interface {
	Dispatch(ctx context.Context, name string, effect Effect)
}
