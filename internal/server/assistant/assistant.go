package assistant

import (
	"context"
	"time"

	"github.com/dmitrijs2005/gigbook/internal/logging"
	"github.com/dmitrijs2005/gigbook/internal/money"
)

// Assistant chains completers and falls back to keyword answers.
type Assistant struct {
	completers []Completer
	fallback   *KeywordResponder
	money      *money.Formatter
	log        logging.Logger
	loc        *time.Location
	timeout    time.Duration
	now        func() time.Time
}

type Options struct {
	Logger   logging.Logger
	Location *time.Location
	// Timeout bounds each completer call. Zero means no extra bound.
	Timeout time.Duration
	Money   *money.Formatter
}

func New(o Options, completers ...Completer) *Assistant {
	if o.Logger == nil {
		o.Logger = logging.Nop{}
	}
	if o.Location == nil {
		o.Location = time.UTC
	}
	if o.Money == nil {
		o.Money = money.Default
	}
	return &Assistant{
		completers: completers,
		fallback:   NewKeywordResponder(o.Money),
		money:      o.Money,
		log:        o.Logger.With("module", "assistant"),
		loc:        o.Location,
		timeout:    o.Timeout,
		now:        time.Now,
	}
}

// Answer always produces a reply. Completer failures are logged and the
// next one is tried.
func (a *Assistant) Answer(ctx context.Context, query string, snap Snapshot) string {
	now := a.now().In(a.loc)
	system := systemPrompt(now)
	prompt := userPrompt(snap, query, now, a.money)

	for _, c := range a.completers {
		if ctx.Err() != nil {
			break
		}
		text, err := a.complete(ctx, c, system, prompt)
		if err != nil {
			a.log.Warn(ctx, "completer failed", "completer", c.Name(), "error", err)
			continue
		}
		a.log.Debug(ctx, "answered", "completer", c.Name())
		return text
	}

	a.log.Info(ctx, "using keyword fallback")
	return a.fallback.Respond(query, snap, now)
}

func (a *Assistant) complete(ctx context.Context, c Completer, system, prompt string) (string, error) {
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}
	return c.Complete(ctx, system, prompt)
}
