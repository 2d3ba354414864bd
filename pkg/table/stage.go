package table

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/flume/pkg/pipeline"
	"github.com/aretw0/flume/pkg/value"
)

const (
	// DefaultPageCap bounds how many rows accumulate into one page.
	DefaultPageCap = 1000

	// DefaultPageTimeout bounds how long a page may accumulate before a
	// partial flush, trading width optimality for responsiveness.
	DefaultPageTimeout = time.Second

	// timeoutCheckInterval is how many pulls go by between elapsed-time
	// checks.
	timeoutCheckInterval = 100
)

// RenderFunc emits one allocated page to the output sink.
type RenderFunc func(*View) error

// Stage is the terminal sink of a chain: it drains its upstream connector
// into column-homogeneous pages and renders each one independently,
// carrying a running row offset across pages. It never yields a value of
// its own.
type Stage struct {
	upstream    pipeline.Connector
	render      RenderFunc
	width       int
	pageCap     int
	pageTimeout time.Duration
	logger      *slog.Logger
	now         func() time.Time

	startIdx int
}

// StageOption configures a table stage.
type StageOption func(*Stage)

// WithWidth sets the terminal width budget passed to the allocator.
func WithWidth(width int) StageOption {
	return func(s *Stage) {
		s.width = width
	}
}

// WithPageCap overrides the page item bound.
func WithPageCap(n int) StageOption {
	return func(s *Stage) {
		s.pageCap = n
	}
}

// WithPageTimeout overrides the page accumulation time budget.
func WithPageTimeout(d time.Duration) StageOption {
	return func(s *Stage) {
		s.pageTimeout = d
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) StageOption {
	return func(s *Stage) {
		s.logger = logger
	}
}

// NewStage creates a table sink that flushes pages through render.
func NewStage(render RenderFunc, opts ...StageOption) *Stage {
	s := &Stage{
		render:      render,
		width:       minWidth,
		pageCap:     DefaultPageCap,
		pageTimeout: DefaultPageTimeout,
		logger:      slog.New(slog.DiscardHandler),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	// A cap below one would never admit a row into a page, and without
	// pulls the drain loop cannot reach end of stream.
	if s.pageCap < 1 {
		s.pageCap = 1
	}
	if s.pageTimeout <= 0 {
		s.pageTimeout = DefaultPageTimeout
	}
	return s
}

// Connect wires the upstream connector.
func (s *Stage) Connect(ctx context.Context, upstream pipeline.Connector) error {
	s.upstream = upstream
	return nil
}

// Next drains the upstream to exhaustion, rendering pages as they fill, and
// then reports end of stream. A record whose column signature differs from
// the open page is held back in a one-item delay slot: it seeds the next
// page, so every rendered page is column-homogeneous. Errors propagate
// immediately and drop the page being accumulated.
func (s *Stage) Next(ctx context.Context) (*pipeline.Output, error) {
	if s.upstream == nil {
		return nil, nil
	}

	var delaySlot *value.Value
	finished := false

	for !finished {
		page := make([]value.Value, 0, s.pageCap)
		startTime := s.now()

		for idx := 0; idx < s.pageCap; idx++ {
			if delaySlot != nil {
				page = append(page, *delaySlot)
				delaySlot = nil
				continue
			}

			v, err := s.upstream.Next(ctx)
			if err != nil {
				return nil, err
			}
			if v == nil {
				finished = true
				break
			}
			if len(page) > 0 && !page[0].SameColumns(*v) {
				delaySlot = v
				break
			}
			page = append(page, *v)

			if (idx+1)%timeoutCheckInterval == 0 && s.now().Sub(startTime) >= s.pageTimeout {
				break
			}
		}

		if len(page) > 0 {
			s.logger.Debug("flushing page", "rows", len(page), "offset", s.startIdx)
			if view := NewView(page, s.startIdx, s.width); view != nil {
				if err := s.render(view); err != nil {
					return nil, err
				}
			}
		}
		s.startIdx += len(page)
	}

	return nil, nil
}
