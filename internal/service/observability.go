package service

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/whittech/estimator/internal/estimate"
)

// OpEvent describes one finished import or export run: which operation,
// which project, the file it touched, and how it went. Report is set
// only for imports, where per-row outcomes matter.
type OpEvent struct {
	Op        string
	ProjectID int64
	Path      string
	Took      time.Duration
	Report    *estimate.ImportReport
	Err       error
}

// OpObserver is notified after each import/export operation completes,
// whether it succeeded or not.
type OpObserver interface {
	OpDone(ctx context.Context, e OpEvent)
}

// NoopOpObserver discards every event.
type NoopOpObserver struct{}

func (NoopOpObserver) OpDone(context.Context, OpEvent) {}

type logOpObserver struct {
	log *slog.Logger
}

// NewLogOpObserver logs operation outcomes to w, one line per run.
func NewLogOpObserver(w io.Writer) OpObserver {
	if w == nil {
		return NoopOpObserver{}
	}
	return &logOpObserver{
		log: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})),
	}
}

func (o *logOpObserver) OpDone(ctx context.Context, e OpEvent) {
	attrs := []any{
		"op", e.Op,
		"project", e.ProjectID,
		"path", e.Path,
		"took_ms", e.Took.Milliseconds(),
	}
	if e.Report != nil {
		attrs = append(attrs,
			"created", e.Report.Created,
			"skipped", e.Report.Skipped,
			"failed", e.Report.Failed,
		)
	}
	if e.Err != nil {
		attrs = append(attrs, "error", e.Err.Error())
		o.log.ErrorContext(ctx, "estimate_op", attrs...)
		return
	}
	o.log.InfoContext(ctx, "estimate_op", attrs...)
}

func opObserverOrNoop(observers []OpObserver) OpObserver {
	for _, obs := range observers {
		if obs != nil {
			return obs
		}
	}
	return NoopOpObserver{}
}
