package batch

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/nimblehire/sift/internal/candidate"
	"github.com/nimblehire/sift/internal/events"
	"github.com/nimblehire/sift/internal/processor"
)

const (
	DefaultWidth  = 8
	DefaultPacing = time.Second
)

// Item is one document queued for processing.
type Item struct {
	FileName string
	Data     []byte
}

// Outcome is the terminal result for one batch item. Exactly one Outcome is
// produced per input, in input order, whether the item succeeded, failed, or
// was abandoned by cancellation.
type Outcome struct {
	Index      int                  `json:"index"`
	FileName   string               `json:"file_name"`
	OK         bool                 `json:"success"`
	Candidate  *candidate.Candidate `json:"candidate,omitempty"`
	Warnings   []string             `json:"warnings,omitempty"`
	ErrKind    processor.Kind       `json:"error_kind,omitempty"`
	ErrMessage string               `json:"error_message,omitempty"`
}

// DocumentProcessor is the per-item pipeline the scheduler fans out over.
type DocumentProcessor interface {
	Process(ctx context.Context, data []byte, fileName string) (*candidate.Candidate, []string, *processor.Failure)
}

// Scheduler runs batches in contiguous groups of at most width items,
// pausing for pacing between groups to stay under upstream rate limits.
type Scheduler struct {
	proc   DocumentProcessor
	width  int
	pacing time.Duration
	events *events.Client
	logger *slog.Logger
}

func NewScheduler(proc DocumentProcessor, width int, pacing time.Duration, ev *events.Client, logger *slog.Logger) *Scheduler {
	if width <= 0 {
		width = DefaultWidth
	}
	if pacing < 0 {
		pacing = DefaultPacing
	}
	return &Scheduler{proc: proc, width: width, pacing: pacing, events: ev, logger: logger}
}

// Run processes items and returns one Outcome per input, preserving input
// order. Groups run strictly in sequence; within a group, items run
// concurrently and each resolves independently. On cancellation, groups not
// yet started are skipped and filled with classified failures, while items
// already in flight resolve naturally, since a partial result is still
// worth keeping.
func (s *Scheduler) Run(ctx context.Context, items []Item) []Outcome {
	outcomes := make([]Outcome, len(items))
	for i, item := range items {
		outcomes[i] = Outcome{Index: i, FileName: item.FileName}
	}

	group := 0
	for start := 0; start < len(items); start += s.width {
		if start > 0 && s.pacing > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(s.pacing):
			}
		}
		if ctx.Err() != nil {
			s.abandon(ctx, outcomes[start:])
			break
		}

		end := min(start+s.width, len(items))
		s.logger.Info("group started", "group", group, "items", end-start)

		// Items already launched run to completion even if the batch is
		// cancelled while they are in flight.
		itemCtx := context.WithoutCancel(ctx)

		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			go func(idx int) {
				defer wg.Done()
				// Each goroutine owns exactly outcomes[idx]; no lock needed.
				c, warns, failure := s.proc.Process(itemCtx, items[idx].Data, items[idx].FileName)
				if failure != nil {
					outcomes[idx].ErrKind = failure.Kind
					outcomes[idx].ErrMessage = failure.Message
					return
				}
				outcomes[idx].OK = true
				outcomes[idx].Candidate = c
				outcomes[idx].Warnings = warns
			}(i)
		}
		wg.Wait()

		s.reportGroup(group, outcomes[start:end])
		group++
	}

	s.reportBatch(outcomes)
	return outcomes
}

// abandon fills terminal failure outcomes for items whose groups never
// started before cancellation.
func (s *Scheduler) abandon(ctx context.Context, remaining []Outcome) {
	f := processor.Classify(context.Cause(ctx))
	for i := range remaining {
		remaining[i].ErrKind = f.Kind
		remaining[i].ErrMessage = f.Message
	}
	s.logger.Warn("batch cancelled", "skipped", len(remaining), "kind", f.Kind)
}

func (s *Scheduler) reportGroup(group int, outcomes []Outcome) {
	ev := events.GroupCompleted{
		Group:     group,
		Files:     make([]events.FileResult, 0, len(outcomes)),
		Timestamp: time.Now().UTC(),
	}
	for _, o := range outcomes {
		if o.OK {
			ev.Succeeded++
		} else {
			ev.Failed++
		}
		ev.Files = append(ev.Files, events.FileResult{FileName: o.FileName, Success: o.OK})
	}

	s.logger.Info("group completed", "group", group, "succeeded", ev.Succeeded, "failed", ev.Failed)
	if err := s.events.Publish(events.SubjectGroupCompleted, ev); err != nil {
		s.logger.Warn("publish group event failed", "error", err)
	}
}

func (s *Scheduler) reportBatch(outcomes []Outcome) {
	ev := events.BatchCompleted{Total: len(outcomes), Timestamp: time.Now().UTC()}
	for _, o := range outcomes {
		if o.OK {
			ev.Succeeded++
		} else {
			ev.Failed++
		}
	}

	s.logger.Info("batch completed", "total", ev.Total, "succeeded", ev.Succeeded, "failed", ev.Failed)
	if err := s.events.Publish(events.SubjectBatchCompleted, ev); err != nil {
		s.logger.Warn("publish batch event failed", "error", err)
	}
}
