// Package batch classifies many messages in parallel.
package batch

import (
	"context"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/cleared-dev/smsledger/internal/id"
	"github.com/cleared-dev/smsledger/internal/model"
)

// Classifier is the single-message pipeline.
type Classifier interface {
	Classify(message, sender string) model.ClassifiedRecord
}

// Options configures a batch run.
type Options struct {
	Workers  int              // zero means one per CPU
	Progress func(done int) // called once per classified message, never concurrently
}

// Summary contains statistics about a batch run.
type Summary struct {
	Total          int
	ByType         map[model.MessageType]int
	Suspicious     int
	HighRisk       int
	ProcessingTime time.Duration
}

// Run classifies msgs and returns the results in input order. Cancelling
// ctx stops scheduling new messages and returns ctx's error.
func Run(ctx context.Context, c Classifier, msgs []model.Message, opts Options) ([]model.Classified, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	out := make([]model.Classified, len(msgs))

	var (
		mu   sync.Mutex
		done int
	)
	report := func() {
		if opts.Progress == nil {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		done++
		opts.Progress(done)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, m := range msgs {
		if gctx.Err() != nil {
			break
		}
		i, m := i, m
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = model.Classified{
				ID:          id.NewRecordID(),
				Fingerprint: id.Fingerprint(m.Sender, m.Body),
				Message:     m,
				Record:      c.Classify(m.Body, m.Sender),
			}
			report()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Summarize counts results by message type and risk.
func Summarize(results []model.Classified, elapsed time.Duration) Summary {
	s := Summary{
		Total:          len(results),
		ByType:         make(map[model.MessageType]int),
		ProcessingTime: elapsed,
	}
	for _, r := range results {
		s.ByType[r.Record.MessageType]++
		if r.Record.Suspicious() {
			s.Suspicious++
		}
		if r.Record.RiskLevel() == model.RiskHigh {
			s.HighRisk++
		}
	}
	return s
}
