package commands

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/smsledger/internal/batch"
	"github.com/cleared-dev/smsledger/internal/export"
	"github.com/cleared-dev/smsledger/internal/id"
	"github.com/cleared-dev/smsledger/internal/inbox"
	"github.com/cleared-dev/smsledger/internal/model"
	"github.com/cleared-dev/smsledger/internal/risklog"
	"github.com/cleared-dev/smsledger/internal/store"
)

func newBatchCommand(a *app) *cobra.Command {
	var exportPath string
	var quiet bool

	cmd := &cobra.Command{
		Use:   "batch [directory]",
		Short: "Classify every message file in the project inbox",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			p, err := a.project(cmd, dir)
			if err != nil {
				return err
			}
			return runBatch(cmd, p, exportPath, quiet)
		},
	}

	cmd.Flags().StringVar(&exportPath, "export", "", "also write this run's records to a .csv or .jsonl file")
	cmd.Flags().Int("workers", 0, "parallel classifiers (default: one per CPU)")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "hide the progress bar")
	_ = a.v.BindPFlag("batch.workers", cmd.Flags().Lookup("workers"))

	return cmd
}

func runBatch(cmd *cobra.Command, p *project, exportPath string, quiet bool) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	reg := inbox.DefaultRegistry()
	files, err := reg.Scan(p.root)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Fprintf(out, "No message files in %s/\n", inbox.Dir)
		return nil
	}

	c, err := p.classifier()
	if err != nil {
		return err
	}

	st, err := openStore(cmd, p)
	if err != nil {
		return err
	}
	defer st.Close()

	start := time.Now()
	var all []model.Classified
	var saved, duplicates int

	for _, f := range files {
		log := p.log.With().Str("file", f.Name).Logger()

		msgs, err := reg.ReadFile(f.Path)
		if err != nil {
			return err
		}

		opts := batch.Options{Workers: p.cfg.Batch.Workers}
		var bar *progressbar.ProgressBar
		if !quiet && len(msgs) > 0 {
			bar = newProgressBar(cmd.ErrOrStderr(), len(msgs), f.Name)
			opts.Progress = func(int) { _ = bar.Add(1) }
		}

		results, err := batch.Run(ctx, c, msgs, opts)
		if err != nil {
			return fmt.Errorf("classifying %s: %w", f.Name, err)
		}
		for _, r := range results {
			fp := id.ShortFingerprint(r.Fingerprint, 12)
			log.Debug().
				Str("fingerprint", fp).
				Str("message_type", string(r.Record.MessageType)).
				Str("risk_level", string(r.Record.RiskLevel())).
				Msg("classified message")
			if r.Record.RiskLevel() == model.RiskHigh {
				log.Warn().
					Str("fingerprint", fp).
					Str("sender", r.Message.Sender).
					Strs("indicators", r.Record.Risk.Tags()).
					Msg("high-risk message")
			}
		}

		fresh, err := unseen(ctx, st, results)
		if err != nil {
			return err
		}

		n, dup, err := st.SaveAll(ctx, results)
		if err != nil {
			return fmt.Errorf("storing %s: %w", f.Name, err)
		}
		saved += n
		duplicates += dup

		if p.cfg.RiskLog.Enabled {
			if err := appendRiskLog(p.root, fresh); err != nil {
				return err
			}
		}

		if err := inbox.MarkProcessed(p.root, f.Name); err != nil {
			return err
		}

		log.Info().
			Int("messages", len(msgs)).
			Int("saved", n).
			Int("duplicates", dup).
			Msg("processed inbox file")
		all = append(all, results...)
	}

	sum := batch.Summarize(all, time.Since(start))
	p.log.Info().
		Int("total", sum.Total).
		Int("suspicious", sum.Suspicious).
		Int("high_risk", sum.HighRisk).
		Dur("elapsed", sum.ProcessingTime).
		Msg("batch complete")

	printSummary(out, sum, saved, duplicates)

	if exportPath != "" {
		if err := export.WriteFile(exportPath, all); err != nil {
			return err
		}
		fmt.Fprintf(out, "Exported %d records to %s\n", len(all), exportPath)
	}
	return nil
}

// unseen returns the results whose message is not yet in the store. A
// message repeated within results is returned once.
func unseen(ctx context.Context, st *store.Store, results []model.Classified) ([]model.Classified, error) {
	var out []model.Classified
	inRun := make(map[string]bool)
	for _, r := range results {
		if inRun[r.Fingerprint] {
			continue
		}
		inRun[r.Fingerprint] = true
		seen, err := st.Seen(ctx, r.Fingerprint)
		if err != nil {
			return nil, err
		}
		if !seen {
			out = append(out, r)
		}
	}
	return out, nil
}

// appendRiskLog records the high-risk results of one run.
func appendRiskLog(root string, results []model.Classified) error {
	var entries []risklog.Entry
	for _, r := range results {
		if !risklog.ShouldLog(r.Record) {
			continue
		}
		ts := r.Message.ReceivedAt
		if ts.IsZero() {
			ts = time.Now()
		}
		entries = append(entries, risklog.NewEntry(ts, r.Message.Sender, r.Message.Body, r.Record))
	}
	if err := risklog.Append(root, entries); err != nil {
		return fmt.Errorf("writing risk log: %w", err)
	}
	return nil
}

func newProgressBar(w io.Writer, total int, name string) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]Classifying "+name+"...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			_, _ = fmt.Fprintln(w)
		}),
	)
}

func printSummary(w io.Writer, sum batch.Summary, saved, duplicates int) {
	fmt.Fprintf(w, "Classified %d messages (%d new, %d already stored) in %s\n",
		sum.Total, saved, duplicates, sum.ProcessingTime.Round(time.Millisecond))

	types := make([]string, 0, len(sum.ByType))
	for t := range sum.ByType {
		types = append(types, string(t))
	}
	sort.Strings(types)
	for _, t := range types {
		fmt.Fprintf(w, "  %-16s %d\n", t, sum.ByType[model.MessageType(t)])
	}
	fmt.Fprintf(w, "Suspicious: %d (high risk: %d)\n", sum.Suspicious, sum.HighRisk)
}
