package main

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/okian/wordlebench/internal/adapters/baseline"
	"github.com/okian/wordlebench/internal/config"
	"github.com/okian/wordlebench/internal/domain/model"
	"github.com/okian/wordlebench/internal/domain/strategy"
	"github.com/okian/wordlebench/internal/harness"
	"github.com/okian/wordlebench/internal/report"
	"github.com/okian/wordlebench/internal/strategies"
	"github.com/okian/wordlebench/pkg/logger"
)

type runFlags struct {
	answers    string
	guesses    string
	corpusName string
	firstWord  string
	save       string
	force      bool
	compare    string
	json       bool
}

func newRunCmd(c *cli) *cobra.Command {
	f := &runFlags{}
	cmd := &cobra.Command{
		Use:   "run [strategy...]",
		Short: "Run strategies over the answer list",
		Long:  "Run plays every named strategy (all of them by default) against the selected answers and prints a report. Available strategies: " + fmt.Sprint(strategyNames()),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, f, args)
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.answers, "answers", "", "file with one answer per line (required)")
	fl.StringVar(&f.guesses, "guesses", "", "file with extra allowed guesses; answers are always allowed")
	fl.StringVar(&f.corpusName, "corpus-name", "", "label stored with the records (default: answers file name)")
	fl.StringVar(&f.firstWord, "first-word", "", "fixed opening guess for the basic strategy")
	fl.StringVar(&f.save, "save", "", "save each record as a baseline under this tag")
	fl.BoolVar(&f.force, "force", false, "overwrite existing baselines when saving")
	fl.StringVar(&f.compare, "compare", "", "compare each record with the baseline saved under this tag")
	fl.BoolVar(&f.json, "json", false, "print records as JSON instead of tables")
	fl.Int("words", 0, "number of answers to test (0 = all)")
	fl.Bool("random", false, "pick answers at random instead of from the top of the list")
	fl.Uint64("seed", 1, "seed for --random")
	fl.String("mode", "", "execution mode: serial or parallel")
	fl.Int("workers", 0, "worker goroutines in parallel mode")
	fl.Int("max-turns", 0, "guesses allowed per game")
	fl.Bool("retain-traces", false, "keep every guess in the records")
	fl.Float64("alpha", 0, "significance threshold for --compare")
	_ = cmd.MarkFlagRequired("answers")

	return cmd
}

func strategyNames() []string {
	names := make([]string, 0, len(strategies.Registry()))
	for name := range strategies.Registry() {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func (c *cli) run(cmd *cobra.Command, f *runFlags, args []string) error {
	ctx := cmd.Context()
	log := logger.Named("cli")

	answers, err := readWords(f.answers)
	if err != nil {
		return err
	}
	allowed := slices.Clone(answers)
	if f.guesses != "" {
		extra, err := readWords(f.guesses)
		if err != nil {
			return err
		}
		allowed = append(allowed, extra...)
	}

	registry := strategies.Registry()
	if f.firstWord != "" {
		w, err := model.ParseWord(f.firstWord)
		if err != nil {
			return err
		}
		registry["basic"] = strategies.NewBasic(strategies.WithFirstWord(w))
	}
	names := args
	if len(names) == 0 {
		names = strategyNames()
	}

	mode, err := harness.ParseExecutionMode(c.cfg.ExecutionMode)
	if err != nil {
		return err
	}
	corpusName := f.corpusName
	if corpusName == "" {
		corpusName = f.answers
	}

	opts := []harness.Option{
		harness.WithAnswers(answers),
		harness.WithGuesses(model.NewWordList(allowed)),
		harness.WithSelection(selectionFrom(c.cfg)),
		harness.WithExecutionMode(mode),
		harness.WithMaxTurns(c.cfg.MaxTurns),
		harness.WithWorkerCount(c.cfg.WorkerCount),
		harness.WithQueueSize(c.cfg.QueueSize),
		harness.WithRetainTraces(c.cfg.RetainTraces),
		harness.WithCorpusName(corpusName),
		harness.WithSignificance(c.cfg.SignificanceThreshold),
		harness.WithMinSamples(c.cfg.MinSamples),
		harness.WithLogger(logger.Named("harness")),
	}
	if f.save != "" || f.compare != "" {
		store, err := c.openStore()
		if err != nil {
			return err
		}
		defer store.Close()
		opts = append(opts, harness.WithBaselineStore(store))
	}

	h := harness.New(opts...)
	for _, name := range names {
		s, ok := registry[name]
		if !ok {
			return fmt.Errorf("unknown strategy %q, want one of %v", name, strategyNames())
		}
		if err := h.Register(name, s); err != nil {
			return err
		}
	}

	res, err := h.Run(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if f.json {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res.Records); err != nil {
			return err
		}
	} else {
		if err := report.WriteRun(out, res.Records); err != nil {
			return err
		}
		for _, rec := range res.Records {
			fmt.Fprintln(out)
			if err := report.WriteRecord(out, rec); err != nil {
				return err
			}
		}
	}

	for i, name := range res.Names {
		rec := res.Records[i]
		if f.save != "" {
			key := baseline.Key{Strategy: name, Tag: f.save}
			if err := h.SaveBaseline(ctx, key, rec, f.force); err != nil {
				return err
			}
			log.Info(ctx, "baseline saved", logger.String("key", key.String()), logger.String("strategy", strategy.Label(name, registry[name])))
		}
		if f.compare != "" {
			cmpRes, err := h.Compare(ctx, rec, baseline.Key{Strategy: name, Tag: f.compare})
			if err != nil {
				return err
			}
			fmt.Fprintln(out)
			if err := report.WriteComparison(out, cmpRes); err != nil {
				return err
			}
		}
	}
	return nil
}

func selectionFrom(cfg *config.Config) harness.Selection {
	switch {
	case cfg.WordsToTest == 0:
		return harness.All()
	case cfg.Selection == config.SelectionRandom:
		return harness.Random(cfg.WordsToTest, cfg.Seed)
	default:
		return harness.First(cfg.WordsToTest)
	}
}
